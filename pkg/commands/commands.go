package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"tableflip.dev/dreamlog/pkg/app"
	"tableflip.dev/dreamlog/pkg/commands/options"
	"tableflip.dev/dreamlog/pkg/runner"
	"tableflip.dev/dreamlog/pkg/session"
	"tableflip.dev/dreamlog/pkg/store"
)

var (
	oo = &options.OutputOptions{}
	v  = viper.New()

	// stdout overrides where runners print; nil is color.Output.
	stdout io.Writer
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "dreamlog",
		Short: options.Wrap80("A dream journal on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("api-url", "", "Base URL of the dream journal API (default "+store.DefaultAPIURL+").")
	flags.String("path", "", "Directory holding the session, theme and log (default "+store.DefaultPath+").")
	flags.String("log-level", "", "Log level: debug, info, warn or error.")
	bindFlags(flags)

	AddCommands(cmd)
	return cmd
}

// bindFlags maps each persistent flag onto its config key, dashes to
// underscores, so flags override the config file and environment.
func bindFlags(flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
	})
}

func AddCommands(topLevel *cobra.Command) {
	addRegister(topLevel)
	addLogin(topLevel)
	addLogout(topLevel)
	addWhoami(topLevel)
	addList(topLevel)
	addShow(topLevel)
	addAdd(topLevel)
	addEdit(topLevel)
	addDelete(topLevel)
	addTags(topLevel)
	addCalendar(topLevel)
	addStats(topLevel)
	addTheme(topLevel)
	addAccount(topLevel)
	addBackup(topLevel)
	addImport(topLevel)
	addReport(topLevel)
	addKey(topLevel)
	addUI(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
	addUpgrade(topLevel)
}

// openService loads configuration and restores the stored session. A
// session that fails to verify is dropped and the command continues signed
// out.
func openService(ctx context.Context) (*app.Service, error) {
	cfg, err := store.LoadConfig(v)
	if err != nil {
		return nil, err
	}
	svc, err := app.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := svc.Init(ctx); err != nil {
		svc.Log.Warn("stored session dropped", "err", err)
	}
	return svc, nil
}

func base(svc *app.Service) runner.Base {
	return runner.Base{Service: svc, Out: stdout, Format: oo.Format()}
}

// run opens the service, hands it to do and closes it again.
func run(cmd *cobra.Command, do func(ctx context.Context, svc *app.Service) error) error {
	cmd.SilenceUsage = true
	ctx := cmd.Context()
	svc, err := openService(ctx)
	if err != nil {
		return oo.HandleError(err)
	}
	defer func() { _ = svc.Close() }()
	return oo.HandleError(explain(do(ctx, svc)))
}

func explain(err error) error {
	if errors.Is(err, session.ErrNoSession) {
		return fmt.Errorf("%w; run `dreamlog login` first", err)
	}
	return err
}
