package commands

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/dreamlog/pkg/app"
	"tableflip.dev/dreamlog/pkg/capture"
	"tableflip.dev/dreamlog/pkg/commands/options"
	"tableflip.dev/dreamlog/pkg/prompt"
	"tableflip.dev/dreamlog/pkg/runner/backup"
	"tableflip.dev/dreamlog/pkg/runner/dreams"
)

func addList(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}
	ido := &options.IDOptions{}
	var exportDir string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List dreams, newest first",
		Example: `
dreamlog list
dreamlog list --search ocean
dreamlog list --mood eerie --tag flying
dreamlog list --export
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx context.Context, svc *app.Service) error {
				if exportDir != "" {
					e := &backup.Export{Base: base(svc), Dir: exportDir}
					return e.Do(ctx)
				}
				f, err := fo.Filter()
				if err != nil {
					return err
				}
				l := &dreams.List{Base: base(svc), Filter: f, Limit: fo.Limit, ShowID: ido.ShowID}
				return l.Do(ctx)
			})
		},
	}
	options.AddFilterArgs(cmd, fo)
	options.AddShowIDArgs(cmd, ido)
	cmd.Flags().StringVar(&exportDir, "export", "", "Download every dream as a JSON backup into this directory instead of listing.")
	cmd.Flags().Lookup("export").NoOptDefVal = "."
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addShow(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one dream",
		Example: `
dreamlog show 12
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, svc *app.Service) error {
				id, err := options.ParseID(args[0])
				if err != nil {
					return err
				}
				s := &dreams.Show{Base: base(svc), ID: id}
				return s.Do(ctx)
			})
		},
	}
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addAdd(topLevel *cobra.Command) {
	do := &options.DreamOptions{}
	cmd := &cobra.Command{
		Use:   "add [dream...]",
		Short: "Record a dream",
		Long: options.Wrap80(`Record a dream. The text comes from the arguments, or from stdin when it
is piped, or from a prompt. The dream is dated today unless --on says otherwise.`),
		Example: `
dreamlog add "I was flying over a city made of glass"
dreamlog add --mood vivid --lucidity 4 --tag flying,city "Glass city again"
echo "Lost teeth" | dreamlog add --on yesterday --mood anxious
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, svc *app.Service) error {
				body, err := readBody(cmd, args)
				if err != nil {
					return err
				}
				s := &dreams.Save{
					Base: base(svc),
					Body: body,
					Fill: func(f *capture.Form) error { return do.Apply(f, time.Now()) },
				}
				return s.Do(ctx)
			})
		},
	}
	options.AddDreamArgs(cmd, do)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addEdit(topLevel *cobra.Command) {
	do := &options.DreamOptions{}
	cmd := &cobra.Command{
		Use:   "edit <id> [dream...]",
		Short: "Change a dream",
		Long:  options.Wrap80(`Change a dream. Only the fields given are changed; new text replaces the body.`),
		Example: `
dreamlog edit 12 --title "The glass city"
dreamlog edit 12 --mood "" --lucidity 0
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, svc *app.Service) error {
				id, err := options.ParseID(args[0])
				if err != nil {
					return err
				}
				s := &dreams.Save{
					Base: base(svc),
					ID:   id,
					Body: strings.TrimSpace(strings.Join(args[1:], " ")),
					Fill: func(f *capture.Form) error { return do.Apply(f, time.Now()) },
				}
				return s.Do(ctx)
			})
		},
	}
	options.AddDreamArgs(cmd, do)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addDelete(topLevel *cobra.Command) {
	yo := &options.YesOptions{}
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a dream",
		Example: `
dreamlog delete 12
dreamlog rm 12 --yes
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, svc *app.Service) error {
				id, err := options.ParseID(args[0])
				if err != nil {
					return err
				}
				d := &dreams.Delete{Base: base(svc), ID: id, Yes: yo.Yes, Prompt: prompt.New()}
				return d.Do(ctx)
			})
		},
	}
	options.AddYesArg(cmd, yo)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addTags(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List every tag in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx context.Context, svc *app.Service) error {
				t := &dreams.Tags{Base: base(svc)}
				return t.Do(ctx)
			})
		},
	}
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addStats(topLevel *cobra.Command) {
	s := &dreams.Stats{}
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarise the journal",
		Example: `
dreamlog stats
dreamlog stats --detailed
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx context.Context, svc *app.Service) error {
				s.Base = base(svc)
				return s.Do(ctx)
			})
		},
	}
	cmd.Flags().BoolVarP(&s.Detailed, "detailed", "d", false, "Show the full insights dashboard.")
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

// readBody joins args, or reads piped stdin, or asks.
func readBody(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.TrimSpace(strings.Join(args, " ")), nil
	}
	if !prompt.IsTerminal(os.Stdin) {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}
	p := prompt.New()
	if p == nil {
		return "", nil
	}
	body, err := p.Text("Dream", "")
	return strings.TrimSpace(body), err
}
