package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/dreamlog/pkg/app"
	"tableflip.dev/dreamlog/pkg/commands/options"
	"tableflip.dev/dreamlog/pkg/runner/backup"
)

func addBackup(topLevel *cobra.Command) {
	e := &backup.Export{}
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Download every dream as a JSON backup",
		Example: `
dreamlog backup
dreamlog backup --dir ~/Documents
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx context.Context, svc *app.Service) error {
				e.Base = base(svc)
				return e.Do(ctx)
			})
		},
	}
	cmd.Flags().StringVar(&e.Dir, "dir", ".", "Directory to write the backup into.")
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Restore dreams from a JSON backup",
		Long:  options.Wrap80("Restore dreams from a JSON backup. Dreams already in the journal are skipped."),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, svc *app.Service) error {
				i := &backup.Import{Base: base(svc), Path: args[0]}
				return i.Do(ctx)
			})
		},
	}
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
