package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/dreamlog/pkg/app"
	"tableflip.dev/dreamlog/pkg/commands/options"
	"tableflip.dev/dreamlog/pkg/runner/report"
	"tableflip.dev/dreamlog/pkg/timeutil"
)

func addReport(topLevel *cobra.Command) {
	var last string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Look back over recent dreams, grouped by day",
		Long: `Report lists the dreams recorded within a window ending today, newest day first.

Examples:
  dreamlog report
  dreamlog report --last 3d
  dreamlog report --last 1m`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx context.Context, svc *app.Service) error {
				r := &report.Report{Base: base(svc), Window: last}
				return r.Do(ctx)
			})
		},
	}

	cmd.Flags().StringVar(&last, "last", timeutil.DefaultWindow, "time window to include (for example 3d, 1w, 1m)")
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
