package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/dreamlog/pkg/app"
	"tableflip.dev/dreamlog/pkg/commands/options"
	"tableflip.dev/dreamlog/pkg/runner/calendar"
	"tableflip.dev/dreamlog/pkg/timeutil"
)

func addCalendar(topLevel *cobra.Command) {
	var month, day string
	var year, monday bool

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Show which days have dreams",
		Example: `
dreamlog calendar
dreamlog calendar --month 2026-02
dreamlog calendar --year
dreamlog calendar --day yesterday
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx context.Context, svc *app.Service) error {
				now := time.Now()
				c := &calendar.Calendar{Base: base(svc), Year: year}
				if monday {
					c.WeekStart = time.Monday
				}
				if month != "" {
					m, err := timeutil.ParseMonth(month, now)
					if err != nil {
						return err
					}
					c.Month = m
				}
				if day != "" {
					d, err := timeutil.ParseDay(day, now)
					if err != nil {
						return err
					}
					c.Day = timeutil.FormatDay(d)
				}
				return c.Do(ctx)
			})
		},
	}
	cmd.Flags().StringVar(&month, "month", "", `Month to show, example: --month="2026-02".`)
	cmd.Flags().StringVar(&day, "day", "", `List the dreams of one day, example: --day=today or --day="2/28".`)
	cmd.Flags().BoolVar(&year, "year", false, "Show the whole year as a heatmap.")
	cmd.Flags().BoolVar(&monday, "monday", false, "Start weeks on Monday.")
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
