package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/dreamlog/pkg/timeutil"
)

// OnOptions picks the day a dream belongs to.
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Dream date, example: --on=yesterday, --on="2026-02-28" or --on="2/28".`)
}

// GetOn returns nil when no date was given.
func (o *OnOptions) GetOn(now time.Time) (*time.Time, error) {
	if o.OnString == "" {
		return nil, nil
	}
	t, err := timeutil.ParseDay(o.OnString, now)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
