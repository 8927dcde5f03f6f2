package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/dreamlog/pkg/dream"
	"tableflip.dev/dreamlog/pkg/journal"
)

// FilterOptions narrow the dream list.
type FilterOptions struct {
	Search string
	Mood   string
	Tag    string
	Limit  int
}

func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVarP(&o.Search, "search", "s", "",
		"Only dreams whose title or body contains this text.")
	cmd.Flags().StringVarP(&o.Mood, "mood", "m", "",
		"Only dreams with this mood.")
	cmd.Flags().StringVarP(&o.Tag, "tag", "t", "",
		"Only dreams with this tag.")
	cmd.Flags().IntVar(&o.Limit, "limit", 0,
		"Maximum number of dreams to list; 0 uses the server default.")
}

func (o *FilterOptions) Filter() (journal.Filter, error) {
	f := journal.Filter{Search: o.Search, Tag: o.Tag}
	if o.Mood != "" {
		m, err := dream.ParseMood(o.Mood)
		if err != nil {
			return f, err
		}
		f.Mood = m
	}
	return f, nil
}
