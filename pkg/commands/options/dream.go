package options

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/dreamlog/pkg/capture"
	"tableflip.dev/dreamlog/pkg/dream"
)

// DreamOptions carry the capture form fields given on the command line.
type DreamOptions struct {
	Title        string
	Mood         string
	Lucidity     int
	SleepQuality int
	Tags         []string
	On           OnOptions

	cmd *cobra.Command
}

func AddDreamArgs(cmd *cobra.Command, o *DreamOptions) {
	o.cmd = cmd
	cmd.Flags().StringVar(&o.Title, "title", "",
		"Dream title.")
	cmd.Flags().StringVarP(&o.Mood, "mood", "m", "",
		"Mood, one of "+moodList()+". Empty clears it.")
	cmd.Flags().IntVarP(&o.Lucidity, "lucidity", "l", 0,
		"Lucidity from 1 (hazy) to 5 (lucid); 0 clears it.")
	cmd.Flags().IntVar(&o.SleepQuality, "sleep", 0,
		"Sleep quality from 1 (poor) to 5 (deep); 0 clears it.")
	cmd.Flags().StringSliceVarP(&o.Tags, "tag", "t", nil,
		"Tag, repeatable or comma separated.")
	AddOnArgs(cmd, &o.On)
}

func moodList() string {
	ids := make([]string, 0, 6)
	for _, m := range dream.Moods() {
		ids = append(ids, string(m))
	}
	return strings.Join(ids, ", ")
}

func (o *DreamOptions) changed(name string) bool {
	return o.cmd != nil && o.cmd.Flags().Changed(name)
}

// Apply copies every flag that was set onto f; unset flags leave f alone so
// an edit only touches what was asked for.
func (o *DreamOptions) Apply(f *capture.Form, now time.Time) error {
	if o.changed("title") {
		f.Title = o.Title
	}
	if o.changed("mood") {
		f.Mood = ""
		if o.Mood != "" {
			m, err := dream.ParseMood(o.Mood)
			if err != nil {
				return err
			}
			f.Mood = m
		}
	}
	if o.changed("lucidity") {
		f.Lucidity = rating(o.Lucidity)
	}
	if o.changed("sleep") {
		f.SleepQuality = rating(o.SleepQuality)
	}
	if o.changed("tag") {
		f.Tags = capture.TagInput{}
		f.Tags.Add(o.Tags...)
	}
	on, err := o.On.GetOn(now)
	if err != nil {
		return err
	}
	if on != nil {
		f.DreamDate = on.Format(dream.DateLayout)
	}
	return nil
}

func rating(r int) *int {
	if r == 0 {
		return nil
	}
	return dream.Ptr(r)
}
