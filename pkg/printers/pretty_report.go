package printers

import (
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/dreamlog/pkg/app"
	"tableflip.dev/dreamlog/pkg/dream"
	"tableflip.dev/dreamlog/pkg/glyph"
	"tableflip.dev/dreamlog/pkg/stats"
)

// Report prints a look back, one section per day.
func (pp *PrettyPrint) Report(r app.ReportResult) {
	header := color.New(color.Bold)
	_, _ = header.Fprintf(pp.out(), "Dreams %s → %s\n",
		r.Since.Format(dream.DateLayout), r.Until.Format(dream.DateLayout))

	if r.Total == 0 {
		pp.Faint(" no dreams in this window")
		pp.NewLine()
		return
	}
	summary := fmt.Sprintf("%d %s over %d %s", r.Total, stats.Plural(r.Total, "dream", "dreams"),
		r.Days, stats.Plural(r.Days, "day", "days"))
	if r.TopMood != "" {
		summary += fmt.Sprintf(" · mostly %s %s", r.TopMood.Emoji(), r.TopMood.Label())
	}
	if r.MaxLucidity > 0 {
		summary += fmt.Sprintf(" · peak lucidity %s", glyph.Rating(&r.MaxLucidity))
	}
	pp.Faint(summary)
	pp.NewLine()

	for _, s := range r.Sections {
		pp.TitleWithCount(glyph.Day+" "+s.Date, len(s.Dreams), "dream", "dreams")
		pp.Dreams(s.Dreams)
	}
}
