package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/dreamlog/pkg/dream"
	"tableflip.dev/dreamlog/pkg/stats"
)

const barWidth = 30

// Summary prints the headline numbers.
func (pp *PrettyPrint) Summary(s *stats.Stats) {
	pp.Title("Journal")
	if s.Empty() {
		pp.Faint(" no dreams recorded yet")
		pp.NewLine()
		return
	}
	label := color.New(color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(label.Sprint("Dreams"), s.Total)
	tbl.AddRow(label.Sprint("Avg lucidity"), stats.FormatLucidity(s.AvgLucidity))
	for _, m := range dream.Moods() {
		if n := s.Moods[string(m)]; n > 0 {
			tbl.AddRow(label.Sprint(m.Emoji()+" "+m.Label()), fmt.Sprintf("%d (%s)", n, stats.Percent(n, s.Total)))
		}
	}
	tbl.RightAlign(1)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Detailed prints the dashboard charts.
func (pp *PrettyPrint) Detailed(d *stats.Detailed) {
	w := pp.out()
	if d.Empty() {
		pp.Title("Insights")
		pp.Faint(" record a few dreams to see insights")
		pp.NewLine()
		return
	}

	label := color.New(color.Faint)
	bar := color.New(color.FgHiYellow)

	pp.Title("Insights")
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(label.Sprint("Dreams"), d.TotalDreams)
	tbl.AddRow(label.Sprint("Streak"), fmt.Sprintf("%d %s", d.CurrentStreak, stats.Plural(d.CurrentStreak, "day", "days")))
	if v, ok := d.RecentLucidity(); ok {
		tbl.AddRow(label.Sprint("Recent lucidity"), stats.FormatLucidity(&v))
	}
	_, _ = fmt.Fprintln(w, tbl)
	pp.NewLine()

	if len(d.DreamsByMonth) > 0 {
		pp.Title("Dreams over time")
		max := d.MaxMonthCount()
		tbl := uitable.New()
		tbl.Separator = "  "
		for _, m := range d.DreamsByMonth {
			tbl.AddRow(label.Sprint(m.Month), bar.Sprint(scaleBar(m.Count, max)), m.Count)
		}
		_, _ = fmt.Fprintln(w, tbl)
		pp.NewLine()
	}

	if len(d.DreamsByDay) > 0 {
		pp.Title("By day of week")
		max := 0
		for _, day := range d.DreamsByDay {
			if day.Count > max {
				max = day.Count
			}
		}
		tbl := uitable.New()
		tbl.Separator = "  "
		for _, day := range d.DreamsByDay {
			tbl.AddRow(label.Sprint(day.Day), bar.Sprint(scaleBar(day.Count, max)), day.Count)
		}
		_, _ = fmt.Fprintln(w, tbl)
		pp.NewLine()
	}

	if shares := d.MoodShares(); len(shares) > 0 {
		pp.Title("Moods")
		tbl := uitable.New()
		tbl.Separator = "  "
		for _, s := range shares {
			m := dream.Mood(s.Mood)
			tbl.AddRow(m.Emoji(), m.Label(), s.Count, s.Percent)
		}
		tbl.RightAlign(2)
		tbl.RightAlign(3)
		_, _ = fmt.Fprintln(w, tbl)
		pp.NewLine()
	}

	if len(d.LucidityTrend) > 0 {
		pp.Title("Lucidity trend")
		tbl := uitable.New()
		tbl.Separator = "  "
		for _, p := range d.LucidityTrend {
			v := p.AvgLucidity
			tbl.AddRow(label.Sprint(p.Month), bar.Sprint(scaleBar(int(v*10), 50)), stats.FormatLucidity(&v))
		}
		_, _ = fmt.Fprintln(w, tbl)
		pp.NewLine()
	}

	if len(d.TopTags) > 0 {
		pp.Title("Top tags")
		tags := make([]string, 0, len(d.TopTags))
		for _, t := range d.TopTags {
			tags = append(tags, tagCloudWord(t))
		}
		_, _ = fmt.Fprintln(w, wordwrap.String(strings.Join(tags, "  "), pp.width()))
		pp.NewLine()
	}
}

// tagCloudWord emphasises a tag by frequency, the terminal's take on font size.
func tagCloudWord(t stats.TagCount) string {
	word := fmt.Sprintf("#%s(%d)", t.Tag, t.Count)
	size := stats.TagCloudSize(t.Count)
	switch {
	case size >= stats.MaxTagFontSize:
		return color.New(color.Bold, color.FgHiYellow).Sprint(word)
	case size >= (stats.MinTagFontSize+stats.MaxTagFontSize)/2:
		return color.New(color.Bold).Sprint(word)
	case size > stats.MinTagFontSize:
		return word
	default:
		return color.New(color.Faint).Sprint(word)
	}
}

func scaleBar(n, max int) string {
	if max <= 0 || n <= 0 {
		return ""
	}
	cells := n * barWidth / max
	if cells == 0 {
		cells = 1
	}
	if cells > barWidth {
		cells = barWidth
	}
	return strings.Repeat("█", cells)
}
