package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/dreamlog/pkg/calendar"
	"tableflip.dev/dreamlog/pkg/glyph"
	"tableflip.dev/dreamlog/pkg/stats"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Month prints a month grid. Days with dreams are bold, today is underlined.
func (pp *PrettyPrint) Month(ix calendar.Index, month time.Time, weekStart time.Weekday, today time.Time) {
	w := pp.out()

	tf := color.New(color.FgWhite, color.Italic)
	title := month.Format("January 2006")
	mid := (width - len(title)) / 2
	if mid < 0 {
		mid = 0
	}
	_, _ = tf.Fprintf(w, "%s%s\n", strings.Repeat(" ", mid), title)

	hdr := color.New(color.Faint)
	_, _ = hdr.Fprintln(w, strings.Join(calendar.Weekdays(weekStart), " "))

	outside := color.New(color.Faint, color.FgWhite)
	empty := color.New(color.FgWhite)
	recorded := color.New(color.Bold, color.FgHiYellow)

	for _, week := range ix.MonthGrid(month, weekStart, today) {
		for i, c := range week {
			if i > 0 {
				_, _ = fmt.Fprint(w, " ")
			}
			if !c.InMonth {
				_, _ = fmt.Fprint(w, "  ")
				continue
			}
			style := empty
			if c.Day.Count() > 0 {
				style = recorded
			}
			if c.IsToday {
				style = color.New(color.Underline)
				if c.Day.Count() > 0 {
					style.Add(color.Bold, color.FgHiYellow)
				}
			}
			_, _ = style.Fprintf(w, "%2d", c.Date.Day())
		}
		_, _ = fmt.Fprintln(w)
	}
	_, _ = outside.Fprintf(w, "%d %s this month\n", ix.InMonth(month), stats.Plural(ix.InMonth(month), "dream", "dreams"))
}

// Heatmap prints a year as a grid of heat glyphs: one row per weekday, one
// column per week.
func (pp *PrettyPrint) Heatmap(ix calendar.Index, year int, weekStart time.Weekday, today time.Time) {
	w := pp.out()
	weeks := ix.YearGrid(year, weekStart, today.Location(), today)

	pp.Title(fmt.Sprintf("%d", year))

	// Month labels sit above the first week that contains the 1st.
	line := []rune(strings.Repeat(" ", len(weeks)+3))
	for col, week := range weeks {
		for _, c := range week {
			if c.InMonth && c.Date.Day() == 1 {
				abbr := []rune(c.Date.Format("Jan"))
				for j := 0; j < len(abbr) && 3+col+j < len(line); j++ {
					line[3+col+j] = abbr[j]
				}
			}
		}
	}
	_, _ = color.New(color.Faint).Fprintln(w, strings.TrimRight(string(line), " "))

	heat := []*color.Color{
		color.New(color.Faint),
		color.New(color.FgYellow, color.Faint),
		color.New(color.FgYellow),
		color.New(color.FgHiYellow),
		color.New(color.FgHiYellow, color.Bold),
	}
	names := calendar.Weekdays(weekStart)
	for row := 0; row < 7; row++ {
		_, _ = color.New(color.Faint).Fprintf(w, "%s ", names[row])
		for _, week := range weeks {
			c := week[row]
			if !c.InMonth {
				_, _ = fmt.Fprint(w, " ")
				continue
			}
			level := calendar.HeatLevel(c.Day)
			_, _ = heat[level].Fprint(w, glyph.Heat(level))
		}
		_, _ = fmt.Fprintln(w)
	}
	pp.NewLine()
}

// Day prints the dreams recorded on one day.
func (pp *PrettyPrint) Day(date string, day *calendar.Day) {
	pp.TitleWithCount(glyph.Day+" "+date, day.Count(), "dream", "dreams")
	if day.Count() == 0 {
		pp.Faint(" no dreams recorded")
		pp.NewLine()
		return
	}
	pp.Dreams(day.Dreams)
}
