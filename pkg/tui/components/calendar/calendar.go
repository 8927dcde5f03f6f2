// Package calendar renders month grids and year heatmaps for the TUI.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	cal "tableflip.dev/dreamlog/pkg/calendar"
	"tableflip.dev/dreamlog/pkg/glyph"
	"tableflip.dev/dreamlog/pkg/tui/theme"
)

// Options controls calendar styling.
type Options struct {
	Styles     theme.CalendarStyles
	WeekStart  time.Weekday
	Selected   string
	ShowHeader bool
}

// Render produces a multi-line grid for the weeks of one month. Padding days
// from neighbouring months are shown dimmed.
func Render(weeks []cal.Week, opts Options) string {
	var lines []string
	if opts.ShowHeader {
		lines = append(lines, opts.Styles.Header.Render(strings.Join(cal.Weekdays(opts.WeekStart), " ")))
	}
	for _, week := range weeks {
		cells := make([]string, 0, len(week))
		for _, cell := range week {
			cells = append(cells, renderDay(cell, opts))
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return strings.Join(lines, "\n")
}

func renderDay(cell cal.Cell, opts Options) string {
	text := fmt.Sprintf("%2d", cell.Date.Day())

	style := opts.Styles.Empty
	switch {
	case !cell.InMonth:
		style = opts.Styles.Outside
	case cell.Day.Count() > 0:
		style = opts.Styles.Entry
	}
	if cell.IsToday {
		style = style.Inherit(opts.Styles.Today)
	}
	if opts.Selected != "" && cell.Key() == opts.Selected {
		style = opts.Styles.Selected.Inherit(style)
	}
	return style.Render(text)
}

// Heatmap lays out a year as seven weekday rows with one column per week.
// Each day is a heat glyph coloured by its level.
func Heatmap(weeks []cal.Week, opts Options) string {
	names := cal.Weekdays(opts.WeekStart)

	months := []rune(strings.Repeat(" ", len(weeks)))
	last := -1
	for col, week := range weeks {
		for _, cell := range week {
			if !cell.InMonth || cell.Date.Day() != 1 {
				continue
			}
			m := int(cell.Date.Month())
			if m == last {
				continue
			}
			last = m
			label := []rune(cell.Date.Month().String()[:3])
			for i, r := range label {
				if col+i < len(months) {
					months[col+i] = r
				}
			}
		}
	}

	lines := []string{opts.Styles.Header.Render("   " + string(months))}
	for row := 0; row < 7; row++ {
		var b strings.Builder
		b.WriteString(opts.Styles.Header.Render(names[row]) + " ")
		for _, week := range weeks {
			cell := week[row]
			if !cell.InMonth {
				b.WriteString(" ")
				continue
			}
			level := cal.HeatLevel(cell.Day)
			style := opts.Styles.Heat[clamp(level)]
			if opts.Selected != "" && cell.Key() == opts.Selected {
				style = opts.Styles.Selected
			}
			b.WriteString(style.Render(glyph.Heat(level)))
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// Legend renders "less ·░▒▓█ more" with the heat styles.
func Legend(styles theme.CalendarStyles) string {
	var b strings.Builder
	b.WriteString(styles.Header.Render("less "))
	for level := 0; level < theme.HeatLevels; level++ {
		b.WriteString(styles.Heat[level].Render(glyph.Heat(level)))
	}
	b.WriteString(styles.Header.Render(" more"))
	return b.String()
}

// Width is the rendered width of a month grid.
func Width() int {
	return lipgloss.Width("11 12 13 14 15 16 17")
}

func clamp(level int) int {
	if level < 0 {
		return 0
	}
	if level >= theme.HeatLevels {
		return theme.HeatLevels - 1
	}
	return level
}
