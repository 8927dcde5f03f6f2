package calendar

import (
	"time"

	"tableflip.dev/dreamlog/pkg/dream"
)

// Cell is one square of a grid.
type Cell struct {
	Date time.Time
	// InMonth is false for padding days outside the requested month, or
	// outside the requested year for YearGrid.
	InMonth bool
	IsToday bool
	Day     *Day
}

// Key is the cell's YYYY-MM-DD.
func (c Cell) Key() string {
	return c.Date.Format(dream.DateLayout)
}

// Week is seven consecutive cells starting on the grid's week start.
type Week [7]Cell

// MonthGrid lays out month in complete weeks beginning on weekStart.
func (ix Index) MonthGrid(month time.Time, weekStart time.Weekday, today time.Time) []Week {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	last := first.AddDate(0, 1, -1)
	return ix.grid(first, last, weekStart, today)
}

// YearGrid lays out the whole year in complete weeks, one week per column
// of a heatmap.
func (ix Index) YearGrid(year int, weekStart time.Weekday, loc *time.Location, today time.Time) []Week {
	if loc == nil {
		loc = time.Local
	}
	first := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	last := time.Date(year, time.December, 31, 0, 0, 0, 0, loc)
	return ix.grid(first, last, weekStart, today)
}

func (ix Index) grid(first, last time.Time, weekStart time.Weekday, today time.Time) []Week {
	start := first.AddDate(0, 0, -offset(first.Weekday(), weekStart))
	end := last.AddDate(0, 0, 6-offset(last.Weekday(), weekStart))
	todayKey := today.Format(dream.DateLayout)

	var weeks []Week
	for day := start; !day.After(end); {
		var w Week
		for i := range w {
			key := day.Format(dream.DateLayout)
			w[i] = Cell{
				Date:    day,
				InMonth: !day.Before(first) && !day.After(last),
				IsToday: key == todayKey,
				Day:     ix[key],
			}
			day = day.AddDate(0, 0, 1)
		}
		weeks = append(weeks, w)
	}
	return weeks
}

// offset is the column of wd in a week starting on weekStart.
func offset(wd, weekStart time.Weekday) int {
	return (int(wd) - int(weekStart) + 7) % 7
}

// Weekdays returns the column headers for weekStart, e.g. "Su".."Sa".
func Weekdays(weekStart time.Weekday) []string {
	out := make([]string, 7)
	for i := range out {
		out[i] = time.Weekday((int(weekStart) + i) % 7).String()[:2]
	}
	return out
}
