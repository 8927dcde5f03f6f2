// Package calendar prints the dream calendar.
package calendar

import (
	"context"
	"time"

	cal "tableflip.dev/dreamlog/pkg/calendar"
	"tableflip.dev/dreamlog/pkg/dream"
	"tableflip.dev/dreamlog/pkg/runner"
)

type Calendar struct {
	runner.Base
	// Month is any time within the month to show.
	Month time.Time
	// Year shows the whole year as a heatmap.
	Year bool
	// Day, as YYYY-MM-DD, lists the dreams of a single day instead.
	Day       string
	WeekStart time.Weekday
	Now       func() time.Time
}

func (c *Calendar) Do(ctx context.Context) error {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	today := now()
	month := c.Month
	if month.IsZero() {
		month = today
	}

	ix, err := c.Service.Calendar(ctx)
	if err != nil {
		return err
	}

	if c.Day != "" {
		day := ix.Get(c.Day)
		if c.Structured() {
			if day == nil {
				day = &cal.Day{Date: c.Day}
			}
			return c.Encode(day)
		}
		c.Printer().Day(c.Day, day)
		return nil
	}

	if c.Structured() {
		return c.Encode(c.scope(ix, month))
	}

	pp := c.Printer()
	pp.NewLine()
	if c.Year {
		pp.Heatmap(ix, month.Year(), c.WeekStart, today)
		return nil
	}
	pp.Month(ix, month, c.WeekStart, today)
	pp.NewLine()
	return nil
}

// scope keeps the days of the month, or year, being shown.
func (c *Calendar) scope(ix cal.Index, month time.Time) []*cal.Day {
	prefix := month.Format("2006-01")
	if c.Year {
		prefix = month.Format("2006")
	}
	var out []*cal.Day
	for _, key := range ix.Dates() {
		if len(key) == len(dream.DateLayout) && key[:len(prefix)] == prefix {
			out = append(out, ix.Get(key))
		}
	}
	return out
}
