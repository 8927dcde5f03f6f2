package app

import (
	"context"
	"sort"
	"time"

	"tableflip.dev/dreamlog/pkg/api"
	"tableflip.dev/dreamlog/pkg/calendar"
	"tableflip.dev/dreamlog/pkg/dream"
)

// ReportSection groups the dreams of one day.
type ReportSection struct {
	Date   string        `json:"date" yaml:"date"`
	Dreams []dream.Dream `json:"dreams" yaml:"dreams"`
}

// ReportResult is a look back over a time window.
type ReportResult struct {
	Since       time.Time       `json:"since" yaml:"since"`
	Until       time.Time       `json:"until" yaml:"until"`
	Sections    []ReportSection `json:"sections" yaml:"sections"`
	Total       int             `json:"total" yaml:"total"`
	Days        int             `json:"days" yaml:"days"`
	MaxLucidity int             `json:"max_lucidity" yaml:"max_lucidity"`
	TopMood     dream.Mood      `json:"top_mood,omitempty" yaml:"top_mood,omitempty"`
}

// Report returns dreams whose day falls between since and until, newest day
// first.
func (s *Service) Report(ctx context.Context, since, until time.Time) (ReportResult, error) {
	dreams, err := s.Dreams(ctx, api.ListParams{Limit: calendar.FetchLimit})
	if err != nil {
		return ReportResult{}, err
	}
	return BuildReport(dreams, since, until), nil
}

// BuildReport is Report without the fetch.
func BuildReport(dreams []dream.Dream, since, until time.Time) ReportResult {
	if since.After(until) {
		since, until = until, since
	}
	from := since.Format(dream.DateLayout)
	to := until.Format(dream.DateLayout)

	var inWindow []dream.Dream
	for _, d := range dreams {
		key := d.DayKey()
		if key == "" || key < from || key > to {
			continue
		}
		inWindow = append(inWindow, d)
	}

	res := ReportResult{Since: since, Until: until, Total: len(inWindow)}
	ix := calendar.Build(inWindow)
	dates := ix.Dates()
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	moods := map[dream.Mood]int{}
	for _, date := range dates {
		day := ix.Get(date)
		res.Sections = append(res.Sections, ReportSection{Date: date, Dreams: day.Dreams})
		if day.MaxLucidity > res.MaxLucidity {
			res.MaxLucidity = day.MaxLucidity
		}
		for _, d := range day.Dreams {
			if d.Mood != nil {
				moods[*d.Mood]++
			}
		}
	}
	res.Days = len(dates)

	best := 0
	for _, m := range dream.Moods() {
		if moods[m] > best {
			best = moods[m]
			res.TopMood = m
		}
	}
	return res
}
