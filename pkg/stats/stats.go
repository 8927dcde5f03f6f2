// Package stats holds the server-computed aggregates and the small amount of
// display formatting the views apply to them. Nothing here recomputes an
// aggregate from raw dreams.
package stats

import (
	"fmt"
	"math"
)

// Stats is the summary returned by GET /stats.
type Stats struct {
	Total       int            `json:"total" yaml:"total"`
	Moods       map[string]int `json:"moods" yaml:"moods"`
	AvgLucidity *float64       `json:"avg_lucidity" yaml:"avg_lucidity"`
}

// MonthCount is one bar of the dreams-over-time chart.
type MonthCount struct {
	Month       string   `json:"month" yaml:"month"`
	Count       int      `json:"count" yaml:"count"`
	AvgLucidity *float64 `json:"avg_lucidity" yaml:"avg_lucidity"`
}

// DayCount is one bar of the day-of-week chart.
type DayCount struct {
	Day   string `json:"day" yaml:"day"`
	Count int    `json:"count" yaml:"count"`
}

// MoodCount is one slice of the mood distribution.
type MoodCount struct {
	Mood  string `json:"mood" yaml:"mood"`
	Count int    `json:"count" yaml:"count"`
}

// TagCount is one tag of the tag cloud.
type TagCount struct {
	Tag   string `json:"tag" yaml:"tag"`
	Count int    `json:"count" yaml:"count"`
}

// LucidityPoint is one point of the lucidity trend.
type LucidityPoint struct {
	Month       string  `json:"month" yaml:"month"`
	AvgLucidity float64 `json:"avg_lucidity" yaml:"avg_lucidity"`
}

// Detailed is the dashboard payload returned by GET /stats/detailed.
type Detailed struct {
	TotalDreams      int             `json:"total_dreams" yaml:"total_dreams"`
	DreamsByMonth    []MonthCount    `json:"dreams_by_month" yaml:"dreams_by_month"`
	DreamsByDay      []DayCount      `json:"dreams_by_day" yaml:"dreams_by_day"`
	MoodDistribution []MoodCount     `json:"mood_distribution" yaml:"mood_distribution"`
	TopTags          []TagCount      `json:"top_tags" yaml:"top_tags"`
	LucidityTrend    []LucidityPoint `json:"lucidity_trend" yaml:"lucidity_trend"`
	CurrentStreak    int             `json:"current_streak" yaml:"current_streak"`
}

const (
	MinTagFontSize = 14
	MaxTagFontSize = 32
)

// Empty reports whether there is nothing to chart.
func (d *Detailed) Empty() bool {
	return d == nil || d.TotalDreams == 0
}

// RecentLucidity is the last point of the lucidity trend.
func (d *Detailed) RecentLucidity() (float64, bool) {
	if d == nil || len(d.LucidityTrend) == 0 {
		return 0, false
	}
	return d.LucidityTrend[len(d.LucidityTrend)-1].AvgLucidity, true
}

// MoodTotal sums the mood distribution; the denominator for mood shares.
func (d *Detailed) MoodTotal() int {
	total := 0
	for _, m := range d.MoodDistribution {
		total += m.Count
	}
	return total
}

// MaxMonthCount is the tallest bar in DreamsByMonth.
func (d *Detailed) MaxMonthCount() int {
	max := 0
	for _, m := range d.DreamsByMonth {
		if m.Count > max {
			max = m.Count
		}
	}
	return max
}

// Empty reports whether no dream was ever recorded.
func (s *Stats) Empty() bool {
	return s == nil || s.Total == 0
}

// Percent renders count/total as a whole percentage label, e.g. "42%".
func Percent(count, total int) string {
	if total <= 0 {
		return "0%"
	}
	return fmt.Sprintf("%.0f%%", float64(count)/float64(total)*100)
}

// TagCloudSize scales a tag's font size with its frequency, capped to
// [MinTagFontSize, MaxTagFontSize].
func TagCloudSize(count int) int {
	size := MinTagFontSize + count*2
	if size < MinTagFontSize {
		return MinTagFontSize
	}
	if size > MaxTagFontSize {
		return MaxTagFontSize
	}
	return size
}

// FormatLucidity renders an optional average, "—" when absent.
func FormatLucidity(v *float64) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("%.1f", math.Round(*v*10)/10)
}

// Plural picks the singular or plural noun for n.
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

// MoodShare is one labelled slice of the mood pie.
type MoodShare struct {
	Mood    string
	Count   int
	Percent string
}

// MoodShares labels each slice of the distribution with its share of the
// total. Zero-count moods are dropped.
func (d *Detailed) MoodShares() []MoodShare {
	if d == nil {
		return nil
	}
	total := d.MoodTotal()
	out := make([]MoodShare, 0, len(d.MoodDistribution))
	for _, m := range d.MoodDistribution {
		if m.Count == 0 {
			continue
		}
		out = append(out, MoodShare{Mood: m.Mood, Count: m.Count, Percent: Percent(m.Count, total)})
	}
	return out
}
