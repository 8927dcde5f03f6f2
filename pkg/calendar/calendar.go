// Package calendar buckets dreams by day and lays days out as month and
// year grids.
package calendar

import (
	"sort"
	"time"

	"tableflip.dev/dreamlog/pkg/dream"
)

// FetchLimit is the list size requested when the calendar is opened. The
// calendar wants every dream, not a page.
const FetchLimit = 10000

// Day holds the dreams recorded on one date.
type Day struct {
	Date        string        `json:"date" yaml:"date"`
	Dreams      []dream.Dream `json:"dreams" yaml:"dreams"`
	MaxLucidity int           `json:"max_lucidity" yaml:"max_lucidity"`
}

// Count is the number of dreams on the day; nil-safe.
func (d *Day) Count() int {
	if d == nil {
		return 0
	}
	return len(d.Dreams)
}

// Index maps YYYY-MM-DD to its Day.
type Index map[string]*Day

// Build buckets dreams by dream date, falling back to the creation date.
// Dreams with neither are left out.
func Build(dreams []dream.Dream) Index {
	ix := make(Index)
	for _, d := range dreams {
		key := d.DayKey()
		if key == "" {
			continue
		}
		day := ix[key]
		if day == nil {
			day = &Day{Date: key}
			ix[key] = day
		}
		day.Dreams = append(day.Dreams, d)
		if l := d.LucidityValue(); l > day.MaxLucidity {
			day.MaxLucidity = l
		}
	}
	return ix
}

// Get returns the day for key, or nil.
func (ix Index) Get(key string) *Day {
	return ix[key]
}

// At returns the day containing t.
func (ix Index) At(t time.Time) *Day {
	return ix[t.Format(dream.DateLayout)]
}

// DaysRecorded is the number of distinct days with at least one dream.
func (ix Index) DaysRecorded() int {
	return len(ix)
}

// Dates returns the recorded dates in ascending order.
func (ix Index) Dates() []string {
	out := make([]string, 0, len(ix))
	for k := range ix {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// InMonth counts dreams recorded during month.
func (ix Index) InMonth(month time.Time) int {
	prefix := month.Format("2006-01")
	n := 0
	for k, d := range ix {
		if len(k) >= 7 && k[:7] == prefix {
			n += len(d.Dreams)
		}
	}
	return n
}

// Intensity is the dot opacity for a day: zero when empty, otherwise scaled
// by the highest lucidity, or a flat 0.6 when no dream rated lucidity.
func Intensity(d *Day) float64 {
	if d.Count() == 0 {
		return 0
	}
	if d.MaxLucidity <= 0 {
		return 0.6
	}
	v := 0.4 + float64(d.MaxLucidity)/float64(dream.MaxRating)*0.6
	if v > 1 {
		v = 1
	}
	return v
}

// HeatLevel buckets Intensity into 0..4 for heatmap glyphs.
func HeatLevel(d *Day) int {
	v := Intensity(d)
	switch {
	case v == 0:
		return 0
	case v < 0.55:
		return 1
	case v < 0.7:
		return 2
	case v < 0.85:
		return 3
	default:
		return 4
	}
}
