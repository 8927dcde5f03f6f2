// Package timeutil parses the day and window arguments of the CLI.
package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// DayLayout is the YYYY-MM-DD form used for dream dates.
const DayLayout = "2006-01-02"

// StartOfDay truncates t to local midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseDay understands "today", "yesterday", YYYY-MM-DD, and M/D or M/D/YYYY
// relative to now. A M/D that would land in the future is taken from the
// previous year, since dreams are recorded after the fact.
func ParseDay(input string, now time.Time) (time.Time, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	today := StartOfDay(now)
	switch s {
	case "", "today":
		return today, nil
	case "yesterday", "last night":
		return today.AddDate(0, 0, -1), nil
	}
	if t, err := time.ParseInLocation(DayLayout, s, now.Location()); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("1/2/2006", s, now.Location()); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("1/2", s, now.Location()); err == nil {
		t = time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, now.Location())
		if t.After(today) {
			t = t.AddDate(-1, 0, 0)
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q, want YYYY-MM-DD, M/D, today or yesterday", input)
}

// FormatDay renders t as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

// ParseMonth reads YYYY-MM, defaulting to now's month when empty.
func ParseMonth(input string, now time.Time) (time.Time, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil
	}
	t, err := time.ParseInLocation("2006-01", s, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognised month %q, want YYYY-MM", input)
	}
	return t, nil
}
