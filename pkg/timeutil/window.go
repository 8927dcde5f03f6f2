package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultWindow is used when no window is given.
const DefaultWindow = "1w"

var (
	windowPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	unitMap       = map[string]string{
		"d": "d", "day": "d", "days": "d",
		"w": "w", "wk": "w", "wks": "w", "week": "w", "weeks": "w",
		"m": "m", "mo": "m", "mon": "m", "month": "m", "months": "m",
		"y": "y", "yr": "y", "yrs": "y", "year": "y", "years": "y",
	}
)

// Window is a calendar span counted back from a day, e.g. "2w" or "1m3d".
// Months and years are calendar months and years, not fixed durations.
type Window struct {
	Years, Months, Days int
}

// ParseWindow parses strings like "1w", "10d" or "1y2m". An empty input is
// DefaultWindow.
func ParseWindow(input string) (Window, error) {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	if trimmed == "" {
		trimmed = DefaultWindow
	}

	var w Window
	remaining := trimmed
	for len(remaining) > 0 {
		matches := windowPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return Window{}, fmt.Errorf("invalid window segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.Atoi(matches[1])
		if err != nil {
			return Window{}, fmt.Errorf("invalid window value %q: %w", matches[1], err)
		}
		unit, ok := unitMap[matches[2]]
		if !ok {
			return Window{}, fmt.Errorf("unsupported window unit %q", matches[2])
		}
		switch unit {
		case "d":
			w.Days += value
		case "w":
			w.Days += 7 * value
		case "m":
			w.Months += value
		case "y":
			w.Years += value
		}
		remaining = remaining[len(matches[0]):]
	}

	if w.Years == 0 && w.Months == 0 && w.Days == 0 {
		return Window{}, fmt.Errorf("window must be greater than zero")
	}
	return w, nil
}

// Since is the first day of the window ending on now's day. A one week
// window ending Sunday starts the Monday before.
func (w Window) Since(now time.Time) time.Time {
	start := StartOfDay(now).AddDate(-w.Years, -w.Months, -w.Days)
	return start.AddDate(0, 0, 1)
}

// String renders the canonical form, e.g. "1y2m10d". Whole weeks are shown
// as weeks when no other day count remains.
func (w Window) String() string {
	var b strings.Builder
	if w.Years > 0 {
		fmt.Fprintf(&b, "%dy", w.Years)
	}
	if w.Months > 0 {
		fmt.Fprintf(&b, "%dm", w.Months)
	}
	if w.Days > 0 {
		if w.Days%7 == 0 {
			fmt.Fprintf(&b, "%dw", w.Days/7)
		} else {
			fmt.Fprintf(&b, "%dd", w.Days)
		}
	}
	if b.Len() == 0 {
		return "0d"
	}
	return b.String()
}
