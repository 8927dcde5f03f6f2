package calendar

import (
	"time"

	"tableflip.dev/dreamlog/pkg/dream"
)

// Window is the month being viewed. Moving it never touches the Index.
type Window struct {
	Month time.Time
	now   func() time.Time
}

// NewWindow opens on the current month. A nil now uses time.Now.
func NewWindow(now func() time.Time) *Window {
	if now == nil {
		now = time.Now
	}
	w := &Window{now: now}
	w.Today()
	return w
}

func monthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// Set jumps to the month containing t.
func (w *Window) Set(t time.Time) {
	w.Month = monthOf(t)
}

func (w *Window) Prev()     { w.Month = w.Month.AddDate(0, -1, 0) }
func (w *Window) Next()     { w.Month = w.Month.AddDate(0, 1, 0) }
func (w *Window) PrevYear() { w.Month = w.Month.AddDate(-1, 0, 0) }
func (w *Window) NextYear() { w.Month = w.Month.AddDate(1, 0, 0) }
func (w *Window) Today()    { w.Month = monthOf(w.now()) }

// Now returns the window's clock reading.
func (w *Window) Now() time.Time { return w.now() }

// Title reads like "March 2024".
func (w *Window) Title() string {
	return w.Month.Format("January 2006")
}

// Selection is the day panel: the chosen date and its dreams.
type Selection struct {
	Date string
	Day  *Day
}

// Select opens the panel on date. Days without dreams open an empty panel
// that still offers to record one.
func (s *Selection) Select(ix Index, date string) {
	s.Date = date
	s.Day = ix.Get(date)
}

// Open reports whether a day is selected.
func (s *Selection) Open() bool {
	return s.Date != ""
}

func (s *Selection) Close() {
	s.Date = ""
	s.Day = nil
}

// Dreams on the selected day.
func (s *Selection) Dreams() []dream.Dream {
	if s.Day == nil {
		return nil
	}
	return s.Day.Dreams
}

// RecordFor is the date to seed a new capture form with.
func (s *Selection) RecordFor() string {
	return s.Date
}
