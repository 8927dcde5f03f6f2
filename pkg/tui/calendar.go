package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/dreamlog/pkg/calendar"
	"tableflip.dev/dreamlog/pkg/dream"
	"tableflip.dev/dreamlog/pkg/glyph"
	"tableflip.dev/dreamlog/pkg/stats"
	calview "tableflip.dev/dreamlog/pkg/tui/components/calendar"
	"tableflip.dev/dreamlog/pkg/tui/components/panel"
)

type calendarTab struct {
	window    *calendar.Window
	index     calendar.Index
	loaded    bool
	err       error
	cursor    time.Time
	selection calendar.Selection
	year      bool
	weekStart time.Weekday
}

func newCalendarTab(now func() time.Time) *calendarTab {
	c := &calendarTab{window: calendar.NewWindow(now), weekStart: time.Sunday}
	c.cursor = startOfDay(c.window.Now())
	return c
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (c *calendarTab) reset() {
	c.index = nil
	c.loaded = false
	c.err = nil
	c.selection.Close()
	c.window.Today()
	c.cursor = startOfDay(c.window.Now())
}

func (c *calendarTab) load(ix calendar.Index, err error) {
	c.loaded = true
	c.err = err
	if err != nil {
		return
	}
	c.index = ix
	if c.selection.Open() {
		c.selection.Select(ix, c.selection.Date)
	}
}

// recordFor is the date a new dream captured from this tab belongs to.
func (c *calendarTab) recordFor() string {
	if c.selection.Open() {
		return c.selection.RecordFor()
	}
	return c.cursor.Format(dream.DateLayout)
}

// focusDate moves the cursor and the window to a YYYY-MM-DD day.
func (c *calendarTab) focusDate(date string) {
	t, err := time.ParseInLocation(dream.DateLayout, date, c.cursor.Location())
	if err != nil {
		return
	}
	c.moveTo(t)
}

func (c *calendarTab) moveTo(t time.Time) {
	c.cursor = t
	c.window.Set(t)
	if c.selection.Open() {
		c.selection.Select(c.index, t.Format(dream.DateLayout))
	}
}

func (c *calendarTab) handleKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	k := m.keys
	switch {
	case key.Matches(msg, k.Left):
		c.moveTo(c.cursor.AddDate(0, 0, -1))
	case key.Matches(msg, k.Right):
		c.moveTo(c.cursor.AddDate(0, 0, 1))
	case key.Matches(msg, k.Up):
		c.moveTo(c.cursor.AddDate(0, 0, -7))
	case key.Matches(msg, k.Down):
		c.moveTo(c.cursor.AddDate(0, 0, 7))
	case key.Matches(msg, k.PrevMonth):
		c.window.Prev()
		c.cursor = clampInto(c.cursor, c.window.Month)
	case key.Matches(msg, k.NextMonth):
		c.window.Next()
		c.cursor = clampInto(c.cursor, c.window.Month)
	case key.Matches(msg, k.PrevYear):
		c.window.PrevYear()
		c.cursor = clampInto(c.cursor, c.window.Month)
	case key.Matches(msg, k.NextYear):
		c.window.NextYear()
		c.cursor = clampInto(c.cursor, c.window.Month)
	case key.Matches(msg, k.Today):
		c.moveTo(startOfDay(c.window.Now()))
	case key.Matches(msg, k.Year):
		c.year = !c.year
	case key.Matches(msg, k.WeekStart):
		if c.weekStart == time.Sunday {
			c.weekStart = time.Monday
		} else {
			c.weekStart = time.Sunday
		}
	case key.Matches(msg, k.Open):
		c.selection.Select(c.index, c.cursor.Format(dream.DateLayout))
	case key.Matches(msg, k.Back):
		c.selection.Close()
	}
	return nil
}

// clampInto keeps the cursor's day of month inside month.
func clampInto(cursor, month time.Time) time.Time {
	day := cursor.Day()
	if last := month.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	return time.Date(month.Year(), month.Month(), day, 0, 0, 0, 0, cursor.Location())
}

func (c *calendarTab) view(m *Model) string {
	st := m.styles
	if c.err != nil {
		return st.Footer.Error.Render(explain(c.err))
	}
	if !c.loaded {
		return m.spinner.View() + " " + st.List.Empty.Render("Loading calendar…")
	}

	today := c.window.Now()
	opts := calview.Options{
		Styles:     st.Calendar,
		WeekStart:  c.weekStart,
		Selected:   c.cursor.Format(dream.DateLayout),
		ShowHeader: true,
	}

	var grid string
	if c.year {
		year := c.window.Month.Year()
		grid = lipgloss.JoinVertical(lipgloss.Left,
			st.Panel.Title.Render(fmt.Sprintf("%d", year)),
			calview.Heatmap(c.index.YearGrid(year, c.weekStart, c.cursor.Location(), today), opts),
			calview.Legend(st.Calendar),
			st.Panel.Muted.Render(fmt.Sprintf("%d %s recorded", c.yearCount(year), stats.Plural(c.yearCount(year), "day", "days"))),
		)
	} else {
		n := c.index.InMonth(c.window.Month)
		title := lipgloss.PlaceHorizontal(calview.Width(), lipgloss.Center, c.window.Title())
		grid = lipgloss.JoinVertical(lipgloss.Left,
			st.Panel.Title.Render(title),
			calview.Render(c.index.MonthGrid(c.window.Month, c.weekStart, today), opts),
			"",
			st.Panel.Muted.Render(fmt.Sprintf("%d %s this month", n, stats.Plural(n, "dream", "dreams"))),
		)
	}

	day := c.dayPanel(m)
	if day == "" {
		return grid
	}
	if m.width > 0 && m.width < lipgloss.Width(grid)+40 {
		return lipgloss.JoinVertical(lipgloss.Left, grid, "", day)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, grid, "    ", day)
}

func (c *calendarTab) yearCount(year int) int {
	prefix := fmt.Sprintf("%04d-", year)
	n := 0
	for _, date := range c.index.Dates() {
		if strings.HasPrefix(date, prefix) {
			n++
		}
	}
	return n
}

// dayPanel lists the dreams of the selected day.
func (c *calendarTab) dayPanel(m *Model) string {
	if !c.selection.Open() {
		return ""
	}
	p := panel.New(m.styles.Panel)
	p.SetWidth(40)

	dreams := c.selection.Dreams()
	lines := make([]string, 0, len(dreams)+2)
	if len(dreams) == 0 {
		lines = append(lines, m.styles.Panel.Muted.Render("No dreams recorded."))
	}
	for _, d := range dreams {
		line := fmt.Sprintf("%s %s %s", glyph.Mood(d.Mood), truncate.StringWithTail(d.DisplayTitle(), 24, "…"), glyph.Rating(d.Lucidity))
		lines = append(lines, line)
	}
	lines = append(lines, "", m.styles.Panel.Muted.Render("n: record a dream for this day"))

	title := glyph.Day + " " + c.selection.Date
	if t, err := time.Parse(dream.DateLayout, c.selection.Date); err == nil {
		title = glyph.Day + " " + t.Format("Mon, Jan 2 2006")
	}
	p.SetContent(title, lines)
	view, _ := p.View()
	return view
}
