package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/dreamlog/pkg/dream"
	"tableflip.dev/dreamlog/pkg/stats"
)

const statsBarWidth = 30

type statsTab struct {
	detailed *stats.Detailed
	loaded   bool
	err      error
	scroll   int
}

func newStatsTab() *statsTab {
	return &statsTab{}
}

func (s *statsTab) reset() {
	*s = statsTab{}
}

func (s *statsTab) load(d *stats.Detailed, err error) {
	s.loaded = true
	s.err = err
	if err == nil {
		s.detailed = d
	}
}

func (s *statsTab) handleKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		if s.scroll > 0 {
			s.scroll--
		}
	case key.Matches(msg, m.keys.Down):
		s.scroll++
	}
	return nil
}

func (s *statsTab) view(m *Model) string {
	st := m.styles
	switch {
	case s.err != nil:
		return st.Footer.Error.Render(explain(s.err))
	case !s.loaded:
		return m.spinner.View() + " " + st.List.Empty.Render("Loading insights…")
	case s.detailed.Empty():
		return st.List.Empty.Render("Record a few dreams to see insights.")
	}

	d := s.detailed
	streak := fmt.Sprintf("%d %s", d.CurrentStreak, stats.Plural(d.CurrentStreak, "day", "days"))
	recent := "—"
	if v, ok := d.RecentLucidity(); ok {
		recent = stats.FormatLucidity(&v)
	}
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card(m, "Dreams", fmt.Sprintf("%d", d.TotalDreams)),
		card(m, "Streak", streak),
		card(m, "Recent lucidity", recent),
	)

	sections := []string{cards}
	if len(d.DreamsByMonth) > 0 {
		rows := make([][2]string, 0, len(d.DreamsByMonth))
		peak := d.MaxMonthCount()
		for _, mc := range d.DreamsByMonth {
			rows = append(rows, [2]string{mc.Month, bar(m, mc.Count, peak) + fmt.Sprintf(" %d", mc.Count)})
		}
		sections = append(sections, chart(m, "Dreams over time", rows))
	}
	if len(d.DreamsByDay) > 0 {
		peak := 0
		for _, dc := range d.DreamsByDay {
			peak = max(peak, dc.Count)
		}
		rows := make([][2]string, 0, len(d.DreamsByDay))
		for _, dc := range d.DreamsByDay {
			rows = append(rows, [2]string{dc.Day, bar(m, dc.Count, peak) + fmt.Sprintf(" %d", dc.Count)})
		}
		sections = append(sections, chart(m, "By day of week", rows))
	}
	if shares := d.MoodShares(); len(shares) > 0 {
		rows := make([][2]string, 0, len(shares))
		for _, share := range shares {
			label := dream.Mood(share.Mood).String()
			rows = append(rows, [2]string{label, bar(m, share.Count, d.MoodTotal()) + " " + share.Percent})
		}
		sections = append(sections, chart(m, "Moods", rows))
	}
	if len(d.LucidityTrend) > 0 {
		rows := make([][2]string, 0, len(d.LucidityTrend))
		for _, p := range d.LucidityTrend {
			v := p.AvgLucidity
			rows = append(rows, [2]string{p.Month, bar(m, int(v*10), dream.MaxRating*10) + " " + stats.FormatLucidity(&v)})
		}
		sections = append(sections, chart(m, "Lucidity trend", rows))
	}
	if len(d.TopTags) > 0 {
		words := make([]string, 0, len(d.TopTags))
		for _, t := range d.TopTags {
			style := st.List.Tag
			if stats.TagCloudSize(t.Count) >= (stats.MinTagFontSize+stats.MaxTagFontSize)/2 {
				style = style.Bold(true)
			}
			words = append(words, style.Render(fmt.Sprintf("#%s(%d)", t.Tag, t.Count)))
		}
		sections = append(sections, st.Panel.Title.Render("Top tags")+"\n"+strings.Join(words, "  "))
	}

	lines := strings.Split(strings.Join(sections, "\n\n"), "\n")
	if s.scroll > len(lines)-1 {
		s.scroll = max(len(lines)-1, 0)
	}
	return strings.Join(lines[s.scroll:], "\n")
}

func card(m *Model, label, value string) string {
	st := m.styles.Panel
	return st.Frame.Width(20).MarginRight(1).Render(st.Muted.Render(label) + "\n" + st.Title.Render(value))
}

func chart(m *Model, title string, rows [][2]string) string {
	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r[0]))
	}
	lines := []string{m.styles.Panel.Title.Render(title)}
	for _, r := range rows {
		pad := strings.Repeat(" ", width-lipgloss.Width(r[0]))
		lines = append(lines, m.styles.Panel.Muted.Render(r[0]+pad)+"  "+r[1])
	}
	return strings.Join(lines, "\n")
}

// bar scales n against total; any non-zero count gets at least one cell.
func bar(m *Model, n, total int) string {
	if n <= 0 || total <= 0 {
		return ""
	}
	cells := n * statsBarWidth / total
	if cells < 1 {
		cells = 1
	}
	if cells > statsBarWidth {
		cells = statsBarWidth
	}
	return m.styles.Bar.Render(strings.Repeat("█", cells))
}
