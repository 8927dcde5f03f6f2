package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/dreamlog/pkg/app"
	"tableflip.dev/dreamlog/pkg/capture"
	"tableflip.dev/dreamlog/pkg/dream"
	"tableflip.dev/dreamlog/pkg/glyph"
	"tableflip.dev/dreamlog/pkg/journal"
	"tableflip.dev/dreamlog/pkg/stats"
)

// journalChrome is the number of lines above the list: search, chips,
// summary and a blank line.
const journalChrome = 4

type journalTab struct {
	engine *journal.Engine
	search textinput.Model
	snap   journal.Snapshot
	tags   []string

	cursor int
	offset int
	width  int
	height int

	detail     bool
	viewport   viewport.Model
	confirming int64
}

func newJournalTab(engine *journal.Engine) *journalTab {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search dreams"
	search.CharLimit = 200
	return &journalTab{
		engine:   engine,
		search:   search,
		snap:     journal.Snapshot{Loading: true},
		viewport: viewport.New(80, 10),
		width:    80,
		height:   20,
	}
}

func (j *journalTab) reset() {
	j.search.SetValue("")
	j.search.Blur()
	j.snap = journal.Snapshot{Loading: true}
	j.tags = nil
	j.cursor, j.offset = 0, 0
	j.detail = false
	j.confirming = 0
}

// sync rereads the engine after it reported a change.
func (j *journalTab) sync() {
	j.snap = j.engine.Snapshot()
	if j.cursor >= len(j.snap.Dreams) {
		j.cursor = max(len(j.snap.Dreams)-1, 0)
	}
	j.scroll()
	if j.detail {
		if _, ok := j.selected(); !ok {
			j.detail = false
		} else {
			j.renderDetail()
		}
	}
}

func (j *journalTab) setSize(width, height int) {
	j.width, j.height = max(width, 20), max(height, journalChrome+1)
	j.viewport.Width = j.width
	j.viewport.Height = j.height - 1
	j.search.Width = min(j.width-4, 48)
	j.scroll()
	if j.detail {
		j.renderDetail()
	}
}

func (j *journalTab) rows() int {
	return max(j.height-journalChrome, 1)
}

func (j *journalTab) scroll() {
	if j.cursor < j.offset {
		j.offset = j.cursor
	}
	if j.cursor >= j.offset+j.rows() {
		j.offset = j.cursor - j.rows() + 1
	}
}

func (j *journalTab) selected() (dream.Dream, bool) {
	if j.cursor < 0 || j.cursor >= len(j.snap.Dreams) {
		return dream.Dream{}, false
	}
	return j.snap.Dreams[j.cursor], true
}

func (j *journalTab) move(delta int, m *Model) {
	j.cursor += delta
	if j.cursor < 0 {
		j.cursor = 0
	}
	if n := len(j.snap.Dreams); j.cursor >= n {
		j.cursor = max(n-1, 0)
	}
	j.disarm(m)
	j.scroll()
}

func (j *journalTab) disarm(m *Model) {
	if j.confirming != 0 {
		m.svc.Guard.Reset()
		j.confirming = 0
	}
}

func (j *journalTab) updateSearch(msg tea.Msg) tea.Cmd {
	before := j.search.Value()
	var cmd tea.Cmd
	j.search, cmd = j.search.Update(msg)
	if after := j.search.Value(); after != before {
		j.engine.SetSearchInput(after)
	}
	return cmd
}

func (j *journalTab) handleKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	k := m.keys
	if j.search.Focused() {
		switch msg.Type {
		case tea.KeyEsc:
			j.search.Blur()
			return nil
		case tea.KeyEnter:
			j.search.Blur()
			engine, ctx := j.engine, m.ctx
			return func() tea.Msg {
				_ = engine.FlushSearch(ctx)
				return nil
			}
		}
		return j.updateSearch(msg)
	}

	if j.detail {
		switch {
		case key.Matches(msg, k.Back), key.Matches(msg, k.Open):
			j.detail = false
			return nil
		case key.Matches(msg, k.Up), key.Matches(msg, k.Down):
			var cmd tea.Cmd
			j.viewport, cmd = j.viewport.Update(msg)
			return cmd
		}
	}

	switch {
	case key.Matches(msg, k.Search):
		j.detail = false
		j.disarm(m)
		return j.search.Focus()
	case key.Matches(msg, k.Up):
		j.move(-1, m)
	case key.Matches(msg, k.Down):
		j.move(1, m)
	case key.Matches(msg, k.Open):
		if _, ok := j.selected(); ok {
			j.detail = true
			j.renderDetail()
		}
	case key.Matches(msg, k.Back):
		j.disarm(m)
	case key.Matches(msg, k.Moods):
		moods := dream.Moods()
		i := int(msg.Runes[0] - '1')
		if i < 0 || i >= len(moods) {
			return nil
		}
		engine, ctx, mood := j.engine, m.ctx, moods[i]
		return func() tea.Msg {
			_ = engine.ToggleMood(ctx, mood)
			return nil
		}
	case key.Matches(msg, k.Tag):
		return j.setTag(m, j.nextTag())
	case key.Matches(msg, k.ClearTag):
		return j.setTag(m, "")
	case key.Matches(msg, k.Edit):
		if d, ok := j.selected(); ok {
			return m.openCapture(capture.Edit(d))
		}
	case key.Matches(msg, k.Delete):
		return j.delete(m)
	case key.Matches(msg, k.Export):
		return m.export()
	}
	return nil
}

// nextTag cycles through the known tags, then back to no tag.
func (j *journalTab) nextTag() string {
	if len(j.tags) == 0 {
		return ""
	}
	current := j.snap.Filter.Tag
	for i, t := range j.tags {
		if t == current {
			if i+1 < len(j.tags) {
				return j.tags[i+1]
			}
			return ""
		}
	}
	return j.tags[0]
}

func (j *journalTab) setTag(m *Model, tag string) tea.Cmd {
	engine, ctx := j.engine, m.ctx
	return func() tea.Msg {
		_ = engine.SetTag(ctx, tag)
		return nil
	}
}

// delete arms the guard on the first press and deletes on the second.
func (j *journalTab) delete(m *Model) tea.Cmd {
	d, ok := j.selected()
	if !ok {
		return nil
	}
	target := app.DreamTarget(d.ID)
	if j.confirming == d.ID && m.svc.Guard.Armed(target) {
		j.confirming = 0
		m.setStatus("Deleting " + d.String() + "…")
		return m.deleteDream(d.ID)
	}
	m.svc.Guard.Arm(target)
	j.confirming = d.ID
	m.setStatus(fmt.Sprintf("Delete %q? Press d again to confirm, esc to keep it.", d.DisplayTitle()))
	return nil
}

func (j *journalTab) renderDetail() {
	d, ok := j.selected()
	if !ok {
		return
	}
	width := max(j.width-2, 20)
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(d.DisplayTitle()),
		fmt.Sprintf("#%d · %s", d.ID, d.DayKey()),
	}
	if d.Mood != nil {
		lines[1] += " · " + d.Mood.String()
	}
	if d.Lucidity != nil {
		lines = append(lines, fmt.Sprintf("Lucidity  %s %s", glyph.Rating(d.Lucidity), dream.RatingLabel(dream.LucidityLabels, *d.Lucidity)))
	}
	if d.SleepQuality != nil {
		lines = append(lines, fmt.Sprintf("Sleep     %s %s", glyph.Rating(d.SleepQuality), dream.RatingLabel(dream.SleepLabels, *d.SleepQuality)))
	}
	if len(d.Tags) > 0 {
		tags := make([]string, 0, len(d.Tags))
		for _, t := range d.Tags {
			tags = append(tags, glyph.Tag(t))
		}
		lines = append(lines, wordwrap.String(strings.Join(tags, "  "), width))
	}
	lines = append(lines, "", wordwrap.String(strings.TrimSpace(d.Body), width))
	j.viewport.SetContent(strings.Join(lines, "\n"))
	j.viewport.GotoTop()
}

func (j *journalTab) view(m *Model) string {
	st := m.styles.List
	lines := []string{j.search.View(), j.chips(m), j.summary(m), ""}

	if j.detail {
		return lines[0] + "\n" + j.viewport.View()
	}

	switch {
	case j.snap.Err != nil:
		lines = append(lines, m.styles.Footer.Error.Render(explain(j.snap.Err)))
	case j.snap.Loading && len(j.snap.Dreams) == 0:
		lines = append(lines, m.spinner.View()+" "+st.Empty.Render("Loading dreams…"))
	}
	switch j.snap.Empty() {
	case journal.EmptyNoDreams:
		lines = append(lines, st.Empty.Render("No dreams yet. Press n to record your first one."))
	case journal.EmptyNoMatches:
		lines = append(lines, st.Empty.Render("No dreams match these filters."))
	}

	end := min(j.offset+j.rows(), len(j.snap.Dreams))
	for i := j.offset; i < end; i++ {
		lines = append(lines, j.row(m, j.snap.Dreams[i], i == j.cursor))
	}
	return strings.Join(lines, "\n")
}

func (j *journalTab) row(m *Model, d dream.Dream, selected bool) string {
	st := m.styles.List
	title := truncate.StringWithTail(d.DisplayTitle(), 28, "…")
	meta := fmt.Sprintf("%s  %s", glyph.Mood(d.Mood), glyph.Rating(d.Lucidity))
	previewWidth := j.width - 2 - len(dream.DateLayout) - 2 - 28 - 2 - lipgloss.Width(meta) - 2
	preview := ""
	if previewWidth > 8 {
		preview = truncate.StringWithTail(strings.Join(strings.Fields(d.Body), " "), uint(previewWidth), "…")
	}

	if selected {
		text := fmt.Sprintf("› %s  %-28s  %s  %s", d.DayKey(), title, meta, preview)
		return st.Selected.Render(text)
	}
	return "  " + st.Meta.Render(d.DayKey()) + "  " +
		st.Item.Render(fmt.Sprintf("%-28s", title)) + "  " + meta + "  " + st.Meta.Render(preview)
}

// chips renders the mood filter chips and the tag filter.
func (j *journalTab) chips(m *Model) string {
	st := m.styles.List
	parts := make([]string, 0, len(dream.Moods())+1)
	for i, mood := range dream.Moods() {
		style := st.Chip
		if j.snap.Filter.Mood == mood {
			style = st.ChipActive
		}
		parts = append(parts, style.Render(fmt.Sprintf("%d %s", i+1, mood.String())))
	}
	if tag := j.snap.Filter.Tag; tag != "" {
		parts = append(parts, st.ChipActive.Render(glyph.Tag(tag)))
	}
	return truncate.String(lipgloss.JoinHorizontal(lipgloss.Top, parts...), uint(j.width))
}

func (j *journalTab) summary(m *Model) string {
	s := j.snap.Stats
	if s.Empty() {
		return ""
	}
	n := len(j.snap.Dreams)
	text := fmt.Sprintf("%d %s", n, stats.Plural(n, "dream", "dreams"))
	if j.snap.Filter.Active() {
		text += fmt.Sprintf(" of %d", s.Total)
	}
	text += " · avg lucidity " + stats.FormatLucidity(s.AvgLucidity)
	return m.styles.Panel.Muted.Render(text)
}
