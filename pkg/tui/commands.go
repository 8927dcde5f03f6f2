package tui

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/dreamlog/pkg/account"
	"tableflip.dev/dreamlog/pkg/api"
	"tableflip.dev/dreamlog/pkg/backup"
	"tableflip.dev/dreamlog/pkg/capture"
	"tableflip.dev/dreamlog/pkg/confirm"
	"tableflip.dev/dreamlog/pkg/session"
)

func (m *Model) refreshJournal() tea.Cmd {
	engine, ctx := m.journal.engine, m.ctx
	return func() tea.Msg {
		// Failures land in the engine snapshot.
		_ = engine.Refresh(ctx)
		return nil
	}
}

func (m *Model) loadTags() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		tags, err := svc.Tags(ctx)
		return tagsLoadedMsg{tags: tags, err: err}
	}
}

func (m *Model) loadCalendar() tea.Cmd {
	m.calendar.loaded = false
	return m.fetchCalendar()
}

// fetchCalendar refetches without clearing what the tab already shows.
func (m *Model) fetchCalendar() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		ix, err := svc.Calendar(ctx)
		return calendarLoadedMsg{index: ix, err: err}
	}
}

func (m *Model) loadStats() tea.Cmd {
	m.stats.loaded = false
	return m.fetchStats()
}

func (m *Model) fetchStats() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		d, err := svc.DetailedStats(ctx)
		return statsLoadedMsg{detailed: d, err: err}
	}
}

// reload refreshes everything a dream change can affect.
func (m *Model) reload() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.refreshJournal(), m.loadTags(), m.loadCalendar(), m.loadStats())
}

func (m *Model) save(f *capture.Form) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		d, err := svc.Save(ctx, f)
		return savedMsg{dream: d, editing: f.Editing(), err: err}
	}
}

func (m *Model) saved(msg savedMsg) tea.Cmd {
	if msg.err != nil {
		if m.capture != nil {
			m.capture.fail(msg.err)
			return nil
		}
		return m.fail(msg.err)
	}
	m.capture = nil
	verb := "Recorded "
	if msg.editing {
		verb = "Updated "
	}
	m.setStatus(verb + msg.dream.String())
	m.calendar.focusDate(msg.dream.DayKey())
	return m.reload()
}

func (m *Model) deleteDream(id int64) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		return deletedMsg{id: id, err: svc.DeleteDream(ctx, id)}
	}
}

func (m *Model) deleted(msg deletedMsg) tea.Cmd {
	if msg.err != nil {
		return m.fail(msg.err)
	}
	m.journal.detail = false
	m.setStatus(fmt.Sprintf("Deleted dream #%d", msg.id))
	return m.reload()
}

func (m *Model) export() tea.Cmd {
	m.setStatus("Exporting…")
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		path, err := svc.Export(ctx, ".")
		return exportedMsg{path: path, err: err}
	}
}

func (m *Model) importFile(path string) tea.Cmd {
	m.setStatus("Importing " + path + "…")
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		res, err := svc.Import(ctx, path)
		return importedMsg{result: res, err: err}
	}
}

func (m *Model) imported(msg importedMsg) tea.Cmd {
	if msg.err != nil {
		return m.fail(msg.err)
	}
	m.setStatus(backup.Summary(msg.result))
	return m.reload()
}

// explain turns an error into a single status line.
func explain(err error) string {
	var fields account.FieldErrors
	var reqErr *api.RequestError
	switch {
	case errors.As(err, &fields):
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		msgs := make([]string, 0, len(keys))
		for _, k := range keys {
			msgs = append(msgs, fields[k])
		}
		return strings.Join(msgs, "; ")
	case errors.Is(err, session.ErrNoSession):
		return "Not signed in."
	case errors.Is(err, confirm.ErrNotArmed):
		return "Confirm the action first."
	case errors.Is(err, capture.ErrSaving):
		return "Still saving…"
	case errors.As(err, &reqErr) && reqErr.Status == 0:
		return "Cannot reach the server: " + reqErr.Message
	}
	return err.Error()
}
