// Package tui is the Bubble Tea terminal UI: a sign-in screen, the Journal,
// Calendar, Stats and Settings tabs, and the capture overlay.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/dreamlog/pkg/app"
	"tableflip.dev/dreamlog/pkg/capture"
	"tableflip.dev/dreamlog/pkg/glyph"
	"tableflip.dev/dreamlog/pkg/journal"
	"tableflip.dev/dreamlog/pkg/session"
	"tableflip.dev/dreamlog/pkg/tui/theme"
)

type tab int

const (
	tabJournal tab = iota
	tabCalendar
	tabStats
	tabSettings
	tabCount
)

func (t tab) String() string {
	return [...]string{"Journal", "Calendar", "Stats", "Settings"}[t]
}

// Option configures a Model.
type Option func(*Model)

// WithClock overrides time.Now for dates in forms and the calendar.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// WithContext bounds every request the UI issues.
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// WithDebounce overrides the search debounce delay.
func WithDebounce(d time.Duration) Option {
	return func(m *Model) { m.debounce = d }
}

// Model is the root Bubble Tea model.
type Model struct {
	svc      *app.Service
	ctx      context.Context
	now      func() time.Time
	debounce time.Duration
	theme    *theme.Theme
	styles   theme.Styles
	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	send     *sender

	width  int
	height int

	signedIn bool
	tab      tab
	status   string
	err      error

	signin   *signIn
	journal  *journalTab
	calendar *calendarTab
	stats    *statsTab
	settings *settingsTab
	capture  *captureOverlay

	unsubscribe func()
}

// New builds the root model over svc. The model subscribes to session
// events and registers its theme as a palette sink; Close undoes both.
func New(svc *app.Service, opts ...Option) *Model {
	m := &Model{
		svc:      svc,
		ctx:      context.Background(),
		now:      time.Now,
		debounce: journal.DefaultDebounce,
		theme:    theme.New(),
		keys:     defaultKeys(),
		help:     help.New(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		send:     &sender{},
	}
	for _, opt := range opts {
		opt(m)
	}

	svc.Theme.AddSink(m.theme)
	m.styles = m.theme.Styles()

	m.signin = newSignIn()
	m.journal = newJournalTab(m.newEngine())
	m.calendar = newCalendarTab(m.now)
	m.stats = newStatsTab()
	m.settings = newSettingsTab()
	m.unsubscribe = svc.Session.Subscribe(func(ev session.Event) {
		m.send.Send(sessionMsg{event: ev})
	})
	m.signedIn = svc.Session.Authenticated()
	return m
}

// newEngine binds a list engine whose changes come back as messages.
func (m *Model) newEngine() *journal.Engine {
	return m.svc.Journal(
		journal.WithContext(m.ctx),
		journal.WithDebounce(m.debounce),
		journal.WithOnChange(func(journal.Snapshot) { m.send.Send(journalChangedMsg{}) }),
	)
}

// Run launches the program until the user quits or ctx is cancelled.
// Storage changes made by other processes are applied while it runs.
func Run(ctx context.Context, svc *app.Service) error {
	m := New(svc, WithContext(ctx))
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	m.send.Attach(p.Send)

	if events, err := svc.Watch(ctx); err != nil {
		svc.Log.Debug("storage watch unavailable", "err", err)
	} else {
		go func() {
			for ev := range events {
				m.send.Send(storageMsg{event: ev})
			}
		}()
	}

	_, err := p.Run()
	return err
}

// Close stops the journal debounce timer and drops the subscriptions.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.journal.engine.Close()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.signedIn {
		return m.enter()
	}
	return m.signin.focus()
}

// enter switches to the main screen and loads every tab.
func (m *Model) enter() tea.Cmd {
	m.signedIn = true
	m.signin.reset()
	m.settings.reset()
	return tea.Batch(
		m.spinner.Tick,
		m.refreshJournal(),
		m.loadTags(),
		m.loadCalendar(),
		m.loadStats(),
	)
}

// toSignIn drops back to the sign-in screen, discarding open forms.
func (m *Model) toSignIn(status string) tea.Cmd {
	if status != "" {
		m.status = status
	}
	if !m.signedIn {
		return nil
	}
	m.signedIn = false
	m.capture = nil
	m.tab = tabJournal
	m.journal.engine.Close()
	m.journal.engine = m.newEngine()
	m.journal.reset()
	m.calendar.reset()
	m.stats.reset()
	m.settings.reset()
	m.svc.Guard.Reset()
	return m.signin.focus()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = v.Width, v.Height
		m.help.Width = v.Width
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(v)
		return m, cmd

	case sessionMsg:
		switch {
		case v.event.Kind == session.Unauthorized:
			return m, m.toSignIn("Your session expired. Sign in again.")
		case v.event.State == session.Authenticated && !m.signedIn:
			return m, m.enter()
		case v.event.State == session.Anonymous && m.signedIn:
			return m, m.toSignIn("Signed out.")
		}
		return m, nil

	case storageMsg:
		m.svc.Apply(v.event)
		m.restyle()
		if m.svc.Session.Authenticated() && !m.signedIn {
			return m, m.enter()
		}
		if !m.svc.Session.Authenticated() && m.signedIn {
			return m, m.toSignIn("Signed out in another window.")
		}
		return m, nil

	case authDoneMsg:
		m.signin.submitting = false
		if v.err != nil {
			m.signin.fail(v.err)
			return m, nil
		}
		m.status = "Welcome, " + m.userName() + "."
		if !m.signedIn {
			return m, m.enter()
		}
		return m, nil

	case accountDeletedMsg:
		if v.err != nil {
			return m, m.fail(v.err)
		}
		// The session publishes its own sign-out first; only the status
		// is left to set.
		m.toSignIn("")
		m.setStatus("Account deleted.")
		return m, m.signin.focus()

	case tea.KeyMsg:
		return m, m.handleKey(v)
	}

	if !m.signedIn {
		return m, m.signin.update(msg)
	}
	return m, m.route(msg)
}

// route hands non-key messages to the part of the UI that owns them.
func (m *Model) route(msg tea.Msg) tea.Cmd {
	switch v := msg.(type) {
	case journalChangedMsg:
		m.journal.sync()
		return nil
	case tagsLoadedMsg:
		if v.err == nil {
			m.journal.tags = v.tags
		}
		return nil
	case calendarLoadedMsg:
		m.calendar.load(v.index, v.err)
		return nil
	case statsLoadedMsg:
		m.stats.load(v.detailed, v.err)
		return nil
	case savedMsg:
		return m.saved(v)
	case deletedMsg:
		return m.deleted(v)
	case exportedMsg:
		if v.err != nil {
			return m.fail(v.err)
		}
		m.setStatus("Backup written to " + v.path)
		return nil
	case importedMsg:
		return m.imported(v)
	case settingsDoneMsg:
		return m.settingsDone(v)
	}

	switch {
	case m.capture != nil:
		return m.capture.update(msg)
	case m.journal.search.Focused():
		return m.journal.updateSearch(msg)
	case m.settings.editing():
		return m.settings.updateInputs(msg)
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	if !m.signedIn {
		return m.signin.handleKey(m, msg)
	}
	if m.capture != nil {
		return m.capture.handleKey(m, msg)
	}
	if m.typing() {
		switch m.tab {
		case tabJournal:
			return m.journal.handleKey(m, msg)
		case tabSettings:
			return m.settings.handleKey(m, msg)
		}
	}

	m.err = nil
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.NextTab):
		return m.switchTab((m.tab + 1) % tabCount)
	case key.Matches(msg, m.keys.PrevTab):
		return m.switchTab((m.tab + tabCount - 1) % tabCount)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(msg, m.keys.New):
		if m.tab == tabCalendar {
			return m.openCapture(capture.NewFor(m.calendar.recordFor()))
		}
		return m.openCapture(capture.New(m.now()))
	case key.Matches(msg, m.keys.Refresh):
		m.setStatus("Refreshing…")
		return tea.Batch(m.spinner.Tick, m.refreshJournal(), m.loadTags(), m.loadCalendar(), m.loadStats())
	}

	switch m.tab {
	case tabJournal:
		return m.journal.handleKey(m, msg)
	case tabCalendar:
		return m.calendar.handleKey(m, msg)
	case tabStats:
		return m.stats.handleKey(m, msg)
	case tabSettings:
		return m.settings.handleKey(m, msg)
	}
	return nil
}

// typing reports whether a text input on the active tab holds focus, so
// printable keys belong to it rather than to shortcuts.
func (m *Model) typing() bool {
	switch m.tab {
	case tabJournal:
		return m.journal.search.Focused()
	case tabSettings:
		return m.settings.editing()
	}
	return false
}

// switchTab refetches the calendar and stats on every activation so dreams
// recorded elsewhere show up.
func (m *Model) switchTab(t tab) tea.Cmd {
	if m.tab == t {
		return nil
	}
	m.svc.Guard.Reset()
	m.journal.confirming = 0
	m.settings.confirming = false
	m.tab = t
	switch t {
	case tabCalendar:
		return m.fetchCalendar()
	case tabStats:
		return m.fetchStats()
	}
	return nil
}

func (m *Model) openCapture(f *capture.Form) tea.Cmd {
	m.svc.Guard.Reset()
	m.capture = newCaptureOverlay(f, m.overlayWidth())
	return m.capture.focusCmd()
}

func (m *Model) busy() bool {
	return m.journal.snap.Loading || !m.calendar.loaded || !m.stats.loaded ||
		(m.capture != nil && m.capture.form.Saving()) || m.signin.submitting
}

func (m *Model) restyle() {
	m.styles = m.theme.Styles()
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.err = nil
}

func (m *Model) fail(err error) tea.Cmd {
	m.err = err
	return nil
}

func (m *Model) userName() string {
	if u := m.svc.Session.User(); u != nil {
		if u.Username != "" {
			return u.Username
		}
		return u.Email
	}
	return ""
}

func (m *Model) resize() {
	if m.capture != nil {
		m.capture.setWidth(m.overlayWidth())
	}
	m.journal.setSize(m.width, m.bodyHeight())
}

func (m *Model) overlayWidth() int {
	w := m.width - 8
	if w > 72 {
		w = 72
	}
	if w < 40 {
		w = 40
	}
	return w
}

// bodyHeight is what is left between the tab strip and the footer.
func (m *Model) bodyHeight() int {
	h := m.height - 4
	if h < 5 {
		h = 5
	}
	return h
}

// View implements tea.Model.
func (m *Model) View() string {
	m.restyle()
	if !m.signedIn {
		return m.place(m.signin.view(m))
	}

	body := ""
	switch m.tab {
	case tabJournal:
		body = m.journal.view(m)
	case tabCalendar:
		body = m.calendar.view(m)
	case tabStats:
		body = m.stats.view(m)
	case tabSettings:
		body = m.settings.view(m)
	}
	if m.capture != nil {
		body = lipgloss.Place(max(m.width, 1), m.bodyHeight(), lipgloss.Center, lipgloss.Center, m.capture.view(m))
	}

	body = lipgloss.NewStyle().Height(m.bodyHeight()).MaxHeight(m.bodyHeight()).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, m.header(), "", body, m.footer())
}

func (m *Model) place(content string) string {
	if m.width <= 0 || m.height <= 0 {
		return content + "\n" + m.footer()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, content),
		m.footer())
}

func (m *Model) header() string {
	s := m.styles.Tabs
	parts := []string{s.Brand.Render(glyph.Day + " dreamlog")}
	for t := tab(0); t < tabCount; t++ {
		style := s.Inactive
		if t == m.tab {
			style = s.Active
		}
		parts = append(parts, style.Render(t.String()))
	}
	left := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	right := s.Inactive.Render(m.userName())
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m *Model) footer() string {
	s := m.styles.Footer
	line := s.Status.Render(m.status)
	if m.err != nil {
		line = s.Error.Render(explain(m.err))
	}
	if m.busy() && m.signedIn {
		line = m.spinner.View() + " " + line
	}
	return line + "\n" + m.help.View(m.helpFor())
}
