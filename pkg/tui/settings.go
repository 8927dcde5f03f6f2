package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/dreamlog/pkg/account"
	"tableflip.dev/dreamlog/pkg/app"
	palette "tableflip.dev/dreamlog/pkg/theme"
)

type settingsMode int

const (
	settingsIdle settingsMode = iota
	settingsUsername
	settingsPassword
	settingsImport
)

type settingsField struct {
	label  string
	key    string
	secret bool
}

var settingsFields = map[settingsMode][]settingsField{
	settingsUsername: {{label: "New username", key: "username"}},
	settingsPassword: {
		{label: "Current password", key: "current_password", secret: true},
		{label: "New password", key: "new_password", secret: true},
		{label: "Confirm new password", key: "confirm_password", secret: true},
	},
	settingsImport: {{label: "Backup file (.json)", key: "path"}},
}

type settingsTab struct {
	mode       settingsMode
	inputs     []textinput.Model
	focused    int
	errs       account.FieldErrors
	confirming bool
}

func newSettingsTab() *settingsTab {
	return &settingsTab{}
}

func (s *settingsTab) reset() {
	*s = settingsTab{}
}

func (s *settingsTab) editing() bool {
	return s.mode != settingsIdle
}

// begin opens the inputs for mode, prefilled with value when given.
func (s *settingsTab) begin(mode settingsMode, value string) tea.Cmd {
	s.mode = mode
	s.errs = nil
	s.focused = 0
	s.inputs = nil
	for _, f := range settingsFields[mode] {
		in := textinput.New()
		in.Prompt = "› "
		in.CharLimit = 256
		in.Width = 40
		if f.secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		s.inputs = append(s.inputs, in)
	}
	if value != "" {
		s.inputs[0].SetValue(value)
		s.inputs[0].CursorEnd()
	}
	return s.inputs[0].Focus()
}

func (s *settingsTab) cancel() {
	s.mode = settingsIdle
	s.inputs = nil
	s.errs = nil
}

func (s *settingsTab) focus(i int) tea.Cmd {
	s.focused = (i + len(s.inputs)) % len(s.inputs)
	for n := range s.inputs {
		s.inputs[n].Blur()
	}
	return s.inputs[s.focused].Focus()
}

func (s *settingsTab) updateInputs(msg tea.Msg) tea.Cmd {
	if !s.editing() {
		return nil
	}
	var cmd tea.Cmd
	s.inputs[s.focused], cmd = s.inputs[s.focused].Update(msg)
	return cmd
}

func (s *settingsTab) disarm(m *Model) {
	if s.confirming {
		m.svc.Guard.Reset()
		s.confirming = false
	}
}

func (s *settingsTab) handleKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	k := m.keys
	if s.editing() {
		switch {
		case key.Matches(msg, k.Cancel):
			s.cancel()
			return nil
		case key.Matches(msg, k.NextField):
			return s.focus(s.focused + 1)
		case key.Matches(msg, k.PrevField):
			return s.focus(s.focused - 1)
		case msg.Type == tea.KeyEnter:
			if s.focused < len(s.inputs)-1 {
				return s.focus(s.focused + 1)
			}
			return s.submit(m)
		}
		return s.updateInputs(msg)
	}

	switch {
	case key.Matches(msg, k.Theme):
		s.disarm(m)
		step := 1
		if msg.String() == "left" || msg.String() == "h" {
			step = -1
		}
		return s.cycleTheme(m, step)
	case key.Matches(msg, k.Username):
		s.disarm(m)
		name := ""
		if u := m.svc.Session.User(); u != nil {
			name = u.Username
		}
		return s.begin(settingsUsername, name)
	case key.Matches(msg, k.Password):
		s.disarm(m)
		return s.begin(settingsPassword, "")
	case key.Matches(msg, k.Import):
		s.disarm(m)
		return s.begin(settingsImport, "")
	case key.Matches(msg, k.Export):
		s.disarm(m)
		return m.export()
	case key.Matches(msg, k.Logout):
		s.disarm(m)
		if err := m.svc.Logout(); err != nil {
			return m.fail(err)
		}
		return m.toSignIn("Signed out.")
	case key.Matches(msg, k.Erase):
		return s.deleteAccount(m)
	case key.Matches(msg, k.Back):
		s.disarm(m)
	}
	return nil
}

func (s *settingsTab) cycleTheme(m *Model, step int) tea.Cmd {
	palettes := palette.Palettes()
	current := m.svc.Theme.Current().ID
	i := 0
	for n, p := range palettes {
		if p.ID == current {
			i = n
		}
	}
	next := palettes[(i+step+len(palettes))%len(palettes)]
	p, err := m.svc.Theme.Set(next.ID)
	if err != nil {
		return m.fail(err)
	}
	m.restyle()
	m.setStatus("Theme: " + p.Name)
	return nil
}

// deleteAccount needs two presses of the same key.
func (s *settingsTab) deleteAccount(m *Model) tea.Cmd {
	if s.confirming && m.svc.Guard.Armed(app.AccountTarget) {
		s.confirming = false
		m.setStatus("Deleting account…")
		svc, ctx := m.svc, m.ctx
		return func() tea.Msg {
			_, err := svc.DeleteAccount(ctx)
			return accountDeletedMsg{err: err}
		}
	}
	m.svc.Guard.Arm(app.AccountTarget)
	s.confirming = true
	m.setStatus("Press D again to delete your account and every dream. esc keeps it.")
	return nil
}

func (s *settingsTab) value(i int) string {
	if i >= len(s.inputs) {
		return ""
	}
	return s.inputs[i].Value()
}

func (s *settingsTab) submit(m *Model) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	switch s.mode {
	case settingsUsername:
		next := s.value(0)
		return func() tea.Msg {
			u, err := svc.ChangeUsername(ctx, next)
			if err != nil {
				return settingsDoneMsg{err: err}
			}
			return settingsDoneMsg{status: "Username changed to " + u.Username}
		}
	case settingsPassword:
		current, next, confirmPassword := s.value(0), s.value(1), s.value(2)
		return func() tea.Msg {
			msg, err := svc.ChangePassword(ctx, current, next, confirmPassword)
			if err != nil {
				return settingsDoneMsg{err: err}
			}
			status := "Password changed"
			if msg != nil && msg.Message != "" {
				status = msg.Message
			}
			return settingsDoneMsg{status: status}
		}
	case settingsImport:
		path := strings.TrimSpace(s.value(0))
		s.cancel()
		return m.importFile(path)
	}
	return nil
}

// settingsDone keeps the form open on validation errors so they can be
// fixed in place.
func (m *Model) settingsDone(msg settingsDoneMsg) tea.Cmd {
	if msg.err != nil {
		var fields account.FieldErrors
		if errors.As(msg.err, &fields) && m.settings.editing() {
			m.settings.errs = fields
			return nil
		}
		return m.fail(msg.err)
	}
	m.settings.cancel()
	m.setStatus(msg.status)
	return nil
}

func (s *settingsTab) view(m *Model) string {
	st := m.styles
	var sections []string

	if u := m.svc.Session.User(); u != nil {
		lines := []string{
			st.Panel.Title.Render("Account"),
			st.Panel.Muted.Render("Username ") + u.Username,
			st.Panel.Muted.Render("Email    ") + u.Email,
		}
		if !u.CreatedAt.IsZero() {
			lines = append(lines, st.Panel.Muted.Render("Since    ")+u.CreatedAt.Format("January 2, 2006"))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	if s.editing() {
		sections = append(sections, s.formView(m))
	}

	current := m.svc.Theme.Current().ID
	themes := []string{st.Panel.Title.Render("Theme")}
	for _, p := range palette.Palettes() {
		mark := "  "
		name := st.Panel.Body.Render(p.Name)
		if p.ID == current {
			mark = "› "
			name = st.Field.Focused.Render(p.Name)
		}
		themes = append(themes, mark+swatches(p)+" "+name+"  "+st.Panel.Muted.Render(p.Description))
	}
	sections = append(sections, strings.Join(themes, "\n"))

	danger := st.Panel.Title.Render("Danger zone") + "\n" +
		st.Panel.Muted.Render("D: delete the account and every dream, after a second confirmation")
	if s.confirming {
		danger += "\n" + st.Field.Error.Render("Press D again to confirm.")
	}
	sections = append(sections, danger)
	return strings.Join(sections, "\n\n")
}

func (s *settingsTab) formView(m *Model) string {
	st := m.styles
	title := map[settingsMode]string{
		settingsUsername: "Change username",
		settingsPassword: "Change password",
		settingsImport:   "Import a backup",
	}[s.mode]
	lines := []string{st.Modal.Title.Render(title)}
	for i, f := range settingsFields[s.mode] {
		label := st.Field.Label
		if i == s.focused {
			label = st.Field.Focused
		}
		lines = append(lines, label.Render(f.label), s.inputs[i].View())
		if msg := s.errs[f.key]; msg != "" {
			lines = append(lines, st.Field.Error.Render(msg))
		}
	}
	lines = append(lines, st.Panel.Muted.Render(fmt.Sprintf("enter: %s · esc: cancel", submitLabel(s.mode))))
	return st.Panel.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func submitLabel(mode settingsMode) string {
	if mode == settingsImport {
		return "import"
	}
	return "save"
}

// swatches previews a palette with three background blocks.
func swatches(p palette.Palette) string {
	block := func(hex string) string {
		return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
	}
	return block(p.Colors.Ink) + block(p.Colors.Accent) + block(p.Colors.Parchment)
}
