package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/dreamlog/pkg/account"
	"tableflip.dev/dreamlog/pkg/glyph"
)

const (
	inEmail = iota
	inUsername
	inPassword
	inConfirm
	inCount
)

var signInFields = [inCount]struct {
	label string
	key   string
}{
	{"Email", "email"},
	{"Username", "username"},
	{"Password", "password"},
	{"Confirm password", "confirm_password"},
}

// signIn is the login and registration screen.
type signIn struct {
	register   bool
	inputs     [inCount]textinput.Model
	focused    int
	errs       account.FieldErrors
	err        error
	submitting bool
}

func newSignIn() *signIn {
	s := &signIn{}
	for i := range s.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 128
		in.Placeholder = strings.ToLower(signInFields[i].label)
		if i == inPassword || i == inConfirm {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		s.inputs[i] = in
	}
	return s
}

// fields lists the visible inputs in tab order.
func (s *signIn) fields() []int {
	if s.register {
		return []int{inEmail, inUsername, inPassword, inConfirm}
	}
	return []int{inEmail, inPassword}
}

func (s *signIn) focus() tea.Cmd {
	fields := s.fields()
	if s.focused >= len(fields) {
		s.focused = 0
	}
	for i := range s.inputs {
		s.inputs[i].Blur()
	}
	return s.inputs[fields[s.focused]].Focus()
}

func (s *signIn) reset() {
	for i := range s.inputs {
		s.inputs[i].SetValue("")
		s.inputs[i].Blur()
	}
	s.register = false
	s.focused = 0
	s.errs = nil
	s.err = nil
	s.submitting = false
}

func (s *signIn) fail(err error) {
	s.errs = nil
	s.err = nil
	var fields account.FieldErrors
	if errors.As(err, &fields) {
		s.errs = fields
		return
	}
	s.err = err
}

func (s *signIn) value(i int) string {
	return s.inputs[i].Value()
}

func (s *signIn) handleKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	if s.submitting {
		return nil
	}
	k := m.keys
	switch {
	case key.Matches(msg, k.Mode):
		s.register = !s.register
		s.focused = 0
		s.errs, s.err = nil, nil
		return s.focus()
	case key.Matches(msg, k.NextField), msg.Type == tea.KeyDown:
		s.focused = (s.focused + 1) % len(s.fields())
		return s.focus()
	case key.Matches(msg, k.PrevField), msg.Type == tea.KeyUp:
		s.focused = (s.focused + len(s.fields()) - 1) % len(s.fields())
		return s.focus()
	case key.Matches(msg, k.Submit), msg.Type == tea.KeyEnter:
		return s.submit(m)
	case key.Matches(msg, k.Cancel):
		s.errs, s.err = nil, nil
		return nil
	}
	return s.update(msg)
}

func (s *signIn) update(msg tea.Msg) tea.Cmd {
	i := s.fields()[s.focused]
	var cmd tea.Cmd
	s.inputs[i], cmd = s.inputs[i].Update(msg)
	return cmd
}

// submit validates locally; only a clean form reaches the server.
func (s *signIn) submit(m *Model) tea.Cmd {
	email, password := s.value(inEmail), s.value(inPassword)
	var errs account.FieldErrors
	if s.register {
		errs = account.ValidateRegistration(email, s.value(inUsername), password, s.value(inConfirm))
	} else {
		errs = account.ValidateLogin(email, password)
	}
	if len(errs) > 0 {
		s.errs, s.err = errs, nil
		return nil
	}
	s.errs, s.err = nil, nil
	s.submitting = true

	svc, ctx := m.svc, m.ctx
	if s.register {
		username, confirmPassword := s.value(inUsername), s.value(inConfirm)
		return tea.Batch(m.spinner.Tick, func() tea.Msg {
			return authDoneMsg{err: svc.Register(ctx, email, username, password, confirmPassword)}
		})
	}
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return authDoneMsg{err: svc.Login(ctx, email, password)}
	})
}

func (s *signIn) view(m *Model) string {
	st := m.styles
	title := "Sign in"
	hint := "ctrl+r: create an account"
	if s.register {
		title = "Create account"
		hint = "ctrl+r: sign in instead"
	}

	lines := []string{
		st.Tabs.Brand.Render(glyph.Day + " dreamlog"),
		st.Modal.Title.Render(title),
		"",
	}
	for n, i := range s.fields() {
		label := st.Field.Label
		if n == s.focused {
			label = st.Field.Focused
		}
		lines = append(lines, label.Render(signInFields[i].label), s.inputs[i].View())
		if msg := s.errs[signInFields[i].key]; msg != "" {
			lines = append(lines, st.Field.Error.Render(msg))
		}
		lines = append(lines, "")
	}
	switch {
	case s.submitting:
		lines = append(lines, m.spinner.View()+" "+st.Panel.Muted.Render("Signing in…"))
	case s.err != nil:
		lines = append(lines, st.Field.Error.Render(explain(s.err)))
	default:
		lines = append(lines, st.Panel.Muted.Render(hint))
	}
	return st.Modal.Frame.Width(44).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
