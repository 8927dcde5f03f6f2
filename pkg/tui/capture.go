package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/dreamlog/pkg/account"
	"tableflip.dev/dreamlog/pkg/capture"
	"tableflip.dev/dreamlog/pkg/dream"
	"tableflip.dev/dreamlog/pkg/glyph"
)

const (
	fieldTitle = iota
	fieldBody
	fieldMood
	fieldLucidity
	fieldSleep
	fieldTags
	fieldDate
	fieldCount
)

var captureFields = [fieldCount]struct {
	label string
	key   string
}{
	{"Title", "title"},
	{"Dream", "body"},
	{"Mood", "mood"},
	{"Lucidity", "lucidity"},
	{"Sleep quality", "sleep_quality"},
	{"Tags", "tags"},
	{"Date", "dream_date"},
}

// captureOverlay edits a capture.Form. Text fields live in bubbles inputs
// until submit copies them onto the form.
type captureOverlay struct {
	form       *capture.Form
	title      textinput.Model
	body       textarea.Model
	date       textinput.Model
	focus      int
	mood       int
	errs       account.FieldErrors
	err        error
	submitting bool
	width      int
}

func newCaptureOverlay(f *capture.Form, width int) *captureOverlay {
	title := textinput.New()
	title.Prompt = ""
	title.Placeholder = "Untitled dream"
	title.CharLimit = dream.MaxTitleLength
	title.SetValue(f.Title)

	body := textarea.New()
	body.Placeholder = "What did you dream?"
	body.ShowLineNumbers = false
	body.CharLimit = 0
	body.SetHeight(6)
	body.SetValue(f.Body)

	date := textinput.New()
	date.Prompt = ""
	date.Placeholder = "YYYY-MM-DD"
	date.CharLimit = len(dream.DateLayout)
	date.SetValue(f.DreamDate)

	c := &captureOverlay{form: f, title: title, body: body, date: date}
	for i, m := range dream.Moods() {
		if m == f.Mood {
			c.mood = i
		}
	}
	c.setWidth(width)
	return c
}

func (c *captureOverlay) setWidth(width int) {
	c.width = width
	inner := max(width-8, 20)
	c.title.Width = inner
	c.body.SetWidth(inner)
	c.date.Width = len(dream.DateLayout) + 1
}

func (c *captureOverlay) focusCmd() tea.Cmd {
	c.title.Blur()
	c.body.Blur()
	c.date.Blur()
	switch c.focus {
	case fieldTitle:
		return c.title.Focus()
	case fieldBody:
		return c.body.Focus()
	case fieldDate:
		return c.date.Focus()
	}
	c.form.Tags.Blur()
	return nil
}

func (c *captureOverlay) moveFocus(delta int) tea.Cmd {
	if c.focus == fieldTags {
		c.form.Tags.Blur()
	}
	c.focus = (c.focus + delta + fieldCount) % fieldCount
	return c.focusCmd()
}

// sync copies the text inputs onto the form.
func (c *captureOverlay) sync() {
	c.form.Title = c.title.Value()
	c.form.Body = c.body.Value()
	c.form.DreamDate = strings.TrimSpace(c.date.Value())
}

func (c *captureOverlay) fail(err error) {
	c.submitting = false
	c.errs, c.err = nil, nil
	var fields account.FieldErrors
	if errors.As(err, &fields) {
		c.errs = fields
		return
	}
	c.err = err
}

func (c *captureOverlay) submit(m *Model) tea.Cmd {
	if c.submitting {
		return nil
	}
	c.sync()
	if err := c.form.Validate(); err != nil {
		c.fail(err)
		return nil
	}
	c.errs, c.err = nil, nil
	c.submitting = true
	return tea.Batch(m.spinner.Tick, m.save(c.form))
}

func (c *captureOverlay) handleKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	k := m.keys
	switch {
	case key.Matches(msg, k.Cancel):
		m.capture = nil
		m.setStatus("Nothing saved.")
		return nil
	case key.Matches(msg, k.Submit):
		return c.submit(m)
	case key.Matches(msg, k.NextField):
		return c.moveFocus(1)
	case key.Matches(msg, k.PrevField):
		return c.moveFocus(-1)
	}
	if c.submitting {
		return nil
	}

	switch c.focus {
	case fieldTitle:
		if msg.Type == tea.KeyEnter {
			return c.moveFocus(1)
		}
	case fieldDate:
		if msg.Type == tea.KeyEnter {
			return c.submit(m)
		}
	case fieldMood:
		c.moodKey(m, msg)
		return nil
	case fieldLucidity:
		if r, ok := ratingKey(msg); ok && r == 0 {
			c.form.Lucidity = nil
		} else if ok {
			c.form.SetLucidity(r)
		}
		return nil
	case fieldSleep:
		if r, ok := ratingKey(msg); ok && r == 0 {
			c.form.SleepQuality = nil
		} else if ok {
			c.form.SetSleepQuality(r)
		}
		return nil
	case fieldTags:
		c.form.Tags.Key(tagKey(msg))
		return nil
	}
	return c.update(msg)
}

func (c *captureOverlay) moodKey(m *Model, msg tea.KeyMsg) {
	moods := dream.Moods()
	switch {
	case key.Matches(msg, m.keys.Left):
		c.mood = (c.mood + len(moods) - 1) % len(moods)
	case key.Matches(msg, m.keys.Right):
		c.mood = (c.mood + 1) % len(moods)
	case msg.Type == tea.KeySpace, msg.Type == tea.KeyEnter:
		c.form.ToggleMood(moods[c.mood])
	case key.Matches(msg, m.keys.Moods):
		c.mood = int(msg.Runes[0] - '1')
		c.form.ToggleMood(moods[c.mood])
	}
}

// ratingKey reads 1-5. 0 and backspace yield 0, which clears the rating.
func ratingKey(msg tea.KeyMsg) (int, bool) {
	if msg.Type == tea.KeyBackspace || msg.String() == "0" {
		return 0, true
	}
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	r := int(msg.Runes[0] - '0')
	if r < dream.MinRating || r > dream.MaxRating {
		return 0, false
	}
	return r, true
}

// tagKey translates a keypress into capture.TagInput's key names.
func tagKey(msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeyEnter:
		return capture.KeyEnter
	case tea.KeySpace:
		return capture.KeySpace
	case tea.KeyBackspace:
		return capture.KeyBackspace
	case tea.KeyRunes:
		return string(msg.Runes)
	}
	return ""
}

func (c *captureOverlay) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch c.focus {
	case fieldTitle:
		c.title, cmd = c.title.Update(msg)
	case fieldBody:
		c.body, cmd = c.body.Update(msg)
	case fieldDate:
		c.date, cmd = c.date.Update(msg)
	}
	return cmd
}

func (c *captureOverlay) view(m *Model) string {
	st := m.styles
	heading := "Record a dream"
	if c.form.Editing() {
		heading = fmt.Sprintf("Edit dream #%d", c.form.ID)
	}
	lines := []string{st.Modal.Title.Render(heading), ""}

	field := func(i int, content string) {
		label := st.Field.Label
		if i == c.focus {
			label = st.Field.Focused
		}
		lines = append(lines, label.Render(captureFields[i].label), content)
		if msg := c.errs[captureFields[i].key]; msg != "" {
			lines = append(lines, st.Field.Error.Render(msg))
		}
	}

	field(fieldTitle, c.title.View())
	field(fieldBody, c.body.View())
	field(fieldMood, c.moodView(m))
	field(fieldLucidity, ratingView(m, c.form.Lucidity, dream.LucidityLabels))
	field(fieldSleep, ratingView(m, c.form.SleepQuality, dream.SleepLabels))
	field(fieldTags, c.tagsView(m))
	field(fieldDate, c.date.View())

	lines = append(lines, "")
	switch {
	case c.submitting:
		lines = append(lines, m.spinner.View()+" "+st.Panel.Muted.Render("Saving…"))
	case c.err != nil:
		lines = append(lines, st.Field.Error.Render(explain(c.err)))
	case !c.form.CanSubmit():
		lines = append(lines, st.Panel.Muted.Render("Write something about the dream to save it."))
	default:
		lines = append(lines, st.Panel.Muted.Render("ctrl+s: save · tab: next field · esc: cancel"))
	}
	return st.Modal.Frame.Width(c.width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (c *captureOverlay) moodView(m *Model) string {
	st := m.styles.List
	parts := make([]string, 0, len(dream.Moods()))
	for i, mood := range dream.Moods() {
		style := st.Chip
		if c.form.Mood == mood {
			style = st.ChipActive
		}
		text := mood.String()
		if c.focus == fieldMood && i == c.mood {
			text = "[" + text + "]"
		}
		parts = append(parts, style.Render(text))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func ratingView(m *Model, r *int, labels []string) string {
	if r == nil {
		return m.styles.Panel.Muted.Render(glyph.Rating(nil) + "  press 1-5")
	}
	return m.styles.Bar.Render(glyph.Rating(r)) + " " + dream.RatingLabel(labels, *r)
}

func (c *captureOverlay) tagsView(m *Model) string {
	parts := make([]string, 0, len(c.form.Tags.Tags)+1)
	for _, t := range c.form.Tags.Tags {
		parts = append(parts, m.styles.List.Tag.Render(glyph.Tag(t)))
	}
	input := c.form.Tags.Input
	if c.focus == fieldTags {
		input += "▏"
	}
	if input == "" && len(parts) == 0 {
		input = m.styles.Panel.Muted.Render("type a tag, space to add")
	}
	return strings.Join(append(parts, input), " ")
}
