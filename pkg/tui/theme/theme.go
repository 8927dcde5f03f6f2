// Package theme centralizes the Lip Gloss styles of the terminal UI. A Theme
// is a palette sink, so selecting a palette restyles every view.
package theme

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/dreamlog/pkg/theme"
)

// HeatLevels matches calendar.HeatLevel's range.
const HeatLevels = 5

// Styles is one consistent set of styles built from a palette.
type Styles struct {
	Tabs     TabStyles
	Footer   FooterStyles
	Panel    PanelStyles
	Modal    ModalStyles
	List     ListStyles
	Field    FieldStyles
	Calendar CalendarStyles
	Bar      lipgloss.Style
}

// TabStyles style the tab strip at the top of the screen.
type TabStyles struct {
	Active   lipgloss.Style
	Inactive lipgloss.Style
	Brand    lipgloss.Style
}

// FooterStyles group styles used by the bottom status/help bar.
type FooterStyles struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// PanelStyles style framed panels and headings.
type PanelStyles struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
	Muted lipgloss.Style
}

// ModalStyles style centered overlays such as the capture form.
type ModalStyles struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// ListStyles style dream rows and filter chips.
type ListStyles struct {
	Item       lipgloss.Style
	Selected   lipgloss.Style
	Meta       lipgloss.Style
	Tag        lipgloss.Style
	Chip       lipgloss.Style
	ChipActive lipgloss.Style
	Empty      lipgloss.Style
}

// FieldStyles style form labels and validation messages.
type FieldStyles struct {
	Label   lipgloss.Style
	Focused lipgloss.Style
	Error   lipgloss.Style
}

// CalendarStyles style the month grid and the year heatmap.
type CalendarStyles struct {
	Header   lipgloss.Style
	Empty    lipgloss.Style
	Outside  lipgloss.Style
	Entry    lipgloss.Style
	Today    lipgloss.Style
	Selected lipgloss.Style
	Heat     [HeatLevels]lipgloss.Style
}

// Theme collects palette variables and rebuilds Styles on demand.
type Theme struct {
	mu     sync.Mutex
	vars   map[string]string
	dirty  bool
	styles Styles
}

var _ theme.Sink = (*Theme)(nil)

// New returns a Theme showing the default palette.
func New() *Theme {
	t := &Theme{vars: map[string]string{}}
	theme.Apply(theme.Default(), t)
	return t
}

// SetProperty implements theme.Sink.
func (t *Theme) SetProperty(name, value string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.vars[name] == value {
		return
	}
	t.vars[name] = value
	t.dirty = true
}

// Var returns the raw value of a palette variable.
func (t *Theme) Var(name string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.vars[name]
}

// Styles returns the styles for the most recently applied palette.
func (t *Theme) Styles() Styles {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.dirty {
		t.styles = build(t.vars)
		t.dirty = false
	}
	return t.styles
}

func build(vars map[string]string) Styles {
	c := func(name string) lipgloss.Color { return lipgloss.Color(vars[name]) }

	ink := c("--ink")
	text := c("--parchment")
	muted := c("--ink-muted")
	accent := c("--amber")
	glow := c("--amber-glow")
	gold := c("--gold")
	cream := c("--cream")

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(muted).
		Padding(0, 1)
	title := lipgloss.NewStyle().Bold(true).Foreground(glow)
	body := lipgloss.NewStyle().Foreground(text)
	faint := lipgloss.NewStyle().Foreground(muted)

	var heat [HeatLevels]lipgloss.Style
	for level := range heat {
		heat[level] = lipgloss.NewStyle().Foreground(lipgloss.Color(blend(vars["--ink-muted"], vars["--amber-glow"], level)))
	}

	return Styles{
		Tabs: TabStyles{
			Active:   lipgloss.NewStyle().Bold(true).Foreground(ink).Background(accent).Padding(0, 1),
			Inactive: lipgloss.NewStyle().Foreground(muted).Padding(0, 1),
			Brand:    lipgloss.NewStyle().Bold(true).Foreground(gold).Padding(0, 1),
		},
		Footer: FooterStyles{
			Help:   faint,
			Status: lipgloss.NewStyle().Foreground(cream),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
		Panel: PanelStyles{
			Frame: frame,
			Title: title,
			Body:  body,
			Muted: faint,
		},
		Modal: ModalStyles{
			Frame: frame.Border(lipgloss.DoubleBorder()).BorderForeground(accent).Padding(1, 2),
			Title: title,
			Body:  body,
		},
		List: ListStyles{
			Item:       body,
			Selected:   lipgloss.NewStyle().Bold(true).Foreground(ink).Background(glow),
			Meta:       faint,
			Tag:        lipgloss.NewStyle().Foreground(gold),
			Chip:       faint.Padding(0, 1),
			ChipActive: lipgloss.NewStyle().Foreground(ink).Background(gold).Padding(0, 1),
			Empty:      faint.Italic(true),
		},
		Field: FieldStyles{
			Label:   faint,
			Focused: lipgloss.NewStyle().Bold(true).Foreground(accent),
			Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
		Calendar: CalendarStyles{
			Header:   faint.Bold(true),
			Empty:    body,
			Outside:  faint.Faint(true),
			Entry:    lipgloss.NewStyle().Bold(true).Foreground(gold),
			Today:    lipgloss.NewStyle().Underline(true),
			Selected: lipgloss.NewStyle().Foreground(ink).Background(accent),
			Heat:     heat,
		},
		Bar: lipgloss.NewStyle().Foreground(accent),
	}
}

// blend walks from one hex colour to another in HeatLevels steps. Unparseable
// input falls back to the destination colour.
func blend(from, to string, level int) string {
	a, err := colorful.Hex(from)
	if err != nil {
		return to
	}
	b, err := colorful.Hex(to)
	if err != nil {
		return to
	}
	return a.BlendLab(b, float64(level)/float64(HeatLevels-1)).Clamped().Hex()
}
