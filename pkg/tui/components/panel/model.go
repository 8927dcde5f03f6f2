// Package panel defines the framed information panels of the TUI.
package panel

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/dreamlog/pkg/tui/theme"
)

// Model renders a titled panel with body lines.
type Model struct {
	title  string
	lines  []string
	width  int
	styles theme.PanelStyles
}

// New returns an empty panel using styles.
func New(styles theme.PanelStyles) Model {
	return Model{styles: styles}
}

// SetStyles swaps the styles after a theme change.
func (m *Model) SetStyles(styles theme.PanelStyles) {
	m.styles = styles
}

// SetContent updates the panel title and body lines.
func (m *Model) SetContent(title string, lines []string) {
	m.title = title
	m.lines = lines
}

// SetWidth fixes the outer width; zero sizes the panel to its content.
func (m *Model) SetWidth(width int) {
	m.width = width
}

// Reset clears panel content.
func (m *Model) Reset() {
	m.title = ""
	m.lines = nil
}

// Empty reports whether there is nothing to show.
func (m Model) Empty() bool {
	return m.title == "" && len(m.lines) == 0
}

// View returns the rendered panel string and its total height in lines.
func (m Model) View() (string, int) {
	var content []string
	if m.title != "" {
		content = append(content, m.styles.Title.Render(m.title))
	}
	for _, line := range m.lines {
		content = append(content, m.styles.Body.Render(line))
	}
	frame := m.styles.Frame
	if m.width > 0 {
		frame = frame.Width(max(m.width-frame.GetHorizontalBorderSize(), 1))
	}
	view := frame.Render(strings.Join(content, "\n"))
	return view, lipgloss.Height(view)
}
