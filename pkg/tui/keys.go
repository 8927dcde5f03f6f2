package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Quit     key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	Help     key.Binding
	New      key.Binding
	Refresh  key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Open     key.Binding
	Back     key.Binding
	Search   key.Binding
	Moods    key.Binding
	Tag      key.Binding
	ClearTag key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Export   key.Binding

	PrevMonth key.Binding
	NextMonth key.Binding
	PrevYear  key.Binding
	NextYear  key.Binding
	Today     key.Binding
	Year      key.Binding
	WeekStart key.Binding

	Theme    key.Binding
	Username key.Binding
	Password key.Binding
	Import   key.Binding
	Logout   key.Binding
	Erase    key.Binding

	Submit    key.Binding
	Cancel    key.Binding
	NextField key.Binding
	PrevField key.Binding
	Mode      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		NextTab:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
		PrevTab:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous view")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "record dream")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Moods:    key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6"), key.WithHelp("1-6", "mood filter")),
		Tag:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "next tag")),
		ClearTag: key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "clear tag")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d d", "delete")),
		Export:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export backup")),

		PrevMonth: key.NewBinding(key.WithKeys("["), key.WithHelp("[/]", "month")),
		NextMonth: key.NewBinding(key.WithKeys("]")),
		PrevYear:  key.NewBinding(key.WithKeys("{"), key.WithHelp("{/}", "year")),
		NextYear:  key.NewBinding(key.WithKeys("}")),
		Today:     key.NewBinding(key.WithKeys("."), key.WithHelp(".", "today")),
		Year:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "month/year")),
		WeekStart: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "week start")),

		Theme:    key.NewBinding(key.WithKeys("left", "right", "h", "l"), key.WithHelp("←/→", "theme")),
		Username: key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "username")),
		Password: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "password")),
		Import:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import")),
		Logout:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "sign out")),
		Erase:    key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete account")),

		Submit:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab")),
		Mode:      key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "sign in/register")),
	}
}

// bindings adapts a set of bindings to help.KeyMap.
type bindings struct {
	short []key.Binding
	full  [][]key.Binding
}

func (b bindings) ShortHelp() []key.Binding  { return b.short }
func (b bindings) FullHelp() [][]key.Binding { return b.full }

// helpFor returns the bindings shown in the footer for the current screen.
func (m *Model) helpFor() bindings {
	k := m.keys
	switch {
	case !m.signedIn:
		return bindings{short: []key.Binding{k.Submit, k.NextField, k.Mode, k.Cancel}}
	case m.capture != nil:
		return bindings{short: []key.Binding{k.Submit, k.NextField, k.Cancel}}
	}
	global := []key.Binding{k.NextTab, k.New, k.Refresh, k.Help, k.Quit}
	var local []key.Binding
	switch m.tab {
	case tabJournal:
		local = []key.Binding{k.Up, k.Down, k.Open, k.Search, k.Moods, k.Tag, k.ClearTag, k.Edit, k.Delete, k.Export}
	case tabCalendar:
		local = []key.Binding{k.Left, k.Right, k.Open, k.PrevMonth, k.PrevYear, k.Today, k.Year, k.WeekStart}
	case tabStats:
		local = []key.Binding{k.Up, k.Down}
	case tabSettings:
		local = []key.Binding{k.Theme, k.Username, k.Password, k.Export, k.Import, k.Logout, k.Erase}
	}
	short := append([]key.Binding{}, local...)
	if len(short) > 4 {
		short = short[:4]
	}
	return bindings{
		short: append(short, k.NextTab, k.Help, k.Quit),
		full:  [][]key.Binding{local, global},
	}
}
