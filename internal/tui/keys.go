package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Section key.Binding
	Users   key.Binding
	Groups  key.Binding
	Roles   key.Binding
	Add     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Assign  key.Binding
	Remove  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Section, k.Add, k.Edit, k.Delete, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Section, k.Users, k.Groups, k.Roles},
		{k.Add, k.Edit, k.Delete, k.Assign, k.Remove},
		{k.Help, k.Quit},
	}
}

var listKeys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Section: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next section"),
	),
	Users: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "users"),
	),
	Groups: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "groups"),
	),
	Roles: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "roles"),
	),
	Add: key.NewBinding(
		key.WithKeys("a", "n"),
		key.WithHelp("a", "add"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e", "enter"),
		key.WithHelp("e", "update"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d", "x"),
		key.WithHelp("d", "delete"),
	),
	Assign: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "assign users"),
	),
	Remove: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "remove users"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Keys used inside the form, confirm and picker overlays.
var (
	nextField = key.NewBinding(key.WithKeys("tab", "down"))
	prevField = key.NewBinding(key.WithKeys("shift+tab", "up"))
	submit    = key.NewBinding(key.WithKeys("enter"))
	cancel    = key.NewBinding(key.WithKeys("esc"))
	confirm   = key.NewBinding(key.WithKeys("y", "Y", "enter"))
	decline   = key.NewBinding(key.WithKeys("n", "N", "esc"))
	toggle    = key.NewBinding(key.WithKeys(" ", "x"))
	forceQuit = key.NewBinding(key.WithKeys("ctrl+c"))
)
