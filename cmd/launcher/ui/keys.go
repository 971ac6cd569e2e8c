package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Enter    key.Binding
	Back     key.Binding
	Drawer   key.Binding
	Settings key.Binding
	Prefs    key.Binding
	Favorite key.Binding
	Restrict key.Binding
	Toggle   key.Binding
	Edit     key.Binding
	Search   key.Binding
	ClearAll key.Binding
	Open     key.Binding
	Yes      key.Binding
	No       key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev field")),
	Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next field")),
	Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Drawer:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all apps")),
	Settings: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "restrictions")),
	Prefs:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "notifications")),
	Favorite: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
	Restrict: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restrict")),
	Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit window")),
	Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	ClearAll: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear all")),
	Open:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open app")),
	Yes:      key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "yes")),
	No:       key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "no")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// bindings is a help.KeyMap over an ad-hoc list of bindings.
type bindings []key.Binding

func (b bindings) ShortHelp() []key.Binding  { return b }
func (b bindings) FullHelp() [][]key.Binding { return [][]key.Binding{b} }
