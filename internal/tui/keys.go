package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add     key.Binding
	Focus   key.Binding
	Toggle  key.Binding
	Delete  key.Binding
	Refresh key.Binding
	Up      key.Binding
	Down    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Add:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
		Focus:   key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch focus")),
		Toggle:  key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle")),
		Delete:  key.NewBinding(key.WithKeys("d", "x", "delete"), key.WithHelp("d", "delete")),
		Refresh: key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "refresh")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// inputKeys is what the help line shows while typing.
type inputKeys struct{ km keyMap }

func (k inputKeys) ShortHelp() []key.Binding {
	return []key.Binding{
		k.km.Add,
		k.km.Focus,
		key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "refresh")),
		key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k inputKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

// listKeys is what the help line shows while the list has focus.
type listKeys struct{ km keyMap }

func (k listKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.km.Up, k.km.Down, k.km.Toggle, k.km.Delete, k.km.Refresh, k.km.Focus, k.km.Quit}
}

func (k listKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }
