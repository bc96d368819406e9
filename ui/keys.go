package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the TUI key bindings.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Queue   key.Binding
	PlayNow key.Binding
	Clear   key.Binding
	Copy    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap is the standard set of bindings.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Queue: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "queue clip"),
	),
	PlayNow: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "play now"),
	),
	Clear: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear queue"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy asset"),
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

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Queue, k.PlayNow, k.Clear, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Queue, k.PlayNow, k.Clear},
		{k.Copy, k.Help, k.Quit},
	}
}
