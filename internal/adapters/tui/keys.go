package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the clock screen bindings.
type keyMap struct {
	Toggle   key.Binding
	Reset    key.Binding
	Mode     key.Binding
	Edit     key.Binding
	AddTask  key.Binding
	Complete key.Binding
	Timers   key.Binding
	NewTimer key.Binding
	Up       key.Binding
	Down     key.Binding
	Delete   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "start/pause"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Mode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mode"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit time"),
		),
		AddTask: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add task"),
		),
		Complete: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "complete task"),
		),
		Timers: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "timers"),
		),
		NewTimer: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new timer"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete timer"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Mode, k.Timers, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Reset, k.Mode, k.Edit},
		{k.AddTask, k.Complete},
		{k.Timers, k.NewTimer, k.Up, k.Down, k.Delete},
		{k.Help, k.Quit},
	}
}
