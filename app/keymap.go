package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all global keybindings.
type KeyMap struct {
	Launch          key.Binding
	ToggleObserver1 key.Binding
	ToggleObserver2 key.Binding
	CycleTheme      key.Binding
	Help            key.Binding
	Quit            key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Launch: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "launch"),
		),
		ToggleObserver1: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "toggle observer 1"),
		),
		ToggleObserver2: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "toggle observer 2"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "next theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp satisfies help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Launch, k.Help, k.Quit}
}

// FullHelp satisfies help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Launch, k.Quit},
		{k.ToggleObserver1, k.ToggleObserver2, k.CycleTheme, k.Help},
	}
}
