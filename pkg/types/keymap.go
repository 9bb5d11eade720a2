package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the launcher keybindings. It lives in pkg/types so the
// terminal front end and its help view share one definition.
type KeyMap struct {
	// Navigation
	Forward  key.Binding
	Backward key.Binding

	// Actions
	Activate key.Binding
	Stable   key.Binding
	Insiders key.Binding
	Refresh  key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the bindings listed in the instructions line.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Forward: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next"),
		),
		Backward: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("shift+tab", "previous"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "open"),
		),
		Stable: key.NewBinding(
			key.WithKeys("n", "N"),
			key.WithHelp("n", "stable"),
		),
		Insiders: key.NewBinding(
			key.WithKeys("i", "I"),
			key.WithHelp("i", "insiders"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r", "f5"),
			key.WithHelp("r", "rescan"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "Q", "x", "X", "esc", "ctrl+c"),
			key.WithHelp("q/x/esc", "exit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Stable, k.Insiders, k.Forward, k.Activate}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Forward, k.Backward, k.Activate},
		{k.Stable, k.Insiders, k.Refresh, k.Quit},
	}
}
