package tui

import (
	"charm.land/bubbles/v2/key"
)

// KeyMap defines all key bindings for the TUI.
// Groups:
//   - Focus:    Next, Prev (cycle windows)
//   - Window:   Close, Minimize, Maximize, Restore, NewInstance, Copy
//   - Launcher: Launch (alt+1..9)
//   - Utility:  ToggleLog, ForceQuit
//
// Keys not bound here are typed into the focused window.
type KeyMap struct {
	Next key.Binding
	Prev key.Binding

	Close       key.Binding
	Minimize    key.Binding
	Maximize    key.Binding
	Restore     key.Binding
	NewInstance key.Binding
	Copy        key.Binding

	Launch key.Binding

	// Log panel scrolling
	LogUp   key.Binding
	LogDown key.Binding

	ToggleLog key.Binding
	ForceQuit key.Binding
}

// ShortHelp returns bindings shown in the compact helpline.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Launch, k.Close, k.Minimize, k.Maximize, k.Restore, k.ToggleLog, k.ForceQuit}
}

// FullHelp returns all bindings grouped into columns.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Launch},
		{k.Close, k.Minimize, k.Maximize, k.Restore, k.NewInstance, k.Copy},
		{k.LogUp, k.LogDown, k.ToggleLog, k.ForceQuit},
	}
}

// Keys is the default key map used throughout the TUI.
var Keys = KeyMap{
	Next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next window"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev window"),
	),
	Close: key.NewBinding(
		key.WithKeys("ctrl+w"),
		key.WithHelp("^w", "close"),
	),
	Minimize: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("^n", "minimize"),
	),
	Maximize: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("^x", "maximize"),
	),
	Restore: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("^t", "restore"),
	),
	NewInstance: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("^s", "new window"),
	),
	Copy: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("^y", "copy"),
	),
	Launch: key.NewBinding(
		key.WithKeys("alt+1", "alt+2", "alt+3", "alt+4", "alt+5", "alt+6", "alt+7", "alt+8", "alt+9"),
		key.WithHelp("alt+1-9", "open app"),
	),
	LogUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "scroll log up"),
	),
	LogDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdown", "scroll log down"),
	),
	ToggleLog: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("^l", "log"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("^c", "quit"),
	),
}
