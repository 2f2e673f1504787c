// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package adminui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the dashboard key bindings. Row movement inside the
// focused table uses the bubbles table bindings (j/k, arrows,
// page up/down, g/G).
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	FocusToggle key.Binding
	Refresh     key.Binding
	Quit        key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	FocusToggle: key.NewBinding(
		key.WithKeys("tab", "shift+tab"),
		key.WithHelp("tab", "switch table"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh now"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (keys KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.Up, keys.Down, keys.FocusToggle, keys.Refresh, keys.Quit}
}

// FullHelp implements help.KeyMap.
func (keys KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{keys.ShortHelp()}
}
