package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the control bindings of the typing UI. Every other key is
// passed to the session.
type KeyMap struct {
	Quit    key.Binding
	Restart key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
		Restart: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "restart"),
		),
	}
}

// hint renders the bindings as "esc quit, tab restart".
func (k KeyMap) hint() string {
	bindings := []key.Binding{k.Quit, k.Restart}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, ", ")
}
