// Package keys contains the editor's input key model and app-level keybindings.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings handled by the application shell rather
// than the modal editor core.
type KeyMap struct {
	// Kill exits from any mode without saving.
	Kill key.Binding
	// Write and Quit are not chords; they document the ":" commands in help.
	Write key.Binding
	Quit  key.Binding
}

// DefaultKeyMap returns the keybindings for the given kill key name.
func DefaultKeyMap(kill string) KeyMap {
	return KeyMap{
		Kill: key.NewBinding(
			key.WithKeys(kill),
			key.WithHelp(kill, "quit"),
		),
		Write: key.NewBinding(
			key.WithKeys(":w"),
			key.WithHelp(":w", "write"),
		),
		Quit: key.NewBinding(
			key.WithKeys(":q"),
			key.WithHelp(":q", "close"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Write, k.Quit, k.Kill}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
