package keys

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rivo/uniseg"
)

// Type classifies an input key.
type Type int

const (
	// Rune is a printable character; Key.Text holds one grapheme cluster.
	Rune Type = iota
	Esc
	Enter
	Backspace
	Tab
	Left
	Right
	Up
	Down
	// Ctrl is a control chord; Key.Text holds the lowercase letter.
	Ctrl
)

// Key is one input key as the editor core consumes it.
type Key struct {
	Type Type
	Text string
}

// Char returns a printable key.
func Char(s string) Key { return Key{Type: Rune, Text: s} }

// CtrlKey returns the ctrl chord for letter.
func CtrlKey(letter string) Key { return Key{Type: Ctrl, Text: strings.ToLower(letter)} }

// Named keys.
var (
	KeyEsc       = Key{Type: Esc}
	KeyEnter     = Key{Type: Enter}
	KeyBackspace = Key{Type: Backspace}
	KeyTab       = Key{Type: Tab}
	KeyLeft      = Key{Type: Left}
	KeyRight     = Key{Type: Right}
	KeyUp        = Key{Type: Up}
	KeyDown      = Key{Type: Down}
)

var names = map[Type]string{
	Esc:       "esc",
	Enter:     "enter",
	Backspace: "backspace",
	Tab:       "tab",
	Left:      "left",
	Right:     "right",
	Up:        "up",
	Down:      "down",
}

// Is reports whether k is the printable character s.
func (k Key) Is(s string) bool { return k.Type == Rune && k.Text == s }

// IsDigit reports whether k is one of 0-9.
func (k Key) IsDigit() bool {
	return k.Type == Rune && len(k.Text) == 1 && k.Text[0] >= '0' && k.Text[0] <= '9'
}

// String renders k in the same notation Bubble Tea uses ("a", "ctrl+r", "esc").
func (k Key) String() string {
	switch k.Type {
	case Rune:
		if k.Text == " " {
			return "space"
		}
		return k.Text
	case Ctrl:
		return "ctrl+" + k.Text
	default:
		return names[k.Type]
	}
}

// Parse converts a key name such as "ctrl+q", "esc" or "x" into a Key.
func Parse(name string) (Key, error) {
	if name == "" {
		return Key{}, fmt.Errorf("empty key name")
	}
	if name == "space" {
		return Char(" "), nil
	}
	for t, n := range names {
		if n == name {
			return Key{Type: t}, nil
		}
	}
	if letter, ok := strings.CutPrefix(name, "ctrl+"); ok {
		if len(letter) != 1 || letter[0] < 'a' || letter[0] > 'z' {
			return Key{}, fmt.Errorf("unsupported ctrl chord %q", name)
		}
		return CtrlKey(letter), nil
	}
	if uniseg.GraphemeClusterCount(name) != 1 {
		return Key{}, fmt.Errorf("unknown key %q", name)
	}
	return Char(name), nil
}

// FromTea converts a Bubble Tea key message into editor keys. Pasted or
// batched runes become one key per grapheme cluster. An alt chord is split
// into Esc followed by the key, which is how a fast Esc-then-key sequence
// arrives from most terminals.
func FromTea(msg tea.KeyMsg) []Key {
	var out []Key
	if msg.Alt {
		out = append(out, KeyEsc)
	}

	switch msg.Type {
	case tea.KeyRunes:
		state := -1
		s := string(msg.Runes)
		for len(s) > 0 {
			var cluster string
			cluster, s, _, state = uniseg.StepString(s, state)
			switch cluster {
			case "\r\n", "\n", "\r":
				out = append(out, KeyEnter)
			case "\t":
				out = append(out, KeyTab)
			default:
				out = append(out, Char(cluster))
			}
		}
		return out
	case tea.KeySpace:
		return append(out, Char(" "))
	case tea.KeyEnter:
		return append(out, KeyEnter)
	case tea.KeyEsc:
		return append(out, KeyEsc)
	case tea.KeyBackspace:
		return append(out, KeyBackspace)
	case tea.KeyTab:
		return append(out, KeyTab)
	case tea.KeyLeft:
		return append(out, KeyLeft)
	case tea.KeyRight:
		return append(out, KeyRight)
	case tea.KeyUp:
		return append(out, KeyUp)
	case tea.KeyDown:
		return append(out, KeyDown)
	}

	if letter, ok := strings.CutPrefix(tea.KeyMsg{Type: msg.Type}.String(), "ctrl+"); ok && len(letter) == 1 {
		return append(out, CtrlKey(letter))
	}
	return nil
}
