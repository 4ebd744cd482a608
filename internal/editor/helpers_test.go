package editor

import (
	"strings"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/vedit/internal/editor/buffer"
	"github.com/zjrosen/vedit/internal/keys"
)

// tb is satisfied by both *testing.T and *rapid.T.
type tb interface {
	require.TestingT
	Helper()
}

// parseKeys reads a key script: plain characters are typed as-is and
// <name> denotes a named key (<esc>, <enter>, <bs>, <tab>, <left>, <c-r>, <lt>).
func parseKeys(t tb, script string) []keys.Key {
	t.Helper()
	var out []keys.Key
	for len(script) > 0 {
		if script[0] == '<' {
			end := strings.IndexByte(script, '>')
			require.Positive(t, end, "unterminated key name in %q", script)
			out = append(out, namedKey(t, script[1:end]))
			script = script[end+1:]
			continue
		}
		g := buffer.At(script, 0)
		out = append(out, keys.Char(g))
		script = script[len(g):]
	}
	return out
}

func namedKey(t tb, name string) keys.Key {
	t.Helper()
	switch name {
	case "esc":
		return keys.KeyEsc
	case "enter":
		return keys.KeyEnter
	case "bs":
		return keys.KeyBackspace
	case "tab":
		return keys.KeyTab
	case "left":
		return keys.KeyLeft
	case "right":
		return keys.KeyRight
	case "up":
		return keys.KeyUp
	case "down":
		return keys.KeyDown
	case "lt":
		return keys.Char("<")
	}
	letter, ok := strings.CutPrefix(name, "c-")
	require.True(t, ok, "unknown key name %q", name)
	return keys.CtrlKey(letter)
}

// press feeds a key script and returns the first error any key produced.
func press(t tb, s *Session, script string) error {
	t.Helper()
	var first error
	for _, k := range parseKeys(t, script) {
		if _, err := s.HandleKey(k); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func mustPress(t tb, s *Session, script string) {
	t.Helper()
	require.NoError(t, press(t, s, script))
}

func newSession(lines ...string) *Session {
	return New(Config{Height: 24}, lines...)
}

func lines(s *Session) []string {
	return s.buf.Lines()
}

func charUnderCursor(s *Session) string {
	p := s.CursorPos()
	return buffer.At(s.LineAt(p.Line), p.Col)
}

type memSaver struct {
	content string
	saves   int
	err     error
}

func (m *memSaver) Save(content string) error {
	if m.err != nil {
		return m.err
	}
	m.content = content
	m.saves++
	return nil
}
