package highlight

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNew_LexerByExtension(t *testing.T) {
	tests := []struct {
		file    string
		enabled bool
		lang    string
	}{
		{file: "main.go", enabled: true, lang: "Go"},
		{file: "script.py", enabled: true, lang: "Python"},
		{file: "notes.unknownext", enabled: false},
		{file: "", enabled: false},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			h := New(tt.file, "")
			require.Equal(t, tt.enabled, h.Enabled())
			require.Equal(t, tt.lang, h.Language())
		})
	}
}

func TestLine_Disabled(t *testing.T) {
	h := New("", "")
	spans := h.Line("func main() {}")
	require.Len(t, spans, 1)
	require.Equal(t, "func main() {}", spans[0].Text)
}

func TestLine_NilHighlighter(t *testing.T) {
	var h *Highlighter
	require.False(t, h.Enabled())
	require.Equal(t, "x", joinSpans(h.Line("x")))
}

func TestLine_GoTokens(t *testing.T) {
	h := New("main.go", DefaultTheme)
	spans := h.Line("func main() {}")

	require.Greater(t, len(spans), 1)
	require.Equal(t, "func main() {}", joinSpans(spans))
	require.Equal(t, "func", spans[0].Text)
}

func TestLine_Cached(t *testing.T) {
	h := New("main.go", DefaultTheme)
	require.Equal(t, 0, h.cache.cache.ItemCount())

	first := h.Line("x := 1")
	require.Equal(t, 1, h.cache.cache.ItemCount())

	second := h.Line("x := 1")
	require.Equal(t, 1, h.cache.cache.ItemCount())
	require.Equal(t, joinSpans(first), joinSpans(second))

	h.Line("y := 2")
	require.Equal(t, 2, h.cache.cache.ItemCount())

	h.cache.cache.Flush()
	require.Equal(t, 0, h.cache.cache.ItemCount())
}

func TestLine_UnknownThemeFallsBack(t *testing.T) {
	h := New("main.go", "no-such-theme")
	require.Equal(t, "package x", joinSpans(h.Line("package x")))
}

func TestLine_CoversText(t *testing.T) {
	h := New("main.go", DefaultTheme)
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringMatching(`[a-z0-9 (){}:="/*.+-]{0,30}`).Draw(t, "text")
		require.Equal(t, text, joinSpans(h.Line(text)))
	})
}

func TestSpanCache_GetOrLoad(t *testing.T) {
	c := newSpanCache(defaultExpiration, cleanupInterval)
	calls := 0
	load := func() ([]Span, error) {
		calls++
		return []Span{{Text: "a"}}, nil
	}

	_, err := c.getOrLoad("k", load)
	require.NoError(t, err)
	_, err = c.getOrLoad("k", load)
	require.NoError(t, err)
	require.Equal(t, 1, calls)

	c.cache.Set("bad", 42, 0)
	_, ok := c.get("bad")
	require.False(t, ok)
}
