// Package highlight splits document lines into styled spans for display.
//
// The editor core never sees these styles; the app layer asks for spans
// line by line while rendering the visible window.
package highlight

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/vedit/internal/log"
)

// DefaultTheme is the chroma style used when none is configured.
const DefaultTheme = "monokai"

// Span is a run of text drawn with one style.
type Span struct {
	Text  string
	Style lipgloss.Style
}

// Highlighter tokenises single lines with a lexer chosen by file name.
type Highlighter struct {
	lexer chroma.Lexer
	style *chroma.Style
	theme string
	cache *spanCache
}

// New returns a highlighter for filename using the named chroma style.
// When no lexer matches the file name the highlighter is disabled and
// Line returns the text unstyled.
func New(filename, theme string) *Highlighter {
	if theme == "" {
		theme = DefaultTheme
	}
	h := &Highlighter{
		style: styles.Get(theme),
		theme: theme,
		cache: newSpanCache(defaultExpiration, cleanupInterval),
	}
	if filename != "" {
		if l := lexers.Match(filename); l != nil {
			h.lexer = chroma.Coalesce(l)
		}
	}

	log.Debug(log.CatHighlight, "highlighter", "file", filename, "lexer", h.Language(), "theme", theme)
	return h
}

// Enabled reports whether a lexer was found.
func (h *Highlighter) Enabled() bool {
	return h != nil && h.lexer != nil
}

// Language returns the lexer name, or "" when disabled.
func (h *Highlighter) Language() string {
	if !h.Enabled() {
		return ""
	}
	return h.lexer.Config().Name
}

// Line returns the styled spans making up text. Concatenating the span
// texts always yields text.
func (h *Highlighter) Line(text string) []Span {
	if !h.Enabled() || text == "" {
		return []Span{{Text: text, Style: lipgloss.NewStyle()}}
	}

	key := h.lexer.Config().Name + "\x00" + h.theme + "\x00" + text
	spans, err := h.cache.getOrLoad(key, func() ([]Span, error) {
		return h.tokenise(text)
	})
	if err != nil {
		log.ErrorErr(log.CatHighlight, "tokenise failed", err, "lexer", h.Language())
		return []Span{{Text: text, Style: lipgloss.NewStyle()}}
	}
	return spans
}

func (h *Highlighter) tokenise(text string) ([]Span, error) {
	it, err := h.lexer.Tokenise(nil, text)
	if err != nil {
		return nil, fmt.Errorf("tokenise: %w", err)
	}

	var spans []Span
	for _, tok := range it.Tokens() {
		// Lexers that ensure a final newline add one we never render.
		v := strings.ReplaceAll(tok.Value, "\n", "")
		if v == "" {
			continue
		}
		spans = append(spans, Span{Text: v, Style: h.styleFor(tok.Type)})
	}
	if joined := joinSpans(spans); joined != text {
		return nil, fmt.Errorf("tokens do not cover line: got %q", joined)
	}
	return spans, nil
}

func (h *Highlighter) styleFor(t chroma.TokenType) lipgloss.Style {
	entry := h.style.Get(t)
	s := lipgloss.NewStyle()
	if entry.Colour.IsSet() {
		s = s.Foreground(lipgloss.Color(entry.Colour.String()))
	}
	if entry.Bold == chroma.Yes {
		s = s.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		s = s.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		s = s.Underline(true)
	}
	return s
}

func joinSpans(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}
