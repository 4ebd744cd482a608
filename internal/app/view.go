package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/vedit/internal/editor"
	"github.com/zjrosen/vedit/internal/editor/buffer"
	"github.com/zjrosen/vedit/internal/editor/selection"
	"github.com/zjrosen/vedit/internal/highlight"
)

// View implements tea.Model interface.
func (m Model) View() string {
	if m.session.Mode() == editor.ModeExit {
		return ""
	}

	width := m.width
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	lower, upper := m.session.Viewport()
	rows := m.textRows()
	for i := range rows {
		line := lower + i
		if line < upper {
			b.WriteString(m.renderLine(line, width))
		} else {
			b.WriteString(TildeStyle.Render("~"))
		}
		b.WriteByte('\n')
	}
	b.WriteString(m.renderStatus(width))
	return b.String()
}

// textRows is the height of the text area. The last terminal row always
// belongs to the status line.
func (m Model) textRows() int {
	if m.height <= 0 {
		return editor.DefaultHeight - 1
	}
	return max(m.height-1, 1)
}

// renderLine draws document line idx, overlaying the selection and cursor
// on the highlighted spans and clipping to width display cells.
func (m Model) renderLine(idx, width int) string {
	text := m.session.LineAt(idx)
	mode := m.session.Mode()

	cursorCol := -1
	if idx == m.session.CurLine()-1 && mode != editor.ModeCommand {
		cursorCol = m.session.Cursor().X - 1
	}

	var spans []highlight.Span
	if m.highlighter != nil {
		spans = m.highlighter.Line(text)
	} else {
		spans = []highlight.Span{{Text: text, Style: lipgloss.NewStyle()}}
	}

	var (
		b    strings.Builder
		col  int
		used int
	)
	for _, span := range spans {
		for _, g := range buffer.Split(span.Text) {
			w := runewidth.StringWidth(g)
			if used+w > width {
				return b.String()
			}
			used += w

			style := span.Style
			switch {
			case col == cursorCol:
				style = CursorStyle
			case m.selected(col, idx):
				style = style.Reverse(true)
			}
			b.WriteString(style.Render(g))
			col++
		}
	}

	// The cursor may sit one past the end in Insert mode or on an empty line.
	if cursorCol >= col && used < width {
		b.WriteString(CursorStyle.Render(" "))
	} else if col == 0 && used < width && m.selected(0, idx) {
		b.WriteString(SelectionStyle.Render(" "))
	}
	return b.String()
}

// selected reports whether the cell is inside the visual selection. Block
// selections are drawn as a rectangle even though they cannot be edited.
func (m Model) selected(col, line int) bool {
	if m.session.Mode() != editor.ModeVisual {
		return false
	}
	if v, ok := m.session.Selection().(selection.BlockView); ok {
		top, bottom := min(v.Start.Line, v.End.Line), max(v.Start.Line, v.End.Line)
		left, right := min(v.Start.Col, v.End.Col), max(v.Start.Col, v.End.Col)
		return line >= top && line <= bottom && col >= left && col <= right
	}
	in, err := m.session.IsSelectStart(col, line)
	return err == nil && in
}

// renderStatus draws the bottom line: the command line while typing a ":"
// command, otherwise the status bar (when enabled) or the last message.
func (m Model) renderStatus(width int) string {
	s := m.session
	if s.Mode() == editor.ModeCommand {
		return ansi.Truncate(":"+s.CommandLine(), width, "")
	}

	msg := s.Message()
	if !m.showStatus {
		return ansi.Truncate(m.styleMessage(msg), width, "…")
	}

	name := "[No Name]"
	if m.store != nil {
		name = m.store.Name()
	}
	if s.Modified() {
		name += " [+]"
	}

	left := ModeBadge(s.Mode()) + " " + name
	if pending := s.PendingKeys(); pending != "" {
		left += "  " + pending
	}
	if msg != "" {
		left += "  " + m.styleMessage(msg)
	} else {
		left += "  " + m.help.ShortHelpView(m.keys.ShortHelp())
	}

	pos := s.CursorPos()
	lower, upper := s.Viewport()
	right := fmt.Sprintf(" %d:%d  %d-%d/%d ", pos.Line+1, pos.Col+1, lower+1, upper, s.LineCount())

	avail := width - lipgloss.Width(right)
	if avail < 1 {
		return ansi.Truncate(left, width, "…")
	}
	left = ansi.Truncate(left, avail, "…")
	gap := strings.Repeat(" ", max(avail-lipgloss.Width(left), 0))
	return StatusBarStyle.Render(left+gap) + StatusBarStyle.Render(right)
}

func (m Model) styleMessage(msg string) string {
	switch {
	case msg == "":
		return ""
	case strings.HasPrefix(msg, "warning:"):
		return WarningStyle.Render(msg)
	case strings.HasPrefix(msg, "not an editor command"),
		strings.HasPrefix(msg, "no write since last change"),
		strings.HasPrefix(msg, "no file name"),
		strings.Contains(msg, "not implemented"):
		return ErrorStyle.Render(msg)
	}
	return msg
}
