// Package buffer holds the document being edited as an ordered list of lines.
//
// Every positional method clamps out-of-range arguments to the nearest valid
// line or column instead of failing. Callers rely on that leniency at
// document boundaries, so it is part of the contract rather than a fallback.
package buffer

import (
	"slices"
	"strings"
)

// NoChar is returned by CharAt and At when there is no character at the
// requested position (empty line or column past the end).
const NoChar = ""

// Pos is a document coordinate: 0-based line index and 0-based grapheme column.
// It is never a screen position.
type Pos struct {
	Line int
	Col  int
}

// Before reports whether p comes strictly before q in document order.
func (p Pos) Before(q Pos) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Col < q.Col
}

// Buffer is a line-oriented document. It always holds at least one line.
type Buffer struct {
	lines []string
}

// New creates a buffer from lines. No lines yields a single empty line.
func New(lines ...string) *Buffer {
	b := &Buffer{lines: make([]string, 0, max(len(lines), 1))}
	b.lines = append(b.lines, lines...)
	if len(b.lines) == 0 {
		b.lines = append(b.lines, "")
	}
	return b
}

// FromString splits s into lines. One trailing newline terminates the last
// line instead of starting an empty one, and CRLF endings are accepted.
func FromString(s string) *Buffer {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")
	return New(strings.Split(s, "\n")...)
}

// Len returns the number of lines.
func (b *Buffer) Len() int { return len(b.lines) }

func (b *Buffer) clampLine(idx int) int {
	if idx < 0 {
		return 0
	}
	if idx >= len(b.lines) {
		return len(b.lines) - 1
	}
	return idx
}

func clampCol(col, n int) int {
	if col < 0 {
		return 0
	}
	if col > n {
		return n
	}
	return col
}

// LineAt returns the text of line idx, clamped to the last line.
func (b *Buffer) LineAt(idx int) string {
	return b.lines[b.clampLine(idx)]
}

// LenOfLineAt returns the number of graphemes on line idx.
func (b *Buffer) LenOfLineAt(idx int) int {
	return Count(b.LineAt(idx))
}

// Lines returns a copy of all lines.
func (b *Buffer) Lines() []string {
	return slices.Clone(b.lines)
}

// String joins all lines with "\n". This is the save format.
func (b *Buffer) String() string {
	return strings.Join(b.lines, "\n")
}

// CharAt returns the grapheme at (line, col) or NoChar.
func (b *Buffer) CharAt(line, col int) string {
	return At(b.LineAt(line), max(col, 0))
}

// InsertAt inserts s before column col of line. s must not contain a newline;
// use InsertText or NewLineAt to split lines.
func (b *Buffer) InsertAt(line, col int, s string) {
	line = b.clampLine(line)
	text := b.lines[line]
	b.lines[line] = Insert(text, clampCol(col, Count(text)), s)
}

// AppendStrAt splices s into line at col. It is used to re-join a line after
// the line below it has been deleted.
func (b *Buffer) AppendStrAt(line, col int, s string) {
	b.InsertAt(line, col, s)
}

// DeleteAt removes the grapheme before col (the one at col-1) and returns it.
// It returns false when the line is already empty.
func (b *Buffer) DeleteAt(line, col int) (string, bool) {
	line = b.clampLine(line)
	text := b.lines[line]
	n := Count(text)
	if n == 0 {
		return NoChar, false
	}
	idx := min(max(col, 1), n) - 1
	removed := At(text, idx)
	b.lines[line] = Slice(text, 0, idx) + Slice(text, idx+1, n)
	return removed, true
}

// NewLineAt splits line at col; the tail becomes a new line directly below.
func (b *Buffer) NewLineAt(line, col int) {
	line = b.clampLine(line)
	text := b.lines[line]
	n := Count(text)
	col = clampCol(col, n)
	b.lines[line] = Slice(text, 0, col)
	b.AddLineBefore(line+1, Slice(text, col, n))
}

// AddLineBefore inserts content as a new line at idx. An index past the end
// appends.
func (b *Buffer) AddLineBefore(idx int, content string) {
	if idx >= len(b.lines) {
		b.PushLine(content)
		return
	}
	b.lines = slices.Insert(b.lines, max(idx, 0), content)
}

// PushLine appends content as the last line.
func (b *Buffer) PushLine(content string) {
	b.lines = append(b.lines, content)
}

// DeleteLineAt removes line idx and returns its content. Deleting the only
// line leaves a single empty line behind.
func (b *Buffer) DeleteLineAt(idx int) string {
	idx = b.clampLine(idx)
	content := b.lines[idx]
	if len(b.lines) == 1 {
		b.lines[0] = ""
		return content
	}
	b.lines = slices.Delete(b.lines, idx, idx+1)
	return content
}

// DeleteRange deletes the inclusive span between start and end, in either
// order, and returns the removed text with "\n" between lines.
//
// End columns may be -1 to select nothing on the end line, which is how an
// empty line is addressed by a line-wise selection.
//
// When both the text before start and the text after end are empty, the
// surviving line is removed too and "\n" is appended to the result, unless
// it is the last line of the document. Inserting the returned text back at
// start with InsertText restores the original content in every case.
func (b *Buffer) DeleteRange(start, end Pos) string {
	if end.Before(start) {
		start, end = end, start
	}
	start.Line = b.clampLine(start.Line)
	end.Line = b.clampLine(end.Line)

	first := b.lines[start.Line]
	last := b.lines[end.Line]
	firstLen, lastLen := Count(first), Count(last)
	startCol := clampCol(start.Col, firstLen)
	endCol := min(max(end.Col, -1), lastLen-1)

	var deleted strings.Builder
	var prefix, suffix string
	if start.Line == end.Line {
		prefix = Slice(first, 0, startCol)
		suffix = Slice(first, max(endCol+1, startCol), firstLen)
		deleted.WriteString(Slice(first, startCol, endCol+1))
	} else {
		prefix = Slice(first, 0, startCol)
		suffix = Slice(last, endCol+1, lastLen)
		deleted.WriteString(Slice(first, startCol, firstLen))
		for _, mid := range b.lines[start.Line+1 : end.Line] {
			deleted.WriteString("\n")
			deleted.WriteString(mid)
		}
		deleted.WriteString("\n")
		deleted.WriteString(Slice(last, 0, endCol+1))
		b.lines = slices.Delete(b.lines, start.Line+1, end.Line+1)
	}

	b.lines[start.Line] = prefix + suffix
	if prefix == "" && suffix == "" && start.Line < len(b.lines)-1 {
		b.lines = slices.Delete(b.lines, start.Line, start.Line+1)
		deleted.WriteString("\n")
	}
	return deleted.String()
}

// InsertText inserts text, which may span several lines, at pos and returns
// the position just after the inserted text.
func (b *Buffer) InsertText(pos Pos, text string) Pos {
	line := b.clampLine(pos.Line)
	cur := b.lines[line]
	n := Count(cur)
	col := clampCol(pos.Col, n)
	head, tail := Slice(cur, 0, col), Slice(cur, col, n)

	parts := strings.Split(text, "\n")
	if len(parts) == 1 {
		b.lines[line] = head + text + tail
		return Pos{Line: line, Col: col + Count(text)}
	}

	lastPart := parts[len(parts)-1]
	added := make([]string, 0, len(parts)-1)
	added = append(added, parts[1:len(parts)-1]...)
	added = append(added, lastPart+tail)
	b.lines[line] = head + parts[0]
	b.lines = slices.Insert(b.lines, line+1, added...)
	return Pos{Line: line + len(parts) - 1, Col: Count(lastPart)}
}
