package editor

import (
	"github.com/zjrosen/vedit/internal/editor/buffer"
)

// ScreenPos is a 1-based column and row on the visible text area.
// It is never a document coordinate.
type ScreenPos struct {
	X int
	Y int
}

// viewport is the half-open line window [lower, upper) shown on screen.
type viewport struct {
	lower  int
	upper  int
	height int
}

// row is the 0-based document line under the cursor.
func (s *Session) row() int { return s.line - 1 }

// curPos converts the cursor to a document coordinate.
func (s *Session) curPos() buffer.Pos {
	return buffer.Pos{Line: s.row(), Col: s.pos.X - 1}
}

// lenOfLine is the largest cursor column on line idx for the current mode.
// Insert mode may sit one past the last character.
func (s *Session) lenOfLine(idx int) int {
	n := s.buf.LenOfLineAt(idx)
	if s.mode == ModeInsert {
		return n + 1
	}
	return max(n, 1)
}

func (s *Session) lenOfCurLine() int { return s.lenOfLine(s.row()) }

// settle restores the viewport invariants after the cursor line or the
// document length changed. The window follows the cursor by the smallest
// scroll, slides both bounds together, and only shrinks at its upper bound
// when the document is shorter than one screen.
func (s *Session) settle() {
	n := s.buf.Len()
	s.line = min(max(s.line, 1), n)

	v := &s.view
	if s.line <= v.lower {
		v.lower = s.line - 1
	}
	if s.line > v.lower+v.height {
		v.lower = s.line - v.height
	}
	if v.lower+v.height > n {
		v.lower = max(0, n-v.height)
	}
	v.upper = min(n, v.lower+v.height)
	s.pos.Y = s.line - v.lower
}

// GoTo moves the cursor to a document position without clamping the column,
// scrolling as little as possible to show the line.
func (s *Session) GoTo(p buffer.Pos) {
	s.line = p.Line + 1
	s.pos.X = max(p.Col, 0) + 1
	s.settle()
}

func (s *Session) clampX() {
	s.pos.X = min(max(s.pos.X, 1), s.lenOfCurLine())
}

func (s *Session) incX() {
	if s.pos.X < s.lenOfCurLine() {
		s.pos.X++
	}
}

func (s *Session) decX() {
	if s.pos.X > 1 {
		s.pos.X--
	}
}

// incY moves down one line, scrolling at the bottom edge.
func (s *Session) incY() {
	if s.line >= s.buf.Len() {
		return
	}
	s.line++
	s.settle()
}

// decY moves up one line, scrolling at the top edge.
func (s *Session) decY() {
	if s.line <= 1 {
		return
	}
	s.line--
	s.settle()
}

func (s *Session) moveToStartOfLine() { s.pos.X = 1 }

func (s *Session) moveToEndOfLine() { s.pos.X = s.lenOfCurLine() }

func (s *Session) moveToFirstNonBlank() {
	clusters := buffer.Split(s.buf.LineAt(s.row()))
	for i, c := range clusters {
		if !buffer.IsBlank(c) {
			s.pos.X = i + 1
			return
		}
	}
	s.pos.X = max(len(clusters), 1)
}

// gotoLine jumps to 1-based line n, clamped, at its first non-blank.
func (s *Session) gotoLine(n int) {
	s.line = n
	s.settle()
	s.moveToFirstNonBlank()
}

func (s *Session) curChar() string {
	return s.buf.CharAt(s.row(), s.pos.X-1)
}

// forwardToNextChar steps one character forward, wrapping to the start of
// the next line. It reports false at the end of the document.
func (s *Session) forwardToNextChar() bool {
	if s.pos.X < s.buf.LenOfLineAt(s.row()) {
		s.pos.X++
		return true
	}
	if s.line >= s.buf.Len() {
		return false
	}
	s.line++
	s.pos.X = 1
	s.settle()
	return true
}

// backwardToNextChar steps one character back, wrapping to the last
// character of the previous line. It reports false at the start of the document.
func (s *Session) backwardToNextChar() bool {
	if s.pos.X > 1 {
		s.pos.X--
		return true
	}
	if s.line <= 1 {
		return false
	}
	s.line--
	s.pos.X = max(s.buf.LenOfLineAt(s.row()), 1)
	s.settle()
	return true
}

type mark struct{ line, x int }

func (s *Session) save() mark { return mark{s.line, s.pos.X} }

func (s *Session) restore(m mark) {
	s.line, s.pos.X = m.line, m.x
	s.settle()
}

// forwardToStartOfNextWord implements w.
func (s *Session) forwardToStartOfNextWord() {
	for buffer.IsWord(s.curChar()) {
		old := s.line
		if !s.forwardToNextChar() {
			return
		}
		if s.line != old {
			break
		}
	}
	for !buffer.IsWord(s.curChar()) {
		if !s.forwardToNextChar() {
			return
		}
	}
}

// forwardToEndOfNextWord implements e.
func (s *Session) forwardToEndOfNextWord() {
	start := s.save()
	if !s.forwardToNextChar() {
		return
	}
	for !buffer.IsWord(s.curChar()) {
		if !s.forwardToNextChar() {
			s.restore(start)
			return
		}
	}
	for {
		old := s.line
		if !s.forwardToNextChar() {
			return
		}
		if s.line != old || !buffer.IsWord(s.curChar()) {
			s.backwardToNextChar()
			return
		}
	}
}

// backwardToStartOfPrevWord implements b.
func (s *Session) backwardToStartOfPrevWord() {
	start := s.save()
	if !s.backwardToNextChar() {
		return
	}
	for !buffer.IsWord(s.curChar()) {
		if !s.backwardToNextChar() {
			s.restore(start)
			return
		}
	}
	for {
		old := s.line
		if !s.backwardToNextChar() {
			return
		}
		if s.line != old || !buffer.IsWord(s.curChar()) {
			s.forwardToNextChar()
			return
		}
	}
}

// newLine splits the current line at the cursor and moves to the new line.
func (s *Session) newLine() {
	s.buf.NewLineAt(s.row(), s.pos.X-1)
	s.line++
	s.moveToStartOfLine()
	s.settle()
}

// newLineAhead opens an empty line above the cursor and moves onto it.
func (s *Session) newLineAhead() {
	s.buf.AddLineBefore(s.row(), "")
	s.moveToStartOfLine()
	s.settle()
}

// deleteCurChar removes the character under the cursor. On an empty
// position at the end of a line it joins the next line instead and returns "\n".
func (s *Session) deleteCurChar() (string, bool) {
	row := s.row()
	if s.curChar() != buffer.NoChar {
		return s.buf.DeleteAt(row, s.pos.X)
	}
	if row+1 >= s.buf.Len() {
		return "", false
	}
	next := s.buf.DeleteLineAt(row + 1)
	s.buf.AppendStrAt(row, s.buf.LenOfLineAt(row), next)
	s.settle()
	return "\n", true
}

// backspace removes the character before the cursor, joining with the
// previous line at column 1. It returns what was removed.
func (s *Session) backspace() (string, bool) {
	row := s.row()
	if s.pos.X > 1 {
		ch, ok := s.buf.DeleteAt(row, s.pos.X-1)
		if ok {
			s.pos.X--
		}
		return ch, ok
	}
	if row == 0 {
		return "", false
	}
	prevLen := s.buf.LenOfLineAt(row - 1)
	content := s.buf.DeleteLineAt(row)
	s.buf.AppendStrAt(row-1, prevLen, content)
	s.line--
	s.pos.X = prevLen + 1
	s.settle()
	return "\n", true
}

// insertText types text at the cursor, handling embedded newlines.
func (s *Session) insertText(text string) {
	for _, g := range buffer.Split(text) {
		if g == "\n" {
			s.newLine()
			continue
		}
		s.buf.InsertAt(s.row(), s.pos.X-1, g)
		s.pos.X++
	}
}
