// Package selection models visual-mode extents over document coordinates.
//
// A selection is stored exactly as the user drew it: the anchor stays in
// Start and the cursor moves End. Every read normalizes a copy so Start
// precedes End in document order.
package selection

import (
	"errors"

	"github.com/zjrosen/vedit/internal/editor/buffer"
)

var (
	// ErrBlockViewUnimplemented is returned by every read or edit of a BlockView.
	ErrBlockViewUnimplemented = errors.New("block-wise selection is not implemented")
	// ErrNoSelection is returned by Range when nothing is selected.
	ErrNoSelection = errors.New("no active selection")
)

// View is one of CharacterView, LineView or BlockView. A nil View means no selection.
type View interface {
	isView()
}

// CharacterView selects every character between two document positions, inclusive.
type CharacterView struct {
	Start buffer.Pos
	End   buffer.Pos
}

// LineView selects whole lines Start through End, inclusive.
type LineView struct {
	Start int
	End   int
}

// BlockView is a rectangular selection. It can be entered and extended but
// not read or edited.
type BlockView struct {
	Start buffer.Pos
	End   buffer.Pos
}

func (CharacterView) isView() {}
func (LineView) isView()      {}
func (BlockView) isView()     {}

// Sort returns v with its endpoints in document order.
func Sort(v View) (View, error) {
	switch v := v.(type) {
	case CharacterView:
		if v.End.Before(v.Start) {
			v.Start, v.End = v.End, v.Start
		}
		return v, nil
	case LineView:
		if v.End < v.Start {
			v.Start, v.End = v.End, v.Start
		}
		return v, nil
	case BlockView:
		return nil, ErrBlockViewUnimplemented
	default:
		return nil, nil
	}
}

// Model holds the session's current selection.
type Model struct {
	view View
}

// Set replaces the selection.
func (m *Model) Set(v View) { m.view = v }

// Clear drops the selection.
func (m *Model) Clear() { m.view = nil }

// View returns the selection as drawn, unsorted. Nil means none.
func (m *Model) View() View { return m.view }

// Extend moves the selection's free end to the cursor position.
func (m *Model) Extend(cur buffer.Pos) {
	switch v := m.view.(type) {
	case CharacterView:
		v.End = cur
		m.view = v
	case LineView:
		v.End = cur.Line
		m.view = v
	case BlockView:
		v.End = cur
		m.view = v
	}
}

// IsSelectStart reports whether the cell at (col, line) lies inside the
// selection. Both endpoints are included; a line-wise selection covers every
// column of its lines.
func (m *Model) IsSelectStart(col, line int) (bool, error) {
	v, err := Sort(m.view)
	if err != nil {
		return false, err
	}
	switch v := v.(type) {
	case CharacterView:
		afterStart := line > v.Start.Line || (line == v.Start.Line && col >= v.Start.Col)
		beforeEnd := line < v.End.Line || (line == v.End.Line && col <= v.End.Col)
		return afterStart && beforeEnd, nil
	case LineView:
		return line >= v.Start && line <= v.End, nil
	}
	return false, nil
}

// IsSelectEnd reports whether highlighting stops after the cell at (col, line).
func (m *Model) IsSelectEnd(col, line int) (bool, error) {
	v, err := Sort(m.view)
	if err != nil {
		return false, err
	}
	switch v := v.(type) {
	case CharacterView:
		return line > v.End.Line || (line == v.End.Line && col >= v.End.Col), nil
	case LineView:
		return line > v.End, nil
	}
	return false, nil
}

// Range returns the inclusive buffer span covered by the selection, ready for
// buffer.DeleteRange. lineLen reports the grapheme length of a line; a
// line-wise selection ends at column lineLen-1, which is -1 for an empty line.
func (m *Model) Range(lineLen func(int) int) (start, end buffer.Pos, err error) {
	v, err := Sort(m.view)
	if err != nil {
		return buffer.Pos{}, buffer.Pos{}, err
	}
	switch v := v.(type) {
	case CharacterView:
		return v.Start, v.End, nil
	case LineView:
		return buffer.Pos{Line: v.Start}, buffer.Pos{Line: v.End, Col: lineLen(v.End) - 1}, nil
	}
	return buffer.Pos{}, buffer.Pos{}, ErrNoSelection
}
