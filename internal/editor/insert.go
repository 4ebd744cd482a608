package editor

import (
	"strings"

	"github.com/zjrosen/vedit/internal/editor/history"
	"github.com/zjrosen/vedit/internal/keys"
)

func (s *Session) handleInsert(k keys.Key) (Mode, error) {
	switch k.Type {
	case keys.Esc:
		s.endInsert()
		s.decX()
		return ModeNormal, nil
	case keys.Left, keys.Right, keys.Up, keys.Down:
		s.endInsert()
		switch k.Type {
		case keys.Left:
			s.decX()
		case keys.Right:
			s.incX()
		case keys.Up:
			s.decY()
		case keys.Down:
			s.incY()
		}
		return ModeInsert, nil
	case keys.Rune, keys.Tab, keys.Enter:
		if !s.ins.open {
			s.beginInsert(false)
		}
		s.insertKey(k)
	case keys.Backspace:
		s.insertKey(k)
	}
	return ModeInsert, nil
}

// insertKey applies one Insert-mode edit key and mirrors it into the open
// action. Undo and redo replay recorded keys through here.
func (s *Session) insertKey(k keys.Key) {
	switch k.Type {
	case keys.Rune:
		s.buf.InsertAt(s.row(), s.pos.X-1, k.Text)
		s.pos.X++
		s.log.AppendKeyToTop(k)
	case keys.Tab:
		s.buf.InsertAt(s.row(), s.pos.X-1, strings.Repeat(" ", s.tabWidth))
		s.pos.X += s.tabWidth
		s.log.AppendKeyToTop(k)
	case keys.Enter:
		s.newLine()
		s.log.AppendKeyToTop(k)
	case keys.Backspace:
		removed, ok := s.backspace()
		if !ok || s.log.Replaying() {
			return
		}
		if s.ins.open && s.discardTyped() {
			return
		}
		// Deleting text that predates this insert: record it on its own.
		s.endInsert()
		s.record(history.Delete, s.curPos(), removed)
	}
}

// discardTyped forgets the last typed key after a backspace removed its
// character. A recorded Tab shrinks to the spaces that remain.
func (s *Session) discardTyped() bool {
	top := s.log.Top()
	if top == nil || len(top.Keys) == 0 {
		return false
	}
	last := top.Keys[len(top.Keys)-1]
	if !s.log.DiscardKeyOnTop() {
		return false
	}
	if last.Type == keys.Tab {
		for range s.tabWidth - 1 {
			s.log.AppendKeyToTop(keys.Char(" "))
		}
	}
	return true
}

// endInsert closes the open Insert action, if any, dropping it when nothing
// was typed.
func (s *Session) endInsert() {
	if !s.ins.open {
		return
	}
	if s.ins.trailingNewline {
		s.log.AppendKeyToTop(keys.KeyEnter)
	}
	s.ins = insertSession{}
	s.log.DropEmptyTop()
}
