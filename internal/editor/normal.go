package editor

import (
	"strings"

	"github.com/zjrosen/vedit/internal/editor/buffer"
	"github.com/zjrosen/vedit/internal/editor/history"
	"github.com/zjrosen/vedit/internal/editor/selection"
	"github.com/zjrosen/vedit/internal/editor/task"
	"github.com/zjrosen/vedit/internal/keys"
	"github.com/zjrosen/vedit/internal/log"
)

func (s *Session) handleNormal(k keys.Key) (Mode, error) {
	switch s.task.Feed(k) {
	case task.Pending:
		return ModeNormal, nil
	case task.Dropped:
		log.Debug(log.CatTask, "dropped", "key", k)
		return ModeNormal, nil
	case task.Ready:
		return s.runTask(s.task.Take())
	}
	return s.normalKey(k)
}

// runTask replays a completed counted command through the same single-key
// path as uncounted input.
func (s *Session) runTask(cmd task.Command) (Mode, error) {
	log.Debug(log.CatTask, "run", "count", cmd.Count, "key", cmd.Key, "compound", cmd.Compound)
	switch {
	case cmd.Compound == "dd":
		s.deleteLines(cmd.Count)
		return ModeNormal, nil
	case cmd.Compound == "gg":
		s.gotoLine(cmd.Count)
		return ModeNormal, nil
	case cmd.Key.Is("G"):
		s.gotoLine(cmd.Count)
		return ModeNormal, nil
	}

	for range cmd.Count {
		next, err := s.normalKey(cmd.Key)
		if err != nil || next != ModeNormal {
			return next, err
		}
		s.clampX()
	}
	return ModeNormal, nil
}

// motion applies a cursor motion shared by Normal and Visual mode. It
// reports false when k is not a motion.
func (s *Session) motion(k keys.Key) bool {
	switch {
	case k.Is("h"), k == keys.KeyLeft, k == keys.KeyBackspace:
		s.decX()
	case k.Is("l"), k == keys.KeyRight, k.Is(" "):
		s.incX()
	case k.Is("j"), k == keys.KeyDown:
		s.incY()
	case k.Is("k"), k == keys.KeyUp:
		s.decY()
	case k.Is("0"):
		s.moveToStartOfLine()
	case k.Is("$"):
		s.moveToEndOfLine()
	case k.Is("^"):
		s.moveToFirstNonBlank()
	case k.Is("w"):
		s.forwardToStartOfNextWord()
	case k.Is("e"):
		s.forwardToEndOfNextWord()
	case k.Is("b"):
		s.backwardToStartOfPrevWord()
	case k.Is("G"):
		s.gotoLine(s.buf.Len())
	default:
		return false
	}
	return true
}

// normalKey handles one uncounted Normal-mode key.
func (s *Session) normalKey(k keys.Key) (Mode, error) {
	if s.motion(k) {
		return ModeNormal, nil
	}

	switch {
	case k.Is("x"):
		s.deleteChars(1)
	case k.Is("u"):
		s.undo()
	case k == keys.CtrlKey("r"):
		s.redo()
	case k.Is("."):
		s.repeatLast()

	case k.Is("i"):
		s.beginInsert(false)
	case k.Is("a"):
		s.enter(ModeInsert)
		s.incX()
		s.beginInsert(false)
	case k.Is("A"):
		s.enter(ModeInsert)
		s.moveToEndOfLine()
		s.beginInsert(false)
	case k.Is("I"):
		s.moveToFirstNonBlank()
		s.beginInsert(false)
	case k.Is("o"):
		s.enter(ModeInsert)
		s.moveToEndOfLine()
		s.beginInsert(false)
		s.insertKey(keys.KeyEnter)
	case k.Is("O"):
		s.newLineAhead()
		s.beginInsert(true)
	case k.Is("s"):
		if s.curChar() != buffer.NoChar {
			s.deleteChars(1)
		}
		s.beginInsert(false)
	case k.Is("S"):
		s.clearLine()
		s.beginInsert(false)

	case k.Is("v"):
		s.sel.Set(selection.CharacterView{Start: s.curPos(), End: s.curPos()})
		return ModeVisual, nil
	case k.Is("V"):
		s.sel.Set(selection.LineView{Start: s.row(), End: s.row()})
		return ModeVisual, nil
	case k == keys.CtrlKey("v"):
		s.sel.Set(selection.BlockView{Start: s.curPos(), End: s.curPos()})
		return ModeVisual, nil

	case k.Is(":"):
		return ModeCommand, nil
	}
	return s.mode, nil
}

// beginInsert enters Insert mode and opens a new Insert action at the cursor.
func (s *Session) beginInsert(trailingNewline bool) {
	s.enter(ModeInsert)
	s.log.Add(history.Insert, s.curPos())
	s.ins = insertSession{open: true, trailingNewline: trailingNewline}
	log.Debug(log.CatHistory, "open insert", "anchor", s.curPos())
}

// deleteChars deletes up to n characters under the cursor as one Delete action.
func (s *Session) deleteChars(n int) {
	anchor := s.curPos()
	var deleted strings.Builder
	for range n {
		ch, ok := s.deleteCurChar()
		if !ok {
			break
		}
		deleted.WriteString(ch)
	}
	if deleted.Len() == 0 {
		return
	}
	s.record(history.Delete, anchor, deleted.String())
}

// clearLine empties the current line for S, recording what it held.
func (s *Session) clearLine() {
	row := s.row()
	text := s.buf.LineAt(row)
	s.moveToStartOfLine()
	if text == "" {
		return
	}
	before := s.buf.Len()
	s.buf.DeleteRange(buffer.Pos{Line: row}, buffer.Pos{Line: row, Col: s.buf.LenOfLineAt(row) - 1})
	if s.buf.Len() < before {
		s.buf.AddLineBefore(row, "")
	}
	s.record(history.Delete, buffer.Pos{Line: row}, text)
}

// deleteLines deletes n whole lines starting at the cursor line (dd).
func (s *Session) deleteLines(n int) {
	row := s.row()
	total := s.buf.Len()
	n = min(n, total-row)
	text := strings.Join(s.buf.Lines()[row:row+n], "\n")

	var anchor buffer.Pos
	switch {
	case row+n < total:
		text += "\n"
		anchor = buffer.Pos{Line: row}
	case row > 0:
		text = "\n" + text
		anchor = buffer.Pos{Line: row - 1, Col: s.buf.LenOfLineAt(row - 1)}
	}
	for range n {
		s.buf.DeleteLineAt(row)
	}
	s.settle()
	s.moveToFirstNonBlank()
	log.Debug(log.CatBuffer, "delete lines", "line", row, "count", n)

	if text != "" {
		s.record(history.Delete, anchor, text)
	}
}

// record commits a finished edit as a single action.
func (s *Session) record(kind history.Kind, anchor buffer.Pos, text string) {
	if text == "" {
		return
	}
	s.log.Add(kind, anchor)
	s.log.AppendStringToTop(text)
	log.Debug(log.CatHistory, "record", "kind", kind, "anchor", anchor, "len", len(text))
}
