package editor

import (
	"github.com/zjrosen/vedit/internal/editor/history"
	"github.com/zjrosen/vedit/internal/keys"
	"github.com/zjrosen/vedit/internal/log"
)

func (s *Session) handleVisual(k keys.Key) (Mode, error) {
	if s.motion(k) {
		s.clampX()
		s.sel.Extend(s.curPos())
		return ModeVisual, nil
	}

	switch {
	case k == keys.KeyEsc, k.Is("v"), k.Is("V"), k == keys.CtrlKey("v"):
		return ModeNormal, nil
	case k.Is("d"), k.Is("x"):
		if err := s.deleteSelected(); err != nil {
			return ModeVisual, err
		}
		return ModeNormal, nil
	case k.Is("c"):
		if err := s.deleteSelected(); err != nil {
			return ModeVisual, err
		}
		s.sel.Clear()
		s.beginInsert(false)
		return ModeInsert, nil
	}
	return ModeVisual, nil
}

// deleteSelected removes the selected text, leaves the cursor at the start
// of the selection, and records a Delete action if anything was removed.
func (s *Session) deleteSelected() error {
	start, end, err := s.sel.Range(s.buf.LenOfLineAt)
	if err != nil {
		log.ErrorErr(log.CatBuffer, "delete selection", err, "selection", s.sel.View())
		return err
	}

	text := s.buf.DeleteRange(start, end)
	s.GoTo(start)
	log.Debug(log.CatBuffer, "delete selection", "start", start, "end", end, "len", len(text))
	if text != "" {
		s.record(history.Delete, start, text)
	}
	return nil
}
