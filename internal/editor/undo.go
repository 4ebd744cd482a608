package editor

import (
	"slices"

	"github.com/zjrosen/vedit/internal/editor/history"
	"github.com/zjrosen/vedit/internal/keys"
	"github.com/zjrosen/vedit/internal/log"
)

// undo reverses the latest committed action from its anchor.
func (s *Session) undo() {
	a, ok := s.log.Backward()
	if !ok {
		s.message = "already at oldest change"
		return
	}
	log.Debug(log.CatHistory, "undo", "kind", a.Kind, "anchor", a.Anchor, "keys", len(a.Keys))

	s.log.Replay(func() {
		s.GoTo(a.Anchor)
		switch a.Kind {
		case history.Insert:
			for _, k := range a.Keys {
				n := 1
				if k.Type == keys.Tab {
					n = s.tabWidth
				}
				for range n {
					s.deleteCurChar()
				}
			}
		case history.Delete:
			s.insertText(a.Text(s.tabWidth))
		}
		s.GoTo(a.Anchor)
	})
}

// redo re-applies the latest undone action.
func (s *Session) redo() {
	a, ok := s.log.Forward()
	if !ok {
		s.message = "already at newest change"
		return
	}
	log.Debug(log.CatHistory, "redo", "kind", a.Kind, "anchor", a.Anchor, "keys", len(a.Keys))
	s.apply(a)
}

// apply replays an action's keys through the live edit paths: Insert keys
// go through insertKey, Delete keys become one x each. Unless repeating,
// the cursor first returns to the action's anchor.
func (s *Session) apply(a *history.Action) {
	s.log.Replay(func() {
		if !s.repeating {
			s.GoTo(a.Anchor)
		}
		switch a.Kind {
		case history.Insert:
			prev := s.mode
			s.mode = ModeInsert
			for _, k := range a.Keys {
				s.insertKey(k)
			}
			s.mode = prev
			s.decX()
		case history.Delete:
			for range a.Keys {
				s.deleteCurChar()
			}
		}
	})
}

// repeatLast implements ".": the most recent action is applied again at the
// cursor and committed as a new action.
func (s *Session) repeatLast() {
	top := s.log.Top()
	if top == nil {
		return
	}
	log.Debug(log.CatHistory, "repeat", "kind", top.Kind, "keys", len(top.Keys))

	switch top.Kind {
	case history.Insert:
		a := &history.Action{Kind: history.Insert, Anchor: s.curPos(), Keys: slices.Clone(top.Keys)}
		s.log.Add(a.Kind, a.Anchor)
		for _, k := range a.Keys {
			s.log.AppendKeyToTop(k)
		}
		s.repeating = true
		s.apply(a)
		s.repeating = false
	case history.Delete:
		// The text under the cursor differs from what was recorded, so
		// delete live and record what actually went.
		s.deleteChars(len(top.Keys))
	}
}
