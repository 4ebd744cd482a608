// Package history implements the undo/redo action log.
//
// An Action is recorded as the keystrokes that produced an edit rather than
// as a diff, so redo replays those keys through the same handlers that
// processed them live. The log is a pair of stacks: backward holds committed
// actions and forward holds undone ones until the next fresh edit.
package history

import (
	"slices"

	"github.com/zjrosen/vedit/internal/editor/buffer"
	"github.com/zjrosen/vedit/internal/keys"
)

// Kind is the kind of edit an Action records.
type Kind int

const (
	Insert Kind = iota
	Delete
)

func (k Kind) String() string {
	if k == Insert {
		return "insert"
	}
	return "delete"
}

// Action is one reversible edit. Anchor is the document position the cursor
// held when the edit began; both undo and redo start from there.
type Action struct {
	Kind   Kind
	Anchor buffer.Pos
	Keys   []keys.Key
}

// Text renders the recorded keys as the text they insert or removed.
// tabWidth controls how a recorded Tab key expands.
func (a *Action) Text(tabWidth int) string {
	var out []byte
	for _, k := range a.Keys {
		switch k.Type {
		case keys.Enter:
			out = append(out, '\n')
		case keys.Tab:
			for range tabWidth {
				out = append(out, ' ')
			}
		case keys.Rune:
			out = append(out, k.Text...)
		}
	}
	return string(out)
}

// Log is the backward/forward stack pair.
type Log struct {
	backward  []*Action
	forward   []*Action
	max       int
	replaying bool
}

// New creates a log that keeps at most max committed actions; 0 keeps all.
func New(max int) *Log {
	return &Log{max: max}
}

// Add pushes a new empty action and invalidates everything that could be
// redone. It does nothing while a replay is running. The undo cap is applied
// once the action records its first key, so an action dropped while still
// empty never evicts an older one.
func (l *Log) Add(kind Kind, anchor buffer.Pos) {
	if l.replaying {
		return
	}
	l.forward = l.forward[:0]
	l.backward = append(l.backward, &Action{Kind: kind, Anchor: anchor})
}

// trim evicts the oldest actions beyond the cap. The top is never evicted.
func (l *Log) trim() {
	if l.max > 0 && len(l.backward) > l.max {
		l.backward = slices.Delete(l.backward, 0, len(l.backward)-l.max)
	}
}

// Top returns the most recent committed action, or nil.
func (l *Log) Top() *Action {
	if len(l.backward) == 0 {
		return nil
	}
	return l.backward[len(l.backward)-1]
}

// AppendKeyToTop records k as part of the current action.
func (l *Log) AppendKeyToTop(k keys.Key) {
	top := l.Top()
	if l.replaying || top == nil {
		return
	}
	top.Keys = append(top.Keys, k)
	if len(top.Keys) == 1 {
		l.trim()
	}
}

// AppendStringToTop records deleted text on the current action, one key per
// grapheme, with newlines as Enter.
func (l *Log) AppendStringToTop(s string) {
	for _, g := range buffer.Split(s) {
		if g == "\n" {
			l.AppendKeyToTop(keys.KeyEnter)
			continue
		}
		l.AppendKeyToTop(keys.Char(g))
	}
}

// DiscardKeyOnTop removes the last key of the current action. It reports
// false when there was nothing to remove.
func (l *Log) DiscardKeyOnTop() bool {
	top := l.Top()
	if l.replaying || top == nil || len(top.Keys) == 0 {
		return false
	}
	top.Keys = top.Keys[:len(top.Keys)-1]
	return true
}

// DropEmptyTop removes the current action if nothing was recorded on it.
func (l *Log) DropEmptyTop() {
	top := l.Top()
	if l.replaying || top == nil || len(top.Keys) > 0 {
		return
	}
	l.backward = l.backward[:len(l.backward)-1]
}

// Backward moves the latest committed action to the redo stack and returns it.
func (l *Log) Backward() (*Action, bool) {
	if len(l.backward) == 0 {
		return nil, false
	}
	a := l.backward[len(l.backward)-1]
	l.backward = l.backward[:len(l.backward)-1]
	l.forward = append(l.forward, a)
	return a, true
}

// Forward moves the latest undone action back to the committed stack and returns it.
func (l *Log) Forward() (*Action, bool) {
	if len(l.forward) == 0 {
		return nil, false
	}
	a := l.forward[len(l.forward)-1]
	l.forward = l.forward[:len(l.forward)-1]
	l.backward = append(l.backward, a)
	return a, true
}

// CanUndo returns true if there are actions to undo.
func (l *Log) CanUndo() bool { return len(l.backward) > 0 }

// CanRedo returns true if there are actions to redo.
func (l *Log) CanRedo() bool { return len(l.forward) > 0 }

// Len returns the number of committed actions.
func (l *Log) Len() int { return len(l.backward) }

// Replaying reports whether a replay is in progress.
func (l *Log) Replaying() bool { return l.replaying }

// Replay runs fn with recording suppressed. The guard covers exactly one
// call; Replay must not be nested.
func (l *Log) Replay(fn func()) {
	l.replaying = true
	defer func() { l.replaying = false }()
	fn()
}
