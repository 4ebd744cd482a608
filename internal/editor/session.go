// Package editor is the modal editing core: a session owns the buffer,
// cursor and viewport, selection, pending task and action log of one
// document, and advances them one key at a time.
package editor

import (
	"errors"

	"github.com/zjrosen/vedit/internal/editor/buffer"
	"github.com/zjrosen/vedit/internal/editor/history"
	"github.com/zjrosen/vedit/internal/editor/selection"
	"github.com/zjrosen/vedit/internal/editor/task"
	"github.com/zjrosen/vedit/internal/keys"
	"github.com/zjrosen/vedit/internal/log"
)

// Defaults applied by New for zero Config fields.
const (
	DefaultHeight   = 24
	DefaultTabWidth = 4
)

var (
	// ErrUnknownCommand is returned for a command line that is not q, q!, w, wq or x.
	ErrUnknownCommand = errors.New("not an editor command")
	// ErrNoFileName is returned by :w when the session has no Saver.
	ErrNoFileName = errors.New("no file name")
)

// Saver persists the serialized document. It is the file-write collaborator.
type Saver interface {
	Save(content string) error
}

// Config configures a Session.
type Config struct {
	// Height is the terminal height including the status line.
	Height     int
	TabWidth   int
	UndoLevels int
	KillKey    keys.Key
	Saver      Saver
}

type insertSession struct {
	open bool
	// trailingNewline is appended to the action when it closes (O).
	trailingNewline bool
}

// Session is one editing session over one document. It is not safe for
// concurrent use.
type Session struct {
	buf  *buffer.Buffer
	pos  ScreenPos
	line int
	view viewport

	sel  selection.Model
	task task.Task
	log  *history.Log
	mode Mode

	cmdline string
	message string
	ins     insertSession

	repeating bool
	saved     string

	saver    Saver
	tabWidth int
	killKey  keys.Key
}

// New creates a session over lines with the cursor at the top left.
func New(cfg Config, lines ...string) *Session {
	if cfg.Height <= 0 {
		cfg.Height = DefaultHeight
	}
	if cfg.TabWidth <= 0 {
		cfg.TabWidth = DefaultTabWidth
	}
	if cfg.KillKey == (keys.Key{}) {
		cfg.KillKey = keys.CtrlKey("q")
	}

	s := &Session{
		buf:      buffer.New(lines...),
		pos:      ScreenPos{X: 1, Y: 1},
		line:     1,
		view:     viewport{height: max(cfg.Height-1, 1)},
		log:      history.New(cfg.UndoLevels),
		mode:     ModeNormal,
		saver:    cfg.Saver,
		tabWidth: cfg.TabWidth,
		killKey:  cfg.KillKey,
	}
	s.saved = s.buf.String()
	s.settle()
	return s
}

// HandleKey consumes one key and returns the next mode.
//
// Boundary motions and keys with no meaning in the current mode are no-ops.
// Edits on a block selection return selection.ErrBlockViewUnimplemented
// with the mode unchanged. A failed save returns ModeExit and the error.
func (s *Session) HandleKey(k keys.Key) (Mode, error) {
	if s.mode == ModeExit {
		return ModeExit, nil
	}
	if s.mode != ModeCommand {
		s.message = ""
	}
	if k == s.killKey {
		log.Info(log.CatMode, "kill key", "from", s.mode)
		s.enter(ModeExit)
		return ModeExit, nil
	}

	var (
		next Mode
		err  error
	)
	switch s.mode {
	case ModeNormal:
		next, err = s.handleNormal(k)
	case ModeVisual:
		next, err = s.handleVisual(k)
	case ModeInsert:
		next, err = s.handleInsert(k)
	case ModeCommand:
		next, err = s.handleCommand(k)
	}

	s.enter(next)
	if next != ModeCommand && next != ModeExit {
		s.clampX()
	}
	return next, err
}

// enter switches modes and applies the side effects of leaving the old one.
func (s *Session) enter(next Mode) {
	prev := s.mode
	if prev == next {
		return
	}
	switch prev {
	case ModeNormal:
		s.task.Clear()
	case ModeVisual:
		s.sel.Clear()
	case ModeInsert:
		s.endInsert()
	case ModeCommand:
		s.cmdline = ""
	}
	s.mode = next
	log.Debug(log.CatMode, "transition", "from", prev, "to", next)
}

// Resize re-derives the viewport for a new terminal height, keeping the
// cursor line visible.
func (s *Session) Resize(termHeight int) {
	s.view.height = max(termHeight-1, 1)
	s.settle()
}

// Mode returns the current mode.
func (s *Session) Mode() Mode { return s.mode }

// Cursor returns the cursor's screen position.
func (s *Session) Cursor() ScreenPos { return s.pos }

// CurLine returns the 1-based document line under the cursor.
func (s *Session) CurLine() int { return s.line }

// CursorPos returns the cursor as a document coordinate.
func (s *Session) CursorPos() buffer.Pos { return s.curPos() }

// Viewport returns the visible line window [lower, upper).
func (s *Session) Viewport() (lower, upper int) { return s.view.lower, s.view.upper }

// LineCount returns the number of lines in the document.
func (s *Session) LineCount() int { return s.buf.Len() }

// LineAt returns the text of 0-based line idx, clamped.
func (s *Session) LineAt(idx int) string { return s.buf.LineAt(idx) }

// CommandLine returns the text typed after ":".
func (s *Session) CommandLine() string { return s.cmdline }

// Message returns the last status message, if any.
func (s *Session) Message() string { return s.message }

// SetMessage sets the status message shown until the next key.
func (s *Session) SetMessage(msg string) { s.message = msg }

// PendingKeys renders the keys of an incomplete counted command.
func (s *Session) PendingKeys() string { return s.task.String() }

// IsSelectStart reports whether the cell at (col, line) is selected.
func (s *Session) IsSelectStart(col, line int) (bool, error) {
	return s.sel.IsSelectStart(col, line)
}

// IsSelectEnd reports whether the selection ends at or before (col, line).
func (s *Session) IsSelectEnd(col, line int) (bool, error) {
	return s.sel.IsSelectEnd(col, line)
}

// Selection returns the active selection as drawn, or nil.
func (s *Session) Selection() selection.View { return s.sel.View() }

// Serialize joins all lines with "\n". This is what :w hands to the Saver.
func (s *Session) Serialize() string { return s.buf.String() }

// Modified reports whether the document differs from what was last loaded or saved.
func (s *Session) Modified() bool { return s.buf.String() != s.saved }

// CanUndo reports whether there is anything to undo.
func (s *Session) CanUndo() bool { return s.log.CanUndo() }

// CanRedo reports whether there is anything to redo.
func (s *Session) CanRedo() bool { return s.log.CanRedo() }
