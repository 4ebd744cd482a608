package editor

import (
	"fmt"
	"strings"

	"github.com/zjrosen/vedit/internal/editor/buffer"
	"github.com/zjrosen/vedit/internal/keys"
	"github.com/zjrosen/vedit/internal/log"
)

func (s *Session) handleCommand(k keys.Key) (Mode, error) {
	switch k.Type {
	case keys.Esc:
		return ModeNormal, nil
	case keys.Enter:
		cmd := strings.TrimSpace(s.cmdline)
		s.cmdline = ""
		return s.execute(cmd)
	case keys.Backspace:
		n := buffer.Count(s.cmdline)
		if n == 0 {
			return ModeNormal, nil
		}
		s.cmdline = buffer.Slice(s.cmdline, 0, n-1)
	case keys.Rune:
		s.cmdline += k.Text
	case keys.Tab:
		s.cmdline += " "
	}
	return ModeCommand, nil
}

func (s *Session) execute(cmd string) (Mode, error) {
	log.Debug(log.CatMode, "command", "cmd", cmd)
	switch cmd {
	case "":
		return ModeNormal, nil
	case "q":
		if s.Modified() {
			s.message = "no write since last change (add ! to override)"
			return ModeNormal, nil
		}
		return ModeExit, nil
	case "q!":
		return ModeExit, nil
	case "w":
		return s.write(ModeNormal)
	case "wq", "x":
		return s.write(ModeExit)
	}

	s.message = fmt.Sprintf("not an editor command: %s", cmd)
	return ModeNormal, fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
}

// write hands the serialized document to the Saver. A failed write is fatal
// to the session.
func (s *Session) write(next Mode) (Mode, error) {
	if s.saver == nil {
		s.message = "no file name"
		return ModeNormal, ErrNoFileName
	}
	content := s.Serialize()
	if err := s.saver.Save(content); err != nil {
		log.ErrorErr(log.CatFile, "save failed", err)
		return ModeExit, fmt.Errorf("write: %w", err)
	}
	s.saved = content
	s.message = fmt.Sprintf("%d lines written", s.buf.Len())
	log.Info(log.CatFile, "saved", "lines", s.buf.Len())
	return next, nil
}
