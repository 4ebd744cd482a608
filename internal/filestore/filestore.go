// Package filestore loads and saves the document being edited.
package filestore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/zjrosen/vedit/internal/editor/buffer"
	"github.com/zjrosen/vedit/internal/log"
)

// ErrNotExist is returned by Load when the file has not been created yet.
// It wraps os.ErrNotExist.
var ErrNotExist = fmt.Errorf("file does not exist: %w", os.ErrNotExist)

const filePerm = 0o644

// Store reads and writes one file through an afero filesystem.
type Store struct {
	fs   afero.Fs
	path string
}

// New returns a Store for path. A nil fs means the OS filesystem.
func New(fs afero.Fs, path string) *Store {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Store{fs: fs, path: path}
}

// Path returns the file path.
func (s *Store) Path() string { return s.path }

// Name returns the base name of the file, for display.
func (s *Store) Name() string { return filepath.Base(s.path) }

// Load reads the file and splits it into lines.
func (s *Store) Load() ([]string, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotExist, s.path)
		}
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	lines := buffer.FromString(string(data)).Lines()
	log.Info(log.CatFile, "loaded", "path", s.path, "lines", len(lines))
	return lines, nil
}

// LoadOrEmpty is Load, except a missing file yields a single empty line.
func (s *Store) LoadOrEmpty() ([]string, error) {
	lines, err := s.Load()
	if errors.Is(err, ErrNotExist) {
		log.Info(log.CatFile, "new file", "path", s.path)
		return []string{""}, nil
	}
	return lines, err
}

// Save writes content followed by a final newline, creating parent
// directories as needed.
func (s *Store) Save(content string) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	content += "\n"
	if err := afero.WriteFile(s.fs, s.path, []byte(content), filePerm); err != nil {
		log.ErrorErr(log.CatFile, "save failed", err, "path", s.path)
		return fmt.Errorf("writing %s: %w", s.path, err)
	}

	log.Info(log.CatFile, "saved", "path", s.path, "bytes", len(content))
	return nil
}
