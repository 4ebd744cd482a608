// Package app contains the root application model.
package app

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/vedit/internal/config"
	"github.com/zjrosen/vedit/internal/editor"
	"github.com/zjrosen/vedit/internal/editor/selection"
	"github.com/zjrosen/vedit/internal/filestore"
	"github.com/zjrosen/vedit/internal/highlight"
	"github.com/zjrosen/vedit/internal/keys"
	"github.com/zjrosen/vedit/internal/log"
	"github.com/zjrosen/vedit/internal/watcher"
)

// ownSaveQuiet is how long watcher events are ignored after :w.
const ownSaveQuiet = time.Second

// externalChangeMsg is sent when the open file changes on disk.
type externalChangeMsg struct{}

// Options configures a Model.
type Options struct {
	Config config.Config
	// Store is the open file, or nil for an unnamed scratch buffer.
	Store *filestore.Store
	// Lines is the initial document.
	Lines []string
}

// Model is the root application state.
type Model struct {
	session     *editor.Session
	store       *filestore.Store
	highlighter *highlight.Highlighter
	keys        keys.KeyMap
	help        help.Model
	showStatus  bool

	width  int
	height int

	// err is the fatal error that ended the session, if any.
	err error

	watcherHandle *watcher.Watcher
	changes       <-chan struct{}
}

// storeSaver writes through the file store and keeps the watcher from
// reporting our own write.
type storeSaver struct {
	store *filestore.Store
	w     *watcher.Watcher
}

func (s storeSaver) Save(content string) error {
	if s.w != nil {
		s.w.Suppress(ownSaveQuiet)
	}
	return s.store.Save(content)
}

// New creates the application model. Watcher start-up failures are logged
// and otherwise ignored; editing works without them.
func New(opts Options) Model {
	cfg := opts.Config

	var (
		watcherHandle *watcher.Watcher
		changes       <-chan struct{}
	)
	if cfg.Watch && opts.Store != nil {
		w, err := watcher.New(watcher.DefaultConfig(opts.Store.Path()))
		if err == nil {
			if ch, err := w.Start(); err == nil {
				watcherHandle, changes = w, ch
			} else {
				log.Warn(log.CatWatcher, "Failed to start watcher", "error", err)
				_ = w.Stop()
			}
		} else {
			log.Warn(log.CatWatcher, "Failed to create watcher", "error", err)
		}
	}

	ecfg := editor.Config{
		TabWidth:   cfg.Editor.TabWidth,
		UndoLevels: cfg.Editor.UndoLevels,
		KillKey:    cfg.KillKey(),
	}
	if opts.Store != nil {
		ecfg.Saver = storeSaver{store: opts.Store, w: watcherHandle}
	}

	var hl *highlight.Highlighter
	if cfg.UI.Highlight && opts.Store != nil {
		hl = highlight.New(opts.Store.Name(), cfg.UI.Theme)
	}

	return Model{
		session:       editor.New(ecfg, opts.Lines...),
		store:         opts.Store,
		highlighter:   hl,
		keys:          keys.DefaultKeyMap(cfg.KillKey().String()),
		help:          help.New(),
		showStatus:    cfg.UI.ShowStatusBar,
		watcherHandle: watcherHandle,
		changes:       changes,
	}
}

// Init implements tea.Model interface.
func (m Model) Init() tea.Cmd {
	title := "vedit"
	if m.store != nil {
		title = m.store.Name() + " - vedit"
	}
	return tea.Batch(tea.SetWindowTitle(title), m.listen())
}

// listen waits for the next external change notification.
func (m Model) listen() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return externalChangeMsg{}
	}
}

// Update implements tea.Model interface.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.session.Resize(msg.Height)
		return m, nil

	case tea.KeyMsg:
		for _, k := range keys.FromTea(msg) {
			if m.handleKey(k) == editor.ModeExit {
				return m, tea.Quit
			}
		}
		return m, nil

	case externalChangeMsg:
		log.Info(log.CatWatcher, "File changed on disk", "path", m.store.Path())
		m.session.SetMessage("warning: file changed on disk since reading it")
		return m, m.listen()
	}

	return m, nil
}

func (m *Model) handleKey(k keys.Key) editor.Mode {
	next, err := m.session.HandleKey(k)
	if err == nil {
		return next
	}

	switch {
	case errors.Is(err, selection.ErrBlockViewUnimplemented):
		m.session.SetMessage(err.Error())
	case errors.Is(err, editor.ErrUnknownCommand), errors.Is(err, editor.ErrNoFileName):
		// The session already put the message on the status line.
	default:
		log.ErrorErr(log.CatUI, "Key handling failed", err, "key", k.String(), "mode", next)
	}
	if next == editor.ModeExit {
		m.err = err
	}
	return next
}

// Err returns the error that ended the session, such as a failed write.
func (m Model) Err() error {
	return m.err
}

// Session exposes the editor session for inspection.
func (m Model) Session() *editor.Session {
	return m.session
}

// Close releases resources held by the model.
func (m Model) Close() error {
	if m.watcherHandle != nil {
		return m.watcherHandle.Stop()
	}
	return nil
}
