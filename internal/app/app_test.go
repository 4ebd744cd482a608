package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/muesli/termenv"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/vedit/internal/config"
	"github.com/zjrosen/vedit/internal/editor"
	"github.com/zjrosen/vedit/internal/filestore"
)

func init() {
	// Plain output so views can be compared as text.
	lipgloss.SetColorProfile(termenv.Ascii)
}

func testConfig() config.Config {
	cfg := config.Defaults()
	cfg.Watch = false
	return cfg
}

func newTestModel(t *testing.T, store *filestore.Store, lines ...string) Model {
	t.Helper()
	m := New(Options{Config: testConfig(), Store: store, Lines: lines})
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func viewLines(m Model) []string {
	return strings.Split(ansi.Strip(m.View()), "\n")
}

func TestApp_WindowSizeMsg(t *testing.T) {
	lines := make([]string, 30)
	m := newTestModel(t, nil, lines...)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 10})

	require.Equal(t, 60, m.width)
	require.Equal(t, 10, m.height)
	lower, upper := m.Session().Viewport()
	require.Equal(t, 0, lower)
	require.Equal(t, 9, upper)
	require.Len(t, viewLines(m), 10)
}

func TestApp_ViewShowsTextAndStatus(t *testing.T) {
	m := newTestModel(t, nil, "hello", "world")
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 5})

	got := viewLines(m)
	require.Equal(t, "hello", got[0])
	require.Equal(t, "world", got[1])
	require.Equal(t, "~", got[2])
	require.Equal(t, "~", got[3])
	require.Contains(t, got[4], "NORMAL")
	require.Contains(t, got[4], "[No Name]")
	require.Contains(t, got[4], "1:1")
	require.Contains(t, got[4], "1-2/2")
}

func TestApp_StatusBarHidden(t *testing.T) {
	cfg := testConfig()
	cfg.UI.ShowStatusBar = false
	m := New(Options{Config: cfg, Lines: []string{"abc"}})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 3})

	got := viewLines(m)
	require.Equal(t, "", got[2])
	require.NotContains(t, strings.Join(got, "\n"), "NORMAL")
}

func TestApp_ClipsWideLines(t *testing.T) {
	m := newTestModel(t, nil, "日本語テキスト")
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 5, Height: 3})

	require.Equal(t, "日本", viewLines(m)[0])
}

func TestApp_CommandLine(t *testing.T) {
	m := newTestModel(t, nil, "abc")
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 3}, runes(":wq"))

	require.Equal(t, editor.ModeCommand, m.Session().Mode())
	got := viewLines(m)
	require.Equal(t, ":wq", got[len(got)-1])
}

func TestApp_NoFileName(t *testing.T) {
	m := newTestModel(t, nil, "abc")
	m, cmd := update(t, m, runes(":w"), tea.KeyMsg{Type: tea.KeyEnter})

	require.Nil(t, cmd)
	require.NoError(t, m.Err())
	require.Equal(t, editor.ModeNormal, m.Session().Mode())
	require.Contains(t, ansi.Strip(m.View()), "no file name")
}

func TestApp_ModifiedMarker(t *testing.T) {
	store := filestore.New(afero.NewMemMapFs(), "/doc.txt")
	m := newTestModel(t, store, "abc")

	require.Contains(t, ansi.Strip(m.View()), "doc.txt")
	require.NotContains(t, ansi.Strip(m.View()), "[+]")

	m, _ = update(t, m, runes("x"))
	require.Contains(t, ansi.Strip(m.View()), "doc.txt [+]")
}

func TestApp_KillKeyQuits(t *testing.T) {
	m := newTestModel(t, nil, "abc")
	m, cmd := update(t, m, runes("ihello"), tea.KeyMsg{Type: tea.KeyCtrlQ})

	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
	require.Equal(t, editor.ModeExit, m.Session().Mode())
	require.NoError(t, m.Err())
	require.Empty(t, m.View())
}

func TestApp_SaveFailureIsFatal(t *testing.T) {
	base := afero.NewMemMapFs()
	store := filestore.New(afero.NewReadOnlyFs(base), "/doc.txt")
	m := newTestModel(t, store, "abc")

	m, cmd := update(t, m, runes(":w"), tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
	require.Error(t, m.Err())
}

func TestApp_BlockSelectionReportsError(t *testing.T) {
	m := newTestModel(t, nil, "abc", "def")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlV}, runes("jl"))
	require.Nil(t, cmd)
	require.Equal(t, editor.ModeVisual, m.Session().Mode())

	m, _ = update(t, m, runes("d"))

	require.Equal(t, editor.ModeVisual, m.Session().Mode())
	require.Contains(t, ansi.Strip(m.View()), "not implemented")
	require.Equal(t, "abc\ndef", m.Session().Serialize())
}

func TestApp_SelectionRendering(t *testing.T) {
	m := newTestModel(t, nil, "abcdef")
	m, _ = update(t, m, runes("lvll"))

	require.True(t, m.selected(1, 0))
	require.True(t, m.selected(3, 0))
	require.False(t, m.selected(0, 0))
	require.False(t, m.selected(4, 0))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, m.selected(2, 0))
}

func TestApp_BlockSelectionRendering(t *testing.T) {
	m := newTestModel(t, nil, "abcd", "efgh", "ijkl")
	m, _ = update(t, m, runes("l"), tea.KeyMsg{Type: tea.KeyCtrlV}, runes("jl"))

	require.True(t, m.selected(1, 0))
	require.True(t, m.selected(2, 1))
	require.False(t, m.selected(0, 1))
	require.False(t, m.selected(3, 0))
	require.False(t, m.selected(1, 2))
}

func TestApp_ExternalChangeMessage(t *testing.T) {
	store := filestore.New(afero.NewMemMapFs(), "/doc.txt")
	m := newTestModel(t, store, "abc")

	m, cmd := update(t, m, externalChangeMsg{})

	require.Nil(t, cmd, "no watcher channel to listen on")
	require.Contains(t, ansi.Strip(m.View()), "file changed on disk")

	// Any key clears it.
	m, _ = update(t, m, runes("l"))
	require.NotContains(t, ansi.Strip(m.View()), "file changed on disk")
}

func TestApp_Highlighting(t *testing.T) {
	store := filestore.New(afero.NewMemMapFs(), "/main.go")
	m := newTestModel(t, store, "package main")
	require.True(t, m.highlighter.Enabled())
	require.Equal(t, "package main", viewLines(m)[0])

	cfg := testConfig()
	cfg.UI.Highlight = false
	plain := New(Options{Config: cfg, Store: store, Lines: []string{"package main"}})
	require.Nil(t, plain.highlighter)
}

func TestApp_EditAndWrite(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := filestore.New(fs, "/doc.txt")
	m := newTestModel(t, store, "hello")

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))
	tm.Send(runes("A world"))
	tm.Send(tea.KeyMsg{Type: tea.KeyEsc})
	tm.Send(runes("ohi"))
	tm.Send(tea.KeyMsg{Type: tea.KeyEsc})
	tm.Send(runes(":wq"))
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	final := tm.FinalModel(t, teatest.WithFinalTimeout(2*time.Second)).(Model)
	require.NoError(t, final.Err())
	require.Equal(t, editor.ModeExit, final.Session().Mode())

	data, err := afero.ReadFile(fs, "/doc.txt")
	require.NoError(t, err)
	require.Equal(t, "hello world\nhi\n", string(data))
}

func TestApp_UndoRedoThroughProgram(t *testing.T) {
	m := newTestModel(t, nil, "one two")

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))
	tm.Send(runes("dwx"))
	tm.Send(runes("uu"))
	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlR})
	tm.Send(runes(":q!"))
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	final := tm.FinalModel(t, teatest.WithFinalTimeout(2*time.Second)).(Model)
	require.Equal(t, "ne two", final.Session().Serialize())
}

func TestApp_WatcherReportsExternalWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("abc\n"), 0644))

	cfg := testConfig()
	cfg.Watch = true
	m := New(Options{Config: cfg, Store: filestore.New(afero.NewOsFs(), path), Lines: []string{"abc"}})
	t.Cleanup(func() { _ = m.Close() })
	require.NotNil(t, m.watcherHandle)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(120, 10))

	require.NoError(t, os.WriteFile(path, []byte("changed elsewhere\n"), 0644))

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("file changed on disk"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlQ})
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))
}
