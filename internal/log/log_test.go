package log

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func withBuffer(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := defaultLogger
	t.Cleanup(func() { defaultLogger = prev })

	var buf bytes.Buffer
	defaultLogger = newLogger(nil, &buf)
	return &buf
}

func TestLog_Format(t *testing.T) {
	buf := withBuffer(t)
	Info(CatMode, "transition", "from", "normal", "to", "insert")
	require.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2} \[INFO\] \[mode\] transition from=normal to=insert\n$`, buf.String())
}

func TestLog_OrphanField(t *testing.T) {
	buf := withBuffer(t)
	Debug(CatBuffer, "insert", "line")
	require.Contains(t, buf.String(), "line=<missing>")
}

func TestLog_ErrorErr(t *testing.T) {
	buf := withBuffer(t)
	ErrorErr(CatFile, "save failed", os.ErrPermission, "path", "a.txt")
	require.Contains(t, buf.String(), "[ERROR] [file] save failed path=a.txt error=permission denied")
}

func TestLog_MinLevel(t *testing.T) {
	buf := withBuffer(t)
	SetMinLevel(LevelWarn)
	Info(CatUI, "hidden")
	Warn(CatUI, "shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
}

func TestLog_Disabled(t *testing.T) {
	buf := withBuffer(t)
	SetEnabled(false)
	Error(CatUI, "nope")
	require.Empty(t, buf.String())
}

func TestLog_NilLoggerIsSafe(t *testing.T) {
	prev := defaultLogger
	t.Cleanup(func() { defaultLogger = prev })
	defaultLogger = nil
	require.NotPanics(t, func() { Debug(CatTask, "noop") })
}

func TestInit_WritesToFile(t *testing.T) {
	prev := defaultLogger
	t.Cleanup(func() { defaultLogger = prev })

	path := filepath.Join(t.TempDir(), "debug.log")
	cleanup, err := Init(path)
	require.NoError(t, err)
	Warn(CatConfig, "using defaults")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "[WARN] [config] using defaults")
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{"debug": LevelDebug, "INFO": LevelInfo, "warn": LevelWarn, "warning": LevelWarn, "error": LevelError} {
		got, err := ParseLevel(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := ParseLevel("trace")
	require.Error(t, err)
}
