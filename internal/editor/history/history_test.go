package history

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/vedit/internal/editor/buffer"
	"github.com/zjrosen/vedit/internal/keys"
)

func TestLog_UndoRedoTransfer(t *testing.T) {
	l := New(0)
	require.False(t, l.CanUndo())

	l.Add(Insert, buffer.Pos{Line: 0, Col: 0})
	l.AppendKeyToTop(keys.Char("a"))

	a, ok := l.Backward()
	require.True(t, ok)
	require.Equal(t, Insert, a.Kind)
	require.False(t, l.CanUndo())
	require.True(t, l.CanRedo())

	b, ok := l.Forward()
	require.True(t, ok)
	require.Same(t, a, b)
	require.True(t, l.CanUndo())
	require.False(t, l.CanRedo())
}

func TestLog_EmptyStacksAreNoOps(t *testing.T) {
	l := New(0)
	_, ok := l.Backward()
	require.False(t, ok)
	_, ok = l.Forward()
	require.False(t, ok)
	require.False(t, l.DiscardKeyOnTop())
	l.AppendKeyToTop(keys.Char("x"))
	require.Nil(t, l.Top())
}

func TestLog_AddClearsForward(t *testing.T) {
	l := New(0)
	l.Add(Insert, buffer.Pos{})
	l.AppendKeyToTop(keys.Char("a"))
	_, _ = l.Backward()
	require.True(t, l.CanRedo())

	l.Add(Delete, buffer.Pos{Line: 1})
	require.False(t, l.CanRedo())
	require.Equal(t, 1, l.Len())
}

func TestLog_Cap(t *testing.T) {
	l := New(2)
	for i := range 5 {
		l.Add(Insert, buffer.Pos{Line: i})
		l.AppendKeyToTop(keys.Char("a"))
	}
	require.Equal(t, 2, l.Len())
	require.Equal(t, 4, l.Top().Anchor.Line)
	a, _ := l.Backward()
	require.Equal(t, 4, a.Anchor.Line)
	a, _ = l.Backward()
	require.Equal(t, 3, a.Anchor.Line)
	require.False(t, l.CanUndo())
}

func TestLog_CapIgnoresDroppedEmptyAction(t *testing.T) {
	l := New(1)
	l.Add(Delete, buffer.Pos{})
	l.AppendKeyToTop(keys.Char("a"))

	l.Add(Insert, buffer.Pos{})
	l.DropEmptyTop()
	require.True(t, l.CanUndo())
	require.Equal(t, []keys.Key{keys.Char("a")}, l.Top().Keys)

	l.Add(Insert, buffer.Pos{})
	l.AppendKeyToTop(keys.Char("b"))
	require.Equal(t, 1, l.Len())
	require.Equal(t, Insert, l.Top().Kind)
}

func TestLog_DiscardKeyOnTop(t *testing.T) {
	l := New(0)
	l.Add(Insert, buffer.Pos{})
	l.AppendKeyToTop(keys.Char("a"))
	l.AppendKeyToTop(keys.Char("b"))
	require.True(t, l.DiscardKeyOnTop())
	require.Equal(t, []keys.Key{keys.Char("a")}, l.Top().Keys)
	require.True(t, l.DiscardKeyOnTop())
	require.False(t, l.DiscardKeyOnTop())
}

func TestLog_DropEmptyTop(t *testing.T) {
	l := New(0)
	l.Add(Insert, buffer.Pos{})
	l.AppendKeyToTop(keys.Char("a"))
	l.Add(Insert, buffer.Pos{Col: 1})
	l.DropEmptyTop()
	require.Equal(t, 1, l.Len())
	l.DropEmptyTop()
	require.Equal(t, 1, l.Len(), "non-empty action must survive")
}

func TestLog_ReplaySuppressesRecording(t *testing.T) {
	l := New(0)
	l.Add(Insert, buffer.Pos{})
	l.AppendKeyToTop(keys.Char("a"))

	l.Replay(func() {
		require.True(t, l.Replaying())
		l.Add(Delete, buffer.Pos{})
		l.AppendKeyToTop(keys.Char("b"))
		require.False(t, l.DiscardKeyOnTop())
		l.DropEmptyTop()
	})
	require.False(t, l.Replaying())
	require.Equal(t, 1, l.Len())
	require.Equal(t, []keys.Key{keys.Char("a")}, l.Top().Keys)

	l.AppendKeyToTop(keys.Char("c"))
	require.Len(t, l.Top().Keys, 2, "recording resumes after replay")
}

func TestAppendStringToTop(t *testing.T) {
	l := New(0)
	l.Add(Delete, buffer.Pos{})
	l.AppendStringToTop("ab\n\tc")
	require.Equal(t, []keys.Key{
		keys.Char("a"), keys.Char("b"), keys.KeyEnter, keys.Char("\t"), keys.Char("c"),
	}, l.Top().Keys)
	require.Equal(t, "ab\n\tc", l.Top().Text(4))
}

func TestAction_TextExpandsTab(t *testing.T) {
	a := &Action{Kind: Insert, Keys: []keys.Key{keys.KeyTab, keys.Char("x")}}
	require.Equal(t, "    x", a.Text(4))
	require.Equal(t, "  x", a.Text(2))
}

func TestLog_Property_UndoRedoSymmetry(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l := New(0)
		n := rapid.IntRange(1, 20).Draw(t, "n")
		for i := range n {
			l.Add(Insert, buffer.Pos{Line: i})
			l.AppendKeyToTop(keys.Char("a"))
		}
		undos := rapid.IntRange(0, n).Draw(t, "undos")
		var undone []*Action
		for range undos {
			a, ok := l.Backward()
			require.True(t, ok)
			undone = append(undone, a)
		}
		require.Equal(t, n-undos, l.Len())
		for i := len(undone) - 1; i >= 0; i-- {
			a, ok := l.Forward()
			require.True(t, ok)
			require.Same(t, undone[i], a)
		}
		require.Equal(t, n, l.Len())
		require.False(t, l.CanRedo())
	})
}
