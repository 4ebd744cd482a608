// Package task accumulates count-prefixed Normal-mode commands.
//
// The accumulator only exists for repetition. A bare motion with no count
// never enters it and is handled directly by the caller; only digits, the
// operators of two-key commands ("dd", "gg"), and keys that complete a
// counted command are absorbed.
package task

import (
	"strconv"
	"strings"

	"github.com/zjrosen/vedit/internal/keys"
)

// MaxCount caps the numeric prefix.
const MaxCount = 9999

// Outcome tells the caller what to do with the key it just fed.
type Outcome int

const (
	// Direct means the key is not part of a task; handle it uncounted.
	Direct Outcome = iota
	// Pending means the key was absorbed and more keys are needed.
	Pending
	// Ready means a complete Command can be taken.
	Ready
	// Dropped means the sequence was invalid; it was discarded along with the key.
	Dropped
)

// Command is a completed task.
type Command struct {
	// Count is the numeric prefix, or 1 when none was typed.
	Count    int
	HasCount bool
	// Key is the key that completed the task.
	Key keys.Key
	// Compound is "dd" or "gg" for two-key commands, otherwise empty.
	Compound string
}

// Task is the pending key sequence.
type Task struct {
	keys []keys.Key
}

var counted = []keys.Key{
	keys.Char("h"), keys.Char("j"), keys.Char("k"), keys.Char("l"),
	keys.Char("e"), keys.Char("w"), keys.Char("b"),
	keys.Char(" "), keys.KeyBackspace,
	keys.KeyLeft, keys.KeyRight, keys.KeyUp, keys.KeyDown,
	keys.Char("x"), keys.Char("u"), keys.CtrlKey("r"), keys.Char("."),
	keys.Char("G"),
}

func isOperator(k keys.Key) bool {
	return k.Is("d") || k.Is("g")
}

func isCounted(k keys.Key) bool {
	for _, c := range counted {
		if c == k {
			return true
		}
	}
	return false
}

// Feed offers k to the accumulator.
func (t *Task) Feed(k keys.Key) Outcome {
	if op, ok := t.operator(); ok {
		if k == op {
			t.keys = append(t.keys, k)
			return Ready
		}
		t.Clear()
		return Dropped
	}

	switch {
	case k.IsDigit():
		if k.Is("0") && len(t.keys) == 0 {
			return Direct
		}
		t.keys = append(t.keys, k)
		return Pending
	case isOperator(k):
		t.keys = append(t.keys, k)
		return Pending
	case t.HasNum() && isCounted(k):
		t.keys = append(t.keys, k)
		return Ready
	}

	t.Clear()
	return Direct
}

// operator returns the pending first key of a two-key command.
func (t *Task) operator() (keys.Key, bool) {
	if len(t.keys) == 0 {
		return keys.Key{}, false
	}
	last := t.keys[len(t.keys)-1]
	return last, isOperator(last)
}

// HasNum reports whether a numeric prefix has been typed.
func (t *Task) HasNum() bool {
	return len(t.keys) > 0 && t.keys[0].IsDigit()
}

// Num returns the numeric prefix.
func (t *Task) Num() (int, bool) {
	var digits strings.Builder
	for _, k := range t.keys {
		if !k.IsDigit() {
			break
		}
		digits.WriteString(k.Text)
	}
	if digits.Len() == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil || n > MaxCount {
		return MaxCount, true
	}
	return n, true
}

// lastTwo returns the last two keys as text, e.g. "dd".
func (t *Task) lastTwo() string {
	if len(t.keys) < 2 {
		return ""
	}
	a, b := t.keys[len(t.keys)-2], t.keys[len(t.keys)-1]
	if a.Type != keys.Rune || b.Type != keys.Rune {
		return ""
	}
	return a.Text + b.Text
}

// Take returns the completed command and clears the accumulator. It must
// only be called after Feed returned Ready.
func (t *Task) Take() Command {
	cmd := Command{Count: 1}
	if n, ok := t.Num(); ok {
		cmd.Count, cmd.HasCount = n, true
	}
	if len(t.keys) > 0 {
		cmd.Key = t.keys[len(t.keys)-1]
	}
	switch two := t.lastTwo(); two {
	case "dd", "gg":
		cmd.Compound = two
	}
	t.Clear()
	return cmd
}

// Len returns the number of pending keys.
func (t *Task) Len() int { return len(t.keys) }

// Clear discards pending keys.
func (t *Task) Clear() { t.keys = t.keys[:0] }

// String renders the pending keys for the status line.
func (t *Task) String() string {
	var sb strings.Builder
	for _, k := range t.keys {
		sb.WriteString(k.String())
	}
	return sb.String()
}
