package buffer

import (
	"unicode"

	"github.com/rivo/uniseg"
)

// Columns throughout the editor are grapheme cluster indices, not byte
// offsets: "e" followed by a combining accent is one column, and so is a
// family emoji. The helpers below translate between the two.

// Count returns the number of grapheme clusters in s.
func Count(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// At returns the grapheme cluster at index idx, or NoChar when idx is out of range.
func At(s string, idx int) string {
	if idx < 0 {
		return NoChar
	}
	i := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		if i == idx {
			return cluster
		}
		i++
		s = rest
		state = newState
	}
	return NoChar
}

// byteOffset converts a grapheme index to a byte offset.
// Indices past the end map to len(s).
func byteOffset(s string, idx int) int {
	if idx <= 0 {
		return 0
	}
	i := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		_, r, _, newState := uniseg.StepString(rest, state)
		i++
		if i == idx {
			return len(s) - len(r)
		}
		rest = r
		state = newState
	}
	return len(s)
}

// Slice returns the graphemes of s in [start, end).
func Slice(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end <= start {
		return ""
	}
	return s[byteOffset(s, start):byteOffset(s, end)]
}

// Insert splices insert into s before grapheme index idx.
func Insert(s string, idx int, insert string) string {
	off := byteOffset(s, idx)
	return s[:off] + insert + s[off:]
}

// Split returns the grapheme clusters of s in order.
func Split(s string) []string {
	clusters := make([]string, 0, len(s))
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.StepString(s, state)
		clusters = append(clusters, cluster)
	}
	return clusters
}

// IsWord reports whether a cluster belongs to the alphanumeric class used by
// word motions. Multi-rune clusters are classified by their base rune.
func IsWord(cluster string) bool {
	for _, r := range cluster {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}
	return false
}

// IsBlank reports whether a cluster is a space, tab or newline.
func IsBlank(cluster string) bool {
	return cluster == " " || cluster == "\t" || cluster == "\n"
}
