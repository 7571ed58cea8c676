// Package metrics computes cheap local statistics about text exchanged with the model.
package metrics

import (
	"strings"
	"unicode/utf8"
)

// TextStats describes the size of a piece of text without retaining it.
type TextStats struct {
	Bytes int
	Runes int
	Words int
	Lines int
}

// Measure returns byte, rune, word, and line counts for s.
// Lines is 0 for an empty string, otherwise 1 plus the number of '\n'.
func Measure(s string) TextStats {
	st := TextStats{
		Bytes: len(s),
		Runes: utf8.RuneCountInString(s),
		Words: len(strings.Fields(s)),
	}
	if s != "" {
		st.Lines = 1 + strings.Count(s, "\n")
	}
	return st
}
