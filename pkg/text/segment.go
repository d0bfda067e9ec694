package text

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Words splits s at Unicode word boundaries, dropping whitespace-only
// segments. These are the unbreakable units min-content sizing and
// wrap estimation operate on.
func Words(s string) []string {
	var out []string
	state := -1
	rest := s
	for len(rest) > 0 {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		if strings.TrimSpace(word) == "" {
			continue
		}
		out = append(out, word)
	}
	return out
}

// Graphemes counts grapheme clusters, the unit FixedMeasure charges an
// advance for.
func Graphemes(s string) int {
	n := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		n++
	}
	return n
}
