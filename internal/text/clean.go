// Package text prepares cell text for the page: normalization, greedy word
// wrap under a width constraint and truncation markers.
package text

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/gompdf/quotepdf/internal/parser/html"
)

var fragments = html.NewParser()

// Normalize NFC-composes s and collapses whitespace runs to one space. The
// text is otherwise kept as given.
func Normalize(s string) string {
	s = norm.NFC.String(s)
	return strings.Join(strings.Fields(s), " ")
}

// Clean is Normalize for free-text fields that may hold rich text pasted from
// an editor: a fragment made only of known formatting tags is flattened
// first. Anything else, including stray angle brackets and ampersands, is
// plain text. Cleaning is deterministic so both layout passes see the same
// words.
func Clean(s string) string {
	if fragments.IsRichText(s) {
		if plain, err := fragments.PlainText(s); err == nil {
			s = plain
		}
	}
	return Normalize(s)
}
