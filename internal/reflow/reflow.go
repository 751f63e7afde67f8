// Package reflow wraps summary text to a fixed character width for display.
package reflow

import (
	"strings"
	"unicode/utf8"
)

// DefaultWidth is the on-screen wrapping width used by the summary card.
const DefaultWidth = 30

// Reflow breaks text into lines of at most width characters, breaking only
// between space-separated tokens. Tokens are never split: a token longer than
// width overflows its own line.
//
// The text is split on single spaces, so repeated spaces yield empty tokens.
// Every token after the first keeps its leading space, including the first
// token of a wrapped line, which means removing the inserted newlines gives
// back the input unchanged. Lengths are counted in characters (runes).
// A width below 1 is treated as 1.
func Reflow(text string, width int) string {
	if text == "" {
		return ""
	}
	if width < 1 {
		width = 1
	}

	var b strings.Builder
	b.Grow(len(text) + len(text)/width + 1)

	lineLength := 0
	for i, word := range strings.Split(text, " ") {
		sep := 0
		if i > 0 {
			sep = 1
		}
		n := utf8.RuneCountInString(word) + sep

		// Never break an empty line, or an overlong first token would leave a blank line ahead of it.
		if lineLength > 0 && lineLength+n > width {
			b.WriteByte('\n')
			lineLength = 0
		}
		if sep == 1 {
			b.WriteByte(' ')
		}
		b.WriteString(word)
		lineLength += n
	}
	return b.String()
}

// Lines is Reflow split into its output lines.
func Lines(text string, width int) []string {
	out := Reflow(text, width)
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}
