package search

import (
	"strings"
	"unicode/utf8"
)

const snippetLength = 500

// makeSnippet cleans rendered HTML down to a short plain-text excerpt.
func makeSnippet(cooked, raw string) string {
	text := stripHTML(cooked)
	if text == "" {
		text = strings.TrimSpace(raw)
	}
	return truncate(text, snippetLength)
}

// stripHTML drops tags and collapses whitespace. Not a full HTML parser:
// forum "cooked" content is already sanitized markup.
func stripHTML(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			b.WriteByte(' ')
		case !inTag:
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}
