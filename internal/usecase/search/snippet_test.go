package search

import (
	"strings"
	"testing"
)

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "hello world", "hello world"},
		{"tags", "<p>hello <strong>world</strong></p>", "hello world"},
		{"collapse whitespace", "<p>a</p>\n\n<p>b</p>", "a b"},
		{"empty", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := stripHTML(tc.input); got != tc.expected {
				t.Errorf("stripHTML(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestMakeSnippet_FallsBackToRaw(t *testing.T) {
	if got := makeSnippet("", "raw markdown"); got != "raw markdown" {
		t.Errorf("expected raw fallback, got %q", got)
	}
}

func TestMakeSnippet_Truncates(t *testing.T) {
	long := strings.Repeat("a", snippetLength+100)
	got := makeSnippet("<p>"+long+"</p>", "")
	if len([]rune(got)) != snippetLength+3 {
		t.Fatalf("expected %d runes, got %d", snippetLength+3, len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Error("expected ellipsis suffix")
	}
}
