package textutil_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"audiocourse/internal/textutil"
)

func TestSanitizePathSegment(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "simple", in: "Hola", want: "hola"},
		{name: "spanish punctuation", in: "¿Cómo estás?", want: "¿cómo estás"},
		{name: "collapse whitespace", in: "  Buenos \t  días  ", want: "buenos días"},
		{name: "separators", in: "a/b\\c:d", want: "a-b-c-d"},
		{name: "illegal chars", in: `say "hi" <now> | *`, want: "say hi now"},
		{name: "dots trimmed", in: "...Fin.", want: "fin"},
		{name: "control chars", in: "ab\x00c\x1f", want: "abc"},
		{name: "whitespace only", in: "   ", want: ""},
		{name: "decomposed accent", in: "Café", want: "café"},
		{name: "german upper", in: "GRÜSSE", want: "grüsse"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := textutil.SanitizePathSegment(tc.in); got != tc.want {
				t.Fatalf("SanitizePathSegment(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSanitizePathSegmentDeterministic(t *testing.T) {
	in := "¿Dónde está la biblioteca?"
	first := textutil.SanitizePathSegment(in)
	for i := 0; i < 5; i++ {
		if got := textutil.SanitizePathSegment(in); got != first {
			t.Fatalf("non-deterministic result %q vs %q", got, first)
		}
	}
}

func TestSanitizePathSegmentTruncatesOnRuneBoundary(t *testing.T) {
	in := strings.Repeat("é", 200)
	got := textutil.SanitizePathSegment(in)
	if len(got) > textutil.MaxSegmentBytes {
		t.Fatalf("length %d exceeds limit", len(got))
	}
	if !utf8.ValidString(got) {
		t.Fatalf("truncation split a rune: %q", got)
	}
}

func TestWords(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "¿Cómo estás?", want: []string{"Cómo", "estás"}},
		{in: "l'homme est là!", want: []string{"l'homme", "est", "là"}},
		{in: "Tengo 3 gatos.", want: []string{"Tengo", "3", "gatos"}},
		{in: " ... ", want: nil},
	}
	for _, tc := range tests {
		got := textutil.Words(tc.in)
		if strings.Join(got, "|") != strings.Join(tc.want, "|") {
			t.Fatalf("Words(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
