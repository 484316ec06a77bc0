package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Words splits text into words made of letters, digits, combining marks and
// inner apostrophes. Punctuation such as "¿" or "!" separates words and is
// never part of one. Case is preserved.
func Words(text string) []string {
	text = norm.NFC.String(text)
	runes := []rune(text)
	var words []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}
	for i, r := range runes {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.Is(unicode.Mn, r):
			current.WriteRune(r)
		case isApostrophe(r) && current.Len() > 0 && i+1 < len(runes) && unicode.IsLetter(runes[i+1]):
			current.WriteRune(r)
		default:
			flush()
		}
	}
	flush()
	return words
}

func isApostrophe(r rune) bool {
	return r == '\'' || r == '’'
}
