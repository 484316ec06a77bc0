package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// MaxSegmentBytes bounds a sanitized path segment. Most filesystems cap a
// single name at 255 bytes; the margin leaves room for staging prefixes.
const MaxSegmentBytes = 120

// pathSeparatorReplacer turns separators into dashes so "a/b" stays readable.
var pathSeparatorReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
)

// SanitizePathSegment derives a deterministic single-level folder name from
// free text. The text is NFC normalized and lowercased; separators become
// dashes; characters illegal on common filesystems and control characters
// are dropped; whitespace runs collapse to one space; leading and trailing
// dots and spaces are stripped. The result may be empty.
func SanitizePathSegment(text string) string {
	text = norm.NFC.String(text)
	text = cases.Lower(language.Und).String(text)
	text = pathSeparatorReplacer.Replace(text)

	var b strings.Builder
	b.Grow(len(text))
	pendingSpace := false
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = true
			continue
		case unicode.IsControl(r), isIllegalRune(r):
			continue
		}
		if pendingSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pendingSpace = false
		b.WriteRune(r)
	}

	out := trimSegment(b.String())
	if len(out) > MaxSegmentBytes {
		out = trimSegment(truncateBytes(out, MaxSegmentBytes))
	}
	return out
}

func isIllegalRune(r rune) bool {
	switch r {
	case '*', '?', '"', '<', '>', '|', utf8.RuneError:
		return true
	}
	return unicode.Is(unicode.Cf, r)
}

func trimSegment(s string) string {
	return strings.Trim(s, ". ")
}

func truncateBytes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
