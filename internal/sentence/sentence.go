package sentence

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"audiocourse/internal/services"
	"audiocourse/internal/textutil"
)

const byteOrderMark = "\ufeff"

// MinRunes is the shortest line, in Unicode code points, that qualifies.
const MinRunes = 2

// ErrNoQualifiedItems reports a candidate file without a single usable phrase.
var ErrNoQualifiedItems = fmt.Errorf("%w: no qualified sentences", services.ErrConfiguration)

// Sentence is one qualified phrase.
type Sentence struct {
	// Index is the 0-based position among qualified sentences.
	Index int
	// Line is the 1-based line number in the candidate file.
	Line int
	// Text is the line exactly as read.
	Text string
	// FolderName is the sanitized course unit folder. May be empty.
	FolderName string
}

// ReadCandidates returns every line of the candidate file. A leading UTF-8
// byte order mark is dropped, lines are split on "\n" and a trailing "\r" is
// removed.
func ReadCandidates(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(
				services.ErrNotFound,
				"sentence",
				"read candidates",
				fmt.Sprintf("sentences file %s not found", path),
				err,
			)
		}
		return nil, fmt.Errorf("read sentences file: %w", err)
	}
	return SplitLines(strings.TrimPrefix(string(data), byteOrderMark)), nil
}

// SplitLines splits text on "\n" and strips one trailing "\r" per line. A
// trailing newline does not produce an extra empty line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Qualifies reports whether a raw line is long enough to become a unit.
func Qualifies(line string) bool {
	return utf8.RuneCountInString(line) >= MinRunes
}

// Qualify keeps the lines that qualify, in order, and derives their folder
// names. It fails with ErrNoQualifiedItems when nothing qualifies.
func Qualify(lines []string) ([]Sentence, error) {
	out := make([]Sentence, 0, len(lines))
	for i, line := range lines {
		if !Qualifies(line) {
			continue
		}
		out = append(out, Sentence{
			Index:      len(out),
			Line:       i + 1,
			Text:       line,
			FolderName: textutil.SanitizePathSegment(line),
		})
	}
	if len(out) == 0 {
		return nil, ErrNoQualifiedItems
	}
	return out, nil
}

// Load reads and qualifies the candidate file in one call.
func Load(path string) ([]Sentence, error) {
	lines, err := ReadCandidates(path)
	if err != nil {
		return nil, err
	}
	return Qualify(lines)
}
