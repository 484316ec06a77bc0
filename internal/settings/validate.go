package settings

import (
	"fmt"
	"regexp"
	"strings"

	"audiocourse/internal/language"
	"audiocourse/internal/services"
)

// MaxRepeats bounds how often the lead sentence repeats.
const MaxRepeats = 20

var projectIDPattern = regexp.MustCompile(`^[a-z][a-z0-9-]{4,28}[a-z0-9]$`)

// ValidProjectID reports whether id has the shape of a Google Cloud project ID.
func ValidProjectID(id string) bool {
	return projectIDPattern.MatchString(id)
}

// ValidRepeats reports whether n is an allowed repeat count.
func ValidRepeats(n int64) bool {
	return n >= 0 && n <= MaxRepeats
}

// Validate fails when a key is missing or a value is out of range. A
// hand-edited settings file must pass this before any build work starts.
func (c Configuration) Validate() error {
	if err := c.RequireComplete(); err != nil {
		return err
	}

	var problems []string
	if code := c.LanguageCode(); !language.IsSupported(code) {
		problems = append(problems, fmt.Sprintf("%s %q is not a supported language", KeyLanguageCode, code))
	}
	if n := c.NumberOfRepeats(); !ValidRepeats(n) {
		problems = append(problems, fmt.Sprintf("%s must be between 0 and %d (got %d)", KeyNumberOfRepeats, MaxRepeats, n))
	}
	if id := c.ProjectID(); !ValidProjectID(id) {
		problems = append(problems, fmt.Sprintf("%s %q is not a valid project ID", KeyProjectID, id))
	}
	if len(problems) == 0 {
		return nil
	}
	return services.Wrap(
		services.ErrConfiguration,
		"settings",
		"validate",
		strings.Join(problems, "; ")+"; run `audiocourse configure`",
		nil,
	)
}
