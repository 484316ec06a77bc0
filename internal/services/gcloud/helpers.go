package gcloud

import (
	"strconv"
	"strings"

	"audiocourse/internal/language"
)

// baseLanguage reduces a tag to the code Cloud Translation expects.
func baseLanguage(code string) string {
	lang, err := language.Resolve(code)
	if err != nil {
		return strings.TrimSpace(code)
	}
	if lang.Base == "zh" {
		return lang.Tag
	}
	return lang.Base
}

func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', 2, 64)
}
