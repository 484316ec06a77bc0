package language

import (
	"fmt"
	"sort"
	"strings"

	xlanguage "golang.org/x/text/language"
)

type entry struct {
	code2   string // ISO 639-1 (2-letter)
	code3   string // ISO 639-2 primary (3-letter)
	display string // Human-readable name
	locale  string // default speech locale when the tag carries no region
}

var languages = []entry{
	{"ar", "ara", "Arabic", "ar-XA"},
	{"da", "dan", "Danish", "da-DK"},
	{"de", "deu", "German", "de-DE"},
	{"en", "eng", "English", "en-US"},
	{"es", "spa", "Spanish", "es-ES"},
	{"fi", "fin", "Finnish", "fi-FI"},
	{"fr", "fra", "French", "fr-FR"},
	{"hi", "hin", "Hindi", "hi-IN"},
	{"it", "ita", "Italian", "it-IT"},
	{"ja", "jpn", "Japanese", "ja-JP"},
	{"ko", "kor", "Korean", "ko-KR"},
	{"nb", "nob", "Norwegian", "nb-NO"},
	{"nl", "nld", "Dutch", "nl-NL"},
	{"pl", "pol", "Polish", "pl-PL"},
	{"pt", "por", "Portuguese", "pt-PT"},
	{"ru", "rus", "Russian", "ru-RU"},
	{"sv", "swe", "Swedish", "sv-SE"},
	{"tr", "tur", "Turkish", "tr-TR"},
	{"uk", "ukr", "Ukrainian", "uk-UA"},
	{"zh", "zho", "Chinese", "cmn-CN"},
}

var byCode2 map[string]*entry

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	for i := range languages {
		byCode2[languages[i].code2] = &languages[i]
	}
}

// Language describes a parsed, supported language tag.
type Language struct {
	// Tag is the canonical BCP 47 form of the input (e.g. "es-MX").
	Tag string
	// Base is the ISO 639-1 base language (e.g. "es").
	Base string
	// Code3 is the ISO 639-2 code.
	Code3 string
	// Display is the English name.
	Display string
	// SpeechLocale is the locale sent to the speech provider.
	SpeechLocale string
}

// Resolve parses code as a BCP 47 tag and requires its base language to be
// one the course can speak.
func Resolve(code string) (Language, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return Language{}, fmt.Errorf("language code is empty")
	}
	tag, err := xlanguage.Parse(trimmed)
	if err != nil {
		return Language{}, fmt.Errorf("parse language %q: %w", trimmed, err)
	}
	base, confidence := tag.Base()
	if confidence == xlanguage.No {
		return Language{}, fmt.Errorf("language %q has no base language", trimmed)
	}
	e, ok := byCode2[base.String()]
	if !ok {
		return Language{}, fmt.Errorf("language %q is not supported", trimmed)
	}
	locale := e.locale
	if region, conf := tag.Region(); conf == xlanguage.Exact {
		locale = e.code2 + "-" + region.String()
		if e.code2 == "zh" {
			locale = "cmn-" + region.String()
		}
	}
	return Language{
		Tag:          tag.String(),
		Base:         e.code2,
		Code3:        e.code3,
		Display:      e.display,
		SpeechLocale: locale,
	}, nil
}

// IsSupported reports whether Resolve accepts code.
func IsSupported(code string) bool {
	_, err := Resolve(code)
	return err == nil
}

// DisplayName returns the English name for a code, or the upper-cased input
// when the language is unknown.
func DisplayName(code string) string {
	if lang, err := Resolve(code); err == nil {
		return lang.Display
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// SupportedBases lists the ISO 639-1 codes the course supports.
func SupportedBases() []string {
	codes := make([]string, 0, len(languages))
	for _, e := range languages {
		codes = append(codes, e.code2)
	}
	sort.Strings(codes)
	return codes
}
