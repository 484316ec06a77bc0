package language_test

import (
	"testing"

	"audiocourse/internal/language"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		in     string
		base   string
		locale string
		name   string
	}{
		{in: "es", base: "es", locale: "es-ES", name: "Spanish"},
		{in: "es-MX", base: "es", locale: "es-MX", name: "Spanish"},
		{in: " fr ", base: "fr", locale: "fr-FR", name: "French"},
		{in: "en-us", base: "en", locale: "en-US", name: "English"},
		{in: "zh-TW", base: "zh", locale: "cmn-TW", name: "Chinese"},
	}
	for _, tc := range tests {
		got, err := language.Resolve(tc.in)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", tc.in, err)
		}
		if got.Base != tc.base || got.SpeechLocale != tc.locale || got.Display != tc.name {
			t.Fatalf("Resolve(%q) = %+v", tc.in, got)
		}
	}
}

func TestResolveRejects(t *testing.T) {
	for _, in := range []string{"", "not a tag", "xx", "tlh", "123"} {
		if _, err := language.Resolve(in); err == nil {
			t.Fatalf("Resolve(%q) should fail", in)
		}
	}
}

func TestDisplayNameFallsBack(t *testing.T) {
	if got := language.DisplayName("de"); got != "German" {
		t.Fatalf("DisplayName(de) = %q", got)
	}
	if got := language.DisplayName("qq"); got != "QQ" {
		t.Fatalf("DisplayName(qq) = %q", got)
	}
}

func TestSupportedBasesSorted(t *testing.T) {
	bases := language.SupportedBases()
	for i := 1; i < len(bases); i++ {
		if bases[i-1] > bases[i] {
			t.Fatalf("bases not sorted: %v", bases)
		}
	}
	if !language.IsSupported("ja") {
		t.Fatal("ja should be supported")
	}
}
