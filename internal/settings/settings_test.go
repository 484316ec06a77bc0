package settings_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"audiocourse/internal/services"
	"audiocourse/internal/settings"
)

func TestWithDoesNotMutateReceiver(t *testing.T) {
	base := settings.New()
	next, err := base.With(settings.KeyProjectID, "my-project-1")
	if err != nil {
		t.Fatalf("With: %v", err)
	}
	if base.Has(settings.KeyProjectID) {
		t.Fatal("receiver was mutated")
	}
	if got := next.ProjectID(); got != "my-project-1" {
		t.Fatalf("ProjectID = %q", got)
	}
}

func TestWithRejectsUnknownKeyAndWrongType(t *testing.T) {
	if _, err := settings.New().With("voice", "x"); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error for unknown key, got %v", err)
	}
	if _, err := settings.New().With(settings.KeyNumberOfRepeats, "3"); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error for string repeats, got %v", err)
	}
	cfg, err := settings.New().With(settings.KeyNumberOfRepeats, 3)
	if err != nil {
		t.Fatalf("int should coerce: %v", err)
	}
	if cfg.NumberOfRepeats() != 3 {
		t.Fatalf("NumberOfRepeats = %d", cfg.NumberOfRepeats())
	}
}

func TestParseValue(t *testing.T) {
	v, err := settings.ParseValue(settings.KeyNumberOfRepeats, " 5 ")
	if err != nil {
		t.Fatalf("ParseValue: %v", err)
	}
	if v.(int64) != 5 {
		t.Fatalf("expected 5, got %v", v)
	}
	if _, err := settings.ParseValue(settings.KeyNumberOfRepeats, "abc"); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	s, err := settings.ParseValue(settings.KeyLanguageCode, "  es-ES ")
	if err != nil || s.(string) != "es-ES" {
		t.Fatalf("unexpected string parse %v %v", s, err)
	}
}

func TestSaveLoadRoundTripKeepsNumbers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.toml")
	cfg := mustConfig(t)

	if err := settings.Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "numberOfRepeats = 2") {
		t.Fatalf("numeric value should be stored unquoted:\n%s", data)
	}

	loaded, err := settings.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.LanguageCode() != "es" || loaded.ProjectID() != "my-project-1" || loaded.NumberOfRepeats() != 2 {
		t.Fatalf("unexpected round trip: %v", loaded.Keys())
	}
	if err := loaded.RequireComplete(); err != nil {
		t.Fatalf("RequireComplete: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := settings.Load(filepath.Join(t.TempDir(), "absent.toml"))
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestLoadRejectsUnknownAndMistypedKeys(t *testing.T) {
	cases := map[string]string{
		"unknown": "languageCode = \"es\"\nvoice = \"x\"\n",
		"mistyped": "numberOfRepeats = \"two\"\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.toml")
			if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			if _, err := settings.Load(path); !errors.Is(err, services.ErrConfiguration) {
				t.Fatalf("expected configuration error, got %v", err)
			}
		})
	}
}

func TestRequireCompleteListsMissingKeys(t *testing.T) {
	cfg, err := settings.New().With(settings.KeyLanguageCode, "es")
	if err != nil {
		t.Fatalf("With: %v", err)
	}
	err = cfg.RequireComplete()
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	for _, key := range []string{"numberOfRepeats", "projectId"} {
		if !strings.Contains(err.Error(), key) {
			t.Fatalf("expected %s in %v", key, err)
		}
	}
}

func mustConfig(t *testing.T) settings.Configuration {
	t.Helper()
	cfg := settings.New()
	var err error
	for key, value := range map[settings.Key]any{
		settings.KeyLanguageCode:    "es",
		settings.KeyProjectID:       "my-project-1",
		settings.KeyNumberOfRepeats: int64(2),
	} {
		cfg, err = cfg.With(key, value)
		if err != nil {
			t.Fatalf("With(%s): %v", key, err)
		}
	}
	return cfg
}

func TestValidateAcceptsWizardValues(t *testing.T) {
	if err := mustConfig(t).Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRejectsHandEditedValues(t *testing.T) {
	cases := map[string]struct {
		body string
		want string
	}{
		"negative repeats": {
			body: "languageCode = \"es\"\nnumberOfRepeats = -1\nprojectId = \"my-project-1\"\n",
			want: "numberOfRepeats",
		},
		"huge repeats": {
			body: "languageCode = \"es\"\nnumberOfRepeats = 1000000\nprojectId = \"my-project-1\"\n",
			want: "numberOfRepeats",
		},
		"unknown language": {
			body: "languageCode = \"zz-QQ\"\nnumberOfRepeats = 2\nprojectId = \"my-project-1\"\n",
			want: "languageCode",
		},
		"bad project": {
			body: "languageCode = \"es\"\nnumberOfRepeats = 2\nprojectId = \"X\"\n",
			want: "projectId",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.toml")
			if err := os.WriteFile(path, []byte(tc.body), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			cfg, err := settings.Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			err = cfg.Validate()
			if !errors.Is(err, services.ErrConfiguration) {
				t.Fatalf("expected configuration error, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %s in %v", tc.want, err)
			}
		})
	}
}

func TestValidRepeatsBounds(t *testing.T) {
	for n, want := range map[int64]bool{-1: false, 0: true, settings.MaxRepeats: true, settings.MaxRepeats + 1: false} {
		if got := settings.ValidRepeats(n); got != want {
			t.Errorf("ValidRepeats(%d) = %v, want %v", n, got, want)
		}
	}
}
