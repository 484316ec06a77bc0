package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"audiocourse/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantCourse := filepath.Join(tempHome, "audiocourse", "course")
	if cfg.Paths.CourseDir != wantCourse {
		t.Fatalf("unexpected course dir: got %q want %q", cfg.Paths.CourseDir, wantCourse)
	}
	wantCreds := filepath.Join(tempHome, ".config", "audiocourse", "googleCredentials.json")
	if cfg.Paths.CredentialsFile != wantCreds {
		t.Fatalf("unexpected credentials path: got %q want %q", cfg.Paths.CredentialsFile, wantCreds)
	}
	if cfg.Build.Concurrency != 1 {
		t.Fatalf("expected sequential builds by default, got %d", cfg.Build.Concurrency)
	}
	if !cfg.Build.VerifyTracks {
		t.Fatal("expected track verification enabled by default")
	}
	if cfg.Speech.VoiceGender != "NEUTRAL" {
		t.Fatalf("unexpected voice gender %q", cfg.Speech.VoiceGender)
	}

	if _, err := os.Stat(cfg.Paths.CourseDir); !os.IsNotExist(err) {
		t.Fatalf("expected Load to leave course dir uncreated, stat err=%v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.CourseDir, cfg.Paths.StateDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadUsesCredentialsEnvFallback(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	creds := filepath.Join(t.TempDir(), "key.json")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", creds)

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.CredentialsFile != creds {
		t.Fatalf("expected credentials from env, got %q", cfg.Paths.CredentialsFile)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "audiocourse.toml")

	type payload struct {
		Paths struct {
			CourseDir       string `toml:"course_dir"`
			CredentialsFile string `toml:"credentials_file"`
		} `toml:"paths"`
		Speech struct {
			NativeLanguage string  `toml:"native_language"`
			VoiceGender    string  `toml:"voice_gender"`
			PauseSeconds   float64 `toml:"pause_seconds"`
		} `toml:"speech"`
		Build struct {
			Concurrency int `toml:"concurrency"`
		} `toml:"build"`
	}
	custom := payload{}
	custom.Paths.CourseDir = filepath.Join(tempDir, "course")
	custom.Paths.CredentialsFile = filepath.Join(tempDir, "googleCredentials.json")
	custom.Speech.NativeLanguage = "de-DE"
	custom.Speech.VoiceGender = "female"
	custom.Speech.PauseSeconds = 2
	custom.Build.Concurrency = 4
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Paths.CourseDir != custom.Paths.CourseDir {
		t.Fatalf("expected course dir override, got %q", cfg.Paths.CourseDir)
	}
	if cfg.Speech.NativeLanguage != "de-DE" {
		t.Fatalf("expected native language override, got %q", cfg.Speech.NativeLanguage)
	}
	if cfg.Speech.VoiceGender != "FEMALE" {
		t.Fatalf("expected voice gender to be upper-cased, got %q", cfg.Speech.VoiceGender)
	}
	if cfg.Speech.PauseSeconds != 2 {
		t.Fatalf("expected pause 2, got %v", cfg.Speech.PauseSeconds)
	}
	if cfg.Build.Concurrency != 4 {
		t.Fatalf("expected concurrency 4, got %d", cfg.Build.Concurrency)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "audiocourse.toml")
	if err := os.WriteFile(configPath, []byte("[paths]\nstaging_dir = \"/tmp\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "GOOGLE_APPLICATION_CREDENTIALS") {
		t.Fatalf("sample config missing credentials guidance: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if !strings.Contains(cfg.Paths.CourseDir, "audiocourse") {
		t.Fatalf("expected course dir to contain audiocourse, got %q", cfg.Paths.CourseDir)
	}

	t.Setenv("HOME", t.TempDir())
	if _, _, exists, err := config.Load(path); err != nil || !exists {
		t.Fatalf("expected sample to load cleanly, exists=%v err=%v", exists, err)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	valid := func() config.Config {
		cfg := config.Default()
		cfg.Paths.CredentialsFile = "/tmp/creds.json"
		return cfg
	}

	cfg := valid()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"missing credentials", func(c *config.Config) { c.Paths.CredentialsFile = "" }},
		{"course equals state", func(c *config.Config) { c.Paths.StateDir = c.Paths.CourseDir }},
		{"bad native language", func(c *config.Config) { c.Speech.NativeLanguage = "not a tag" }},
		{"bad gender", func(c *config.Config) { c.Speech.VoiceGender = "ROBOT" }},
		{"speaking rate", func(c *config.Config) { c.Speech.SpeakingRate = 9 }},
		{"pause", func(c *config.Config) { c.Speech.PauseSeconds = -1 }},
		{"timeout", func(c *config.Config) { c.Speech.RequestTimeout = 0 }},
		{"concurrency", func(c *config.Config) { c.Build.Concurrency = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
