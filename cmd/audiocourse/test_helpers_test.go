package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"audiocourse/internal/build"
	"audiocourse/internal/config"
	"audiocourse/internal/settings"
	"audiocourse/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	cfg := testsupport.NewConfig(t, opts...)
	cfg.Logging.Level = "error"
	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		baseDir:    base,
	}
}

func runCLI(t *testing.T, args []string, configPath, stdin string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func writeSettings(t *testing.T, cfg *config.Config, language string, repeats int) {
	t.Helper()
	values, err := settings.New().With(settings.KeyLanguageCode, language)
	if err == nil {
		values, err = values.With(settings.KeyNumberOfRepeats, repeats)
	}
	if err == nil {
		values, err = values.With(settings.KeyProjectID, "my-project")
	}
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if err := settings.Save(cfg.Paths.SettingsFile, values); err != nil {
		t.Fatalf("save settings: %v", err)
	}
}

// useFakeComposer swaps the Google-backed composer for one that writes
// placeholder tracks, and returns the number of units composed.
func useFakeComposer(t *testing.T, fail map[string]bool) *int {
	t.Helper()
	composed := new(int)
	previous := composerFactory
	composerFactory = func(context.Context, *config.Config, settings.Configuration, *slog.Logger) (build.Composer, error) {
		return build.ComposerFunc(func(_ context.Context, unit build.Unit) error {
			if fail[unit.Sentence.Text] {
				return io.ErrUnexpectedEOF
			}
			for _, name := range build.TrackNames {
				if err := os.WriteFile(filepath.Join(unit.Dir, name), []byte(unit.Sentence.Text), 0o644); err != nil {
					return err
				}
			}
			*composed++
			return nil
		}), nil
	}
	t.Cleanup(func() { composerFactory = previous })
	return composed
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
