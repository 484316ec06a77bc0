package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"audiocourse/internal/services"
)

// Save writes the configuration as a flat TOML record. The file is written to
// a temporary sibling and renamed so readers never see a partial artifact.
func Save(path string, c Configuration) error {
	record := make(map[string]any, len(c.values))
	for k, v := range c.values {
		record[string(k)] = v
	}
	data, err := toml.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".settings-*.toml")
	if err != nil {
		return fmt.Errorf("create temp settings: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close settings: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("finalize settings: %w", err)
	}
	return nil
}

// Load reads a settings artifact. Unknown keys and mistyped values are
// configuration defects.
func Load(path string) (Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Configuration{}, services.Wrap(
				services.ErrNotFound,
				"settings",
				"load",
				fmt.Sprintf("settings file %s not found; run `audiocourse configure`", path),
				err,
			)
		}
		return Configuration{}, fmt.Errorf("read settings: %w", err)
	}

	var record map[string]any
	if err := toml.Unmarshal(data, &record); err != nil {
		return Configuration{}, services.Wrap(services.ErrConfiguration, "settings", "load", "parse "+path, err)
	}

	cfg := New()
	for name, value := range record {
		cfg, err = cfg.With(Key(name), value)
		if err != nil {
			return Configuration{}, err
		}
	}
	return cfg, nil
}
