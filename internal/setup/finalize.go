package setup

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"audiocourse/internal/config"
	"audiocourse/internal/logging"
	"audiocourse/internal/settings"
)

// Finalizer persists a completed wizard run.
type Finalizer struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewFinalizer builds a finalizer for cfg's paths.
func NewFinalizer(cfg *config.Config, logger *slog.Logger) *Finalizer {
	return &Finalizer{cfg: cfg, logger: logging.NewComponentLogger(logger, "setup")}
}

// Finalize saves values, creates an empty sentences file when none exists,
// and writes the closing instructions to w.
func (f *Finalizer) Finalize(values settings.Configuration, w io.Writer) error {
	if err := values.Validate(); err != nil {
		return err
	}
	if err := settings.Save(f.cfg.Paths.SettingsFile, values); err != nil {
		return err
	}
	f.logger.Info("settings saved",
		logging.String(logging.FieldEventType, "settings_saved"),
		logging.String("path", f.cfg.Paths.SettingsFile),
		logging.String("language", values.LanguageCode()),
	)

	created, err := ensureSentencesFile(f.cfg.Paths.SentencesFile)
	if err != nil {
		return err
	}
	if created {
		f.logger.Info("sentences file created", logging.String("path", f.cfg.Paths.SentencesFile))
	}

	_, err = fmt.Fprintf(w, `
Setup complete. Settings were saved to %s.

Next:
  1. Add sentences in %s to the file
     %s
     one sentence per line.
  2. Run: audiocourse build
`, f.cfg.Paths.SettingsFile, values.LanguageCode(), f.cfg.Paths.SentencesFile)
	return err
}

func ensureSentencesFile(path string) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create sentences directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("create sentences file: %w", err)
	}
	return true, file.Close()
}
