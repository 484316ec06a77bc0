package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains file and directory locations.
type Paths struct {
	CourseDir       string `toml:"course_dir"`
	SentencesFile   string `toml:"sentences_file"`
	SettingsFile    string `toml:"settings_file"`
	CredentialsFile string `toml:"credentials_file"`
	StateDir        string `toml:"state_dir"`
	LogDir          string `toml:"log_dir"`
}

// Speech contains translation and speech synthesis settings.
type Speech struct {
	NativeLanguage string  `toml:"native_language"`
	VoiceGender    string  `toml:"voice_gender"`
	SpeakingRate   float64 `toml:"speaking_rate"`
	// PauseSeconds is the silence inserted between clips in assembled tracks.
	PauseSeconds float64 `toml:"pause_seconds"`
	// MaxWords caps the number of distinct words voiced in the word/definition track.
	MaxWords       int `toml:"max_words"`
	RequestTimeout int `toml:"request_timeout"`
}

// Build contains course build settings.
type Build struct {
	Concurrency  int  `toml:"concurrency"`
	VerifyTracks bool `toml:"verify_tracks"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all application configuration values.
//
// Configuration sections by subsystem:
//   - Paths: course root, candidate sentences, settings artifact, credentials
//   - Speech: translation/synthesis voice and track assembly
//   - Build: course build concurrency and verification
//   - Logging: log format and level
//
// The wizard-produced course settings (language, repeat count, project) are
// not part of this file; see package settings.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Speech  Speech  `toml:"speech"`
	Build   Build   `toml:"build"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("audiocourse.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the build needs. It is not called
// on config load so that commands which only print help have no side effects.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.CourseDir, c.Paths.StateDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LockDir is where per-unit build locks live.
func (c *Config) LockDir() string {
	return filepath.Join(c.Paths.StateDir, "locks")
}

// ClipCacheDir is where synthesized speech clips are cached.
func (c *Config) ClipCacheDir() string {
	return filepath.Join(c.Paths.StateDir, "clips")
}

// HistoryPath is the SQLite database recording build runs.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.Paths.StateDir, "history.db")
}

// RequestTimeout bounds a single provider call.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Speech.RequestTimeout) * time.Second
}

// Pause is the silence inserted between clips.
func (c *Config) Pause() time.Duration {
	return time.Duration(c.Speech.PauseSeconds * float64(time.Second))
}

// FFmpegBinary returns the ffmpeg executable name used for track assembly.
func (c *Config) FFmpegBinary() string {
	return "ffmpeg"
}

// FFprobeBinary returns the ffprobe executable name used for track verification.
func (c *Config) FFprobeBinary() string {
	return "ffprobe"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
