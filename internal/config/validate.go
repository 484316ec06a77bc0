package config

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateSpeech(); err != nil {
		return err
	}
	if err := c.validateBuild(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	required := []struct {
		key   string
		value string
	}{
		{"paths.course_dir", c.Paths.CourseDir},
		{"paths.sentences_file", c.Paths.SentencesFile},
		{"paths.settings_file", c.Paths.SettingsFile},
		{"paths.credentials_file", c.Paths.CredentialsFile},
		{"paths.state_dir", c.Paths.StateDir},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf("%s must be set", field.key)
		}
	}
	if c.Paths.CourseDir == c.Paths.StateDir {
		return errors.New("paths.course_dir and paths.state_dir must differ")
	}
	return nil
}

func (c *Config) validateSpeech() error {
	if _, err := language.Parse(c.Speech.NativeLanguage); err != nil {
		return fmt.Errorf("speech.native_language %q is not a valid language tag: %w", c.Speech.NativeLanguage, err)
	}
	switch c.Speech.VoiceGender {
	case "MALE", "FEMALE", "NEUTRAL":
	default:
		return fmt.Errorf("speech.voice_gender must be MALE, FEMALE, or NEUTRAL (got %q)", c.Speech.VoiceGender)
	}
	if c.Speech.SpeakingRate < 0.25 || c.Speech.SpeakingRate > 4.0 {
		return errors.New("speech.speaking_rate must be between 0.25 and 4.0")
	}
	if c.Speech.PauseSeconds < 0 || c.Speech.PauseSeconds > 10 {
		return errors.New("speech.pause_seconds must be between 0 and 10")
	}
	if c.Speech.MaxWords < 0 {
		return errors.New("speech.max_words must be >= 0")
	}
	return ensurePositiveMap(map[string]int{
		"speech.request_timeout": c.Speech.RequestTimeout,
	})
}

func (c *Config) validateBuild() error {
	if c.Build.Concurrency < 1 || c.Build.Concurrency > 16 {
		return errors.New("build.concurrency must be between 1 and 16")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
