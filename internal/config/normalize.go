package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSpeech()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.CredentialsFile) == "" {
		if value, ok := os.LookupEnv(credentialsEnvVar); ok && strings.TrimSpace(value) != "" {
			c.Paths.CredentialsFile = strings.TrimSpace(value)
		} else {
			c.Paths.CredentialsFile = defaultCredentialsFile
		}
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}

	fields := []struct {
		key   string
		value *string
	}{
		{"paths.course_dir", &c.Paths.CourseDir},
		{"paths.sentences_file", &c.Paths.SentencesFile},
		{"paths.settings_file", &c.Paths.SettingsFile},
		{"paths.credentials_file", &c.Paths.CredentialsFile},
		{"paths.state_dir", &c.Paths.StateDir},
		{"paths.log_dir", &c.Paths.LogDir},
	}
	for _, field := range fields {
		expanded, err := expandPath(strings.TrimSpace(*field.value))
		if err != nil {
			return fmt.Errorf("%s: %w", field.key, err)
		}
		*field.value = expanded
	}
	return nil
}

func (c *Config) normalizeSpeech() {
	c.Speech.NativeLanguage = strings.TrimSpace(c.Speech.NativeLanguage)
	if c.Speech.NativeLanguage == "" {
		c.Speech.NativeLanguage = defaultNativeLanguage
	}
	c.Speech.VoiceGender = strings.ToUpper(strings.TrimSpace(c.Speech.VoiceGender))
	if c.Speech.VoiceGender == "" {
		c.Speech.VoiceGender = defaultVoiceGender
	}
	if c.Speech.SpeakingRate == 0 {
		c.Speech.SpeakingRate = defaultSpeakingRate
	}
	if c.Speech.RequestTimeout <= 0 {
		c.Speech.RequestTimeout = defaultRequestTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
