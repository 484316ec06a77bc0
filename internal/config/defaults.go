package config

const (
	defaultConfigPath      = "~/.config/audiocourse/config.toml"
	defaultCourseDir       = "~/audiocourse/course"
	defaultSentencesFile   = "~/audiocourse/sentences.txt"
	defaultSettingsFile    = "~/.config/audiocourse/settings.toml"
	defaultCredentialsFile = "~/.config/audiocourse/googleCredentials.json"
	defaultStateDir        = "~/.local/share/audiocourse"
	defaultLogDir          = "~/.local/share/audiocourse/logs"
	defaultNativeLanguage  = "en-US"
	defaultVoiceGender     = "NEUTRAL"
	defaultSpeakingRate    = 0.9
	defaultPauseSeconds    = 1.5
	defaultMaxWords        = 12
	defaultRequestTimeout  = 60
	defaultConcurrency     = 1
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"

	credentialsEnvVar = "GOOGLE_APPLICATION_CREDENTIALS"
)

// Default returns a Config populated with repository defaults. The credentials
// path is left empty so normalization can prefer GOOGLE_APPLICATION_CREDENTIALS.
func Default() Config {
	return Config{
		Paths: Paths{
			CourseDir:     defaultCourseDir,
			SentencesFile: defaultSentencesFile,
			SettingsFile:  defaultSettingsFile,
			StateDir:      defaultStateDir,
			LogDir:        defaultLogDir,
		},
		Speech: Speech{
			NativeLanguage: defaultNativeLanguage,
			VoiceGender:    defaultVoiceGender,
			SpeakingRate:   defaultSpeakingRate,
			PauseSeconds:   defaultPauseSeconds,
			MaxWords:       defaultMaxWords,
			RequestTimeout: defaultRequestTimeout,
		},
		Build: Build{
			Concurrency:  defaultConcurrency,
			VerifyTracks: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
