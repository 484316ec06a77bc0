package setup

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"audiocourse/internal/config"
	"audiocourse/internal/deps"
	"audiocourse/internal/language"
	"audiocourse/internal/services"
	"audiocourse/internal/settings"
	"audiocourse/internal/wizard"
)

// MaxRepeats bounds the lead sentence repeat count.
const MaxRepeats = settings.MaxRepeats

// Steps returns the configure wizard in order.
func Steps(cfg *config.Config) []wizard.Step {
	return []wizard.Step{
		Overview(),
		MediaTools(cfg),
		Credentials(cfg.Paths.CredentialsFile),
		Project(),
		APIs(),
		Language(),
		Repeats(),
	}
}

type anyInputStep struct {
	wizard.Base
}

func (anyInputStep) ValidateInput(input string, cfg settings.Configuration) bool {
	return wizard.AnyInput(input, cfg)
}

// Overview explains what the wizard will do.
func Overview() wizard.Step {
	return anyInputStep{wizard.Base{
		ID: "overview",
		Explanation: `This wizard prepares everything audiocourse needs to build a course.

You will:
  1. install FFmpeg
  2. create a Google Cloud service account key
  3. enter your Google Cloud project ID
  4. enable the Text-to-Speech and Cloud Translation APIs
  5. choose the language you are learning and how often each sentence repeats

Type "exit" or "quit" at any prompt to stop without saving.`,
		PromptText: "Press Enter to continue...",
	}}
}

// APIs explains which Google Cloud APIs must be enabled.
func APIs() wizard.Step {
	return anyInputStep{wizard.Base{
		ID: "apis",
		Explanation: `Enable these APIs for your project in the Google Cloud console:

  - Cloud Text-to-Speech API: https://console.cloud.google.com/apis/library/texttospeech.googleapis.com
  - Cloud Translation API:    https://console.cloud.google.com/apis/library/translate.googleapis.com

Both must be enabled before a build can synthesize or translate anything.`,
		PromptText: "Press Enter once both APIs are enabled...",
	}}
}

type mediaToolsStep struct {
	anyInputStep
	check func() error
}

// MediaTools asks the user to install FFmpeg and confirms both ffmpeg and
// ffprobe resolve on PATH.
func MediaTools(cfg *config.Config) wizard.Step {
	ffmpeg, ffprobe := cfg.FFmpegBinary(), cfg.FFprobeBinary()
	return mediaToolsStep{
		anyInputStep: anyInputStep{wizard.Base{
			ID: "ffmpeg",
			Explanation: `audiocourse joins speech clips into tracks with FFmpeg.

Install it with your package manager, for example:
  - Debian/Ubuntu: sudo apt install ffmpeg
  - Fedora:        sudo dnf install ffmpeg
  - macOS:         brew install ffmpeg

The ffmpeg and ffprobe commands must be on your PATH.`,
			PromptText: "Press Enter to check for ffmpeg and ffprobe...",
		}},
		check: func() error {
			return deps.RequireAvailable(deps.CheckMedia(ffmpeg, ffprobe))
		},
	}
}

func (s mediaToolsStep) ValidateFile(context.Context) error {
	return s.check()
}

func (mediaToolsStep) FileMissingMessage() string {
	return "ffmpeg or ffprobe was not found on PATH. Install FFmpeg, then press Enter to check again."
}

type credentialsStep struct {
	anyInputStep
	path string
}

// Credentials asks for a service account key saved at path. The name is
// matched exactly, including case.
func Credentials(path string) wizard.Step {
	return credentialsStep{
		anyInputStep: anyInputStep{wizard.Base{
			ID: "credentials",
			Explanation: fmt.Sprintf(`audiocourse needs a Google Cloud account and a service account key.

  1. Sign up at https://cloud.google.com/
  2. Create a service account and download a JSON key:
     https://cloud.google.com/iam/docs/creating-managing-service-account-keys
  3. Save the key file as:
     %s
     The spelling must match exactly, including capital letters.`, path),
			PromptText: "Press Enter to verify the credentials file is present...",
		}},
		path: path,
	}
}

func (s credentialsStep) ValidateFile(context.Context) error {
	info, err := os.Stat(s.path)
	if err != nil {
		return services.Wrap(services.ErrNotFound, "setup", "credentials", s.path, err)
	}
	if !info.Mode().IsRegular() {
		return services.Wrap(services.ErrValidation, "setup", "credentials", s.path+" is not a regular file", nil)
	}
	return nil
}

func (s credentialsStep) FileMissingMessage() string {
	return fmt.Sprintf("Credentials file not found at %s. Save the key there, then press Enter.", s.path)
}

type savingStep struct {
	wizard.Base
	key      settings.Key
	validate func(string) bool
}

func (s savingStep) ValidateInput(input string, _ settings.Configuration) bool {
	return s.validate(strings.TrimSpace(input))
}

func (savingStep) HasSaveableData() bool { return true }

func (s savingStep) ConfigDataKey() settings.Key { return s.key }

// Project asks for the Google Cloud project ID.
func Project() wizard.Step {
	return savingStep{
		Base: wizard.Base{
			ID: "project",
			Explanation: `Enter the ID of the Google Cloud project that owns your service account.
It is shown on the project dashboard, for example "my-course-123456".`,
			PromptText:     "Project ID: ",
			InvalidMessage: "Project IDs are 6 to 30 lowercase letters, digits, or hyphens, start with a letter, and do not end with a hyphen.",
		},
		key:      settings.KeyProjectID,
		validate: ValidProjectID,
	}
}

// Language asks for the language being learned.
func Language() wizard.Step {
	return savingStep{
		Base: wizard.Base{
			ID: "language",
			Explanation: fmt.Sprintf(`Which language are you learning? Enter a language code such as "es", "fr", or "pt-BR".

Supported languages: %s`, strings.Join(language.SupportedBases(), ", ")),
			PromptText:     "Language code: ",
			InvalidMessage: "That is not a supported language code. Try a code from the list above.",
		},
		key:      settings.KeyLanguageCode,
		validate: language.IsSupported,
	}
}

// Repeats asks how many times the lead sentence repeats.
func Repeats() wizard.Step {
	return savingStep{
		Base: wizard.Base{
			ID: "repeats",
			Explanation: `Each course unit starts with the sentence followed by repetitions of it.
How many times should the sentence repeat after it is first spoken?`,
			PromptText:     fmt.Sprintf("Number of repeats (0-%d): ", MaxRepeats),
			InvalidMessage: fmt.Sprintf("Enter a whole number from 0 to %d.", MaxRepeats),
		},
		key:      settings.KeyNumberOfRepeats,
		validate: ValidRepeats,
	}
}

// ValidProjectID reports whether id has the shape of a Google Cloud project ID.
func ValidProjectID(id string) bool {
	return settings.ValidProjectID(id)
}

// ValidRepeats reports whether input is an integer in 0..MaxRepeats.
func ValidRepeats(input string) bool {
	n, err := strconv.ParseInt(input, 10, 64)
	if err != nil {
		return false
	}
	return settings.ValidRepeats(n)
}
