package gcloud

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/api/option"
	texttospeech "google.golang.org/api/texttospeech/v1"

	"audiocourse/internal/config"
	"audiocourse/internal/language"
	"audiocourse/internal/logging"
	"audiocourse/internal/services"
)

const audioEncoding = "OGG_OPUS"

// Synthesizer voices text with Cloud Text-to-Speech v1.
type Synthesizer struct {
	svc          *texttospeech.Service
	gender       string
	speakingRate float64
	timeout      time.Duration
	logger       *slog.Logger
}

// NewSynthesizer constructs a Text-to-Speech client using the voice settings
// from cfg.
func NewSynthesizer(ctx context.Context, cfg *config.Config, projectID string, logger *slog.Logger, extra ...option.ClientOption) (*Synthesizer, error) {
	if cfg == nil {
		return nil, errors.New("synthesizer: config is required")
	}
	opts := append(ClientOptions(cfg.Paths.CredentialsFile, projectID), extra...)
	svc, err := texttospeech.NewService(ctx, opts...)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "speech", "create client", "could not create Text-to-Speech client", err)
	}
	return &Synthesizer{
		svc:          svc,
		gender:       cfg.Speech.VoiceGender,
		speakingRate: cfg.Speech.SpeakingRate,
		timeout:      cfg.RequestTimeout(),
		logger:       logging.NewComponentLogger(logger, "speech"),
	}, nil
}

// VoiceKey identifies the voice settings that shape synthesized audio. It is
// part of the clip cache key.
func (s *Synthesizer) VoiceKey() string {
	return audioEncoding + "|" + s.gender + "|" + formatRate(s.speakingRate)
}

// Synthesize returns Ogg Opus audio for text spoken in languageCode.
func (s *Synthesizer) Synthesize(ctx context.Context, text, languageCode string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, services.Wrap(services.ErrValidation, "speech", "synthesize", "text is empty", nil)
	}
	locale := languageCode
	if lang, err := language.Resolve(languageCode); err == nil {
		locale = lang.SpeechLocale
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	req := &texttospeech.SynthesizeSpeechRequest{
		Input: &texttospeech.SynthesisInput{Text: text},
		Voice: &texttospeech.VoiceSelectionParams{
			LanguageCode: locale,
			SsmlGender:   s.gender,
		},
		AudioConfig: &texttospeech.AudioConfig{
			AudioEncoding: audioEncoding,
			SpeakingRate:  s.speakingRate,
		},
	}
	started := time.Now()
	resp, err := s.svc.Text.Synthesize(req).Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError("speech", "synthesize", err)
	}
	audio, err := base64.StdEncoding.DecodeString(resp.AudioContent)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "speech", "synthesize", "decode audio content", err)
	}
	if len(audio) == 0 {
		return nil, services.Wrap(services.ErrExternalTool, "speech", "synthesize", "provider returned empty audio", nil)
	}
	s.logger.Debug("synthesized clip",
		logging.String("locale", locale),
		logging.Int("bytes", len(audio)),
		logging.Duration("elapsed", time.Since(started)),
	)
	return audio, nil
}
