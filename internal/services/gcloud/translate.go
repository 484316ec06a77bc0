package gcloud

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"time"

	"google.golang.org/api/option"
	translate "google.golang.org/api/translate/v2"

	"audiocourse/internal/config"
	"audiocourse/internal/logging"
	"audiocourse/internal/services"
)

// Translator translates batches of words with Cloud Translation v2.
type Translator struct {
	svc     *translate.Service
	timeout time.Duration
	logger  *slog.Logger
}

// NewTranslator constructs a Cloud Translation client. Extra options are
// appended after the credential options.
func NewTranslator(ctx context.Context, cfg *config.Config, projectID string, logger *slog.Logger, extra ...option.ClientOption) (*Translator, error) {
	if cfg == nil {
		return nil, errors.New("translator: config is required")
	}
	opts := append(ClientOptions(cfg.Paths.CredentialsFile, projectID), extra...)
	svc, err := translate.NewService(ctx, opts...)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "translate", "create client", "could not create Cloud Translation client", err)
	}
	return &Translator{
		svc:     svc,
		timeout: cfg.RequestTimeout(),
		logger:  logging.NewComponentLogger(logger, "translate"),
	}, nil
}

// Translate returns one translation per input text, in order. source and
// target are BCP 47 codes; only their base language is sent.
func (t *Translator) Translate(ctx context.Context, texts []string, source, target string) ([]string, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	req := &translate.TranslateTextRequest{
		Q:      texts,
		Source: baseLanguage(source),
		Target: baseLanguage(target),
		Format: "text",
	}
	started := time.Now()
	resp, err := t.svc.Translations.Translate(req).Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError("translate", "translate", err)
	}
	if len(resp.Translations) != len(texts) {
		return nil, services.Wrap(
			services.ErrExternalTool,
			"translate",
			"translate",
			fmt.Sprintf("expected %d translations, got %d", len(texts), len(resp.Translations)),
			nil,
		)
	}
	out := make([]string, len(resp.Translations))
	for i, tr := range resp.Translations {
		out[i] = html.UnescapeString(tr.TranslatedText)
	}
	t.logger.Debug("translated batch",
		logging.Int("count", len(texts)),
		logging.String("source", req.Source),
		logging.String("target", req.Target),
		logging.Duration("elapsed", time.Since(started)),
	)
	return out, nil
}
