package composer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"audiocourse/internal/build"
	"audiocourse/internal/fileutil"
	"audiocourse/internal/language"
	"audiocourse/internal/logging"
	"audiocourse/internal/media/audio"
	"audiocourse/internal/services"
	"audiocourse/internal/textutil"
)

// Translator translates a batch of texts from source to target language.
type Translator interface {
	Translate(ctx context.Context, texts []string, source, target string) ([]string, error)
}

// Synthesizer returns encoded speech for text.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, languageCode string) ([]byte, error)
}

// Assembler concatenates clips into one track file.
type Assembler interface {
	Assemble(ctx context.Context, out string, clips []audio.Clip) error
}

// TrackVerifier checks a finished track.
type TrackVerifier func(ctx context.Context, path string) error

// Options tunes composition.
type Options struct {
	// NativeLanguage is the language word definitions are spoken in.
	NativeLanguage string
	Pause          time.Duration
	// MaxWords caps distinct words in the word track. Zero means no cap.
	MaxWords int
	// CacheDir stores synthesized clips across runs. Empty disables caching.
	CacheDir string
	// VoiceKey identifies voice settings so cached clips are not reused
	// after they change.
	VoiceKey string
	// Verify, when set, is run on every track.
	Verify TrackVerifier
}

// Composer builds the three tracks of a course unit.
type Composer struct {
	translator  Translator
	synthesizer Synthesizer
	assembler   Assembler
	opts        Options
	cache       *clipCache
	logger      *slog.Logger
}

// New constructs a Composer.
func New(translator Translator, synthesizer Synthesizer, assembler Assembler, opts Options, logger *slog.Logger) *Composer {
	return &Composer{
		translator:  translator,
		synthesizer: synthesizer,
		assembler:   assembler,
		opts:        opts,
		cache:       newClipCache(opts.CacheDir, opts.VoiceKey, synthesizer),
		logger:      logging.NewComponentLogger(logger, "composer"),
	}
}

// Compose writes the lead, word and repeat tracks into unit.Dir.
func (c *Composer) Compose(ctx context.Context, unit build.Unit) error {
	if c.translator == nil || c.synthesizer == nil || c.assembler == nil {
		return errors.New("composer is missing a collaborator")
	}
	lang := strings.TrimSpace(unit.Settings.LanguageCode())
	if lang == "" {
		return services.Wrap(services.ErrConfiguration, "composer", "compose", "languageCode is not set", nil)
	}
	repeats := unit.Settings.NumberOfRepeats()
	if repeats < 0 {
		return services.Wrap(services.ErrConfiguration, "composer", "compose", "numberOfRepeats must not be negative", nil)
	}
	phrase := strings.TrimSpace(unit.Sentence.Text)

	work, cleanup, err := c.cache.session()
	if err != nil {
		return err
	}
	defer cleanup()

	logger := logging.WithContext(ctx, c.logger)

	phraseClip, err := c.cache.clip(ctx, work, phrase, lang)
	if err != nil {
		return fmt.Errorf("synthesize phrase: %w", err)
	}

	wordClips, err := c.wordClips(ctx, work, phrase, lang, phraseClip)
	if err != nil {
		return err
	}
	if err := c.assembler.Assemble(ctx, filepath.Join(unit.Dir, build.WordTrack), wordClips); err != nil {
		return fmt.Errorf("assemble word track: %w", err)
	}

	leadPath := filepath.Join(unit.Dir, build.LeadTrack)
	if err := c.assembler.Assemble(ctx, leadPath, leadClips(phraseClip, repeats, c.opts.Pause)); err != nil {
		return fmt.Errorf("assemble lead track: %w", err)
	}

	if err := fileutil.CopyFileVerified(leadPath, filepath.Join(unit.Dir, build.RepeatTrack)); err != nil {
		return fmt.Errorf("duplicate lead track: %w", err)
	}

	if c.opts.Verify != nil {
		for _, name := range build.TrackNames {
			if err := c.opts.Verify(ctx, filepath.Join(unit.Dir, name)); err != nil {
				return services.Wrap(services.ErrValidation, "composer", "verify", name+" failed verification", err)
			}
		}
	}

	logger.Debug("unit composed",
		logging.Int("clips", len(wordClips)),
		logging.Int64("repeats", repeats),
	)
	return nil
}

// leadClips plays the phrase once plus repeats more times, separated by pauses.
func leadClips(phrase string, repeats int64, pause time.Duration) []audio.Clip {
	clips := []audio.Clip{audio.Speech(phrase)}
	for i := int64(0); i < repeats; i++ {
		if pause > 0 {
			clips = append(clips, audio.Pause(pause))
		}
		clips = append(clips, audio.Speech(phrase))
	}
	return clips
}

// wordClips voices each distinct word followed by its definition in the
// native language. A phrase without words falls back to the phrase itself.
func (c *Composer) wordClips(ctx context.Context, work, phrase, lang, phraseClip string) ([]audio.Clip, error) {
	words := distinctWords(phrase, c.opts.MaxWords)
	if len(words) == 0 {
		return []audio.Clip{audio.Speech(phraseClip)}, nil
	}

	native := strings.TrimSpace(c.opts.NativeLanguage)
	var definitions []string
	if native != "" && !sameBase(lang, native) {
		var err error
		definitions, err = c.translator.Translate(ctx, words, lang, native)
		if err != nil {
			return nil, fmt.Errorf("translate words: %w", err)
		}
		if len(definitions) != len(words) {
			return nil, fmt.Errorf("translate words: expected %d definitions, got %d", len(words), len(definitions))
		}
	}

	var clips []audio.Clip
	for i, word := range words {
		wordClip, err := c.cache.clip(ctx, work, word, lang)
		if err != nil {
			return nil, fmt.Errorf("synthesize word %q: %w", word, err)
		}
		clips = c.appendWithPause(clips, wordClip)

		if definitions == nil || strings.TrimSpace(definitions[i]) == "" {
			continue
		}
		defClip, err := c.cache.clip(ctx, work, definitions[i], native)
		if err != nil {
			return nil, fmt.Errorf("synthesize definition of %q: %w", word, err)
		}
		clips = c.appendWithPause(clips, defClip)
	}
	return clips, nil
}

func (c *Composer) appendWithPause(clips []audio.Clip, path string) []audio.Clip {
	if len(clips) > 0 && c.opts.Pause > 0 {
		clips = append(clips, audio.Pause(c.opts.Pause))
	}
	return append(clips, audio.Speech(path))
}

// distinctWords lowercases and deduplicates words, keeping first occurrence
// order, and stops at limit when limit is positive.
func distinctWords(phrase string, limit int) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, word := range textutil.Words(phrase) {
		key := strings.ToLower(word)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

func sameBase(a, b string) bool {
	la, errA := language.Resolve(a)
	lb, errB := language.Resolve(b)
	if errA != nil || errB != nil {
		return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
	}
	return la.Base == lb.Base
}

// ensureDir creates dir if missing.
func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return nil
}
