package main

import (
	"context"
	"log/slog"

	"audiocourse/internal/build"
	"audiocourse/internal/composer"
	"audiocourse/internal/config"
	"audiocourse/internal/media/audio"
	"audiocourse/internal/media/ffprobe"
	"audiocourse/internal/services/gcloud"
	"audiocourse/internal/settings"
)

// composerFactory builds the unit composer for a run. Tests replace it to
// avoid calling Google Cloud.
var composerFactory = newCourseComposer

func newCourseComposer(ctx context.Context, cfg *config.Config, values settings.Configuration, logger *slog.Logger) (build.Composer, error) {
	translator, err := gcloud.NewTranslator(ctx, cfg, values.ProjectID(), logger)
	if err != nil {
		return nil, err
	}
	synthesizer, err := gcloud.NewSynthesizer(ctx, cfg, values.ProjectID(), logger)
	if err != nil {
		return nil, err
	}

	opts := composer.Options{
		NativeLanguage: cfg.Speech.NativeLanguage,
		Pause:          cfg.Pause(),
		MaxWords:       cfg.Speech.MaxWords,
		CacheDir:       cfg.ClipCacheDir(),
		VoiceKey:       synthesizer.VoiceKey(),
	}
	if cfg.Build.VerifyTracks {
		probe := cfg.FFprobeBinary()
		opts.Verify = func(ctx context.Context, path string) error {
			return ffprobe.VerifyAudio(ctx, nil, probe, path)
		}
	}

	assembler := audio.NewAssembler(cfg.FFmpegBinary(), logger)
	return composer.New(translator, synthesizer, assembler, opts, logger), nil
}
