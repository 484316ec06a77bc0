package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"audiocourse/internal/fileutil"
	"audiocourse/internal/logging"
	"audiocourse/internal/sentence"
	"audiocourse/internal/services"
	"audiocourse/internal/settings"
)

const stagingPrefix = ".partial-"

// Options configures a Pipeline.
type Options struct {
	// CourseDir is the course root holding one folder per unit.
	CourseDir string
	// LockDir holds cross-process folder locks. Empty disables file locks.
	LockDir string
	// Concurrency bounds units built at once. Values below 1 mean 1.
	Concurrency int
	// DryRun reports what would be built without touching the filesystem.
	DryRun bool
}

// Pipeline ensures every qualified sentence has a complete course unit.
type Pipeline struct {
	opts     Options
	settings settings.Configuration
	composer Composer
	guard    *folderGuard
	logger   *slog.Logger
	now      func() time.Time
}

// New constructs a pipeline. The settings are read-only for the run.
func New(opts Options, cfg settings.Configuration, composer Composer, logger *slog.Logger) *Pipeline {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Pipeline{
		opts:     opts,
		settings: cfg,
		composer: composer,
		guard:    newFolderGuard(opts.LockDir),
		logger:   logging.NewComponentLogger(logger, "build"),
		now:      time.Now,
	}
}

// Run builds every missing unit. Per-item failures are recorded in the
// report and never stop other items; the returned error is reserved for
// problems that prevent the run from starting.
func (p *Pipeline) Run(ctx context.Context, sentences []sentence.Sentence) (Report, error) {
	if len(sentences) == 0 {
		return Report{}, sentence.ErrNoQualifiedItems
	}
	if p.composer == nil && !p.opts.DryRun {
		return Report{}, services.Wrap(services.ErrConfiguration, "build", "run", "no composer configured", nil)
	}
	if strings.TrimSpace(p.opts.CourseDir) == "" {
		return Report{}, services.Wrap(services.ErrConfiguration, "build", "run", "course directory is not set", nil)
	}

	report := Report{
		RunID:   uuid.NewString(),
		Started: p.now(),
		DryRun:  p.opts.DryRun,
		Results: make([]ItemResult, len(sentences)),
	}
	ctx = services.WithRunID(ctx, report.RunID)
	logger := logging.WithContext(ctx, p.logger)

	if !p.opts.DryRun {
		if err := os.MkdirAll(p.opts.CourseDir, 0o755); err != nil {
			return Report{}, fmt.Errorf("create course directory: %w", err)
		}
		CleanStaleStaging(ctx, p.opts.CourseDir, StaleStagingAge, logger)
	}

	logger.Info("build started",
		logging.String(logging.FieldEventType, "build_started"),
		logging.Int("sentences", len(sentences)),
		logging.Int("concurrency", p.opts.Concurrency),
		logging.Bool("dry_run", p.opts.DryRun),
	)

	pending := p.plan(sentences, report.Results)

	var g errgroup.Group
	g.SetLimit(p.opts.Concurrency)
	for _, idx := range pending {
		if err := ctx.Err(); err != nil {
			report.Results[idx] = ItemResult{
				Sentence: sentences[idx],
				Status:   StatusFailed,
				Reason:   "not started",
				Err:      err,
			}
			continue
		}
		g.Go(func() error {
			report.Results[idx] = p.buildOne(ctx, sentences[idx])
			return nil
		})
	}
	_ = g.Wait()

	report.Finished = p.now()
	counts := report.Counts()
	logger.Info("build finished",
		logging.String(logging.FieldEventType, "build_finished"),
		logging.Int("built", counts.Built),
		logging.Int("skipped", counts.Skipped),
		logging.Int("failed", counts.Failed),
		logging.Int("planned", counts.Planned),
		logging.Duration("elapsed", report.Duration()),
	)
	return report, nil
}

// plan resolves folder name conflicts in input order. Items that cannot be
// built are recorded directly in results; the rest are returned by index.
func (p *Pipeline) plan(sentences []sentence.Sentence, results []ItemResult) []int {
	owners := make(map[string]sentence.Sentence, len(sentences))
	pending := make([]int, 0, len(sentences))
	for i, s := range sentences {
		folder := s.FolderName
		if folder == "" {
			results[i] = p.failed(s, "empty folder name", services.Wrap(
				services.ErrValidation, "build", "plan",
				fmt.Sprintf("line %d has no usable characters for a folder name", s.Line), nil,
			), 0)
			continue
		}
		if owner, taken := owners[folder]; taken {
			if owner.Text == s.Text {
				results[i] = ItemResult{Sentence: s, Status: StatusSkipped, Reason: "duplicate"}
				continue
			}
			results[i] = p.failed(s, "folder collision", fmt.Errorf(
				"line %d and line %d both map to %q: %w", owner.Line, s.Line, folder, ErrFolderCollision,
			), 0)
			continue
		}
		owners[folder] = s
		pending = append(pending, i)
	}
	return pending
}

func (p *Pipeline) buildOne(ctx context.Context, s sentence.Sentence) ItemResult {
	started := p.now()
	ctx = services.WithFolder(ctx, s.FolderName)
	logger := logging.WithContext(ctx, p.logger)
	elapsed := func() time.Duration { return p.now().Sub(started) }
	finalDir := filepath.Join(p.opts.CourseDir, s.FolderName)

	if p.opts.DryRun {
		exists, err := fileutil.Exists(finalDir)
		switch {
		case err != nil:
			return p.failed(s, "stat folder", err, elapsed())
		case exists:
			return ItemResult{Sentence: s, Status: StatusSkipped, Reason: "already exists", Duration: elapsed()}
		default:
			return ItemResult{Sentence: s, Status: StatusPlanned, Reason: "would build", Duration: elapsed()}
		}
	}

	release, err := p.guard.acquire(ctx, s.FolderName)
	if err != nil {
		return p.logFailure(logger, p.failed(s, "lock", err, elapsed()))
	}
	defer release()

	exists, err := fileutil.Exists(finalDir)
	if err != nil {
		return p.logFailure(logger, p.failed(s, "stat folder", err, elapsed()))
	}
	if exists {
		logger.Debug("unit skipped",
			logging.String(logging.FieldEventType, "unit_skipped"),
			logging.String("reason", "already exists"),
		)
		return ItemResult{Sentence: s, Status: StatusSkipped, Reason: "already exists", Duration: elapsed()}
	}

	logger.Info("unit started", logging.String(logging.FieldEventType, "unit_started"))

	staging, err := os.MkdirTemp(p.opts.CourseDir, stagingPrefix+s.FolderName+"-")
	if err != nil {
		return p.logFailure(logger, p.failed(s, "staging", fmt.Errorf("create staging directory: %w", err), elapsed()))
	}
	committed := false
	defer func() {
		if !committed {
			_ = os.RemoveAll(staging)
		}
	}()

	unit := Unit{Sentence: s, Dir: staging, Settings: p.settings}
	if err := p.composer.Compose(ctx, unit); err != nil {
		return p.logFailure(logger, p.failed(s, "compose", err, elapsed()))
	}
	if err := verifyUnit(staging); err != nil {
		return p.logFailure(logger, p.failed(s, "incomplete unit", err, elapsed()))
	}
	if err := os.Rename(staging, finalDir); err != nil {
		return p.logFailure(logger, p.failed(s, "commit", fmt.Errorf("move unit into place: %w", err), elapsed()))
	}
	committed = true

	result := ItemResult{Sentence: s, Status: StatusBuilt, Duration: elapsed()}
	logger.Info("unit built",
		logging.String(logging.FieldEventType, "unit_built"),
		logging.Duration("elapsed", result.Duration),
	)
	return result
}

func (p *Pipeline) failed(s sentence.Sentence, reason string, err error, d time.Duration) ItemResult {
	return ItemResult{Sentence: s, Status: StatusFailed, Reason: reason, Err: err, Duration: d}
}

func (p *Pipeline) logFailure(logger *slog.Logger, res ItemResult) ItemResult {
	hint := "check provider credentials and ffmpeg, then rerun build"
	if errors.Is(res.Err, context.Canceled) {
		hint = "build was interrupted; rerun build to continue"
	}
	logger.Error("unit failed",
		logging.String(logging.FieldEventType, "unit_failed"),
		logging.String("reason", res.Reason),
		logging.String(logging.FieldErrorKind, services.Details(res.Err).Kind),
		logging.String(logging.FieldErrorHint, hint),
		logging.Error(res.Err),
	)
	return res
}

// verifyUnit confirms the staging directory holds every track with content.
func verifyUnit(dir string) error {
	var problems []string
	for _, name := range TrackNames {
		if err := fileutil.RequireNonEmptyFile(filepath.Join(dir, name)); err != nil {
			problems = append(problems, name)
		}
	}
	if len(problems) > 0 {
		return services.Wrap(services.ErrValidation, "build", "verify unit",
			"missing or empty tracks: "+strings.Join(problems, ", "), nil)
	}
	return nil
}
