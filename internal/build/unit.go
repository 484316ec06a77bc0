package build

import (
	"context"
	"fmt"
	"time"

	"audiocourse/internal/sentence"
	"audiocourse/internal/services"
	"audiocourse/internal/settings"
)

// Track file names inside every course unit folder.
const (
	LeadTrack   = "1-sentence.ogg"
	WordTrack   = "2-word-definitions.ogg"
	RepeatTrack = "3-repeat-sentence.ogg"
)

// TrackNames lists the files a complete unit holds.
var TrackNames = []string{LeadTrack, WordTrack, RepeatTrack}

// ErrFolderCollision reports two different phrases that sanitize to the same
// folder name.
var ErrFolderCollision = fmt.Errorf("%w: folder name collision", services.ErrValidation)

// Unit is the work handed to a Composer. Dir is a private staging
// directory; the composer writes the three tracks there and nothing else.
type Unit struct {
	Sentence sentence.Sentence
	Dir      string
	Settings settings.Configuration
}

// Composer produces the tracks for one unit.
type Composer interface {
	Compose(ctx context.Context, unit Unit) error
}

// ComposerFunc adapts a function to Composer.
type ComposerFunc func(ctx context.Context, unit Unit) error

func (f ComposerFunc) Compose(ctx context.Context, unit Unit) error { return f(ctx, unit) }

// Status is the outcome of one item.
type Status string

const (
	StatusBuilt   Status = "built"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
	// StatusPlanned marks items a dry run would build.
	StatusPlanned Status = "planned"
)

// ItemResult records what happened to one sentence.
type ItemResult struct {
	Sentence sentence.Sentence
	Status   Status
	Reason   string
	Err      error
	Duration time.Duration
}

// Report summarizes a pipeline run.
type Report struct {
	RunID    string
	Started  time.Time
	Finished time.Time
	DryRun   bool
	Results  []ItemResult
}

// Counts tallies results by status.
type Counts struct {
	Built   int
	Skipped int
	Failed  int
	Planned int
}

// Total is the number of items in the run.
func (c Counts) Total() int {
	return c.Built + c.Skipped + c.Failed + c.Planned
}

func (r Report) Counts() Counts {
	var c Counts
	for _, res := range r.Results {
		switch res.Status {
		case StatusBuilt:
			c.Built++
		case StatusSkipped:
			c.Skipped++
		case StatusFailed:
			c.Failed++
		case StatusPlanned:
			c.Planned++
		}
	}
	return c
}

// Failed returns the failed results in input order.
func (r Report) Failed() []ItemResult {
	var out []ItemResult
	for _, res := range r.Results {
		if res.Status == StatusFailed {
			out = append(out, res)
		}
	}
	return out
}

// Duration is the wall time of the run.
func (r Report) Duration() time.Duration {
	if r.Finished.IsZero() {
		return 0
	}
	return r.Finished.Sub(r.Started)
}
