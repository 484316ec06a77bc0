package preflight

import (
	"context"

	"audiocourse/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every readiness check for the given config. It never
// creates files or directories.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	results = append(results, CheckCreatableDirectory("Course directory", cfg.Paths.CourseDir))
	results = append(results, CheckCreatableDirectory("State directory", cfg.Paths.StateDir))
	results = append(results, CheckCredentials(cfg.Paths.CredentialsFile))
	results = append(results, CheckSettings(cfg.Paths.SettingsFile))
	results = append(results, CheckSentences(cfg.Paths.SentencesFile))
	if ctx.Err() != nil {
		return results
	}
	results = append(results, DependencyResults(CheckSystemDeps(cfg))...)
	return results
}

// AllPassed reports whether every result passed.
func AllPassed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
