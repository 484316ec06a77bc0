// Package logging assembles structured slog loggers and formatting helpers used
// across the audiocourse commands.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so wizard and build code can tag
// log lines with run IDs, step names, and unit folders. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
package logging
