// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Inspect executes ffprobe and returns the parsed Result; VerifyAudio is the
// check the course builder runs on every finished track. The runner is
// injectable so callers can test without the binary installed.
package ffprobe
