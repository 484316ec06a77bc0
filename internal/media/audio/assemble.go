package audio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"audiocourse/internal/logging"
)

const (
	defaultSampleRate = 48000
	defaultBitrate    = "48k"
)

// Clip is one segment of an assembled track: either a speech file or a
// stretch of silence.
type Clip struct {
	Path    string
	Silence time.Duration
}

// Speech returns a clip that plays the audio file at path.
func Speech(path string) Clip { return Clip{Path: path} }

// Pause returns a clip of silence.
func Pause(d time.Duration) Clip { return Clip{Silence: d} }

// IsSilence reports whether the clip is generated silence.
func (c Clip) IsSilence() bool { return c.Path == "" }

type commandRunner func(ctx context.Context, name string, args ...string) error

// Assembler concatenates clips into a single Opus track using ffmpeg.
type Assembler struct {
	binary     string
	sampleRate int
	bitrate    string
	logger     *slog.Logger
	run        commandRunner
}

// NewAssembler constructs an ffmpeg-backed assembler.
func NewAssembler(binary string, logger *slog.Logger) *Assembler {
	if strings.TrimSpace(binary) == "" {
		binary = "ffmpeg"
	}
	return &Assembler{
		binary:     binary,
		sampleRate: defaultSampleRate,
		bitrate:    defaultBitrate,
		logger:     logging.NewComponentLogger(logger, "assembler"),
		run:        defaultCommandRunner,
	}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (a *Assembler) WithCommandRunner(r func(ctx context.Context, name string, args ...string) error) {
	if a != nil && r != nil {
		a.run = r
	}
}

// Assemble writes clips, in order, to out. The track is encoded to a
// temporary sibling and renamed on success so out is never partial.
func (a *Assembler) Assemble(ctx context.Context, out string, clips []Clip) error {
	if a == nil {
		return errors.New("assembler not initialized")
	}
	if strings.TrimSpace(out) == "" {
		return errors.New("output path is required")
	}
	speech := 0
	for _, clip := range clips {
		if clip.IsSilence() {
			if clip.Silence <= 0 {
				return fmt.Errorf("silence clip must have a positive duration")
			}
			continue
		}
		if _, err := os.Stat(clip.Path); err != nil {
			return fmt.Errorf("clip not found %q: %w", clip.Path, err)
		}
		speech++
	}
	if speech == 0 {
		return errors.New("at least one speech clip is required")
	}

	tmpPath := filepath.Join(filepath.Dir(out), ".assemble-"+filepath.Base(out)+".tmp")
	args := a.buildArgs(tmpPath, clips)

	a.logger.Debug("executing ffmpeg",
		logging.String("output", out),
		logging.Int("clip_count", len(clips)),
		logging.Int("speech_clips", speech),
	)

	if err := a.run(ctx, a.binary, args...); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("ffmpeg concat failed: %w", err)
	}
	if _, err := os.Stat(tmpPath); err != nil {
		return fmt.Errorf("ffmpeg did not produce output file: %w", err)
	}
	if err := os.Rename(tmpPath, out); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("finalize track: %w", err)
	}
	return nil
}

func (a *Assembler) buildArgs(out string, clips []Clip) []string {
	args := []string{"-hide_banner", "-loglevel", "error", "-y"}
	rate := strconv.Itoa(a.sampleRate)
	for _, clip := range clips {
		if clip.IsSilence() {
			args = append(args,
				"-f", "lavfi",
				"-t", formatSeconds(clip.Silence),
				"-i", "anullsrc=r="+rate+":cl=mono",
			)
			continue
		}
		args = append(args, "-i", clip.Path)
	}

	var filter strings.Builder
	for i := range clips {
		fmt.Fprintf(&filter, "[%d:a]aresample=%s,aformat=sample_fmts=fltp:channel_layouts=mono[a%d];", i, rate, i)
	}
	for i := range clips {
		fmt.Fprintf(&filter, "[a%d]", i)
	}
	fmt.Fprintf(&filter, "concat=n=%d:v=0:a=1[out]", len(clips))

	args = append(args,
		"-filter_complex", filter.String(),
		"-map", "[out]",
		"-c:a", "libopus",
		"-b:a", a.bitrate,
		"-f", "ogg",
		out,
	)
	return args
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}

func defaultCommandRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
