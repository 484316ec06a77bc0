package wizard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"audiocourse/internal/logging"
	"audiocourse/internal/services"
	"audiocourse/internal/settings"
)

// ErrExit is returned when the user types an exit word at any prompt or
// input ends. Nothing collected so far should be persisted.
var ErrExit = errors.New("wizard: exit requested")

// ErrPrerequisiteMissing is returned when a required file is still absent
// after the configured number of checks.
var ErrPrerequisiteMissing = fmt.Errorf("%w: prerequisite file missing", services.ErrNotFound)

var exitWords = map[string]struct{}{
	"exit": {},
	"quit": {},
}

// IsExit reports whether input is an exit word, ignoring case and
// surrounding whitespace.
func IsExit(input string) bool {
	_, ok := exitWords[strings.ToLower(strings.TrimSpace(input))]
	return ok
}

// Engine runs steps strictly in order and accumulates their saved values.
type Engine struct {
	steps         []Step
	console       *Console
	logger        *slog.Logger
	maxFileChecks int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMaxFileChecks bounds how many failed file checks a step tolerates
// before the run ends with ErrPrerequisiteMissing. Zero means unbounded.
func WithMaxFileChecks(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.maxFileChecks = n
		}
	}
}

// New constructs an engine over a fixed step list.
func New(steps []Step, console *Console, opts ...Option) *Engine {
	e := &Engine{
		steps:   append([]Step(nil), steps...),
		console: console,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = logging.NewComponentLogger(e.logger, "wizard")
	return e
}

// Validate checks the step list for configuration defects: saveable steps
// without a key, keys outside the known set, and keys claimed twice.
func (e *Engine) Validate() error {
	claimed := make(map[settings.Key]string, len(e.steps))
	for i, step := range e.steps {
		if step == nil {
			return services.Wrap(services.ErrConfiguration, "wizard", "validate steps", fmt.Sprintf("step %d is nil", i), nil)
		}
		saver, ok := step.(Saver)
		if !ok || !saver.HasSaveableData() {
			continue
		}
		key := saver.ConfigDataKey()
		switch {
		case key == "":
			return services.Wrap(services.ErrConfiguration, "wizard", "validate steps",
				fmt.Sprintf("step %q is saveable but declares no key", step.Name()), nil)
		case !settings.IsKnown(key):
			return services.Wrap(services.ErrConfiguration, "wizard", "validate steps",
				fmt.Sprintf("step %q declares unknown key %q", step.Name(), key), nil)
		}
		if owner, dup := claimed[key]; dup {
			return services.Wrap(services.ErrConfiguration, "wizard", "validate steps",
				fmt.Sprintf("steps %q and %q both save %q", owner, step.Name(), key), nil)
		}
		claimed[key] = step.Name()
	}
	return nil
}

// Run executes every step and returns the accumulated configuration. The
// step list is validated before the first prompt.
func (e *Engine) Run(ctx context.Context, cfg settings.Configuration) (settings.Configuration, error) {
	if err := e.Validate(); err != nil {
		return cfg, err
	}
	for _, step := range e.steps {
		if err := ctx.Err(); err != nil {
			return cfg, err
		}
		next, err := e.RunStep(ctx, step, cfg)
		if err != nil {
			return cfg, err
		}
		cfg = next
	}
	return cfg, nil
}

// RunStep performs one explain, prompt, validate and save cycle. The input
// configuration is never modified.
func (e *Engine) RunStep(ctx context.Context, step Step, cfg settings.Configuration) (settings.Configuration, error) {
	ctx = services.WithStep(ctx, step.Name())
	logger := logging.WithContext(ctx, e.logger)
	logger.Debug("step started", logging.String(logging.FieldEventType, "step_started"))

	if err := step.Explain(e.console.Writer()); err != nil {
		return cfg, fmt.Errorf("explain %s: %w", step.Name(), err)
	}

	input, err := e.acceptInput(ctx, logger, step, cfg)
	if err != nil {
		return cfg, err
	}

	if fv, ok := step.(FileValidator); ok {
		if err := e.awaitFile(ctx, logger, step, fv); err != nil {
			return cfg, err
		}
	}

	saver, ok := step.(Saver)
	if !ok || !saver.HasSaveableData() {
		logger.Info("step completed", logging.String(logging.FieldEventType, "step_completed"))
		return cfg, nil
	}

	key := saver.ConfigDataKey()
	if key == "" {
		return cfg, services.Wrap(services.ErrConfiguration, "wizard", "save",
			fmt.Sprintf("step %q is saveable but declares no key", step.Name()), nil)
	}
	value, err := settings.ParseValue(key, input)
	if err != nil {
		return cfg, err
	}
	next, err := cfg.With(key, value)
	if err != nil {
		return cfg, err
	}
	logger.Info("step completed",
		logging.String(logging.FieldEventType, "step_completed"),
		logging.String("key", string(key)),
		logging.Any("value", value),
	)
	return next, nil
}

func (e *Engine) acceptInput(ctx context.Context, logger *slog.Logger, step Step, cfg settings.Configuration) (string, error) {
	for {
		input, err := e.prompt(ctx, step)
		if err != nil {
			return "", err
		}
		if step.ValidateInput(input, cfg) {
			return input, nil
		}
		logger.Debug("input rejected", logging.String(logging.FieldEventType, "input_rejected"))
		if msg := step.InvalidInputMessage(); msg != "" {
			e.console.Notice(msg)
		}
	}
}

func (e *Engine) awaitFile(ctx context.Context, logger *slog.Logger, step Step, fv FileValidator) error {
	failures := 0
	for {
		err := fv.ValidateFile(ctx)
		if err == nil {
			return nil
		}
		failures++
		logger.Debug("file check failed",
			logging.String(logging.FieldEventType, "file_check_failed"),
			logging.Int("attempt", failures),
			logging.Error(err),
		)
		if e.maxFileChecks > 0 && failures >= e.maxFileChecks {
			return fmt.Errorf("%s after %d checks: %w: %w", step.Name(), failures, ErrPrerequisiteMissing, err)
		}
		if msg := fv.FileMissingMessage(); msg != "" {
			e.console.Notice(msg)
		}
		if _, err := e.prompt(ctx, step); err != nil {
			return err
		}
	}
}

// prompt reads one line and maps exit words and end of input to ErrExit.
func (e *Engine) prompt(ctx context.Context, step Step) (string, error) {
	input, err := step.Prompt(ctx, e.console)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", ErrExit
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("prompt %s: %w", step.Name(), err)
	}
	if IsExit(input) {
		return "", ErrExit
	}
	return input, nil
}
