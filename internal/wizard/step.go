package wizard

import (
	"context"
	"fmt"
	"io"

	"audiocourse/internal/settings"
)

// Step is one stage of the setup wizard.
type Step interface {
	Name() string
	// Explain prints the step's instructions. It is called once per run.
	Explain(w io.Writer) error
	// Prompt asks for input and returns the raw line.
	Prompt(ctx context.Context, c *Console) (string, error)
	// ValidateInput reports whether input is acceptable. cfg holds the values
	// collected by earlier steps.
	ValidateInput(input string, cfg settings.Configuration) bool
	InvalidInputMessage() string
}

// FileValidator is implemented by steps that must confirm a file is present
// after their input is accepted.
type FileValidator interface {
	ValidateFile(ctx context.Context) error
	FileMissingMessage() string
}

// Saver is implemented by steps whose validated input is stored in the
// configuration.
type Saver interface {
	HasSaveableData() bool
	ConfigDataKey() settings.Key
}

// Base carries the text every step shows. Steps embed it and add their own
// ValidateInput and optional capabilities.
type Base struct {
	ID             string
	Explanation    string
	PromptText     string
	InvalidMessage string
}

func (b Base) Name() string { return b.ID }

func (b Base) Explain(w io.Writer) error {
	if b.Explanation == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, b.Explanation)
	return err
}

func (b Base) Prompt(ctx context.Context, c *Console) (string, error) {
	return c.ReadLine(ctx, b.PromptText)
}

func (b Base) InvalidInputMessage() string { return b.InvalidMessage }

// AnyInput accepts every line, including an empty one.
func AnyInput(string, settings.Configuration) bool { return true }
