package logging

import (
	"context"
	"log/slog"

	"audiocourse/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID identifies one configure or build invocation.
	FieldRunID = "run_id"
	// FieldStep names the wizard step being executed.
	FieldStep = "step"
	// FieldFolder names the course unit folder being built.
	FieldFolder = "folder"
	// FieldEventType classifies log lines for filtering (unit_built, step_complete, ...).
	FieldEventType = "event_type"
	// FieldErrorHint carries a short operator-facing remediation.
	FieldErrorHint = "error_hint"
	// FieldErrorKind carries the classified error marker.
	FieldErrorKind = "error_kind"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if runID, ok := services.RunIDFromContext(ctx); ok {
		fields = append(fields, String(FieldRunID, runID))
	}
	if step, ok := services.StepFromContext(ctx); ok {
		fields = append(fields, String(FieldStep, step))
	}
	if folder, ok := services.FolderFromContext(ctx); ok {
		fields = append(fields, String(FieldFolder, folder))
	}
	return fields
}

// WithContext returns a logger enriched with context-derived fields.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	args := make([]any, 0, len(fields))
	for _, field := range fields {
		args = append(args, field)
	}
	return logger.With(args...)
}
