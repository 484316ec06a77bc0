package services_test

import (
	"context"
	"testing"

	"audiocourse/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "run-123")
	ctx = services.WithStep(ctx, "language")
	ctx = services.WithFolder(ctx, "hola")

	if id, ok := services.RunIDFromContext(ctx); !ok || id != "run-123" {
		t.Fatalf("unexpected run id: %v %v", id, ok)
	}
	if step, ok := services.StepFromContext(ctx); !ok || step != "language" {
		t.Fatalf("unexpected step: %v %v", step, ok)
	}
	if folder, ok := services.FolderFromContext(ctx); !ok || folder != "hola" {
		t.Fatalf("unexpected folder: %v %v", folder, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithStep(ctx, "")
	ctx = services.WithFolder(ctx, "")
	if _, ok := services.StepFromContext(ctx); ok {
		t.Fatal("expected no step value")
	}
	if _, ok := services.FolderFromContext(ctx); ok {
		t.Fatal("expected no folder value")
	}
}
