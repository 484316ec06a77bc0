package testsupport

import (
	"context"
	"testing"

	"audiocourse/internal/config"
	"audiocourse/internal/history"
)

// MustOpenStore opens the build history store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	store, err := history.Open(context.Background(), cfg.HistoryPath())
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
