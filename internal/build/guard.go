package build

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryDelay = 100 * time.Millisecond

// folderGuard serializes work on one folder: a keyed mutex inside the
// process and a file lock across processes.
type folderGuard struct {
	lockDir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newFolderGuard(lockDir string) *folderGuard {
	return &folderGuard{lockDir: lockDir, locks: make(map[string]*sync.Mutex)}
}

func (g *folderGuard) mutexFor(folder string) *sync.Mutex {
	g.mu.Lock()
	defer g.mu.Unlock()
	m, ok := g.locks[folder]
	if !ok {
		m = &sync.Mutex{}
		g.locks[folder] = m
	}
	return m
}

// acquire blocks until folder is exclusively held or ctx ends.
func (g *folderGuard) acquire(ctx context.Context, folder string) (func(), error) {
	m := g.mutexFor(folder)
	m.Lock()
	if g.lockDir == "" {
		return m.Unlock, nil
	}

	if err := os.MkdirAll(g.lockDir, 0o755); err != nil {
		m.Unlock()
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	fl := flock.New(filepath.Join(g.lockDir, lockFileName(folder)))
	locked, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		m.Unlock()
		return nil, fmt.Errorf("lock %s: %w", folder, err)
	}
	if !locked {
		m.Unlock()
		return nil, fmt.Errorf("lock %s: not acquired", folder)
	}
	return func() {
		_ = fl.Unlock()
		m.Unlock()
	}, nil
}

// lockFileName hashes the folder so arbitrary Unicode names map to short,
// portable lock files.
func lockFileName(folder string) string {
	sum := sha256.Sum256([]byte(folder))
	return hex.EncodeToString(sum[:12]) + ".lock"
}
