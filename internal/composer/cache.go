package composer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"audiocourse/internal/fileutil"
)

// clipCache stores synthesized speech on disk keyed by language, voice
// settings and text, so repeated words and reruns reuse earlier audio.
type clipCache struct {
	dir         string
	voiceKey    string
	synthesizer Synthesizer
}

func newClipCache(dir, voiceKey string, synthesizer Synthesizer) *clipCache {
	return &clipCache{dir: dir, voiceKey: voiceKey, synthesizer: synthesizer}
}

// session returns the directory clips are written to for one unit. Without a
// cache directory it is a temporary directory removed by cleanup.
func (c *clipCache) session() (string, func(), error) {
	if c.dir != "" {
		if err := ensureDir(c.dir); err != nil {
			return "", nil, err
		}
		return c.dir, func() {}, nil
	}
	tmp, err := os.MkdirTemp("", "audiocourse-clips-")
	if err != nil {
		return "", nil, fmt.Errorf("create clip directory: %w", err)
	}
	return tmp, func() { _ = os.RemoveAll(tmp) }, nil
}

func (c *clipCache) key(text, lang string) string {
	h := sha256.New()
	for _, part := range []string{lang, c.voiceKey, text} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// clip returns the path of a speech clip for text, synthesizing it when
// absent from dir.
func (c *clipCache) clip(ctx context.Context, dir, text, lang string) (string, error) {
	path := filepath.Join(dir, c.key(text, lang)+".ogg")
	if err := fileutil.RequireNonEmptyFile(path); err == nil {
		return path, nil
	}
	data, err := c.synthesizer.Synthesize(ctx, text, lang)
	if err != nil {
		return "", err
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return "", fmt.Errorf("store clip: %w", err)
	}
	return path, nil
}
