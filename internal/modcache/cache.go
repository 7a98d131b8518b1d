package modcache

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Cache provides digest-keyed caching of decompressed bytecode modules,
// mirroring the teacher's internal/image.Cache layout convention
// ({cacheDir}/sha256_{digest}) but caching a single decompressed .hl
// file rather than an unpacked directory tree.
type Cache struct {
	mu       sync.Mutex
	cacheDir string
	history  *History
}

// NewCache creates a module cache rooted at cacheDir, recording pull
// events to history (may be nil to disable history tracking).
func NewCache(cacheDir string, history *History) *Cache {
	return &Cache{cacheDir: cacheDir, history: history}
}

// GetOrPull returns the path to a decompressed, cached bytecode file for
// imageRef, pulling and decompressing it first if this is the first
// request for its current digest.
func (c *Cache) GetOrPull(ctx context.Context, imageRef string) (modulePath string, digest string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	result, err := Pull(ctx, imageRef)
	if err != nil {
		return "", "", fmt.Errorf("pull %s: %w", imageRef, err)
	}
	digest = result.Digest

	if err := os.MkdirAll(c.cacheDir, 0700); err != nil {
		return "", "", fmt.Errorf("create module cache dir: %w", err)
	}
	cachedPath := filepath.Join(c.cacheDir, digestToFileName(digest))

	if _, statErr := os.Stat(cachedPath); statErr == nil {
		log.Printf("modcache: cache hit for %s (%s)", imageRef, digest)
		return cachedPath, digest, nil
	}

	log.Printf("modcache: decompressing %s (%s)", imageRef, digest)
	data, err := result.Decompress()
	if err != nil {
		return "", "", fmt.Errorf("decompress %s: %w", imageRef, err)
	}

	tmpPath := cachedPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return "", "", fmt.Errorf("write temp module file: %w", err)
	}
	if err := os.Rename(tmpPath, cachedPath); err != nil {
		os.Remove(tmpPath)
		return "", "", fmt.Errorf("rename module cache file: %w", err)
	}

	if c.history != nil {
		if err := c.history.Record(imageRef, digest, EventPull); err != nil {
			log.Printf("modcache: record pull history: %v", err)
		}
	}

	log.Printf("modcache: cached %s at %s", imageRef, cachedPath)
	return cachedPath, digest, nil
}

// digestToFileName converts "sha256:abc123" to "sha256_abc123.hl".
func digestToFileName(digest string) string {
	return strings.Replace(digest, ":", "_", 1) + ".hl"
}
