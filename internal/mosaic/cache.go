package mosaic

import (
	"context"
	"path/filepath"
	"sync"
)

// LibraryCache is a single-slot cache of the most recently built library,
// keyed by (directory, tile size). Replacing the slot never invalidates a
// snapshot that an in-flight generation is still reading: libraries are
// immutable and the old value simply stays reachable until its last reader
// is done with it.
type LibraryCache struct {
	mu     sync.Mutex
	lib    *Library
	builds int
}

// NewLibraryCache creates an empty cache.
func NewLibraryCache() *LibraryCache {
	return &LibraryCache{}
}

// Get returns the cached library when the key matches, building and
// caching a fresh one otherwise. A failed build leaves the previous slot
// untouched. Concurrent callers with the same key share one build.
func (c *LibraryCache) Get(ctx context.Context, dir string, tileSize int) (*Library, error) {
	dir = filepath.Clean(dir)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lib != nil && c.lib.Dir == dir && c.lib.TileSize == tileSize {
		return c.lib, nil
	}

	lib, err := LoadLibrary(ctx, dir, tileSize)
	if err != nil {
		return nil, err
	}

	c.lib = lib
	c.builds++
	return lib, nil
}

// Builds returns how many library builds this cache has performed. Two
// requests with an identical key must not raise it.
func (c *LibraryCache) Builds() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.builds
}
