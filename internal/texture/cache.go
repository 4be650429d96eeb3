package texture

import (
	"image"
	"log/slog"
	"os"
	"sync"
)

// Resolver resolves a ramp name or path to a decoded image.
type Resolver interface {
	Resolve(name string) *image.NRGBA
}

// Cache is a concurrency-safe ramp cache. Names are looked up in the index
// first and then tried as file paths; anything unresolvable maps to the
// default ramp.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*image.NRGBA
	index *Index
	def   *image.NRGBA
}

// NewCache creates a new ramp cache backed by the given index (may be nil).
func NewCache(index *Index) *Cache {
	if index == nil {
		index = &Index{entries: map[string]string{}}
	}
	return &Cache{
		items: make(map[string]*image.NRGBA),
		index: index,
		def:   DefaultRamp(),
	}
}

// Resolve loads and caches a ramp. The empty name is the default ramp.
func (c *Cache) Resolve(name string) *image.NRGBA {
	if name == "" {
		return c.def
	}
	path, ok := c.index.ResolvePath(name)
	if !ok {
		if _, err := os.Stat(name); err != nil {
			slog.Warn("texture: unknown ramp, using default", "ramp", name)
			return c.def
		}
		path = name
	}

	// Fast path: read lock
	c.mu.RLock()
	img, exists := c.items[path]
	c.mu.RUnlock()
	if exists {
		return img
	}

	// Slow path: load from disk
	img, err := LoadRamp(path)
	if err != nil {
		slog.Warn("texture: ramp load failed, using default", "path", path, "err", err)
		img = c.def
	}

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, exists := c.items[path]; exists {
		return existing
	}
	c.items[path] = img
	return img
}
