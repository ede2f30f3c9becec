package artwork

import (
	"image"
	"sync"
)

// Resolver resolves an artwork reference to a decoded image.
type Resolver interface {
	Resolve(name string) *image.NRGBA
}

// Cache is a concurrency-safe artwork cache. Decode failures are cached
// too, so a broken file is only read once per run.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*image.NRGBA
	index *Index
}

// NewCache creates a cache backed by the given index.
func NewCache(index *Index) *Cache {
	return &Cache{
		items: make(map[string]*image.NRGBA),
		index: index,
	}
}

// Resolve loads and caches an image by reference. Returns nil when the
// reference is unknown or the file does not decode.
func (c *Cache) Resolve(name string) *image.NRGBA {
	path, ok := c.index.ResolvePath(name)
	if !ok {
		return nil
	}

	c.mu.RLock()
	img, exists := c.items[path]
	c.mu.RUnlock()
	if exists {
		return img
	}

	loaded, _ := LoadImage(path)

	c.mu.Lock()
	if img, exists := c.items[path]; exists {
		c.mu.Unlock()
		return img
	}
	c.items[path] = loaded
	c.mu.Unlock()

	return loaded
}
