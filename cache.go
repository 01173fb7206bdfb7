package xmlvalidate

import (
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// DefaultCacheTTL is how long a cached schema model stays fresh.
const DefaultCacheTTL = time.Hour

// ModelCache memoizes schema models by path with time-based expiration,
// so one schema can validate many documents without repeated modeling.
// Eviction is lazy: staleness is checked on access only. Concurrent
// recomputation of the same path is acceptable; entries are immutable
// once stored, so last write wins.
type ModelCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time // overridable in tests
}

type cacheEntry struct {
	model      *SchemaModel
	insertedAt time.Time
}

// NewModelCache creates a cache with the given TTL. A non-positive ttl
// falls back to DefaultCacheTTL.
func NewModelCache(ttl time.Duration) *ModelCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &ModelCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get returns the cached model for a path. An entry older than the TTL
// behaves as absent; the caller is responsible for recomputing and
// calling Set.
func (c *ModelCache) Get(path string) (*SchemaModel, bool) {
	key := NormalizePath(path)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.insertedAt) > c.ttl {
		c.mu.Lock()
		// Re-check under the write lock; a fresh entry may have
		// landed meanwhile.
		if cur, ok := c.entries[key]; ok && c.now().Sub(cur.insertedAt) > c.ttl {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return entry.model, true
}

// Set stores a model for a path, replacing any existing entry.
func (c *ModelCache) Set(path string, model *SchemaModel) {
	key := NormalizePath(path)
	c.mu.Lock()
	c.entries[key] = cacheEntry{model: model, insertedAt: c.now()}
	c.mu.Unlock()
}

// Invalidate removes the entry for a path.
func (c *ModelCache) Invalidate(path string) {
	key := NormalizePath(path)
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Clear removes all cached models.
func (c *ModelCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// Len returns the number of entries currently stored, stale ones
// included.
func (c *ModelCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// NormalizePath produces the cache key for a schema path: absolute where
// possible, cleaned, case- and separator-normalized.
func NormalizePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	return strings.ToLower(filepath.ToSlash(abs))
}
