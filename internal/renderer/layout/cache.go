package layout

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// CacheKey identifies the inputs that fully determine a frame's display
// lines. Generation must change whenever the document or its decorations
// change.
type CacheKey struct {
	TopByte    int
	Width      int
	Height     int
	TabSize    int
	Wrap       bool
	Generation uint64
}

// Cache keeps recently built display lines with LRU eviction, so that
// redrawing an unchanged view (cursor blink, focus change) skips the
// token, wrap and assembly stages.
type Cache struct {
	mu        sync.RWMutex
	entries   map[CacheKey]*cacheEntry
	maxSize   int
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type cacheEntry struct {
	lines      []DisplayLine
	lastAccess time.Time
}

// NewCache creates a cache holding at most maxSize frames (0 = unlimited).
func NewCache(maxSize int) *Cache {
	return &Cache{
		entries: make(map[CacheKey]*cacheEntry),
		maxSize: max(maxSize, 0),
	}
}

// Get returns the lines cached for key, calling build on a miss. The
// returned lines are shared and must not be modified.
func (c *Cache) Get(key CacheKey, build func() []DisplayLine) []DisplayLine {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		e.lastAccess = time.Now()
		lines := e.lines
		c.mu.Unlock()
		c.hits.Add(1)
		return lines
	}
	c.mu.Unlock()

	c.misses.Add(1)
	lines := build()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = &cacheEntry{lines: lines, lastAccess: time.Now()}
	if c.maxSize > 0 && len(c.entries) > c.maxSize {
		c.evict()
	}
	return lines
}

// InvalidateAll clears the entire cache.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[CacheKey]*cacheEntry)
}

// InvalidateBefore drops every entry built for an older generation.
func (c *Cache) InvalidateBefore(generation uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if k.Generation < generation {
			delete(c.entries, k)
		}
	}
}

// evict removes the least recently used entries until under maxSize.
// Must be called with write lock held.
func (c *Cache) evict() {
	type keyTime struct {
		key  CacheKey
		time time.Time
	}
	entries := make([]keyTime, 0, len(c.entries))
	for k, e := range c.entries {
		entries = append(entries, keyTime{k, e.lastAccess})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].time.Before(entries[j].time)
	})

	toRemove := len(entries) - c.maxSize
	for i := 0; i < toRemove; i++ {
		delete(c.entries, entries[i].key)
	}
	if toRemove > 0 {
		c.evictions.Add(uint64(toRemove))
	}
}

// Size returns the number of cached frames.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns cache statistics.
func (c *Cache) Stats() CacheStats {
	c.mu.RLock()
	size := len(c.entries)
	c.mu.RUnlock()

	hits := c.hits.Load()
	misses := c.misses.Load()
	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return CacheStats{
		Size:      size,
		MaxSize:   c.maxSize,
		Hits:      hits,
		Misses:    misses,
		Evictions: c.evictions.Load(),
		HitRate:   hitRate,
	}
}

// CacheStats holds cache statistics.
type CacheStats struct {
	Size      int     // Current number of entries
	MaxSize   int     // Maximum entries allowed
	Hits      uint64  // Number of cache hits
	Misses    uint64  // Number of cache misses
	Evictions uint64  // Number of evicted entries
	HitRate   float64 // Hit rate (0.0 - 1.0)
}
