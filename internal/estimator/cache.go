package estimator

import (
	"strings"
	"sync"
)

// DefaultCacheSize bounds the cache for a single user session.
const DefaultCacheSize = 512

// CacheEntry is a previously computed estimate plus a flag marking
// whether it came from the AI-assisted path.
type CacheEntry struct {
	Estimate FoodEstimate
	IsAI     bool
}

// Cache maps normalized meal text to a previously computed estimate so
// identical content never triggers recomputation or a redundant external
// call. It is a side table keyed by content, deliberately kept outside
// the meal entities so reorders and id churn cannot invalidate it.
type Cache struct {
	mu      sync.Mutex
	entries map[string]CacheEntry
	order   []string // insertion order, for oldest-first eviction
	cap     int
}

// NewCache creates a cache holding at most capacity entries; the oldest
// entry is evicted beyond that. capacity <= 0 falls back to the default.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &Cache{
		entries: make(map[string]CacheEntry),
		cap:     capacity,
	}
}

// Normalize trims, case-folds and collapses internal whitespace runs.
// Nothing else: two semantically different meals must never collide.
func Normalize(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}

// Get returns the entry for a normalized key.
func (c *Cache) Get(key string) (CacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	return e, ok
}

// Put stores an estimate for a normalized key. Entries are immutable once
// written: a repeat Put for the same key is a no-op, and a changed key is
// a new entry, not an update.
func (c *Cache) Put(key string, estimate FoodEstimate, isAI bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		return
	}

	if len(c.order) >= c.cap {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = CacheEntry{Estimate: estimate, IsAI: isAI}
	c.order = append(c.order, key)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
