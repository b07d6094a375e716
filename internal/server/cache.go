package server

import (
	"strings"
	"sync"
	"time"
)

const (
	// SearchCacheTTL is how long search results stay fresh. Search relevance
	// and availability shift often, so this is short.
	SearchCacheTTL = 60 * time.Second

	// AlbumCacheTTL is how long album lookups stay fresh. Album metadata
	// rarely changes, so this is longer.
	AlbumCacheTTL = 5 * time.Minute

	// CacheMaxEntries is the entry ceiling before the map is cleared wholesale.
	CacheMaxEntries = 500
)

// cacheEntry pairs a stored value with its expiry instant.
type cacheEntry struct {
	value     any
	expiresAt time.Time
}

// TTLCache memoizes upstream responses keyed by access context and query.
//
// Expiry is lazy: an expired entry is deleted the next time it is read, there
// is no background sweep. The memory bound is equally blunt: once the entry
// count exceeds the ceiling, Set clears the whole map before inserting rather
// than tracking recency. Both are deliberate simplifications for a cache
// whose worst case is an extra upstream fetch.
type TTLCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	max     int
}

// NewTTLCache creates a TTLCache whose entries live for ttl and whose map is
// cleared once it grows past max entries.
func NewTTLCache(ttl time.Duration, max int) *TTLCache {
	return &TTLCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		max:     max,
	}
}

// Get returns the value stored under key, treating an entry whose expiry has
// passed as absent (and removing it).
func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.value, true
}

// Set stores value under key for the cache's TTL, clearing the whole map
// first if its size has grown past the ceiling.
func (c *TTLCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) > c.max {
		c.entries = make(map[string]cacheEntry)
	}
	c.entries[key] = cacheEntry{value: value, expiresAt: time.Now().Add(c.ttl)}
}

// Len returns the current entry count.
func (c *TTLCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// CacheKey composes a cache key as {namespace}:{operation}:{params...}.
func CacheKey(namespace, operation string, params ...string) string {
	parts := append([]string{namespace, operation}, params...)
	return strings.Join(parts, ":")
}

// NormalizeQuery lower-cases and trims query text so equivalent searches
// share a cache entry.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}
