package match

import "reelrank/internal/media"

type cacheKey struct {
	query     string
	mediaType media.Type
}

// Cache memoizes resolution outcomes per (query, desired type) for the
// lifetime of one run. Negative results are stored too, so a query that
// found nothing is never re-issued. Construct a fresh Cache per run and
// discard it afterwards: candidate rankings depend on the ambient state of
// the scraped source, so entries must never outlive a run.
type Cache struct {
	entries map[cacheKey]Resolution
}

// NewCache returns an empty per-run cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]Resolution)}
}

// Get returns the memoized resolution for the key and whether one exists.
func (c *Cache) Get(query string, mediaType media.Type) (Resolution, bool) {
	resolution, ok := c.entries[cacheKey{query: query, mediaType: mediaType}]
	return resolution, ok
}

// Put stores a resolution outcome, hit or negative.
func (c *Cache) Put(query string, mediaType media.Type, resolution Resolution) {
	c.entries[cacheKey{query: query, mediaType: mediaType}] = resolution
}

// Len returns the number of memoized queries.
func (c *Cache) Len() int {
	return len(c.entries)
}
