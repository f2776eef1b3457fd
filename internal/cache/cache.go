// Package cache memoizes URL validation results so repeated lookups of the
// same profile URL skip pattern matching entirely.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/socialscope/socialscope/internal/urlcheck"
)

// ValidationCache is a TTL cache keyed by the raw input URL.
type ValidationCache struct {
	cache *gocache.Cache
}

// NewValidationCache creates the cache. Expired entries are purged at
// twice the TTL interval.
func NewValidationCache(ttl time.Duration) *ValidationCache {
	return &ValidationCache{
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Get returns the cached validation result for a URL, if present.
func (c *ValidationCache) Get(rawURL string) (*urlcheck.Result, bool) {
	if val, found := c.cache.Get(rawURL); found {
		return val.(*urlcheck.Result), true
	}
	return nil, false
}

// Set stores a validation result under its raw input URL.
func (c *ValidationCache) Set(rawURL string, result *urlcheck.Result) {
	c.cache.SetDefault(rawURL, result)
}

// Clear drops every cached entry.
func (c *ValidationCache) Clear() {
	c.cache.Flush()
}

// Len reports the number of cached entries, expired ones included.
func (c *ValidationCache) Len() int {
	return c.cache.ItemCount()
}
