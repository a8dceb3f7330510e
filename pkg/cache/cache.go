package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache is the injected caching contract. Implementations must expire
// entries at TTL checked at read time; a cache is a stability aid, not
// a correctness mechanism.
type Cache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{})
	SetWithTTL(key string, value interface{}, ttl time.Duration)
	TTL() time.Duration
}

// TTLCache wraps patrickmn/go-cache with a fixed default TTL.
// Constructed once per process and passed by reference.
type TTLCache struct {
	store *gocache.Cache
	ttl   time.Duration
}

// NewTTL creates a cache with the given default expiration.
func NewTTL(ttl time.Duration) *TTLCache {
	return &TTLCache{
		store: gocache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

// Get returns the cached value if present and not expired.
func (c *TTLCache) Get(key string) (interface{}, bool) {
	return c.store.Get(key)
}

// Set stores a value under the default TTL.
func (c *TTLCache) Set(key string, value interface{}) {
	c.store.Set(key, value, gocache.DefaultExpiration)
}

// SetWithTTL stores a value with an explicit expiration.
func (c *TTLCache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	c.store.Set(key, value, ttl)
}

// TTL returns the default expiration.
func (c *TTLCache) TTL() time.Duration {
	return c.ttl
}
