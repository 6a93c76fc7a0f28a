package cache

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Cache is an in-process TTL map keyed by string.
type Cache struct {
	cache *cache.Cache
}

func New(defaultTTL, cleanupInterval time.Duration) *Cache {
	return &Cache{
		cache: cache.New(defaultTTL, cleanupInterval),
	}
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.cache.Get(key)
}

// SetDefault stores value with the default TTL given to New.
func (c *Cache) SetDefault(key string, value interface{}) {
	c.cache.Set(key, value, cache.DefaultExpiration)
}

func (c *Cache) Delete(key string) {
	c.cache.Delete(key)
}

func (c *Cache) Len() int {
	return c.cache.ItemCount()
}
