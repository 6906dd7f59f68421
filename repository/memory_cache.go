package repository

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is an in-process CacheRepository for single-instance
// deployments that have no redis.
type MemoryCache struct {
	store *gocache.Cache
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		store: gocache.New(ttl, 2*ttl),
	}
}

func (m *MemoryCache) Get(key string) (string, bool) {
	val, ok := m.store.Get(key)
	if !ok {
		return "", false
	}
	s, ok := val.(string)
	return s, ok
}

func (m *MemoryCache) Set(key string, value string) error {
	m.store.SetDefault(key, value)
	return nil
}
