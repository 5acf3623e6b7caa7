package key

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/CrateBot_Go/internal/domain"
)

// keyCache holds recently looked up keys by name
type keyCache struct {
	lru *expirable.LRU[string, domain.Key]
}

func newKeyCache(size int, ttl time.Duration) *keyCache {
	return &keyCache{
		lru: expirable.NewLRU[string, domain.Key](size, nil, ttl),
	}
}

// Get returns a copy of the cached key
func (c *keyCache) Get(name string) (*domain.Key, bool) {
	k, ok := c.lru.Get(name)
	if !ok {
		return nil, false
	}
	k.Item = k.Item.Clone(k.Item.Amount)
	return &k, true
}

func (c *keyCache) Set(k *domain.Key) {
	stored := *k
	stored.Item = k.Item.Clone(k.Item.Amount)
	c.lru.Add(k.Name, stored)
}

func (c *keyCache) Invalidate(name string) {
	c.lru.Remove(name)
}
