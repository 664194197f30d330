package economy

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/undercity-game/undercity/internal/domain"
)

// characterCache is an in-memory LRU for character read lookups with
// time-based expiration. Every committed mutation invalidates the entry,
// so the TTL only bounds staleness from writes outside this process.
type characterCache struct {
	lru *expirable.LRU[int64, *domain.Character]
}

func newCharacterCache(size int, ttl time.Duration) *characterCache {
	return &characterCache{
		lru: expirable.NewLRU[int64, *domain.Character](size, nil, ttl),
	}
}

func (c *characterCache) Get(id int64) (*domain.Character, bool) {
	ch, found := c.lru.Get(id)
	if !found {
		return nil, false
	}
	cp := *ch
	return &cp, true
}

func (c *characterCache) Set(ch *domain.Character) {
	cp := *ch
	c.lru.Add(ch.ID, &cp)
}

func (c *characterCache) Invalidate(id int64) {
	c.lru.Remove(id)
}
