package leaderboard

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/Eloquas/Eloverit-sub002/internal/domain"
)

// CacheStats reports cache effectiveness
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

// Cache holds fully ranked leaderboards per period with a TTL.
// Callers must Purge whenever points change. A ranking computed before a
// Purge is rejected by SetIfCurrent.
type Cache struct {
	lru    *expirable.LRU[domain.LeaderboardPeriod, []domain.LeaderboardEntry]
	hits   atomic.Int64
	misses atomic.Int64

	mu  sync.Mutex
	gen uint64
}

// NewCache creates a cache with the given size and TTL
func NewCache(size int, ttl time.Duration) *Cache {
	return &Cache{
		lru: expirable.NewLRU[domain.LeaderboardPeriod, []domain.LeaderboardEntry](size, nil, ttl),
	}
}

// Get returns a copy of the ranked leaderboard for period
func (c *Cache) Get(period domain.LeaderboardPeriod) ([]domain.LeaderboardEntry, bool) {
	entries, ok := c.lru.Get(period)
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	out := make([]domain.LeaderboardEntry, len(entries))
	copy(out, entries)
	return out, true
}

// Set stores a ranked leaderboard
func (c *Cache) Set(period domain.LeaderboardPeriod, entries []domain.LeaderboardEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.add(period, entries)
}

// Generation identifies the current purge epoch. Read it before computing
// a ranking and hand it to SetIfCurrent.
func (c *Cache) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// SetIfCurrent stores entries only if no Purge happened since gen was read
func (c *Cache) SetIfCurrent(gen uint64, period domain.LeaderboardPeriod, entries []domain.LeaderboardEntry) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	c.add(period, entries)
	return true
}

func (c *Cache) add(period domain.LeaderboardPeriod, entries []domain.LeaderboardEntry) {
	stored := make([]domain.LeaderboardEntry, len(entries))
	copy(stored, entries)
	c.lru.Add(period, stored)
}

// Purge drops every cached leaderboard
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.lru.Purge()
}

// Stats returns hit/miss counters and current size
func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Size:   c.lru.Len(),
	}
}
