package profile

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

const CacheTTL = 5 * time.Minute

type cacheEntry struct {
	profile *FullProfile
	expires time.Time
}

// Cache keeps rendered profiles for CacheTTL, keyed by Discord user id.
type Cache struct {
	lock    sync.Mutex
	clock   clockwork.Clock
	ttl     time.Duration
	entries map[string]cacheEntry
}

func NewCache(clock clockwork.Clock, ttl time.Duration) *Cache {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if ttl <= 0 {
		ttl = CacheTTL
	}
	return &Cache{clock: clock, ttl: ttl, entries: make(map[string]cacheEntry)}
}

func (c *Cache) Get(userID string) (*FullProfile, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()
	e, ok := c.entries[userID]
	if !ok {
		return nil, false
	}
	if !c.clock.Now().Before(e.expires) {
		delete(c.entries, userID)
		return nil, false
	}
	return e.profile, true
}

func (c *Cache) Put(userID string, p *FullProfile) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.entries[userID] = cacheEntry{profile: p, expires: c.clock.Now().Add(c.ttl)}
}

func (c *Cache) Invalidate(userID string) {
	c.lock.Lock()
	defer c.lock.Unlock()
	delete(c.entries, userID)
}

func (c *Cache) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return len(c.entries)
}
