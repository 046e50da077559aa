package bot

import (
	"context"
	"sync"
	"time"

	"github.com/aurorabot/aurora/pkg/redis"
	"github.com/jonboulle/clockwork"
)

const (
	RegistrationCooldown    = 5 * time.Second
	PersonalizationCooldown = 5 * time.Second
	ProfileCooldown         = 3 * time.Second
)

// Cooldown is satisfied by the Redis driver and by MemoryCooldown.
type Cooldown interface {
	MarkUserRateLimit(ctx context.Context, userID, cmdType string, ttl time.Duration)
	IsUserRateLimited(ctx context.Context, userID, cmdType string) bool
}

// MemoryCooldown mirrors the Redis cooldown keys for single-process runs.
type MemoryCooldown struct {
	clock clockwork.Clock
	lock  sync.Mutex
	until map[string]time.Time
}

func NewMemoryCooldown(clock clockwork.Clock) *MemoryCooldown {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryCooldown{clock: clock, until: make(map[string]time.Time)}
}

func generalKey(userID string) string {
	return "general:" + userID
}

func specificKey(userID, cmdType string) string {
	return cmdType + ":" + userID
}

func (c *MemoryCooldown) MarkUserRateLimit(_ context.Context, userID, cmdType string, ttl time.Duration) {
	c.lock.Lock()
	defer c.lock.Unlock()
	now := c.clock.Now()
	c.until[generalKey(userID)] = now.Add(redis.GlobalUserRateLimitDuration)
	if cmdType != "" && ttl > 0 {
		c.until[specificKey(userID, cmdType)] = now.Add(ttl)
	}
	c.sweep(now)
}

func (c *MemoryCooldown) IsUserRateLimited(_ context.Context, userID, cmdType string) bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	now := c.clock.Now()
	keys := []string{generalKey(userID)}
	if cmdType != "" {
		keys = append(keys, specificKey(userID, cmdType))
	}
	for _, k := range keys {
		if until, ok := c.until[k]; ok && now.Before(until) {
			return true
		}
	}
	return false
}

// sweep runs under lock.
func (c *MemoryCooldown) sweep(now time.Time) {
	for k, until := range c.until {
		if !now.Before(until) {
			delete(c.until, k)
		}
	}
}
