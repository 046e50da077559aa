package redis

import (
	"context"
	"time"

	"github.com/aurorabot/aurora/pkg/rediskey"
	"go.uber.org/zap"
)

const GlobalUserRateLimitDuration = 1 * time.Second

type RowCounter interface {
	CountRows(ctx context.Context) (int64, error)
}

func (redisDriver *Driver) GetTotalRegistrations(ctx context.Context) int64 {
	v, err := redisDriver.client.Get(ctx, rediskey.TotalRegistrations).Int64()
	if err == nil {
		return v
	}
	return rediskey.NotFound
}

func (redisDriver *Driver) RefreshTotalRegistrations(ctx context.Context, psql RowCounter) int64 {
	v, err := psql.CountRows(ctx)
	if err != nil {
		redisDriver.log.Warn("failed to count registrations", zap.Error(err))
		return rediskey.NotFound
	}
	if err := redisDriver.client.Set(ctx, rediskey.TotalRegistrations, v, rediskey.TotalRegistrationsExpiration).Err(); err != nil {
		redisDriver.log.Warn("failed to cache registration total", zap.Error(err))
	}
	return v
}

// MarkUserRateLimit applies the general cooldown and, when cmdType is set, a
// command-specific one lasting ttl.
func (redisDriver *Driver) MarkUserRateLimit(ctx context.Context, userID, cmdType string, ttl time.Duration) {
	err := redisDriver.client.Set(ctx, rediskey.UserRateLimitGeneral(userID), "", GlobalUserRateLimitDuration).Err()
	if err != nil {
		redisDriver.log.Warn("failed to mark rate limit", zap.Error(err))
	}

	if cmdType != "" && ttl > 0 {
		err = redisDriver.client.Set(ctx, rediskey.UserRateLimitSpecific(userID, cmdType), "", ttl).Err()
		if err != nil {
			redisDriver.log.Warn("failed to mark rate limit", zap.Error(err))
		}
	}
}

func (redisDriver *Driver) IsUserRateLimited(ctx context.Context, userID, cmdType string) bool {
	keys := []string{rediskey.UserRateLimitGeneral(userID)}
	if cmdType != "" {
		keys = append(keys, rediskey.UserRateLimitSpecific(userID, cmdType))
	}
	v, err := redisDriver.client.Exists(ctx, keys...).Result()
	if err != nil {
		redisDriver.log.Warn("failed to check rate limit", zap.Error(err))
		return false
	}
	return v > 0
}
