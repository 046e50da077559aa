package redis

import (
	"context"
	"errors"

	"github.com/aurorabot/aurora/pkg/metrics"
	"github.com/aurorabot/aurora/pkg/rediskey"
	redisv8 "github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func (redisDriver *Driver) RecordEvent(ctx context.Context, event metrics.EventType) {
	if err := redisDriver.client.Incr(ctx, rediskey.RequestsByType(event.String())).Err(); err != nil {
		redisDriver.log.Debug("failed to record event", zap.String("type", event.String()), zap.Error(err))
	}
}

func (redisDriver *Driver) EventCount(ctx context.Context, event metrics.EventType) (int64, error) {
	v, err := redisDriver.client.Get(ctx, rediskey.RequestsByType(event.String())).Int64()
	if errors.Is(err, redisv8.Nil) {
		return 0, nil
	}
	return v, err
}
