package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/aurorabot/aurora/pkg/rediskey"
	"github.com/aurorabot/aurora/pkg/throttle"
	redisv8 "github.com/go-redis/redis/v8"
)

func (redisDriver *Driver) GetThrottle(ctx context.Context, userID string) (*throttle.Record, error) {
	v, err := redisDriver.client.Get(ctx, rediskey.Throttle(userID)).Bytes()
	if errors.Is(err, redisv8.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var rec throttle.Record
	if err := json.Unmarshal(v, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// PutThrottle deletes the key for a zero record.
func (redisDriver *Driver) PutThrottle(ctx context.Context, userID string, rec *throttle.Record) error {
	key := rediskey.Throttle(userID)
	if rec.IsZero() {
		return redisDriver.client.Del(ctx, key).Err()
	}
	v, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return redisDriver.client.Set(ctx, key, v, 0).Err()
}
