package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/aurorabot/aurora/pkg/rediskey"
	redisv8 "github.com/go-redis/redis/v8"
)

// ReadDocument leaves v untouched when the document does not exist.
func (redisDriver *Driver) ReadDocument(ctx context.Context, key string, v interface{}) error {
	raw, err := redisDriver.client.Get(ctx, rediskey.Document(key)).Bytes()
	if errors.Is(err, redisv8.Nil) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

func (redisDriver *Driver) WriteDocument(ctx context.Context, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return redisDriver.client.Set(ctx, rediskey.Document(key), raw, 0).Err()
}
