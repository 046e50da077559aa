package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aurorabot/aurora/pkg/conversation"
	"github.com/aurorabot/aurora/pkg/rediskey"
	redisv8 "github.com/go-redis/redis/v8"
)

// States are hashes of {started: unix nanos, data: JSON state} so the
// compare-and-delete can run without decoding JSON in Lua.
var createStateScript = redisv8.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 then
	return 0
end
redis.call("HSET", KEYS[1], "started", ARGV[1], "data", ARGV[2])
redis.call("PEXPIRE", KEYS[1], ARGV[3])
return 1
`)

var compareAndDeleteScript = redisv8.NewScript(`
if redis.call("HGET", KEYS[1], "started") == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func startedField(t time.Time) string {
	return strconv.FormatInt(t.UnixNano(), 10)
}

func (redisDriver *Driver) GetState(ctx context.Context, family conversation.Family, userID string) (*conversation.State, error) {
	data, err := redisDriver.client.HGet(ctx, rediskey.ConversationState(string(family), userID), "data").Result()
	if errors.Is(err, redisv8.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var st conversation.State
	if err := json.Unmarshal([]byte(data), &st); err != nil {
		return nil, fmt.Errorf("decode conversation state: %w", err)
	}
	return &st, nil
}

func (redisDriver *Driver) CreateState(ctx context.Context, st *conversation.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	created, err := createStateScript.Run(ctx, redisDriver.client,
		[]string{rediskey.ConversationState(string(st.Family), st.UserID)},
		startedField(st.StartedAt), string(data), redisDriver.stateTTL.Milliseconds(),
	).Int()
	if err != nil {
		return err
	}
	if created == 0 {
		return conversation.ErrAlreadyActive
	}
	return nil
}

func (redisDriver *Driver) SetState(ctx context.Context, st *conversation.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	key := rediskey.ConversationState(string(st.Family), st.UserID)
	_, err = redisDriver.client.TxPipelined(ctx, func(pipe redisv8.Pipeliner) error {
		pipe.HSet(ctx, key, "started", startedField(st.StartedAt), "data", string(data))
		pipe.Expire(ctx, key, redisDriver.stateTTL)
		return nil
	})
	return err
}

func (redisDriver *Driver) DeleteState(ctx context.Context, family conversation.Family, userID string) error {
	return redisDriver.client.Del(ctx, rediskey.ConversationState(string(family), userID)).Err()
}

func (redisDriver *Driver) CompareAndDeleteState(ctx context.Context, family conversation.Family, userID string, startedAt time.Time) (bool, error) {
	deleted, err := compareAndDeleteScript.Run(ctx, redisDriver.client,
		[]string{rediskey.ConversationState(string(family), userID)},
		startedField(startedAt),
	).Int()
	if err != nil {
		return false, err
	}
	return deleted == 1, nil
}
