package redis

import (
	"context"
	"errors"
	"time"

	"github.com/aurorabot/aurora/pkg/rediskey"
	"github.com/bsm/redislock"
	redisv8 "github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const LinearBackoffMs = 100

// MaxRetries bounds how long a user's second event waits for the first one,
// which may be a full profile aggregation.
const MaxRetries = 600

// UserLockTTL outlives any single flow step.
const UserLockTTL = 2 * time.Minute

var ErrLockNotObtained = errors.New("redis: could not obtain lock")

type Params struct {
	Addr     string
	Username string
	Password string
	// StateTTL bounds how long a conversation state survives without its
	// in-process timer, e.g. after a restart.
	StateTTL time.Duration
}

type Driver struct {
	client   *redisv8.Client
	locker   *redislock.Client
	stateTTL time.Duration
	log      *zap.Logger
}

func (redisDriver *Driver) Init(params Params, logger *zap.Logger) error {
	rdb := redisv8.NewClient(&redisv8.Options{
		Addr:     params.Addr,
		Username: params.Username,
		Password: params.Password,
		DB:       0, // use default DB
	})
	if logger == nil {
		logger = zap.NewNop()
	}
	redisDriver.client = rdb
	redisDriver.locker = redislock.New(rdb)
	redisDriver.stateTTL = params.StateTTL
	if redisDriver.stateTTL <= 0 {
		redisDriver.stateTTL = time.Hour + 5*time.Minute
	}
	redisDriver.log = logger.Named("redis")
	return nil
}

func (redisDriver *Driver) Ping(ctx context.Context) error {
	return redisDriver.client.Ping(ctx).Err()
}

// Lock holds a redislock on key until the returned func is called.
func (redisDriver *Driver) Lock(ctx context.Context, key string) (func(), error) {
	lock, err := redisDriver.locker.Obtain(ctx, rediskey.UserLock(key), UserLockTTL, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(time.Millisecond*LinearBackoffMs), MaxRetries),
		Metadata:      "",
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrLockNotObtained
	} else if err != nil {
		return nil, err
	}
	return func() {
		if err := lock.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			redisDriver.log.Warn("failed to release lock", zap.String("key", key), zap.Error(err))
		}
	}, nil
}

func (redisDriver *Driver) Close() error {
	return redisDriver.client.Close()
}
