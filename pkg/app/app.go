// Package app assembles the services shared by the bot and the maintenance
// commands from configuration.
package app

import (
	"context"
	"net/http"

	"github.com/aurorabot/aurora/pkg/aggregator"
	"github.com/aurorabot/aurora/pkg/config"
	"github.com/aurorabot/aurora/pkg/conversation"
	"github.com/aurorabot/aurora/pkg/ddragon"
	"github.com/aurorabot/aurora/pkg/locks"
	"github.com/aurorabot/aurora/pkg/metrics"
	"github.com/aurorabot/aurora/pkg/profile"
	"github.com/aurorabot/aurora/pkg/redis"
	"github.com/aurorabot/aurora/pkg/riot"
	"github.com/aurorabot/aurora/pkg/storage"
	"github.com/aurorabot/aurora/pkg/throttle"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// Stores are the state backends: Redis when configured, process memory and
// the filesystem otherwise.
type Stores struct {
	Conversations conversation.Store
	Throttles     throttle.Store
	Documents     profile.Documents
	Locker        conversation.Locker
	Recorder      metrics.Recorder
	Source        metrics.Source
}

type Services struct {
	Config     *config.Config
	Logger     *zap.Logger
	Clock      clockwork.Clock
	Postgres   *storage.PsqlInterface
	Redis      *redis.Driver
	Stores     Stores
	Riot       *riot.Client
	Catalog    *ddragon.Catalog
	Aggregator *aggregator.Aggregator
	Profiles   *profile.Service
}

func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Services, error) {
	if err := cfg.Postgres.Validate(); err != nil {
		return nil, err
	}
	svc := &Services{Config: cfg, Logger: logger, Clock: clockwork.NewRealClock()}

	psql := &storage.PsqlInterface{}
	if err := psql.Init(storage.ConstructPsqlConnectURL(cfg.Postgres.Addr, cfg.Postgres.User, cfg.Postgres.Password)); err != nil {
		return nil, err
	}
	if err := psql.EnsureSchema(ctx); err != nil {
		psql.Close()
		return nil, err
	}
	svc.Postgres = psql

	if err := svc.buildStores(ctx); err != nil {
		svc.Close()
		return nil, err
	}

	svc.Riot = riot.NewClient(riot.Options{
		APIKey:        cfg.Riot.APIKey,
		TFTKey:        cfg.Riot.TFTKey(),
		Timeout:       cfg.Riot.Timeout,
		RatePerSecond: cfg.Riot.RatePerSecond,
		Logger:        logger,
		Recorder:      svc.Stores.Recorder,
	})
	svc.Catalog = ddragon.NewCatalog(ddragon.Options{
		HTTPClient: &http.Client{Timeout: cfg.Riot.Timeout},
		Clock:      svc.Clock,
		Logger:     logger,
	})
	svc.Aggregator = aggregator.New(svc.Riot, svc.Catalog, logger)

	repo := profile.NewRepository(svc.Stores.Documents, svc.Stores.Locker)
	svc.Profiles = profile.NewService(psql, repo, svc.Riot, profile.NewCache(svc.Clock, profile.CacheTTL), logger)
	return svc, nil
}

func (svc *Services) buildStores(ctx context.Context) error {
	cfg := svc.Config
	if cfg.Redis.UseRedis() {
		driver := &redis.Driver{}
		err := driver.Init(redis.Params{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password}, svc.Logger)
		if err != nil {
			return err
		}
		if err := driver.Ping(ctx); err != nil {
			driver.Close()
			return err
		}
		svc.Redis = driver
		svc.Stores = Stores{
			Conversations: driver,
			Throttles:     driver,
			Documents:     driver,
			Locker:        driver,
			Recorder:      driver,
			Source:        driver,
		}
		svc.Logger.Info("using redis state", zap.String("addr", cfg.Redis.Addr))
		return nil
	}

	fs := &storage.FilesystemDriver{}
	if err := fs.Init(cfg.DocumentsPath); err != nil {
		return err
	}
	counter := metrics.NewCounter()
	svc.Stores = Stores{
		Conversations: conversation.NewMemoryStore(),
		Throttles:     throttle.NewMemoryStore(),
		Documents:     fs,
		Locker:        locks.NewKeyedMutex(),
		Recorder:      counter,
		Source:        counter,
	}
	svc.Logger.Info("no REDIS_ADDR; using in-memory state", zap.String("documents", cfg.DocumentsPath))
	return nil
}

func (svc *Services) Close() {
	if svc.Redis != nil {
		if err := svc.Redis.Close(); err != nil {
			svc.Logger.Warn("failed to close redis", zap.Error(err))
		}
	}
	if svc.Postgres != nil {
		svc.Postgres.Close()
	}
}
