// Command migrate rebuilds the LoL document of every registered user from the
// Riot API and makes sure each one has a personalization document.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aurorabot/aurora/pkg/app"
	"github.com/aurorabot/aurora/pkg/config"
	"github.com/aurorabot/aurora/pkg/logging"
	"github.com/aurorabot/aurora/pkg/refresh"
	"go.uber.org/zap"
)

func main() {
	pacing := flag.Duration("pacing", refresh.DefaultPacing, "pause between users")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.Init(logging.Config{Level: cfg.Log.Level, Dev: cfg.Log.Dev})
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, err := app.Build(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to start", zap.Error(err))
	}
	defer svc.Close()

	r := refresh.New(refresh.Config{
		Rows:       svc.Postgres,
		Aggregator: svc.Aggregator,
		Profiles:   svc.Profiles,
		Documents:  svc.Profiles.Repository(),
		Clock:      svc.Clock,
		Pacing:     *pacing,
		Logger:     logger,
	})
	res, err := r.MigrateAll(ctx)
	logger.Info("migration finished",
		zap.Int("succeeded", res.Succeeded),
		zap.Int("failed", res.Failed),
		zap.Int("total", res.Total()),
	)
	if err != nil {
		logger.Error("migration stopped early", zap.Error(err))
		stop()
		svc.Close()
		os.Exit(1)
	}
}
