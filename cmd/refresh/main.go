// Command refresh keeps the stored ranks and roles of every registered user
// current. By default it runs a pass every hour until interrupted.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aurorabot/aurora/pkg/app"
	"github.com/aurorabot/aurora/pkg/config"
	"github.com/aurorabot/aurora/pkg/logging"
	"github.com/aurorabot/aurora/pkg/refresh"
	"go.uber.org/zap"
)

func main() {
	once := flag.Bool("once", false, "run a single pass and exit")
	user := flag.String("user", "", "refresh only this Discord user id and exit")
	interval := flag.Duration("interval", refresh.DefaultInterval, "time between passes")
	pacing := flag.Duration("pacing", refresh.DefaultPacing, "pause between users")
	flag.Parse()

	if err := run(*once, *user, *interval, *pacing); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func run(once bool, user string, interval, pacing time.Duration) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.Init(logging.Config{Level: cfg.Log.Level, Dev: cfg.Log.Dev})
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, err := app.Build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	r := refresh.New(refresh.Config{
		Rows:       svc.Postgres,
		Aggregator: svc.Aggregator,
		Profiles:   svc.Profiles,
		Documents:  svc.Profiles.Repository(),
		Clock:      svc.Clock,
		Interval:   interval,
		Pacing:     pacing,
		Logger:     logger,
	})

	switch {
	case user != "":
		return r.RefreshUser(ctx, user)
	case once:
		res, err := r.RefreshAll(ctx)
		logger.Info("refresh finished", zap.Int("succeeded", res.Succeeded), zap.Int("failed", res.Failed))
		return err
	}
	err = r.Run(ctx)
	if ctx.Err() != nil {
		return nil
	}
	return err
}
