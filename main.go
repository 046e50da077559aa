package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aurorabot/aurora/bot"
	"github.com/aurorabot/aurora/pkg/app"
	"github.com/aurorabot/aurora/pkg/config"
	"github.com/aurorabot/aurora/pkg/conversation"
	"github.com/aurorabot/aurora/pkg/locale"
	"github.com/aurorabot/aurora/pkg/logging"
	"github.com/aurorabot/aurora/pkg/metrics"
	"github.com/aurorabot/aurora/pkg/personalization"
	"github.com/aurorabot/aurora/pkg/registration"
	"github.com/aurorabot/aurora/pkg/throttle"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

var (
	version = "1.0.0"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := discordMainWrapper(); err != nil {
		log.Println("Program exited with the following error:")
		log.Println(err)
		os.Exit(1)
	}
}

func discordMainWrapper() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.Init(logging.Config{
		Level: cfg.Log.Level,
		Dev:   cfg.Log.Dev,
		Path:  cfg.Log.FilePath(),
	})
	if err != nil {
		return err
	}
	defer logger.Sync()
	logger.Info("starting aurora", zap.String("version", version), zap.String("commit", commit), zap.String("date", date))

	locale.SetLogger(logger)
	locale.InitLang(cfg.Locale.Path, cfg.Locale.Lang)

	ctx := context.Background()
	svc, err := app.Build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	dg, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return err
	}
	chat := bot.NewMessenger(dg, logger)

	registrationEngine := conversation.NewEngine(conversation.Config{
		Family:    conversation.FamilyRegistration,
		Store:     svc.Stores.Conversations,
		Locker:    svc.Stores.Locker,
		Messenger: chat,
		Clock:     svc.Clock,
		Logger:    logger,
	})
	personalizationEngine := conversation.NewEngine(conversation.Config{
		Family:    conversation.FamilyPersonalization,
		Store:     svc.Stores.Conversations,
		Locker:    svc.Stores.Locker,
		Messenger: chat,
		Clock:     svc.Clock,
		Logger:    logger,
	})

	reg := registration.New(registration.Config{
		Engine:    registrationEngine,
		Messenger: chat,
		Throttle:  throttle.New(svc.Stores.Throttles, svc.Stores.Locker, svc.Clock, logger),
		Builder:   svc.Aggregator,
		Rows:      svc.Postgres,
		Documents: svc.Profiles.Repository(),
		Icons:     svc.Catalog,
		Metrics:   svc.Stores.Recorder,
		Clock:     svc.Clock,
		Logger:    logger,
	})
	pers := personalization.New(personalization.Config{
		Engine:    personalizationEngine,
		Messenger: chat,
		Profiles:  svc.Profiles,
		Champions: svc.Catalog,
		Metrics:   svc.Stores.Recorder,
		Logger:    logger,
	})
	reg.Exclusive(pers.Engine())
	pers.Exclusive(reg.Engine())

	botCfg := bot.Config{
		Session:         dg,
		Chat:            chat,
		Registration:    reg,
		Personalization: pers,
		Profiles:        svc.Profiles,
		Rows:            svc.Postgres,
		Recorder:        svc.Stores.Recorder,
		Version:         version,
		Commit:          commit,
		Logger:          logger,
	}
	if svc.Redis != nil {
		botCfg.Cooldown = svc.Redis
		botCfg.Totals = svc.Redis
	} else {
		botCfg.Cooldown = bot.NewMemoryCooldown(svc.Clock)
	}
	b := bot.New(botCfg)
	if err := b.Start(); err != nil {
		return err
	}
	defer b.Close()

	go b.StartAPIServer(cfg.API.Port, cfg.API.AdminUser, cfg.API.AdminPassword)

	nodeID, _ := os.Hostname()
	go func() {
		if err := metrics.PrometheusMetricsServer(svc.Stores.Source, nodeID, cfg.MetricsPort, logger); err != nil {
			logger.Error("metrics server stopped", zap.Error(err))
		}
	}()

	logger.Info("bot is now running, press CTRL-C to exit")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
	logger.Info("received stop signal, shutting down")
	return nil
}
