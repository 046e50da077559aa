// Package bot connects the flows to Discord: it routes chat messages and
// button clicks and serves the admin API.
package bot

import (
	"context"
	"errors"
	"time"

	"github.com/aurorabot/aurora/pkg/metrics"
	"github.com/aurorabot/aurora/pkg/personalization"
	"github.com/aurorabot/aurora/pkg/profile"
	"github.com/aurorabot/aurora/pkg/registration"
	"github.com/aurorabot/aurora/pkg/storage"
	"github.com/bwmarrin/discordgo"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// handlerTimeout bounds one event, registration aggregation included.
const handlerTimeout = 2 * time.Minute

const ListeningTo = "Aurora!perfil"

type RegistrationFlow interface {
	Begin(ctx context.Context, inv registration.Invocation) error
	HandleInput(ctx context.Context, userID, content string) (bool, error)
	HandleButton(ctx context.Context, userID, messageID, customID string) error
}

type PersonalizationFlow interface {
	Begin(ctx context.Context, inv personalization.Invocation) error
	HandleInput(ctx context.Context, userID string, in personalization.Input) (bool, error)
	HandleButton(ctx context.Context, userID, messageID, customID string) error
}

type Profiles interface {
	Lookup(ctx context.Context, t profile.Target) (*storage.Registration, error)
	Load(ctx context.Context, reg *storage.Registration) (*profile.FullProfile, error)
}

// RegistrationCounter feeds /bot/info.
type RegistrationCounter interface {
	CountRows(ctx context.Context) (int64, error)
}

type Config struct {
	Session         *discordgo.Session
	Chat            Chat
	Registration    RegistrationFlow
	Personalization PersonalizationFlow
	Profiles        Profiles
	Rows            RegistrationCounter
	Totals          RegistrationTotals
	Cooldown        Cooldown
	Recorder        metrics.Recorder
	Version         string
	Commit          string
	Logger          *zap.Logger
}

type Bot struct {
	PrimarySession *discordgo.Session

	chat            Chat
	registration    RegistrationFlow
	personalization PersonalizationFlow
	profiles        Profiles
	rows            RegistrationCounter
	totals          RegistrationTotals
	cooldown        Cooldown
	recorder        metrics.Recorder
	version         string
	commit          string
	startedAt       time.Time
	log             *zap.Logger
}

func New(cfg Config) *Bot {
	if cfg.Cooldown == nil {
		cfg.Cooldown = NewMemoryCooldown(clockwork.NewRealClock())
	}
	if cfg.Recorder == nil {
		cfg.Recorder = metrics.Nop{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Bot{
		PrimarySession:  cfg.Session,
		chat:            cfg.Chat,
		registration:    cfg.Registration,
		personalization: cfg.Personalization,
		profiles:        cfg.Profiles,
		rows:            cfg.Rows,
		totals:          cfg.Totals,
		cooldown:        cfg.Cooldown,
		recorder:        cfg.Recorder,
		version:         cfg.Version,
		commit:          cfg.Commit,
		startedAt:       time.Now(),
		log:             cfg.Logger.Named("bot"),
	}
}

// Start registers the event handlers and opens the gateway connection.
func (bot *Bot) Start() error {
	dg := bot.PrimarySession
	if dg == nil {
		return errors.New("bot: no discord session")
	}
	dg.LogLevel = discordgo.LogWarning

	dg.AddHandler(bot.messageCreate)
	dg.AddHandler(bot.interactionCreate)
	dg.AddHandler(bot.rateLimited)
	dg.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		bot.log.Info("bot is now online", zap.String("user", r.User.Username), zap.Int("guilds", len(r.Guilds)))
	})

	dg.Identify.Intents = discordgo.MakeIntent(discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent)

	if err := dg.Open(); err != nil {
		return err
	}
	bot.log.Info("finished identifying to the discord api")

	status := discordgo.UpdateStatusData{
		Activities: []*discordgo.Activity{{
			Name: ListeningTo,
			Type: discordgo.ActivityTypeListening,
		}},
	}
	if err := dg.UpdateStatusComplex(status); err != nil {
		bot.log.Warn("failed to set status", zap.Error(err))
	}
	return nil
}

func (bot *Bot) Close() {
	if bot.PrimarySession != nil {
		if err := bot.PrimarySession.Close(); err != nil {
			bot.log.Warn("failed to close session", zap.Error(err))
		}
	}
}

func (bot *Bot) messageCreate(_ *discordgo.Session, m *discordgo.MessageCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()
	bot.HandleMessage(ctx, m.Message)
}

func (bot *Bot) interactionCreate(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()
	bot.HandleInteraction(ctx, i.Interaction)
}

func (bot *Bot) rateLimited(_ *discordgo.Session, rl *discordgo.RateLimit) {
	bot.log.Warn("discord rate limit", zap.String("url", rl.URL), zap.String("message", rl.Message))
}
