package bot

import (
	"context"

	"github.com/aurorabot/aurora/pkg/card"
	"github.com/aurorabot/aurora/pkg/locale"
	"github.com/aurorabot/aurora/pkg/metrics"
	"github.com/aurorabot/aurora/pkg/profile"
	"github.com/aurorabot/aurora/pkg/storage"
	"github.com/bwmarrin/discordgo"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"
)

func mention(userID string) string {
	return "<@" + userID + ">"
}

func notFoundMessage(t profile.Target) (*i18n.Message, map[string]interface{}) {
	switch t.Kind {
	case profile.TargetMention:
		return msgMentionNotRegistered, map[string]interface{}{"User": mention(t.UserID)}
	case profile.TargetSequence:
		return msgSequenceNotFound, map[string]interface{}{"Sequence": storage.FormatSequenceNumber(t.Sequence)}
	case profile.TargetDiscordID:
		return msgIDNotFound, nil
	}
	return msgSelfNotRegistered, map[string]interface{}{"User": mention(t.UserID)}
}

func loadingMessage(t profile.Target) (*i18n.Message, map[string]interface{}) {
	switch t.Kind {
	case profile.TargetMention:
		return msgLoadingMention, map[string]interface{}{"User": mention(t.UserID)}
	case profile.TargetSequence:
		return msgLoadingSequence, map[string]interface{}{"Sequence": storage.FormatSequenceNumber(t.Sequence)}
	case profile.TargetDiscordID:
		return msgLoadingID, nil
	}
	return msgLoadingSelf, nil
}

// showProfile answers a profile command with a loading notice and then edits
// it into the card.
func (bot *Bot) showProfile(ctx context.Context, m *discordgo.Message, args string) {
	target := profile.ParseTarget(args, m.Author.ID)
	log := bot.log.With(zap.String("userID", m.Author.ID), zap.Int("targetKind", int(target.Kind)))

	reg, err := bot.profiles.Lookup(ctx, target)
	if err != nil {
		log.Error("profile lookup failed", zap.Error(err))
		bot.reply(ctx, m, msgProfileFailed, nil)
		return
	}
	if reg == nil {
		msg, data := notFoundMessage(target)
		bot.reply(ctx, m, msg, data)
		return
	}

	msg, data := loadingMessage(target)
	loading, err := bot.reply(ctx, m, msg, data)
	if err != nil {
		return
	}

	fp, err := bot.profiles.Load(ctx, reg)
	if err != nil {
		log.Error("failed to build profile", zap.String("target", reg.DiscordID), zap.Error(err))
		if err := bot.chat.Edit(ctx, *loading, locale.LocalizeMessage(msgProfileFailed, nil), nil); err != nil {
			log.Warn("failed to edit loading message", zap.Error(err))
		}
		return
	}

	view := *fp
	bot.decorate(ctx, &view, m, reg)
	if err := bot.chat.Edit(ctx, *loading, "", card.ProfileEmbed(&view, 0)); err != nil {
		log.Warn("failed to show profile", zap.Error(err))
		return
	}
	bot.recorder.RecordEvent(ctx, metrics.ProfileView)
}

// decorate fills the Discord side of the card. Failing to fetch another user
// leaves the name stored at registration.
func (bot *Bot) decorate(ctx context.Context, fp *profile.FullProfile, m *discordgo.Message, reg *storage.Registration) {
	if reg.DiscordID == m.Author.ID {
		fp.DiscordUsername = displayName(m)
		fp.DiscordAvatar = m.Author.AvatarURL("256")
		return
	}
	u, err := bot.chat.User(ctx, reg.DiscordID)
	if err != nil {
		bot.log.Debug("failed to fetch profile owner", zap.String("target", reg.DiscordID), zap.Error(err))
		return
	}
	fp.DiscordUsername = u.Username
	fp.DiscordAvatar = u.AvatarURL("256")
}
