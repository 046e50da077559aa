package bot

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aurorabot/aurora/pkg/card"
	"github.com/aurorabot/aurora/pkg/conversation"
	"github.com/aurorabot/aurora/pkg/locale"
	"github.com/aurorabot/aurora/pkg/personalization"
	"github.com/aurorabot/aurora/pkg/registration"
	"github.com/bwmarrin/discordgo"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"
)

const (
	CommandRegistration    = "aurora!registro"
	CommandPersonalization = "aurora!personalizar"
	CommandProfile         = "aurora!perfil"
)

type command struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Cooldown    time.Duration `json:"-"`
}

// Commands lists the chat commands in match order.
var Commands = []command{
	{Name: CommandRegistration, Description: "Vincula tu cuenta de Riot por mensaje privado", Cooldown: RegistrationCooldown},
	{Name: CommandPersonalization, Description: "Personaliza tu perfil por mensaje privado", Cooldown: PersonalizationCooldown},
	{Name: CommandProfile, Description: "Muestra tu perfil o el de @usuario, #N o un ID de Discord", Cooldown: ProfileCooldown},
}

// parseCommand matches the prefix case-insensitively and returns the rest of
// the message as arguments.
func parseCommand(content string) (command, string, bool) {
	trimmed := strings.TrimSpace(content)
	lower := strings.ToLower(trimmed)
	for _, c := range Commands {
		if strings.HasPrefix(lower, c.Name) {
			return c, strings.TrimSpace(trimmed[len(c.Name):]), true
		}
	}
	return command{}, "", false
}

func (bot *Bot) HandleMessage(ctx context.Context, m *discordgo.Message) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if m.GuildID == "" {
		bot.handleDirect(ctx, m)
		return
	}
	if m.Content == "ping" {
		bot.reply(ctx, m, msgPong, nil)
		return
	}
	if cmd, args, ok := parseCommand(m.Content); ok {
		bot.runCommand(ctx, m, cmd, args, false)
	}
}

// handleDirect feeds a direct message to whichever flow the user has open;
// without one it may still start a command.
func (bot *Bot) handleDirect(ctx context.Context, m *discordgo.Message) {
	log := bot.log.With(zap.String("userID", m.Author.ID))

	handled, err := bot.registration.HandleInput(ctx, m.Author.ID, m.Content)
	if err == nil && !handled {
		in := personalization.Input{Content: m.Content}
		for _, a := range m.Attachments {
			in.AttachmentURLs = append(in.AttachmentURLs, a.URL)
		}
		handled, err = bot.personalization.HandleInput(ctx, m.Author.ID, in)
	}
	if err != nil {
		log.Error("failed to handle direct message", zap.Error(err))
		bot.say(ctx, m.ChannelID, msgSomethingWrong)
		return
	}
	if handled {
		return
	}
	if cmd, args, ok := parseCommand(m.Content); ok {
		bot.runCommand(ctx, m, cmd, args, true)
	}
}

func (bot *Bot) runCommand(ctx context.Context, m *discordgo.Message, cmd command, args string, direct bool) {
	log := bot.log.With(zap.String("userID", m.Author.ID), zap.String("command", cmd.Name))
	if bot.cooldown.IsUserRateLimited(ctx, m.Author.ID, cmd.Name) {
		log.Debug("command on cooldown")
		return
	}
	bot.cooldown.MarkUserRateLimit(ctx, m.Author.ID, cmd.Name, cmd.Cooldown)

	var err error
	switch cmd.Name {
	case CommandRegistration:
		err = bot.registration.Begin(ctx, registration.Invocation{
			UserID:    m.Author.ID,
			Username:  m.Author.Username,
			ChannelID: m.ChannelID,
			Direct:    direct,
		})
	case CommandPersonalization:
		err = bot.personalization.Begin(ctx, personalization.Invocation{
			UserID:    m.Author.ID,
			Username:  displayName(m),
			AvatarURL: m.Author.AvatarURL("256"),
			ChannelID: m.ChannelID,
			Direct:    direct,
		})
	case CommandProfile:
		bot.showProfile(ctx, m, args)
	}
	if err != nil {
		log.Error("command failed", zap.Error(err))
		bot.say(ctx, m.ChannelID, msgSomethingWrong)
	}
}

type buttonHandler struct {
	handle   func(ctx context.Context, userID, messageID, customID string) error
	describe func(error) string
}

func (bot *Bot) buttonFor(customID string) (buttonHandler, bool) {
	switch customID {
	case card.ConfirmAccountID, card.RetryAccountID:
		return buttonHandler{bot.registration.HandleButton, registration.ButtonErrorMessage}, true
	case card.SaveColorID, card.RetryColorID, card.CancelColorID:
		return buttonHandler{bot.personalization.HandleButton, personalization.ButtonErrorMessage}, true
	}
	return buttonHandler{}, false
}

// HandleInteraction routes a button click to the flow that owns its custom id.
func (bot *Bot) HandleInteraction(ctx context.Context, i *discordgo.Interaction) {
	if i.Type != discordgo.InteractionMessageComponent || i.Message == nil {
		return
	}
	user := interactionUser(i)
	if user == nil {
		return
	}
	customID := i.MessageComponentData().CustomID
	h, ok := bot.buttonFor(customID)
	if !ok {
		return
	}
	log := bot.log.With(zap.String("userID", user.ID), zap.String("customID", customID))

	if err := bot.chat.Acknowledge(ctx, i); err != nil {
		log.Warn("failed to acknowledge interaction", zap.Error(err))
	}
	err := h.handle(ctx, user.ID, i.Message.ID, customID)
	if err == nil {
		return
	}
	if !errors.Is(err, conversation.ErrNoConversation) && !errors.Is(err, conversation.ErrStaleInteraction) {
		log.Error("button failed", zap.Error(err))
	}
	if err := bot.chat.FollowUp(ctx, i, h.describe(err)); err != nil {
		log.Warn("failed to send follow-up", zap.Error(err))
	}
}

func interactionUser(i *discordgo.Interaction) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

func displayName(m *discordgo.Message) string {
	if m.Member != nil && m.Member.Nick != "" {
		return m.Member.Nick
	}
	return m.Author.Username
}

func (bot *Bot) reply(ctx context.Context, m *discordgo.Message, msg *i18n.Message, data map[string]interface{}) (*conversation.MessageRef, error) {
	ref, err := bot.chat.Send(ctx, m.ChannelID, &discordgo.MessageSend{
		Content: locale.LocalizeMessage(msg, data),
		Reference: &discordgo.MessageReference{
			MessageID: m.ID,
			ChannelID: m.ChannelID,
			GuildID:   m.GuildID,
		},
	})
	if err != nil {
		bot.log.Warn("reply not delivered", zap.String("channelID", m.ChannelID), zap.String("message", msg.ID), zap.Error(err))
	}
	return ref, err
}

func (bot *Bot) say(ctx context.Context, channelID string, msg *i18n.Message) {
	_, err := bot.chat.Send(ctx, channelID, &discordgo.MessageSend{Content: locale.LocalizeMessage(msg, nil)})
	if err != nil {
		bot.log.Warn("message not delivered", zap.String("channelID", channelID), zap.String("message", msg.ID), zap.Error(err))
	}
}
