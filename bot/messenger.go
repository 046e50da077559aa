package bot

import (
	"context"

	"github.com/aurorabot/aurora/pkg/card"
	"github.com/aurorabot/aurora/pkg/conversation"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Chat is everything the handlers send to Discord.
type Chat interface {
	conversation.Messenger
	Edit(ctx context.Context, ref conversation.MessageRef, content string, embed *discordgo.MessageEmbed) error
	User(ctx context.Context, userID string) (*discordgo.User, error)
	Acknowledge(ctx context.Context, i *discordgo.Interaction) error
	FollowUp(ctx context.Context, i *discordgo.Interaction, content string) error
}

// Messenger implements Chat over a discordgo session.
type Messenger struct {
	session *discordgo.Session
	log     *zap.Logger
}

func NewMessenger(s *discordgo.Session, logger *zap.Logger) *Messenger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Messenger{session: s, log: logger.Named("messenger")}
}

func (m *Messenger) Send(_ context.Context, channelID string, msg *discordgo.MessageSend) (*conversation.MessageRef, error) {
	sent, err := m.session.ChannelMessageSendComplex(channelID, msg)
	if err != nil {
		return nil, err
	}
	return &conversation.MessageRef{ChannelID: sent.ChannelID, MessageID: sent.ID}, nil
}

// DisableComponents re-reads the message so the edit keeps its current buttons,
// only greyed out.
func (m *Messenger) DisableComponents(_ context.Context, ref conversation.MessageRef) error {
	msg, err := m.session.ChannelMessage(ref.ChannelID, ref.MessageID)
	if err != nil {
		return err
	}
	if len(msg.Components) == 0 {
		return nil
	}
	edit := discordgo.NewMessageEdit(ref.ChannelID, ref.MessageID)
	edit.Components = card.Disabled(msg.Components)
	_, err = m.session.ChannelMessageEditComplex(edit)
	return err
}

func (m *Messenger) DirectChannel(_ context.Context, userID string) (string, error) {
	ch, err := m.session.UserChannelCreate(userID)
	if err != nil {
		return "", err
	}
	return ch.ID, nil
}

func (m *Messenger) Edit(_ context.Context, ref conversation.MessageRef, content string, embed *discordgo.MessageEmbed) error {
	edit := discordgo.NewMessageEdit(ref.ChannelID, ref.MessageID).SetContent(content)
	if embed != nil {
		edit.SetEmbed(embed)
	}
	_, err := m.session.ChannelMessageEditComplex(edit)
	return err
}

func (m *Messenger) User(_ context.Context, userID string) (*discordgo.User, error) {
	return m.session.User(userID)
}

// Acknowledge defers the component update; the flow answers with new messages.
func (m *Messenger) Acknowledge(_ context.Context, i *discordgo.Interaction) error {
	return m.session.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
}

func (m *Messenger) FollowUp(_ context.Context, i *discordgo.Interaction, content string) error {
	_, err := m.session.FollowupMessageCreate(i, true, &discordgo.WebhookParams{Content: content})
	return err
}
