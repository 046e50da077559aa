// Package registration links a Discord user to a Riot account through a
// direct-message conversation: riot id, region, then a confirmation card.
package registration

import (
	"context"
	"errors"
	"time"

	"github.com/aurorabot/aurora/pkg/aggregator"
	"github.com/aurorabot/aurora/pkg/card"
	"github.com/aurorabot/aurora/pkg/conversation"
	"github.com/aurorabot/aurora/pkg/locale"
	"github.com/aurorabot/aurora/pkg/metrics"
	"github.com/aurorabot/aurora/pkg/profile"
	"github.com/aurorabot/aurora/pkg/riot"
	"github.com/aurorabot/aurora/pkg/storage"
	"github.com/aurorabot/aurora/pkg/throttle"
	"github.com/bwmarrin/discordgo"
	"github.com/jonboulle/clockwork"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"
)

const (
	StageRiotID       = "riotid"
	StageRegion       = "region"
	StageConfirmation = "confirmacion"
)

// registryZone is America/Bogota, which has no daylight saving time.
var registryZone = time.FixedZone("COT", -5*60*60)

type Builder interface {
	Build(ctx context.Context, id riot.Identity) (*aggregator.PlayerProfile, error)
}

type Rows interface {
	FindRowByUserID(ctx context.Context, discordID string) (*storage.Registration, error)
	NextSequenceNumber(ctx context.Context) (string, error)
	AppendRow(ctx context.Context, r *storage.Registration) (int64, error)
}

type Documents interface {
	SaveLoL(ctx context.Context, userID string, data *profile.LoLData) error
}

type IconResolver interface {
	ProfileIconURL(ctx context.Context, iconID int) string
}

// ActivityChecker reports whether a user already has a conversation open.
type ActivityChecker interface {
	Active(ctx context.Context, userID string) (bool, error)
}

type Config struct {
	Engine    *conversation.Engine
	Messenger conversation.Messenger
	Throttle  *throttle.Throttle
	Builder   Builder
	Rows      Rows
	Documents Documents
	Icons     IconResolver
	Metrics   metrics.Recorder
	Clock     clockwork.Clock
	Logger    *zap.Logger
}

type Flow struct {
	engine    *conversation.Engine
	messenger conversation.Messenger
	throttle  *throttle.Throttle
	builder   Builder
	rows      Rows
	documents Documents
	icons     IconResolver
	metrics   metrics.Recorder
	clock     clockwork.Clock
	log       *zap.Logger
	others    []ActivityChecker
}

// flowData is the payload carried in the conversation state.
type flowData struct {
	Username string           `json:"username"`
	GameName string           `json:"gameName,omitempty"`
	TagLine  string           `json:"tagLine,omitempty"`
	Account  *profile.LoLData `json:"account,omitempty"`
}

// Invocation is a registration command as received from chat.
type Invocation struct {
	UserID    string
	Username  string
	ChannelID string
	// Direct is set when the command was sent in a direct message.
	Direct bool
}

func New(cfg Config) *Flow {
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.Nop{}
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	f := &Flow{
		engine:    cfg.Engine,
		messenger: cfg.Messenger,
		throttle:  cfg.Throttle,
		builder:   cfg.Builder,
		rows:      cfg.Rows,
		documents: cfg.Documents,
		icons:     cfg.Icons,
		metrics:   cfg.Metrics,
		clock:     cfg.Clock,
		log:       cfg.Logger.Named("registration"),
	}
	f.engine.OnExpire(f.expire)
	return f
}

// Exclusive makes Begin refuse to start while any of the given flows is open
// for the user.
func (f *Flow) Exclusive(others ...ActivityChecker) {
	f.others = append(f.others, others...)
	for _, o := range others {
		f.engine.Exclusive(o)
	}
}

func (f *Flow) Engine() *conversation.Engine {
	return f.engine
}

func (f *Flow) Begin(ctx context.Context, inv Invocation) error {
	mention := "<@" + inv.UserID + ">"
	log := f.log.With(zap.String("userID", inv.UserID))

	busy, err := f.busy(ctx, inv.UserID)
	if err != nil {
		return err
	}
	if busy {
		f.say(ctx, inv.ChannelID, msgAlreadyActive, map[string]interface{}{"User": mention})
		return nil
	}

	susp, err := f.throttle.CheckSuspension(ctx, inv.UserID)
	if err != nil {
		return err
	}
	if susp.Suspended {
		f.say(ctx, inv.ChannelID, suspensionMessage(susp.Cause), map[string]interface{}{"Until": susp.Until.Unix()})
		return nil
	}

	existing, err := f.rows.FindRowByUserID(ctx, inv.UserID)
	if err != nil {
		return err
	}
	if existing != nil {
		f.say(ctx, inv.ChannelID, msgAlreadyRegistered, map[string]interface{}{"User": mention, "RiotID": existing.RiotID})
		return nil
	}

	dm := inv.ChannelID
	if !inv.Direct {
		dm, err = f.messenger.DirectChannel(ctx, inv.UserID)
		if err != nil {
			log.Info("direct channel unavailable", zap.Error(err))
			f.say(ctx, inv.ChannelID, msgDirectFailed, map[string]interface{}{"User": mention})
			return nil
		}
	}

	_, err = f.engine.Start(ctx, inv.UserID, dm, StageRiotID, flowData{Username: inv.Username})
	if errors.Is(err, conversation.ErrAlreadyActive) {
		f.say(ctx, inv.ChannelID, msgAlreadyActive, map[string]interface{}{"User": mention})
		return nil
	}
	if err != nil {
		return err
	}

	if _, err := f.send(ctx, dm, msgWelcome, nil); err != nil {
		log.Info("welcome message not delivered", zap.Error(err))
		if err := f.engine.Discard(ctx, inv.UserID); err != nil {
			log.Error("failed to discard registration", zap.Error(err))
		}
		if !inv.Direct {
			f.say(ctx, inv.ChannelID, msgDirectFailed, map[string]interface{}{"User": mention})
		}
		return nil
	}
	if !inv.Direct {
		f.say(ctx, inv.ChannelID, msgInvited, map[string]interface{}{"User": mention})
	}
	f.metrics.RecordEvent(ctx, metrics.RegistrationStarted)
	return nil
}

func (f *Flow) busy(ctx context.Context, userID string) (bool, error) {
	for _, c := range append([]ActivityChecker{f.engine}, f.others...) {
		active, err := c.Active(ctx, userID)
		if err != nil || active {
			return active, err
		}
	}
	return false, nil
}

// HandleInput feeds a direct message into the user's registration. It reports
// false when the user has none open.
func (f *Flow) HandleInput(ctx context.Context, userID, content string) (bool, error) {
	return f.engine.Handle(ctx, userID, func(st *conversation.State) (conversation.Step, error) {
		if conversation.IsCancel(content) {
			return f.cancel(ctx, st)
		}

		var data flowData
		if err := st.Decode(&data); err != nil {
			return conversation.Stay, err
		}
		switch st.Stage {
		case StageRiotID:
			return f.riotID(ctx, st, &data, content)
		case StageRegion:
			return f.region(ctx, st, &data, content)
		}
		// Text while the confirmation card is up is ignored; only its buttons advance.
		return conversation.Stay, nil
	})
}

func (f *Flow) cancel(ctx context.Context, st *conversation.State) (conversation.Step, error) {
	rec, err := f.throttle.RecordCancellation(ctx, st.UserID)
	if err != nil {
		f.log.Error("failed to record cancellation", zap.String("userID", st.UserID), zap.Error(err))
	}
	if rec != nil && rec.SuspendedUntil != nil {
		f.say(ctx, st.ChannelID, msgSuspendedCancellations, map[string]interface{}{"Until": rec.SuspendedUntil.Unix()})
		f.metrics.RecordEvent(ctx, metrics.RegistrationSuspended)
	} else {
		f.say(ctx, st.ChannelID, msgCancelled, nil)
	}
	f.metrics.RecordEvent(ctx, metrics.RegistrationCancelled)
	return conversation.Finish, nil
}

func (f *Flow) riotID(ctx context.Context, st *conversation.State, data *flowData, content string) (conversation.Step, error) {
	gameName, tagLine, err := riot.ParseRiotID(content)
	if errors.Is(err, riot.ErrMissingTag) {
		f.say(ctx, st.ChannelID, msgMissingTag, nil)
		return conversation.Stay, nil
	}
	if err != nil {
		f.say(ctx, st.ChannelID, msgMalformedID, nil)
		return conversation.Stay, nil
	}

	data.GameName, data.TagLine = gameName, tagLine
	if err := st.Encode(data); err != nil {
		return conversation.Stay, err
	}
	st.Stage = StageRegion
	f.say(ctx, st.ChannelID, msgAskRegion, map[string]interface{}{"RiotID": gameName + "#" + tagLine})
	return conversation.Stay, nil
}

func (f *Flow) region(ctx context.Context, st *conversation.State, data *flowData, content string) (conversation.Step, error) {
	region, err := riot.ParseRegion(content)
	if err != nil {
		f.say(ctx, st.ChannelID, msgInvalidRegion, nil)
		return conversation.Stay, nil
	}

	id := riot.Identity{GameName: data.GameName, TagLine: data.TagLine, Region: region}
	p, err := f.builder.Build(ctx, id)
	if errors.Is(err, riot.ErrNotFound) {
		data.GameName, data.TagLine = "", ""
		if err := st.Encode(data); err != nil {
			return conversation.Stay, err
		}
		st.Stage = StageRiotID
		f.say(ctx, st.ChannelID, msgAccountNotFound, nil)
		return conversation.Stay, nil
	}
	if err != nil {
		f.log.Warn("profile build failed",
			zap.String("userID", st.UserID),
			zap.String("riotID", id.RiotID()),
			zap.Error(err),
		)
		f.say(ctx, st.ChannelID, msgSummonerError, nil)
		return conversation.Stay, nil
	}

	ref, err := f.messenger.Send(ctx, st.ChannelID, &discordgo.MessageSend{
		Embed:      card.RegistrationEmbed(p, f.icons.ProfileIconURL(ctx, p.IconID)),
		Components: card.ConfirmationButtons(),
	})
	if err != nil {
		return conversation.Stay, err
	}

	data.Account = profile.LoLDataFromProfile(p, f.clock.Now())
	if err := st.Encode(data); err != nil {
		return conversation.Stay, err
	}
	st.Stage = StageConfirmation
	st.Pending = ref
	return conversation.Stay, nil
}

// HandleButton resolves a click on the confirmation card.
func (f *Flow) HandleButton(ctx context.Context, userID, messageID, customID string) error {
	return f.engine.Button(ctx, userID, messageID, func(st *conversation.State) (conversation.Step, error) {
		if st.Stage != StageConfirmation {
			return conversation.Stay, conversation.ErrStaleInteraction
		}
		var data flowData
		if err := st.Decode(&data); err != nil {
			return conversation.Stay, err
		}

		switch customID {
		case card.ConfirmAccountID:
			return f.confirm(ctx, st, &data)
		case card.RetryAccountID:
			st.Stage = StageRiotID
			st.Pending = nil
			if err := st.Encode(flowData{Username: data.Username}); err != nil {
				return conversation.Stay, err
			}
			f.say(ctx, st.ChannelID, msgRestart, nil)
			return conversation.Stay, nil
		}
		return conversation.Stay, conversation.ErrStaleInteraction
	})
}

func (f *Flow) confirm(ctx context.Context, st *conversation.State, data *flowData) (conversation.Step, error) {
	acc := data.Account
	if acc == nil {
		return conversation.Stay, conversation.ErrStaleInteraction
	}
	log := f.log.With(zap.String("userID", st.UserID), zap.String("flowID", st.FlowID))

	if err := f.store(ctx, st.UserID, data); err != nil {
		log.Error("failed to store registration", zap.Error(err))
		f.say(ctx, st.ChannelID, msgSaveFailed, nil)
		return conversation.Finish, nil
	}

	log.Info("registration completed", zap.String("riotID", acc.RiotID))
	f.say(ctx, st.ChannelID, msgCompleted, map[string]interface{}{"RiotID": acc.RiotID, "Region": acc.Region})
	f.metrics.RecordEvent(ctx, metrics.RegistrationCompleted)
	return conversation.Finish, nil
}

func (f *Flow) store(ctx context.Context, userID string, data *flowData) error {
	acc := data.Account
	seq, err := f.rows.NextSequenceNumber(ctx)
	if err != nil {
		return err
	}
	_, err = f.rows.AppendRow(ctx, &storage.Registration{
		SequenceNumber: seq,
		DiscordID:      userID,
		Username:       data.Username,
		RiotID:         acc.RiotID,
		Region:         string(acc.Region),
		SoloQ:          card.CellText(acc.Standings.SoloQ),
		Flex:           card.CellText(acc.Standings.Flex),
		TFT:            card.CellText(acc.Standings.TFT),
		RegisteredAt:   f.clock.Now().In(registryZone).Format("02/01/2006"),
		PUUID:          acc.PUUID,
	})
	if err != nil {
		return err
	}
	return f.documents.SaveLoL(ctx, userID, acc)
}

func (f *Flow) expire(ctx context.Context, st *conversation.State) {
	rec, err := f.throttle.RecordTimeout(ctx, st.UserID)
	if err != nil {
		f.log.Error("failed to record timeout", zap.String("userID", st.UserID), zap.Error(err))
	}
	if rec != nil && rec.SuspendedUntil != nil {
		f.say(ctx, st.ChannelID, msgSuspendedTimeouts, map[string]interface{}{"Until": rec.SuspendedUntil.Unix()})
		f.metrics.RecordEvent(ctx, metrics.RegistrationSuspended)
	} else {
		f.say(ctx, st.ChannelID, msgTimedOut, nil)
	}
	f.metrics.RecordEvent(ctx, metrics.RegistrationTimedOut)
}

// ButtonErrorMessage is the reply for a click that could not be applied.
func ButtonErrorMessage(err error) string {
	if errors.Is(err, conversation.ErrNoConversation) {
		return locale.LocalizeMessage(msgNoConversation, nil)
	}
	return locale.LocalizeMessage(msgStaleButton, nil)
}

func suspensionMessage(cause throttle.Cause) *i18n.Message {
	if cause == throttle.CauseTimeout {
		return msgSuspendedTimeouts
	}
	return msgSuspendedCancellations
}

func (f *Flow) send(ctx context.Context, channelID string, msg *i18n.Message, data map[string]interface{}) (*conversation.MessageRef, error) {
	return f.messenger.Send(ctx, channelID, &discordgo.MessageSend{Content: locale.LocalizeMessage(msg, data)})
}

// say is send for messages whose delivery failure changes nothing.
func (f *Flow) say(ctx context.Context, channelID string, msg *i18n.Message, data map[string]interface{}) {
	if _, err := f.send(ctx, channelID, msg, data); err != nil {
		f.log.Warn("message not delivered",
			zap.String("channelID", channelID),
			zap.String("message", msg.ID),
			zap.Error(err),
		)
	}
}
