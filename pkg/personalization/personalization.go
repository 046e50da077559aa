// Package personalization lets registered users edit their profile card from a
// direct-message menu.
package personalization

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/aurorabot/aurora/pkg/card"
	"github.com/aurorabot/aurora/pkg/conversation"
	"github.com/aurorabot/aurora/pkg/ddragon"
	"github.com/aurorabot/aurora/pkg/locale"
	"github.com/aurorabot/aurora/pkg/metrics"
	"github.com/aurorabot/aurora/pkg/profile"
	"github.com/aurorabot/aurora/pkg/storage"
	"github.com/bwmarrin/discordgo"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

const (
	StageMenu         = "menu"
	StageColor        = "esperando_color"
	StageColorConfirm = "confirmando_color"
	StageBio          = "esperando_biografia"
	StageChampion     = "esperando_campeon"
	StageAvatar       = "esperando_avatar"
)

const (
	MaxBioLength = 300
	ColorSwatch  = "🎨"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

var menuTokens = []string{"1", "2", "3", "4", "5", "6", "#1", "#2", "#3", "#4", "#5", "#6"}

type Profiles interface {
	Lookup(ctx context.Context, t profile.Target) (*storage.Registration, error)
	Load(ctx context.Context, reg *storage.Registration) (*profile.FullProfile, error)
	UpdatePersonalization(ctx context.Context, userID string, fn func(*profile.Personalization)) error
	SetColorCell(ctx context.Context, userID, color string) error
}

type Champions interface {
	Lookup(ctx context.Context, name string) (ddragon.Champion, bool, error)
}

type ActivityChecker interface {
	Active(ctx context.Context, userID string) (bool, error)
}

type Config struct {
	Engine    *conversation.Engine
	Messenger conversation.Messenger
	Profiles  Profiles
	Champions Champions
	Metrics   metrics.Recorder
	Logger    *zap.Logger
}

type Flow struct {
	engine    *conversation.Engine
	messenger conversation.Messenger
	profiles  Profiles
	champions Champions
	metrics   metrics.Recorder
	log       *zap.Logger
	others    []ActivityChecker
}

type flowData struct {
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	TempColor string `json:"colorTemporal,omitempty"`
}

type Invocation struct {
	UserID    string
	Username  string
	AvatarURL string
	ChannelID string
	Direct    bool
}

// Input is one direct message from the user.
type Input struct {
	Content        string
	AttachmentURLs []string
}

func New(cfg Config) *Flow {
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.Nop{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	f := &Flow{
		engine:    cfg.Engine,
		messenger: cfg.Messenger,
		profiles:  cfg.Profiles,
		champions: cfg.Champions,
		metrics:   cfg.Metrics,
		log:       cfg.Logger.Named("personalization"),
	}
	f.engine.OnExpire(f.expire)
	return f
}

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
	mention := map[string]interface{}{"User": "<@" + inv.UserID + ">"}
	log := f.log.With(zap.String("userID", inv.UserID))

	for _, c := range append([]ActivityChecker{f.engine}, f.others...) {
		active, err := c.Active(ctx, inv.UserID)
		if err != nil {
			return err
		}
		if active {
			f.say(ctx, inv.ChannelID, msgAlreadyActive, mention)
			return nil
		}
	}

	reg, err := f.profiles.Lookup(ctx, profile.Target{Kind: profile.TargetSelf, UserID: inv.UserID})
	if err != nil {
		return err
	}
	if reg == nil {
		f.say(ctx, inv.ChannelID, msgNotRegistered, mention)
		return nil
	}

	dm := inv.ChannelID
	if !inv.Direct {
		dm, err = f.messenger.DirectChannel(ctx, inv.UserID)
		if err != nil {
			log.Info("direct channel unavailable", zap.Error(err))
			f.say(ctx, inv.ChannelID, msgDirectFailed, mention)
			return nil
		}
	}

	data := flowData{Username: inv.Username, AvatarURL: inv.AvatarURL}
	_, err = f.engine.Start(ctx, inv.UserID, dm, StageMenu, data)
	if errors.Is(err, conversation.ErrAlreadyActive) {
		f.say(ctx, inv.ChannelID, msgAlreadyActive, mention)
		return nil
	}
	if err != nil {
		return err
	}

	if _, err := f.send(ctx, dm, msgMenu, nil); err != nil {
		log.Info("menu not delivered", zap.Error(err))
		if err := f.engine.Discard(ctx, inv.UserID); err != nil {
			log.Error("failed to discard personalization", zap.Error(err))
		}
		if !inv.Direct {
			f.say(ctx, inv.ChannelID, msgDirectFailed, mention)
		}
		return nil
	}
	if !inv.Direct {
		f.say(ctx, inv.ChannelID, msgInvited, mention)
	}
	f.metrics.RecordEvent(ctx, metrics.PersonalizationStarted)
	return nil
}

// HandleInput reports false when the user has no personalization open.
func (f *Flow) HandleInput(ctx context.Context, userID string, in Input) (bool, error) {
	return f.engine.Handle(ctx, userID, func(st *conversation.State) (conversation.Step, error) {
		if conversation.IsCancel(in.Content) {
			f.say(ctx, st.ChannelID, msgCancelled, nil)
			f.metrics.RecordEvent(ctx, metrics.PersonalizationCancelled)
			return conversation.Finish, nil
		}

		var data flowData
		if err := st.Decode(&data); err != nil {
			return conversation.Stay, err
		}
		content := strings.TrimSpace(in.Content)

		switch st.Stage {
		case StageMenu:
			return f.menu(ctx, st, content)
		case StageColor:
			return f.color(ctx, st, &data, content)
		case StageBio:
			return f.bio(ctx, st, in.Content)
		case StageChampion:
			return f.champion(ctx, st, content)
		case StageAvatar:
			return f.avatar(ctx, st, content, in.AttachmentURLs)
		}
		return conversation.Stay, nil
	})
}

func (f *Flow) menu(ctx context.Context, st *conversation.State, option string) (conversation.Step, error) {
	if !slices.Contains(menuTokens, option) {
		f.say(ctx, st.ChannelID, msgInvalidOption, nil)
		return conversation.Stay, nil
	}

	switch strings.TrimPrefix(option, "#") {
	case "1":
		st.Stage = StageBio
		f.say(ctx, st.ChannelID, msgAskBio, map[string]interface{}{"Max": MaxBioLength})
	case "2":
		st.Stage = StageColor
		f.say(ctx, st.ChannelID, msgAskColor, nil)
	case "3":
		st.Stage = StageChampion
		f.say(ctx, st.ChannelID, msgAskChampion, nil)
	case "4":
		f.say(ctx, st.ChannelID, msgSocialSoon, nil)
		return conversation.Finish, nil
	case "5":
		st.Stage = StageAvatar
		f.say(ctx, st.ChannelID, msgAskAvatar, nil)
	case "6":
		f.say(ctx, st.ChannelID, msgBannerSoon, nil)
		return conversation.Finish, nil
	}
	return conversation.Stay, nil
}

func (f *Flow) color(ctx context.Context, st *conversation.State, data *flowData, input string) (conversation.Step, error) {
	if !colorPattern.MatchString(input) {
		f.say(ctx, st.ChannelID, msgInvalidColor, nil)
		return conversation.Stay, nil
	}
	color := strings.ToUpper(input)
	value, _ := profile.ParseColor(color)

	reg, err := f.profiles.Lookup(ctx, profile.Target{Kind: profile.TargetSelf, UserID: st.UserID})
	if err == nil && reg == nil {
		err = storage.ErrRowNotFound
	}
	var fp *profile.FullProfile
	if err == nil {
		fp, err = f.profiles.Load(ctx, reg)
	}
	if err != nil {
		f.log.Warn("failed to load profile for preview", zap.String("userID", st.UserID), zap.Error(err))
		f.say(ctx, st.ChannelID, msgProfileLoadFailed, nil)
		return conversation.Finish, nil
	}

	preview := *fp
	preview.DiscordUsername = data.Username
	preview.DiscordAvatar = data.AvatarURL
	ref, err := f.messenger.Send(ctx, st.ChannelID, &discordgo.MessageSend{
		Content:    locale.LocalizeMessage(msgPreview, map[string]interface{}{"Swatch": ColorSwatch, "Color": color}),
		Embed:      card.ProfileEmbed(&preview, value),
		Components: card.ColorButtons(),
	})
	if err != nil {
		f.log.Warn("failed to send color preview", zap.String("userID", st.UserID), zap.Error(err))
		f.say(ctx, st.ChannelID, msgPreviewFailed, nil)
		return conversation.Finish, nil
	}

	data.TempColor = color
	if err := st.Encode(data); err != nil {
		return conversation.Stay, err
	}
	st.Stage = StageColorConfirm
	st.Pending = ref
	return conversation.Stay, nil
}

func (f *Flow) bio(ctx context.Context, st *conversation.State, input string) (conversation.Step, error) {
	bio := strings.TrimSpace(input)
	if bio == "" || utf8.RuneCountInString(bio) > MaxBioLength {
		f.say(ctx, st.ChannelID, msgInvalidBio, map[string]interface{}{"Max": MaxBioLength})
		return conversation.Stay, nil
	}
	return f.save(ctx, st, msgBioSaved, nil, func(p *profile.Personalization) {
		p.Bio = bio
	})
}

func (f *Flow) champion(ctx context.Context, st *conversation.State, input string) (conversation.Step, error) {
	champ, ok, err := f.champions.Lookup(ctx, input)
	if err != nil {
		f.log.Warn("champion catalog unavailable", zap.Error(err))
	}
	if !ok {
		f.say(ctx, st.ChannelID, msgUnknownChampion, nil)
		return conversation.Stay, nil
	}
	return f.save(ctx, st, msgChampionSaved, map[string]interface{}{"Champion": champ.Name}, func(p *profile.Personalization) {
		p.FavoriteChampion = champ.Name
	})
}

func (f *Flow) avatar(ctx context.Context, st *conversation.State, input string, attachments []string) (conversation.Step, error) {
	link := input
	if len(attachments) > 0 {
		link = attachments[0]
	}
	if !isImageLink(link) {
		f.say(ctx, st.ChannelID, msgInvalidAvatar, nil)
		return conversation.Stay, nil
	}
	return f.save(ctx, st, msgAvatarSaved, nil, func(p *profile.Personalization) {
		p.ThumbnailURL = link
	})
}

func isImageLink(s string) bool {
	if !strings.HasPrefix(s, "https://") {
		return false
	}
	u, err := url.ParseRequestURI(s)
	return err == nil && u.Host != ""
}

func (f *Flow) save(ctx context.Context, st *conversation.State, done *i18n.Message, data map[string]interface{}, fn func(*profile.Personalization)) (conversation.Step, error) {
	if err := f.profiles.UpdatePersonalization(ctx, st.UserID, fn); err != nil {
		f.log.Error("failed to save personalization",
			zap.String("userID", st.UserID),
			zap.String("stage", st.Stage),
			zap.Error(err),
		)
		f.say(ctx, st.ChannelID, msgSaveFailed, nil)
		return conversation.Finish, nil
	}
	f.say(ctx, st.ChannelID, done, data)
	f.metrics.RecordEvent(ctx, metrics.PersonalizationCompleted)
	return conversation.Finish, nil
}

// HandleButton resolves a click on the color preview.
func (f *Flow) HandleButton(ctx context.Context, userID, messageID, customID string) error {
	return f.engine.Button(ctx, userID, messageID, func(st *conversation.State) (conversation.Step, error) {
		if st.Stage != StageColorConfirm {
			return conversation.Stay, conversation.ErrStaleInteraction
		}
		var data flowData
		if err := st.Decode(&data); err != nil {
			return conversation.Stay, err
		}

		switch customID {
		case card.SaveColorID:
			return f.saveColor(ctx, st, data.TempColor)
		case card.RetryColorID:
			data.TempColor = ""
			if err := st.Encode(data); err != nil {
				return conversation.Stay, err
			}
			st.Stage = StageColor
			st.Pending = nil
			f.say(ctx, st.ChannelID, msgAskColor, nil)
			return conversation.Stay, nil
		case card.CancelColorID:
			f.say(ctx, st.ChannelID, msgCancelled, nil)
			f.metrics.RecordEvent(ctx, metrics.PersonalizationCancelled)
			return conversation.Finish, nil
		}
		return conversation.Stay, conversation.ErrStaleInteraction
	})
}

func (f *Flow) saveColor(ctx context.Context, st *conversation.State, color string) (conversation.Step, error) {
	if !colorPattern.MatchString(color) {
		return conversation.Stay, conversation.ErrStaleInteraction
	}
	f.say(ctx, st.ChannelID, msgSavingColor, nil)

	err := f.profiles.UpdatePersonalization(ctx, st.UserID, func(p *profile.Personalization) {
		p.CustomColor = color
	})
	if err != nil {
		f.log.Error("failed to save color", zap.String("userID", st.UserID), zap.Error(err))
		f.say(ctx, st.ChannelID, msgColorSaveFailed, nil)
		return conversation.Finish, nil
	}
	if err := f.profiles.SetColorCell(ctx, st.UserID, color); err != nil {
		f.log.Warn("failed to mirror color to the registration row", zap.String("userID", st.UserID), zap.Error(err))
	}

	f.say(ctx, st.ChannelID, msgColorSaved, map[string]interface{}{"Swatch": ColorSwatch, "Color": color})
	f.metrics.RecordEvent(ctx, metrics.PersonalizationCompleted)
	return conversation.Finish, nil
}

func (f *Flow) expire(ctx context.Context, st *conversation.State) {
	f.say(ctx, st.ChannelID, msgTimedOut, nil)
	f.metrics.RecordEvent(ctx, metrics.PersonalizationTimedOut)
}

// ButtonErrorMessage is the reply for a click that could not be applied.
func ButtonErrorMessage(err error) string {
	if errors.Is(err, conversation.ErrNoConversation) {
		return locale.LocalizeMessage(msgExpired, nil)
	}
	return locale.LocalizeMessage(msgButtonFailed, nil)
}

func (f *Flow) send(ctx context.Context, channelID string, msg *i18n.Message, data map[string]interface{}) (*conversation.MessageRef, error) {
	return f.messenger.Send(ctx, channelID, &discordgo.MessageSend{Content: locale.LocalizeMessage(msg, data)})
}

func (f *Flow) say(ctx context.Context, channelID string, msg *i18n.Message, data map[string]interface{}) {
	if _, err := f.send(ctx, channelID, msg, data); err != nil {
		f.log.Warn("message not delivered",
			zap.String("channelID", channelID),
			zap.String("message", msg.ID),
			zap.Error(err),
		)
	}
}
