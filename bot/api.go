package bot

import (
	"context"
	"net/http"
	"time"

	"github.com/aurorabot/aurora/pkg/profile"
	"github.com/aurorabot/aurora/pkg/redis"
	"github.com/aurorabot/aurora/pkg/rediskey"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BotInfo struct {
	Version       string `json:"version"`
	Commit        string `json:"commit"`
	Registrations int64  `json:"registrations"`
	Uptime        string `json:"uptime"`
}

// ProfileView is the admin JSON rendition of a profile card.
type ProfileView struct {
	SequenceNumber  string                  `json:"sequenceNumber"`
	DiscordID       string                  `json:"discordId"`
	Username        string                  `json:"username"`
	RiotID          string                  `json:"riotId"`
	Region          string                  `json:"region"`
	RegisteredAt    string                  `json:"registeredAt"`
	SoloQ           string                  `json:"soloq"`
	Flex            string                  `json:"flex"`
	TFT             string                  `json:"tft"`
	Color           int                     `json:"color"`
	LoL             profile.LoLData         `json:"lol"`
	Personalization profile.Personalization `json:"personalizacion"`
}

type HttpError struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
}

// RegistrationTotals caches the registration count; the Redis driver
// implements it.
type RegistrationTotals interface {
	GetTotalRegistrations(ctx context.Context) int64
	RefreshTotalRegistrations(ctx context.Context, rows redis.RowCounter) int64
}

// APIRouter builds the admin API. Profile routes need basic auth.
func (bot *Bot) APIRouter(adminUser, adminPass string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	botGroup := r.Group("/bot")
	botGroup.GET("/info", handleGetInfo(bot))
	botGroup.GET("/commands", handleGetCommands())

	profileGroup := r.Group("/profile", gin.BasicAuth(gin.Accounts{
		adminUser: adminPass,
	}))
	profileGroup.GET("/:id", handleGetProfile(bot))
	return r
}

func (bot *Bot) StartAPIServer(port, adminUser, adminPass string) {
	bot.log.Info("starting api server", zap.String("port", port))
	if err := bot.APIRouter(adminUser, adminPass).Run(":" + port); err != nil {
		bot.log.Error("api server stopped", zap.Error(err))
	}
}

func (bot *Bot) getInfo(ctx context.Context) BotInfo {
	return BotInfo{
		Version:       bot.version,
		Commit:        bot.commit,
		Registrations: bot.registrationCount(ctx),
		Uptime:        time.Since(bot.startedAt).Round(time.Second).String(),
	}
}

func (bot *Bot) registrationCount(ctx context.Context) int64 {
	if bot.rows == nil {
		return rediskey.NotFound
	}
	if bot.totals != nil {
		if n := bot.totals.GetTotalRegistrations(ctx); n != rediskey.NotFound {
			return n
		}
		return bot.totals.RefreshTotalRegistrations(ctx, bot.rows)
	}
	n, err := bot.rows.CountRows(ctx)
	if err != nil {
		bot.log.Warn("failed to count registrations", zap.Error(err))
		return rediskey.NotFound
	}
	return n
}

func handleGetInfo(bot *Bot) func(c *gin.Context) {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, bot.getInfo(c.Request.Context()))
	}
}

func handleGetCommands() func(c *gin.Context) {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, Commands)
	}
}

// handleGetProfile accepts a Discord id or a registration number like #7.
func handleGetProfile(bot *Bot) func(c *gin.Context) {
	return func(c *gin.Context) {
		target := profile.ParseTarget(c.Param("id"), "")
		if target.Kind == profile.TargetSelf {
			c.JSON(http.StatusBadRequest, HttpError{
				StatusCode: http.StatusBadRequest,
				Error:      "expected a discord id or a registration number",
			})
			return
		}
		ctx := c.Request.Context()
		reg, err := bot.profiles.Lookup(ctx, target)
		if err != nil {
			bot.log.Error("api profile lookup failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, nil)
			return
		}
		if reg == nil {
			c.JSON(http.StatusNotFound, HttpError{
				StatusCode: http.StatusNotFound,
				Error:      "no registration found",
			})
			return
		}
		fp, err := bot.profiles.Load(ctx, reg)
		if err != nil {
			bot.log.Error("api profile load failed", zap.String("target", reg.DiscordID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, nil)
			return
		}
		c.JSON(http.StatusOK, ProfileView{
			SequenceNumber:  fp.Registration.SequenceNumber,
			DiscordID:       fp.Registration.DiscordID,
			Username:        fp.DiscordUsername,
			RiotID:          fp.Registration.RiotID,
			Region:          fp.Registration.Region,
			RegisteredAt:    fp.Registration.RegisteredAt,
			SoloQ:           fp.Registration.SoloQ,
			Flex:            fp.Registration.Flex,
			TFT:             fp.Registration.TFT,
			Color:           fp.Color,
			LoL:             fp.LoL,
			Personalization: fp.Personalization,
		})
	}
}
