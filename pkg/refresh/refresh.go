// Package refresh keeps stored LoL data in step with the Riot API for every
// registered user.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aurorabot/aurora/pkg/aggregator"
	"github.com/aurorabot/aurora/pkg/card"
	"github.com/aurorabot/aurora/pkg/profile"
	"github.com/aurorabot/aurora/pkg/riot"
	"github.com/aurorabot/aurora/pkg/storage"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

const (
	DefaultInterval = time.Hour
	DefaultPacing   = 2 * time.Second
)

var ErrIncompleteRow = errors.New("refresh: registration row has no puuid or region")

type Rows interface {
	FindRowByUserID(ctx context.Context, discordID string) (*storage.Registration, error)
	AllRows(ctx context.Context) ([]*storage.Registration, error)
	UpdateCell(ctx context.Context, rowIndex int64, column storage.Column, value string) error
}

type Aggregator interface {
	Refresh(ctx context.Context, id riot.Identity, handle riot.Handle) *aggregator.Snapshot
	BuildFromHandle(ctx context.Context, id riot.Identity, handle riot.Handle) (*aggregator.PlayerProfile, error)
}

type Profiles interface {
	CorrectDrift(ctx context.Context, reg *storage.Registration) bool
	Invalidate(userID string)
}

type Documents interface {
	SaveLoL(ctx context.Context, userID string, data *profile.LoLData) error
	UpdateLoL(ctx context.Context, userID string, fn func(*profile.LoLData)) error
	UpdatePersonalization(ctx context.Context, userID string, fn func(*profile.Personalization)) error
}

type Config struct {
	Rows       Rows
	Aggregator Aggregator
	Profiles   Profiles
	Documents  Documents
	Clock      clockwork.Clock
	Interval   time.Duration
	Pacing     time.Duration
	Logger     *zap.Logger
}

type Refresher struct {
	rows     Rows
	agg      Aggregator
	profiles Profiles
	docs     Documents
	clock    clockwork.Clock
	interval time.Duration
	pacing   time.Duration
	log      *zap.Logger
}

// Result counts the users handled by one pass.
type Result struct {
	Succeeded int
	Failed    int
}

func (r Result) Total() int {
	return r.Succeeded + r.Failed
}

func New(cfg Config) *Refresher {
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Pacing < 0 {
		cfg.Pacing = 0
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Refresher{
		rows:     cfg.Rows,
		agg:      cfg.Aggregator,
		profiles: cfg.Profiles,
		docs:     cfg.Documents,
		clock:    cfg.Clock,
		interval: cfg.Interval,
		pacing:   cfg.Pacing,
		log:      cfg.Logger.Named("refresh"),
	}
}

func identityOf(reg *storage.Registration) (riot.Identity, riot.Handle, error) {
	if reg.PUUID == "" || reg.Region == "" {
		return riot.Identity{}, "", ErrIncompleteRow
	}
	region, err := riot.ParseRegion(reg.Region)
	if err != nil {
		return riot.Identity{}, "", err
	}
	gameName, tagLine, err := riot.ParseRiotID(reg.RiotID)
	if err != nil {
		return riot.Identity{}, "", err
	}
	return riot.Identity{GameName: gameName, TagLine: tagLine, Region: region}, riot.Handle(reg.PUUID), nil
}

// RefreshUser re-reads one user's standings and roles. Branches that failed
// upstream keep their stored values.
func (r *Refresher) RefreshUser(ctx context.Context, userID string) error {
	reg, err := r.rows.FindRowByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if reg == nil {
		return storage.ErrRowNotFound
	}
	return r.refresh(ctx, reg)
}

func (r *Refresher) refresh(ctx context.Context, reg *storage.Registration) error {
	log := r.log.With(zap.String("userID", reg.DiscordID))

	r.profiles.CorrectDrift(ctx, reg)
	id, handle, err := identityOf(reg)
	if err != nil {
		return err
	}

	snap := r.agg.Refresh(ctx, id, handle)
	var before *riot.Standing
	err = r.docs.UpdateLoL(ctx, reg.DiscordID, func(d *profile.LoLData) {
		before = d.Standings.SoloQ
		d.RiotID = id.RiotID()
		d.Region = id.Region
		d.PUUID = string(handle)
		if !snap.IsDegraded(aggregator.BranchStandings) {
			d.Standings.SoloQ = snap.Standings.SoloQ
			d.Standings.Flex = snap.Standings.Flex
		}
		if !snap.IsDegraded(aggregator.BranchTFT) {
			d.Standings.TFT = snap.Standings.TFT
		}
		if !snap.IsDegraded(aggregator.BranchRoles) {
			d.Roles = snap.Roles
		}
		d.UpdatedAt = r.clock.Now()
	})
	if err != nil {
		return fmt.Errorf("update lol document: %w", err)
	}
	r.profiles.Invalidate(reg.DiscordID)

	cells := map[storage.Column]*riot.Standing{}
	if !snap.IsDegraded(aggregator.BranchStandings) {
		cells[storage.ColumnSoloQ] = snap.Standings.SoloQ
		cells[storage.ColumnFlex] = snap.Standings.Flex
	}
	if !snap.IsDegraded(aggregator.BranchTFT) {
		cells[storage.ColumnTFT] = snap.Standings.TFT
	}
	for col, s := range cells {
		if err := r.rows.UpdateCell(ctx, reg.RowIndex, col, card.CellText(s)); err != nil {
			log.Warn("failed to update rank cell", zap.String("column", string(col)), zap.Error(err))
		}
	}

	if after := snap.Standings.SoloQ; !snap.IsDegraded(aggregator.BranchStandings) && card.CellText(before) != card.CellText(after) {
		log.Info("soloq changed",
			zap.String("from", card.CellText(before)),
			zap.String("to", card.CellText(after)),
		)
	}
	if len(snap.Degraded) > 0 {
		log.Warn("partial refresh", zap.Strings("degraded", snap.Degraded))
	}
	return nil
}

// RefreshAll runs one pass over every registration row.
func (r *Refresher) RefreshAll(ctx context.Context) (Result, error) {
	return r.each(ctx, "refresh", r.refresh)
}

// MigrateAll rebuilds every LoL document from scratch and makes sure each
// user has a personalization document.
func (r *Refresher) MigrateAll(ctx context.Context) (Result, error) {
	return r.each(ctx, "migrate", r.migrate)
}

func (r *Refresher) migrate(ctx context.Context, reg *storage.Registration) error {
	id, handle, err := identityOf(reg)
	if err != nil {
		return err
	}
	p, err := r.agg.BuildFromHandle(ctx, id, handle)
	if err != nil {
		return err
	}
	if err := r.docs.SaveLoL(ctx, reg.DiscordID, profile.LoLDataFromProfile(p, r.clock.Now())); err != nil {
		return err
	}
	if err := r.docs.UpdatePersonalization(ctx, reg.DiscordID, func(*profile.Personalization) {}); err != nil {
		return err
	}
	r.profiles.Invalidate(reg.DiscordID)
	return nil
}

func (r *Refresher) each(ctx context.Context, op string, fn func(context.Context, *storage.Registration) error) (Result, error) {
	var res Result
	rows, err := r.rows.AllRows(ctx)
	if err != nil {
		return res, err
	}
	start := r.clock.Now()
	r.log.Info("pass started", zap.String("op", op), zap.Int("users", len(rows)))

	for i, reg := range rows {
		if i > 0 && r.pacing > 0 {
			select {
			case <-ctx.Done():
				return res, ctx.Err()
			case <-r.clock.After(r.pacing):
			}
		}
		if err := fn(ctx, reg); err != nil {
			res.Failed++
			r.log.Warn("user failed", zap.String("op", op), zap.String("userID", reg.DiscordID), zap.Error(err))
			continue
		}
		res.Succeeded++
	}

	r.log.Info("pass finished",
		zap.String("op", op),
		zap.Int("succeeded", res.Succeeded),
		zap.Int("failed", res.Failed),
		zap.Duration("took", r.clock.Since(start)),
	)
	return res, nil
}

// Run refreshes everyone now and then once per interval until ctx is done.
func (r *Refresher) Run(ctx context.Context) error {
	ticker := r.clock.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		if _, err := r.RefreshAll(ctx); err != nil && ctx.Err() == nil {
			r.log.Error("refresh pass failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.Chan():
		}
	}
}
