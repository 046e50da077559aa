package profile

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/aurorabot/aurora/pkg/riot"
	"github.com/aurorabot/aurora/pkg/storage"
	"go.uber.org/zap"
)

type TargetKind int

const (
	TargetSelf TargetKind = iota
	TargetMention
	TargetSequence
	TargetDiscordID
)

type Target struct {
	Kind     TargetKind
	UserID   string
	Sequence int64
}

var (
	mentionPattern   = regexp.MustCompile(`^<@!?(\d+)>$`)
	discordIDPattern = regexp.MustCompile(`^\d{17,19}$`)
	sequencePattern  = regexp.MustCompile(`^#\d+$`)
)

// ParseTarget reads the argument of a profile command. An empty or unknown
// argument means the author's own profile.
func ParseTarget(args, authorID string) Target {
	arg := strings.TrimSpace(args)
	if fields := strings.Fields(arg); len(fields) > 0 {
		arg = fields[0]
	}
	switch {
	case mentionPattern.MatchString(arg):
		return Target{Kind: TargetMention, UserID: mentionPattern.FindStringSubmatch(arg)[1]}
	case sequencePattern.MatchString(arg):
		n, err := storage.ParseSequenceNumber(arg)
		if err == nil {
			return Target{Kind: TargetSequence, Sequence: n}
		}
	case discordIDPattern.MatchString(arg):
		return Target{Kind: TargetDiscordID, UserID: arg}
	}
	return Target{Kind: TargetSelf, UserID: authorID}
}

type Registrations interface {
	FindRowByUserID(ctx context.Context, discordID string) (*storage.Registration, error)
	FindRowBySequenceNumber(ctx context.Context, n int64) (*storage.Registration, error)
	UpdateCell(ctx context.Context, rowIndex int64, column storage.Column, value string) error
}

type AccountSource interface {
	AccountByPUUID(ctx context.Context, puuid riot.Handle) (*riot.Account, error)
}

type Service struct {
	rows     Registrations
	repo     *Repository
	accounts AccountSource
	cache    *Cache
	log      *zap.Logger
}

func NewService(rows Registrations, repo *Repository, accounts AccountSource, cache *Cache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{rows: rows, repo: repo, accounts: accounts, cache: cache, log: logger.Named("profile")}
}

func (s *Service) Repository() *Repository {
	return s.repo
}

// Lookup returns nil, nil when the target has no registration.
func (s *Service) Lookup(ctx context.Context, t Target) (*storage.Registration, error) {
	if t.Kind == TargetSequence {
		reg, err := s.rows.FindRowBySequenceNumber(ctx, t.Sequence)
		if errors.Is(err, storage.ErrRowNotFound) {
			return nil, nil
		}
		return reg, err
	}
	reg, err := s.rows.FindRowByUserID(ctx, t.UserID)
	if errors.Is(err, storage.ErrRowNotFound) {
		return nil, nil
	}
	return reg, err
}

// Load builds the full profile for reg, serving from the cache when possible.
func (s *Service) Load(ctx context.Context, reg *storage.Registration) (*FullProfile, error) {
	if fp, ok := s.cache.Get(reg.DiscordID); ok {
		return fp, nil
	}

	s.CorrectDrift(ctx, reg)

	lol, err := s.repo.LoL(ctx, reg.DiscordID)
	if err != nil {
		return nil, err
	}
	pers, err := s.repo.Personalization(ctx, reg.DiscordID)
	if err != nil {
		return nil, err
	}
	fp := Merge(reg, lol, pers)
	s.cache.Put(reg.DiscordID, fp)
	return fp, nil
}

// CorrectDrift re-reads the account behind reg's puuid and, when the riot id
// changed upstream, writes the new one to the row and the LoL document. It
// updates reg in place and reports whether anything changed. Failures are
// logged and otherwise ignored.
func (s *Service) CorrectDrift(ctx context.Context, reg *storage.Registration) bool {
	if reg.PUUID == "" {
		return false
	}
	acc, err := s.accounts.AccountByPUUID(ctx, riot.Handle(reg.PUUID))
	if err != nil {
		s.log.Warn("name drift check failed", zap.String("userID", reg.DiscordID), zap.Error(err))
		return false
	}
	current := acc.RiotID()
	if acc.GameName == "" || current == reg.RiotID {
		return false
	}

	if err := s.rows.UpdateCell(ctx, reg.RowIndex, storage.ColumnRiotID, current); err != nil {
		s.log.Warn("failed to store new riot id", zap.String("userID", reg.DiscordID), zap.Error(err))
		return false
	}
	err = s.repo.UpdateLoL(ctx, reg.DiscordID, func(d *LoLData) {
		d.RiotID = current
	})
	if err != nil {
		s.log.Warn("failed to update lol document", zap.String("userID", reg.DiscordID), zap.Error(err))
	}
	s.log.Info("riot id changed upstream",
		zap.String("userID", reg.DiscordID),
		zap.String("old", reg.RiotID),
		zap.String("new", current),
	)
	reg.RiotID = current
	s.cache.Invalidate(reg.DiscordID)
	return true
}

func (s *Service) Invalidate(userID string) {
	s.cache.Invalidate(userID)
}

// UpdatePersonalization saves the change and drops the cached card.
func (s *Service) UpdatePersonalization(ctx context.Context, userID string, fn func(*Personalization)) error {
	if err := s.repo.UpdatePersonalization(ctx, userID, fn); err != nil {
		return fmt.Errorf("update personalization: %w", err)
	}
	s.cache.Invalidate(userID)
	return nil
}

// SetColorCell mirrors the chosen color into the registration table.
func (s *Service) SetColorCell(ctx context.Context, userID, color string) error {
	reg, err := s.rows.FindRowByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if reg == nil {
		return storage.ErrRowNotFound
	}
	return s.rows.UpdateCell(ctx, reg.RowIndex, storage.ColumnColor, color)
}
