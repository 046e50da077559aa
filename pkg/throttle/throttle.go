// Package throttle counts abandoned registrations and suspends repeat offenders.
package throttle

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

const (
	Threshold        = 3
	SuspensionLength = 30 * time.Minute
)

type Cause string

const (
	CauseCancellation Cause = "cancelacion"
	CauseTimeout      Cause = "timeout"
)

// Record is persisted per user. SuspendedUntil and Cause are only set while a
// suspension is, or until recently was, active.
type Record struct {
	CancelCount    int        `json:"cancelaciones"`
	TimeoutCount   int        `json:"timeouts"`
	SuspendedUntil *time.Time `json:"vetoHasta,omitempty"`
	Cause          Cause      `json:"tipoCausa,omitempty"`
}

func (r *Record) IsZero() bool {
	return r == nil || (r.CancelCount == 0 && r.TimeoutCount == 0 && r.SuspendedUntil == nil && r.Cause == "")
}

func (r *Record) clone() *Record {
	if r == nil {
		return &Record{}
	}
	c := *r
	if r.SuspendedUntil != nil {
		until := *r.SuspendedUntil
		c.SuspendedUntil = &until
	}
	return &c
}

type Suspension struct {
	Suspended        bool
	RemainingSeconds int64
	Until            time.Time
	Cause            Cause
}

type Store interface {
	// GetThrottle returns nil, nil when the user has no record.
	GetThrottle(ctx context.Context, userID string) (*Record, error)
	// PutThrottle removes the record when it is zero.
	PutThrottle(ctx context.Context, userID string, rec *Record) error
}

type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

type Throttle struct {
	store  Store
	locker Locker
	clock  clockwork.Clock
	log    *zap.Logger
}

func New(store Store, locker Locker, clock clockwork.Clock, logger *zap.Logger) *Throttle {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Throttle{
		store:  store,
		locker: locker,
		clock:  clock,
		log:    logger.Named("throttle"),
	}
}

func (t *Throttle) RecordCancellation(ctx context.Context, userID string) (*Record, error) {
	return t.record(ctx, userID, CauseCancellation)
}

func (t *Throttle) RecordTimeout(ctx context.Context, userID string) (*Record, error) {
	return t.record(ctx, userID, CauseTimeout)
}

func (t *Throttle) record(ctx context.Context, userID string, cause Cause) (*Record, error) {
	unlock, err := t.locker.Lock(ctx, lockKey(userID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	stored, err := t.store.GetThrottle(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load throttle record: %w", err)
	}
	rec := stored.clone()
	now := t.clock.Now()
	clearExpired(rec, now)

	count := &rec.CancelCount
	if cause == CauseTimeout {
		count = &rec.TimeoutCount
	}
	*count++
	if *count >= Threshold {
		until := now.Add(SuspensionLength)
		rec.SuspendedUntil = &until
		rec.Cause = cause
		rec.CancelCount = 0
		rec.TimeoutCount = 0
		t.log.Info("user suspended",
			zap.String("userID", userID),
			zap.String("cause", string(cause)),
			zap.Time("until", until),
		)
	}

	if err := t.store.PutThrottle(ctx, userID, rec); err != nil {
		return nil, fmt.Errorf("save throttle record: %w", err)
	}
	return rec.clone(), nil
}

// CheckSuspension clears an expired suspension as a side effect, so repeated
// calls after expiry always report not suspended.
func (t *Throttle) CheckSuspension(ctx context.Context, userID string) (Suspension, error) {
	unlock, err := t.locker.Lock(ctx, lockKey(userID))
	if err != nil {
		return Suspension{}, err
	}
	defer unlock()

	stored, err := t.store.GetThrottle(ctx, userID)
	if err != nil {
		return Suspension{}, fmt.Errorf("load throttle record: %w", err)
	}
	if stored == nil || stored.SuspendedUntil == nil {
		return Suspension{}, nil
	}

	now := t.clock.Now()
	rec := stored.clone()
	if clearExpired(rec, now) {
		if err := t.store.PutThrottle(ctx, userID, rec); err != nil {
			return Suspension{}, fmt.Errorf("save throttle record: %w", err)
		}
		return Suspension{}, nil
	}

	until := *rec.SuspendedUntil
	return Suspension{
		Suspended:        true,
		RemainingSeconds: int64(math.Ceil(until.Sub(now).Seconds())),
		Until:            until,
		Cause:            rec.Cause,
	}, nil
}

// clearExpired drops a suspension that ended at or before now.
func clearExpired(rec *Record, now time.Time) bool {
	if rec.SuspendedUntil == nil || now.Before(*rec.SuspendedUntil) {
		return false
	}
	rec.SuspendedUntil = nil
	rec.Cause = ""
	return true
}

func lockKey(userID string) string {
	return "throttle:" + userID
}

// MemoryStore keeps records in process memory.
type MemoryStore struct {
	lock    sync.Mutex
	records map[string]*Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*Record)}
}

func (m *MemoryStore) GetThrottle(_ context.Context, userID string) (*Record, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	rec, ok := m.records[userID]
	if !ok {
		return nil, nil
	}
	return rec.clone(), nil
}

func (m *MemoryStore) PutThrottle(_ context.Context, userID string, rec *Record) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	if rec.IsZero() {
		delete(m.records, userID)
		return nil
	}
	m.records[userID] = rec.clone()
	return nil
}
