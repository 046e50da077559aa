// Package conversation runs multi-step chat flows: one live state per user and
// family, a single writer per user, and a timeout that only fires for the
// state instance that scheduled it.
package conversation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

type Step int

const (
	// Stay persists the (possibly mutated) state.
	Stay Step = iota
	// Finish deletes the state and disables its pending components.
	Finish
)

// StepFunc mutates st in place. A returned error leaves the stored state untouched.
type StepFunc func(st *State) (Step, error)

// ActivityChecker reports whether a user has a conversation open.
type ActivityChecker interface {
	Active(ctx context.Context, userID string) (bool, error)
}

// ExpireFunc runs under the user's lock after a timed-out state was deleted.
type ExpireFunc func(ctx context.Context, st *State)

type Config struct {
	Family    Family
	Store     Store
	Locker    Locker
	Messenger Messenger
	Clock     clockwork.Clock
	Timeout   time.Duration
	Logger    *zap.Logger
}

type Engine struct {
	family    Family
	store     Store
	locker    Locker
	messenger Messenger
	clock     clockwork.Clock
	timeout   time.Duration
	log       *zap.Logger
	onExpire  ExpireFunc
	exclusive []ActivityChecker

	timersLock sync.Mutex
	timers     map[string]clockwork.Timer
}

func NewEngine(cfg Config) *Engine {
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Engine{
		family:    cfg.Family,
		store:     cfg.Store,
		locker:    cfg.Locker,
		messenger: cfg.Messenger,
		clock:     cfg.Clock,
		timeout:   cfg.Timeout,
		log:       cfg.Logger.With(zap.String("flow", string(cfg.Family))),
		timers:    make(map[string]clockwork.Timer),
	}
}

func (e *Engine) Family() Family {
	return e.family
}

func (e *Engine) OnExpire(fn ExpireFunc) {
	e.onExpire = fn
}

// Exclusive makes Start fail with ErrAlreadyActive while any of others is
// active for the user. The check runs under the user's lock, which every
// family shares. Call it before the engine is in use.
func (e *Engine) Exclusive(others ...ActivityChecker) {
	e.exclusive = append(e.exclusive, others...)
}

// lockKey is shared by every family so a user has a single writer overall.
func lockKey(userID string) string {
	return "conversation:" + userID
}

func (e *Engine) Active(ctx context.Context, userID string) (bool, error) {
	st, err := e.store.GetState(ctx, e.family, userID)
	if err != nil {
		return false, err
	}
	return st != nil, nil
}

// Start creates the state and schedules its timeout. data, when non-nil, is the
// initial flow payload.
func (e *Engine) Start(ctx context.Context, userID, channelID, stage string, data interface{}) (*State, error) {
	unlock, err := e.locker.Lock(ctx, lockKey(userID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	for _, other := range e.exclusive {
		active, err := other.Active(ctx, userID)
		if err != nil {
			return nil, err
		}
		if active {
			return nil, ErrAlreadyActive
		}
	}

	st := &State{
		UserID:    userID,
		Family:    e.family,
		Stage:     stage,
		FlowID:    uuid.NewString(),
		StartedAt: e.clock.Now(),
		ChannelID: channelID,
	}
	if data != nil {
		if err := st.Encode(data); err != nil {
			return nil, err
		}
	}
	if err := e.store.CreateState(ctx, st); err != nil {
		return nil, err
	}
	e.schedule(st)
	e.log.Info("conversation started", zap.String("userID", userID), zap.String("flowID", st.FlowID))
	return st.Clone(), nil
}

// Handle runs fn against the user's live state. It reports false when there is none.
func (e *Engine) Handle(ctx context.Context, userID string, fn StepFunc) (bool, error) {
	unlock, err := e.locker.Lock(ctx, lockKey(userID))
	if err != nil {
		return false, err
	}
	defer unlock()

	st, err := e.store.GetState(ctx, e.family, userID)
	if err != nil {
		return false, err
	}
	if st == nil {
		return false, nil
	}
	return true, e.apply(ctx, st, fn)
}

// Button is Handle for component clicks: the click must target the state's
// pending message.
func (e *Engine) Button(ctx context.Context, userID, messageID string, fn StepFunc) error {
	unlock, err := e.locker.Lock(ctx, lockKey(userID))
	if err != nil {
		return err
	}
	defer unlock()

	st, err := e.store.GetState(ctx, e.family, userID)
	if err != nil {
		return err
	}
	if st == nil {
		return ErrNoConversation
	}
	if st.Pending == nil || st.Pending.MessageID != messageID {
		return ErrStaleInteraction
	}
	return e.apply(ctx, st, fn)
}

func (e *Engine) apply(ctx context.Context, st *State, fn StepFunc) error {
	before := st.Clone()
	step, err := fn(st)
	if err != nil {
		return err
	}

	if step == Finish {
		return e.finish(ctx, st)
	}
	if err := e.store.SetState(ctx, st); err != nil {
		return fmt.Errorf("save conversation: %w", err)
	}
	if before.Pending != nil && (st.Pending == nil || *st.Pending != *before.Pending) {
		e.disable(ctx, *before.Pending)
	}
	return nil
}

func (e *Engine) finish(ctx context.Context, st *State) error {
	e.cancelTimer(st.UserID)
	if _, err := e.store.CompareAndDeleteState(ctx, e.family, st.UserID, st.StartedAt); err != nil {
		return fmt.Errorf("delete conversation: %w", err)
	}
	if st.Pending != nil {
		e.disable(ctx, *st.Pending)
	}
	e.log.Info("conversation finished",
		zap.String("userID", st.UserID),
		zap.String("flowID", st.FlowID),
		zap.String("stage", st.Stage),
	)
	return nil
}

// Discard drops the user's state without any message, for flows that could not
// even be started.
func (e *Engine) Discard(ctx context.Context, userID string) error {
	unlock, err := e.locker.Lock(ctx, lockKey(userID))
	if err != nil {
		return err
	}
	defer unlock()

	e.cancelTimer(userID)
	return e.store.DeleteState(ctx, e.family, userID)
}

// Expire is the timeout handler. It is a no-op unless the stored state still
// carries startedAt, so a timer left over from a finished flow never fires.
func (e *Engine) Expire(ctx context.Context, userID string, startedAt time.Time) (bool, error) {
	unlock, err := e.locker.Lock(ctx, lockKey(userID))
	if err != nil {
		return false, err
	}
	defer unlock()

	st, err := e.store.GetState(ctx, e.family, userID)
	if err != nil {
		return false, err
	}
	if st == nil || !st.StartedAt.Equal(startedAt) {
		return false, nil
	}
	deleted, err := e.store.CompareAndDeleteState(ctx, e.family, userID, startedAt)
	if err != nil || !deleted {
		return false, err
	}

	e.timersLock.Lock()
	delete(e.timers, userID)
	e.timersLock.Unlock()

	if st.Pending != nil {
		e.disable(ctx, *st.Pending)
	}
	e.log.Info("conversation timed out",
		zap.String("userID", userID),
		zap.String("flowID", st.FlowID),
		zap.String("stage", st.Stage),
	)
	if e.onExpire != nil {
		e.onExpire(ctx, st)
	}
	return true, nil
}

func (e *Engine) schedule(st *State) {
	userID, startedAt := st.UserID, st.StartedAt
	timer := e.clock.AfterFunc(e.timeout, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := e.Expire(ctx, userID, startedAt); err != nil {
			e.log.Error("timeout handler failed", zap.String("userID", userID), zap.Error(err))
		}
	})

	e.timersLock.Lock()
	if old, ok := e.timers[userID]; ok {
		old.Stop()
	}
	e.timers[userID] = timer
	e.timersLock.Unlock()
}

func (e *Engine) cancelTimer(userID string) {
	e.timersLock.Lock()
	defer e.timersLock.Unlock()
	if t, ok := e.timers[userID]; ok {
		t.Stop()
		delete(e.timers, userID)
	}
}

func (e *Engine) disable(ctx context.Context, ref MessageRef) {
	if err := e.messenger.DisableComponents(ctx, ref); err != nil {
		e.log.Warn("failed to disable components",
			zap.String("channelID", ref.ChannelID),
			zap.String("messageID", ref.MessageID),
			zap.Error(err),
		)
	}
}
