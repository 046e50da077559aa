package conversation

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

var (
	ErrAlreadyActive    = errors.New("conversation: already active")
	ErrStaleInteraction = errors.New("conversation: stale interaction")
	ErrNoConversation   = errors.New("conversation: no active conversation")
)

type Store interface {
	// GetState returns nil, nil when no state exists.
	GetState(ctx context.Context, family Family, userID string) (*State, error)
	// CreateState fails with ErrAlreadyActive when a state exists.
	CreateState(ctx context.Context, st *State) error
	SetState(ctx context.Context, st *State) error
	DeleteState(ctx context.Context, family Family, userID string) error
	// CompareAndDeleteState deletes only a state that still carries startedAt.
	CompareAndDeleteState(ctx context.Context, family Family, userID string, startedAt time.Time) (bool, error)
}

type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// Messenger is the outbound side of the chat transport.
type Messenger interface {
	Send(ctx context.Context, channelID string, msg *discordgo.MessageSend) (*MessageRef, error)
	DisableComponents(ctx context.Context, ref MessageRef) error
	DirectChannel(ctx context.Context, userID string) (string, error)
}

type memoryKey struct {
	family Family
	userID string
}

type MemoryStore struct {
	lock   sync.Mutex
	states map[memoryKey]*State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[memoryKey]*State)}
}

func (m *MemoryStore) GetState(_ context.Context, family Family, userID string) (*State, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.states[memoryKey{family, userID}].Clone(), nil
}

func (m *MemoryStore) CreateState(_ context.Context, st *State) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	k := memoryKey{st.Family, st.UserID}
	if _, ok := m.states[k]; ok {
		return ErrAlreadyActive
	}
	m.states[k] = st.Clone()
	return nil
}

func (m *MemoryStore) SetState(_ context.Context, st *State) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.states[memoryKey{st.Family, st.UserID}] = st.Clone()
	return nil
}

func (m *MemoryStore) DeleteState(_ context.Context, family Family, userID string) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	delete(m.states, memoryKey{family, userID})
	return nil
}

func (m *MemoryStore) CompareAndDeleteState(_ context.Context, family Family, userID string, startedAt time.Time) (bool, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	k := memoryKey{family, userID}
	st, ok := m.states[k]
	if !ok || !st.StartedAt.Equal(startedAt) {
		return false, nil
	}
	delete(m.states, k)
	return true, nil
}
