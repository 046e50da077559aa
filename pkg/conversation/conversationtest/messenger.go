// Package conversationtest provides an in-memory Messenger for flow tests.
package conversationtest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aurorabot/aurora/pkg/conversation"
	"github.com/bwmarrin/discordgo"
)

var ErrUnreachable = errors.New("conversationtest: user does not accept direct messages")

type Sent struct {
	Ref     conversation.MessageRef
	Message *discordgo.MessageSend
}

type Messenger struct {
	lock     sync.Mutex
	sent     []Sent
	disabled []conversation.MessageRef

	// ClosedDMs lists users whose direct channel cannot be opened.
	ClosedDMs map[string]bool
	SendErr   error
}

func NewMessenger() *Messenger {
	return &Messenger{ClosedDMs: make(map[string]bool)}
}

func (m *Messenger) Send(_ context.Context, channelID string, msg *discordgo.MessageSend) (*conversation.MessageRef, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.SendErr != nil {
		return nil, m.SendErr
	}
	ref := conversation.MessageRef{ChannelID: channelID, MessageID: fmt.Sprintf("msg-%d", len(m.sent)+1)}
	m.sent = append(m.sent, Sent{Ref: ref, Message: msg})
	return &ref, nil
}

func (m *Messenger) DisableComponents(_ context.Context, ref conversation.MessageRef) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.disabled = append(m.disabled, ref)
	return nil
}

func (m *Messenger) DirectChannel(_ context.Context, userID string) (string, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.ClosedDMs[userID] {
		return "", ErrUnreachable
	}
	return "dm-" + userID, nil
}

func (m *Messenger) Sent() []Sent {
	m.lock.Lock()
	defer m.lock.Unlock()
	return append([]Sent(nil), m.sent...)
}

// Last returns the most recent message, or the zero value when nothing was sent.
func (m *Messenger) Last() Sent {
	m.lock.Lock()
	defer m.lock.Unlock()
	if len(m.sent) == 0 {
		return Sent{}
	}
	return m.sent[len(m.sent)-1]
}

func (m *Messenger) Contents() []string {
	m.lock.Lock()
	defer m.lock.Unlock()
	out := make([]string, 0, len(m.sent))
	for _, s := range m.sent {
		out = append(out, s.Message.Content)
	}
	return out
}

func (m *Messenger) Disabled() []conversation.MessageRef {
	m.lock.Lock()
	defer m.lock.Unlock()
	return append([]conversation.MessageRef(nil), m.disabled...)
}

func (m *Messenger) Reset() {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.sent = nil
	m.disabled = nil
}
