package conversation

import (
	"encoding/json"
	"strings"
	"time"
)

type Family string

const (
	FamilyRegistration    Family = "registro"
	FamilyPersonalization Family = "personalizacion"
)

// CancelToken aborts any flow at any stage.
const CancelToken = "aurora!cancelar"

const DefaultTimeout = time.Hour

func IsCancel(input string) bool {
	return strings.EqualFold(strings.TrimSpace(input), CancelToken)
}

type MessageRef struct {
	ChannelID string `json:"channelId"`
	MessageID string `json:"messageId"`
}

// State is one live conversation. At most one exists per (user, family).
type State struct {
	UserID    string          `json:"userId"`
	Family    Family          `json:"family"`
	Stage     string          `json:"stage"`
	FlowID    string          `json:"flowId"`
	StartedAt time.Time       `json:"startedAt"`
	ChannelID string          `json:"channelId"`
	Pending   *MessageRef     `json:"pending,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// Decode unmarshals the flow-specific payload; an empty payload leaves v untouched.
func (s *State) Decode(v interface{}) error {
	if len(s.Data) == 0 {
		return nil
	}
	return json.Unmarshal(s.Data, v)
}

func (s *State) Encode(v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.Data = raw
	return nil
}

func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	c := *s
	if s.Pending != nil {
		p := *s.Pending
		c.Pending = &p
	}
	if s.Data != nil {
		c.Data = append(json.RawMessage(nil), s.Data...)
	}
	return &c
}
