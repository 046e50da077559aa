package profile

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aurorabot/aurora/pkg/locks"
	"github.com/aurorabot/aurora/pkg/riot"
	"github.com/aurorabot/aurora/pkg/storage"
	"github.com/jonboulle/clockwork"
)

type memoryDocs struct {
	lock sync.Mutex
	docs map[string][]byte
}

func newMemoryDocs() *memoryDocs {
	return &memoryDocs{docs: make(map[string][]byte)}
}

func (m *memoryDocs) ReadDocument(_ context.Context, key string, v interface{}) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	raw, ok := m.docs[key]
	if !ok {
		return nil
	}
	return json.Unmarshal(raw, v)
}

func (m *memoryDocs) WriteDocument(_ context.Context, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.lock.Lock()
	defer m.lock.Unlock()
	m.docs[key] = raw
	return nil
}

type fakeRows struct {
	rows    []*storage.Registration
	updates map[storage.Column]string
}

func (f *fakeRows) FindRowByUserID(_ context.Context, id string) (*storage.Registration, error) {
	for _, r := range f.rows {
		if r.DiscordID == id {
			c := *r
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeRows) FindRowBySequenceNumber(_ context.Context, n int64) (*storage.Registration, error) {
	for _, r := range f.rows {
		if r.SequenceNumber == storage.FormatSequenceNumber(n) {
			c := *r
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeRows) UpdateCell(_ context.Context, _ int64, col storage.Column, value string) error {
	if f.updates == nil {
		f.updates = make(map[storage.Column]string)
	}
	f.updates[col] = value
	return nil
}

type fakeAccounts struct {
	account *riot.Account
	err     error
	calls   int
}

func (f *fakeAccounts) AccountByPUUID(context.Context, riot.Handle) (*riot.Account, error) {
	f.calls++
	return f.account, f.err
}

func newTestService(accounts *fakeAccounts) (*Service, *fakeRows, *memoryDocs, *clockwork.FakeClock) {
	rows := &fakeRows{rows: []*storage.Registration{{
		RowIndex:       1,
		SequenceNumber: "#0",
		DiscordID:      "111111111111111111",
		Username:       "aurora",
		RiotID:         "Old#LAN",
		PUUID:          "puuid-1",
	}}}
	docs := newMemoryDocs()
	clock := clockwork.NewFakeClock()
	repo := NewRepository(docs, locks.NewKeyedMutex())
	return NewService(rows, repo, accounts, NewCache(clock, CacheTTL), nil), rows, docs, clock
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		in   string
		want Target
	}{
		{"", Target{Kind: TargetSelf, UserID: "author"}},
		{"<@123456789012345678>", Target{Kind: TargetMention, UserID: "123456789012345678"}},
		{"<@!123456789012345678>", Target{Kind: TargetMention, UserID: "123456789012345678"}},
		{"#12", Target{Kind: TargetSequence, Sequence: 12}},
		{"123456789012345678", Target{Kind: TargetDiscordID, UserID: "123456789012345678"}},
		{"1234", Target{Kind: TargetSelf, UserID: "author"}},
		{"hola", Target{Kind: TargetSelf, UserID: "author"}},
	}
	for _, test := range tests {
		if got := ParseTarget(test.in, "author"); got != test.want {
			t.Errorf("ParseTarget(%q) = %+v, want %+v", test.in, got, test.want)
		}
	}
}

func TestMergeDefaults(t *testing.T) {
	reg := &storage.Registration{DiscordID: "1", Username: "aurora", RiotID: "A#1"}
	fp := Merge(reg, nil, nil)

	if fp.Personalization.Bio != DefaultBio {
		t.Errorf("bio = %q", fp.Personalization.Bio)
	}
	if fp.Personalization.Club != DefaultClub || fp.Personalization.ClubBadge != DefaultClubBadge {
		t.Errorf("club = %q %q", fp.Personalization.Club, fp.Personalization.ClubBadge)
	}
	if fp.Personalization.Role != DefaultRole {
		t.Errorf("role = %q", fp.Personalization.Role)
	}
	if fp.Color != DefaultColor {
		t.Errorf("color = %x", fp.Color)
	}
	if fp.LoL.RiotID != "A#1" {
		t.Errorf("riot id = %q", fp.LoL.RiotID)
	}
}

func TestMergeColorPrecedence(t *testing.T) {
	reg := &storage.Registration{Color: "#00FF00"}
	if fp := Merge(reg, nil, nil); fp.Color != 0x00FF00 {
		t.Errorf("row color = %x", fp.Color)
	}
	fp := Merge(reg, nil, &Personalization{CustomColor: "#FF0000"})
	if fp.Color != 0xFF0000 {
		t.Errorf("custom color = %x", fp.Color)
	}
	if fp := Merge(&storage.Registration{Color: "nope"}, nil, nil); fp.Color != DefaultColor {
		t.Errorf("bad color = %x", fp.Color)
	}
}

func TestLoadCachesAndCorrectsDrift(t *testing.T) {
	accounts := &fakeAccounts{account: &riot.Account{PUUID: "puuid-1", GameName: "New", TagLine: "LAN"}}
	svc, rows, docs, clock := newTestService(accounts)
	ctx := context.Background()

	if err := docs.WriteDocument(ctx, "lol/111111111111111111", &LoLData{RiotID: "Old#LAN", PUUID: "puuid-1"}); err != nil {
		t.Fatal(err)
	}

	reg, err := svc.Lookup(ctx, Target{Kind: TargetSequence, Sequence: 0})
	if err != nil || reg == nil {
		t.Fatalf("lookup: %v %v", reg, err)
	}
	fp, err := svc.Load(ctx, reg)
	if err != nil {
		t.Fatal(err)
	}
	if fp.LoL.RiotID != "New#LAN" || fp.Registration.RiotID != "New#LAN" {
		t.Errorf("riot id not corrected: %q / %q", fp.LoL.RiotID, fp.Registration.RiotID)
	}
	if rows.updates[storage.ColumnRiotID] != "New#LAN" {
		t.Errorf("row not updated: %v", rows.updates)
	}

	if _, err := svc.Load(ctx, reg); err != nil {
		t.Fatal(err)
	}
	if accounts.calls != 1 {
		t.Errorf("cached load hit the api: %d calls", accounts.calls)
	}

	clock.Advance(CacheTTL)
	if _, err := svc.Load(ctx, reg); err != nil {
		t.Fatal(err)
	}
	if accounts.calls != 2 {
		t.Errorf("expired cache not reloaded: %d calls", accounts.calls)
	}
}

func TestDriftFailureIsSilent(t *testing.T) {
	accounts := &fakeAccounts{err: errors.New("boom")}
	svc, rows, _, _ := newTestService(accounts)
	ctx := context.Background()

	reg, _ := svc.Lookup(ctx, Target{Kind: TargetSelf, UserID: "111111111111111111"})
	fp, err := svc.Load(ctx, reg)
	if err != nil {
		t.Fatal(err)
	}
	if fp.LoL.RiotID != "Old#LAN" {
		t.Errorf("riot id = %q", fp.LoL.RiotID)
	}
	if len(rows.updates) != 0 {
		t.Errorf("unexpected updates: %v", rows.updates)
	}
}

func TestLookupMissing(t *testing.T) {
	svc, _, _, _ := newTestService(&fakeAccounts{})
	reg, err := svc.Lookup(context.Background(), Target{Kind: TargetDiscordID, UserID: "999999999999999999"})
	if err != nil || reg != nil {
		t.Errorf("lookup = %v, %v", reg, err)
	}
}

func TestUpdatePersonalizationInvalidates(t *testing.T) {
	svc, _, _, _ := newTestService(&fakeAccounts{err: riot.ErrNotFound})
	ctx := context.Background()
	reg, _ := svc.Lookup(ctx, Target{UserID: "111111111111111111"})

	if _, err := svc.Load(ctx, reg); err != nil {
		t.Fatal(err)
	}
	err := svc.UpdatePersonalization(ctx, reg.DiscordID, func(p *Personalization) {
		p.Bio = "hola"
	})
	if err != nil {
		t.Fatal(err)
	}
	fp, err := svc.Load(ctx, reg)
	if err != nil {
		t.Fatal(err)
	}
	if fp.Personalization.Bio != "hola" {
		t.Errorf("bio = %q", fp.Personalization.Bio)
	}
}

func TestCacheExpiry(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := NewCache(clock, time.Minute)
	c.Put("a", &FullProfile{})
	if _, ok := c.Get("a"); !ok {
		t.Fatal("missing fresh entry")
	}
	clock.Advance(time.Minute)
	if _, ok := c.Get("a"); ok {
		t.Error("entry survived its ttl")
	}
	if c.Len() != 0 {
		t.Errorf("len = %d", c.Len())
	}
}
