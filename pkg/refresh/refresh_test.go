package refresh

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aurorabot/aurora/pkg/aggregator"
	"github.com/aurorabot/aurora/pkg/profile"
	"github.com/aurorabot/aurora/pkg/riot"
	"github.com/aurorabot/aurora/pkg/storage"
	"github.com/jonboulle/clockwork"
)

type cell struct {
	row    int64
	column storage.Column
}

type fakeRows struct {
	lock  sync.Mutex
	rows  []*storage.Registration
	cells map[cell]string
}

func (f *fakeRows) FindRowByUserID(_ context.Context, id string) (*storage.Registration, error) {
	for _, r := range f.rows {
		if r.DiscordID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRows) AllRows(context.Context) ([]*storage.Registration, error) {
	return f.rows, nil
}

func (f *fakeRows) UpdateCell(_ context.Context, row int64, col storage.Column, value string) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.cells[cell{row, col}] = value
	return nil
}

type fakeAggregator struct {
	lock     sync.Mutex
	snapshot *aggregator.Snapshot
	profile  *aggregator.PlayerProfile
	buildErr error
	seen     []riot.Identity
}

func (f *fakeAggregator) Refresh(_ context.Context, id riot.Identity, _ riot.Handle) *aggregator.Snapshot {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.seen = append(f.seen, id)
	return f.snapshot
}

func (f *fakeAggregator) BuildFromHandle(_ context.Context, id riot.Identity, handle riot.Handle) (*aggregator.PlayerProfile, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.seen = append(f.seen, id)
	if f.buildErr != nil {
		return nil, f.buildErr
	}
	p := *f.profile
	p.Identity = id
	p.Handle = handle
	return &p, nil
}

type fakeProfiles struct {
	renamed     map[string]string
	invalidated []string
}

func (f *fakeProfiles) CorrectDrift(_ context.Context, reg *storage.Registration) bool {
	if id, ok := f.renamed[reg.DiscordID]; ok {
		reg.RiotID = id
		return true
	}
	return false
}

func (f *fakeProfiles) Invalidate(id string) {
	f.invalidated = append(f.invalidated, id)
}

type fakeDocs struct {
	lol  map[string]*profile.LoLData
	pers map[string]*profile.Personalization
}

func (f *fakeDocs) SaveLoL(_ context.Context, id string, d *profile.LoLData) error {
	f.lol[id] = d
	return nil
}

func (f *fakeDocs) UpdateLoL(_ context.Context, id string, fn func(*profile.LoLData)) error {
	d := f.lol[id]
	if d == nil {
		d = &profile.LoLData{}
		f.lol[id] = d
	}
	fn(d)
	return nil
}

func (f *fakeDocs) UpdatePersonalization(_ context.Context, id string, fn func(*profile.Personalization)) error {
	p := f.pers[id]
	if p == nil {
		p = &profile.Personalization{}
		f.pers[id] = p
	}
	fn(p)
	return nil
}

func (f *fakeAggregator) calls() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return len(f.seen)
}

type harness struct {
	refresher *Refresher
	rows      *fakeRows
	agg       *fakeAggregator
	profiles  *fakeProfiles
	docs      *fakeDocs
	clock     *clockwork.FakeClock
}

func newHarness(pacing time.Duration) *harness {
	h := &harness{
		rows: &fakeRows{
			rows: []*storage.Registration{
				{RowIndex: 1, DiscordID: "u1", RiotID: "Faker#KR1", Region: "LAN", PUUID: "p1"},
				{RowIndex: 2, DiscordID: "u2", RiotID: "Caps#EUW", Region: "LAS", PUUID: "p2"},
			},
			cells: make(map[cell]string),
		},
		agg: &fakeAggregator{
			snapshot: &aggregator.Snapshot{
				Standings: aggregator.Standings{
					SoloQ: &riot.Standing{Tier: "DIAMOND", Division: "I", LeaguePoints: 50},
					TFT:   &riot.Standing{Tier: "MASTER", LeaguePoints: 10},
				},
				Roles: []aggregator.RoleShare{{Role: "MIDDLE", Occurrences: 12}},
			},
			profile: &aggregator.PlayerProfile{IconID: 29},
		},
		profiles: &fakeProfiles{renamed: map[string]string{}},
		docs: &fakeDocs{
			lol:  make(map[string]*profile.LoLData),
			pers: make(map[string]*profile.Personalization),
		},
		clock: clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)),
	}
	h.refresher = New(Config{
		Rows:       h.rows,
		Aggregator: h.agg,
		Profiles:   h.profiles,
		Documents:  h.docs,
		Clock:      h.clock,
		Pacing:     pacing,
	})
	return h
}

func TestRefreshUser(t *testing.T) {
	h := newHarness(0)
	h.profiles.renamed["u1"] = "Faker#T1"

	if err := h.refresher.RefreshUser(context.Background(), "u1"); err != nil {
		t.Fatal(err)
	}
	if got := h.agg.seen[0]; got.GameName != "Faker" || got.TagLine != "T1" || got.Region != riot.LAN {
		t.Errorf("refreshed identity = %+v", got)
	}
	doc := h.docs.lol["u1"]
	if doc.RiotID != "Faker#T1" || doc.Standings.SoloQ.Tier != "DIAMOND" || len(doc.Roles) != 1 {
		t.Errorf("document = %+v", doc)
	}
	if !doc.UpdatedAt.Equal(h.clock.Now()) {
		t.Errorf("updated at = %v", doc.UpdatedAt)
	}
	want := map[cell]string{
		{1, storage.ColumnSoloQ}: "Diamante I",
		{1, storage.ColumnFlex}:  "Sin Clasificación",
		{1, storage.ColumnTFT}:   "Maestro",
	}
	for k, v := range want {
		if h.rows.cells[k] != v {
			t.Errorf("cell %v = %q, want %q", k, h.rows.cells[k], v)
		}
	}
	if len(h.profiles.invalidated) != 1 {
		t.Errorf("invalidated = %v", h.profiles.invalidated)
	}
}

func TestDegradedBranchesKeepStoredValues(t *testing.T) {
	h := newHarness(0)
	old := &riot.Standing{Tier: "GOLD", Division: "IV"}
	h.docs.lol["u1"] = &profile.LoLData{
		RiotID:    "Faker#KR1",
		Standings: aggregator.Standings{SoloQ: old},
		Roles:     []aggregator.RoleShare{{Role: "UTILITY", Occurrences: 3}},
	}
	h.agg.snapshot = &aggregator.Snapshot{
		Standings: aggregator.Standings{TFT: &riot.Standing{Tier: "IRON", Division: "I"}},
		Degraded:  []string{aggregator.BranchStandings, aggregator.BranchRoles},
	}

	if err := h.refresher.RefreshUser(context.Background(), "u1"); err != nil {
		t.Fatal(err)
	}
	doc := h.docs.lol["u1"]
	if doc.Standings.SoloQ != old || doc.Roles[0].Role != "UTILITY" {
		t.Errorf("degraded branches overwritten: %+v", doc)
	}
	if doc.Standings.TFT == nil || doc.Standings.TFT.Tier != "IRON" {
		t.Errorf("tft = %+v", doc.Standings.TFT)
	}
	if _, ok := h.rows.cells[cell{1, storage.ColumnSoloQ}]; ok {
		t.Error("soloq cell written from a degraded branch")
	}
	if h.rows.cells[cell{1, storage.ColumnTFT}] != "Hierro I" {
		t.Errorf("tft cell = %q", h.rows.cells[cell{1, storage.ColumnTFT}])
	}
}

func TestRefreshUserErrors(t *testing.T) {
	h := newHarness(0)
	if err := h.refresher.RefreshUser(context.Background(), "nobody"); !errors.Is(err, storage.ErrRowNotFound) {
		t.Errorf("missing user: %v", err)
	}
	h.rows.rows[0].PUUID = ""
	if err := h.refresher.RefreshUser(context.Background(), "u1"); !errors.Is(err, ErrIncompleteRow) {
		t.Errorf("incomplete row: %v", err)
	}
}

func TestRefreshAllCountsFailures(t *testing.T) {
	h := newHarness(0)
	h.rows.rows[1].Region = "MARS"

	res, err := h.refresher.RefreshAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Succeeded != 1 || res.Failed != 1 || res.Total() != 2 {
		t.Errorf("result = %+v", res)
	}
}

func TestRefreshAllPacesUsers(t *testing.T) {
	h := newHarness(DefaultPacing)
	done := make(chan Result, 1)
	go func() {
		res, _ := h.refresher.RefreshAll(context.Background())
		done <- res
	}()

	h.clock.BlockUntil(1)
	select {
	case <-done:
		t.Fatal("second user refreshed without waiting")
	default:
	}
	if n := h.agg.calls(); n != 1 {
		t.Fatalf("users refreshed before the pause = %d", n)
	}
	h.clock.Advance(DefaultPacing)

	select {
	case res := <-done:
		if res.Succeeded != 2 {
			t.Errorf("result = %+v", res)
		}
	case <-time.After(time.Second):
		t.Fatal("pass did not finish")
	}
}

func TestMigrateAll(t *testing.T) {
	h := newHarness(0)
	h.docs.pers["u2"] = &profile.Personalization{Bio: "hola"}

	res, err := h.refresher.MigrateAll(context.Background())
	if err != nil || res.Succeeded != 2 {
		t.Fatalf("migrate: %+v %v", res, err)
	}
	doc := h.docs.lol["u1"]
	if doc == nil || doc.RiotID != "Faker#KR1" || doc.PUUID != "p1" || doc.IconID != 29 {
		t.Errorf("lol document = %+v", doc)
	}
	if h.docs.pers["u1"] == nil {
		t.Error("personalization document not created")
	}
	if h.docs.pers["u2"].Bio != "hola" {
		t.Error("existing personalization overwritten")
	}
}

func TestMigrateBuildFailure(t *testing.T) {
	h := newHarness(0)
	h.agg.buildErr = aggregator.ErrSummonerUnavailable

	res, err := h.refresher.MigrateAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Failed != 2 || len(h.docs.lol) != 0 {
		t.Errorf("result = %+v docs = %v", res, h.docs.lol)
	}
}

func TestRunRepeatsUntilCancelled(t *testing.T) {
	h := newHarness(0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- h.refresher.Run(ctx) }()

	waitFor := func(n int) {
		t.Helper()
		deadline := time.Now().Add(time.Second)
		for h.agg.calls() < n {
			if time.Now().After(deadline) {
				t.Fatalf("refreshes = %d, want %d", h.agg.calls(), n)
			}
			time.Sleep(time.Millisecond)
		}
	}

	waitFor(2)
	h.clock.BlockUntil(1)
	h.clock.Advance(DefaultInterval)
	waitFor(4)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("run = %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("run did not stop")
	}
}
