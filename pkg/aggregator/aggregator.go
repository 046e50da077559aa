// Package aggregator assembles a player's profile from the Riot endpoints,
// degrading every branch except the summoner lookup to an empty value.
package aggregator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aurorabot/aurora/pkg/riot"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

const (
	matchSample      = 20
	recentLimit      = 3
	masteryLimit     = 3
	rolesConcurrency = 4
)

var recentQueues = []int{
	riot.QueueNormalDraft, riot.QueueRankedSolo, riot.QueueNormalBlind,
	riot.QueueRankedFlex, riot.QueueARAM, riot.QueueClash,
}

// ErrSummonerUnavailable aborts a build. It deliberately does not wrap
// riot.ErrNotFound: a resolved account without a summoner is not an unknown account.
var ErrSummonerUnavailable = errors.New("aggregator: summoner unavailable")

// Source is the subset of riot.Client the aggregator needs.
type Source interface {
	AccountByRiotID(ctx context.Context, gameName, tagLine string) (*riot.Account, error)
	TFTAccountByRiotID(ctx context.Context, gameName, tagLine string) (*riot.Account, error)
	SummonerByPUUID(ctx context.Context, platform string, puuid riot.Handle) (*riot.Summoner, error)
	LeagueEntries(ctx context.Context, platform string, puuid riot.Handle) ([]riot.LeagueEntry, error)
	TFTSummonerByPUUID(ctx context.Context, platform string, puuid riot.TFTHandle) (*riot.Summoner, error)
	TFTLeagueEntries(ctx context.Context, platform string, puuid riot.TFTHandle) ([]riot.LeagueEntry, error)
	TopMasteries(ctx context.Context, platform string, puuid riot.Handle, count int) ([]riot.ChampionMastery, error)
	MatchIDs(ctx context.Context, routing string, puuid riot.Handle, start, count int) ([]string, error)
	Match(ctx context.Context, routing, matchID string) (*riot.Match, error)
}

type ChampionNamer interface {
	ChampionName(ctx context.Context, key int) string
}

type Aggregator struct {
	source    Source
	champions ChampionNamer
	log       *zap.Logger
}

func New(source Source, champions ChampionNamer, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		source:    source,
		champions: champions,
		log:       logger.Named("aggregator"),
	}
}

// Build resolves the account first; riot.ErrNotFound and *riot.TransientError
// from that lookup are returned wrapped.
func (a *Aggregator) Build(ctx context.Context, id riot.Identity) (*PlayerProfile, error) {
	acct, err := a.source.AccountByRiotID(ctx, id.GameName, id.TagLine)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", id.RiotID(), err)
	}
	canonical := riot.Identity{GameName: acct.GameName, TagLine: acct.TagLine, Region: id.Region}
	return a.BuildFromHandle(ctx, canonical, riot.Handle(acct.PUUID))
}

func (a *Aggregator) BuildFromHandle(ctx context.Context, id riot.Identity, handle riot.Handle) (*PlayerProfile, error) {
	p := &PlayerProfile{Identity: id, Handle: handle}
	platform := id.Region.Platform()
	matches := newMatchCache(a.source, id.Region.Routing(), handle)
	deg := &degradation{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := a.source.SummonerByPUUID(gctx, platform, handle)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSummonerUnavailable, err)
		}
		p.IconID = s.ProfileIconID
		p.Level = s.SummonerLevel
		return nil
	})
	g.Go(func() error {
		s, err := a.standings(gctx, platform, handle)
		if a.degrade(deg, BranchStandings, id, err) {
			return nil
		}
		p.Standings.SoloQ, p.Standings.Flex = s.SoloQ, s.Flex
		return nil
	})
	g.Go(func() error {
		s, err := a.tft(gctx, id)
		if a.degrade(deg, BranchTFT, id, err) {
			return nil
		}
		p.Standings.TFT = s
		return nil
	})
	g.Go(func() error {
		m, err := a.masteries(gctx, platform, handle)
		if a.degrade(deg, BranchMasteries, id, err) {
			return nil
		}
		p.Masteries = m
		return nil
	})
	g.Go(func() error {
		r, err := a.recentMatches(gctx, matches, string(handle))
		if a.degrade(deg, BranchRecent, id, err) {
			return nil
		}
		p.RecentMatches = r
		return nil
	})
	g.Go(func() error {
		r, err := a.roles(gctx, matches, string(handle))
		if a.degrade(deg, BranchRoles, id, err) {
			return nil
		}
		p.Roles = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	p.Degraded = deg.list()
	return p, nil
}

// Refresh recomputes the time-varying parts of a known account.
func (a *Aggregator) Refresh(ctx context.Context, id riot.Identity, handle riot.Handle) *Snapshot {
	snap := &Snapshot{}
	platform := id.Region.Platform()
	matches := newMatchCache(a.source, id.Region.Routing(), handle)
	deg := &degradation{}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		s, err := a.standings(ctx, platform, handle)
		if !a.degrade(deg, BranchStandings, id, err) {
			snap.Standings.SoloQ, snap.Standings.Flex = s.SoloQ, s.Flex
		}
	}()
	go func() {
		defer wg.Done()
		s, err := a.tft(ctx, id)
		if !a.degrade(deg, BranchTFT, id, err) {
			snap.Standings.TFT = s
		}
	}()
	go func() {
		defer wg.Done()
		r, err := a.roles(ctx, matches, string(handle))
		if !a.degrade(deg, BranchRoles, id, err) {
			snap.Roles = r
		}
	}()
	wg.Wait()
	snap.Degraded = deg.list()
	return snap
}

func (a *Aggregator) standings(ctx context.Context, platform string, handle riot.Handle) (Standings, error) {
	entries, err := a.source.LeagueEntries(ctx, platform, handle)
	if errors.Is(err, riot.ErrNotFound) {
		return Standings{}, nil
	}
	if err != nil {
		return Standings{}, err
	}
	return Standings{
		SoloQ: riot.FindStanding(entries, riot.QueueTypeSolo),
		Flex:  riot.FindStanding(entries, riot.QueueTypeFlex),
	}, nil
}

// tft follows its own chain under the TFT key. An account or summoner that does
// not exist for TFT is unranked, not degraded.
func (a *Aggregator) tft(ctx context.Context, id riot.Identity) (*riot.Standing, error) {
	acct, err := a.source.TFTAccountByRiotID(ctx, id.GameName, id.TagLine)
	if err != nil {
		return nil, notFoundIsEmpty(err)
	}
	handle := riot.TFTHandle(acct.PUUID)
	platform := id.Region.Platform()
	if _, err = a.source.TFTSummonerByPUUID(ctx, platform, handle); err != nil {
		return nil, notFoundIsEmpty(err)
	}
	entries, err := a.source.TFTLeagueEntries(ctx, platform, handle)
	if err != nil {
		return nil, notFoundIsEmpty(err)
	}
	if s := riot.FindStanding(entries, riot.QueueTypeTFT, riot.QueueTypeTFTTurb); s != nil {
		return s, nil
	}
	if len(entries) > 0 {
		return riot.StandingFromEntry(entries[0]), nil
	}
	return nil, nil
}

func (a *Aggregator) masteries(ctx context.Context, platform string, handle riot.Handle) ([]Mastery, error) {
	raw, err := a.source.TopMasteries(ctx, platform, handle, masteryLimit)
	if err != nil {
		return nil, notFoundIsEmpty(err)
	}
	out := make([]Mastery, 0, len(raw))
	for _, m := range raw {
		if len(out) == masteryLimit {
			break
		}
		out = append(out, Mastery{
			ChampionID:    m.ChampionID,
			ChampionLabel: a.championName(ctx, m.ChampionID, ""),
			Points:        m.ChampionPoints,
		})
	}
	return out, nil
}

// recentMatches scans ids in order, fetching only as many as are still needed
// per window, and stops once recentLimit qualifying matches are found.
func (a *Aggregator) recentMatches(ctx context.Context, cache *matchCache, puuid string) ([]MatchSummary, error) {
	ids, err := cache.IDs(ctx)
	if err != nil {
		return nil, notFoundIsEmpty(err)
	}

	out := make([]MatchSummary, 0, recentLimit)
	failed := 0
	for start := 0; start < len(ids) && len(out) < recentLimit; {
		end := min(start+recentLimit-len(out), len(ids))
		window := ids[start:end]
		results := make([]*riot.Match, len(window))

		var wg sync.WaitGroup
		for i, matchID := range window {
			wg.Add(1)
			go func(i int, matchID string) {
				defer wg.Done()
				if m, err := cache.Match(ctx, matchID); err == nil {
					results[i] = m
				}
			}(i, matchID)
		}
		wg.Wait()

		for _, m := range results {
			if m == nil {
				failed++
				continue
			}
			if !slices.Contains(recentQueues, m.Info.QueueID) {
				continue
			}
			p := m.FindParticipant(puuid)
			if p == nil {
				continue
			}
			out = append(out, MatchSummary{
				QueueLabel:    riot.QueueLabel(m.Info.QueueID),
				ChampionLabel: a.championName(ctx, p.ChampionID, p.ChampionName),
				Won:           p.Win,
			})
			if len(out) == recentLimit {
				break
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start = end
	}
	if failed > 0 {
		a.log.Debug("skipped unavailable matches", zap.Int("count", failed))
	}
	return out, nil
}

func (a *Aggregator) roles(ctx context.Context, cache *matchCache, puuid string) ([]RoleShare, error) {
	ids, err := cache.IDs(ctx)
	if err != nil {
		return nil, notFoundIsEmpty(err)
	}

	fetched := make([]*riot.Match, len(ids))
	g := new(errgroup.Group)
	g.SetLimit(rolesConcurrency)
	for i, matchID := range ids {
		i, matchID := i, matchID
		g.Go(func() error {
			if m, err := cache.Match(ctx, matchID); err == nil {
				fetched[i] = m
			}
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return TallyRoles(fetched, puuid), nil
}

func (a *Aggregator) championName(ctx context.Context, key int, fallback string) string {
	if a.champions != nil {
		return a.champions.ChampionName(ctx, key)
	}
	if fallback != "" {
		return fallback
	}
	return fmt.Sprintf("Champion %d", key)
}

// degrade reports whether err forced branch to its empty value.
func (a *Aggregator) degrade(d *degradation, branch string, id riot.Identity, err error) bool {
	if err == nil {
		return false
	}
	d.add(branch)
	a.log.Warn("profile branch degraded",
		zap.String("branch", branch),
		zap.String("riotID", id.RiotID()),
		zap.Error(err),
	)
	return true
}

func notFoundIsEmpty(err error) error {
	if errors.Is(err, riot.ErrNotFound) {
		return nil
	}
	return err
}

type degradation struct {
	lock     sync.Mutex
	branches []string
}

func (d *degradation) add(branch string) {
	d.lock.Lock()
	d.branches = append(d.branches, branch)
	d.lock.Unlock()
}

func (d *degradation) list() []string {
	d.lock.Lock()
	defer d.lock.Unlock()
	if len(d.branches) == 0 {
		return nil
	}
	out := append([]string(nil), d.branches...)
	slices.Sort(out)
	return out
}
