package aggregator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aurorabot/aurora/pkg/riot"
)

type fakeSource struct {
	lock sync.Mutex

	account      *riot.Account
	accountErr   error
	tftAccount   *riot.Account
	tftErr       error
	summonerErr  error
	entries      []riot.LeagueEntry
	entriesErr   error
	tftEntries   []riot.LeagueEntry
	masteries    []riot.ChampionMastery
	matchIDs     []string
	matches      map[string]*riot.Match
	matchCalls   map[string]int
	matchErrs    map[string]error
	idCalls      int
	tftPUUIDSeen riot.TFTHandle

	// When both are set, summoner and league entries each wait for the
	// other to have been entered.
	summonerEntered  chan struct{}
	standingsEntered chan struct{}
}

func rendezvous(endpoint string, mine, theirs chan struct{}) error {
	if mine == nil || theirs == nil {
		return nil
	}
	close(mine)
	select {
	case <-theirs:
		return nil
	case <-time.After(2 * time.Second):
		return &riot.TransientError{Endpoint: endpoint, StatusCode: 504}
	}
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		account:    &riot.Account{PUUID: "lol-puuid", GameName: "Aurora", TagLine: "LAN"},
		tftAccount: &riot.Account{PUUID: "tft-puuid", GameName: "Aurora", TagLine: "LAN"},
		matches:    make(map[string]*riot.Match),
		matchCalls: make(map[string]int),
		matchErrs:  make(map[string]error),
	}
}

func (f *fakeSource) addMatch(id string, queue int, position string, champ int, win bool) {
	f.matchIDs = append(f.matchIDs, id)
	f.matches[id] = &riot.Match{
		Metadata: riot.MatchMetadata{MatchID: id},
		Info: riot.MatchInfo{QueueID: queue, Participants: []riot.Participant{
			{PUUID: "someone-else", TeamPosition: "TOP"},
			{PUUID: "lol-puuid", ChampionID: champ, TeamPosition: position, Win: win},
		}},
	}
}

func (f *fakeSource) AccountByRiotID(_ context.Context, _, _ string) (*riot.Account, error) {
	return f.account, f.accountErr
}

func (f *fakeSource) TFTAccountByRiotID(_ context.Context, _, _ string) (*riot.Account, error) {
	return f.tftAccount, f.tftErr
}

func (f *fakeSource) SummonerByPUUID(_ context.Context, _ string, puuid riot.Handle) (*riot.Summoner, error) {
	if err := rendezvous("summoner-by-puuid", f.summonerEntered, f.standingsEntered); err != nil {
		return nil, err
	}
	if f.summonerErr != nil {
		return nil, f.summonerErr
	}
	return &riot.Summoner{PUUID: string(puuid), ProfileIconID: 29, SummonerLevel: 300}, nil
}

func (f *fakeSource) LeagueEntries(_ context.Context, _ string, _ riot.Handle) ([]riot.LeagueEntry, error) {
	if err := rendezvous("league-entries-by-puuid", f.standingsEntered, f.summonerEntered); err != nil {
		return nil, err
	}
	return f.entries, f.entriesErr
}

func (f *fakeSource) TFTSummonerByPUUID(_ context.Context, _ string, puuid riot.TFTHandle) (*riot.Summoner, error) {
	f.lock.Lock()
	f.tftPUUIDSeen = puuid
	f.lock.Unlock()
	return &riot.Summoner{PUUID: string(puuid)}, nil
}

func (f *fakeSource) TFTLeagueEntries(_ context.Context, _ string, _ riot.TFTHandle) ([]riot.LeagueEntry, error) {
	return f.tftEntries, nil
}

func (f *fakeSource) TopMasteries(_ context.Context, _ string, _ riot.Handle, _ int) ([]riot.ChampionMastery, error) {
	return f.masteries, nil
}

func (f *fakeSource) MatchIDs(_ context.Context, _ string, _ riot.Handle, _, count int) ([]string, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.idCalls++
	if len(f.matchIDs) > count {
		return f.matchIDs[:count], nil
	}
	return f.matchIDs, nil
}

func (f *fakeSource) Match(_ context.Context, _, id string) (*riot.Match, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.matchCalls[id]++
	if err := f.matchErrs[id]; err != nil {
		return nil, err
	}
	m, ok := f.matches[id]
	if !ok {
		return nil, fmt.Errorf("match-detail: %w", riot.ErrNotFound)
	}
	return m, nil
}

func (f *fakeSource) calls(id string) int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.matchCalls[id]
}

type fakeNamer struct{}

func (fakeNamer) ChampionName(_ context.Context, key int) string {
	return fmt.Sprintf("champ-%d", key)
}
