package aggregator

import (
	"context"
	"sync"

	"github.com/aurorabot/aurora/pkg/riot"
	"golang.org/x/sync/singleflight"
)

type matchResult struct {
	match *riot.Match
	err   error
}

// matchCache memoizes the id list and every match detail for one build, so the
// recent-matches and roles branches never fetch the same match twice.
type matchCache struct {
	source  Source
	routing string
	handle  riot.Handle
	group   singleflight.Group

	lock    sync.Mutex
	ids     []string
	idsErr  error
	idsDone bool
	matches map[string]matchResult
}

func newMatchCache(source Source, routing string, handle riot.Handle) *matchCache {
	return &matchCache{
		source:  source,
		routing: routing,
		handle:  handle,
		matches: make(map[string]matchResult),
	}
}

func (m *matchCache) IDs(ctx context.Context) ([]string, error) {
	_, _, _ = m.group.Do("ids", func() (interface{}, error) {
		m.lock.Lock()
		done := m.idsDone
		m.lock.Unlock()
		if done {
			return nil, nil
		}
		ids, err := m.source.MatchIDs(ctx, m.routing, m.handle, 0, matchSample)
		m.lock.Lock()
		m.ids, m.idsErr, m.idsDone = ids, err, true
		m.lock.Unlock()
		return nil, nil
	})
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.ids, m.idsErr
}

func (m *matchCache) Match(ctx context.Context, id string) (*riot.Match, error) {
	m.lock.Lock()
	res, ok := m.matches[id]
	m.lock.Unlock()
	if ok {
		return res.match, res.err
	}

	_, _, _ = m.group.Do("match:"+id, func() (interface{}, error) {
		m.lock.Lock()
		_, ok := m.matches[id]
		m.lock.Unlock()
		if ok {
			return nil, nil
		}
		match, err := m.source.Match(ctx, m.routing, id)
		m.lock.Lock()
		m.matches[id] = matchResult{match: match, err: err}
		m.lock.Unlock()
		return nil, nil
	})

	m.lock.Lock()
	defer m.lock.Unlock()
	res = m.matches[id]
	return res.match, res.err
}
