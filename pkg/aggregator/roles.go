package aggregator

import (
	"math"
	"sort"

	"github.com/aurorabot/aurora/pkg/riot"
	"golang.org/x/exp/slices"
)

// roleOrder doubles as the tie-break priority.
var roleOrder = []string{"TOP", "JUNGLE", "MIDDLE", "BOTTOM", "UTILITY"}

var roleQueues = []int{riot.QueueRankedSolo, riot.QueueRankedFlex, riot.QueueNormalDraft}

// TallyRoles counts the positions the player took in ranked and draft matches and
// returns the two most played as rounded percentages of all classified matches.
// It returns nil when no match classifies.
func TallyRoles(matches []*riot.Match, puuid string) []RoleShare {
	counts := make(map[string]int, len(roleOrder))
	classified := 0
	for _, m := range matches {
		if m == nil || !slices.Contains(roleQueues, m.Info.QueueID) {
			continue
		}
		p := m.FindParticipant(puuid)
		if p == nil || !slices.Contains(roleOrder, p.TeamPosition) {
			continue
		}
		counts[p.TeamPosition]++
		classified++
	}
	if classified == 0 {
		return nil
	}

	shares := make([]RoleShare, 0, len(counts))
	for _, role := range roleOrder {
		if n := counts[role]; n > 0 {
			shares = append(shares, RoleShare{
				Role:        role,
				Occurrences: n,
				Percentage:  int(math.Round(100 * float64(n) / float64(classified))),
			})
		}
	}
	// roleOrder already ranks ties, so a stable sort on count is enough.
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Occurrences > shares[j].Occurrences
	})
	if len(shares) > 2 {
		shares = shares[:2]
	}
	return shares
}
