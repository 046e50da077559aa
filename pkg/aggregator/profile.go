package aggregator

import (
	"github.com/aurorabot/aurora/pkg/riot"
)

const (
	BranchStandings = "standings"
	BranchTFT       = "tft"
	BranchMasteries = "masteries"
	BranchRecent    = "recent_matches"
	BranchRoles     = "roles"
)

type Standings struct {
	SoloQ *riot.Standing `json:"soloq"`
	Flex  *riot.Standing `json:"flex"`
	TFT   *riot.Standing `json:"tft"`
}

type Mastery struct {
	ChampionID    int    `json:"championId"`
	ChampionLabel string `json:"championLabel"`
	Points        int    `json:"points"`
}

// MatchSummary is display-only and never persisted.
type MatchSummary struct {
	QueueLabel    string
	ChampionLabel string
	Won           bool
}

type RoleShare struct {
	Role        string `json:"role"`
	Occurrences int    `json:"occurrences"`
	Percentage  int    `json:"percentage"`
}

// PlayerProfile carries the identity in the canonical case returned upstream.
type PlayerProfile struct {
	Identity      riot.Identity
	Handle        riot.Handle
	IconID        int
	Level         int64
	Standings     Standings
	Masteries     []Mastery
	RecentMatches []MatchSummary
	Roles         []RoleShare
	// Degraded names the branches that fell back to empty values.
	Degraded []string
}

// Snapshot is the subset of a profile that changes over time.
type Snapshot struct {
	Standings Standings
	Roles     []RoleShare
	Degraded  []string
}

func (s *Snapshot) IsDegraded(branch string) bool {
	for _, b := range s.Degraded {
		if b == branch {
			return true
		}
	}
	return false
}
