package riot

type Account struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

func (a Account) RiotID() string {
	return a.GameName + "#" + a.TagLine
}

type Summoner struct {
	PUUID         string `json:"puuid"`
	ProfileIconID int    `json:"profileIconId"`
	SummonerLevel int64  `json:"summonerLevel"`
}

type LeagueEntry struct {
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
}

type ChampionMastery struct {
	ChampionID     int `json:"championId"`
	ChampionLevel  int `json:"championLevel"`
	ChampionPoints int `json:"championPoints"`
}

type Match struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`
}

type MatchMetadata struct {
	MatchID string `json:"matchId"`
}

type MatchInfo struct {
	QueueID      int           `json:"queueId"`
	GameCreation int64         `json:"gameCreation"`
	Participants []Participant `json:"participants"`
}

type Participant struct {
	PUUID        string `json:"puuid"`
	ChampionID   int    `json:"championId"`
	ChampionName string `json:"championName"`
	TeamPosition string `json:"teamPosition"`
	Win          bool   `json:"win"`
}

func (m *Match) FindParticipant(puuid string) *Participant {
	for i := range m.Info.Participants {
		if m.Info.Participants[i].PUUID == puuid {
			return &m.Info.Participants[i]
		}
	}
	return nil
}

// Standing is one ranked ladder position. A nil *Standing means unranked.
type Standing struct {
	Tier         string `json:"tier"`
	Division     string `json:"rank,omitempty"`
	LeaguePoints int    `json:"lp"`
}

var tierOrder = []string{
	"IRON", "BRONZE", "SILVER", "GOLD", "PLATINUM",
	"EMERALD", "DIAMOND", "MASTER", "GRANDMASTER", "CHALLENGER",
}

// TierRank orders tiers from 0 (IRON) to 9 (CHALLENGER); unknown tiers are -1.
func TierRank(tier string) int {
	for i, t := range tierOrder {
		if t == tier {
			return i
		}
	}
	return -1
}

// IsApexTier reports whether a tier has no divisions.
func IsApexTier(tier string) bool {
	return tier == "MASTER" || tier == "GRANDMASTER" || tier == "CHALLENGER"
}

func StandingFromEntry(e LeagueEntry) *Standing {
	s := &Standing{Tier: e.Tier, LeaguePoints: e.LeaguePoints}
	if !IsApexTier(e.Tier) {
		s.Division = e.Rank
	}
	return s
}

// FindStanding returns the standing for the first queue type in preference order.
func FindStanding(entries []LeagueEntry, queueTypes ...string) *Standing {
	for _, qt := range queueTypes {
		for _, e := range entries {
			if e.QueueType == qt {
				return StandingFromEntry(e)
			}
		}
	}
	return nil
}
