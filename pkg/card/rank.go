package card

import (
	"fmt"
	"strconv"

	"github.com/aurorabot/aurora/pkg/riot"
)

const Unranked = "Sin Clasificación"

var tierNames = map[string]string{
	"IRON":        "Hierro",
	"BRONZE":      "Bronce",
	"SILVER":      "Plata",
	"GOLD":        "Oro",
	"PLATINUM":    "Platino",
	"EMERALD":     "Esmeralda",
	"DIAMOND":     "Diamante",
	"MASTER":      "Maestro",
	"GRANDMASTER": "Gran Maestro",
	"CHALLENGER":  "Retador",
}

// TierName is the Spanish tier shown on cards.
func TierName(tier string) string {
	if n, ok := tierNames[tier]; ok {
		return n
	}
	return tier
}

// CellText is the rank as stored in the registration table: Spanish tier and
// division, no LP. The table keeps "Challenger" untranslated.
func CellText(s *riot.Standing) string {
	if s == nil {
		return Unranked
	}
	name := TierName(s.Tier)
	if s.Tier == "CHALLENGER" {
		name = "Challenger"
	}
	if riot.IsApexTier(s.Tier) || s.Division == "" {
		return name
	}
	return name + " " + s.Division
}

// cardRank renders one ranked row of the profile card.
func cardRank(s *riot.Standing) string {
	const gap = "   "
	if s == nil {
		return UnrankedCardEmoji + gap + Unranked
	}
	if riot.IsApexTier(s.Tier) {
		return fmt.Sprintf("%s%s%s · %d Puntos de Liga", TierEmoji(s.Tier), gap, TierName(s.Tier), s.LeaguePoints)
	}
	return fmt.Sprintf("%s%s%s %s · %d Puntos de Liga", TierEmoji(s.Tier), gap, TierName(s.Tier), s.Division, s.LeaguePoints)
}

// registrationRank renders one ranked row of the confirmation card, where the
// badges carry the tier.
func registrationRank(s *riot.Standing) string {
	if s == nil {
		return UnrankedEmoji + " ⠀ ⠀" + Unranked
	}
	if riot.IsApexTier(s.Tier) {
		return fmt.Sprintf("%s ⠀ ⠀%d Puntos de Liga", RankEmojis(s.Tier, ""), s.LeaguePoints)
	}
	return fmt.Sprintf("%s %d Puntos de Liga", RankEmojis(s.Tier, s.Division), s.LeaguePoints)
}

// groupThousands formats 1234567 as "1,234,567".
func groupThousands(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if n < 0 {
		neg = true
		s = s[1:]
	}
	var out []byte
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
