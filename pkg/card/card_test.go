package card

import (
	"strings"
	"testing"

	"github.com/aurorabot/aurora/pkg/aggregator"
	"github.com/aurorabot/aurora/pkg/profile"
	"github.com/aurorabot/aurora/pkg/riot"
	"github.com/aurorabot/aurora/pkg/storage"
	"github.com/bwmarrin/discordgo"
)

func TestCellText(t *testing.T) {
	tests := []struct {
		in   *riot.Standing
		want string
	}{
		{nil, "Sin Clasificación"},
		{&riot.Standing{Tier: "GOLD", Division: "II", LeaguePoints: 40}, "Oro II"},
		{&riot.Standing{Tier: "GRANDMASTER", LeaguePoints: 400}, "Gran Maestro"},
		{&riot.Standing{Tier: "CHALLENGER", LeaguePoints: 1200}, "Challenger"},
		{&riot.Standing{Tier: "EMERALD", Division: "IV"}, "Esmeralda IV"},
	}
	for _, test := range tests {
		if got := CellText(test.in); got != test.want {
			t.Errorf("CellText(%+v) = %q, want %q", test.in, got, test.want)
		}
	}
}

func TestCardRank(t *testing.T) {
	got := cardRank(&riot.Standing{Tier: "CHALLENGER", LeaguePoints: 1200})
	if !strings.HasSuffix(got, "Retador · 1200 Puntos de Liga") {
		t.Errorf("apex row = %q", got)
	}
	got = cardRank(&riot.Standing{Tier: "SILVER", Division: "I", LeaguePoints: 5})
	if !strings.HasSuffix(got, "Plata I · 5 Puntos de Liga") {
		t.Errorf("division row = %q", got)
	}
	if got := cardRank(nil); !strings.HasSuffix(got, Unranked) {
		t.Errorf("unranked row = %q", got)
	}
}

func TestGroupThousands(t *testing.T) {
	for in, want := range map[int]string{0: "0", 999: "999", 1000: "1,000", 1234567: "1,234,567", -4500: "-4,500"} {
		if got := groupThousands(in); got != want {
			t.Errorf("groupThousands(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestChampionEmoji(t *testing.T) {
	if got := ChampionEmoji("Kai'Sa"); got != "<:KaiSa:1465295887352856795>" {
		t.Errorf("Kai'Sa = %q", got)
	}
	if got := ChampionEmoji("Nunu & Willump"); got != "<:NunuYWillump:1465297630023254140>" {
		t.Errorf("Nunu = %q", got)
	}
	if got := ChampionEmoji("Champion 9999"); got != UnknownEmoji {
		t.Errorf("unknown = %q", got)
	}
}

func TestRegistrationEmbed(t *testing.T) {
	p := &aggregator.PlayerProfile{
		Identity:  riot.Identity{GameName: "Faker", TagLine: "KR1", Region: riot.LAN},
		Standings: aggregator.Standings{SoloQ: &riot.Standing{Tier: "GOLD", Division: "IV", LeaguePoints: 50}},
		Masteries: []aggregator.Mastery{{ChampionID: 103, ChampionLabel: "Ahri", Points: 123456}},
	}
	e := RegistrationEmbed(p, "https://icon")

	if e.Color != RegistrationColor {
		t.Errorf("color = %x", e.Color)
	}
	if e.Author.Name != "Perfil de Faker#KR1" {
		t.Errorf("author = %q", e.Author.Name)
	}
	if e.Thumbnail.URL != "https://icon" {
		t.Errorf("thumbnail = %q", e.Thumbnail.URL)
	}
	if len(e.Fields) != 3 {
		t.Fatalf("fields = %d", len(e.Fields))
	}
	if !strings.Contains(e.Fields[1].Value, "**Ahri** (123,456)") {
		t.Errorf("champions = %q", e.Fields[1].Value)
	}
	if e.Fields[2].Value != NoRecentMatches {
		t.Errorf("matches = %q", e.Fields[2].Value)
	}
	if !strings.Contains(e.Fields[0].Value, "Sin Clasificación") {
		t.Errorf("flex should be unranked: %q", e.Fields[0].Value)
	}
}

func TestProfileEmbedDefaults(t *testing.T) {
	reg := &storage.Registration{DiscordID: "1", Username: "aurora", RiotID: "Mi Nombre#LAN"}
	fp := profile.Merge(reg, &profile.LoLData{
		RiotID: "Mi Nombre#LAN",
		Roles:  []aggregator.RoleShare{{Role: "UTILITY", Occurrences: 3, Percentage: 100}},
	}, nil)

	e := ProfileEmbed(fp, 0)
	if e.Color != profile.DefaultColor {
		t.Errorf("color = %x", e.Color)
	}
	if !strings.HasPrefix(e.Description, profile.DefaultBio) {
		t.Errorf("description = %q", e.Description)
	}
	if !strings.Contains(e.Fields[0].Value, "https://dpm.lol/mi%20nombre-lan") {
		t.Errorf("dpm = %q", e.Fields[0].Value)
	}
	left := e.Fields[4].Value
	if !strings.Contains(left, "Soporte (100%)") || !strings.Contains(left, "Sin otros roles") {
		t.Errorf("left column = %q", left)
	}
	right := e.Fields[5].Value
	for _, want := range []string{"Agentes Libres", "Miembro", "Sin compromiso", "Aún no se decide"} {
		if !strings.Contains(right, want) {
			t.Errorf("right column missing %q: %q", want, right)
		}
	}
	if e.Image.URL != ProfileBanner {
		t.Errorf("image = %q", e.Image.URL)
	}

	if e := ProfileEmbed(fp, 0xABCDEF); e.Color != 0xABCDEF {
		t.Errorf("override color = %x", e.Color)
	}
}

func TestDisabled(t *testing.T) {
	out := Disabled(ConfirmationButtons())
	row, ok := out[0].(discordgo.ActionsRow)
	if !ok {
		t.Fatalf("row type %T", out[0])
	}
	for _, c := range row.Components {
		b := c.(discordgo.Button)
		if !b.Disabled || !strings.HasSuffix(b.CustomID, "_disabled") {
			t.Errorf("button not disabled: %+v", b)
		}
	}

	orig := ConfirmationButtons()[0].(discordgo.ActionsRow).Components[0].(discordgo.Button)
	if orig.Disabled {
		t.Error("input components were mutated")
	}
}
