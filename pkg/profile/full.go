package profile

import (
	"strconv"
	"strings"

	"github.com/aurorabot/aurora/pkg/storage"
)

const (
	DefaultBio          = "*Este usuario es todo un misterio… aún no ha agregado una biografía a su perfil.*"
	DefaultClub         = "Agentes Libres"
	DefaultClubBadge    = "<:FreeAgent:1467857491835486268>"
	DefaultRole         = "Miembro"
	DefaultThumbnailURL = "https://i.imgur.com/2bowbEO.png"
	DefaultAvatarURL    = "https://i.imgur.com/kEgAzcb.png"
	DefaultColor        = 0x87B1E1
)

// FullProfile is everything the profile card shows, with defaults filled in.
type FullProfile struct {
	Registration    storage.Registration
	DiscordUsername string
	DiscordAvatar   string
	LoL             LoLData
	Personalization Personalization
	Color           int
}

func Merge(reg *storage.Registration, lol *LoLData, p *Personalization) *FullProfile {
	fp := &FullProfile{Registration: *reg, DiscordUsername: reg.Username}
	if lol != nil {
		fp.LoL = *lol
	}
	if fp.LoL.RiotID == "" {
		fp.LoL.RiotID = reg.RiotID
	}
	if p != nil {
		fp.Personalization = *p
	}

	pers := &fp.Personalization
	if pers.Bio == "" {
		pers.Bio = DefaultBio
	}
	if pers.Club == "" {
		pers.Club = DefaultClub
		pers.ClubBadge = DefaultClubBadge
	}
	if pers.ClubBadge == "" {
		pers.ClubBadge = DefaultClubBadge
	}
	if pers.Role == "" {
		pers.Role = DefaultRole
	}
	if pers.ThumbnailURL == "" {
		pers.ThumbnailURL = DefaultThumbnailURL
	}

	fp.Color = DefaultColor
	for _, hex := range []string{pers.CustomColor, reg.Color} {
		if c, ok := ParseColor(hex); ok {
			fp.Color = c
			break
		}
	}
	return fp
}

// ParseColor reads "#RRGGBB".
func ParseColor(hex string) (int, bool) {
	if len(hex) != 7 || !strings.HasPrefix(hex, "#") {
		return 0, false
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 0, false
	}
	return int(v), true
}
