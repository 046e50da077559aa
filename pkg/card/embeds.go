// Package card renders profile cards as Discord embeds.
package card

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/aurorabot/aurora/pkg/aggregator"
	"github.com/aurorabot/aurora/pkg/profile"
	"github.com/bwmarrin/discordgo"
)

const (
	RegistrationColor = 0xFE9075
	RegistrationIcon  = "https://cdn.discordapp.com/emojis/1263996583112872017.webp?size=40"
	ProfileBanner     = "https://i.imgur.com/sZWCDyT.png"
	NoRecentMatches   = "Sin partidas recientes"
	NoData            = "Sin datos"
)

// RegistrationEmbed is the card shown before the user confirms an account.
func RegistrationEmbed(p *aggregator.PlayerProfile, iconURL string) *discordgo.MessageEmbed {
	ranked := fmt.Sprintf("**Solo/Duo**⠀%s\n**Flexible**⠀⠀%s\n**TFT**⠀ ⠀ ⠀⠀%s",
		registrationRank(p.Standings.SoloQ),
		registrationRank(p.Standings.Flex),
		registrationRank(p.Standings.TFT),
	)

	champions := NoData
	if len(p.Masteries) > 0 {
		lines := make([]string, 0, len(p.Masteries))
		for _, m := range p.Masteries {
			lines = append(lines, fmt.Sprintf("%s **%s** (%s)", ChampionEmoji(m.ChampionLabel), m.ChampionLabel, groupThousands(m.Points)))
		}
		champions = strings.Join(lines, "\n")
	}

	matches := NoRecentMatches
	if len(p.RecentMatches) > 0 {
		lines := make([]string, 0, len(p.RecentMatches))
		for _, m := range p.RecentMatches {
			result := "Derrota"
			if m.Won {
				result = "Victoria"
			}
			lines = append(lines, fmt.Sprintf("%s **%s** (%s)", ChampionEmoji(m.ChampionLabel), m.QueueLabel, result))
		}
		matches = strings.Join(lines, "\n")
	}

	return &discordgo.MessageEmbed{
		Color: RegistrationColor,
		Author: &discordgo.MessageEmbedAuthor{
			Name:    "Perfil de " + p.Identity.RiotID(),
			IconURL: RegistrationIcon,
		},
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: iconURL},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Datos de Clasificatorias", Value: ranked},
			{Name: "Campeones Favoritos", Value: champions, Inline: true},
			{Name: "Ultimas Partidas", Value: matches, Inline: true},
		},
	}
}

// ProfileEmbed is the full profile card. A non-zero color overrides the
// profile's own.
func ProfileEmbed(fp *profile.FullProfile, color int) *discordgo.MessageEmbed {
	if color == 0 {
		color = fp.Color
	}
	pers := fp.Personalization
	gameName, tagLine := splitRiotID(fp.LoL.RiotID)

	avatar := fp.DiscordAvatar
	if avatar == "" {
		avatar = profile.DefaultAvatarURL
	}

	return &discordgo.MessageEmbed{
		Color: color,
		Author: &discordgo.MessageEmbedAuthor{
			Name:    "Perfil de " + fp.DiscordUsername,
			IconURL: avatar,
		},
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: pers.ThumbnailURL},
		Description: description(pers),
		Fields: []*discordgo.MessageEmbedField{
			{Name: " ", Value: DPMEmoji + " [DPM](" + DPMURL(gameName, tagLine) + ")", Inline: true},
			{Name: " ", Value: " ", Inline: true},
			{Name: " ", Value: " ", Inline: true},
			{Name: "", Value: "**Un poco de " + fp.DiscordUsername + "**"},
			{Name: "", Value: leftColumn(gameName, tagLine, fp.LoL.Roles), Inline: true},
			{Name: "", Value: rightColumn(pers), Inline: true},
			{Name: "", Value: "**Datos de Clasificatorias**"},
			{Name: "", Value: rankedRows(fp.LoL.Standings)},
		},
		Image: &discordgo.MessageEmbedImage{URL: ProfileBanner},
	}
}

func DPMURL(gameName, tagLine string) string {
	return "https://dpm.lol/" + url.PathEscape(strings.ToLower(gameName)) + "-" + url.PathEscape(strings.ToLower(tagLine))
}

func splitRiotID(riotID string) (string, string) {
	name, tag, _ := strings.Cut(riotID, "#")
	return name, tag
}

func description(p profile.Personalization) string {
	var b strings.Builder
	b.WriteString(p.Bio)
	b.WriteString("\n**   **\n")
	if h := p.SocialLinks.Instagram; h != "" {
		fmt.Fprintf(&b, "%s [@%s](https://instagram.com/%s)\n", InstagramEmoji, h, h)
	}
	if h := p.SocialLinks.Twitter; h != "" {
		fmt.Fprintf(&b, "%s [@%s](https://twitter.com/%s)\n", TwitterEmoji, h, h)
	}
	if h := p.SocialLinks.TikTok; h != "" {
		fmt.Fprintf(&b, "%s [@%s](https://tiktok.com/@%s)\n", TikTokEmoji, h, h)
	}
	return b.String()
}

func leftColumn(gameName, tagLine string, roles []aggregator.RoleShare) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**ID** %s\n**TAG** #%s\n", gameName, tagLine)
	if len(roles) == 0 {
		return b.String()
	}
	b.WriteString("**Roles Principales**\n")
	for _, r := range roles {
		fmt.Fprintf(&b, "%s%s (%d%%)\n", RoleEmoji(r.Role), RoleName(r.Role), r.Percentage)
	}
	if len(roles) == 1 {
		b.WriteString(NoRoleEmoji + "Sin otros roles\n")
	}
	return b.String()
}

func rightColumn(p profile.Personalization) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Club** %s %s\n", p.Club, p.ClubBadge)
	fmt.Fprintf(&b, "**Puesto** %s\n", p.Role)
	if p.PartnerID != "" {
		fmt.Fprintf(&b, "**Pareja** <@%s>\n", p.PartnerID)
	} else {
		b.WriteString("**Pareja** Sin compromiso\n")
	}
	if p.FavoriteChampion != "" {
		fmt.Fprintf(&b, "**%s** es su campeón favorito, simplemente le encanta. %s", p.FavoriteChampion, ComfyEmoji)
	} else {
		b.WriteString("Aún no se decide por un campeón favorito.")
	}
	return b.String()
}

func rankedRows(s aggregator.Standings) string {
	return fmt.Sprintf("**Solo/Duo**   %s\n**Flexible**        %s\n**TFT**              %s",
		cardRank(s.SoloQ), cardRank(s.Flex), cardRank(s.TFT))
}
