package card

import "github.com/bwmarrin/discordgo"

const (
	ConfirmAccountID = "confirmar_cuenta"
	RetryAccountID   = "reintentar_cuenta"

	SaveColorID   = "guardar_color"
	RetryColorID  = "reintentar_color"
	CancelColorID = "cancelar_color"
)

func ConfirmationButtons() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Registrar Cuenta",
					Style:    discordgo.SuccessButton,
					CustomID: ConfirmAccountID,
				},
				discordgo.Button{
					Label:    "Volver a Comenzar",
					Style:    discordgo.SecondaryButton,
					CustomID: RetryAccountID,
				},
			},
		},
	}
}

func ColorButtons() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "¡Me encanta, Guardar!",
					Style:    discordgo.SuccessButton,
					CustomID: SaveColorID,
				},
				discordgo.Button{
					Label:    "Probar otro Color",
					Style:    discordgo.PrimaryButton,
					CustomID: RetryColorID,
				},
				discordgo.Button{
					Label:    "Salir",
					Style:    discordgo.DangerButton,
					CustomID: CancelColorID,
				},
			},
		},
	}
}

// Disabled returns a copy of components with every button and select menu
// disabled. Custom ids get a "_disabled" suffix so late clicks never match a
// live action.
func Disabled(components []discordgo.MessageComponent) []discordgo.MessageComponent {
	out := make([]discordgo.MessageComponent, 0, len(components))
	for _, c := range components {
		switch v := c.(type) {
		case discordgo.ActionsRow:
			out = append(out, discordgo.ActionsRow{Components: Disabled(v.Components)})
		case *discordgo.ActionsRow:
			out = append(out, discordgo.ActionsRow{Components: Disabled(v.Components)})
		case discordgo.Button:
			out = append(out, disableButton(v))
		case *discordgo.Button:
			out = append(out, disableButton(*v))
		case discordgo.SelectMenu:
			v.Disabled = true
			out = append(out, v)
		case *discordgo.SelectMenu:
			m := *v
			m.Disabled = true
			out = append(out, m)
		default:
			out = append(out, c)
		}
	}
	return out
}

func disableButton(b discordgo.Button) discordgo.Button {
	b.Disabled = true
	if b.CustomID != "" && b.Style != discordgo.LinkButton {
		b.CustomID += "_disabled"
	}
	return b
}
