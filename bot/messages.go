package bot

import "github.com/nicksnyder/go-i18n/v2/i18n"

var (
	msgPong = &i18n.Message{
		ID:    "bot.pong",
		Other: "pong!",
	}
	msgSomethingWrong = &i18n.Message{
		ID: "bot.somethingWrong",
		Other: "Algo salió mal de mi lado. <:AuroraPout:1465262072932728939>\n" +
			"Por favor, intenta nuevamente en unos minutos.",
	}

	msgSelfNotRegistered = &i18n.Message{
		ID: "profile.selfNotRegistered",
		Other: "¡Hola {{.User}}! <:AuroraHiiiiii:1465210040989388810>\n" +
			"No tienes una cuenta registrada aún.\n" +
			"Usa `Aurora!registro` para registrarte.",
	}
	msgMentionNotRegistered = &i18n.Message{
		ID:    "profile.mentionNotRegistered",
		Other: "{{.User}} no tiene una cuenta registrada. <:AuroraPout:1465262072932728939>",
	}
	msgSequenceNotFound = &i18n.Message{
		ID:    "profile.sequenceNotFound",
		Other: "No encontré ningún usuario con el número de registro {{.Sequence}}. <:AuroraPout:1465262072932728939>",
	}
	msgIDNotFound = &i18n.Message{
		ID:    "profile.idNotFound",
		Other: "No encontré ningún usuario registrado con ese ID. <:AuroraPout:1465262072932728939>",
	}

	msgLoadingSelf = &i18n.Message{
		ID:    "profile.loadingSelf",
		Other: "Estoy buscando tu perfil, dame un momento por favor. <a:AuroraLoading:1466251290576290049>",
	}
	msgLoadingMention = &i18n.Message{
		ID:    "profile.loadingMention",
		Other: "Estoy buscando el perfil de {{.User}}, dame un momento por favor. <a:AuroraLoading:1466251290576290049>",
	}
	msgLoadingSequence = &i18n.Message{
		ID:    "profile.loadingSequence",
		Other: "Estoy buscando el perfil del registro {{.Sequence}}, dame un momento por favor. <a:AuroraLoading:1466251290576290049>",
	}
	msgLoadingID = &i18n.Message{
		ID:    "profile.loadingID",
		Other: "Estoy buscando ese perfil, dame un momento por favor. <a:AuroraLoading:1466251290576290049>",
	}
	msgProfileFailed = &i18n.Message{
		ID: "profile.failed",
		Other: "Hubo un problema al cargar tu perfil. <:AuroraPout:1465262072932728939>\n" +
			"Por favor, intenta nuevamente más tarde.",
	}
)
