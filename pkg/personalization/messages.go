package personalization

import "github.com/nicksnyder/go-i18n/v2/i18n"

var (
	msgInvited = &i18n.Message{
		ID: "personalization.invited",
		Other: "¡Hola {{.User}}! Feliz de verte de nuevo. <:AuroraHiiiiii:1465210040989388810>\n" +
			"Vamos adelante con la personalizacion de tu perfil.\n" +
			"Te he enviado un mensaje privado con los pasos a seguir.",
	}
	msgAlreadyActive = &i18n.Message{
		ID: "personalization.alreadyActive",
		Other: "¡Hola {{.User}}! <:AuroraHiiiiii:1465210040989388810>\n" +
			"Ya tienes un proceso de personalización abierto.\n" +
			"Revisa tus mensajes privados para continuar con él.",
	}
	msgDirectFailed = &i18n.Message{
		ID: "personalization.directFailed",
		Other: "¡Hola {{.User}}! Feliz de verte de nuevo. <:AuroraHiiiiii:1465210040989388810>\n" +
			"He intentado comenzar con la personalizacion de tu perfil, pero no pude enviarte un mensaje privado.\n" +
			"Asegúrate de tener los mensajes privados abiertos e intentalo de nuevo.",
	}
	msgNotRegistered = &i18n.Message{
		ID: "personalization.notRegistered",
		Other: "¡Hola {{.User}}! <:AuroraHiiiiii:1465210040989388810>\n" +
			"No tienes una cuenta registrada aún.\n" +
			"Usa `Aurora!registro` para registrarte.",
	}
	msgMenu = &i18n.Message{
		ID: "personalization.menu",
		Other: "Vamos a personalizar tu perfil. <:AuroraClap:1465217066813493386>\n" +
			"Te guiaré paso a paso para que puedas editarlo a tu gusto.\n\n" +
			"Puedes cancelar el proceso en cualquier momento usando el comando `Aurora!cancelar`.\n" +
			"El proceso permanecerá abierto durante 1 hora; pasado ese tiempo se cancelará automáticamente.\n\n" +
			"Para continuar, responde con el elemento que desees editar.\n\n" +
			"``#1``  Biografía  |  ``#5``  Avatar\n" +
			"``#2``  Color          |  ``#6``  Cartel\n" +
			"``#3``  Fijar campeón favorito\n" +
			"``#4``  Agregar redes sociales",
	}
	msgCancelled = &i18n.Message{
		ID: "personalization.cancelled",
		Other: "Has cancelado el proceso de personalización. <:AuroraBonk:1465219188561023124>\n" +
			"Puedes iniciar uno nuevo en cualquier momento.\n" +
			"Cuando quieras volver a intentarlo, estaré aquí.",
	}
	msgTimedOut = &i18n.Message{
		ID: "personalization.timedOut",
		Other: "Se ha acabado el tiempo de personalización. <:AuroraDead:1465242238794862686>\n" +
			"Puedes iniciar uno nuevo en cualquier momento.\n" +
			"Cuando quieras volver a intentarlo, estaré aquí.",
	}
	msgInvalidOption = &i18n.Message{
		ID: "personalization.invalidOption",
		Other: "¡Esa opción no es válida! <:AuroraPout:1465262072932728939>\n" +
			"Por favor, responde con un número del ``#1`` al ``#6`` para continuar.",
	}
	msgSocialSoon = &i18n.Message{
		ID:    "personalization.socialSoon",
		Other: "**Agregar redes sociales** - Funcionalidad próximamente disponible.",
	}
	msgBannerSoon = &i18n.Message{
		ID:    "personalization.bannerSoon",
		Other: "**Cartel** - Funcionalidad próximamente disponible.",
	}

	msgAskColor = &i18n.Message{
		ID: "personalization.color.ask",
		Other: "Vamos a editar el color de tu perfil. <:Aurorarisita:1465263781348118564>\n\n" +
			"Envía el color que quieres usar para tu perfil en formato hexadecimal.\n\n" +
			"Formato: ``#RRGGBB``.\n" +
			"Ejemplo:  ``#FF5733``.\n\n" +
			"¿Buscando inspiración?\n" +
			"La siguiente [página](<https://htmlcolorcodes.com>) te puede ayudar a encontrar el color que más te guste.",
	}
	msgInvalidColor = &i18n.Message{
		ID: "personalization.color.invalid",
		Other: "No pude encontrar ese color. <:AuroraF:1469787904980156519>\n" +
			"El color debe estar en formato hexadecimal `#RRGGBB`.\n\n" +
			"Te dejo algunos ejemplos para aclararlo un poco:\n" +
			"· `#FF5733` | `#3498DB` | `#2ECC71` | `#FF6F91`.\n\n" +
			"¿Todo más claro? Intentémoslo de nuevo.",
	}
	msgProfileLoadFailed = &i18n.Message{
		ID:    "personalization.color.loadFailed",
		Other: "❌ Error al cargar tu perfil.",
	}
	msgPreview = &i18n.Message{
		ID: "personalization.color.preview",
		Other: "{{.Swatch}}{{.Color}} ¡Qué genial color! <:AuroraSquish:1469795883494412310>\n\n" +
			"Veamos como se vería tu perfil con este nuevo color.\n\n" +
			"Confirma con los botones de abajo si te quieres quedar con él.\n" +
			"O puedes decirme y buscamos uno que vaya mejor con tu personalidad.\n" +
			"** **",
	}
	msgPreviewFailed = &i18n.Message{
		ID: "personalization.color.previewFailed",
		Other: "❌ **Error**\n\n" +
			"Hubo un error al crear el preview. Verifica que el bot tenga permisos necesarios.\n\n" +
			"Si el problema persiste, contacta a un administrador.",
	}
	msgSavingColor = &i18n.Message{
		ID:    "personalization.color.saving",
		Other: "Guardando el nuevo color de tu perfil, dame un momento por favor. <a:AuroraLoading:1466251290576290049>",
	}
	msgColorSaved = &i18n.Message{
		ID: "personalization.color.saved",
		Other: "Se actualizó el color de tu perfil. <:AuroraTea:1465551396848930901>\n\n" +
			"{{.Swatch}}{{.Color}} Es el nuevo color de tu perfil.\n\n" +
			"Puedes cambiar el color cuando quieras usando el comando `Aurora!personalizar`.\n\n" +
			"¡Nos vemos pronto!",
	}
	msgColorSaveFailed = &i18n.Message{
		ID:    "personalization.color.saveFailed",
		Other: "❌ Error al guardar el color. Intenta de nuevo más tarde.",
	}
	msgButtonFailed = &i18n.Message{
		ID:    "personalization.button.failed",
		Other: "❌ Error al procesar tu selección.",
	}
	msgExpired = &i18n.Message{
		ID:    "personalization.button.expired",
		Other: "❌ Este proceso ya expiró. Inicia uno nuevo con `Aurora!personalizar`.",
	}

	msgAskBio = &i18n.Message{
		ID: "personalization.bio.ask",
		Other: "Cuéntame un poco sobre ti. <:AuroraFlower:1465262865869963440>\n\n" +
			"Envía la biografía que quieres mostrar en tu perfil.\n" +
			"Puede tener hasta {{.Max}} caracteres.",
	}
	msgInvalidBio = &i18n.Message{
		ID: "personalization.bio.invalid",
		Other: "Esa biografía no me sirve. <:AuroraPout:1465262072932728939>\n" +
			"Debe tener entre 1 y {{.Max}} caracteres. Intentémoslo de nuevo.",
	}
	msgBioSaved = &i18n.Message{
		ID: "personalization.bio.saved",
		Other: "Se actualizó la biografía de tu perfil. <:AuroraTea:1465551396848930901>\n" +
			"¡Nos vemos pronto!",
	}

	msgAskChampion = &i18n.Message{
		ID: "personalization.champion.ask",
		Other: "¿Quién es tu campeón favorito? <:AuroraGiggle:1465263781348118564>\n\n" +
			"Envía su nombre tal como aparece en el juego.\n" +
			"Ejemplo: `Aurora`.",
	}
	msgUnknownChampion = &i18n.Message{
		ID: "personalization.champion.unknown",
		Other: "No conozco a ningún campeón con ese nombre. <:AuroraPout:1465262072932728939>\n" +
			"Revisa cómo está escrito e inténtalo de nuevo.",
	}
	msgChampionSaved = &i18n.Message{
		ID: "personalization.champion.saved",
		Other: "**{{.Champion}}** es ahora tu campeón favorito. <:Aurora_Comfy:1463652023747743880>\n" +
			"¡Nos vemos pronto!",
	}

	msgAskAvatar = &i18n.Message{
		ID: "personalization.avatar.ask",
		Other: "Vamos a cambiar la imagen de tu perfil. <:AuroraClap:1465217066813493386>\n\n" +
			"Adjunta una imagen o envía un enlace que empiece con `https://`.",
	}
	msgInvalidAvatar = &i18n.Message{
		ID: "personalization.avatar.invalid",
		Other: "No pude usar esa imagen. <:AuroraPout:1465262072932728939>\n" +
			"Adjunta una imagen o envía un enlace que empiece con `https://`.",
	}
	msgAvatarSaved = &i18n.Message{
		ID: "personalization.avatar.saved",
		Other: "Se actualizó la imagen de tu perfil. <:AuroraTea:1465551396848930901>\n" +
			"¡Nos vemos pronto!",
	}

	msgSaveFailed = &i18n.Message{
		ID:    "personalization.saveFailed",
		Other: "❌ Error al guardar tu perfil. Intenta de nuevo más tarde.",
	}
)
