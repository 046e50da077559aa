package registration

import "github.com/nicksnyder/go-i18n/v2/i18n"

var (
	msgInvited = &i18n.Message{
		ID: "registration.invited",
		Other: "¡Hola {{.User}}! Encantada de conocerte. <:AuroraHiiiiii:1465210040989388810>\n" +
			"Vamos a comenzar con el registro de tu Riot ID.\n" +
			"Te he enviado un mensaje privado con los pasos a seguir.",
	}
	msgAlreadyActive = &i18n.Message{
		ID: "registration.alreadyActive",
		Other: "¡Hola {{.User}}! <:AuroraHiiiiii:1465210040989388810>\n" +
			"Ya tienes un proceso de registro abierto.\n" +
			"Revisa tus mensajes privados para continuar con él.",
	}
	msgDirectFailed = &i18n.Message{
		ID: "registration.directFailed",
		Other: "¡Hola {{.User}}! Encantada de conocerte. <:AuroraHiiiiii:1465210040989388810>\n" +
			"He intentado comenzar con el registro de tu Riot ID, pero no pude enviarte un mensaje privado.\n" +
			"Asegúrate de tener los mensajes privados abiertos e intentalo de nuevo.",
	}
	msgAlreadyRegistered = &i18n.Message{
		ID: "registration.alreadyRegistered",
		Other: "¡Hola {{.User}}! <:AuroraGiggle:1465263781348118564>\n" +
			"Tu cuenta ya está vinculada a **{{.RiotID}}**.\n" +
			"Puedes ver tu perfil con `Aurora!perfil`.",
	}
	msgWelcome = &i18n.Message{
		ID: "registration.welcome",
		Other: "Bienvenido al proceso de registro. <:AuroraClap:1465217066813493386>\n" +
			"Este proceso tomará unos minutos y, una vez finalizado, podrás comenzar a utilizar mis funciones.\n\n" +
			"Puedes cancelar el proceso en cualquier momento usando el comando `Aurora!cancelar`.\n" +
			"El registro permanecerá abierto durante 1 hora; pasado ese tiempo se cancelará automáticamente.\n\n" +
			"Para continuar, envía tu **Riot ID** en el siguiente formato: `NombreDeInvocador#TAG`.",
	}
	msgCancelled = &i18n.Message{
		ID: "registration.cancelled",
		Other: "Has cancelado el proceso de registro. <:AuroraBonk:1465219188561023124>\n" +
			"Puedes iniciar uno nuevo en cualquier momento.\n" +
			"Cuando quieras volver a intentarlo, estaré aquí.",
	}
	msgSuspendedCancellations = &i18n.Message{
		ID: "registration.suspendedCancellations",
		Other: "Has cancelado muchas veces el proceso de registro. <:AuroraBonk:1465219188561023124>\n" +
			"Podrás volver a intentarlo <t:{{.Until}}:R>.\n" +
			"Cuando quieras volver a intentarlo, estaré aquí para ti.",
	}
	msgTimedOut = &i18n.Message{
		ID: "registration.timedOut",
		Other: "Se ha acabado el tiempo de registro. <:AuroraDead:1465242238794862686>\n" +
			"Puedes iniciar uno nuevo en cualquier momento.\n" +
			"Cuando quieras volver a intentarlo, estaré aquí.",
	}
	msgSuspendedTimeouts = &i18n.Message{
		ID: "registration.suspendedTimeouts",
		Other: "El tiempo para completar el registro se ha agotado en múltiples ocasiones. <:AuroraDead:1465242238794862686>\n" +
			"Podrás volver a intentarlo <t:{{.Until}}:R>.\n" +
			"Cuando quieras volver a intentarlo, estaré aquí para ti.",
	}
	msgMissingTag = &i18n.Message{
		ID: "registration.missingTag",
		Other: "¡Formato inválido! <:AuroraPout:1465262072932728939>\n" +
			"Debes incluir el #TAG en tu Riot ID.\n" +
			"Ejemplo: `Hide on bush#KR1`.",
	}
	msgMalformedID = &i18n.Message{
		ID: "registration.malformedId",
		Other: "¡Formato inválido! <:AuroraPout:1465262072932728939>\n" +
			"Asegúrate de incluir tanto tu nombre como tu #TAG.\n" +
			"Ejemplo: `Hide on bush#KR1`.",
	}
	msgAskRegion = &i18n.Message{
		ID: "registration.askRegion",
		Other: "¿**{{.RiotID}}**? ¡Qué genial tu ID! <:AuroraFlower:1465262865869963440>\n" +
			"Continuemos con el registro de tu cuenta.\n" +
			"¿A qué región de la lista pertenece?\n\n" +
			"`LAN`  Latinoamérica Norte  |  `LAS`  Latinoamérica Sur\n" +
			" `NA`         Norte América        |   `BR`                Brasil",
	}
	msgInvalidRegion = &i18n.Message{
		ID: "registration.invalidRegion",
		Other: "Esa región no está disponible por el momento. <:AuroraGiggle:1465263781348118564>\n" +
			"Puede que aún no esté habilitada o no sea válida.\n" +
			"Intentalo nuevamente con una de las opciones de la lista.",
	}
	msgAccountNotFound = &i18n.Message{
		ID: "registration.accountNotFound",
		Other: "No pude encontrar tu cuenta. <:AuroraPout:1465262072932728939>\n" +
			"Verifica que tu Riot ID y región sean correctos e inténtalo de nuevo.\n" +
			"Para continuar, envía tu **Riot ID** en el siguiente formato: `NombreDeInvocador#TAG`.",
	}
	msgCompleted = &i18n.Message{
		ID: "registration.completed",
		Other: "¡Registro completado con éxito! <:AuroraClap:1465217066813493386>\n\n" +
			"**Riot ID:** {{.RiotID}}\n" +
			"**Región:** {{.Region}}\n\n" +
			"Ya puedes comenzar a usar mis funciones.\n" +
			"¡Te deseo geniales partidas, nos vemos en la Grieta!",
	}
	msgRestart = &i18n.Message{
		ID: "registration.restart",
		Other: "Entendido, empecemos de nuevo. <:AuroraBonk:1465219188561023124>\n\n" +
			"Este proceso tomará unos minutos y, una vez finalizado, podrás comenzar a utilizar mis funciones.\n" +
			"Puedes cancelar el proceso en cualquier momento usando el comando `Aurora!cancelar`.\n\n" +
			"El registro permanecerá abierto durante 1 hora; pasado ese tiempo se cancelará automáticamente.\n" +
			"Para continuar, envía tu **Riot ID** en el siguiente formato: `NombreDeInvocador#TAG`.",
	}
	msgNoConversation = &i18n.Message{
		ID:    "registration.noConversation",
		Other: "No tienes un registro en proceso. Usa `Aurora!registro` para comenzar <:AuroraPout:1465262072932728939>.",
	}
	msgStaleButton = &i18n.Message{
		ID:    "registration.staleButton",
		Other: "Ese botón ya no está activo. <:AuroraPout:1465262072932728939>",
	}
	msgSummonerError = &i18n.Message{
		ID: "registration.summonerError",
		Other: "Hubo un problema al obtener la información de tu cuenta. <:AuroraPout:1465262072932728939>\n" +
			"Por favor, intenta nuevamente más tarde.",
	}
	msgSaveFailed = &i18n.Message{
		ID: "registration.saveFailed",
		Other: "No pude guardar tu registro. <:AuroraDead:1465242238794862686>\n" +
			"Por favor, inicia el proceso de nuevo más tarde con `Aurora!registro`.",
	}
)
