package riot

const (
	QueueNormalDraft = 400
	QueueRankedSolo  = 420
	QueueNormalBlind = 430
	QueueRankedFlex  = 440
	QueueARAM        = 450
	QueueClash       = 700
)

const (
	QueueTypeSolo    = "RANKED_SOLO_5x5"
	QueueTypeFlex    = "RANKED_FLEX_SR"
	QueueTypeTFT     = "RANKED_TFT"
	QueueTypeTFTTurb = "RANKED_TFT_TURBO"
)

var queueLabels = map[int]string{
	400:  "Normal",
	420:  "Solo/Duo",
	430:  "Normal",
	440:  "Flexible",
	450:  "ARAM",
	700:  "Clash",
	830:  "Bots Intro",
	840:  "Bots Principiante",
	850:  "Bots Intermedio",
	900:  "URF",
	1020: "One For All",
	1300: "Nexus Blitz",
	1400: "Spellbook Definitivo",
	1900: "Pick URF",
}

func QueueLabel(queueID int) string {
	if label, ok := queueLabels[queueID]; ok {
		return label
	}
	return "Partida"
}
