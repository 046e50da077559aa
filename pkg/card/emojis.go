package card

import (
	"strings"
	"unicode"
)

const (
	UnrankedEmoji     = "<:SinRango:1465508962341490861>"
	UnrankedCardEmoji = "<:SinRango:1469941168270872696>"
	UnknownEmoji      = "❓"
	NoRoleEmoji       = "<:abeja:1468085357248516136>"
	DPMEmoji          = "<:dpm:1467862743531913516>"
	ComfyEmoji        = "<:Aurora_Comfy:1463652023747743880>"
	InstagramEmoji    = "<:a:1467239729459101707>"
	TwitterEmoji      = "<:a:1467239483379548406>"
	TikTokEmoji       = "<:a:1467240496081666172>"
)

var tierEmojis = map[string]string{
	"IRON":        "<:Hierro:1465486905566171239>",
	"BRONZE":      "<:Bronce:1465483354932514968>",
	"SILVER":      "<:Plata:1465495513955827817>",
	"GOLD":        "<:Oro:1465498286613069844>",
	"PLATINUM":    "<:Platino:1465500320200261653>",
	"EMERALD":     "<:Esmeralda:1465502592464322725>",
	"DIAMOND":     "<:Diamante:1465505383333236768>",
	"MASTER":      "<:Maestro:1465506538356478147>",
	"GRANDMASTER": "<:GranMaestro:1465507402081374376>",
	"CHALLENGER":  "<:Retador:1465508045575426078>",
}

var divisionEmojis = map[string]string{
	"IRON_I":       "<:I_Hierro:1465488019212468418>",
	"IRON_II":      "<:II_Hierro:1465491872502775963>",
	"IRON_III":     "<:III_Hierro:1465490596318810256>",
	"IRON_IV":      "<:IV_Hierro:1465492094134124660>",
	"BRONZE_I":     "<:I_Bronce:1465494074797723773>",
	"BRONZE_II":    "<:II_Bronce:1465494048793166025>",
	"BRONZE_III":   "<:III_Bronce:1465494026290729065>",
	"BRONZE_IV":    "<:IV_Bronce:1465494001565044900>",
	"SILVER_I":     "<:I_Plata:1465497061750345830>",
	"SILVER_II":    "<:II_Plata:1465497088354681059>",
	"SILVER_III":   "<:III_Plata:1465497114082672771>",
	"SILVER_IV":    "<:IV_Plata:1465497148480159826>",
	"GOLD_I":       "<:I_Oro:1465498926135382178>",
	"GOLD_II":      "<:II_Oro:1465498949832933467>",
	"GOLD_III":     "<:III_Oro:1465498975871434895>",
	"GOLD_IV":      "<:IV_Oro:1465498999623651511>",
	"PLATINUM_I":   "<:I_Platino:1465501005499338805>",
	"PLATINUM_II":  "<:II_Platino:1465501030006521866>",
	"PLATINUM_III": "<:III_Platino:1465501052508967138>",
	"PLATINUM_IV":  "<:IV_Platino:1465501082510950531>",
	"EMERALD_I":    "<:I_Esmeralda:1465504001104674930>",
	"EMERALD_II":   "<:II_Esmeralda:1465503980141416531>",
	"EMERALD_III":  "<:III_Esmeralda:1465503956376490129>",
	"EMERALD_IV":   "<:IV_Esmeralda:1465503936235573371>",
	"DIAMOND_I":    "<:I_Diamante:1465505286021320781>",
	"DIAMOND_II":   "<:II_Diamante:1465505312940490853>",
	"DIAMOND_III":  "<:III_Diamante:1465505336885772403>",
	"DIAMOND_IV":   "<:IV_Diamante:1465505358050234533>",
}

// TierEmoji falls back to the unranked badge for unknown tiers.
func TierEmoji(tier string) string {
	if e, ok := tierEmojis[tier]; ok {
		return e
	}
	return UnrankedEmoji
}

// RankEmojis is the tier badge followed by the division badge when one exists.
func RankEmojis(tier, division string) string {
	t := TierEmoji(tier)
	if division == "" {
		return t
	}
	if d, ok := divisionEmojis[tier+"_"+division]; ok {
		return t + " " + d
	}
	return t
}

var roleEmojis = map[string]string{
	"TOP":     "<:TOP:1467813815025537117>",
	"JUNGLE":  "<:JG:1467816067329036288>",
	"MIDDLE":  "<:MID:1467822381988057110>",
	"BOTTOM":  "<:ADC:1467826689504575683>",
	"UTILITY": "<:SUPP:1467827410329407672>",
}

var roleNames = map[string]string{
	"TOP":     "Superior",
	"JUNGLE":  "Jungla",
	"MIDDLE":  "Central",
	"BOTTOM":  "Tirador",
	"UTILITY": "Soporte",
}

func RoleEmoji(role string) string {
	if e, ok := roleEmojis[role]; ok {
		return e
	}
	return UnknownEmoji
}

func RoleName(role string) string {
	if n, ok := roleNames[role]; ok {
		return n
	}
	return role
}

// championEmojis is keyed by championKey of the display name.
var championEmojis = map[string]string{
	"aatrox":       "<:Aatrox:1465287757671694348>",
	"ahri":         "<:Ahri:1465288578085949683>",
	"akali":        "<:Akali:1465289180480405688>",
	"akshan":       "<:Akshan:1465289207089201162>",
	"alistar":      "<:Alistar:1465289679866953780>",
	"ambessa":      "<:Ambessa:1465289235576913931>",
	"amumu":        "<:Amumu:1465289262823112817>",
	"anivia":       "<:Anivia:1465289289884504138>",
	"annie":        "<:Annie:1465288600433197244>",
	"aphelios":     "<:Aphelios:1465289316690301065>",
	"ashe":         "<:Ashe:1465289340170141822>",
	"aurelionsol":  "<:AurelionSol:1465289829620387985>",
	"aurora":       "<:Aurora:1465289864173060292>",
	"azir":         "<:Azir:1465289896326467616>",
	"bard":         "<:Bardo:1465289950189846665>",
	"belveth":      "<:BelVeth:1465289973178826773>",
	"blitzcrank":   "<:Blitzcrank:1465289996498898975>",
	"brand":        "<:Brand:1465290016392741030>",
	"braum":        "<:Braum:1465290041936052315>",
	"briar":        "<:Briar:1465290062060060745>",
	"caitlyn":      "<:Caitlyn:1465290526394945577>",
	"camille":      "<:Camille:1465290570149924978>",
	"cassiopeia":   "<:Cassiopeia:1465291427100495892>",
	"chogath":      "<:ChoGath:1465290599581089898>",
	"corki":        "<:Corki:1465290626567245980>",
	"darius":       "<:Darius:1465290660059025502>",
	"diana":        "<:Diana:1465290755873443971>",
	"drmundo":      "<:DrMundo:1465290793051881584>",
	"draven":       "<:Draven:1465291479202398241>",
	"ekko":         "<:Ekko:1465290720809058335>",
	"elise":        "<:Elise:1465291690280488971>",
	"evelynn":      "<:Evelynn:1465291722010656794>",
	"ezreal":       "<:Ezreal:1465291742013292658>",
	"fiddlesticks": "<:Fiddlesticks:1465291762498277406>",
	"fiora":        "<:Fiora:1465291783490506764>",
	"fizz":         "<:Fizz:1465291827262263306>",
	"galio":        "<:Galio:1465291806601121874>",
	"gangplank":    "<:Gangplank:1465291854202409081>",
	"garen":        "<:Garen:1465291883352821781>",
	"gnar":         "<:Gnar:1465291903447863488>",
	"gragas":       "<:Gragas:1465292605741994066>",
	"graves":       "<:Graves:1465292629997780992>",
	"gwen":         "<:Gwen:1465292665288528005>",
	"hecarim":      "<:Hecarim:1465292688260862045>",
	"heimerdinger": "<:Heimerdinger:1465297945284055052>",
	"hwei":         "<:Hwei:1465297946953383989>",
	"illaoi":       "<:Illaoi:1465297948437909670>",
	"irelia":       "<:Irelia:1465299012373708871>",
	"ivern":        "<:Ivern:1465299043629535254>",
	"janna":        "<:Janna:1465297954326843495>",
	"jarvaniv":     "<:JarvanIV:1465295634796908646>",
	"jax":          "<:Jax:1465295791462551777>",
	"jayce":        "<:Jayce:1465295689671245857>",
	"jhin":         "<:Jhin:1465295823029141645>",
	"jinx":         "<:Jinx:1465295849801121878>",
	"ksante":       "<:KSante:1465296208888201321>",
	"kaisa":        "<:KaiSa:1465295887352856795>",
	"kalista":      "<:Kalista:1465295912162033737>",
	"karma":        "<:Karma:1465295939143991513>",
	"karthus":      "<:Karthus:1465295962506526792>",
	"kassadin":     "<:Kassadin:1465295989668581417>",
	"katarina":     "<:Katarina:1465296012942901348>",
	"kayle":        "<:Kayle:1465296037705945323>",
	"kayn":         "<:Kayn:1465296233466953913>",
	"kennen":       "<:Kennen:1465296259727233044>",
	"khazix":       "<:KhaZix:1465296810129227902>",
	"kindred":      "<:Kindred:1465296287359303791>",
	"kled":         "<:Kled:1465296312206364918>",
	"kogmaw":       "<:KogMaw:1465296337892544597>",
	"leblanc":      "<:LeBlanc:1465296373388804132>",
	"leesin":       "<:LeeSin:1465296397388480659>",
	"leona":        "<:Leona:1465296624216707113>",
	"lillia":       "<:Lillia:1465296431349760113>",
	"lissandra":    "<:Lissandra:1465297039775629402>",
	"lucian":       "<:Lucian:1465296748925816894>",
	"lulu":         "<:Lulu:1465297005298450599>",
	"lux":          "<:Lux:1465297284861268139>",
	"malphite":     "<:Malphite:1465296849010163764>",
	"malzahar":     "<:Malzahar:1465297414029316172>",
	"maokai":       "<:Maokai:1465297452004409396>",
	"masteryi":     "<:MaestroYi:1465296717833310281>",
	"mel":          "<:Mel:1465297321787920414>",
	"milio":        "<:Milio:1465297350540001321>",
	"missfortune":  "<:MissFortune:1465298233583730742>",
	"mordekaiser":  "<:Mordekaiser:1465298114117238836>",
	"morgana":      "<:Morgana:1465298010635370511>",
	"naafiri":      "<:Naafiri:1465310735923019881>",
	"nami":         "<:Nami:1465297915852357743>",
	"nasus":        "<:Nasus:1465297871208321128>",
	"nautilus":     "<:Nautilus:1465297824395821225>",
	"neeko":        "<:Neeko:1465297150299869227>",
	"nidalee":      "<:Nidalee:1465297979442466940>",
	"nilah":        "<:Nilah:1465297500566065184>",
	"nocturne":     "<:Nocturne:1465297549803126946>",
	"nunuwillump":  "<:NunuYWillump:1465297630023254140>",
	"olaf":         "<:Olaf:1465297668547936351>",
	"orianna":      "<:Orianna:1465297699044589763>",
	"ornn":         "<:Ornn:1465297739461165137>",
	"pantheon":     "<:Pantheon:1465297129122566144>",
	"poppy":        "<:Poppy:1465297101402407014>",
	"pyke":         "<:Pyke:1465300896383635680>",
	"qiyana":       "<:Qiyana:1465300917493436533>",
	"quinn":        "<:Quinn:1465300938335060130>",
	"rakan":        "<:Rakan:1465300960153829439>",
	"rammus":       "<:Rammus:1465301046824800298>",
	"reksai":       "<:RekSai:1465301070984122410>",
	"rell":         "<:Rell:1465301121936527360>",
	"renataglasc":  "<:RenataGlasc:1465301151175016492>",
	"renekton":     "<:Renekton:1465301177716707442>",
	"rengar":       "<:Rengar:1465301199975612652>",
	"riven":        "<:Riven:1465301257802617038>",
	"rumble":       "<:Rumble:1465301282230374431>",
	"ryze":         "<:Ryze:1465301306804535389>",
	"samira":       "<:Samira:1465301329126887444>",
	"sejuani":      "<:Sejuani:1465301355852726302>",
	"senna":        "<:Senna:1465301380700049452>",
	"seraphine":    "<:Seraphine:1465301403714195456>",
	"sett":         "<:Sett:1465301434663833634>",
	"shaco":        "<:Shaco:1465301468730097771>",
	"shen":         "<:Shen:1465301499717484598>",
	"shyvana":      "<:Shyvana:1465301603933225022>",
	"singed":       "<:Singed:1465301627086049280>",
	"sion":         "<:Sion:1465301663404392499>",
	"sivir":        "<:Sivir:1465301688960286804>",
	"skarner":      "<:Skarner:1465301713278861526>",
	"smolder":      "<:Smolder:1465301737333325864>",
	"sona":         "<:Sona:1465301762654081167>",
	"soraka":       "<:Soraka:1465301785882398905>",
	"swain":        "<:Swain:1465301808477110326>",
	"sylas":        "<:Sylas:1465301834347450581>",
	"syndra":       "<:Syndra:1465301929990160476>",
	"tahmkench":    "<:TahmKench:1465301956296835184>",
	"taliyah":      "<:Taliyah:1465301983106830346>",
	"talon":        "<:Talon:1465302011871232032>",
	"taric":        "<:Taric:1465302495344595106>",
	"teemo":        "<:Teemo:1465302032507338857>",
	"thresh":       "<:Thresh:1465302250304966808>",
	"tristana":     "<:Tristana:1465302082457305108>",
	"trundle":      "<:Trundle:1465302109019836530>",
	"tryndamere":   "<:Tryndamere:1465302155484463114>",
	"twistedfate":  "<:TwistedFate:1465302132478574634>",
	"twitch":       "<:Twitch:1465302530174091418>",
	"udyr":         "<:Udyr:1465302557034283056>",
	"urgot":        "<:Urgot:1465302586012864721>",
	"varus":        "<:Varus:1465302609001971884>",
	"vayne":        "<:Vayne:1465302643550326864>",
	"veigar":       "<:Veigar:1465302668984455271>",
	"velkoz":       "<:VelKoz:1465302720994086973>",
	"vex":          "<:Vex:1465302745237164114>",
	"vi":           "<:Vi:1465315999359172649>",
	"viego":        "<:Viego:1465465522048205129>",
	"viktor":       "<:Viktor:1465465545280323718>",
	"vladimir":     "<:Vladimir:1465465572413145294>",
	"volibear":     "<:Volibear:1465465597533098118>",
	"warwick":      "<:Warwick:1465465654437220402>",
	"wukong":       "<:Wukong:1465465694765187308>",
	"xayah":        "<:Xayah:1465465754962104360>",
	"xerath":       "<:Xerath:1465465807315140722>",
	"xinzhao":      "<:XinZhao:1465465847974858837>",
	"yasuo":        "<:Yasuo:1465465877607743560>",
	"yone":         "<:Yone:1465465999888351416>",
	"yorick":       "<:Yorick:1465465948575367439>",
	"yuumi":        "<:Yuumi:1465465926311743529>",
	"zac":          "<:Zac:1465465903473885255>",
	"zed":          "<:Zed:1465466071908745279>",
	"zeri":         "<:Zeri:1465466205488807956>",
	"ziggs":        "<:Ziggs:1465466231279583425>",
	"zilean":       "<:Zilean:1465466258148298832>",
	"zoe":          "<:Zoe:1465466095543783640>",
	"zyra":         "<:Zyra:1465465729561268417>",
}

// championKey keeps only the lower-cased letters, so "Kai'Sa" and "Kaisa" agree.
func championKey(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

func ChampionEmoji(name string) string {
	if e, ok := championEmojis[championKey(name)]; ok {
		return e
	}
	return UnknownEmoji
}
