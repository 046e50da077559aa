package locale

import (
	"os"
	"path"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

const (
	DefaultLang       = "es"
	DefaultLocalePath = "locales/"
)

var bundleInstance *i18n.Bundle

var activeLang = DefaultLang

var localeLanguages = make(map[string]string)

var logger = zap.NewNop()

func SetLogger(l *zap.Logger) {
	if l != nil {
		logger = l.Named("locale")
	}
}

func InitLang(localePath, defaultLang string) {
	if localePath == "" {
		localePath = DefaultLocalePath
	}
	if defaultLang == "" {
		defaultLang = DefaultLang
	}
	activeLang = defaultLang
	bundleInstance = LoadTranslations(localePath, defaultLang)
}

func GetBundle() *i18n.Bundle {
	if bundleInstance == nil {
		InitLang("", "")
	}
	return bundleInstance
}

func GetLanguages() map[string]string {
	return localeLanguages
}

// LoadTranslations reads every active.<lang>.toml in localePath. The compiled
// Spanish text is always available as the fallback.
func LoadTranslations(localePath, defaultLang string) *i18n.Bundle {
	bundle := i18n.NewBundle(language.Spanish)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	localeLanguages = make(map[string]string)
	localeLanguages[defaultLang] = language.Make(defaultLang).String()

	files, err := os.ReadDir(localePath)
	if err == nil {
		re := regexp.MustCompile(`^active\.(?P<lang>.*)\.toml$`)
		for _, file := range files {
			match := re.FindStringSubmatch(file.Name())
			if match == nil {
				continue
			}
			fileLang := match[re.SubexpIndex("lang")]

			if _, err := bundle.LoadMessageFile(path.Join(localePath, file.Name())); err != nil {
				logger.Warn("failed to load translation", zap.String("file", file.Name()), zap.Error(err))
				continue
			}
			langName, _ := i18n.NewLocalizer(bundle, fileLang).Localize(&i18n.LocalizeConfig{
				DefaultMessage: &i18n.Message{
					ID:    "locale.language.name",
					Other: "Español",
				},
			})
			localeLanguages[fileLang] = langName
			logger.Info("loaded language", zap.String("lang", fileLang), zap.String("name", langName))
		}
	}

	bundleInstance = bundle
	return bundle
}

// LocalizeMessage renders message in the language chosen at InitLang.
func LocalizeMessage(message *i18n.Message, templateData map[string]interface{}) string {
	return LocalizeMessageLang(message, templateData, activeLang)
}

func LocalizeMessageLang(message *i18n.Message, templateData map[string]interface{}, lang string) string {
	localizer := i18n.NewLocalizer(GetBundle(), lang)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		DefaultMessage: message,
		TemplateData:   templateData,
	})
	if err != nil {
		logger.Debug("localization fell back", zap.String("id", message.ID), zap.Error(err))
	}

	// fix go-i18n extract
	return strings.ReplaceAll(msg, "\\n", "\n")
}
