package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"agrifields/internal/domain"
)

var (
	supportedTags = []language.Tag{
		language.English,
		language.Hindi,
		language.Telugu,
		language.Tamil,
		language.Kannada,
		language.Marathi,
	}
	matcher = language.NewMatcher(supportedTags)
)

// Match picks the best supported language for an Accept-Language header or a
// single locale such as "hi-IN". ok is false when nothing matched with at
// least high confidence, in which case en is returned.
func Match(accept string) (lang domain.Language, ok bool) {
	accept = strings.TrimSpace(accept)
	if accept == "" {
		return domain.DefaultLanguage, false
	}
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return domain.DefaultLanguage, false
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence < language.High {
		return domain.DefaultLanguage, false
	}
	return domain.Languages[index], true
}

// NativeName returns the language name written in that language, e.g.
// "हिन्दी" for hi, as shown in the language selector.
func NativeName(lang domain.Language) string {
	tag, err := language.Parse(string(lang.OrDefault()))
	if err != nil {
		return string(lang)
	}
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return string(lang)
}

// EnglishName returns the English name of the language ("Telugu"). It is
// used in AI instructions that ask for a reply language.
func EnglishName(lang domain.Language) string {
	tag, err := language.Parse(string(lang.OrDefault()))
	if err != nil {
		return "English"
	}
	return display.English.Languages().Name(tag)
}

// regional languages of Indian states, keyed by ISO 3166-2:IN subdivision.
var stateLanguages = map[string]domain.Language{
	"AP": domain.LanguageTelugu,
	"TG": domain.LanguageTelugu,
	"TN": domain.LanguageTamil,
	"PY": domain.LanguageTamil,
	"KA": domain.LanguageKannada,
	"MH": domain.LanguageMarathi,
	"GA": domain.LanguageMarathi,
	"UP": domain.LanguageHindi,
	"MP": domain.LanguageHindi,
	"BR": domain.LanguageHindi,
	"RJ": domain.LanguageHindi,
	"HR": domain.LanguageHindi,
	"DL": domain.LanguageHindi,
	"UT": domain.LanguageHindi,
	"UK": domain.LanguageHindi,
	"HP": domain.LanguageHindi,
	"JH": domain.LanguageHindi,
	"CT": domain.LanguageHindi,
	"CG": domain.LanguageHindi,
	"CH": domain.LanguageHindi,
}

// LanguageForRegion maps a GeoIP region to the language most farmers there
// read. Regions outside India yield ok=false.
func LanguageForRegion(country, subdivision string) (domain.Language, bool) {
	if !strings.EqualFold(country, "IN") {
		return "", false
	}
	if lang, ok := stateLanguages[strings.ToUpper(subdivision)]; ok {
		return lang, true
	}
	return domain.LanguageHindi, true
}
