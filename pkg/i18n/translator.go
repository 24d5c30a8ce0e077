// Package i18n provides the string lookup used by the service pages: a
// Translator capability, the weekday label list, and a Catalog of embedded
// locale files.
package i18n

// Translator looks up the localized string for key. Implementations decide
// what a missing key yields; Catalog returns the default-language text or the
// key itself.
type Translator interface {
	Translate(key string) string
}

// TranslatorFunc adapts a function to the Translator interface.
type TranslatorFunc func(key string) string

func (f TranslatorFunc) Translate(key string) string { return f(key) }

// WeekdayKeys are the translation keys for Sunday (index 0) through Saturday.
var WeekdayKeys = [7]string{
	"Global.Sunday",
	"Global.Monday",
	"Global.Tuesday",
	"Global.Wednesday",
	"Global.Thursday",
	"Global.Friday",
	"Global.Saturday",
}

// Weekdays returns the seven localized weekday labels, Sunday first. The order
// does not depend on the locale.
func Weekdays(t Translator) [7]string {
	var days [7]string
	for i, key := range WeekdayKeys {
		days[i] = t.Translate(key)
	}
	return days
}

// LanguageOf reports the language a Translator resolved to, or "" when the
// translator does not say.
func LanguageOf(t Translator) string {
	if l, ok := t.(interface{ Lang() string }); ok {
		return l.Lang()
	}
	return ""
}
