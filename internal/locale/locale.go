// Package locale formats relative and absolute times for the bundled
// locales and negotiates user preferences down to one of them.
package locale

import (
	"os"
	"strings"

	"golang.org/x/text/language"

	"github.com/zjrosen/reltime/internal/log"
)

// Default is the locale used when nothing in the preference list matches.
var Default = language.English

// supported is ordered so that Default is first: the matcher falls back to
// index 0 when it finds no match.
var supported = []language.Tag{
	language.English,
	language.German,
	language.French,
	language.Spanish,
	language.Italian,
	language.Russian,
	language.SimplifiedChinese,
	language.TraditionalChinese,
}

var matcher = language.NewMatcher(supported)

// Supported returns the bundled locales.
func Supported() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// Negotiate picks the best bundled locale for the preference list. Malformed
// and unsupported tags are skipped, never reported. An empty list consults
// the environment.
func Negotiate(prefs []string) language.Tag {
	if len(prefs) == 0 {
		prefs = EnvPreference(os.Getenv)
	}

	tags := make([]language.Tag, 0, len(prefs))
	for _, p := range prefs {
		tag, err := language.Parse(p)
		if err != nil {
			log.Debug(log.CatLocale, "skipping malformed locale", "tag", p, "error", err)
			continue
		}
		tags = append(tags, tag)
	}
	if len(tags) == 0 {
		return Default
	}

	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		log.Debug(log.CatLocale, "no locale match, using default", "prefs", prefs, "default", Default)
		return Default
	}
	return supported[idx]
}

// EnvPreference reads the POSIX locale variables in precedence order and
// returns them as BCP 47 tags ("en_US.UTF-8" becomes "en-US").
func EnvPreference(getenv func(string) string) []string {
	var prefs []string
	if list := getenv("LANGUAGE"); list != "" {
		for _, l := range strings.Split(list, ":") {
			prefs = appendPosix(prefs, l)
		}
	}
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		prefs = appendPosix(prefs, getenv(key))
	}
	return prefs
}

func appendPosix(prefs []string, value string) []string {
	if i := strings.IndexAny(value, ".@"); i >= 0 {
		value = value[:i]
	}
	value = strings.ReplaceAll(strings.TrimSpace(value), "_", "-")
	if value == "" || value == "C" || value == "POSIX" {
		return prefs
	}
	return append(prefs, value)
}
