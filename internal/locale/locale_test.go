package locale

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/zjrosen/reltime/internal/relative"
)

func TestNegotiate(t *testing.T) {
	tests := []struct {
		prefs []string
		want  language.Tag
	}{
		{[]string{"en"}, language.English},
		{[]string{"de-LU"}, language.German},
		{[]string{"de-AT"}, language.German},
		{[]string{"es-419"}, language.Spanish},
		{[]string{"it-CH"}, language.Italian},
		{[]string{"ru-Cyrl-RU"}, language.Russian},
		{[]string{"zh-Hant"}, language.TraditionalChinese},
		{[]string{"zh-Hans"}, language.SimplifiedChinese},
		{[]string{"sm"}, language.English},
		{[]string{"not a locale!!"}, language.English},
		{[]string{"xx-invalid", "fr-CA"}, language.French},
	}

	for _, tt := range tests {
		t.Run(tt.prefs[len(tt.prefs)-1], func(t *testing.T) {
			require.Equal(t, tt.want, Negotiate(tt.prefs))
		})
	}
}

func TestNegotiate_EmptyUsesEnvironment(t *testing.T) {
	t.Setenv("LANGUAGE", "")
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "de_DE.UTF-8")

	require.Equal(t, language.German, Negotiate(nil))
}

func TestEnvPreference(t *testing.T) {
	env := map[string]string{
		"LANGUAGE": "fr_CA:fr",
		"LC_ALL":   "C",
		"LANG":     "en_US.UTF-8@euro",
	}
	got := EnvPreference(func(k string) string { return env[k] })
	require.Equal(t, []string{"fr-CA", "fr", "en-US"}, got)

	require.Empty(t, EnvPreference(func(string) string { return "" }))
}

func TestRelativeFormatter_Format(t *testing.T) {
	tests := []struct {
		locale string
		value  int64
		unit   relative.Unit
		want   string
	}{
		{"en", -4, relative.Year, "4 years ago"},
		{"en", -1, relative.Minute, "1 minute ago"},
		{"en", 1, relative.Minute, "in 1 minute"},
		{"en", -11, relative.Hour, "11 hours ago"},
		{"en", 0, relative.Second, "0 seconds ago"},
		{"en", 3, relative.Day, "in 3 days"},
		{"de", -1, relative.Second, "vor 1 Sekunde"},
		{"de", -2, relative.Second, "vor 2 Sekunden"},
		{"de", -4, relative.Year, "vor 4 Jahren"},
		{"de", -11, relative.Month, "vor 11 Monaten"},
		{"de", -1, relative.Year, "vor 1 Jahr"},
		{"de", -5, relative.Day, "vor 5 Tagen"},
		{"de", -4, relative.Hour, "vor 4 Stunden"},
		{"fr", -1, relative.Minute, "il y a 1 minute"},
		{"fr", 2, relative.Month, "dans 2 mois"},
		{"es", -1, relative.Hour, "hace 1 hora"},
		{"es", -5, relative.Year, "hace 5 años"},
		{"es", -1, relative.Minute, "hace 1 minuto"},
		{"it", -5, relative.Month, "5 mesi fa"},
		{"ru", -5, relative.Month, "5 месяцев назад"},
		{"ru", -2, relative.Day, "2 дня назад"},
		{"ru", -21, relative.Year, "21 год назад"},
		{"ru", 1, relative.Minute, "через 1 минуту"},
		{"zh-Hant", -1, relative.Hour, "1 小時前"},
		{"zh-Hans", -1, relative.Hour, "1小时前"},
		{"sm", -34, relative.Year, "34 years ago"},
		{"rrm", -34, relative.Year, "34 years ago"},
	}

	for _, tt := range tests {
		t.Run(tt.locale+"/"+tt.want, func(t *testing.T) {
			f := NewRelativeFormatter(Negotiate([]string{tt.locale}), FormatOptions{})
			require.Equal(t, tt.want, f.Format(tt.value, tt.unit))
		})
	}
}

func TestRelativeFormatter_NumericAuto(t *testing.T) {
	en := NewRelativeFormatter(language.English, FormatOptions{Numeric: NumericAuto})
	require.Equal(t, "now", en.Format(0, relative.Second))
	require.Equal(t, "yesterday", en.Format(-1, relative.Day))
	require.Equal(t, "tomorrow", en.Format(1, relative.Day))
	require.Equal(t, "2 days ago", en.Format(-2, relative.Day))

	de := NewRelativeFormatter(language.German, FormatOptions{Numeric: NumericAuto})
	require.Equal(t, "jetzt", de.Format(0, relative.Second))
	require.Equal(t, "letztes Jahr", de.Format(-1, relative.Year))

	es := NewRelativeFormatter(language.Spanish, FormatOptions{Numeric: NumericAuto})
	require.Equal(t, "el año pasado", es.Format(-1, relative.Year))
}

func TestRelativeFormatter_ShortStyle(t *testing.T) {
	en := NewRelativeFormatter(language.English, FormatOptions{Style: StyleShort})
	require.Equal(t, "3 hr. ago", en.Format(-3, relative.Hour))
	require.Equal(t, "in 2 mo.", en.Format(2, relative.Month))

	de := NewRelativeFormatter(language.German, FormatOptions{Style: StyleNarrow})
	require.Equal(t, "vor 5 Min.", de.Format(-5, relative.Minute))

	// Locales without short data fall back to long.
	fr := NewRelativeFormatter(language.French, FormatOptions{Style: StyleShort})
	require.Equal(t, "il y a 3 heures", fr.Format(-3, relative.Hour))
}

func TestRelativeFormatter_GroupsDigits(t *testing.T) {
	en := NewRelativeFormatter(language.English, FormatOptions{})
	require.Equal(t, "1,200 years ago", en.Format(-1200, relative.Year))
}

func TestRelativeFormatter_UnknownTagUsesDefault(t *testing.T) {
	f := NewRelativeFormatter(language.Japanese, FormatOptions{})
	require.Equal(t, Default, f.Locale())
	require.Equal(t, StyleLong, f.Options().Style)
	require.Equal(t, NumericAlways, f.Options().Numeric)
}

func TestParseStyleAndNumeric(t *testing.T) {
	st, err := ParseStyle("")
	require.NoError(t, err)
	require.Equal(t, StyleLong, st)

	st, err = ParseStyle("Short")
	require.NoError(t, err)
	require.Equal(t, StyleShort, st)

	_, err = ParseStyle("tiny")
	require.Error(t, err)

	n, err := ParseNumeric("auto")
	require.NoError(t, err)
	require.Equal(t, NumericAuto, n)

	_, err = ParseNumeric("sometimes")
	require.Error(t, err)
}

func TestFormatAbsolute(t *testing.T) {
	enDate := time.Date(2023, 2, 6, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "2/6/2023, 12:00:00 AM", FormatAbsolute(enDate, Negotiate([]string{"en-US"})))

	deDate := time.Date(2019, 2, 6, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "6.2.2019, 00:00:00", FormatAbsolute(deDate, Negotiate([]string{"de"})))

	require.Equal(t, "2/6/2023, 12:00:00 AM", FormatAbsolute(enDate, language.Japanese))
}

func TestNormalize(t *testing.T) {
	tag, opts := Normalize(language.Japanese, FormatOptions{Numeric: NumericAuto})
	require.Equal(t, Default, tag)
	require.Equal(t, FormatOptions{Style: StyleLong, Numeric: NumericAuto}, opts)

	tag, _ = Normalize(language.German, FormatOptions{})
	require.Equal(t, language.German, tag)
}
