package locale

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"

	"github.com/zjrosen/reltime/internal/relative"
)

// unitPatterns holds CLDR relative-time patterns for one unit. {0} is
// replaced by the formatted number.
type unitPatterns struct {
	future map[plural.Form]string
	past   map[plural.Form]string
	// auto holds the numeric=auto phrases keyed by signed value.
	auto map[int64]string
}

type localeData struct {
	long  map[relative.Unit]unitPatterns
	short map[relative.Unit]unitPatterns
	// absolute is a time.Format layout approximating toLocaleString.
	absolute string
}

func oneOther(one, other string) map[plural.Form]string {
	return map[plural.Form]string{plural.One: one, plural.Other: other}
}

func same(pattern string) map[plural.Form]string {
	return map[plural.Form]string{plural.Other: pattern}
}

func slavic(one, few, many, other string) map[plural.Form]string {
	return map[plural.Form]string{plural.One: one, plural.Few: few, plural.Many: many, plural.Other: other}
}

func lastThisNext(last, this, next string) map[int64]string {
	return map[int64]string{-1: last, 0: this, 1: next}
}

var catalog = map[language.Tag]localeData{
	language.English: {
		absolute: "1/2/2006, 3:04:05 PM",
		long: map[relative.Unit]unitPatterns{
			relative.Year: {
				future: oneOther("in {0} year", "in {0} years"),
				past:   oneOther("{0} year ago", "{0} years ago"),
				auto:   lastThisNext("last year", "this year", "next year"),
			},
			relative.Month: {
				future: oneOther("in {0} month", "in {0} months"),
				past:   oneOther("{0} month ago", "{0} months ago"),
				auto:   lastThisNext("last month", "this month", "next month"),
			},
			relative.Day: {
				future: oneOther("in {0} day", "in {0} days"),
				past:   oneOther("{0} day ago", "{0} days ago"),
				auto:   lastThisNext("yesterday", "today", "tomorrow"),
			},
			relative.Hour: {
				future: oneOther("in {0} hour", "in {0} hours"),
				past:   oneOther("{0} hour ago", "{0} hours ago"),
				auto:   map[int64]string{0: "this hour"},
			},
			relative.Minute: {
				future: oneOther("in {0} minute", "in {0} minutes"),
				past:   oneOther("{0} minute ago", "{0} minutes ago"),
				auto:   map[int64]string{0: "this minute"},
			},
			relative.Second: {
				future: oneOther("in {0} second", "in {0} seconds"),
				past:   oneOther("{0} second ago", "{0} seconds ago"),
				auto:   map[int64]string{0: "now"},
			},
		},
		short: map[relative.Unit]unitPatterns{
			relative.Year: {
				future: same("in {0} yr."),
				past:   same("{0} yr. ago"),
				auto:   lastThisNext("last yr.", "this yr.", "next yr."),
			},
			relative.Month: {
				future: same("in {0} mo."),
				past:   same("{0} mo. ago"),
				auto:   lastThisNext("last mo.", "this mo.", "next mo."),
			},
			relative.Day: {
				future: oneOther("in {0} day", "in {0} days"),
				past:   oneOther("{0} day ago", "{0} days ago"),
				auto:   lastThisNext("yesterday", "today", "tomorrow"),
			},
			relative.Hour: {
				future: same("in {0} hr."),
				past:   same("{0} hr. ago"),
				auto:   map[int64]string{0: "this hour"},
			},
			relative.Minute: {
				future: same("in {0} min."),
				past:   same("{0} min. ago"),
				auto:   map[int64]string{0: "this minute"},
			},
			relative.Second: {
				future: same("in {0} sec."),
				past:   same("{0} sec. ago"),
				auto:   map[int64]string{0: "now"},
			},
		},
	},
	language.German: {
		absolute: "2.1.2006, 15:04:05",
		long: map[relative.Unit]unitPatterns{
			relative.Year: {
				future: oneOther("in {0} Jahr", "in {0} Jahren"),
				past:   oneOther("vor {0} Jahr", "vor {0} Jahren"),
				auto:   lastThisNext("letztes Jahr", "dieses Jahr", "nächstes Jahr"),
			},
			relative.Month: {
				future: oneOther("in {0} Monat", "in {0} Monaten"),
				past:   oneOther("vor {0} Monat", "vor {0} Monaten"),
				auto:   lastThisNext("letzten Monat", "diesen Monat", "nächsten Monat"),
			},
			relative.Day: {
				future: oneOther("in {0} Tag", "in {0} Tagen"),
				past:   oneOther("vor {0} Tag", "vor {0} Tagen"),
				auto: map[int64]string{
					-2: "vorgestern", -1: "gestern", 0: "heute", 1: "morgen", 2: "übermorgen",
				},
			},
			relative.Hour: {
				future: oneOther("in {0} Stunde", "in {0} Stunden"),
				past:   oneOther("vor {0} Stunde", "vor {0} Stunden"),
				auto:   map[int64]string{0: "in dieser Stunde"},
			},
			relative.Minute: {
				future: oneOther("in {0} Minute", "in {0} Minuten"),
				past:   oneOther("vor {0} Minute", "vor {0} Minuten"),
				auto:   map[int64]string{0: "in dieser Minute"},
			},
			relative.Second: {
				future: oneOther("in {0} Sekunde", "in {0} Sekunden"),
				past:   oneOther("vor {0} Sekunde", "vor {0} Sekunden"),
				auto:   map[int64]string{0: "jetzt"},
			},
		},
		short: map[relative.Unit]unitPatterns{
			relative.Year: {
				future: same("in {0} J."),
				past:   same("vor {0} J."),
				auto:   lastThisNext("letztes Jahr", "dieses Jahr", "nächstes Jahr"),
			},
			relative.Month: {
				future: same("in {0} Mon."),
				past:   same("vor {0} Mon."),
				auto:   lastThisNext("letzten Monat", "diesen Monat", "nächsten Monat"),
			},
			relative.Day: {
				future: oneOther("in {0} Tag", "in {0} Tagen"),
				past:   oneOther("vor {0} Tag", "vor {0} Tagen"),
				auto:   lastThisNext("gestern", "heute", "morgen"),
			},
			relative.Hour: {
				future: same("in {0} Std."),
				past:   same("vor {0} Std."),
				auto:   map[int64]string{0: "in dieser Stunde"},
			},
			relative.Minute: {
				future: same("in {0} Min."),
				past:   same("vor {0} Min."),
				auto:   map[int64]string{0: "in dieser Minute"},
			},
			relative.Second: {
				future: same("in {0} Sek."),
				past:   same("vor {0} Sek."),
				auto:   map[int64]string{0: "jetzt"},
			},
		},
	},
	language.French: {
		absolute: "02/01/2006 15:04:05",
		long: map[relative.Unit]unitPatterns{
			relative.Year: {
				future: oneOther("dans {0} an", "dans {0} ans"),
				past:   oneOther("il y a {0} an", "il y a {0} ans"),
				auto:   lastThisNext("l’année dernière", "cette année", "l’année prochaine"),
			},
			relative.Month: {
				future: same("dans {0} mois"),
				past:   same("il y a {0} mois"),
				auto:   lastThisNext("le mois dernier", "ce mois-ci", "le mois prochain"),
			},
			relative.Day: {
				future: oneOther("dans {0} jour", "dans {0} jours"),
				past:   oneOther("il y a {0} jour", "il y a {0} jours"),
				auto: map[int64]string{
					-2: "avant-hier", -1: "hier", 0: "aujourd’hui", 1: "demain", 2: "après-demain",
				},
			},
			relative.Hour: {
				future: oneOther("dans {0} heure", "dans {0} heures"),
				past:   oneOther("il y a {0} heure", "il y a {0} heures"),
				auto:   map[int64]string{0: "cette heure-ci"},
			},
			relative.Minute: {
				future: oneOther("dans {0} minute", "dans {0} minutes"),
				past:   oneOther("il y a {0} minute", "il y a {0} minutes"),
				auto:   map[int64]string{0: "cette minute-ci"},
			},
			relative.Second: {
				future: oneOther("dans {0} seconde", "dans {0} secondes"),
				past:   oneOther("il y a {0} seconde", "il y a {0} secondes"),
				auto:   map[int64]string{0: "maintenant"},
			},
		},
	},
	language.Spanish: {
		absolute: "2/1/2006, 15:04:05",
		long: map[relative.Unit]unitPatterns{
			relative.Year: {
				future: oneOther("dentro de {0} año", "dentro de {0} años"),
				past:   oneOther("hace {0} año", "hace {0} años"),
				auto:   lastThisNext("el año pasado", "este año", "el próximo año"),
			},
			relative.Month: {
				future: oneOther("dentro de {0} mes", "dentro de {0} meses"),
				past:   oneOther("hace {0} mes", "hace {0} meses"),
				auto:   lastThisNext("el mes pasado", "este mes", "el próximo mes"),
			},
			relative.Day: {
				future: oneOther("dentro de {0} día", "dentro de {0} días"),
				past:   oneOther("hace {0} día", "hace {0} días"),
				auto: map[int64]string{
					-2: "anteayer", -1: "ayer", 0: "hoy", 1: "mañana", 2: "pasado mañana",
				},
			},
			relative.Hour: {
				future: oneOther("dentro de {0} hora", "dentro de {0} horas"),
				past:   oneOther("hace {0} hora", "hace {0} horas"),
				auto:   map[int64]string{0: "esta hora"},
			},
			relative.Minute: {
				future: oneOther("dentro de {0} minuto", "dentro de {0} minutos"),
				past:   oneOther("hace {0} minuto", "hace {0} minutos"),
				auto:   map[int64]string{0: "este minuto"},
			},
			relative.Second: {
				future: oneOther("dentro de {0} segundo", "dentro de {0} segundos"),
				past:   oneOther("hace {0} segundo", "hace {0} segundos"),
				auto:   map[int64]string{0: "ahora"},
			},
		},
	},
	language.Italian: {
		absolute: "2/1/2006, 15:04:05",
		long: map[relative.Unit]unitPatterns{
			relative.Year: {
				future: oneOther("tra {0} anno", "tra {0} anni"),
				past:   oneOther("{0} anno fa", "{0} anni fa"),
				auto:   lastThisNext("anno scorso", "quest’anno", "anno prossimo"),
			},
			relative.Month: {
				future: oneOther("tra {0} mese", "tra {0} mesi"),
				past:   oneOther("{0} mese fa", "{0} mesi fa"),
				auto:   lastThisNext("mese scorso", "questo mese", "mese prossimo"),
			},
			relative.Day: {
				future: oneOther("tra {0} giorno", "tra {0} giorni"),
				past:   oneOther("{0} giorno fa", "{0} giorni fa"),
				auto: map[int64]string{
					-2: "l’altro ieri", -1: "ieri", 0: "oggi", 1: "domani", 2: "dopodomani",
				},
			},
			relative.Hour: {
				future: oneOther("tra {0} ora", "tra {0} ore"),
				past:   oneOther("{0} ora fa", "{0} ore fa"),
				auto:   map[int64]string{0: "quest’ora"},
			},
			relative.Minute: {
				future: oneOther("tra {0} minuto", "tra {0} minuti"),
				past:   oneOther("{0} minuto fa", "{0} minuti fa"),
				auto:   map[int64]string{0: "questo minuto"},
			},
			relative.Second: {
				future: oneOther("tra {0} secondo", "tra {0} secondi"),
				past:   oneOther("{0} secondo fa", "{0} secondi fa"),
				auto:   map[int64]string{0: "ora"},
			},
		},
	},
	language.Russian: {
		absolute: "02.01.2006, 15:04:05",
		long: map[relative.Unit]unitPatterns{
			relative.Year: {
				future: slavic("через {0} год", "через {0} года", "через {0} лет", "через {0} года"),
				past:   slavic("{0} год назад", "{0} года назад", "{0} лет назад", "{0} года назад"),
				auto:   lastThisNext("в прошлом году", "в этом году", "в следующем году"),
			},
			relative.Month: {
				future: slavic("через {0} месяц", "через {0} месяца", "через {0} месяцев", "через {0} месяца"),
				past:   slavic("{0} месяц назад", "{0} месяца назад", "{0} месяцев назад", "{0} месяца назад"),
				auto:   lastThisNext("в прошлом месяце", "в этом месяце", "в следующем месяце"),
			},
			relative.Day: {
				future: slavic("через {0} день", "через {0} дня", "через {0} дней", "через {0} дня"),
				past:   slavic("{0} день назад", "{0} дня назад", "{0} дней назад", "{0} дня назад"),
				auto: map[int64]string{
					-2: "позавчера", -1: "вчера", 0: "сегодня", 1: "завтра", 2: "послезавтра",
				},
			},
			relative.Hour: {
				future: slavic("через {0} час", "через {0} часа", "через {0} часов", "через {0} часа"),
				past:   slavic("{0} час назад", "{0} часа назад", "{0} часов назад", "{0} часа назад"),
				auto:   map[int64]string{0: "в этот час"},
			},
			relative.Minute: {
				future: slavic("через {0} минуту", "через {0} минуты", "через {0} минут", "через {0} минуты"),
				past:   slavic("{0} минуту назад", "{0} минуты назад", "{0} минут назад", "{0} минуты назад"),
				auto:   map[int64]string{0: "в эту минуту"},
			},
			relative.Second: {
				future: slavic("через {0} секунду", "через {0} секунды", "через {0} секунд", "через {0} секунды"),
				past:   slavic("{0} секунду назад", "{0} секунды назад", "{0} секунд назад", "{0} секунды назад"),
				auto:   map[int64]string{0: "сейчас"},
			},
		},
	},
	language.SimplifiedChinese: {
		absolute: "2006/1/2 15:04:05",
		long: map[relative.Unit]unitPatterns{
			relative.Year: {
				future: same("{0}年后"),
				past:   same("{0}年前"),
				auto:   lastThisNext("去年", "今年", "明年"),
			},
			relative.Month: {
				future: same("{0}个月后"),
				past:   same("{0}个月前"),
				auto:   lastThisNext("上个月", "本月", "下个月"),
			},
			relative.Day: {
				future: same("{0}天后"),
				past:   same("{0}天前"),
				auto: map[int64]string{
					-2: "前天", -1: "昨天", 0: "今天", 1: "明天", 2: "后天",
				},
			},
			relative.Hour: {
				future: same("{0}小时后"),
				past:   same("{0}小时前"),
				auto:   map[int64]string{0: "这一时间 / 此时"},
			},
			relative.Minute: {
				future: same("{0}分钟后"),
				past:   same("{0}分钟前"),
				auto:   map[int64]string{0: "此刻"},
			},
			relative.Second: {
				future: same("{0}秒钟后"),
				past:   same("{0}秒钟前"),
				auto:   map[int64]string{0: "现在"},
			},
		},
	},
	language.TraditionalChinese: {
		absolute: "2006/1/2 15:04:05",
		long: map[relative.Unit]unitPatterns{
			relative.Year: {
				future: same("{0} 年後"),
				past:   same("{0} 年前"),
				auto:   lastThisNext("去年", "今年", "明年"),
			},
			relative.Month: {
				future: same("{0} 個月後"),
				past:   same("{0} 個月前"),
				auto:   lastThisNext("上個月", "本月", "下個月"),
			},
			relative.Day: {
				future: same("{0} 天後"),
				past:   same("{0} 天前"),
				auto: map[int64]string{
					-2: "前天", -1: "昨天", 0: "今天", 1: "明天", 2: "後天",
				},
			},
			relative.Hour: {
				future: same("{0} 小時後"),
				past:   same("{0} 小時前"),
				auto:   map[int64]string{0: "這一小時"},
			},
			relative.Minute: {
				future: same("{0} 分鐘後"),
				past:   same("{0} 分鐘前"),
				auto:   map[int64]string{0: "這一分鐘"},
			},
			relative.Second: {
				future: same("{0} 秒後"),
				past:   same("{0} 秒前"),
				auto:   map[int64]string{0: "現在"},
			},
		},
	},
}
