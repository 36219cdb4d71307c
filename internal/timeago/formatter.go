// Package timeago ties the resolver, the locale formatter and the refresh
// scheduler together into a display session for one timestamp.
package timeago

import (
	"golang.org/x/text/language"

	"github.com/zjrosen/reltime/internal/config"
	"github.com/zjrosen/reltime/internal/locale"
	"github.com/zjrosen/reltime/internal/relative"
)

// Formatter turns a resolved magnitude and unit into display text. While
// seconds are hidden, second-level results read as one minute.
type Formatter struct {
	primitive   *locale.RelativeFormatter
	hideSeconds bool
	pastText    *string
	futureText  *string
}

// NewFormatter wraps primitive with the hide-seconds options of opts.
func NewFormatter(primitive *locale.RelativeFormatter, opts config.Resolved) *Formatter {
	return &Formatter{
		primitive:   primitive,
		hideSeconds: opts.HideSeconds,
		pastText:    opts.PastText,
		futureText:  opts.FutureText,
	}
}

// Text formats magnitude (positive is future) in unit.
func (f *Formatter) Text(magnitude int64, unit relative.Unit) string {
	if unit != relative.Second || !f.hideSeconds {
		return f.primitive.Format(magnitude, unit)
	}
	if magnitude > 0 {
		if f.futureText != nil {
			return *f.futureText
		}
		return f.primitive.Format(1, relative.Minute)
	}
	if f.pastText != nil {
		return *f.pastText
	}
	return f.primitive.Format(-1, relative.Minute)
}

// Locale returns the negotiated locale.
func (f *Formatter) Locale() language.Tag {
	return f.primitive.Locale()
}
