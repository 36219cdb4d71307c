package locale

import (
	"fmt"
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/zjrosen/reltime/internal/relative"
)

// Style is the length of the rendered unit name.
type Style string

const (
	StyleLong   Style = "long"
	StyleShort  Style = "short"
	StyleNarrow Style = "narrow"
)

// Numeric controls whether phrases like "yesterday" replace "1 day ago".
type Numeric string

const (
	NumericAlways Numeric = "always"
	NumericAuto   Numeric = "auto"
)

// ParseStyle returns an error for anything but long, short or narrow. The
// empty string is long.
func ParseStyle(s string) (Style, error) {
	switch st := Style(strings.ToLower(s)); st {
	case "", StyleLong:
		return StyleLong, nil
	case StyleShort, StyleNarrow:
		return st, nil
	default:
		return "", fmt.Errorf("unknown style %q (must be long, short or narrow)", s)
	}
}

// ParseNumeric returns an error for anything but always or auto. The empty
// string is always.
func ParseNumeric(s string) (Numeric, error) {
	switch n := Numeric(strings.ToLower(s)); n {
	case "", NumericAlways:
		return NumericAlways, nil
	case NumericAuto:
		return n, nil
	default:
		return "", fmt.Errorf("unknown numeric mode %q (must be always or auto)", s)
	}
}

// FormatOptions is passed through to the relative time primitive.
type FormatOptions struct {
	Style   Style
	Numeric Numeric
}

// RelativeFormatter renders a signed value of a unit in one locale.
// Positive values are in the future ("in 3 days"), negative values and zero in
// the past ("3 days ago").
type RelativeFormatter struct {
	tag     language.Tag
	opts    FormatOptions
	data    localeData
	printer *message.Printer
}

// NewRelativeFormatter builds a formatter for tag, which should come from
// Negotiate. Tags outside the catalog use Default.
func NewRelativeFormatter(tag language.Tag, opts FormatOptions) *RelativeFormatter {
	tag, opts = Normalize(tag, opts)
	return &RelativeFormatter{
		tag:     tag,
		opts:    opts,
		data:    catalog[tag],
		printer: message.NewPrinter(tag),
	}
}

// Normalize returns the tag and options a formatter built from them would
// actually use.
func Normalize(tag language.Tag, opts FormatOptions) (language.Tag, FormatOptions) {
	if _, ok := catalog[tag]; !ok {
		tag = Default
	}
	if opts.Style == "" {
		opts.Style = StyleLong
	}
	if opts.Numeric == "" {
		opts.Numeric = NumericAlways
	}
	return tag, opts
}

// Locale returns the locale the formatter renders in.
func (f *RelativeFormatter) Locale() language.Tag {
	return f.tag
}

// Options returns the effective format options.
func (f *RelativeFormatter) Options() FormatOptions {
	return f.opts
}

// Format renders value units relative to now.
func (f *RelativeFormatter) Format(value int64, unit relative.Unit) string {
	p := f.patterns(unit)

	if f.opts.Numeric == NumericAuto {
		if phrase, ok := p.auto[value]; ok {
			return phrase
		}
	}

	forms := p.past
	abs := value
	if value > 0 {
		forms = p.future
	} else {
		abs = -value
	}

	pattern, ok := forms[f.pluralForm(abs)]
	if !ok {
		pattern = forms[plural.Other]
	}
	return strings.Replace(pattern, "{0}", f.printer.Sprintf("%d", abs), 1)
}

func (f *RelativeFormatter) patterns(unit relative.Unit) unitPatterns {
	table := f.data.long
	if f.opts.Style != StyleLong && f.data.short != nil {
		table = f.data.short
	}
	if p, ok := table[unit]; ok {
		return p
	}
	// Invalid units render as seconds, the terminal fallback unit.
	return table[relative.Second]
}

func (f *RelativeFormatter) pluralForm(n int64) plural.Form {
	// Integer operands only: no visible fraction digits.
	return plural.Cardinal.MatchPlural(f.tag, int(n), 0, 0, 0, 0)
}
