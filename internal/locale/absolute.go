package locale

import (
	"time"

	"golang.org/x/text/language"
)

// FormatAbsolute renders t in its own location using the locale's date and
// time pattern. It serves as the tooltip next to a relative time.
func FormatAbsolute(t time.Time, tag language.Tag) string {
	data, ok := catalog[tag]
	if !ok {
		data = catalog[Default]
	}
	return t.Format(data.absolute)
}
