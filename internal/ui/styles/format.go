package styles

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// TruncateString truncates a string to fit within maxWidth cells, adding an
// ellipsis if needed. East Asian wide runes count as two cells.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}
	return runewidth.Truncate(s, maxWidth, "...")
}
