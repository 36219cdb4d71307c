// Package timestamp resolves the accepted timestamp inputs (native times,
// ISO-8601 strings and epoch milliseconds) into one immutable instant.
package timestamp

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalid is returned for input that does not describe an instant.
var ErrInvalid = errors.New("invalid date")

// ISOLayout is the canonical machine-readable form, always in UTC.
const ISOLayout = "2006-01-02T15:04:05.000Z"

// Timestamp is an instant with millisecond resolution.
type Timestamp struct {
	t     time.Time
	valid bool
}

// Zoned layouts carry their own offset.
var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
}

// Local layouts carry no zone and are read as UTC.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006-01",
	"2006",
}

// Parse accepts an ISO-8601 date or date-time, or a signed integer of epoch
// milliseconds.
func Parse(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{}, fmt.Errorf("parsing %q: %w", s, ErrInvalid)
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return FromTime(t), nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return FromTime(t), nil
		}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return FromMillis(ms), nil
	}
	return Timestamp{}, fmt.Errorf("parsing %q: %w", s, ErrInvalid)
}

// MustParse is Parse for literals known to be valid. It panics otherwise.
func MustParse(s string) Timestamp {
	ts, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// FromTime truncates t to millisecond resolution.
func FromTime(t time.Time) Timestamp {
	return Timestamp{t: t.Truncate(time.Millisecond), valid: true}
}

// FromMillis interprets ms as milliseconds since the Unix epoch, in UTC.
func FromMillis(ms int64) Timestamp {
	return Timestamp{t: time.UnixMilli(ms).UTC(), valid: true}
}

// Valid reports whether ts came from Parse, FromTime or FromMillis. The
// zero Timestamp is invalid; 0001-01-01T00:00:00Z is not.
func (ts Timestamp) Valid() bool {
	return ts.valid
}

// Time returns the instant.
func (ts Timestamp) Time() time.Time {
	return ts.t
}

// Millis returns milliseconds since the Unix epoch.
func (ts Timestamp) Millis() int64 {
	return ts.t.UnixMilli()
}

// ISO returns the canonical UTC representation, e.g. 2023-02-06T00:00:00.000Z.
func (ts Timestamp) ISO() string {
	return ts.t.UTC().Format(ISOLayout)
}

func (ts Timestamp) String() string {
	return ts.ISO()
}

// Equal reports whether both timestamps are the same instant.
func (ts Timestamp) Equal(other Timestamp) bool {
	return ts.t.Equal(other.t)
}
