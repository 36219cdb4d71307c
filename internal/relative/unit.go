// Package relative resolves the distance between two instants into a signed
// magnitude of a single calendar unit.
package relative

import (
	"fmt"
	"strings"
	"time"
)

// Unit is a calendar granularity with a fixed length.
type Unit int

// Units in descending order of duration. The order is the tie-break rule used
// by Resolve: the first unit reaching a magnitude of one wins.
const (
	Year Unit = iota
	Month
	Day
	Hour
	Minute
	Second
)

const day = 24 * time.Hour

// Month and year lengths are approximations, not calendar-accurate values.
var durations = [...]time.Duration{
	Year:   365 * day,
	Month:  30 * day,
	Day:    day,
	Hour:   time.Hour,
	Minute: time.Minute,
	Second: time.Second,
}

var names = [...]string{
	Year:   "year",
	Month:  "month",
	Day:    "day",
	Hour:   "hour",
	Minute: "minute",
	Second: "second",
}

// Units returns all units, largest first.
func Units() []Unit {
	return []Unit{Year, Month, Day, Hour, Minute, Second}
}

// Valid reports whether u is one of the defined units.
func (u Unit) Valid() bool {
	return u >= Year && u <= Second
}

// Duration returns the fixed length of the unit. It is also the refresh
// cadence used while the unit is displayed.
func (u Unit) Duration() time.Duration {
	if !u.Valid() {
		return 0
	}
	return durations[u]
}

// Millis returns the fixed length of the unit in milliseconds.
func (u Unit) Millis() int64 {
	return u.Duration().Milliseconds()
}

func (u Unit) String() string {
	if !u.Valid() {
		return fmt.Sprintf("Unit(%d)", int(u))
	}
	return names[u]
}

// ParseUnit parses a singular or plural unit name ("hour", "hours").
func ParseUnit(s string) (Unit, error) {
	s = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s")
	for u, name := range names {
		if name == s {
			return Unit(u), nil
		}
	}
	return 0, fmt.Errorf("unknown unit %q", s)
}
