package relative

import (
	"math"
	"strings"
)

// RoundStrategy selects how a fractional unit ratio becomes an integer.
type RoundStrategy string

const (
	RoundFloor RoundStrategy = "floor"
	RoundRound RoundStrategy = "round"
	// RoundCeil is accepted for compatibility; it bumps any fraction up to the
	// next whole unit, so it rarely reads naturally.
	RoundCeil RoundStrategy = "ceil"

	// RoundDefault is used when no strategy is configured and as the fallback
	// for unrecognized values.
	RoundDefault = RoundRound
)

// ParseRoundStrategy never fails. Unknown values map to RoundDefault.
func ParseRoundStrategy(s string) RoundStrategy {
	rs := RoundStrategy(strings.ToLower(strings.TrimSpace(s)))
	if rs.Known() {
		return rs
	}
	return RoundDefault
}

// Known reports whether rs names a supported strategy.
func (rs RoundStrategy) Known() bool {
	switch rs {
	case RoundFloor, RoundRound, RoundCeil:
		return true
	}
	return false
}

// Apply rounds a non-negative ratio. Unknown strategies behave like
// RoundDefault.
func (rs RoundStrategy) Apply(ratio float64) float64 {
	switch rs {
	case RoundFloor:
		return math.Floor(ratio)
	case RoundCeil:
		return math.Ceil(ratio)
	case RoundRound:
		return math.Round(ratio)
	default:
		return RoundDefault.Apply(ratio)
	}
}
