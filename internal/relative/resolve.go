package relative

import "time"

// Resolve maps the distance between now and target to a signed magnitude and a
// unit. A positive magnitude means target is in the future, a negative one
// means it is in the past.
//
// When allowFuture is false, future targets are clamped to (0, Second). The
// magnitude is zero only for Second.
func Resolve(now, target time.Time, strategy RoundStrategy, allowFuture bool) (int64, Unit) {
	// UnixMilli differences do not saturate like time.Duration (~292 years).
	delta := now.UnixMilli() - target.UnixMilli()

	if !allowFuture && delta < 0 {
		return 0, Second
	}

	// Round the absolute ratio and re-apply the sign afterwards. Rounding a
	// negative ratio directly would bump floor(-0.9) to -1.
	abs, sign := delta, int64(-1)
	if delta < 0 {
		abs, sign = -delta, 1
	}

	for _, u := range Units() {
		candidate := int64(strategy.Apply(float64(abs) / float64(u.Millis())))
		if candidate >= 1 {
			return candidate * sign, u
		}
	}
	return 0, Second
}
