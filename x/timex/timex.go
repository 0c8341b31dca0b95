package timex

import "time"

// MinuteCrossed reports whether a minute boundary lies after prev and
// at or before now. UTC offsets are whole minutes, so wall-clock minute
// edges line up with displayed ones regardless of zone.
func MinuteCrossed(prev, now time.Time) bool {
	return now.Truncate(time.Minute).After(prev.Truncate(time.Minute))
}
