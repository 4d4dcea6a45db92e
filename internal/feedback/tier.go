package feedback

import "proximity-radar.klederson.com/internal/config"

// Tier is the intensity of a tactile pulse.
type Tier int

const (
	TierNone Tier = iota
	TierLight
	TierMedium
	TierHeavy
)

func (t Tier) String() string {
	switch t {
	case TierLight:
		return "light"
	case TierMedium:
		return "medium"
	case TierHeavy:
		return "heavy"
	default:
		return "none"
	}
}

// TierFor selects the pulse tier for a distance. Distances at or beyond
// the far threshold, negative distances and NaN yield TierNone.
func TierFor(distance float64) Tier {
	switch {
	case !inRange(distance):
		return TierNone
	case distance >= config.LightTierMin:
		return TierLight
	case distance >= config.MediumTierMin:
		return TierMedium
	default:
		return TierHeavy
	}
}
