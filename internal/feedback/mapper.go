package feedback

import (
	"math"
	"time"

	"proximity-radar.klederson.com/internal/config"
)

// Periods holds the two alert periods derived from one distance sample.
type Periods struct {
	Haptic float64 // Seconds, distance / HapticDivisor
	Beep   float64 // Seconds, +Inf when beeps are disabled
}

// MapDistance derives both alert periods from a distance in meters.
// Beeps are disabled at or beyond the far threshold and for negative or
// NaN distances. The haptic period is returned raw; HapticInterval
// applies the timer floor.
func MapDistance(distance float64) Periods {
	p := Periods{
		Haptic: distance / config.HapticDivisor,
		Beep:   math.Inf(1),
	}
	if inRange(distance) {
		p.Beep = math.Max(config.BeepFloor, distance)
	}
	return p
}

// BeepEnabled reports whether a beep alarm should be armed.
func (p Periods) BeepEnabled() bool {
	return !math.IsInf(p.Beep, 1) && !math.IsNaN(p.Beep)
}

// HapticInterval converts the haptic period to a timer interval no
// shorter than floor.
func (p Periods) HapticInterval(floor time.Duration) time.Duration {
	return clampInterval(p.Haptic, floor)
}

// BeepInterval converts the beep period to a timer interval. It returns
// 0 when beeps are disabled.
func (p Periods) BeepInterval() time.Duration {
	if !p.BeepEnabled() {
		return 0
	}
	return clampInterval(p.Beep, 0)
}

func clampInterval(seconds float64, floor time.Duration) time.Duration {
	if math.IsNaN(seconds) || seconds <= 0 {
		return floor
	}
	ns := seconds * float64(time.Second)
	if ns >= float64(math.MaxInt64) {
		return time.Duration(math.MaxInt64)
	}
	d := time.Duration(ns)
	if d < floor {
		return floor
	}
	return d
}

// inRange reports whether a distance is close enough to beep.
func inRange(distance float64) bool {
	return distance >= 0 && distance < config.FarThreshold
}
