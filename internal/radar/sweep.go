package radar

import (
	"math"
	"time"

	"proximity-radar.klederson.com/internal/config"
)

// Sweep manages the rotating sweep line state.
type Sweep struct {
	Angle     float64 // Current angle in radians [0, 2π)
	StartTime time.Time
}

// NewSweep creates a new sweep starting at 0 degrees (north).
func NewSweep() *Sweep {
	return &Sweep{StartTime: time.Now()}
}

// Update advances the sweep angle to now.
func (s *Sweep) Update(now time.Time) {
	elapsed := now.Sub(s.StartTime).Seconds()
	rps := float64(config.SweepSpeedRPM) / 60.0
	s.Angle = NormalizeAngle(elapsed * rps * 2 * math.Pi)
}

// Degrees returns the current sweep angle in degrees.
func (s *Sweep) Degrees() float64 {
	return s.Angle * 180 / math.Pi
}

// Intensity returns the glow intensity [0, 1] for a given cell angle.
// Cells outside the trailing SweepTrailDeg degrees return 0.
func (s *Sweep) Intensity(cellAngle float64) float64 {
	diff := NormalizeAngle(s.Angle - cellAngle)

	trailRad := config.SweepTrailDeg * math.Pi / 180.0
	if diff > trailRad {
		return 0
	}
	return 1.0 - diff/trailRad
}
