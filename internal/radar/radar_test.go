package radar

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"proximity-radar.klederson.com/internal/feedback"
)

func TestNormalizeAngle(t *testing.T) {
	assert.InDelta(t, 0, NormalizeAngle(2*math.Pi), 1e-12)
	assert.InDelta(t, math.Pi/2, NormalizeAngle(-3*math.Pi/2), 1e-12)
	assert.InDelta(t, math.Pi, NormalizeAngle(5*math.Pi), 1e-12)
}

func TestCellAngle(t *testing.T) {
	assert.InDelta(t, 0, CellAngle(10, 5, 10, 10), 1e-12)           // north
	assert.InDelta(t, math.Pi/2, CellAngle(15, 10, 10, 10), 1e-12)  // east
	assert.InDelta(t, math.Pi, CellAngle(10, 15, 10, 10), 1e-12)    // south
	assert.InDelta(t, 3*math.Pi/2, CellAngle(5, 10, 10, 10), 1e-12) // west
}

func TestMetersToRadius(t *testing.T) {
	assert.Equal(t, 10.0, MetersToRadius(3, 6, 20))
	assert.Equal(t, 20.0, MetersToRadius(9, 6, 20))
	assert.Equal(t, 0.0, MetersToRadius(-1, 6, 20))
}

func TestRingChar(t *testing.T) {
	assert.Equal(t, '-', RingChar(0))
	assert.Equal(t, '|', RingChar(math.Pi/2))
	assert.Equal(t, '/', RingChar(math.Pi/4))
	assert.Equal(t, '\\', RingChar(-math.Pi/4))
}

func TestSweepIntensity(t *testing.T) {
	s := NewSweep()
	s.Update(s.StartTime.Add(500 * time.Millisecond)) // quarter turn at 30 RPM
	assert.InDelta(t, 90, s.Degrees(), 1e-6)

	assert.InDelta(t, 1.0, s.Intensity(s.Angle), 1e-9)
	assert.InDelta(t, 0.5, s.Intensity(s.Angle-math.Pi/6), 1e-9)
	assert.Zero(t, s.Intensity(s.Angle+0.1))
}

func TestRenderTarget(t *testing.T) {
	sweep := NewSweep()

	out := Render(60, 24, Target{Distance: 2.5, Known: true}, sweep)
	assert.Equal(t, 24, len(strings.Split(out, "\n")))
	assert.Equal(t, 1, strings.Count(out, "@"))

	out = Render(60, 24, Target{}, sweep)
	assert.NotContains(t, out, "@")
	assert.Contains(t, out, "+")

	out = Render(60, 24, Target{Distance: 1, Known: true, Pulse: true, Tier: feedback.TierHeavy, Beep: true}, sweep)
	assert.Contains(t, out, "*")
	assert.NotContains(t, out, "+")
}

func TestRenderTooSmall(t *testing.T) {
	assert.Empty(t, Render(5, 3, Target{}, NewSweep()))
}

func TestTierColor(t *testing.T) {
	assert.NotEqual(t, TierColor(feedback.TierLight), TierColor(feedback.TierHeavy))
	assert.Equal(t, colorDim, TierColor(feedback.TierNone))
}
