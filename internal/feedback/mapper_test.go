package feedback

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"proximity-radar.klederson.com/internal/config"
)

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

func TestMapDistanceFarDisablesBeep(t *testing.T) {
	for _, d := range []float64{5.0, 5.0001, 7.5, 100, math.Inf(1)} {
		p := MapDistance(d)
		assert.False(t, p.BeepEnabled(), "distance %g", d)
		assert.Zero(t, p.BeepInterval(), "distance %g", d)
	}
}

func TestMapDistanceBeepPeriod(t *testing.T) {
	for _, d := range []float64{0.01, 0.2, 0.5, 0.75, 1, 2.5, 4.99} {
		p := MapDistance(d)
		assert.True(t, p.BeepEnabled(), "distance %g", d)
		assert.Equal(t, math.Max(0.5, d), p.Beep, "distance %g", d)
	}
}

func TestMapDistanceHapticPeriod(t *testing.T) {
	for _, d := range []float64{0, 0.3, 1, 3, 5, 12} {
		assert.Equal(t, d/30.0, MapDistance(d).Haptic, "distance %g", d)
	}
}

func TestMapDistanceOutOfRange(t *testing.T) {
	for _, d := range []float64{-1, -0.001, math.NaN()} {
		p := MapDistance(d)
		assert.False(t, p.BeepEnabled(), "distance %g", d)
		assert.Equal(t, config.MinHapticPeriod, p.HapticInterval(config.MinHapticPeriod), "distance %g", d)
	}
}

func TestHapticIntervalFloor(t *testing.T) {
	floor := 20 * time.Millisecond

	assert.Equal(t, floor, MapDistance(0).HapticInterval(floor))
	assert.Equal(t, floor, MapDistance(0.3).HapticInterval(floor)) // 10ms raw
	assert.Equal(t, 100*time.Millisecond, MapDistance(3).HapticInterval(floor))
}

func TestHapticIntervalHugeDistances(t *testing.T) {
	floor := 20 * time.Millisecond
	for _, d := range []float64{1e12, 1e300, math.Inf(1)} {
		got := MapDistance(d).HapticInterval(floor)
		assert.Equal(t, time.Duration(math.MaxInt64), got, "distance %g", d)
	}

	// Just under the cap still converts.
	assert.Equal(t, 3000*time.Hour, MapDistance(3000*3600*config.HapticDivisor).HapticInterval(floor))
}

func TestBeepIntervalFloor(t *testing.T) {
	assert.Equal(t, 500*time.Millisecond, MapDistance(0).BeepInterval())
	assert.Equal(t, 500*time.Millisecond, MapDistance(0.3).BeepInterval())
	assert.Equal(t, 2500*time.Millisecond, MapDistance(2.5).BeepInterval())
}

func TestMapDistanceScenario(t *testing.T) {
	distances := []float64{5.0, 3.0, 2.5, 1.0}
	wantHaptic := []float64{0.1667, 0.1, 0.0833, 0.0333}
	wantBeep := []float64{math.Inf(1), 3.0, 2.5, 1.0}

	for i, d := range distances {
		p := MapDistance(d)
		assert.Equal(t, wantHaptic[i], round4(p.Haptic), "haptic at %g", d)
		assert.Equal(t, wantBeep[i], p.Beep, "beep at %g", d)
	}
}
