package feedback

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierFor(t *testing.T) {
	tests := []struct {
		distance float64
		want     Tier
	}{
		{-0.5, TierNone},
		{0, TierHeavy},
		{1.0, TierHeavy},
		{1.999, TierHeavy},
		{2.0, TierMedium},
		{2.5, TierMedium},
		{2.999, TierMedium},
		{3.0, TierLight},
		{4.999, TierLight},
		{5.0, TierNone},
		{9, TierNone},
		{math.NaN(), TierNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TierFor(tt.distance), "TierFor(%g)", tt.distance)
	}
}

func TestTierString(t *testing.T) {
	assert.Equal(t, "light", TierLight.String())
	assert.Equal(t, "medium", TierMedium.String())
	assert.Equal(t, "heavy", TierHeavy.String())
	assert.Equal(t, "none", TierNone.String())
}
