package scheduling

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPremiumRateMatchesFormulaAcrossTable(t *testing.T) {
	multipliers := []float64{1.0, 1.35, 1.7}

	for _, specialty := range Specialties() {
		base, ok := BaseRate(specialty)
		require.True(t, ok)

		for _, multiplier := range multipliers {
			rate, err := PremiumRate(specialty, multiplier)
			require.NoError(t, err, "%s x%.2f", specialty, multiplier)
			assert.Equal(t, math.Round(base*multiplier), rate, "%s x%.2f", specialty, multiplier)
		}
	}
}

func TestPremiumRateUnknownSpecialty(t *testing.T) {
	_, err := PremiumRate("Astronaut", 1.2)
	assert.ErrorIs(t, err, ErrUnknownSpecialty)
}

func TestClampMultiplierBoundsAndStep(t *testing.T) {
	assert.Equal(t, MinMultiplier, ClampMultiplier(0.5))
	assert.Equal(t, MaxMultiplier, ClampMultiplier(2.3))
	// Snapped values land exactly on the grid, including both bounds.
	assert.Equal(t, MinMultiplier, ClampMultiplier(1.0))
	assert.Equal(t, MaxMultiplier, ClampMultiplier(1.7))
	assert.Equal(t, 1.35, ClampMultiplier(1.35))
	// Off-grid values snap to the nearest 0.05 step.
	assert.Equal(t, 1.35, ClampMultiplier(1.36))
	assert.Equal(t, 1.40, ClampMultiplier(1.38))
}

func TestClampMultiplierStaysWithinBounds(t *testing.T) {
	for m := 0.9; m <= 1.8; m += 0.01 {
		clamped := ClampMultiplier(m)
		assert.GreaterOrEqual(t, clamped, MinMultiplier, "input %.2f", m)
		assert.LessOrEqual(t, clamped, MaxMultiplier, "input %.2f", m)
	}
}

func TestPremiumRateClampsMultiplier(t *testing.T) {
	base, ok := BaseRate("Registered Nurse")
	require.True(t, ok)

	rate, err := PremiumRate("Registered Nurse", 9.9)
	require.NoError(t, err)
	assert.Equal(t, math.Round(base*MaxMultiplier), rate)
}
