//go:build unit

package shipping_test

import (
	"testing"

	"martcore/internal/domain/shipping"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRate(t *testing.T, zoneID uuid.UUID, rateType shipping.RateType, min, max, base, perUnit, cod float64) *shipping.Rate {
	t.Helper()
	r, err := shipping.NewRate(uuid.New(), zoneID, rateType, min, max, base, perUnit, cod)
	require.NoError(t, err)
	return r
}

func TestNewRate(t *testing.T) {
	zoneID := uuid.New()

	t.Run("valid slab", func(t *testing.T) {
		r, err := shipping.NewRate(uuid.New(), zoneID, shipping.RateTypeWeight, 0, 10, 50, 5, 30)
		require.NoError(t, err)
		assert.True(t, r.IsActive())
	})

	t.Run("invalid rate type", func(t *testing.T) {
		_, err := shipping.NewRate(uuid.New(), zoneID, shipping.RateType("distance"), 0, 10, 50, 5, 0)
		assert.ErrorIs(t, err, shipping.ErrInvalidRateType)
	})

	t.Run("max must exceed min", func(t *testing.T) {
		_, err := shipping.NewRate(uuid.New(), zoneID, shipping.RateTypeWeight, 10, 10, 50, 5, 0)
		assert.ErrorIs(t, err, shipping.ErrInvalidSlabBounds)

		_, err = shipping.NewRate(uuid.New(), zoneID, shipping.RateTypeWeight, 10, 5, 50, 5, 0)
		assert.ErrorIs(t, err, shipping.ErrInvalidSlabBounds)
	})

	t.Run("negative amounts rejected", func(t *testing.T) {
		_, err := shipping.NewRate(uuid.New(), zoneID, shipping.RateTypeWeight, 0, 10, -1, 5, 0)
		assert.ErrorIs(t, err, shipping.ErrNegativeRate)
	})
}

func TestRateMatches(t *testing.T) {
	r := mustRate(t, uuid.New(), shipping.RateTypeWeight, 5, 10, 50, 5, 0)

	// Half-open interval: min inclusive, max exclusive.
	assert.True(t, r.Matches(5))
	assert.True(t, r.Matches(9.999))
	assert.False(t, r.Matches(10))
	assert.False(t, r.Matches(4.999))
}

func TestRateOverlap(t *testing.T) {
	zoneID := uuid.New()

	t.Run("overlapping intervals rejected with existing bounds", func(t *testing.T) {
		existing := mustRate(t, zoneID, shipping.RateTypeWeight, 0, 10, 50, 5, 0)
		candidate := mustRate(t, zoneID, shipping.RateTypeWeight, 5, 15, 60, 5, 0)

		err := candidate.CheckAgainst([]*shipping.Rate{existing})
		var overlap *shipping.OverlapError
		require.ErrorAs(t, err, &overlap)
		assert.Equal(t, existing.ID(), overlap.ExistingID)
		assert.Contains(t, overlap.Error(), "[0, 10)")
	})

	t.Run("adjacent slabs do not overlap", func(t *testing.T) {
		existing := mustRate(t, zoneID, shipping.RateTypeWeight, 0, 10, 50, 5, 0)
		candidate := mustRate(t, zoneID, shipping.RateTypeWeight, 10, 20, 80, 5, 0)

		assert.NoError(t, candidate.CheckAgainst([]*shipping.Rate{existing}))
	})

	t.Run("containment overlaps both ways", func(t *testing.T) {
		outer := mustRate(t, zoneID, shipping.RateTypeWeight, 0, 100, 50, 5, 0)
		inner := mustRate(t, zoneID, shipping.RateTypeWeight, 20, 30, 60, 5, 0)

		assert.Error(t, inner.CheckAgainst([]*shipping.Rate{outer}))
		assert.Error(t, outer.CheckAgainst([]*shipping.Rate{inner}))
	})

	t.Run("different rate types never conflict", func(t *testing.T) {
		existing := mustRate(t, zoneID, shipping.RateTypeOrderValue, 0, 10, 50, 5, 0)
		candidate := mustRate(t, zoneID, shipping.RateTypeWeight, 0, 10, 50, 5, 0)

		assert.NoError(t, candidate.CheckAgainst([]*shipping.Rate{existing}))
	})

	t.Run("inactive slabs are ignored", func(t *testing.T) {
		inactive := shipping.ReconstructRate(uuid.New(), zoneID, shipping.RateTypeWeight, 0, 10, 50, 5, 0, false)
		candidate := mustRate(t, zoneID, shipping.RateTypeWeight, 0, 10, 50, 5, 0)

		assert.NoError(t, candidate.CheckAgainst([]*shipping.Rate{inactive}))
	})
}

func TestRateCost(t *testing.T) {
	r := mustRate(t, uuid.New(), shipping.RateTypeWeight, 0, 10, 50, 7.5, 30)

	t.Run("prepaid", func(t *testing.T) {
		assert.InDelta(t, 72.50, r.Cost(3, false), 1e-9)
	})

	t.Run("cod adds the surcharge", func(t *testing.T) {
		assert.InDelta(t, 102.50, r.Cost(3, true), 1e-9)
	})

	t.Run("cod surcharge applies to order_value slabs too", func(t *testing.T) {
		ov := mustRate(t, uuid.New(), shipping.RateTypeOrderValue, 0, 1000, 40, 0, 25)
		assert.InDelta(t, 65.00, ov.Cost(500, true), 1e-9)
	})
}
