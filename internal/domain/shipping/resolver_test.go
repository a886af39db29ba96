//go:build unit

package shipping_test

import (
	"testing"

	"martcore/internal/domain/shipping"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustZone(t *testing.T, storeID uuid.UUID, name string, states, pincodes []string) *shipping.Zone {
	t.Helper()
	z, err := shipping.NewZone(uuid.New(), storeID, name, "IN", states, pincodes)
	require.NoError(t, err)
	return z
}

func TestZoneCovers(t *testing.T) {
	storeID := uuid.New()

	t.Run("country-wide zone covers any destination in the country", func(t *testing.T) {
		z := mustZone(t, storeID, "All India", nil, nil)

		assert.True(t, z.Covers(shipping.Destination{CountryCode: "IN", StateCode: "MH", Pincode: "400001"}))
		assert.True(t, z.Covers(shipping.Destination{CountryCode: "in", StateCode: "KA"}))
		assert.False(t, z.Covers(shipping.Destination{CountryCode: "US", StateCode: "CA"}))
	})

	t.Run("state-scoped zone matches state case-insensitively", func(t *testing.T) {
		z := mustZone(t, storeID, "West", []string{"MH", "GJ"}, nil)

		assert.True(t, z.Covers(shipping.Destination{CountryCode: "IN", StateCode: "mh"}))
		assert.False(t, z.Covers(shipping.Destination{CountryCode: "IN", StateCode: "KA"}))
	})

	t.Run("pincode list takes precedence over states", func(t *testing.T) {
		z := mustZone(t, storeID, "Mumbai Metro", []string{"MH"}, []string{"400001", "400002"})

		assert.True(t, z.Covers(shipping.Destination{CountryCode: "IN", StateCode: "MH", Pincode: "400001"}))
		// State matches but pincode does not; the narrower field decides.
		assert.False(t, z.Covers(shipping.Destination{CountryCode: "IN", StateCode: "MH", Pincode: "411001"}))
	})

	t.Run("inactive zone never covers", func(t *testing.T) {
		z := shipping.ReconstructZone(uuid.New(), storeID, "Old", "IN", nil, nil, false)
		assert.False(t, z.Covers(shipping.Destination{CountryCode: "IN"}))
	})

	t.Run("empty name or country rejected", func(t *testing.T) {
		_, err := shipping.NewZone(uuid.New(), storeID, "  ", "IN", nil, nil)
		assert.ErrorIs(t, err, shipping.ErrEmptyZoneName)

		_, err = shipping.NewZone(uuid.New(), storeID, "West", " ", nil, nil)
		assert.ErrorIs(t, err, shipping.ErrEmptyCountryCode)
	})
}

func TestResolve(t *testing.T) {
	storeID := uuid.New()
	zone := mustZone(t, storeID, "West", []string{"MH"}, nil)
	light := mustRate(t, zone.ID(), shipping.RateTypeWeight, 0, 5, 40, 10, 30)
	heavy := mustRate(t, zone.ID(), shipping.RateTypeWeight, 5, 50, 80, 6, 30)

	zones := []*shipping.Zone{zone}
	rates := map[string][]*shipping.Rate{
		zone.ID().String(): {light, heavy},
	}
	dest := shipping.Destination{CountryCode: "IN", StateCode: "MH"}

	t.Run("picks the slab matching the measurement", func(t *testing.T) {
		q := shipping.Resolve(zones, rates, dest, shipping.RateTypeWeight, 3, false)
		require.True(t, q.Serviceable)
		assert.Equal(t, light.ID(), q.Rate.ID())
		assert.InDelta(t, 40.00, q.BaseRate, 1e-9)
		assert.InDelta(t, 30.00, q.VariableRate, 1e-9)
		assert.InDelta(t, 0.00, q.CODSurcharge, 1e-9)
		assert.InDelta(t, 70.00, q.Total, 1e-9)
	})

	t.Run("boundary measurement falls into the upper slab", func(t *testing.T) {
		q := shipping.Resolve(zones, rates, dest, shipping.RateTypeWeight, 5, false)
		require.True(t, q.Serviceable)
		assert.Equal(t, heavy.ID(), q.Rate.ID())
	})

	t.Run("cod surcharge carried into the quote", func(t *testing.T) {
		q := shipping.Resolve(zones, rates, dest, shipping.RateTypeWeight, 3, true)
		require.True(t, q.Serviceable)
		assert.InDelta(t, 30.00, q.CODSurcharge, 1e-9)
		assert.InDelta(t, 100.00, q.Total, 1e-9)
	})

	t.Run("uncovered destination is unserviceable", func(t *testing.T) {
		q := shipping.Resolve(zones, rates, shipping.Destination{CountryCode: "IN", StateCode: "KA"}, shipping.RateTypeWeight, 3, false)
		assert.False(t, q.Serviceable)
	})

	t.Run("measurement outside every slab is unserviceable", func(t *testing.T) {
		q := shipping.Resolve(zones, rates, dest, shipping.RateTypeWeight, 500, false)
		assert.False(t, q.Serviceable)
	})

	t.Run("rate type mismatch is unserviceable", func(t *testing.T) {
		q := shipping.Resolve(zones, rates, dest, shipping.RateTypeOrderValue, 3, false)
		assert.False(t, q.Serviceable)
	})
}
