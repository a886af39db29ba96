//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"martcore/internal/domain/shipping"
	"martcore/internal/infra"
	"martcore/internal/usecase/commands"
	sharedmock "martcore/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type shippingFixture struct {
	reads   *sharedmock.MockCommandReads
	zones   *sharedmock.MockZoneRepository
	rates   *sharedmock.MockRateRepository
	usecase commands.ShippingCommands
}

func newShippingFixture(t *testing.T) *shippingFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &shippingFixture{
		reads: sharedmock.NewMockCommandReads(ctrl),
		zones: sharedmock.NewMockZoneRepository(ctrl),
		rates: sharedmock.NewMockRateRepository(ctrl),
	}

	tx := sharedmock.NewMockTx(ctrl)
	tx.EXPECT().Zones().Return(f.zones).AnyTimes()
	tx.EXPECT().Rates().Return(f.rates).AnyTimes()
	tx.EXPECT().Reads().Return(f.reads).AnyTimes()

	f.usecase = commands.NewShippingUseCase(&stubUoW{tx: tx, reads: f.reads})
	return f
}

func rateParams(zoneID uuid.UUID, min, max float64) commands.CreateRateParams {
	return commands.CreateRateParams{
		ZoneID:       zoneID,
		RateType:     shipping.RateTypeWeight,
		MinValue:     min,
		MaxValue:     max,
		BaseRate:     50,
		PerUnitRate:  5,
		CODSurcharge: 30,
	}
}

func TestCreateZone(t *testing.T) {
	t.Run("persists a valid zone", func(t *testing.T) {
		f := newShippingFixture(t)
		f.zones.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		id, err := f.usecase.CreateZone(context.Background(), commands.CreateZoneParams{
			StoreID: uuid.New(), Name: "West", CountryCode: "IN", StateCodes: []string{"MH"},
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
	})

	t.Run("empty name is a validation error", func(t *testing.T) {
		f := newShippingFixture(t)

		_, err := f.usecase.CreateZone(context.Background(), commands.CreateZoneParams{
			StoreID: uuid.New(), Name: " ", CountryCode: "IN",
		})
		assert.ErrorIs(t, err, commands.ErrDomainValidation)
	})
}

func TestCreateRate(t *testing.T) {
	zoneID := uuid.New()

	t.Run("non-overlapping slab is created", func(t *testing.T) {
		f := newShippingFixture(t)
		existing := shipping.ReconstructRate(uuid.New(), zoneID, shipping.RateTypeWeight, 0, 10, 50, 5, 0, true)
		f.reads.EXPECT().ActiveRatesForPartition(gomock.Any(), zoneID, shipping.RateTypeWeight).
			Return([]*shipping.Rate{existing}, nil)
		f.rates.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		id, err := f.usecase.CreateRate(context.Background(), rateParams(zoneID, 10, 20))
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
	})

	t.Run("overlapping slab is rejected naming the existing bounds", func(t *testing.T) {
		f := newShippingFixture(t)
		existing := shipping.ReconstructRate(uuid.New(), zoneID, shipping.RateTypeWeight, 0, 10, 50, 5, 0, true)
		f.reads.EXPECT().ActiveRatesForPartition(gomock.Any(), zoneID, shipping.RateTypeWeight).
			Return([]*shipping.Rate{existing}, nil)

		_, err := f.usecase.CreateRate(context.Background(), rateParams(zoneID, 5, 15))
		require.ErrorIs(t, err, commands.ErrSlabOverlap)

		var overlap *shipping.OverlapError
		require.ErrorAs(t, err, &overlap)
		assert.Equal(t, existing.ID(), overlap.ExistingID)
	})

	t.Run("inverted bounds are a validation error", func(t *testing.T) {
		f := newShippingFixture(t)

		_, err := f.usecase.CreateRate(context.Background(), rateParams(zoneID, 20, 10))
		assert.ErrorIs(t, err, commands.ErrDomainValidation)
	})

	t.Run("unknown zone", func(t *testing.T) {
		f := newShippingFixture(t)
		f.reads.EXPECT().ActiveRatesForPartition(gomock.Any(), zoneID, shipping.RateTypeWeight).
			Return(nil, infra.WrapRepoErr("zone not found", errors.New("no rows"), infra.KindNotFound))

		_, err := f.usecase.CreateRate(context.Background(), rateParams(zoneID, 0, 10))
		assert.ErrorIs(t, err, commands.ErrZoneNotFound)
	})

	t.Run("serialization failure surfaces as a retryable conflict", func(t *testing.T) {
		f := newShippingFixture(t)
		f.reads.EXPECT().ActiveRatesForPartition(gomock.Any(), zoneID, shipping.RateTypeWeight).
			Return(nil, nil)
		f.rates.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(infra.WrapRepoErr("serialization failure", errors.New("40001"), infra.KindConflict))

		_, err := f.usecase.CreateRate(context.Background(), rateParams(zoneID, 0, 10))
		assert.ErrorIs(t, err, commands.ErrSlabConflict)
	})
}
