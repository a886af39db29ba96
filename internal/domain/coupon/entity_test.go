//go:build unit

package coupon_test

import (
	"testing"
	"time"

	"martcore/internal/domain/coupon"
	"martcore/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartWith(sku string, qty int, unitPrice float64) coupon.Cart {
	return builder.NewCart(coupon.CartItem{
		ProductID:  uuid.New(),
		SKU:        sku,
		Quantity:   qty,
		UnitPrice:  unitPrice,
		TotalPrice: unitPrice * float64(qty),
	})
}

func TestNewCoupon(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		c, err := builder.NewCouponBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, c)

		assert.Equal(t, "SAVE10", c.Code().String())
		assert.Equal(t, coupon.TypePercent, c.Kind())
		assert.True(t, c.IsActive())
	})

	t.Run("code is normalized to upper case", func(t *testing.T) {
		c, err := builder.NewCouponBuilder().WithCode("  save10  ").BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, "SAVE10", c.Code().String())
	})

	t.Run("code format validation", func(t *testing.T) {
		cases := []struct {
			name string
			code string
		}{
			{name: "too short", code: "AB"},
			{name: "too long", code: "ABCDEFGHIJKLMNOPQRSTU"},
			{name: "illegal characters", code: "SAVE-10"},
			{name: "empty", code: ""},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				_, err := builder.NewCouponBuilder().WithCode(c.code).BuildDomain()
				assert.ErrorIs(t, err, coupon.ErrInvalidCouponCode)
			})
		}
	})

	t.Run("invalid type rejected", func(t *testing.T) {
		_, err := builder.NewCouponBuilder().WithKind(coupon.Type("lottery"), 10).BuildDomain()
		assert.ErrorIs(t, err, coupon.ErrInvalidCouponType)
	})

	t.Run("non-positive value rejected", func(t *testing.T) {
		_, err := builder.NewCouponBuilder().WithKind(coupon.TypeFixed, 0).BuildDomain()
		assert.ErrorIs(t, err, coupon.ErrInvalidCouponValue)

		_, err = builder.NewCouponBuilder().WithKind(coupon.TypeFixed, -5).BuildDomain()
		assert.ErrorIs(t, err, coupon.ErrInvalidCouponValue)
	})
}

func TestCouponValidate(t *testing.T) {
	now := time.Now()
	userID := uuid.New()

	requireRejection := func(t *testing.T, err error, reason string) {
		t.Helper()
		var rejection *coupon.RejectionError
		require.ErrorAs(t, err, &rejection)
		assert.Equal(t, reason, rejection.Reason)
	}

	t.Run("active coupon with no conditions passes", func(t *testing.T) {
		c, err := builder.NewCouponBuilder().BuildDomain()
		require.NoError(t, err)

		err = c.Validate(now, cartWith("SKU001", 1, 100), &userID, coupon.UsageCounts{})
		assert.NoError(t, err)
	})

	t.Run("inactive coupon rejected", func(t *testing.T) {
		c, err := builder.NewCouponBuilder().Inactive().BuildDomain()
		require.NoError(t, err)

		err = c.Validate(now, cartWith("SKU001", 1, 100), &userID, coupon.UsageCounts{})
		requireRejection(t, err, coupon.ReasonInactiveExpired)
	})

	t.Run("outside validity window rejected", func(t *testing.T) {
		future := now.Add(24 * time.Hour)
		c, err := builder.NewCouponBuilder().WithWindow(&future, nil).BuildDomain()
		require.NoError(t, err)

		err = c.Validate(now, cartWith("SKU001", 1, 100), &userID, coupon.UsageCounts{})
		requireRejection(t, err, coupon.ReasonInactiveExpired)

		past := now.Add(-24 * time.Hour)
		c, err = builder.NewCouponBuilder().WithWindow(nil, &past).BuildDomain()
		require.NoError(t, err)

		err = c.Validate(now, cartWith("SKU001", 1, 100), &userID, coupon.UsageCounts{})
		requireRejection(t, err, coupon.ReasonInactiveExpired)
	})

	t.Run("minimum order gate", func(t *testing.T) {
		c, err := builder.NewCouponBuilder().WithMinOrder(500).BuildDomain()
		require.NoError(t, err)

		err = c.Validate(now, cartWith("SKU001", 1, 499), &userID, coupon.UsageCounts{})
		requireRejection(t, err, "Minimum order value of 500.00 required")

		err = c.Validate(now, cartWith("SKU001", 1, 500), &userID, coupon.UsageCounts{})
		assert.NoError(t, err)
	})

	t.Run("required products gate", func(t *testing.T) {
		c, err := builder.NewCouponBuilder().WithProductSKUs("SKU001", "SKU002").BuildDomain()
		require.NoError(t, err)

		err = c.Validate(now, cartWith("SKU999", 1, 100), &userID, coupon.UsageCounts{})
		requireRejection(t, err, coupon.ReasonMissingProducts)

		err = c.Validate(now, cartWith("SKU002", 1, 100), &userID, coupon.UsageCounts{})
		assert.NoError(t, err)
	})

	t.Run("max redemptions gate", func(t *testing.T) {
		c, err := builder.NewCouponBuilder().WithMaxRedemptions(100).BuildDomain()
		require.NoError(t, err)

		err = c.Validate(now, cartWith("SKU001", 1, 100), &userID, coupon.UsageCounts{Total: 100})
		requireRejection(t, err, coupon.ReasonMaxRedemptions)

		err = c.Validate(now, cartWith("SKU001", 1, 100), &userID, coupon.UsageCounts{Total: 99})
		assert.NoError(t, err)
	})

	t.Run("per-user limit gate", func(t *testing.T) {
		c, err := builder.NewCouponBuilder().WithUsageLimitPerUser(1).BuildDomain()
		require.NoError(t, err)

		err = c.Validate(now, cartWith("SKU001", 1, 100), &userID, coupon.UsageCounts{Total: 1, ForUser: 1})
		requireRejection(t, err, coupon.ReasonUserLimitReached)
	})

	t.Run("per-user limit skipped for guests", func(t *testing.T) {
		c, err := builder.NewCouponBuilder().WithUsageLimitPerUser(1).BuildDomain()
		require.NoError(t, err)

		err = c.Validate(now, cartWith("SKU001", 1, 100), nil, coupon.UsageCounts{Total: 5})
		assert.NoError(t, err)
	})

	t.Run("first failing check wins", func(t *testing.T) {
		// Inactive and below minimum order at once: the status check fires first.
		c, err := builder.NewCouponBuilder().Inactive().WithMinOrder(500).BuildDomain()
		require.NoError(t, err)

		err = c.Validate(now, cartWith("SKU001", 1, 100), &userID, coupon.UsageCounts{})
		requireRejection(t, err, coupon.ReasonInactiveExpired)
	})
}

func TestCouponDiscount(t *testing.T) {
	t.Run("percent", func(t *testing.T) {
		c, err := builder.NewCouponBuilder().WithKind(coupon.TypePercent, 10).BuildDomain()
		require.NoError(t, err)

		assert.InDelta(t, 25.00, c.Discount(cartWith("SKU001", 1, 250)), 1e-9)
	})

	t.Run("percent rounds half-up", func(t *testing.T) {
		c, err := builder.NewCouponBuilder().WithKind(coupon.TypePercent, 15).BuildDomain()
		require.NoError(t, err)

		// 33.33 * 15% = 4.9995 -> 5.00
		assert.InDelta(t, 5.00, c.Discount(cartWith("SKU001", 1, 33.33)), 1e-9)
	})

	t.Run("fixed is clamped to subtotal", func(t *testing.T) {
		c, err := builder.NewCouponBuilder().WithKind(coupon.TypeFixed, 200).BuildDomain()
		require.NoError(t, err)

		assert.InDelta(t, 150.00, c.Discount(cartWith("SKU001", 1, 150)), 1e-9)
		assert.InDelta(t, 200.00, c.Discount(cartWith("SKU001", 1, 500)), 1e-9)
	})

	t.Run("bogo gives every second qualifying unit free", func(t *testing.T) {
		c, err := builder.NewCouponBuilder().
			WithKind(coupon.TypeBOGO, 1).
			WithProductSKUs("SKU001").
			BuildDomain()
		require.NoError(t, err)

		// 4 units at 50: two free units.
		assert.InDelta(t, 100.00, c.Discount(cartWith("SKU001", 4, 50)), 1e-9)
		// Odd quantity: only complete pairs count.
		assert.InDelta(t, 50.00, c.Discount(cartWith("SKU001", 3, 50)), 1e-9)
		// Single unit contributes nothing.
		assert.InDelta(t, 0.00, c.Discount(cartWith("SKU001", 1, 50)), 1e-9)
		// Non-qualifying SKU contributes nothing.
		assert.InDelta(t, 0.00, c.Discount(cartWith("SKU999", 4, 50)), 1e-9)
	})

	t.Run("tiered behaves as percent", func(t *testing.T) {
		c, err := builder.NewCouponBuilder().WithKind(coupon.TypeTiered, 20).BuildDomain()
		require.NoError(t, err)

		assert.InDelta(t, 40.00, c.Discount(cartWith("SKU001", 1, 200)), 1e-9)
	})
}
