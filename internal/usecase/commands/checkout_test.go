//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"martcore/internal/domain/coupon"
	"martcore/internal/domain/order"
	"martcore/internal/domain/shipping"
	"martcore/internal/infra"
	"martcore/internal/pkg/clock"
	"martcore/internal/usecase/commands"
	"martcore/internal/usecase/shared"
	"martcore/tests/common/builder"
	commandsmock "martcore/tests/mock/commands"
	sharedmock "martcore/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// stubUoW runs the transactional closure directly against a mock Tx.
type stubUoW struct {
	tx    shared.Tx
	reads shared.CommandReads
}

func (s *stubUoW) Within(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
	return fn(ctx, s.tx)
}

func (s *stubUoW) WithinSerializable(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
	return fn(ctx, s.tx)
}

func (s *stubUoW) CommandReads() shared.CommandReads {
	return s.reads
}

// retryingUoW invokes the closure twice, the way the unit of work re-runs it
// after a serialization failure at commit time.
type retryingUoW struct {
	tx    shared.Tx
	reads shared.CommandReads
}

func (s *retryingUoW) Within(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
	if err := fn(ctx, s.tx); err != nil {
		return err
	}
	return fn(ctx, s.tx)
}

func (s *retryingUoW) WithinSerializable(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
	return s.Within(ctx, fn)
}

func (s *retryingUoW) CommandReads() shared.CommandReads {
	return s.reads
}

type checkoutFixture struct {
	ctrl        *gomock.Controller
	reads       *sharedmock.MockCommandReads
	orders      *sharedmock.MockOrderRepository
	redemptions *sharedmock.MockRedemptionRepository
	tax         *commandsmock.MockTaxCalculator
	courier     *commandsmock.MockCourierAssigner
	referral    *commandsmock.MockReferralAttributor
	suppliers   *commandsmock.MockSupplierDirectory
	tx          *sharedmock.MockTx
	pipeline    *commands.SnapshotPipeline
	now         time.Time
	usecase     commands.CheckoutCommands
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &checkoutFixture{
		ctrl:        ctrl,
		reads:       sharedmock.NewMockCommandReads(ctrl),
		orders:      sharedmock.NewMockOrderRepository(ctrl),
		redemptions: sharedmock.NewMockRedemptionRepository(ctrl),
		tax:         commandsmock.NewMockTaxCalculator(ctrl),
		courier:     commandsmock.NewMockCourierAssigner(ctrl),
		referral:    commandsmock.NewMockReferralAttributor(ctrl),
		suppliers:   commandsmock.NewMockSupplierDirectory(ctrl),
		now:         time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}

	f.tx = sharedmock.NewMockTx(ctrl)
	f.tx.EXPECT().Orders().Return(f.orders).AnyTimes()
	f.tx.EXPECT().Redemptions().Return(f.redemptions).AnyTimes()
	f.tx.EXPECT().Reads().Return(f.reads).AnyTimes()

	f.pipeline = commands.NewSnapshotPipeline(f.tax, f.courier, f.referral, f.suppliers)
	f.usecase = commands.NewCheckoutUseCase(
		&stubUoW{tx: f.tx, reads: f.reads},
		f.pipeline,
		clock.NewMockClock(f.now),
	)
	return f
}

// expectAncillarySteps wires the tax, courier, referral and supplier
// collaborators with plain pass-through behavior.
func (f *checkoutFixture) expectAncillarySteps() {
	f.tax.EXPECT().Calculate(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, in commands.TaxInput) (order.TaxSnapshot, error) {
			return order.TaxSnapshot{TaxType: "GST", TaxableAmount: in.TaxableAmount, TotalTax: 0}, nil
		})
	f.courier.EXPECT().Assign(gomock.Any(), gomock.Any()).Return(order.CourierSnapshot{Reason: "store_default"}, nil)
	f.referral.EXPECT().Attribute(gomock.Any(), gomock.Any()).Return(nil, nil)
	f.suppliers.EXPECT().OriginAddress(gomock.Any(), gomock.Any()).Return("Warehouse 7, Pune", nil).AnyTimes()
}

func placeOrderParams(supplierID uuid.UUID) commands.PlaceOrderParams {
	return commands.PlaceOrderParams{
		StoreID: uuid.New(),
		Items: []commands.OrderItemInput{
			{ProductID: uuid.New(), SupplierID: supplierID, SKU: "SKU001", Quantity: 2, UnitPrice: 100, WeightKg: 1.5},
		},
		PaymentMethod: order.PaymentMethodPrepaid,
		Destination:   commands.DestinationInput{CountryCode: "IN", StateCode: "MH", Pincode: "400001"},
	}
}

func serviceableShipping(t *testing.T, f *checkoutFixture, storeID uuid.UUID) *shipping.Zone {
	t.Helper()
	zone, err := shipping.NewZone(uuid.New(), storeID, "West", "IN", []string{"MH"}, nil)
	require.NoError(t, err)
	rate, err := shipping.NewRate(uuid.New(), zone.ID(), shipping.RateTypeWeight, 0, 10, 50, 10, 30)
	require.NoError(t, err)

	f.reads.EXPECT().ZonesByStore(gomock.Any(), storeID).Return([]*shipping.Zone{zone}, nil)
	f.reads.EXPECT().ActiveRatesByZone(gomock.Any(), gomock.Any()).
		Return(map[string][]*shipping.Rate{zone.ID().String(): {rate}}, nil)
	return zone
}

func TestPlaceOrder(t *testing.T) {
	t.Run("freezes every snapshot block and persists atomically", func(t *testing.T) {
		f := newCheckoutFixture(t)
		supplierID := uuid.New()
		params := placeOrderParams(supplierID)
		serviceableShipping(t, f, params.StoreID)
		f.expectAncillarySteps()

		var created *order.Order
		f.orders.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, o *order.Order) error {
				created = o
				return nil
			})

		result, err := f.usecase.PlaceOrder(context.Background(), params)
		require.NoError(t, err)
		require.NotNil(t, created)

		// weight 3kg in slab [0,10): 50 + 3*10 = 80
		assert.True(t, result.Serviceable)
		assert.InDelta(t, 200.00, result.Subtotal, 1e-9)
		assert.InDelta(t, 80.00, result.TotalShipping, 1e-9)
		assert.InDelta(t, 280.00, result.Total, 1e-9)

		assert.True(t, created.Tax().IsFrozen())
		assert.True(t, created.Shipping().IsFrozen())
		assert.True(t, created.Courier().IsFrozen())
		assert.True(t, created.Fulfillment().IsFrozen())

		fulfillment := created.Fulfillment().MustGet()
		require.Len(t, fulfillment.Groups, 1)
		assert.Equal(t, supplierID, fulfillment.Groups[0].SupplierID)
		assert.Equal(t, "Warehouse 7, Pune", fulfillment.Groups[0].OriginAddress)
		assert.InDelta(t, 80.00, fulfillment.Groups[0].ShippingCost, 1e-9)
	})

	t.Run("calculated tax joins the total and the order lines", func(t *testing.T) {
		f := newCheckoutFixture(t)
		params := placeOrderParams(uuid.New())
		serviceableShipping(t, f, params.StoreID)

		f.tax.EXPECT().Calculate(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in commands.TaxInput) (order.TaxSnapshot, error) {
				return order.TaxSnapshot{TaxType: "GST", TaxableAmount: in.TaxableAmount, TotalTax: 36}, nil
			})
		f.courier.EXPECT().Assign(gomock.Any(), gomock.Any()).Return(order.CourierSnapshot{Reason: "store_default"}, nil)
		f.referral.EXPECT().Attribute(gomock.Any(), gomock.Any()).Return(nil, nil)
		f.suppliers.EXPECT().OriginAddress(gomock.Any(), gomock.Any()).Return("Warehouse 7, Pune", nil).AnyTimes()

		var created *order.Order
		f.orders.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, o *order.Order) error {
				created = o
				return nil
			})

		result, err := f.usecase.PlaceOrder(context.Background(), params)
		require.NoError(t, err)

		// 200 goods + 80 shipping + 36 tax
		assert.InDelta(t, 36.00, result.TotalTax, 1e-9)
		assert.InDelta(t, 316.00, result.Total, 1e-9)

		require.Len(t, created.Items(), 1)
		assert.InDelta(t, 36.00, created.Items()[0].TaxAmount, 1e-9)
	})

	t.Run("retried transaction re-applies the coupon and its ledger row", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.usecase = commands.NewCheckoutUseCase(
			&retryingUoW{tx: f.tx, reads: f.reads},
			f.pipeline,
			clock.NewMockClock(f.now),
		)

		params := placeOrderParams(uuid.New())
		code := "SAVE10"
		params.CouponCode = &code
		customerID := uuid.New()
		params.CustomerID = &customerID

		coup, err := builder.NewCouponBuilder().With(func(b *builder.CouponBuilder) {
			b.StoreID = params.StoreID
		}).BuildDomain()
		require.NoError(t, err)

		f.reads.EXPECT().CouponByCode(gomock.Any(), params.StoreID, "SAVE10").Return(coup, nil).Times(2)
		f.reads.EXPECT().RedemptionCounts(gomock.Any(), coup.ID(), &customerID).Return(coupon.UsageCounts{}, nil).Times(2)
		serviceableShipping(t, f, params.StoreID)
		serviceableShipping(t, f, params.StoreID)
		f.expectAncillarySteps()
		f.expectAncillarySteps()

		var createdOrders []*order.Order
		f.orders.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, o *order.Order) error {
				createdOrders = append(createdOrders, o)
				return nil
			}).Times(2)

		var appended []coupon.Redemption
		f.redemptions.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, r coupon.Redemption) error {
				appended = append(appended, r)
				return nil
			}).Times(2)

		result, err := f.usecase.PlaceOrder(context.Background(), params)
		require.NoError(t, err)

		// Every attempt carries its own discounted order plus a matching
		// ledger row; the second attempt is the one that commits.
		require.Len(t, createdOrders, 2)
		require.Len(t, appended, 2)
		for i, o := range createdOrders {
			assert.InDelta(t, 20.00, o.Discount(), 1e-9)
			assert.Equal(t, o.ID(), appended[i].OrderID)
			assert.InDelta(t, 20.00, appended[i].DiscountAmount, 1e-9)
		}
		assert.Equal(t, createdOrders[1].ID(), result.OrderID)
		assert.InDelta(t, 20.00, result.DiscountAmount, 1e-9)
	})

	t.Run("unserviceable destination still places the order", func(t *testing.T) {
		f := newCheckoutFixture(t)
		params := placeOrderParams(uuid.New())
		f.reads.EXPECT().ZonesByStore(gomock.Any(), params.StoreID).Return(nil, nil)
		f.reads.EXPECT().ActiveRatesByZone(gomock.Any(), gomock.Any()).Return(nil, nil)
		f.expectAncillarySteps()
		f.orders.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		result, err := f.usecase.PlaceOrder(context.Background(), params)
		require.NoError(t, err)
		assert.False(t, result.Serviceable)
		assert.InDelta(t, 0.00, result.TotalShipping, 1e-9)
		assert.InDelta(t, 200.00, result.Total, 1e-9)
	})

	t.Run("applies a valid coupon and appends the redemption", func(t *testing.T) {
		f := newCheckoutFixture(t)
		params := placeOrderParams(uuid.New())
		code := "SAVE10"
		params.CouponCode = &code
		customerID := uuid.New()
		params.CustomerID = &customerID

		coup, err := builder.NewCouponBuilder().With(func(b *builder.CouponBuilder) {
			b.StoreID = params.StoreID
		}).BuildDomain()
		require.NoError(t, err)

		f.reads.EXPECT().CouponByCode(gomock.Any(), params.StoreID, "SAVE10").Return(coup, nil)
		f.reads.EXPECT().RedemptionCounts(gomock.Any(), coup.ID(), &customerID).Return(coupon.UsageCounts{}, nil)
		serviceableShipping(t, f, params.StoreID)
		f.expectAncillarySteps()
		f.orders.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		var appended coupon.Redemption
		f.redemptions.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, r coupon.Redemption) error {
				appended = r
				return nil
			})

		result, err := f.usecase.PlaceOrder(context.Background(), params)
		require.NoError(t, err)

		// 10% of 200 = 20 off, shipping 80 on top.
		assert.InDelta(t, 20.00, result.DiscountAmount, 1e-9)
		assert.InDelta(t, 260.00, result.Total, 1e-9)
		assert.Equal(t, coup.ID(), appended.CouponID)
		assert.Equal(t, result.OrderID, appended.OrderID)
		assert.InDelta(t, 20.00, appended.DiscountAmount, 1e-9)
	})

	t.Run("unknown coupon code aborts the checkout", func(t *testing.T) {
		f := newCheckoutFixture(t)
		params := placeOrderParams(uuid.New())
		code := "NOSUCH"
		params.CouponCode = &code

		f.reads.EXPECT().CouponByCode(gomock.Any(), params.StoreID, "NOSUCH").
			Return(nil, infra.WrapRepoErr("coupon not found", errors.New("no rows"), infra.KindNotFound))

		_, err := f.usecase.PlaceOrder(context.Background(), params)
		assert.ErrorIs(t, err, commands.ErrCouponNotFound)
	})

	t.Run("rejected coupon aborts the checkout with the reason", func(t *testing.T) {
		f := newCheckoutFixture(t)
		params := placeOrderParams(uuid.New())
		code := "SAVE10"
		params.CouponCode = &code

		coup, err := builder.NewCouponBuilder().With(func(b *builder.CouponBuilder) {
			b.StoreID = params.StoreID
		}).WithMinOrder(1000).BuildDomain()
		require.NoError(t, err)

		f.reads.EXPECT().CouponByCode(gomock.Any(), params.StoreID, "SAVE10").Return(coup, nil)
		f.reads.EXPECT().RedemptionCounts(gomock.Any(), coup.ID(), gomock.Any()).Return(coupon.UsageCounts{}, nil)

		_, err = f.usecase.PlaceOrder(context.Background(), params)
		require.ErrorIs(t, err, commands.ErrCouponRejected)

		var rejection *coupon.RejectionError
		require.ErrorAs(t, err, &rejection)
		assert.Contains(t, rejection.Reason, "Minimum order value")
	})

	t.Run("concurrent duplicate redemption surfaces as a conflict", func(t *testing.T) {
		f := newCheckoutFixture(t)
		params := placeOrderParams(uuid.New())
		code := "SAVE10"
		params.CouponCode = &code

		coup, err := builder.NewCouponBuilder().With(func(b *builder.CouponBuilder) {
			b.StoreID = params.StoreID
		}).BuildDomain()
		require.NoError(t, err)

		f.reads.EXPECT().CouponByCode(gomock.Any(), params.StoreID, "SAVE10").Return(coup, nil)
		f.reads.EXPECT().RedemptionCounts(gomock.Any(), coup.ID(), gomock.Any()).Return(coupon.UsageCounts{}, nil)
		serviceableShipping(t, f, params.StoreID)
		f.expectAncillarySteps()
		f.orders.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		f.redemptions.EXPECT().Append(gomock.Any(), gomock.Any()).
			Return(infra.WrapRepoErr("redemption exists", errors.New("duplicate key"), infra.KindDuplicateKey))

		_, err = f.usecase.PlaceOrder(context.Background(), params)
		assert.ErrorIs(t, err, commands.ErrRedemptionRecorded)
	})

	t.Run("empty cart is a validation error", func(t *testing.T) {
		f := newCheckoutFixture(t)
		params := placeOrderParams(uuid.New())
		params.Items = nil

		_, err := f.usecase.PlaceOrder(context.Background(), params)
		assert.ErrorIs(t, err, commands.ErrDomainValidation)
	})

	t.Run("order value drives slab matching when no item has weight", func(t *testing.T) {
		f := newCheckoutFixture(t)
		params := placeOrderParams(uuid.New())
		params.Items[0].WeightKg = 0

		zone, err := shipping.NewZone(uuid.New(), params.StoreID, "West", "IN", []string{"MH"}, nil)
		require.NoError(t, err)
		rate, err := shipping.NewRate(uuid.New(), zone.ID(), shipping.RateTypeOrderValue, 0, 1000, 40, 0, 0)
		require.NoError(t, err)
		f.reads.EXPECT().ZonesByStore(gomock.Any(), params.StoreID).Return([]*shipping.Zone{zone}, nil)
		f.reads.EXPECT().ActiveRatesByZone(gomock.Any(), gomock.Any()).
			Return(map[string][]*shipping.Rate{zone.ID().String(): {rate}}, nil)
		f.expectAncillarySteps()

		var created *order.Order
		f.orders.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, o *order.Order) error {
				created = o
				return nil
			})

		result, err := f.usecase.PlaceOrder(context.Background(), params)
		require.NoError(t, err)
		assert.True(t, result.Serviceable)
		assert.InDelta(t, 40.00, result.TotalShipping, 1e-9)

		ship := created.Shipping().MustGet()
		assert.Equal(t, string(shipping.RateTypeOrderValue), ship.RateType)
	})
}
