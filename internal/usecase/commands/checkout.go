package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"martcore/internal/domain/coupon"
	"martcore/internal/domain/order"
	"martcore/internal/domain/shipping"
	"martcore/internal/infra"
	"martcore/internal/pkg/clock"
	"martcore/internal/pkg/errs"
	"martcore/internal/pkg/money"
	"martcore/internal/usecase/shared"
)

type DestinationInput struct {
	CountryCode string
	StateCode   string
	Pincode     string
}

type OrderItemInput struct {
	ProductID    uuid.UUID
	SupplierID   uuid.UUID
	SKU          string
	Quantity     int
	UnitPrice    float64
	SupplierCost float64
	TaxRate      float64
	WeightKg     float64
}

type PlaceOrderParams struct {
	StoreID       uuid.UUID
	CustomerID    *uuid.UUID // nil = guest order
	Items         []OrderItemInput
	PaymentMethod order.PaymentMethod
	Destination   DestinationInput
	CouponCode    *string
	ReferralCode  string
}

type PlaceOrderResult struct {
	OrderID        uuid.UUID
	Subtotal       float64
	DiscountAmount float64
	TotalTax       float64
	TotalShipping  float64
	Total          float64
	Serviceable    bool
}

type CheckoutCommands interface {
	PlaceOrder(ctx context.Context, params PlaceOrderParams) (*PlaceOrderResult, error)
}

type checkoutUseCaseImpl struct {
	uow      shared.UnitOfWork
	pipeline *SnapshotPipeline
	clock    clock.Clock
}

func NewCheckoutUseCase(uow shared.UnitOfWork, pipeline *SnapshotPipeline, clk clock.Clock) CheckoutCommands {
	return &checkoutUseCaseImpl{
		uow:      uow,
		pipeline: pipeline,
		clock:    clk,
	}
}

// PlaceOrder drives an order through the snapshot computation pipeline and
// persists it atomically: either the order lands with every snapshot block
// frozen and the redemption (if any) recorded, or nothing is written.
func (c *checkoutUseCaseImpl) PlaceOrder(ctx context.Context, params PlaceOrderParams) (*PlaceOrderResult, error) {
	now := c.clock.Now()

	var result *PlaceOrderResult
	// The unit of work may re-run the closure after a serialization failure,
	// so each attempt builds a fresh order; a half-mutated entity from a
	// failed attempt must never leak into the retry.
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		orderEntity, err := order.NewOrder(uuid.New(), params.StoreID, params.CustomerID, orderItems(params.Items), params.PaymentMethod, now)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		redemption, err := c.pipeline.Apply(ctx, tx.Reads(), orderEntity, params, now)
		if err != nil {
			return err
		}

		if err := tx.Orders().Create(ctx, orderEntity); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if redemption != nil {
			if err := tx.Redemptions().Append(ctx, *redemption); err != nil {
				if infra.IsKind(err, infra.KindDuplicateKey) {
					return ErrRedemptionRecorded
				}
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}

		result = buildPlaceOrderResult(orderEntity)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("order placed",
		"order_id", result.OrderID,
		"store_id", params.StoreID,
		"total", result.Total,
		"serviceable", result.Serviceable)
	return result, nil
}

func orderItems(inputs []OrderItemInput) []order.Item {
	items := make([]order.Item, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, order.Item{
			ProductID:    in.ProductID,
			SupplierID:   in.SupplierID,
			SKU:          in.SKU,
			Quantity:     in.Quantity,
			UnitPrice:    in.UnitPrice,
			SupplierCost: in.SupplierCost,
			TaxRate:      in.TaxRate,
		})
	}
	return items
}

func buildPlaceOrderResult(o *order.Order) *PlaceOrderResult {
	res := &PlaceOrderResult{
		OrderID:        o.ID(),
		Subtotal:       o.Subtotal(),
		DiscountAmount: o.Discount(),
		Total:          o.Total(),
		Serviceable:    true,
	}
	if tax, ok := o.Tax().Get(); ok {
		res.TotalTax = tax.TotalTax
	}
	if ship, ok := o.Shipping().Get(); ok {
		res.TotalShipping = ship.TotalShipping
		res.Serviceable = ship.Serviceable
	}
	return res
}

// SnapshotPipeline computes each pricing-relevant concern once and freezes
// it onto the order. Every step skips blocks that are already frozen, so
// re-invoking the pipeline on a placed order is a no-op on frozen data.
type SnapshotPipeline struct {
	tax       TaxCalculator
	courier   CourierAssigner
	referral  ReferralAttributor
	suppliers SupplierDirectory
}

func NewSnapshotPipeline(
	tax TaxCalculator,
	courier CourierAssigner,
	referral ReferralAttributor,
	suppliers SupplierDirectory,
) *SnapshotPipeline {
	return &SnapshotPipeline{
		tax:       tax,
		courier:   courier,
		referral:  referral,
		suppliers: suppliers,
	}
}

// Apply runs every snapshot step. Returns the redemption ledger row to
// append when a coupon was applied.
func (p *SnapshotPipeline) Apply(
	ctx context.Context,
	reads shared.CommandReads,
	o *order.Order,
	params PlaceOrderParams,
	now time.Time,
) (*coupon.Redemption, error) {
	cart := cartFromOrder(o)

	redemption, err := p.applyCoupon(ctx, reads, o, params, cart, now)
	if err != nil {
		return nil, err
	}

	if err := p.applyShipping(ctx, reads, o, params, now); err != nil {
		return nil, err
	}
	if err := p.applyTax(ctx, o, params, now); err != nil {
		return nil, err
	}
	if err := p.applyCourier(ctx, o, params); err != nil {
		return nil, err
	}
	if err := p.applyFulfillment(ctx, o, now); err != nil {
		return nil, err
	}
	if err := p.applyReferral(ctx, o, params); err != nil {
		return nil, err
	}
	return redemption, nil
}

func (p *SnapshotPipeline) applyCoupon(
	ctx context.Context,
	reads shared.CommandReads,
	o *order.Order,
	params PlaceOrderParams,
	cart coupon.Cart,
	now time.Time,
) (*coupon.Redemption, error) {
	if params.CouponCode == nil || o.CouponCode() != nil {
		return nil, nil
	}

	coup, err := reads.CouponByCode(ctx, params.StoreID, *params.CouponCode)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	usage, err := reads.RedemptionCounts(ctx, coup.ID(), params.CustomerID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := coup.Validate(now, cart, params.CustomerID, usage); err != nil {
		return nil, errs.Mark(err, ErrCouponRejected)
	}

	discount := coup.Discount(cart)
	if err := o.ApplyCouponDiscount(coup.Code().String(), discount); err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	return &coupon.Redemption{
		ID:             uuid.New(),
		CouponID:       coup.ID(),
		Code:           coup.Code().String(),
		UserID:         params.CustomerID,
		OrderID:        o.ID(),
		DiscountAmount: discount,
		RedeemedAt:     now,
	}, nil
}

func (p *SnapshotPipeline) applyShipping(
	ctx context.Context,
	reads shared.CommandReads,
	o *order.Order,
	params PlaceOrderParams,
	now time.Time,
) error {
	if o.Shipping().IsFrozen() {
		return nil
	}

	zones, err := reads.ZonesByStore(ctx, params.StoreID)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	zoneIDs := make([]uuid.UUID, 0, len(zones))
	for _, z := range zones {
		zoneIDs = append(zoneIDs, z.ID())
	}
	rates, err := reads.ActiveRatesByZone(ctx, zoneIDs)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	rateType, measurement := measurementFor(params.Items, o.Subtotal())
	dest := shipping.Destination{
		CountryCode: params.Destination.CountryCode,
		StateCode:   params.Destination.StateCode,
		Pincode:     params.Destination.Pincode,
	}
	quote := shipping.Resolve(zones, rates, dest, rateType, measurement, params.PaymentMethod.IsCOD())

	snapshot := order.ShippingSnapshot{
		RateType:     string(rateType),
		Serviceable:  quote.Serviceable,
		CalculatedAt: now,
	}
	if quote.Serviceable {
		snapshot.ZoneID = quote.Zone.ID()
		snapshot.ZoneName = quote.Zone.Name()
		snapshot.SlabMin = quote.Rate.MinValue()
		snapshot.SlabMax = quote.Rate.MaxValue()
		snapshot.BaseRate = quote.BaseRate
		snapshot.VariableRate = quote.VariableRate
		snapshot.CODSurcharge = quote.CODSurcharge
		snapshot.TotalShipping = quote.Total
	}
	// Unserviceable destinations freeze a zero-rate placeholder; rejecting
	// the checkout is a storefront policy decision, not this core's.
	return o.FreezeShipping(snapshot)
}

func (p *SnapshotPipeline) applyTax(ctx context.Context, o *order.Order, params PlaceOrderParams, now time.Time) error {
	if o.Tax().IsFrozen() {
		return nil
	}

	taxable := o.Subtotal() - o.Discount()
	if taxable < 0 {
		taxable = 0
	}
	snapshot, err := p.tax.Calculate(ctx, TaxInput{
		StoreID:       params.StoreID,
		CountryCode:   params.Destination.CountryCode,
		PlaceOfSupply: params.Destination.StateCode,
		TaxableAmount: money.Round2(taxable),
	})
	if err != nil {
		return errs.Wrap(err, "tax calculation failed")
	}
	snapshot.CalculatedAt = now
	return o.FreezeTax(snapshot)
}

func (p *SnapshotPipeline) applyCourier(ctx context.Context, o *order.Order, params PlaceOrderParams) error {
	if o.Courier().IsFrozen() {
		return nil
	}

	var weight float64
	for _, it := range params.Items {
		weight += it.WeightKg * float64(it.Quantity)
	}
	snapshot, err := p.courier.Assign(ctx, CourierInput{
		StoreID:     params.StoreID,
		Destination: params.Destination,
		WeightKg:    weight,
		COD:         params.PaymentMethod.IsCOD(),
	})
	if err != nil {
		return errs.Wrap(err, "courier assignment failed")
	}
	return o.FreezeCourier(snapshot)
}

// applyFulfillment splits items by supplier into shipment groups, freezing
// origin addresses and apportioning the shipping cost by group subtotal.
func (p *SnapshotPipeline) applyFulfillment(ctx context.Context, o *order.Order, now time.Time) error {
	if o.Fulfillment().IsFrozen() {
		return nil
	}

	type groupAccum struct {
		skus     []string
		subtotal float64
	}
	accum := make(map[uuid.UUID]*groupAccum)
	var supplierOrder []uuid.UUID
	for _, item := range o.Items() {
		g, ok := accum[item.SupplierID]
		if !ok {
			g = &groupAccum{}
			accum[item.SupplierID] = g
			supplierOrder = append(supplierOrder, item.SupplierID)
		}
		g.skus = append(g.skus, item.SKU)
		g.subtotal += item.LineTotal()
	}

	var shippingTotal float64
	if ship, ok := o.Shipping().Get(); ok {
		shippingTotal = ship.TotalShipping
	}

	groups := make([]order.ShipmentGroup, 0, len(supplierOrder))
	for _, supplierID := range supplierOrder {
		g := accum[supplierID]
		origin, err := p.suppliers.OriginAddress(ctx, supplierID)
		if err != nil {
			return errs.Wrap(err, "supplier origin lookup failed")
		}
		share := 0.0
		if o.Subtotal() > 0 {
			share = money.Round2(shippingTotal * g.subtotal / o.Subtotal())
		}
		groups = append(groups, order.ShipmentGroup{
			SupplierID:    supplierID,
			OriginAddress: origin,
			SKUs:          g.skus,
			ShippingCost:  share,
		})
	}

	return o.FreezeFulfillment(order.FulfillmentSnapshot{
		Groups:   groups,
		RoutedAt: now,
	})
}

func (p *SnapshotPipeline) applyReferral(ctx context.Context, o *order.Order, params PlaceOrderParams) error {
	if o.Referral().IsFrozen() {
		return nil
	}

	snapshot, err := p.referral.Attribute(ctx, AttributionInput{
		StoreID:      params.StoreID,
		CustomerID:   params.CustomerID,
		ReferralCode: params.ReferralCode,
	})
	if err != nil {
		return errs.Wrap(err, "referral attribution failed")
	}
	if snapshot == nil {
		// No tracked touch; the block stays unset rather than freezing an
		// empty attribution.
		return nil
	}
	return o.FreezeReferral(*snapshot)
}

// Weight-based rates take precedence when any item carries a weight;
// otherwise the order value drives slab matching.
func measurementFor(items []OrderItemInput, subtotal float64) (shipping.RateType, float64) {
	var weight float64
	for _, it := range items {
		weight += it.WeightKg * float64(it.Quantity)
	}
	if weight > 0 {
		return shipping.RateTypeWeight, weight
	}
	return shipping.RateTypeOrderValue, subtotal
}

func cartFromOrder(o *order.Order) coupon.Cart {
	items := make([]coupon.CartItem, 0, len(o.Items()))
	for _, it := range o.Items() {
		items = append(items, coupon.CartItem{
			ProductID:  it.ProductID,
			SKU:        it.SKU,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.LineTotal(),
		})
	}
	return coupon.Cart{Items: items, Subtotal: o.Subtotal()}
}
