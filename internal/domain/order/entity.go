package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"martcore/internal/pkg/money"
)

var (
	ErrNoItems          = errors.New("order must contain at least one item")
	ErrInvalidQuantity  = errors.New("order item quantity must be positive")
	ErrNegativeAmount   = errors.New("order amounts cannot be negative")
	ErrNotCancellable   = errors.New("order is not cancellable in its current status")
	ErrNotReturnable    = errors.New("order is not returnable in its current status")
	ErrInvalidStatus    = errors.New("invalid order status")
)

// IllegalTransitionError names both ends of a rejected transition so callers
// can render it; it is never silently downgraded to a no-op.
type IllegalTransitionError struct {
	From Status
	To   Status
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal transition from %s to %s", e.From, e.To)
}

// Item is one order line. Unit price, supplier cost and the per-line tax are
// frozen at order creation.
type Item struct {
	ProductID    uuid.UUID
	SupplierID   uuid.UUID
	SKU          string
	Quantity     int
	UnitPrice    float64
	SupplierCost float64
	TaxRate      float64
	TaxAmount    float64
}

func (i Item) LineTotal() float64 {
	return money.Round2(i.UnitPrice * float64(i.Quantity))
}

// Order is the aggregate root. Everything priced is computed once at
// creation and held in write-once snapshot blocks; afterwards the order only
// moves through the lifecycle state machine.
type Order struct {
	id            uuid.UUID
	storeID       uuid.UUID
	customerID    *uuid.UUID // nil for guest orders
	items         []Item
	status        Status
	paymentStatus PaymentStatus
	paymentMethod PaymentMethod
	subtotal      float64
	discount      float64
	couponCode    *string
	total         float64

	tax         Frozen[TaxSnapshot]
	shipping    Frozen[ShippingSnapshot]
	courier     Frozen[CourierSnapshot]
	fulfillment Frozen[FulfillmentSnapshot]
	referral    Frozen[ReferralSnapshot]

	lastTransition *LastTransition
	cancellation   *Cancellation
	returnInfo     *ReturnInfo

	createdAt time.Time
	updatedAt time.Time
}

func NewOrder(
	id, storeID uuid.UUID,
	customerID *uuid.UUID,
	items []Item,
	paymentMethod PaymentMethod,
	now time.Time,
) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	var subtotal float64
	for _, it := range items {
		if it.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if it.UnitPrice < 0 || it.SupplierCost < 0 {
			return nil, ErrNegativeAmount
		}
		subtotal += it.UnitPrice * float64(it.Quantity)
	}

	return &Order{
		id:            id,
		storeID:       storeID,
		customerID:    customerID,
		items:         items,
		status:        StatusCreated,
		paymentStatus: PaymentPending,
		paymentMethod: paymentMethod,
		subtotal:      money.Round2(subtotal),
		total:         money.Round2(subtotal),
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructOrder(
	id, storeID uuid.UUID,
	customerID *uuid.UUID,
	items []Item,
	status Status,
	paymentStatus PaymentStatus,
	paymentMethod PaymentMethod,
	subtotal, discount, total float64,
	couponCode *string,
	tax Frozen[TaxSnapshot],
	shipping Frozen[ShippingSnapshot],
	courier Frozen[CourierSnapshot],
	fulfillment Frozen[FulfillmentSnapshot],
	referral Frozen[ReferralSnapshot],
	lastTransition *LastTransition,
	cancellation *Cancellation,
	returnInfo *ReturnInfo,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:             id,
		storeID:        storeID,
		customerID:     customerID,
		items:          items,
		status:         status,
		paymentStatus:  paymentStatus,
		paymentMethod:  paymentMethod,
		subtotal:       subtotal,
		discount:       discount,
		total:          total,
		couponCode:     couponCode,
		tax:            tax,
		shipping:       shipping,
		courier:        courier,
		fulfillment:    fulfillment,
		referral:       referral,
		lastTransition: lastTransition,
		cancellation:   cancellation,
		returnInfo:     returnInfo,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// ---------------------------------------------------------------------------
// Snapshot freezing. Each block may be written exactly once; a second write
// is a programmer error surfaced as ErrSnapshotFrozen, never an overwrite.
// ---------------------------------------------------------------------------

func (o *Order) FreezeTax(s TaxSnapshot) error {
	if o.tax.IsFrozen() {
		return ErrSnapshotFrozen
	}
	o.tax = Freeze(s)
	o.distributeLineTax(s.TotalTax)
	o.recomputeTotal()
	return nil
}

// distributeLineTax apportions the order tax across lines by their share of
// the subtotal. The last line absorbs rounding drift so the line amounts sum
// to the order tax.
func (o *Order) distributeLineTax(totalTax float64) {
	if totalTax <= 0 || o.subtotal <= 0 {
		return
	}
	remaining := totalTax
	last := len(o.items) - 1
	for i := range o.items {
		if i == last {
			o.items[i].TaxAmount = money.Round2(remaining)
			return
		}
		amt := money.Round2(totalTax * o.items[i].LineTotal() / o.subtotal)
		o.items[i].TaxAmount = amt
		remaining -= amt
	}
}

func (o *Order) FreezeShipping(s ShippingSnapshot) error {
	if o.shipping.IsFrozen() {
		return ErrSnapshotFrozen
	}
	o.shipping = Freeze(s)
	o.recomputeTotal()
	return nil
}

func (o *Order) FreezeCourier(s CourierSnapshot) error {
	if o.courier.IsFrozen() {
		return ErrSnapshotFrozen
	}
	o.courier = Freeze(s)
	return nil
}

func (o *Order) FreezeFulfillment(s FulfillmentSnapshot) error {
	if o.fulfillment.IsFrozen() {
		return ErrSnapshotFrozen
	}
	o.fulfillment = Freeze(s)
	return nil
}

func (o *Order) FreezeReferral(s ReferralSnapshot) error {
	if o.referral.IsFrozen() {
		return ErrSnapshotFrozen
	}
	o.referral = Freeze(s)
	return nil
}

// ApplyCouponDiscount records the redeemed coupon and its discount. Like the
// snapshot blocks it is write-once.
func (o *Order) ApplyCouponDiscount(code string, amount float64) error {
	if o.couponCode != nil {
		return ErrSnapshotFrozen
	}
	if amount < 0 {
		return ErrNegativeAmount
	}
	o.couponCode = &code
	o.discount = money.Round2(amount)
	o.recomputeTotal()
	return nil
}

func (o *Order) recomputeTotal() {
	total := o.subtotal - o.discount
	if total < 0 {
		total = 0
	}
	if ship, ok := o.shipping.Get(); ok {
		total += ship.TotalShipping
	}
	if tax, ok := o.tax.Get(); ok {
		total += tax.TotalTax
	}
	o.total = money.Round2(total)
}

// ---------------------------------------------------------------------------
// Lifecycle state machine
// ---------------------------------------------------------------------------

// Transition moves the order along the forward path. cancelled and returned
// are only reachable through Cancel and Return.
func (o *Order) Transition(to Status, actor Actor, now time.Time) error {
	if !to.IsValid() {
		return ErrInvalidStatus
	}
	if !CanTransition(o.status, to) {
		return &IllegalTransitionError{From: o.status, To: to}
	}
	o.recordTransition(to, actor, now)
	return nil
}

func (o *Order) Cancel(actor Actor, reason string, now time.Time) error {
	if !IsCancellable(o.status) {
		return ErrNotCancellable
	}
	o.recordTransition(StatusCancelled, actor, now)
	o.cancellation = &Cancellation{
		Reason:      reason,
		CancelledAt: now,
		ActorRole:   actor.Role,
	}
	return nil
}

func (o *Order) Return(actor Actor, reason string, now time.Time) error {
	if !IsReturnable(o.status) {
		return ErrNotReturnable
	}
	o.recordTransition(StatusReturned, actor, now)
	o.returnInfo = &ReturnInfo{
		Reason:     reason,
		ReturnedAt: now,
		ActorRole:  actor.Role,
	}
	return nil
}

func (o *Order) recordTransition(to Status, actor Actor, now time.Time) {
	from := o.status
	o.status = to
	o.updatedAt = now
	o.lastTransition = &LastTransition{
		From:      from,
		To:        to,
		At:        now,
		ActorRole: actor.Role,
		ActorID:   actor.ID,
	}
}

func (o *Order) MarkPaid() {
	o.paymentStatus = PaymentPaid
}

func (o *Order) StatusChangedEvent() StatusChangedEvent {
	lt := o.lastTransition
	if lt == nil {
		return StatusChangedEvent{OrderID: o.id, StoreID: o.storeID, To: o.status}
	}
	return StatusChangedEvent{
		OrderID:   o.id,
		StoreID:   o.storeID,
		From:      lt.From,
		To:        lt.To,
		At:        lt.At,
		ActorRole: lt.ActorRole,
	}
}

func (o *Order) ID() uuid.UUID                 { return o.id }
func (o *Order) StoreID() uuid.UUID            { return o.storeID }
func (o *Order) CustomerID() *uuid.UUID        { return o.customerID }
func (o *Order) Items() []Item                 { return o.items }
func (o *Order) Status() Status                { return o.status }
func (o *Order) PaymentStatus() PaymentStatus  { return o.paymentStatus }
func (o *Order) PaymentMethod() PaymentMethod  { return o.paymentMethod }
func (o *Order) Subtotal() float64             { return o.subtotal }
func (o *Order) Discount() float64             { return o.discount }
func (o *Order) CouponCode() *string           { return o.couponCode }
func (o *Order) Total() float64                { return o.total }
func (o *Order) Tax() Frozen[TaxSnapshot]      { return o.tax }
func (o *Order) Shipping() Frozen[ShippingSnapshot] { return o.shipping }
func (o *Order) Courier() Frozen[CourierSnapshot]   { return o.courier }
func (o *Order) Fulfillment() Frozen[FulfillmentSnapshot] { return o.fulfillment }
func (o *Order) Referral() Frozen[ReferralSnapshot]       { return o.referral }
func (o *Order) LastTransition() *LastTransition          { return o.lastTransition }
func (o *Order) Cancellation() *Cancellation              { return o.cancellation }
func (o *Order) ReturnInfo() *ReturnInfo                  { return o.returnInfo }
func (o *Order) CreatedAt() time.Time                     { return o.createdAt }
func (o *Order) UpdatedAt() time.Time                     { return o.updatedAt }
