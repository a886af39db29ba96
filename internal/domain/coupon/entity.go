package coupon

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"martcore/internal/pkg/money"
)

// Rejection reason strings. These are user-facing contract values; change
// them and every storefront rendering them changes too.
const (
	ReasonNotFound         = "Coupon code not found"
	ReasonInactiveExpired  = "Coupon is not active or has expired"
	ReasonMissingProducts  = "Cart does not contain required products"
	ReasonMaxRedemptions   = "Coupon has reached maximum redemptions"
	ReasonUserLimitReached = "You have reached the usage limit for this coupon"
)

// RejectionError is a business-rule rejection carrying the human-readable
// reason. It is an expected outcome, not a failure.
type RejectionError struct {
	Reason string
}

func (e *RejectionError) Error() string {
	return e.Reason
}

func Reject(reason string) error {
	return &RejectionError{Reason: reason}
}

type Coupon struct {
	id         uuid.UUID
	storeID    uuid.UUID
	code       Code
	kind       Type
	value      float64
	conditions Conditions
	active     bool
	startsAt   *time.Time
	endsAt     *time.Time
	createdAt  time.Time
	updatedAt  time.Time
}

func NewCoupon(
	id, storeID uuid.UUID,
	code string,
	kind Type,
	value float64,
	conditions Conditions,
	active bool,
	startsAt, endsAt *time.Time,
) (*Coupon, error) {
	normalized, err := NewCode(code)
	if err != nil {
		return nil, err
	}
	if !kind.IsValid() {
		return nil, ErrInvalidCouponType
	}
	if value <= 0 {
		return nil, ErrInvalidCouponValue
	}

	return &Coupon{
		id:         id,
		storeID:    storeID,
		code:       normalized,
		kind:       kind,
		value:      value,
		conditions: conditions,
		active:     active,
		startsAt:   startsAt,
		endsAt:     endsAt,
	}, nil
}

func ReconstructCoupon(
	id, storeID uuid.UUID,
	code string,
	kind Type,
	value float64,
	conditions Conditions,
	active bool,
	startsAt, endsAt *time.Time,
	createdAt, updatedAt time.Time,
) *Coupon {
	return &Coupon{
		id:         id,
		storeID:    storeID,
		code:       Code(NormalizeCode(code)),
		kind:       kind,
		value:      value,
		conditions: conditions,
		active:     active,
		startsAt:   startsAt,
		endsAt:     endsAt,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// UsageCounts carries the redemption-ledger tallies needed by validation.
type UsageCounts struct {
	Total   int
	ForUser int
}

// Validate runs the gate checks in contract order; the first failing check
// wins. Existence (check 1) is the caller's lookup concern. Returns nil when
// the coupon may be applied.
func (c *Coupon) Validate(now time.Time, cart Cart, userID *uuid.UUID, usage UsageCounts) error {
	if !c.active || !c.isWithinWindow(now) {
		return Reject(ReasonInactiveExpired)
	}

	if min := c.conditions.MinOrder; min != nil && cart.Subtotal < *min {
		return Reject(fmt.Sprintf("Minimum order value of %.2f required", *min))
	}

	if len(c.conditions.ProductSKUs) > 0 && !cart.ContainsAnySKU(c.conditions.ProductSKUs) {
		return Reject(ReasonMissingProducts)
	}

	if max := c.conditions.MaxRedemptions; max != nil && usage.Total >= *max {
		return Reject(ReasonMaxRedemptions)
	}

	if limit := c.conditions.UsageLimitPerUser; limit != nil && userID != nil && usage.ForUser >= *limit {
		return Reject(ReasonUserLimitReached)
	}

	return nil
}

func (c *Coupon) isWithinWindow(now time.Time) bool {
	if c.startsAt != nil && now.Before(*c.startsAt) {
		return false
	}
	if c.endsAt != nil && now.After(*c.endsAt) {
		return false
	}
	return true
}

// Discount computes the discount amount for the cart, rounded half-up to 2
// decimals, never negative and never exceeding the cart subtotal.
func (c *Coupon) Discount(cart Cart) float64 {
	var amount float64
	switch c.kind {
	case TypePercent:
		amount = money.Percent(cart.Subtotal, c.value)
	case TypeFixed:
		amount = c.value
	case TypeBOGO:
		amount = c.bogoDiscount(cart)
	case TypeTiered:
		// Behaves as percent once minOrder has passed validation. The name
		// implies cart-size tier breakpoints the source never implemented;
		// current behavior is preserved rather than inventing tier logic.
		amount = money.Percent(cart.Subtotal, c.value)
	}

	if amount < 0 {
		amount = 0
	}
	if amount > cart.Subtotal {
		amount = cart.Subtotal
	}
	return money.Round2(amount)
}

// Every second unit of a qualifying SKU is free; lines with quantity < 2
// contribute nothing.
func (c *Coupon) bogoDiscount(cart Cart) float64 {
	set := make(map[string]struct{}, len(c.conditions.ProductSKUs))
	for _, s := range c.conditions.ProductSKUs {
		set[s] = struct{}{}
	}

	var discount float64
	for _, item := range cart.Items {
		if _, ok := set[item.SKU]; !ok {
			continue
		}
		freeUnits := item.Quantity / 2
		discount += float64(freeUnits) * item.UnitPrice
	}
	return discount
}

func (c *Coupon) ID() uuid.UUID          { return c.id }
func (c *Coupon) StoreID() uuid.UUID     { return c.storeID }
func (c *Coupon) Code() Code             { return c.code }
func (c *Coupon) Kind() Type             { return c.kind }
func (c *Coupon) Value() float64         { return c.value }
func (c *Coupon) Conditions() Conditions { return c.conditions }
func (c *Coupon) IsActive() bool         { return c.active }
func (c *Coupon) StartsAt() *time.Time   { return c.startsAt }
func (c *Coupon) EndsAt() *time.Time     { return c.endsAt }
func (c *Coupon) CreatedAt() time.Time   { return c.createdAt }
func (c *Coupon) UpdatedAt() time.Time   { return c.updatedAt }

// Redemption is one append-only ledger row; never updated or deleted.
// (couponID, orderID) is unique at the storage layer, which is the
// concurrency backstop against double redemption for an order.
type Redemption struct {
	ID             uuid.UUID
	CouponID       uuid.UUID
	Code           string
	UserID         *uuid.UUID
	OrderID        uuid.UUID
	DiscountAmount float64
	RedeemedAt     time.Time
}
