//go:build unit || e2e

package builder

import (
	"time"

	domcoupon "martcore/internal/domain/coupon"

	"github.com/google/uuid"
)

type CouponBuilder struct {
	ID         uuid.UUID
	StoreID    uuid.UUID
	Code       string
	Kind       domcoupon.Type
	Value      float64
	Conditions domcoupon.Conditions
	Active     bool
	StartsAt   *time.Time
	EndsAt     *time.Time
}

func NewCouponBuilder() *CouponBuilder {
	return &CouponBuilder{
		ID:      uuid.New(),
		StoreID: uuid.New(),
		Code:    "SAVE10",
		Kind:    domcoupon.TypePercent,
		Value:   10,
		Active:  true,
	}
}

func (b *CouponBuilder) With(mutate func(*CouponBuilder)) *CouponBuilder {
	mutate(b)
	return b
}

func (b *CouponBuilder) WithCode(code string) *CouponBuilder {
	b.Code = code
	return b
}

func (b *CouponBuilder) WithKind(kind domcoupon.Type, value float64) *CouponBuilder {
	b.Kind = kind
	b.Value = value
	return b
}

func (b *CouponBuilder) WithMinOrder(min float64) *CouponBuilder {
	b.Conditions.MinOrder = &min
	return b
}

func (b *CouponBuilder) WithProductSKUs(skus ...string) *CouponBuilder {
	b.Conditions.ProductSKUs = skus
	return b
}

func (b *CouponBuilder) WithMaxRedemptions(max int) *CouponBuilder {
	b.Conditions.MaxRedemptions = &max
	return b
}

func (b *CouponBuilder) WithUsageLimitPerUser(limit int) *CouponBuilder {
	b.Conditions.UsageLimitPerUser = &limit
	return b
}

func (b *CouponBuilder) WithWindow(startsAt, endsAt *time.Time) *CouponBuilder {
	b.StartsAt = startsAt
	b.EndsAt = endsAt
	return b
}

func (b *CouponBuilder) Inactive() *CouponBuilder {
	b.Active = false
	return b
}

func (b *CouponBuilder) BuildDomain() (*domcoupon.Coupon, error) {
	return domcoupon.NewCoupon(
		b.ID, b.StoreID, b.Code, b.Kind, b.Value, b.Conditions, b.Active, b.StartsAt, b.EndsAt,
	)
}

// NewCart assembles a cart whose subtotal follows from its lines.
func NewCart(items ...domcoupon.CartItem) domcoupon.Cart {
	var subtotal float64
	for _, it := range items {
		subtotal += it.UnitPrice * float64(it.Quantity)
	}
	return domcoupon.Cart{Subtotal: subtotal, Items: items}
}
