package request

import (
	"time"

	"github.com/google/uuid"

	"martcore/internal/domain/coupon"
	"martcore/internal/usecase/commands"
)

type CreateCouponRequest struct {
	Code              string     `json:"code" binding:"required"`
	Type              string     `json:"type" binding:"required,oneof=percent fixed bogo tiered"`
	Value             float64    `json:"value" binding:"required,gt=0"`
	MinOrder          *float64   `json:"minOrder,omitempty"`
	ProductSKUs       []string   `json:"productSkus,omitempty"`
	UsageLimitPerUser *int       `json:"usageLimitPerUser,omitempty"`
	MaxRedemptions    *int       `json:"maxRedemptions,omitempty"`
	Active            bool       `json:"active"`
	StartsAt          *time.Time `json:"startsAt,omitempty"`
	EndsAt            *time.Time `json:"endsAt,omitempty"`
}

func (r CreateCouponRequest) ToParams(storeID uuid.UUID) commands.CreateCouponParams {
	return commands.CreateCouponParams{
		StoreID: storeID,
		Code:    r.Code,
		Type:    coupon.Type(r.Type),
		Value:   r.Value,
		Conditions: coupon.Conditions{
			MinOrder:          r.MinOrder,
			ProductSKUs:       r.ProductSKUs,
			UsageLimitPerUser: r.UsageLimitPerUser,
			MaxRedemptions:    r.MaxRedemptions,
		},
		Active:   r.Active,
		StartsAt: r.StartsAt,
		EndsAt:   r.EndsAt,
	}
}

type CartItemRequest struct {
	ProductID  uuid.UUID `json:"productId"`
	SKU        string    `json:"sku" binding:"required"`
	Quantity   int       `json:"quantity" binding:"required,gt=0"`
	UnitPrice  float64   `json:"unitPrice" binding:"required,gte=0"`
	TotalPrice float64   `json:"totalPrice" binding:"gte=0"`
}

type ValidateCouponRequest struct {
	StoreID  uuid.UUID         `json:"storeId" binding:"required"`
	Code     string            `json:"code" binding:"required"`
	Items    []CartItemRequest `json:"items" binding:"required,min=1,dive"`
	Subtotal float64           `json:"subtotal" binding:"required,gte=0"`
}

func (r ValidateCouponRequest) ToCart() coupon.Cart {
	items := make([]coupon.CartItem, 0, len(r.Items))
	for _, it := range r.Items {
		total := it.TotalPrice
		if total == 0 {
			total = it.UnitPrice * float64(it.Quantity)
		}
		items = append(items, coupon.CartItem{
			ProductID:  it.ProductID,
			SKU:        it.SKU,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: total,
		})
	}
	return coupon.Cart{Items: items, Subtotal: r.Subtotal}
}

type RedeemCouponRequest struct {
	StoreID  uuid.UUID         `json:"storeId" binding:"required"`
	Code     string            `json:"code" binding:"required"`
	OrderID  uuid.UUID         `json:"orderId" binding:"required"`
	Items    []CartItemRequest `json:"items" binding:"required,min=1,dive"`
	Subtotal float64           `json:"subtotal" binding:"required,gte=0"`
}

func (r RedeemCouponRequest) ToCart() coupon.Cart {
	return ValidateCouponRequest{
		StoreID:  r.StoreID,
		Code:     r.Code,
		Items:    r.Items,
		Subtotal: r.Subtotal,
	}.ToCart()
}
