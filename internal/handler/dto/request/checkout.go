package request

import (
	"strings"

	"github.com/google/uuid"

	"martcore/internal/domain/order"
	"martcore/internal/usecase/commands"
)

type CheckoutItemRequest struct {
	ProductID    uuid.UUID `json:"productId" binding:"required"`
	SupplierID   uuid.UUID `json:"supplierId" binding:"required"`
	SKU          string    `json:"sku" binding:"required"`
	Quantity     int       `json:"quantity" binding:"required,gt=0"`
	UnitPrice    float64   `json:"unitPrice" binding:"required,gte=0"`
	SupplierCost float64   `json:"supplierCost" binding:"gte=0"`
	TaxRate      float64   `json:"taxRate" binding:"gte=0"`
	WeightKg     float64   `json:"weightKg" binding:"gte=0"`
}

type DestinationRequest struct {
	CountryCode string `json:"countryCode" binding:"required"`
	StateCode   string `json:"stateCode"`
	Pincode     string `json:"pincode"`
}

type PlaceOrderRequest struct {
	StoreID       uuid.UUID             `json:"storeId" binding:"required"`
	Items         []CheckoutItemRequest `json:"items" binding:"required,min=1,dive"`
	PaymentMethod string                `json:"paymentMethod" binding:"required,oneof=prepaid cod"`
	Destination   DestinationRequest    `json:"destination" binding:"required"`
	CouponCode    *string               `json:"couponCode,omitempty"`
	ReferralCode  string                `json:"referralCode,omitempty"`
}

func (r PlaceOrderRequest) GetCouponCode() *string {
	if r.CouponCode == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.CouponCode)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (r PlaceOrderRequest) ToParams(customerID *uuid.UUID) commands.PlaceOrderParams {
	items := make([]commands.OrderItemInput, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, commands.OrderItemInput{
			ProductID:    it.ProductID,
			SupplierID:   it.SupplierID,
			SKU:          it.SKU,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			SupplierCost: it.SupplierCost,
			TaxRate:      it.TaxRate,
			WeightKg:     it.WeightKg,
		})
	}
	return commands.PlaceOrderParams{
		StoreID:       r.StoreID,
		CustomerID:    customerID,
		Items:         items,
		PaymentMethod: order.PaymentMethod(r.PaymentMethod),
		Destination: commands.DestinationInput{
			CountryCode: r.Destination.CountryCode,
			StateCode:   r.Destination.StateCode,
			Pincode:     r.Destination.Pincode,
		},
		CouponCode:   r.GetCouponCode(),
		ReferralCode: strings.TrimSpace(r.ReferralCode),
	}
}
