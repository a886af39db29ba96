package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read-model views. Snapshot blocks are pointers: nil means the block was
// never frozen (e.g. no referral touch).

type OrderItemView struct {
	ProductID    uuid.UUID `json:"productId"`
	SupplierID   uuid.UUID `json:"supplierId"`
	SKU          string    `json:"sku"`
	Quantity     int       `json:"quantity"`
	UnitPrice    float64   `json:"unitPrice"`
	SupplierCost float64   `json:"supplierCost"`
	TaxRate      float64   `json:"taxRate"`
	TaxAmount    float64   `json:"taxAmount"`
}

type TaxBreakupLineView struct {
	Name   string  `json:"name"`
	Rate   float64 `json:"rate"`
	Amount float64 `json:"amount"`
}

type TaxSnapshotView struct {
	TaxType       string               `json:"taxType"`
	CountryCode   string               `json:"countryCode"`
	PlaceOfSupply string               `json:"placeOfSupply"`
	TaxableAmount float64              `json:"taxableAmount"`
	TaxBreakup    []TaxBreakupLineView `json:"taxBreakup"`
	TotalTax      float64              `json:"totalTax"`
	CalculatedAt  time.Time            `json:"calculatedAt"`
}

type ShippingSnapshotView struct {
	ZoneID        uuid.UUID `json:"zoneId"`
	ZoneName      string    `json:"zoneName"`
	RateType      string    `json:"rateType"`
	SlabMin       float64   `json:"slabMin"`
	SlabMax       float64   `json:"slabMax"`
	BaseRate      float64   `json:"baseRate"`
	VariableRate  float64   `json:"variableRate"`
	CODSurcharge  float64   `json:"codSurcharge"`
	TotalShipping float64   `json:"totalShipping"`
	Serviceable   bool      `json:"serviceable"`
	CalculatedAt  time.Time `json:"calculatedAt"`
}

type CourierSnapshotView struct {
	CourierID   uuid.UUID  `json:"courierId"`
	CourierName string     `json:"courierName"`
	RuleID      *uuid.UUID `json:"ruleId,omitempty"`
	Reason      string     `json:"reason"`
	AssignedAt  time.Time  `json:"assignedAt"`
}

type ShipmentGroupView struct {
	SupplierID    uuid.UUID `json:"supplierId"`
	OriginAddress string    `json:"originAddress"`
	SKUs          []string  `json:"skus"`
	ShippingCost  float64   `json:"shippingCost"`
}

type FulfillmentSnapshotView struct {
	Groups   []ShipmentGroupView `json:"groups"`
	RoutedAt time.Time           `json:"routedAt"`
}

type ReferralSnapshotView struct {
	ReferrerID       uuid.UUID `json:"referrerId"`
	AttributionModel string    `json:"attributionModel"`
	CampaignCode     string    `json:"campaignCode"`
	AttributedAt     time.Time `json:"attributedAt"`
}

type LastTransitionView struct {
	From      string     `json:"from"`
	To        string     `json:"to"`
	At        time.Time  `json:"at"`
	ActorRole string     `json:"actorRole"`
	ActorID   *uuid.UUID `json:"actorId,omitempty"`
}

type OrderView struct {
	ID             uuid.UUID                `json:"id"`
	StoreID        uuid.UUID                `json:"storeId"`
	CustomerID     *uuid.UUID               `json:"customerId,omitempty"`
	Items          []OrderItemView          `json:"items"`
	Status         string                   `json:"status"`
	PaymentStatus  string                   `json:"paymentStatus"`
	PaymentMethod  string                   `json:"paymentMethod"`
	Subtotal       float64                  `json:"subtotal"`
	Discount       float64                  `json:"discount"`
	CouponCode     *string                  `json:"couponCode,omitempty"`
	Total          float64                  `json:"total"`
	Tax            *TaxSnapshotView         `json:"taxSnapshot,omitempty"`
	Shipping       *ShippingSnapshotView    `json:"shippingSnapshot,omitempty"`
	Courier        *CourierSnapshotView     `json:"courierSnapshot,omitempty"`
	Fulfillment    *FulfillmentSnapshotView `json:"fulfillmentSnapshot,omitempty"`
	Referral       *ReferralSnapshotView    `json:"referralSnapshot,omitempty"`
	LastTransition *LastTransitionView      `json:"lastTransition,omitempty"`
	CreatedAt      time.Time                `json:"createdAt"`
	UpdatedAt      time.Time                `json:"updatedAt"`
}

type CouponView struct {
	ID             uuid.UUID  `json:"id"`
	StoreID        uuid.UUID  `json:"storeId"`
	Code           string     `json:"code"`
	Type           string     `json:"type"`
	Value          float64    `json:"value"`
	Active         bool       `json:"active"`
	StartsAt       *time.Time `json:"startsAt,omitempty"`
	EndsAt         *time.Time `json:"endsAt,omitempty"`
	RedemptionsUsed int       `json:"redemptionsUsed"`
}

type ZoneView struct {
	ID          uuid.UUID `json:"id"`
	StoreID     uuid.UUID `json:"storeId"`
	Name        string    `json:"name"`
	CountryCode string    `json:"countryCode"`
	StateCodes  []string  `json:"stateCodes"`
	Pincodes    []string  `json:"pincodes"`
	IsActive    bool      `json:"isActive"`
}

type RateView struct {
	ID           uuid.UUID `json:"id"`
	ZoneID       uuid.UUID `json:"zoneId"`
	RateType     string    `json:"rateType"`
	MinValue     float64   `json:"minValue"`
	MaxValue     float64   `json:"maxValue"`
	BaseRate     float64   `json:"baseRate"`
	PerUnitRate  float64   `json:"perUnitRate"`
	CODSurcharge float64   `json:"codSurcharge"`
	IsActive     bool      `json:"isActive"`
}

type ProposalView struct {
	ID              uuid.UUID  `json:"id"`
	StoreID         uuid.UUID  `json:"storeId"`
	Scope           string     `json:"scope"`
	EntityID        *uuid.UUID `json:"entityId,omitempty"`
	SKU             string     `json:"sku"`
	CurrentPrice    float64    `json:"currentPrice"`
	ProposedPrice   float64    `json:"proposedPrice"`
	DiscountPercent float64    `json:"discountPercent"`
	DiscountAmount  float64    `json:"discountAmount"`
	Status          string     `json:"status"`
	RevenueLoss     float64    `json:"revenueLoss"`
	SalesIncrease   float64    `json:"expectedSalesIncrease"`
	BreakEvenDays   int        `json:"breakEvenDays"`
	ExpiresAt       time.Time  `json:"expiresAt"`
	CreatedAt       time.Time  `json:"createdAt"`
}
