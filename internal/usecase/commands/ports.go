package commands

import (
	"context"

	"github.com/google/uuid"

	"martcore/internal/domain/order"
)

// Ports to external collaborators. The pricing engine consumes these as
// plain data contracts; their implementations live outside the core.

type TaxInput struct {
	StoreID       uuid.UUID
	CountryCode   string
	PlaceOfSupply string
	TaxableAmount float64
}

type TaxCalculator interface {
	Calculate(ctx context.Context, in TaxInput) (order.TaxSnapshot, error)
}

type CourierInput struct {
	StoreID     uuid.UUID
	Destination DestinationInput
	WeightKg    float64
	COD         bool
}

type CourierAssigner interface {
	Assign(ctx context.Context, in CourierInput) (order.CourierSnapshot, error)
}

type AttributionInput struct {
	StoreID    uuid.UUID
	CustomerID *uuid.UUID
	// ReferralCode is the tracked touch carried in from the storefront, if
	// any.
	ReferralCode string
}

type ReferralAttributor interface {
	// Attribute returns nil when the order arose from no tracked touch.
	Attribute(ctx context.Context, in AttributionInput) (*order.ReferralSnapshot, error)
}

// SupplierDirectory resolves supplier origin addresses for fulfillment
// routing.
type SupplierDirectory interface {
	OriginAddress(ctx context.Context, supplierID uuid.UUID) (string, error)
}

// PriceLookup resolves the current live price of a SKU (variant base price
// or reseller override).
type PriceLookup interface {
	CurrentPrice(ctx context.Context, storeID, skuID uuid.UUID) (float64, error)
}
