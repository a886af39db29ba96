package queries

import (
	"context"

	"github.com/google/uuid"

	"martcore/internal/domain/shipping"
)

type OrderQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	ListByStore(ctx context.Context, storeID uuid.UUID, limit int) ([]*OrderView, error)
}

type CouponQueries interface {
	GetByCode(ctx context.Context, storeID uuid.UUID, code string) (*CouponView, error)
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]*CouponView, error)
}

type RateQuoteParams struct {
	StoreID     uuid.UUID
	Destination shipping.Destination
	RateType    shipping.RateType
	Measurement float64
	COD         bool
}

type RateQuoteView struct {
	Serviceable   bool      `json:"serviceable"`
	ZoneID        uuid.UUID `json:"zoneId,omitempty"`
	ZoneName      string    `json:"zoneName,omitempty"`
	BaseRate      float64   `json:"baseRate"`
	VariableRate  float64   `json:"variableRate"`
	CODSurcharge  float64   `json:"codSurcharge"`
	TotalShipping float64   `json:"totalShipping"`
}

type ShippingQueries interface {
	// QuoteRate resolves a destination + measurement to a shipping quote
	// without writing anything. Unserviceable is a result, not an error.
	QuoteRate(ctx context.Context, params RateQuoteParams) (*RateQuoteView, error)
	ListZones(ctx context.Context, storeID uuid.UUID) ([]*ZoneView, error)
	ListRates(ctx context.Context, zoneID uuid.UUID) ([]*RateView, error)
}

type AutoDiscountQueries interface {
	ListProposals(ctx context.Context, storeID uuid.UUID, status string) ([]*ProposalView, error)
}
