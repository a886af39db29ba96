package order

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrSnapshotFrozen is returned when a code path attempts to overwrite a
// snapshot block that has already been frozen onto the order.
var ErrSnapshotFrozen = errors.New("snapshot is already frozen")

// Frozen is a write-once container: Unset until Freeze, then permanently
// holding its value. There is deliberately no setter or reset; later price,
// tax, or rate-table changes must never retroactively alter a placed order.
type Frozen[T any] struct {
	set   bool
	value T
}

func Freeze[T any](value T) Frozen[T] {
	return Frozen[T]{set: true, value: value}
}

func (f Frozen[T]) IsFrozen() bool {
	return f.set
}

func (f Frozen[T]) Get() (T, bool) {
	return f.value, f.set
}

// MustGet panics when unset; reserved for code paths where the pipeline has
// already guaranteed the block is frozen.
func (f Frozen[T]) MustGet() T {
	if !f.set {
		panic("order: access to unset snapshot")
	}
	return f.value
}

type TaxBreakupLine struct {
	Name   string
	Rate   float64
	Amount float64
}

type TaxSnapshot struct {
	TaxType       string
	CountryCode   string
	PlaceOfSupply string
	TaxableAmount float64
	TaxBreakup    []TaxBreakupLine
	TotalTax      float64
	CalculatedAt  time.Time
}

type ShippingSnapshot struct {
	ZoneID        uuid.UUID
	ZoneName      string
	RateType      string
	SlabMin       float64
	SlabMax       float64
	BaseRate      float64
	VariableRate  float64
	CODSurcharge  float64
	TotalShipping float64
	Serviceable   bool
	CalculatedAt  time.Time
}

type CourierSnapshot struct {
	CourierID   uuid.UUID
	CourierName string
	RuleID      *uuid.UUID
	Reason      string
	AssignedAt  time.Time
}

// ShipmentGroup is one supplier-origin split of the order's items.
type ShipmentGroup struct {
	SupplierID    uuid.UUID
	OriginAddress string
	SKUs          []string
	ShippingCost  float64
}

type FulfillmentSnapshot struct {
	Groups   []ShipmentGroup
	RoutedAt time.Time
}

type ReferralSnapshot struct {
	ReferrerID       uuid.UUID
	AttributionModel string
	CampaignCode     string
	AttributedAt     time.Time
}
