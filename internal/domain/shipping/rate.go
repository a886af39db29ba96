package shipping

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"martcore/internal/pkg/money"
)

var (
	ErrInvalidRateType   = errors.New("invalid rate type")
	ErrInvalidSlabBounds = errors.New("slab maxValue must be greater than minValue")
	ErrNegativeRate      = errors.New("rates cannot be negative")
)

type RateType string

const (
	RateTypeWeight     RateType = "weight"
	RateTypeOrderValue RateType = "order_value"
)

func (t RateType) IsValid() bool {
	return t == RateTypeWeight || t == RateTypeOrderValue
}

// OverlapError reports the existing slab whose interval collides with the
// one being created, with its bounds, so operators can fix the rate table.
type OverlapError struct {
	ExistingID  uuid.UUID
	ExistingMin float64
	ExistingMax float64
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("rate slab overlaps existing slab [%g, %g)", e.ExistingMin, e.ExistingMax)
}

// Rate is one slab of a zone's rate table: a half-open interval
// [minValue, maxValue) over weight or order value.
type Rate struct {
	id           uuid.UUID
	zoneID       uuid.UUID
	rateType     RateType
	minValue     float64
	maxValue     float64
	baseRate     float64
	perUnitRate  float64
	codSurcharge float64
	active       bool
}

func NewRate(
	id, zoneID uuid.UUID,
	rateType RateType,
	minValue, maxValue, baseRate, perUnitRate, codSurcharge float64,
) (*Rate, error) {
	if !rateType.IsValid() {
		return nil, ErrInvalidRateType
	}
	if maxValue <= minValue {
		return nil, ErrInvalidSlabBounds
	}
	if minValue < 0 || baseRate < 0 || perUnitRate < 0 || codSurcharge < 0 {
		return nil, ErrNegativeRate
	}

	return &Rate{
		id:           id,
		zoneID:       zoneID,
		rateType:     rateType,
		minValue:     minValue,
		maxValue:     maxValue,
		baseRate:     baseRate,
		perUnitRate:  perUnitRate,
		codSurcharge: codSurcharge,
		active:       true,
	}, nil
}

func ReconstructRate(
	id, zoneID uuid.UUID,
	rateType RateType,
	minValue, maxValue, baseRate, perUnitRate, codSurcharge float64,
	active bool,
) *Rate {
	return &Rate{
		id:           id,
		zoneID:       zoneID,
		rateType:     rateType,
		minValue:     minValue,
		maxValue:     maxValue,
		baseRate:     baseRate,
		perUnitRate:  perUnitRate,
		codSurcharge: codSurcharge,
		active:       active,
	}
}

// Matches tests measurement against the half-open interval [min, max).
func (r *Rate) Matches(measurement float64) bool {
	return measurement >= r.minValue && measurement < r.maxValue
}

// Overlaps tests pairwise interval overlap against another slab in the same
// (zone, rateType, active) partition.
func (r *Rate) Overlaps(other *Rate) bool {
	return (other.minValue <= r.minValue && other.maxValue > r.minValue) ||
		(other.minValue < r.maxValue && other.maxValue >= r.maxValue) ||
		(other.minValue >= r.minValue && other.maxValue <= r.maxValue)
}

// CheckAgainst rejects the receiver if it overlaps any existing active slab
// of the same partition, naming the offending slab.
func (r *Rate) CheckAgainst(existing []*Rate) error {
	for _, e := range existing {
		if e.id == r.id || !e.active || e.rateType != r.rateType {
			continue
		}
		if r.Overlaps(e) {
			return &OverlapError{ExistingID: e.id, ExistingMin: e.minValue, ExistingMax: e.maxValue}
		}
	}
	return nil
}

// Cost computes baseRate + measurement*perUnitRate + codSurcharge (COD
// only), rounded half-up to 2 decimals. The surcharge applies on payment
// method alone, regardless of rate type.
func (r *Rate) Cost(measurement float64, cod bool) float64 {
	total := r.baseRate + measurement*r.perUnitRate
	if cod {
		total += r.codSurcharge
	}
	return money.Round2(total)
}

func (r *Rate) ID() uuid.UUID         { return r.id }
func (r *Rate) ZoneID() uuid.UUID     { return r.zoneID }
func (r *Rate) Type() RateType        { return r.rateType }
func (r *Rate) MinValue() float64     { return r.minValue }
func (r *Rate) MaxValue() float64     { return r.maxValue }
func (r *Rate) BaseRate() float64     { return r.baseRate }
func (r *Rate) PerUnitRate() float64  { return r.perUnitRate }
func (r *Rate) CODSurcharge() float64 { return r.codSurcharge }
func (r *Rate) IsActive() bool        { return r.active }
