package autodiscount

import (
	"errors"
	"sort"

	"github.com/google/uuid"
)

var (
	ErrInvalidScope      = errors.New("invalid discount rule scope")
	ErrInvalidStrategy   = errors.New("invalid discount strategy")
	ErrInvalidClampRange = errors.New("minDiscountPercent cannot exceed maxDiscountPercent")
)

type Scope string

const (
	ScopeAdmin    Scope = "admin"
	ScopeSupplier Scope = "supplier"
	ScopeReseller Scope = "reseller"
)

func (s Scope) IsValid() bool {
	switch s {
	case ScopeAdmin, ScopeSupplier, ScopeReseller:
		return true
	}
	return false
}

type Strategy string

const (
	StrategyFixed      Strategy = "fixed"
	StrategyPercentage Strategy = "percentage"
	StrategyTiered     Strategy = "tiered"
)

func (s Strategy) IsValid() bool {
	switch s {
	case StrategyFixed, StrategyPercentage, StrategyTiered:
		return true
	}
	return false
}

// Tier maps a days-since-last-sale threshold to a discount percentage.
type Tier struct {
	DaysThreshold      int
	DiscountPercentage float64
}

// Rule governs how a dead-stock alert may be converted into a discount
// proposal for one (store, scope, entity) partition.
type Rule struct {
	id                 uuid.UUID
	storeID            uuid.UUID
	scope              Scope
	entityID           *uuid.UUID
	strategy           Strategy
	fixedDiscount      float64
	percentageDiscount float64
	tiers              []Tier

	minDiscountPercent float64
	maxDiscountPercent float64

	minDaysSinceLastSale int
	minStockLevel        int
	minStockValue        *float64
	severityFilter       []string

	autoExpireDays int
	active         bool
}

type RuleParams struct {
	ID                   uuid.UUID
	StoreID              uuid.UUID
	Scope                Scope
	EntityID             *uuid.UUID
	Strategy             Strategy
	FixedDiscount        float64
	PercentageDiscount   float64
	Tiers                []Tier
	MinDiscountPercent   float64
	MaxDiscountPercent   float64
	MinDaysSinceLastSale int
	MinStockLevel        int
	MinStockValue        *float64
	SeverityFilter       []string
	AutoExpireDays       int
	Active               bool
}

func NewRule(p RuleParams) (*Rule, error) {
	if !p.Scope.IsValid() {
		return nil, ErrInvalidScope
	}
	if !p.Strategy.IsValid() {
		return nil, ErrInvalidStrategy
	}
	if p.MinDiscountPercent > p.MaxDiscountPercent {
		return nil, ErrInvalidClampRange
	}

	// Tiers are picked highest threshold first.
	tiers := make([]Tier, len(p.Tiers))
	copy(tiers, p.Tiers)
	sort.Slice(tiers, func(i, j int) bool {
		return tiers[i].DaysThreshold > tiers[j].DaysThreshold
	})

	return &Rule{
		id:                   p.ID,
		storeID:              p.StoreID,
		scope:                p.Scope,
		entityID:             p.EntityID,
		strategy:             p.Strategy,
		fixedDiscount:        p.FixedDiscount,
		percentageDiscount:   p.PercentageDiscount,
		tiers:                tiers,
		minDiscountPercent:   p.MinDiscountPercent,
		maxDiscountPercent:   p.MaxDiscountPercent,
		minDaysSinceLastSale: p.MinDaysSinceLastSale,
		minStockLevel:        p.MinStockLevel,
		minStockValue:        p.MinStockValue,
		severityFilter:       p.SeverityFilter,
		autoExpireDays:       p.AutoExpireDays,
		active:               p.Active,
	}, nil
}

func (r *Rule) ID() uuid.UUID                { return r.id }
func (r *Rule) StoreID() uuid.UUID           { return r.storeID }
func (r *Rule) Scope() Scope                 { return r.scope }
func (r *Rule) EntityID() *uuid.UUID         { return r.entityID }
func (r *Rule) Strategy() Strategy           { return r.strategy }
func (r *Rule) FixedDiscount() float64       { return r.fixedDiscount }
func (r *Rule) PercentageDiscount() float64  { return r.percentageDiscount }
func (r *Rule) Tiers() []Tier                { return r.tiers }
func (r *Rule) MinDiscountPercent() float64  { return r.minDiscountPercent }
func (r *Rule) MaxDiscountPercent() float64  { return r.maxDiscountPercent }
func (r *Rule) MinDaysSinceLastSale() int    { return r.minDaysSinceLastSale }
func (r *Rule) MinStockLevel() int           { return r.minStockLevel }
func (r *Rule) MinStockValue() *float64      { return r.minStockValue }
func (r *Rule) SeverityFilter() []string     { return r.severityFilter }
func (r *Rule) AutoExpireDays() int          { return r.autoExpireDays }
func (r *Rule) IsActive() bool               { return r.active }
