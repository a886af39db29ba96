package autodiscount

import (
	"time"

	"github.com/google/uuid"
)

type ProposalStatus string

const (
	ProposalPending  ProposalStatus = "pending"
	ProposalApproved ProposalStatus = "approved"
	ProposalRejected ProposalStatus = "rejected"
)

// Impact is the informational projection attached to a proposal. It never
// gates proposal creation.
type Impact struct {
	RevenueLoss           float64
	ExpectedSalesIncrease float64
	BreakEvenDays         int
}

// Proposal is the engine's only output: a pending, time-bounded discount
// suggestion. Approval or rejection is an external actor's decision; the
// engine never touches live pricing.
type Proposal struct {
	ID              uuid.UUID
	StoreID         uuid.UUID
	Scope           Scope
	EntityID        *uuid.UUID
	RuleID          uuid.UUID
	AlertID         uuid.UUID
	SKUID           uuid.UUID
	SKU             string
	CurrentPrice    float64
	ProposedPrice   float64
	DiscountPercent float64
	DiscountAmount  float64
	Status          ProposalStatus
	ExpectedImpact  Impact
	ExpiresAt       time.Time
	CreatedAt       time.Time
}
