package order

import (
	"time"

	"github.com/google/uuid"

	"martcore/internal/domain/identity"
)

type Status string

const (
	StatusCreated        Status = "created"
	StatusPaymentPending Status = "payment_pending"
	StatusConfirmed      Status = "confirmed"
	StatusProcessing     Status = "processing"
	StatusShipped        Status = "shipped"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
	StatusReturned       Status = "returned"
	StatusRefunded       Status = "refunded"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	_, ok := legalTransitions[s]
	return ok
}

// IsTerminal reports whether no forward transition exists. delivered is
// terminal for the fulfillment flow; the return branch is modeled as its own
// guarded operation, not a forward transition.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusDelivered, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

// legalTransitions is the authoritative transition table. cancelled and
// returned are reachable only through Cancel/Return guards, never through a
// plain status update.
var legalTransitions = map[Status][]Status{
	StatusCreated:        {StatusPaymentPending, StatusConfirmed},
	StatusPaymentPending: {StatusConfirmed},
	StatusConfirmed:      {StatusProcessing},
	StatusProcessing:     {StatusShipped},
	StatusShipped:        {StatusOutForDelivery},
	StatusOutForDelivery: {StatusDelivered},
	StatusDelivered:      {},
	StatusCancelled:      {},
	StatusReturned:       {StatusRefunded},
	StatusRefunded:       {},
}

var cancellableStatuses = map[Status]bool{
	StatusCreated:        true,
	StatusPaymentPending: true,
	StatusConfirmed:      true,
	StatusProcessing:     true,
}

func CanTransition(from, to Status) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func IsCancellable(from Status) bool {
	return cancellableStatuses[from]
}

func IsReturnable(from Status) bool {
	return from == StatusDelivered
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	PaymentMethodPrepaid        PaymentMethod = "prepaid"
	PaymentMethodCashOnDelivery PaymentMethod = "cod"
)

func (m PaymentMethod) IsCOD() bool {
	return m == PaymentMethodCashOnDelivery
}

// Actor identifies who performed a lifecycle transition.
type Actor struct {
	Role identity.Role
	ID   *uuid.UUID
}

// LastTransition is the most recent status change, kept for audit. Only the
// latest transition is retained here; full history belongs to the external
// audit log.
type LastTransition struct {
	From      Status
	To        Status
	At        time.Time
	ActorRole identity.Role
	ActorID   *uuid.UUID
}

// Cancellation records why and when an order was cancelled.
type Cancellation struct {
	Reason      string
	CancelledAt time.Time
	ActorRole   identity.Role
}

// ReturnInfo records the return request that moved a delivered order into
// the returned branch.
type ReturnInfo struct {
	Reason     string
	ReturnedAt time.Time
	ActorRole  identity.Role
}

// StatusChangedEvent is published on every successful lifecycle transition.
// Downstream notification listeners key off these.
type StatusChangedEvent struct {
	OrderID   uuid.UUID
	StoreID   uuid.UUID
	From      Status
	To        Status
	At        time.Time
	ActorRole identity.Role
}
