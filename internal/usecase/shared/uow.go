package shared

import (
	"context"

	"github.com/google/uuid"

	"martcore/internal/domain/autodiscount"
	"martcore/internal/domain/coupon"
	"martcore/internal/domain/identity"
	"martcore/internal/domain/order"
	"martcore/internal/domain/shipping"
)

// UnitOfWork hides transaction management from the command layer.
type UnitOfWork interface {
	// Within: ReadCommitted transaction for regular write operations.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinSerializable: serializable transaction for check-then-insert
	// flows (rate slab overlap checks) where reading stale state would be a
	// correctness bug.
	WithinSerializable(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: validation reads outside any transaction.
	CommandReads() CommandReads
}

type Tx interface {
	Orders() OrderRepository
	Coupons() CouponRepository
	Redemptions() RedemptionRepository
	Zones() ZoneRepository
	Rates() RateRepository
	Proposals() ProposalRepository
	Accounts() AccountRepository
	Reads() CommandReads
}

// CommandReads are the lookups command handlers need before and during
// writes. Implementations must read committed state; inside a transaction
// they observe that transaction.
type CommandReads interface {
	CouponByCode(ctx context.Context, storeID uuid.UUID, code string) (*coupon.Coupon, error)
	RedemptionCounts(ctx context.Context, couponID uuid.UUID, userID *uuid.UUID) (coupon.UsageCounts, error)
	OrderByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
	ZonesByStore(ctx context.Context, storeID uuid.UUID) ([]*shipping.Zone, error)
	ActiveRatesByZone(ctx context.Context, zoneIDs []uuid.UUID) (map[string][]*shipping.Rate, error)
	ActiveRatesForPartition(ctx context.Context, zoneID uuid.UUID, rateType shipping.RateType) ([]*shipping.Rate, error)
	RuleForScope(ctx context.Context, storeID uuid.UUID, scope autodiscount.Scope, entityID *uuid.UUID) (*autodiscount.Rule, error)
	AlertByID(ctx context.Context, id uuid.UUID) (*autodiscount.Alert, error)
	PendingProposalExists(ctx context.Context, scope autodiscount.Scope, entityID *uuid.UUID, skuID, alertID uuid.UUID) (bool, error)
	AccountByEmail(ctx context.Context, email string) (*identity.Account, error)
}

type OrderRepository interface {
	Create(ctx context.Context, o *order.Order) error
	UpdateStatus(ctx context.Context, o *order.Order) error
}

type CouponRepository interface {
	Create(ctx context.Context, c *coupon.Coupon) error
}

type RedemptionRepository interface {
	// Append inserts one ledger row. The storage layer enforces uniqueness
	// on (couponID, orderID); a second concurrent append for the same order
	// fails with a duplicate-key kind.
	Append(ctx context.Context, r coupon.Redemption) error
}

type ZoneRepository interface {
	Create(ctx context.Context, z *shipping.Zone) error
}

type RateRepository interface {
	Create(ctx context.Context, r *shipping.Rate) error
}

type ProposalRepository interface {
	Create(ctx context.Context, p *autodiscount.Proposal) error
}

type AccountRepository interface {
	UpdateLastLogin(ctx context.Context, accountID uuid.UUID) error
}
