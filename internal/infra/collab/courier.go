package collab

import (
	"context"

	"github.com/google/uuid"

	"martcore/internal/domain/order"
	"martcore/internal/infra"
	"martcore/internal/infra/db"
	"martcore/internal/pkg/clock"
	"martcore/internal/usecase/commands"
)

// PriorityCourierAssigner picks the first active courier serving the store
// whose constraints (max weight, COD support) admit the shipment, ordered by
// configured priority. Falls back to the store default when no rule matches.
type PriorityCourierAssigner struct {
	db    db.DBTX
	clock clock.Clock
}

func NewPriorityCourierAssigner(dbtx db.DBTX, clk clock.Clock) commands.CourierAssigner {
	return &PriorityCourierAssigner{db: dbtx, clock: clk}
}

func (a *PriorityCourierAssigner) Assign(ctx context.Context, in commands.CourierInput) (order.CourierSnapshot, error) {
	query := `SELECT r.id, c.id, c.name
		FROM courier_rules r
		JOIN couriers c ON c.id = r.courier_id
		WHERE r.store_id = $1 AND r.active AND c.active
		  AND (r.max_weight_kg IS NULL OR r.max_weight_kg >= $2)
		  AND (NOT $3 OR r.supports_cod)
		ORDER BY r.priority
		LIMIT 1`

	var (
		ruleID                 uuid.UUID
		courierID              uuid.UUID
		courierName            string
	)
	err := a.db.QueryRow(ctx, query, in.StoreID, in.WeightKg, in.COD).Scan(&ruleID, &courierID, &courierName)
	if err == nil {
		return order.CourierSnapshot{
			CourierID:   courierID,
			CourierName: courierName,
			RuleID:      &ruleID,
			Reason:      "rule_match",
			AssignedAt:  a.clock.Now(),
		}, nil
	}
	if !infra.IsNoRows(err) {
		return order.CourierSnapshot{}, infra.WrapRepoErr("failed to match courier rules", err)
	}

	return a.defaultCourier(ctx, in.StoreID)
}

func (a *PriorityCourierAssigner) defaultCourier(ctx context.Context, storeID uuid.UUID) (order.CourierSnapshot, error) {
	query := `SELECT id, name FROM couriers
		WHERE store_id = $1 AND active AND is_default
		LIMIT 1`

	var (
		id   uuid.UUID
		name string
	)
	err := a.db.QueryRow(ctx, query, storeID).Scan(&id, &name)
	if err != nil {
		if infra.IsNoRows(err) {
			// No courier configured at all; the order still goes through with
			// an unassigned marker so operations can route it manually.
			return order.CourierSnapshot{
				Reason:     "unassigned",
				AssignedAt: a.clock.Now(),
			}, nil
		}
		return order.CourierSnapshot{}, infra.WrapRepoErr("failed to load default courier", err)
	}
	return order.CourierSnapshot{
		CourierID:   id,
		CourierName: name,
		Reason:      "store_default",
		AssignedAt:  a.clock.Now(),
	}, nil
}
