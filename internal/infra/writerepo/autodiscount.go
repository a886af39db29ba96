package writerepo

import (
	"context"

	"martcore/internal/domain/autodiscount"
	"martcore/internal/infra"
	"martcore/internal/infra/db"
	"martcore/internal/usecase/shared"
)

type ProposalRepository struct {
	db db.DBTX
}

func NewProposalRepository(dbtx db.DBTX) shared.ProposalRepository {
	return &ProposalRepository{db: dbtx}
}

// Create inserts a pending proposal. The partial unique index on
// (scope, entity_id, sku_id, alert_id) WHERE status = 'pending' backs the
// one-pending-proposal rule under concurrency.
func (r *ProposalRepository) Create(ctx context.Context, p *autodiscount.Proposal) error {
	query := `INSERT INTO discount_proposals (
		id, store_id, scope, entity_id, rule_id, alert_id,
		sku_id, sku, current_price, proposed_price,
		discount_percent, discount_amount, status,
		revenue_loss, expected_sales_increase, break_even_days,
		expires_at, created_at
	) VALUES (
		$1, $2, $3, $4, $5, $6,
		$7, $8, $9, $10,
		$11, $12, $13,
		$14, $15, $16,
		$17, $18
	)`

	_, err := r.db.Exec(ctx, query,
		p.ID, p.StoreID, string(p.Scope), p.EntityID, p.RuleID, p.AlertID,
		p.SKUID, p.SKU, p.CurrentPrice, p.ProposedPrice,
		p.DiscountPercent, p.DiscountAmount, string(p.Status),
		p.ExpectedImpact.RevenueLoss, p.ExpectedImpact.ExpectedSalesIncrease, p.ExpectedImpact.BreakEvenDays,
		p.ExpiresAt, p.CreatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert proposal", err, infra.ClassifyPgErr(err))
	}
	return nil
}
