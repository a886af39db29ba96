package readstore

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"martcore/internal/domain/autodiscount"
	"martcore/internal/infra"
	"martcore/internal/infra/db"
	"martcore/internal/usecase/queries"
)

type tierJSON struct {
	DaysThreshold      int     `json:"daysThreshold"`
	DiscountPercentage float64 `json:"discountPercentage"`
}

// RuleForScope resolves the rule for a (store, scope, entity) partition:
// an entity-specific rule wins over the scope-wide default (entity_id NULL).
func (s *CommandReadStore) RuleForScope(ctx context.Context, storeID uuid.UUID, scope autodiscount.Scope, entityID *uuid.UUID) (*autodiscount.Rule, error) {
	query := `SELECT id, store_id, scope, entity_id, strategy,
		fixed_discount, percentage_discount, tiers,
		min_discount_percent, max_discount_percent,
		min_days_since_last_sale, min_stock_level, min_stock_value,
		severity_filter, auto_expire_days, active
		FROM auto_discount_rules
		WHERE store_id = $1 AND scope = $2 AND active
		  AND (entity_id = $3 OR entity_id IS NULL)
		ORDER BY entity_id NULLS LAST
		LIMIT 1`

	var (
		p         autodiscount.RuleParams
		scopeStr  string
		strategy  string
		tiersJSON []byte
	)
	err := s.db.QueryRow(ctx, query, storeID, string(scope), entityID).Scan(
		&p.ID, &p.StoreID, &scopeStr, &p.EntityID, &strategy,
		&p.FixedDiscount, &p.PercentageDiscount, &tiersJSON,
		&p.MinDiscountPercent, &p.MaxDiscountPercent,
		&p.MinDaysSinceLastSale, &p.MinStockLevel, &p.MinStockValue,
		&p.SeverityFilter, &p.AutoExpireDays, &p.Active,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("discount rule not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get discount rule", err)
	}

	p.Scope = autodiscount.Scope(scopeStr)
	p.Strategy = autodiscount.Strategy(strategy)
	if len(tiersJSON) > 0 {
		var tiers []tierJSON
		if err := json.Unmarshal(tiersJSON, &tiers); err != nil {
			return nil, infra.WrapRepoErr("failed to decode rule tiers", err)
		}
		for _, t := range tiers {
			p.Tiers = append(p.Tiers, autodiscount.Tier(t))
		}
	}

	rule, err := autodiscount.NewRule(p)
	if err != nil {
		return nil, infra.WrapRepoErr("stored discount rule is invalid", err)
	}
	return rule, nil
}

func (s *CommandReadStore) AlertByID(ctx context.Context, id uuid.UUID) (*autodiscount.Alert, error) {
	query := `SELECT id, store_id, sku_id, sku, product_id,
		days_since_last_sale, stock_level, stock_value, severity, status
		FROM dead_stock_alerts
		WHERE id = $1`

	var (
		a        autodiscount.Alert
		severity string
	)
	err := s.db.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.StoreID, &a.SKUID, &a.SKU, &a.ProductID,
		&a.DaysSinceLastSale, &a.StockLevel, &a.StockValue, &severity, &a.Status,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("dead stock alert not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get dead stock alert", err)
	}
	a.Severity = autodiscount.Severity(severity)
	return &a, nil
}

func (s *CommandReadStore) PendingProposalExists(ctx context.Context, scope autodiscount.Scope, entityID *uuid.UUID, skuID, alertID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (
		SELECT 1 FROM discount_proposals
		WHERE scope = $1
		  AND entity_id IS NOT DISTINCT FROM $2
		  AND sku_id = $3
		  AND alert_id = $4
		  AND status = 'pending'
	)`

	var exists bool
	if err := s.db.QueryRow(ctx, query, string(scope), entityID, skuID, alertID).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check pending proposal", err)
	}
	return exists, nil
}

// --- query service -----------------------------------------------------------

type AutoDiscountQueryService struct {
	db db.DBTX
}

func NewAutoDiscountQueries(dbtx db.DBTX) queries.AutoDiscountQueries {
	return &AutoDiscountQueryService{db: dbtx}
}

func (s *AutoDiscountQueryService) ListProposals(ctx context.Context, storeID uuid.UUID, status string) ([]*queries.ProposalView, error) {
	query := `SELECT id, store_id, scope, entity_id, sku,
		current_price, proposed_price, discount_percent, discount_amount,
		status, revenue_loss, expected_sales_increase, break_even_days,
		expires_at, created_at
		FROM discount_proposals
		WHERE store_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC`

	rows, err := s.db.Query(ctx, query, storeID, status)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list proposals", err)
	}
	defer rows.Close()

	var views []*queries.ProposalView
	for rows.Next() {
		var v queries.ProposalView
		if err := rows.Scan(
			&v.ID, &v.StoreID, &v.Scope, &v.EntityID, &v.SKU,
			&v.CurrentPrice, &v.ProposedPrice, &v.DiscountPercent, &v.DiscountAmount,
			&v.Status, &v.RevenueLoss, &v.SalesIncrease, &v.BreakEvenDays,
			&v.ExpiresAt, &v.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan proposal row", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate proposal rows", err)
	}
	return views, nil
}
