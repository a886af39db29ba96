package collab

import (
	"context"

	"github.com/google/uuid"

	"martcore/internal/infra"
	"martcore/internal/infra/db"
	"martcore/internal/usecase/commands"
)

// VariantPriceLookup returns the live selling price of a SKU: the store's
// override when one exists, the variant base price otherwise.
type VariantPriceLookup struct {
	db db.DBTX
}

func NewVariantPriceLookup(dbtx db.DBTX) commands.PriceLookup {
	return &VariantPriceLookup{db: dbtx}
}

func (l *VariantPriceLookup) CurrentPrice(ctx context.Context, storeID, skuID uuid.UUID) (float64, error) {
	query := `SELECT COALESCE(o.price, v.base_price)
		FROM variants v
		LEFT JOIN variant_price_overrides o
		  ON o.variant_id = v.id AND o.store_id = $1
		WHERE v.id = $2`

	var price float64
	if err := l.db.QueryRow(ctx, query, storeID, skuID).Scan(&price); err != nil {
		if infra.IsNoRows(err) {
			return 0, infra.WrapRepoErr("variant not found", err, infra.KindNotFound)
		}
		return 0, infra.WrapRepoErr("failed to load variant price", err)
	}
	return price, nil
}
