package writerepo

import (
	"context"

	"martcore/internal/domain/coupon"
	"martcore/internal/infra"
	"martcore/internal/infra/db"
	"martcore/internal/usecase/shared"
)

type CouponRepository struct {
	db db.DBTX
}

func NewCouponRepository(dbtx db.DBTX) shared.CouponRepository {
	return &CouponRepository{db: dbtx}
}

func (r *CouponRepository) Create(ctx context.Context, c *coupon.Coupon) error {
	query := `INSERT INTO coupons (
		id, store_id, code, type, value,
		min_order, product_skus, usage_limit_per_user, max_redemptions,
		active, starts_at, ends_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	cond := c.Conditions()
	_, err := r.db.Exec(ctx, query,
		c.ID(), c.StoreID(), c.Code().String(), string(c.Kind()), c.Value(),
		cond.MinOrder, cond.ProductSKUs, cond.UsageLimitPerUser, cond.MaxRedemptions,
		c.IsActive(), c.StartsAt(), c.EndsAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert coupon", err, infra.ClassifyPgErr(err))
	}
	return nil
}

type RedemptionRepository struct {
	db db.DBTX
}

func NewRedemptionRepository(dbtx db.DBTX) shared.RedemptionRepository {
	return &RedemptionRepository{db: dbtx}
}

// Append inserts one ledger row. The unique index on (coupon_id, order_id)
// turns a concurrent double redemption into a DUPLICATE_KEY error here.
func (r *RedemptionRepository) Append(ctx context.Context, red coupon.Redemption) error {
	query := `INSERT INTO coupon_redemptions (
		id, coupon_id, code, user_id, order_id, discount_amount, redeemed_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		red.ID, red.CouponID, red.Code, red.UserID, red.OrderID,
		red.DiscountAmount, red.RedeemedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to append redemption", err, infra.ClassifyPgErr(err))
	}
	return nil
}
