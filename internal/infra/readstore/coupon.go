package readstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"martcore/internal/domain/coupon"
	"martcore/internal/infra"
	"martcore/internal/infra/db"
	"martcore/internal/usecase/queries"
)

const couponColumns = `id, store_id, code, type, value,
	min_order, product_skus, usage_limit_per_user, max_redemptions,
	active, starts_at, ends_at, created_at, updated_at`

type couponRow struct {
	ID                uuid.UUID
	StoreID           uuid.UUID
	Code              string
	Type              string
	Value             float64
	MinOrder          *float64
	ProductSKUs       []string
	UsageLimitPerUser *int
	MaxRedemptions    *int
	Active            bool
	StartsAt          *time.Time
	EndsAt            *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func scanCouponRow(row interface{ Scan(dest ...any) error }) (couponRow, error) {
	var r couponRow
	err := row.Scan(
		&r.ID, &r.StoreID, &r.Code, &r.Type, &r.Value,
		&r.MinOrder, &r.ProductSKUs, &r.UsageLimitPerUser, &r.MaxRedemptions,
		&r.Active, &r.StartsAt, &r.EndsAt, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

func (r couponRow) toDomain() *coupon.Coupon {
	return coupon.ReconstructCoupon(
		r.ID, r.StoreID,
		r.Code,
		coupon.Type(r.Type),
		r.Value,
		coupon.Conditions{
			MinOrder:          r.MinOrder,
			ProductSKUs:       r.ProductSKUs,
			UsageLimitPerUser: r.UsageLimitPerUser,
			MaxRedemptions:    r.MaxRedemptions,
		},
		r.Active,
		r.StartsAt, r.EndsAt,
		r.CreatedAt, r.UpdatedAt,
	)
}

func (s *CommandReadStore) CouponByCode(ctx context.Context, storeID uuid.UUID, code string) (*coupon.Coupon, error) {
	query := `SELECT ` + couponColumns + `
		FROM coupons
		WHERE store_id = $1 AND code = $2`

	row, err := scanCouponRow(s.db.QueryRow(ctx, query, storeID, coupon.NormalizeCode(code)))
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get coupon by code", err)
	}
	return row.toDomain(), nil
}

func (s *CommandReadStore) RedemptionCounts(ctx context.Context, couponID uuid.UUID, userID *uuid.UUID) (coupon.UsageCounts, error) {
	query := `SELECT
		count(*),
		count(*) FILTER (WHERE user_id = $2)
		FROM coupon_redemptions
		WHERE coupon_id = $1`

	var counts coupon.UsageCounts
	if err := s.db.QueryRow(ctx, query, couponID, userID).Scan(&counts.Total, &counts.ForUser); err != nil {
		return coupon.UsageCounts{}, infra.WrapRepoErr("failed to count redemptions", err)
	}
	return counts, nil
}

// --- query service -----------------------------------------------------------

type CouponQueryService struct {
	db db.DBTX
}

func NewCouponQueries(dbtx db.DBTX) queries.CouponQueries {
	return &CouponQueryService{db: dbtx}
}

func (s *CouponQueryService) GetByCode(ctx context.Context, storeID uuid.UUID, code string) (*queries.CouponView, error) {
	query := `SELECT c.id, c.store_id, c.code, c.type, c.value, c.active,
		c.starts_at, c.ends_at,
		(SELECT count(*) FROM coupon_redemptions r WHERE r.coupon_id = c.id)
		FROM coupons c
		WHERE c.store_id = $1 AND c.code = $2`

	var v queries.CouponView
	err := s.db.QueryRow(ctx, query, storeID, coupon.NormalizeCode(code)).Scan(
		&v.ID, &v.StoreID, &v.Code, &v.Type, &v.Value, &v.Active,
		&v.StartsAt, &v.EndsAt, &v.RedemptionsUsed,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get coupon", err)
	}
	return &v, nil
}

func (s *CouponQueryService) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*queries.CouponView, error) {
	query := `SELECT c.id, c.store_id, c.code, c.type, c.value, c.active,
		c.starts_at, c.ends_at,
		(SELECT count(*) FROM coupon_redemptions r WHERE r.coupon_id = c.id)
		FROM coupons c
		WHERE c.store_id = $1
		ORDER BY c.created_at DESC`

	rows, err := s.db.Query(ctx, query, storeID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list coupons", err)
	}
	defer rows.Close()

	var views []*queries.CouponView
	for rows.Next() {
		var v queries.CouponView
		if err := rows.Scan(
			&v.ID, &v.StoreID, &v.Code, &v.Type, &v.Value, &v.Active,
			&v.StartsAt, &v.EndsAt, &v.RedemptionsUsed,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan coupon row", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate coupon rows", err)
	}
	return views, nil
}
