// Package writerepo holds the write-side repositories. Each repository is
// bound to one pgx query surface (a transaction in practice) and classifies
// low-level postgres errors into repository error kinds.
package writerepo

import (
	"context"

	"martcore/internal/domain/order"
	"martcore/internal/infra"
	"martcore/internal/infra/converter"
	"martcore/internal/infra/db"
	"martcore/internal/usecase/shared"
)

type OrderRepository struct {
	db db.DBTX
}

func NewOrderRepository(dbtx db.DBTX) shared.OrderRepository {
	return &OrderRepository{db: dbtx}
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	taxJSON, err := converter.MarshalTax(o.Tax())
	if err != nil {
		return infra.WrapRepoErr("failed to encode tax snapshot", err)
	}
	shippingJSON, err := converter.MarshalShipping(o.Shipping())
	if err != nil {
		return infra.WrapRepoErr("failed to encode shipping snapshot", err)
	}
	courierJSON, err := converter.MarshalCourier(o.Courier())
	if err != nil {
		return infra.WrapRepoErr("failed to encode courier snapshot", err)
	}
	fulfillmentJSON, err := converter.MarshalFulfillment(o.Fulfillment())
	if err != nil {
		return infra.WrapRepoErr("failed to encode fulfillment snapshot", err)
	}
	referralJSON, err := converter.MarshalReferral(o.Referral())
	if err != nil {
		return infra.WrapRepoErr("failed to encode referral snapshot", err)
	}
	lastTransitionJSON, err := converter.MarshalLastTransition(o.LastTransition())
	if err != nil {
		return infra.WrapRepoErr("failed to encode last transition", err)
	}

	query := `INSERT INTO orders (
		id, store_id, customer_id, status, payment_status, payment_method,
		subtotal, discount, coupon_code, total,
		tax_snapshot, shipping_snapshot, courier_snapshot,
		fulfillment_snapshot, referral_snapshot, last_transition,
		created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5, $6,
		$7, $8, $9, $10,
		$11, $12, $13,
		$14, $15, $16,
		$17, $18
	)`

	_, err = r.db.Exec(ctx, query,
		o.ID(), o.StoreID(), o.CustomerID(),
		o.Status().String(), string(o.PaymentStatus()), string(o.PaymentMethod()),
		o.Subtotal(), o.Discount(), o.CouponCode(), o.Total(),
		taxJSON, shippingJSON, courierJSON,
		fulfillmentJSON, referralJSON, lastTransitionJSON,
		o.CreatedAt(), o.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert order", err, infra.ClassifyPgErr(err))
	}

	itemQuery := `INSERT INTO order_items (
		order_id, position, product_id, supplier_id, sku,
		quantity, unit_price, supplier_cost, tax_rate, tax_amount
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	for i, it := range o.Items() {
		if _, err := r.db.Exec(ctx, itemQuery,
			o.ID(), i, it.ProductID, it.SupplierID, it.SKU,
			it.Quantity, it.UnitPrice, it.SupplierCost, it.TaxRate, it.TaxAmount,
		); err != nil {
			return infra.WrapRepoErr("failed to insert order item", err, infra.ClassifyPgErr(err))
		}
	}
	return nil
}

// UpdateStatus persists a lifecycle transition. Snapshot columns are frozen
// at creation and deliberately not part of this statement.
func (r *OrderRepository) UpdateStatus(ctx context.Context, o *order.Order) error {
	lastTransitionJSON, err := converter.MarshalLastTransition(o.LastTransition())
	if err != nil {
		return infra.WrapRepoErr("failed to encode last transition", err)
	}
	cancellationJSON, err := converter.MarshalCancellation(o.Cancellation())
	if err != nil {
		return infra.WrapRepoErr("failed to encode cancellation", err)
	}
	returnInfoJSON, err := converter.MarshalReturnInfo(o.ReturnInfo())
	if err != nil {
		return infra.WrapRepoErr("failed to encode return info", err)
	}

	query := `UPDATE orders SET
		status = $2,
		payment_status = $3,
		last_transition = $4,
		cancellation = $5,
		return_info = $6,
		updated_at = $7
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		o.ID(), o.Status().String(), string(o.PaymentStatus()),
		lastTransitionJSON, cancellationJSON, returnInfoJSON,
		o.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update order status", err, infra.ClassifyPgErr(err))
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return nil
}
