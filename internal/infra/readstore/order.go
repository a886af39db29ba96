package readstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"martcore/internal/domain/order"
	"martcore/internal/infra"
	"martcore/internal/infra/converter"
	"martcore/internal/infra/db"
	"martcore/internal/usecase/queries"
)

const orderColumns = `id, store_id, customer_id, status, payment_status,
	payment_method, subtotal, discount, coupon_code, total,
	tax_snapshot, shipping_snapshot, courier_snapshot,
	fulfillment_snapshot, referral_snapshot,
	last_transition, cancellation, return_info,
	created_at, updated_at`

type orderRow struct {
	ID            uuid.UUID
	StoreID       uuid.UUID
	CustomerID    *uuid.UUID
	Status        string
	PaymentStatus string
	PaymentMethod string
	Subtotal      float64
	Discount      float64
	CouponCode    *string
	Total         float64

	TaxJSON         []byte
	ShippingJSON    []byte
	CourierJSON     []byte
	FulfillmentJSON []byte
	ReferralJSON    []byte

	LastTransitionJSON []byte
	CancellationJSON   []byte
	ReturnInfoJSON     []byte

	CreatedAt time.Time
	UpdatedAt time.Time
}

func scanOrderRow(row interface{ Scan(dest ...any) error }) (orderRow, error) {
	var r orderRow
	err := row.Scan(
		&r.ID, &r.StoreID, &r.CustomerID, &r.Status, &r.PaymentStatus,
		&r.PaymentMethod, &r.Subtotal, &r.Discount, &r.CouponCode, &r.Total,
		&r.TaxJSON, &r.ShippingJSON, &r.CourierJSON,
		&r.FulfillmentJSON, &r.ReferralJSON,
		&r.LastTransitionJSON, &r.CancellationJSON, &r.ReturnInfoJSON,
		&r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

func (r orderRow) toDomain(items []order.Item) (*order.Order, error) {
	tax, err := converter.UnmarshalTax(r.TaxJSON)
	if err != nil {
		return nil, err
	}
	shipping, err := converter.UnmarshalShipping(r.ShippingJSON)
	if err != nil {
		return nil, err
	}
	courier, err := converter.UnmarshalCourier(r.CourierJSON)
	if err != nil {
		return nil, err
	}
	fulfillment, err := converter.UnmarshalFulfillment(r.FulfillmentJSON)
	if err != nil {
		return nil, err
	}
	referral, err := converter.UnmarshalReferral(r.ReferralJSON)
	if err != nil {
		return nil, err
	}
	lastTransition, err := converter.UnmarshalLastTransition(r.LastTransitionJSON)
	if err != nil {
		return nil, err
	}
	cancellation, err := converter.UnmarshalCancellation(r.CancellationJSON)
	if err != nil {
		return nil, err
	}
	returnInfo, err := converter.UnmarshalReturnInfo(r.ReturnInfoJSON)
	if err != nil {
		return nil, err
	}

	return order.ReconstructOrder(
		r.ID, r.StoreID, r.CustomerID, items,
		order.Status(r.Status),
		order.PaymentStatus(r.PaymentStatus),
		order.PaymentMethod(r.PaymentMethod),
		r.Subtotal, r.Discount, r.Total,
		r.CouponCode,
		tax, shipping, courier, fulfillment, referral,
		lastTransition, cancellation, returnInfo,
		r.CreatedAt, r.UpdatedAt,
	), nil
}

func loadOrderItems(ctx context.Context, dbtx db.DBTX, orderID uuid.UUID) ([]order.Item, error) {
	query := `SELECT product_id, supplier_id, sku, quantity,
		unit_price, supplier_cost, tax_rate, tax_amount
		FROM order_items
		WHERE order_id = $1
		ORDER BY position`

	rows, err := dbtx.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []order.Item
	for rows.Next() {
		var it order.Item
		if err := rows.Scan(
			&it.ProductID, &it.SupplierID, &it.SKU, &it.Quantity,
			&it.UnitPrice, &it.SupplierCost, &it.TaxRate, &it.TaxAmount,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *CommandReadStore) OrderByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	row, err := scanOrderRow(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get order", err)
	}

	items, err := loadOrderItems(ctx, s.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load order items", err)
	}

	o, err := row.toDomain(items)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode order snapshots", err)
	}
	return o, nil
}

// --- query service -----------------------------------------------------------

type OrderQueryService struct {
	db db.DBTX
}

func NewOrderQueries(dbtx db.DBTX) queries.OrderQueries {
	return &OrderQueryService{db: dbtx}
}

func (s *OrderQueryService) GetByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	row, err := scanOrderRow(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get order", err)
	}

	items, err := loadOrderItems(ctx, s.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load order items", err)
	}
	return toOrderView(row, items)
}

func (s *OrderQueryService) ListByStore(ctx context.Context, storeID uuid.UUID, limit int) ([]*queries.OrderView, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE store_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := s.db.Query(ctx, query, storeID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}
	defer rows.Close()

	var ordered []orderRow
	for rows.Next() {
		r, err := scanOrderRow(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan order row", err)
		}
		ordered = append(ordered, r)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate order rows", err)
	}

	views := make([]*queries.OrderView, 0, len(ordered))
	for _, r := range ordered {
		items, err := loadOrderItems(ctx, s.db, r.ID)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to load order items", err)
		}
		v, err := toOrderView(r, items)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func toOrderView(r orderRow, items []order.Item) (*queries.OrderView, error) {
	o, err := r.toDomain(items)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode order snapshots", err)
	}

	v := &queries.OrderView{
		ID:            o.ID(),
		StoreID:       o.StoreID(),
		CustomerID:    o.CustomerID(),
		Status:        o.Status().String(),
		PaymentStatus: string(o.PaymentStatus()),
		PaymentMethod: string(o.PaymentMethod()),
		Subtotal:      o.Subtotal(),
		Discount:      o.Discount(),
		CouponCode:    o.CouponCode(),
		Total:         o.Total(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
	}

	for _, it := range o.Items() {
		v.Items = append(v.Items, queries.OrderItemView{
			ProductID:    it.ProductID,
			SupplierID:   it.SupplierID,
			SKU:          it.SKU,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			SupplierCost: it.SupplierCost,
			TaxRate:      it.TaxRate,
			TaxAmount:    it.TaxAmount,
		})
	}

	if tax, ok := o.Tax().Get(); ok {
		tv := queries.TaxSnapshotView{
			TaxType:       tax.TaxType,
			CountryCode:   tax.CountryCode,
			PlaceOfSupply: tax.PlaceOfSupply,
			TaxableAmount: tax.TaxableAmount,
			TotalTax:      tax.TotalTax,
			CalculatedAt:  tax.CalculatedAt,
		}
		for _, l := range tax.TaxBreakup {
			tv.TaxBreakup = append(tv.TaxBreakup, queries.TaxBreakupLineView(l))
		}
		v.Tax = &tv
	}
	if ship, ok := o.Shipping().Get(); ok {
		sv := queries.ShippingSnapshotView(ship)
		v.Shipping = &sv
	}
	if courier, ok := o.Courier().Get(); ok {
		cv := queries.CourierSnapshotView(courier)
		v.Courier = &cv
	}
	if ff, ok := o.Fulfillment().Get(); ok {
		fv := queries.FulfillmentSnapshotView{RoutedAt: ff.RoutedAt}
		for _, g := range ff.Groups {
			fv.Groups = append(fv.Groups, queries.ShipmentGroupView(g))
		}
		v.Fulfillment = &fv
	}
	if ref, ok := o.Referral().Get(); ok {
		rv := queries.ReferralSnapshotView(ref)
		v.Referral = &rv
	}
	if lt := o.LastTransition(); lt != nil {
		v.LastTransition = &queries.LastTransitionView{
			From:      lt.From.String(),
			To:        lt.To.String(),
			At:        lt.At,
			ActorRole: lt.ActorRole.String(),
			ActorID:   lt.ActorID,
		}
	}
	return v, nil
}
