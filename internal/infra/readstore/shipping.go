package readstore

import (
	"context"

	"github.com/google/uuid"

	"martcore/internal/domain/shipping"
	"martcore/internal/infra"
	"martcore/internal/infra/db"
	"martcore/internal/usecase/queries"
)

const zoneColumns = `id, store_id, name, country_code, state_codes, pincodes, is_active`

func scanZone(row interface{ Scan(dest ...any) error }) (*shipping.Zone, error) {
	var (
		id, storeID       uuid.UUID
		name, countryCode string
		stateCodes        []string
		pincodes          []string
		active            bool
	)
	if err := row.Scan(&id, &storeID, &name, &countryCode, &stateCodes, &pincodes, &active); err != nil {
		return nil, err
	}
	return shipping.ReconstructZone(id, storeID, name, countryCode, stateCodes, pincodes, active), nil
}

const rateColumns = `id, zone_id, rate_type, min_value, max_value,
	base_rate, per_unit_rate, cod_surcharge, is_active`

func scanRate(row interface{ Scan(dest ...any) error }) (*shipping.Rate, error) {
	var (
		id, zoneID                                        uuid.UUID
		rateType                                          string
		minValue, maxValue, baseRate, perUnit, surcharge  float64
		active                                            bool
	)
	if err := row.Scan(&id, &zoneID, &rateType, &minValue, &maxValue, &baseRate, &perUnit, &surcharge, &active); err != nil {
		return nil, err
	}
	return shipping.ReconstructRate(id, zoneID, shipping.RateType(rateType), minValue, maxValue, baseRate, perUnit, surcharge, active), nil
}

func (s *CommandReadStore) ZonesByStore(ctx context.Context, storeID uuid.UUID) ([]*shipping.Zone, error) {
	query := `SELECT ` + zoneColumns + `
		FROM shipping_zones
		WHERE store_id = $1 AND is_active
		ORDER BY created_at`

	rows, err := s.db.Query(ctx, query, storeID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list zones", err)
	}
	defer rows.Close()

	var zones []*shipping.Zone
	for rows.Next() {
		z, err := scanZone(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan zone row", err)
		}
		zones = append(zones, z)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate zone rows", err)
	}
	return zones, nil
}

func (s *CommandReadStore) ActiveRatesByZone(ctx context.Context, zoneIDs []uuid.UUID) (map[string][]*shipping.Rate, error) {
	if len(zoneIDs) == 0 {
		return map[string][]*shipping.Rate{}, nil
	}

	query := `SELECT ` + rateColumns + `
		FROM shipping_rates
		WHERE zone_id = ANY($1) AND is_active
		ORDER BY min_value`

	rows, err := s.db.Query(ctx, query, zoneIDs)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rates", err)
	}
	defer rows.Close()

	byZone := make(map[string][]*shipping.Rate)
	for rows.Next() {
		r, err := scanRate(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan rate row", err)
		}
		key := r.ZoneID().String()
		byZone[key] = append(byZone[key], r)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate rate rows", err)
	}
	return byZone, nil
}

func (s *CommandReadStore) ActiveRatesForPartition(ctx context.Context, zoneID uuid.UUID, rateType shipping.RateType) ([]*shipping.Rate, error) {
	query := `SELECT ` + rateColumns + `
		FROM shipping_rates
		WHERE zone_id = $1 AND rate_type = $2 AND is_active
		ORDER BY min_value`

	rows, err := s.db.Query(ctx, query, zoneID, string(rateType))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list partition rates", err)
	}
	defer rows.Close()

	var rates []*shipping.Rate
	for rows.Next() {
		r, err := scanRate(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan rate row", err)
		}
		rates = append(rates, r)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate rate rows", err)
	}
	return rates, nil
}

// --- query service -----------------------------------------------------------

type ShippingQueryService struct {
	db    db.DBTX
	reads *CommandReadStore
}

func NewShippingQueries(dbtx db.DBTX) queries.ShippingQueries {
	return &ShippingQueryService{db: dbtx, reads: &CommandReadStore{db: dbtx}}
}

func (s *ShippingQueryService) QuoteRate(ctx context.Context, params queries.RateQuoteParams) (*queries.RateQuoteView, error) {
	zones, err := s.reads.ZonesByStore(ctx, params.StoreID)
	if err != nil {
		return nil, err
	}
	zoneIDs := make([]uuid.UUID, 0, len(zones))
	for _, z := range zones {
		zoneIDs = append(zoneIDs, z.ID())
	}
	ratesByZone, err := s.reads.ActiveRatesByZone(ctx, zoneIDs)
	if err != nil {
		return nil, err
	}

	quote := shipping.Resolve(zones, ratesByZone, params.Destination, params.RateType, params.Measurement, params.COD)
	if !quote.Serviceable {
		return &queries.RateQuoteView{Serviceable: false}, nil
	}
	return &queries.RateQuoteView{
		Serviceable:   true,
		ZoneID:        quote.Zone.ID(),
		ZoneName:      quote.Zone.Name(),
		BaseRate:      quote.BaseRate,
		VariableRate:  quote.VariableRate,
		CODSurcharge:  quote.CODSurcharge,
		TotalShipping: quote.Total,
	}, nil
}

func (s *ShippingQueryService) ListZones(ctx context.Context, storeID uuid.UUID) ([]*queries.ZoneView, error) {
	query := `SELECT ` + zoneColumns + `
		FROM shipping_zones
		WHERE store_id = $1
		ORDER BY created_at`

	rows, err := s.db.Query(ctx, query, storeID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list zones", err)
	}
	defer rows.Close()

	var views []*queries.ZoneView
	for rows.Next() {
		var v queries.ZoneView
		if err := rows.Scan(&v.ID, &v.StoreID, &v.Name, &v.CountryCode, &v.StateCodes, &v.Pincodes, &v.IsActive); err != nil {
			return nil, infra.WrapRepoErr("failed to scan zone row", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate zone rows", err)
	}
	return views, nil
}

func (s *ShippingQueryService) ListRates(ctx context.Context, zoneID uuid.UUID) ([]*queries.RateView, error) {
	query := `SELECT ` + rateColumns + `
		FROM shipping_rates
		WHERE zone_id = $1
		ORDER BY rate_type, min_value`

	rows, err := s.db.Query(ctx, query, zoneID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rates", err)
	}
	defer rows.Close()

	var views []*queries.RateView
	for rows.Next() {
		var v queries.RateView
		if err := rows.Scan(&v.ID, &v.ZoneID, &v.RateType, &v.MinValue, &v.MaxValue, &v.BaseRate, &v.PerUnitRate, &v.CODSurcharge, &v.IsActive); err != nil {
			return nil, infra.WrapRepoErr("failed to scan rate row", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate rate rows", err)
	}
	return views, nil
}
