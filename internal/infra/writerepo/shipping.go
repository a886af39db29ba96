package writerepo

import (
	"context"

	"martcore/internal/domain/shipping"
	"martcore/internal/infra"
	"martcore/internal/infra/db"
	"martcore/internal/usecase/shared"
)

type ZoneRepository struct {
	db db.DBTX
}

func NewZoneRepository(dbtx db.DBTX) shared.ZoneRepository {
	return &ZoneRepository{db: dbtx}
}

func (r *ZoneRepository) Create(ctx context.Context, z *shipping.Zone) error {
	query := `INSERT INTO shipping_zones (
		id, store_id, name, country_code, state_codes, pincodes, is_active
	) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		z.ID(), z.StoreID(), z.Name(), z.CountryCode(),
		z.StateCodes(), z.Pincodes(), z.IsActive(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert zone", err, infra.ClassifyPgErr(err))
	}
	return nil
}

type RateRepository struct {
	db db.DBTX
}

func NewRateRepository(dbtx db.DBTX) shared.RateRepository {
	return &RateRepository{db: dbtx}
}

func (r *RateRepository) Create(ctx context.Context, rate *shipping.Rate) error {
	query := `INSERT INTO shipping_rates (
		id, zone_id, rate_type, min_value, max_value,
		base_rate, per_unit_rate, cod_surcharge, is_active
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, query,
		rate.ID(), rate.ZoneID(), string(rate.Type()),
		rate.MinValue(), rate.MaxValue(),
		rate.BaseRate(), rate.PerUnitRate(), rate.CODSurcharge(), rate.IsActive(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert rate", err, infra.ClassifyPgErr(err))
	}
	return nil
}
