// Package collab implements the checkout pipeline's collaborator ports
// against the marketplace's supporting tables.
package collab

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"martcore/internal/domain/order"
	"martcore/internal/infra"
	"martcore/internal/infra/db"
	"martcore/internal/pkg/config"
	"martcore/internal/pkg/money"
	"martcore/internal/usecase/commands"
)

// GSTCalculator computes an Indian GST breakup: an intra-state supply splits
// the rate into CGST and SGST halves, an inter-state supply charges IGST on
// the full rate. Store overrides live in store_tax_settings.
type GSTCalculator struct {
	db  db.DBTX
	cfg config.CheckoutConfig
}

func NewGSTCalculator(dbtx db.DBTX, cfg config.CheckoutConfig) commands.TaxCalculator {
	return &GSTCalculator{db: dbtx, cfg: cfg}
}

func (c *GSTCalculator) Calculate(ctx context.Context, in commands.TaxInput) (order.TaxSnapshot, error) {
	homeState, ratePct, err := c.storeSettings(ctx, in.StoreID)
	if err != nil {
		return order.TaxSnapshot{}, err
	}

	snapshot := order.TaxSnapshot{
		TaxType:       "GST",
		CountryCode:   strings.ToUpper(in.CountryCode),
		PlaceOfSupply: strings.ToUpper(in.PlaceOfSupply),
		TaxableAmount: in.TaxableAmount,
	}

	if strings.EqualFold(in.PlaceOfSupply, homeState) {
		half := ratePct / 2
		cgst := money.Percent(in.TaxableAmount, half)
		sgst := money.Percent(in.TaxableAmount, half)
		snapshot.TaxBreakup = []order.TaxBreakupLine{
			{Name: "CGST", Rate: half, Amount: cgst},
			{Name: "SGST", Rate: half, Amount: sgst},
		}
		snapshot.TotalTax = money.Round2(cgst + sgst)
		return snapshot, nil
	}

	igst := money.Percent(in.TaxableAmount, ratePct)
	snapshot.TaxBreakup = []order.TaxBreakupLine{
		{Name: "IGST", Rate: ratePct, Amount: igst},
	}
	snapshot.TotalTax = igst
	return snapshot, nil
}

func (c *GSTCalculator) storeSettings(ctx context.Context, storeID uuid.UUID) (homeState string, ratePct float64, err error) {
	query := `SELECT home_state_code, tax_rate FROM store_tax_settings WHERE store_id = $1`

	err = c.db.QueryRow(ctx, query, storeID).Scan(&homeState, &ratePct)
	if err != nil {
		if infra.IsNoRows(err) {
			return c.cfg.HomeStateCode, c.cfg.DefaultTaxPercent, nil
		}
		return "", 0, infra.WrapRepoErr("failed to load store tax settings", err)
	}
	return homeState, ratePct, nil
}
