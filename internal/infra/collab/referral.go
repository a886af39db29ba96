package collab

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"martcore/internal/domain/order"
	"martcore/internal/infra"
	"martcore/internal/infra/db"
	"martcore/internal/pkg/clock"
	"martcore/internal/usecase/commands"
)

// TouchReferralAttributor resolves a storefront referral code to the referrer
// it belongs to. Orders with no code, or with a code that resolves to
// nothing, carry no attribution at all.
type TouchReferralAttributor struct {
	db    db.DBTX
	clock clock.Clock
}

func NewTouchReferralAttributor(dbtx db.DBTX, clk clock.Clock) commands.ReferralAttributor {
	return &TouchReferralAttributor{db: dbtx, clock: clk}
}

func (a *TouchReferralAttributor) Attribute(ctx context.Context, in commands.AttributionInput) (*order.ReferralSnapshot, error) {
	code := strings.TrimSpace(in.ReferralCode)
	if code == "" {
		return nil, nil
	}

	query := `SELECT referrer_id, attribution_model, campaign_code
		FROM referral_codes
		WHERE store_id = $1 AND code = $2 AND active`

	var (
		referrerID       uuid.UUID
		attributionModel string
		campaignCode     string
	)
	err := a.db.QueryRow(ctx, query, in.StoreID, code).Scan(&referrerID, &attributionModel, &campaignCode)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to resolve referral code", err)
	}

	// Self-referral carries no reward.
	if in.CustomerID != nil && *in.CustomerID == referrerID {
		return nil, nil
	}

	return &order.ReferralSnapshot{
		ReferrerID:       referrerID,
		AttributionModel: attributionModel,
		CampaignCode:     campaignCode,
		AttributedAt:     a.clock.Now(),
	}, nil
}
