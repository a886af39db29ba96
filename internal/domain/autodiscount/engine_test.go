//go:build unit

package autodiscount_test

import (
	"testing"
	"time"

	"martcore/internal/domain/autodiscount"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ruleWith(t *testing.T, mutate func(*autodiscount.RuleParams)) *autodiscount.Rule {
	t.Helper()
	p := autodiscount.RuleParams{
		ID:                   uuid.New(),
		StoreID:              uuid.New(),
		Scope:                autodiscount.ScopeAdmin,
		Strategy:             autodiscount.StrategyPercentage,
		PercentageDiscount:   20,
		MinDiscountPercent:   5,
		MaxDiscountPercent:   50,
		MinDaysSinceLastSale: 30,
		MinStockLevel:        10,
		Active:               true,
	}
	if mutate != nil {
		mutate(&p)
	}
	r, err := autodiscount.NewRule(p)
	require.NoError(t, err)
	return r
}

func alertWith(mutate func(*autodiscount.Alert)) *autodiscount.Alert {
	a := &autodiscount.Alert{
		ID:                uuid.New(),
		StoreID:           uuid.New(),
		SKUID:             uuid.New(),
		SKU:               "SKU001",
		ProductID:         uuid.New(),
		DaysSinceLastSale: 60,
		StockLevel:        100,
		StockValue:        5000,
		Severity:          autodiscount.SeverityHigh,
	}
	if mutate != nil {
		mutate(a)
	}
	return a
}

func TestNewRule(t *testing.T) {
	t.Run("invalid scope", func(t *testing.T) {
		_, err := autodiscount.NewRule(autodiscount.RuleParams{
			Scope: autodiscount.Scope("global"), Strategy: autodiscount.StrategyFixed,
		})
		assert.ErrorIs(t, err, autodiscount.ErrInvalidScope)
	})

	t.Run("invalid strategy", func(t *testing.T) {
		_, err := autodiscount.NewRule(autodiscount.RuleParams{
			Scope: autodiscount.ScopeAdmin, Strategy: autodiscount.Strategy("random"),
		})
		assert.ErrorIs(t, err, autodiscount.ErrInvalidStrategy)
	})

	t.Run("inverted clamp range", func(t *testing.T) {
		_, err := autodiscount.NewRule(autodiscount.RuleParams{
			Scope: autodiscount.ScopeAdmin, Strategy: autodiscount.StrategyFixed,
			MinDiscountPercent: 40, MaxDiscountPercent: 10,
		})
		assert.ErrorIs(t, err, autodiscount.ErrInvalidClampRange)
	})
}

func TestCheckEligibility(t *testing.T) {
	t.Run("eligible alert passes", func(t *testing.T) {
		assert.NoError(t, autodiscount.CheckEligibility(ruleWith(t, nil), alertWith(nil)))
	})

	t.Run("inactive rule", func(t *testing.T) {
		rule := ruleWith(t, func(p *autodiscount.RuleParams) { p.Active = false })
		var ineligible *autodiscount.IneligibleError
		assert.ErrorAs(t, autodiscount.CheckEligibility(rule, alertWith(nil)), &ineligible)
	})

	t.Run("too recent last sale", func(t *testing.T) {
		alert := alertWith(func(a *autodiscount.Alert) { a.DaysSinceLastSale = 10 })
		var ineligible *autodiscount.IneligibleError
		require.ErrorAs(t, autodiscount.CheckEligibility(ruleWith(t, nil), alert), &ineligible)
		assert.Contains(t, ineligible.Reason, "days since last sale")
	})

	t.Run("stock level below minimum", func(t *testing.T) {
		alert := alertWith(func(a *autodiscount.Alert) { a.StockLevel = 5 })
		assert.Error(t, autodiscount.CheckEligibility(ruleWith(t, nil), alert))
	})

	t.Run("stock value below minimum", func(t *testing.T) {
		min := 10000.0
		rule := ruleWith(t, func(p *autodiscount.RuleParams) { p.MinStockValue = &min })
		assert.Error(t, autodiscount.CheckEligibility(rule, alertWith(nil)))
	})

	t.Run("severity filter", func(t *testing.T) {
		rule := ruleWith(t, func(p *autodiscount.RuleParams) { p.SeverityFilter = []string{"critical"} })
		assert.Error(t, autodiscount.CheckEligibility(rule, alertWith(nil)))

		critical := alertWith(func(a *autodiscount.Alert) { a.Severity = autodiscount.SeverityCritical })
		assert.NoError(t, autodiscount.CheckEligibility(rule, critical))
	})
}

func TestComputeDiscount(t *testing.T) {
	t.Run("percentage strategy", func(t *testing.T) {
		pct, price, err := autodiscount.ComputeDiscount(ruleWith(t, nil), alertWith(nil), 200)
		require.NoError(t, err)
		assert.InDelta(t, 20.00, pct, 1e-9)
		assert.InDelta(t, 160.00, price, 1e-9)
	})

	t.Run("fixed strategy converts to a percent of current price", func(t *testing.T) {
		rule := ruleWith(t, func(p *autodiscount.RuleParams) {
			p.Strategy = autodiscount.StrategyFixed
			p.FixedDiscount = 50
		})
		pct, price, err := autodiscount.ComputeDiscount(rule, alertWith(nil), 200)
		require.NoError(t, err)
		assert.InDelta(t, 25.00, pct, 1e-9)
		assert.InDelta(t, 150.00, price, 1e-9)
	})

	t.Run("tiered strategy picks the highest reached threshold", func(t *testing.T) {
		rule := ruleWith(t, func(p *autodiscount.RuleParams) {
			p.Strategy = autodiscount.StrategyTiered
			p.Tiers = []autodiscount.Tier{
				{DaysThreshold: 30, DiscountPercentage: 10},
				{DaysThreshold: 90, DiscountPercentage: 30},
				{DaysThreshold: 60, DiscountPercentage: 20},
			}
		})

		pct, _, err := autodiscount.ComputeDiscount(rule, alertWith(func(a *autodiscount.Alert) { a.DaysSinceLastSale = 70 }), 100)
		require.NoError(t, err)
		assert.InDelta(t, 20.00, pct, 1e-9)

		pct, _, err = autodiscount.ComputeDiscount(rule, alertWith(func(a *autodiscount.Alert) { a.DaysSinceLastSale = 95 }), 100)
		require.NoError(t, err)
		assert.InDelta(t, 30.00, pct, 1e-9)
	})

	t.Run("raw percent clamped into the rule bounds", func(t *testing.T) {
		rule := ruleWith(t, func(p *autodiscount.RuleParams) {
			p.PercentageDiscount = 80
			p.MaxDiscountPercent = 50
		})
		pct, price, err := autodiscount.ComputeDiscount(rule, alertWith(nil), 100)
		require.NoError(t, err)
		assert.InDelta(t, 50.00, pct, 1e-9)
		assert.InDelta(t, 50.00, price, 1e-9)

		rule = ruleWith(t, func(p *autodiscount.RuleParams) {
			p.PercentageDiscount = 1
			p.MinDiscountPercent = 5
		})
		pct, _, err = autodiscount.ComputeDiscount(rule, alertWith(nil), 100)
		require.NoError(t, err)
		assert.InDelta(t, 5.00, pct, 1e-9)
	})

	t.Run("non-positive current price rejected", func(t *testing.T) {
		_, _, err := autodiscount.ComputeDiscount(ruleWith(t, nil), alertWith(nil), 0)
		assert.ErrorIs(t, err, autodiscount.ErrInvalidCurrentPrice)
	})
}

func TestEstimateImpact(t *testing.T) {
	alert := alertWith(func(a *autodiscount.Alert) {
		a.StockLevel = 100
		a.DaysSinceLastSale = 50
	})

	impact := autodiscount.EstimateImpact(alert, 200, 160, 20)
	expected := autodiscount.Impact{
		RevenueLoss:           4000,
		ExpectedSalesIncrease: 30,
		BreakEvenDays:         10,
	}
	if diff := cmp.Diff(expected, impact); diff != "" {
		t.Errorf("Impact mismatch (-want +got):\n%s", diff)
	}

	t.Run("sales increase capped at 100", func(t *testing.T) {
		i := autodiscount.EstimateImpact(alert, 200, 100, 90)
		assert.InDelta(t, 100.00, i.ExpectedSalesIncrease, 1e-9)
	})
}

func TestBuildProposal(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	t.Run("assembles a pending proposal", func(t *testing.T) {
		rule := ruleWith(t, nil)
		alert := alertWith(func(a *autodiscount.Alert) { a.StoreID = rule.StoreID() })

		p, err := autodiscount.BuildProposal(uuid.New(), rule, alert, 200, now, 7)
		require.NoError(t, err)

		assert.Equal(t, autodiscount.ProposalPending, p.Status)
		assert.Equal(t, rule.ID(), p.RuleID)
		assert.Equal(t, alert.ID, p.AlertID)
		assert.InDelta(t, 200.00, p.CurrentPrice, 1e-9)
		assert.InDelta(t, 160.00, p.ProposedPrice, 1e-9)
		assert.InDelta(t, 40.00, p.DiscountAmount, 1e-9)
		assert.Equal(t, now.AddDate(0, 0, 7), p.ExpiresAt)
	})

	t.Run("rule-level expiry wins over the default", func(t *testing.T) {
		rule := ruleWith(t, func(p *autodiscount.RuleParams) { p.AutoExpireDays = 14 })
		p, err := autodiscount.BuildProposal(uuid.New(), rule, alertWith(nil), 200, now, 7)
		require.NoError(t, err)
		assert.Equal(t, now.AddDate(0, 0, 14), p.ExpiresAt)
	})

	t.Run("ineligible alert yields no proposal", func(t *testing.T) {
		alert := alertWith(func(a *autodiscount.Alert) { a.StockLevel = 1 })
		_, err := autodiscount.BuildProposal(uuid.New(), ruleWith(t, nil), alert, 200, now, 7)

		var ineligible *autodiscount.IneligibleError
		assert.ErrorAs(t, err, &ineligible)
	})
}
