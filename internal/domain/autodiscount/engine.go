package autodiscount

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"martcore/internal/pkg/money"
)

var ErrInvalidCurrentPrice = errors.New("current price must be positive")

// IneligibleError is the explicit rejection when an alert fails the
// eligibility gate; no proposal is created.
type IneligibleError struct {
	Reason string
}

func (e *IneligibleError) Error() string {
	return e.Reason
}

// CheckEligibility runs the rule's thresholds against the alert. All checks
// must hold; the first failure is reported.
func CheckEligibility(rule *Rule, alert *Alert) error {
	if !rule.IsActive() {
		return &IneligibleError{Reason: "no active discount rule for this scope"}
	}
	if alert.DaysSinceLastSale < rule.MinDaysSinceLastSale() {
		return &IneligibleError{Reason: fmt.Sprintf(
			"alert has %d days since last sale, rule requires at least %d",
			alert.DaysSinceLastSale, rule.MinDaysSinceLastSale())}
	}
	if alert.StockLevel < rule.MinStockLevel() {
		return &IneligibleError{Reason: fmt.Sprintf(
			"stock level %d is below rule minimum %d",
			alert.StockLevel, rule.MinStockLevel())}
	}
	if min := rule.MinStockValue(); min != nil && alert.StockValue < *min {
		return &IneligibleError{Reason: fmt.Sprintf(
			"stock value %.2f is below rule minimum %.2f",
			alert.StockValue, *min)}
	}
	if filter := rule.SeverityFilter(); len(filter) > 0 {
		matched := false
		for _, s := range filter {
			if s == string(alert.Severity) {
				matched = true
				break
			}
		}
		if !matched {
			return &IneligibleError{Reason: fmt.Sprintf(
				"alert severity %q is not covered by the rule", alert.Severity)}
		}
	}
	return nil
}

// ComputeDiscount resolves the rule's strategy to a raw discount percent,
// clamps it into [minDiscountPercent, maxDiscountPercent], and derives the
// proposed price.
func ComputeDiscount(rule *Rule, alert *Alert, currentPrice float64) (discountPercent, proposedPrice float64, err error) {
	if currentPrice <= 0 {
		return 0, 0, ErrInvalidCurrentPrice
	}

	var raw float64
	switch rule.Strategy() {
	case StrategyFixed:
		raw = rule.FixedDiscount() / currentPrice * 100
	case StrategyPercentage:
		raw = rule.PercentageDiscount()
	case StrategyTiered:
		raw = tieredPercent(rule.Tiers(), alert.DaysSinceLastSale)
	default:
		return 0, 0, ErrInvalidStrategy
	}

	discountPercent = money.Clamp(raw, rule.MinDiscountPercent(), rule.MaxDiscountPercent())
	proposedPrice = currentPrice - currentPrice*discountPercent/100
	if proposedPrice < 0 {
		proposedPrice = 0
	}
	return money.Round2(discountPercent), money.Round2(proposedPrice), nil
}

// Tiers are sorted by threshold descending at rule construction; the first
// tier whose threshold has been reached wins.
func tieredPercent(tiers []Tier, daysSinceLastSale int) float64 {
	for _, t := range tiers {
		if t.DaysThreshold <= daysSinceLastSale {
			return t.DiscountPercentage
		}
	}
	return 0
}

// elasticityCoefficient is the fixed demand-elasticity factor of the impact
// model: each discount point is assumed to lift sales by 1.5 points.
const elasticityCoefficient = 1.5

// EstimateImpact projects the financial effect of a proposal. Informational
// only, it never blocks proposal creation.
func EstimateImpact(alert *Alert, currentPrice, proposedPrice, discountPercent float64) Impact {
	revenueLoss := (currentPrice - proposedPrice) * float64(alert.StockLevel)

	expectedSalesIncrease := discountPercent * elasticityCoefficient
	if expectedSalesIncrease > 100 {
		expectedSalesIncrease = 100
	}

	days := alert.DaysSinceLastSale
	if days < 1 {
		days = 1
	}
	avgDailySales := float64(alert.StockLevel) / float64(days)

	breakEvenDays := 1
	if proposedPrice > 0 && avgDailySales > 0 {
		requiredSalesIncrease := revenueLoss / proposedPrice
		projected := avgDailySales * (1 + expectedSalesIncrease/100)
		breakEvenDays = int(math.Ceil(requiredSalesIncrease / projected))
		if breakEvenDays < 1 {
			breakEvenDays = 1
		}
	}

	return Impact{
		RevenueLoss:           money.Round2(revenueLoss),
		ExpectedSalesIncrease: money.Round2(expectedSalesIncrease),
		BreakEvenDays:         breakEvenDays,
	}
}

// BuildProposal assembles the pending proposal for an eligible alert.
func BuildProposal(
	id uuid.UUID,
	rule *Rule,
	alert *Alert,
	currentPrice float64,
	now time.Time,
	defaultExpiryDays int,
) (*Proposal, error) {
	if err := CheckEligibility(rule, alert); err != nil {
		return nil, err
	}

	discountPercent, proposedPrice, err := ComputeDiscount(rule, alert, currentPrice)
	if err != nil {
		return nil, err
	}

	expiryDays := rule.AutoExpireDays()
	if expiryDays <= 0 {
		expiryDays = defaultExpiryDays
	}

	return &Proposal{
		ID:              id,
		StoreID:         rule.StoreID(),
		Scope:           rule.Scope(),
		EntityID:        rule.EntityID(),
		RuleID:          rule.ID(),
		AlertID:         alert.ID,
		SKUID:           alert.SKUID,
		SKU:             alert.SKU,
		CurrentPrice:    money.Round2(currentPrice),
		ProposedPrice:   proposedPrice,
		DiscountPercent: discountPercent,
		DiscountAmount:  money.Round2(currentPrice - proposedPrice),
		Status:          ProposalPending,
		ExpectedImpact:  EstimateImpact(alert, currentPrice, proposedPrice, discountPercent),
		ExpiresAt:       now.AddDate(0, 0, expiryDays),
		CreatedAt:       now,
	}, nil
}
