package response

import (
	"github.com/google/uuid"

	"martcore/internal/usecase/commands"
)

type ProposalImpactResponse struct {
	RevenueLoss           float64 `json:"revenueLoss"`
	ExpectedSalesIncrease float64 `json:"expectedSalesIncrease"`
	BreakEvenDays         int     `json:"breakEvenDays"`
}

type GenerateProposalResponse struct {
	ProposalID      uuid.UUID              `json:"proposalId"`
	SKU             string                 `json:"sku"`
	CurrentPrice    float64                `json:"currentPrice"`
	ProposedPrice   float64                `json:"proposedPrice"`
	DiscountPercent float64                `json:"discountPercent"`
	ExpectedImpact  ProposalImpactResponse `json:"expectedImpact"`
}

func FromGenerateProposalResult(r *commands.GenerateProposalResult) *GenerateProposalResponse {
	return &GenerateProposalResponse{
		ProposalID:      r.ProposalID,
		SKU:             r.SKU,
		CurrentPrice:    r.CurrentPrice,
		ProposedPrice:   r.ProposedPrice,
		DiscountPercent: r.DiscountPercent,
		ExpectedImpact: ProposalImpactResponse{
			RevenueLoss:           r.ExpectedImpact.RevenueLoss,
			ExpectedSalesIncrease: r.ExpectedImpact.ExpectedSalesIncrease,
			BreakEvenDays:         r.ExpectedImpact.BreakEvenDays,
		},
	}
}
