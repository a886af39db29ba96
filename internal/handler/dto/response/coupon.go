package response

import (
	"github.com/google/uuid"

	"martcore/internal/usecase/commands"
)

type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

type ValidateCouponResponse struct {
	Valid          bool      `json:"valid"`
	Reason         string    `json:"reason,omitempty"`
	DiscountAmount float64   `json:"discountAmount"`
	CouponID       uuid.UUID `json:"couponId,omitempty"`
	Code           string    `json:"code,omitempty"`
	Type           string    `json:"type,omitempty"`
}

func FromValidateCouponResult(r *commands.ValidateCouponResult) *ValidateCouponResponse {
	return &ValidateCouponResponse{
		Valid:          r.Valid,
		Reason:         r.Reason,
		DiscountAmount: r.DiscountAmount,
		CouponID:       r.CouponID,
		Code:           r.Code,
		Type:           string(r.Type),
	}
}

type RedeemCouponResponse struct {
	RedemptionID   uuid.UUID `json:"redemptionId"`
	CouponID       uuid.UUID `json:"couponId"`
	DiscountAmount float64   `json:"discountAmount"`
}

func FromRedeemCouponResult(r *commands.RedeemCouponResult) *RedeemCouponResponse {
	return &RedeemCouponResponse{
		RedemptionID:   r.RedemptionID,
		CouponID:       r.CouponID,
		DiscountAmount: r.DiscountAmount,
	}
}
