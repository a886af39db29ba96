package response

import (
	"time"

	"github.com/google/uuid"

	"martcore/internal/usecase/commands"
)

type PlaceOrderResponse struct {
	OrderID        uuid.UUID `json:"orderId"`
	Subtotal       float64   `json:"subtotal"`
	DiscountAmount float64   `json:"discountAmount"`
	TotalTax       float64   `json:"totalTax"`
	TotalShipping  float64   `json:"totalShipping"`
	Total          float64   `json:"total"`
	Serviceable    bool      `json:"serviceable"`
}

func FromPlaceOrderResult(r *commands.PlaceOrderResult) *PlaceOrderResponse {
	return &PlaceOrderResponse{
		OrderID:        r.OrderID,
		Subtotal:       r.Subtotal,
		DiscountAmount: r.DiscountAmount,
		TotalTax:       r.TotalTax,
		TotalShipping:  r.TotalShipping,
		Total:          r.Total,
		Serviceable:    r.Serviceable,
	}
}

type TransitionResponse struct {
	OrderID uuid.UUID `json:"orderId"`
	From    string    `json:"from"`
	To      string    `json:"to"`
	At      time.Time `json:"at"`
}

func FromTransitionResult(r *commands.TransitionResult) *TransitionResponse {
	return &TransitionResponse{
		OrderID: r.OrderID,
		From:    r.From.String(),
		To:      r.To.String(),
		At:      r.At,
	}
}
