package response

import (
	"time"

	"github.com/google/uuid"

	"martcore/internal/usecase/commands"
)

type LoginResponse struct {
	Token     string    `json:"token"`
	AccountID uuid.UUID `json:"accountId"`
	StoreID   uuid.UUID `json:"storeId"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func FromLoginResult(r *commands.LoginResult) *LoginResponse {
	return &LoginResponse{
		Token:     r.Token,
		AccountID: r.AccountID,
		StoreID:   r.StoreID,
		Role:      r.Role.String(),
		ExpiresAt: r.ExpiresAt,
	}
}

type MeResponse struct {
	AccountID uuid.UUID `json:"accountId"`
	StoreID   uuid.UUID `json:"storeId"`
	Role      string    `json:"role"`
}
