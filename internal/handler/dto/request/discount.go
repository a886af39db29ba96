package request

import (
	"github.com/google/uuid"

	"martcore/internal/domain/autodiscount"
	"martcore/internal/usecase/commands"
)

type GenerateProposalRequest struct {
	Scope    string     `json:"scope" binding:"required,oneof=admin supplier reseller"`
	EntityID *uuid.UUID `json:"entityId,omitempty"`
	AlertID  uuid.UUID  `json:"alertId" binding:"required"`
}

func (r GenerateProposalRequest) ToParams(storeID uuid.UUID) commands.GenerateProposalParams {
	return commands.GenerateProposalParams{
		StoreID:  storeID,
		Scope:    autodiscount.Scope(r.Scope),
		EntityID: r.EntityID,
		AlertID:  r.AlertID,
	}
}
