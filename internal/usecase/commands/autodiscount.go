package commands

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"martcore/internal/domain/autodiscount"
	"martcore/internal/infra"
	"martcore/internal/pkg/clock"
	"martcore/internal/pkg/errs"
	"martcore/internal/usecase/shared"
)

type GenerateProposalParams struct {
	StoreID  uuid.UUID
	Scope    autodiscount.Scope
	EntityID *uuid.UUID
	AlertID  uuid.UUID
}

type GenerateProposalResult struct {
	ProposalID      uuid.UUID
	SKU             string
	CurrentPrice    float64
	ProposedPrice   float64
	DiscountPercent float64
	ExpectedImpact  autodiscount.Impact
}

type AutoDiscountCommands interface {
	GenerateProposal(ctx context.Context, params GenerateProposalParams) (*GenerateProposalResult, error)
}

type autoDiscountUseCaseImpl struct {
	uow               shared.UnitOfWork
	prices            PriceLookup
	clock             clock.Clock
	defaultExpiryDays int
}

func NewAutoDiscountUseCase(uow shared.UnitOfWork, prices PriceLookup, clk clock.Clock, defaultExpiryDays int) AutoDiscountCommands {
	return &autoDiscountUseCaseImpl{
		uow:               uow,
		prices:            prices,
		clock:             clk,
		defaultExpiryDays: defaultExpiryDays,
	}
}

// GenerateProposal converts a dead-stock alert into a pending discount
// proposal, or rejects it with an explicit reason. It never touches live
// pricing; approval is an external actor's decision.
func (u *autoDiscountUseCaseImpl) GenerateProposal(ctx context.Context, params GenerateProposalParams) (*GenerateProposalResult, error) {
	if !params.Scope.IsValid() {
		return nil, errs.Mark(autodiscount.ErrInvalidScope, ErrDomainValidation)
	}

	var result *GenerateProposalResult
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		reads := tx.Reads()

		rule, err := reads.RuleForScope(ctx, params.StoreID, params.Scope, params.EntityID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrRuleNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		alert, err := reads.AlertByID(ctx, params.AlertID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrAlertNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		exists, err := reads.PendingProposalExists(ctx, params.Scope, params.EntityID, alert.SKUID, alert.ID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if exists {
			return ErrDuplicateProposal
		}

		currentPrice, err := u.prices.CurrentPrice(ctx, params.StoreID, alert.SKUID)
		if err != nil {
			return errs.Wrap(err, "current price lookup failed")
		}

		proposal, err := autodiscount.BuildProposal(uuid.New(), rule, alert, currentPrice, u.clock.Now(), u.defaultExpiryDays)
		if err != nil {
			var ineligible *autodiscount.IneligibleError
			if errors.As(err, &ineligible) {
				return errs.Mark(err, ErrIneligibleAlert)
			}
			return errs.Mark(err, ErrDomainValidation)
		}

		if err := tx.Proposals().Create(ctx, proposal); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrDuplicateProposal
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		result = &GenerateProposalResult{
			ProposalID:      proposal.ID,
			SKU:             proposal.SKU,
			CurrentPrice:    proposal.CurrentPrice,
			ProposedPrice:   proposal.ProposedPrice,
			DiscountPercent: proposal.DiscountPercent,
			ExpectedImpact:  proposal.ExpectedImpact,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("discount proposal generated",
		"proposal_id", result.ProposalID,
		"sku", result.SKU,
		"discount_percent", result.DiscountPercent)
	return result, nil
}
