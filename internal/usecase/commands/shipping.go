package commands

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"martcore/internal/domain/shipping"
	"martcore/internal/infra"
	"martcore/internal/pkg/errs"
	"martcore/internal/usecase/shared"
)

type CreateZoneParams struct {
	StoreID     uuid.UUID
	Name        string
	CountryCode string
	StateCodes  []string
	Pincodes    []string
}

type CreateRateParams struct {
	ZoneID       uuid.UUID
	RateType     shipping.RateType
	MinValue     float64
	MaxValue     float64
	BaseRate     float64
	PerUnitRate  float64
	CODSurcharge float64
}

type ShippingCommands interface {
	CreateZone(ctx context.Context, params CreateZoneParams) (uuid.UUID, error)
	CreateRate(ctx context.Context, params CreateRateParams) (uuid.UUID, error)
}

type shippingUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewShippingUseCase(uow shared.UnitOfWork) ShippingCommands {
	return &shippingUseCaseImpl{uow: uow}
}

func (u *shippingUseCaseImpl) CreateZone(ctx context.Context, params CreateZoneParams) (uuid.UUID, error) {
	zone, err := shipping.NewZone(
		uuid.New(),
		params.StoreID,
		params.Name,
		params.CountryCode,
		params.StateCodes,
		params.Pincodes,
	)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Zones().Create(ctx, zone); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(errs.New("zone name already exists for store"), ErrDomainValidation)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return zone.ID(), nil
}

// CreateRate performs the overlap check and the insert in one serializable
// transaction: the check must see the latest committed state, and two
// concurrent creations of overlapping slabs must not both commit. A
// serialization failure surfaces as a conflict the caller may retry with
// fresh data.
func (u *shippingUseCaseImpl) CreateRate(ctx context.Context, params CreateRateParams) (uuid.UUID, error) {
	rate, err := shipping.NewRate(
		uuid.New(),
		params.ZoneID,
		params.RateType,
		params.MinValue,
		params.MaxValue,
		params.BaseRate,
		params.PerUnitRate,
		params.CODSurcharge,
	)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	err = u.uow.WithinSerializable(ctx, func(ctx context.Context, tx shared.Tx) error {
		existing, err := tx.Reads().ActiveRatesForPartition(ctx, params.ZoneID, params.RateType)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrZoneNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := rate.CheckAgainst(existing); err != nil {
			var overlap *shipping.OverlapError
			if errors.As(err, &overlap) {
				return errs.Mark(err, ErrSlabOverlap)
			}
			return errs.Mark(err, ErrDomainValidation)
		}

		if err := tx.Rates().Create(ctx, rate); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrSlabConflict
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return rate.ID(), nil
}
