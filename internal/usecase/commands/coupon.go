package commands

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"martcore/internal/domain/coupon"
	"martcore/internal/infra"
	"martcore/internal/pkg/clock"
	"martcore/internal/pkg/errs"
	"martcore/internal/usecase/shared"
)

type CreateCouponParams struct {
	StoreID    uuid.UUID
	Code       string
	Type       coupon.Type
	Value      float64
	Conditions coupon.Conditions
	Active     bool
	StartsAt   *time.Time
	EndsAt     *time.Time
}

type ValidateCouponParams struct {
	StoreID uuid.UUID
	Code    string
	Cart    coupon.Cart
	UserID  *uuid.UUID
}

type ValidateCouponResult struct {
	Valid          bool
	Reason         string
	DiscountAmount float64
	CouponID       uuid.UUID
	Code           string
	Type           coupon.Type
}

type RedeemCouponParams struct {
	StoreID uuid.UUID
	Code    string
	Cart    coupon.Cart
	UserID  *uuid.UUID
	OrderID uuid.UUID
}

type RedeemCouponResult struct {
	RedemptionID   uuid.UUID
	CouponID       uuid.UUID
	DiscountAmount float64
}

type CouponCommands interface {
	Create(ctx context.Context, params CreateCouponParams) (uuid.UUID, error)
	Validate(ctx context.Context, params ValidateCouponParams) (*ValidateCouponResult, error)
	Redeem(ctx context.Context, params RedeemCouponParams) (*RedeemCouponResult, error)
}

type couponUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewCouponUseCase(uow shared.UnitOfWork, clk clock.Clock) CouponCommands {
	return &couponUseCaseImpl{uow: uow, clock: clk}
}

func (u *couponUseCaseImpl) Create(ctx context.Context, params CreateCouponParams) (uuid.UUID, error) {
	entity, err := coupon.NewCoupon(
		uuid.New(),
		params.StoreID,
		params.Code,
		params.Type,
		params.Value,
		params.Conditions,
		params.Active,
		params.StartsAt,
		params.EndsAt,
	)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Coupons().Create(ctx, entity); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(errs.New("coupon code already exists for store"), ErrDomainValidation)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return entity.ID(), nil
}

// Validate runs the gate checks without writing anything. A failed check is
// a valid=false result with the reason, not an error; storefronts render
// both paths.
func (u *couponUseCaseImpl) Validate(ctx context.Context, params ValidateCouponParams) (*ValidateCouponResult, error) {
	reads := u.uow.CommandReads()

	coup, err := reads.CouponByCode(ctx, params.StoreID, params.Code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return &ValidateCouponResult{Valid: false, Reason: coupon.ReasonNotFound}, nil
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	usage, err := reads.RedemptionCounts(ctx, coup.ID(), params.UserID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := coup.Validate(u.clock.Now(), params.Cart, params.UserID, usage); err != nil {
		var rej *coupon.RejectionError
		if errors.As(err, &rej) {
			return &ValidateCouponResult{Valid: false, Reason: rej.Reason}, nil
		}
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	return &ValidateCouponResult{
		Valid:          true,
		DiscountAmount: coup.Discount(params.Cart),
		CouponID:       coup.ID(),
		Code:           coup.Code().String(),
		Type:           coup.Kind(),
	}, nil
}

// Redeem re-validates, computes the discount, and appends one ledger row.
// Limit checks re-run inside the transaction so a tight race cannot slip a
// redemption past a limit; the (couponID, orderID) uniqueness constraint is
// the backstop against double redemption for the same order.
func (u *couponUseCaseImpl) Redeem(ctx context.Context, params RedeemCouponParams) (*RedeemCouponResult, error) {
	var result *RedeemCouponResult

	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		reads := tx.Reads()

		coup, err := reads.CouponByCode(ctx, params.StoreID, params.Code)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrCouponNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		usage, err := reads.RedemptionCounts(ctx, coup.ID(), params.UserID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := coup.Validate(u.clock.Now(), params.Cart, params.UserID, usage); err != nil {
			return errs.Mark(err, ErrCouponRejected)
		}

		discount := coup.Discount(params.Cart)
		redemption := coupon.Redemption{
			ID:             uuid.New(),
			CouponID:       coup.ID(),
			Code:           coup.Code().String(),
			UserID:         params.UserID,
			OrderID:        params.OrderID,
			DiscountAmount: discount,
			RedeemedAt:     u.clock.Now(),
		}
		if err := tx.Redemptions().Append(ctx, redemption); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrRedemptionRecorded
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		result = &RedeemCouponResult{
			RedemptionID:   redemption.ID,
			CouponID:       coup.ID(),
			DiscountAmount: discount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
