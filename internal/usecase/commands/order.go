package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"martcore/internal/domain/order"
	"martcore/internal/infra"
	"martcore/internal/pkg/clock"
	"martcore/internal/pkg/errs"
	"martcore/internal/pkg/events"
	"martcore/internal/usecase/shared"
)

type TransitionParams struct {
	OrderID uuid.UUID
	To      order.Status
	Actor   order.Actor
}

type CancelParams struct {
	OrderID uuid.UUID
	Actor   order.Actor
	Reason  string
}

type ReturnParams struct {
	OrderID uuid.UUID
	Actor   order.Actor
	Reason  string
}

type TransitionResult struct {
	OrderID uuid.UUID
	From    order.Status
	To      order.Status
	At      time.Time
}

type OrderCommands interface {
	Transition(ctx context.Context, params TransitionParams) (*TransitionResult, error)
	Cancel(ctx context.Context, params CancelParams) (*TransitionResult, error)
	Return(ctx context.Context, params ReturnParams) (*TransitionResult, error)
}

type orderUseCaseImpl struct {
	uow         shared.UnitOfWork
	statusTopic *events.Topic[order.StatusChangedEvent]
	clock       clock.Clock
}

func NewOrderUseCase(
	uow shared.UnitOfWork,
	statusTopic *events.Topic[order.StatusChangedEvent],
	clk clock.Clock,
) OrderCommands {
	return &orderUseCaseImpl{
		uow:         uow,
		statusTopic: statusTopic,
		clock:       clk,
	}
}

func (u *orderUseCaseImpl) Transition(ctx context.Context, params TransitionParams) (*TransitionResult, error) {
	return u.mutate(ctx, params.OrderID, func(o *order.Order, now time.Time) error {
		return o.Transition(params.To, params.Actor, now)
	})
}

func (u *orderUseCaseImpl) Cancel(ctx context.Context, params CancelParams) (*TransitionResult, error) {
	return u.mutate(ctx, params.OrderID, func(o *order.Order, now time.Time) error {
		return o.Cancel(params.Actor, params.Reason, now)
	})
}

func (u *orderUseCaseImpl) Return(ctx context.Context, params ReturnParams) (*TransitionResult, error) {
	return u.mutate(ctx, params.OrderID, func(o *order.Order, now time.Time) error {
		return o.Return(params.Actor, params.Reason, now)
	})
}

// mutate loads the order, applies the guarded transition, persists the
// status + audit fields, then publishes the status-changed event after
// commit so listeners never observe an uncommitted transition.
func (u *orderUseCaseImpl) mutate(
	ctx context.Context,
	orderID uuid.UUID,
	apply func(o *order.Order, now time.Time) error,
) (*TransitionResult, error) {
	var event order.StatusChangedEvent
	var result *TransitionResult

	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Reads().OrderByID(ctx, orderID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrOrderNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		now := u.clock.Now()
		if err := apply(o, now); err != nil {
			var illegal *order.IllegalTransitionError
			switch {
			case errors.As(err, &illegal),
				errors.Is(err, order.ErrNotCancellable),
				errors.Is(err, order.ErrNotReturnable):
				return errs.Mark(err, ErrIllegalTransition)
			default:
				return errs.Mark(err, ErrDomainValidation)
			}
		}

		if err := tx.Orders().UpdateStatus(ctx, o); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		event = o.StatusChangedEvent()
		lt := o.LastTransition()
		result = &TransitionResult{
			OrderID: o.ID(),
			From:    lt.From,
			To:      lt.To,
			At:      lt.At,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.statusTopic.Publish(event)
	slog.Info("order status changed",
		"order_id", result.OrderID,
		"from", result.From,
		"to", result.To)
	return result, nil
}
