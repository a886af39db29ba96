//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"martcore/internal/domain/identity"
	"martcore/internal/domain/order"
	"martcore/internal/infra"
	"martcore/internal/pkg/clock"
	"martcore/internal/pkg/events"
	"martcore/internal/usecase/commands"
	sharedmock "martcore/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type orderFixture struct {
	reads   *sharedmock.MockCommandReads
	orders  *sharedmock.MockOrderRepository
	topic   *events.Topic[order.StatusChangedEvent]
	now     time.Time
	usecase commands.OrderCommands
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &orderFixture{
		reads:  sharedmock.NewMockCommandReads(ctrl),
		orders: sharedmock.NewMockOrderRepository(ctrl),
		topic:  events.NewTopic[order.StatusChangedEvent](),
		now:    time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}

	tx := sharedmock.NewMockTx(ctrl)
	tx.EXPECT().Orders().Return(f.orders).AnyTimes()
	tx.EXPECT().Reads().Return(f.reads).AnyTimes()

	f.usecase = commands.NewOrderUseCase(
		&stubUoW{tx: tx, reads: f.reads},
		f.topic,
		clock.NewMockClock(f.now),
	)
	return f
}

func storedOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	return order.ReconstructOrder(
		uuid.New(), uuid.New(), nil,
		[]order.Item{{ProductID: uuid.New(), SKU: "SKU001", Quantity: 1, UnitPrice: 100}},
		status, order.PaymentPending, order.PaymentMethodPrepaid,
		100, 0, 100, nil,
		order.Frozen[order.TaxSnapshot]{}, order.Frozen[order.ShippingSnapshot]{},
		order.Frozen[order.CourierSnapshot]{}, order.Frozen[order.FulfillmentSnapshot]{},
		order.Frozen[order.ReferralSnapshot]{},
		nil, nil, nil,
		time.Now(), time.Now(),
	)
}

func TestOrderTransition(t *testing.T) {
	actor := order.Actor{Role: identity.RoleAdmin}

	t.Run("legal transition persists and publishes", func(t *testing.T) {
		f := newOrderFixture(t)
		o := storedOrder(t, order.StatusConfirmed)
		f.reads.EXPECT().OrderByID(gomock.Any(), o.ID()).Return(o, nil)
		f.orders.EXPECT().UpdateStatus(gomock.Any(), o).Return(nil)

		var published []order.StatusChangedEvent
		f.topic.Subscribe(func(e order.StatusChangedEvent) { published = append(published, e) })

		result, err := f.usecase.Transition(context.Background(), commands.TransitionParams{
			OrderID: o.ID(), To: order.StatusProcessing, Actor: actor,
		})
		require.NoError(t, err)

		assert.Equal(t, order.StatusConfirmed, result.From)
		assert.Equal(t, order.StatusProcessing, result.To)
		assert.Equal(t, f.now, result.At)

		require.Len(t, published, 1)
		assert.Equal(t, o.ID(), published[0].OrderID)
		assert.Equal(t, order.StatusProcessing, published[0].To)
	})

	t.Run("illegal transition leaves the order untouched", func(t *testing.T) {
		f := newOrderFixture(t)
		o := storedOrder(t, order.StatusCreated)
		f.reads.EXPECT().OrderByID(gomock.Any(), o.ID()).Return(o, nil)

		var published int
		f.topic.Subscribe(func(order.StatusChangedEvent) { published++ })

		_, err := f.usecase.Transition(context.Background(), commands.TransitionParams{
			OrderID: o.ID(), To: order.StatusShipped, Actor: actor,
		})
		require.ErrorIs(t, err, commands.ErrIllegalTransition)

		var illegal *order.IllegalTransitionError
		assert.ErrorAs(t, err, &illegal)
		assert.Equal(t, 0, published)
	})

	t.Run("unknown order", func(t *testing.T) {
		f := newOrderFixture(t)
		id := uuid.New()
		f.reads.EXPECT().OrderByID(gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("order not found", errors.New("no rows"), infra.KindNotFound))

		_, err := f.usecase.Transition(context.Background(), commands.TransitionParams{
			OrderID: id, To: order.StatusConfirmed, Actor: actor,
		})
		assert.ErrorIs(t, err, commands.ErrOrderNotFound)
	})
}

func TestOrderCancel(t *testing.T) {
	actor := order.Actor{Role: identity.RoleCustomer}

	t.Run("cancellable order records the reason", func(t *testing.T) {
		f := newOrderFixture(t)
		o := storedOrder(t, order.StatusProcessing)
		f.reads.EXPECT().OrderByID(gomock.Any(), o.ID()).Return(o, nil)
		f.orders.EXPECT().UpdateStatus(gomock.Any(), o).Return(nil)

		result, err := f.usecase.Cancel(context.Background(), commands.CancelParams{
			OrderID: o.ID(), Actor: actor, Reason: "ordered by mistake",
		})
		require.NoError(t, err)
		assert.Equal(t, order.StatusCancelled, result.To)
		require.NotNil(t, o.Cancellation())
		assert.Equal(t, "ordered by mistake", o.Cancellation().Reason)
	})

	t.Run("shipped order cannot be cancelled", func(t *testing.T) {
		f := newOrderFixture(t)
		o := storedOrder(t, order.StatusShipped)
		f.reads.EXPECT().OrderByID(gomock.Any(), o.ID()).Return(o, nil)

		_, err := f.usecase.Cancel(context.Background(), commands.CancelParams{
			OrderID: o.ID(), Actor: actor, Reason: "too late",
		})
		require.ErrorIs(t, err, commands.ErrIllegalTransition)
		assert.ErrorIs(t, err, order.ErrNotCancellable)
	})
}

func TestOrderReturn(t *testing.T) {
	actor := order.Actor{Role: identity.RoleCustomer}

	t.Run("delivered order may be returned", func(t *testing.T) {
		f := newOrderFixture(t)
		o := storedOrder(t, order.StatusDelivered)
		f.reads.EXPECT().OrderByID(gomock.Any(), o.ID()).Return(o, nil)
		f.orders.EXPECT().UpdateStatus(gomock.Any(), o).Return(nil)

		result, err := f.usecase.Return(context.Background(), commands.ReturnParams{
			OrderID: o.ID(), Actor: actor, Reason: "damaged on arrival",
		})
		require.NoError(t, err)
		assert.Equal(t, order.StatusReturned, result.To)
	})

	t.Run("undelivered order cannot be returned", func(t *testing.T) {
		f := newOrderFixture(t)
		o := storedOrder(t, order.StatusOutForDelivery)
		f.reads.EXPECT().OrderByID(gomock.Any(), o.ID()).Return(o, nil)

		_, err := f.usecase.Return(context.Background(), commands.ReturnParams{
			OrderID: o.ID(), Actor: actor, Reason: "changed my mind",
		})
		require.ErrorIs(t, err, commands.ErrIllegalTransition)
		assert.ErrorIs(t, err, order.ErrNotReturnable)
	})
}
