package components

import (
	"log/slog"

	"martcore/internal/domain/order"
	"martcore/internal/pkg/clock"
	"martcore/internal/pkg/config"
	"martcore/internal/pkg/events"
	"martcore/internal/usecase/commands"
	"martcore/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	fx.Invoke(subscribeStatusAudit),
)

// subscribeStatusAudit logs every committed lifecycle transition.
func subscribeStatusAudit(topic *events.Topic[order.StatusChangedEvent], logger *slog.Logger) {
	topic.Subscribe(func(e order.StatusChangedEvent) {
		logger.Info("order status changed",
			"orderId", e.OrderID.String(),
			"storeId", e.StoreID.String(),
			"from", string(e.From),
			"to", string(e.To),
			"actorRole", string(e.ActorRole),
		)
	})
}

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	events.NewTopic[order.StatusChangedEvent],
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewSnapshotPipeline,
		commands.NewCheckoutUseCase,
		commands.NewOrderUseCase,
		commands.NewCouponUseCase,
		commands.NewShippingUseCase,
		commands.NewAuthUseCase,
		NewAutoDiscountCommands,
	),
)

func NewAutoDiscountCommands(
	uow shared.UnitOfWork,
	prices commands.PriceLookup,
	clk clock.Clock,
	cfg config.Config,
) commands.AutoDiscountCommands {
	return commands.NewAutoDiscountUseCase(uow, prices, clk, cfg.Checkout.ProposalExpiryDays)
}
