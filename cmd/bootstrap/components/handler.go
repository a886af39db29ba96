package components

import (
	"martcore/internal/handler"
	"martcore/internal/handler/api"
	"martcore/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewCheckoutHandler,
		api.NewOrderHandler,
		api.NewCouponHandler,
		api.NewShippingHandler,
		api.NewDiscountHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	auth *api.AuthHandler,
	checkout *api.CheckoutHandler,
	order *api.OrderHandler,
	coupon *api.CouponHandler,
	shipping *api.ShippingHandler,
	discount *api.DiscountHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:     auth,
		Checkout: checkout,
		Order:    order,
		Coupon:   coupon,
		Shipping: shipping,
		Discount: discount,
	}
}
