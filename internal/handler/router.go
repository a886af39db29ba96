package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"martcore/internal/handler/api"
	"martcore/internal/handler/middleware"
	"martcore/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth     *api.AuthHandler
	Checkout *api.CheckoutHandler
	Order    *api.OrderHandler
	Coupon   *api.CouponHandler
	Shipping *api.ShippingHandler
	Discount *api.DiscountHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		// Storefront surface: guests may check out, validate coupons and
		// request quotes; a present token attributes the customer.
		storefront := apiGroup.Group("")
		storefront.Use(authMiddleware.OptionalAuth())
		{
			addRoutes(storefront, []route{
				{Method: http.MethodPost, Path: "/checkout", Handler: h.Checkout.PlaceOrder},
				{Method: http.MethodPost, Path: "/coupons/validate", Handler: h.Coupon.Validate},
				{Method: http.MethodPost, Path: "/shipping/quote", Handler: h.Shipping.Quote},
			})
		}

		orders := apiGroup.Group("/orders")
		orders.Use(authMiddleware.RequireAuth())
		{
			addRoutes(orders, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Order.ListOrders},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Order.GetOrder},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Order.Cancel},
				{Method: http.MethodPost, Path: "/:id/return", Handler: h.Order.Return},
				{Method: http.MethodPost, Path: "/:id/transition", Handler: h.Order.Transition,
					Mw: []gin.HandlerFunc{authMiddleware.RequireOperator()}},
			})
		}

		coupons := apiGroup.Group("/coupons")
		coupons.Use(authMiddleware.RequireAuth(), authMiddleware.RequireOperator())
		{
			addRoutes(coupons, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Coupon.Create},
				{Method: http.MethodGet, Path: "", Handler: h.Coupon.List},
				{Method: http.MethodPost, Path: "/redeem", Handler: h.Coupon.Redeem},
			})
		}

		shipping := apiGroup.Group("/shipping")
		shipping.Use(authMiddleware.RequireAuth(), authMiddleware.RequireOperator())
		{
			addRoutes(shipping, []route{
				{Method: http.MethodPost, Path: "/zones", Handler: h.Shipping.CreateZone},
				{Method: http.MethodGet, Path: "/zones", Handler: h.Shipping.ListZones},
				{Method: http.MethodPost, Path: "/zones/:zoneId/rates", Handler: h.Shipping.CreateRate},
				{Method: http.MethodGet, Path: "/zones/:zoneId/rates", Handler: h.Shipping.ListRates},
			})
		}

		discounts := apiGroup.Group("/discounts")
		discounts.Use(authMiddleware.RequireAuth(), authMiddleware.RequireOperator())
		{
			addRoutes(discounts, []route{
				{Method: http.MethodPost, Path: "/proposals", Handler: h.Discount.GenerateProposal},
				{Method: http.MethodGet, Path: "/proposals", Handler: h.Discount.ListProposals},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
