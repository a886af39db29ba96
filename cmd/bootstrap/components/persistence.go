package components

import (
	"martcore/internal/infra/collab"
	"martcore/internal/infra/db"
	"martcore/internal/infra/readstore"
	"martcore/internal/infra/uow"
	"martcore/internal/pkg/config"
	"martcore/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	collabModule,
)

var baseOption = fx.Provide(
	NewDBTX,
	NewCheckoutConfig,
	fx.Annotate(
		uow.NewPostgresUoW,
		fx.As(new(shared.UnitOfWork)),
	),
)

// Read-side query services run against the pool outside any transaction.
var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		readstore.NewOrderQueries,
		readstore.NewCouponQueries,
		readstore.NewShippingQueries,
		readstore.NewAutoDiscountQueries,
	),
)

// Snapshot collaborators consulted by the checkout pipeline.
var collabModule = fx.Module("persistence/collab",
	fx.Provide(
		collab.NewGSTCalculator,
		collab.NewPriorityCourierAssigner,
		collab.NewTouchReferralAttributor,
		collab.NewSupplierDirectory,
		collab.NewVariantPriceLookup,
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewCheckoutConfig(cfg config.Config) config.CheckoutConfig {
	return cfg.Checkout
}
