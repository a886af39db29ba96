// Package uow implements the command layer's unit-of-work contract on top of
// pgx transactions. Serialization failures and deadlocks are retried with
// jittered backoff; every other error, unique violations included, surfaces
// to the caller on the first attempt.
package uow

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"martcore/internal/infra/db"
	"martcore/internal/infra/readstore"
	"martcore/internal/infra/writerepo"
	"martcore/internal/pkg/errs"
	"martcore/internal/usecase/shared"
)

const (
	maxRetries     = 3
	baseRetryDelay = 10 * time.Millisecond
)

type PostgresUoW struct {
	pool  *pgxpool.Pool
	reads shared.CommandReads
}

func NewPostgresUoW(pool *pgxpool.Pool) *PostgresUoW {
	return &PostgresUoW{
		pool:  pool,
		reads: readstore.NewCommandReads(pool),
	}
}

func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (u *PostgresUoW) WithinSerializable(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable}, fn)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return u.reads
}

func (u *PostgresUoW) runInTx(ctx context.Context, opts pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoffDelay(attempt)):
			}
		}

		err := u.attempt(ctx, opts, fn)
		if err == nil {
			return nil
		}
		if !isRetryableError(err) {
			return err
		}
		lastErr = err
	}
	return errs.Wrap(lastErr, "transaction failed after retries")
}

func (u *PostgresUoW) attempt(ctx context.Context, opts pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgtx, err := u.pool.BeginTx(ctx, opts)
	if err != nil {
		return errs.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		_ = pgtx.Rollback(ctx)
	}()

	if err := fn(ctx, newPgTx(pgtx)); err != nil {
		return err
	}
	if err := pgtx.Commit(ctx); err != nil {
		return errs.Wrap(err, "failed to commit transaction")
	}
	return nil
}

// Only serialization failures (40001) and deadlocks (40P01) are retryable.
// Unique violations are not: redemption appends and slab inserts must never
// run twice.
func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}

func backoffDelay(attempt int) time.Duration {
	delay := baseRetryDelay << uint(attempt)
	jitter, err := rand.Int(rand.Reader, big.NewInt(int64(delay)))
	if err != nil {
		return delay
	}
	return delay + time.Duration(jitter.Int64())
}

// pgTx exposes the per-transaction repository set. Repositories are built
// lazily on first access, all bound to the same pgx.Tx.
type pgTx struct {
	tx db.DBTX

	orders      shared.OrderRepository
	coupons     shared.CouponRepository
	redemptions shared.RedemptionRepository
	zones       shared.ZoneRepository
	rates       shared.RateRepository
	proposals   shared.ProposalRepository
	accounts    shared.AccountRepository
	reads       shared.CommandReads
}

func newPgTx(tx pgx.Tx) *pgTx {
	return &pgTx{tx: tx}
}

func (t *pgTx) Orders() shared.OrderRepository {
	if t.orders == nil {
		t.orders = writerepo.NewOrderRepository(t.tx)
	}
	return t.orders
}

func (t *pgTx) Coupons() shared.CouponRepository {
	if t.coupons == nil {
		t.coupons = writerepo.NewCouponRepository(t.tx)
	}
	return t.coupons
}

func (t *pgTx) Redemptions() shared.RedemptionRepository {
	if t.redemptions == nil {
		t.redemptions = writerepo.NewRedemptionRepository(t.tx)
	}
	return t.redemptions
}

func (t *pgTx) Zones() shared.ZoneRepository {
	if t.zones == nil {
		t.zones = writerepo.NewZoneRepository(t.tx)
	}
	return t.zones
}

func (t *pgTx) Rates() shared.RateRepository {
	if t.rates == nil {
		t.rates = writerepo.NewRateRepository(t.tx)
	}
	return t.rates
}

func (t *pgTx) Proposals() shared.ProposalRepository {
	if t.proposals == nil {
		t.proposals = writerepo.NewProposalRepository(t.tx)
	}
	return t.proposals
}

func (t *pgTx) Accounts() shared.AccountRepository {
	if t.accounts == nil {
		t.accounts = writerepo.NewAccountRepository(t.tx)
	}
	return t.accounts
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.reads == nil {
		t.reads = readstore.NewCommandReads(t.tx)
	}
	return t.reads
}
