package writerepo

import (
	"context"

	"github.com/google/uuid"

	"martcore/internal/infra"
	"martcore/internal/infra/db"
	"martcore/internal/usecase/shared"
)

type AccountRepository struct {
	db db.DBTX
}

func NewAccountRepository(dbtx db.DBTX) shared.AccountRepository {
	return &AccountRepository{db: dbtx}
}

func (r *AccountRepository) UpdateLastLogin(ctx context.Context, accountID uuid.UUID) error {
	query := `UPDATE accounts SET last_login_at = now() WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, accountID)
	if err != nil {
		return infra.WrapRepoErr("failed to update last login", err, infra.ClassifyPgErr(err))
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("account not found", nil, infra.KindNotFound)
	}
	return nil
}
