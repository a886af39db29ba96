package readstore

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"martcore/internal/domain/identity"
	"martcore/internal/infra"
)

func (s *CommandReadStore) AccountByEmail(ctx context.Context, email string) (*identity.Account, error) {
	query := `SELECT id, store_id, email, password_hash, role, active, last_login_at, created_at
		FROM accounts
		WHERE email = $1`

	var (
		id, storeID         uuid.UUID
		emailCol, hash, role string
		active              bool
		lastLoginAt         *time.Time
		createdAt           time.Time
	)
	err := s.db.QueryRow(ctx, query, strings.ToLower(strings.TrimSpace(email))).Scan(
		&id, &storeID, &emailCol, &hash, &role, &active, &lastLoginAt, &createdAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("account not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get account", err)
	}

	return identity.ReconstructAccount(id, storeID, emailCol, hash, identity.Role(role), active, lastLoginAt, createdAt), nil
}
