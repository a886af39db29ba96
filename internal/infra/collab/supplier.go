package collab

import (
	"context"

	"github.com/google/uuid"

	"martcore/internal/infra"
	"martcore/internal/infra/db"
	"martcore/internal/usecase/commands"
)

type SupplierDirectoryStore struct {
	db db.DBTX
}

func NewSupplierDirectory(dbtx db.DBTX) commands.SupplierDirectory {
	return &SupplierDirectoryStore{db: dbtx}
}

func (s *SupplierDirectoryStore) OriginAddress(ctx context.Context, supplierID uuid.UUID) (string, error) {
	query := `SELECT origin_address FROM suppliers WHERE id = $1`

	var address string
	if err := s.db.QueryRow(ctx, query, supplierID).Scan(&address); err != nil {
		if infra.IsNoRows(err) {
			return "", infra.WrapRepoErr("supplier not found", err, infra.KindNotFound)
		}
		return "", infra.WrapRepoErr("failed to load supplier origin", err)
	}
	return address, nil
}
