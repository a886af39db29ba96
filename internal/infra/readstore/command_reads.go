// Package readstore holds the read side: command-layer validation reads and
// the query services backing the HTTP read endpoints. All SQL is hand-written
// against the pgx query surface so the same code runs on a pool or inside a
// transaction.
package readstore

import (
	"martcore/internal/infra/db"
	"martcore/internal/usecase/shared"
)

type CommandReadStore struct {
	db db.DBTX
}

func NewCommandReads(dbtx db.DBTX) shared.CommandReads {
	return &CommandReadStore{db: dbtx}
}
