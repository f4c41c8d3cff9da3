package testutil

import (
	"context"
	"database/sql"
	"strings"

	"github.com/alexanderramin/mindcanvas/internal/db"
)

// NodeWriteFailureUoW runs transactions on DB but makes the node insert after
// the first AllowNodes ones fail with Err. Statements touching other tables
// pass through, so it exercises rollback of a half-written tree.
type NodeWriteFailureUoW struct {
	DB         *sql.DB
	AllowNodes int
	Err        error

	// RolledBack is set when a transaction ended in rollback.
	RolledBack bool
}

func (u *NodeWriteFailureUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	inner := db.NewSQLiteUnitOfWork(u.DB)
	err := inner.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &nodeWriteFailure{DBTX: tx, allow: u.AllowNodes, err: u.Err})
	})
	u.RolledBack = err != nil
	return err
}

type nodeWriteFailure struct {
	db.DBTX
	inserted int
	allow    int
	err      error
}

func (f *nodeWriteFailure) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if strings.Contains(query, "INSERT INTO mind_nodes") {
		if f.inserted >= f.allow {
			return nil, f.err
		}
		f.inserted++
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
