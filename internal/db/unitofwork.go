package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// UnitOfWork runs a callback inside one transaction. The callback receives a
// DBTX backed by the *sql.Tx; callers build tx-scoped repositories from it.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// SQLiteUnitOfWork implements UnitOfWork using database/sql transactions.
type SQLiteUnitOfWork struct {
	db     *sql.DB
	logger *slog.Logger
}

// UoWOption configures a SQLiteUnitOfWork.
type UoWOption func(*SQLiteUnitOfWork)

// WithTxLogger traces statements run inside transactions and logs rollbacks.
func WithTxLogger(l *slog.Logger) UoWOption {
	return func(u *SQLiteUnitOfWork) { u.logger = l }
}

// NewSQLiteUnitOfWork creates a UnitOfWork backed by db.
func NewSQLiteUnitOfWork(db *sql.DB, opts ...UoWOption) *SQLiteUnitOfWork {
	u := &SQLiteUnitOfWork{db: db}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// WithinTx commits when fn returns nil. An error or a panic from fn rolls the
// transaction back; the panic is re-raised afterwards.
func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	done := false
	defer func() {
		if done {
			return
		}
		p := recover()
		if p == nil {
			// runtime.Goexit, e.g. t.FailNow inside fn.
			_ = tx.Rollback()
			return
		}
		_ = u.rollback(ctx, tx, fmt.Errorf("panic: %v", p))
		panic(p)
	}()

	if fnErr := fn(ctx, Trace(tx, u.logger)); fnErr != nil {
		done = true
		if rbErr := u.rollback(ctx, tx, fnErr); rbErr != nil {
			return fmt.Errorf("rolling back after %w: %v", fnErr, rbErr)
		}
		return fnErr
	}

	done = true
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (u *SQLiteUnitOfWork) rollback(ctx context.Context, tx *sql.Tx, cause error) error {
	err := tx.Rollback()
	if u.logger != nil {
		u.logger.WarnContext(ctx, "tx_rollback", "cause", cause.Error(), "rollback_error", err)
	}
	return err
}
