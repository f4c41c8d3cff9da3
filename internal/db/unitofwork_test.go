package db_test

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/alexanderramin/mindcanvas/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openUoW(t *testing.T) *db.SQLiteUnitOfWork {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database)
}

func insertMap(ctx context.Context, tx db.DBTX, id string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO mind_maps (id, name, created_at, updated_at) VALUES (?, ?, 'now', 'now')`, id, "Map "+id)
	return err
}

func mapExists(t *testing.T, uow *db.SQLiteUnitOfWork, id string) bool {
	t.Helper()
	var found bool
	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		var n int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM mind_maps WHERE id = ?`, id).Scan(&n); err != nil {
			return err
		}
		found = n > 0
		return nil
	})
	require.NoError(t, err)
	return found
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertMap(ctx, tx, "m1")
	})
	require.NoError(t, err)
	assert.True(t, mapExists(t, uow, "m1"))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertMap(ctx, tx, "m2"); err != nil {
			return err
		}
		return fmt.Errorf("deliberate failure")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deliberate failure")
	assert.False(t, mapExists(t, uow, "m2"))
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow := openUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertMap(ctx, tx, "m3")
			panic("boom")
		})
	})
	assert.False(t, mapExists(t, uow, "m3"))
}

func TestWithinTx_LogsStatementsAndRollback(t *testing.T) {
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	uow := db.NewSQLiteUnitOfWork(database, db.WithTxLogger(logger))

	err = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertMap(ctx, tx, "m4"); err != nil {
			return err
		}
		return fmt.Errorf("stop here")
	})
	require.EqualError(t, err, "stop here")

	out := buf.String()
	assert.Contains(t, out, "msg=sql")
	assert.Contains(t, out, "kind=exec")
	assert.Contains(t, out, `"INSERT INTO mind_maps (id, name, created_at, updated_at) VALUES (?, ?, 'now', 'now')"`)
	assert.Contains(t, out, "msg=tx_rollback")
	assert.Contains(t, out, `cause="stop here"`)
}

func TestTrace(t *testing.T) {
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	assert.Same(t, database, db.Trace(database, nil))

	var buf bytes.Buffer
	info := slog.New(slog.NewTextHandler(&buf, nil))
	traced := db.Trace(database, info)
	var n int
	require.NoError(t, traced.QueryRowContext(context.Background(), "SELECT 1").Scan(&n))
	assert.Equal(t, 1, n)
	assert.Empty(t, buf.String(), "debug records are skipped at info level")

	debug := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	rows, err := db.Trace(traced, debug).QueryContext(context.Background(), "SELECT\n\t\tname FROM mind_maps")
	require.NoError(t, err)
	require.NoError(t, rows.Close())
	assert.Contains(t, buf.String(), `sql="SELECT name FROM mind_maps"`)
	assert.Contains(t, buf.String(), "kind=query")
}
