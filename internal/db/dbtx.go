package db

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"
)

// DBTX is satisfied by *sql.DB and *sql.Tx, so repositories run the same
// statements inside or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
	_ DBTX = (*tracedDBTX)(nil)
)

// Trace wraps conn so every statement is logged at debug level with its
// duration. A nil logger returns conn unchanged.
func Trace(conn DBTX, logger *slog.Logger) DBTX {
	if logger == nil {
		return conn
	}
	if t, ok := conn.(*tracedDBTX); ok {
		conn = t.conn
	}
	return &tracedDBTX{conn: conn, logger: logger}
}

type tracedDBTX struct {
	conn   DBTX
	logger *slog.Logger
}

func (t *tracedDBTX) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	res, err := t.conn.ExecContext(ctx, query, args...)
	t.log(ctx, "exec", query, len(args), start, err)
	return res, err
}

func (t *tracedDBTX) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.conn.QueryContext(ctx, query, args...)
	t.log(ctx, "query", query, len(args), start, err)
	return rows, err
}

// QueryRowContext defers its error to Scan, so only the call is logged.
func (t *tracedDBTX) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	start := time.Now()
	row := t.conn.QueryRowContext(ctx, query, args...)
	t.log(ctx, "query_row", query, len(args), start, nil)
	return row
}

func (t *tracedDBTX) log(ctx context.Context, kind, query string, nargs int, start time.Time, err error) {
	if !t.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	attrs := []slog.Attr{
		slog.String("kind", kind),
		slog.String("sql", compactSQL(query)),
		slog.Int("args", nargs),
		slog.Duration("took", time.Since(start)),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	t.logger.LogAttrs(ctx, slog.LevelDebug, "sql", attrs...)
}

// compactSQL folds the whitespace of a multi-line statement onto one line.
func compactSQL(query string) string {
	return strings.Join(strings.Fields(query), " ")
}
