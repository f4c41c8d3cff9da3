package testutil

import (
	"database/sql"
	"log/slog"
	"strings"
	"testing"

	"github.com/alexanderramin/mindcanvas/internal/db"
)

// NewTestDB opens a migrated in-memory store that is closed with the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

// NewTestUoW returns a unit of work on database whose statements and
// rollbacks show up in verbose test output.
func NewTestUoW(t *testing.T, database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database, db.WithTxLogger(NewTestLogger(t)))
}

// NewTestLogger returns a debug-level logger writing through t.Log.
func NewTestLogger(t *testing.T) *slog.Logger {
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
