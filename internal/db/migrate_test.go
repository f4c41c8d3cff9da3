package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesTablesAndIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"mind_maps", "mind_nodes"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
	for _, idx := range []string{"idx_mind_nodes_parent", "idx_mind_nodes_root"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ViewportColumns(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO mind_maps (id, name, created_at, updated_at) VALUES ('m1', 'Map', 'now', 'now')`)
	require.NoError(t, err)

	var scale, tx, ty float64
	err = db.QueryRow(`SELECT view_scale, view_translate_x, view_translate_y FROM mind_maps WHERE id = 'm1'`).Scan(&scale, &tx, &ty)
	require.NoError(t, err)
	assert.Equal(t, 1.0, scale)
	assert.Zero(t, tx)
	assert.Zero(t, ty)
}

func TestMindNodes_CascadeOnMapDelete(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO mind_maps (id, name, created_at, updated_at) VALUES ('m1', 'Map', 'now', 'now')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO mind_nodes (map_id, id, parent_id, title) VALUES ('m1', 'root', NULL, 'Root')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO mind_nodes (map_id, id, parent_id, title) VALUES ('m1', 'a', 'root', 'A')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM mind_maps WHERE id = 'm1'`)
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM mind_nodes`).Scan(&count))
	assert.Zero(t, count)
}

func TestMindNodes_SingleRootPerMap(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO mind_maps (id, name, created_at, updated_at) VALUES ('m1', 'Map', 'now', 'now')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO mind_nodes (map_id, id, parent_id, title) VALUES ('m1', 'r1', NULL, 'Root')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO mind_nodes (map_id, id, parent_id, title) VALUES ('m1', 'r2', NULL, 'Second root')`)
	assert.Error(t, err)
}
