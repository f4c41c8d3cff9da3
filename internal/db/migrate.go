package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS mind_maps (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS mind_nodes (
		map_id      TEXT NOT NULL REFERENCES mind_maps(id) ON DELETE CASCADE,
		id          TEXT NOT NULL,
		parent_id   TEXT,
		title       TEXT NOT NULL,
		x           REAL NOT NULL DEFAULT 0,
		y           REAL NOT NULL DEFAULT 0,
		order_index INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (map_id, id),
		FOREIGN KEY (map_id, parent_id) REFERENCES mind_nodes(map_id, id) ON DELETE CASCADE
	)`,

	`CREATE INDEX IF NOT EXISTS idx_mind_nodes_parent ON mind_nodes(map_id, parent_id)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_mind_nodes_root ON mind_nodes(map_id) WHERE parent_id IS NULL`,

	// Viewport restored when a map is reopened.
	`ALTER TABLE mind_maps ADD COLUMN view_scale REAL NOT NULL DEFAULT 1`,
	`ALTER TABLE mind_maps ADD COLUMN view_translate_x REAL NOT NULL DEFAULT 0`,
	`ALTER TABLE mind_maps ADD COLUMN view_translate_y REAL NOT NULL DEFAULT 0`,
}
