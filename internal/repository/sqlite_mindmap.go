package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/mindcanvas/internal/db"
	"github.com/alexanderramin/mindcanvas/internal/domain"
	"github.com/alexanderramin/mindcanvas/internal/mindtree"
)

// mindMapColumns is the canonical SELECT column list for mind_maps.
const mindMapColumns = `id, name, view_scale, view_translate_x, view_translate_y, created_at, updated_at`

// SQLiteMindMapRepo implements MindMapRepo on SQLite. It accepts a DBTX so
// it can be scoped to a transaction.
type SQLiteMindMapRepo struct {
	db db.DBTX
}

// NewSQLiteMindMapRepo creates a new SQLiteMindMapRepo.
func NewSQLiteMindMapRepo(conn db.DBTX) *SQLiteMindMapRepo {
	return &SQLiteMindMapRepo{db: conn}
}

// Create inserts the map row and, when m.Root is set, its tree. Run it
// inside a transaction to make both writes atomic.
func (r *SQLiteMindMapRepo) Create(ctx context.Context, m *domain.MindMap) error {
	query := `INSERT INTO mind_maps (id, name, view_scale, view_translate_x, view_translate_y, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.Name,
		viewportScale(m.Viewport),
		m.Viewport.TranslateX,
		m.Viewport.TranslateY,
		formatTime(m.CreatedAt),
		formatTime(m.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting mind map: %w", err)
	}
	if m.Root == nil {
		return nil
	}
	return r.insertTree(ctx, m.ID, m.Root)
}

// GetByID loads the map row and its tree.
func (r *SQLiteMindMapRepo) GetByID(ctx context.Context, id string) (*domain.MindMap, error) {
	query := `SELECT ` + mindMapColumns + ` FROM mind_maps WHERE id = ?`
	m, err := scanMindMap(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	root, err := r.LoadTree(ctx, id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	m.Root = root
	return m, nil
}

// List returns every map, most recently updated first, without trees.
func (r *SQLiteMindMapRepo) List(ctx context.Context) ([]MindMapSummary, error) {
	query := `SELECT m.id, m.name, m.view_scale, m.view_translate_x, m.view_translate_y,
			m.created_at, m.updated_at,
			(SELECT COUNT(*) FROM mind_nodes n WHERE n.map_id = m.id)
		FROM mind_maps m
		ORDER BY m.updated_at DESC, m.name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing mind maps: %w", err)
	}
	defer rows.Close()

	var out []MindMapSummary
	for rows.Next() {
		var s MindMapSummary
		var createdAt, updatedAt string
		if err := rows.Scan(
			&s.Map.ID, &s.Map.Name,
			&s.Map.Viewport.Scale, &s.Map.Viewport.TranslateX, &s.Map.Viewport.TranslateY,
			&createdAt, &updatedAt,
			&s.NodeCount,
		); err != nil {
			return nil, fmt.Errorf("scanning mind map row: %w", err)
		}
		if err := populateTimes(&s.Map, createdAt, updatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating mind maps: %w", err)
	}
	return out, nil
}

// Rename changes a map's name.
func (r *SQLiteMindMapRepo) Rename(ctx context.Context, id, name string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE mind_maps SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("renaming mind map: %w", err)
	}
	return expectAffected(res, "mind map")
}

// Touch writes the viewport and updated_at of m.
func (r *SQLiteMindMapRepo) Touch(ctx context.Context, m *domain.MindMap) error {
	query := `UPDATE mind_maps SET view_scale = ?, view_translate_x = ?, view_translate_y = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		viewportScale(m.Viewport),
		m.Viewport.TranslateX,
		m.Viewport.TranslateY,
		formatTime(m.UpdatedAt),
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("updating mind map: %w", err)
	}
	return expectAffected(res, "mind map")
}

// Delete removes a map; its nodes cascade.
func (r *SQLiteMindMapRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM mind_maps WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting mind map: %w", err)
	}
	return expectAffected(res, "mind map")
}

// SaveTree replaces every stored node of mapID with the tree under root.
func (r *SQLiteMindMapRepo) SaveTree(ctx context.Context, mapID string, root *domain.MindNode) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM mind_nodes WHERE map_id = ?`, mapID); err != nil {
		return fmt.Errorf("clearing mind nodes: %w", err)
	}
	return r.insertTree(ctx, mapID, root)
}

// insertTree writes nodes in pre-order so every parent row exists before its
// children reference it.
func (r *SQLiteMindMapRepo) insertTree(ctx context.Context, mapID string, root *domain.MindNode) error {
	query := `INSERT INTO mind_nodes (map_id, id, parent_id, title, x, y, order_index)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	var insertErr error
	mindtree.Walk(root, func(n, parent *domain.MindNode, index int) {
		if insertErr != nil {
			return
		}
		parentID := ""
		if parent != nil {
			parentID = parent.ID
		}
		_, err := r.db.ExecContext(ctx, query,
			mapID, n.ID, nullableString(parentID), n.Title, n.X, n.Y, index)
		if err != nil {
			insertErr = fmt.Errorf("inserting mind node %s: %w", n.ID, err)
		}
	})
	return insertErr
}

type nodeRow struct {
	node     *domain.MindNode
	parentID sql.NullString
}

// LoadTree rebuilds the tree of mapID. Leaves come back with nil Children.
func (r *SQLiteMindMapRepo) LoadTree(ctx context.Context, mapID string) (*domain.MindNode, error) {
	query := `SELECT id, parent_id, title, x, y FROM mind_nodes
		WHERE map_id = ?
		ORDER BY order_index, rowid`
	rows, err := r.db.QueryContext(ctx, query, mapID)
	if err != nil {
		return nil, fmt.Errorf("loading mind nodes: %w", err)
	}
	defer rows.Close()

	var all []nodeRow
	byID := make(map[string]*domain.MindNode)
	for rows.Next() {
		n := &domain.MindNode{}
		var row nodeRow
		if err := rows.Scan(&n.ID, &row.parentID, &n.Title, &n.X, &n.Y); err != nil {
			return nil, fmt.Errorf("scanning mind node row: %w", err)
		}
		row.node = n
		all = append(all, row)
		byID[n.ID] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating mind nodes: %w", err)
	}

	var root *domain.MindNode
	for _, row := range all {
		if !row.parentID.Valid {
			root = row.node
			continue
		}
		parent, ok := byID[row.parentID.String]
		if !ok {
			return nil, fmt.Errorf("mind node %s references missing parent %s", row.node.ID, row.parentID.String)
		}
		parent.Children = append(parent.Children, row.node)
	}
	if root == nil {
		return nil, fmt.Errorf("mind map %s root: %w", mapID, ErrNotFound)
	}
	return root, nil
}

func scanMindMap(row *sql.Row) (*domain.MindMap, error) {
	var m domain.MindMap
	var createdAt, updatedAt string
	err := row.Scan(
		&m.ID, &m.Name,
		&m.Viewport.Scale, &m.Viewport.TranslateX, &m.Viewport.TranslateY,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("mind map: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning mind map: %w", err)
	}
	if err := populateTimes(&m, createdAt, updatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func populateTimes(m *domain.MindMap, createdAt, updatedAt string) error {
	var err error
	if m.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return err
	}
	if m.UpdatedAt, err = parseTime(updatedAt, "updated_at"); err != nil {
		return err
	}
	return nil
}

func viewportScale(v domain.Viewport) float64 {
	if v.Scale <= 0 {
		return 1
	}
	return v.Scale
}
