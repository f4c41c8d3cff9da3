package testutil

import (
	"time"

	"github.com/alexanderramin/mindcanvas/internal/domain"
	"github.com/alexanderramin/mindcanvas/internal/sample"
	"github.com/google/uuid"
)

// MapOption customises a test map.
type MapOption func(*domain.MindMap)

func WithRoot(root *domain.MindNode) MapOption {
	return func(m *domain.MindMap) {
		m.Root = root
	}
}

func WithViewport(scale, tx, ty float64) MapOption {
	return func(m *domain.MindMap) {
		m.Viewport = domain.Viewport{Scale: scale, TranslateX: tx, TranslateY: ty}
	}
}

func WithUpdatedAt(t time.Time) MapOption {
	return func(m *domain.MindMap) {
		m.UpdatedAt = t
	}
}

// NewTestMindMap returns a map holding the sample tree unless WithRoot is
// given. Timestamps are truncated to seconds to survive RFC3339 storage.
func NewTestMindMap(name string, opts ...MapOption) *domain.MindMap {
	now := time.Now().UTC().Truncate(time.Second)
	m := &domain.MindMap{
		ID:        uuid.New().String(),
		Name:      name,
		Root:      sample.MindMap(),
		Viewport:  domain.DefaultViewport(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ScenarioTree builds root -> A -> (B, C).
func ScenarioTree() *domain.MindNode {
	return &domain.MindNode{
		ID: "root", Title: "Root", X: 0, Y: 0,
		Children: []*domain.MindNode{
			{
				ID: "A", Title: "A", X: 200, Y: 100,
				Children: []*domain.MindNode{
					{ID: "B", Title: "B", X: 400, Y: 60},
					{ID: "C", Title: "C", X: 400, Y: 140},
				},
			},
		},
	}
}
