package repository

import (
	"context"

	"github.com/alexanderramin/mindcanvas/internal/domain"
)

// MindMapSummary is a map row joined with its node count, used for listings
// that don't need the tree.
type MindMapSummary struct {
	Map       domain.MindMap
	NodeCount int
}

type MindMapRepo interface {
	Create(ctx context.Context, m *domain.MindMap) error
	GetByID(ctx context.Context, id string) (*domain.MindMap, error)
	List(ctx context.Context) ([]MindMapSummary, error)
	Rename(ctx context.Context, id, name string) error
	Touch(ctx context.Context, m *domain.MindMap) error
	Delete(ctx context.Context, id string) error

	SaveTree(ctx context.Context, mapID string, root *domain.MindNode) error
	LoadTree(ctx context.Context, mapID string) (*domain.MindNode, error)
}
