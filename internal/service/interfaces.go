package service

import (
	"context"
	"io"

	"github.com/alexanderramin/mindcanvas/internal/domain"
	"github.com/alexanderramin/mindcanvas/internal/exchange"
	"github.com/alexanderramin/mindcanvas/internal/repository"
)

type MindMapService interface {
	// Create stores a new map. A nil root starts the map with a single node
	// titled after the map.
	Create(ctx context.Context, name string, root *domain.MindNode) (*domain.MindMap, error)
	Get(ctx context.Context, id string) (*domain.MindMap, error)
	// Resolve finds a map by exact id, case-insensitive name, or unique id
	// prefix, in that order.
	Resolve(ctx context.Context, ref string) (*domain.MindMap, error)
	List(ctx context.Context) ([]repository.MindMapSummary, error)
	// Save replaces the stored tree and viewport of m atomically.
	Save(ctx context.Context, m *domain.MindMap) error
	Rename(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, id string, format exchange.Format, w io.Writer) error
	Import(ctx context.Context, path string) (*ImportResult, error)
}

// ImportResult holds the outcome of a map import.
type ImportResult struct {
	Map       *domain.MindMap
	NodeCount int
}
