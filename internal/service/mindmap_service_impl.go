package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/alexanderramin/mindcanvas/internal/db"
	"github.com/alexanderramin/mindcanvas/internal/domain"
	"github.com/alexanderramin/mindcanvas/internal/exchange"
	"github.com/alexanderramin/mindcanvas/internal/mindtree"
	"github.com/alexanderramin/mindcanvas/internal/repository"
	"github.com/google/uuid"
)

// Position of the root node of a freshly created empty map.
const (
	newRootX = 400
	newRootY = 240
)

// ErrNameRequired is returned when creating or renaming a map without a name.
var ErrNameRequired = errors.New("map name is required")

type mindMapService struct {
	maps     repository.MindMapRepo
	uow      db.UnitOfWork
	observer MapObserver
}

func NewMindMapService(maps repository.MindMapRepo, uow db.UnitOfWork, observers ...MapObserver) MindMapService {
	return &mindMapService{
		maps:     maps,
		uow:      uow,
		observer: joinObservers(observers),
	}
}

func (s *mindMapService) Create(ctx context.Context, name string, root *domain.MindNode) (m *domain.MindMap, err error) {
	trace := startOp(OpCreate, "")
	defer func() { s.finish(ctx, trace, err) }()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if root == nil {
		root = &domain.MindNode{ID: mindtree.GenID(), Title: name, X: newRootX, Y: newRootY}
	}

	now := time.Now().UTC()
	m = &domain.MindMap{
		ID:        uuid.New().String(),
		Name:      name,
		Root:      root,
		Viewport:  domain.DefaultViewport(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	trace.event.MapID = m.ID
	trace.event.NodeCount = m.NodeCount()
	trace.attr(slog.String("name", name))

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteMindMapRepo(tx).Create(ctx, m)
	})
	if err != nil {
		return nil, fmt.Errorf("creating map: %w", err)
	}
	return m, nil
}

func (s *mindMapService) Get(ctx context.Context, id string) (*domain.MindMap, error) {
	return s.maps.GetByID(ctx, id)
}

func (s *mindMapService) Resolve(ctx context.Context, ref string) (*domain.MindMap, error) {
	if ref == "" {
		return nil, fmt.Errorf("map ID is required")
	}

	summaries, err := s.maps.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, sm := range summaries {
		if sm.Map.ID == ref {
			return s.maps.GetByID(ctx, sm.Map.ID)
		}
	}

	var matches []string
	for _, sm := range summaries {
		if strings.EqualFold(sm.Map.Name, ref) {
			matches = append(matches, sm.Map.ID)
		}
	}
	if len(matches) == 0 {
		for _, sm := range summaries {
			if strings.HasPrefix(sm.Map.ID, ref) {
				matches = append(matches, sm.Map.ID)
			}
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("map %q: %w", ref, repository.ErrNotFound)
	case 1:
		return s.maps.GetByID(ctx, matches[0])
	default:
		return nil, fmt.Errorf("map reference %q is ambiguous (%d matches)", ref, len(matches))
	}
}

func (s *mindMapService) List(ctx context.Context) ([]repository.MindMapSummary, error) {
	return s.maps.List(ctx)
}

func (s *mindMapService) Save(ctx context.Context, m *domain.MindMap) (err error) {
	trace := startOp(OpSave, m.ID)
	trace.event.NodeCount = m.NodeCount()
	defer func() { s.finish(ctx, trace, err) }()

	if m.Root == nil {
		return fmt.Errorf("saving map %s: root is required", m.DisplayID())
	}
	m.UpdatedAt = time.Now().UTC()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txMaps := repository.NewSQLiteMindMapRepo(tx)
		if err := txMaps.Touch(ctx, m); err != nil {
			return err
		}
		return txMaps.SaveTree(ctx, m.ID, m.Root)
	})
	if err != nil {
		return fmt.Errorf("saving map %s: %w", m.DisplayID(), err)
	}
	return nil
}

func (s *mindMapService) Rename(ctx context.Context, id, name string) (err error) {
	trace := startOp(OpRename, id)
	trace.attr(slog.String("name", name))
	defer func() { s.finish(ctx, trace, err) }()

	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}
	return s.maps.Rename(ctx, id, name)
}

func (s *mindMapService) Delete(ctx context.Context, id string) (err error) {
	trace := startOp(OpDelete, id)
	defer func() { s.finish(ctx, trace, err) }()

	return s.maps.Delete(ctx, id)
}

func (s *mindMapService) Export(ctx context.Context, id string, format exchange.Format, w io.Writer) (err error) {
	trace := startOp(OpExport, id)
	trace.attr(slog.String("format", string(format)))
	defer func() { s.finish(ctx, trace, err) }()

	m, err := s.maps.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m.Root == nil {
		return fmt.Errorf("map %s has no nodes", m.DisplayID())
	}
	trace.event.NodeCount = m.NodeCount()

	out, err := exchange.Marshal(exchange.FromMindMap(m), format)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func (s *mindMapService) Import(ctx context.Context, path string) (result *ImportResult, err error) {
	trace := startOp(OpImport, "")
	trace.attr(slog.String("path", path))
	defer func() { s.finish(ctx, trace, err) }()

	doc, err := exchange.LoadDocument(path)
	if err != nil {
		return nil, fmt.Errorf("reading map file: %w", err)
	}
	if errs := exchange.Validate(doc); len(errs) > 0 {
		return nil, fmt.Errorf("invalid map file: %w", errors.Join(errs...))
	}

	m := exchange.ToMindMap(doc)
	trace.event.MapID = m.ID
	trace.event.NodeCount = m.NodeCount()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteMindMapRepo(tx).Create(ctx, m)
	})
	if err != nil {
		return nil, fmt.Errorf("importing map: %w", err)
	}
	return &ImportResult{Map: m, NodeCount: m.NodeCount()}, nil
}
