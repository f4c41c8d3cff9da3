package exchange

import (
	"time"

	"github.com/alexanderramin/mindcanvas/internal/domain"
	"github.com/google/uuid"
)

// FromMindMap builds a document from m.
func FromMindMap(m *domain.MindMap) *Document {
	doc := &Document{
		Name: m.Name,
		Root: fromNode(m.Root),
	}
	if m.Viewport.Scale > 0 {
		doc.Viewport = &ViewportDoc{
			Scale:      m.Viewport.Scale,
			TranslateX: m.Viewport.TranslateX,
			TranslateY: m.Viewport.TranslateY,
		}
	}
	return doc
}

func fromNode(n *domain.MindNode) *NodeDocument {
	if n == nil {
		return nil
	}
	out := &NodeDocument{ID: n.ID, Title: n.Title, X: n.X, Y: n.Y}
	for _, c := range n.Children {
		out.Children = append(out.Children, fromNode(c))
	}
	return out
}

// ToMindMap converts a validated document into a new map with a fresh id.
// Call Validate first; ToMindMap assumes the document is valid.
func ToMindMap(doc *Document) *domain.MindMap {
	now := time.Now().UTC()
	m := &domain.MindMap{
		ID:        uuid.New().String(),
		Name:      doc.Name,
		Root:      toNode(doc.Root),
		Viewport:  domain.DefaultViewport(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if doc.Viewport != nil && doc.Viewport.Scale > 0 {
		m.Viewport = domain.Viewport{
			Scale:      doc.Viewport.Scale,
			TranslateX: doc.Viewport.TranslateX,
			TranslateY: doc.Viewport.TranslateY,
		}
	}
	return m
}

// toNode keeps leaves with nil Children, matching trees built by the editor.
func toNode(n *NodeDocument) *domain.MindNode {
	out := &domain.MindNode{ID: n.ID, Title: n.Title, X: n.X, Y: n.Y}
	for _, c := range n.Children {
		out.Children = append(out.Children, toNode(c))
	}
	return out
}
