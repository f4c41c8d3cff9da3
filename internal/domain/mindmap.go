package domain

import "time"

// MindMap is a named, persisted node tree.
type MindMap struct {
	ID        string
	Name      string
	Root      *MindNode
	Viewport  Viewport
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Viewport is the zoom and pan a map was last viewed with.
type Viewport struct {
	Scale      float64
	TranslateX float64
	TranslateY float64
}

// DefaultViewport is the viewport of a map that was never opened.
func DefaultViewport() Viewport {
	return Viewport{Scale: 1}
}

// DisplayID returns the best short identifier for display, truncating ID to
// 8 characters.
func (m *MindMap) DisplayID() string {
	if len(m.ID) >= 8 {
		return m.ID[:8]
	}
	return m.ID
}

// NodeCount returns the number of nodes in the map, including the root.
func (m *MindMap) NodeCount() int {
	if m.Root == nil {
		return 0
	}
	return countNodes(m.Root)
}

func countNodes(n *MindNode) int {
	total := 1
	for _, c := range n.Children {
		total += countNodes(c)
	}
	return total
}
