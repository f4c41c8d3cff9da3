package mindtree

import "github.com/alexanderramin/mindcanvas/internal/domain"

// Edge connects a parent to one of its children. ID is "parentID-childID".
type Edge struct {
	ID   string
	From *domain.MindNode
	To   *domain.MindNode
}

// Walk visits every node in pre-order. parent is nil for the root; index is
// the node's position among its siblings.
func Walk(root *domain.MindNode, fn func(n, parent *domain.MindNode, index int)) {
	if root == nil {
		return
	}
	walk(root, nil, 0, fn)
}

func walk(n, parent *domain.MindNode, index int, fn func(n, parent *domain.MindNode, index int)) {
	fn(n, parent, index)
	for i, c := range n.Children {
		walk(c, n, i, fn)
	}
}

// Flatten returns all nodes in pre-order.
func Flatten(root *domain.MindNode) []*domain.MindNode {
	var out []*domain.MindNode
	Walk(root, func(n, _ *domain.MindNode, _ int) {
		out = append(out, n)
	})
	return out
}

// Edges returns one edge per parent/child pair, in pre-order of the child.
func Edges(root *domain.MindNode) []Edge {
	var out []Edge
	Walk(root, func(n, parent *domain.MindNode, _ int) {
		if parent == nil {
			return
		}
		out = append(out, Edge{ID: parent.ID + "-" + n.ID, From: parent, To: n})
	})
	return out
}

// ParentOf returns the parent of the node with id, or nil when id is the root
// or absent. The tree keeps no back-references, so this is a full traversal.
func ParentOf(root *domain.MindNode, id string) *domain.MindNode {
	var found *domain.MindNode
	Walk(root, func(n, parent *domain.MindNode, _ int) {
		if found == nil && parent != nil && n.ID == id {
			found = parent
		}
	})
	return found
}
