// Package mindtree holds the tree utilities shared by the interaction layer,
// the renderer and persistence. All functions mutate or read the tree in
// place; none of them validate id uniqueness.
package mindtree

import (
	"github.com/alexanderramin/mindcanvas/internal/domain"
	"github.com/google/uuid"
)

// Layout offsets applied to a freshly added child.
const (
	ChildOffsetX = 200.0
	ChildSpacing = 80.0
	ChildOffsetY = -40.0
)

// FindNodeByID returns the first node with the given id in pre-order, or nil.
func FindNodeByID(root *domain.MindNode, id string) *domain.MindNode {
	if root == nil {
		return nil
	}
	if root.ID == id {
		return root
	}
	for _, c := range root.Children {
		if found := FindNodeByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

// RemoveNodeByID detaches the node with targetID, together with its subtree,
// from its parent. The root is never removed. A parent left with no children
// gets a nil Children slice.
func RemoveNodeByID(root *domain.MindNode, targetID string) {
	if root == nil || root.ID == targetID {
		return
	}
	removeFrom(root, targetID)
}

func removeFrom(n *domain.MindNode, targetID string) bool {
	for i, c := range n.Children {
		if c.ID != targetID {
			continue
		}
		n.Children = append(n.Children[:i], n.Children[i+1:]...)
		if len(n.Children) == 0 {
			n.Children = nil
		}
		return true
	}
	for _, c := range n.Children {
		if removeFrom(c, targetID) {
			return true
		}
	}
	return false
}

// AddChildNode appends a placeholder child under parentID and returns it.
// Successive children fan out vertically around the parent's Y.
// Returns nil without mutating anything when parentID is not in the tree.
func AddChildNode(root *domain.MindNode, parentID string) *domain.MindNode {
	parent := FindNodeByID(root, parentID)
	if parent == nil {
		return nil
	}

	index := float64(len(parent.Children))
	child := &domain.MindNode{
		ID:    GenID(),
		Title: domain.NewNodeTitle,
		X:     parent.X + ChildOffsetX,
		Y:     parent.Y + index*ChildSpacing + ChildOffsetY,
	}
	parent.Children = append(parent.Children, child)
	return child
}

// GenID returns a node id made of a time-ordered UUIDv7, whose leading bits
// are the current timestamp and the rest random.
func GenID() string {
	return "node-" + uuid.Must(uuid.NewV7()).String()
}
