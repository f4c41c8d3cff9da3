package domain

// Placeholder titles used when the user has not typed anything yet.
const (
	NewNodeTitle      = "New node"
	UntitledNodeTitle = "Untitled node"
)

// MindNode is a titled, positioned element of a mind map.
//
// Children owns its nodes exclusively. A nil Children slice means the node is
// a leaf; an empty non-nil slice never survives a delete (see
// mindtree.RemoveNodeByID), so consumers may treat both alike.
type MindNode struct {
	ID       string
	Title    string
	X        float64
	Y        float64
	Children []*MindNode
}

// IsLeaf reports whether the node has no children.
func (n *MindNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// ChildCount returns the number of direct children.
func (n *MindNode) ChildCount() int {
	return len(n.Children)
}
