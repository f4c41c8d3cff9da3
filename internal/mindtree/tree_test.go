package mindtree

import (
	"strings"
	"testing"

	"github.com/alexanderramin/mindcanvas/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioTree builds root -> A -> (B, C).
func scenarioTree() *domain.MindNode {
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

func childIDs(n *domain.MindNode) []string {
	var ids []string
	for _, c := range n.Children {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestFindNodeByID(t *testing.T) {
	root := scenarioTree()

	assert.Same(t, root, FindNodeByID(root, "root"))
	got := FindNodeByID(root, "C")
	require.NotNil(t, got)
	assert.Equal(t, "C", got.Title)
	assert.Nil(t, FindNodeByID(root, "missing"))
	assert.Nil(t, FindNodeByID(nil, "root"))
}

func TestFindNodeByID_FirstMatchInPreOrder(t *testing.T) {
	dup1 := &domain.MindNode{ID: "dup", Title: "first"}
	dup2 := &domain.MindNode{ID: "dup", Title: "second"}
	root := &domain.MindNode{ID: "root", Children: []*domain.MindNode{
		{ID: "x", Children: []*domain.MindNode{dup1}},
		dup2,
	}}

	assert.Same(t, dup1, FindNodeByID(root, "dup"))
}

func TestRemoveNodeByID_RootIsNoop(t *testing.T) {
	root := scenarioTree()
	RemoveNodeByID(root, "root")

	assert.Len(t, Flatten(root), 4)
	assert.Equal(t, []string{"A"}, childIDs(root))
}

func TestRemoveNodeByID_RemovesSubtree(t *testing.T) {
	root := scenarioTree()
	RemoveNodeByID(root, "A")

	assert.Nil(t, FindNodeByID(root, "A"))
	assert.Nil(t, FindNodeByID(root, "B"))
	assert.Nil(t, FindNodeByID(root, "C"))
	assert.Nil(t, root.Children, "emptied children must be absent, not an empty slice")
}

func TestRemoveNodeByID_LastLeafClearsChildren(t *testing.T) {
	root := scenarioTree()
	a := FindNodeByID(root, "A")

	RemoveNodeByID(root, "B")
	require.NotNil(t, a.Children)
	assert.Equal(t, []string{"C"}, childIDs(a))

	RemoveNodeByID(root, "C")
	assert.Nil(t, a.Children)
	assert.True(t, a.IsLeaf())
}

func TestRemoveNodeByID_MissingIsNoop(t *testing.T) {
	root := scenarioTree()
	RemoveNodeByID(root, "nope")
	assert.Len(t, Flatten(root), 4)
}

func TestAddChildNode_Placement(t *testing.T) {
	root := scenarioTree()
	a := FindNodeByID(root, "A")

	d := AddChildNode(root, "A")
	require.NotNil(t, d)
	assert.Equal(t, domain.NewNodeTitle, d.Title)
	assert.Equal(t, a.X+200, d.X)
	assert.Equal(t, a.Y+2*80-40, d.Y)
	assert.Len(t, a.Children, 3)
	assert.Same(t, d, a.Children[2])
}

func TestAddChildNode_FirstChildCreatesSlice(t *testing.T) {
	leaf := &domain.MindNode{ID: "leaf", X: 10, Y: 50}

	first := AddChildNode(leaf, "leaf")
	require.NotNil(t, first)
	require.Len(t, leaf.Children, 1)
	assert.Equal(t, 10.0, first.Y)

	second := AddChildNode(leaf, "leaf")
	require.NotNil(t, second)
	assert.Equal(t, 90.0, second.Y)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestAddChildNode_MissingParent(t *testing.T) {
	root := scenarioTree()
	assert.Nil(t, AddChildNode(root, "missing"))
	assert.Len(t, Flatten(root), 4)
}

func TestScenario_AddThenRemove(t *testing.T) {
	root := scenarioTree()
	a := FindNodeByID(root, "A")

	d := AddChildNode(root, "A")
	require.NotNil(t, d)
	assert.Equal(t, a.Y+2*80-40, d.Y)

	RemoveNodeByID(root, "B")
	assert.Equal(t, []string{"C", d.ID}, childIDs(a))
}

func TestGenID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := GenID()
		assert.True(t, strings.HasPrefix(id, "node-"))
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
