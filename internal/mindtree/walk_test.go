package mindtree

import (
	"testing"

	"github.com/alexanderramin/mindcanvas/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten_PreOrder(t *testing.T) {
	root := scenarioTree()

	var ids []string
	for _, n := range Flatten(root) {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"root", "A", "B", "C"}, ids)
	assert.Empty(t, Flatten(nil))
}

func TestEdges(t *testing.T) {
	root := scenarioTree()

	edges := Edges(root)
	require.Len(t, edges, 3)
	assert.Equal(t, "root-A", edges[0].ID)
	assert.Equal(t, "A-B", edges[1].ID)
	assert.Equal(t, "A-C", edges[2].ID)
	assert.Same(t, root, edges[0].From)
	assert.Same(t, FindNodeByID(root, "C"), edges[2].To)
}

func TestEdges_ReflectMutation(t *testing.T) {
	root := scenarioTree()
	RemoveNodeByID(root, "A")
	assert.Empty(t, Edges(root))
}

func TestWalk_ParentAndIndex(t *testing.T) {
	root := scenarioTree()

	type visit struct {
		id, parent string
		index      int
	}
	var visits []visit
	Walk(root, func(n, parent *domain.MindNode, index int) {
		p := ""
		if parent != nil {
			p = parent.ID
		}
		visits = append(visits, visit{n.ID, p, index})
	})

	assert.Equal(t, []visit{
		{"root", "", 0},
		{"A", "root", 0},
		{"B", "A", 0},
		{"C", "A", 1},
	}, visits)
}

func TestParentOf(t *testing.T) {
	root := scenarioTree()

	assert.Nil(t, ParentOf(root, "root"))
	assert.Nil(t, ParentOf(root, "missing"))
	assert.Equal(t, "A", ParentOf(root, "C").ID)
	assert.Same(t, root, ParentOf(root, "A"))
}
