package sample

import (
	"testing"

	"github.com/alexanderramin/mindcanvas/internal/domain"
	"github.com/alexanderramin/mindcanvas/internal/mindtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func depth(n *domain.MindNode) int {
	d := 0
	for _, c := range n.Children {
		if cd := depth(c) + 1; cd > d {
			d = cd
		}
	}
	return d
}

func TestMindMap_Shape(t *testing.T) {
	root := MindMap()
	require.Len(t, root.Children, 5)

	var depths []int
	for _, branch := range root.Children {
		depths = append(depths, depth(branch))
	}
	assert.Equal(t, []int{1, 2, 1, 0, 1}, depths)
	assert.Nil(t, mindtree.FindNodeByID(root, "cost").Children, "leaf branch has absent children")
}

func TestMindMap_UniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for _, n := range mindtree.Flatten(MindMap()) {
		assert.False(t, seen[n.ID], "duplicate id %s", n.ID)
		seen[n.ID] = true
	}
}

func TestMindMap_FreshCopy(t *testing.T) {
	a := MindMap()
	a.Children[0].Title = "changed"
	mindtree.RemoveNodeByID(a, "tech")

	b := MindMap()
	assert.Equal(t, "Market demand", b.Children[0].Title)
	assert.NotNil(t, mindtree.FindNodeByID(b, "tech"))
}
