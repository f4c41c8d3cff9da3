package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMindMap_DisplayID(t *testing.T) {
	m := &MindMap{ID: "0191e0c8-7f3a-7c2e-9a41-2c5d8e7b1f00"}
	assert.Equal(t, "0191e0c8", m.DisplayID())

	short := &MindMap{ID: "abc"}
	assert.Equal(t, "abc", short.DisplayID())
}

func TestMindMap_NodeCount(t *testing.T) {
	assert.Equal(t, 0, (&MindMap{}).NodeCount())

	root := &MindNode{ID: "root", Children: []*MindNode{
		{ID: "a", Children: []*MindNode{{ID: "b"}, {ID: "c"}}},
		{ID: "d"},
	}}
	assert.Equal(t, 5, (&MindMap{Root: root}).NodeCount())
}

func TestMindNode_IsLeaf(t *testing.T) {
	assert.True(t, (&MindNode{}).IsLeaf())
	assert.True(t, (&MindNode{Children: []*MindNode{}}).IsLeaf())
	assert.False(t, (&MindNode{Children: []*MindNode{{ID: "x"}}}).IsLeaf())
}
