package editor

import (
	"math"

	"github.com/alexanderramin/mindcanvas/internal/domain"
	"github.com/alexanderramin/mindcanvas/internal/input"
	"github.com/alexanderramin/mindcanvas/internal/mindtree"
	"github.com/charmbracelet/lipgloss"
)

// Geometry describes how the canvas maps onto a grid of character cells.
// Screen coordinates are in pixels; one cell is CellWidth x CellHeight
// pixels. Node boxes and menu rows have a fixed size in cells regardless of
// zoom, because terminal text cannot scale.
type Geometry struct {
	CellWidth  float64
	CellHeight float64
	NodeHeight float64 // cells
	NodePadX   float64 // cells added to the title width (border + padding)
	MenuWidth  float64 // cells
}

// DefaultGeometry returns the geometry of a typical terminal font.
func DefaultGeometry() Geometry {
	return Geometry{
		CellWidth:  8,
		CellHeight: 16,
		NodeHeight: 3,
		NodePadX:   4,
		MenuWidth:  18,
	}
}

func (g Geometry) withDefaults() Geometry {
	d := DefaultGeometry()
	if g.CellWidth <= 0 {
		g.CellWidth = d.CellWidth
	}
	if g.CellHeight <= 0 {
		g.CellHeight = d.CellHeight
	}
	if g.NodeHeight <= 0 {
		g.NodeHeight = d.NodeHeight
	}
	if g.NodePadX <= 0 {
		g.NodePadX = d.NodePadX
	}
	if g.MenuWidth <= 0 {
		g.MenuWidth = d.MenuWidth
	}
	return g
}

// Cell converts a screen point to the cell containing it.
func (g Geometry) Cell(x, y float64) (col, row int) {
	return int(math.Floor(x / g.CellWidth)), int(math.Floor(y / g.CellHeight))
}

// Screen converts a cell to the screen point of its top-left corner.
func (g Geometry) Screen(col, row int) (x, y float64) {
	return float64(col) * g.CellWidth, float64(row) * g.CellHeight
}

// Rect is a cell-aligned rectangle.
type Rect struct {
	Col, Row      int
	Width, Height int
}

// Contains reports whether the cell lies inside r.
func (r Rect) Contains(col, row int) bool {
	return col >= r.Col && col < r.Col+r.Width && row >= r.Row && row < r.Row+r.Height
}

// NodeRect returns the cell rectangle of node's box. The node position is
// the box's top-left corner. While a node is edited its box grows to fit the
// edit buffer plus a cursor cell.
func (e *Editor) NodeRect(node *domain.MindNode) Rect {
	x, y := e.View.CanvasToScreen(node.X, node.Y)
	col, row := e.geo.Cell(x, y)
	width := lipgloss.Width(node.Title)
	if node.ID == e.Interaction.EditingID() {
		width = max(width, lipgloss.Width(e.Interaction.EditTitle())+1)
	}
	return Rect{
		Col:    col,
		Row:    row,
		Width:  width + int(e.geo.NodePadX),
		Height: int(e.geo.NodeHeight),
	}
}

// MenuRect returns the cell rectangle of the open context menu.
func (e *Editor) MenuRect() (Rect, bool) {
	menu := e.Interaction.ContextMenu()
	if !menu.Visible {
		return Rect{}, false
	}
	col, row := e.geo.Cell(menu.X, menu.Y)
	return Rect{Col: col, Row: row, Width: int(e.geo.MenuWidth), Height: len(MenuItems)}, true
}

// HitTest resolves the element under a screen point. The open menu wins over
// nodes, and nodes drawn later win over earlier ones.
func (e *Editor) HitTest(x, y float64) input.Target {
	col, row := e.geo.Cell(x, y)

	if r, ok := e.MenuRect(); ok && r.Contains(col, row) {
		return input.Target{Kind: input.TargetMenu}
	}

	nodes := mindtree.Flatten(e.Root())
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if e.NodeRect(n).Contains(col, row) {
			t := input.Target{Kind: input.TargetNode, NodeID: n.ID}
			if n.ID == e.Interaction.EditingID() {
				t.Editable = true
			}
			return t
		}
	}
	return input.Target{Kind: input.TargetCanvas}
}

// MenuItemAt returns the menu action whose row contains the screen point.
func (e *Editor) MenuItemAt(x, y float64) (MenuAction, bool) {
	r, ok := e.MenuRect()
	if !ok {
		return 0, false
	}
	col, row := e.geo.Cell(x, y)
	if !r.Contains(col, row) {
		return 0, false
	}
	return MenuItems[row-r.Row].Action, true
}
