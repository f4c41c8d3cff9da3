package formatter

import (
	"strings"

	"github.com/alexanderramin/mindcanvas/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// TreeItem represents a single node in a tree display.
type TreeItem struct {
	Title    string
	Level    int
	IsLast   bool
	Open     []bool // Open[i] reports whether the ancestor at level i+1 has later siblings
	Selected bool
	Detail   string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "
)

// MindTreeItems flattens root into display items in pre-order, with the
// node's coordinates as detail.
func MindTreeItems(root *domain.MindNode, selectedID string) []TreeItem {
	var items []TreeItem
	var visit func(n *domain.MindNode, level int, last bool, open []bool)
	visit = func(n *domain.MindNode, level int, last bool, open []bool) {
		items = append(items, TreeItem{
			Title:    n.Title,
			Level:    level,
			IsLast:   last,
			Open:     open,
			Selected: n.ID == selectedID,
			Detail:   Coord(n.X, n.Y),
		})
		var childOpen []bool
		if level > 0 {
			childOpen = append(append([]bool(nil), open...), !last)
		}
		for i, c := range n.Children {
			visit(c, level+1, i == len(n.Children)-1, childOpen)
		}
	}
	if root != nil {
		visit(root, 0, true, nil)
	}
	return items
}

// RenderTree renders TreeItems as an indented tree using box-drawing
// connectors, with detail badges right-aligned in a shared column.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	contents := make([]string, len(items))
	maxWidth := 0

	for idx, item := range items {
		var prefix strings.Builder
		if item.Level > 0 {
			for i := 0; i < item.Level-1; i++ {
				if i < len(item.Open) && item.Open[i] {
					prefix.WriteString(treePipe)
				} else {
					prefix.WriteString(treeBlank)
				}
			}
			if item.IsLast {
				prefix.WriteString(treeCorner)
			} else {
				prefix.WriteString(treeBranch)
			}
		}

		title := item.Title
		switch {
		case item.Selected:
			title = StyleSelected.Render("▶ " + title)
		case item.Level == 0:
			title = Bold(title)
		}

		contents[idx] = StyleDim.Render(prefix.String()) + title
		maxWidth = max(maxWidth, lipgloss.Width(contents[idx]))
	}

	var b strings.Builder
	for idx, item := range items {
		b.WriteString(contents[idx])
		if item.Detail != "" {
			pad := maxWidth - lipgloss.Width(contents[idx])
			b.WriteString(strings.Repeat(" ", pad) + "  " + StyleBlue.Render(item.Detail))
		}
		b.WriteString("\n")
	}
	return b.String()
}
