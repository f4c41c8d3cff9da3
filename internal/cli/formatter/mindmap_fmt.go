package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/mindcanvas/internal/domain"
	"github.com/alexanderramin/mindcanvas/internal/repository"
	"github.com/charmbracelet/lipgloss"
)

// FormatMapList renders stored maps as a table inside a bordered box.
func FormatMapList(maps []repository.MindMapSummary) string {
	if len(maps) == 0 {
		return Dim("No maps yet. Create one with 'mindcanvas new'.") + "\n"
	}

	headers := []string{"ID", "NAME", "NODES", "ZOOM", "UPDATED"}
	rows := make([][]string, 0, len(maps))
	for _, s := range maps {
		rows = append(rows, []string{
			TruncID(s.Map.ID),
			Bold(s.Map.Name),
			strconv.Itoa(s.NodeCount),
			Percent(s.Map.Viewport.Scale),
			HumanTimestamp(s.Map.UpdatedAt),
		})
	}
	return RenderBox("Mind maps", RenderTable(headers, rows))
}

// FormatMapShow renders a map's metadata beside its node tree.
func FormatMapShow(m *domain.MindMap) string {
	meta := []string{
		Header(m.Name),
		"",
		Dim("ID       ") + m.ID,
		Dim("Nodes    ") + strconv.Itoa(m.NodeCount()),
		Dim("Zoom     ") + Percent(m.Viewport.Scale),
		Dim("Pan      ") + Coord(m.Viewport.TranslateX, m.Viewport.TranslateY),
		Dim("Updated  ") + HumanTimestamp(m.UpdatedAt),
	}
	left := strings.Join(meta, "\n")

	right := Dim("(empty)")
	if m.Root != nil {
		right = strings.TrimRight(RenderTree(MindTreeItems(m.Root, "")), "\n")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().PaddingRight(4).Render(left),
		right,
	) + "\n"
}

// FormatSaved is the one-line confirmation printed after a write.
func FormatSaved(verb string, m *domain.MindMap) string {
	return fmt.Sprintf("%s %s %s %s\n",
		StyleGreen.Render("✔"), verb, Bold(m.Name), TruncID(m.ID))
}
