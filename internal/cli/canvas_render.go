package cli

import (
	"strings"

	"github.com/alexanderramin/mindcanvas/internal/cli/formatter"
	"github.com/alexanderramin/mindcanvas/internal/domain"
	"github.com/alexanderramin/mindcanvas/internal/editor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

type cellStyle uint8

const (
	styleBlank cellStyle = iota
	styleEdge
	styleBorder
	styleBorderSelected
	styleBorderDragging
	styleTitle
	styleTitleSelected
	styleCursor
	styleMenu
	styleMenuKey
)

var cellStyles = [...]lipgloss.Style{
	styleBlank:          lipgloss.NewStyle(),
	styleEdge:           lipgloss.NewStyle().Foreground(formatter.ColorEdge),
	styleBorder:         lipgloss.NewStyle().Foreground(formatter.ColorNode),
	styleBorderSelected: formatter.StyleSelected,
	styleBorderDragging: lipgloss.NewStyle().Foreground(formatter.ColorDragging).Bold(true),
	styleTitle:          lipgloss.NewStyle().Foreground(formatter.ColorFg),
	styleTitleSelected:  lipgloss.NewStyle().Foreground(formatter.ColorFg).Bold(true),
	styleCursor:         lipgloss.NewStyle().Reverse(true),
	styleMenu:           lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorMenu),
	styleMenuKey:        formatter.StyleSelected.Background(formatter.ColorMenu),
}

// grid is a fixed-size canvas of terminal cells. Wide runes occupy their
// cell plus a continuation cell holding 0.
type grid struct {
	width, height int
	runes         [][]rune
	styles        [][]cellStyle
}

func newGrid(width, height int) *grid {
	g := &grid{width: width, height: height}
	g.runes = make([][]rune, height)
	g.styles = make([][]cellStyle, height)
	for row := range g.runes {
		g.runes[row] = []rune(strings.Repeat(" ", width))
		g.styles[row] = make([]cellStyle, width)
	}
	return g
}

func (g *grid) set(col, row int, r rune, st cellStyle) {
	if col < 0 || row < 0 || col >= g.width || row >= g.height {
		return
	}
	g.runes[row][col] = r
	g.styles[row][col] = st
}

// text writes s from (col, row) and returns the column after it.
func (g *grid) text(col, row int, s string, st cellStyle) int {
	for _, r := range s {
		w := lipgloss.Width(string(r))
		g.set(col, row, r, st)
		for i := 1; i < w; i++ {
			g.set(col+i, row, 0, st)
		}
		col += max(w, 1)
	}
	return col
}

// line draws a dotted segment between two cells.
func (g *grid) line(c0, r0, c1, r1 int) {
	dc, dr := abs(c1-c0), -abs(r1-r0)
	sc, sr := sign(c1-c0), sign(r1-r0)
	err := dc + dr
	for {
		g.set(c0, r0, '·', styleEdge)
		if c0 == c1 && r0 == r1 {
			return
		}
		e2 := 2 * err
		if e2 >= dr {
			err += dr
			c0 += sc
		}
		if e2 <= dc {
			err += dc
			r0 += sr
		}
	}
}

// box draws a rounded border around r.
func (g *grid) box(r editor.Rect, st cellStyle) {
	right, bottom := r.Col+r.Width-1, r.Row+r.Height-1
	for col := r.Col; col <= right; col++ {
		for row := r.Row; row <= bottom; row++ {
			g.set(col, row, ' ', styleTitle)
		}
		g.set(col, r.Row, '─', st)
		g.set(col, bottom, '─', st)
	}
	for row := r.Row; row <= bottom; row++ {
		g.set(r.Col, row, '│', st)
		g.set(right, row, '│', st)
	}
	g.set(r.Col, r.Row, '╭', st)
	g.set(right, r.Row, '╮', st)
	g.set(r.Col, bottom, '╰', st)
	g.set(right, bottom, '╯', st)
}

// render joins runs of equally styled cells into styled strings.
func (g *grid) render() string {
	var b strings.Builder
	for row := range g.runes {
		if row > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		current := styleBlank
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if current == styleBlank {
				b.WriteString(run.String())
			} else {
				b.WriteString(cellStyles[current].Render(run.String()))
			}
			run.Reset()
		}
		for col, r := range g.runes[row] {
			if r == 0 {
				continue
			}
			if st := g.styles[row][col]; st != current {
				flush()
				current = st
			}
			run.WriteRune(r)
		}
		flush()
	}
	return b.String()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// ── view ─────────────────────────────────────────────────────────────────────

func (m *canvasModel) View() string {
	if m.quitting {
		return ""
	}
	g := newGrid(m.width, m.canvasRows())
	m.drawEdges(g)
	m.drawNodes(g)
	m.drawMenu(g)
	return g.render() + "\n" + m.statusLine() + "\n" + m.helpLine()
}

func (m *canvasModel) drawEdges(g *grid) {
	rects := make(map[string]editor.Rect)
	for _, n := range m.ed.Interaction.FlatNodes() {
		rects[n.ID] = m.ed.NodeRect(n)
	}
	for _, e := range m.ed.Interaction.Lines() {
		from, to := rects[e.From.ID], rects[e.To.ID]
		g.line(from.Col+from.Width/2, from.Row+from.Height/2, to.Col+to.Width/2, to.Row+to.Height/2)
	}
}

func (m *canvasModel) drawNodes(g *grid) {
	it := m.ed.Interaction
	for _, n := range it.FlatNodes() {
		r := m.ed.NodeRect(n)

		border, title := styleBorder, styleTitle
		switch n.ID {
		case it.DraggingID():
			border, title = styleBorderDragging, styleTitleSelected
		case it.SelectedID():
			border, title = styleBorderSelected, styleTitleSelected
		}
		g.box(r, border)

		textCol, textRow := r.Col+2, r.Row+r.Height/2
		if n.ID == it.EditingID() {
			m.drawEditText(g, textCol, textRow)
			continue
		}
		g.text(textCol, textRow, n.Title, title)
	}
}

// drawEditText renders the edit buffer with a reverse-video cursor cell.
func (m *canvasModel) drawEditText(g *grid, col, row int) {
	value := []rune(m.title.Value())
	pos := min(m.title.Position(), len(value))
	col = g.text(col, row, string(value[:pos]), styleTitleSelected)
	if pos < len(value) {
		col = g.text(col, row, string(value[pos]), styleCursor)
		g.text(col, row, string(value[pos+1:]), styleTitleSelected)
		return
	}
	g.set(col, row, ' ', styleCursor)
}

func (m *canvasModel) drawMenu(g *grid) {
	r, ok := m.ed.MenuRect()
	if !ok {
		return
	}
	for i, item := range editor.MenuItems {
		row := r.Row + i
		for col := r.Col; col < r.Col+r.Width; col++ {
			g.set(col, row, ' ', styleMenu)
		}
		col := g.text(r.Col+1, row, item.Key, styleMenuKey)
		g.text(col+2, row, item.Label, styleMenu)
	}
}

func (m *canvasModel) statusLine() string {
	doc := m.ed.Doc()
	name := formatter.Bold(doc.Name)
	if m.ed.Dirty() {
		name += formatter.StyleYellow.Render(" ●")
	}

	tx, ty := m.ed.View.Translate()
	parts := []string{
		name,
		formatter.Dim("zoom ") + formatter.Percent(m.ed.View.Scale()),
		formatter.Dim("pan ") + formatter.Coord(tx, ty),
	}
	if sel := m.selectedNode(); sel != nil {
		parts = append(parts, formatter.Dim("sel ")+sel.Title)
	}
	switch {
	case m.ed.View.Panning():
		parts = append(parts, formatter.StyleYellowBold.Render("PANNING"))
	case m.ed.Interaction.DraggingID() != "":
		parts = append(parts, formatter.StyleYellowBold.Render("DRAGGING"))
	}
	if m.ed.View.SpaceHeld() {
		parts = append(parts, formatter.StylePurple.Render("SPACE"))
	}

	left := strings.Join(parts, formatter.Dim("  │  "))
	if m.status == "" {
		return left
	}
	status := formatter.StyleGreen.Render(m.status)
	if m.statusErr {
		status = formatter.StyleRed.Render(m.status)
	}
	pad := max(m.width-lipgloss.Width(left)-lipgloss.Width(status), 2)
	return left + strings.Repeat(" ", pad) + status
}

func (m *canvasModel) helpLine() string {
	var bindings []key.Binding
	switch {
	case m.ed.Interaction.EditingID() != "":
		bindings = m.editKeys.ShortHelp()
	case m.ed.Interaction.ContextMenu().Visible:
		var hints []string
		for _, item := range editor.MenuItems {
			hints = append(hints, formatter.Dim(item.Key+": "+strings.ToLower(item.Label)))
		}
		return strings.Join(append(hints, formatter.Dim("esc: close")), "  ")
	default:
		bindings = m.keys.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
	}
	return strings.Join(hints, "  ")
}

func (m *canvasModel) selectedNode() *domain.MindNode {
	id := m.ed.Interaction.SelectedID()
	for _, n := range m.ed.Interaction.FlatNodes() {
		if n.ID == id {
			return n
		}
	}
	return nil
}
