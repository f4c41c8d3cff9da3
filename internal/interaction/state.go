// Package interaction implements selection, node drag, the context menu and
// inline title editing on top of a mind-map tree owned by the host.
package interaction

import (
	"log/slog"
	"strings"

	"github.com/alexanderramin/mindcanvas/internal/domain"
	"github.com/alexanderramin/mindcanvas/internal/input"
	"github.com/alexanderramin/mindcanvas/internal/mindtree"
)

// RootFunc returns the current tree root. It is called on every access.
type RootFunc func() *domain.MindNode

// ScaleFunc returns the live view scale.
type ScaleFunc func() float64

// ContextMenu is the open/closed menu bound to one node.
type ContextMenu struct {
	Visible bool
	X, Y    float64
	NodeID  string
}

type dragStart struct {
	mouseX, mouseY float64
	nodeX, nodeY   float64
}

// State holds the interaction state for one editor. Selection, drag, edit
// and menu are independent and may be active together.
type State struct {
	root    RootFunc
	scale   ScaleFunc
	surface *input.Surface
	logger  *slog.Logger

	selectedID string
	draggingID string
	drag       dragStart
	dragScope  input.Scope

	editingID string
	editTitle string

	menu ContextMenu
}

// Option configures a State.
type Option func(*State)

// WithLogger sets the logger used for gesture transitions.
func WithLogger(l *slog.Logger) Option {
	return func(s *State) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates an interaction State. The root is selected initially.
func New(root RootFunc, scale ScaleFunc, surface *input.Surface, opts ...Option) *State {
	s := &State{
		root:    root,
		scale:   scale,
		surface: surface,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	if r := root(); r != nil {
		s.selectedID = r.ID
	}
	return s
}

// SelectedID returns the selected node id, or "" when nothing is selected.
func (s *State) SelectedID() string { return s.selectedID }

// DraggingID returns the id of the node being dragged, or "".
func (s *State) DraggingID() string { return s.draggingID }

// EditingID returns the id of the node being edited, or "".
func (s *State) EditingID() string { return s.editingID }

// EditTitle returns the live edit buffer.
func (s *State) EditTitle() string { return s.editTitle }

// ContextMenu returns a copy of the menu state.
func (s *State) ContextMenu() ContextMenu { return s.menu }

// FlatNodes returns every node of the current tree in pre-order.
func (s *State) FlatNodes() []*domain.MindNode {
	return mindtree.Flatten(s.root())
}

// Lines returns the parent/child edges of the current tree.
func (s *State) Lines() []mindtree.Edge {
	return mindtree.Edges(s.root())
}

// Select selects the node with id when it exists.
func (s *State) Select(id string) {
	if mindtree.FindNodeByID(s.root(), id) == nil {
		return
	}
	s.selectedID = id
}

// CanvasClick clears the selection and closes the menu.
func (s *State) CanvasClick() {
	s.selectedID = ""
	s.HideContextMenu()
}

// ── drag ─────────────────────────────────────────────────────────────────────

// NodePointerDown starts dragging node. Only the primary button starts a
// drag, and never on a node that is being edited. It reports whether the
// event was consumed.
func (s *State) NodePointerDown(node *domain.MindNode, ev input.PointerEvent) bool {
	if node == nil || ev.Button != input.ButtonPrimary {
		return false
	}
	if s.editingID == node.ID {
		return false
	}

	s.dragScope.Release()

	s.selectedID = node.ID
	s.draggingID = node.ID
	s.drag = dragStart{
		mouseX: ev.X,
		mouseY: ev.Y,
		nodeX:  node.X,
		nodeY:  node.Y,
	}
	s.dragScope.Add(
		s.surface.OnPointerMove(s.handlePointerMove),
		s.surface.OnPointerUp(s.handlePointerUp),
	)
	s.logger.Debug("drag_start", "node_id", node.ID, "x", node.X, "y", node.Y)
	return true
}

func (s *State) handlePointerMove(ev input.PointerEvent) {
	if s.draggingID == "" {
		return
	}
	node := mindtree.FindNodeByID(s.root(), s.draggingID)
	if node == nil {
		return
	}

	scale := s.scale()
	node.X = s.drag.nodeX + (ev.X-s.drag.mouseX)/scale
	node.Y = s.drag.nodeY + (ev.Y-s.drag.mouseY)/scale
}

func (s *State) handlePointerUp(input.PointerEvent) {
	if s.draggingID != "" {
		s.logger.Debug("drag_end", "node_id", s.draggingID)
	}
	s.draggingID = ""
	s.dragScope.Release()
}

// ── context menu ─────────────────────────────────────────────────────────────

// NodeContextMenu opens the menu for node at the pointer position and
// selects the node.
func (s *State) NodeContextMenu(node *domain.MindNode, ev input.PointerEvent) {
	if node == nil {
		return
	}
	s.selectedID = node.ID
	s.menu = ContextMenu{
		Visible: true,
		X:       ev.X,
		Y:       ev.Y,
		NodeID:  node.ID,
	}
}

// HideContextMenu closes the menu and unbinds it.
func (s *State) HideContextMenu() {
	s.menu.Visible = false
	s.menu.NodeID = ""
}

// MenuRename closes the menu and edits the bound node.
func (s *State) MenuRename() {
	if s.menu.NodeID == "" {
		return
	}
	node := mindtree.FindNodeByID(s.root(), s.menu.NodeID)
	s.HideContextMenu()
	if node == nil {
		return
	}
	s.beginEdit(node)
}

// MenuAddChild closes the menu, adds a child to the bound node, and selects
// and edits the new child. It reports whether a child was added.
func (s *State) MenuAddChild() bool {
	if s.menu.NodeID == "" {
		return false
	}
	child := mindtree.AddChildNode(s.root(), s.menu.NodeID)
	s.HideContextMenu()
	if child == nil {
		return false
	}
	s.logger.Debug("node_added", "node_id", child.ID)
	s.selectedID = child.ID
	s.beginEdit(child)
	return true
}

// MenuDelete closes the menu and removes the bound node's subtree. It
// reports whether anything was removed; the root and unknown ids are kept.
func (s *State) MenuDelete() bool {
	if s.menu.NodeID == "" {
		return false
	}
	target := s.menu.NodeID
	s.HideContextMenu()

	root := s.root()
	removed := root != nil && root.ID != target && mindtree.FindNodeByID(root, target) != nil
	if removed {
		mindtree.RemoveNodeByID(root, target)
		s.logger.Debug("node_deleted", "node_id", target)
	}
	if s.selectedID == target {
		s.selectedID = ""
	}
	if s.editingID == target {
		s.editingID = ""
		s.editTitle = ""
	}
	return removed
}

// ── edit ─────────────────────────────────────────────────────────────────────

// BeginEdit enters edit mode on the node with id, abandoning any other
// uncommitted edit.
func (s *State) BeginEdit(id string) {
	node := mindtree.FindNodeByID(s.root(), id)
	if node == nil {
		return
	}
	s.beginEdit(node)
}

func (s *State) beginEdit(node *domain.MindNode) {
	s.editingID = node.ID
	s.editTitle = node.Title
}

// SetEditTitle replaces the edit buffer. Ignored outside edit mode.
func (s *State) SetEditTitle(title string) {
	if s.editingID == "" {
		return
	}
	s.editTitle = title
}

// CommitEdit writes the trimmed buffer to the edited node and leaves edit
// mode. A blank buffer becomes domain.UntitledNodeTitle.
func (s *State) CommitEdit() {
	if s.editingID == "" {
		return
	}
	if node := mindtree.FindNodeByID(s.root(), s.editingID); node != nil {
		title := strings.TrimSpace(s.editTitle)
		if title == "" {
			title = domain.UntitledNodeTitle
		}
		node.Title = title
		s.logger.Debug("edit_commit", "node_id", node.ID)
	}
	s.editingID = ""
	s.editTitle = ""
}

// CancelEdit leaves edit mode without writing.
func (s *State) CancelEdit() {
	s.editingID = ""
	s.editTitle = ""
}

// Close releases every listener still attached to the surface.
func (s *State) Close() {
	s.draggingID = ""
	s.dragScope.Release()
}
