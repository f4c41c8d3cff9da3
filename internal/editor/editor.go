// Package editor is the owning view component of a mind map: it holds the
// tree, the view and interaction state, and the input surface they share,
// and routes raw input to the right state machine.
package editor

import (
	"log/slog"

	"github.com/alexanderramin/mindcanvas/internal/domain"
	"github.com/alexanderramin/mindcanvas/internal/input"
	"github.com/alexanderramin/mindcanvas/internal/interaction"
	"github.com/alexanderramin/mindcanvas/internal/mindtree"
	"github.com/alexanderramin/mindcanvas/internal/view"
)

// Editor hosts one mind map.
type Editor struct {
	doc     *domain.MindMap
	surface *input.Surface
	geo     Geometry
	logger  *slog.Logger

	View        *view.State
	Interaction *interaction.State

	dirty bool
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger shared by the editor and its state machines.
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithGeometry sets the screen geometry used for hit-testing.
func WithGeometry(g Geometry) Option {
	return func(e *Editor) {
		e.geo = g.withDefaults()
	}
}

// New creates an Editor for doc and attaches its key listeners.
func New(doc *domain.MindMap, opts ...Option) *Editor {
	e := &Editor{
		doc:     doc,
		surface: input.NewSurface(),
		geo:     DefaultGeometry(),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.View = view.New(e.surface, view.WithLogger(e.logger))
	vp := doc.Viewport
	e.View.Restore(vp.Scale, vp.TranslateX, vp.TranslateY)
	e.Interaction = interaction.New(e.Root, e.View.Scale, e.surface, interaction.WithLogger(e.logger))
	e.View.InitKeyListeners()
	return e
}

// Doc returns the edited map.
func (e *Editor) Doc() *domain.MindMap { return e.doc }

// Root returns the current tree root.
func (e *Editor) Root() *domain.MindNode { return e.doc.Root }

// Geometry returns the screen geometry in use.
func (e *Editor) Geometry() Geometry { return e.geo }

// Surface returns the input surface gestures attach to.
func (e *Editor) Surface() *input.Surface { return e.surface }

// SyncViewport copies the current zoom and pan into the map so they are
// saved with it.
func (e *Editor) SyncViewport() {
	tx, ty := e.View.Translate()
	e.doc.Viewport = domain.Viewport{Scale: e.View.Scale(), TranslateX: tx, TranslateY: ty}
}

// Dirty reports whether the tree changed since the last MarkSaved.
func (e *Editor) Dirty() bool { return e.dirty }

// MarkSaved clears the dirty flag.
func (e *Editor) MarkSaved() { e.dirty = false }

// Close detaches every listener. The editor must not be used afterwards.
func (e *Editor) Close() {
	e.Interaction.Close()
	e.View.Cleanup()
}

// ── pointer routing ──────────────────────────────────────────────────────────

// PointerDown routes a press. An event without a target is hit-tested first.
func (e *Editor) PointerDown(ev input.PointerEvent) {
	if ev.Target.Kind == input.TargetNone {
		ev.Target = e.HitTest(ev.X, ev.Y)
	}

	if editing := e.Interaction.EditingID(); editing != "" && ev.Target.NodeID != editing {
		e.CommitEdit()
	}

	switch ev.Target.Kind {
	case input.TargetMenu:
		if action, ok := e.MenuItemAt(ev.X, ev.Y); ok && ev.Button == input.ButtonPrimary {
			e.RunMenuAction(action)
		}

	case input.TargetNode:
		node := mindtree.FindNodeByID(e.Root(), ev.Target.NodeID)
		if node == nil {
			return
		}
		switch ev.Button {
		case input.ButtonSecondary:
			e.Interaction.NodeContextMenu(node, ev)
		case input.ButtonPrimary:
			e.Interaction.HideContextMenu()
			if e.View.SpaceHeld() {
				e.View.StartPan(ev)
				return
			}
			e.Interaction.NodePointerDown(node, ev)
		}

	default:
		switch ev.Button {
		case input.ButtonPrimary:
			e.Interaction.CanvasClick()
			e.View.StartPan(ev)
		default:
			e.Interaction.HideContextMenu()
		}
	}
}

// PointerMove forwards a move to the active gesture, if any.
func (e *Editor) PointerMove(ev input.PointerEvent) {
	if e.Interaction.DraggingID() != "" {
		e.dirty = true
	}
	e.surface.DispatchPointerMove(ev)
}

// PointerUp ends the active gesture, if any.
func (e *Editor) PointerUp(ev input.PointerEvent) {
	e.surface.DispatchPointerUp(ev)
}

// Wheel zooms the view.
func (e *Editor) Wheel(ev input.WheelEvent) {
	e.View.Wheel(ev)
}

// KeyDown forwards a key press to the key listeners and reports whether one
// of them consumed it.
func (e *Editor) KeyDown(ev input.KeyEvent) bool {
	return e.surface.DispatchKeyDown(ev)
}

// KeyUp forwards a key release.
func (e *Editor) KeyUp(ev input.KeyEvent) bool {
	return e.surface.DispatchKeyUp(ev)
}

// ── menu and edit ────────────────────────────────────────────────────────────

// RunMenuAction applies action to the node the menu is bound to.
func (e *Editor) RunMenuAction(action MenuAction) {
	if !e.Interaction.ContextMenu().Visible {
		return
	}
	switch action {
	case MenuRename:
		e.Interaction.MenuRename()
	case MenuAddChild:
		if e.Interaction.MenuAddChild() {
			e.dirty = true
		}
	case MenuDelete:
		if e.Interaction.MenuDelete() {
			e.dirty = true
		}
	}
	e.logger.Debug("menu_action", "action", action.String())
}

// SetEditTitle updates the live edit buffer.
func (e *Editor) SetEditTitle(title string) {
	e.Interaction.SetEditTitle(title)
}

// CommitEdit writes the edit buffer to the node being edited.
func (e *Editor) CommitEdit() {
	if e.Interaction.EditingID() == "" {
		return
	}
	e.Interaction.CommitEdit()
	e.dirty = true
}

// CancelEdit abandons the current edit.
func (e *Editor) CancelEdit() {
	e.Interaction.CancelEdit()
}

// ── keyboard shortcuts ───────────────────────────────────────────────────────

// OpenMenuForSelected opens the context menu on the selected node, anchored
// at the node's screen position.
func (e *Editor) OpenMenuForSelected() bool {
	node := mindtree.FindNodeByID(e.Root(), e.Interaction.SelectedID())
	if node == nil {
		return false
	}
	x, y := e.View.CanvasToScreen(node.X, node.Y)
	e.Interaction.NodeContextMenu(node, input.PointerEvent{
		Button: input.ButtonSecondary,
		X:      x,
		Y:      y + e.geo.NodeHeight*e.geo.CellHeight,
	})
	return true
}

// ActOnSelected runs a menu action on the selected node without showing
// the menu to the user first.
func (e *Editor) ActOnSelected(action MenuAction) {
	if e.OpenMenuForSelected() {
		e.RunMenuAction(action)
	}
}

// Direction is a keyboard navigation direction.
type Direction int

const (
	NavPrev Direction = iota
	NavNext
	NavParent
	NavChild
)

// Navigate moves the selection. Prev/Next walk the pre-order node list;
// Parent/Child move along the tree. With nothing selected the root is
// selected.
func (e *Editor) Navigate(dir Direction) {
	root := e.Root()
	current := e.Interaction.SelectedID()
	if mindtree.FindNodeByID(root, current) == nil {
		e.Interaction.Select(root.ID)
		return
	}

	switch dir {
	case NavParent:
		if p := mindtree.ParentOf(root, current); p != nil {
			e.Interaction.Select(p.ID)
		}
	case NavChild:
		if n := mindtree.FindNodeByID(root, current); n != nil && !n.IsLeaf() {
			e.Interaction.Select(n.Children[0].ID)
		}
	case NavPrev, NavNext:
		nodes := mindtree.Flatten(root)
		for i, n := range nodes {
			if n.ID != current {
				continue
			}
			if dir == NavNext && i+1 < len(nodes) {
				e.Interaction.Select(nodes[i+1].ID)
			}
			if dir == NavPrev && i > 0 {
				e.Interaction.Select(nodes[i-1].ID)
			}
			return
		}
	}
}
