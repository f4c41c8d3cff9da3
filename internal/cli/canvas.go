package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/mindcanvas/internal/domain"
	"github.com/alexanderramin/mindcanvas/internal/editor"
	"github.com/alexanderramin/mindcanvas/internal/input"
	"github.com/alexanderramin/mindcanvas/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// wheelStep is the DeltaY of one wheel notch, matching a browser's line
// scroll of 100 pixels.
const wheelStep = 100

// chromeRows is the number of terminal rows below the canvas: status line
// and key hints.
const chromeRows = 2

// canvasModel hosts an editor.Editor in the terminal. Mouse cells are
// converted to screen pixels with the editor geometry; keys drive
// navigation, the context menu and the inline title editor.
type canvasModel struct {
	ctx    context.Context
	maps   service.MindMapService
	ed     *editor.Editor
	stored bool

	keys     canvasKeyMap
	editKeys editKeyMap
	title    textinput.Model

	width, height int

	status    string
	statusErr bool
	saveErr   error
	quitting  bool

	// savedViewport is the viewport as last written, used to detect unsaved
	// zoom and pan.
	savedViewport domain.Viewport
}

func newCanvasModel(ctx context.Context, maps service.MindMapService, ed *editor.Editor, stored bool) *canvasModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 200

	m := &canvasModel{
		ctx:      ctx,
		maps:     maps,
		ed:       ed,
		stored:   stored,
		keys:     defaultCanvasKeyMap(),
		editKeys: defaultEditKeyMap(),
		title:    ti,
		width:    80,
		height:   24,
	}
	m.savedViewport = ed.Doc().Viewport
	if !stored {
		m.status = "not saved yet, ctrl+s to store"
	}
	return m
}

func (m *canvasModel) canvasRows() int {
	return max(m.height-chromeRows, 1)
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m *canvasModel) Init() tea.Cmd { return nil }

func (m *canvasModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, m.syncEditInput()

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		if m.quitting {
			return m, tea.Quit
		}
		return m, tea.Batch(cmd, m.syncEditInput())
	}
	return m, nil
}

// ── mouse ────────────────────────────────────────────────────────────────────

func (m *canvasModel) handleMouse(msg tea.MouseMsg) {
	geo := m.ed.Geometry()
	x, y := geo.Screen(msg.X, msg.Y)
	ev := input.PointerEvent{X: x, Y: y}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.ed.Wheel(input.WheelEvent{DeltaY: -wheelStep})
			return
		case tea.MouseButtonWheelDown:
			m.ed.Wheel(input.WheelEvent{DeltaY: wheelStep})
			return
		case tea.MouseButtonLeft:
			ev.Button = input.ButtonPrimary
		case tea.MouseButtonMiddle:
			ev.Button = input.ButtonMiddle
		case tea.MouseButtonRight:
			ev.Button = input.ButtonSecondary
		default:
			return
		}
		if msg.Y >= m.canvasRows() {
			return
		}
		m.clearStatus()
		m.ed.PointerDown(ev)

	case tea.MouseActionMotion:
		m.ed.PointerMove(ev)

	case tea.MouseActionRelease:
		m.ed.PointerUp(ev)
	}
}

// ── keys ─────────────────────────────────────────────────────────────────────

func (m *canvasModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.ed.Interaction.EditingID() != "" {
		return m.handleEditKey(msg)
	}

	if m.ed.Interaction.ContextMenu().Visible {
		for _, item := range editor.MenuItems {
			if msg.String() == item.Key {
				m.ed.RunMenuAction(item.Action)
				return nil
			}
		}
	}

	m.clearStatus()
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quit()
	case key.Matches(msg, m.keys.Save):
		m.save()
	case key.Matches(msg, m.keys.Dismiss):
		m.ed.Interaction.HideContextMenu()
	case key.Matches(msg, m.keys.Space):
		m.toggleSpace()
	case key.Matches(msg, m.keys.Prev):
		m.ed.Navigate(editor.NavPrev)
	case key.Matches(msg, m.keys.Next):
		m.ed.Navigate(editor.NavNext)
	case key.Matches(msg, m.keys.Parent):
		m.ed.Navigate(editor.NavParent)
	case key.Matches(msg, m.keys.Child):
		m.ed.Navigate(editor.NavChild)
	case key.Matches(msg, m.keys.Rename):
		m.ed.ActOnSelected(editor.MenuRename)
	case key.Matches(msg, m.keys.AddChild):
		m.ed.ActOnSelected(editor.MenuAddChild)
	case key.Matches(msg, m.keys.Delete):
		m.ed.ActOnSelected(editor.MenuDelete)
	case key.Matches(msg, m.keys.Menu):
		m.ed.OpenMenuForSelected()
	case key.Matches(msg, m.keys.ZoomIn):
		m.ed.Wheel(input.WheelEvent{DeltaY: -wheelStep})
	case key.Matches(msg, m.keys.ZoomOut):
		m.ed.Wheel(input.WheelEvent{DeltaY: wheelStep})
	case key.Matches(msg, m.keys.ResetView):
		m.ed.View.Restore(1, 0, 0)
	}
	return nil
}

func (m *canvasModel) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.editKeys.Commit):
		m.ed.CommitEdit()
		return nil
	case key.Matches(msg, m.editKeys.Cancel):
		m.ed.CancelEdit()
		return nil
	case key.Matches(msg, m.editKeys.Quit):
		m.ed.CommitEdit()
		m.quit()
		return nil
	}

	var cmd tea.Cmd
	m.title, cmd = m.title.Update(msg)
	m.ed.SetEditTitle(m.title.Value())
	return cmd
}

// toggleSpace latches the space modifier. Terminals report no key release,
// so a second press stands in for it.
func (m *canvasModel) toggleSpace() {
	ev := input.KeyEvent{Code: input.KeySpace, Target: input.Target{Kind: input.TargetCanvas}}
	if m.ed.View.SpaceHeld() {
		m.ed.KeyUp(ev)
		return
	}
	m.ed.KeyDown(ev)
}

// syncEditInput focuses the title input when the editor enters edit mode
// and blurs it when the edit ends.
func (m *canvasModel) syncEditInput() tea.Cmd {
	editing := m.ed.Interaction.EditingID() != ""
	switch {
	case editing && !m.title.Focused():
		m.title.SetValue(m.ed.Interaction.EditTitle())
		m.title.CursorEnd()
		return m.title.Focus()
	case !editing && m.title.Focused():
		m.title.Blur()
		m.title.SetValue("")
	}
	return nil
}

// ── save and quit ────────────────────────────────────────────────────────────

func (m *canvasModel) needsSave() bool {
	if m.ed.Dirty() {
		return true
	}
	if !m.stored {
		return false
	}
	tx, ty := m.ed.View.Translate()
	return m.savedViewport != domain.Viewport{Scale: m.ed.View.Scale(), TranslateX: tx, TranslateY: ty}
}

func (m *canvasModel) save() {
	m.ed.SyncViewport()
	doc := m.ed.Doc()

	if !m.stored {
		created, err := m.maps.Create(m.ctx, doc.Name, doc.Root)
		if err != nil {
			m.fail(err)
			return
		}
		doc.ID = created.ID
		doc.CreatedAt = created.CreatedAt
		m.stored = true
	}

	if err := m.maps.Save(m.ctx, doc); err != nil {
		m.fail(err)
		return
	}
	m.ed.MarkSaved()
	m.savedViewport = doc.Viewport
	m.saveErr = nil
	m.status = fmt.Sprintf("saved %d nodes", doc.NodeCount())
	m.statusErr = false
}

func (m *canvasModel) quit() {
	if m.needsSave() {
		m.save()
	}
	m.quitting = true
}

func (m *canvasModel) fail(err error) {
	m.saveErr = err
	m.status = err.Error()
	m.statusErr = true
}

func (m *canvasModel) clearStatus() {
	if !m.statusErr {
		m.status = ""
	}
}
