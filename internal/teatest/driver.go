// Package teatest drives bubbletea models synchronously in tests.
//
// Driver stands in for tea.Program: it calls Update directly and drains the
// returned Cmds on the test goroutine, so assertions run against a settled
// model. Cmds that block (cursor blink timers) are given a short timeout and
// dropped.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds Cmd chains so a model that keeps re-arming a Cmd
// cannot hang the test.
const MaxDrainDepth = 100

// cmdTimeout separates message factories, which return at once, from blink
// timers, which block for about half a second.
const cmdTimeout = 10 * time.Millisecond

// Driver is a synchronous test harness for any tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once a tea.QuitMsg is drained. Further sends are
	// ignored, as they would be by a stopped program.
	Quitting bool
}

// Option configures the Driver during construction.
type Option func(*Driver)

// WithSize sends an initial WindowSizeMsg before any other processing.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.T.Helper()
		d.Send(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// New creates a Driver for model. Call DrainInit afterwards to run Init.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit runs the model's Init command and everything it produces.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send dispatches a message through Update and drains the resulting Cmds.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	d.drain(cmd, 0)
}

// View returns the rendered output of the model.
func (d *Driver) View() string {
	return d.Model.View()
}

// ── keys ─────────────────────────────────────────────────────────────────────

// PressKey sends a character key.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	if r == ' ' {
		d.Send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
		return
	}
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// PressType sends a non-rune key such as tea.KeyEnter or tea.KeyCtrlS.
func (d *Driver) PressType(k tea.KeyType) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: k})
}

func (d *Driver) PressEnter() { d.T.Helper(); d.PressType(tea.KeyEnter) }
func (d *Driver) PressEsc()   { d.T.Helper(); d.PressType(tea.KeyEsc) }
func (d *Driver) PressCtrlC() { d.T.Helper(); d.PressType(tea.KeyCtrlC) }
func (d *Driver) PressUp()    { d.T.Helper(); d.PressType(tea.KeyUp) }
func (d *Driver) PressDown()  { d.T.Helper(); d.PressType(tea.KeyDown) }
func (d *Driver) PressLeft()  { d.T.Helper(); d.PressType(tea.KeyLeft) }
func (d *Driver) PressRight() { d.T.Helper(); d.PressType(tea.KeyRight) }

// Type sends s one key event per rune.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

// ── mouse ────────────────────────────────────────────────────────────────────

func (d *Driver) mouse(col, row int, button tea.MouseButton, action tea.MouseAction) {
	d.T.Helper()
	d.Send(tea.MouseMsg{X: col, Y: row, Button: button, Action: action})
}

// Press sends a button press at a cell.
func (d *Driver) Press(col, row int, button tea.MouseButton) {
	d.T.Helper()
	d.mouse(col, row, button, tea.MouseActionPress)
}

// Move sends a motion event at a cell with button held.
func (d *Driver) Move(col, row int, button tea.MouseButton) {
	d.T.Helper()
	d.mouse(col, row, button, tea.MouseActionMotion)
}

// Release sends a button release at a cell.
func (d *Driver) Release(col, row int) {
	d.T.Helper()
	d.mouse(col, row, tea.MouseButtonNone, tea.MouseActionRelease)
}

// Click presses and releases the left button at a cell.
func (d *Driver) Click(col, row int) {
	d.T.Helper()
	d.Press(col, row, tea.MouseButtonLeft)
	d.Release(col, row)
}

// RightClick presses and releases the right button at a cell.
func (d *Driver) RightClick(col, row int) {
	d.T.Helper()
	d.Press(col, row, tea.MouseButtonRight)
	d.Release(col, row)
}

// Drag presses the left button at one cell, moves to another and releases.
func (d *Driver) Drag(fromCol, fromRow, toCol, toRow int) {
	d.T.Helper()
	d.Press(fromCol, fromRow, tea.MouseButtonLeft)
	d.Move(toCol, toRow, tea.MouseButtonLeft)
	d.Release(toCol, toRow)
}

// Wheel scrolls at a cell; up zooms in on most canvases.
func (d *Driver) Wheel(col, row int, up bool) {
	d.T.Helper()
	button := tea.MouseButtonWheelDown
	if up {
		button = tea.MouseButtonWheelUp
	}
	d.mouse(col, row, button, tea.MouseActionPress)
}

// ── draining ─────────────────────────────────────────────────────────────────

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest.Driver: drain depth limit (%d) reached", MaxDrainDepth)
		return
	}

	msg := runCmd(cmd)
	if msg == nil || isCursorBlink(msg) {
		return
	}

	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range msg {
			d.drain(sub, depth+1)
		}
	case tea.QuitMsg:
		d.Quitting = true
		d.Model, _ = d.Model.Update(msg)
	default:
		updated, next := d.Model.Update(msg)
		d.Model = updated
		d.drain(next, depth+1)
	}
}

// runCmd runs cmd with a timeout and returns nil if it does not finish.
func runCmd(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() {
		ch <- cmd()
	}()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

// isCursorBlink matches the unexported blink messages of bubbles/cursor.
func isCursorBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
