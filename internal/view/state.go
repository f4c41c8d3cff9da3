// Package view tracks the zoom scale and pan translation of the canvas and
// whether the space modifier is held. It knows nothing about nodes.
package view

import (
	"log/slog"
	"math"

	"github.com/alexanderramin/mindcanvas/internal/input"
)

// Zoom bounds and wheel sensitivity.
const (
	MinScale   = 0.3
	MaxScale   = 2.5
	ZoomFactor = 0.0015
)

type panStart struct {
	mouseX, mouseY float64
	startX, startY float64
}

// State is the view state of one canvas.
//
// Zoom is a plain multiplier change: the point under the pointer is not kept
// fixed. Pan follows the pointer in screen pixels and is not divided by the
// scale, unlike node drag.
type State struct {
	surface *input.Surface
	logger  *slog.Logger

	scale      float64
	translateX float64
	translateY float64

	spaceHeld bool
	panning   bool
	pan       panStart

	panScope input.Scope
	keyScope input.Scope
}

// Option configures a State.
type Option func(*State)

// WithLogger sets the logger used for pan and key transitions.
func WithLogger(l *slog.Logger) Option {
	return func(s *State) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns a State at scale 1 with no translation.
func New(surface *input.Surface, opts ...Option) *State {
	s := &State{
		surface: surface,
		logger:  slog.New(slog.DiscardHandler),
		scale:   1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scale returns the current zoom factor.
func (s *State) Scale() float64 { return s.scale }

// Translate returns the pan offset in screen pixels.
func (s *State) Translate() (x, y float64) { return s.translateX, s.translateY }

// SpaceHeld reports whether the space modifier is down.
func (s *State) SpaceHeld() bool { return s.spaceHeld }

// Panning reports whether a pan gesture is active.
func (s *State) Panning() bool { return s.panning }

// Wheel zooms by -DeltaY*ZoomFactor, clamped to [MinScale, MaxScale].
func (s *State) Wheel(ev input.WheelEvent) {
	next := s.scale - ev.DeltaY*ZoomFactor
	s.scale = math.Min(MaxScale, math.Max(MinScale, next))
}

// StartPan begins panning on a primary-button press. Other buttons are
// ignored. It reports whether the pan started.
func (s *State) StartPan(ev input.PointerEvent) bool {
	if ev.Button != input.ButtonPrimary {
		return false
	}

	s.panScope.Release()
	s.panning = true
	s.pan = panStart{
		mouseX: ev.X,
		mouseY: ev.Y,
		startX: s.translateX,
		startY: s.translateY,
	}
	s.panScope.Add(
		s.surface.OnPointerMove(s.handlePanMove),
		s.surface.OnPointerUp(s.stopPan),
	)
	s.logger.Debug("pan_start", "x", ev.X, "y", ev.Y)
	return true
}

func (s *State) handlePanMove(ev input.PointerEvent) {
	if !s.panning {
		return
	}
	s.translateX = s.pan.startX + (ev.X - s.pan.mouseX)
	s.translateY = s.pan.startY + (ev.Y - s.pan.mouseY)
}

func (s *State) stopPan(input.PointerEvent) {
	s.panning = false
	s.panScope.Release()
	s.logger.Debug("pan_end", "translate_x", s.translateX, "translate_y", s.translateY)
}

// InitKeyListeners attaches the space-key listeners. Calling it again while
// they are attached does nothing.
func (s *State) InitKeyListeners() {
	if s.keyScope.Active() {
		return
	}
	s.keyScope.Add(
		s.surface.OnKeyDown(s.handleKeyDown),
		s.surface.OnKeyUp(s.handleKeyUp),
	)
}

func (s *State) handleKeyDown(ev input.KeyEvent) bool {
	if ev.Code != input.KeySpace {
		return false
	}
	if ev.Target.AcceptsText() {
		return false
	}
	s.spaceHeld = true
	return true
}

func (s *State) handleKeyUp(ev input.KeyEvent) bool {
	if ev.Code != input.KeySpace {
		return false
	}
	s.spaceHeld = false
	return true
}

// Cleanup detaches every listener this state attached.
func (s *State) Cleanup() {
	s.panning = false
	s.panScope.Release()
	s.keyScope.Release()
}

// Restore sets scale and translation, clamping the scale. A non-positive
// scale resets to 1.
func (s *State) Restore(scale, translateX, translateY float64) {
	if scale <= 0 {
		scale = 1
	}
	s.scale = math.Min(MaxScale, math.Max(MinScale, scale))
	s.translateX = translateX
	s.translateY = translateY
}

// CanvasToScreen maps a canvas point to screen pixels.
func (s *State) CanvasToScreen(x, y float64) (float64, float64) {
	return x*s.scale + s.translateX, y*s.scale + s.translateY
}

// ScreenToCanvas maps a screen point to canvas coordinates.
func (s *State) ScreenToCanvas(x, y float64) (float64, float64) {
	return (x - s.translateX) / s.scale, (y - s.translateY) / s.scale
}
