package view

import (
	"log/slog"
	"testing"

	"github.com/alexanderramin/mindcanvas/internal/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newState(t *testing.T) (*State, *input.Surface) {
	t.Helper()
	surface := input.NewSurface()
	s := New(surface)
	t.Cleanup(s.Cleanup)
	return s, surface
}

func TestNew_Defaults(t *testing.T) {
	s, _ := newState(t)
	assert.Equal(t, 1.0, s.Scale())
	x, y := s.Translate()
	assert.Zero(t, x)
	assert.Zero(t, y)
	assert.False(t, s.SpaceHeld())
	assert.False(t, s.Panning())
}

func TestWheel_Step(t *testing.T) {
	s, _ := newState(t)
	s.Wheel(input.WheelEvent{DeltaY: -100})
	assert.InDelta(t, 1.15, s.Scale(), 1e-9)
	s.Wheel(input.WheelEvent{DeltaY: 200})
	assert.InDelta(t, 0.85, s.Scale(), 1e-9)
}

func TestWheel_ClampsAtBounds(t *testing.T) {
	s, _ := newState(t)
	for i := 0; i < 100; i++ {
		s.Wheel(input.WheelEvent{DeltaY: -120})
		require.LessOrEqual(t, s.Scale(), MaxScale)
	}
	assert.Equal(t, 2.5, s.Scale())

	for i := 0; i < 100; i++ {
		s.Wheel(input.WheelEvent{DeltaY: 120})
		require.GreaterOrEqual(t, s.Scale(), MinScale)
	}
	assert.Equal(t, 0.3, s.Scale())
}

func TestPan_FollowsPointerUnscaled(t *testing.T) {
	s, surface := newState(t)
	s.Wheel(input.WheelEvent{DeltaY: -400})
	require.NotEqual(t, 1.0, s.Scale())

	require.True(t, s.StartPan(input.PointerEvent{Button: input.ButtonPrimary, X: 10, Y: 10}))
	assert.True(t, s.Panning())
	assert.Equal(t, 2, surface.ListenerCount())

	surface.DispatchPointerMove(input.PointerEvent{X: 60, Y: -20})
	x, y := s.Translate()
	assert.Equal(t, 50.0, x)
	assert.Equal(t, -30.0, y)

	surface.DispatchPointerUp(input.PointerEvent{X: 60, Y: -20})
	assert.False(t, s.Panning())
	assert.Equal(t, 0, surface.ListenerCount())

	// A second pan starts from the current translation.
	s.StartPan(input.PointerEvent{Button: input.ButtonPrimary, X: 0, Y: 0})
	surface.DispatchPointerMove(input.PointerEvent{X: 5, Y: 5})
	x, y = s.Translate()
	assert.Equal(t, 55.0, x)
	assert.Equal(t, -25.0, y)
}

func TestStartPan_IgnoresOtherButtons(t *testing.T) {
	s, surface := newState(t)
	assert.False(t, s.StartPan(input.PointerEvent{Button: input.ButtonSecondary}))
	assert.False(t, s.Panning())
	assert.Equal(t, 0, surface.ListenerCount())
}

func TestStartPan_Twice_NoDuplicateListeners(t *testing.T) {
	s, surface := newState(t)
	s.StartPan(input.PointerEvent{Button: input.ButtonPrimary})
	s.StartPan(input.PointerEvent{Button: input.ButtonPrimary})
	assert.Equal(t, 2, surface.ListenerCount())
}

func TestSpaceKey(t *testing.T) {
	s, surface := newState(t)

	// Not listening yet.
	surface.DispatchKeyDown(input.KeyEvent{Code: input.KeySpace})
	assert.False(t, s.SpaceHeld())

	s.InitKeyListeners()
	s.InitKeyListeners()
	assert.Equal(t, 2, surface.ListenerCount())

	assert.True(t, surface.DispatchKeyDown(input.KeyEvent{Code: input.KeySpace, Target: input.Target{Kind: input.TargetCanvas}}))
	assert.True(t, s.SpaceHeld())

	surface.DispatchKeyUp(input.KeyEvent{Code: input.KeySpace})
	assert.False(t, s.SpaceHeld())

	assert.False(t, surface.DispatchKeyDown(input.KeyEvent{Code: "KeyA"}))
	assert.False(t, s.SpaceHeld())
}

func TestSpaceKey_SuppressedInTextTargets(t *testing.T) {
	s, surface := newState(t)
	s.InitKeyListeners()

	for _, target := range []input.Target{
		{Kind: input.TargetTextInput},
		{Kind: input.TargetTextArea},
		{Kind: input.TargetNode, Editable: true},
	} {
		consumed := surface.DispatchKeyDown(input.KeyEvent{Code: input.KeySpace, Target: target})
		assert.False(t, consumed, "target %s", target.Kind)
		assert.False(t, s.SpaceHeld(), "target %s", target.Kind)
	}
}

func TestCleanup_RemovesAllListeners(t *testing.T) {
	s, surface := newState(t)
	s.InitKeyListeners()
	s.StartPan(input.PointerEvent{Button: input.ButtonPrimary})
	require.Equal(t, 4, surface.ListenerCount())

	s.Cleanup()
	assert.Equal(t, 0, surface.ListenerCount())
	assert.False(t, s.Panning())

	// Key capture can be re-enabled after cleanup.
	s.InitKeyListeners()
	assert.Equal(t, 2, surface.ListenerCount())
}

func TestCoordinateMapping(t *testing.T) {
	s, surface := newState(t)
	s.Wheel(input.WheelEvent{DeltaY: -1000 / 1.5})
	s.StartPan(input.PointerEvent{Button: input.ButtonPrimary})
	surface.DispatchPointerMove(input.PointerEvent{X: 30, Y: 40})
	surface.DispatchPointerUp(input.PointerEvent{})

	sx, sy := s.CanvasToScreen(100, 200)
	cx, cy := s.ScreenToCanvas(sx, sy)
	assert.InDelta(t, 100, cx, 1e-9)
	assert.InDelta(t, 200, cy, 1e-9)
}

func TestRestore_Clamps(t *testing.T) {
	s, _ := newState(t)

	s.Restore(1.7, 12, -8)
	assert.Equal(t, 1.7, s.Scale())
	x, y := s.Translate()
	assert.Equal(t, 12.0, x)
	assert.Equal(t, -8.0, y)

	s.Restore(9, 0, 0)
	assert.Equal(t, MaxScale, s.Scale())
	s.Restore(0.01, 0, 0)
	assert.Equal(t, MinScale, s.Scale())
	s.Restore(0, 0, 0)
	assert.Equal(t, 1.0, s.Scale())
}

func TestNew_DefaultLoggerDiscards(t *testing.T) {
	s := New(input.NewSurface(), WithLogger(nil))
	assert.Equal(t, slog.DiscardHandler, s.logger.Handler())
}
