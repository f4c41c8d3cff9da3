// Package input defines the pointer, wheel and key events consumed by the
// editor core, and the Surface that transient gesture listeners attach to.
package input

// Button identifies a pointer button.
type Button int

const (
	ButtonPrimary   Button = 0
	ButtonMiddle    Button = 1
	ButtonSecondary Button = 2
)

// TargetKind identifies what element an event landed on.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetCanvas
	TargetNode
	TargetMenu
	TargetTextInput
	TargetTextArea
)

func (k TargetKind) String() string {
	switch k {
	case TargetCanvas:
		return "canvas"
	case TargetNode:
		return "node"
	case TargetMenu:
		return "menu"
	case TargetTextInput:
		return "input"
	case TargetTextArea:
		return "textarea"
	default:
		return "none"
	}
}

// Target is the element an event was delivered to.
type Target struct {
	Kind     TargetKind
	NodeID   string // set when Kind is TargetNode
	Editable bool   // content-editable element
}

// AcceptsText reports whether typing into the target should be left alone.
func (t Target) AcceptsText() bool {
	return t.Kind == TargetTextInput || t.Kind == TargetTextArea || t.Editable
}

// PointerEvent is a pointer press, move or release in screen coordinates.
type PointerEvent struct {
	Button Button
	X, Y   float64
	Target Target
}

// WheelEvent carries the vertical scroll delta. Positive scrolls down.
type WheelEvent struct {
	DeltaY float64
}

// Key codes understood by the core.
const (
	KeySpace  = "Space"
	KeyEscape = "Escape"
	KeyEnter  = "Enter"
)

// KeyEvent is a key press or release.
type KeyEvent struct {
	Code   string
	Target Target
}
