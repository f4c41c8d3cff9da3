package input

import "sort"

type listenerKind int

const (
	pointerMove listenerKind = iota
	pointerUp
	keyDown
	keyUp
)

// PointerHandler handles a pointer move or release.
type PointerHandler func(PointerEvent)

// KeyHandler handles a key event and reports whether it consumed it.
type KeyHandler func(KeyEvent) bool

type listener struct {
	kind    listenerKind
	pointer PointerHandler
	key     KeyHandler
}

// Surface is the global input target that gestures attach transient
// listeners to while active. It is not safe for concurrent use; all calls
// happen on the UI event loop.
type Surface struct {
	nextID    int
	listeners map[int]listener
}

// NewSurface returns an empty Surface.
func NewSurface() *Surface {
	return &Surface{listeners: make(map[int]listener)}
}

// Subscription is a handle to one registered listener.
type Subscription struct {
	surface *Surface
	id      int
}

// Release removes the listener. Releasing twice, or releasing the zero
// Subscription, is a no-op.
func (s *Subscription) Release() {
	if s == nil || s.surface == nil {
		return
	}
	delete(s.surface.listeners, s.id)
	s.surface = nil
}

// Active reports whether the listener is still registered.
func (s *Subscription) Active() bool {
	return s != nil && s.surface != nil
}

func (s *Surface) add(l listener) *Subscription {
	s.nextID++
	s.listeners[s.nextID] = l
	return &Subscription{surface: s, id: s.nextID}
}

// OnPointerMove registers h for pointer moves.
func (s *Surface) OnPointerMove(h PointerHandler) *Subscription {
	return s.add(listener{kind: pointerMove, pointer: h})
}

// OnPointerUp registers h for pointer releases.
func (s *Surface) OnPointerUp(h PointerHandler) *Subscription {
	return s.add(listener{kind: pointerUp, pointer: h})
}

// OnKeyDown registers h for key presses.
func (s *Surface) OnKeyDown(h KeyHandler) *Subscription {
	return s.add(listener{kind: keyDown, key: h})
}

// OnKeyUp registers h for key releases.
func (s *Surface) OnKeyUp(h KeyHandler) *Subscription {
	return s.add(listener{kind: keyUp, key: h})
}

// ListenerCount returns the number of registered listeners.
func (s *Surface) ListenerCount() int {
	return len(s.listeners)
}

// ids returns registered ids of kind in registration order. Handlers may
// release listeners mid-dispatch, so dispatch iterates over a snapshot.
func (s *Surface) ids(kind listenerKind) []int {
	var ids []int
	for id, l := range s.listeners {
		if l.kind == kind {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

func (s *Surface) dispatchPointer(kind listenerKind, ev PointerEvent) {
	for _, id := range s.ids(kind) {
		if l, ok := s.listeners[id]; ok {
			l.pointer(ev)
		}
	}
}

func (s *Surface) dispatchKey(kind listenerKind, ev KeyEvent) bool {
	consumed := false
	for _, id := range s.ids(kind) {
		if l, ok := s.listeners[id]; ok && l.key(ev) {
			consumed = true
		}
	}
	return consumed
}

// DispatchPointerMove delivers ev to every pointer-move listener.
func (s *Surface) DispatchPointerMove(ev PointerEvent) {
	s.dispatchPointer(pointerMove, ev)
}

// DispatchPointerUp delivers ev to every pointer-up listener.
func (s *Surface) DispatchPointerUp(ev PointerEvent) {
	s.dispatchPointer(pointerUp, ev)
}

// DispatchKeyDown delivers ev to every key-down listener and reports whether
// any of them consumed it.
func (s *Surface) DispatchKeyDown(ev KeyEvent) bool {
	return s.dispatchKey(keyDown, ev)
}

// DispatchKeyUp delivers ev to every key-up listener.
func (s *Surface) DispatchKeyUp(ev KeyEvent) bool {
	return s.dispatchKey(keyUp, ev)
}

// Scope groups subscriptions acquired for one gesture so they can be
// released together on every exit path.
type Scope struct {
	subs []*Subscription
}

// Add tracks subs in the scope.
func (sc *Scope) Add(subs ...*Subscription) {
	sc.subs = append(sc.subs, subs...)
}

// Active reports whether the scope holds any live subscription.
func (sc *Scope) Active() bool {
	for _, s := range sc.subs {
		if s.Active() {
			return true
		}
	}
	return false
}

// Release releases every tracked subscription and empties the scope.
func (sc *Scope) Release() {
	for _, s := range sc.subs {
		s.Release()
	}
	sc.subs = nil
}
