package input

import "sort"

// State is the current key-down set and mouse-drag state.
// It is owned by one goroutine; nothing here locks.
type State struct {
	pressed map[Key]struct{}

	dragging bool
	lastX    int
	lastY    int
}

// NewState creates an empty input state.
func NewState() *State {
	return &State{pressed: make(map[Key]struct{})}
}

// KeyDown marks k as held. Repeats are no-ops.
func (s *State) KeyDown(k Key) {
	s.pressed[k] = struct{}{}
}

// KeyUp releases k. Releasing a key that is not held is a no-op.
func (s *State) KeyUp(k Key) {
	delete(s.pressed, k)
}

// IsDown reports whether k is currently held.
func (s *State) IsDown(k Key) bool {
	_, ok := s.pressed[k]
	return ok
}

// Pressed returns the held keys in sorted order.
func (s *State) Pressed() []Key {
	keys := make([]Key, 0, len(s.pressed))
	for k := range s.pressed {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// PointerDown starts a drag when b is the drag button.
func (s *State) PointerDown(b Button, x, y int) {
	if b != DragButton {
		return
	}
	s.dragging = true
	s.lastX, s.lastY = x, y
}

// PointerUp ends a drag when b is the drag button.
// The last pointer sample is kept; it is only read while dragging.
func (s *State) PointerUp(b Button) {
	if b != DragButton {
		return
	}
	s.dragging = false
}

// PointerMove records a pointer sample. While dragging it returns the delta
// from the previous sample and ok=true; otherwise it does nothing.
func (s *State) PointerMove(x, y int) (dx, dy int, ok bool) {
	if !s.dragging {
		return 0, 0, false
	}
	dx, dy = x-s.lastX, y-s.lastY
	s.lastX, s.lastY = x, y
	return dx, dy, true
}

// Dragging reports whether the drag button is held.
func (s *State) Dragging() bool {
	return s.dragging
}

// LastPointer returns the last drag sample; ok is false outside a drag.
func (s *State) LastPointer() (x, y int, ok bool) {
	if !s.dragging {
		return 0, 0, false
	}
	return s.lastX, s.lastY, true
}
