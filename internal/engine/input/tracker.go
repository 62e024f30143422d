package input

import "go.uber.org/zap"

// Looker receives mouse-look deltas in pixels.
type Looker interface {
	ApplyLook(dx, dy float32)
}

// Zoomer receives mouse wheel steps.
type Zoomer interface {
	HandleZoom(delta float32)
}

// Tracker routes device events into a State and forwards drag deltas to a
// Looker as they arrive.
type Tracker struct {
	state  *State
	looker Looker
	log    *zap.Logger
}

// NewTracker creates a tracker forwarding look deltas to looker.
// A nil logger disables logging.
func NewTracker(looker Looker, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{
		state:  NewState(),
		looker: looker,
		log:    log,
	}
}

// State returns the tracked input state.
func (t *Tracker) State() *State {
	return t.state
}

// Handle applies one event. Events the tracker does not care about are ignored.
func (t *Tracker) Handle(e Event) {
	switch e.Type {
	case EventKeyDown:
		t.state.KeyDown(e.Key)
	case EventKeyUp:
		t.state.KeyUp(e.Key)
	case EventMouseDown:
		t.state.PointerDown(e.Button, e.MouseX, e.MouseY)
		if e.Button == DragButton {
			t.log.Debug("drag started", zap.Int("x", e.MouseX), zap.Int("y", e.MouseY))
		}
	case EventMouseUp:
		t.state.PointerUp(e.Button)
	case EventMouseMove:
		dx, dy, ok := t.state.PointerMove(e.MouseX, e.MouseY)
		if ok && t.looker != nil {
			t.looker.ApplyLook(float32(dx), float32(dy))
		}
	case EventMouseWheel:
		if z, ok := t.looker.(Zoomer); ok {
			z.HandleZoom(e.Wheel)
		}
	}
}
