// Package input tracks keyboard and mouse-drag state from device events.
package input

// EventType identifies a device event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Key is a lower-case key name such as "w", "space" or "escape".
// Config bindings use the same names.
type Key string

// Common keys.
const (
	KeyW      Key = "w"
	KeyA      Key = "a"
	KeyS      Key = "s"
	KeyD      Key = "d"
	KeySpace  Key = "space"
	KeyEscape Key = "escape"
)

// Button is a mouse button identifier, numbered as SDL numbers them.
type Button uint8

const (
	ButtonLeft   Button = 1
	ButtonMiddle Button = 2
	ButtonRight  Button = 3
)

// DragButton is the button that drives mouse-look.
const DragButton = ButtonRight

// Event is a platform-neutral device event.
type Event struct {
	Type   EventType
	Key    Key
	Width  int
	Height int
	MouseX int
	MouseY int
	Button Button
	Wheel  float32
}
