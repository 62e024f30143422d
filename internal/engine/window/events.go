package window

import (
	"strings"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/islandview/internal/engine/input"
)

// PollEvents drains the SDL queue into buf and returns it.
// buf is reused between frames to avoid allocating.
func (w *Window) PollEvents(buf []input.Event) []input.Event {
	buf = buf[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			buf = append(buf, input.Event{Type: input.EventQuit})

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				// Use drawable size (actual pixels) for the viewport
				dw, dh := w.DrawableSize()
				buf = append(buf, input.Event{
					Type:   input.EventWindowResize,
					Width:  dw,
					Height: dh,
				})
			}

		case *sdl.KeyboardEvent:
			ev := input.Event{Key: keyName(e.Keysym.Sym)}
			if e.Type == sdl.KEYDOWN {
				ev.Type = input.EventKeyDown
			} else {
				ev.Type = input.EventKeyUp
			}
			buf = append(buf, ev)

		case *sdl.MouseMotionEvent:
			buf = append(buf, input.Event{
				Type:   input.EventMouseMove,
				MouseX: int(e.X),
				MouseY: int(e.Y),
			})

		case *sdl.MouseButtonEvent:
			ev := input.Event{
				MouseX: int(e.X),
				MouseY: int(e.Y),
				Button: input.Button(e.Button),
			}
			if e.Type == sdl.MOUSEBUTTONDOWN {
				ev.Type = input.EventMouseDown
			} else {
				ev.Type = input.EventMouseUp
			}
			buf = append(buf, ev)

		case *sdl.MouseWheelEvent:
			buf = append(buf, input.Event{
				Type:  input.EventMouseWheel,
				Wheel: float32(e.Y),
			})
		}
	}

	return buf
}

// keyName maps an SDL keycode to the lower-case name bindings use
// ("w", "space", "left shift").
func keyName(k sdl.Keycode) input.Key {
	return input.Key(strings.ToLower(sdl.GetKeyName(k)))
}
