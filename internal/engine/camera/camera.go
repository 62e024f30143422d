// Package camera provides the camera rigs driven by mouse-look and keyboard input.
package camera

import (
	"github.com/Faultbox/islandview/internal/engine/input"
	"github.com/Faultbox/islandview/pkg/math"
)

// KeyState reports which keys are held.
type KeyState interface {
	IsDown(k input.Key) bool
}

// Pose is a camera position and orientation. Roll is always zero.
type Pose struct {
	Position math.Vec3
	Yaw      float32 // about the vertical axis, radians
	Pitch    float32 // about the local horizontal axis, radians
}

// Rig is a camera that consumes input once per frame.
type Rig interface {
	// ApplyLook applies a mouse-look delta in pixels.
	ApplyLook(dx, dy float32)
	// Integrate advances the rig by one frame using the held keys.
	Integrate(keys KeyState)
	// Pose returns the current eye pose.
	Pose() Pose
	// ViewMatrix returns the world-to-view transform.
	ViewMatrix() math.Mat4
}

// Bindings maps movement intents to keys.
type Bindings struct {
	Forward  input.Key
	Backward input.Key
	Left     input.Key
	Right    input.Key
	Up       input.Key
}

// DefaultBindings returns WASD plus space to rise.
func DefaultBindings() Bindings {
	return Bindings{
		Forward:  input.KeyW,
		Backward: input.KeyS,
		Left:     input.KeyA,
		Right:    input.KeyD,
		Up:       input.KeySpace,
	}
}
