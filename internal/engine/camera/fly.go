package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/islandview/pkg/math"
)

// FlyCamera is a free-fly camera.
//
// Movement is applied along world axes: forward is always -Z, whatever the
// camera is looking at. Pitch is not clamped, so the view can flip past vertical.
type FlyCamera struct {
	Position math.Vec3
	Yaw      float32
	Pitch    float32

	LookSensitivity float32 // radians per pixel
	MoveSpeed       float32 // world units per frame
	FlySpeed        float32 // world units per frame

	Keys Bindings
}

// NewFlyCamera creates a fly camera at (0, 50, 70) looking at the origin.
func NewFlyCamera() *FlyCamera {
	c := &FlyCamera{
		Position:        math.Vec3{X: 0, Y: 50, Z: 70},
		LookSensitivity: 0.001,
		MoveSpeed:       0.1,
		FlySpeed:        0.1,
		Keys:            DefaultBindings(),
	}
	c.LookAt(math.Vec3{})
	return c
}

// ApplyLook turns the camera by a pointer delta.
func (c *FlyCamera) ApplyLook(dx, dy float32) {
	c.Yaw -= dx * c.LookSensitivity
	c.Pitch -= dy * c.LookSensitivity
}

// Integrate moves the camera one frame. Simultaneous keys add up, so
// diagonals are faster by sqrt(2).
func (c *FlyCamera) Integrate(keys KeyState) {
	var d math.Vec3

	if keys.IsDown(c.Keys.Forward) {
		d.Z -= c.MoveSpeed
	}
	if keys.IsDown(c.Keys.Backward) {
		d.Z += c.MoveSpeed
	}
	if keys.IsDown(c.Keys.Left) {
		d.X -= c.MoveSpeed
	}
	if keys.IsDown(c.Keys.Right) {
		d.X += c.MoveSpeed
	}

	c.Position = c.Position.Add(d)

	if keys.IsDown(c.Keys.Up) {
		c.Position.Y += c.FlySpeed
	}
}

// LookAt orients the camera toward target without moving it.
func (c *FlyCamera) LookAt(target math.Vec3) {
	dir := target.Sub(c.Position).Normalize()
	if dir == (math.Vec3{}) {
		return
	}
	// Forward for Rx(pitch)·Ry(yaw) is (-sin yaw, sin pitch·cos yaw, -cos pitch·cos yaw).
	c.Yaw = math32.Asin(-dir.X)
	c.Pitch = math32.Atan2(dir.Y, -dir.Z)
}

// Pose returns the current eye pose.
func (c *FlyCamera) Pose() Pose {
	return Pose{Position: c.Position, Yaw: c.Yaw, Pitch: c.Pitch}
}

// Forward returns the unit view direction.
func (c *FlyCamera) Forward() math.Vec3 {
	rot := math.RotateX(c.Pitch).Mul(math.RotateY(c.Yaw))
	return rot.TransformDirection(math.Vec3{Z: -1})
}

// ViewMatrix returns Ry(-yaw)·Rx(-pitch)·T(-position), the inverse of the
// camera's world transform.
func (c *FlyCamera) ViewMatrix() math.Mat4 {
	return math.RotateY(-c.Yaw).
		Mul(math.RotateX(-c.Pitch)).
		Mul(math.Translate(c.Position.Scale(-1)))
}
