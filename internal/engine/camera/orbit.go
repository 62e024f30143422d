package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/islandview/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates around Center
	Distance  float32
	RotationX float32 // pitch, radians
	RotationY float32 // yaw, radians

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	DragSensitivity float32
	ZoomSensitivity float32
	PanSpeed        float32 // fraction of Distance per frame

	Keys Bindings
}

// NewOrbitCamera creates an orbit camera framing the island from the
// same spot the fly camera starts at.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        86.0, // |(0, 50, 70)|
		RotationX:       0.62,
		RotationY:       0.0,
		MinDistance:     5.0,
		MaxDistance:     600.0,
		MinPitch:        0.05,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		PanSpeed:        0.01,
		Keys:            DefaultBindings(),
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	sinX, cosX := math32.Sincos(c.RotationX)
	sinY, cosY := math32.Sincos(c.RotationY)

	return c.Center.Add(math.Vec3{
		X: c.Distance * cosX * sinY,
		Y: c.Distance * sinX,
		Z: c.Distance * cosX * cosY,
	})
}

// SetEye places the camera at eye, keeping Center. Distance and both angles
// are derived from eye - Center; the angle limits apply only to later drags.
// An eye on Center is ignored.
func (c *OrbitCamera) SetEye(eye math.Vec3) {
	off := eye.Sub(c.Center)
	d := off.Length()
	if d == 0 {
		return
	}
	c.Distance = d
	c.RotationX = math32.Asin(off.Y / d)
	c.RotationY = math32.Atan2(off.X, off.Z)
}

// Pose returns the eye pose. Pitch is negative because the eye looks down at Center.
func (c *OrbitCamera) Pose() Pose {
	return Pose{Position: c.Position(), Yaw: c.RotationY, Pitch: -c.RotationX}
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Vec3{Y: 1})
}

// ApplyLook rotates around the center based on a mouse drag delta.
func (c *OrbitCamera) ApplyLook(dx, dy float32) {
	c.RotationY -= dx * c.DragSensitivity
	c.RotationX += dy * c.DragSensitivity
	c.RotationX = clamp(c.RotationX, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// Integrate pans the center point relative to the current yaw.
func (c *OrbitCamera) Integrate(keys KeyState) {
	var forward, right, up float32
	if keys.IsDown(c.Keys.Forward) {
		forward++
	}
	if keys.IsDown(c.Keys.Backward) {
		forward--
	}
	if keys.IsDown(c.Keys.Right) {
		right++
	}
	if keys.IsDown(c.Keys.Left) {
		right--
	}
	if keys.IsDown(c.Keys.Up) {
		up++
	}
	if forward == 0 && right == 0 && up == 0 {
		return
	}

	// Speed scales with distance for consistent feel
	speed := c.Distance * c.PanSpeed
	sinY, cosY := math32.Sincos(c.RotationY)

	// Negate forward so W moves "into" the scene
	c.Center.X += (-sinY*forward + cosY*right) * speed
	c.Center.Z += (-cosY*forward - sinY*right) * speed
	c.Center.Y += up * speed
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
