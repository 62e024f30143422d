package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/islandview/internal/engine/input"
	"github.com/Faultbox/islandview/pkg/math"
)

func TestOrbitPitchIsClamped(t *testing.T) {
	c := NewOrbitCamera()

	c.ApplyLook(0, 10000)
	assert.Equal(t, c.MaxPitch, c.RotationX)

	c.ApplyLook(0, -10000)
	assert.Equal(t, c.MinPitch, c.RotationX)
}

func TestOrbitZoomIsClamped(t *testing.T) {
	c := NewOrbitCamera()

	for i := 0; i < 100; i++ {
		c.HandleZoom(1)
	}
	assert.Equal(t, c.MinDistance, c.Distance)

	for i := 0; i < 100; i++ {
		c.HandleZoom(-1)
	}
	assert.Equal(t, c.MaxDistance, c.Distance)
}

func TestOrbitPositionKeepsDistance(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = math.Vec3{X: 10, Y: 2, Z: -4}
	c.ApplyLook(300, 40)

	assert.InDelta(t, c.Distance, c.Position().Sub(c.Center).Length(), 1e-3)
}

func TestOrbitPanFollowsYaw(t *testing.T) {
	c := NewOrbitCamera()
	c.Integrate(held(input.KeyW))

	// Yaw 0 looks down -Z, so forward pans the center that way.
	assert.Less(t, c.Center.Z, float32(0))
	assert.InDelta(t, 0, c.Center.X, eps)

	c.Center = math.Vec3{}
	c.Integrate(held())
	assert.Equal(t, math.Vec3{}, c.Center)
}

func TestOrbitViewLooksAtCenter(t *testing.T) {
	c := NewOrbitCamera()
	got := c.ViewMatrix().TransformVec3(c.Center)

	assert.InDelta(t, 0, got.X, 1e-3)
	assert.InDelta(t, 0, got.Y, 1e-3)
	assert.InDelta(t, -c.Distance, got.Z, 1e-2)
}

func TestOrbitSetEye(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = math.Vec3{X: 5, Y: 1, Z: -3}
	eye := math.Vec3{X: 35, Y: 21, Z: 12}

	c.SetEye(eye)

	got := c.Position()
	assert.InDelta(t, eye.X, got.X, eps)
	assert.InDelta(t, eye.Y, got.Y, eps)
	assert.InDelta(t, eye.Z, got.Z, eps)
	assert.InDelta(t, eye.Sub(c.Center).Length(), c.Distance, eps)

	before := *c
	c.SetEye(c.Center)
	assert.Equal(t, before, *c)
}
