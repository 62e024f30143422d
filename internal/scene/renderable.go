// Package scene holds the scene graph, the data-driven island layout and the
// host interface the frame loop renders through.
package scene

import (
	"github.com/google/uuid"

	"github.com/Faultbox/islandview/pkg/math"
)

// Kind is the kind of renderable.
type Kind string

const (
	KindModel  Kind = "model"
	KindBox    Kind = "box"
	KindSphere Kind = "sphere"
	KindPlane  Kind = "plane"
)

// AABB is an axis-aligned box [minX, minY, minZ, maxX, maxY, maxZ] in local space.
type AABB [6]float32

// Size returns the box extents.
func (b AABB) Size() math.Vec3 {
	return math.Vec3{X: b[3] - b[0], Y: b[4] - b[1], Z: b[5] - b[2]}
}

// Renderable is an opaque scene node produced by a loader or built from a primitive.
type Renderable struct {
	ID     uuid.UUID
	Name   string
	Kind   Kind
	Bounds AABB
	Color  [3]float32

	// Source is the asset path for models, Texture the material image for
	// primitives. Neither is decoded by the viewer.
	Source  string
	Texture string

	CastShadow    bool
	ReceiveShadow bool
}

// NewRenderable creates a renderable with a fresh ID.
func NewRenderable(name string, kind Kind, bounds AABB) *Renderable {
	return &Renderable{
		ID:     uuid.New(),
		Name:   name,
		Kind:   kind,
		Bounds: bounds,
		Color:  [3]float32{1, 1, 1},
	}
}

// BoxBounds returns the bounds of a box centred on the origin.
func BoxBounds(w, h, d float32) AABB {
	return AABB{-w / 2, -h / 2, -d / 2, w / 2, h / 2, d / 2}
}

// SphereBounds returns the bounds of a sphere centred on the origin.
func SphereBounds(r float32) AABB {
	return AABB{-r, -r, -r, r, r, r}
}

// Pose places a renderable in the world.
type Pose struct {
	Position math.Vec3
	Rotation math.Vec3 // Euler XYZ, radians
	Scale    math.Vec3
}

// NewPose returns a pose with uniform scale s.
func NewPose(position, rotation [3]float32, s float32) Pose {
	return Pose{
		Position: math.V3(position),
		Rotation: math.V3(rotation),
		Scale:    math.Vec3{X: s, Y: s, Z: s},
	}
}

// Matrix returns the model matrix T·R·S.
func (p Pose) Matrix() math.Mat4 {
	return math.Compose(p.Position, p.Rotation, p.Scale)
}
