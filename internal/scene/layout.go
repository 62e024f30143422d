package scene

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed layouts/island.yaml
var islandLayout []byte

// ErrInvalidLayout is returned for layouts that parse but cannot be placed.
var ErrInvalidLayout = errors.New("invalid layout")

// Layout describes what to place where.
type Layout struct {
	Background string          `yaml:"background"`
	Models     []ModelSpec     `yaml:"models"`
	Primitives []PrimitiveSpec `yaml:"primitives"`
}

// ModelSpec places an asset loaded from Path.
type ModelSpec struct {
	Name       string     `yaml:"name"`
	Path       string     `yaml:"path"`
	Position   [3]float32 `yaml:"position"`
	Rotation   [3]float32 `yaml:"rotation"`
	Scale      float32    `yaml:"scale"`
	CastShadow bool       `yaml:"cast_shadow"`
}

// PrimitiveSpec places a built-in shape.
type PrimitiveSpec struct {
	Name          string     `yaml:"name"`
	Shape         Kind       `yaml:"shape"`
	Size          [3]float32 `yaml:"size"`   // box and plane
	Radius        float32    `yaml:"radius"` // sphere
	Position      [3]float32 `yaml:"position"`
	Rotation      [3]float32 `yaml:"rotation"`
	Color         string     `yaml:"color"`
	Texture       string     `yaml:"texture"`
	CastShadow    bool       `yaml:"cast_shadow"`
	ReceiveShadow bool       `yaml:"receive_shadow"`
}

// DefaultLayout returns the built-in island.
func DefaultLayout() (*Layout, error) {
	return ParseLayout(islandLayout)
}

// LoadLayout reads a layout file. An empty path selects the built-in island.
func LoadLayout(path string) (*Layout, error) {
	if path == "" {
		return DefaultLayout()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	l, err := ParseLayout(data)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", path, err)
	}
	return l, nil
}

// ParseLayout decodes and validates a YAML layout.
func ParseLayout(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, err
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Validate checks that every entry can be placed.
func (l *Layout) Validate() error {
	if l.Background != "" {
		if _, err := ParseColor(l.Background); err != nil {
			return fmt.Errorf("%w: background: %v", ErrInvalidLayout, err)
		}
	}
	for i, m := range l.Models {
		if m.Path == "" {
			return fmt.Errorf("%w: model %d (%q) has no path", ErrInvalidLayout, i, m.Name)
		}
	}
	for i, p := range l.Primitives {
		switch p.Shape {
		case KindBox, KindPlane:
		case KindSphere:
			if p.Radius <= 0 {
				return fmt.Errorf("%w: sphere %d (%q) needs a positive radius", ErrInvalidLayout, i, p.Name)
			}
		default:
			return fmt.Errorf("%w: primitive %d (%q) has unknown shape %q", ErrInvalidLayout, i, p.Name, p.Shape)
		}
		if p.Color != "" {
			if _, err := ParseColor(p.Color); err != nil {
				return fmt.Errorf("%w: primitive %d (%q): %v", ErrInvalidLayout, i, p.Name, err)
			}
		}
	}
	return nil
}

// BackgroundColor returns the clear colour, sky blue when unset.
func (l *Layout) BackgroundColor() [3]float32 {
	c, err := ParseColor(l.Background)
	if err != nil {
		return [3]float32{0x87 / 255.0, 0xCE / 255.0, 0xEB / 255.0}
	}
	return c
}

// Renderable builds the renderable for a primitive.
func (p PrimitiveSpec) Renderable() *Renderable {
	var bounds AABB
	switch p.Shape {
	case KindSphere:
		bounds = SphereBounds(p.Radius)
	case KindPlane:
		bounds = BoxBounds(p.Size[0], 0, p.Size[2])
	default:
		bounds = BoxBounds(p.Size[0], p.Size[1], p.Size[2])
	}

	r := NewRenderable(p.Name, p.Shape, bounds)
	if c, err := ParseColor(p.Color); err == nil {
		r.Color = c
	}
	r.Texture = p.Texture
	r.CastShadow = p.CastShadow
	r.ReceiveShadow = p.ReceiveShadow
	return r
}

// Pose returns the primitive's placement.
func (p PrimitiveSpec) Pose() Pose {
	return NewPose(p.Position, p.Rotation, 1)
}

// Pose returns the model's placement. A zero scale means 1.
func (m ModelSpec) Pose() Pose {
	s := m.Scale
	if s == 0 {
		s = 1
	}
	return NewPose(m.Position, m.Rotation, s)
}

// ParseColor parses "#RRGGBB" into linear 0..1 components.
func ParseColor(s string) ([3]float32, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return [3]float32{}, fmt.Errorf("color %q: want #RRGGBB", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return [3]float32{}, fmt.Errorf("color %q: %w", s, err)
	}
	return [3]float32{
		float32(v>>16&0xff) / 255,
		float32(v>>8&0xff) / 255,
		float32(v&0xff) / 255,
	}, nil
}
