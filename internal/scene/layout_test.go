package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLayout(t *testing.T) {
	l, err := DefaultLayout()
	require.NoError(t, err)

	assert.Len(t, l.Models, 4)
	assert.Len(t, l.Primitives, 23)

	spheres := 0
	for _, p := range l.Primitives {
		if p.Shape == KindSphere {
			spheres++
		}
	}
	assert.Equal(t, 21, spheres)

	house := l.Models[1]
	assert.Equal(t, "house", house.Name)
	assert.Equal(t, [3]float32{30, 0, -20}, house.Position)
	assert.InDelta(t, 0.15, house.Pose().Scale.X, 1e-6)

	// Both trees share one asset.
	assert.Equal(t, l.Models[2].Path, l.Models[3].Path)
}

func TestBackgroundColor(t *testing.T) {
	l, err := DefaultLayout()
	require.NoError(t, err)

	c := l.BackgroundColor()
	assert.InDelta(t, 0x87/255.0, c[0], 1e-6)
	assert.InDelta(t, 0xCE/255.0, c[1], 1e-6)
	assert.InDelta(t, 0xEB/255.0, c[2], 1e-6)

	empty := &Layout{}
	assert.Equal(t, c, empty.BackgroundColor())
}

func TestParseLayoutInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"model without path", "models:\n  - name: x\n"},
		{"unknown shape", "primitives:\n  - name: x\n    shape: torus\n"},
		{"sphere without radius", "primitives:\n  - name: x\n    shape: sphere\n"},
		{"bad color", "primitives:\n  - name: x\n    shape: box\n    color: red\n"},
		{"bad background", "background: \"#12\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLayout([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidLayout)
		})
	}

	_, err := ParseLayout([]byte("models: [unclosed"))
	assert.Error(t, err)
}

func TestLoadLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	content := `
background: "#000000"
primitives:
  - name: floor
    shape: plane
    size: [10, 0, 20]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	l, err := LoadLayout(path)
	require.NoError(t, err)
	require.Len(t, l.Primitives, 1)

	r := l.Primitives[0].Renderable()
	assert.Equal(t, KindPlane, r.Kind)
	assert.Equal(t, AABB{-5, 0, -10, 5, 0, 10}, r.Bounds)
	assert.Equal(t, [3]float32{1, 1, 1}, r.Color)

	_, err = LoadLayout(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	l, err = LoadLayout("")
	require.NoError(t, err)
	assert.Len(t, l.Models, 4)
}

func TestPrimitiveRenderable(t *testing.T) {
	p := PrimitiveSpec{
		Name:          "rock",
		Shape:         KindSphere,
		Radius:        2.5,
		Position:      [3]float32{-15, -1, 20},
		Color:         "#FF0000",
		ReceiveShadow: true,
	}

	r := p.Renderable()
	assert.Equal(t, SphereBounds(2.5), r.Bounds)
	assert.Equal(t, [3]float32{1, 0, 0}, r.Color)
	assert.True(t, r.ReceiveShadow)
	assert.NotEqual(t, r.ID, p.Renderable().ID)

	assert.Equal(t, float32(1), p.Pose().Scale.Y)
	assert.Equal(t, float32(20), p.Pose().Position.Z)
}

func TestModelPoseDefaultsScale(t *testing.T) {
	m := ModelSpec{Path: "a.gltf"}
	assert.Equal(t, float32(1), m.Pose().Scale.Z)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#fff5b6")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, c[0], 1e-6)
	assert.InDelta(t, 0xf5/255.0, c[1], 1e-6)
	assert.InDelta(t, 0xb6/255.0, c[2], 1e-6)

	_, err = ParseColor("#zzzzzz")
	assert.Error(t, err)
}
