package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyDownUpRestoresState(t *testing.T) {
	s := NewState()
	s.KeyDown(KeyA)
	before := s.Pressed()

	s.KeyDown(KeyW)
	require.True(t, s.IsDown(KeyW))
	s.KeyUp(KeyW)

	assert.Equal(t, before, s.Pressed())
	assert.False(t, s.IsDown(KeyW))
}

func TestKeyDownIsIdempotent(t *testing.T) {
	s := NewState()
	s.KeyDown(KeyW)
	s.KeyDown(KeyW)

	assert.Equal(t, []Key{KeyW}, s.Pressed())

	s.KeyUp(KeyW)
	assert.Empty(t, s.Pressed())
}

func TestKeyUpAbsentIsNoop(t *testing.T) {
	s := NewState()
	s.KeyDown(KeyD)
	s.KeyUp(KeySpace)

	assert.Equal(t, []Key{KeyD}, s.Pressed())
}

func TestPressedIsSorted(t *testing.T) {
	s := NewState()
	for _, k := range []Key{KeyW, KeySpace, KeyA, KeyD} {
		s.KeyDown(k)
	}
	assert.Equal(t, []Key{KeyA, KeyD, KeySpace, KeyW}, s.Pressed())
}

func TestOnlyRightButtonDrags(t *testing.T) {
	s := NewState()

	s.PointerDown(ButtonLeft, 10, 10)
	assert.False(t, s.Dragging())
	s.PointerDown(ButtonMiddle, 10, 10)
	assert.False(t, s.Dragging())

	s.PointerDown(ButtonRight, 10, 10)
	require.True(t, s.Dragging())
	x, y, ok := s.LastPointer()
	require.True(t, ok)
	assert.Equal(t, 10, x)
	assert.Equal(t, 10, y)

	// Releasing another button does not end the drag.
	s.PointerUp(ButtonLeft)
	assert.True(t, s.Dragging())

	s.PointerUp(ButtonRight)
	assert.False(t, s.Dragging())
	_, _, ok = s.LastPointer()
	assert.False(t, ok)
}

func TestPointerMoveDelta(t *testing.T) {
	s := NewState()

	_, _, ok := s.PointerMove(5, 5)
	assert.False(t, ok, "move without drag must be a no-op")

	s.PointerDown(ButtonRight, 100, 100)
	dx, dy, ok := s.PointerMove(150, 130)
	require.True(t, ok)
	assert.Equal(t, 50, dx)
	assert.Equal(t, 30, dy)

	dx, dy, ok = s.PointerMove(140, 140)
	require.True(t, ok)
	assert.Equal(t, -10, dx)
	assert.Equal(t, 10, dy)
}

func TestNewDragResamplesPointer(t *testing.T) {
	s := NewState()
	s.PointerDown(ButtonRight, 0, 0)
	s.PointerMove(40, 40)
	s.PointerUp(ButtonRight)

	s.PointerDown(ButtonRight, 200, 200)
	dx, dy, ok := s.PointerMove(201, 202)
	require.True(t, ok)
	assert.Equal(t, 1, dx)
	assert.Equal(t, 2, dy)
}
