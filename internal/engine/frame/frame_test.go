package frame

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/islandview/internal/engine/camera"
	"github.com/Faultbox/islandview/internal/engine/input"
	"github.com/Faultbox/islandview/internal/scene"
	"github.com/Faultbox/islandview/pkg/math"
)

// journal records the order of calls across the fakes.
type journal struct {
	calls []string
}

type fakeRig struct {
	*camera.FlyCamera
	j *journal
}

func (r *fakeRig) Integrate(keys camera.KeyState) {
	r.j.calls = append(r.j.calls, "integrate")
	r.FlyCamera.Integrate(keys)
}

type fakeHost struct {
	j      *journal
	err    error
	failAt int
	seen   []math.Vec3
	rig    camera.Rig
}

func (h *fakeHost) AddRenderable(r *scene.Renderable, p scene.Pose) {}

func (h *fakeHost) Render(g *scene.Graph, v scene.Viewer) error {
	h.j.calls = append(h.j.calls, "render")
	h.seen = append(h.seen, h.rig.Pose().Position)
	if h.err != nil && len(h.seen) >= h.failAt {
		return h.err
	}
	return nil
}

type fakeSource struct {
	j      *journal
	quitAt int
	polls  int
	onPoll func(n int)
}

func (s *fakeSource) Poll() bool {
	s.polls++
	s.j.calls = append(s.j.calls, "poll")
	if s.onPoll != nil {
		s.onPoll(s.polls)
	}
	return s.quitAt > 0 && s.polls >= s.quitAt
}

func newFixture(t *testing.T) (*journal, *fakeRig, *fakeHost, *input.State) {
	t.Helper()
	j := &journal{}
	rig := &fakeRig{FlyCamera: camera.NewFlyCamera(), j: j}
	host := &fakeHost{j: j, rig: rig}
	return j, rig, host, input.NewState()
}

func TestNewRequiresCollaborators(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestTickOrder(t *testing.T) {
	j, rig, host, keys := newFixture(t)
	src := &fakeSource{j: j}

	d, err := New(Config{Rig: rig, Keys: keys, Host: host, Graph: scene.NewGraph(), Events: src})
	require.NoError(t, err)

	quit, err := d.Tick()
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Equal(t, []string{"poll", "integrate", "render"}, j.calls)
	assert.Equal(t, uint64(1), d.Ticks())
}

func TestEventsApplyBeforeIntegrate(t *testing.T) {
	j, rig, host, keys := newFixture(t)
	src := &fakeSource{j: j, onPoll: func(n int) {
		if n == 1 {
			keys.KeyDown(input.KeyW)
		}
	}}

	d, err := New(Config{Rig: rig, Keys: keys, Host: host, Graph: scene.NewGraph(), Events: src, MaxTicks: 10})
	require.NoError(t, err)
	require.NoError(t, d.Run(context.Background()))

	// The first render already sees the forward step.
	require.Len(t, host.seen, 10)
	assert.InDelta(t, 69.9, host.seen[0].Z, 1e-3)
	assert.InDelta(t, 69.0, host.seen[9].Z, 1e-3)
}

func TestRunStopsOnQuit(t *testing.T) {
	j, rig, host, keys := newFixture(t)
	src := &fakeSource{j: j, quitAt: 3}

	d, err := New(Config{Rig: rig, Keys: keys, Host: host, Graph: scene.NewGraph(), Events: src})
	require.NoError(t, err)

	require.NoError(t, d.Run(context.Background()))
	assert.Equal(t, uint64(2), d.Ticks())
	assert.Len(t, host.seen, 2)
}

func TestRunPropagatesRenderError(t *testing.T) {
	_, rig, host, keys := newFixture(t)
	boom := errors.New("device lost")
	host.err = boom
	host.failAt = 4

	d, err := New(Config{Rig: rig, Keys: keys, Host: host, Graph: scene.NewGraph()})
	require.NoError(t, err)

	err = d.Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, uint64(3), d.Ticks())
}

func TestRunStopsOnCancel(t *testing.T) {
	_, rig, host, keys := newFixture(t)
	d, err := New(Config{Rig: rig, Keys: keys, Host: host, Graph: scene.NewGraph()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, d.Run(ctx))
	assert.Zero(t, d.Ticks())
}

func TestHandleStop(t *testing.T) {
	_, rig, _, keys := newFixture(t)
	d, err := New(Config{
		Rig:   rig,
		Keys:  keys,
		Host:  scene.NewHeadlessHost(scene.NewGraph(), nil),
		Graph: scene.NewGraph(),
		Pacer: NewTicker(500),
	})
	require.NoError(t, err)

	h := d.Start(context.Background())
	time.Sleep(20 * time.Millisecond)

	require.NoError(t, h.Stop())
	select {
	case <-h.Done():
	default:
		t.Fatal("Done not closed after Stop")
	}
	assert.Greater(t, d.Ticks(), uint64(0))
}

func TestHandleWaitMaxTicks(t *testing.T) {
	_, rig, _, keys := newFixture(t)
	host := scene.NewHeadlessHost(scene.NewGraph(), nil)

	d, err := New(Config{Rig: rig, Keys: keys, Host: host, Graph: scene.NewGraph(), MaxTicks: 25})
	require.NoError(t, err)

	require.NoError(t, d.Start(context.Background()).Wait())
	assert.Equal(t, uint64(25), host.Frames())
}

func TestNewPacer(t *testing.T) {
	assert.IsType(t, VSync{}, NewPacer(0, true))

	p := NewPacer(120, true)
	tk, ok := p.(*Ticker)
	require.True(t, ok)
	defer tk.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, tk.Wait(ctx))

	fallback, ok := NewPacer(0, false).(*Ticker)
	require.True(t, ok, "hosts without vsync need a ticker")
	fallback.Stop()
}

func TestHeadlessDefaultPacerIsBounded(t *testing.T) {
	_, rig, _, keys := newFixture(t)
	pacer := NewPacer(0, false)
	defer pacer.(*Ticker).Stop()

	d, err := New(Config{
		Rig:   rig,
		Keys:  keys,
		Host:  scene.NewHeadlessHost(scene.NewGraph(), nil),
		Graph: scene.NewGraph(),
		Pacer: pacer,
	})
	require.NoError(t, err)

	h := d.Start(context.Background())
	time.Sleep(200 * time.Millisecond)

	// Ticks is read while the loop runs.
	running := d.Ticks()
	require.NoError(t, h.Stop())

	// 200ms at 60Hz is about 12 ticks.
	assert.LessOrEqual(t, running, d.Ticks())
	assert.Greater(t, d.Ticks(), uint64(0))
	assert.Less(t, d.Ticks(), uint64(40))
}
