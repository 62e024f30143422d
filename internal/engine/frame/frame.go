// Package frame drives the per-refresh update and render loop.
package frame

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/islandview/internal/engine/camera"
	"github.com/Faultbox/islandview/internal/scene"
)

// Source delivers the device events that arrived since the previous tick.
// Poll reports true when the user asked to quit.
type Source interface {
	Poll() (quit bool)
}

// Pacer blocks until the next tick is due.
type Pacer interface {
	Wait(ctx context.Context) error
}

// Config wires a driver.
type Config struct {
	Rig    camera.Rig
	Keys   camera.KeyState
	Host   scene.Host
	Graph  *scene.Graph
	Events Source // optional
	Pacer  Pacer  // optional, defaults to VSync
	// MaxTicks stops the loop after this many ticks; zero runs until stopped.
	MaxTicks uint64
	Logger   *zap.Logger
}

// Driver runs ticks: poll events, integrate the rig, render.
type Driver struct {
	cfg   Config
	ticks atomic.Uint64
	log   *zap.Logger
}

// New creates a driver.
func New(cfg Config) (*Driver, error) {
	if cfg.Rig == nil || cfg.Keys == nil || cfg.Host == nil || cfg.Graph == nil {
		return nil, errors.New("frame: rig, keys, host and graph are required")
	}
	if cfg.Pacer == nil {
		cfg.Pacer = VSync{}
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Driver{cfg: cfg, log: log}, nil
}

// Ticks returns the number of completed ticks. It is safe to call while a
// started loop is running.
func (d *Driver) Ticks() uint64 {
	return d.ticks.Load()
}

// Tick runs one frame. A render error is returned as is.
func (d *Driver) Tick() (quit bool, err error) {
	if d.cfg.Events != nil && d.cfg.Events.Poll() {
		return true, nil
	}

	d.cfg.Rig.Integrate(d.cfg.Keys)

	if err := d.cfg.Host.Render(d.cfg.Graph, d.cfg.Rig); err != nil {
		return false, err
	}
	d.ticks.Add(1)
	return false, nil
}

// Run loops on the calling goroutine until ctx is cancelled, the event source
// reports quit, MaxTicks is reached or a render fails. Only the render error
// is returned; the other endings return nil.
//
// Each iteration waits on the pacer before doing any work, so the next tick
// is already due when a slow render finishes.
func (d *Driver) Run(ctx context.Context) error {
	d.log.Info("frame loop started", zap.Uint64("max_ticks", d.cfg.MaxTicks))

	frames := 0
	fpsTimer := time.Now()

	for {
		if err := d.cfg.Pacer.Wait(ctx); err != nil {
			d.log.Info("frame loop stopped", zap.Uint64("ticks", d.ticks.Load()), zap.String("reason", "cancelled"))
			return nil
		}

		quit, err := d.Tick()
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		if quit {
			d.log.Info("frame loop stopped", zap.Uint64("ticks", d.ticks.Load()), zap.String("reason", "quit"))
			return nil
		}
		if d.cfg.MaxTicks > 0 && d.ticks.Load() >= d.cfg.MaxTicks {
			d.log.Info("frame loop stopped", zap.Uint64("ticks", d.ticks.Load()), zap.String("reason", "max ticks"))
			return nil
		}

		frames++
		if time.Since(fpsTimer) >= time.Second {
			pose := d.cfg.Rig.Pose()
			d.log.Debug("fps",
				zap.Int("count", frames),
				zap.Float32("x", pose.Position.X),
				zap.Float32("y", pose.Position.Y),
				zap.Float32("z", pose.Position.Z),
				zap.Float32("yaw", pose.Yaw),
				zap.Float32("pitch", pose.Pitch),
			)
			frames = 0
			fpsTimer = time.Now()
		}
	}
}

// Handle controls a loop started with Start.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// Start runs the loop on a new goroutine. Only use it with hosts that have
// no thread affinity; OpenGL hosts must call Run from the main goroutine.
func (d *Driver) Start(ctx context.Context) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(h.done)
		h.err = d.Run(ctx)
	}()
	return h
}

// Stop cancels the loop and waits for it to exit.
func (h *Handle) Stop() error {
	h.cancel()
	return h.Wait()
}

// Wait blocks until the loop exits and returns its error.
func (h *Handle) Wait() error {
	<-h.done
	return h.err
}

// Done is closed when the loop has exited.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}
