// Package viewer wires the window, input, camera rig, scene and frame loop
// into the island viewer.
package viewer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/islandview/internal/assets"
	"github.com/Faultbox/islandview/internal/config"
	"github.com/Faultbox/islandview/internal/engine/camera"
	"github.com/Faultbox/islandview/internal/engine/frame"
	"github.com/Faultbox/islandview/internal/engine/input"
	"github.com/Faultbox/islandview/internal/engine/renderer"
	"github.com/Faultbox/islandview/internal/engine/window"
	"github.com/Faultbox/islandview/internal/logger"
	"github.com/Faultbox/islandview/internal/scene"
	"github.com/Faultbox/islandview/pkg/math"
)

// Title is the window title.
const Title = "Island Viewer"

// Viewer is the running application.
type Viewer struct {
	cfg    *config.Config
	layout *scene.Layout

	window   *window.Window     // nil when headless
	renderer *renderer.Renderer // nil when headless
	host     scene.Host
	graph    *scene.Graph

	tracker *input.Tracker
	rig     camera.Rig
	loader  *assets.Loader

	events       []input.Event
	titleVersion uint64
	log          *zap.Logger
}

// New creates the viewer. In windowed mode it opens the window and GL context,
// so it must run on the main goroutine.
func New(cfg *config.Config) (*Viewer, error) {
	log := logger.Named("viewer")

	layout, err := scene.LoadLayout(cfg.Scene.Layout)
	if err != nil {
		return nil, fmt.Errorf("failed to load layout: %w", err)
	}

	rig, err := NewRig(cfg.Camera)
	if err != nil {
		return nil, err
	}

	v := &Viewer{
		cfg:     cfg,
		layout:  layout,
		graph:   scene.NewGraph(),
		rig:     rig,
		tracker: input.NewTracker(rig, logger.Named("input")),
		loader:  assets.NewLoader(cfg.Data.AssetRoots, cfg.Data.LoadWorkers, logger.Named("assets")),
		events:  make([]input.Event, 0, 16),
		log:     log,
	}

	if cfg.Graphics.Headless {
		v.host = scene.NewHeadlessHost(v.graph, logger.Named("scene"))
		log.Info("viewer initialized (headless)", zap.String("camera", cfg.Camera.Mode))
		return v, nil
	}

	// Create window (this also creates OpenGL context)
	v.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	}, logger.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		FOV:        cfg.Graphics.FOV,
		Near:       cfg.Graphics.Near,
		Far:        cfg.Graphics.Far,
		Background: layout.BackgroundColor(),
	}, v.graph, v.window, logger.Named("renderer"))
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	v.host = v.renderer

	log.Info("viewer initialized", zap.String("camera", cfg.Camera.Mode))
	return v, nil
}

// NewRig builds the camera rig selected by cfg.Mode.
func NewRig(cfg config.CameraConfig) (camera.Rig, error) {
	keys := camera.Bindings{
		Forward:  input.Key(cfg.Keys.Forward),
		Backward: input.Key(cfg.Keys.Backward),
		Left:     input.Key(cfg.Keys.Left),
		Right:    input.Key(cfg.Keys.Right),
		Up:       input.Key(cfg.Keys.Up),
	}

	switch cfg.Mode {
	case config.CameraFly:
		c := camera.NewFlyCamera()
		c.Position = math.V3(cfg.Start)
		c.LookAt(math.V3(cfg.Target))
		c.LookSensitivity = cfg.LookSensitivity
		c.MoveSpeed = cfg.MoveSpeed
		c.FlySpeed = cfg.FlySpeed
		c.Keys = keys
		return c, nil
	case config.CameraOrbit:
		c := camera.NewOrbitCamera()
		c.Center = math.V3(cfg.Target)
		c.SetEye(math.V3(cfg.Start))
		c.Keys = keys
		return c, nil
	default:
		return nil, fmt.Errorf("unknown camera mode %q", cfg.Mode)
	}
}

// NewPacer picks the frame pacer for cfg. Only a windowed host with vsync
// blocks on its buffer swap; headless runs tick at the default refresh rate
// unless an FPS limit is set.
func NewPacer(cfg config.GraphicsConfig) frame.Pacer {
	return frame.NewPacer(cfg.FPSLimit, cfg.VSync && !cfg.Headless)
}

// Run assembles the scene and drives frames until ctx is cancelled, the
// window is closed or a render fails. Pending loads are cancelled on return.
func (v *Viewer) Run(ctx context.Context) error {
	loadCtx, cancelLoads := context.WithCancel(ctx)
	defer func() {
		cancelLoads()
		v.loader.Wait()
	}()

	scene.Assemble(loadCtx, v.layout, v.host, v.loader, logger.Named("scene"))

	pacer := NewPacer(v.cfg.Graphics)
	if t, ok := pacer.(*frame.Ticker); ok {
		defer t.Stop()
	}

	cfg := frame.Config{
		Rig:      v.rig,
		Keys:     v.tracker.State(),
		Host:     v.host,
		Graph:    v.graph,
		Pacer:    pacer,
		MaxTicks: v.cfg.Graphics.MaxFrames,
		Logger:   logger.Named("frame"),
	}
	if v.window != nil {
		cfg.Events = v
	}

	driver, err := frame.New(cfg)
	if err != nil {
		return err
	}
	return driver.Run(ctx)
}

// Poll feeds pending window events to the tracker. It reports true when the
// window was closed or escape was pressed.
func (v *Viewer) Poll() bool {
	v.events = v.window.PollEvents(v.events)

	for _, e := range v.events {
		switch e.Type {
		case input.EventQuit:
			return true
		case input.EventKeyDown:
			if e.Key == input.KeyEscape {
				return true
			}
		case input.EventWindowResize:
			v.renderer.Resize(e.Width, e.Height)
		}
		v.tracker.Handle(e)
	}

	if ver := v.graph.Version(); ver != v.titleVersion {
		v.titleVersion = ver
		v.window.SetTitle(fmt.Sprintf("%s (%d objects)", Title, v.graph.Len()))
	}
	return false
}

// Graph returns the scene graph.
func (v *Viewer) Graph() *scene.Graph {
	return v.graph
}

// Close releases the window and GPU resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer", zap.Int("nodes", v.graph.Len()))

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
