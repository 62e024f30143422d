package scene

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Faultbox/islandview/pkg/math"
)

// Viewer is the camera a host renders from.
type Viewer interface {
	ViewMatrix() math.Mat4
}

// Host accepts placed renderables and draws a graph from a viewpoint.
// AddRenderable may be called from any goroutine; Render is only called from
// the frame loop.
type Host interface {
	AddRenderable(r *Renderable, p Pose)
	Render(g *Graph, v Viewer) error
}

// HeadlessHost is a Host without a display. It keeps the graph and counts frames.
type HeadlessHost struct {
	graph  *Graph
	frames atomic.Uint64
	log    *zap.Logger
}

// NewHeadlessHost creates a headless host adding into graph.
func NewHeadlessHost(graph *Graph, log *zap.Logger) *HeadlessHost {
	if log == nil {
		log = zap.NewNop()
	}
	return &HeadlessHost{graph: graph, log: log}
}

// AddRenderable places r in the host's graph.
func (h *HeadlessHost) AddRenderable(r *Renderable, p Pose) {
	h.graph.Add(r, p)
	h.log.Debug("renderable added",
		zap.String("name", r.Name),
		zap.String("kind", string(r.Kind)),
		zap.Int("nodes", h.graph.Len()),
	)
}

// Render counts the frame.
func (h *HeadlessHost) Render(g *Graph, v Viewer) error {
	h.frames.Add(1)
	return nil
}

// Frames returns the number of frames rendered.
func (h *HeadlessHost) Frames() uint64 {
	return h.frames.Load()
}
