// Package renderer draws the scene graph as a wireframe preview with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/chewxy/math32"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/islandview/internal/scene"
	"github.com/Faultbox/islandview/pkg/math"
)

// Presenter shows the finished frame, e.g. by swapping window buffers.
type Presenter interface {
	SwapBuffers()
}

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	FOV        float32 // vertical, degrees
	Near       float32
	Far        float32
	Background [3]float32
}

// mesh is the GPU copy of one renderable's wireframe.
type mesh struct {
	vao uint32
	vbo uint32
}

// Renderer is a scene.Host backed by OpenGL. AddRenderable may run on any
// goroutine; GPU uploads happen lazily inside Render on the GL thread.
type Renderer struct {
	config    Config
	graph     *scene.Graph
	presenter Presenter
	log       *zap.Logger

	program  uint32
	locMVP   int32
	locColor int32

	meshes map[uuid.UUID]mesh
}

// New creates a renderer adding into graph and presenting through p.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config, graph *scene.Graph, p Presenter, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{
		config:    cfg,
		graph:     graph,
		presenter: p,
		log:       log,
		meshes:    make(map[uuid.UUID]mesh),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	bg := cfg.Background
	gl.ClearColor(bg[0], bg[1], bg[2], 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.program, err = compileProgram(lineVertexShader, lineFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.locMVP = uniform(r.program, "uMVP")
	r.locColor = uniform(r.program, "uColor")

	log.Debug("shader program created", zap.Uint32("program", r.program))
	return r, nil
}

// AddRenderable places rd in the renderer's graph.
func (r *Renderer) AddRenderable(rd *scene.Renderable, p scene.Pose) {
	r.graph.Add(rd, p)
}

// Close releases GPU resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer", zap.Int("meshes", len(r.meshes)))
	for _, m := range r.meshes {
		gl.DeleteVertexArrays(1, &m.vao)
		gl.DeleteBuffers(1, &m.vbo)
	}
	r.meshes = nil
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Projection returns the perspective matrix for the current viewport.
func (r *Renderer) Projection() math.Mat4 {
	aspect := float32(1)
	if r.config.Height > 0 {
		aspect = float32(r.config.Width) / float32(r.config.Height)
	}
	return math.Perspective(r.config.FOV*math32.Pi/180, aspect, r.config.Near, r.config.Far)
}

// Render draws g from v and presents the frame.
func (r *Renderer) Render(g *scene.Graph, v scene.Viewer) error {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	viewProj := r.Projection().Mul(v.ViewMatrix())

	gl.UseProgram(r.program)
	for _, n := range g.Nodes() {
		m, ok := r.meshes[n.Renderable.ID]
		if !ok {
			m = r.upload(n.Renderable)
			r.meshes[n.Renderable.ID] = m
		}

		mvp := viewProj.Mul(n.Pose.Matrix())
		gl.UniformMatrix4fv(r.locMVP, 1, false, mvp.Ptr())
		c := n.Renderable.Color
		gl.Uniform3f(r.locColor, c[0], c[1], c[2])

		gl.BindVertexArray(m.vao)
		gl.DrawArrays(gl.LINES, 0, wireframeVertexCount)
	}
	gl.BindVertexArray(0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%x", code)
	}

	if r.presenter != nil {
		r.presenter.SwapBuffers()
	}
	return nil
}

// upload creates the VAO/VBO for a renderable's bounds.
func (r *Renderer) upload(rd *scene.Renderable) mesh {
	vertices := wireframeVertices(rd.Bounds)

	var m mesh
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.log.Debug("mesh uploaded",
		zap.String("name", rd.Name),
		zap.String("kind", string(rd.Kind)),
		zap.Uint32("vao", m.vao),
	)
	return m
}
