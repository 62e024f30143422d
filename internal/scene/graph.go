package scene

import "sync"

// Node is a renderable placed at a pose.
type Node struct {
	Renderable *Renderable
	Pose       Pose
}

// Graph is the ordered set of placed renderables. Loaders add to it from
// their own goroutines while the frame loop reads it.
type Graph struct {
	mu      sync.RWMutex
	nodes   []Node
	version uint64
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{}
}

// Add appends r at pose p.
func (g *Graph) Add(r *Renderable, p Pose) {
	g.mu.Lock()
	g.nodes = append(g.nodes, Node{Renderable: r, Pose: p})
	g.version++
	g.mu.Unlock()
}

// Nodes returns a snapshot of the graph.
func (g *Graph) Nodes() []Node {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// Version increases on every Add; renderers use it to skip re-uploads.
func (g *Graph) Version() uint64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.version
}

// Find returns the first node with the given name.
func (g *Graph) Find(name string) (Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	for _, n := range g.nodes {
		if n.Renderable.Name == name {
			return n, true
		}
	}
	return Node{}, false
}
