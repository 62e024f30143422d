package renderer

import "github.com/Faultbox/islandview/internal/scene"

// wireframeVertexCount is the number of vertices for a box wireframe (12 edges × 2).
const wireframeVertexCount = 24

// wireframeVertices creates line vertices for a wireframe bounding box,
// format: [x, y, z] per vertex.
func wireframeVertices(b scene.AABB) []float32 {
	minX, minY, minZ, maxX, maxY, maxZ := b[0], b[1], b[2], b[3], b[4], b[5]
	return []float32{
		// Bottom face (4 edges)
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face (4 edges)
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges (4 edges)
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}
