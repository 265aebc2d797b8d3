// Package mesh builds the procedural geometry of the vessel: the UV sphere
// core, the cylinder shell with its end-cap disks and the octahedral shard.
//
// Builders are pure: they return CPU-side vertex and index data and never
// touch the GPU. Uploading is the renderer's job.
package mesh

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidParameter is returned when a builder is asked for degenerate geometry.
var ErrInvalidParameter = errors.New("invalid mesh parameter")

// Topology tells the draw step which GPU primitive to submit.
type Topology int

const (
	// IndexedTriangles is a triangle list addressed through Indices.
	IndexedTriangles Topology = iota
	// TriangleStrip is a non-indexed strip drawn straight from Vertices.
	TriangleStrip
)

// String returns the topology name.
func (t Topology) String() string {
	switch t {
	case IndexedTriangles:
		return "indexed-triangles"
	case TriangleStrip:
		return "triangle-strip"
	default:
		return fmt.Sprintf("topology(%d)", int(t))
	}
}

// Vertex is one interleaved vertex: position, normal and texture coordinate.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Bounds is an axis-aligned bounding box in object space.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Mesh is immutable once a builder returns it.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Topology Topology
	Bounds   Bounds
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Indexed reports whether the mesh is drawn through an index buffer.
func (m *Mesh) Indexed() bool {
	return m.Topology == IndexedTriangles
}

// Positions returns the vertex positions as a separate slice.
func (m *Mesh) Positions() [][3]float32 {
	out := make([][3]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		out[i] = v.Position
	}
	return out
}

// Normals returns the vertex normals as a separate slice.
func (m *Mesh) Normals() [][3]float32 {
	out := make([][3]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		out[i] = v.Normal
	}
	return out
}

// TexCoords returns the vertex UVs as a separate slice.
func (m *Mesh) TexCoords() [][2]float32 {
	out := make([][2]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		out[i] = v.TexCoord
	}
	return out
}

// Validate checks the structural invariants of the mesh.
func (m *Mesh) Validate() error {
	if len(m.Vertices) == 0 {
		return fmt.Errorf("mesh %q: no vertices", m.Name)
	}
	switch m.Topology {
	case IndexedTriangles:
		if len(m.Indices) == 0 || len(m.Indices)%3 != 0 {
			return fmt.Errorf("mesh %q: index count %d is not a positive multiple of 3", m.Name, len(m.Indices))
		}
		for i, idx := range m.Indices {
			if int(idx) >= len(m.Vertices) {
				return fmt.Errorf("mesh %q: index %d at %d out of range (%d vertices)", m.Name, idx, i, len(m.Vertices))
			}
		}
	case TriangleStrip:
		if len(m.Indices) != 0 {
			return fmt.Errorf("mesh %q: triangle strip must not carry indices", m.Name)
		}
		if len(m.Vertices) < 3 {
			return fmt.Errorf("mesh %q: strip needs at least 3 vertices", m.Name)
		}
	default:
		return fmt.Errorf("mesh %q: unknown topology %v", m.Name, m.Topology)
	}
	return nil
}

// TransformBounds returns the world-space AABB of b under the transform m.
func TransformBounds(b Bounds, m mgl32.Mat4) Bounds {
	out := newBounds()
	for i := 0; i < 8; i++ {
		corner := mgl32.Vec3{b.Min[0], b.Min[1], b.Min[2]}
		if i&1 != 0 {
			corner[0] = b.Max[0]
		}
		if i&2 != 0 {
			corner[1] = b.Max[1]
		}
		if i&4 != 0 {
			corner[2] = b.Max[2]
		}
		p := mgl32.TransformCoordinate(corner, m)
		out.extend(p)
	}
	return out
}

func newBounds() Bounds {
	return Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
}

func (b *Bounds) extend(p [3]float32) {
	for k := 0; k < 3; k++ {
		if p[k] < b.Min[k] {
			b.Min[k] = p[k]
		}
		if p[k] > b.Max[k] {
			b.Max[k] = p[k]
		}
	}
}

func computeBounds(vertices []Vertex) Bounds {
	b := newBounds()
	for i := range vertices {
		b.extend(vertices[i].Position)
	}
	return b
}
