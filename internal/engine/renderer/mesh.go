package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/corevessel/internal/engine/mesh"
)

// gpuMesh is an uploaded mesh: one VAO over an interleaved VBO, plus an
// EBO for indexed meshes.
type gpuMesh struct {
	vao, vbo, ebo uint32
	count         int32
	topology      mesh.Topology
}

func uploadMesh(m *mesh.Mesh) (*gpuMesh, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}

	gm := &gpuMesh{topology: m.Topology}

	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)

	gl.GenBuffers(1, &gm.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	stride := int(unsafe.Sizeof(mesh.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*stride, gl.Ptr(m.Vertices), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(stride), 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(stride), 3*4)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, int32(stride), 6*4)
	gl.EnableVertexAttribArray(2)

	if m.Indexed() {
		gl.GenBuffers(1, &gm.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)
		gm.count = int32(len(m.Indices))
	} else {
		gm.count = int32(len(m.Vertices))
	}

	gl.BindVertexArray(0)
	return gm, nil
}

func (g *gpuMesh) draw() {
	gl.BindVertexArray(g.vao)
	switch g.topology {
	case mesh.TriangleStrip:
		gl.DrawArrays(gl.TRIANGLE_STRIP, 0, g.count)
	default:
		gl.DrawElements(gl.TRIANGLES, g.count, gl.UNSIGNED_INT, nil)
	}
	gl.BindVertexArray(0)
}

func (g *gpuMesh) triangles() int {
	if g.topology == mesh.TriangleStrip {
		return int(g.count) - 2
	}
	return int(g.count) / 3
}

func (g *gpuMesh) delete() {
	if g.ebo != 0 {
		gl.DeleteBuffers(1, &g.ebo)
	}
	gl.DeleteBuffers(1, &g.vbo)
	gl.DeleteVertexArrays(1, &g.vao)
}
