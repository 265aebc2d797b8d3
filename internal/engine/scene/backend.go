package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/corevessel/internal/engine/material"
	"github.com/Faultbox/corevessel/internal/engine/mesh"
)

// MeshHandle identifies a mesh uploaded to a Backend. Zero is never a valid
// handle.
type MeshHandle uint32

// Backend is the GPU side of the scene. The GL renderer implements it; tests
// use a recording fake.
type Backend interface {
	// Upload copies m to the GPU.
	Upload(m *mesh.Mesh) (MeshHandle, error)
	// Release frees an uploaded mesh. Releasing zero is a no-op.
	Release(h MeshHandle)
	// BeginFrame sets the per-frame uniforms.
	BeginFrame(u FrameUniforms)
	// Draw submits one mesh with its material and model matrix.
	Draw(h MeshHandle, m material.Material, model mgl32.Mat4)
}
