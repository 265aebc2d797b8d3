package export

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/corevessel/internal/engine/material"
	"github.com/Faultbox/corevessel/internal/engine/mesh"
	"github.com/Faultbox/corevessel/internal/engine/scene"
)

// Collector is a CPU-only scene.Backend. It keeps uploaded meshes in
// memory so the vessel can be built without a GL context.
type Collector struct {
	next   scene.MeshHandle
	meshes map[scene.MeshHandle]*mesh.Mesh
}

var _ scene.Backend = (*Collector)(nil)

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{meshes: make(map[scene.MeshHandle]*mesh.Mesh)}
}

// Upload implements scene.Backend.
func (c *Collector) Upload(m *mesh.Mesh) (scene.MeshHandle, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}
	c.next++
	c.meshes[c.next] = m
	return c.next, nil
}

// Release implements scene.Backend.
func (c *Collector) Release(h scene.MeshHandle) {
	delete(c.meshes, h)
}

// BeginFrame implements scene.Backend.
func (c *Collector) BeginFrame(scene.FrameUniforms) {}

// Draw implements scene.Backend.
func (c *Collector) Draw(scene.MeshHandle, material.Material, mgl32.Mat4) {}

// Live returns the number of meshes currently held.
func (c *Collector) Live() int {
	return len(c.meshes)
}
