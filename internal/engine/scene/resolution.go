package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/corevessel/internal/engine/mesh"
	"github.com/Faultbox/corevessel/internal/logger"
)

// CoreResolution owns the core sphere and rebuilds it when the
// tessellation changes. A new sphere is built and uploaded before the old
// one is released, so there is always exactly one live handle.
type CoreResolution struct {
	backend Backend
	radius  float32
	min     int
	max     int

	value  int
	mesh   *mesh.Mesh
	handle MeshHandle
}

// NewCoreResolution builds the initial sphere with initial stacks and
// slices, clamped to [min, max].
func NewCoreResolution(b Backend, radius float32, initial, min, max int) (*CoreResolution, error) {
	if min < 3 {
		min = 3
	}
	if max < min {
		return nil, fmt.Errorf("core resolution range [%d, %d]: %w", min, max, mesh.ErrInvalidParameter)
	}

	r := &CoreResolution{backend: b, radius: radius, min: min, max: max}
	if err := r.rebuild(r.clamp(initial)); err != nil {
		return nil, err
	}
	return r, nil
}

// Value is the current stacks/slices count.
func (r *CoreResolution) Value() int { return r.value }

// Range returns the clamp bounds.
func (r *CoreResolution) Range() (min, max int) { return r.min, r.max }

// Handle is the live sphere.
func (r *CoreResolution) Handle() MeshHandle { return r.handle }

// Mesh is the CPU copy of the live sphere.
func (r *CoreResolution) Mesh() *mesh.Mesh { return r.mesh }

// Set clamps n and rebuilds the sphere if the value changes. It reports
// whether a rebuild happened. On error the previous sphere stays live.
func (r *CoreResolution) Set(n int) (bool, error) {
	n = r.clamp(n)
	if n == r.value {
		return false, nil
	}
	if err := r.rebuild(n); err != nil {
		return false, err
	}
	return true, nil
}

// Increase doubles the resolution.
func (r *CoreResolution) Increase() (bool, error) {
	return r.Set(r.value * 2)
}

// Decrease halves the resolution.
func (r *CoreResolution) Decrease() (bool, error) {
	return r.Set(r.value / 2)
}

// Release frees the live sphere.
func (r *CoreResolution) Release() {
	r.backend.Release(r.handle)
	r.handle = 0
	r.mesh = nil
}

func (r *CoreResolution) clamp(n int) int {
	if n < r.min {
		return r.min
	}
	if n > r.max {
		return r.max
	}
	return n
}

func (r *CoreResolution) rebuild(n int) error {
	m, err := mesh.Sphere(r.radius, n, n)
	if err != nil {
		return fmt.Errorf("building core sphere: %w", err)
	}
	h, err := r.backend.Upload(m)
	if err != nil {
		return fmt.Errorf("uploading core sphere: %w", err)
	}

	old := r.handle
	r.value, r.mesh, r.handle = n, m, h
	if old != 0 {
		r.backend.Release(old)
	}

	logger.Debug("core resolution set",
		zap.Int("resolution", n),
		zap.Int("vertices", m.VertexCount()))
	return nil
}
