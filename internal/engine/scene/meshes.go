package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/corevessel/internal/config"
	"github.com/Faultbox/corevessel/internal/engine/mesh"
	"github.com/Faultbox/corevessel/internal/logger"
)

// MeshSet holds every uploaded mesh of the vessel.
type MeshSet struct {
	backend Backend
	static  map[MeshID]MeshHandle
	cpu     map[MeshID]*mesh.Mesh
	Core    *CoreResolution
}

// BuildMeshes generates and uploads the vessel geometry.
func BuildMeshes(cfg config.SceneConfig, b Backend) (*MeshSet, error) {
	set := &MeshSet{
		backend: b,
		static:  make(map[MeshID]MeshHandle, meshCount),
		cpu:     make(map[MeshID]*mesh.Mesh, meshCount),
	}

	shard, err := mesh.Shard(cfg.ShardHeight, cfg.ShardRadius)
	if err != nil {
		return nil, err
	}
	cyl, err := mesh.Cylinder(cfg.CylinderSlices)
	if err != nil {
		return nil, err
	}
	tierSide, err := mesh.Tube(cfg.CylinderSlices, mesh.Outward)
	if err != nil {
		return nil, err
	}
	tierTop, err := mesh.Disk(1, 1, cfg.CylinderSlices)
	if err != nil {
		return nil, err
	}
	tierBottom, err := mesh.Disk(-1, -1, cfg.CylinderSlices)
	if err != nil {
		return nil, err
	}

	built := map[MeshID]*mesh.Mesh{
		MeshShard:      shard,
		MeshGlassSide:  cyl.Side,
		MeshCapBottom:  cyl.BottomCap,
		MeshCapTop:     cyl.TopCap,
		MeshTierSide:   tierSide,
		MeshTierTop:    tierTop,
		MeshTierBottom: tierBottom,
	}
	for id := MeshID(0); id < meshCount; id++ {
		m, ok := built[id]
		if !ok {
			continue
		}
		if err := m.Validate(); err != nil {
			set.Release()
			return nil, err
		}
		h, err := b.Upload(m)
		if err != nil {
			set.Release()
			return nil, fmt.Errorf("uploading %s: %w", id, err)
		}
		set.static[id] = h
		set.cpu[id] = m
	}

	set.Core, err = NewCoreResolution(b, cfg.CoreRadius, cfg.Resolution, cfg.MinResolution, cfg.MaxResolution)
	if err != nil {
		set.Release()
		return nil, err
	}

	logger.Info("vessel meshes uploaded",
		zap.Int("static", len(set.static)),
		zap.Int("core_resolution", set.Core.Value()))
	return set, nil
}

// Handle returns the GPU handle for id.
func (s *MeshSet) Handle(id MeshID) (MeshHandle, bool) {
	if id == MeshCore {
		if s.Core == nil || s.Core.Handle() == 0 {
			return 0, false
		}
		return s.Core.Handle(), true
	}
	h, ok := s.static[id]
	return h, ok
}

// Mesh returns the CPU copy of id.
func (s *MeshSet) Mesh(id MeshID) (*mesh.Mesh, bool) {
	if id == MeshCore {
		if s.Core == nil || s.Core.Mesh() == nil {
			return nil, false
		}
		return s.Core.Mesh(), true
	}
	m, ok := s.cpu[id]
	return m, ok
}

// Release frees every uploaded mesh.
func (s *MeshSet) Release() {
	for id, h := range s.static {
		s.backend.Release(h)
		delete(s.static, id)
	}
	if s.Core != nil {
		s.Core.Release()
	}
}
