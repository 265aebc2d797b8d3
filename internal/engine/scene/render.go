package scene

import (
	"fmt"

	"github.com/Faultbox/corevessel/internal/engine/material"
)

// Materials resolves material names. *material.Library satisfies it.
type Materials interface {
	Get(name material.Name) (material.Material, error)
}

// Render submits f to b, one draw per object, in the frame's order.
func Render(f Frame, meshes *MeshSet, lib Materials, b Backend) error {
	b.BeginFrame(f.FrameUniforms)
	for _, o := range f.Objects {
		h, ok := meshes.Handle(o.Mesh)
		if !ok {
			return fmt.Errorf("object %s: no mesh %s", o.Name, o.Mesh)
		}
		m, err := lib.Get(o.Material)
		if err != nil {
			return fmt.Errorf("object %s: %w", o.Name, err)
		}
		b.Draw(h, m, o.Model)
	}
	return nil
}
