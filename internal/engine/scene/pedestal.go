package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/corevessel/internal/config"
	"github.com/Faultbox/corevessel/internal/engine/mesh"
)

// Tier is one pedestal slab: a closed unit cylinder scaled to Radius and
// HalfHeight and centred at CenterY.
type Tier struct {
	Name       string
	Radius     float32
	HalfHeight float32
	CenterY    float32
}

// unitCylinder is the object-space box of the tube and disk meshes.
var unitCylinder = mesh.Bounds{
	Min: [3]float32{-1, -1, -1},
	Max: [3]float32{1, 1, 1},
}

// PedestalTiers stacks the configured tiers downward from cfg.TopY. Each
// tier's centre is derived from its height, so its top face sits exactly on
// the previous tier's bottom face.
func PedestalTiers(cfg config.PedestalConfig) []Tier {
	tiers := make([]Tier, 0, len(cfg.Tiers))
	top := cfg.TopY
	for _, tc := range cfg.Tiers {
		t := Tier{
			Name:       tc.Name,
			Radius:     tc.Radius,
			HalfHeight: tc.HalfHeight,
			CenterY:    top - tc.HalfHeight,
		}
		tiers = append(tiers, t)
		top -= 2 * tc.HalfHeight
	}
	return tiers
}

// Model is T(0, CenterY, 0) * S(Radius, HalfHeight, Radius).
func (t Tier) Model() mgl32.Mat4 {
	return mgl32.Translate3D(0, t.CenterY, 0).
		Mul4(mgl32.Scale3D(t.Radius, t.HalfHeight, t.Radius))
}

// Bounds returns the world-space bottom and top of the tier, computed from
// its transform.
func (t Tier) Bounds() (bottom, top float32) {
	b := mesh.TransformBounds(unitCylinder, t.Model())
	return b.Min[1], b.Max[1]
}
