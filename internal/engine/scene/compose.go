package scene

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/corevessel/internal/engine/material"
)

// MeshID names one of the vessel's GPU meshes.
type MeshID int

const (
	MeshCore MeshID = iota
	MeshShard
	MeshGlassSide
	MeshCapBottom
	MeshCapTop
	MeshTierSide
	MeshTierTop
	MeshTierBottom
	meshCount
)

var meshNames = [meshCount]string{
	"core", "shard", "glass-side", "cap-bottom", "cap-top",
	"tier-side", "tier-top", "tier-bottom",
}

func (id MeshID) String() string {
	if id >= 0 && id < meshCount {
		return meshNames[id]
	}
	return fmt.Sprintf("mesh(%d)", int(id))
}

// Object is one draw: a mesh, its material and its model matrix.
type Object struct {
	Name        string
	Mesh        MeshID
	Material    material.Name
	Model       mgl32.Mat4
	Transparent bool
}

// FrameUniforms are the values shared by every draw in a frame.
type FrameUniforms struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	LightPos   mgl32.Vec3
	Eye        mgl32.Vec3
}

// Frame is a composed frame. Objects are in submission order.
type Frame struct {
	FrameUniforms
	Objects []Object
}

// Vessel dimensions. The glass is the unit cylinder scaled to radius 4 and
// half-height 3; collars sit on its rims and the caps close its ends.
const (
	GlassRadius     = 4.0
	GlassHalfHeight = 3.0
	CollarRadius    = 4.02
	CollarHalfWidth = 0.2
	CapOffsetY      = 2.0
)

// Compose builds the frame for s on a viewport with the given aspect ratio.
// Transparency comes from mats, the same materials Render draws with.
func Compose(s *State, tiers []Tier, mats Materials, aspect float32) Frame {
	view := s.Camera.View()
	f := Frame{
		FrameUniforms: FrameUniforms{
			View:       view,
			Projection: s.Projection.Matrix(aspect),
			LightPos:   s.LightPos,
			Eye:        s.Camera.Eye,
		},
	}

	objs := make([]Object, 0, 6+ShardCount+3*len(tiers))
	add := func(name string, m MeshID, mat material.Name, model mgl32.Mat4) {
		objs = append(objs, Object{
			Name:        name,
			Mesh:        m,
			Material:    mat,
			Model:       model,
			Transparent: transparent(mats, mat),
		})
	}

	add("core", MeshCore, material.Core, CoreModel(s))
	for i := range s.Shards {
		add(fmt.Sprintf("shard-%d", i), MeshShard, material.Shards, ShardModel(s, i))
	}

	for _, y := range []float32{GlassHalfHeight, -GlassHalfHeight} {
		model := mgl32.Translate3D(0, y, 0).Mul4(mgl32.Scale3D(CollarRadius, CollarHalfWidth, CollarRadius))
		name := "collar-top"
		if y < 0 {
			name = "collar-bottom"
		}
		add(name, MeshGlassSide, material.MetalCollar, model)
	}

	add("cap-bottom", MeshCapBottom, material.MetalCap,
		mgl32.Translate3D(0, -CapOffsetY, 0).Mul4(mgl32.Scale3D(GlassRadius, 1, GlassRadius)))
	add("cap-top", MeshCapTop, material.MetalCap,
		mgl32.Translate3D(0, CapOffsetY, 0).Mul4(mgl32.Scale3D(GlassRadius, 1, GlassRadius)))

	for _, t := range tiers {
		m := t.Model()
		add("pedestal-"+t.Name+"-side", MeshTierSide, material.MetalCap, m)
		add("pedestal-"+t.Name+"-top", MeshTierTop, material.MetalCap, m)
		add("pedestal-"+t.Name+"-bottom", MeshTierBottom, material.MetalCap, m)
	}

	add("glass", MeshGlassSide, material.Glass, mgl32.Scale3D(GlassRadius, GlassHalfHeight, GlassRadius))

	f.Objects = DrawOrder(objs, view)
	return f
}

// CoreModel is T(offset) * S(pulse) * Ry(angle) * T(bob).
func CoreModel(s *State) mgl32.Mat4 {
	p := s.Params
	pulse := 1 + p.PulseAmplitude*math32.Sin(s.PulsePhase*p.PulseFrequency)
	bob := math32.Sin(s.BobPhase*p.BobFrequency) * p.BobAmplitude

	return mgl32.Translate3D(0, p.CoreOffsetY, 0).
		Mul4(mgl32.Scale3D(pulse, pulse, pulse)).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(s.CoreAngle))).
		Mul4(mgl32.Translate3D(0, bob, 0))
}

// ShardModel places shard i on its orbit and turns it against the orbit
// angle so it keeps facing the same way relative to the core.
func ShardModel(s *State, i int) mgl32.Mat4 {
	sh := s.Shards[i]
	r := s.ShardRadius()
	rad := mgl32.DegToRad(sh.Angle)

	return mgl32.Translate3D(r*math32.Sin(rad), sh.YOffset, r*math32.Cos(rad)).
		Mul4(mgl32.HomogRotate3DY(-rad))
}

// transparent reports whether name blends. Unknown names count as opaque;
// Render reports them.
func transparent(mats Materials, name material.Name) bool {
	m, err := mats.Get(name)
	return err == nil && m.Transparent()
}

// NormalMatrix is the inverse transpose of the upper 3x3 of view*model. It
// keeps normals perpendicular to surfaces under non-uniform scale.
func NormalMatrix(view, model mgl32.Mat4) mgl32.Mat3 {
	return view.Mul4(model).Mat3().Inv().Transpose()
}
