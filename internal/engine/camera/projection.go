package camera

import "github.com/go-gl/mathgl/mgl32"

// Mode selects perspective or orthographic projection.
type Mode int

const (
	Perspective Mode = iota
	Orthographic
)

// String returns the mode name.
func (m Mode) String() string {
	if m == Orthographic {
		return "orthographic"
	}
	return "perspective"
}

// Projection holds both projections' parameters and the active mode.
type Projection struct {
	Mode      Mode
	FovY      float32 // degrees
	Near      float32
	Far       float32
	OrthoSize float32 // half-height of the orthographic volume
}

// DefaultProjection is a 45 degree perspective with a 0.1..100 depth range.
func DefaultProjection() Projection {
	return Projection{
		Mode:      Perspective,
		FovY:      45,
		Near:      0.1,
		Far:       100,
		OrthoSize: 6,
	}
}

// Toggle flips between the two modes.
func (p *Projection) Toggle() {
	if p.Mode == Perspective {
		p.Mode = Orthographic
	} else {
		p.Mode = Perspective
	}
}

// Matrix returns the eye-to-clip matrix for the given width/height ratio.
func (p Projection) Matrix(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	if p.Mode == Orthographic {
		h := p.OrthoSize
		w := h * aspect
		return mgl32.Ortho(-w, w, -h, h, p.Near, p.Far)
	}
	return mgl32.Perspective(mgl32.DegToRad(p.FovY), aspect, p.Near, p.Far)
}
