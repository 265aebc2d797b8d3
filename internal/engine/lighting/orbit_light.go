// Package lighting provides the single movable point light of the scene.
package lighting

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// OrbitLight circles the Y axis at a fixed height, or hangs still above the
// origin when orbiting is off.
type OrbitLight struct {
	Angle    float32 // degrees
	Speed    float32 // degrees per frame
	Distance float32
	Height   float32
	Orbiting bool
}

// DefaultOrbitLight starts stationary, 5 units out and 3 up.
func DefaultOrbitLight() OrbitLight {
	return OrbitLight{
		Speed:    1,
		Distance: 5,
		Height:   3,
	}
}

// Advance moves the light along its orbit by frames 60 Hz frames. A
// stationary light keeps its angle.
func (l *OrbitLight) Advance(frames float32) {
	if !l.Orbiting {
		return
	}
	l.Angle = math32.Mod(l.Angle+l.Speed*frames, 360)
	if l.Angle < 0 {
		l.Angle += 360
	}
}

// Toggle starts or stops orbiting.
func (l *OrbitLight) Toggle() {
	l.Orbiting = !l.Orbiting
}

// Position returns the light's world position.
func (l *OrbitLight) Position() mgl32.Vec3 {
	if !l.Orbiting {
		return mgl32.Vec3{0, l.Height, 0}
	}
	rad := mgl32.DegToRad(l.Angle)
	return mgl32.Vec3{
		l.Distance * math32.Sin(rad),
		l.Height,
		l.Distance * math32.Cos(rad),
	}
}
