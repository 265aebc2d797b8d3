package lighting

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestStationary(t *testing.T) {
	l := DefaultOrbitLight()
	l.Advance(100)
	if l.Angle != 0 {
		t.Errorf("stationary light advanced to %f", l.Angle)
	}
	if p := l.Position(); p != (mgl32.Vec3{0, 3, 0}) {
		t.Errorf("position %v, want (0,3,0)", p)
	}
}

func TestOrbit(t *testing.T) {
	l := DefaultOrbitLight()
	l.Toggle()

	if p := l.Position(); !p.ApproxEqualThreshold(mgl32.Vec3{0, 3, 5}, 1e-4) {
		t.Errorf("start position %v, want (0,3,5)", p)
	}

	l.Advance(90)
	if p := l.Position(); !p.ApproxEqualThreshold(mgl32.Vec3{5, 3, 0}, 1e-4) {
		t.Errorf("quarter orbit position %v, want (5,3,0)", p)
	}

	l.Advance(300)
	if l.Angle < 0 || l.Angle >= 360 {
		t.Errorf("angle %f not wrapped", l.Angle)
	}
	if !mgl32.FloatEqualThreshold(l.Angle, 30, 1e-3) {
		t.Errorf("angle %f, want 30", l.Angle)
	}
}
