// Package camera provides the free-look viewer camera and the projection.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Settings are the camera's home pose and step sizes.
type Settings struct {
	Eye       mgl32.Vec3
	At        mgl32.Vec3
	Up        mgl32.Vec3
	MoveSpeed float32 // world units per step
	TurnSpeed float32 // degrees per step
}

// DefaultSettings looks at the origin from 20 units down -Z.
func DefaultSettings() Settings {
	return Settings{
		Eye:       mgl32.Vec3{0, 0, -20},
		At:        mgl32.Vec3{0, 0, 0},
		Up:        mgl32.Vec3{0, 1, 0},
		MoveSpeed: 0.5,
		TurnSpeed: 2,
	}
}

// OrbitMultiplier scales TurnSpeed for the coarse Orbit step.
const OrbitMultiplier = 3

// Camera is a look-at camera. Moving translates eye and target together;
// turning swings the target around the eye.
type Camera struct {
	Eye mgl32.Vec3
	At  mgl32.Vec3
	Up  mgl32.Vec3

	settings Settings
}

// New places a camera at its home pose.
func New(s Settings) Camera {
	if s.Up.Len() == 0 {
		s.Up = mgl32.Vec3{0, 1, 0}
	}
	return Camera{Eye: s.Eye, At: s.At, Up: s.Up, settings: s}
}

// Forward returns the unit view direction.
func (c *Camera) Forward() mgl32.Vec3 {
	v := c.At.Sub(c.Eye)
	if v.Len() < 1e-6 {
		return mgl32.Vec3{0, 0, 1}
	}
	return v.Normalize()
}

// Right returns the unit strafe direction, flattened onto the XZ plane.
func (c *Camera) Right() mgl32.Vec3 {
	r := c.Forward().Cross(c.Up)
	flat := mgl32.Vec3{r[0], 0, r[2]}
	if flat.Len() < 1e-6 {
		return mgl32.Vec3{1, 0, 0}
	}
	return flat.Normalize()
}

// Move steps the camera forward and right by the given number of steps.
// Negative values go backward and left.
func (c *Camera) Move(forward, right float32) {
	step := c.Forward().Mul(forward * c.settings.MoveSpeed).
		Add(c.Right().Mul(right * c.settings.MoveSpeed))
	c.Eye = c.Eye.Add(step)
	c.At = c.At.Add(step)
}

// Yaw turns the view direction about Up by steps*TurnSpeed degrees.
// Positive steps turn left.
func (c *Camera) Yaw(steps float32) {
	c.turn(steps * c.settings.TurnSpeed)
}

// Orbit is a coarse Yaw used by the on-screen orbit buttons.
func (c *Camera) Orbit(steps float32) {
	c.turn(steps * c.settings.TurnSpeed * OrbitMultiplier)
}

func (c *Camera) turn(degrees float32) {
	dist := c.At.Sub(c.Eye).Len()
	rot := mgl32.HomogRotate3D(mgl32.DegToRad(degrees), c.Up.Normalize())
	dir := rot.Mul4x1(c.Forward().Vec4(0)).Vec3().Normalize()
	c.At = c.Eye.Add(dir.Mul(dist))
}

// Reset returns to the home pose.
func (c *Camera) Reset() {
	c.Eye, c.At, c.Up = c.settings.Eye, c.settings.At, c.settings.Up
}

// View returns the world-to-eye matrix.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.At, c.Up)
}
