// Package scene owns the vessel's animation state, turns it into per-frame
// draw lists and submits them to a Backend.
package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/corevessel/internal/config"
	"github.com/Faultbox/corevessel/internal/engine/camera"
	"github.com/Faultbox/corevessel/internal/engine/lighting"
)

// ShardCount is the number of orbiting shards.
const ShardCount = 4

// Slider ranges for the two shard factors.
const (
	MinRadiusFactor  = 0.5
	MaxRadiusFactor  = 2.0
	RadiusFactorStep = 0.1
	MinSpeedFactor   = 0
	MaxSpeedFactor   = 3.0
	SpeedFactorStep  = 0.25
)

// Shard is one orbiting crystal.
type Shard struct {
	Angle   float32 // degrees in [0, 360)
	Speed   float32 // degrees per frame before the 0.1 scale
	YOffset float32
}

// Params are the fixed animation constants, copied from config.
type Params struct {
	CoreRadius     float32
	CoreOffsetY    float32
	RotateSpeed    float32
	PulseSpeed     float32
	PulseSpeedAlt  float32
	PulseAmplitude float32
	PulseFrequency float32
	BobSpeed       float32
	BobAmplitude   float32
	BobFrequency   float32
	ShardOrbit     float32
	ShardSpeeds    [ShardCount]float32
	ShardSpeedsAlt [ShardCount]float32
	MaxFrameStep   float32
}

// ParamsFromConfig extracts the animation constants.
func ParamsFromConfig(c config.SceneConfig) Params {
	return Params{
		CoreRadius:     c.CoreRadius,
		CoreOffsetY:    c.CoreOffsetY,
		RotateSpeed:    c.RotateSpeed,
		PulseSpeed:     c.PulseSpeed,
		PulseSpeedAlt:  c.PulseSpeedAlt,
		PulseAmplitude: c.PulseAmplitude,
		PulseFrequency: c.PulseFrequency,
		BobSpeed:       c.BobSpeed,
		BobAmplitude:   c.BobAmplitude,
		BobFrequency:   c.BobFrequency,
		ShardOrbit:     c.ShardOrbit,
		ShardSpeeds:    c.ShardSpeeds,
		ShardSpeedsAlt: c.ShardSpeedsFast,
		MaxFrameStep:   c.MaxFrameStep,
	}
}

// State is everything that changes between frames. It is owned by the
// render thread.
type State struct {
	CoreAngle  float32 // degrees
	PulsePhase float32
	BobPhase   float32
	PulseSpeed float32

	Shards       [ShardCount]Shard
	FastShards   bool
	RadiusFactor float32
	SpeedFactor  float32

	Light      lighting.OrbitLight
	LightPos   mgl32.Vec3 // light position for the frame being drawn
	Camera     camera.Camera
	Projection camera.Projection

	Params Params
}

// NewState builds the start-of-run state from cfg.
func NewState(cfg *config.Config) *State {
	p := ParamsFromConfig(cfg.Scene)

	s := &State{
		PulseSpeed:   p.PulseSpeed,
		RadiusFactor: 1,
		SpeedFactor:  1,
		Light: lighting.OrbitLight{
			Speed:    cfg.Light.Speed,
			Distance: cfg.Light.Distance,
			Height:   cfg.Light.Height,
			Orbiting: cfg.Light.Orbiting,
		},
		Camera: camera.New(camera.Settings{
			Eye:       cfg.Camera.Eye,
			At:        cfg.Camera.At,
			Up:        cfg.Camera.Up,
			MoveSpeed: cfg.Camera.MoveSpeed,
			TurnSpeed: cfg.Camera.TurnSpeed,
		}),
		Projection: camera.Projection{
			Mode:      camera.Perspective,
			FovY:      cfg.Camera.FovY,
			Near:      cfg.Camera.Near,
			Far:       cfg.Camera.Far,
			OrthoSize: cfg.Camera.OrthoSize,
		},
		Params: p,
	}
	if cfg.Camera.Orthographic {
		s.Projection.Mode = camera.Orthographic
	}
	s.LightPos = s.Light.Position()
	for i := range s.Shards {
		s.Shards[i] = Shard{
			Angle:   wrapDegrees(cfg.Scene.ShardAngles[i]),
			Speed:   p.ShardSpeeds[i],
			YOffset: cfg.Scene.ShardYOffsets[i],
		}
	}
	return s
}

// Advance steps the animation by frames 60 Hz frames. The step is clamped
// to [0, MaxFrameStep] so a stall does not fling the shards around.
func (s *State) Advance(frames float32) {
	if frames < 0 {
		frames = 0
	}
	if limit := s.Params.MaxFrameStep; limit > 0 && frames > limit {
		frames = limit
	}

	s.CoreAngle = wrapDegrees(s.CoreAngle + s.Params.RotateSpeed*0.01*frames)
	s.PulsePhase = wrapPhase(s.PulsePhase+s.PulseSpeed*frames, s.Params.PulseFrequency)
	s.BobPhase = wrapPhase(s.BobPhase+s.Params.BobSpeed*frames, s.Params.BobFrequency)

	for i := range s.Shards {
		sh := &s.Shards[i]
		sh.Angle = wrapDegrees(sh.Angle + sh.Speed*0.1*s.SpeedFactor*frames)
	}

	// The frame is lit from where the light was before this step.
	s.LightPos = s.Light.Position()
	s.Light.Advance(frames)
}

// TogglePulse switches between the normal and the slow pulse.
func (s *State) TogglePulse() {
	if s.PulseSpeed == s.Params.PulseSpeed {
		s.PulseSpeed = s.Params.PulseSpeedAlt
	} else {
		s.PulseSpeed = s.Params.PulseSpeed
	}
}

// ToggleShardSpeeds switches the shards between their two speed sets.
func (s *State) ToggleShardSpeeds() {
	s.FastShards = !s.FastShards
	speeds := s.Params.ShardSpeeds
	if s.FastShards {
		speeds = s.Params.ShardSpeedsAlt
	}
	for i := range s.Shards {
		s.Shards[i].Speed = speeds[i]
	}
}

// SetRadiusFactor clamps and stores the shard orbit scale.
func (s *State) SetRadiusFactor(f float32) {
	s.RadiusFactor = mgl32.Clamp(f, MinRadiusFactor, MaxRadiusFactor)
}

// SetSpeedFactor clamps and stores the shard speed scale.
func (s *State) SetSpeedFactor(f float32) {
	s.SpeedFactor = mgl32.Clamp(f, MinSpeedFactor, MaxSpeedFactor)
}

// ShardRadius is the current orbit radius.
func (s *State) ShardRadius() float32 {
	return s.Params.ShardOrbit * s.RadiusFactor
}

// wrapPhase keeps a phase inside one period of sin(phase*freq) so float32
// steps do not vanish as the phase grows.
func wrapPhase(phase, freq float32) float32 {
	period := 2 * math32.Pi
	if f := math32.Abs(freq); f > 0 {
		period /= f
	}
	phase = math32.Mod(phase, period)
	if phase < 0 {
		phase += period
	}
	return phase
}

func wrapDegrees(a float32) float32 {
	a = math32.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}
