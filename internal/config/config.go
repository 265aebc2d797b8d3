// Package config loads viewer settings from defaults, a YAML file and
// command-line flags, in that order of priority.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds every tunable of the viewer.
type Config struct {
	Graphics    GraphicsConfig    `yaml:"graphics"`
	Camera      CameraConfig      `yaml:"camera"`
	Scene       SceneConfig       `yaml:"scene"`
	Light       LightConfig       `yaml:"light"`
	Pedestal    PedestalConfig    `yaml:"pedestal"`
	Textures    TexturesConfig    `yaml:"textures"`
	Logging     LoggingConfig     `yaml:"logging"`
	Screenshots ScreenshotsConfig `yaml:"screenshots"`
}

// GraphicsConfig holds window and frame pacing settings.
type GraphicsConfig struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Fullscreen bool       `yaml:"fullscreen"`
	VSync      bool       `yaml:"vsync"`
	FPSLimit   int        `yaml:"fps_limit"`
	ClearColor [3]float32 `yaml:"clear_color"`
	ShowHUD    bool       `yaml:"show_hud"`
}

// CameraConfig holds the home pose and the projection.
type CameraConfig struct {
	Eye          [3]float32 `yaml:"eye"`
	At           [3]float32 `yaml:"at"`
	Up           [3]float32 `yaml:"up"`
	MoveSpeed    float32    `yaml:"move_speed"`
	TurnSpeed    float32    `yaml:"turn_speed"`
	FovY         float32    `yaml:"fovy"`
	Near         float32    `yaml:"near"`
	Far          float32    `yaml:"far"`
	OrthoSize    float32    `yaml:"ortho_size"`
	Orthographic bool       `yaml:"orthographic"`
}

// SceneConfig holds the animated objects' geometry and motion constants.
// Speeds are per 60 Hz frame.
type SceneConfig struct {
	CoreRadius      float32    `yaml:"core_radius"`
	CoreOffsetY     float32    `yaml:"core_offset_y"`
	RotateSpeed     float32    `yaml:"rotate_speed"`
	PulseSpeed      float32    `yaml:"pulse_speed"`
	PulseSpeedAlt   float32    `yaml:"pulse_speed_alt"`
	PulseAmplitude  float32    `yaml:"pulse_amplitude"`
	PulseFrequency  float32    `yaml:"pulse_frequency"`
	BobSpeed        float32    `yaml:"bob_speed"`
	BobAmplitude    float32    `yaml:"bob_amplitude"`
	BobFrequency    float32    `yaml:"bob_frequency"`
	ShardOrbit      float32    `yaml:"shard_orbit_radius"`
	ShardAngles     [4]float32 `yaml:"shard_angles"`
	ShardSpeeds     [4]float32 `yaml:"shard_speeds"`
	ShardSpeedsFast [4]float32 `yaml:"shard_speeds_fast"`
	ShardYOffsets   [4]float32 `yaml:"shard_y_offsets"`
	ShardHeight     float32    `yaml:"shard_height"`
	ShardRadius     float32    `yaml:"shard_radius"`
	CylinderSlices  int        `yaml:"cylinder_slices"`
	Resolution      int        `yaml:"resolution"`
	MinResolution   int        `yaml:"min_resolution"`
	MaxResolution   int        `yaml:"max_resolution"`
	MaxFrameStep    float32    `yaml:"max_frame_step"`
}

// LightConfig holds the point light orbit.
type LightConfig struct {
	Distance float32 `yaml:"distance"`
	Height   float32 `yaml:"height"`
	Speed    float32 `yaml:"speed"`
	Orbiting bool    `yaml:"orbiting"`
}

// PedestalConfig stacks tiers downward from TopY, first tier on top.
type PedestalConfig struct {
	TopY  float32      `yaml:"top_y"`
	Tiers []TierConfig `yaml:"tiers"`
}

// TierConfig is one pedestal slab.
type TierConfig struct {
	Name       string  `yaml:"name"`
	Radius     float32 `yaml:"radius"`
	HalfHeight float32 `yaml:"half_height"`
}

// TexturesConfig holds texture sources and the loading deadline.
type TexturesConfig struct {
	Glass       string        `yaml:"glass"`
	Metal       string        `yaml:"metal"`
	LoadTimeout time.Duration `yaml:"load_timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// ScreenshotsConfig holds screenshot output settings.
type ScreenshotsConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// Default returns the stock vessel.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   60,
			ClearColor: [3]float32{0.05, 0.05, 0.08},
			ShowHUD:    true,
		},
		Camera: CameraConfig{
			Eye:       [3]float32{0, 0, -20},
			At:        [3]float32{0, 0, 0},
			Up:        [3]float32{0, 1, 0},
			MoveSpeed: 0.5,
			TurnSpeed: 2,
			FovY:      45,
			Near:      0.1,
			Far:       100,
			OrthoSize: 6,
		},
		Scene: SceneConfig{
			CoreRadius:      1,
			CoreOffsetY:     0.6,
			RotateSpeed:     20,
			PulseSpeed:      0.08,
			PulseSpeedAlt:   0.02,
			PulseAmplitude:  0.05,
			PulseFrequency:  3,
			BobSpeed:        0.05,
			BobAmplitude:    0.1,
			BobFrequency:    4,
			ShardOrbit:      2.3,
			ShardAngles:     [4]float32{0, 90, 180, 270},
			ShardSpeeds:     [4]float32{1, 1.4, 1.8, 2.2},
			ShardSpeedsFast: [4]float32{2, 2.5, 3, 3.5},
			ShardYOffsets:   [4]float32{0.5, -0.3, 0.9, -0.1},
			ShardHeight:     1.2,
			ShardRadius:     0.35,
			CylinderSlices:  64,
			Resolution:      32,
			MinResolution:   4,
			MaxResolution:   64,
			MaxFrameStep:    4,
		},
		Light: LightConfig{
			Distance: 5,
			Height:   3,
			Speed:    1,
		},
		Pedestal: PedestalConfig{
			TopY: -3,
			Tiers: []TierConfig{
				{Name: "lip", Radius: 5.5, HalfHeight: 0.1},
				{Name: "riser", Radius: 5, HalfHeight: 0.5},
				{Name: "base", Radius: 6, HalfHeight: 1},
			},
		},
		Textures: TexturesConfig{
			Glass:       "assets/textures/glass.jpg",
			Metal:       "assets/textures/metal.jpg",
			LoadTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Screenshots: ScreenshotsConfig{
			Dir:    "screenshots",
			Prefix: "corevessel",
		},
	}
}

// Validate rejects settings the renderer cannot work with.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	g := c.Graphics
	check(g.Width > 0 && g.Height > 0, "graphics: window size %dx%d must be positive", g.Width, g.Height)
	check(g.FPSLimit >= 0, "graphics: fps_limit %d must not be negative", g.FPSLimit)

	cam := c.Camera
	check(cam.FovY > 0 && cam.FovY < 180, "camera: fovy %v out of (0, 180)", cam.FovY)
	check(cam.Near > 0 && cam.Far > cam.Near, "camera: depth range [%v, %v] invalid", cam.Near, cam.Far)
	check(cam.OrthoSize > 0, "camera: ortho_size %v must be positive", cam.OrthoSize)

	s := c.Scene
	check(s.CoreRadius > 0, "scene: core_radius %v must be positive", s.CoreRadius)
	check(s.ShardHeight > 0 && s.ShardRadius > 0, "scene: shard size %v x %v must be positive", s.ShardHeight, s.ShardRadius)
	check(s.CylinderSlices >= 3, "scene: cylinder_slices %d below 3", s.CylinderSlices)
	check(s.MinResolution >= 3, "scene: min_resolution %d below 3", s.MinResolution)
	check(s.MaxResolution >= s.MinResolution, "scene: resolution range [%d, %d] inverted", s.MinResolution, s.MaxResolution)
	check(s.MaxFrameStep > 0, "scene: max_frame_step %v must be positive", s.MaxFrameStep)

	check(c.Light.Distance >= 0, "light: distance %v must not be negative", c.Light.Distance)

	check(len(c.Pedestal.Tiers) > 0, "pedestal: no tiers")
	for i, t := range c.Pedestal.Tiers {
		check(t.Radius > 0 && t.HalfHeight > 0, "pedestal: tier %d (%s) size %v x %v must be positive", i, t.Name, t.Radius, t.HalfHeight)
	}

	check(c.Textures.LoadTimeout >= 0, "textures: load_timeout %v must not be negative", c.Textures.LoadTimeout)

	return errors.Join(errs...)
}
