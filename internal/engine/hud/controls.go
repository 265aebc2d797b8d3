package hud

import (
	"fmt"

	"github.com/Faultbox/corevessel/internal/engine/scene"
)

const (
	panelWidth  = 260
	panelHeight = 330
	buttonWidth = 118
)

// Status is the read-only information shown under the controls.
type Status struct {
	Resolution int
	FPS        float32
}

type button struct {
	label  string
	action scene.Action
}

var buttonRows = [][2]button{
	{{"Pulse [1]", scene.ActionTogglePulse}, {"Shards [2]", scene.ActionToggleShardSpeed}},
	{{"Light [L]", scene.ActionToggleLight}, {"Proj [P]", scene.ActionToggleProjection}},
	{{"Orbit < [Q]", scene.ActionOrbitLeft}, {"Orbit > [E]", scene.ActionOrbitRight}},
	{{"Detail - [-]", scene.ActionResolutionDown}, {"Detail + [=]", scene.ActionResolutionUp}},
	{{"Reset [R]", scene.ActionResetCamera}, {"Shot [F12]", scene.ActionScreenshot}},
}

// Controls draws the vessel panel. Slider drags are written to s directly;
// button clicks are returned as actions for the caller to apply.
func Controls(c *Context, s *scene.State, st Status) []scene.Action {
	var actions []scene.Action

	c.BeginPanel("controls", Rect{10, 10, panelWidth, panelHeight}, "Core Vessel")
	defer c.EndPanel()

	for _, row := range buttonRows {
		c.Row(rowDefault)
		for _, b := range row {
			if c.Button(b.action.String(), buttonWidth, b.label) {
				actions = append(actions, b.action)
			}
		}
	}

	c.Row(16)
	c.Label(fmt.Sprintf("Shard radius x%.1f", s.RadiusFactor))
	c.Row(16)
	if v, ok := c.Slider("radius", 0, s.RadiusFactor,
		scene.MinRadiusFactor, scene.MaxRadiusFactor, scene.RadiusFactorStep); ok {
		s.SetRadiusFactor(v)
	}

	c.Row(16)
	c.Label(fmt.Sprintf("Shard speed x%.2f", s.SpeedFactor))
	c.Row(16)
	if v, ok := c.Slider("speed", 0, s.SpeedFactor,
		scene.MinSpeedFactor, scene.MaxSpeedFactor, scene.SpeedFactorStep); ok {
		s.SetSpeedFactor(v)
	}

	c.Row(14)
	c.LabelColored(fmt.Sprintf("Resolution %d", st.Resolution), ColorTextDim)
	c.Row(14)
	c.LabelColored(fmt.Sprintf("%s  light %s", s.Projection.Mode, lightMode(s.Light.Orbiting)), ColorTextDim)
	c.Row(14)
	c.LabelColored(fmt.Sprintf("FPS %.0f", st.FPS), ColorTextDim)

	return actions
}

// Loading draws a centered progress panel.
func Loading(c *Context, completed, expected int) {
	w, h := c.ScreenSize()
	r := Rect{(w - 320) / 2, (h - 70) / 2, 320, 70}

	c.BeginPanel("loading", r, "Loading textures")
	defer c.EndPanel()

	fraction := float32(1)
	if expected > 0 {
		fraction = float32(completed) / float32(expected)
	}
	c.Row(20)
	c.ProgressBar(fraction, 0, fmt.Sprintf("%d / %d", completed, expected))
}

func lightMode(orbiting bool) string {
	if orbiting {
		return "orbit"
	}
	return "fixed"
}
