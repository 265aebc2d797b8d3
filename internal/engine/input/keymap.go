package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/corevessel/internal/engine/scene"
)

type binding struct {
	action scene.Action
	repeat bool // fire again on key auto-repeat
}

func defaultKeymap() map[sdl.Scancode]binding {
	return map[sdl.Scancode]binding{
		sdl.SCANCODE_W:     {scene.ActionMoveForward, true},
		sdl.SCANCODE_S:     {scene.ActionMoveBack, true},
		sdl.SCANCODE_A:     {scene.ActionStrafeLeft, true},
		sdl.SCANCODE_D:     {scene.ActionStrafeRight, true},
		sdl.SCANCODE_LEFT:  {scene.ActionTurnLeft, true},
		sdl.SCANCODE_RIGHT: {scene.ActionTurnRight, true},
		sdl.SCANCODE_Q:     {scene.ActionOrbitLeft, true},
		sdl.SCANCODE_E:     {scene.ActionOrbitRight, true},

		sdl.SCANCODE_1: {scene.ActionTogglePulse, false},
		sdl.SCANCODE_2: {scene.ActionToggleShardSpeed, false},
		sdl.SCANCODE_R: {scene.ActionResetCamera, false},
		sdl.SCANCODE_L: {scene.ActionToggleLight, false},
		sdl.SCANCODE_P: {scene.ActionToggleProjection, false},
		sdl.SCANCODE_H: {scene.ActionToggleHUD, false},

		sdl.SCANCODE_EQUALS:   {scene.ActionResolutionUp, false},
		sdl.SCANCODE_KP_PLUS:  {scene.ActionResolutionUp, false},
		sdl.SCANCODE_MINUS:    {scene.ActionResolutionDown, false},
		sdl.SCANCODE_KP_MINUS: {scene.ActionResolutionDown, false},

		sdl.SCANCODE_RIGHTBRACKET: {scene.ActionRadiusUp, true},
		sdl.SCANCODE_LEFTBRACKET:  {scene.ActionRadiusDown, true},
		sdl.SCANCODE_PERIOD:       {scene.ActionSpeedUp, true},
		sdl.SCANCODE_COMMA:        {scene.ActionSpeedDown, true},

		sdl.SCANCODE_F12:    {scene.ActionScreenshot, false},
		sdl.SCANCODE_ESCAPE: {scene.ActionQuit, false},
	}
}
