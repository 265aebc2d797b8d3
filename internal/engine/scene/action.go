package scene

// Action is a discrete user command from the keyboard or the HUD.
type Action int

const (
	ActionNone Action = iota
	ActionMoveForward
	ActionMoveBack
	ActionStrafeLeft
	ActionStrafeRight
	ActionTurnLeft
	ActionTurnRight
	ActionOrbitLeft
	ActionOrbitRight
	ActionResetCamera
	ActionTogglePulse
	ActionToggleShardSpeed
	ActionToggleLight
	ActionToggleProjection
	ActionRadiusUp
	ActionRadiusDown
	ActionSpeedUp
	ActionSpeedDown
	ActionResolutionUp
	ActionResolutionDown
	ActionScreenshot
	ActionToggleHUD
	ActionQuit
)

var actionNames = map[Action]string{
	ActionNone:             "none",
	ActionMoveForward:      "move-forward",
	ActionMoveBack:         "move-back",
	ActionStrafeLeft:       "strafe-left",
	ActionStrafeRight:      "strafe-right",
	ActionTurnLeft:         "turn-left",
	ActionTurnRight:        "turn-right",
	ActionOrbitLeft:        "orbit-left",
	ActionOrbitRight:       "orbit-right",
	ActionResetCamera:      "reset-camera",
	ActionTogglePulse:      "toggle-pulse",
	ActionToggleShardSpeed: "toggle-shard-speed",
	ActionToggleLight:      "toggle-light",
	ActionToggleProjection: "toggle-projection",
	ActionRadiusUp:         "radius-up",
	ActionRadiusDown:       "radius-down",
	ActionSpeedUp:          "speed-up",
	ActionSpeedDown:        "speed-down",
	ActionResolutionUp:     "resolution-up",
	ActionResolutionDown:   "resolution-down",
	ActionScreenshot:       "screenshot",
	ActionToggleHUD:        "toggle-hud",
	ActionQuit:             "quit",
}

func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return "unknown"
}

// Apply performs the actions that only touch State and reports whether a
// was one of them. Resolution, screenshot, HUD and quit belong to the
// caller.
func (s *State) Apply(a Action) bool {
	switch a {
	case ActionMoveForward:
		s.Camera.Move(1, 0)
	case ActionMoveBack:
		s.Camera.Move(-1, 0)
	case ActionStrafeLeft:
		s.Camera.Move(0, -1)
	case ActionStrafeRight:
		s.Camera.Move(0, 1)
	case ActionTurnLeft:
		s.Camera.Yaw(1)
	case ActionTurnRight:
		s.Camera.Yaw(-1)
	case ActionOrbitLeft:
		s.Camera.Orbit(1)
	case ActionOrbitRight:
		s.Camera.Orbit(-1)
	case ActionResetCamera:
		s.Camera.Reset()
	case ActionTogglePulse:
		s.TogglePulse()
	case ActionToggleShardSpeed:
		s.ToggleShardSpeeds()
	case ActionToggleLight:
		s.Light.Toggle()
	case ActionToggleProjection:
		s.Projection.Toggle()
	case ActionRadiusUp:
		s.SetRadiusFactor(s.RadiusFactor + RadiusFactorStep)
	case ActionRadiusDown:
		s.SetRadiusFactor(s.RadiusFactor - RadiusFactorStep)
	case ActionSpeedUp:
		s.SetSpeedFactor(s.SpeedFactor + SpeedFactorStep)
	case ActionSpeedDown:
		s.SetSpeedFactor(s.SpeedFactor - SpeedFactorStep)
	default:
		return false
	}
	return true
}
