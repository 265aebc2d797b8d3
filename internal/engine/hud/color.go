package hud

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Theme colors.
var (
	ColorPanelBg      = Color{0.06, 0.07, 0.10, 0.85}
	ColorPanelBorder  = Color{0.30, 0.34, 0.45, 1}
	ColorButtonNormal = Color{0.15, 0.16, 0.22, 1}
	ColorButtonHover  = Color{0.24, 0.27, 0.36, 1}
	ColorButtonActive = Color{0.10, 0.36, 0.52, 1}
	ColorTrack        = Color{0.04, 0.05, 0.08, 1}
	ColorText         = Color{0.90, 0.92, 0.95, 1}
	ColorTextDim      = Color{0.55, 0.58, 0.66, 1}
	ColorHighlight    = Color{0.25, 0.70, 0.95, 1}
)
