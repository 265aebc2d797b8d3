// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// VesselVertexShader transforms vessel geometry and passes eye-space
// lighting vectors to the fragment stage.
//
//go:embed vessel.vert
var VesselVertexShader string

// VesselFragmentShader is per-fragment Blinn-Phong with an optional texture.
//
//go:embed vessel.frag
var VesselFragmentShader string

// HUDVertexShader places screen-space quads for the HUD.
//
//go:embed hud.vert
var HUDVertexShader string

// HUDFragmentShader draws vertex-colored HUD quads, optionally masked by
// the glyph atlas.
//
//go:embed hud.frag
var HUDFragmentShader string
