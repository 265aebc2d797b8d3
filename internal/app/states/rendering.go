package states

import (
	"go.uber.org/zap"

	"github.com/Faultbox/corevessel/internal/config"
	"github.com/Faultbox/corevessel/internal/engine/hud"
	"github.com/Faultbox/corevessel/internal/engine/material"
	"github.com/Faultbox/corevessel/internal/engine/scene"
	"github.com/Faultbox/corevessel/internal/engine/screenshot"
	"github.com/Faultbox/corevessel/internal/logger"
)

// framesPerSecond is the rate the animation constants are tuned for.
const framesPerSecond = 60

// RenderingState animates and draws the vessel.
type RenderingState struct {
	cfg     *config.Config
	manager *Manager
	surface Surface
	overlay Overlay
	ui      *hud.Context
	lib     *material.Library
	capture *screenshot.Capture

	state   *scene.State
	tiers   []scene.Tier
	meshes  *scene.MeshSet
	pointer hud.Pointer
	showHUD bool
	shoot   bool
	fps     fpsCounter
	log     *zap.Logger
}

// NewRenderingState creates the main view. Meshes are uploaded on Enter.
func NewRenderingState(cfg *config.Config, m *Manager, surface Surface, overlay Overlay,
	ui *hud.Context, lib *material.Library) *RenderingState {
	return &RenderingState{
		cfg:     cfg,
		manager: m,
		surface: surface,
		overlay: overlay,
		ui:      ui,
		lib:     lib,
		capture: screenshot.New(cfg.Screenshots.Dir, cfg.Screenshots.Prefix),
		showHUD: cfg.Graphics.ShowHUD,
		log:     logger.Named("render"),
	}
}

// Enter builds the scene state and uploads the vessel.
func (s *RenderingState) Enter() error {
	meshes, err := scene.BuildMeshes(s.cfg.Scene, s.surface)
	if err != nil {
		return err
	}
	s.meshes = meshes
	s.state = scene.NewState(s.cfg)
	s.tiers = scene.PedestalTiers(s.cfg.Pedestal)

	s.log.Info("entering RenderingState",
		zap.Int("tiers", len(s.tiers)),
		zap.Int("resolution", s.meshes.Core.Value()),
		zap.Stringer("projection", s.state.Projection.Mode))
	return nil
}

// Exit frees the uploaded meshes.
func (s *RenderingState) Exit() error {
	if s.meshes != nil {
		s.meshes.Release()
		s.meshes = nil
	}
	return nil
}

// HandleInput applies key actions in arrival order.
func (s *RenderingState) HandleInput(in Input) error {
	s.pointer = in.Pointer
	for _, a := range in.Actions {
		if err := s.do(a); err != nil {
			return err
		}
	}
	return nil
}

func (s *RenderingState) do(a scene.Action) error {
	if s.state.Apply(a) {
		s.log.Debug("action", zap.Stringer("action", a))
		return nil
	}

	switch a {
	case scene.ActionResolutionUp, scene.ActionResolutionDown:
		change := s.meshes.Core.Increase
		if a == scene.ActionResolutionDown {
			change = s.meshes.Core.Decrease
		}
		changed, err := change()
		if err != nil {
			// The previous core mesh is still live.
			s.log.Error("core rebuild failed", zap.Error(err))
			return nil
		}
		if changed {
			s.log.Info("core resolution", zap.Int("value", s.meshes.Core.Value()))
		}
	case scene.ActionScreenshot:
		s.shoot = true
	case scene.ActionToggleHUD:
		s.showHUD = !s.showHUD
	case scene.ActionQuit:
		s.manager.Quit()
	}
	return nil
}

// Update advances the animation by dt seconds.
func (s *RenderingState) Update(dt float64) error {
	s.state.Advance(float32(dt * framesPerSecond))
	if s.fps.tick(dt) {
		s.log.Debug("fps", zap.Float32("fps", s.fps.fps))
	}
	return nil
}

// Render draws the vessel, then the HUD, then saves a screenshot if one
// was requested.
func (s *RenderingState) Render() error {
	s.surface.Clear()

	frame := scene.Compose(s.state, s.tiers, s.lib, s.surface.Aspect())
	if err := scene.Render(frame, s.meshes, s.lib, s.surface); err != nil {
		return err
	}

	if s.showHUD {
		w, h := s.surface.Size()
		s.ui.Begin(s.pointer, w, h)
		actions := hud.Controls(s.ui, s.state, hud.Status{
			Resolution: s.meshes.Core.Value(),
			FPS:        s.fps.fps,
		})
		s.overlay.Draw(s.ui.End(), w, h)
		for _, a := range actions {
			if err := s.do(a); err != nil {
				return err
			}
		}
	}

	if s.shoot {
		s.shoot = false
		pixels, w, h := s.surface.ReadPixels()
		path, err := s.capture.Save(pixels, w, h)
		if err != nil {
			s.log.Error("screenshot failed", zap.Error(err))
		} else {
			s.log.Info("screenshot saved", zap.String("path", path))
		}
	}
	return nil
}

// Scene returns the animation state, nil before Enter.
func (s *RenderingState) Scene() *scene.State {
	return s.state
}

// Meshes returns the uploaded vessel, nil outside the state.
func (s *RenderingState) Meshes() *scene.MeshSet {
	return s.meshes
}

// HUDVisible reports whether the control panel is drawn.
func (s *RenderingState) HUDVisible() bool {
	return s.showHUD
}
