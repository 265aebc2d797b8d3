package states

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/corevessel/internal/config"
	"github.com/Faultbox/corevessel/internal/engine/hud"
	"github.com/Faultbox/corevessel/internal/engine/material"
	"github.com/Faultbox/corevessel/internal/engine/texture"
	"github.com/Faultbox/corevessel/internal/logger"
)

// TextureRequests lists the configured texture sources. Slots with an
// empty path are left untextured.
func TextureRequests(cfg config.TexturesConfig) []texture.Request {
	var reqs []texture.Request
	for _, r := range []texture.Request{
		{Name: string(material.GlassTexture), Path: cfg.Glass},
		{Name: string(material.MetalTexture), Path: cfg.Metal},
	} {
		if r.Path != "" {
			reqs = append(reqs, r)
		}
	}
	return reqs
}

// LoadingState uploads textures as the loader delivers them and moves on
// once every request has resolved.
type LoadingState struct {
	manager *Manager
	surface Surface
	overlay Overlay
	ui      *hud.Context
	loader  *texture.Loader
	next    func(lib *material.Library) State

	barrier  *texture.Barrier
	textures map[material.TextureSlot]texture.Handle
	pointer  hud.Pointer
	started  time.Time
	done     bool
}

// NewLoadingState creates the loading screen. next builds the state to
// switch to from the resolved materials.
func NewLoadingState(m *Manager, surface Surface, overlay Overlay, ui *hud.Context,
	loader *texture.Loader, next func(lib *material.Library) State) *LoadingState {
	return &LoadingState{
		manager: m,
		surface: surface,
		overlay: overlay,
		ui:      ui,
		loader:  loader,
		next:    next,
	}
}

// Enter starts the loads.
func (s *LoadingState) Enter() error {
	s.barrier = texture.NewBarrier(s.loader.Expected())
	s.textures = make(map[material.TextureSlot]texture.Handle)
	s.started = time.Now()
	s.done = false

	logger.Info("entering LoadingState", zap.Int("textures", s.loader.Expected()))
	s.loader.Start(context.Background())
	return nil
}

// Exit abandons any load still running.
func (s *LoadingState) Exit() error {
	s.loader.Stop()
	return nil
}

// HandleInput only tracks the pointer; the loading screen has no controls.
func (s *LoadingState) HandleInput(in Input) error {
	s.pointer = in.Pointer
	return nil
}

// Update uploads newly decoded images and switches state once the
// barrier completes.
func (s *LoadingState) Update(dt float64) error {
	for _, res := range s.loader.Poll() {
		img := res.Image
		if res.Err != nil || img == nil {
			logger.Warn("texture unavailable, using placeholder",
				zap.String("texture", res.Name),
				zap.String("path", res.Path),
				zap.Error(res.Err))
			img = texture.Placeholder()
		}
		s.textures[material.TextureSlot(res.Name)] = s.surface.UploadTexture(img)
		s.barrier.Complete()
	}

	if s.done || !s.barrier.Done() {
		return nil
	}
	s.done = true

	lib, err := material.NewLibrary(s.textures)
	if err != nil {
		return err
	}
	completed, expected := s.barrier.Counts()
	logger.Info("textures ready",
		zap.Int("completed", completed),
		zap.Int("expected", expected),
		zap.Duration("elapsed", time.Since(s.started)))
	s.manager.Change(s.next(lib))
	return nil
}

// Render draws the progress panel.
func (s *LoadingState) Render() error {
	s.surface.Clear()
	w, h := s.surface.Size()
	s.ui.Begin(s.pointer, w, h)
	completed, expected := s.barrier.Counts()
	hud.Loading(s.ui, completed, expected)
	s.overlay.Draw(s.ui.End(), w, h)
	return nil
}

// Progress returns the completed fraction.
func (s *LoadingState) Progress() float32 {
	return s.barrier.Progress()
}
