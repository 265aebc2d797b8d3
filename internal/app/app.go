// Package app wires the window, renderer and states into the main loop.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/corevessel/internal/app/states"
	"github.com/Faultbox/corevessel/internal/config"
	"github.com/Faultbox/corevessel/internal/engine/hud"
	"github.com/Faultbox/corevessel/internal/engine/input"
	"github.com/Faultbox/corevessel/internal/engine/material"
	"github.com/Faultbox/corevessel/internal/engine/renderer"
	"github.com/Faultbox/corevessel/internal/engine/texture"
	"github.com/Faultbox/corevessel/internal/engine/window"
	"github.com/Faultbox/corevessel/internal/logger"
)

// Title is the window title.
const Title = "Core Vessel"

// App is the viewer instance.
type App struct {
	cfg      *config.Config
	window   *window.Window
	renderer *renderer.Renderer
	overlay  *renderer.Overlay
	input    *input.Input
	states   *states.Manager
}

// New opens the window, initializes GL and queues the loading screen.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	a := &App{cfg: cfg}

	var err error
	a.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Samples:    4,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context the window just made current.
	width, height := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		ClearColor: cfg.Graphics.ClearColor,
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	font := hud.NewFont()
	a.overlay, err = renderer.NewOverlay(font)
	if err != nil {
		a.renderer.Close()
		a.window.Close()
		return nil, fmt.Errorf("failed to create overlay: %w", err)
	}

	a.input = input.New()
	a.states = states.NewManager()

	ui := hud.NewContext(font)
	loader := texture.NewLoader(states.TextureRequests(cfg.Textures), cfg.Textures.LoadTimeout)
	a.states.Change(states.NewLoadingState(a.states, a.renderer, a.overlay, ui, loader,
		func(lib *material.Library) states.State {
			return states.NewRenderingState(cfg, a.states, a.renderer, a.overlay, ui, lib)
		}))

	logger.Info("viewer initialized")
	return a, nil
}

// Run drives the loop until the window closes or Esc is pressed.
func (a *App) Run() error {
	var frameBudget time.Duration
	if a.cfg.Graphics.FPSLimit > 0 && !a.cfg.Graphics.VSync {
		frameBudget = time.Second / time.Duration(a.cfg.Graphics.FPSLimit)
	}

	lastTime := time.Now()
	logger.Info("starting main loop")

	for {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		a.input.Update()
		if a.input.QuitRequested() || a.states.Done() {
			break
		}
		if _, _, ok := a.input.Resized(); ok {
			// Resize events carry window points; GL wants pixels.
			w, h := a.window.DrawableSize()
			a.renderer.Resize(w, h)
		}

		err := a.states.HandleInput(states.Input{
			Actions: a.input.Actions(),
			Pointer: a.pointer(),
		})
		if err != nil {
			return fmt.Errorf("input error: %w", err)
		}
		if a.states.Done() {
			break
		}

		if err := a.states.Update(dt); err != nil {
			return fmt.Errorf("update error: %w", err)
		}
		if err := a.states.Render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		a.window.SwapBuffers()

		if frameBudget > 0 {
			if spare := frameBudget - time.Since(now); spare > 0 {
				time.Sleep(spare)
			}
		}
	}
	return nil
}

// pointer converts the mouse position from window points to drawable
// pixels, which differ on high-DPI displays.
func (a *App) pointer() hud.Pointer {
	p := a.input.Pointer()
	w, _ := a.window.DrawableSize()
	if ww, _ := a.window.Size(); ww > 0 && ww != w {
		scale := float32(w) / float32(ww)
		p.X *= scale
		p.Y *= scale
	}
	return p
}

// Close releases everything in reverse order of creation.
func (a *App) Close() {
	logger.Info("closing viewer")

	if a.states != nil {
		if err := a.states.Close(); err != nil {
			logger.Warn("state exit failed", zap.Error(err))
		}
	}
	if a.overlay != nil {
		a.overlay.Close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
