// Package input turns SDL2 events into viewer actions.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/corevessel/internal/engine/hud"
	"github.com/Faultbox/corevessel/internal/engine/scene"
)

// Input collects one frame of events.
type Input struct {
	actions []scene.Action
	pointer hud.Pointer
	quit    bool
	resized bool
	width   int
	height  int
	keymap  map[sdl.Scancode]binding
}

// New creates an input handler with the default key bindings.
func New() *Input {
	return &Input{
		actions: make([]scene.Action, 0, 8),
		keymap:  defaultKeymap(),
	}
}

// Update drains the SDL event queue. It must run on the main thread.
func (i *Input) Update() {
	i.actions = i.actions[:0]
	i.pointer.Pressed = false
	i.pointer.Released = false
	i.resized = false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.resized = true
				i.width, i.height = int(e.Data1), int(e.Data2)
			}

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN {
				continue
			}
			b, ok := i.keymap[e.Keysym.Scancode]
			if !ok || (e.Repeat != 0 && !b.repeat) {
				continue
			}
			i.actions = append(i.actions, b.action)

		case *sdl.MouseMotionEvent:
			i.pointer.X, i.pointer.Y = float32(e.X), float32(e.Y)

		case *sdl.MouseButtonEvent:
			if e.Button != sdl.BUTTON_LEFT {
				continue
			}
			i.pointer.X, i.pointer.Y = float32(e.X), float32(e.Y)
			if e.Type == sdl.MOUSEBUTTONDOWN {
				i.pointer.Down = true
				i.pointer.Pressed = true
			} else {
				i.pointer.Down = false
				i.pointer.Released = true
			}
		}
	}
}

// Actions returns the key actions of the last Update, in arrival order.
func (i *Input) Actions() []scene.Action {
	return i.actions
}

// Pointer returns the left-button mouse state for the HUD.
func (i *Input) Pointer() hud.Pointer {
	return i.pointer
}

// QuitRequested reports whether the window was closed.
func (i *Input) QuitRequested() bool {
	return i.quit
}

// Resized reports a window size change during the last Update.
func (i *Input) Resized() (width, height int, ok bool) {
	return i.width, i.height, i.resized
}
