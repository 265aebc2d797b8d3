// Package states implements the viewer's screens and the transitions
// between them.
package states

import (
	"image"

	"github.com/Faultbox/corevessel/internal/engine/hud"
	"github.com/Faultbox/corevessel/internal/engine/scene"
	"github.com/Faultbox/corevessel/internal/engine/texture"
)

// State is one screen of the viewer (loading, rendering).
type State interface {
	// Enter is called when entering this state.
	Enter() error

	// Exit is called when leaving this state.
	Exit() error

	// Update is called every frame with the elapsed seconds.
	Update(dt float64) error

	// Render is called every frame to draw the state.
	Render() error

	// HandleInput receives the frame's input before Update.
	HandleInput(in Input) error
}

// Input is one frame of user input.
type Input struct {
	Actions []scene.Action
	Pointer hud.Pointer
}

// Surface is the GL side the states draw through.
type Surface interface {
	scene.Backend
	Clear()
	Size() (width, height int)
	Aspect() float32
	UploadTexture(img *image.RGBA) texture.Handle
	ReadPixels() ([]byte, int, int)
}

// Overlay draws HUD lists over the frame.
type Overlay interface {
	Draw(list *hud.DrawList, width, height int)
}

// Manager manages state transitions.
type Manager struct {
	current State
	next    State
	quit    bool
}

// NewManager creates a new state manager.
func NewManager() *Manager {
	return &Manager{}
}

// Current returns the current state.
func (m *Manager) Current() State {
	return m.current
}

// Change schedules a state change for the next Update.
func (m *Manager) Change(next State) {
	m.next = next
}

// Quit asks the main loop to stop.
func (m *Manager) Quit() {
	m.quit = true
}

// Done reports whether Quit was called.
func (m *Manager) Done() bool {
	return m.quit
}

// HandleInput forwards in to the current state.
func (m *Manager) HandleInput(in Input) error {
	if m.current != nil {
		return m.current.HandleInput(in)
	}
	return nil
}

// Update processes state changes and updates current state.
func (m *Manager) Update(dt float64) error {
	if m.next != nil {
		if m.current != nil {
			if err := m.current.Exit(); err != nil {
				return err
			}
		}
		m.current = m.next
		m.next = nil
		if err := m.current.Enter(); err != nil {
			return err
		}
	}

	if m.current != nil {
		return m.current.Update(dt)
	}
	return nil
}

// Render renders the current state.
func (m *Manager) Render() error {
	if m.current != nil {
		return m.current.Render()
	}
	return nil
}

// Close exits the current state.
func (m *Manager) Close() error {
	if m.current == nil {
		return nil
	}
	err := m.current.Exit()
	m.current = nil
	return err
}
