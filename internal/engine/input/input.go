// Package input turns SDL2 events into viewer controls.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Controls is the viewer input gathered for one frame.
type Controls struct {
	Quit bool

	// Throttle is -1, 0 or 1 from the arrow keys held this frame.
	Throttle float64

	// DistanceSteps counts +/- presses: positive widens the viewing window.
	DistanceSteps int

	ToggleOverlayAlpha bool

	Resized       bool
	Width, Height int
}

// Input polls SDL events.
type Input struct {
	controls Controls
}

// New creates a new input handler.
func New() *Input {
	return &Input{}
}

// Update drains the SDL event queue and samples the held keys.
func (i *Input) Update() Controls {
	i.controls = Controls{}

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.controls.Quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.controls.Resized = true
				i.controls.Width = int(e.Data1)
				i.controls.Height = int(e.Data2)
			}

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
				continue
			}
			i.keyDown(e.Keysym.Scancode)
		}
	}

	keys := sdl.GetKeyboardState()
	if keys[sdl.SCANCODE_UP] != 0 || keys[sdl.SCANCODE_W] != 0 {
		i.controls.Throttle++
	}
	if keys[sdl.SCANCODE_DOWN] != 0 || keys[sdl.SCANCODE_S] != 0 {
		i.controls.Throttle--
	}
	return i.controls
}

func (i *Input) keyDown(sc sdl.Scancode) {
	switch sc {
	case sdl.SCANCODE_ESCAPE:
		i.controls.Quit = true
	case sdl.SCANCODE_EQUALS, sdl.SCANCODE_KP_PLUS:
		i.controls.DistanceSteps++
	case sdl.SCANCODE_MINUS, sdl.SCANCODE_KP_MINUS:
		i.controls.DistanceSteps--
	case sdl.SCANCODE_O:
		i.controls.ToggleOverlayAlpha = !i.controls.ToggleOverlayAlpha
	}
}
