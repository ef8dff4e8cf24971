// Package debugui provides Dear ImGui inspector panels for tetris sessions: a live view of a
// Snapshot and the runner's per-operation timings.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
)

// InputState tracks Dear ImGui's input capture state for the current frame.
// Games should ignore keyboard input for play while WantCaptureKeyboard is set.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay collects render functions and runs them once per frame inside an ImGui frame.
type Overlay struct {
	items []func()
	input InputState
}

// Add registers a render function called on every Render.
func (o *Overlay) Add(render func()) {
	o.items = append(o.items, render)
}

// Render updates the input state and runs every registered item in order.
// It must be called between the backend's BeginFrame and EndFrame.
func (o *Overlay) Render() {
	io := imgui.CurrentIO()
	o.input = InputState{
		WantCaptureMouse:    io.WantCaptureMouse(),
		WantCaptureKeyboard: io.WantCaptureKeyboard(),
	}

	for _, render := range o.items {
		render()
	}
}

// Input returns the capture state observed by the last Render.
func (o *Overlay) Input() InputState { return o.input }
