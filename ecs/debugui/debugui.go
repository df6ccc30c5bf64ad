// Package debugui draws a Dear ImGui overlay over an ecs.Storage: an entity
// browser, a component inspector for the selected entity, and a performance
// panel. Panels render from deferred commands, so they see the storage after
// every system of the frame has run.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/worldsbelow/ecs"
)

// Panel is one ImGui window.
type Panel interface {
	Render()
}

// InputState tracks Dear ImGui's input capture state as a singleton.
// Drivers read it to stop game input while a panel has focus.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// OverlaySystem updates the InputState singleton and defers every panel's
// Render to the end of the frame.
type OverlaySystem struct {
	Panels     []Panel
	InputState *ecs.Singleton[InputState]
}

// Execute updates input state and queues all panel renders.
func (o *OverlaySystem) Execute(frame *ecs.UpdateFrame) {
	if o.InputState != nil {
		state := o.InputState.Get()
		state.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
		state.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()
	}

	for _, panel := range o.Panels {
		frame.Commands.Defer(panel.Render)
	}
}

// Install registers an OverlaySystem with the standard panels on scheduler.
// destroy, if non-nil, backs the entity browser's Destroy button. The returned
// singleton reports whether ImGui wants the keyboard or mouse.
func Install(storage *ecs.Storage, scheduler *ecs.Scheduler, destroy func(ecs.EntityId) error) *ecs.Singleton[InputState] {
	browser := NewEntityBrowser(storage, 100)
	browser.OnDestroy = destroy

	input := ecs.NewSingleton[InputState](storage)
	scheduler.Register(&OverlaySystem{
		Panels: []Panel{
			browser,
			NewComponentInspector(storage, browser.Selected),
			NewPerformanceStats(storage, scheduler, 120),
		},
		InputState: input,
	})
	return input
}
