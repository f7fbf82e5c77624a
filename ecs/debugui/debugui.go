// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// It manages ImGui rendering and input state through ECS components and systems.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/kestrel/ecs"
	"github.com/plus3/kestrel/gfx"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	ecs.Base
	Render func()
}

func NewImguiItem(render func()) *ImguiItem {
	return &ImguiItem{Base: ecs.NewBase(ImguiItemType), Render: render}
}

func (i *ImguiItem) Clone() (ecs.Component, error) {
	return ecs.CloneComponent(i)
}

// ImguiInputState tracks Dear ImGui's input capture state.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem queries all ImguiItem components and defers their render functions.
// It also refreshes Input with the current input capture state.
type ImguiSystem struct {
	Input ImguiInputState
}

func (i *ImguiSystem) Types() []ecs.ComponentType {
	return []ecs.ComponentType{ImguiItemType}
}

// Execute updates input state and queues all ImGui render functions for execution.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) error {
	i.Input.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
	i.Input.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()

	for _, e := range frame.Entities {
		item, ok := ecs.Get[*ImguiItem](e, ImguiItemType)
		if !ok || item.Render == nil {
			continue
		}
		frame.Commands.Defer(item.Render)
	}
	return nil
}

// PanelContext is what debug panels render from.
type PanelContext struct {
	World     *ecs.World
	Scheduler *ecs.Scheduler
	// Graphics is optional.
	Graphics  *gfx.GraphicsSystem
	DeltaTime float64
	// Selected is shared by the entity browser and the component inspector.
	Selected ecs.EntityId
	// TypeFilter is set by the type viewer and narrows the entity browser.
	TypeFilter ecs.ComponentType
}

// Panel is implemented by the debug window components.
type Panel interface {
	ecs.Component
	Render(ctx *PanelContext)
}

// DebugUISystem renders every panel component in the world. Rendering is
// deferred to the end of the frame, after the world is unlocked.
type DebugUISystem struct {
	Context PanelContext
}

func NewDebugUISystem(world *ecs.World, scheduler *ecs.Scheduler, graphics *gfx.GraphicsSystem) *DebugUISystem {
	return &DebugUISystem{Context: PanelContext{World: world, Scheduler: scheduler, Graphics: graphics}}
}

// Types is empty: panels have distinct types, so every entity is inspected.
func (s *DebugUISystem) Types() []ecs.ComponentType {
	return nil
}

func (s *DebugUISystem) Execute(frame *ecs.UpdateFrame) error {
	panels := collectPanels(frame.Entities)
	if len(panels) == 0 {
		return nil
	}
	dt := frame.DeltaTime
	frame.Commands.Defer(func() {
		s.Context.DeltaTime = dt
		for _, p := range panels {
			p.Render(&s.Context)
		}
	})
	return nil
}

// collectPanels returns the panels attached to entities, in entity order.
func collectPanels(entities []*ecs.Entity) []Panel {
	var panels []Panel
	for _, e := range entities {
		for _, c := range e.Components() {
			if p, ok := c.(Panel); ok {
				panels = append(panels, p)
			}
		}
	}
	return panels
}

var (
	_ ecs.System = (*ImguiSystem)(nil)
	_ ecs.System = (*DebugUISystem)(nil)
)
