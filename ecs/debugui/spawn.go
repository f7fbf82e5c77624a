package debugui

import "github.com/plus3/kestrel/ecs"

// SpawnDebugUI spawns one entity per debug window.
func SpawnDebugUI(world *ecs.World) error {
	panels := []ecs.Component{
		NewEntityBrowserComponent(100),
		NewComponentInspectorComponent(),
		NewTypeViewerComponent(),
		NewPerformanceStatsComponent(120),
		NewQueryDebuggerComponent(),
	}
	for _, p := range panels {
		if _, err := world.Spawn(p); err != nil {
			return err
		}
	}
	return nil
}

// RegisterDebugUIComponents registers the debug window components and
// ImguiItem with registry.
func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) error {
	return firstError(
		ecs.RegisterComponent(registry, func() *ImguiItem { return NewImguiItem(nil) }),
		ecs.RegisterComponent(registry, func() *EntityBrowserComponent { return NewEntityBrowserComponent(100) }),
		ecs.RegisterComponent(registry, NewComponentInspectorComponent),
		ecs.RegisterComponent(registry, NewTypeViewerComponent),
		ecs.RegisterComponent(registry, func() *PerformanceStatsComponent { return NewPerformanceStatsComponent(120) }),
		ecs.RegisterComponent(registry, NewQueryDebuggerComponent),
	)
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
