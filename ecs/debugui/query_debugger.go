package debugui

import (
	"fmt"
	"slices"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/kestrel/ecs"
)

const queryPreviewLimit = 50

type QueryDebuggerCache struct {
	componentTypes []ecs.ComponentType
	lastVersion    uint64
	built          bool
}

func NewQueryDebuggerComponent() *QueryDebuggerComponent {
	return &QueryDebuggerComponent{
		Base:                   ecs.NewBase(QueryDebuggerType),
		selectedComponentTypes: make(map[ecs.ComponentType]bool),
		cache:                  &QueryDebuggerCache{},
	}
}

func (qd *QueryDebuggerComponent) Render(ctx *PanelContext) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	qd.rebuildCacheIfNeeded(ctx.World)

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		clear(qd.selectedComponentTypes)
	}

	for _, compType := range qd.cache.componentTypes {
		selected := qd.selectedComponentTypes[compType]
		if imgui.Checkbox(string(compType), &selected) {
			if selected {
				qd.selectedComponentTypes[compType] = true
			} else {
				delete(qd.selectedComponentTypes, compType)
			}
		}
	}

	imgui.Separator()

	selectedTypes := qd.selectedTypes()
	if len(selectedTypes) == 0 {
		imgui.Text("No component types selected")
		imgui.End()
		return
	}

	matching := ctx.World.Query(selectedTypes...)
	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(matching)))

	if imgui.TreeNodeStr("Entity Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("QueryEntityTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Entity ID")
			imgui.TableSetupColumn("All Components")
			imgui.TableHeadersRow()

			for _, e := range matching[:min(len(matching), queryPreviewLimit)] {
				imgui.TableNextRow()

				imgui.TableSetColumnIndex(0)
				if imgui.SelectableBoolV(fmt.Sprintf("%d", e.ID()), ctx.Selected == e.ID(), imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
					ctx.Selected = e.ID()
				}

				imgui.TableSetColumnIndex(1)
				imgui.Text(fmt.Sprintf("%v", e.Types()))
			}

			imgui.EndTable()
		}
		if len(matching) > queryPreviewLimit {
			imgui.Text(fmt.Sprintf("... and %d more", len(matching)-queryPreviewLimit))
		}
		imgui.TreePop()
	}

	imgui.End()
}

// selectedTypes returns the checked types in sorted order.
func (qd *QueryDebuggerComponent) selectedTypes() []ecs.ComponentType {
	types := make([]ecs.ComponentType, 0, len(qd.selectedComponentTypes))
	for t := range qd.selectedComponentTypes {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

func (qd *QueryDebuggerComponent) rebuildCacheIfNeeded(world *ecs.World) {
	if qd.cache.built && qd.cache.lastVersion == world.Version() {
		return
	}
	qd.rebuildCache(world)
	qd.cache.lastVersion = world.Version()
	qd.cache.built = true
}

func (qd *QueryDebuggerComponent) rebuildCache(world *ecs.World) {
	typeMap := make(map[ecs.ComponentType]bool)

	if reg := world.Registry(); reg != nil {
		for _, t := range reg.Types() {
			typeMap[t] = true
		}
	}
	for t := range world.CollectStats().ComponentCounts {
		typeMap[t] = true
	}

	qd.cache.componentTypes = make([]ecs.ComponentType, 0, len(typeMap))
	for t := range typeMap {
		qd.cache.componentTypes = append(qd.cache.componentTypes, t)
	}

	slices.Sort(qd.cache.componentTypes)
}
