package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/kestrel/ecs"
)

type TypeInfo struct {
	Type        ecs.ComponentType
	Registered  bool
	EntityCount int
}

type TypeViewerCache struct {
	types       []TypeInfo
	lastVersion uint64
	built       bool
}

func NewTypeViewerComponent() *TypeViewerComponent {
	return &TypeViewerComponent{
		Base:          ecs.NewBase(TypeViewerType),
		cache:         &TypeViewerCache{},
		sortColumn:    2,
		sortAscending: false,
	}
}

// Render lists every component type with its entity count. Selecting a row
// filters the entity browser to that type.
func (tv *TypeViewerComponent) Render(ctx *PanelContext) {
	if !imgui.BeginV("Component Types", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	tv.rebuildCacheIfNeeded(ctx.World)

	maxEntityCount := 0
	for _, info := range tv.cache.types {
		maxEntityCount = max(maxEntityCount, info.EntityCount)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("TypeTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Type")
		imgui.TableSetupColumn("Registered")
		imgui.TableSetupColumn("Entity Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			tv.sortColumn = int(spec.ColumnIndex())
			tv.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			tv.sortTypes()
			sortSpecs.SetSpecsDirty(false)
		}

		for _, info := range tv.cache.types {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := ctx.TypeFilter == info.Type
			if imgui.SelectableBoolV(string(info.Type), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				tv.selectedType = info.Type
				ctx.TypeFilter = info.Type
			}

			imgui.TableNextColumn()
			if info.Registered {
				imgui.Text("yes")
			} else {
				imgui.Text("-")
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", info.EntityCount))

			if maxEntityCount > 0 {
				barWidth := float32(info.EntityCount) / float32(maxEntityCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	imgui.End()
}

func (tv *TypeViewerComponent) rebuildCacheIfNeeded(world *ecs.World) {
	if tv.cache.built && tv.cache.lastVersion == world.Version() {
		return
	}
	tv.rebuildCache(world)
	tv.cache.lastVersion = world.Version()
	tv.cache.built = true
}

func (tv *TypeViewerComponent) rebuildCache(world *ecs.World) {
	stats := world.CollectStats()
	seen := make(map[ecs.ComponentType]int)
	tv.cache.types = tv.cache.types[:0]

	if reg := world.Registry(); reg != nil {
		for _, t := range reg.Types() {
			seen[t] = len(tv.cache.types)
			tv.cache.types = append(tv.cache.types, TypeInfo{Type: t, Registered: true})
		}
	}

	for t, count := range stats.ComponentCounts {
		if i, ok := seen[t]; ok {
			tv.cache.types[i].EntityCount = count
			continue
		}
		tv.cache.types = append(tv.cache.types, TypeInfo{Type: t, EntityCount: count})
	}

	tv.sortTypes()
}

func (tv *TypeViewerComponent) sortTypes() {
	sort.SliceStable(tv.cache.types, func(i, j int) bool {
		a, b := tv.cache.types[i], tv.cache.types[j]
		if !tv.sortAscending {
			a, b = b, a
		}

		switch tv.sortColumn {
		case 0:
			return a.Type < b.Type
		case 1:
			return !a.Registered && b.Registered
		default:
			if a.EntityCount == b.EntityCount {
				return a.Type < b.Type
			}
			return a.EntityCount < b.EntityCount
		}
	})
}

// SelectedType returns the type last clicked in the table.
func (tv *TypeViewerComponent) SelectedType() ecs.ComponentType {
	return tv.selectedType
}
