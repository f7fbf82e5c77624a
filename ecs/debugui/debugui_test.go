package debugui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/kestrel/ecs"
)

const (
	posType    ecs.ComponentType = "pos"
	healthType ecs.ComponentType = "health"
)

func newTestWorld(t *testing.T) (*ecs.World, []*ecs.Entity) {
	t.Helper()
	world := ecs.NewWorld(nil)

	var entities []*ecs.Entity
	for _, types := range [][]ecs.ComponentType{
		{posType},
		{posType, healthType},
		{healthType},
		{posType, healthType, ecs.TransformType},
	} {
		var comps []ecs.Component
		for _, typ := range types {
			if typ == ecs.TransformType {
				comps = append(comps, ecs.NewTransform())
				continue
			}
			comps = append(comps, ecs.NewTag(typ))
		}
		e, err := world.Spawn(comps...)
		require.NoError(t, err)
		entities = append(entities, e)
	}
	return world, entities
}

func ids(infos []EntityInfo) []ecs.EntityId {
	out := make([]ecs.EntityId, len(infos))
	for i, info := range infos {
		out[i] = info.ID
	}
	return out
}

func TestEntityBrowser(t *testing.T) {
	world, entities := newTestWorld(t)
	eb := NewEntityBrowserComponent(2)
	eb.rebuildCacheIfNeeded(world)

	t.Run("cache lists entities by id", func(t *testing.T) {
		assert.Equal(t, []ecs.EntityId{1, 2, 3, 4}, ids(eb.cache.entities))
		assert.Equal(t, []string{"health", "pos"}, eb.cache.entities[1].ComponentTypes)
		assert.Equal(t, 3, eb.cache.entities[3].ComponentCount)
	})

	t.Run("cache is reused until the world changes", func(t *testing.T) {
		eb.cache.entities = eb.cache.entities[:1]
		eb.rebuildCacheIfNeeded(world)
		assert.Len(t, eb.cache.entities, 1)

		_, err := world.Delete(entities[0].ID())
		require.NoError(t, err)
		eb.rebuildCacheIfNeeded(world)
		assert.Equal(t, []ecs.EntityId{2, 3, 4}, ids(eb.cache.entities))
	})

	t.Run("sort by count descending", func(t *testing.T) {
		eb.cache.sortColumn = 2
		eb.cache.sortAscending = false
		eb.sortEntities()
		assert.Equal(t, []ecs.EntityId{4, 2, 3}, ids(eb.cache.entities))

		eb.cache.sortColumn = 0
		eb.cache.sortAscending = true
		eb.sortEntities()
	})

	t.Run("filters", func(t *testing.T) {
		eb.filterText = "TRANS"
		assert.Equal(t, []ecs.EntityId{4}, ids(eb.getFilteredEntities()))

		eb.filterText = "3"
		assert.Equal(t, []ecs.EntityId{3}, ids(eb.getFilteredEntities()))

		eb.filterText = ""
		eb.filterType = posType
		assert.Equal(t, []ecs.EntityId{2, 4}, ids(eb.getFilteredEntities()))
		eb.filterType = ""
	})

	t.Run("pages", func(t *testing.T) {
		assert.Equal(t, 2, eb.totalPages(3))

		start, end := eb.pageRange(3)
		assert.Equal(t, 0, start)
		assert.Equal(t, 2, end)

		eb.currentPage = 5
		start, end = eb.pageRange(3)
		assert.Equal(t, 1, eb.currentPage, "page is clamped")
		assert.Equal(t, 2, start)
		assert.Equal(t, 3, end)

		start, end = eb.pageRange(0)
		assert.Equal(t, 0, start)
		assert.Equal(t, 0, end)

		unpaged := NewEntityBrowserComponent(0)
		start, end = unpaged.pageRange(7)
		assert.Equal(t, 0, start)
		assert.Equal(t, 7, end)
	})
}

func TestTypeViewer(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	ecs.MustRegisterComponent(registry, ecs.NewTransform)
	world := ecs.NewWorld(registry)
	_, err := world.Spawn(ecs.NewTransform())
	require.NoError(t, err)
	_, err = world.Spawn(ecs.NewTransform())
	require.NoError(t, err)

	tv := NewTypeViewerComponent()
	tv.rebuildCacheIfNeeded(world)
	require.Len(t, tv.cache.types, 1)
	assert.Equal(t, TypeInfo{Type: ecs.TransformType, Registered: true, EntityCount: 2}, tv.cache.types[0])

	t.Run("unregistered types in an open world", func(t *testing.T) {
		open, _ := newTestWorld(t)
		tv := NewTypeViewerComponent()
		tv.rebuildCacheIfNeeded(open)

		var got []ecs.ComponentType
		for _, info := range tv.cache.types {
			assert.False(t, info.Registered)
			got = append(got, info.Type)
		}
		assert.Equal(t, []ecs.ComponentType{posType, healthType, ecs.TransformType}, got, "most used first")

		tv.sortColumn = 0
		tv.sortAscending = true
		tv.sortTypes()
		assert.Equal(t, healthType, tv.cache.types[0].Type)
	})
}

func TestQueryDebugger(t *testing.T) {
	world, _ := newTestWorld(t)
	qd := NewQueryDebuggerComponent()
	qd.rebuildCacheIfNeeded(world)

	assert.Equal(t, []ecs.ComponentType{healthType, posType, ecs.TransformType}, qd.cache.componentTypes)

	qd.selectedComponentTypes[posType] = true
	qd.selectedComponentTypes[healthType] = true
	selected := qd.selectedTypes()
	assert.Equal(t, []ecs.ComponentType{healthType, posType}, selected)
	assert.Len(t, world.Query(selected...), 2)
}

func TestPerformanceStats(t *testing.T) {
	ps := NewPerformanceStatsComponent(4)
	assert.Equal(t, float32(0), ps.averageFrameTime())

	ps.record(0.010)
	ps.record(0.010)
	assert.InDelta(t, 5.0, ps.averageFrameTime(), 1e-4)

	for i := 0; i < 4; i++ {
		ps.record(0.020)
	}
	assert.InDelta(t, 20.0, ps.averageFrameTime(), 1e-4)
	assert.Equal(t, 2, ps.frameIndex)

	assert.Equal(t, 1, NewPerformanceStatsComponent(0).historyFrames)
}

func TestDebugUISystem(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	require.NoError(t, RegisterDebugUIComponents(registry))
	require.NoError(t, RegisterDebugUIComponents(registry), "registering twice is harmless")

	world := ecs.NewWorld(registry)
	require.NoError(t, SpawnDebugUI(world))
	assert.Equal(t, 5, world.Len())

	entities := world.Query()
	panels := collectPanels(entities)
	require.Len(t, panels, 5)
	assert.Equal(t, EntityBrowserType, panels[0].Type())
	assert.Equal(t, QueryDebuggerType, panels[4].Type())

	sys := NewDebugUISystem(world, nil, nil)
	assert.Nil(t, sys.Types())

	frame := &ecs.UpdateFrame{DeltaTime: 0.016, Entities: entities, Commands: &ecs.Commands{}, World: world}
	require.NoError(t, sys.Execute(frame))
	assert.Equal(t, 1, frame.Commands.Len(), "rendering is deferred")

	frame = &ecs.UpdateFrame{Commands: &ecs.Commands{}, World: world}
	require.NoError(t, sys.Execute(frame))
	assert.Equal(t, 0, frame.Commands.Len())
}

func TestImguiItemClone(t *testing.T) {
	calls := 0
	item := NewImguiItem(func() { calls++ })
	c, err := item.Clone()
	require.NoError(t, err)
	c.(*ImguiItem).Render()
	assert.Equal(t, 1, calls)
}
