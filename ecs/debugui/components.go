package debugui

import (
	"github.com/plus3/kestrel/ecs"
)

const (
	ImguiItemType          ecs.ComponentType = "debugui.imgui_item"
	EntityBrowserType      ecs.ComponentType = "debugui.entity_browser"
	ComponentInspectorType ecs.ComponentType = "debugui.component_inspector"
	TypeViewerType         ecs.ComponentType = "debugui.type_viewer"
	PerformanceStatsType   ecs.ComponentType = "debugui.performance_stats"
	QueryDebuggerType      ecs.ComponentType = "debugui.query_debugger"
)

type EntityBrowserComponent struct {
	ecs.Base

	cache              *EntityBrowserCache
	filterText         string
	filterType         ecs.ComponentType
	maxEntitiesPerPage int
	currentPage        int
}

type ComponentInspectorComponent struct {
	ecs.Base

	selectedEntityId ecs.EntityId
}

type TypeViewerComponent struct {
	ecs.Base

	cache         *TypeViewerCache
	selectedType  ecs.ComponentType
	sortColumn    int
	sortAscending bool
}

type PerformanceStatsComponent struct {
	ecs.Base

	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

type QueryDebuggerComponent struct {
	ecs.Base

	selectedComponentTypes map[ecs.ComponentType]bool
	cache                  *QueryDebuggerCache
}

func (c *EntityBrowserComponent) Clone() (ecs.Component, error) {
	return ecs.CloneComponent(c)
}

func (c *ComponentInspectorComponent) Clone() (ecs.Component, error) {
	return ecs.CloneComponent(c)
}

func (c *TypeViewerComponent) Clone() (ecs.Component, error) {
	return ecs.CloneComponent(c)
}

func (c *PerformanceStatsComponent) Clone() (ecs.Component, error) {
	return ecs.CloneComponent(c)
}

func (c *QueryDebuggerComponent) Clone() (ecs.Component, error) {
	return ecs.CloneComponent(c)
}
