package ecs

import (
	"errors"
	"fmt"
)

// Commands provides a buffer for deferred ECS operations that are executed at the end of a frame.
// This prevents structural changes to the World during system execution.
type Commands struct {
	spawns  []spawnCommand
	deletes []EntityId
	adds    []addComponentCommand
	removes []removeComponentCommand
	defers  []deferCommand
}

func newCommands() *Commands {
	return &Commands{}
}

type deferCommand struct {
	fn func()
}

type spawnCommand struct {
	components []Component
}

type addComponentCommand struct {
	entity    EntityId
	component Component
}

type removeComponentCommand struct {
	entity   EntityId
	compType ComponentType
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Spawn queues an entity spawn operation with the given components.
func (c *Commands) Spawn(components ...Component) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// Delete queues an entity deletion operation.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// AddComponent queues a component addition operation.
func (c *Commands) AddComponent(entity EntityId, component Component) {
	c.adds = append(c.adds, addComponentCommand{
		entity:    entity,
		component: component,
	})
}

// RemoveComponent queues a component removal operation.
func (c *Commands) RemoveComponent(entity EntityId, compType ComponentType) {
	c.removes = append(c.removes, removeComponentCommand{
		entity:   entity,
		compType: compType,
	})
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.deletes) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Reset drops every queued operation.
func (c *Commands) Reset() {
	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
}

// Flush applies all commands to the provided world, resetting the buffer state.
// Deletes run first; adds and removes targeting deleted entities are skipped.
// Every operation is attempted and the failures are joined.
func (c *Commands) Flush(world *World) error {
	deletedEntities := make(map[EntityId]bool)
	var errs []error

	for _, id := range c.deletes {
		if _, err := world.Delete(id); err != nil {
			errs = append(errs, fmt.Errorf("delete entity %d: %w", id, err))
		}
		deletedEntities[id] = true
	}

	for _, cmd := range c.removes {
		if deletedEntities[cmd.entity] {
			continue
		}
		e, ok := world.Entity(cmd.entity)
		if !ok {
			errs = append(errs, fmt.Errorf("remove %q from entity %d: %w", cmd.compType, cmd.entity, ErrEntityNotFound))
			continue
		}
		if _, err := e.Remove(cmd.compType); err != nil {
			errs = append(errs, fmt.Errorf("remove %q from entity %d: %w", cmd.compType, cmd.entity, err))
		}
	}

	for _, cmd := range c.adds {
		if deletedEntities[cmd.entity] {
			continue
		}
		e, ok := world.Entity(cmd.entity)
		if !ok {
			errs = append(errs, fmt.Errorf("add %q to entity %d: %w", cmd.component.Type(), cmd.entity, ErrEntityNotFound))
			continue
		}
		if err := e.Add(cmd.component); err != nil {
			errs = append(errs, fmt.Errorf("add %q to entity %d: %w", cmd.component.Type(), cmd.entity, err))
		}
	}

	for _, cmd := range c.spawns {
		if _, err := world.Spawn(cmd.components...); err != nil {
			errs = append(errs, fmt.Errorf("spawn: %w", err))
		}
	}

	for _, df := range c.defers {
		df.fn()
	}

	c.Reset()
	return errors.Join(errs...)
}
