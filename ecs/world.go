package ecs

import (
	"iter"
	"slices"

	"github.com/kamstrup/intmap"
)

// World stores entities and hands out ids. Structural changes (spawning,
// deleting, adding or removing components) bump its version, which queries
// use to invalidate their caches.
type World struct {
	registry *ComponentRegistry
	entities *intmap.Map[EntityId, *Entity]
	order    []*Entity
	deleted  int
	nextId   EntityId
	version  uint64
	locked   bool
}

// NewWorld creates a world. A nil registry accepts any component; otherwise
// only registered component types may be attached.
func NewWorld(registry *ComponentRegistry) *World {
	return &World{
		registry: registry,
		entities: intmap.New[EntityId, *Entity](256),
	}
}

func (w *World) Registry() *ComponentRegistry {
	return w.registry
}

// Spawn creates an entity holding the given components. The batch is
// validated before anything is attached, so on error no entity is created,
// no hook runs and the world is unchanged.
func (w *World) Spawn(components ...Component) (*Entity, error) {
	if w.locked {
		return nil, ErrWorldLocked
	}

	e := &Entity{
		world:      w,
		components: make(map[ComponentType]Component, len(components)),
	}
	plan, err := e.plan(components...)
	if err != nil {
		return nil, err
	}

	w.nextId++
	e.id = w.nextId
	e.attachAll(plan)

	w.entities.Put(e.id, e)
	w.order = append(w.order, e)
	w.version++
	return e, nil
}

// Delete removes the entity and detaches all of its components.
func (w *World) Delete(id EntityId) (bool, error) {
	if w.locked {
		return false, ErrWorldLocked
	}
	e, ok := w.entities.Get(id)
	if !ok {
		return false, nil
	}

	for _, t := range e.Types() {
		if _, err := e.Remove(t); err != nil {
			return false, err
		}
	}
	w.entities.Del(id)
	e.world = nil

	idx := slices.Index(w.order, e)
	if idx >= 0 {
		w.order[idx] = nil
		w.deleted++
	}
	if w.deleted > len(w.order)/2 {
		w.Compact()
	}
	w.version++
	return true, nil
}

// Compact drops deleted slots from the spawn order.
func (w *World) Compact() {
	w.order = slices.DeleteFunc(w.order, func(e *Entity) bool { return e == nil })
	w.deleted = 0
}

// Entity looks up an entity by id.
func (w *World) Entity(id EntityId) (*Entity, bool) {
	return w.entities.Get(id)
}

// Entities iterates over live entities in spawn order.
func (w *World) Entities() iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for _, e := range w.order {
			if e == nil {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// Query returns the entities having every listed type, in spawn order.
func (w *World) Query(types ...ComponentType) []*Entity {
	var out []*Entity
	for e := range w.Entities() {
		if e.Has(types...) {
			out = append(out, e)
		}
	}
	return out
}

func (w *World) Len() int {
	return w.entities.Len()
}

// Version changes whenever the world's structure changes.
func (w *World) Version() uint64 {
	return w.version
}

// Locked reports whether structural changes are currently rejected.
func (w *World) Locked() bool {
	return w.locked
}

func (w *World) lock()   { w.locked = true }
func (w *World) unlock() { w.locked = false }

// WorldStats summarizes a world's contents.
type WorldStats struct {
	EntityCount     int
	ComponentCount  int
	ComponentCounts map[ComponentType]int
	Version         uint64
}

// CollectStats counts entities and components per type.
func (w *World) CollectStats() WorldStats {
	stats := WorldStats{
		ComponentCounts: make(map[ComponentType]int),
		Version:         w.version,
	}
	for e := range w.Entities() {
		stats.EntityCount++
		for t := range e.components {
			stats.ComponentCounts[t]++
			stats.ComponentCount++
		}
	}
	return stats
}
