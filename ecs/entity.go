package ecs

import (
	"iter"
	"slices"
)

// EntityId identifies an entity within its world. Zero is never assigned.
type EntityId uint64

// Entity owns a set of components keyed by their type. It has no behavior of
// its own.
type Entity struct {
	id         EntityId
	world      *World
	components map[ComponentType]Component
}

// NewEntity creates a detached entity (not part of any world) holding the
// given components, with dependencies resolved. On error no component is
// attached.
func NewEntity(components ...Component) (*Entity, error) {
	e := &Entity{components: make(map[ComponentType]Component, len(components))}
	plan, err := e.plan(components...)
	if err != nil {
		return nil, err
	}
	e.attachAll(plan)
	return e, nil
}

func (e *Entity) ID() EntityId {
	return e.id
}

// World returns the world the entity was spawned into, or nil.
func (e *Entity) World() *World {
	return e.world
}

// Add attaches c. Dependencies missing from the entity are constructed and
// attached first; if any of them cannot be attached nothing is.
func (e *Entity) Add(c Component) error {
	if c == nil {
		return ErrNilComponent
	}
	if err := e.checkUnlocked(); err != nil {
		return err
	}

	plan, err := e.plan(c)
	if err != nil {
		return err
	}

	e.attachAll(plan)
	e.touch()
	return nil
}

// plan validates a batch of components and returns everything to attach,
// each component preceded by its dependencies. A dependency whose type is
// supplied in the batch is satisfied by that component instead of a new one.
// Nothing is modified.
func (e *Entity) plan(components ...Component) ([]Component, error) {
	given := make(map[ComponentType]Component, len(components))
	for _, c := range components {
		if c == nil {
			return nil, ErrNilComponent
		}
		if owner, ok := c.Owner(); ok {
			if owner == e {
				return nil, ErrDuplicateComponent
			}
			return nil, ErrAlreadyAttached
		}
		t := c.Type()
		if _, dup := given[t]; dup || e.Has(t) {
			return nil, ErrDuplicateComponent
		}
		if err := e.checkRegistered(c); err != nil {
			return nil, err
		}
		given[t] = c
	}

	planned := make(map[ComponentType]bool, len(components))
	out := make([]Component, 0, len(components))

	var visit func(Component) error
	visit = func(comp Component) error {
		planned[comp.Type()] = true
		for _, ctor := range comp.Dependencies() {
			dep := ctor()
			if dep == nil {
				return ErrNilComponent
			}
			t := dep.Type()
			if e.Has(t) || planned[t] {
				continue
			}
			if g, ok := given[t]; ok {
				dep = g
			} else if err := e.checkRegistered(dep); err != nil {
				return err
			}
			if err := visit(dep); err != nil {
				return err
			}
		}
		out = append(out, comp)
		return nil
	}
	for _, c := range components {
		if planned[c.Type()] {
			continue
		}
		if err := visit(c); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (e *Entity) attachAll(plan []Component) {
	for _, c := range plan {
		e.attach(c)
	}
}

func (e *Entity) attach(c Component) {
	e.components[c.Type()] = c
	b := c.base()
	b.attach(e)
	if b.OnAdd != nil {
		b.OnAdd(e)
	}
}

// Remove detaches the component of type t. It reports whether one was present.
func (e *Entity) Remove(t ComponentType) (bool, error) {
	if err := e.checkUnlocked(); err != nil {
		return false, err
	}
	c, ok := e.components[t]
	if !ok {
		return false, nil
	}

	delete(e.components, t)
	b := c.base()
	b.detach()
	if b.OnRemove != nil {
		b.OnRemove(e)
	}
	e.touch()
	return true, nil
}

// Get returns the component of type t.
func (e *Entity) Get(t ComponentType) (Component, bool) {
	c, ok := e.components[t]
	return c, ok
}

// Has reports whether the entity has every listed type.
func (e *Entity) Has(types ...ComponentType) bool {
	for _, t := range types {
		if _, ok := e.components[t]; !ok {
			return false
		}
	}
	return true
}

// Types returns the entity's component types in sorted order.
func (e *Entity) Types() []ComponentType {
	types := make([]ComponentType, 0, len(e.components))
	for t := range e.components {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

// Components iterates over the components in type order.
func (e *Entity) Components() iter.Seq2[ComponentType, Component] {
	return func(yield func(ComponentType, Component) bool) {
		for _, t := range e.Types() {
			if !yield(t, e.components[t]) {
				return
			}
		}
	}
}

// Len returns the number of attached components.
func (e *Entity) Len() int {
	return len(e.components)
}

// Clone returns a detached entity holding clones of every component. Hooks
// are not invoked for the clones.
func (e *Entity) Clone() (*Entity, error) {
	out := &Entity{components: make(map[ComponentType]Component, len(e.components))}
	for t, c := range e.components {
		cc, err := c.Clone()
		if err != nil {
			return nil, err
		}
		out.components[t] = cc
		cc.base().attach(out)
	}
	return out, nil
}

func (e *Entity) checkUnlocked() error {
	if e.world != nil && e.world.locked {
		return ErrWorldLocked
	}
	return nil
}

func (e *Entity) checkRegistered(c Component) error {
	if e.world == nil || e.world.registry == nil {
		return nil
	}
	return e.world.registry.check(c)
}

func (e *Entity) touch() {
	if e.world != nil {
		e.world.version++
	}
}

// Get returns the component of type t as C.
func Get[C Component](e *Entity, t ComponentType) (C, bool) {
	c, ok := e.components[t]
	if !ok {
		var zero C
		return zero, false
	}
	typed, ok := c.(C)
	return typed, ok
}

// Require is Get reporting absence as a *MissingComponentError.
func Require[C Component](e *Entity, t ComponentType) (C, error) {
	c, ok := Get[C](e, t)
	if !ok {
		return c, &MissingComponentError{Entity: e.id, Type: t}
	}
	return c, nil
}
