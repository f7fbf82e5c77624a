package ecs

import "weak"

// ComponentType is the tag identifying a component's kind. It is the lookup
// key on an entity, so an entity holds at most one component per type.
type ComponentType string

// Built-in component types.
const (
	TransformType ComponentType = "transform"
	GraphicsType  ComponentType = "graphics"
	ActorType     ComponentType = "actor"
)

// Constructor builds a fresh, default-valued component. Only constructors can
// be listed as dependencies, which restricts automatic dependencies to
// components that need no arguments.
type Constructor func() Component

// Component is a capability attached to an entity. Implementations embed Base,
// which carries the type tag, dependencies, owner and lifecycle hooks.
type Component interface {
	Type() ComponentType
	Dependencies() []Constructor
	Owner() (*Entity, bool)
	Clone() (Component, error)
	base() *Base
}

// Base is embedded by every component.
type Base struct {
	typ          ComponentType
	dependencies []Constructor
	owner        weak.Pointer[Entity]

	// OnAdd is called after the component is attached to owner.
	OnAdd func(owner *Entity)
	// OnRemove is called after the component is detached from previousOwner.
	OnRemove func(previousOwner *Entity)
}

// NewBase returns a Base for the given type. Each dependency is constructed
// and attached to the owner when the owner lacks a component of its type.
func NewBase(typ ComponentType, dependencies ...Constructor) Base {
	return Base{typ: typ, dependencies: dependencies}
}

func (b *Base) Type() ComponentType {
	return b.typ
}

func (b *Base) Dependencies() []Constructor {
	return b.dependencies
}

// Owner returns the entity this component is attached to. The reference is
// weak: a component never keeps its entity alive.
func (b *Base) Owner() (*Entity, bool) {
	e := b.owner.Value()
	return e, e != nil
}

func (b *Base) base() *Base {
	return b
}

func (b *Base) attach(e *Entity) {
	b.owner = weak.Make(e)
}

func (b *Base) detach() {
	b.owner = weak.Pointer[Entity]{}
}
