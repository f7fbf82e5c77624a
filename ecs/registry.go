package ecs

import (
	"fmt"
	"reflect"
	"slices"
)

// ComponentRegistry manages component type registration for a World.
// Each World may have its own registry, allowing multiple independent ECS
// instances to coexist without interference.
type ComponentRegistry struct {
	constructors map[ComponentType]Constructor
	goTypes      map[ComponentType]reflect.Type
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		constructors: make(map[ComponentType]Constructor),
		goTypes:      make(map[ComponentType]reflect.Type),
	}
}

// RegisterComponent registers the component built by ctor under the type tag
// that ctor's components report. A tag may only be claimed by one Go type.
func RegisterComponent[C Component](r *ComponentRegistry, ctor func() C) error {
	sample := ctor()
	t := sample.Type()
	goType := reflect.TypeOf(sample)

	if existing, ok := r.goTypes[t]; ok && existing != goType {
		return fmt.Errorf("%w: %q already registered for %s", ErrDuplicateComponent, t, existing)
	}

	r.constructors[t] = func() Component { return ctor() }
	r.goTypes[t] = goType
	return nil
}

// MustRegisterComponent is RegisterComponent panicking on error.
func MustRegisterComponent[C Component](r *ComponentRegistry, ctor func() C) {
	if err := RegisterComponent(r, ctor); err != nil {
		panic(err)
	}
}

// New constructs a default component of type t.
func (r *ComponentRegistry) New(t ComponentType) (Component, error) {
	ctor, ok := r.constructors[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnregisteredComponent, t)
	}
	return ctor(), nil
}

// Constructor returns the registered constructor for t.
func (r *ComponentRegistry) Constructor(t ComponentType) (Constructor, bool) {
	ctor, ok := r.constructors[t]
	return ctor, ok
}

// Types returns every registered type, sorted.
func (r *ComponentRegistry) Types() []ComponentType {
	types := make([]ComponentType, 0, len(r.constructors))
	for t := range r.constructors {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

func (r *ComponentRegistry) check(c Component) error {
	goType, ok := r.goTypes[c.Type()]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnregisteredComponent, c.Type())
	}
	if reflect.TypeOf(c) != goType {
		return fmt.Errorf("%w: %q is registered for %s, got %T", ErrUnregisteredComponent, c.Type(), goType, c)
	}
	return nil
}
