package ecs

import (
	"errors"
	"fmt"
)

var (
	ErrNilComponent          = errors.New("ecs: nil component")
	ErrDuplicateComponent    = errors.New("ecs: entity already has a component of this type")
	ErrAlreadyAttached       = errors.New("ecs: component is attached to another entity")
	ErrWorldLocked           = errors.New("ecs: structural change while systems are running")
	ErrUnregisteredComponent = errors.New("ecs: component type not registered")
	ErrEntityNotFound        = errors.New("ecs: entity not found")
)

// MissingComponentError reports an entity lacking a component it is required
// to have.
type MissingComponentError struct {
	Entity EntityId
	Type   ComponentType
}

func (e *MissingComponentError) Error() string {
	return fmt.Sprintf("ecs: entity %d is missing required component %q", e.Entity, e.Type)
}

// CloneError reports a field whose nested clone failed. The clone that hit it
// is discarded as a whole.
type CloneError struct {
	Type  ComponentType
	Field string
	Err   error
}

func (e *CloneError) Error() string {
	return fmt.Sprintf("ecs: cloning field %s of component %q: %v", e.Field, e.Type, e.Err)
}

func (e *CloneError) Unwrap() error {
	return e.Err
}
