package ecs

import (
	"fmt"
	"sync/atomic"

	"github.com/plus3/kestrel/geom"
)

// CoordPlane selects the space a transform is expressed in.
type CoordPlane int

const (
	// CoordPlaneWorld positions are relative to the camera.
	CoordPlaneWorld CoordPlane = iota
	// CoordPlaneScreen positions ignore the camera.
	CoordPlaneScreen
)

func (p CoordPlane) String() string {
	switch p {
	case CoordPlaneWorld:
		return "world"
	case CoordPlaneScreen:
		return "screen"
	default:
		return fmt.Sprintf("CoordPlane(%d)", int(p))
	}
}

// TransformCloneMode chooses what Transform.Clone produces.
type TransformCloneMode int

const (
	// TransformCloneReset returns a default-valued transform, ignoring the
	// source's current state. This matches the historical behavior.
	TransformCloneReset TransformCloneMode = iota
	// TransformCloneValues copies the source's current state.
	TransformCloneValues
)

var transformCloneMode atomic.Int32

// SetTransformCloneMode sets the mode used by Transform.Clone. It is safe to
// call while other goroutines clone, though it is meant to be set once at
// startup.
func SetTransformCloneMode(mode TransformCloneMode) {
	transformCloneMode.Store(int32(mode))
}

// CurrentTransformCloneMode returns the mode used by Transform.Clone.
func CurrentTransformCloneMode() TransformCloneMode {
	return TransformCloneMode(transformCloneMode.Load())
}

// Transform holds an entity's spatial state. Movement and physics code writes
// it freely between frames; values are not validated.
type Transform struct {
	Base

	CoordPlane CoordPlane

	Pos geom.Vector
	Vel geom.Vector
	Acc geom.Vector

	Z    float64
	OldZ float64

	Rotation        float64
	AngularVelocity float64
	Torque          float64

	Scale geom.Vector
}

// NewTransform returns a world-plane transform at the origin with unit scale.
func NewTransform() *Transform {
	return &Transform{
		Base:  NewBase(TransformType),
		OldZ:  -1,
		Scale: geom.One,
	}
}

// NewTransformComponent is NewTransform as a Constructor.
func NewTransformComponent() Component {
	return NewTransform()
}

func (t *Transform) Clone() (Component, error) {
	c, err := t.CloneWith(CurrentTransformCloneMode())
	if err != nil {
		return nil, err
	}
	return c, nil
}

// CloneWith clones t using the given mode.
func (t *Transform) CloneWith(mode TransformCloneMode) (*Transform, error) {
	if mode == TransformCloneValues {
		return CloneComponent(t)
	}
	return NewTransform(), nil
}

// SetZ records the previous Z in OldZ before changing it.
func (t *Transform) SetZ(z float64) {
	t.OldZ = t.Z
	t.Z = z
}

// Matrix returns the local transform: translate, then rotate, then scale.
func (t *Transform) Matrix() geom.Matrix {
	return geom.Identity.Translate(t.Pos.X, t.Pos.Y).Rotate(t.Rotation).Scale(t.Scale.X, t.Scale.Y)
}
