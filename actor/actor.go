// Package actor provides the actor component: the size, anchor, visibility
// and opacity of an entity that takes part in a scene.
package actor

import (
	"github.com/plus3/kestrel/ecs"
	"github.com/plus3/kestrel/geom"
)

// Actor describes an entity's extent in its transform's coordinate plane.
// The graphics system uses it to skip off-screen entities and to scale
// their opacity.
type Actor struct {
	ecs.Base

	Width, Height float64
	// Anchor is the point of the actor's box at the transform position, in
	// fractions of its size. (0,0) is the top-left corner.
	Anchor geom.Vector
	// Alpha multiplies the graphics opacity.
	Alpha float64
	// Collider overrides the box derived from Width, Height and Anchor when
	// set.
	Collider *geom.Polygon

	offScreen bool
}

// New returns an actor of the given size anchored at its top-left corner.
func New(width, height float64) *Actor {
	return &Actor{
		Base:   ecs.NewBase(ecs.ActorType, ecs.NewTransformComponent),
		Width:  width,
		Height: height,
		Alpha:  1,
	}
}

// NewComponent is New(0, 0) as an ecs.Constructor.
func NewComponent() ecs.Component {
	return New(0, 0)
}

func (a *Actor) Clone() (ecs.Component, error) {
	return ecs.CloneComponent(a)
}

func (a *Actor) IsOffScreen() bool {
	return a.offScreen
}

func (a *Actor) SetOffScreen(offScreen bool) {
	a.offScreen = offScreen
}

func (a *Actor) OpacityModifier() float64 {
	return a.Alpha
}

// Transform returns the owner's transform.
func (a *Actor) Transform() (*ecs.Transform, bool) {
	owner, ok := a.Owner()
	if !ok {
		return nil, false
	}
	return ecs.Get[*ecs.Transform](owner, ecs.TransformType)
}

// WorldPos returns the owner's position, or false when the actor is detached.
func (a *Actor) WorldPos() (geom.Vector, bool) {
	t, ok := a.Transform()
	if !ok {
		return geom.Vector{}, false
	}
	return t.Pos, true
}

// LocalBounds returns the actor's box relative to the transform position.
func (a *Actor) LocalBounds() geom.BoundingBox {
	if a.Collider != nil {
		if b, err := a.Collider.Bounds(); err == nil {
			return b
		}
	}
	return geom.BoxFromSize(a.Width, a.Height, a.Anchor)
}

// WorldBounds returns the actor's box after the owner's transform, or false
// when the actor is detached.
func (a *Actor) WorldBounds() (geom.BoundingBox, bool) {
	t, ok := a.Transform()
	if !ok {
		return geom.BoundingBox{}, false
	}
	return a.LocalBounds().Transform(t.Matrix()), true
}
