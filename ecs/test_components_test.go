package ecs_test

import (
	"errors"

	"github.com/plus3/kestrel/ecs"
)

const (
	PositionType  ecs.ComponentType = "position"
	VelocityType  ecs.ComponentType = "velocity"
	HealthType    ecs.ComponentType = "health"
	InventoryType ecs.ComponentType = "inventory"
	BodyType      ecs.ComponentType = "body"
	BrokenType    ecs.ComponentType = "broken"
)

// Common test component types
type Position struct {
	ecs.Base
	X, Y float32
}

func NewPosition(x, y float32) *Position {
	return &Position{Base: ecs.NewBase(PositionType), X: x, Y: y}
}

func (p *Position) Clone() (ecs.Component, error) { return ecs.CloneComponent(p) }

// Velocity depends on Position.
type Velocity struct {
	ecs.Base
	DX, DY float32
}

func NewVelocity(dx, dy float32) *Velocity {
	return &Velocity{
		Base: ecs.NewBase(VelocityType, func() ecs.Component { return NewPosition(0, 0) }),
		DX:   dx,
		DY:   dy,
	}
}

func (v *Velocity) Clone() (ecs.Component, error) { return ecs.CloneComponent(v) }

type Health struct {
	ecs.Base
	Current, Max int
}

func NewHealth(current, maximum int) *Health {
	return &Health{Base: ecs.NewBase(HealthType), Current: current, Max: maximum}
}

func (h *Health) Clone() (ecs.Component, error) { return ecs.CloneComponent(h) }

// Items deep copies its backing slice.
type Items []string

func (i Items) CloneValue() (any, error) {
	return append(Items(nil), i...), nil
}

type Inventory struct {
	ecs.Base
	Items Items
	Label string
}

func NewInventory(items ...string) *Inventory {
	return &Inventory{Base: ecs.NewBase(InventoryType), Items: items}
}

func (i *Inventory) Clone() (ecs.Component, error) { return ecs.CloneComponent(i) }

// Body depends on Velocity, which depends on Position.
type Body struct {
	ecs.Base
	Mass float32
}

func NewBody() ecs.Component {
	return &Body{Base: ecs.NewBase(BodyType, func() ecs.Component { return NewVelocity(0, 0) }), Mass: 1}
}

func (b *Body) Clone() (ecs.Component, error) { return ecs.CloneComponent(b) }

var errCloneFailed = errors.New("clone failed")

// failing refuses to be cloned.
type failing struct{}

func (failing) CloneValue() (any, error) {
	return nil, errCloneFailed
}

type Broken struct {
	ecs.Base
	Items Items
	State failing
}

func NewBroken() *Broken {
	return &Broken{Base: ecs.NewBase(BrokenType), Items: Items{"a"}}
}

func (b *Broken) Clone() (ecs.Component, error) { return ecs.CloneComponent(b) }

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.MustRegisterComponent(registry, func() *Position { return NewPosition(0, 0) })
	ecs.MustRegisterComponent(registry, func() *Velocity { return NewVelocity(0, 0) })
	ecs.MustRegisterComponent(registry, func() *Health { return NewHealth(0, 0) })
	ecs.MustRegisterComponent(registry, func() *Inventory { return NewInventory() })
	ecs.MustRegisterComponent(registry, NewBody)
	ecs.MustRegisterComponent(registry, ecs.NewTransform)
	return registry
}

// testSystem runs fn for every frame.
type testSystem struct {
	types []ecs.ComponentType
	fn    func(frame *ecs.UpdateFrame) error
	calls int
}

func (s *testSystem) Types() []ecs.ComponentType { return s.types }

func (s *testSystem) Execute(frame *ecs.UpdateFrame) error {
	s.calls++
	if s.fn == nil {
		return nil
	}
	return s.fn(frame)
}
