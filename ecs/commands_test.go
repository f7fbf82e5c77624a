package ecs_test

import (
	"errors"
	"testing"

	"github.com/plus3/kestrel/ecs"
)

func commandSystem(fn func(c *ecs.Commands)) *testSystem {
	return &testSystem{fn: func(frame *ecs.UpdateFrame) error {
		fn(frame.Commands)
		return nil
	}}
}

func TestCommands(t *testing.T) {
	registry := newTestRegistry()

	t.Run("spawn entities", func(t *testing.T) {
		world := ecs.NewWorld(registry)
		scheduler := ecs.NewScheduler(world)

		system := commandSystem(func(c *ecs.Commands) {
			c.Spawn(NewPosition(1, 2), NewVelocity(0.5, 0.5))
			c.Spawn(NewPosition(3, 4))
		})
		scheduler.Register(system)

		if n := len(world.Query(PositionType)); n != 0 {
			t.Errorf("entities spawned before frame execution: %d", n)
		}

		if err := scheduler.Once(1.0); err != nil {
			t.Fatal(err)
		}

		if n := len(world.Query(PositionType)); n != 2 {
			t.Errorf("expected 2 entities after frame, got %d", n)
		}
		if system.calls != 1 {
			t.Error("system was not executed")
		}
	})

	t.Run("delete entities", func(t *testing.T) {
		world := ecs.NewWorld(registry)
		e1, _ := world.Spawn(NewPosition(1, 2))
		e2, _ := world.Spawn(NewPosition(3, 4))

		scheduler := ecs.NewScheduler(world)
		scheduler.Register(commandSystem(func(c *ecs.Commands) { c.Delete(e1.ID()) }))

		if _, ok := world.Entity(e1.ID()); !ok {
			t.Error("entity deleted before frame execution")
		}

		if err := scheduler.Once(1.0); err != nil {
			t.Fatal(err)
		}

		if _, ok := world.Entity(e1.ID()); ok {
			t.Error("entity not deleted after frame")
		}
		if _, ok := world.Entity(e2.ID()); !ok {
			t.Error("wrong entity deleted")
		}
	})

	t.Run("add components", func(t *testing.T) {
		world := ecs.NewWorld(registry)
		entity, _ := world.Spawn(NewPosition(1, 2))

		scheduler := ecs.NewScheduler(world)
		scheduler.Register(commandSystem(func(c *ecs.Commands) { c.AddComponent(entity.ID(), NewVelocity(5, 10)) }))

		if err := scheduler.Once(1.0); err != nil {
			t.Fatal(err)
		}

		vel, ok := ecs.Get[*Velocity](entity, VelocityType)
		if !ok || vel.DX != 5 || vel.DY != 10 {
			t.Error("component not added after frame or values incorrect")
		}
		pos, _ := ecs.Get[*Position](entity, PositionType)
		if pos.X != 1 || pos.Y != 2 {
			t.Error("existing dependency was replaced")
		}
	})

	t.Run("remove components", func(t *testing.T) {
		world := ecs.NewWorld(registry)
		entity, _ := world.Spawn(NewPosition(1, 2), NewVelocity(5, 10))

		scheduler := ecs.NewScheduler(world)
		scheduler.Register(commandSystem(func(c *ecs.Commands) { c.RemoveComponent(entity.ID(), VelocityType) }))

		if err := scheduler.Once(1.0); err != nil {
			t.Fatal(err)
		}

		if n := len(world.Query(PositionType, VelocityType)); n != 0 {
			t.Error("velocity component not removed")
		}
		if !entity.Has(PositionType) {
			t.Error("entity with only position not found")
		}
	})

	t.Run("mixed operations", func(t *testing.T) {
		world := ecs.NewWorld(registry)
		e1, _ := world.Spawn(NewPosition(1, 2))

		scheduler := ecs.NewScheduler(world)
		scheduler.Register(commandSystem(func(c *ecs.Commands) {
			c.Spawn(NewPosition(10, 20))
			c.AddComponent(e1.ID(), NewVelocity(1, 1))
			c.Delete(e1.ID())
			c.Spawn(NewHealth(100, 100))
		}))
		if err := scheduler.Once(1.0); err != nil {
			t.Fatal(err)
		}

		if n := len(world.Query(PositionType)); n != 1 {
			t.Errorf("expected 1 position entity, got %d", n)
		}
		if n := len(world.Query(HealthType)); n != 1 {
			t.Errorf("expected 1 health entity, got %d", n)
		}
	})

	t.Run("cross-system remove then add same entity", func(t *testing.T) {
		world := ecs.NewWorld(registry)
		entity, _ := world.Spawn(NewPosition(1, 2), NewVelocity(5, 10))

		scheduler := ecs.NewScheduler(world)
		scheduler.Register(commandSystem(func(c *ecs.Commands) { c.RemoveComponent(entity.ID(), VelocityType) }))
		scheduler.Register(commandSystem(func(c *ecs.Commands) { c.AddComponent(entity.ID(), NewHealth(50, 100)) }))
		if err := scheduler.Once(1.0); err != nil {
			t.Fatal(err)
		}

		if !entity.Has(PositionType, HealthType) {
			t.Error("entity should have Position + Health after cross-system mutations")
		}
		if entity.Has(VelocityType) {
			t.Error("entity should not have Velocity after RemoveComponent")
		}
	})

	t.Run("cross-system mutation after delete is ignored", func(t *testing.T) {
		world := ecs.NewWorld(registry)
		entity, _ := world.Spawn(NewPosition(7, 8))

		scheduler := ecs.NewScheduler(world)
		scheduler.Register(commandSystem(func(c *ecs.Commands) { c.Delete(entity.ID()) }))
		scheduler.Register(commandSystem(func(c *ecs.Commands) { c.AddComponent(entity.ID(), NewHealth(50, 100)) }))
		if err := scheduler.Once(1.0); err != nil {
			t.Fatal(err)
		}

		if world.Len() != 0 {
			t.Error("entity should have been deleted")
		}
		if n := len(world.Query(HealthType)); n > 0 {
			t.Error("no Health entities should exist")
		}
	})

	t.Run("defer runs after structural changes", func(t *testing.T) {
		world := ecs.NewWorld(registry)
		var seen int

		scheduler := ecs.NewScheduler(world)
		scheduler.Register(commandSystem(func(c *ecs.Commands) {
			c.Defer(func() { seen = world.Len() })
			c.Spawn(NewHealth(1, 1))
		}))
		if err := scheduler.Once(1.0); err != nil {
			t.Fatal(err)
		}

		if seen != 1 {
			t.Errorf("deferred function saw %d entities, want 1", seen)
		}
	})

	t.Run("failures are joined and the rest applies", func(t *testing.T) {
		world := ecs.NewWorld(registry)
		entity, _ := world.Spawn(NewPosition(0, 0))

		commands := &ecs.Commands{}
		commands.AddComponent(999, NewHealth(1, 1))
		commands.AddComponent(entity.ID(), NewPosition(1, 1))
		commands.Spawn(NewHealth(2, 2))

		err := commands.Flush(world)
		if !errors.Is(err, ecs.ErrEntityNotFound) {
			t.Errorf("expected ErrEntityNotFound, got %v", err)
		}
		if !errors.Is(err, ecs.ErrDuplicateComponent) {
			t.Errorf("expected ErrDuplicateComponent, got %v", err)
		}
		if n := len(world.Query(HealthType)); n != 1 {
			t.Errorf("spawn should still apply, got %d health entities", n)
		}
		if commands.Len() != 0 {
			t.Error("flush should reset the buffer")
		}
	})
}
