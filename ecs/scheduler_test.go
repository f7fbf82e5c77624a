package ecs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/kestrel/ecs"
)

type MovementSystem struct {
	ExecuteCount int
}

func (s *MovementSystem) Types() []ecs.ComponentType {
	return []ecs.ComponentType{PositionType, VelocityType}
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) error {
	s.ExecuteCount++
	for _, e := range frame.Entities {
		pos, err := ecs.Require[*Position](e, PositionType)
		if err != nil {
			return err
		}
		vel, err := ecs.Require[*Velocity](e, VelocityType)
		if err != nil {
			return err
		}
		pos.X += vel.DX * float32(frame.DeltaTime)
		pos.Y += vel.DY * float32(frame.DeltaTime)
	}
	return nil
}

type HealthSystem struct {
	ExecuteCount int
	TotalHealth  float64
}

func (s *HealthSystem) Types() []ecs.ComponentType {
	return []ecs.ComponentType{HealthType}
}

func (s *HealthSystem) Execute(frame *ecs.UpdateFrame) error {
	s.ExecuteCount++
	s.TotalHealth = 0
	for _, e := range frame.Entities {
		h, _ := ecs.Get[*Health](e, HealthType)
		s.TotalHealth += float64(h.Current)
	}
	return nil
}

func TestScheduler(t *testing.T) {
	registry := newTestRegistry()

	t.Run("system execution order and query initialization", func(t *testing.T) {
		world := ecs.NewWorld(registry)
		scheduler := ecs.NewScheduler(world)

		movement := &MovementSystem{}
		health := &HealthSystem{}

		scheduler.Register(movement)
		scheduler.Register(health)

		_, _ = world.Spawn(NewPosition(0, 0), NewVelocity(1, 2))
		_, _ = world.Spawn(NewHealth(100, 100))

		require.NoError(t, scheduler.Once(1.0))
		assert.Equal(t, 1, movement.ExecuteCount)
		assert.Equal(t, 1, health.ExecuteCount)

		require.NoError(t, scheduler.Once(1.0))
		assert.Equal(t, 2, movement.ExecuteCount)
		assert.Equal(t, 2, health.ExecuteCount)
	})

	t.Run("systems see entities spawned between frames", func(t *testing.T) {
		world := ecs.NewWorld(registry)
		scheduler := ecs.NewScheduler(world)

		_, _ = world.Spawn(NewHealth(50, 100))
		_, _ = world.Spawn(NewHealth(75, 100))

		health := &HealthSystem{}
		scheduler.Register(health)

		require.NoError(t, scheduler.Once(1.0))
		assert.Equal(t, 125.0, health.TotalHealth)

		_, _ = world.Spawn(NewHealth(25, 100))

		require.NoError(t, scheduler.Once(1.0))
		assert.Equal(t, 150.0, health.TotalHealth)
	})

	t.Run("context cancellation in run", func(t *testing.T) {
		world := ecs.NewWorld(registry)
		scheduler := ecs.NewScheduler(world)

		movement := &MovementSystem{}
		scheduler.Register(movement)

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error)
		go func() {
			done <- scheduler.Run(ctx, 1*time.Millisecond)
		}()

		time.Sleep(10 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(100 * time.Millisecond):
			t.Fatal("scheduler did not stop after context cancellation")
		}

		assert.NotZero(t, movement.ExecuteCount)
	})

	t.Run("delta time calculation", func(t *testing.T) {
		world := ecs.NewWorld(registry)
		scheduler := ecs.NewScheduler(world)

		e, _ := world.Spawn(NewPosition(0, 0), NewVelocity(10, 20))
		scheduler.Register(&MovementSystem{})

		require.NoError(t, scheduler.Once(0.5))

		pos, _ := ecs.Get[*Position](e, PositionType)
		assert.Equal(t, float32(5), pos.X)
		assert.Equal(t, float32(10), pos.Y)
	})

	t.Run("first error aborts the frame", func(t *testing.T) {
		world := ecs.NewWorld(registry)
		scheduler := ecs.NewScheduler(world)
		boom := errors.New("boom")

		failing := &testSystem{fn: func(frame *ecs.UpdateFrame) error {
			frame.Commands.Spawn(NewHealth(1, 1))
			return boom
		}}
		after := &testSystem{}
		scheduler.Register(failing)
		scheduler.Register(after)

		err := scheduler.Once(1.0)
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "testSystem")
		assert.Equal(t, 0, after.calls)
		assert.Equal(t, 0, world.Len(), "commands of a failed frame are discarded")
		assert.False(t, world.Locked())

		stats := scheduler.GetStats()
		assert.Equal(t, int64(1), stats.FailedFrames)
		assert.Equal(t, int64(1), stats.Systems[0].ErrorCount)
	})

	t.Run("run stops on error", func(t *testing.T) {
		world := ecs.NewWorld(registry)
		scheduler := ecs.NewScheduler(world)
		boom := errors.New("boom")
		scheduler.Register(&testSystem{fn: func(*ecs.UpdateFrame) error { return boom }})

		err := scheduler.Run(context.Background(), time.Millisecond)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("world is locked while systems run", func(t *testing.T) {
		world := ecs.NewWorld(registry)
		e, _ := world.Spawn(NewPosition(0, 0))
		scheduler := ecs.NewScheduler(world)

		var spawnErr, addErr error
		scheduler.Register(&testSystem{fn: func(*ecs.UpdateFrame) error {
			_, spawnErr = world.Spawn(NewHealth(1, 1))
			addErr = e.Add(NewHealth(1, 1))
			return nil
		}})

		require.NoError(t, scheduler.Once(1.0))
		assert.ErrorIs(t, spawnErr, ecs.ErrWorldLocked)
		assert.ErrorIs(t, addErr, ecs.ErrWorldLocked)
		assert.False(t, world.Locked())
	})

	t.Run("world is unlocked after a panicking system", func(t *testing.T) {
		world := ecs.NewWorld(registry)
		scheduler := ecs.NewScheduler(world)
		scheduler.Register(&testSystem{fn: func(*ecs.UpdateFrame) error { panic("boom") }})

		assert.Panics(t, func() { _ = scheduler.Once(1.0) })
		assert.False(t, world.Locked())
	})

	t.Run("stats", func(t *testing.T) {
		world := ecs.NewWorld(registry)
		scheduler := ecs.NewScheduler(world)
		_, _ = world.Spawn(NewPosition(0, 0), NewVelocity(1, 1))
		scheduler.Register(&MovementSystem{})

		for i := 0; i < 3; i++ {
			require.NoError(t, scheduler.Once(0.1))
		}

		stats := scheduler.GetStats()
		assert.Equal(t, 1, stats.SystemCount)
		assert.Equal(t, int64(3), stats.TotalExecutions)
		require.Len(t, stats.Systems, 1)
		assert.Equal(t, "MovementSystem", stats.Systems[0].Name)
		assert.Equal(t, 1, stats.Systems[0].EntityCount)
		assert.LessOrEqual(t, stats.Systems[0].MinDuration, stats.Systems[0].MaxDuration)
	})
}
