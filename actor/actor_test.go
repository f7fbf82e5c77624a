package actor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/kestrel/actor"
	"github.com/plus3/kestrel/ecs"
	"github.com/plus3/kestrel/geom"
)

func TestActor(t *testing.T) {
	t.Run("depends on a transform", func(t *testing.T) {
		e, err := ecs.NewEntity(actor.New(4, 4))
		require.NoError(t, err)
		assert.Equal(t, []ecs.ComponentType{ecs.ActorType, ecs.TransformType}, e.Types())
	})

	t.Run("detached actor has no position", func(t *testing.T) {
		a := actor.New(4, 4)
		_, ok := a.WorldPos()
		assert.False(t, ok)
		_, ok = a.WorldBounds()
		assert.False(t, ok)
	})

	t.Run("world bounds follow the transform", func(t *testing.T) {
		a := actor.New(10, 20)
		a.Anchor = geom.V(0.5, 0.5)
		e, err := ecs.NewEntity(a)
		require.NoError(t, err)

		tr, _ := ecs.Get[*ecs.Transform](e, ecs.TransformType)
		tr.Pos = geom.V(100, 100)
		tr.Scale = geom.V(2, 2)

		pos, ok := a.WorldPos()
		require.True(t, ok)
		assert.Equal(t, geom.V(100, 100), pos)

		bb, ok := a.WorldBounds()
		require.True(t, ok)
		assert.Equal(t, geom.BoundingBox{Left: 90, Top: 80, Right: 110, Bottom: 120}, bb)
	})

	t.Run("collider overrides the box", func(t *testing.T) {
		a := actor.New(10, 10)
		a.Collider = &geom.Polygon{Points: []geom.Vector{{X: -1, Y: -2}, {X: 3, Y: 4}}}
		assert.Equal(t, geom.BoundingBox{Left: -1, Top: -2, Right: 3, Bottom: 4}, a.LocalBounds())

		a.Collider = &geom.Polygon{}
		assert.Equal(t, geom.BoundingBox{Right: 10, Bottom: 10}, a.LocalBounds(), "empty collider falls back")
	})

	t.Run("capabilities", func(t *testing.T) {
		a := actor.New(1, 1)
		assert.Equal(t, 1.0, a.OpacityModifier())
		a.Alpha = 0.25
		assert.Equal(t, 0.25, a.OpacityModifier())

		assert.False(t, a.IsOffScreen())
		a.SetOffScreen(true)
		assert.True(t, a.IsOffScreen())
	})

	t.Run("clone deep copies the collider", func(t *testing.T) {
		a := actor.New(1, 1)
		a.Collider = &geom.Polygon{Points: []geom.Vector{{X: 1, Y: 1}}}

		c, err := a.Clone()
		require.NoError(t, err)
		clone := c.(*actor.Actor)
		require.NotNil(t, clone.Collider)
		assert.NotSame(t, a.Collider, clone.Collider)

		clone.Collider.Points[0] = geom.V(9, 9)
		assert.Equal(t, geom.V(1, 1), a.Collider.Points[0])
	})
}
