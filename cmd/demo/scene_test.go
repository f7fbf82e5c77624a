package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/kestrel/actor"
	"github.com/plus3/kestrel/ecs"
	"github.com/plus3/kestrel/gfx"
)

func TestScene(t *testing.T) {
	world := ecs.NewWorld(newRegistry())
	require.NoError(t, populate(world, 640, 480))
	assert.Len(t, world.Query(OrbitType), 24)

	camera := gfx.NewViewCamera(640, 480)
	rec := gfx.NewRecorder()
	graphics := gfx.NewGraphicsSystem(rec, gfx.StaticScene{Cam: camera})

	scheduler := ecs.NewScheduler(world)
	scheduler.Register(OrbitSystem{})
	scheduler.Register(actor.NewVisibilitySystem(camera))
	scheduler.Register(graphics)

	for i := 0; i < 3; i++ {
		require.NoError(t, scheduler.Once(1.0/60))
	}

	stats := graphics.Stats()
	assert.Equal(t, 27, stats.Entities)
	assert.Equal(t, 27, stats.Drawn)
	assert.Equal(t, 26, stats.CameraPushes, "the hud is in screen space")

	zs := rec.Filter(gfx.OpSetZ)
	last := zs[len(zs)-1]
	assert.Equal(t, 100.0, last.Args[0], "hud is drawn last")
}
