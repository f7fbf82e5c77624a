package ebitenctx

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/kestrel/geom"
	"github.com/plus3/kestrel/gfx"
)

func TestGeoM(t *testing.T) {
	m := geom.Identity.Translate(10, 5).Rotate(math.Pi/3).Scale(2, 0.5)
	g := geoM(m)

	for _, p := range []geom.Vector{geom.Zero, geom.V(1, 0), geom.V(-3, 7)} {
		want := m.Apply(p)
		x, y := g.Apply(p.X, p.Y)
		assert.InDelta(t, want.X, x, 1e-9)
		assert.InDelta(t, want.Y, y, 1e-9)
	}
}

func TestContextBuffering(t *testing.T) {
	c := &Context{State: gfx.NewState()}

	c.Translate(3, 4)
	c.SetZ(2)
	c.SetOpacity(0.5)
	c.DrawRect(0, 0, 10, 10, gfx.Red)

	c.Save()
	c.SetZ(1)
	c.DrawPoint(geom.Zero, gfx.PointStyle{Color: gfx.Yellow, Size: 5})
	c.Restore()

	require.Equal(t, 2, c.Pending())
	rect := c.commands[0]
	assert.Equal(t, commandRect, rect.kind)
	assert.Equal(t, geom.Identity.Translate(3, 4), rect.matrix)
	assert.Equal(t, 2.0, rect.z)
	assert.Equal(t, 0.5, rect.opacity)
	assert.Equal(t, 1.0, c.commands[1].z)

	t.Run("flush without target drops commands", func(t *testing.T) {
		c.Flush()
		assert.Equal(t, 0, c.Pending())
	})

	t.Run("clear resets state", func(t *testing.T) {
		c.DrawLine(geom.Zero, geom.One, gfx.LineStyle{Width: 1})
		c.Clear()
		assert.Equal(t, 0, c.Pending())
		assert.Equal(t, geom.Identity, c.Matrix())
		assert.Equal(t, 0.0, c.Z())
	})
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, clamp01(-2))
	assert.Equal(t, 0.25, clamp01(0.25))
	assert.Equal(t, 1.0, clamp01(4))
}
