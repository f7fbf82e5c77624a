package main

import (
	"image/color"
	"math/rand"

	"github.com/plus3/kestrel/actor"
	"github.com/plus3/kestrel/ecs"
	"github.com/plus3/kestrel/geom"
	"github.com/plus3/kestrel/gfx"
)

var palette = []color.Color{
	color.RGBA{R: 230, G: 80, B: 80, A: 255},
	color.RGBA{R: 80, G: 200, B: 120, A: 255},
	color.RGBA{R: 90, G: 140, B: 240, A: 255},
	color.RGBA{R: 240, G: 200, B: 60, A: 255},
}

// populate spawns count drifting actors. A share of offScreenRatio is placed
// outside the viewport.
func populate(world *ecs.World, rng *rand.Rand, count int, offScreenRatio float64, width, height float64) error {
	for i := 0; i < count; i++ {
		size := 4 + rng.Float64()*12
		a := actor.New(size, size)
		a.Alpha = 0.5 + rng.Float64()/2

		var g gfx.Graphic = &gfx.Rect{Width: size, Height: size, Color: palette[i%len(palette)]}
		if i%3 == 0 {
			g = &gfx.Circle{Radius: size / 2, Color: palette[i%len(palette)]}
		}
		graphics := gfx.NewGraphics(g)

		t := ecs.NewTransform()
		t.Pos = geom.V(rng.Float64()*width, rng.Float64()*height)
		if rng.Float64() < offScreenRatio {
			t.Pos = t.Pos.Add(geom.V(width*2, height*2))
		}
		t.Vel = geom.V(rng.Float64()*60-30, rng.Float64()*60-30)
		t.AngularVelocity = rng.Float64() - 0.5
		t.Z = float64(rng.Intn(8))
		if i%50 == 0 {
			t.CoordPlane = ecs.CoordPlaneScreen
		}

		if _, err := world.Spawn(t, a, graphics); err != nil {
			return err
		}
	}
	return nil
}

// DriftSystem moves transforms by their velocity and wraps them around a
// region of Bounds.
type DriftSystem struct {
	Bounds geom.BoundingBox
}

func (s *DriftSystem) Types() []ecs.ComponentType {
	return []ecs.ComponentType{ecs.TransformType}
}

func (s *DriftSystem) Execute(frame *ecs.UpdateFrame) error {
	w, h := s.Bounds.Width(), s.Bounds.Height()
	for _, e := range frame.Entities {
		t, err := ecs.Require[*ecs.Transform](e, ecs.TransformType)
		if err != nil {
			return err
		}
		t.Pos = t.Pos.Add(t.Vel.Scale(frame.DeltaTime))
		t.Rotation += t.AngularVelocity * frame.DeltaTime
		if w > 0 && h > 0 {
			t.Pos.X = wrap(t.Pos.X, s.Bounds.Left, w)
			t.Pos.Y = wrap(t.Pos.Y, s.Bounds.Top, h)
		}
	}
	return nil
}

func wrap(v, origin, size float64) float64 {
	for v < origin {
		v += size
	}
	for v >= origin+size {
		v -= size
	}
	return v
}
