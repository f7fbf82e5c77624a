package main

import (
	"image/color"
	"math"

	"github.com/tanema/gween/ease"

	"github.com/plus3/kestrel/actor"
	"github.com/plus3/kestrel/ecs"
	"github.com/plus3/kestrel/geom"
	"github.com/plus3/kestrel/gfx"
)

// Orbit moves an entity on a circle around Center.
type Orbit struct {
	ecs.Base
	Center geom.Vector
	Radius float64
	Speed  float64
	Angle  float64
}

const OrbitType ecs.ComponentType = "orbit"

func NewOrbit() *Orbit {
	return &Orbit{Base: ecs.NewBase(OrbitType, ecs.NewTransformComponent), Speed: 1}
}

func (o *Orbit) Clone() (ecs.Component, error) {
	return ecs.CloneComponent(o)
}

type OrbitSystem struct{}

func (OrbitSystem) Types() []ecs.ComponentType {
	return []ecs.ComponentType{OrbitType, ecs.TransformType}
}

func (OrbitSystem) Execute(frame *ecs.UpdateFrame) error {
	for _, e := range frame.Entities {
		o, err := ecs.Require[*Orbit](e, OrbitType)
		if err != nil {
			return err
		}
		t, err := ecs.Require[*ecs.Transform](e, ecs.TransformType)
		if err != nil {
			return err
		}
		o.Angle += o.Speed * frame.DeltaTime
		t.Pos = o.Center.Add(geom.V(math.Cos(o.Angle), math.Sin(o.Angle)).Scale(o.Radius))
		t.Rotation = o.Angle
	}
	return nil
}

func newRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.MustRegisterComponent(registry, ecs.NewTransform)
	ecs.MustRegisterComponent(registry, actor.NewComponent)
	ecs.MustRegisterComponent(registry, gfx.NewGraphicsComponent)
	ecs.MustRegisterComponent(registry, NewOrbit)
	ecs.MustRegisterComponent(registry, func() *ecs.TagComponent { return ecs.NewTag("name") })
	return registry
}

// populate builds the demo scene: a ring of orbiting shapes, a blinking
// animation, a fading square and a screen-space HUD bar.
func populate(world *ecs.World, width, height float64) error {
	center := geom.V(width/2, height/2)
	colors := []color.Color{
		color.RGBA{R: 255, G: 179, B: 186, A: 255},
		color.RGBA{R: 179, G: 229, B: 252, A: 255},
		color.RGBA{R: 186, G: 255, B: 201, A: 255},
		color.RGBA{R: 217, G: 186, B: 255, A: 255},
	}

	for i := 0; i < 24; i++ {
		orbit := NewOrbit()
		orbit.Center = center
		orbit.Radius = 80 + float64(i%4)*40
		orbit.Speed = 0.3 + float64(i%5)*0.1
		orbit.Angle = float64(i) * math.Pi / 12

		a := actor.New(24, 24)
		a.Anchor = geom.V(0.5, 0.5)

		graphics := gfx.NewGraphics()
		if i%2 == 0 {
			graphics.Add("body", &gfx.Rect{Width: 24, Height: 24, Color: colors[i%len(colors)]}, geom.V(-12, -12))
		} else {
			graphics.Add("body", &gfx.Circle{Radius: 12, Color: colors[i%len(colors)]}, geom.Zero)
		}

		if _, err := world.Spawn(orbit, a, graphics, ecs.NewValueTag[ecs.Symbol]("name", "orbiter")); err != nil {
			return err
		}
	}

	blink := gfx.NewAnimation(0.25,
		&gfx.Circle{Radius: 20, Color: gfx.Yellow},
		&gfx.Circle{Radius: 14, Color: gfx.Red},
	)
	blinker := gfx.NewGraphics(blink)
	bt := ecs.NewTransform()
	bt.Pos = center
	bt.SetZ(10)
	if _, err := world.Spawn(bt, blinker, ecs.NewValueTag[ecs.Symbol]("name", "sun")); err != nil {
		return err
	}

	fader := gfx.NewGraphics(&gfx.Rect{Width: 60, Height: 60, Color: colors[0]})
	fader.FadeTo(0.1, 4, ease.InOutQuad)
	ft := ecs.NewTransform()
	ft.Pos = geom.V(40, 40)
	ft.SetZ(-1)
	if _, err := world.Spawn(ft, fader, ecs.NewValueTag[ecs.Symbol]("name", "fader")); err != nil {
		return err
	}

	hud := gfx.NewGraphics(&gfx.Rect{Width: width - 20, Height: 8, Color: gfx.White})
	hud.Alpha = 0.6
	ht := ecs.NewTransform()
	ht.CoordPlane = ecs.CoordPlaneScreen
	ht.Pos = geom.V(10, height-18)
	ht.SetZ(100)
	_, err := world.Spawn(ht, hud, ecs.NewValueTag[ecs.Symbol]("name", "hud"))
	return err
}
