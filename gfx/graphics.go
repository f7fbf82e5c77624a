package gfx

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/plus3/kestrel/ecs"
	"github.com/plus3/kestrel/geom"
)

// Drawable is the graphics capability the GraphicsSystem draws.
type Drawable interface {
	ecs.Component
	Opacity() float64
	// Update advances time-based state. token identifies the frame; repeated
	// calls with the same token must not advance the state again.
	Update(delta float64, token uint64)
	Draw(ctx Context, x, y float64) error
}

// PreDrawer is called after the entity's state scope is saved and before the
// local transform is applied.
type PreDrawer interface {
	OnPreDraw(ctx Context) error
}

// PostDrawer is called after Draw, before the state scope is restored.
type PostDrawer interface {
	OnPostDraw(ctx Context) error
}

// Layer is a named graphic drawn at an offset from the entity origin.
type Layer struct {
	Name    string
	Graphic Graphic
	Offset  geom.Vector
}

// Layers are drawn in order. Graphics implementing ecs.Cloneable are deep
// copied when the owning component is cloned; others are shared.
type Layers []Layer

func (l Layers) CloneValue() (any, error) {
	if l == nil {
		return Layers(nil), nil
	}
	out := make(Layers, len(l))
	for i, layer := range l {
		out[i] = layer
		c, ok := layer.Graphic.(ecs.Cloneable)
		if !ok {
			continue
		}
		v, err := c.CloneValue()
		if err != nil {
			return nil, eris.Wrapf(err, "layer %q", layer.Name)
		}
		g, ok := v.(Graphic)
		if !ok {
			return nil, eris.Errorf("layer %q: clone is %T, not a Graphic", layer.Name, v)
		}
		out[i].Graphic = g
	}
	return out, nil
}

type opacityFade struct {
	tween *gween.Tween
}

func (f opacityFade) CloneValue() (any, error) {
	if f.tween == nil {
		return opacityFade{}, nil
	}
	t := *f.tween
	return opacityFade{tween: &t}, nil
}

// Graphics is the standard Drawable component. It depends on a transform.
type Graphics struct {
	ecs.Base

	// Alpha is the component opacity in [0, 1].
	Alpha   float64
	Visible bool
	Layers  Layers

	PreDraw  func(ctx Context) error
	PostDraw func(ctx Context) error

	lastToken uint64
	ticks     int
	fade      opacityFade
}

// NewGraphics returns a visible, opaque graphics component drawing layers.
func NewGraphics(graphics ...Graphic) *Graphics {
	g := &Graphics{
		Base:    ecs.NewBase(ecs.GraphicsType, ecs.NewTransformComponent),
		Alpha:   1,
		Visible: true,
	}
	for i, gr := range graphics {
		g.Layers = append(g.Layers, Layer{Name: fmt.Sprintf("layer%d", i), Graphic: gr})
	}
	return g
}

// NewGraphicsComponent is NewGraphics() as an ecs.Constructor.
func NewGraphicsComponent() ecs.Component {
	return NewGraphics()
}

func (g *Graphics) Clone() (ecs.Component, error) {
	return ecs.CloneComponent(g)
}

func (g *Graphics) Opacity() float64 {
	return g.Alpha
}

// Use replaces all layers with a single one.
func (g *Graphics) Use(graphic Graphic) {
	g.Layers = Layers{{Name: "default", Graphic: graphic}}
}

// Add appends a named layer.
func (g *Graphics) Add(name string, graphic Graphic, offset geom.Vector) {
	g.Layers = append(g.Layers, Layer{Name: name, Graphic: graphic, Offset: offset})
}

// Layer returns the graphic of the named layer.
func (g *Graphics) Layer(name string) (Graphic, bool) {
	for _, l := range g.Layers {
		if l.Name == name {
			return l.Graphic, true
		}
	}
	return nil, false
}

// FadeTo tweens Alpha to target over duration seconds. A nil easeFn is linear.
func (g *Graphics) FadeTo(target float64, duration float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.Linear
	}
	g.fade = opacityFade{tween: gween.New(float32(g.Alpha), float32(target), duration, easeFn)}
}

// Fading reports whether an opacity fade is running.
func (g *Graphics) Fading() bool {
	return g.fade.tween != nil
}

// Ticks returns how many frames advanced the component's clock.
func (g *Graphics) Ticks() int {
	return g.ticks
}

// Update advances animated layers and the opacity fade once per frame token.
func (g *Graphics) Update(delta float64, token uint64) {
	if token != 0 && token == g.lastToken {
		return
	}
	g.lastToken = token
	g.ticks++

	for _, l := range g.Layers {
		if a, ok := l.Graphic.(Animated); ok {
			a.Tick(delta)
		}
	}

	if g.fade.tween != nil {
		alpha, done := g.fade.tween.Update(float32(delta))
		g.Alpha = float64(alpha)
		if done {
			g.fade = opacityFade{}
		}
	}
}

func (g *Graphics) Draw(ctx Context, x, y float64) error {
	if !g.Visible {
		return nil
	}
	for _, l := range g.Layers {
		if l.Graphic == nil {
			continue
		}
		if err := l.Graphic.Draw(ctx, x+l.Offset.X, y+l.Offset.Y); err != nil {
			return eris.Wrapf(err, "layer %q", l.Name)
		}
	}
	return nil
}

func (g *Graphics) OnPreDraw(ctx Context) error {
	if g.PreDraw == nil {
		return nil
	}
	return g.PreDraw(ctx)
}

func (g *Graphics) OnPostDraw(ctx Context) error {
	if g.PostDraw == nil {
		return nil
	}
	return g.PostDraw(ctx)
}

// LocalBounds returns the union of every layer's bounds.
func (g *Graphics) LocalBounds() geom.BoundingBox {
	var out geom.BoundingBox
	first := true
	for _, l := range g.Layers {
		if l.Graphic == nil {
			continue
		}
		b := l.Graphic.LocalBounds().Translate(l.Offset)
		if first {
			out = b
			first = false
			continue
		}
		out.Left = min(out.Left, b.Left)
		out.Top = min(out.Top, b.Top)
		out.Right = max(out.Right, b.Right)
		out.Bottom = max(out.Bottom, b.Bottom)
	}
	return out
}

var (
	_ Drawable   = (*Graphics)(nil)
	_ PreDrawer  = (*Graphics)(nil)
	_ PostDrawer = (*Graphics)(nil)
)
