package gfx

import (
	"errors"
	"image/color"

	"github.com/plus3/kestrel/ecs"
	"github.com/plus3/kestrel/geom"
)

// Graphic is something a Graphics component can draw at a local offset.
type Graphic interface {
	Draw(ctx Context, x, y float64) error
	LocalBounds() geom.BoundingBox
}

// Animated graphics advance an internal clock. Graphics calls Tick at most
// once per frame.
type Animated interface {
	Tick(delta float64)
}

// Rect is a filled rectangle with its top-left corner at the draw offset.
type Rect struct {
	Width, Height float64
	Color         color.Color
}

func (r *Rect) Draw(ctx Context, x, y float64) error {
	ctx.DrawRect(x, y, r.Width, r.Height, r.Color)
	return nil
}

func (r *Rect) LocalBounds() geom.BoundingBox {
	return geom.BoundingBox{Right: r.Width, Bottom: r.Height}
}

// Circle is a filled disc centered on the draw offset.
type Circle struct {
	Radius float64
	Color  color.Color
}

func (c *Circle) Draw(ctx Context, x, y float64) error {
	ctx.DrawPoint(geom.V(x, y), PointStyle{Color: c.Color, Size: c.Radius * 2})
	return nil
}

func (c *Circle) LocalBounds() geom.BoundingBox {
	return geom.BoundingBox{Left: -c.Radius, Top: -c.Radius, Right: c.Radius, Bottom: c.Radius}
}

// Sprite draws an image with its top-left corner at the draw offset.
type Sprite struct {
	Image Image
}

func (s *Sprite) Draw(ctx Context, x, y float64) error {
	if s.Image == nil {
		return nil
	}
	ctx.DrawImage(s.Image, x, y)
	return nil
}

func (s *Sprite) LocalBounds() geom.BoundingBox {
	if s.Image == nil {
		return geom.BoundingBox{}
	}
	b := s.Image.Bounds()
	return geom.BoundingBox{Right: float64(b.Dx()), Bottom: float64(b.Dy())}
}

// AnimationStrategy decides what happens after the last frame.
type AnimationStrategy int

const (
	AnimationLoop AnimationStrategy = iota
	AnimationEnd
	AnimationFreeze
)

var ErrNoFrames = errors.New("gfx: animation has no frames")

// Animation cycles through frames, each shown for FrameDuration seconds.
type Animation struct {
	Frames        []Graphic
	FrameDuration float64
	Strategy      AnimationStrategy

	index   int
	elapsed float64
	done    bool
}

// NewAnimation returns a looping animation.
func NewAnimation(frameDuration float64, frames ...Graphic) *Animation {
	return &Animation{Frames: frames, FrameDuration: frameDuration}
}

// Tick advances the animation clock by delta seconds.
func (a *Animation) Tick(delta float64) {
	if a.done || len(a.Frames) == 0 || a.FrameDuration <= 0 {
		return
	}
	a.elapsed += delta
	for a.elapsed >= a.FrameDuration {
		a.elapsed -= a.FrameDuration
		if a.index+1 < len(a.Frames) {
			a.index++
			continue
		}
		switch a.Strategy {
		case AnimationLoop:
			a.index = 0
		case AnimationEnd:
			a.done = true
			return
		case AnimationFreeze:
			a.done = true
			return
		}
	}
}

// Frame returns the index of the current frame.
func (a *Animation) Frame() int {
	return a.index
}

// Done reports whether a non-looping animation has finished.
func (a *Animation) Done() bool {
	return a.done
}

// Reset rewinds to the first frame.
func (a *Animation) Reset() {
	a.index = 0
	a.elapsed = 0
	a.done = false
}

func (a *Animation) Draw(ctx Context, x, y float64) error {
	if len(a.Frames) == 0 {
		return ErrNoFrames
	}
	if a.done && a.Strategy == AnimationEnd {
		return nil
	}
	return a.Frames[a.index].Draw(ctx, x, y)
}

func (a *Animation) LocalBounds() geom.BoundingBox {
	if len(a.Frames) == 0 {
		return geom.BoundingBox{}
	}
	return a.Frames[a.index].LocalBounds()
}

// CloneValue copies the animation and its playback state. Frames are shared.
func (a *Animation) CloneValue() (any, error) {
	out := *a
	out.Frames = append([]Graphic(nil), a.Frames...)
	return &out, nil
}

var (
	_ Animated      = (*Animation)(nil)
	_ ecs.Cloneable = (*Animation)(nil)
)
