package gfx

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/plus3/kestrel/geom"
)

// Camera applies the view transform for world-plane entities.
type Camera interface {
	Draw(ctx Context)
}

// Scene supplies the camera. Camera may return nil, in which case world-plane
// entities are drawn with an identity view.
type Scene interface {
	Camera() Camera
}

// StaticScene is a Scene with a fixed camera.
type StaticScene struct {
	Cam Camera
}

func (s StaticScene) Camera() Camera {
	return s.Cam
}

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// ViewCamera centers a viewport on a world position with zoom and rotation.
type ViewCamera struct {
	// X and Y are the world-space position the camera centers on.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// Rotation is the camera rotation in radians.
	Rotation float64
	// ViewportWidth and ViewportHeight are the screen size in pixels.
	ViewportWidth, ViewportHeight float64

	scroll *scrollAnim
}

// NewViewCamera creates a camera centered on the middle of the viewport.
func NewViewCamera(viewportWidth, viewportHeight float64) *ViewCamera {
	return &ViewCamera{
		X:              viewportWidth / 2,
		Y:              viewportHeight / 2,
		Zoom:           1,
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
	}
}

// ViewMatrix maps world coordinates to screen coordinates.
func (c *ViewCamera) ViewMatrix() geom.Matrix {
	zoom := c.Zoom
	if zoom == 0 {
		zoom = 1
	}
	return geom.Identity.
		Translate(c.ViewportWidth/2, c.ViewportHeight/2).
		Scale(zoom, zoom).
		Rotate(-c.Rotation).
		Translate(-c.X, -c.Y)
}

// Draw applies the view transform to ctx. A nil camera applies nothing.
func (c *ViewCamera) Draw(ctx Context) {
	if c == nil {
		return
	}
	zoom := c.Zoom
	if zoom == 0 {
		zoom = 1
	}
	ctx.Translate(c.ViewportWidth/2, c.ViewportHeight/2)
	ctx.Scale(zoom, zoom)
	ctx.Rotate(-c.Rotation)
	ctx.Translate(-c.X, -c.Y)
}

// VisibleBounds returns the world-space box covered by the viewport.
func (c *ViewCamera) VisibleBounds() geom.BoundingBox {
	screen := geom.BoundingBox{Right: c.ViewportWidth, Bottom: c.ViewportHeight}
	return screen.Transform(c.ViewMatrix().Invert())
}

// ScreenBounds returns the viewport rectangle in screen space.
func (c *ViewCamera) ScreenBounds() geom.BoundingBox {
	return geom.BoundingBox{Right: c.ViewportWidth, Bottom: c.ViewportHeight}
}

// ScrollTo animates the camera to the given world position over duration
// seconds. A nil easeFn is linear.
func (c *ViewCamera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.Linear
	}
	c.scroll = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (c *ViewCamera) Scrolling() bool {
	return c.scroll != nil
}

// Update advances an active scroll animation by dt seconds.
func (c *ViewCamera) Update(dt float64) {
	if c.scroll == nil {
		return
	}
	if !c.scroll.doneX {
		x, done := c.scroll.tweenX.Update(float32(dt))
		c.X = float64(x)
		c.scroll.doneX = done
	}
	if !c.scroll.doneY {
		y, done := c.scroll.tweenY.Update(float32(dt))
		c.Y = float64(y)
		c.scroll.doneY = done
	}
	if c.scroll.doneX && c.scroll.doneY {
		c.scroll = nil
	}
}

var _ Camera = (*ViewCamera)(nil)
