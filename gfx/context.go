// Package gfx draws entities carrying a graphics component and a transform.
//
// The GraphicsSystem drives a rendering Context once per frame: it clears
// the context, sorts entities by Z, applies the camera and each entity's
// local transform inside balanced Save/Restore scopes, delegates drawing to
// the entity's graphics component and finally flushes the context.
package gfx

import (
	"image"
	"image/color"

	"github.com/plus3/kestrel/geom"
)

// Context is a 2D drawing surface with a nestable state stack. The saved
// state covers the current transform, Z and opacity. Drawing coordinates are
// interpreted in the current transform.
type Context interface {
	// Clear drops the previous frame's contents.
	Clear()

	Save()
	// Restore pops the most recent Save. It is a no-op on an empty stack.
	Restore()

	Translate(x, y float64)
	Rotate(radians float64)
	Scale(sx, sy float64)

	DrawPoint(p geom.Vector, style PointStyle)
	DrawLine(a, b geom.Vector, style LineStyle)
	DrawRect(x, y, width, height float64, c color.Color)
	DrawImage(img Image, x, y float64)

	Z() float64
	SetZ(z float64)
	Opacity() float64
	SetOpacity(opacity float64)

	// Flush submits buffered draw commands to the output surface.
	Flush()
}

// Image is anything drawable as a bitmap. Backends draw the image types they
// know and fall back to a filled rectangle of the image's bounds.
type Image interface {
	Bounds() image.Rectangle
}

// PointStyle configures DrawPoint.
type PointStyle struct {
	Color color.Color
	Size  float64
}

// LineStyle configures DrawLine.
type LineStyle struct {
	Color color.Color
	Width float64
}

var (
	Yellow = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Red    = color.RGBA{R: 255, A: 255}
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)
