// Package ebitenctx implements gfx.Context on top of an ebiten image.
package ebitenctx

import (
	"image/color"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/kestrel/geom"
	"github.com/plus3/kestrel/gfx"
)

type commandKind uint8

const (
	commandPoint commandKind = iota
	commandLine
	commandRect
	commandImage
)

// command is one buffered draw with the state it was issued under.
type command struct {
	kind    commandKind
	matrix  geom.Matrix
	z       float64
	opacity float64
	color   color.Color
	image   gfx.Image
	a, b    geom.Vector
	w, h    float64
	size    float64
}

// Context buffers draw calls for a frame and submits them to Target on
// Flush, ordered by Z. Calls with equal Z keep their issue order.
type Context struct {
	gfx.State

	// Target receives the frame on Flush. It is usually set from
	// ebiten.Game.Draw.
	Target *ebiten.Image
	// Background fills Target before the frame is drawn. Nil leaves Target
	// as is.
	Background color.Color
	// Antialias is passed to the vector helpers.
	Antialias bool

	commands []command
	pixel    *ebiten.Image
	op       ebiten.DrawImageOptions
}

// New returns a context drawing into target.
func New(target *ebiten.Image) *Context {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &Context{
		State:  gfx.NewState(),
		Target: target,
		pixel:  pixel,
	}
}

// Clear drops buffered commands and resets the state.
func (c *Context) Clear() {
	c.State.Reset()
	c.commands = c.commands[:0]
}

// Pending returns the number of buffered commands.
func (c *Context) Pending() int {
	return len(c.commands)
}

func (c *Context) push(cmd command) {
	cmd.matrix = c.Matrix()
	cmd.z = c.Z()
	cmd.opacity = c.Opacity()
	c.commands = append(c.commands, cmd)
}

func (c *Context) DrawPoint(p geom.Vector, style gfx.PointStyle) {
	c.push(command{kind: commandPoint, a: p, size: style.Size, color: style.Color})
}

func (c *Context) DrawLine(a, b geom.Vector, style gfx.LineStyle) {
	c.push(command{kind: commandLine, a: a, b: b, size: style.Width, color: style.Color})
}

func (c *Context) DrawRect(x, y, width, height float64, clr color.Color) {
	c.push(command{kind: commandRect, a: geom.V(x, y), w: width, h: height, color: clr})
}

func (c *Context) DrawImage(img gfx.Image, x, y float64) {
	c.push(command{kind: commandImage, a: geom.V(x, y), image: img})
}

// Flush draws the buffered commands into Target and empties the buffer.
func (c *Context) Flush() {
	if c.Target == nil {
		c.commands = c.commands[:0]
		return
	}
	if c.Background != nil {
		c.Target.Fill(c.Background)
	}

	slices.SortStableFunc(c.commands, func(a, b command) int {
		switch {
		case a.z < b.z:
			return -1
		case a.z > b.z:
			return 1
		default:
			return 0
		}
	})

	for i := range c.commands {
		c.submit(&c.commands[i])
	}
	c.commands = c.commands[:0]
}

func (c *Context) submit(cmd *command) {
	switch cmd.kind {
	case commandPoint:
		p := cmd.matrix.Apply(cmd.a)
		r := cmd.size / 2 * cmd.matrix.ScaleFactor()
		vector.DrawFilledCircle(c.Target, float32(p.X), float32(p.Y), float32(r), gfx.ApplyOpacity(cmd.color, cmd.opacity), c.Antialias)
	case commandLine:
		a := cmd.matrix.Apply(cmd.a)
		b := cmd.matrix.Apply(cmd.b)
		w := cmd.size * cmd.matrix.ScaleFactor()
		vector.StrokeLine(c.Target, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(w), gfx.ApplyOpacity(cmd.color, cmd.opacity), c.Antialias)
	case commandRect:
		c.drawQuad(cmd, cmd.w, cmd.h, cmd.color)
	case commandImage:
		img, ok := cmd.image.(*ebiten.Image)
		if !ok {
			b := cmd.image.Bounds()
			c.drawQuad(cmd, float64(b.Dx()), float64(b.Dy()), gfx.White)
			return
		}
		c.op.GeoM.Reset()
		c.op.GeoM.Translate(cmd.a.X, cmd.a.Y)
		c.op.GeoM.Concat(geoM(cmd.matrix))
		c.op.ColorScale.Reset()
		c.op.ColorScale.ScaleAlpha(float32(clamp01(cmd.opacity)))
		c.Target.DrawImage(img, &c.op)
	}
}

// drawQuad stretches the 1x1 white pixel over a transformed rectangle.
func (c *Context) drawQuad(cmd *command, w, h float64, clr color.Color) {
	c.op.GeoM.Reset()
	c.op.GeoM.Scale(w, h)
	c.op.GeoM.Translate(cmd.a.X, cmd.a.Y)
	c.op.GeoM.Concat(geoM(cmd.matrix))
	c.op.ColorScale.Reset()
	c.op.ColorScale.ScaleWithColor(gfx.ApplyOpacity(clr, cmd.opacity))
	c.Target.DrawImage(c.pixel, &c.op)
}

func geoM(m geom.Matrix) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

var _ gfx.Context = (*Context)(nil)
