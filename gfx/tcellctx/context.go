// Package tcellctx implements gfx.Context on a terminal screen. Each cell
// covers CellWidth x CellHeight world units.
package tcellctx

import (
	"image/color"
	"math"
	"slices"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/kestrel/geom"
	"github.com/plus3/kestrel/gfx"
)

const (
	PointRune = '●'
	LineRune  = '·'
	ImageRune = '▒'
)

type cell struct {
	x, y  int
	z     float64
	r     rune
	style tcell.Style
}

// Context rasterizes draw calls into terminal cells. Cells are buffered and
// written to Screen in Z order on Flush. Fully transparent draws are
// dropped.
type Context struct {
	gfx.State

	Screen     tcell.Screen
	CellWidth  float64
	CellHeight float64

	cells []cell
}

// New returns a context for screen. Non-positive cell sizes default to 1.
func New(screen tcell.Screen, cellWidth, cellHeight float64) *Context {
	if cellWidth <= 0 {
		cellWidth = 1
	}
	if cellHeight <= 0 {
		cellHeight = 1
	}
	return &Context{
		State:      gfx.NewState(),
		Screen:     screen,
		CellWidth:  cellWidth,
		CellHeight: cellHeight,
	}
}

func (c *Context) Clear() {
	c.State.Reset()
	c.cells = c.cells[:0]
}

// Pending returns the number of buffered cells.
func (c *Context) Pending() int {
	return len(c.cells)
}

func (c *Context) toCell(p geom.Vector) (int, int) {
	p = c.Matrix().Apply(p)
	return int(math.Floor(p.X / c.CellWidth)), int(math.Floor(p.Y / c.CellHeight))
}

func (c *Context) style(clr color.Color, background bool) (tcell.Style, bool) {
	if c.Opacity() <= 0 {
		return tcell.StyleDefault, false
	}
	rgba := gfx.ApplyOpacity(clr, c.Opacity())
	tc := tcell.NewRGBColor(int32(rgba.R), int32(rgba.G), int32(rgba.B))
	if background {
		return tcell.StyleDefault.Background(tc), true
	}
	return tcell.StyleDefault.Foreground(tc), true
}

func (c *Context) put(x, y int, r rune, style tcell.Style) {
	c.cells = append(c.cells, cell{x: x, y: y, z: c.Z(), r: r, style: style})
}

func (c *Context) DrawPoint(p geom.Vector, style gfx.PointStyle) {
	st, ok := c.style(style.Color, false)
	if !ok {
		return
	}
	x, y := c.toCell(p)
	c.put(x, y, PointRune, st)
}

// DrawLine steps through the cells between both ends.
func (c *Context) DrawLine(a, b geom.Vector, style gfx.LineStyle) {
	st, ok := c.style(style.Color, false)
	if !ok {
		return
	}
	x0, y0 := c.toCell(a)
	x1, y1 := c.toCell(b)
	steps := max(abs(x1-x0), abs(y1-y0))
	if steps == 0 {
		c.put(x0, y0, LineRune, st)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := x0 + int(math.Round(t*float64(x1-x0)))
		y := y0 + int(math.Round(t*float64(y1-y0)))
		c.put(x, y, LineRune, st)
	}
}

func (c *Context) DrawRect(x, y, width, height float64, clr color.Color) {
	st, ok := c.style(clr, true)
	if !ok {
		return
	}
	c.fill(geom.BoundingBox{Left: x, Top: y, Right: x + width, Bottom: y + height}, ' ', st)
}

func (c *Context) DrawImage(img gfx.Image, x, y float64) {
	st, ok := c.style(gfx.White, false)
	if !ok {
		return
	}
	b := img.Bounds()
	c.fill(geom.BoundingBox{Left: x, Top: y, Right: x + float64(b.Dx()), Bottom: y + float64(b.Dy())}, ImageRune, st)
}

// fill covers the cells of the transformed box's axis-aligned bounds.
func (c *Context) fill(box geom.BoundingBox, r rune, st tcell.Style) {
	world := box.Transform(c.Matrix())
	left := int(math.Floor(world.Left / c.CellWidth))
	top := int(math.Floor(world.Top / c.CellHeight))
	right := int(math.Ceil(world.Right/c.CellWidth)) - 1
	bottom := int(math.Ceil(world.Bottom/c.CellHeight)) - 1
	for y := top; y <= bottom; y++ {
		for x := left; x <= right; x++ {
			c.put(x, y, r, st)
		}
	}
}

// Flush clears the screen, writes the buffered cells and shows the result.
func (c *Context) Flush() {
	slices.SortStableFunc(c.cells, func(a, b cell) int {
		switch {
		case a.z < b.z:
			return -1
		case a.z > b.z:
			return 1
		default:
			return 0
		}
	})

	c.Screen.Clear()
	w, h := c.Screen.Size()
	for _, ce := range c.cells {
		if ce.x < 0 || ce.y < 0 || ce.x >= w || ce.y >= h {
			continue
		}
		c.Screen.SetContent(ce.x, ce.y, ce.r, nil, ce.style)
	}
	c.Screen.Show()
	c.cells = c.cells[:0]
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

var _ gfx.Context = (*Context)(nil)
