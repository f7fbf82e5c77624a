package geom

import "math"

// BoundingBox is an axis-aligned rectangle.
type BoundingBox struct {
	Left, Top, Right, Bottom float64
}

// BoxFromSize builds the box for a width x height rectangle whose anchor
// point (0..1 on each axis) sits at the origin.
func BoxFromSize(width, height float64, anchor Vector) BoundingBox {
	left := -width * anchor.X
	top := -height * anchor.Y
	return BoundingBox{Left: left, Top: top, Right: left + width, Bottom: top + height}
}

func (b BoundingBox) Width() float64  { return b.Right - b.Left }
func (b BoundingBox) Height() float64 { return b.Bottom - b.Top }

func (b BoundingBox) Translate(v Vector) BoundingBox {
	return BoundingBox{Left: b.Left + v.X, Top: b.Top + v.Y, Right: b.Right + v.X, Bottom: b.Bottom + v.Y}
}

// Overlaps reports whether b and o share any area (touching edges count).
func (b BoundingBox) Overlaps(o BoundingBox) bool {
	return b.Left <= o.Right && o.Left <= b.Right && b.Top <= o.Bottom && o.Top <= b.Bottom
}

func (b BoundingBox) Contains(v Vector) bool {
	return v.X >= b.Left && v.X <= b.Right && v.Y >= b.Top && v.Y <= b.Bottom
}

// Corners returns the four corners clockwise from the top-left.
func (b BoundingBox) Corners() [4]Vector {
	return [4]Vector{
		{X: b.Left, Y: b.Top},
		{X: b.Right, Y: b.Top},
		{X: b.Right, Y: b.Bottom},
		{X: b.Left, Y: b.Bottom},
	}
}

// Transform returns the axis-aligned box enclosing b after applying m.
func (b BoundingBox) Transform(m Matrix) BoundingBox {
	out := BoundingBox{Left: math.Inf(1), Top: math.Inf(1), Right: math.Inf(-1), Bottom: math.Inf(-1)}
	for _, c := range b.Corners() {
		p := m.Apply(c)
		out.Left = math.Min(out.Left, p.X)
		out.Top = math.Min(out.Top, p.Y)
		out.Right = math.Max(out.Right, p.X)
		out.Bottom = math.Max(out.Bottom, p.Y)
	}
	return out
}
