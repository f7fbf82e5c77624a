package geom

import "errors"

var ErrEmptyPolygon = errors.New("geom: polygon has no points")

// Polygon is an ordered list of points. Its backing slice is shared on
// assignment, so components holding one rely on CloneValue for deep copies.
type Polygon struct {
	Points []Vector
}

// CloneValue returns an independent copy of the polygon.
func (p Polygon) CloneValue() (any, error) {
	if p.Points == nil {
		return Polygon{}, nil
	}
	pts := make([]Vector, len(p.Points))
	copy(pts, p.Points)
	return Polygon{Points: pts}, nil
}

// Bounds returns the axis-aligned bounds of the polygon.
func (p Polygon) Bounds() (BoundingBox, error) {
	if len(p.Points) == 0 {
		return BoundingBox{}, ErrEmptyPolygon
	}
	b := BoundingBox{Left: p.Points[0].X, Top: p.Points[0].Y, Right: p.Points[0].X, Bottom: p.Points[0].Y}
	for _, pt := range p.Points[1:] {
		b.Left = min(b.Left, pt.X)
		b.Top = min(b.Top, pt.Y)
		b.Right = max(b.Right, pt.X)
		b.Bottom = max(b.Bottom, pt.Y)
	}
	return b, nil
}
