package geom

import "math"

// Matrix is a 2D affine matrix laid out as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Matrix [6]float64

// Identity is the identity affine matrix.
var Identity = Matrix{1, 0, 0, 1, 0, 0}

// Multiply returns m * o, i.e. o is applied first and m second.
func (m Matrix) Multiply(o Matrix) Matrix {
	return Matrix{
		m[0]*o[0] + m[2]*o[1],
		m[1]*o[0] + m[3]*o[1],
		m[0]*o[2] + m[2]*o[3],
		m[1]*o[2] + m[3]*o[3],
		m[0]*o[4] + m[2]*o[5] + m[4],
		m[1]*o[4] + m[3]*o[5] + m[5],
	}
}

// Translate post-multiplies a translation, so that it applies in m's local space.
func (m Matrix) Translate(x, y float64) Matrix {
	return m.Multiply(Matrix{1, 0, 0, 1, x, y})
}

// Rotate post-multiplies a rotation by angle radians.
func (m Matrix) Rotate(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	return m.Multiply(Matrix{cos, sin, -sin, cos, 0, 0})
}

// Scale post-multiplies a scale.
func (m Matrix) Scale(sx, sy float64) Matrix {
	return m.Multiply(Matrix{sx, 0, 0, sy, 0, 0})
}

// Apply transforms a point.
func (m Matrix) Apply(v Vector) Vector {
	return Vector{
		X: m[0]*v.X + m[2]*v.Y + m[4],
		Y: m[1]*v.X + m[3]*v.Y + m[5],
	}
}

// Invert returns the inverse of m, or Identity when m is singular.
func (m Matrix) Invert() Matrix {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return Identity
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Matrix{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// ScaleFactor returns the average axis scale encoded in m.
func (m Matrix) ScaleFactor() float64 {
	sx := math.Hypot(m[0], m[1])
	sy := math.Hypot(m[2], m[3])
	return (sx + sy) / 2
}
