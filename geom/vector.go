// Package geom provides the small 2D math types shared by components and
// rendering contexts.
package geom

import "math"

// Vector is a 2D vector in world units.
type Vector struct {
	X, Y float64
}

var (
	Zero = Vector{}
	One  = Vector{X: 1, Y: 1}
)

// V is shorthand for Vector{X: x, Y: y}.
func V(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vector) Sub(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vector) Scale(s float64) Vector {
	return Vector{X: v.X * s, Y: v.Y * s}
}

// Mul multiplies component-wise.
func (v Vector) Mul(o Vector) Vector {
	return Vector{X: v.X * o.X, Y: v.Y * o.Y}
}

func (v Vector) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Rotate rotates v around the origin by angle radians.
func (v Vector) Rotate(angle float64) Vector {
	sin, cos := math.Sincos(angle)
	return Vector{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}

// Equals reports whether v and o differ by at most tolerance on each axis.
func (v Vector) Equals(o Vector, tolerance float64) bool {
	return math.Abs(v.X-o.X) <= tolerance && math.Abs(v.Y-o.Y) <= tolerance
}
