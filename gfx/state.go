package gfx

import (
	"image/color"

	"github.com/plus3/kestrel/geom"
)

type drawState struct {
	matrix  geom.Matrix
	z       float64
	opacity float64
}

// State implements the transform, Z and opacity bookkeeping shared by every
// Context backend. Backends embed it and read Matrix when recording draws.
type State struct {
	current drawState
	stack   []drawState
}

// NewState returns an identity state with full opacity.
func NewState() State {
	return State{current: drawState{matrix: geom.Identity, opacity: 1}}
}

// Reset returns the state to identity and drops any saved entries.
func (s *State) Reset() {
	s.current = drawState{matrix: geom.Identity, opacity: 1}
	s.stack = s.stack[:0]
}

func (s *State) Save() {
	s.stack = append(s.stack, s.current)
}

func (s *State) Restore() {
	if len(s.stack) == 0 {
		return
	}
	s.current = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

// Depth returns the number of unmatched Save calls.
func (s *State) Depth() int {
	return len(s.stack)
}

func (s *State) Translate(x, y float64) {
	s.current.matrix = s.current.matrix.Translate(x, y)
}

func (s *State) Rotate(radians float64) {
	s.current.matrix = s.current.matrix.Rotate(radians)
}

func (s *State) Scale(sx, sy float64) {
	s.current.matrix = s.current.matrix.Scale(sx, sy)
}

func (s *State) Matrix() geom.Matrix {
	return s.current.matrix
}

func (s *State) Z() float64 {
	return s.current.z
}

func (s *State) SetZ(z float64) {
	s.current.z = z
}

func (s *State) Opacity() float64 {
	return s.current.opacity
}

func (s *State) SetOpacity(opacity float64) {
	s.current.opacity = opacity
}

// ApplyOpacity scales c's alpha by opacity clamped to [0, 1].
func ApplyOpacity(c color.Color, opacity float64) color.RGBA {
	if c == nil {
		c = White
	}
	opacity = min(max(opacity, 0), 1)
	r, g, b, a := c.RGBA()
	return color.RGBA{
		R: uint8(float64(r>>8) * opacity),
		G: uint8(float64(g>>8) * opacity),
		B: uint8(float64(b>>8) * opacity),
		A: uint8(float64(a>>8) * opacity),
	}
}
