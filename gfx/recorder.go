package gfx

import (
	"image/color"

	"github.com/plus3/kestrel/geom"
)

// OpKind names a recorded Context call.
type OpKind string

const (
	OpClear     OpKind = "clear"
	OpSave      OpKind = "save"
	OpRestore   OpKind = "restore"
	OpTranslate OpKind = "translate"
	OpRotate    OpKind = "rotate"
	OpScale     OpKind = "scale"
	OpPoint     OpKind = "point"
	OpLine      OpKind = "line"
	OpRect      OpKind = "rect"
	OpImage     OpKind = "image"
	OpSetZ      OpKind = "z"
	OpOpacity   OpKind = "opacity"
	OpFlush     OpKind = "flush"
)

// Op is one recorded call with the state in effect when it was made.
type Op struct {
	Kind    OpKind
	Args    []float64
	Matrix  geom.Matrix
	Z       float64
	Opacity float64
	Color   color.Color
	Image   Image
}

// Recorder is a headless Context that records every call. It is used by
// tests and by tools that measure the pipeline without a display. The zero
// value is ready to use once Clear has reset its state to identity.
type Recorder struct {
	State
	Ops []Op

	// Discard keeps only the counters, dropping the op log.
	Discard bool
	counts  map[OpKind]int
}

func NewRecorder() *Recorder {
	return &Recorder{State: NewState(), counts: make(map[OpKind]int)}
}

func (r *Recorder) record(kind OpKind, c color.Color, img Image, args ...float64) {
	if r.counts == nil {
		r.counts = make(map[OpKind]int)
	}
	r.counts[kind]++
	if r.Discard {
		return
	}
	r.Ops = append(r.Ops, Op{
		Kind:    kind,
		Args:    args,
		Matrix:  r.Matrix(),
		Z:       r.State.Z(),
		Opacity: r.State.Opacity(),
		Color:   c,
		Image:   img,
	})
}

// Clear records the call and resets the transform state. The op log is kept.
func (r *Recorder) Clear() {
	r.State.Reset()
	r.record(OpClear, nil, nil)
}

func (r *Recorder) Save() {
	r.State.Save()
	r.record(OpSave, nil, nil)
}

func (r *Recorder) Restore() {
	r.State.Restore()
	r.record(OpRestore, nil, nil)
}

func (r *Recorder) Translate(x, y float64) {
	r.State.Translate(x, y)
	r.record(OpTranslate, nil, nil, x, y)
}

func (r *Recorder) Rotate(radians float64) {
	r.State.Rotate(radians)
	r.record(OpRotate, nil, nil, radians)
}

func (r *Recorder) Scale(sx, sy float64) {
	r.State.Scale(sx, sy)
	r.record(OpScale, nil, nil, sx, sy)
}

func (r *Recorder) DrawPoint(p geom.Vector, style PointStyle) {
	r.record(OpPoint, style.Color, nil, p.X, p.Y, style.Size)
}

func (r *Recorder) DrawLine(a, b geom.Vector, style LineStyle) {
	r.record(OpLine, style.Color, nil, a.X, a.Y, b.X, b.Y, style.Width)
}

func (r *Recorder) DrawRect(x, y, width, height float64, c color.Color) {
	r.record(OpRect, c, nil, x, y, width, height)
}

func (r *Recorder) DrawImage(img Image, x, y float64) {
	r.record(OpImage, nil, img, x, y)
}

func (r *Recorder) SetZ(z float64) {
	r.State.SetZ(z)
	r.record(OpSetZ, nil, nil, z)
}

func (r *Recorder) SetOpacity(opacity float64) {
	r.State.SetOpacity(opacity)
	r.record(OpOpacity, nil, nil, opacity)
}

func (r *Recorder) Flush() {
	r.record(OpFlush, nil, nil)
}

// Count returns how many times kind was called since the last Reset.
func (r *Recorder) Count(kind OpKind) int {
	return r.counts[kind]
}

// Filter returns the recorded ops of the given kinds, in call order.
func (r *Recorder) Filter(kinds ...OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		for _, k := range kinds {
			if op.Kind == k {
				out = append(out, op)
				break
			}
		}
	}
	return out
}

// ResetLog drops recorded ops and counters.
func (r *Recorder) ResetLog() {
	r.Ops = r.Ops[:0]
	clear(r.counts)
}

var _ Context = (*Recorder)(nil)
