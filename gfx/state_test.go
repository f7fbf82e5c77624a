package gfx_test

import (
	"image/color"
	"testing"

	"github.com/plus3/kestrel/geom"
	"github.com/plus3/kestrel/gfx"
)

func TestState(t *testing.T) {
	t.Run("restore returns the saved state", func(t *testing.T) {
		s := gfx.NewState()
		s.Translate(5, 5)
		s.SetZ(2)
		s.Save()
		s.Scale(2, 2)
		s.SetZ(9)
		s.SetOpacity(0.1)
		s.Restore()

		if s.Matrix() != geom.Identity.Translate(5, 5) {
			t.Errorf("matrix not restored: %v", s.Matrix())
		}
		if s.Z() != 2 {
			t.Errorf("expected z 2, got %v", s.Z())
		}
		if s.Opacity() != 1 {
			t.Errorf("expected opacity 1, got %v", s.Opacity())
		}
		if s.Depth() != 0 {
			t.Errorf("expected empty stack, got depth %d", s.Depth())
		}
	})

	t.Run("restore on empty stack is a no-op", func(t *testing.T) {
		s := gfx.NewState()
		s.Translate(1, 2)
		s.Restore()
		if s.Matrix() != geom.Identity.Translate(1, 2) {
			t.Errorf("unexpected matrix %v", s.Matrix())
		}
	})

	t.Run("reset", func(t *testing.T) {
		s := gfx.NewState()
		s.Save()
		s.Save()
		s.Rotate(1)
		s.Reset()
		if s.Depth() != 0 || s.Matrix() != geom.Identity || s.Opacity() != 1 {
			t.Error("reset did not restore defaults")
		}
	})
}

func TestApplyOpacity(t *testing.T) {
	tests := []struct {
		name    string
		c       color.Color
		opacity float64
		want    color.RGBA
	}{
		{"opaque", gfx.Red, 1, gfx.Red},
		{"transparent", gfx.Red, 0, color.RGBA{}},
		{"clamped high", gfx.Red, 3, gfx.Red},
		{"clamped low", gfx.Red, -1, color.RGBA{}},
		{"nil is white", nil, 1, gfx.White},
		{"half", color.RGBA{R: 200, G: 100, A: 200}, 0.5, color.RGBA{R: 100, G: 50, A: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gfx.ApplyOpacity(tt.c, tt.opacity); got != tt.want {
				t.Errorf("ApplyOpacity() = %v, want %v", got, tt.want)
			}
		})
	}
}
