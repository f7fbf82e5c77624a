package actor

import (
	"github.com/plus3/kestrel/ecs"
	"github.com/plus3/kestrel/geom"
)

// Viewport reports the visible area in both coordinate planes.
type Viewport interface {
	VisibleBounds() geom.BoundingBox
	ScreenBounds() geom.BoundingBox
}

// VisibilitySystem marks actors off-screen when their bounds leave the
// viewport. It must run before the graphics system in the same frame.
type VisibilitySystem struct {
	Viewport Viewport
	// Margin grows the visible area on every side.
	Margin float64
}

func NewVisibilitySystem(viewport Viewport) *VisibilitySystem {
	return &VisibilitySystem{Viewport: viewport}
}

func (s *VisibilitySystem) Types() []ecs.ComponentType {
	return []ecs.ComponentType{ecs.ActorType, ecs.TransformType}
}

func (s *VisibilitySystem) Execute(frame *ecs.UpdateFrame) error {
	if s.Viewport == nil {
		return nil
	}
	world := s.grow(s.Viewport.VisibleBounds())
	screen := s.grow(s.Viewport.ScreenBounds())

	for _, e := range frame.Entities {
		a, err := ecs.Require[*Actor](e, ecs.ActorType)
		if err != nil {
			return err
		}
		t, err := ecs.Require[*ecs.Transform](e, ecs.TransformType)
		if err != nil {
			return err
		}

		bounds := a.LocalBounds().Transform(t.Matrix())
		view := world
		if t.CoordPlane == ecs.CoordPlaneScreen {
			view = screen
		}
		a.SetOffScreen(!bounds.Overlaps(view))
	}
	return nil
}

func (s *VisibilitySystem) grow(b geom.BoundingBox) geom.BoundingBox {
	return geom.BoundingBox{
		Left:   b.Left - s.Margin,
		Top:    b.Top - s.Margin,
		Right:  b.Right + s.Margin,
		Bottom: b.Bottom + s.Margin,
	}
}

var _ ecs.System = (*VisibilitySystem)(nil)
