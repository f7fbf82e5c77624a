package gfx

import (
	"slices"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/plus3/kestrel/ecs"
	"github.com/plus3/kestrel/geom"
)

// OffScreenReporter is implemented by actor-like components that know whether
// their entity is outside the visible area.
type OffScreenReporter interface {
	IsOffScreen() bool
}

// OpacityModifier is implemented by actor-like components carrying an
// entity-level opacity multiplied into the graphics opacity.
type OpacityModifier interface {
	OpacityModifier() float64
}

// BoundsReporter is implemented by actor-like components exposing world-space
// collision bounds, drawn by the debug overlay.
type BoundsReporter interface {
	WorldBounds() (geom.BoundingBox, bool)
}

// FrameStats describes the last GraphicsSystem update.
type FrameStats struct {
	Token        uint64
	Entities     int
	Drawn        int
	Culled       int
	CameraPushes int
}

// Option configures a GraphicsSystem.
type Option func(*GraphicsSystem)

// WithDebug enables the origin marker and bounds overlay.
func WithDebug(debug bool) Option {
	return func(s *GraphicsSystem) {
		s.debug = debug
	}
}

// WithLogger sets the logger used for aborted frames.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *GraphicsSystem) {
		s.logger = logger
	}
}

// GraphicsSystem draws every entity that has a graphics component and a
// transform, once per frame, into a single Context.
//
// Entities are drawn in ascending Z. The sort is stable: entities with equal Z
// keep the order they were passed in.
//
// Errors are fail-fast. A missing transform or graphics component is reported
// as *ecs.MissingComponentError before anything is drawn. An error from a
// hook or a Draw call aborts the rest of the frame, Flush included; the
// context's state stack is still left balanced. A GraphicsSystem is not safe
// for concurrent use and must be the only writer of its Context.
type GraphicsSystem struct {
	ctx    Context
	scene  Scene
	debug  bool
	logger zerolog.Logger

	token uint64
	items []drawItem
	stats FrameStats
}

type drawItem struct {
	entity    *ecs.Entity
	transform *ecs.Transform
	graphics  Drawable
	offscreen OffScreenReporter
	opacity   OpacityModifier
	bounds    BoundsReporter
}

// NewGraphicsSystem creates a system drawing into ctx. scene may be nil.
func NewGraphicsSystem(ctx Context, scene Scene, opts ...Option) *GraphicsSystem {
	s := &GraphicsSystem{
		ctx:    ctx,
		scene:  scene,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Types lists the components an entity needs to be drawn.
func (s *GraphicsSystem) Types() []ecs.ComponentType {
	return []ecs.ComponentType{ecs.GraphicsType, ecs.TransformType}
}

// Execute runs Update for a scheduler frame.
func (s *GraphicsSystem) Execute(frame *ecs.UpdateFrame) error {
	return s.Update(frame.Entities, frame.DeltaTime)
}

func (s *GraphicsSystem) SetDebug(debug bool) {
	s.debug = debug
}

func (s *GraphicsSystem) Debug() bool {
	return s.debug
}

// Token returns the current frame token.
func (s *GraphicsSystem) Token() uint64 {
	return s.token
}

// Stats returns counters for the most recent Update.
func (s *GraphicsSystem) Stats() FrameStats {
	return s.stats
}

// Update draws one frame. The entities slice is not modified.
func (s *GraphicsSystem) Update(entities []*ecs.Entity, delta float64) error {
	s.ctx.Clear()
	s.token++
	s.stats = FrameStats{Token: s.token, Entities: len(entities)}

	if err := s.resolve(entities); err != nil {
		s.logger.Debug().Err(err).Uint64("token", s.token).Msg("frame aborted")
		return err
	}

	slices.SortStableFunc(s.items, func(a, b drawItem) int {
		switch {
		case a.transform.Z < b.transform.Z:
			return -1
		case a.transform.Z > b.transform.Z:
			return 1
		default:
			return 0
		}
	})

	for i := range s.items {
		if err := s.drawEntity(&s.items[i], delta); err != nil {
			s.logger.Debug().Err(err).Uint64("token", s.token).Uint64("entity", uint64(s.items[i].entity.ID())).Msg("frame aborted")
			clear(s.items)
			return err
		}
	}
	clear(s.items)

	s.ctx.Flush()
	return nil
}

// resolve looks up each entity's components and capabilities once.
func (s *GraphicsSystem) resolve(entities []*ecs.Entity) error {
	s.items = s.items[:0]
	for _, e := range entities {
		transform, err := ecs.Require[*ecs.Transform](e, ecs.TransformType)
		if err != nil {
			return err
		}
		graphics, err := ecs.Require[Drawable](e, ecs.GraphicsType)
		if err != nil {
			return err
		}

		item := drawItem{entity: e, transform: transform, graphics: graphics}
		if actor, ok := e.Get(ecs.ActorType); ok {
			item.offscreen, _ = actor.(OffScreenReporter)
			item.opacity, _ = actor.(OpacityModifier)
			item.bounds, _ = actor.(BoundsReporter)
		}
		s.items = append(s.items, item)
	}
	return nil
}

func (s *GraphicsSystem) drawEntity(item *drawItem, delta float64) error {
	if item.offscreen != nil && item.offscreen.IsOffScreen() {
		s.stats.Culled++
		return nil
	}

	if item.transform.CoordPlane == ecs.CoordPlaneWorld {
		s.ctx.Save()
		defer s.ctx.Restore()
		s.stats.CameraPushes++
		if s.scene != nil {
			if cam := s.scene.Camera(); cam != nil {
				cam.Draw(s.ctx)
			}
		}
	}

	if err := s.drawLocal(item, delta); err != nil {
		return err
	}
	s.stats.Drawn++

	if s.debug && item.bounds != nil {
		if bb, ok := item.bounds.WorldBounds(); ok {
			drawBounds(s.ctx, bb)
		}
	}
	return nil
}

func (s *GraphicsSystem) drawLocal(item *drawItem, delta float64) error {
	s.ctx.Save()
	defer s.ctx.Restore()

	g := item.graphics
	if pre, ok := g.(PreDrawer); ok {
		if err := pre.OnPreDraw(s.ctx); err != nil {
			return eris.Wrapf(err, "pre-draw entity %d", item.entity.ID())
		}
	}

	g.Update(delta, s.token)

	t := item.transform
	s.ctx.Translate(t.Pos.X, t.Pos.Y)
	s.ctx.Rotate(t.Rotation)
	s.ctx.Scale(t.Scale.X, t.Scale.Y)

	if s.debug {
		s.ctx.DrawPoint(geom.Zero, PointStyle{Color: Yellow, Size: 5})
	}

	x, y := s.anchorOffset(item)

	opacity := 1.0
	if item.opacity != nil {
		opacity = item.opacity.OpacityModifier()
	}
	s.ctx.SetZ(t.Z)
	s.ctx.SetOpacity(g.Opacity() * opacity)

	if err := g.Draw(s.ctx, x, y); err != nil {
		return eris.Wrapf(err, "draw entity %d", item.entity.ID())
	}

	if post, ok := g.(PostDrawer); ok {
		if err := post.OnPostDraw(s.ctx); err != nil {
			return eris.Wrapf(err, "post-draw entity %d", item.entity.ID())
		}
	}
	return nil
}

// anchorOffset is where anchor-based offsetting will go; graphics are
// currently drawn at the entity origin.
func (s *GraphicsSystem) anchorOffset(_ *drawItem) (float64, float64) {
	return 0, 0
}

func drawBounds(ctx Context, bb geom.BoundingBox) {
	style := LineStyle{Color: Red, Width: 1}
	corners := bb.Corners()
	for i := range corners {
		ctx.DrawLine(corners[i], corners[(i+1)%len(corners)], style)
	}
}

var _ ecs.System = (*GraphicsSystem)(nil)
