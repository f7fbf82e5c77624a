package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	"github.com/plus3/kestrel/actor"
	"github.com/plus3/kestrel/config"
	"github.com/plus3/kestrel/ecs"
	"github.com/plus3/kestrel/ecs/debugui"
	debugui_ebiten "github.com/plus3/kestrel/ecs/debugui/ebiten"
	"github.com/plus3/kestrel/gfx"
	"github.com/plus3/kestrel/gfx/ebitenctx"
)

// Game runs logic systems in Update and the graphics system in Draw, where
// the screen image is available.
type Game struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	camera    *gfx.ViewCamera
	ctx       *ebitenctx.Context
	graphics  *gfx.GraphicsSystem
	drawable  *ecs.Query
	timer     *debugui.FrameTimer
	imgui     *debugui_ebiten.ImguiBackend
	logger    zerolog.Logger
	dt        float64
}

func runWindow(cfg *config.Config, logger zerolog.Logger) error {
	width, height := float64(cfg.Window.Width), float64(cfg.Window.Height)

	imguiBackend := debugui_ebiten.NewImguiBackend(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
	ebiten.SetTPS(cfg.Window.TPS)

	registry := newRegistry()
	if err := debugui.RegisterDebugUIComponents(registry); err != nil {
		return err
	}
	world := ecs.NewWorld(registry)
	if err := populate(world, width, height); err != nil {
		return err
	}
	if err := debugui.SpawnDebugUI(world); err != nil {
		return err
	}

	camera := gfx.NewViewCamera(width, height)
	ctx := ebitenctx.New(nil)
	ctx.Background = color.RGBA{R: 24, G: 24, B: 32, A: 255}
	ctx.Antialias = true
	graphics := gfx.NewGraphicsSystem(ctx, gfx.StaticScene{Cam: camera},
		gfx.WithDebug(cfg.Graphics.Debug),
		gfx.WithLogger(logger),
	)

	scheduler := ecs.NewScheduler(world, ecs.WithSchedulerLogger(logger))
	scheduler.Register(OrbitSystem{})
	scheduler.Register(actor.NewVisibilitySystem(camera))
	scheduler.Register(&debugui.ImguiSystem{})
	scheduler.Register(debugui.NewDebugUISystem(world, scheduler, graphics))

	game := &Game{
		world:     world,
		scheduler: scheduler,
		camera:    camera,
		ctx:       ctx,
		graphics:  graphics,
		drawable:  ecs.NewQuery(world, graphics.Types()...),
		timer:     debugui.NewFrameTimer(),
		imgui:     imguiBackend,
		logger:    logger,
	}
	logger.Info().Int("entities", world.Len()).Msg("demo started")
	return ebiten.RunGame(game)
}

func (g *Game) Update() error {
	g.dt = g.timer.GetDeltaTime()

	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.graphics.SetDebug(!g.graphics.Debug())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.camera.ScrollTo(g.camera.ViewportWidth/2, g.camera.ViewportHeight/2, 1, nil)
	}
	if ebiten.IsKeyPressed(ebiten.KeyEqual) {
		g.camera.Zoom *= 1.01
	}
	if ebiten.IsKeyPressed(ebiten.KeyMinus) {
		g.camera.Zoom /= 1.01
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.camera.X -= 200 * g.dt
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.camera.X += 200 * g.dt
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.camera.Y -= 200 * g.dt
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.camera.Y += 200 * g.dt
	}
	g.camera.Update(g.dt)

	return g.imgui.Frame(func() error {
		return g.scheduler.Once(g.dt)
	})
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.ctx.Target = screen
	g.drawable.Execute()
	if err := g.graphics.Update(g.drawable.Entities(), g.dt); err != nil {
		g.logger.Error().Err(err).Msg("draw failed")
	}
	g.imgui.Overlay(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.imgui.Layout(outsideWidth, outsideHeight)
	g.camera.ViewportWidth = float64(outsideWidth)
	g.camera.ViewportHeight = float64(outsideHeight)
	return outsideWidth, outsideHeight
}
