package main

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/plus3/kestrel/actor"
	"github.com/plus3/kestrel/config"
	"github.com/plus3/kestrel/ecs"
	"github.com/plus3/kestrel/gfx"
	"github.com/plus3/kestrel/gfx/tcellctx"
)

func runTerminal(cfg *config.Config, logger zerolog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	cols, rows := screen.Size()
	cw, ch := cfg.Graphics.CellWidth, cfg.Graphics.CellHeight
	width, height := float64(cols)*cw, float64(rows)*ch

	world := ecs.NewWorld(newRegistry())
	if err := populate(world, width, height); err != nil {
		return err
	}

	camera := gfx.NewViewCamera(width, height)
	ctx := tcellctx.New(screen, cw, ch)
	graphics := gfx.NewGraphicsSystem(ctx, gfx.StaticScene{Cam: camera},
		gfx.WithDebug(cfg.Graphics.Debug),
		gfx.WithLogger(logger),
	)

	scheduler := ecs.NewScheduler(world, ecs.WithSchedulerLogger(logger))
	scheduler.Register(OrbitSystem{})
	scheduler.Register(actor.NewVisibilitySystem(camera))
	scheduler.Register(graphics)

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	tick := time.Second / time.Duration(cfg.Window.TPS)
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					return nil
				}
				if ev.Rune() == 'd' {
					graphics.SetDebug(!graphics.Debug())
				}
			case *tcell.EventResize:
				cols, rows := screen.Size()
				camera.ViewportWidth = float64(cols) * cw
				camera.ViewportHeight = float64(rows) * ch
				screen.Sync()
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			camera.Update(dt)
			if err := scheduler.Once(dt); err != nil {
				return err
			}
		}
	}
}
