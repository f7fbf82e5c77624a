package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/plus3/kestrel/actor"
	"github.com/plus3/kestrel/config"
	"github.com/plus3/kestrel/ecs"
	"github.com/plus3/kestrel/geom"
	"github.com/plus3/kestrel/gfx"
)

func main() {
	configPath := flag.String("config", "", "Optional YAML config file.")
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 0, "Number of entities to create (overrides config).")
	seed := flag.Int64("seed", 1, "Random seed for entity placement.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}
	if *entityCount > 0 {
		cfg.Stress.Entities = *entityCount
	}
	cfg.Apply()
	logger := cfg.Logger(os.Stderr)

	if err := run(cfg, logger, *duration, *seed, *gcPauseMetrics); err != nil {
		logger.Fatal().Err(err).Msg("stress test failed")
	}
}

func run(cfg *config.Config, logger zerolog.Logger, duration time.Duration, seed int64, gcPauseMetrics bool) error {
	logger.Info().Msg("Starting graphics stress test...")

	width, height := float64(cfg.Window.Width), float64(cfg.Window.Height)

	// 1. Setup Registry, World, and Scheduler
	registry := ecs.NewComponentRegistry()
	ecs.MustRegisterComponent(registry, ecs.NewTransform)
	ecs.MustRegisterComponent(registry, actor.NewComponent)
	ecs.MustRegisterComponent(registry, gfx.NewGraphicsComponent)
	world := ecs.NewWorld(registry)

	camera := gfx.NewViewCamera(width, height)
	recorder := gfx.NewRecorder()
	recorder.Discard = true
	graphics := gfx.NewGraphicsSystem(recorder, gfx.StaticScene{Cam: camera},
		gfx.WithDebug(cfg.Graphics.Debug),
		gfx.WithLogger(logger),
	)

	scheduler := ecs.NewScheduler(world, ecs.WithSchedulerLogger(logger))
	scheduler.Register(&DriftSystem{Bounds: geom.BoundingBox{Right: width * 3, Bottom: height * 3}})
	scheduler.Register(actor.NewVisibilitySystem(camera))
	scheduler.Register(graphics)

	// 2. Populate the world
	logger.Info().Int("entities", cfg.Stress.Entities).Msg("Populating world")
	rng := rand.New(rand.NewSource(seed))
	if err := populate(world, rng, cfg.Stress.Entities, cfg.Stress.OffScreenRatio, width, height); err != nil {
		return err
	}
	logger.Info().Msg("Population complete.")

	// 3. Run the simulation loop
	report := &Report{
		Duration:       duration,
		Entities:       cfg.Stress.Entities,
		OffScreenRatio: cfg.Stress.OffScreenRatio,
		CloneMode:      cfg.Graphics.TransformClone,
		GCPauseMetrics: gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0, 1024),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info().Dur("duration", duration).Msg("Running simulation")
	startTime := time.Now()
	deadline := startTime.Add(duration)
	dt := cfg.Stress.Delta.Seconds()

	for time.Now().Before(deadline) {
		updateStart := time.Now()
		if err := scheduler.Once(dt); err != nil {
			return err
		}
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
		report.TotalUpdates++

		stats := graphics.Stats()
		report.Drawn.Add(stats.Drawn)
		report.Culled.Add(stats.Culled)
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	report.Systems = scheduler.GetStats().Systems
	report.Ops = make(map[gfx.OpKind]int)
	for _, kind := range []gfx.OpKind{gfx.OpClear, gfx.OpSave, gfx.OpRestore, gfx.OpRect, gfx.OpPoint, gfx.OpLine, gfx.OpFlush} {
		report.Ops[kind] = recorder.Count(kind)
	}
	runtime.ReadMemStats(&report.MemStatsEnd)

	logger.Info().Int64("updates", report.TotalUpdates).Msg("Simulation finished.")

	// 4. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		return err
	}
	fmt.Println("--- End of Report ---")
	return nil
}
