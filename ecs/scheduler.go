package ecs

import (
	"context"
	"reflect"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	FailedFrames    int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	ErrorCount     int64
	EntityCount    int
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	errorCount     int64
	entityCount    int
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler manages and executes systems in order.
type Scheduler struct {
	world        *World
	systems      []System
	queries      []*Query
	systemStats  []*systemStatsInternal
	failedFrames int64
	logger       zerolog.Logger
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithSchedulerLogger sets the logger used to report failed systems.
func WithSchedulerLogger(logger zerolog.Logger) SchedulerOption {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// NewScheduler creates a new scheduler for the given world.
func NewScheduler(world *World, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		world:   world,
		systems: make([]System, 0),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register adds a system to the scheduler and creates the query feeding it.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, system)
	s.queries = append(s.queries, NewQuery(s.world, system.Types()...))

	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemName(system),
		minDuration: time.Duration(1<<63 - 1),
	})
}

func systemName(system System) string {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	return systemType.Name()
}

// Once executes all registered systems once with the given delta time.
//
// The world is locked while systems run; structural changes must go through
// frame.Commands, which are applied after the last system. The first failing
// system aborts the frame: later systems are skipped, the queued commands are
// discarded and the wrapped error is returned.
func (s *Scheduler) Once(dt float64) error {
	frame := newUpdateFrame(dt, s.world)

	if err := s.runSystems(frame); err != nil {
		s.failedFrames++
		frame.Commands.Reset()
		return err
	}

	if err := frame.Commands.Flush(s.world); err != nil {
		s.logger.Warn().Err(err).Msg("some deferred commands failed")
		return eris.Wrap(err, "failed to flush commands")
	}
	return nil
}

func (s *Scheduler) runSystems(frame *UpdateFrame) error {
	s.world.lock()
	defer s.world.unlock()

	for i, system := range s.systems {
		query := s.queries[i]
		query.Execute()
		frame.Entities = query.Entities()

		start := time.Now()
		err := system.Execute(frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.entityCount = len(frame.Entities)
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}

		if err != nil {
			stats.errorCount++
			s.logger.Error().Err(err).Str("system", stats.name).Float64("dt", frame.DeltaTime).Msg("system failed, frame aborted")
			return eris.Wrapf(err, "system %s generated an error", stats.name)
		}
	}
	frame.Entities = nil
	return nil
}

// Run executes all systems repeatedly at the given interval until the context
// is cancelled or a frame fails. Cancellation is not an error.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			if err := s.Once(dt); err != nil {
				return err
			}
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount:  len(s.systems),
		FailedFrames: s.failedFrames,
		Systems:      make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			ErrorCount:     internal.errorCount,
			EntityCount:    internal.entityCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
