package debugui

import (
	"fmt"
	"slices"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/kestrel/ecs"
)

func NewPerformanceStatsComponent(historyFrames int) *PerformanceStatsComponent {
	historyFrames = max(historyFrames, 1)
	return &PerformanceStatsComponent{
		Base:          ecs.NewBase(PerformanceStatsType),
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
		frameIndex:    0,
	}
}

func (ps *PerformanceStatsComponent) Render(ctx *PanelContext) {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ps.record(ctx.DeltaTime)
	stats := ctx.World.CollectStats()

	imgui.Text(fmt.Sprintf("Total Entities: %d", stats.EntityCount))
	imgui.Text(fmt.Sprintf("Components: %d", stats.ComponentCount))
	imgui.Text(fmt.Sprintf("World Version: %d", stats.Version))

	avgFrameTime := ps.averageFrameTime()
	fps := float32(0)
	if avgFrameTime > 0 {
		fps = 1000.0 / avgFrameTime
	}
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, fps))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	if ctx.Graphics != nil {
		fs := ctx.Graphics.Stats()
		imgui.Separator()
		imgui.Text(fmt.Sprintf("Frame Token: %d", fs.Token))
		imgui.Text(fmt.Sprintf("Drawn: %d  Culled: %d  Camera Pushes: %d", fs.Drawn, fs.Culled, fs.CameraPushes))
	}

	if ctx.Scheduler != nil && imgui.TreeNodeStr("Systems") {
		sched := ctx.Scheduler.GetStats()
		imgui.Text(fmt.Sprintf("Failed Frames: %d", sched.FailedFrames))

		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Entities")
			imgui.TableSetupColumn("Last")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Errors")
			imgui.TableHeadersRow()

			for _, sys := range sched.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.EntityCount))
				imgui.TableNextColumn()
				imgui.Text(sys.LastDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.ErrorCount))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Component Details") {
		types := make([]ecs.ComponentType, 0, len(stats.ComponentCounts))
		for t := range stats.ComponentCounts {
			types = append(types, t)
		}
		slices.Sort(types)
		for _, t := range types {
			imgui.BulletText(fmt.Sprintf("%s: %d", t, stats.ComponentCounts[t]))
		}
		imgui.TreePop()
	}

	imgui.End()
}

// record stores a frame duration given in seconds.
func (ps *PerformanceStatsComponent) record(deltaTime float64) {
	ps.frameHistory[ps.frameIndex] = float32(deltaTime * 1000.0)
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
}

// averageFrameTime returns the mean of the history window in milliseconds.
func (ps *PerformanceStatsComponent) averageFrameTime() float32 {
	var total float32
	for _, ft := range ps.frameHistory {
		total += ft
	}
	return total / float32(ps.historyFrames)
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

// GetDeltaTime returns the seconds elapsed since the previous call.
func (ft *FrameTimer) GetDeltaTime() float64 {
	now := time.Now()
	delta := now.Sub(ft.lastFrameTime).Seconds()
	ft.lastFrameTime = now
	return delta
}
