package ebiten_test

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/kestrel/ecs"
	"github.com/plus3/kestrel/ecs/debugui"
	debugui_ebiten "github.com/plus3/kestrel/ecs/debugui/ebiten"
)

// Game implements ebiten.Game and integrates the ECS with ImGui rendering.
type Game struct {
	world        *ecs.World
	scheduler    *ecs.Scheduler
	imguiBackend *debugui_ebiten.ImguiBackend
}

func (g *Game) Update() error {
	// Execute all ECS systems (including ImguiSystem) inside the ImGui frame
	return g.imguiBackend.Frame(func() error {
		return g.scheduler.Once(1.0 / 60.0)
	})
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Draw game content to screen
	// ...

	// Draw ImGui overlay on top
	g.imguiBackend.Overlay(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.imguiBackend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	// Create Ebiten window and ImGui backend
	imguiBackend := debugui_ebiten.NewImguiBackend("ECS ImGui Example", 1280, 720)

	// Set up ECS component registry
	registry := ecs.NewComponentRegistry()
	if err := debugui.RegisterDebugUIComponents(registry); err != nil {
		panic(err)
	}

	world := ecs.NewWorld(registry)

	// Spawn entities with ImGui render functions
	if _, err := world.Spawn(debugui.NewImguiItem(func() {
		imgui.Begin("Debug Window")
		imgui.Text("Hello from ECS!")
		imgui.End()
	})); err != nil {
		panic(err)
	}

	// Create scheduler and register ImguiSystem
	scheduler := ecs.NewScheduler(world)
	scheduler.Register(&debugui.ImguiSystem{})

	game := &Game{
		world:        world,
		scheduler:    scheduler,
		imguiBackend: imguiBackend,
	}

	// Run the game
	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}
}
