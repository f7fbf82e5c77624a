package ecs

// UpdateFrame is the per-system view of one scheduler frame.
type UpdateFrame struct {
	DeltaTime float64
	// Entities holds the entities matching the running system's Types, in
	// spawn order. Systems must not retain the slice.
	Entities []*Entity
	Commands *Commands
	World    *World
}

func newUpdateFrame(dt float64, world *World) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Commands:  newCommands(),
		World:     world,
	}
}
