package ecs

// System represents a behavior that operates on entities with specific components.
// Types lists the component types an entity must have to be passed to Execute;
// the Scheduler filters entities with it before every call.
type System interface {
	Types() []ComponentType
	Execute(frame *UpdateFrame) error
}
