package ecs

// System represents a behavior that operates on entities with specific components.
// Systems hold references to the stores they read and write, plus any state that
// persists between frames. A system must not add to or remove from a store it is
// iterating; queue structural changes on frame.Commands instead.
type System interface {
	Execute(frame *UpdateFrame)
}
