package ecs_test

import "github.com/plus3/worldsbelow/ecs"

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Health struct {
	Current int
	Max     int
}

type Name string

type PlayerController bool

const testCapacity = 16

func newTestStorage() (*ecs.Storage, *ecs.ComponentStore[Position], *ecs.ComponentStore[Velocity], *ecs.ComponentStore[Health]) {
	storage := ecs.NewStorage(testCapacity)
	positions := ecs.RegisterComponent[Position](storage)
	velocities := ecs.RegisterComponent[Velocity](storage)
	healths := ecs.RegisterComponent[Health](storage)
	return storage, positions, velocities, healths
}
