package ecs_test

import (
	"fmt"
	"time"

	"github.com/plus3/worldsbelow/ecs"
)

type Transform struct {
	X, Y float32
}

type Speed struct {
	DX, DY float32
}

type PhysicsSystem struct {
	Transforms *ecs.ComponentStore[Transform]
	Speeds     *ecs.ComponentStore[Speed]
}

func (s *PhysicsSystem) Execute(frame *ecs.UpdateFrame) {
	ecs.Each2(s.Transforms, s.Speeds, func(_ ecs.EntityId, tr *Transform, sp *Speed) {
		tr.X += sp.DX * float32(frame.DeltaTime)
		tr.Y += sp.DY * float32(frame.DeltaTime)
	})
}

// ExampleScheduler demonstrates building a game loop. Systems run in
// registration order and structural changes queued on frame.Commands are
// applied after the last system.
func ExampleScheduler() {
	storage := ecs.NewStorage(10)
	transforms := ecs.RegisterComponent[Transform](storage)
	speeds := ecs.RegisterComponent[Speed](storage)

	ship, _ := storage.Spawn(func(id ecs.EntityId) error {
		if err := transforms.Add(id, Transform{}); err != nil {
			return err
		}
		return speeds.Add(id, Speed{DX: 10, DY: 5})
	})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&PhysicsSystem{Transforms: transforms, Speeds: speeds})

	for i := 0; i < 3; i++ {
		_ = scheduler.Once(500 * time.Millisecond)
	}

	tr := transforms.Get(ship)
	fmt.Printf("Ship at (%.1f, %.1f)\n", tr.X, tr.Y)
	fmt.Printf("Executions: %d\n", scheduler.GetStats().TotalExecutions)

	// Output:
	// Ship at (15.0, 7.5)
	// Executions: 3
}
