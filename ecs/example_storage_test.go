package ecs_test

import (
	"fmt"

	"github.com/plus3/worldsbelow/ecs"
)

// ExampleStorage demonstrates the basic API for managing entities and components.
// Each component type gets its own dense store; an entity is just the id that
// joins values across stores.
func ExampleStorage() {
	storage := ecs.NewStorage(100)
	positions := ecs.RegisterComponent[Position](storage)
	healths := ecs.RegisterComponent[Health](storage)

	player, _ := storage.Spawn(func(id ecs.EntityId) error {
		if err := positions.Add(id, Position{X: 10, Y: 20}); err != nil {
			return err
		}
		return healths.Add(id, Health{Current: 100, Max: 100})
	})

	pos := positions.Get(player)
	fmt.Printf("Player %d spawned at (%.0f, %.0f)\n", player, pos.X, pos.Y)

	pos.X = 15
	pos.Y = 25
	fmt.Printf("Player moved to (%.0f, %.0f)\n", positions.Get(player).X, positions.Get(player).Y)

	_ = healths.Remove(player)
	fmt.Printf("Has health: %v\n", healths.Has(player))

	_ = storage.Destroy(player)
	fmt.Printf("Has position: %v\n", positions.Has(player))

	// Output:
	// Player 0 spawned at (10, 20)
	// Player moved to (15, 25)
	// Has health: false
	// Has position: false
}

// ExampleComponentStore_Remove shows that removal moves the last value into
// the freed slot, so dense order changes but every other lookup still works.
func ExampleComponentStore_Remove() {
	names := ecs.NewComponentStore[Name](8)
	_ = names.Add(0, "house")
	_ = names.Add(1, "miner")
	_ = names.Add(2, "player")

	_ = names.Remove(0)

	fmt.Println(names.Entities())
	fmt.Println(*names.Get(2))

	// Output:
	// [2 1]
	// player
}
