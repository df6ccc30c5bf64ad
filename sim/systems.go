package sim

import (
	"time"

	"github.com/plus3/worldsbelow/ecs"
)

// UpdatePlayer moves every player-controlled bounding box by
// speed * elapsed along each active intent. Intents add up, so diagonal
// movement is faster than movement along one axis.
func UpdatePlayer(
	elapsed time.Duration,
	in Intents,
	pixelsPerSecond float64,
	players *ecs.ComponentStore[PlayerControlled],
	boxes *ecs.ComponentStore[BoundingBox],
) {
	delta := float32(elapsed.Seconds() * pixelsPerSecond)

	ecs.Each2(players, boxes, func(_ ecs.EntityId, controlled *PlayerControlled, box *BoundingBox) {
		if !*controlled {
			return
		}
		if in.Left {
			box.X -= delta
		}
		if in.Right {
			box.X += delta
		}
		if in.Up {
			box.Y -= delta
		}
		if in.Down {
			box.Y += delta
		}
	})
}

// HealthOxygenator raises the health of every entity whose bounding box
// overlaps an oxygenator's and lowers it for everyone else, at
// recoveryRate per second, clamped to [0, maxHealth].
//
// Each health-bearing entity is tested against every oxygenator, so a tick
// costs O(n·m) for n entities with health and m oxygenators. That is fine at
// the configured capacities; a spatial index is the fix if m grows.
//
// There is no hysteresis: an entity on an oxygenator's edge may switch
// between recovering and decaying from one tick to the next.
func HealthOxygenator(
	elapsed time.Duration,
	recoveryRate float64,
	maxHealth Health,
	healths *ecs.ComponentStore[Health],
	oxygenators *ecs.ComponentStore[Oxygenator],
	boxes *ecs.ComponentStore[BoundingBox],
) {
	delta := Health(elapsed.Seconds() * recoveryRate)

	ecs.Each2(healths, boxes, func(id ecs.EntityId, health *Health, box *BoundingBox) {
		if breathing(id, box.Rect, oxygenators, boxes) {
			*health = min(maxHealth, *health+delta)
		} else {
			*health = max(0, *health-delta)
		}
	})
}

// breathing reports whether r overlaps any oxygenator other than id itself.
func breathing(id ecs.EntityId, r Rect, oxygenators *ecs.ComponentStore[Oxygenator], boxes *ecs.ComponentStore[BoundingBox]) bool {
	for source, on := range oxygenators.All() {
		if source == id || !*on {
			continue
		}
		sourceBox := boxes.Get(source)
		if sourceBox == nil {
			continue
		}
		if Overlaps(r, sourceBox.Rect) {
			return true
		}
	}
	return false
}

// MovementSystem applies the current input intents to the player.
type MovementSystem struct {
	Players         *ecs.ComponentStore[PlayerControlled]
	Boxes           *ecs.ComponentStore[BoundingBox]
	Intents         *ecs.Singleton[Intents]
	PixelsPerSecond float64
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	UpdatePlayer(frame.Elapsed, *s.Intents.Get(), s.PixelsPerSecond, s.Players, s.Boxes)
}

// OxygenSystem drifts health toward max near oxygenators and toward zero elsewhere.
type OxygenSystem struct {
	Healths      *ecs.ComponentStore[Health]
	Oxygenators  *ecs.ComponentStore[Oxygenator]
	Boxes        *ecs.ComponentStore[BoundingBox]
	RecoveryRate float64
	MaxHealth    Health
}

func (s *OxygenSystem) Execute(frame *ecs.UpdateFrame) {
	HealthOxygenator(frame.Elapsed, s.RecoveryRate, s.MaxHealth, s.Healths, s.Oxygenators, s.Boxes)
}
