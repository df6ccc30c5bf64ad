package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/worldsbelow/ecs"
)

type MovementSystem struct {
	Positions    *ecs.ComponentStore[Position]
	Velocities   *ecs.ComponentStore[Velocity]
	ExecuteCount int
	order        *[]string
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	if s.order != nil {
		*s.order = append(*s.order, "movement")
	}
	ecs.Each2(s.Positions, s.Velocities, func(_ ecs.EntityId, pos *Position, vel *Velocity) {
		pos.X += vel.DX * float32(frame.DeltaTime)
		pos.Y += vel.DY * float32(frame.DeltaTime)
	})
}

type HealthSystem struct {
	Healths      *ecs.ComponentStore[Health]
	ExecuteCount int
	TotalHealth  int
	order        *[]string
}

func (s *HealthSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	if s.order != nil {
		*s.order = append(*s.order, "health")
	}
	s.TotalHealth = 0
	for _, h := range s.Healths.All() {
		s.TotalHealth += h.Current
	}
}

func TestScheduler(t *testing.T) {
	t.Run("system execution order", func(t *testing.T) {
		storage, positions, velocities, healths := newTestStorage()
		scheduler := ecs.NewScheduler(storage)

		var order []string
		movement := &MovementSystem{Positions: positions, Velocities: velocities, order: &order}
		health := &HealthSystem{Healths: healths, order: &order}
		scheduler.Register(movement)
		scheduler.Register(health)

		_, err := storage.Spawn(func(id ecs.EntityId) error {
			if err := positions.Add(id, Position{}); err != nil {
				return err
			}
			return velocities.Add(id, Velocity{DX: 1, DY: 2})
		})
		require.NoError(t, err)
		_, err = storage.Spawn(func(id ecs.EntityId) error {
			return healths.Add(id, Health{Current: 100, Max: 100})
		})
		require.NoError(t, err)

		require.NoError(t, scheduler.Once(time.Second))
		require.NoError(t, scheduler.Once(time.Second))

		assert.Equal(t, []string{"movement", "health", "movement", "health"}, order)
		assert.Equal(t, Position{X: 2, Y: 4}, *positions.Get(0))
		assert.Equal(t, 100, health.TotalHealth)
	})

	t.Run("negative elapsed is clamped", func(t *testing.T) {
		storage, positions, velocities, _ := newTestStorage()
		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(&MovementSystem{Positions: positions, Velocities: velocities})

		_, err := storage.Spawn(func(id ecs.EntityId) error {
			if err := positions.Add(id, Position{}); err != nil {
				return err
			}
			return velocities.Add(id, Velocity{DX: 1})
		})
		require.NoError(t, err)

		require.NoError(t, scheduler.Once(-time.Second))
		assert.Equal(t, float32(0), positions.Get(0).X)
	})

	t.Run("nil system panics", func(t *testing.T) {
		scheduler := ecs.NewScheduler(ecs.NewStorage(1))
		assert.Panics(t, func() { scheduler.Register(nil) })
	})
}

func TestSchedulerStats(t *testing.T) {
	storage, positions, velocities, healths := newTestStorage()
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&MovementSystem{Positions: positions, Velocities: velocities})
	scheduler.Register(&HealthSystem{Healths: healths})

	stats := scheduler.GetStats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, int64(0), stats.TotalExecutions)
	assert.Equal(t, time.Duration(0), stats.Systems[0].MinDuration)

	for i := 0; i < 3; i++ {
		require.NoError(t, scheduler.Once(time.Millisecond))
	}

	stats = scheduler.GetStats()
	assert.Equal(t, int64(6), stats.TotalExecutions)
	assert.Equal(t, "MovementSystem", stats.Systems[0].Name)
	assert.Equal(t, "HealthSystem", stats.Systems[1].Name)
	for _, s := range stats.Systems {
		assert.Equal(t, int64(3), s.ExecutionCount)
		assert.LessOrEqual(t, s.MinDuration, s.AvgDuration)
		assert.LessOrEqual(t, s.AvgDuration, s.MaxDuration)
	}
}

func TestSchedulerRun(t *testing.T) {
	storage, _, _, healths := newTestStorage()
	scheduler := ecs.NewScheduler(storage)
	health := &HealthSystem{Healths: healths}
	scheduler.Register(health)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	scheduler.Run(ctx, 5*time.Millisecond, func(err error) { t.Errorf("unexpected error: %v", err) })

	assert.Greater(t, health.ExecuteCount, 0)
}
