package sim

import (
	"time"

	"github.com/pkg/errors"
)

// Summary is a snapshot of the world for reports and logs.
type Summary struct {
	Entities   int
	Live       int
	Capacity   int
	HasPlayer  bool
	Player     Rect
	WithHealth int
	Breathing  int
	MinHealth  Health
	MaxHealth  Health
	AvgHealth  Health
}

// Summarize walks the stores once and collects a Summary.
func (w *World) Summarize() Summary {
	registry := w.Storage.Entities()
	s := Summary{
		Entities: registry.Count(),
		Live:     registry.Live(),
		Capacity: registry.Capacity(),
	}

	if id, ok := w.Player(); ok {
		if box := w.Boxes.Get(id); box != nil {
			s.HasPlayer = true
			s.Player = box.Rect
		}
	}

	var total float64
	for id, health := range w.Healths.All() {
		if s.WithHealth == 0 || *health < s.MinHealth {
			s.MinHealth = *health
		}
		if s.WithHealth == 0 || *health > s.MaxHealth {
			s.MaxHealth = *health
		}
		s.WithHealth++
		total += float64(*health)

		if box := w.Boxes.Get(id); box != nil && breathing(id, box.Rect, w.Oxygenators, w.Boxes) {
			s.Breathing++
		}
	}
	if s.WithHealth > 0 {
		s.AvgHealth = Health(total / float64(s.WithHealth))
	}
	return s
}

// RunFixed advances the world ticks times by dt with the same intents, without
// a window or a wall clock. sample, if non-nil, receives how long each tick took.
func (w *World) RunFixed(ticks int, dt time.Duration, in Intents, sample func(time.Duration)) error {
	for i := 0; i < ticks; i++ {
		start := time.Now()
		if err := w.Tick(dt, in); err != nil {
			return errors.Wrapf(err, "tick %d", i)
		}
		if sample != nil {
			sample(time.Since(start))
		}
	}
	return nil
}
