package ecs

import "time"

// UpdateFrame is what every System sees for one tick.
type UpdateFrame struct {
	// Elapsed is the wall-clock time since the previous tick. Never negative.
	Elapsed time.Duration
	// DeltaTime is Elapsed in seconds.
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(elapsed time.Duration, storage *Storage) *UpdateFrame {
	if elapsed < 0 {
		elapsed = 0
	}
	return &UpdateFrame{
		Elapsed:   elapsed,
		DeltaTime: elapsed.Seconds(),
		Commands:  newCommands(),
		Storage:   storage,
	}
}
