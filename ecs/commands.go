package ecs

import "go.uber.org/multierr"

// Commands provides a buffer for deferred ECS operations that are executed at the end of a frame.
// This prevents structural changes to component stores while systems iterate them.
type Commands struct {
	spawns   []spawnCommand
	destroys []EntityId
	defers   []deferCommand
}

func newCommands() *Commands {
	return &Commands{}
}

type deferCommand struct {
	fn func()
}

type spawnCommand struct {
	build func(id EntityId) error
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Spawn queues an entity spawn; build attaches the components as in Storage.Spawn.
func (c *Commands) Spawn(build func(id EntityId) error) {
	c.spawns = append(c.spawns, spawnCommand{build: build})
}

// Destroy queues an entity destruction.
func (c *Commands) Destroy(entity EntityId) {
	c.destroys = append(c.destroys, entity)
}

// Len is the number of queued operations.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.destroys) + len(c.defers)
}

// Flush applies destroys, then spawns, then deferred functions, and resets the
// buffer. Every command runs even if an earlier one fails; the failures are
// returned together.
func (c *Commands) Flush(storage *Storage) error {
	var err error
	destroyed := make(map[EntityId]bool, len(c.destroys))

	for _, id := range c.destroys {
		if destroyed[id] {
			continue
		}
		destroyed[id] = true
		err = multierr.Append(err, storage.Destroy(id))
	}

	for _, cmd := range c.spawns {
		_, spawnErr := storage.Spawn(cmd.build)
		err = multierr.Append(err, spawnErr)
	}

	for _, df := range c.defers {
		df.fn()
	}

	c.spawns = c.spawns[:0]
	c.destroys = c.destroys[:0]
	c.defers = c.defers[:0]
	return err
}
