package ecs

import (
	"github.com/kamstrup/intmap"
	"github.com/pkg/errors"
)

// EntityId is an opaque key in [0, capacity). It carries no type; an entity is
// whatever set of component stores currently hold a value for it.
type EntityId uint32

// EntityRegistry issues entity ids for a single Storage. Ids are handed out by a
// monotonic counter, so until something is destroyed an id equals its allocation
// order. Destroyed ids go to a free list and are reused before the counter grows.
type EntityRegistry struct {
	capacity int
	next     EntityId
	free     []EntityId
	released *intmap.Map[EntityId, struct{}]
}

// NewEntityRegistry creates a registry that can hold at most capacity live entities.
func NewEntityRegistry(capacity int) *EntityRegistry {
	return &EntityRegistry{
		capacity: capacity,
		free:     make([]EntityId, 0, 64),
		released: intmap.New[EntityId, struct{}](64),
	}
}

// Create allocates a new entity id.
func (r *EntityRegistry) Create() (EntityId, error) {
	if n := len(r.free); n > 0 {
		id := r.free[n-1]
		r.free = r.free[:n-1]
		r.released.Del(id)
		return id, nil
	}

	if int(r.next) >= r.capacity {
		return 0, errors.Wrapf(ErrCapacityExceeded, "entity registry full at %d", r.capacity)
	}

	id := r.next
	r.next++
	return id, nil
}

// Destroy releases id so that a later Create can hand it out again.
func (r *EntityRegistry) Destroy(id EntityId) error {
	if err := r.Validate(id); err != nil {
		return err
	}
	r.free = append(r.free, id)
	r.released.Put(id, struct{}{})
	return nil
}

// rollback undoes the most recent Create of id.
func (r *EntityRegistry) rollback(id EntityId) {
	if id+1 == r.next {
		r.next--
		return
	}
	r.free = append(r.free, id)
	r.released.Put(id, struct{}{})
}

// Alive reports whether id has been created and not destroyed.
func (r *EntityRegistry) Alive(id EntityId) bool {
	if id >= r.next {
		return false
	}
	_, dead := r.released.Get(id)
	return !dead
}

// Validate returns ErrInvalidEntity unless id is alive.
func (r *EntityRegistry) Validate(id EntityId) error {
	if !r.Alive(id) {
		return errors.Wrapf(ErrInvalidEntity, "entity %d (count %d)", id, r.next)
	}
	return nil
}

// Count is the high-water mark of allocated ids and the upper bound every
// system iterates to.
func (r *EntityRegistry) Count() int {
	return int(r.next)
}

// Live is the number of ids currently alive.
func (r *EntityRegistry) Live() int {
	return int(r.next) - len(r.free)
}

// Available is how many more entities can be created before capacity is hit.
func (r *EntityRegistry) Available() int {
	return r.capacity - r.Live()
}

func (r *EntityRegistry) Capacity() int {
	return r.capacity
}
