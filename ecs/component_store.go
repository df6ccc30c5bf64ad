package ecs

import (
	"iter"
	"reflect"

	"github.com/pkg/errors"
)

const invalidSlot int32 = -1

// ComponentStore holds one component type for up to capacity entities.
//
// Values live in a dense array in attachment order, with a parallel dense array
// of owning entities. A sparse table indexed by entity gives the dense slot. The
// sparse table is never cleared on removal, so a slot read from it is only
// trusted when the dense entity array points back at the same entity.
//
// Remove swaps the last dense slot into the hole, so dense order is not stable
// across removals. Do not Add or Remove while iterating the same store.
//
// A store created by RegisterComponent only accepts ids that are alive in its
// Storage's registry. A standalone store accepts any id below capacity.
type ComponentStore[T any] struct {
	name     string
	data     []T
	entities []EntityId
	index    []int32
	count    int
	alive    func(EntityId) bool
}

// NewComponentStore allocates a store sized for capacity entities.
func NewComponentStore[T any](capacity int) *ComponentStore[T] {
	index := make([]int32, capacity)
	for i := range index {
		index[i] = invalidSlot
	}
	return &ComponentStore[T]{
		name:     reflect.TypeFor[T]().String(),
		data:     make([]T, capacity),
		entities: make([]EntityId, capacity),
		index:    index,
	}
}

// Add attaches value to id. The store is left untouched on error.
func (cs *ComponentStore[T]) Add(id EntityId, value T) error {
	if int(id) >= len(cs.index) {
		return errors.Wrapf(ErrInvalidEntity, "%s: entity %d outside capacity %d", cs.name, id, len(cs.index))
	}
	if cs.alive != nil && !cs.alive(id) {
		return errors.Wrapf(ErrInvalidEntity, "%s: entity %d is not alive", cs.name, id)
	}
	if cs.count >= len(cs.data) {
		return errors.Wrapf(ErrCapacityExceeded, "%s: %d components", cs.name, cs.count)
	}
	if cs.Has(id) {
		return errors.Wrapf(ErrDuplicateComponent, "%s: entity %d", cs.name, id)
	}

	cs.data[cs.count] = value
	cs.entities[cs.count] = id
	cs.index[id] = int32(cs.count)
	cs.count++
	return nil
}

// Get returns a pointer to id's value, or nil if id has no value here. The
// pointer is invalidated by the next Remove on this store.
func (cs *ComponentStore[T]) Get(id EntityId) *T {
	idx, ok := cs.slot(id)
	if !ok {
		return nil
	}
	return &cs.data[idx]
}

// MustGet is Get for callers that expect the component to be present.
func (cs *ComponentStore[T]) MustGet(id EntityId) (*T, error) {
	v := cs.Get(id)
	if v == nil {
		return nil, errors.Wrapf(ErrMissingComponent, "%s: entity %d", cs.name, id)
	}
	return v, nil
}

func (cs *ComponentStore[T]) pointer(id EntityId) any {
	if v := cs.Get(id); v != nil {
		return v
	}
	return nil
}

// Has reports whether id has a value in this store.
func (cs *ComponentStore[T]) Has(id EntityId) bool {
	_, ok := cs.slot(id)
	return ok
}

func (cs *ComponentStore[T]) slot(id EntityId) (int, bool) {
	if int(id) >= len(cs.index) {
		return 0, false
	}
	idx := int(cs.index[id])
	if idx < 0 || idx >= cs.count || cs.entities[idx] != id {
		return 0, false
	}
	return idx, true
}

// Remove detaches id's value by moving the last dense slot into its place.
func (cs *ComponentStore[T]) Remove(id EntityId) error {
	idx, ok := cs.slot(id)
	if !ok {
		return errors.Wrapf(ErrMissingComponent, "%s: entity %d", cs.name, id)
	}

	last := cs.count - 1
	moved := cs.entities[last]
	cs.data[idx] = cs.data[last]
	cs.entities[idx] = moved
	cs.index[moved] = int32(idx)

	var zero T
	cs.data[last] = zero
	cs.count--
	return nil
}

// Clear drops every value. Capacity is kept.
func (cs *ComponentStore[T]) Clear() {
	var zero T
	for i := 0; i < cs.count; i++ {
		cs.data[i] = zero
	}
	cs.count = 0
}

// Len is the number of entities with a value in this store.
func (cs *ComponentStore[T]) Len() int {
	return cs.count
}

func (cs *ComponentStore[T]) Capacity() int {
	return len(cs.index)
}

// Name is the component type name, used in errors and debug output.
func (cs *ComponentStore[T]) Name() string {
	return cs.name
}

// Entities returns the dense entity array. The slice aliases the store.
func (cs *ComponentStore[T]) Entities() []EntityId {
	return cs.entities[:cs.count]
}

// Values returns the dense value array, parallel to Entities. The slice aliases
// the store.
func (cs *ComponentStore[T]) Values() []T {
	return cs.data[:cs.count]
}

// All iterates every (entity, value) pair in dense order.
func (cs *ComponentStore[T]) All() iter.Seq2[EntityId, *T] {
	return func(yield func(EntityId, *T) bool) {
		for i := 0; i < cs.count; i++ {
			if !yield(cs.entities[i], &cs.data[i]) {
				return
			}
		}
	}
}
