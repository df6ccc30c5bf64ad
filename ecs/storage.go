package ecs

import (
	"reflect"

	"github.com/pkg/errors"
)

// Storage is the main ECS container. It owns the entity registry, one
// ComponentStore per registered component type, and typed singletons.
// All stores share the registry's capacity.
type Storage struct {
	entities   *EntityRegistry
	stores     []iComponentStorage
	byType     map[reflect.Type]iComponentStorage
	singletons map[reflect.Type]any
}

// NewStorage creates a storage that can hold capacity entities.
func NewStorage(capacity int) *Storage {
	return &Storage{
		entities:   NewEntityRegistry(capacity),
		stores:     make([]iComponentStorage, 0, 8),
		byType:     make(map[reflect.Type]iComponentStorage),
		singletons: make(map[reflect.Type]any),
	}
}

// RegisterComponent creates the store for T, or returns it if T is already registered.
func RegisterComponent[T any](s *Storage) *ComponentStore[T] {
	t := reflect.TypeFor[T]()
	if existing, ok := s.byType[t]; ok {
		return existing.(*ComponentStore[T])
	}
	store := NewComponentStore[T](s.entities.Capacity())
	store.alive = s.entities.Alive
	s.byType[t] = store
	s.stores = append(s.stores, store)
	return store
}

// GetStore returns the store for T, or nil if T was never registered.
func GetStore[T any](s *Storage) *ComponentStore[T] {
	store, ok := s.byType[reflect.TypeFor[T]()]
	if !ok {
		return nil
	}
	return store.(*ComponentStore[T])
}

// Entities returns the storage's registry.
func (s *Storage) Entities() *EntityRegistry {
	return s.entities
}

// Spawn creates an entity and lets build attach its components. If build fails
// the entity is removed from every store it reached and its id is given back,
// so a failed spawn leaves no trace.
func (s *Storage) Spawn(build func(id EntityId) error) (EntityId, error) {
	id, err := s.entities.Create()
	if err != nil {
		return 0, err
	}

	if err := build(id); err != nil {
		s.undoSpawn(id)
		return 0, errors.Wrapf(err, "spawn entity %d", id)
	}
	return id, nil
}

// SpawnBatch spawns n entities, calling build with each one's position in the
// batch. If any build fails, every entity of the batch is undone in reverse
// order, which leaves the registry exactly as it was before the call.
func (s *Storage) SpawnBatch(n int, build func(i int, id EntityId) error) ([]EntityId, error) {
	if n <= 0 {
		return nil, nil
	}
	ids := make([]EntityId, 0, n)
	for i := 0; i < n; i++ {
		id, err := s.Spawn(func(id EntityId) error { return build(i, id) })
		if err != nil {
			for j := len(ids) - 1; j >= 0; j-- {
				s.undoSpawn(ids[j])
			}
			return nil, errors.Wrapf(err, "batch of %d", n)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// undoSpawn reverses the most recent Spawn of id.
func (s *Storage) undoSpawn(id EntityId) {
	s.detach(id)
	s.entities.rollback(id)
}

// Destroy removes id from every store and releases the id for reuse.
func (s *Storage) Destroy(id EntityId) error {
	if err := s.entities.Validate(id); err != nil {
		return err
	}
	s.detach(id)
	return s.entities.Destroy(id)
}

func (s *Storage) detach(id EntityId) {
	for _, store := range s.stores {
		if store.Has(id) {
			// Has was checked, Remove cannot fail.
			_ = store.Remove(id)
		}
	}
}

// Components returns the names of the stores holding a value for id.
func (s *Storage) Components(id EntityId) []string {
	var names []string
	for _, store := range s.stores {
		if store.Has(id) {
			names = append(names, store.Name())
		}
	}
	return names
}

// ComponentValue is one component of an entity. Value is a pointer into the
// owning store and is valid until the next structural change to that store.
type ComponentValue struct {
	Name  string
	Value any
}

// Inspect returns every component id holds, in store registration order.
func (s *Storage) Inspect(id EntityId) []ComponentValue {
	var values []ComponentValue
	for _, store := range s.stores {
		if p := store.pointer(id); p != nil {
			values = append(values, ComponentValue{Name: store.Name(), Value: p})
		}
	}
	return values
}

// StorageStats is a point-in-time summary of a Storage.
type StorageStats struct {
	EntityCount    int
	LiveEntities   int
	Capacity       int
	SingletonCount int
	Stores         []StoreStats
}

// StoreStats describes one component store.
type StoreStats struct {
	Name  string
	Count int
}

// CollectStats gathers entity and per-store counts.
func (s *Storage) CollectStats() StorageStats {
	stats := StorageStats{
		EntityCount:    s.entities.Count(),
		LiveEntities:   s.entities.Live(),
		Capacity:       s.entities.Capacity(),
		SingletonCount: len(s.singletons),
		Stores:         make([]StoreStats, 0, len(s.stores)),
	}
	for _, store := range s.stores {
		stats.Stores = append(stats.Stores, StoreStats{
			Name:  store.Name(),
			Count: store.Len(),
		})
	}
	return stats
}
