package ecs

import "reflect"

// Singleton provides access to a single value of T that is not associated with
// any entity. Use this for per-frame input, tuning, or other global state.
type Singleton[T any] struct {
	storage *Storage
	value   *T
}

// NewSingleton returns the accessor for T in storage. If no T exists yet it is
// created from initializer, or the zero value when none is given. This
// guarantees the singleton exists in storage after the call.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	t := reflect.TypeFor[T]()

	if existing, ok := storage.singletons[t]; ok {
		return &Singleton[T]{storage: storage, value: existing.(*T)}
	}

	value := new(T)
	if len(initializer) > 0 {
		*value = initializer[0]
	}
	storage.singletons[t] = value

	return &Singleton[T]{storage: storage, value: value}
}

// Get returns a pointer to the singleton value.
func (s *Singleton[T]) Get() *T {
	return s.value
}

// Set replaces the singleton value.
func (s *Singleton[T]) Set(v T) {
	*s.value = v
}

// Exists reports whether storage holds a T.
func Exists[T any](storage *Storage) bool {
	_, ok := storage.singletons[reflect.TypeFor[T]()]
	return ok
}
