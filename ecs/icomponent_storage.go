package ecs

// iComponentStorage is the type-erased view of a ComponentStore that Storage
// uses for bulk operations across every registered store.
type iComponentStorage interface {
	Name() string
	Has(id EntityId) bool
	Remove(id EntityId) error
	Len() int
	Capacity() int
	pointer(id EntityId) any
}
