package ecs

import "github.com/pkg/errors"

var (
	// ErrInvalidEntity is returned for ids outside the registry's live range or a
	// store's capacity.
	ErrInvalidEntity = errors.New("invalid entity")
	// ErrCapacityExceeded is returned when a registry or store is full.
	ErrCapacityExceeded = errors.New("capacity exceeded")
	// ErrDuplicateComponent is returned when adding a component an entity already has.
	ErrDuplicateComponent = errors.New("duplicate component")
	// ErrMissingComponent is returned when removing or requiring a component that
	// the entity does not have.
	ErrMissingComponent = errors.New("missing component")
)
