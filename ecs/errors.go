package ecs

import (
	"fmt"
	"reflect"
)

// InvalidEntityError reports an operation given a dead, never-created, or
// null identifier.
type InvalidEntityError struct {
	Entity Entity
}

func (e InvalidEntityError) Error() string {
	if e.Entity.IsNull() {
		return "entity identifier is null"
	}
	return fmt.Sprintf("entity identifier is not live: index=%d generation=%d", e.Entity.Index(), e.Entity.Generation())
}

// DuplicateComponentError reports an emplace for a component type the
// entity already owns.
type DuplicateComponentError struct {
	Type reflect.Type
}

func (e DuplicateComponentError) Error() string {
	return fmt.Sprintf("component already exists on entity: %v", e.Type)
}

// MissingComponentError reports an operation that contractually demands a
// component the entity does not own.
type MissingComponentError struct {
	Type reflect.Type
}

func (e MissingComponentError) Error() string {
	return fmt.Sprintf("component does not exist on entity: %v", e.Type)
}

// PoolOwnedError reports an attempt to build a group over a pool that is
// already owned by another group.
type PoolOwnedError struct {
	Type reflect.Type
}

func (e PoolOwnedError) Error() string {
	return fmt.Sprintf("component pool is already owned by a group: %v", e.Type)
}
