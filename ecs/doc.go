/*
Package ecs is a sparse-set entity/component storage engine.

It manages a population of lightweight entity identifiers and, for each
identifier, an arbitrary set of typed components, with O(1) attach,
detach, and lookup, and cache-friendly bulk iteration over entities
sharing a component type or combination of types.

Core concepts:

  - Entity: an opaque (index, generation) identifier with no data of its
    own. The generation detects stale identifiers after index reuse.
  - Component: a plain value type attached to an entity, stored in the
    pool for its type.
  - Registry: the storage engine. It owns the identifier allocator and
    one densely packed pool per component type, and dispatches every
    per-entity operation.
  - View: a transient iteration construct over the intersection of
    pools, with optional and excluded types.
  - Group: a view variant that keeps matching entities physically packed
    at the front of its pools for branch-free iteration.
  - Handle: a proxy binding one identifier to one registry.

Basic usage:

	reg := ecs.NewRegistry()

	player := reg.Create()
	ecs.Emplace(reg, player, Position{X: 10, Y: 20})
	ecs.Emplace(reg, player, Velocity{DX: 1, DY: 0})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](reg)

	for _, row := range view.Iter() {
		row.Position.X += row.Velocity.DX
		row.Position.Y += row.Velocity.DY
	}

A Registry is a single-owner, single-address-space structure: mutations
must be serialized by the caller, and pointers returned by accessors are
invalidated by the next structural mutation of the same pool.
*/
package ecs
