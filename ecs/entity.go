package ecs

// Entity encodes both the generation (upper 32 bits) and the slot index
// (lower 32 bits) of an entity identifier. The generation distinguishes
// successive reuses of the same index, so a stale identifier can be
// detected even after its index has been recycled.
type Entity uint64

// nullIndex is reserved: no live entity is ever minted at this index.
const nullIndex = ^uint32(0)

// Null is the reserved sentinel identifier. It never compares equal to
// any identifier returned by Registry.Create.
const Null = Entity(uint64(nullIndex))

// makeEntity builds an Entity from a generation and a slot index.
func makeEntity(generation, index uint32) Entity {
	return Entity(uint64(generation)<<32 | uint64(index))
}

// Index extracts the slot index from the entity identifier.
func (e Entity) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// Generation extracts the generation counter from the entity identifier.
func (e Entity) Generation() uint32 {
	return uint32(e >> 32)
}

// IsNull reports whether e carries the reserved null index, regardless of
// its generation bits.
func (e Entity) IsNull() bool {
	return e.Index() == nullIndex
}
