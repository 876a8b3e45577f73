package ecs

// allocator mints and recycles entity identifiers. Destroyed indices are
// parked on a free list with their generation already advanced, so the
// next create at that index hands out an identifier that can never be
// confused with the one that was destroyed.
type allocator struct {
	generations []uint32
	alive       []bool
	free        []uint32
	liveCount   int
}

// create returns a fresh identifier. It recycles the most recently freed
// index when one is available and mints a new index otherwise. Exhausting
// the 32-bit index space is a programming error, not a recoverable
// condition, and panics.
func (a *allocator) create() Entity {
	if n := len(a.free); n > 0 {
		index := a.free[n-1]
		a.free = a.free[:n-1]
		a.alive[index] = true
		a.liveCount++
		return makeEntity(a.generations[index], index)
	}

	index := uint32(len(a.generations))
	if index == nullIndex {
		panic("ecs: entity index space exhausted")
	}
	a.generations = append(a.generations, 0)
	a.alive = append(a.alive, true)
	a.liveCount++
	return makeEntity(0, index)
}

// destroy recycles a live identifier. The stored generation is bumped
// immediately (wrapping on overflow), which both invalidates e and
// pre-computes the generation for the index's next reuse. The caller
// must have validated e.
func (a *allocator) destroy(e Entity) {
	index := e.Index()
	a.alive[index] = false
	a.generations[index]++
	a.free = append(a.free, index)
	a.liveCount--
}

// valid reports whether e currently refers to a live entity: the index is
// in range, not sitting on the free list, and the stored generation
// matches e's generation.
func (a *allocator) valid(e Entity) bool {
	index := e.Index()
	if uint64(index) >= uint64(len(a.generations)) {
		return false
	}
	return a.alive[index] && a.generations[index] == e.Generation()
}
