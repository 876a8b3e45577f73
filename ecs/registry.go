package ecs

import (
	"reflect"

	"github.com/TheBitDrifter/mask"
	"github.com/kamstrup/intmap"
)

// MaxComponentTypes is the number of distinct component types a Registry
// supports, bounded by the width of the ownership bitmask kept per
// entity. Exceeding it is a configuration error and panics.
const MaxComponentTypes = 64

// Registry is the storage engine: it owns the identifier allocator and
// one component pool per distinct component type, and dispatches every
// per-entity operation to the pool for that type. Pools are created on
// first use of a type and live for the registry's lifetime.
//
// A Registry is not safe for concurrent mutation. Read-only queries may
// run concurrently with each other, never with a mutation.
type Registry struct {
	alloc      allocator
	pools      map[reflect.Type]iPool
	poolsByBit *intmap.Map[uint32, iPool]
	masks      []mask.Mask
	nextBit    uint32
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		pools:      make(map[reflect.Type]iPool),
		poolsByBit: intmap.New[uint32, iPool](MaxComponentTypes),
	}
}

// Create mints a new entity identifier with no components attached.
func (r *Registry) Create() Entity {
	e := r.alloc.create()
	for uint64(len(r.masks)) <= uint64(e.Index()) {
		r.masks = append(r.masks, zeroMask)
	}
	r.masks[e.Index()] = zeroMask
	return e
}

// Valid reports whether e refers to a currently live entity.
func (r *Registry) Valid(e Entity) bool {
	return r.alloc.valid(e)
}

// Alive returns the number of live entities.
func (r *Registry) Alive() int {
	return r.alloc.liveCount
}

// Destroy removes every component currently attached to e, in
// unspecified order, then recycles the identifier. Returns an
// InvalidEntityError if e is not live.
func (r *Registry) Destroy(e Entity) error {
	if !r.alloc.valid(e) {
		return InvalidEntityError{Entity: e}
	}
	r.dropAll(e)
	r.alloc.destroy(e)
	return nil
}

// RemoveAll detaches every component of every type currently attached to
// e. It never fails on an entity that owns nothing.
func (r *Registry) RemoveAll(e Entity) error {
	if !r.alloc.valid(e) {
		return InvalidEntityError{Entity: e}
	}
	r.dropAll(e)
	return nil
}

func (r *Registry) dropAll(e Entity) {
	owned := r.masks[e.Index()]
	for bit := uint32(0); bit < r.nextBit; bit++ {
		if !owned.ContainsAny(bitMask(bit)) {
			continue
		}
		if p, ok := r.poolsByBit.Get(bit); ok {
			p.removeEntity(e)
		}
	}
	r.masks[e.Index()] = zeroMask
}

// Orphan reports whether e owns zero components.
func (r *Registry) Orphan(e Entity) (bool, error) {
	if !r.alloc.valid(e) {
		return false, InvalidEntityError{Entity: e}
	}
	return r.masks[e.Index()] == zeroMask, nil
}

// Visit invokes fn once per component type currently owned by e, in
// unspecified order. Mutating the registry during visitation is
// undefined.
func (r *Registry) Visit(e Entity, fn func(reflect.Type)) error {
	if !r.alloc.valid(e) {
		return InvalidEntityError{Entity: e}
	}
	owned := r.masks[e.Index()]
	for bit := uint32(0); bit < r.nextBit; bit++ {
		if !owned.ContainsAny(bitMask(bit)) {
			continue
		}
		if p, ok := r.poolsByBit.Get(bit); ok {
			fn(p.componentType())
		}
	}
	return nil
}

// HasType reports whether e owns every one of the given component types.
// Types that have never been emplaced on any entity count as absent.
func (r *Registry) HasType(e Entity, types ...reflect.Type) bool {
	if !r.alloc.valid(e) {
		return false
	}
	var want mask.Mask
	for _, t := range types {
		p, ok := r.pools[t]
		if !ok {
			return false
		}
		want.Mark(p.bit())
	}
	return r.masks[e.Index()].ContainsAll(want)
}

// AnyType reports whether e owns at least one of the given component
// types.
func (r *Registry) AnyType(e Entity, types ...reflect.Type) bool {
	if !r.alloc.valid(e) {
		return false
	}
	var want mask.Mask
	for _, t := range types {
		if p, ok := r.pools[t]; ok {
			want.Mark(p.bit())
		}
	}
	return r.masks[e.Index()].ContainsAny(want)
}

// RemoveTypes detaches each of the given component types from e. It
// fails with a MissingComponentError if any listed type is absent; the
// check runs before anything is detached, so a failed call detaches
// nothing.
func (r *Registry) RemoveTypes(e Entity, types ...reflect.Type) error {
	if !r.alloc.valid(e) {
		return InvalidEntityError{Entity: e}
	}
	for _, t := range types {
		p, ok := r.pools[t]
		if !ok || !p.containsEntity(e) {
			return MissingComponentError{Type: t}
		}
	}
	for _, t := range types {
		p := r.pools[t]
		p.removeEntity(e)
		r.clearOwned(e, p.bit())
	}
	return nil
}

// PoolSize returns the number of entities owning the given component
// type.
func (r *Registry) PoolSize(t reflect.Type) int {
	if p, ok := r.pools[t]; ok {
		return p.size()
	}
	return 0
}

func (r *Registry) poolByType(t reflect.Type) (iPool, bool) {
	p, ok := r.pools[t]
	return p, ok
}

func (r *Registry) registerPool(p iPool) {
	r.pools[p.componentType()] = p
	r.poolsByBit.Put(p.bit(), p)
}

func (r *Registry) markOwned(e Entity, bit uint32) {
	r.masks[e.Index()].Mark(bit)
}

func (r *Registry) clearOwned(e Entity, bit uint32) {
	r.masks[e.Index()].Unmark(bit)
}

// zeroMask is the ownership mask of an entity with no components.
var zeroMask mask.Mask

func bitMask(bit uint32) mask.Mask {
	var m mask.Mask
	m.Mark(bit)
	return m
}

// poolFor resolves the pool for T, creating it on first use.
func poolFor[T any](r *Registry) *pool[T] {
	t := reflect.TypeFor[T]()
	if p, ok := r.pools[t]; ok {
		return p.(*pool[T])
	}
	if r.nextBit >= MaxComponentTypes {
		panic("ecs: component type limit exceeded")
	}
	p := newPool[T](r.nextBit)
	r.nextBit++
	r.registerPool(p)
	return p
}

// lookupPool resolves the pool for T without creating it.
func lookupPool[T any](r *Registry) (*pool[T], bool) {
	p, ok := r.pools[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	return p.(*pool[T]), true
}
