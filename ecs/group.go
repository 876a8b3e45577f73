package ecs

import (
	"iter"
	"reflect"
)

// Group maintains a persistently packed sub-range inside its owned
// pools: every entity owning all the grouped types (and none of the
// excluded ones) is kept contiguous at the front of each owned pool, at
// the same position in all of them. Each relevant emplace and remove
// pays an O(1) maintenance swap; iteration in exchange walks the packed
// prefix branch-free, with no membership tests.
//
// A pool may be owned by at most one group, and the packed range is only
// maintained through the registry's own operations: bypassing them
// voids the range.
type Group struct {
	reg      *Registry
	owned    []iPool
	excluded []iPool
	n        int
}

// GroupBuilder accumulates the component types a group spans before it
// is created.
type GroupBuilder struct {
	reg      *Registry
	owned    []iPool
	excluded []iPool
}

// BuildGroup starts assembling a group over the registry.
func BuildGroup(r *Registry) *GroupBuilder {
	return &GroupBuilder{reg: r}
}

// GroupOwn adds a required component type to the group under
// construction. The group claims exclusive ownership of T's pool order.
func GroupOwn[T any](b *GroupBuilder) *GroupBuilder {
	b.owned = append(b.owned, poolFor[T](b.reg))
	return b
}

// GroupExclude adds a component type the grouped entities must not own.
func GroupExclude[T any](b *GroupBuilder) *GroupBuilder {
	b.excluded = append(b.excluded, poolFor[T](b.reg))
	return b
}

// Create claims the owned pools, packs the entities that already match,
// and hooks the group's maintenance into every involved pool. It fails
// with a PoolOwnedError if any owned pool already belongs to another
// group.
func (b *GroupBuilder) Create() (*Group, error) {
	if len(b.owned) == 0 {
		panic("ecs: group needs at least one owned component type")
	}

	for i, p := range b.owned {
		if !p.claim() {
			for _, claimed := range b.owned[:i] {
				claimed.release()
			}
			return nil, PoolOwnedError{Type: p.componentType()}
		}
	}

	g := &Group{reg: b.reg, owned: b.owned, excluded: b.excluded}

	lead := g.owned[0]
	for i := 0; i < lead.size(); i++ {
		if e := lead.entityAt(i); g.matches(e) {
			g.swapIn(e)
		}
	}

	for _, p := range g.owned {
		p.onEmplace(g.tryAdd)
		p.onRemove(g.evict)
	}
	for _, x := range g.excluded {
		excludedPool := x
		x.onEmplace(g.evict)
		x.onRemove(func(e Entity) {
			g.tryAddIgnoring(e, excludedPool)
		})
	}

	return g, nil
}

// NewGroup2 creates a group over two owned component types.
func NewGroup2[A, B any](r *Registry) (*Group, error) {
	b := BuildGroup(r)
	GroupOwn[A](b)
	GroupOwn[B](b)
	return b.Create()
}

// NewGroup3 creates a group over three owned component types.
func NewGroup3[A, B, C any](r *Registry) (*Group, error) {
	b := BuildGroup(r)
	GroupOwn[A](b)
	GroupOwn[B](b)
	GroupOwn[C](b)
	return b.Create()
}

// Len returns the number of entities currently inside the packed range.
func (g *Group) Len() int {
	return g.n
}

// Contains reports whether e is currently inside the packed range.
func (g *Group) Contains(e Entity) bool {
	pos, ok := g.owned[0].positionOf(e)
	return ok && pos < g.n
}

// EntityAt returns the entity at position i of the packed range.
func (g *Group) EntityAt(i int) Entity {
	return g.owned[0].entityAt(i)
}

// Entities returns a snapshot of the packed range.
func (g *Group) Entities() []Entity {
	out := make([]Entity, g.n)
	for i := range out {
		out[i] = g.owned[0].entityAt(i)
	}
	return out
}

// Types returns the owned component types, in declaration order.
func (g *Group) Types() []reflect.Type {
	out := make([]reflect.Type, len(g.owned))
	for i, p := range g.owned {
		out[i] = p.componentType()
	}
	return out
}

// Iter yields the grouped entities, walking the packed range from its
// back forward so that removing the current entity's grouped components
// (or destroying it) mid-visit stays well-defined.
func (g *Group) Iter() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for i := g.n - 1; i >= 0; i-- {
			if i >= g.n {
				continue
			}
			if !yield(g.owned[0].entityAt(i)) {
				return
			}
		}
	}
}

// GroupColumn returns the packed component values of type T, parallel to
// the group's entity order. T must be one of the group's owned types.
// The slice aliases pool storage: it is valid until the next structural
// mutation of the pool.
func GroupColumn[T any](g *Group) []T {
	t := reflect.TypeFor[T]()
	for _, p := range g.owned {
		if p.componentType() == t {
			return p.(*pool[T]).items[:g.n]
		}
	}
	panic("ecs: component type is not owned by this group: " + t.String())
}

func (g *Group) matches(e Entity) bool {
	for _, p := range g.owned {
		if !p.containsEntity(e) {
			return false
		}
	}
	for _, x := range g.excluded {
		if x.containsEntity(e) {
			return false
		}
	}
	return true
}

func (g *Group) tryAdd(e Entity) {
	if g.Contains(e) || !g.matches(e) {
		return
	}
	g.swapIn(e)
}

// tryAddIgnoring admits e when its only disqualifier is membership in
// skip, which is in the middle of removing e.
func (g *Group) tryAddIgnoring(e Entity, skip iPool) {
	if g.Contains(e) {
		return
	}
	for _, p := range g.owned {
		if !p.containsEntity(e) {
			return
		}
	}
	for _, x := range g.excluded {
		if x != skip && x.containsEntity(e) {
			return
		}
	}
	g.swapIn(e)
}

func (g *Group) evict(e Entity) {
	pos, ok := g.owned[0].positionOf(e)
	if !ok || pos >= g.n {
		return
	}
	for _, p := range g.owned {
		p.swapPositions(pos, g.n-1)
	}
	g.n--
}

// swapIn moves e to the range boundary in every owned pool. Entities
// inside the range sit at the same position in all owned pools, so a
// single position lookup per pool suffices.
func (g *Group) swapIn(e Entity) {
	for _, p := range g.owned {
		pos, _ := p.positionOf(e)
		p.swapPositions(pos, g.n)
	}
	g.n++
}
