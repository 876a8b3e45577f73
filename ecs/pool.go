package ecs

import (
	"iter"
	"reflect"
)

// iPool is the type-erased face of a component pool. The Registry owns
// one pool per distinct component type and reaches it through this
// interface wherever the concrete component type is not statically known
// (destroy, visit, views, groups). Typed access goes through the generic
// package-level operations, which recover the concrete *pool[T] via a
// capability check.
type iPool interface {
	componentType() reflect.Type
	bit() uint32
	size() int
	containsEntity(Entity) bool
	positionOf(Entity) (int, bool)
	entityAt(int) Entity
	anyAt(int) any
	removeEntity(Entity)
	swapPositions(int, int)
	onEmplace(func(Entity))
	onRemove(func(Entity))
	claim() bool
	release()
}

// pool is a sparse set over one component type. The dense arrays stay
// tightly packed at all times: removal swaps the doomed slot with the
// last slot and truncates, so iteration order is the current packing
// order, not insertion order.
type pool[T any] struct {
	typ     reflect.Type
	typeBit uint32
	sparse  sparseIndex
	dense   []Entity
	items   []T
	owned   bool

	emplaceHooks []func(Entity)
	removeHooks  []func(Entity)
}

func newPool[T any](typeBit uint32) *pool[T] {
	return &pool[T]{
		typ:     reflect.TypeFor[T](),
		typeBit: typeBit,
	}
}

func (p *pool[T]) componentType() reflect.Type { return p.typ }

func (p *pool[T]) bit() uint32 { return p.typeBit }

func (p *pool[T]) size() int { return len(p.dense) }

func (p *pool[T]) containsEntity(e Entity) bool {
	pos, ok := p.sparse.get(e.Index())
	return ok && p.dense[pos] == e
}

func (p *pool[T]) positionOf(e Entity) (int, bool) {
	pos, ok := p.sparse.get(e.Index())
	if !ok || p.dense[pos] != e {
		return 0, false
	}
	return int(pos), true
}

func (p *pool[T]) entityAt(i int) Entity { return p.dense[i] }

func (p *pool[T]) anyAt(i int) any { return &p.items[i] }

// emplace appends a new dense slot for e. The caller guarantees e does
// not already own a T. The returned pointer stays valid only until the
// next structural mutation of this pool.
func (p *pool[T]) emplace(e Entity, value T) *T {
	pos := uint32(len(p.dense))
	p.dense = append(p.dense, e)
	p.items = append(p.items, value)
	p.sparse.set(e.Index(), pos)

	for _, hook := range p.emplaceHooks {
		hook(e)
	}
	return &p.items[pos]
}

func (p *pool[T]) get(e Entity) (*T, bool) {
	pos, ok := p.positionOf(e)
	if !ok {
		return nil, false
	}
	return &p.items[pos], true
}

// patch applies the mutators in sequence to the stored value in place.
// The caller guarantees e owns a T.
func (p *pool[T]) patch(e Entity, mutators ...func(*T)) *T {
	pos, _ := p.positionOf(e)
	item := &p.items[pos]
	for _, mutate := range mutators {
		mutate(item)
	}
	return item
}

// removeEntity drops e's component with a swap-and-pop. Remove hooks run
// before the structural change, while e still occupies a dense slot, so
// group maintenance can relocate it first.
func (p *pool[T]) removeEntity(e Entity) {
	for _, hook := range p.removeHooks {
		hook(e)
	}

	pos, _ := p.positionOf(e)
	last := len(p.dense) - 1
	if pos != last {
		moved := p.dense[last]
		p.dense[pos] = moved
		p.items[pos] = p.items[last]
		p.sparse.set(moved.Index(), uint32(pos))
	}
	var zero T
	p.items[last] = zero
	p.dense = p.dense[:last]
	p.items = p.items[:last]
	p.sparse.unset(e.Index())
}

// swapPositions exchanges two dense slots and patches the sparse index
// entries of both owning entities.
func (p *pool[T]) swapPositions(i, j int) {
	if i == j {
		return
	}
	p.dense[i], p.dense[j] = p.dense[j], p.dense[i]
	p.items[i], p.items[j] = p.items[j], p.items[i]
	p.sparse.set(p.dense[i].Index(), uint32(i))
	p.sparse.set(p.dense[j].Index(), uint32(j))
}

func (p *pool[T]) onEmplace(hook func(Entity)) {
	p.emplaceHooks = append(p.emplaceHooks, hook)
}

func (p *pool[T]) onRemove(hook func(Entity)) {
	p.removeHooks = append(p.removeHooks, hook)
}

// claim marks the pool as owned by a group. Only one group may own a
// given pool.
func (p *pool[T]) claim() bool {
	if p.owned {
		return false
	}
	p.owned = true
	return true
}

func (p *pool[T]) release() {
	p.owned = false
}

// each iterates the dense arrays from the most recently packed slot
// backward. Walking backward keeps the sequence well-defined when the
// current entity's component is removed mid-visit: the swap-and-pop then
// only disturbs slots that have already been yielded.
func (p *pool[T]) each() iter.Seq2[Entity, *T] {
	return func(yield func(Entity, *T) bool) {
		for i := len(p.dense) - 1; i >= 0; i-- {
			if i >= len(p.dense) {
				continue
			}
			if !yield(p.dense[i], &p.items[i]) {
				return
			}
		}
	}
}
