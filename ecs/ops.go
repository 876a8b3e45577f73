package ecs

import (
	"iter"
	"reflect"
)

// Emplace attaches a new component of type T to e. It fails with a
// DuplicateComponentError if e already owns a T. The returned pointer is
// valid until the next structural mutation of T's pool.
func Emplace[T any](r *Registry, e Entity, value T) (*T, error) {
	if !r.alloc.valid(e) {
		return nil, InvalidEntityError{Entity: e}
	}
	p := poolFor[T](r)
	if p.containsEntity(e) {
		return nil, DuplicateComponentError{Type: p.typ}
	}
	item := p.emplace(e, value)
	r.markOwned(e, p.typeBit)
	return item, nil
}

// EmplaceOrReplace attaches a T to e, or overwrites the existing one in
// place. It never fails on an already-present component.
func EmplaceOrReplace[T any](r *Registry, e Entity, value T) (*T, error) {
	if !r.alloc.valid(e) {
		return nil, InvalidEntityError{Entity: e}
	}
	p := poolFor[T](r)
	if pos, ok := p.positionOf(e); ok {
		p.items[pos] = value
		return &p.items[pos], nil
	}
	item := p.emplace(e, value)
	r.markOwned(e, p.typeBit)
	return item, nil
}

// Replace overwrites e's existing T in place. It fails with a
// MissingComponentError if e does not own a T.
func Replace[T any](r *Registry, e Entity, value T) (*T, error) {
	if !r.alloc.valid(e) {
		return nil, InvalidEntityError{Entity: e}
	}
	p, ok := lookupPool[T](r)
	if !ok {
		return nil, MissingComponentError{Type: reflect.TypeFor[T]()}
	}
	pos, ok := p.positionOf(e)
	if !ok {
		return nil, MissingComponentError{Type: p.typ}
	}
	p.items[pos] = value
	return &p.items[pos], nil
}

// Patch applies the mutators in sequence to e's stored T in place and
// returns the mutated value. It fails with a MissingComponentError if e
// does not own a T.
func Patch[T any](r *Registry, e Entity, mutators ...func(*T)) (*T, error) {
	if !r.alloc.valid(e) {
		return nil, InvalidEntityError{Entity: e}
	}
	p, ok := lookupPool[T](r)
	if !ok || !p.containsEntity(e) {
		return nil, MissingComponentError{Type: reflect.TypeFor[T]()}
	}
	return p.patch(e, mutators...), nil
}

// Remove detaches e's T. It fails with a MissingComponentError if e does
// not own one.
func Remove[T any](r *Registry, e Entity) error {
	return r.RemoveTypes(e, reflect.TypeFor[T]())
}

// Remove2 detaches two component types from e. If any listed type is
// absent the call fails and detaches nothing.
func Remove2[A, B any](r *Registry, e Entity) error {
	return r.RemoveTypes(e, reflect.TypeFor[A](), reflect.TypeFor[B]())
}

// Remove3 detaches three component types from e. If any listed type is
// absent the call fails and detaches nothing.
func Remove3[A, B, C any](r *Registry, e Entity) error {
	return r.RemoveTypes(e, reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C]())
}

// RemoveIfPresent detaches e's T if it owns one, returning the number of
// components removed (0 or 1). It only fails on an invalid identifier.
func RemoveIfPresent[T any](r *Registry, e Entity) (int, error) {
	if !r.alloc.valid(e) {
		return 0, InvalidEntityError{Entity: e}
	}
	p, ok := lookupPool[T](r)
	if !ok || !p.containsEntity(e) {
		return 0, nil
	}
	p.removeEntity(e)
	r.clearOwned(e, p.typeBit)
	return 1, nil
}

// Get returns e's T. It fails with a MissingComponentError if e does not
// own one. The returned pointer is valid until the next structural
// mutation of T's pool.
func Get[T any](r *Registry, e Entity) (*T, error) {
	if !r.alloc.valid(e) {
		return nil, InvalidEntityError{Entity: e}
	}
	p, ok := lookupPool[T](r)
	if !ok {
		return nil, MissingComponentError{Type: reflect.TypeFor[T]()}
	}
	item, ok := p.get(e)
	if !ok {
		return nil, MissingComponentError{Type: p.typ}
	}
	return item, nil
}

// Get2 returns two of e's components, failing if either is absent.
func Get2[A, B any](r *Registry, e Entity) (*A, *B, error) {
	a, err := Get[A](r, e)
	if err != nil {
		return nil, nil, err
	}
	b, err := Get[B](r, e)
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

// Get3 returns three of e's components, failing if any is absent.
func Get3[A, B, C any](r *Registry, e Entity) (*A, *B, *C, error) {
	a, b, err := Get2[A, B](r, e)
	if err != nil {
		return nil, nil, nil, err
	}
	c, err := Get[C](r, e)
	if err != nil {
		return nil, nil, nil, err
	}
	return a, b, c, nil
}

// GetOrEmplace returns e's existing T, or attaches value and returns it
// if e owns none.
func GetOrEmplace[T any](r *Registry, e Entity, value T) (*T, error) {
	if !r.alloc.valid(e) {
		return nil, InvalidEntityError{Entity: e}
	}
	p := poolFor[T](r)
	if item, ok := p.get(e); ok {
		return item, nil
	}
	item := p.emplace(e, value)
	r.markOwned(e, p.typeBit)
	return item, nil
}

// TryGet returns e's T, or nil if e is invalid or owns none. It never
// fails.
func TryGet[T any](r *Registry, e Entity) *T {
	if !r.alloc.valid(e) {
		return nil
	}
	p, ok := lookupPool[T](r)
	if !ok {
		return nil
	}
	item, _ := p.get(e)
	return item
}

// TryGet2 returns two of e's components, with nil standing in for any
// absent one.
func TryGet2[A, B any](r *Registry, e Entity) (*A, *B) {
	return TryGet[A](r, e), TryGet[B](r, e)
}

// TryGet3 returns three of e's components, with nil standing in for any
// absent one.
func TryGet3[A, B, C any](r *Registry, e Entity) (*A, *B, *C) {
	return TryGet[A](r, e), TryGet[B](r, e), TryGet[C](r, e)
}

// Has reports whether e owns a T.
func Has[T any](r *Registry, e Entity) bool {
	if !r.alloc.valid(e) {
		return false
	}
	p, ok := lookupPool[T](r)
	return ok && p.containsEntity(e)
}

// Has2 reports whether e owns both listed component types.
func Has2[A, B any](r *Registry, e Entity) bool {
	return r.HasType(e, reflect.TypeFor[A](), reflect.TypeFor[B]())
}

// Has3 reports whether e owns all three listed component types.
func Has3[A, B, C any](r *Registry, e Entity) bool {
	return r.HasType(e, reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C]())
}

// Any2 reports whether e owns at least one of the listed component
// types.
func Any2[A, B any](r *Registry, e Entity) bool {
	return r.AnyType(e, reflect.TypeFor[A](), reflect.TypeFor[B]())
}

// Any3 reports whether e owns at least one of the three listed component
// types.
func Any3[A, B, C any](r *Registry, e Entity) bool {
	return r.AnyType(e, reflect.TypeFor[A](), reflect.TypeFor[B](), reflect.TypeFor[C]())
}

// Each iterates every entity owning a T, in the pool's current packing
// order, yielding the entity and a pointer to its component. Removing
// the current entity's T (or destroying the current entity) during its
// own visit is well-defined; any other structural mutation of the pool
// mid-iteration is not.
func Each[T any](r *Registry) iter.Seq2[Entity, *T] {
	p, ok := lookupPool[T](r)
	if !ok {
		return func(func(Entity, *T) bool) {}
	}
	return p.each()
}
