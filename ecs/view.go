package ecs

import (
	"iter"
	"reflect"
	"unsafe"

	"github.com/TheBitDrifter/mask"
)

type viewFieldKind uint8

const (
	fieldRequired viewFieldKind = iota
	fieldOptional
	fieldExcluded
)

type viewField struct {
	typ    reflect.Type
	offset uintptr
	kind   viewFieldKind
}

// View is a transient iteration construct over the intersection of one
// or more component pools, optionally excluding others. The type T must
// be a struct with pointer fields, one per component type:
//
//   - embedded fields and untagged named fields are required
//   - fields tagged `ecs:"optional"` are populated when present, nil otherwise
//   - fields tagged `ecs:"exclude"` name types the entity must NOT own;
//     they are always nil in results
//
// A view owns no storage and holds no snapshot: it resolves pool sizes
// lazily at iteration time, so reconstructing one is cheap and a fresh
// view always observes the current population.
type View[T any] struct {
	reg    *Registry
	fields []viewField
}

// NewView creates a view over the registry for the struct type T. It
// panics if T is not a struct of pointer fields, or carries an unknown
// tag value; these are programming errors, not runtime conditions.
func NewView[T any](reg *Registry) *View[T] {
	var zero T
	structType := reflect.TypeOf(zero)
	if structType.Kind() != reflect.Struct {
		panic("ecs: View type parameter must be a struct")
	}

	fields := make([]viewField, 0, structType.NumField())
	required := 0
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.Type.Kind() != reflect.Ptr {
			panic("ecs: View struct fields must be pointer types")
		}

		kind := fieldRequired
		if !field.Anonymous {
			switch tag := field.Tag.Get("ecs"); tag {
			case "":
			case "optional":
				kind = fieldOptional
			case "exclude":
				kind = fieldExcluded
			default:
				panic("ecs: invalid ecs tag value: \"" + tag + "\" (must be \"optional\" or \"exclude\")")
			}
		}
		if kind == fieldRequired {
			required++
		}

		fields = append(fields, viewField{
			typ:    field.Type.Elem(),
			offset: field.Offset,
			kind:   kind,
		})
	}

	if required == 0 {
		panic("ecs: View needs at least one required component field")
	}

	return &View[T]{reg: reg, fields: fields}
}

// plan resolves the pools backing each field and computes the membership
// masks. ok is false when a required pool does not exist yet, in which
// case no entity can match.
func (v *View[T]) plan() (pools []iPool, required, excluded mask.Mask, driver iPool, ok bool) {
	pools = make([]iPool, len(v.fields))
	for i, f := range v.fields {
		p, exists := v.reg.poolByType(f.typ)
		switch f.kind {
		case fieldRequired:
			if !exists {
				return nil, required, excluded, nil, false
			}
			pools[i] = p
			required.Mark(p.bit())
			if driver == nil || p.size() < driver.size() {
				driver = p
			}
		case fieldOptional:
			if exists {
				pools[i] = p
			}
		case fieldExcluded:
			if exists {
				excluded.Mark(p.bit())
			}
		}
	}
	return pools, required, excluded, driver, true
}

func (v *View[T]) populate(resultPtr unsafe.Pointer, pools []iPool, e Entity) {
	for i, f := range v.fields {
		fieldPtr := unsafe.Pointer(uintptr(resultPtr) + f.offset)
		p := pools[i]
		if f.kind == fieldExcluded || p == nil {
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}
		pos, found := p.positionOf(e)
		if !found {
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}
		component := p.anyAt(pos)
		*(*unsafe.Pointer)(fieldPtr) = (*iface)(unsafe.Pointer(&component)).data
	}
}

// Iter yields every matching entity together with its populated view
// struct. The smallest required pool drives the iteration (ties resolve
// to the first-declared field), walked from its most recently packed
// slot backward, so removing the current entity's components or
// destroying the current entity mid-visit stays well-defined. Any other
// structural mutation of a spanned pool invalidates the sequence; build
// a fresh view to restart.
func (v *View[T]) Iter() iter.Seq2[Entity, T] {
	return func(yield func(Entity, T) bool) {
		pools, required, excluded, driver, ok := v.plan()
		if !ok {
			return
		}

		var result T
		resultPtr := unsafe.Pointer(&result)

		for i := driver.size() - 1; i >= 0; i-- {
			if i >= driver.size() {
				continue
			}
			e := driver.entityAt(i)
			owned := v.reg.masks[e.Index()]
			if !owned.ContainsAll(required) || !owned.ContainsNone(excluded) {
				continue
			}
			v.populate(resultPtr, pools, e)
			if !yield(e, result) {
				return
			}
		}
	}
}

// Values yields just the populated view structs, without entity
// identifiers.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Contains reports whether e currently matches the view.
func (v *View[T]) Contains(e Entity) bool {
	if !v.reg.Valid(e) {
		return false
	}
	_, required, excluded, _, ok := v.plan()
	if !ok {
		return false
	}
	owned := v.reg.masks[e.Index()]
	return owned.ContainsAll(required) && owned.ContainsNone(excluded)
}

// Fill populates ptr with component pointers for e. It returns false if
// e does not match the view.
func (v *View[T]) Fill(e Entity, ptr *T) bool {
	if !v.reg.Valid(e) {
		return false
	}
	pools, required, excluded, _, ok := v.plan()
	if !ok {
		return false
	}
	owned := v.reg.masks[e.Index()]
	if !owned.ContainsAll(required) || !owned.ContainsNone(excluded) {
		return false
	}
	v.populate(unsafe.Pointer(ptr), pools, e)
	return true
}

// Get returns a populated view struct for e, or nil if e does not match
// the view.
func (v *View[T]) Get(e Entity) *T {
	var result T
	if !v.Fill(e, &result) {
		return nil
	}
	return &result
}

// Len counts the entities currently matching the view. It walks the
// driver pool, so it is O(n) in the driver's size.
func (v *View[T]) Len() int {
	n := 0
	_, required, excluded, driver, ok := v.plan()
	if !ok {
		return 0
	}
	for i := 0; i < driver.size(); i++ {
		owned := v.reg.masks[driver.entityAt(i).Index()]
		if owned.ContainsAll(required) && owned.ContainsNone(excluded) {
			n++
		}
	}
	return n
}
