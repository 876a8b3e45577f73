package ecs

import "reflect"

// Handle is a convenience proxy binding one entity identifier to one
// registry. It owns nothing and adds no invariant of its own: every
// operation forwards to the registry. Two handles are equal iff they
// refer to the same registry instance and the same identifier.
type Handle struct {
	reg    *Registry
	entity Entity
}

// NewHandle binds e to r.
func NewHandle(r *Registry, e Entity) Handle {
	return Handle{reg: r, entity: e}
}

// Entity returns the raw identifier.
func (h Handle) Entity() Entity { return h.entity }

// Registry returns the bound registry, nil for the zero handle.
func (h Handle) Registry() *Registry { return h.reg }

// Nil reports whether the handle is unbound or carries the null
// identifier. This is a weaker check than Valid, which additionally
// consults the allocator's live/dead bookkeeping.
func (h Handle) Nil() bool {
	return h.reg == nil || h.entity.IsNull()
}

// Valid reports whether the bound identifier refers to a live entity.
func (h Handle) Valid() bool {
	return h.reg != nil && h.reg.Valid(h.entity)
}

// ReadOnly converts the handle into its query-only variant. There is no
// conversion back.
func (h Handle) ReadOnly() ReadOnlyHandle {
	return ReadOnlyHandle{reg: h.reg, entity: h.entity}
}

// Destroy destroys the bound entity.
func (h Handle) Destroy() error {
	if h.reg == nil {
		return InvalidEntityError{Entity: h.entity}
	}
	return h.reg.Destroy(h.entity)
}

// RemoveAll detaches every component from the bound entity.
func (h Handle) RemoveAll() error {
	if h.reg == nil {
		return InvalidEntityError{Entity: h.entity}
	}
	return h.reg.RemoveAll(h.entity)
}

// Orphan reports whether the bound entity owns zero components.
func (h Handle) Orphan() (bool, error) {
	if h.reg == nil {
		return false, InvalidEntityError{Entity: h.entity}
	}
	return h.reg.Orphan(h.entity)
}

// Visit invokes fn once per component type owned by the bound entity.
func (h Handle) Visit(fn func(reflect.Type)) error {
	if h.reg == nil {
		return InvalidEntityError{Entity: h.entity}
	}
	return h.reg.Visit(h.entity, fn)
}

// HandleEmplace attaches a component through a handle.
func HandleEmplace[T any](h Handle, value T) (*T, error) {
	if h.reg == nil {
		return nil, InvalidEntityError{Entity: h.entity}
	}
	return Emplace(h.reg, h.entity, value)
}

// HandleEmplaceOrReplace attaches or overwrites a component through a
// handle.
func HandleEmplaceOrReplace[T any](h Handle, value T) (*T, error) {
	if h.reg == nil {
		return nil, InvalidEntityError{Entity: h.entity}
	}
	return EmplaceOrReplace(h.reg, h.entity, value)
}

// HandleReplace overwrites an existing component through a handle.
func HandleReplace[T any](h Handle, value T) (*T, error) {
	if h.reg == nil {
		return nil, InvalidEntityError{Entity: h.entity}
	}
	return Replace(h.reg, h.entity, value)
}

// HandlePatch mutates an existing component in place through a handle.
func HandlePatch[T any](h Handle, mutators ...func(*T)) (*T, error) {
	if h.reg == nil {
		return nil, InvalidEntityError{Entity: h.entity}
	}
	return Patch(h.reg, h.entity, mutators...)
}

// HandleRemove detaches a component through a handle.
func HandleRemove[T any](h Handle) error {
	if h.reg == nil {
		return InvalidEntityError{Entity: h.entity}
	}
	return Remove[T](h.reg, h.entity)
}

// HandleRemoveIfPresent detaches a component through a handle if it is
// attached, reporting how many were removed (0 or 1).
func HandleRemoveIfPresent[T any](h Handle) (int, error) {
	if h.reg == nil {
		return 0, InvalidEntityError{Entity: h.entity}
	}
	return RemoveIfPresent[T](h.reg, h.entity)
}

// HandleGet returns a component through a handle, failing if absent.
func HandleGet[T any](h Handle) (*T, error) {
	if h.reg == nil {
		return nil, InvalidEntityError{Entity: h.entity}
	}
	return Get[T](h.reg, h.entity)
}

// HandleGetOrEmplace returns the existing component or attaches value.
func HandleGetOrEmplace[T any](h Handle, value T) (*T, error) {
	if h.reg == nil {
		return nil, InvalidEntityError{Entity: h.entity}
	}
	return GetOrEmplace(h.reg, h.entity, value)
}

// HandleTryGet returns a component through a handle, or nil.
func HandleTryGet[T any](h Handle) *T {
	if h.reg == nil {
		return nil
	}
	return TryGet[T](h.reg, h.entity)
}

// HandleHas reports component ownership through a handle.
func HandleHas[T any](h Handle) bool {
	return h.reg != nil && Has[T](h.reg, h.entity)
}

// ReadOnlyHandle is the query-only variant of Handle: it can inspect the
// bound entity but never mutate it.
type ReadOnlyHandle struct {
	reg    *Registry
	entity Entity
}

// Entity returns the raw identifier.
func (h ReadOnlyHandle) Entity() Entity { return h.entity }

// Nil reports whether the handle is unbound or carries the null
// identifier.
func (h ReadOnlyHandle) Nil() bool {
	return h.reg == nil || h.entity.IsNull()
}

// Valid reports whether the bound identifier refers to a live entity.
func (h ReadOnlyHandle) Valid() bool {
	return h.reg != nil && h.reg.Valid(h.entity)
}

// Orphan reports whether the bound entity owns zero components.
func (h ReadOnlyHandle) Orphan() (bool, error) {
	if h.reg == nil {
		return false, InvalidEntityError{Entity: h.entity}
	}
	return h.reg.Orphan(h.entity)
}

// Visit invokes fn once per component type owned by the bound entity.
func (h ReadOnlyHandle) Visit(fn func(reflect.Type)) error {
	if h.reg == nil {
		return InvalidEntityError{Entity: h.entity}
	}
	return h.reg.Visit(h.entity, fn)
}

// ReadOnlyGet returns a copy of a component through a read-only handle.
// Returning a copy rather than a pointer keeps the variant strictly
// non-mutating.
func ReadOnlyGet[T any](h ReadOnlyHandle) (T, error) {
	var zero T
	if h.reg == nil {
		return zero, InvalidEntityError{Entity: h.entity}
	}
	item, err := Get[T](h.reg, h.entity)
	if err != nil {
		return zero, err
	}
	return *item, nil
}

// ReadOnlyTryGet returns a copy of a component through a read-only
// handle, reporting whether it was present.
func ReadOnlyTryGet[T any](h ReadOnlyHandle) (T, bool) {
	var zero T
	if h.reg == nil {
		return zero, false
	}
	item := TryGet[T](h.reg, h.entity)
	if item == nil {
		return zero, false
	}
	return *item, true
}

// ReadOnlyHas reports component ownership through a read-only handle.
func ReadOnlyHas[T any](h ReadOnlyHandle) bool {
	return h.reg != nil && Has[T](h.reg, h.entity)
}
