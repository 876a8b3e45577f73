package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/roster/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleEquality(t *testing.T) {
	regA := ecs.NewRegistry()
	regB := ecs.NewRegistry()

	e := regA.Create()
	_ = regB.Create()

	h1 := ecs.NewHandle(regA, e)
	h2 := ecs.NewHandle(regA, e)
	h3 := ecs.NewHandle(regB, e)

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3, "same identifier, different registry")
	assert.NotEqual(t, h1, ecs.NewHandle(regA, regA.Create()))
}

func TestHandleNilVersusValid(t *testing.T) {
	reg := ecs.NewRegistry()
	e := reg.Create()

	var zero ecs.Handle
	assert.True(t, zero.Nil())
	assert.False(t, zero.Valid())

	null := ecs.NewHandle(reg, ecs.Null)
	assert.True(t, null.Nil())
	assert.False(t, null.Valid())

	h := ecs.NewHandle(reg, e)
	assert.False(t, h.Nil())
	assert.True(t, h.Valid())

	// Nil is the weaker check: destroying the entity flips Valid but
	// not Nil.
	require.NoError(t, reg.Destroy(e))
	assert.False(t, h.Nil())
	assert.False(t, h.Valid())
}

func TestHandleForwardsOperations(t *testing.T) {
	reg := ecs.NewRegistry()
	h := ecs.NewHandle(reg, reg.Create())

	_, err := ecs.HandleEmplace(h, Position{X: 1})
	require.NoError(t, err)
	_, err = ecs.HandleEmplace(h, Health{Current: 80, Max: 100})
	require.NoError(t, err)

	assert.True(t, ecs.HandleHas[Position](h))
	assert.False(t, ecs.HandleHas[Velocity](h))

	pos, err := ecs.HandleGet[Position](h)
	require.NoError(t, err)
	assert.Equal(t, float32(1), pos.X)

	_, err = ecs.HandlePatch(h, func(hp *Health) { hp.Current += 20 })
	require.NoError(t, err)
	hp := ecs.HandleTryGet[Health](h)
	require.NotNil(t, hp)
	assert.Equal(t, 100, hp.Current)

	_, err = ecs.HandleReplace(h, Position{X: 7})
	require.NoError(t, err)
	_, err = ecs.HandleEmplaceOrReplace(h, Position{X: 8})
	require.NoError(t, err)
	_, err = ecs.HandleGetOrEmplace(h, Score(3))
	require.NoError(t, err)

	var types []reflect.Type
	require.NoError(t, h.Visit(func(typ reflect.Type) { types = append(types, typ) }))
	assert.Len(t, types, 3)

	require.NoError(t, ecs.HandleRemove[Position](h))
	n, err := ecs.HandleRemoveIfPresent[Position](h)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, h.RemoveAll())
	orphan, err := h.Orphan()
	require.NoError(t, err)
	assert.True(t, orphan)

	require.NoError(t, h.Destroy())
	assert.False(t, h.Valid())
}

func TestZeroHandleReturnsInvalidEntity(t *testing.T) {
	var h ecs.Handle
	var invalid ecs.InvalidEntityError

	_, err := ecs.HandleEmplace(h, Position{})
	require.ErrorAs(t, err, &invalid)
	_, err = ecs.HandleGet[Position](h)
	require.ErrorAs(t, err, &invalid)
	require.ErrorAs(t, h.Destroy(), &invalid)
	require.ErrorAs(t, h.RemoveAll(), &invalid)
	assert.Nil(t, ecs.HandleTryGet[Position](h))
	assert.False(t, ecs.HandleHas[Position](h))
}

func TestReadOnlyHandleQueries(t *testing.T) {
	reg := ecs.NewRegistry()
	e := reg.Create()
	_, err := ecs.Emplace(reg, e, Name{Value: "watched"})
	require.NoError(t, err)

	ro := ecs.NewHandle(reg, e).ReadOnly()
	assert.False(t, ro.Nil())
	assert.True(t, ro.Valid())
	assert.Equal(t, e, ro.Entity())

	name, err := ecs.ReadOnlyGet[Name](ro)
	require.NoError(t, err)
	assert.Equal(t, "watched", name.Value)

	// The copy does not write through to storage.
	name.Value = "scribbled"
	stored, err := ecs.Get[Name](reg, e)
	require.NoError(t, err)
	assert.Equal(t, "watched", stored.Value)

	_, ok := ecs.ReadOnlyTryGet[Velocity](ro)
	assert.False(t, ok)
	assert.True(t, ecs.ReadOnlyHas[Name](ro))

	orphan, err := ro.Orphan()
	require.NoError(t, err)
	assert.False(t, orphan)
}
