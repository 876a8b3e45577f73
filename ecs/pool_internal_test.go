package ecs

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkDensity asserts the sparse-set invariants: dense arrays are
// parallel and gap-free, and every set sparse slot points at a dense
// slot owned by the entity with that index.
func checkDensity[T any](t *testing.T, p *pool[T]) {
	t.Helper()

	require.Equal(t, len(p.dense), len(p.items))
	for pos, e := range p.dense {
		stored, ok := p.sparse.get(e.Index())
		require.True(t, ok, "dense entity %d has no sparse slot", e.Index())
		require.Equal(t, uint32(pos), stored)
	}
	for key := uint32(0); uint64(key) < uint64(len(p.sparse)); key++ {
		pos, ok := p.sparse.get(key)
		if !ok {
			continue
		}
		require.Less(t, int(pos), len(p.dense))
		require.Equal(t, key, p.dense[pos].Index())
	}
}

func TestPoolDensityUnderRandomChurn(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	reg := NewRegistry()
	p := poolFor[int](reg)

	attached := make(map[Entity]int)
	var order []Entity

	for step := 0; step < 2000; step++ {
		if len(order) == 0 || rng.Intn(3) != 0 {
			e := reg.Create()
			v := rng.Int()
			p.emplace(e, v)
			attached[e] = v
			order = append(order, e)
		} else {
			i := rng.Intn(len(order))
			e := order[i]
			p.removeEntity(e)
			delete(attached, e)
			order[i] = order[len(order)-1]
			order = order[:len(order)-1]
		}
	}

	checkDensity(t, p)
	require.Equal(t, len(attached), p.size())
	for e, want := range attached {
		got, ok := p.get(e)
		require.True(t, ok)
		assert.Equal(t, want, *got)
	}
}

func TestPoolRemoveSwapsWithLast(t *testing.T) {
	reg := NewRegistry()
	p := poolFor[string](reg)

	a, b, c := reg.Create(), reg.Create(), reg.Create()
	p.emplace(a, "a")
	p.emplace(b, "b")
	p.emplace(c, "c")

	p.removeEntity(a)

	// The last slot was swapped into the removed slot.
	assert.Equal(t, []Entity{c, b}, p.dense)
	assert.Equal(t, []string{"c", "b"}, p.items)
	checkDensity(t, p)
}

func TestPoolSwapPositions(t *testing.T) {
	reg := NewRegistry()
	p := poolFor[int](reg)

	a, b, c := reg.Create(), reg.Create(), reg.Create()
	p.emplace(a, 1)
	p.emplace(b, 2)
	p.emplace(c, 3)

	p.swapPositions(0, 2)
	assert.Equal(t, []Entity{c, b, a}, p.dense)
	assert.Equal(t, []int{3, 2, 1}, p.items)
	checkDensity(t, p)

	p.swapPositions(1, 1)
	checkDensity(t, p)
}

func TestSparseIndexGrowth(t *testing.T) {
	var s sparseIndex

	_, ok := s.get(0)
	assert.False(t, ok)

	s.set(1000, 7)
	pos, ok := s.get(1000)
	require.True(t, ok)
	assert.Equal(t, uint32(7), pos)

	_, ok = s.get(999)
	assert.False(t, ok)

	s.unset(1000)
	_, ok = s.get(1000)
	assert.False(t, ok)
}

func TestAllocatorFreeListReuse(t *testing.T) {
	var a allocator

	e0 := a.create()
	e1 := a.create()
	e2 := a.create()
	assert.Equal(t, 3, a.liveCount)

	a.destroy(e1)
	a.destroy(e0)

	// Free list is a stack: most recently destroyed index comes back
	// first, with its generation advanced.
	r0 := a.create()
	assert.Equal(t, e0.Index(), r0.Index())
	assert.Equal(t, e0.Generation()+1, r0.Generation())

	r1 := a.create()
	assert.Equal(t, e1.Index(), r1.Index())

	assert.True(t, a.valid(e2))
	assert.False(t, a.valid(e0))
	assert.False(t, a.valid(e1))
}

func TestPoolHooksFireAroundStructuralChanges(t *testing.T) {
	reg := NewRegistry()
	p := poolFor[int](reg)

	var emplaced, removed []Entity
	p.onEmplace(func(e Entity) { emplaced = append(emplaced, e) })
	p.onRemove(func(e Entity) {
		// The entity must still occupy a dense slot when the remove
		// hook runs.
		assert.True(t, p.containsEntity(e))
		removed = append(removed, e)
	})

	e := reg.Create()
	p.emplace(e, 1)
	assert.Equal(t, []Entity{e}, emplaced)

	p.removeEntity(e)
	assert.Equal(t, []Entity{e}, removed)
	assert.False(t, p.containsEntity(e))
}
