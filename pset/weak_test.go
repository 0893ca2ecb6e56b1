package pset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWeakFixture(n int) (*Arena[*testItem], *WeakSet[*testItem], []*testItem) {
	arena := &Arena[*testItem]{}
	set := NewWeakSet(arena)
	items := make([]*testItem, n)
	for i := range items {
		it := &testItem{prio: i + 1, id: uint64(i + 1)}
		it.ref = arena.Alloc(it)
		set.Insert(it)
		items[i] = it
	}
	return arena, set, items
}

func TestArenaGenerations(t *testing.T) {
	arena := &Arena[string]{}
	a := arena.Alloc("a")
	require.True(t, arena.Live(a))

	assert.True(t, arena.Free(a))
	assert.False(t, arena.Free(a))
	_, ok := arena.Get(a)
	assert.False(t, ok)

	b := arena.Alloc("b")
	assert.Equal(t, a.index, b.index, "freed slot should be reused")
	assert.NotEqual(t, a, b)
	assert.False(t, arena.Live(a))
	v, ok := arena.Get(b)
	assert.True(t, ok)
	assert.Equal(t, "b", v)
	assert.Equal(t, 1, arena.Len())
	assert.False(t, arena.Live(Ref{}))
}

func TestWeakPruneAfterEarlyStop(t *testing.T) {
	arena, set, items := newWeakFixture(5)
	arena.Free(items[1].ref)
	arena.Free(items[3].ref)
	require.Equal(t, 2, set.Expired())

	var calls int
	set.Each(func(*testItem) bool {
		calls++
		return false
	})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, set.Expired())
	assert.Equal(t, 3, set.Len())
}

func TestWeakExpiredDuringPass(t *testing.T) {
	arena, set, items := newWeakFixture(4)

	var seen []uint64
	set.Each(func(it *testItem) bool {
		seen = append(seen, it.id)
		if it.id == 1 {
			arena.Free(items[2].ref)
		}
		return true
	})

	assert.Equal(t, []uint64{1, 2, 4}, seen)
	assert.Equal(t, 0, set.Expired())
}

func TestCompareWeakExpiredSortsFirst(t *testing.T) {
	arena, _, items := newWeakFixture(3)
	arena.Free(items[2].ref)

	assert.Negative(t, CompareWeak(arena, items[2].ref, items[0].ref))
	assert.Positive(t, CompareWeak(arena, items[0].ref, items[2].ref))
	assert.Negative(t, CompareWeak(arena, items[0].ref, items[1].ref))

	arena.Free(items[0].ref)
	a, b := items[0].ref, items[2].ref
	assert.Equal(t, -CompareWeak(arena, a, b), CompareWeak(arena, b, a))
	assert.NotZero(t, CompareWeak(arena, a, b))
}

func TestWeakReordersAfterPriorityChange(t *testing.T) {
	_, set, items := newWeakFixture(3)
	items[0].prio = 10

	var ids []uint64
	for _, it := range set.Live() {
		ids = append(ids, it.id)
	}
	assert.Equal(t, []uint64{2, 3, 1}, ids)
}

func TestWeakInsertExpiredIsRejected(t *testing.T) {
	arena := &Arena[*testItem]{}
	set := NewWeakSet(arena)
	it := &testItem{prio: 1, id: 1}
	it.ref = arena.Alloc(it)
	arena.Free(it.ref)
	assert.False(t, set.Insert(it))
	assert.False(t, set.Contains(it))
}

func TestWeakMutationDuringTraversalPanics(t *testing.T) {
	arena, set, _ := newWeakFixture(2)
	extra := &testItem{prio: 9, id: 9}
	extra.ref = arena.Alloc(extra)

	assert.Panics(t, func() {
		set.Each(func(*testItem) bool {
			set.Insert(extra)
			return true
		})
	})
}

func TestDifference(t *testing.T) {
	arena := &Arena[*testItem]{}
	pinned := NewWeakSet(arena)
	hit := NewWeakSet(arena)
	diff := NewWeakSet(arena)

	var items []*testItem
	for i := 0; i < 6; i++ {
		it := &testItem{prio: i % 3, id: uint64(i + 1)}
		it.ref = arena.Alloc(it)
		items = append(items, it)
	}
	for _, i := range []int{0, 1, 2, 4} {
		pinned.Insert(items[i])
	}
	for _, i := range []int{1, 3, 4} {
		hit.Insert(items[i])
	}
	arena.Free(items[2].ref)

	Difference(diff, pinned, hit)

	var ids []uint64
	for _, it := range diff.Live() {
		ids = append(ids, it.id)
	}
	assert.Equal(t, []uint64{1}, ids)
	assert.Equal(t, 0, pinned.Expired())
}
