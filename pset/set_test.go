package pset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testItem struct {
	prio int
	id   uint64
	ref  Ref
}

func (i *testItem) Priority() int    { return i.prio }
func (i *testItem) Identity() uint64 { return i.id }
func (i *testItem) Ref() Ref         { return i.ref }

func priorities(s *Set[*testItem]) []int {
	var out []int
	s.Each(func(it *testItem) bool {
		out = append(out, it.prio)
		return true
	})
	return out
}

func TestCompareTotalOrder(t *testing.T) {
	items := []*testItem{
		{prio: 1, id: 1}, {prio: 1, id: 2}, {prio: 0, id: 3},
		{prio: 2, id: 4}, {prio: 1, id: 5}, {prio: -3, id: 6},
	}
	for _, a := range items {
		assert.Equal(t, 0, Compare(a, a))
		for _, b := range items {
			ab, ba := Compare(a, b), Compare(b, a)
			assert.Equal(t, -ab, ba, "antisymmetry for %d,%d", a.id, b.id)
			if a != b {
				assert.NotZero(t, ab, "distinct items %d,%d compare equal", a.id, b.id)
			}
			for _, c := range items {
				if ab < 0 && Compare(b, c) < 0 {
					assert.Negative(t, Compare(a, c), "transitivity %d<%d<%d", a.id, b.id, c.id)
				}
			}
		}
	}
}

func TestCompareSameIdentityIsEqual(t *testing.T) {
	a := &testItem{prio: 1, id: 7}
	b := &testItem{prio: 9, id: 7}
	assert.Equal(t, 0, Compare(a, b))
}

func TestSetInsertOrdersByPriorityThenIdentity(t *testing.T) {
	var s Set[*testItem]
	s.Insert(&testItem{prio: 5, id: 1})
	s.Insert(&testItem{prio: 1, id: 2})
	s.Insert(&testItem{prio: 5, id: 0})
	s.Insert(&testItem{prio: 3, id: 3})

	require.Equal(t, 4, s.Len())
	var ids []uint64
	for _, it := range s.Items() {
		ids = append(ids, it.id)
	}
	assert.Equal(t, []uint64{2, 3, 0, 1}, ids)
}

func TestSetInsertDuplicateIsNoop(t *testing.T) {
	var s Set[*testItem]
	it := &testItem{prio: 1, id: 1}
	assert.True(t, s.Insert(it))
	assert.False(t, s.Insert(it))
	assert.Equal(t, 1, s.Len())
}

func TestSetErase(t *testing.T) {
	var s Set[*testItem]
	a := &testItem{prio: 1, id: 1}
	b := &testItem{prio: 2, id: 2}
	s.Insert(a)
	s.Insert(b)

	assert.True(t, s.Erase(a))
	assert.False(t, s.Erase(a))
	assert.False(t, s.Contains(a))
	assert.True(t, s.Contains(b))
}

func TestSetFindAfterPriorityChangedBehindBack(t *testing.T) {
	var s Set[*testItem]
	a := &testItem{prio: 1, id: 1}
	s.Insert(a)
	s.Insert(&testItem{prio: 4, id: 2})
	a.prio = 10

	_, ok := s.Find(a)
	assert.True(t, ok)
	assert.True(t, s.Erase(a))
}

func TestSetPriorityReinsertion(t *testing.T) {
	var s Set[*testItem]
	var five *testItem
	for i, p := range []int{1, 3, 5, 7} {
		it := &testItem{prio: p, id: uint64(i + 1)}
		if p == 5 {
			five = it
		}
		s.Insert(it)
	}

	s.SetPriority(five, 2, func(p int) { five.prio = p })
	assert.Equal(t, []int{1, 2, 3, 7}, priorities(&s))
}

func TestSetPriorityNotMemberStillApplies(t *testing.T) {
	var s Set[*testItem]
	it := &testItem{prio: 1, id: 1}
	s.SetPriority(it, 4, func(p int) { it.prio = p })
	assert.Equal(t, 4, it.prio)
	assert.Equal(t, 0, s.Len())
}

func TestSetEachStopsEarly(t *testing.T) {
	var s Set[*testItem]
	for i := 0; i < 5; i++ {
		s.Insert(&testItem{prio: i, id: uint64(i)})
	}
	var seen int
	s.Each(func(*testItem) bool {
		seen++
		return seen < 2
	})
	assert.Equal(t, 2, seen)

	var rev []int
	s.EachReverse(func(it *testItem) bool {
		rev = append(rev, it.prio)
		return true
	})
	assert.Equal(t, []int{4, 3, 2, 1, 0}, rev)
}

func TestSetMutationDuringTraversalPanics(t *testing.T) {
	var s Set[*testItem]
	s.Insert(&testItem{prio: 1, id: 1})
	assert.Panics(t, func() {
		s.Each(func(*testItem) bool {
			s.Insert(&testItem{prio: 2, id: 2})
			return true
		})
	})
	assert.False(t, s.Walking(), "walking counter must unwind after a panic")
}

func TestSetFirstLast(t *testing.T) {
	var s Set[*testItem]
	_, ok := s.First()
	assert.False(t, ok)
	s.Insert(&testItem{prio: 3, id: 1})
	s.Insert(&testItem{prio: -1, id: 2})
	first, _ := s.First()
	last, _ := s.Last()
	assert.Equal(t, -1, first.prio)
	assert.Equal(t, 3, last.prio)
}
