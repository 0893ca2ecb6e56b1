// Package pset provides priority-ordered sets used by the trellis panel tree.
//
// Every element carries a mutable integer priority and a stable identity. Sets
// keep their elements sorted by (priority, identity) ascending, which is a
// strict total order as long as identities are unique.
//
// Three variants exist:
//
//   - [Set] holds strong references. It serves both the owning role (a parent's
//     children) and the shared role (the draw list, which references the same
//     panels as the owning child set).
//   - [WeakSet] holds generation-checked [Ref] handles into an [Arena]. Entries
//     whose handle has expired are pruned during traversal.
//   - [Arena] is the registry that hands out and expires those handles.
//
// Structural mutation of a set while one of its traversals is running panics.
// Callers that need to mutate from inside a callback must defer the mutation.
package pset

import (
	"cmp"
	"slices"
)

// Item is implemented by anything stored in a priority-ordered set.
type Item interface {
	Priority() int
	Identity() uint64
}

// Compare orders two items by priority, then identity. Items with the same
// identity compare equal regardless of priority.
func Compare[T Item](a, b T) int {
	ia, ib := a.Identity(), b.Identity()
	if ia == ib {
		return 0
	}
	if c := cmp.Compare(a.Priority(), b.Priority()); c != 0 {
		return c
	}
	return cmp.Compare(ia, ib)
}

// Set is an ordered set of strong references.
type Set[T Item] struct {
	items   []T
	walking int
}

// Len returns the number of elements.
func (s *Set[T]) Len() int { return len(s.items) }

// At returns the element at index i in ascending order.
func (s *Set[T]) At(i int) T { return s.items[i] }

// Items returns the elements in ascending order. The returned slice MUST NOT be
// mutated by the caller.
func (s *Set[T]) Items() []T { return s.items }

// First returns the lowest element.
func (s *Set[T]) First() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	return s.items[0], true
}

// Last returns the highest element.
func (s *Set[T]) Last() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	return s.items[len(s.items)-1], true
}

// Walking reports whether a traversal is in progress.
func (s *Set[T]) Walking() bool { return s.walking > 0 }

// Find returns the index of v. The lookup uses v's current priority; if the
// priority was changed behind the set's back, Find falls back to a scan by
// identity.
func (s *Set[T]) Find(v T) (int, bool) {
	i, ok := slices.BinarySearchFunc(s.items, v, Compare[T])
	if ok {
		return i, true
	}
	id := v.Identity()
	for j, it := range s.items {
		if it.Identity() == id {
			return j, true
		}
	}
	return -1, false
}

// Contains reports whether v is in the set.
func (s *Set[T]) Contains(v T) bool {
	_, ok := s.Find(v)
	return ok
}

// Insert adds v. Inserting an element that is already present is a no-op and
// returns false.
func (s *Set[T]) Insert(v T) bool {
	s.checkMutable("Insert")
	i, ok := slices.BinarySearchFunc(s.items, v, Compare[T])
	if ok {
		return false
	}
	s.items = slices.Insert(s.items, i, v)
	return true
}

// Erase removes v. Returns false if v was not present.
func (s *Set[T]) Erase(v T) bool {
	s.checkMutable("Erase")
	i, ok := s.Find(v)
	if !ok {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	return true
}

// SetPriority moves v to a new priority. The sort key cannot change in place,
// so v is removed, apply writes the new priority into v, and v is reinserted.
// If v is not in the set, apply still runs and the set is untouched.
func (s *Set[T]) SetPriority(v T, priority int, apply func(int)) {
	s.checkMutable("SetPriority")
	i, ok := s.Find(v)
	if ok {
		s.items = slices.Delete(s.items, i, i+1)
	}
	apply(priority)
	if ok {
		s.Insert(v)
	}
}

// Clear removes every element.
func (s *Set[T]) Clear() {
	s.checkMutable("Clear")
	clear(s.items)
	s.items = s.items[:0]
}

// Each calls fn for every element in ascending order until fn returns false.
func (s *Set[T]) Each(fn func(T) bool) {
	s.walking++
	defer func() { s.walking-- }()
	for _, v := range s.items {
		if !fn(v) {
			return
		}
	}
}

// EachReverse calls fn for every element in descending order until fn returns false.
func (s *Set[T]) EachReverse(fn func(T) bool) {
	s.walking++
	defer func() { s.walking-- }()
	for i := len(s.items) - 1; i >= 0; i-- {
		if !fn(s.items[i]) {
			return
		}
	}
}

func (s *Set[T]) checkMutable(op string) {
	if s.walking > 0 {
		panic("pset: " + op + " during traversal")
	}
}
