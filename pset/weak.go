package pset

import "slices"

// Referable is an Item that lives in an Arena.
type Referable interface {
	Item
	Ref() Ref
}

// CompareWeak orders two handles for a weak set. An expired handle sorts before
// every live one. Expired handles are ordered among themselves by slot and
// generation, which keeps the relation total even though nothing downstream
// depends on their relative order. Live handles fall back to Compare.
func CompareWeak[T Referable](arena *Arena[T], a, b Ref) int {
	va, okA := arena.Get(a)
	vb, okB := arena.Get(b)
	switch {
	case !okA && !okB:
		return compareRef(a, b)
	case !okA:
		return -1
	case !okB:
		return 1
	}
	return Compare(va, vb)
}

// WeakSet is an ordered set of non-owning handles. Entries whose handle has
// expired are pruned on the next traversal, insertion, or explicit Prune.
// Live entries may change priority while in the set; the order is repaired
// before each traversal.
type WeakSet[T Referable] struct {
	arena   *Arena[T]
	refs    []Ref
	walking int
}

// NewWeakSet returns an empty weak set resolving handles through arena.
func NewWeakSet[T Referable](arena *Arena[T]) *WeakSet[T] {
	return &WeakSet[T]{arena: arena}
}

// Len returns the number of entries, expired ones included.
func (s *WeakSet[T]) Len() int { return len(s.refs) }

// Expired returns the number of entries whose handle no longer resolves.
func (s *WeakSet[T]) Expired() int {
	n := 0
	for _, r := range s.refs {
		if !s.arena.Live(r) {
			n++
		}
	}
	return n
}

// Walking reports whether a traversal is in progress.
func (s *WeakSet[T]) Walking() bool { return s.walking > 0 }

func (s *WeakSet[T]) cmp(a, b Ref) int { return CompareWeak(s.arena, a, b) }

// Insert adds v. Returns false if v is already present.
func (s *WeakSet[T]) Insert(v T) bool {
	s.checkMutable("Insert")
	s.normalize()
	r := v.Ref()
	if !s.arena.Live(r) {
		return false
	}
	i, ok := slices.BinarySearchFunc(s.refs, r, s.cmp)
	if ok {
		return false
	}
	s.refs = slices.Insert(s.refs, i, r)
	return true
}

// Erase removes v. Returns false if v was not present.
func (s *WeakSet[T]) Erase(v T) bool {
	s.checkMutable("Erase")
	r := v.Ref()
	for i, e := range s.refs {
		if e == r {
			s.refs = slices.Delete(s.refs, i, i+1)
			return true
		}
	}
	return false
}

// Contains reports whether v is present and live.
func (s *WeakSet[T]) Contains(v T) bool {
	r := v.Ref()
	if !s.arena.Live(r) {
		return false
	}
	return slices.Contains(s.refs, r)
}

// Clear removes every entry.
func (s *WeakSet[T]) Clear() {
	s.checkMutable("Clear")
	s.refs = s.refs[:0]
}

// Prune drops expired entries and restores the order of the live ones.
func (s *WeakSet[T]) Prune() {
	s.checkMutable("Prune")
	s.normalize()
}

// Each calls fn with every live element in ascending order. Expired entries
// are skipped and pruned once the pass ends. Returning false from fn stops
// delivery for the rest of the pass; pruning still covers the whole set.
func (s *WeakSet[T]) Each(fn func(T) bool) {
	if s.walking == 0 {
		s.normalize()
	}
	s.walking++
	defer func() {
		s.walking--
		if s.walking == 0 {
			s.normalize()
		}
	}()
	for _, r := range s.refs {
		v, ok := s.arena.Get(r)
		if !ok {
			continue
		}
		if !fn(v) {
			return
		}
	}
}

// Live returns the live elements in ascending order.
func (s *WeakSet[T]) Live() []T {
	out := make([]T, 0, len(s.refs))
	s.Each(func(v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

// Difference replaces the contents of dst with the live elements of a that are
// not in b. It walks both sets once, relying on their shared order.
func Difference[T Referable](dst, a, b *WeakSet[T]) {
	dst.checkMutable("Difference")
	a.checkMutable("Difference")
	b.checkMutable("Difference")
	a.normalize()
	b.normalize()
	dst.refs = dst.refs[:0]
	i, j := 0, 0
	for i < len(a.refs) {
		if j >= len(b.refs) {
			dst.refs = append(dst.refs, a.refs[i:]...)
			break
		}
		switch c := CompareWeak(a.arena, a.refs[i], b.refs[j]); {
		case c < 0:
			dst.refs = append(dst.refs, a.refs[i])
			i++
		case c > 0:
			j++
		default:
			i++
			j++
		}
	}
}

// normalize removes expired handles and re-sorts if live priorities moved.
func (s *WeakSet[T]) normalize() {
	s.refs = slices.DeleteFunc(s.refs, func(r Ref) bool { return !s.arena.Live(r) })
	if !slices.IsSortedFunc(s.refs, s.cmp) {
		slices.SortFunc(s.refs, s.cmp)
	}
}

func (s *WeakSet[T]) checkMutable(op string) {
	if s.walking > 0 {
		panic("pset: weak " + op + " during traversal")
	}
}
