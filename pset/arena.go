package pset

// Ref is a generation-checked handle into an [Arena]. The zero Ref is never live.
type Ref struct {
	index uint32
	gen   uint32
}

// IsZero reports whether r is the zero handle.
func (r Ref) IsZero() bool { return r.gen == 0 }

// compareRef orders handles by slot, then generation.
func compareRef(a, b Ref) int {
	switch {
	case a.index < b.index:
		return -1
	case a.index > b.index:
		return 1
	case a.gen < b.gen:
		return -1
	case a.gen > b.gen:
		return 1
	}
	return 0
}

type arenaSlot[T any] struct {
	gen   uint32
	live  bool
	value T
}

// Arena hands out generation-checked handles. Freeing a slot bumps its
// generation, so every outstanding Ref to it stops resolving.
type Arena[T any] struct {
	slots []arenaSlot[T]
	free  []uint32
	count int
}

// Alloc stores v and returns its handle.
func (a *Arena[T]) Alloc(v T) Ref {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, arenaSlot[T]{})
		idx = uint32(len(a.slots) - 1)
	}
	sl := &a.slots[idx]
	sl.gen++
	if sl.gen == 0 {
		sl.gen = 1
	}
	sl.live = true
	sl.value = v
	a.count++
	return Ref{index: idx, gen: sl.gen}
}

// Get resolves r. The second result is false if r has expired.
func (a *Arena[T]) Get(r Ref) (T, bool) {
	if !a.Live(r) {
		var zero T
		return zero, false
	}
	return a.slots[r.index].value, true
}

// Live reports whether r still resolves.
func (a *Arena[T]) Live(r Ref) bool {
	if r.gen == 0 || int(r.index) >= len(a.slots) {
		return false
	}
	sl := &a.slots[r.index]
	return sl.live && sl.gen == r.gen
}

// Free expires r. Freeing an expired handle is a no-op and returns false.
func (a *Arena[T]) Free(r Ref) bool {
	if !a.Live(r) {
		return false
	}
	sl := &a.slots[r.index]
	var zero T
	sl.value = zero
	sl.live = false
	a.free = append(a.free, r.index)
	a.count--
	return true
}

// Len returns the number of live handles.
func (a *Arena[T]) Len() int { return a.count }
