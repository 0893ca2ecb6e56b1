package trellis

import (
	"slices"

	"github.com/phanxgames/trellis/pset"
)

// scope is the ordering and dispatch state shared by every panel and by the
// root registry. For the root registry, children holds the UI roots and draw
// holds the draw roots.
type scope struct {
	app   *App
	owner *Panel // nil for the root registry

	children pset.Set[*Panel]
	draw     pset.Set[drawOrder]

	hit        *pset.WeakSet[*Panel]
	pinned     *pset.WeakSet[*Panel]
	diffPinned *pset.WeakSet[*Panel]
	diffDirty  bool
	diffQueued bool

	// stale counts removals deferred while a strong set was walked.
	stale int

	// Running extremes used by MoveToTopmost.
	topDraw  int
	topEvent int
}

func (s *scope) init(a *App, owner *Panel) {
	s.app = a
	s.owner = owner
	s.hit = pset.NewWeakSet(&a.arena)
	s.pinned = pset.NewWeakSet(&a.arena)
	s.diffPinned = pset.NewWeakSet(&a.arena)
}

// reset drops everything the scope references. A pass over one of these sets
// may still be running (a handler disposing its own ancestor), so the weak
// sets are replaced rather than cleared and the strong sets are left alone
// while walked.
func (s *scope) reset() {
	if !s.children.Walking() {
		s.children = pset.Set[*Panel]{}
	}
	if !s.draw.Walking() {
		s.draw = pset.Set[drawOrder]{}
	}
	s.hit = pset.NewWeakSet(&s.app.arena)
	s.pinned = pset.NewWeakSet(&s.app.arena)
	s.diffPinned = pset.NewWeakSet(&s.app.arena)
	s.diffDirty = false
}

func (s *scope) insert(p *Panel) {
	s.insertUI(p)
	s.insertDraw(p)
}

func (s *scope) insertUI(p *Panel) {
	s.dropStale()
	// A leftover entry for p may sit at an outdated position.
	s.children.Erase(p)
	s.children.Insert(p)
	s.topEvent = min(s.topEvent, p.eventPriority)
}

func (s *scope) insertDraw(p *Panel) {
	s.dropStale()
	s.draw.Erase(drawOrder{p})
	s.draw.Insert(drawOrder{p})
	s.topDraw = max(s.topDraw, p.drawPriority)
}

// remove drops p from the scope. A set that is being walked keeps p until the
// next loop turn; p is no longer live by then or has a different parent, so
// the pass in progress skips it.
func (s *scope) remove(p *Panel) {
	if s.children.Walking() || s.draw.Walking() {
		s.stale++
		s.app.queue.post(message{kind: msgFunc, fn: func() { s.eraseStale(p) }})
	} else {
		s.children.Erase(p)
		s.draw.Erase(drawOrder{p})
	}
	if s.hit.Contains(p) && !s.hit.Walking() {
		s.hit.Erase(p)
		s.markDiffDirty()
	}
}

// holds reports whether p currently belongs to this scope. Entries removed
// while a set was walked stay behind until eraseStale runs.
func (s *scope) holds(p *Panel) bool {
	if s.owner == nil {
		return p.parent == nil && (p.rootUI || p.rootDraw)
	}
	return p.parent == s.owner
}

func (s *scope) eraseStale(p *Panel) {
	if s.holds(p) {
		return
	}
	if s.children.Walking() || s.draw.Walking() {
		s.app.queue.post(message{kind: msgFunc, fn: func() { s.eraseStale(p) }})
		return
	}
	s.children.Erase(p)
	s.draw.Erase(drawOrder{p})
}

// dropStale erases every entry left behind by a deferred removal. A stale
// entry's priority may have changed through its new container, which breaks
// the sort order the binary searches rely on, so this runs before any insert
// or reprioritization. No-op while a strong set is walked.
func (s *scope) dropStale() {
	if s.stale == 0 || s.children.Walking() || s.draw.Walking() {
		return
	}
	for _, c := range slices.Clone(s.children.Items()) {
		if !s.holds(c) {
			s.children.Erase(c)
		}
	}
	for _, d := range slices.Clone(s.draw.Items()) {
		if !s.holds(d.p) {
			s.draw.Erase(d)
		}
	}
	s.stale = 0
}

// childItems returns the children in event order, skipping panels whose
// removal is still pending.
func (s *scope) childItems() []*Panel {
	out := make([]*Panel, 0, s.children.Len())
	for _, c := range s.children.Items() {
		if s.holds(c) {
			out = append(out, c)
		}
	}
	return out
}

func (s *scope) drawItems() []*Panel {
	out := make([]*Panel, 0, s.draw.Len())
	for _, d := range s.draw.Items() {
		if s.holds(d.p) {
			out = append(out, d.p)
		}
	}
	return out
}

func (s *scope) forceSingle() bool {
	if s.owner == nil {
		return s.app.cfg.ForceSingleEnterLeave
	}
	return s.owner.ForceSingleEnterLeave
}

// busy reports whether any pass over this scope's weak sets is running.
func (s *scope) busy() bool {
	return s.hit.Walking() || s.pinned.Walking() || s.diffPinned.Walking()
}

// markDiffDirty flags the diff-pinned set as stale and posts a recompute
// request for the next loop turn.
func (s *scope) markDiffDirty() {
	s.diffDirty = true
	if s.diffQueued {
		return
	}
	s.diffQueued = true
	s.app.queue.post(message{kind: msgRecompute, scope: s})
}

// recomputeDiff rebuilds diffPinned = pinned - hit if it is stale and no pass
// over the involved sets is active. Returns false if the work had to wait.
func (s *scope) recomputeDiff() bool {
	if !s.diffDirty {
		return true
	}
	if s.busy() {
		return false
	}
	pset.Difference(s.diffPinned, s.pinned, s.hit)
	s.diffDirty = false
	return true
}

// diff returns the diff-pinned set, refreshing it first when that is safe.
func (s *scope) diff() *pset.WeakSet[*Panel] {
	if s.diffDirty && !s.recomputeDiff() {
		s.markDiffDirty()
	}
	return s.diffPinned
}

// hitCandidate reports whether p takes part in hit testing at all.
func hitCandidate(p *Panel) bool {
	return p.live() && p.Reacts(CategoryHitTest)
}
