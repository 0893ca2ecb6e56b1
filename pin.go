package trellis

// Pin makes p receive pointer and keyboard events routed through ancestor even
// while the pointer is not over p. Pinning twice is a no-op.
// Panics if ancestor is not an ancestor of p.
func (p *Panel) Pin(ancestor *Panel) {
	if ancestor == nil || !ancestor.IsAncestorOf(p) {
		panic("trellis: pin target must be an ancestor of the pinned panel")
	}
	ancestor.scope.pin(p)
}

// Unpin removes p from ancestor's pinned set. Unpinning a panel that is not
// pinned is a no-op.
func (p *Panel) Unpin(ancestor *Panel) {
	if ancestor == nil {
		return
	}
	ancestor.scope.unpin(p)
}

// PinnedTo reports whether p is pinned to ancestor.
func (p *Panel) PinnedTo(ancestor *Panel) bool {
	return ancestor != nil && ancestor.scope.pinned.Contains(p)
}

// PinToRoot pins p to the root registry so it receives every routed event.
func (a *App) PinToRoot(p *Panel) { a.root.pin(p) }

// UnpinFromRoot removes p from the root registry's pinned set.
func (a *App) UnpinFromRoot(p *Panel) { a.root.unpin(p) }

// PinnedToRoot reports whether p is pinned to the root registry.
func (a *App) PinnedToRoot(p *Panel) bool { return a.root.pinned.Contains(p) }

func (s *scope) pin(p *Panel) {
	if p.disposed {
		panic("trellis: pin of disposed panel")
	}
	if s.pinned.Contains(p) {
		return
	}
	if s.pinned.Walking() {
		s.app.queue.post(message{kind: msgFunc, fn: func() {
			if !p.disposed {
				s.pin(p)
			}
		}})
		return
	}
	s.pinned.Insert(p)
	s.markDiffDirty()
}

func (s *scope) unpin(p *Panel) {
	if !s.pinned.Contains(p) {
		return
	}
	if s.pinned.Walking() {
		s.app.queue.post(message{kind: msgFunc, fn: func() { s.unpin(p) }})
		return
	}
	s.pinned.Erase(p)
	s.markDiffDirty()
}
