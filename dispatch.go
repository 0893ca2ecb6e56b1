package trellis

import (
	"log/slog"
	"slices"
)

// --- Entry points ---

// DispatchMove delivers a pointer move. If another input event is being
// dispatched, the move is queued for the next loop turn instead.
func (a *App) DispatchMove(e MoveEvent) {
	if a.deferInput(e) {
		return
	}
	defer a.endDispatch()
	a.dispatchMove(e)
}

// DispatchButton delivers a button transition. A button at a point other than
// the last cursor position first refreshes the hit sets with a move.
func (a *App) DispatchButton(e ButtonEvent) {
	if a.deferInput(e) {
		return
	}
	defer a.endDispatch()
	a.syncCursor(e.Point, e.Modifiers)
	switch {
	case e.Transition.Down():
		a.buttons |= e.Transition.Button()
	case e.Transition.Up():
		a.buttons &^= e.Transition.Button()
	}
	ev := Event{
		Type:       EventPointerButton,
		Point:      e.Point,
		Transition: e.Transition,
		Buttons:    a.buttons,
		Modifiers:  e.Modifiers,
	}
	a.dispatchDiscrete(&ev, FocusPointer)
}

// DispatchWheel delivers a wheel rotation.
func (a *App) DispatchWheel(e WheelEvent) {
	if a.deferInput(e) {
		return
	}
	defer a.endDispatch()
	a.syncCursor(e.Point, e.Modifiers)
	ev := Event{
		Type:      EventPointerWheel,
		Point:     e.Point,
		Notches:   e.Notches,
		Buttons:   e.Buttons,
		Modifiers: e.Modifiers,
	}
	a.dispatchDiscrete(&ev, FocusPointer)
}

// DispatchKey delivers a key transition.
func (a *App) DispatchKey(e KeyEvent) {
	if a.deferInput(e) {
		return
	}
	defer a.endDispatch()
	ev := Event{
		Type:      EventKey,
		Point:     a.cursor,
		Key:       e.Key,
		Pressed:   e.Pressed,
		Modifiers: e.Modifiers,
	}
	a.dispatchDiscrete(&ev, FocusKeyboard)
}

// Dispatching reports whether an input event is being dispatched.
func (a *App) Dispatching() bool { return a.dispatching }

// Cursor returns the last pointer position seen by the dispatcher.
func (a *App) Cursor() Vec2 { return a.cursor }

// deferInput enforces that a single input event is dispatched at a time.
// It returns true if e was queued instead of dispatched.
func (a *App) deferInput(e any) bool {
	if a.dispatching {
		if a.debug {
			a.log.Debug("input deferred to next loop turn", slog.Any("event", e))
		}
		a.queue.post(message{kind: msgInput, input: e})
		return true
	}
	a.dispatching = true
	a.root.recomputeDiff()
	return false
}

func (a *App) endDispatch() { a.dispatching = false }

func (a *App) syncCursor(pt Vec2, mods KeyModifiers) {
	if pt == a.cursor {
		return
	}
	a.dispatchMove(MoveEvent{Point: pt, Prev: a.cursor, Buttons: a.buttons, Modifiers: mods})
}

// --- Pointer move ---

func (a *App) dispatchMove(e MoveEvent) {
	a.cursor = e.Point
	a.buttons = e.Buttons
	ev := Event{
		Type:      EventPointerMove,
		Point:     e.Point,
		Prev:      e.Prev,
		Buttons:   e.Buttons,
		Modifiers: e.Modifiers,
	}
	a.root.move(&ev)
}

// move runs a full pointer-move cycle for this scope: hit set refresh,
// enter/leave transitions, delivery to the hit set, then to the diff-pinned set.
func (s *scope) move(ev *Event) {
	s.updateHit(ev)
	s.hit.Each(func(p *Panel) bool {
		s.app.deliver(p, ev, false)
		return true
	})
	s.diff().Each(func(p *Panel) bool {
		s.app.deliver(p, ev, true)
		return true
	})
}

// collectHits returns the hit candidates under pt in event order. Collection
// stops at the first panel that is opaque to pointer motion, or after the
// first candidate when the scope forces single enter/leave.
func (s *scope) collectHits(pt Vec2) []*Panel {
	var out []*Panel
	single := s.forceSingle()
	s.children.Each(func(p *Panel) bool {
		if !s.holds(p) || !hitCandidate(p) || !p.Hit(pt) {
			return true
		}
		out = append(out, p)
		if single {
			return false
		}
		return p.TransparentTo(CategoryMouseMove)
	})
	return out
}

func (s *scope) updateHit(ev *Event) {
	if s.hit.Walking() {
		return
	}
	fresh := s.collectHits(ev.Point)
	old := s.hit.Live()
	if slices.Equal(fresh, old) {
		return
	}

	s.hit.Clear()
	for _, p := range fresh {
		s.hit.Insert(p)
	}
	s.markDiffDirty()

	if s.forceSingle() {
		var oldTop, newTop *Panel
		if len(old) > 0 {
			oldTop = old[0]
		}
		if len(fresh) > 0 {
			newTop = fresh[0]
		}
		if oldTop != newTop {
			if oldTop != nil {
				s.app.leave(oldTop, ev)
			}
			if newTop != nil {
				s.app.enter(newTop, ev)
			}
		}
		return
	}

	for _, p := range old {
		if slices.Contains(fresh, p) {
			continue
		}
		s.app.leave(p, ev)
		if !p.TransparentTo(CategoryMouseLeave) {
			break
		}
	}
	for _, p := range fresh {
		if slices.Contains(old, p) {
			continue
		}
		s.app.enter(p, ev)
		if !p.TransparentTo(CategoryMouseEnter) {
			break
		}
	}
}

func (a *App) enter(p *Panel, src *Event) {
	ev := *src
	ev.Type = EventPointerEnter
	a.invoke(p, &ev)
}

// leave delivers EventPointerLeave to p after clearing its own hovered subtree.
func (a *App) leave(p *Panel, src *Event) {
	if p.disposed {
		return
	}
	p.scope.clearHover(src)
	ev := *src
	ev.Type = EventPointerLeave
	a.invoke(p, &ev)
}

// clearHover sends leave to everything this scope currently considers hit.
func (s *scope) clearHover(src *Event) {
	if s.hit.Walking() || s.hit.Len() == 0 {
		return
	}
	old := s.hit.Live()
	s.hit.Clear()
	s.markDiffDirty()
	for _, p := range old {
		s.app.leave(p, src)
	}
}

// --- Button, wheel, key ---

// dispatchDiscrete delivers a non-motion event. With a usable focus holder for
// cat, every panel pinned to the root receives it first and then the holder
// alone, without routing into the holder's children. Otherwise diff-pinned
// panels come first and the hit set follows; pinned panels that are hit get
// the event once, through the hit set.
func (a *App) dispatchDiscrete(ev *Event, cat FocusCategory) {
	f := a.Focused(cat)
	if f == nil || !f.live() {
		a.root.routePinned(ev)
		a.root.routeHit(ev)
		return
	}
	a.root.pinned.Each(func(p *Panel) bool {
		if p != f {
			a.deliver(p, ev, true)
		}
		return true
	})
	// A pinned handler may have hidden or disposed the holder.
	if f.live() {
		fe := *ev
		a.invoke(f, &fe)
	}
}

func (s *scope) routePinned(ev *Event) {
	s.diff().Each(func(p *Panel) bool {
		s.app.deliver(p, ev, true)
		return true
	})
}

func (s *scope) routeHit(ev *Event) {
	cat := ev.Type.Category()
	s.hit.Each(func(p *Panel) bool {
		s.app.deliver(p, ev, false)
		return p.TransparentTo(cat)
	})
}

// --- Delivery ---

// deliver hands ev to p, then routes it into p's own children.
func (a *App) deliver(p *Panel, src *Event, pinned bool) {
	if !p.live() {
		return
	}
	ev := *src
	ev.Pinned = pinned
	a.invoke(p, &ev)
	if p.disposed {
		return
	}
	switch src.Type {
	case EventPointerMove:
		p.scope.move(src)
	case EventPointerButton, EventPointerWheel, EventKey:
		p.scope.routePinned(src)
		p.scope.routeHit(src)
	}
}

// invoke runs hooks, the callback field, and behaviors of p for ev.
func (a *App) invoke(p *Panel, ev *Event) {
	if p.disposed || !p.Reacts(ev.Type.Category()) {
		return
	}
	ev.Panel = p
	ev.EntityID = p.EntityID
	ev.UserData = p.UserData
	ev.Local = p.AbsoluteToSelf(ev.Point)

	proceed := a.hooks.runBefore(ev)
	if !p.hooks.runBefore(ev) {
		proceed = false
	}
	if proceed {
		if fn := p.callback(ev.Type); fn != nil {
			fn(ev)
		}
		p.runBehaviors(ev)
	}
	p.hooks.runAfter(ev)
	a.hooks.runAfter(ev)

	if a.store != nil && ev.EntityID != 0 {
		a.store.EmitEvent(ev.interaction())
	}
}
