package trellis

import (
	"slices"

	"github.com/phanxgames/trellis/pset"
)

// Panel is the fundamental tree element. A single flat struct is used for all
// panels; concrete widgets compose behavior through callback fields and
// behaviors instead of embedding.
type Panel struct {
	// Identity
	Name string
	app  *App
	ref  pset.Ref
	id   uint64

	// Hierarchy
	parent *Panel
	scope  scope

	// Ordering
	eventPriority int
	drawPriority  int

	// Geometry
	relRect Rect
	absRect Rect
	minSize *Vec2
	maxSize *Vec2

	// Visibility. The effective state of each pair is the AND of both flags.
	visible        bool
	privateVisible bool
	enabled        bool
	privateEnabled bool

	// Reactable selects the categories this panel participates in at all.
	// Transparent selects the categories for which delivery continues to the
	// next lower-priority sibling after this panel has handled the event.
	Reactable   EventCategory
	Transparent EventCategory

	// ForceSingleEnterLeave restricts this panel's children to a single hit
	// candidate at a time.
	ForceSingleEnterLeave bool
	// ForceGlobalExclusiveFocusing asks unrelated input handling (window drag
	// detection, for instance) not to contest this panel while it holds focus.
	ForceGlobalExclusiveFocusing bool

	// Hit testing. HitTest overrides everything; otherwise HitShape is tested
	// in self coordinates; otherwise the absolute rect is used.
	HitTest  func(p *Panel, abs Vec2) bool
	HitShape HitShape

	// Metadata
	UserData any
	EntityID uint32

	// Per-panel callbacks (nil by default).
	OnPointerEnter  func(*Event)
	OnPointerMove   func(*Event)
	OnPointerLeave  func(*Event)
	OnPointerButton func(*Event)
	OnPointerWheel  func(*Event)
	OnKey           func(*Event)
	OnFocusGet      func(*Event)
	OnFocusLose     func(*Event)

	// Geometry and lifecycle notifications.
	OnSize         func(p *Panel, old Vec2)
	OnParentSize   func(p *Panel, parentSize Vec2)
	OnMove         func(p *Panel, delta Vec2)
	OnThemeChange  func(p *Panel, theme string)
	OnLocaleChange func(p *Panel, locale string)
	OnFinish       func(p *Panel)
	OnDispose      func(p *Panel)

	behaviors []any
	hooks     hookRegistry

	rootDraw bool
	rootUI   bool
	finished bool
	disposed bool
}

// drawOrder views a panel through its draw priority.
type drawOrder struct{ p *Panel }

func (d drawOrder) Priority() int    { return d.p.drawPriority }
func (d drawOrder) Identity() uint64 { return d.p.id }

// NewPanel creates a panel at rect. The rect is relative to the panel's
// future parent, or absolute while the panel has no parent. The panel is not
// reachable from dispatch or drawing until Finish is called.
func (a *App) NewPanel(name string, rect Rect) *Panel {
	a.nextID++
	p := &Panel{
		Name:           name,
		app:            a,
		id:             a.nextID,
		relRect:        rect,
		absRect:        rect,
		visible:        true,
		privateVisible: true,
		enabled:        true,
		privateEnabled: true,
		Reactable:      CategoryAll,
	}
	p.ref = a.arena.Alloc(p)
	p.scope.init(a, p)
	return p
}

// Finish completes construction. Setup that depends on the panel being fully
// built (OnFinish, self-registration) runs here. Calling Finish twice is a no-op.
func (p *Panel) Finish() *Panel {
	if p.finished {
		return p
	}
	if p.app.debug {
		debugCheckDisposed(p, "Finish")
	}
	p.finished = true
	if p.OnFinish != nil {
		p.OnFinish(p)
	}
	p.app.Invalidate()
	return p
}

// FinishAsRoot finishes the panel and registers it with the root registry for
// both drawing and input.
func (p *Panel) FinishAsRoot() *Panel {
	p.Finish()
	p.app.RegisterRoot(p)
	return p
}

// Finished reports whether Finish has run.
func (p *Panel) Finished() bool { return p.finished }

// App returns the application context the panel belongs to.
func (p *Panel) App() *App { return p.app }

// Priority returns the event priority. It makes *Panel a pset.Item.
func (p *Panel) Priority() int { return p.eventPriority }

// Identity returns the panel's unique, stable identity.
func (p *Panel) Identity() uint64 { return p.id }

// Ref returns the panel's weak handle.
func (p *Panel) Ref() pset.Ref { return p.ref }

// Parent returns the parent panel, or nil.
func (p *Panel) Parent() *Panel { return p.parent }

// --- Flags ---

// Visible reports the effective visibility: public and private flags both set.
func (p *Panel) Visible() bool { return p.visible && p.privateVisible }

// Enabled reports the effective enabled state.
func (p *Panel) Enabled() bool { return p.enabled && p.privateEnabled }

// SetVisible sets the caller-controlled visibility flag.
func (p *Panel) SetVisible(v bool) {
	if p.visible == v {
		return
	}
	p.visible = v
	p.app.Invalidate()
}

// SetPrivateVisible sets the owner-controlled visibility flag.
func (p *Panel) SetPrivateVisible(v bool) {
	if p.privateVisible == v {
		return
	}
	p.privateVisible = v
	p.app.Invalidate()
}

// SetEnabled sets the caller-controlled enabled flag.
func (p *Panel) SetEnabled(v bool) { p.enabled = v }

// SetPrivateEnabled sets the owner-controlled enabled flag.
func (p *Panel) SetPrivateEnabled(v bool) { p.privateEnabled = v }

// Reacts reports whether the panel participates in the given category.
func (p *Panel) Reacts(c EventCategory) bool { return p.Reactable&c != 0 }

// TransparentTo reports whether delivery continues past this panel for c.
func (p *Panel) TransparentTo(c EventCategory) bool { return p.Transparent&c != 0 }

// live reports whether the panel can take part in dispatch.
func (p *Panel) live() bool {
	return p.finished && !p.disposed && p.Visible() && p.Enabled()
}

// --- Tree manipulation ---

// AddChild attaches child to this panel. If child already has a parent, or is
// registered as a root, it is detached first. The child keeps its absolute
// position; its relative rect is rewritten accordingly and no size or move
// notification fires. Adding a child that is already attached here is a no-op.
// Panics if child is nil, belongs to another App, or is an ancestor of p.
func (p *Panel) AddChild(child *Panel) {
	if child == nil {
		panic("trellis: cannot add nil child")
	}
	if p.app.debug {
		debugCheckDisposed(p, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if child.app != p.app {
		panic("trellis: child belongs to a different App")
	}
	if child.parent == p {
		return
	}
	if isAncestor(child, p) {
		panic("trellis: adding child would create a cycle")
	}
	abs := child.absRect
	switch {
	case child.parent != nil:
		child.parent.detach(child)
	case child.rootDraw || child.rootUI:
		p.app.UnregisterRoot(child)
	}
	child.parent = p
	child.relRect = abs.Offset(Vec2{}.Sub(p.absRect.Pos()))
	child.absRect = abs
	p.scope.insert(child)
	p.app.Invalidate()
	if p.app.debug {
		debugCheckTreeDepth(p.app, child)
		debugCheckChildCount(p.app, p)
	}
}

// RemoveChild detaches child from this panel. The child keeps its absolute
// position and stays alive; dispose it if it is no longer needed.
// Panics if child's parent is not p.
func (p *Panel) RemoveChild(child *Panel) {
	if child.parent != p {
		panic("trellis: child's parent is not this panel")
	}
	p.detach(child)
	p.app.Invalidate()
}

// RemoveFromParent detaches this panel from its parent.
// No-op if this panel has no parent.
func (p *Panel) RemoveFromParent() {
	if p.parent == nil {
		return
	}
	p.parent.RemoveChild(p)
}

func (p *Panel) detach(child *Panel) {
	p.scope.remove(child)
	child.parent = nil
	child.relRect = child.absRect
}

// Children returns the children in event order.
func (p *Panel) Children() []*Panel { return p.scope.childItems() }

// DrawChildren returns the children in draw order.
func (p *Panel) DrawChildren() []*Panel { return p.scope.drawItems() }

// NumChildren returns the number of children.
func (p *Panel) NumChildren() int { return len(p.scope.childItems()) }

// IsAncestorOf reports whether p is a strict ancestor of other.
func (p *Panel) IsAncestorOf(other *Panel) bool {
	return other != nil && other.parent != nil && isAncestor(p, other.parent)
}

// registry returns the scope that holds p: its parent's, the root registry's,
// or nil for a detached panel.
func (p *Panel) registry() *scope {
	if p.parent != nil {
		return &p.parent.scope
	}
	if p.rootDraw || p.rootUI {
		return &p.app.root
	}
	return nil
}

// --- Priorities ---

// EventPriority returns the event-order priority. Lower values are delivered first.
func (p *Panel) EventPriority() int { return p.eventPriority }

// DrawPriority returns the draw-order priority. Higher values are drawn on top.
func (p *Panel) DrawPriority() int { return p.drawPriority }

// SetEventPriority moves the panel to a new event priority within its
// registry and pushes the registry's topmost bookkeeping along.
func (p *Panel) SetEventPriority(v int) {
	if p.eventPriority == v {
		return
	}
	sc := p.registry()
	if sc == nil || !p.inUIRegistry() {
		p.eventPriority = v
		return
	}
	sc.dropStale()
	sc.children.SetPriority(p, v, func(x int) { p.eventPriority = x })
	sc.topEvent = min(sc.topEvent, v)
	sc.markDiffDirty()
}

// SetDrawPriority moves the panel to a new draw priority within its registry.
func (p *Panel) SetDrawPriority(v int) {
	if p.drawPriority == v {
		return
	}
	sc := p.registry()
	if sc == nil || !p.inDrawRegistry() {
		p.drawPriority = v
		return
	}
	sc.dropStale()
	sc.draw.SetPriority(drawOrder{p}, v, func(x int) { p.drawPriority = x })
	sc.topDraw = max(sc.topDraw, v)
	p.app.Invalidate()
}

// MoveToTopmost draws the panel above and delivers events to it before all of
// its current siblings.
func (p *Panel) MoveToTopmost() {
	sc := p.registry()
	if sc == nil {
		return
	}
	p.SetDrawPriority(sc.topDraw + 1)
	p.SetEventPriority(sc.topEvent - 1)
}

func (p *Panel) inUIRegistry() bool   { return p.parent != nil || p.rootUI }
func (p *Panel) inDrawRegistry() bool { return p.parent != nil || p.rootDraw }

// --- Capabilities ---

// AddBehavior composes a capability into the panel. Behaviors are consulted in
// the order they were added, after the panel's own callback field. b must be
// comparable, usually a pointer.
func (p *Panel) AddBehavior(b any) {
	if b == nil || slices.Contains(p.behaviors, b) {
		return
	}
	p.behaviors = append(p.behaviors, b)
}

// RemoveBehavior drops a previously added behavior.
func (p *Panel) RemoveBehavior(b any) {
	p.behaviors = slices.DeleteFunc(p.behaviors, func(x any) bool { return x == b })
}

// Capability returns the first behavior of p implementing T.
func Capability[T any](p *Panel) (T, bool) {
	for _, b := range p.behaviors {
		if c, ok := b.(T); ok {
			return c, true
		}
	}
	var zero T
	return zero, false
}

// --- Disposal ---

// Dispose detaches the panel and releases it and its whole subtree. Every
// weak reference (hit, pin, focus) to a disposed panel expires.
// Panics if the panel is still registered with the root registry.
func (p *Panel) Dispose() {
	if p.disposed {
		return
	}
	if p.rootDraw || p.rootUI {
		panic("trellis: dispose of a registered root panel; unregister it first")
	}
	p.RemoveFromParent()
	p.dispose()
	p.app.Invalidate()
}

// IsDisposed returns true if this panel has been disposed.
func (p *Panel) IsDisposed() bool { return p.disposed }

func (p *Panel) dispose() {
	if p.OnDispose != nil {
		p.OnDispose(p)
	}
	p.disposed = true
	p.app.arena.Free(p.ref)
	for _, child := range p.scope.children.Items() {
		if child.parent != p {
			continue
		}
		child.parent = nil
		child.dispose()
	}
	p.scope.reset()
	p.parent = nil
	p.behaviors = nil
	p.hooks = hookRegistry{}
	p.HitTest = nil
	p.HitShape = nil
	p.UserData = nil
	p.OnPointerEnter = nil
	p.OnPointerMove = nil
	p.OnPointerLeave = nil
	p.OnPointerButton = nil
	p.OnPointerWheel = nil
	p.OnKey = nil
	p.OnFocusGet = nil
	p.OnFocusLose = nil
	p.OnSize = nil
	p.OnParentSize = nil
	p.OnMove = nil
	p.OnThemeChange = nil
	p.OnLocaleChange = nil
	p.OnFinish = nil
	p.OnDispose = nil
}

// --- Helpers ---

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Panel) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}
