package trellis

import (
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/phanxgames/trellis/pset"
)

var (
	// ErrQuit is returned by Step once Quit has been processed.
	ErrQuit = errors.New("trellis: quit")
	// ErrNotInitialized is returned when an App method needs a collaborator
	// that was never provided.
	ErrNotInitialized = errors.New("trellis: not initialized")
)

// RootRole selects which root registry sets a parentless panel joins.
type RootRole uint8

const (
	RootDraw RootRole = 1 << iota // drawn by the renderer
	RootUI                        // takes part in input dispatch
	RootBoth = RootDraw | RootUI
)

// App is the application context. It owns the root registry, focus state, the
// animation counter, and the loop's message queue. Everything except Post,
// TriggerCallback, and the registration of thread callbacks must be called on
// the UI thread.
type App struct {
	cfg   Config
	log   *slog.Logger
	debug bool

	arena pset.Arena[*Panel]
	root  scope
	hooks hookRegistry
	store EventStore

	focused        [FocusCategoryCount]pset.Ref
	animationCount uint32
	animations     []*Animation
	tweens         []*Tween

	dispatching bool
	cursor      Vec2
	buttons     ButtonMask

	queue     queue
	cbMu      sync.RWMutex
	callbacks map[uint64]func(payload any)

	windowPanel pset.Ref
	theme       string
	locale      string

	renderer Renderer
	dirty    bool
	quit     bool
	lastStep time.Time
	now      func() time.Time

	injectQueue []syntheticInput
	testRunner  *TestRunner
	nextID      uint64
}

// NewApp creates an application context from cfg.
func NewApp(cfg Config) *App {
	cfg = cfg.withDefaults()
	a := &App{
		cfg:       cfg,
		log:       cfg.Logger,
		debug:     cfg.Debug,
		callbacks: make(map[uint64]func(any)),
		theme:     cfg.Theme,
		locale:    cfg.Locale,
		now:       time.Now,
		dirty:     true,
	}
	a.queue.init()
	a.root.init(a, nil)
	return a
}

// Config returns the configuration the App was created with.
func (a *App) Config() Config { return a.cfg }

// Logger returns the App's logger.
func (a *App) Logger() *slog.Logger { return a.log }

// SetDebugMode enables or disables debug mode. When enabled, disposed-panel
// use panics, tree depth and child count warnings are logged, and focus,
// deferral, and loop mode changes are logged at debug level.
func (a *App) SetDebugMode(enabled bool) { a.debug = enabled }

// SetEventStore sets the optional ECS bridge.
func (a *App) SetEventStore(store EventStore) { a.store = store }

// Theme returns the current theme name.
func (a *App) Theme() string { return a.theme }

// Locale returns the current locale.
func (a *App) Locale() string { return a.locale }

// --- Root registry ---

// RegisterRoot registers a parentless panel for both drawing and input.
func (a *App) RegisterRoot(p *Panel) { a.RegisterRootAs(p, RootBoth) }

// RegisterRootAs registers a parentless panel for the given roles.
// Registering an already registered role is a no-op.
// Panics if p has a parent or belongs to another App.
func (a *App) RegisterRootAs(p *Panel, role RootRole) {
	if p.app != a {
		panic("trellis: panel belongs to a different App")
	}
	if p.parent != nil {
		panic("trellis: only parentless panels can be registered as roots")
	}
	if a.debug {
		debugCheckDisposed(p, "RegisterRoot")
	}
	if role&RootUI != 0 && !p.rootUI {
		p.rootUI = true
		a.root.insertUI(p)
	}
	if role&RootDraw != 0 && !p.rootDraw {
		p.rootDraw = true
		a.root.insertDraw(p)
	}
	a.Invalidate()
}

// UnregisterRoot removes p from every root registry set. No-op for panels
// that are not registered.
func (a *App) UnregisterRoot(p *Panel) {
	if !p.rootUI && !p.rootDraw {
		return
	}
	wasUI := p.rootUI
	p.rootUI = false
	p.rootDraw = false
	switch {
	case a.root.children.Walking() || a.root.draw.Walking():
		a.root.stale++
		a.queue.post(message{kind: msgFunc, fn: func() { a.root.eraseStale(p) }})
	default:
		a.root.children.Erase(p)
		a.root.draw.Erase(drawOrder{p})
	}
	if wasUI && a.root.hit.Contains(p) && !a.root.hit.Walking() {
		a.root.hit.Erase(p)
		a.root.markDiffDirty()
	}
	a.Invalidate()
}

// Roots returns the UI roots in event order.
func (a *App) Roots() []*Panel {
	out := make([]*Panel, 0, a.root.children.Len())
	for _, p := range a.root.children.Items() {
		if p.rootUI {
			out = append(out, p)
		}
	}
	return out
}

// DrawRoots returns the draw roots in draw order.
func (a *App) DrawRoots() []*Panel { return a.root.drawItems() }

// DrawList returns every effectively visible, finished panel in painter order:
// roots by draw priority, each followed by its subtree.
func (a *App) DrawList() []*Panel {
	var out []*Panel
	var walk func(p *Panel)
	walk = func(p *Panel) {
		if !p.finished || p.disposed || !p.Visible() {
			return
		}
		out = append(out, p)
		for _, c := range p.scope.drawItems() {
			walk(c)
		}
	}
	for _, p := range a.root.drawItems() {
		if p.rootDraw {
			walk(p)
		}
	}
	return out
}

// Hovered returns the panels the pointer is currently over at the top level.
func (a *App) Hovered() []*Panel { return a.root.hit.Live() }

// HoveredTree returns every panel the pointer is over at any depth, each
// panel before its own hovered children.
func (a *App) HoveredTree() []*Panel {
	var out []*Panel
	var walk func(s *scope)
	walk = func(s *scope) {
		for _, p := range s.hit.Live() {
			out = append(out, p)
			walk(&p.scope)
		}
	}
	walk(&a.root)
	return out
}

// SetWindowPanel names the panel that tracks the client area. Window resize
// notifications are forwarded to it.
func (a *App) SetWindowPanel(p *Panel) {
	if p == nil {
		a.windowPanel = pset.Ref{}
		return
	}
	a.windowPanel = p.ref
}

// WindowPanel returns the panel set by SetWindowPanel, or nil.
func (a *App) WindowPanel() *Panel {
	p, _ := a.arena.Get(a.windowPanel)
	return p
}

// --- App-level hooks ---

// OnBefore registers a hook that runs before any panel handles events of type t.
func (a *App) OnBefore(t EventType, fn Hook) CallbackHandle {
	return a.hooks.addBefore(t, fn)
}

// OnAfter registers a handler that runs after any panel handled events of type t.
func (a *App) OnAfter(t EventType, fn Handler) CallbackHandle {
	return a.hooks.addAfter(t, fn)
}

// --- Rendering state ---

// Invalidate requests a frame on the next loop iteration.
func (a *App) Invalidate() { a.dirty = true }

// NeedsRender reports whether a frame should be produced.
func (a *App) NeedsRender() bool { return a.dirty || a.animationCount > 0 }

// Rendered clears the pending-frame flag. Hosts that render themselves call it
// after producing a frame.
func (a *App) Rendered() { a.dirty = false }

// broadcast visits every registered root and its subtree in event order.
// The tree may change under the visitor, so each level is snapshotted.
func (a *App) broadcast(visit func(p *Panel)) {
	var walk func(p *Panel)
	walk = func(p *Panel) {
		if p.disposed {
			return
		}
		visit(p)
		for _, c := range slices.Clone(p.scope.children.Items()) {
			if c.parent == p {
				walk(c)
			}
		}
	}
	seen := make(map[*Panel]bool)
	for _, p := range slices.Clone(a.root.children.Items()) {
		if a.root.holds(p) {
			seen[p] = true
			walk(p)
		}
	}
	for _, p := range a.root.drawItems() {
		if !seen[p] {
			walk(p)
		}
	}
}
