package trellis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPanelDefaults(t *testing.T) {
	a := newTestApp(t)
	p := a.NewPanel("p", Rect{X: 1, Y: 2, Width: 3, Height: 4})

	assert.True(t, p.Visible())
	assert.True(t, p.Enabled())
	assert.False(t, p.Finished())
	assert.Equal(t, CategoryAll, p.Reactable)
	assert.Equal(t, EventCategory(0), p.Transparent)
	assert.Equal(t, Rect{1, 2, 3, 4}, p.RelativeRect())
	assert.Equal(t, Rect{1, 2, 3, 4}, p.AbsoluteRect())
	assert.Same(t, a, p.App())
}

func TestFinishRunsOnce(t *testing.T) {
	a := newTestApp(t)
	p := a.NewPanel("p", Rect{})
	calls := 0
	p.OnFinish = func(*Panel) { calls++ }
	p.Finish()
	p.Finish()
	assert.Equal(t, 1, calls)
	assert.True(t, p.Finished())
}

func TestAddChildPreservesAbsolutePosition(t *testing.T) {
	a := newTestApp(t)
	parent := rootPanel(a, "parent", Rect{X: 100, Y: 100, Width: 200, Height: 200})
	child := a.NewPanel("child", Rect{X: 150, Y: 160, Width: 10, Height: 10})

	var notified bool
	child.OnMove = func(*Panel, Vec2) { notified = true }
	child.OnSize = func(*Panel, Vec2) { notified = true }

	parent.AddChild(child)
	assert.Equal(t, Rect{X: 50, Y: 60, Width: 10, Height: 10}, child.RelativeRect())
	assert.Equal(t, Rect{X: 150, Y: 160, Width: 10, Height: 10}, child.AbsoluteRect())
	assert.False(t, notified, "reparenting must not notify")
	assert.Same(t, parent, child.Parent())

	other := rootPanel(a, "other", Rect{X: 10, Y: 20, Width: 300, Height: 300})
	other.AddChild(child)
	assert.Equal(t, Rect{X: 140, Y: 140, Width: 10, Height: 10}, child.RelativeRect())
	assert.Equal(t, Rect{X: 150, Y: 160, Width: 10, Height: 10}, child.AbsoluteRect())
	assert.Empty(t, parent.Children())
	assert.Equal(t, []string{"child"}, names(other.Children()))

	child.RemoveFromParent()
	assert.Nil(t, child.Parent())
	assert.Equal(t, Rect{X: 150, Y: 160, Width: 10, Height: 10}, child.RelativeRect())
}

func TestAddChildPanics(t *testing.T) {
	a := newTestApp(t)
	parent := a.NewPanel("parent", Rect{})
	child := a.NewPanel("child", Rect{})
	parent.AddChild(child)
	grandchild := a.NewPanel("grandchild", Rect{})
	child.AddChild(grandchild)

	tests := []struct {
		name string
		fn   func()
	}{
		{"nil child", func() { parent.AddChild(nil) }},
		{"self", func() { parent.AddChild(parent) }},
		{"ancestor", func() { grandchild.AddChild(parent) }},
		{"other app", func() { parent.AddChild(newTestApp(t).NewPanel("x", Rect{})) }},
		{"remove non-child", func() { parent.RemoveChild(grandchild) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, tt.fn)
		})
	}
}

func TestAddChildUnregistersRoot(t *testing.T) {
	a := newTestApp(t)
	r1 := rootPanel(a, "r1", Rect{Width: 10, Height: 10})
	r2 := rootPanel(a, "r2", Rect{Width: 10, Height: 10})
	assert.Equal(t, []string{"r1", "r2"}, names(a.Roots()))

	r1.AddChild(r2)
	assert.Equal(t, []string{"r1"}, names(a.Roots()))
	assert.Equal(t, []string{"r1"}, names(a.DrawRoots()))
	assert.Equal(t, []string{"r1", "r2"}, names(a.DrawList()))
}

func TestIsAncestorOf(t *testing.T) {
	a := newTestApp(t)
	root := a.NewPanel("root", Rect{})
	mid := a.NewPanel("mid", Rect{})
	leaf := a.NewPanel("leaf", Rect{})
	root.AddChild(mid)
	mid.AddChild(leaf)

	assert.True(t, root.IsAncestorOf(leaf))
	assert.True(t, mid.IsAncestorOf(leaf))
	assert.False(t, leaf.IsAncestorOf(root))
	assert.False(t, leaf.IsAncestorOf(leaf))
	assert.False(t, root.IsAncestorOf(nil))
}

func TestEffectiveVisibility(t *testing.T) {
	tests := []struct {
		public, private bool
		want            bool
	}{
		{true, true, true},
		{false, true, false},
		{true, false, false},
		{false, false, false},
	}
	a := newTestApp(t)
	for _, tt := range tests {
		p := a.NewPanel("p", Rect{})
		p.SetVisible(tt.public)
		p.SetPrivateVisible(tt.private)
		p.SetEnabled(tt.public)
		p.SetPrivateEnabled(tt.private)
		assert.Equal(t, tt.want, p.Visible(), "visible(%v, %v)", tt.public, tt.private)
		assert.Equal(t, tt.want, p.Enabled(), "enabled(%v, %v)", tt.public, tt.private)
	}
}

func TestDrawListSkipsHiddenSubtrees(t *testing.T) {
	a := newTestApp(t)
	root := rootPanel(a, "root", Rect{Width: 100, Height: 100})
	shown := panel(root, "shown", Rect{Width: 10, Height: 10})
	hidden := panel(root, "hidden", Rect{Width: 10, Height: 10})
	panel(hidden, "inner", Rect{Width: 5, Height: 5})
	panel(shown, "leaf", Rect{Width: 5, Height: 5})
	unfinished := a.NewPanel("unfinished", Rect{})
	root.AddChild(unfinished)

	hidden.SetPrivateVisible(false)
	assert.Equal(t, []string{"root", "shown", "leaf"}, names(a.DrawList()))
}

func TestPriorityOrdering(t *testing.T) {
	a := newTestApp(t)
	root := a.NewPanel("root", Rect{})
	pa := panel(root, "a", Rect{})
	pb := panel(root, "b", Rect{})
	pc := panel(root, "c", Rect{})

	// Equal priorities fall back to creation order.
	assert.Equal(t, []string{"a", "b", "c"}, names(root.Children()))

	pa.SetEventPriority(3)
	pb.SetEventPriority(1)
	pc.SetEventPriority(2)
	assert.Equal(t, []string{"b", "c", "a"}, names(root.Children()))

	pa.SetDrawPriority(-1)
	pc.SetDrawPriority(5)
	assert.Equal(t, []string{"a", "b", "c"}, names(root.DrawChildren()))

	pc.SetDrawPriority(-2)
	assert.Equal(t, []string{"c", "a", "b"}, names(root.DrawChildren()))
}

func TestMoveToTopmost(t *testing.T) {
	a := newTestApp(t)
	root := a.NewPanel("root", Rect{})
	pa := panel(root, "a", Rect{})
	pb := panel(root, "b", Rect{})
	pc := panel(root, "c", Rect{})

	pc.MoveToTopmost()
	assert.Equal(t, "c", root.Children()[0].Name, "topmost is delivered first")
	assert.Equal(t, "c", root.DrawChildren()[2].Name, "topmost is drawn last")

	pa.MoveToTopmost()
	assert.Equal(t, []string{"a", "c", "b"}, names(root.Children()))
	assert.Equal(t, []string{"b", "c", "a"}, names(root.DrawChildren()))
	assert.Less(t, pa.EventPriority(), pc.EventPriority())
	assert.Greater(t, pa.DrawPriority(), pc.DrawPriority())

	// Lowering a priority below the running minimum keeps topmost ahead.
	pb.SetEventPriority(-10)
	pb.SetDrawPriority(10)
	pa.MoveToTopmost()
	assert.Equal(t, "a", root.Children()[0].Name)
	assert.Equal(t, "a", root.DrawChildren()[2].Name)
}

func TestMoveToTopmostAmongRoots(t *testing.T) {
	a := newTestApp(t)
	r1 := rootPanel(a, "r1", Rect{})
	rootPanel(a, "r2", Rect{})
	r1.MoveToTopmost()
	assert.Equal(t, []string{"r1", "r2"}, names(a.Roots()))
	assert.Equal(t, []string{"r2", "r1"}, names(a.DrawRoots()))
}

func TestDisposeExpiresWeakReferences(t *testing.T) {
	a := newTestApp(t)
	root := rootPanel(a, "root", Rect{Width: 100, Height: 100})
	child := panel(root, "child", Rect{Width: 50, Height: 50})
	grandchild := panel(child, "grandchild", Rect{Width: 10, Height: 10})

	grandchild.Pin(root)
	a.PinToRoot(child)
	a.SetFocus(FocusKeyboard, grandchild)
	moveTo(a, 5, 5)
	require.Equal(t, []string{"child"}, names(root.scope.hit.Live()))

	var disposed []string
	child.OnDispose = func(p *Panel) { disposed = append(disposed, p.Name) }
	grandchild.OnDispose = func(p *Panel) { disposed = append(disposed, p.Name) }

	child.Dispose()
	assert.Equal(t, []string{"child", "grandchild"}, disposed)
	assert.True(t, grandchild.IsDisposed())
	assert.Nil(t, a.Focused(FocusKeyboard))
	assert.False(t, a.PinnedToRoot(child))
	assert.False(t, grandchild.PinnedTo(root))
	assert.Empty(t, root.scope.hit.Live())
	assert.Empty(t, root.Children())
	assert.Equal(t, []string{"root"}, names(a.DrawList()))

	// Disposing twice is a no-op.
	assert.NotPanics(t, child.Dispose)
}

func TestDisposeRegisteredRootPanics(t *testing.T) {
	a := newTestApp(t)
	r := rootPanel(a, "r", Rect{})
	assert.Panics(t, r.Dispose)

	a.UnregisterRoot(r)
	assert.NotPanics(t, r.Dispose)
	assert.Empty(t, a.Roots())
}

type clickCounter struct{ n int }

func (c *clickCounter) PointerButton(*Event) { c.n++ }

type keySink struct{}

func (keySink) Key(*Event) {}

func TestCapability(t *testing.T) {
	a := newTestApp(t)
	p := a.NewPanel("p", Rect{})
	cc := &clickCounter{}
	p.AddBehavior(cc)
	p.AddBehavior(cc) // duplicate ignored
	p.AddBehavior(keySink{})

	got, ok := Capability[ButtonHandler](p)
	require.True(t, ok)
	assert.Same(t, cc, got)

	_, ok = Capability[KeyHandler](p)
	assert.True(t, ok)
	_, ok = Capability[FocusHandler](p)
	assert.False(t, ok)

	p.RemoveBehavior(cc)
	_, ok = Capability[ButtonHandler](p)
	assert.False(t, ok)
}

func TestDebugDisposedPanics(t *testing.T) {
	a := newTestApp(t)
	a.SetDebugMode(true)
	parent := a.NewPanel("parent", Rect{})
	child := a.NewPanel("child", Rect{})
	child.Dispose()

	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic on AddChild with disposed panel")
		assert.Contains(t, r, "disposed")
	}()
	parent.AddChild(child)
}

func TestReprioritizedStaleRootKeepsOrder(t *testing.T) {
	a := newTestApp(t)
	ra := rootPanel(a, "A", Rect{})
	host := panel(ra, "host", Rect{})
	x := a.NewPanel("X", Rect{})
	x.SetEventPriority(5)
	x.FinishAsRoot()
	b := a.NewPanel("B", Rect{})
	b.SetEventPriority(10)
	b.FinishAsRoot()
	require.Equal(t, []string{"A", "X", "B"}, names(a.Roots()))

	// Reparenting during a walk leaves X behind in the root set until the next turn.
	a.root.children.Each(func(*Panel) bool {
		host.AddChild(x)
		return false
	})
	x.SetEventPriority(100)

	y := a.NewPanel("Y", Rect{})
	y.SetEventPriority(20)
	y.FinishAsRoot()
	assert.Equal(t, []string{"A", "B", "Y"}, names(a.Roots()))
	assert.Equal(t, 3, a.root.children.Len())

	b.SetEventPriority(30)
	assert.Equal(t, []string{"A", "Y", "B"}, names(a.Roots()))

	a.Pump()
	assert.Equal(t, []string{"X"}, names(host.Children()))
	a.UnregisterRoot(y)
	assert.Equal(t, []string{"A", "B"}, names(a.Roots()))
}
