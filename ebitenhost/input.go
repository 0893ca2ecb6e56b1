package ebitenhost

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/trellis"
)

// Double click detection thresholds.
const (
	doubleClickTime     = 500 * time.Millisecond
	doubleClickDistance = 4.0
)

// pointerState is the host's view of the mouse between ticks.
type pointerState struct {
	cursor  trellis.Vec2
	seen    bool
	buttons trellis.ButtonMask
	wheel   wheelAccumulator
	clicks  clickTracker
	drag    windowDrag
}

// buttonMap pairs ebiten buttons with trellis buttons, in dispatch order.
var buttonMap = [...]struct {
	eb ebiten.MouseButton
	tr trellis.ButtonMask
}{
	{ebiten.MouseButtonLeft, trellis.ButtonLeft},
	{ebiten.MouseButtonRight, trellis.ButtonRight},
	{ebiten.MouseButtonMiddle, trellis.ButtonMiddle},
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() trellis.KeyModifiers {
	var mods trellis.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= trellis.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= trellis.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= trellis.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= trellis.ModMeta
	}
	return mods
}

// pollPointer turns this tick's mouse state into move, button, and wheel
// events.
func (h *Host) pollPointer(mods trellis.KeyModifiers) {
	ps := &h.pointer

	mx, my := ebiten.CursorPosition()
	pt := trellis.Vec2{X: float64(mx), Y: float64(my)}

	if h.dragWindow(pt) {
		return
	}

	if !ps.seen || pt != ps.cursor {
		prev := ps.cursor
		if !ps.seen {
			prev = pt
		}
		ps.seen = true
		ps.cursor = pt
		h.app.DispatchMove(trellis.MoveEvent{Point: pt, Prev: prev, Buttons: ps.buttons, Modifiers: mods})
	}

	for _, b := range buttonMap {
		switch {
		case inpututil.IsMouseButtonJustPressed(b.eb):
			double := ps.clicks.press(b.tr, pt, time.Now())
			ps.buttons |= b.tr
			h.app.DispatchButton(trellis.ButtonEvent{Point: pt, Transition: transitionFor(b.tr, true, double), Modifiers: mods})
			if b.tr == trellis.ButtonLeft {
				h.beginWindowDrag(pt)
			}
		case inpututil.IsMouseButtonJustReleased(b.eb):
			ps.buttons &^= b.tr
			h.app.DispatchButton(trellis.ButtonEvent{Point: pt, Transition: transitionFor(b.tr, false, false), Modifiers: mods})
		}
	}

	_, dy := ebiten.Wheel()
	if n := ps.wheel.add(dy); n != 0 {
		h.app.DispatchWheel(trellis.WheelEvent{Point: pt, Notches: n, Buttons: ps.buttons, Modifiers: mods})
	}
}

// pollKeys dispatches key transitions in the order ebiten reports them.
func (h *Host) pollKeys(mods trellis.KeyModifiers) {
	h.keys = inpututil.AppendJustPressedKeys(h.keys[:0])
	for _, k := range h.keys {
		h.app.DispatchKey(trellis.KeyEvent{Key: int(k), Pressed: true, Modifiers: mods})
	}
	h.keys = inpututil.AppendJustReleasedKeys(h.keys[:0])
	for _, k := range h.keys {
		h.app.DispatchKey(trellis.KeyEvent{Key: int(k), Pressed: false, Modifiers: mods})
	}
}

// transitionFor maps a button state change to its discrete transition.
func transitionFor(b trellis.ButtonMask, pressed, double bool) trellis.ButtonTransition {
	var base trellis.ButtonTransition
	switch b {
	case trellis.ButtonLeft:
		base = trellis.LeftDown
	case trellis.ButtonRight:
		base = trellis.RightDown
	case trellis.ButtonMiddle:
		base = trellis.MiddleDown
	default:
		return 0
	}
	switch {
	case !pressed:
		return base + 1 // Up follows Down
	case double:
		return base + 2 // DoubleClick follows Up
	}
	return base
}

// wheelAccumulator turns fractional wheel offsets (trackpads) into whole
// notches. The remainder carries over to the next tick.
type wheelAccumulator struct {
	acc float64
}

func (w *wheelAccumulator) add(delta float64) int {
	w.acc += delta
	n := math.Trunc(w.acc)
	w.acc -= n
	return int(n)
}

// clickTracker recognizes the second press of a double click.
type clickTracker struct {
	button trellis.ButtonMask
	at     trellis.Vec2
	when   time.Time
}

// press records a press and reports whether it completes a double click. The
// press after a double click starts a new sequence.
func (c *clickTracker) press(b trellis.ButtonMask, at trellis.Vec2, now time.Time) bool {
	double := c.button == b &&
		now.Sub(c.when) <= doubleClickTime &&
		math.Abs(at.X-c.at.X) <= doubleClickDistance &&
		math.Abs(at.Y-c.at.Y) <= doubleClickDistance
	if double {
		*c = clickTracker{}
		return true
	}
	*c = clickTracker{button: b, at: at, when: now}
	return false
}

// windowDrag moves the window while the left button is held over the bare
// background.
type windowDrag struct {
	active bool
	grab   trellis.Vec2
}

// beginWindowDrag starts a drag if the press landed on nothing but the window
// panel and no focus holder asked for exclusive input.
func (h *Host) beginWindowDrag(pt trellis.Vec2) {
	if !h.app.Config().DragWindow || h.app.ExclusiveFocus() {
		return
	}
	win := h.app.WindowPanel()
	for _, p := range h.app.HoveredTree() {
		if p != win {
			return
		}
	}
	h.pointer.drag = windowDrag{active: true, grab: pt}
}

// dragWindow follows an active window drag. It reports true while the drag
// consumes pointer input.
func (h *Host) dragWindow(pt trellis.Vec2) bool {
	d := &h.pointer.drag
	if !d.active {
		return false
	}
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		d.active = false
		h.pointer.buttons &^= trellis.ButtonLeft
		h.app.DispatchButton(trellis.ButtonEvent{Point: pt, Transition: trellis.LeftUp})
		return true
	}
	dx, dy := int(pt.X-d.grab.X), int(pt.Y-d.grab.Y)
	if dx != 0 || dy != 0 {
		wx, wy := ebiten.WindowPosition()
		ebiten.SetWindowPosition(wx+dx, wy+dy)
	}
	return true
}
