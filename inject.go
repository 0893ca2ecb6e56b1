package trellis

type syntheticKind uint8

const (
	synthMove syntheticKind = iota
	synthButton
	synthWheel
	synthKey
)

// syntheticInput is a single injected input event in screen coordinates.
type syntheticInput struct {
	kind       syntheticKind
	point      Vec2
	transition ButtonTransition
	notches    int
	key        int
	pressed    bool
}

// InjectMove queues a pointer move to (x, y). Buttons held by earlier
// injected presses stay held, so moves between InjectPress and InjectRelease
// form a drag.
func (a *App) InjectMove(x, y float64) {
	a.injectQueue = append(a.injectQueue, syntheticInput{kind: synthMove, point: Vec2{x, y}})
}

// InjectPress queues a left button press at (x, y). Injected events are
// consumed one per Tick.
func (a *App) InjectPress(x, y float64) {
	a.InjectButton(x, y, LeftDown)
}

// InjectRelease queues a left button release at (x, y).
func (a *App) InjectRelease(x, y float64) {
	a.InjectButton(x, y, LeftUp)
}

// InjectButton queues an arbitrary button transition at (x, y).
func (a *App) InjectButton(x, y float64, t ButtonTransition) {
	a.injectQueue = append(a.injectQueue, syntheticInput{kind: synthButton, point: Vec2{x, y}, transition: t})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two ticks.
func (a *App) InjectClick(x, y float64) {
	a.InjectPress(x, y)
	a.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate ticks, and release at
// (toX, toY). The sequence consumes frames ticks; the minimum is 2.
func (a *App) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	a.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		a.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	a.InjectRelease(toX, toY)
}

// InjectWheel queues a wheel rotation of notches at (x, y).
func (a *App) InjectWheel(x, y float64, notches int) {
	a.injectQueue = append(a.injectQueue, syntheticInput{kind: synthWheel, point: Vec2{x, y}, notches: notches})
}

// InjectKey queues a key transition.
func (a *App) InjectKey(key int, pressed bool) {
	a.injectQueue = append(a.injectQueue, syntheticInput{kind: synthKey, key: key, pressed: pressed})
}

// Injecting reports whether injected input is still queued. Hosts skip real
// pointer input while it is.
func (a *App) Injecting() bool { return len(a.injectQueue) > 0 }

// processInjectedInput dispatches the oldest injected event, if any.
func (a *App) processInjectedInput() bool {
	if len(a.injectQueue) == 0 {
		return false
	}
	in := a.injectQueue[0]
	copy(a.injectQueue, a.injectQueue[1:])
	a.injectQueue = a.injectQueue[:len(a.injectQueue)-1]

	switch in.kind {
	case synthMove:
		a.DispatchMove(MoveEvent{Point: in.point, Prev: a.cursor, Buttons: a.buttons})
	case synthButton:
		a.DispatchButton(ButtonEvent{Point: in.point, Transition: in.transition})
	case synthWheel:
		a.DispatchWheel(WheelEvent{Point: in.point, Notches: in.notches, Buttons: a.buttons})
	case synthKey:
		a.DispatchKey(KeyEvent{Key: in.key, Pressed: in.pressed})
	}
	return true
}
