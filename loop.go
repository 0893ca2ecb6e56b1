package trellis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
)

// Renderer is the graphics collaborator. Render receives the draw list in
// painter order and returns once the frame is submitted; its pacing sets the
// frame cadence while animations run.
type Renderer interface {
	Render(panels []*Panel) error
}

// LoopMode is the scheduling mode of the host loop.
type LoopMode uint8

const (
	// ModeBlocking waits for the next message before doing anything.
	ModeBlocking LoopMode = iota
	// ModePolling drains pending messages and renders a frame every iteration.
	ModePolling
)

func (m LoopMode) String() string {
	if m == ModePolling {
		return "polling"
	}
	return "blocking"
}

type messageKind uint8

const (
	msgWake messageKind = iota
	msgInput
	msgRecompute
	msgCallback
	msgFunc
	msgWindow
	msgQuit
)

type message struct {
	kind    messageKind
	input   any
	scope   *scope
	id      uint64
	payload any
	fn      func()
	window  WindowEvent
}

// queue is the loop's thread-safe message queue. signal holds at most one
// pending wake-up.
type queue struct {
	mu     sync.Mutex
	items  []message
	signal chan struct{}
}

func (q *queue) init() {
	q.signal = make(chan struct{}, 1)
}

func (q *queue) post(m message) {
	q.mu.Lock()
	q.items = append(q.items, m)
	q.mu.Unlock()
	select {
	case q.signal <- struct{}{}:
	default:
	}
}

func (q *queue) drain() []message {
	q.mu.Lock()
	items := q.items
	q.items = nil
	q.mu.Unlock()
	return items
}

func (q *queue) pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *queue) wait(ctx context.Context) error {
	if q.pending() > 0 {
		return nil
	}
	select {
	case <-q.signal:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// --- Animation counter ---

// IncreaseAnimationCount registers one more running animation. The first one
// switches the loop to polling and wakes a loop blocked on the queue.
// Saturates at the maximum count.
func (a *App) IncreaseAnimationCount() {
	if a.animationCount == math.MaxUint32 {
		return
	}
	a.animationCount++
	if a.animationCount == 1 {
		if a.debug {
			a.log.Debug("loop mode", slog.String("mode", ModePolling.String()))
		}
		a.queue.post(message{kind: msgWake})
	}
}

// DecreaseAnimationCount unregisters a running animation. Dropping to zero
// returns the loop to blocking on its next iteration. No-op at zero.
func (a *App) DecreaseAnimationCount() {
	if a.animationCount == 0 {
		return
	}
	a.animationCount--
	if a.animationCount == 0 {
		a.Invalidate()
		if a.debug {
			a.log.Debug("loop mode", slog.String("mode", ModeBlocking.String()))
		}
	}
}

// AnimationCount returns the number of running animations.
func (a *App) AnimationCount() uint32 { return a.animationCount }

// Animating reports whether any animation is running.
func (a *App) Animating() bool { return a.animationCount > 0 }

// Mode returns the mode the next loop iteration will use.
func (a *App) Mode() LoopMode {
	if a.animationCount > 0 {
		return ModePolling
	}
	return ModeBlocking
}

// --- Loop ---

// Quit asks the loop to stop after the current turn. Safe from any goroutine.
func (a *App) Quit() { a.queue.post(message{kind: msgQuit}) }

// Quitting reports whether Quit has been processed.
func (a *App) Quitting() bool { return a.quit }

// Pending returns the number of queued messages.
func (a *App) Pending() int { return a.queue.pending() }

// SetRenderer sets the renderer used by Step and Run.
func (a *App) SetRenderer(r Renderer) { a.renderer = r }

// Run drives the loop until Quit or ctx is done. While no animation runs the
// loop blocks on the message queue; while animations run it drains pending
// messages and renders a frame each iteration.
func (a *App) Run(ctx context.Context, r Renderer) error {
	if r != nil {
		a.renderer = r
	}
	if a.renderer == nil {
		return ErrNotInitialized
	}
	for {
		if err := a.Step(ctx); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
	}
}

// Step runs one loop iteration: wait for a message when blocking, process
// every message queued so far, advance animations, and render if needed.
func (a *App) Step(ctx context.Context) error {
	mode := a.Mode()
	// A pending frame is produced before blocking.
	if mode == ModeBlocking && !(a.dirty && a.renderer != nil) {
		if err := a.queue.wait(ctx); err != nil {
			return err
		}
	}
	var stats debugStats
	stats.mode = mode
	if a.debug {
		stats.messages = a.queue.pending()
	}

	now := a.now()
	var dt float32
	if !a.lastStep.IsZero() {
		dt = float32(now.Sub(a.lastStep).Seconds())
	}
	a.lastStep = now
	a.Tick(dt)
	if a.debug {
		stats.pumpTime = a.now().Sub(now)
	}

	if a.renderer != nil && a.NeedsRender() {
		start := a.now()
		list := a.DrawList()
		if err := a.renderer.Render(list); err != nil {
			return fmt.Errorf("render: %w", err)
		}
		a.Rendered()
		stats.drawn = len(list)
		stats.renderTime = a.now().Sub(start)
	}
	a.debugLog(stats)
	if a.quit {
		return ErrQuit
	}
	return nil
}

// Tick processes queued messages and injected input, then advances
// animations by dt seconds. Hosts that own the frame loop call it once per
// frame instead of Step.
func (a *App) Tick(dt float32) {
	if a.testRunner != nil {
		a.testRunner.step(a)
	}
	a.processInjectedInput()
	a.Pump()
	a.advanceAnimations(dt)
}

// Pump handles every message queued before the call. Messages posted while
// handling wait for the next turn.
func (a *App) Pump() {
	for _, m := range a.queue.drain() {
		a.handleMessage(m)
	}
}

func (a *App) handleMessage(m message) {
	switch m.kind {
	case msgWake:
	case msgInput:
		switch e := m.input.(type) {
		case MoveEvent:
			a.DispatchMove(e)
		case ButtonEvent:
			a.DispatchButton(e)
		case WheelEvent:
			a.DispatchWheel(e)
		case KeyEvent:
			a.DispatchKey(e)
		}
	case msgRecompute:
		m.scope.diffQueued = false
		if !m.scope.recomputeDiff() {
			m.scope.markDiffDirty()
		}
	case msgCallback:
		a.runCallback(m.id, m.payload)
	case msgFunc:
		m.fn()
	case msgWindow:
		a.HandleWindow(m.window)
	case msgQuit:
		a.quit = true
	}
}
