package trellis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tickDT = float32(1) / 60

func TestInjectClick(t *testing.T) {
	a, _, _, log := pointerTree(t)
	a.InjectClick(15, 15)
	require.True(t, a.Injecting())

	a.Tick(tickDT)
	assert.Equal(t, []string{
		"R:PointerEnter", "R:PointerMove", "A:PointerEnter", "A:PointerMove",
		"R:PointerButton", "A:PointerButton",
	}, log.take())
	assert.True(t, a.Injecting())

	a.Tick(tickDT)
	assert.Equal(t, []string{"R:PointerButton", "A:PointerButton"}, log.take())
	assert.False(t, a.Injecting())
}

func TestInjectDrag(t *testing.T) {
	a := newTestApp(t)
	r := rootPanel(a, "r", Rect{Width: 100, Height: 100})

	var moves []Vec2
	var held []ButtonMask
	r.OnPointerMove = func(e *Event) {
		moves = append(moves, e.Point)
		held = append(held, e.Buttons)
	}
	var transitions []ButtonTransition
	r.OnPointerButton = func(e *Event) { transitions = append(transitions, e.Transition) }

	a.InjectDrag(10, 10, 40, 40, 4)
	ticks := 0
	for a.Injecting() {
		a.Tick(tickDT)
		ticks++
	}
	assert.Equal(t, 4, ticks)
	assert.Equal(t, []ButtonTransition{LeftDown, LeftUp}, transitions)
	assert.Equal(t, []Vec2{{10, 10}, {20, 20}, {30, 30}, {40, 40}}, moves)
	assert.Equal(t, []ButtonMask{0, ButtonLeft, ButtonLeft, ButtonLeft}, held)
}

func TestInjectDragMinimumFrames(t *testing.T) {
	a := newTestApp(t)
	a.InjectDrag(0, 0, 5, 5, 0)
	assert.Len(t, a.injectQueue, 2)
}

func TestInjectWheelAndKey(t *testing.T) {
	a, _, pa, log := pointerTree(t)
	pa.Focus(FocusKeyboard)
	log.take()

	a.InjectWheel(15, 15, 3)
	a.InjectKey(65, true)

	var notches int
	pa.OnPointerWheel = func(e *Event) {
		log.record(e)
		notches = e.Notches
	}

	a.Tick(tickDT)
	a.Tick(tickDT)
	entries := log.take()
	assert.Contains(t, entries, "A:PointerWheel")
	assert.Equal(t, "A:Key", entries[len(entries)-1])
	assert.Equal(t, 3, notches)
}
