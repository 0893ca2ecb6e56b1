package trellis

import (
	"slices"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Transition interpolates a rect from From to To over Duration seconds. It is
// a plain value: Advance returns the next state and never touches a panel.
type Transition struct {
	From     Rect
	To       Rect
	Duration float32
	Elapsed  float32
	Ease     ease.TweenFunc // nil means ease.Linear
}

// Advance returns the transition moved forward by dt seconds and whether it
// has reached its end.
func (t Transition) Advance(dt float32) (Transition, bool) {
	t.Elapsed = min(t.Elapsed+max(dt, 0), max(t.Duration, 0))
	return t, t.Done()
}

// Done reports whether the transition has reached To.
func (t Transition) Done() bool { return t.Elapsed >= t.Duration }

// Current returns the interpolated rect.
func (t Transition) Current() Rect {
	if t.Done() {
		return t.To
	}
	fn := t.Ease
	if fn == nil {
		fn = ease.Linear
	}
	at := func(from, to float64) float64 {
		return float64(fn(t.Elapsed, float32(from), float32(to-from), t.Duration))
	}
	return Rect{
		X:      at(t.From.X, t.To.X),
		Y:      at(t.From.Y, t.To.Y),
		Width:  at(t.From.Width, t.To.Width),
		Height: at(t.From.Height, t.To.Height),
	}
}

// Animation is a registered Transition applied to a panel every loop turn.
// It holds one animation count from registration until it finishes or is
// cancelled.
type Animation struct {
	app    *App
	panel  *Panel
	state  Transition
	onDone func(p *Panel)
	done   bool
}

// Animate moves p's relative rect to to over duration seconds. The animation
// stops early if p is disposed.
func (a *App) Animate(p *Panel, to Rect, duration float32, fn ease.TweenFunc) *Animation {
	an := &Animation{
		app:   a,
		panel: p,
		state: Transition{From: p.relRect, To: to, Duration: duration, Ease: fn},
	}
	a.animations = append(a.animations, an)
	a.IncreaseAnimationCount()
	return an
}

// OnDone sets a function called once the animation reaches its end. It is not
// called for cancelled animations.
func (an *Animation) OnDone(fn func(p *Panel)) *Animation {
	an.onDone = fn
	return an
}

// Transition returns the animation's current state.
func (an *Animation) Transition() Transition { return an.state }

// Done reports whether the animation finished or was cancelled.
func (an *Animation) Done() bool { return an.done }

// Cancel stops the animation where it is.
func (an *Animation) Cancel() { an.finish() }

func (an *Animation) finish() {
	if an.done {
		return
	}
	an.done = true
	an.app.DecreaseAnimationCount()
}

func (an *Animation) advance(dt float32) {
	if an.done {
		return
	}
	if an.panel.disposed {
		an.finish()
		return
	}
	var end bool
	an.state, end = an.state.Advance(dt)
	an.panel.Transform(an.state.Current())
	if end {
		an.finish()
		if an.onDone != nil {
			an.onDone(an.panel)
		}
	}
}

// Tween animates a scalar (a scroll offset, an opacity) through apply. Like
// Animation it holds one animation count while running.
type Tween struct {
	app   *App
	tween *gween.Tween
	apply func(v float32)
	done  bool
}

// Tween starts a scalar animation from from to to over duration seconds.
// apply receives each new value, including the final one.
func (a *App) Tween(from, to, duration float32, fn ease.TweenFunc, apply func(v float32)) *Tween {
	if fn == nil {
		fn = ease.Linear
	}
	tw := &Tween{app: a, tween: gween.New(from, to, duration, fn), apply: apply}
	a.tweens = append(a.tweens, tw)
	a.IncreaseAnimationCount()
	return tw
}

// Done reports whether the tween finished or was cancelled.
func (tw *Tween) Done() bool { return tw.done }

// Cancel stops the tween without applying further values.
func (tw *Tween) Cancel() {
	if tw.done {
		return
	}
	tw.done = true
	tw.app.DecreaseAnimationCount()
}

func (tw *Tween) advance(dt float32) {
	if tw.done {
		return
	}
	v, end := tw.tween.Update(dt)
	if tw.apply != nil {
		tw.apply(v)
	}
	if end {
		tw.Cancel()
	}
}

// advanceAnimations steps every running animation. Animations started by a
// callback during this pass begin on the next turn.
func (a *App) advanceAnimations(dt float32) {
	if len(a.animations) == 0 && len(a.tweens) == 0 {
		return
	}
	for _, an := range slices.Clone(a.animations) {
		an.advance(dt)
	}
	for _, tw := range slices.Clone(a.tweens) {
		tw.advance(dt)
	}
	a.animations = slices.DeleteFunc(a.animations, func(an *Animation) bool { return an.done })
	a.tweens = slices.DeleteFunc(a.tweens, func(tw *Tween) bool { return tw.done })
	a.Invalidate()
}
