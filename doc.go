// Package trellis is a retained-mode UI panel tree with priority-ordered
// event dispatch.
//
// A [Panel] is a rectangle in a tree. Every container keeps its children in
// two orders: event order, where lower priorities receive input first, and
// draw order, where higher priorities are painted on top. [Panel.MoveToTopmost]
// brings a panel to the front of both.
//
// # Quick start
//
// Create an [App], build panels, and register the top-level ones as roots:
//
//	app := trellis.NewApp(trellis.DefaultConfig())
//	win := app.NewPanel("window", trellis.Rect{Width: 640, Height: 480})
//	btn := app.NewPanel("ok", trellis.Rect{X: 20, Y: 20, Width: 80, Height: 24})
//	btn.OnPointerButton = func(e *trellis.Event) { ... }
//	win.AddChild(btn.Finish())
//	win.FinishAsRoot()
//
// The trellis/ebitenhost package runs an App inside an [Ebitengine] window.
// Other hosts feed [App.DispatchMove], [App.DispatchButton],
// [App.DispatchWheel], and [App.DispatchKey] and drive [App.Step] or
// [App.Run] with their own [Renderer].
//
// # Dispatch
//
// Pointer motion recomputes each container's hit set, sends enter and leave
// transitions, and delivers the move to every hit panel and then to pinned
// panels the pointer is not over. Buttons, wheel, and keys go to pinned
// panels first, then to the focus holder of their category, and otherwise to
// the hit set. [Panel.Transparent] lets delivery continue past a panel to
// the next sibling.
//
// Pins, hit sets, and focus hold weak references: disposing a panel expires
// them without any bookkeeping by the caller.
//
// # Loop
//
// The loop blocks on its message queue while nothing animates. Each running
// animation holds a count ([App.IncreaseAnimationCount]); while the count is
// non-zero the loop polls and renders every turn. [App.Animate] and
// [App.Tween] manage the count for you (easing via [gween]).
//
// Other goroutines talk to the UI thread through [App.Post],
// [App.TriggerCallback], and [App.PostWindow].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package trellis
