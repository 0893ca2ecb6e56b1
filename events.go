package trellis

import "slices"

// --- Input events from the windowing layer ---

// MoveEvent is a pointer motion notification. Points are in screen space,
// already DPI-normalized.
type MoveEvent struct {
	Point     Vec2
	Prev      Vec2
	Buttons   ButtonMask
	Modifiers KeyModifiers
}

// ButtonEvent is a single discrete button transition.
type ButtonEvent struct {
	Point      Vec2
	Transition ButtonTransition
	Modifiers  KeyModifiers
}

// WheelEvent is a wheel rotation in whole notches.
type WheelEvent struct {
	Point     Vec2
	Notches   int
	Buttons   ButtonMask
	Modifiers KeyModifiers
}

// KeyEvent is a key press or release. Key is the host's virtual key code.
type KeyEvent struct {
	Key       int
	Pressed   bool
	Modifiers KeyModifiers
}

// WindowEventKind identifies a window lifecycle notification.
type WindowEventKind uint8

const (
	WindowResized  WindowEventKind = iota + 1 // client area changed size
	WindowRestored                            // window came back from minimized
	ThemeChanged                              // appearance theme changed
	LocaleChanged                             // user locale changed
)

// WindowEvent is a window lifecycle notification relevant to dispatch.
type WindowEvent struct {
	Kind   WindowEventKind
	Size   Vec2
	Theme  string
	Locale string
}

// --- Dispatched event ---

// Event carries the data delivered to a panel's callbacks, behaviors, and hooks.
// Each panel receives its own copy.
type Event struct {
	Type     EventType
	Panel    *Panel
	EntityID uint32
	UserData any

	// Point is the pointer position in screen space; Local is the same point
	// in the receiving panel's self coordinates.
	Point Vec2
	Local Vec2
	Prev  Vec2

	Buttons    ButtonMask
	Transition ButtonTransition
	Notches    int
	Key        int
	Pressed    bool
	Modifiers  KeyModifiers
	Focus      FocusCategory

	// Pinned is true when the event reached the panel through a pin rather
	// than through hit testing or focus.
	Pinned bool
}

// InteractionEvent is the pointer-free form of Event published to an EventStore.
type InteractionEvent struct {
	Type       EventType
	EntityID   uint32
	GlobalX    float64
	GlobalY    float64
	LocalX     float64
	LocalY     float64
	Buttons    ButtonMask
	Transition ButtonTransition
	Notches    int
	Key        int
	Pressed    bool
	Modifiers  KeyModifiers
	Pinned     bool
}

func (e *Event) interaction() InteractionEvent {
	return InteractionEvent{
		Type:       e.Type,
		EntityID:   e.EntityID,
		GlobalX:    e.Point.X,
		GlobalY:    e.Point.Y,
		LocalX:     e.Local.X,
		LocalY:     e.Local.Y,
		Buttons:    e.Buttons,
		Transition: e.Transition,
		Notches:    e.Notches,
		Key:        e.Key,
		Pressed:    e.Pressed,
		Modifiers:  e.Modifiers,
		Pinned:     e.Pinned,
	}
}

// EventStore is the interface for optional ECS integration.
// When set on an App, every delivered event whose panel has a non-zero
// EntityID is forwarded.
type EventStore interface {
	EmitEvent(event InteractionEvent)
}

// --- Capabilities ---

// PointerEnterer receives EventPointerEnter.
type PointerEnterer interface{ PointerEnter(e *Event) }

// PointerMover receives EventPointerMove.
type PointerMover interface{ PointerMove(e *Event) }

// PointerLeaver receives EventPointerLeave.
type PointerLeaver interface{ PointerLeave(e *Event) }

// ButtonHandler receives EventPointerButton.
type ButtonHandler interface{ PointerButton(e *Event) }

// WheelHandler receives EventPointerWheel.
type WheelHandler interface{ PointerWheel(e *Event) }

// KeyHandler receives EventKey.
type KeyHandler interface{ Key(e *Event) }

// FocusHandler receives both focus transitions.
type FocusHandler interface {
	FocusGet(e *Event)
	FocusLose(e *Event)
}

// ThemeHandler receives theme and locale broadcasts.
type ThemeHandler interface {
	ThemeChanged(p *Panel, theme string)
	LocaleChanged(p *Panel, locale string)
}

// callback returns the panel's own callback field for t.
func (p *Panel) callback(t EventType) func(*Event) {
	switch t {
	case EventPointerEnter:
		return p.OnPointerEnter
	case EventPointerMove:
		return p.OnPointerMove
	case EventPointerLeave:
		return p.OnPointerLeave
	case EventPointerButton:
		return p.OnPointerButton
	case EventPointerWheel:
		return p.OnPointerWheel
	case EventKey:
		return p.OnKey
	case EventFocusGet:
		return p.OnFocusGet
	case EventFocusLose:
		return p.OnFocusLose
	}
	return nil
}

// runBehaviors invokes every composed capability matching e.Type, in order.
func (p *Panel) runBehaviors(e *Event) {
	for _, b := range p.behaviors {
		switch e.Type {
		case EventPointerEnter:
			if h, ok := b.(PointerEnterer); ok {
				h.PointerEnter(e)
			}
		case EventPointerMove:
			if h, ok := b.(PointerMover); ok {
				h.PointerMove(e)
			}
		case EventPointerLeave:
			if h, ok := b.(PointerLeaver); ok {
				h.PointerLeave(e)
			}
		case EventPointerButton:
			if h, ok := b.(ButtonHandler); ok {
				h.PointerButton(e)
			}
		case EventPointerWheel:
			if h, ok := b.(WheelHandler); ok {
				h.PointerWheel(e)
			}
		case EventKey:
			if h, ok := b.(KeyHandler); ok {
				h.Key(e)
			}
		case EventFocusGet:
			if h, ok := b.(FocusHandler); ok {
				h.FocusGet(e)
			}
		case EventFocusLose:
			if h, ok := b.(FocusHandler); ok {
				h.FocusLose(e)
			}
		}
	}
}

// --- Hooks ---

// Hook runs before the default handling of an event. Returning false vetoes
// the receiving panel's callbacks and behaviors; the after hooks still run.
type Hook func(e *Event) bool

// Handler observes an event after the default handling.
type Handler func(e *Event)

type hookEntry struct {
	id     uint32
	before Hook
	after  Handler
}

type hookRegistry struct {
	before [eventTypeCount][]hookEntry
	after  [eventTypeCount][]hookEntry
	nextID uint32
}

// CallbackHandle allows removing a registered hook.
type CallbackHandle struct {
	id    uint32
	reg   *hookRegistry
	event EventType
	after bool
}

// Remove unregisters the hook so it no longer fires. Safe to call from inside
// a hook; a pass already in progress still sees the old list.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	list := &h.reg.before[h.event]
	if h.after {
		list = &h.reg.after[h.event]
	}
	*list = slices.DeleteFunc(slices.Clone(*list), func(e hookEntry) bool { return e.id == h.id })
}

func (r *hookRegistry) addBefore(t EventType, fn Hook) CallbackHandle {
	r.nextID++
	r.before[t] = append(slices.Clip(r.before[t]), hookEntry{id: r.nextID, before: fn})
	return CallbackHandle{id: r.nextID, reg: r, event: t}
}

func (r *hookRegistry) addAfter(t EventType, fn Handler) CallbackHandle {
	r.nextID++
	r.after[t] = append(slices.Clip(r.after[t]), hookEntry{id: r.nextID, after: fn})
	return CallbackHandle{id: r.nextID, reg: r, event: t, after: true}
}

func (r *hookRegistry) runBefore(e *Event) bool {
	ok := true
	for _, h := range r.before[e.Type] {
		if !h.before(e) {
			ok = false
		}
	}
	return ok
}

func (r *hookRegistry) runAfter(e *Event) {
	for _, h := range r.after[e.Type] {
		h.after(e)
	}
}

// OnBefore registers a hook that runs before this panel handles events of type t.
func (p *Panel) OnBefore(t EventType, fn Hook) CallbackHandle {
	return p.hooks.addBefore(t, fn)
}

// OnAfter registers a handler that runs after this panel handled events of type t.
func (p *Panel) OnAfter(t EventType, fn Handler) CallbackHandle {
	return p.hooks.addAfter(t, fn)
}
