package trellis

import "math"

// Vec2 is a 2D vector used for points, offsets, and sizes throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Pos returns the top-left corner.
func (r Rect) Pos() Vec2 { return Vec2{r.X, r.Y} }

// Size returns the width and height as a vector.
func (r Rect) Size() Vec2 { return Vec2{r.Width, r.Height} }

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the left and top edges are inside; the right and bottom edges are
// outside, so adjacent siblings never share a point.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

// Intersects reports whether r and other overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Offset returns r translated by d.
func (r Rect) Offset(d Vec2) Rect {
	return Rect{r.X + d.X, r.Y + d.Y, r.Width, r.Height}
}

// unbounded is the implicit maximum size when no hint is set.
var unbounded = Vec2{math.Inf(1), math.Inf(1)}

// EventType identifies a kind of dispatched event.
type EventType uint8

const (
	EventPointerEnter  EventType = iota // pointer entered a panel's hit region
	EventPointerMove                    // pointer moved over (or while pinned to) a panel
	EventPointerLeave                   // pointer left a panel's hit region
	EventPointerButton                  // a button went down, up, or double-clicked
	EventPointerWheel                   // the wheel turned
	EventKey                            // a key was pressed or released
	EventFocusGet                       // a panel became the focus holder of a category
	EventFocusLose                      // a panel stopped being the focus holder of a category
	eventTypeCount
)

var eventTypeNames = [...]string{
	"PointerEnter", "PointerMove", "PointerLeave", "PointerButton",
	"PointerWheel", "Key", "FocusGet", "FocusLose",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "EventType(?)"
}

// Category returns the reactability/transparency category of the event type.
func (t EventType) Category() EventCategory {
	switch t {
	case EventPointerEnter:
		return CategoryMouseEnter
	case EventPointerMove:
		return CategoryMouseMove
	case EventPointerLeave:
		return CategoryMouseLeave
	case EventPointerButton:
		return CategoryMouseButton
	case EventPointerWheel:
		return CategoryMouseWheel
	case EventKey:
		return CategoryKeyboard
	case EventFocusGet:
		return CategoryFocusGet
	case EventFocusLose:
		return CategoryFocusLose
	}
	return 0
}

// EventCategory is a bitmask used for per-panel reactability and transparency.
type EventCategory uint16

const (
	CategoryMouseEnter EventCategory = 1 << iota
	CategoryMouseMove
	CategoryMouseLeave
	CategoryMouseButton
	CategoryMouseWheel
	CategoryKeyboard
	CategoryHitTest
	CategoryFocusGet
	CategoryFocusLose

	// CategoryMouse covers every pointer category except hit testing.
	CategoryMouse = CategoryMouseEnter | CategoryMouseMove | CategoryMouseLeave |
		CategoryMouseButton | CategoryMouseWheel
	// CategoryFocus covers both focus transitions.
	CategoryFocus = CategoryFocusGet | CategoryFocusLose
	// CategoryAll is every category.
	CategoryAll = CategoryMouse | CategoryKeyboard | CategoryHitTest | CategoryFocus
)

// FocusCategory selects one of the independent focus slots.
type FocusCategory uint8

const (
	FocusPointer  FocusCategory = iota // exclusive receiver of button and wheel events
	FocusKeyboard                      // exclusive receiver of key events
	FocusCategoryCount
)

func (c FocusCategory) String() string {
	switch c {
	case FocusPointer:
		return "pointer"
	case FocusKeyboard:
		return "keyboard"
	}
	return "focus(?)"
}

// ButtonMask is a bitmask of pressed pointer buttons.
type ButtonMask uint8

const (
	ButtonLeft ButtonMask = 1 << iota
	ButtonRight
	ButtonMiddle
)

// ButtonTransition is a single discrete button state change.
type ButtonTransition uint8

const (
	LeftDown ButtonTransition = iota + 1
	LeftUp
	LeftDoubleClick
	RightDown
	RightUp
	RightDoubleClick
	MiddleDown
	MiddleUp
	MiddleDoubleClick
)

// Button returns the button affected by the transition.
func (b ButtonTransition) Button() ButtonMask {
	switch b {
	case LeftDown, LeftUp, LeftDoubleClick:
		return ButtonLeft
	case RightDown, RightUp, RightDoubleClick:
		return ButtonRight
	case MiddleDown, MiddleUp, MiddleDoubleClick:
		return ButtonMiddle
	}
	return 0
}

// Down reports whether the transition presses a button. A double click
// replaces the second press, so it counts as one.
func (b ButtonTransition) Down() bool {
	switch b {
	case LeftDown, LeftDoubleClick, RightDown, RightDoubleClick, MiddleDown, MiddleDoubleClick:
		return true
	}
	return false
}

// DoubleClick reports whether the transition is a double click.
func (b ButtonTransition) DoubleClick() bool {
	return b == LeftDoubleClick || b == RightDoubleClick || b == MiddleDoubleClick
}

// Up reports whether the transition releases a button.
func (b ButtonTransition) Up() bool {
	return b == LeftUp || b == RightUp || b == MiddleUp
}

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)
