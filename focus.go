package trellis

import (
	"log/slog"

	"github.com/phanxgames/trellis/pset"
)

// Focused returns the focus holder of cat, or nil. A disposed holder reads
// as nil.
func (a *App) Focused(cat FocusCategory) *Panel {
	if cat >= FocusCategoryCount {
		return nil
	}
	p, ok := a.arena.Get(a.focused[cat])
	if !ok {
		a.focused[cat] = pset.Ref{}
		return nil
	}
	return p
}

// SetFocus makes p the focus holder of cat. The previous holder receives
// EventFocusLose before p receives EventFocusGet. Setting the current holder
// again is a no-op; a nil p clears the slot.
//
// Focus survives hiding or disabling the holder, but routing skips such a
// holder: while it is invisible, disabled, or unfinished, events of cat
// follow the hit set as if no holder were bound.
func (a *App) SetFocus(cat FocusCategory, p *Panel) {
	if cat >= FocusCategoryCount {
		panic("trellis: unknown focus category")
	}
	if p != nil && p.disposed {
		panic("trellis: focus on disposed panel")
	}
	old := a.Focused(cat)
	if old == p {
		return
	}
	if p == nil {
		a.focused[cat] = pset.Ref{}
	} else {
		a.focused[cat] = p.ref
	}
	if a.debug {
		a.log.Debug("focus changed",
			slog.String("category", cat.String()),
			slog.String("from", panelName(old)),
			slog.String("to", panelName(p)))
	}
	if old != nil {
		a.invoke(old, &Event{Type: EventFocusLose, Point: a.cursor, Focus: cat})
	}
	// A lose-focus handler may have moved focus elsewhere already.
	if p != nil && a.Focused(cat) == p {
		a.invoke(p, &Event{Type: EventFocusGet, Point: a.cursor, Focus: cat})
	}
}

// ClearFocus releases the focus slot of cat.
func (a *App) ClearFocus(cat FocusCategory) { a.SetFocus(cat, nil) }

// Focus makes p the focus holder of cat.
func (p *Panel) Focus(cat FocusCategory) { p.app.SetFocus(cat, p) }

// HasFocus reports whether p holds focus of cat.
func (p *Panel) HasFocus(cat FocusCategory) bool { return p.app.Focused(cat) == p }

// ExclusiveFocus reports whether a current focus holder asked for global
// exclusive focusing. Hosts consult it before starting unrelated input
// handling such as dragging the window by its background.
func (a *App) ExclusiveFocus() bool {
	for c := FocusCategory(0); c < FocusCategoryCount; c++ {
		if f := a.Focused(c); f != nil && f.ForceGlobalExclusiveFocusing {
			return true
		}
	}
	return false
}

func panelName(p *Panel) string {
	if p == nil {
		return "<nil>"
	}
	return p.Name
}
