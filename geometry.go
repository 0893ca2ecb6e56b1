package trellis

import (
	"math"
	"slices"
)

// --- Rect accessors ---

// RelativeRect returns the rect in the parent's coordinate space (absolute
// space for a parentless panel).
func (p *Panel) RelativeRect() Rect { return p.relRect }

// AbsoluteRect returns the cached rect in screen space.
func (p *Panel) AbsoluteRect() Rect { return p.absRect }

// Size returns the panel's width and height.
func (p *Panel) Size() Vec2 { return p.relRect.Size() }

// parentOrigin is the absolute position of the parent, or zero.
func (p *Panel) parentOrigin() Vec2 {
	if p.parent == nil {
		return Vec2{}
	}
	return p.parent.absRect.Pos()
}

// --- Size hints ---

// SetMinSize sets the minimum size hint.
func (p *Panel) SetMinSize(v Vec2) {
	p.minSize = &v
	p.Resize(p.relRect.Width, p.relRect.Height)
}

// SetMaxSize sets the maximum size hint.
func (p *Panel) SetMaxSize(v Vec2) {
	p.maxSize = &v
	p.Resize(p.relRect.Width, p.relRect.Height)
}

// ClearSizeHints removes both size hints.
func (p *Panel) ClearSizeHints() {
	p.minSize = nil
	p.maxSize = nil
}

// MinSize returns the minimum size hint; zero when unset.
func (p *Panel) MinSize() Vec2 {
	if p.minSize == nil {
		return Vec2{}
	}
	return *p.minSize
}

// MaxSize returns the maximum size hint; +Inf when unset.
func (p *Panel) MaxSize() Vec2 {
	if p.maxSize == nil {
		return unbounded
	}
	return *p.maxSize
}

func (p *Panel) clampSize(s Vec2) Vec2 {
	lo, hi := p.MinSize(), p.MaxSize()
	return Vec2{
		X: math.Max(lo.X, math.Min(hi.X, s.X)),
		Y: math.Max(lo.Y, math.Min(hi.Y, s.Y)),
	}
}

// --- Geometry mutation ---

// Resize changes the panel's size, clamped to its size hints.
func (p *Panel) Resize(width, height float64) {
	p.Transform(Rect{p.relRect.X, p.relRect.Y, width, height})
}

// Move changes the panel's position relative to its parent.
func (p *Panel) Move(x, y float64) {
	p.Transform(Rect{x, y, p.relRect.Width, p.relRect.Height})
}

// Transform sets position and size in one step. The size is clamped to the
// size hints. OnSize fires if the size changed and children receive
// OnParentSize; OnMove fires if the absolute position changed and every
// descendant receives OnMove with a zero delta.
func (p *Panel) Transform(r Rect) {
	size := p.clampSize(r.Size())
	oldRel, oldAbs := p.relRect, p.absRect

	p.relRect = Rect{r.X, r.Y, size.X, size.Y}
	p.absRect = p.relRect.Offset(p.parentOrigin())

	sizeChanged := size != oldRel.Size()
	moved := p.absRect.Pos() != oldAbs.Pos()
	if sizeChanged {
		p.notifySize(oldRel.Size())
	}
	if moved {
		p.notifyMove(p.relRect.Pos().Sub(oldRel.Pos()))
	}
	if sizeChanged || moved {
		p.app.Invalidate()
	}
}

func (p *Panel) notifySize(old Vec2) {
	if p.OnSize != nil {
		p.OnSize(p, old)
	}
	size := p.relRect.Size()
	for _, child := range slices.Clone(p.scope.children.Items()) {
		if child.OnParentSize != nil && child.parent == p {
			child.OnParentSize(child, size)
		}
	}
}

func (p *Panel) notifyMove(delta Vec2) {
	if p.OnMove != nil {
		p.OnMove(p, delta)
	}
	origin := p.absRect.Pos()
	for _, child := range slices.Clone(p.scope.children.Items()) {
		if child.parent != p {
			continue
		}
		child.absRect = child.relRect.Offset(origin)
		child.notifyMove(Vec2{})
	}
}

// --- Coordinate conversion ---

// SelfToRelative converts a point in self coordinates (origin at the panel's
// top-left) to the parent's coordinate space.
func (p *Panel) SelfToRelative(pt Vec2) Vec2 { return pt.Add(p.relRect.Pos()) }

// SelfToAbsolute converts a point in self coordinates to screen space.
func (p *Panel) SelfToAbsolute(pt Vec2) Vec2 { return pt.Add(p.absRect.Pos()) }

// RelativeToSelf converts a point in the parent's space to self coordinates.
func (p *Panel) RelativeToSelf(pt Vec2) Vec2 { return pt.Sub(p.relRect.Pos()) }

// RelativeToAbsolute converts a point in the parent's space to screen space.
func (p *Panel) RelativeToAbsolute(pt Vec2) Vec2 { return pt.Add(p.parentOrigin()) }

// AbsoluteToSelf converts a screen-space point to self coordinates.
func (p *Panel) AbsoluteToSelf(pt Vec2) Vec2 { return pt.Sub(p.absRect.Pos()) }

// AbsoluteToRelative converts a screen-space point to the parent's space.
func (p *Panel) AbsoluteToRelative(pt Vec2) Vec2 { return pt.Sub(p.parentOrigin()) }

// --- Hit testing ---

// Hit reports whether the absolute point lies in the panel's hit region.
func (p *Panel) Hit(abs Vec2) bool {
	if p.HitTest != nil {
		return p.HitTest(p, abs)
	}
	if p.HitShape != nil {
		local := p.AbsoluteToSelf(abs)
		return p.HitShape.Contains(local.X, local.Y)
	}
	return p.absRect.Contains(abs.X, abs.Y)
}
