package trellis

// HitShape narrows where a panel counts as hit. Panel.Hit converts the pointer
// to self coordinates, (0, 0) at the panel's top-left corner, before asking
// the shape. A shape may reach outside the panel's rect; the rect does not
// clip it.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitRect restricts hits to a sub-rectangle, for example a title bar strip.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains uses the same half-open edges as Rect.
func (r HitRect) Contains(x, y float64) bool {
	return Rect(r).Contains(x, y)
}

// HitCircle suits round buttons and knobs. The rim counts as inside.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

func (c HitCircle) Contains(x, y float64) bool {
	dx, dy := x-c.CenterX, y-c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// HitPolygon accepts points inside a convex outline. Winding order does not
// matter; fewer than three points never hit.
type HitPolygon struct {
	Points []Vec2
}

// Contains checks that the point lies on the same side of every edge.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}
	var left, right bool
	for i, a := range p.Points {
		b := p.Points[(i+1)%n]
		switch side := (b.X-a.X)*(y-a.Y) - (b.Y-a.Y)*(x-a.X); {
		case side > 0:
			left = true
		case side < 0:
			right = true
		}
		if left && right {
			return false
		}
	}
	return true
}

// HitAll makes a panel hit everywhere, its own rect included or not. A modal
// overlay uses it to swallow pointer input meant for the panels beneath.
type HitAll struct{}

func (HitAll) Contains(x, y float64) bool { return true }
