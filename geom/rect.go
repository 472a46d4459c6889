package geom

import "math"

// Rect is an axis-aligned rectangle stored as left/top/right/bottom.
// Constructors and mutators maintain Left <= Right and Top <= Bottom.
type Rect struct {
	Left, Top, Right, Bottom float32
}

// MakeRect builds a Rect from two arbitrary corners, normalizing the
// ordering so Left <= Right and Top <= Bottom.
func MakeRect(l, t, r, b float32) Rect {
	if l > r {
		l, r = r, l
	}
	if t > b {
		t, b = b, t
	}
	return Rect{Left: l, Top: t, Right: r, Bottom: b}
}

// EmptyRect returns a degenerate rect that Union treats as an identity
// element (any rect unioned with it returns unchanged).
func EmptyRect() Rect {
	posInf := float32(math.Inf(1))
	negInf := float32(math.Inf(-1))
	return Rect{Left: posInf, Top: posInf, Right: negInf, Bottom: negInf}
}

// Width returns Right - Left.
func (r Rect) Width() float32 { return r.Right - r.Left }

// Height returns Bottom - Top.
func (r Rect) Height() float32 { return r.Bottom - r.Top }

// IsEmpty reports whether the rect has non-positive area.
func (r Rect) IsEmpty() bool {
	return r.Left >= r.Right || r.Top >= r.Bottom
}

// Union returns the smallest rect containing both r and o. Union is
// associative, commutative, and idempotent.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	return Rect{
		Left:   min32(r.Left, o.Left),
		Top:    min32(r.Top, o.Top),
		Right:  max32(r.Right, o.Right),
		Bottom: max32(r.Bottom, o.Bottom),
	}
}

// UnionPoint expands r to include p.
func (r Rect) UnionPoint(p Point) Rect {
	if r.Left > r.Right || r.Top > r.Bottom {
		return Rect{Left: p.X, Top: p.Y, Right: p.X, Bottom: p.Y}
	}
	return Rect{
		Left:   min32(r.Left, p.X),
		Top:    min32(r.Top, p.Y),
		Right:  max32(r.Right, p.X),
		Bottom: max32(r.Bottom, p.Y),
	}
}

// Intersection returns the overlapping region of r and o, and false if the
// rectangles are disjoint or share only an edge (zero-area overlap).
func (r Rect) Intersection(o Rect) (Rect, bool) {
	l := max32(r.Left, o.Left)
	t := max32(r.Top, o.Top)
	rr := min32(r.Right, o.Right)
	b := min32(r.Bottom, o.Bottom)
	if l >= rr || t >= b {
		return Rect{}, false
	}
	return Rect{Left: l, Top: t, Right: rr, Bottom: b}, true
}

// Expand grows the rect by d on every side (negative d shrinks it).
func (r Rect) Expand(d float32) Rect {
	return Rect{Left: r.Left - d, Top: r.Top - d, Right: r.Right + d, Bottom: r.Bottom + d}
}

// GetQuad returns the six vertices (two triangles) covering the rect as a
// vertex-only triangle list: (l,t),(r,t),(l,b),(r,t),(l,b),(r,b). The two
// triangles have opposite winding in this order.
func (r Rect) GetQuad() [6]Point {
	return [6]Point{
		{X: r.Left, Y: r.Top}, {X: r.Right, Y: r.Top}, {X: r.Left, Y: r.Bottom},
		{X: r.Right, Y: r.Top}, {X: r.Left, Y: r.Bottom}, {X: r.Right, Y: r.Bottom},
	}
}
