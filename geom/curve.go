package geom

// EvalQuad evaluates a quadratic Bezier at parameter t using the explicit
// Bernstein form (1-t)^2*P0 + 2t(1-t)*P1 + t^2*P2. The explicit form (as
// opposed to de Casteljau's recursive lerp) guarantees exact results at
// t=0 and t=1 regardless of floating point rounding; callers relying on
// endpoint exactness must not substitute an equivalent-looking reordering.
func EvalQuad(p0, p1, p2 Point, t float32) Point {
	mt := 1 - t
	a := mt * mt
	b := 2 * mt * t
	c := t * t
	return Point{
		X: a*p0.X + b*p1.X + c*p2.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y,
	}
}

// EvalCubic evaluates a cubic Bezier at parameter t using the explicit
// Bernstein form. See EvalQuad for the endpoint-exactness rationale.
func EvalCubic(p0, p1, p2, p3 Point, t float32) Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t
	return Point{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}
