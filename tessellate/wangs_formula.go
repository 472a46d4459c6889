// Package tessellate turns convexity-classified paths into triangle meshes:
// Wang's-formula subdivision counts, a centroid-fan tessellator for fills,
// and a perpendicular-extrusion tessellator for strokes.
package tessellate

import (
	"math"

	"github.com/flatland/canvas/geom"
)

// wangsPrecision is the reciprocal of the maximum deviation, in pixels,
// that a flattened segment may have from the true curve (4 means a quarter
// pixel); grounded directly on the source's kPrecision constant.
const wangsPrecision = 4.0

// MinSubdivisions is the smallest segment count any curve is ever split
// into, even a degenerate (zero-curvature) one.
const MinSubdivisions = 1

// MaxSubdivisions caps runaway subdivision counts for pathological control
// points (e.g. coincident with huge scale factors).
const MaxSubdivisions = 1024

func clampSubdivisions(n float32) int {
	if math.IsNaN(float64(n)) || n < MinSubdivisions {
		return MinSubdivisions
	}
	if n > MaxSubdivisions {
		return MaxSubdivisions
	}
	return int(math.Ceil(float64(n)))
}

// ComputeCubicSubdivisions returns the number of line segments needed to
// flatten a cubic Bezier to within one pixel of its true curve at the given
// scale factor (the maximum length a unit vector can be stretched to by the
// transform the curve will be drawn under).
func ComputeCubicSubdivisions(scaleFactor float32, p0, p1, p2, p3 geom.Point) int {
	k := scaleFactor * 0.75 * wangsPrecision
	a := p0.Sub(p1.Mul(2)).Add(p2).Abs()
	b := p1.Sub(p2.Mul(2)).Add(p3).Abs()
	m := a.Max(b)
	n := float32(math.Sqrt(float64(k) * math.Sqrt(float64(m.X*m.X+m.Y*m.Y))))
	return clampSubdivisions(n)
}

// ComputeQuadradicSubdivisions returns the subdivision count for a
// quadratic Bezier at the given scale factor.
func ComputeQuadradicSubdivisions(scaleFactor float32, p0, p1, p2 geom.Point) int {
	k := scaleFactor * 0.25 * wangsPrecision
	d := p0.Sub(p1.Mul(2)).Add(p2).Abs()
	n := float32(math.Sqrt(float64(k) * math.Sqrt(float64(d.X*d.X+d.Y*d.Y))))
	return clampSubdivisions(n)
}

// ComputeConicSubdivisions returns the subdivision count for a conic
// (rational quadratic) section with weight w. This is not due to Wang; it
// is the analogue derived in J. Zheng, T. Sederberg, "Estimating
// Tessellation Parameter Intervals for Rational Curves and Surfaces," ACM
// Transactions on Graphics 19(1), 2000 (Theorem 3, corollary 1).
func ComputeConicSubdivisions(scaleFactor float32, p0, p1, p2 geom.Point, w float32) int {
	// A conic with w == 1 degenerates to an ordinary quadratic.
	if w == 1 {
		return ComputeQuadradicSubdivisions(scaleFactor, p0, p1, p2)
	}

	// Center the bounding box at the origin; improves translation-
	// invariance of the estimate (see Sec. 3.3 of the cited paper).
	center := p0.Min(p1).Min(p2).Add(p0.Max(p1).Max(p2)).Mul(0.5)
	q0 := p0.Sub(center)
	q1 := p1.Sub(center)
	q2 := p2.Sub(center)

	maxLen := float32(math.Sqrt(float64(max32(q0.Dot(q0), max32(q1.Dot(q1), q2.Dot(q2))))))

	dp := q1.Mul(-2 * w).Add(q0).Add(q2)
	dw := float32(math.Abs(float64(-2*w + 2)))

	// The epsilon referenced in the cited paper is 1/precision.
	k := scaleFactor * wangsPrecision
	rpMinus1 := max32(0, maxLen*k-1)
	numer := float32(math.Sqrt(float64(dp.Dot(dp))))*k + rpMinus1*dw
	denom := 4 * min32(w, 1)

	// Assumes the curve's parametric interval being linearized is [0,1].
	n := float32(math.Sqrt(float64(numer / denom)))
	return clampSubdivisions(n)
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
