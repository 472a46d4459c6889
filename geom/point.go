// Package geom provides the geometry primitives shared by every other
// package in this module: points, sizes, rectangles, a 4x4 projective
// matrix, and colors.
package geom

import "math"

// Point is a 2D point or vector with 32-bit components, matching the
// vertex format the tessellator and host buffer traffic in.
type Point struct {
	X, Y float32
}

// Pt is a convenience constructor for Point.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Add returns the vector sum of two points.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the vector difference of two points.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float32) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Dot returns the dot product of two vectors.
func (p Point) Dot(q Point) float32 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the 2D cross product (scalar, the z-component of the 3D
// cross product of the two vectors extended into the xy-plane).
func (p Point) Cross(q Point) float32 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the Euclidean length of the vector.
func (p Point) Length() float32 {
	return float32(math.Sqrt(float64(p.X*p.X + p.Y*p.Y)))
}

// Lerp performs linear interpolation between two points; t=0 returns p,
// t=1 returns q.
func (p Point) Lerp(q Point, t float32) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Abs returns the component-wise absolute value.
func (p Point) Abs() Point {
	return Point{X: float32(math.Abs(float64(p.X))), Y: float32(math.Abs(float64(p.Y)))}
}

// Max returns the component-wise maximum of two points.
func (p Point) Max(q Point) Point {
	return Point{X: max32(p.X, q.X), Y: max32(p.Y, q.Y)}
}

// Min returns the component-wise minimum of two points.
func (p Point) Min(q Point) Point {
	return Point{X: min32(p.X, q.X), Y: min32(p.Y, q.Y)}
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

// Size is a 2D width/height pair.
type Size struct {
	W, H float32
}
