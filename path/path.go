// Package path implements the typed segment-stream path model: an
// immutable Path produced by a PathBuilder, plus the Convexicator used to
// classify a finished contour as convex.
package path

import "github.com/flatland/canvas/geom"

// SegmentType tags each segment in a Path's packed point stream.
type SegmentType int

const (
	Start SegmentType = iota
	Linear
	Quad
	Cubic
	Close
)

// PointCount returns the number of geom.Point slots a segment of this type
// occupies in the packed stream, including its leading tag point.
func (s SegmentType) PointCount() int {
	switch s {
	case Start:
		return 2
	case Linear:
		return 3
	case Quad:
		return 4
	case Cubic:
		return 5
	case Close:
		return 1
	default:
		return 0
	}
}

func (s SegmentType) String() string {
	switch s {
	case Start:
		return "Start"
	case Linear:
		return "Linear"
	case Quad:
		return "Quad"
	case Cubic:
		return "Cubic"
	case Close:
		return "Close"
	default:
		return "Unknown"
	}
}

// Segment is a decoded view of one packed segment: its type and the points
// that follow the tag slot (the contour start point for Start; the
// segment's start point, then its control point(s) if any, then its
// endpoint for Linear/Quad/Cubic; nothing for Close).
type Segment struct {
	Type   SegmentType
	Points []geom.Point
}

// Path is an immutable typed segment stream. Segments are packed as
// consecutive geom.Point runs; the first point of every segment carries the
// SegmentType tag in its X coordinate so a Path can be serialized as a flat
// []geom.Point, per the source format, while Segments()/iteration decode a
// friendlier []Segment view.
type Path struct {
	points   []geom.Point
	bounds   geom.Rect
	isConvex bool
}

// Points returns the raw packed point stream (read-only; callers must not
// mutate the returned slice).
func (p *Path) Points() []geom.Point {
	return p.points
}

// Bounds returns the path's precomputed, conservative AABB.
func (p *Path) Bounds() geom.Rect {
	return p.bounds
}

// IsConvex reports whether the Convexicator judged this path convex.
func (p *Path) IsConvex() bool {
	return p.isConvex
}

// IsEmpty reports whether the path has no segments.
func (p *Path) IsEmpty() bool {
	return len(p.points) == 0
}

// Segments is a push iterator over the decoded segment stream: it calls
// yield for each segment until yield returns false, walking the packed
// point representation and slicing out each segment's data points
// (excluding the leading tag point, which callers reading the coordinate
// value of the segment start should not need directly).
func (p *Path) Segments(yield func(Segment) bool) {
	i := 0
	for i < len(p.points) {
		tag := SegmentType(int(p.points[i].X))
		n := tag.PointCount()
		if n == 0 || i+n > len(p.points) {
			return
		}
		seg := Segment{Type: tag, Points: p.points[i+1 : i+n]}
		if !yield(seg) {
			return
		}
		i += n
	}
}
