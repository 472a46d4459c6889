package path

import (
	"math"

	"github.com/flatland/canvas/geom"
)

// direction classifies the turn between two consecutive edge vectors.
type direction int

const (
	dirLeft direction = iota
	dirRight
	dirStraight
	dirInvalid
)

// Convexicator performs the single-pass, O(n) turn-direction analysis used
// to classify a finished contour as convex. It is grounded directly on the
// source's edge-triple cross-product walk: colinear edges are skipped,
// doubling-back edges (cross=0 with a negative dot product) and NaN cross
// products invalidate convexity, and any two edges that turn in opposite
// senses invalidate convexity.
type Convexicator struct {
	expectedSet bool
	expected    direction
	convex      bool
}

// NewConvexicator returns a Convexicator ready to accumulate edges.
func NewConvexicator() *Convexicator {
	return &Convexicator{convex: true}
}

// computeDirection classifies the turn from prevVec to curVec.
func computeDirection(prevVec, curVec geom.Point) direction {
	cross := prevVec.Cross(curVec)
	if math.IsNaN(float64(cross)) {
		return dirInvalid
	}
	if cross == 0 {
		if prevVec.Dot(curVec) < 0 {
			return dirInvalid
		}
		return dirStraight
	}
	if cross < 0 {
		return dirLeft
	}
	return dirRight
}

// AddEdge feeds one more edge triple (prev -> p0 -> p1) into the analysis.
// It returns false once convexity has been invalidated; callers may keep
// calling AddEdge afterward (it is idempotent once invalid) but the
// eventual IsConvex() result will remain false.
func (c *Convexicator) AddEdge(prev, p0, p1 geom.Point) bool {
	if !c.convex {
		return false
	}
	prevVec := p0.Sub(prev)
	curVec := p1.Sub(p0)
	dir := computeDirection(prevVec, curVec)

	switch dir {
	case dirLeft, dirRight:
		if !c.expectedSet {
			c.expected = dir
			c.expectedSet = true
			return true
		}
		if c.expected != dir {
			c.convex = false
			c.expectedSet = false
			return false
		}
		return true
	case dirStraight:
		return true
	default: // dirInvalid
		c.convex = false
		return false
	}
}

// IsConvex returns the accumulated convexity verdict.
func (c *Convexicator) IsConvex() bool {
	return c.convex
}

// AnalyzePath walks every segment of a single contour (as decoded by
// Path.Segments) feeding edges to the Convexicator and returns the final
// verdict. contourStart is the point preceding the first segment (the
// contour's Start point).
func AnalyzePath(contourStart geom.Point, segments []Segment) bool {
	c := NewConvexicator()
	last := contourStart
	for _, seg := range segments {
		switch seg.Type {
		case Start:
			// Nothing to analyze yet; the next segment's edge uses this
			// point as its predecessor.
		case Linear:
			from, to := seg.Points[0], seg.Points[1]
			c.AddEdge(last, from, to)
			last = from
		case Quad:
			from, cp, to := seg.Points[0], seg.Points[1], seg.Points[2]
			c.AddEdge(last, from, cp)
			c.AddEdge(from, cp, to)
			last = cp
		case Cubic:
			from, c1, c2, to := seg.Points[0], seg.Points[1], seg.Points[2], seg.Points[3]
			c.AddEdge(last, from, c1)
			c.AddEdge(from, c1, c2)
			c.AddEdge(c1, c2, to)
			last = c2
		case Close:
			// No edge contribution: the closing edge was already emitted
			// as an explicit Linear segment by the builder.
		}
	}
	return c.IsConvex()
}
