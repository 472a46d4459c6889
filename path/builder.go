package path

import "github.com/flatland/canvas/geom"

// Builder accumulates path segments and freezes them into an immutable
// Path via TakePath. It implements the invariants: a moveTo to the current
// point of an open contour is a no-op, draw calls with no open contour implicitly open one,
// close() on a zero-length contour is a no-op, and TakePath resets all
// accumulators.
type Builder struct {
	points   []geom.Point
	bounds   geom.Rect
	hasOpen  bool
	current  geom.Point
	start    geom.Point
	contours int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	b := &Builder{bounds: geom.EmptyRect()}
	return b
}

func tagPoint(t SegmentType) geom.Point {
	return geom.Pt(float32(t), 0)
}

func (b *Builder) include(pts ...geom.Point) {
	for _, p := range pts {
		b.bounds = b.bounds.UnionPoint(p)
	}
}

func (b *Builder) openContour(at geom.Point) {
	b.points = append(b.points, tagPoint(Start), at)
	b.include(at)
	b.start = at
	b.current = at
	b.hasOpen = true
}

// MoveTo begins a new contour at p. While a contour is open, a move to its
// current point is a no-op.
func (b *Builder) MoveTo(p geom.Point) {
	if b.hasOpen && p == b.current {
		return
	}
	b.openContour(p)
}

// LineTo appends a linear segment from the current point to p, implicitly
// opening a contour at the current point (the zero point if none has been
// set) if none is open.
func (b *Builder) LineTo(p geom.Point) {
	if !b.hasOpen {
		b.openContour(b.current)
	}
	from := b.current
	b.points = append(b.points, tagPoint(Linear), from, p)
	b.include(p)
	b.current = p
}

// QuadTo appends a quadratic Bezier segment.
func (b *Builder) QuadTo(cp, p geom.Point) {
	if !b.hasOpen {
		b.openContour(b.current)
	}
	from := b.current
	b.points = append(b.points, tagPoint(Quad), from, cp, p)
	b.include(cp, p)
	b.current = p
}

// CubicTo appends a cubic Bezier segment.
func (b *Builder) CubicTo(c1, c2, p geom.Point) {
	if !b.hasOpen {
		b.openContour(b.current)
	}
	from := b.current
	b.points = append(b.points, tagPoint(Cubic), from, c1, c2, p)
	b.include(c1, c2, p)
	b.current = p
}

// HorizontalTo appends a linear segment to (x, currentY).
func (b *Builder) HorizontalTo(x float32) {
	b.LineTo(geom.Pt(x, b.current.Y))
}

// VerticalTo appends a linear segment to (currentX, y).
func (b *Builder) VerticalTo(y float32) {
	b.LineTo(geom.Pt(b.current.X, y))
}

// Close terminates the current contour, emitting a linear edge back to the
// contour's start point when the contour has nonzero length, followed by a
// Close segment. Closing a zero-length (or absent) contour is a no-op.
func (b *Builder) Close() {
	if !b.hasOpen {
		return
	}
	if b.current == b.start {
		return
	}
	from := b.current
	b.points = append(b.points, tagPoint(Linear), from, b.start)
	b.points = append(b.points, tagPoint(Close))
	b.current = b.start
	b.hasOpen = false
	b.contours++
}

// AddRect forces a close of any open contour, then emits the rect's four
// edges in clockwise order (top edge left-to-right, then down the right
// side, then right-to-left along the bottom, then up the left side) and
// closes again.
func (b *Builder) AddRect(r geom.Rect) {
	b.Close()
	b.MoveTo(geom.Pt(r.Left, r.Top))
	b.LineTo(geom.Pt(r.Right, r.Top))
	b.LineTo(geom.Pt(r.Right, r.Bottom))
	b.LineTo(geom.Pt(r.Left, r.Bottom))
	b.Close()
}

// TakePath freezes the accumulated segments into a Path, computes its
// convexity, and resets the builder for reuse. It returns the frozen path
// and the final current point (useful to callers chaining further drawing
// relative to where this path left off).
func (b *Builder) TakePath() (*Path, geom.Point) {
	p := &Path{
		points: b.points,
		bounds: b.bounds,
	}
	if b.contours == 1 {
		p.isConvex = analyzeSingleContour(p)
	}
	last := b.current

	b.points = nil
	b.bounds = geom.EmptyRect()
	b.hasOpen = false
	b.current = geom.Point{}
	b.start = geom.Point{}
	b.contours = 0

	return p, last
}

// analyzeSingleContour runs the Convexicator over a path already known to
// contain exactly one contour.
func analyzeSingleContour(p *Path) bool {
	var segs []Segment
	contourStart := geom.Point{}
	first := true
	p.Segments(func(seg Segment) bool {
		if seg.Type == Start && first {
			contourStart = seg.Points[0]
			first = false
		}
		segs = append(segs, seg)
		return true
	})
	return AnalyzePath(contourStart, segs)
}
