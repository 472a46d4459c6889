package tessellate

import (
	flatland "github.com/flatland/canvas"
	"github.com/flatland/canvas/geom"
	"github.com/flatland/canvas/path"
)

// initialCapacity is the starting size, in elements, of each arena.
const initialCapacity = 65536

// maxIndex is the largest vertex index a uint16-wide index buffer can
// address. The arena is never reset between draws, so a long recording
// session can accumulate more than 65536 vertices; once it does, a whole
// contour or stroke edge that would need an out-of-range index is dropped
// rather than wrapping silently.
const maxIndex = 1<<16 - 1

func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 0
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// FillStrategy is an interface for a pluggable fill tessellation that
// writes into a Tessellator's arenas. Nothing in this package implements
// or consumes it: Tessellator.TriangulateFill (centroid-anchored fan
// triangulation) takes no Tessellator argument and so does not satisfy
// it, and callers invoke TriangulateFill directly.
type FillStrategy interface {
	TriangulateFill(t *Tessellator, p *path.Path, scaleFactor float32) (vertexOffset, vertexCount, indexOffset, indexCount int)
}

// Tessellator accumulates vertex and index data for one or more paths into
// a pair of growable arenas, doubling capacity (to the next power of two)
// whenever an append would overflow, starting from initialCapacity.
type Tessellator struct {
	points  []geom.Point
	indices []uint16
}

// New returns an empty Tessellator.
func New() *Tessellator {
	return &Tessellator{
		points:  make([]geom.Point, 0, initialCapacity),
		indices: make([]uint16, 0, initialCapacity),
	}
}

// Reset empties both arenas without releasing their backing storage.
func (t *Tessellator) Reset() {
	t.points = t.points[:0]
	t.indices = t.indices[:0]
}

// Points returns the accumulated vertex arena.
func (t *Tessellator) Points() []geom.Point { return t.points }

// Indices returns the accumulated index arena.
func (t *Tessellator) Indices() []uint16 { return t.indices }

// hasRoom reports whether n more vertices can be appended without any of
// their indices exceeding maxIndex.
func (t *Tessellator) hasRoom(n int) bool {
	return len(t.points)+n <= maxIndex+1
}

func (t *Tessellator) reserveVerts(additional int) {
	need := len(t.points) + additional
	if need <= cap(t.points) {
		return
	}
	newCap := nextPowerOfTwo(need)
	if newCap < initialCapacity {
		newCap = initialCapacity
	}
	grown := make([]geom.Point, len(t.points), newCap)
	copy(grown, t.points)
	t.points = grown
}

func (t *Tessellator) reserveIndices(additional int) {
	need := len(t.indices) + additional
	if need <= cap(t.indices) {
		return
	}
	newCap := nextPowerOfTwo(need)
	if newCap < initialCapacity {
		newCap = initialCapacity
	}
	grown := make([]uint16, len(t.indices), newCap)
	copy(grown, t.indices)
	t.indices = grown
}

func (t *Tessellator) addVertex(p geom.Point) uint16 {
	t.reserveVerts(1)
	t.points = append(t.points, p)
	return uint16(len(t.points) - 1)
}

// emitTriangle appends one triangle's three indices, skipping degenerate
// (zero-area) triangles via a cross-product area test.
func (t *Tessellator) emitTriangle(a, b, c uint16) {
	pa, pb, pc := t.points[a], t.points[b], t.points[c]
	area := pb.Sub(pa).Cross(pc.Sub(pa))
	if area == 0 {
		return
	}
	t.reserveIndices(3)
	t.indices = append(t.indices, a, b, c)
}

// Write copies the arena's current contents into caller-supplied
// destination slices (e.g. a host buffer allocation) and returns the
// number of vertices and indices written. It writes min(len(dst), len(src))
// of each, mirroring a bounded upload.
func (t *Tessellator) Write(vertsDst []geom.Point, idxDst []uint16) (int, int) {
	nv := copy(vertsDst, t.points)
	ni := copy(idxDst, t.indices)
	return nv, ni
}

// flattenedRing walks a single contour starting at contourStart, using
// Wang's-formula subdivision counts to flatten every curved segment into a
// polyline, and returns the resulting closed ring of points (the contour
// start point followed by every subsequent flattened point, endpoint
// inclusive, in contour order).
func flattenedRing(contourStart geom.Point, segments []path.Segment, scaleFactor float32) []geom.Point {
	ring := []geom.Point{contourStart}
	last := contourStart
	for _, seg := range segments {
		switch seg.Type {
		case path.Start:
			// handled by caller as the ring's anchor
		case path.Linear:
			to := seg.Points[1]
			ring = append(ring, to)
			last = to
		case path.Quad:
			from, cp, to := seg.Points[0], seg.Points[1], seg.Points[2]
			n := ComputeQuadradicSubdivisions(scaleFactor, from, cp, to)
			for i := 1; i <= n; i++ {
				ring = append(ring, geom.EvalQuad(from, cp, to, float32(i)/float32(n)))
			}
			last = to
		case path.Cubic:
			from, c1, c2, to := seg.Points[0], seg.Points[1], seg.Points[2], seg.Points[3]
			n := ComputeCubicSubdivisions(scaleFactor, from, c1, c2, to)
			for i := 1; i <= n; i++ {
				ring = append(ring, geom.EvalCubic(from, c1, c2, to, float32(i)/float32(n)))
			}
			last = to
		case path.Close:
			// the closing edge was already emitted as a Linear segment
		}
	}
	_ = last
	// A Close segment emits an explicit edge back to the contour's start,
	// which duplicates ring[0]; drop it so the fan's wraparound triangle
	// (prev, first) covers that edge instead of a zero-length one.
	if len(ring) > 1 && ring[len(ring)-1] == ring[0] {
		ring = ring[:len(ring)-1]
	}
	return ring
}

// contours splits a path's decoded segment stream into one []Segment per
// Start-delimited contour, along with each contour's anchor point and
// whether it ended in an explicit Close.
func contours(p *path.Path) (anchors []geom.Point, segLists [][]path.Segment, closed []bool) {
	var cur []path.Segment
	var curClosed bool
	flush := func() {
		if cur != nil {
			segLists = append(segLists, cur)
			closed = append(closed, curClosed)
		}
	}
	p.Segments(func(seg path.Segment) bool {
		if seg.Type == path.Start {
			flush()
			anchors = append(anchors, seg.Points[0])
			cur = nil
			curClosed = false
			return true
		}
		if seg.Type == path.Close {
			curClosed = true
			return true
		}
		cur = append(cur, seg)
		return true
	})
	flush()
	return anchors, segLists, closed
}

// TriangulateFill appends a centroid-anchored triangle fan for every
// contour of p into the arena: each contour is flattened to a polygon
// ring, a centroid vertex is added, and the ring is fanned around it.
// Degenerate (zero-area) triangles are silently skipped. It returns the
// region of the arena the new data occupies.
func (t *Tessellator) TriangulateFill(p *path.Path, scaleFactor float32) (vertexOffset, vertexCount, indexOffset, indexCount int) {
	vertexOffset = len(t.points)
	indexOffset = len(t.indices)

	anchors, segLists, _ := contours(p)
	for ci, anchor := range anchors {
		ring := flattenedRing(anchor, segLists[ci], scaleFactor)
		if len(ring) < 3 {
			continue
		}
		if !t.hasRoom(len(ring) + 1) {
			flatland.Logger().Warn("tessellate: contour dropped, vertex arena exhausted uint16 index range", "ring", len(ring))
			continue
		}

		var centroid geom.Point
		for _, pt := range ring {
			centroid = centroid.Add(pt)
		}
		centroid = centroid.Mul(1 / float32(len(ring)))

		centroidIdx := t.addVertex(centroid)
		first := t.addVertex(ring[0])
		prev := first
		for i := 1; i < len(ring); i++ {
			cur := t.addVertex(ring[i])
			t.emitTriangle(centroidIdx, prev, cur)
			prev = cur
		}
		t.emitTriangle(centroidIdx, prev, first)
	}

	vertexCount = len(t.points) - vertexOffset
	indexCount = len(t.indices) - indexOffset
	return
}

// TriangulateStroke appends a perpendicular-extrusion quad (two triangles)
// for every flattened edge of p's contours into the arena: no caps or
// joins are generated between edges. It returns the region of the arena
// the new data occupies.
func (t *Tessellator) TriangulateStroke(p *path.Path, strokeWidth, scaleFactor float32) (vertexOffset, vertexCount, indexOffset, indexCount int) {
	vertexOffset = len(t.points)
	indexOffset = len(t.indices)
	half := strokeWidth / 2

	anchors, segLists, closed := contours(p)
	for ci, anchor := range anchors {
		ring := flattenedRing(anchor, segLists[ci], scaleFactor)
		edges := len(ring) - 1
		if closed[ci] && len(ring) > 1 {
			edges = len(ring)
		}
		for i := 0; i < edges; i++ {
			a := ring[i]
			b := ring[(i+1)%len(ring)]
			edge := b.Sub(a)
			length := edge.Length()
			if length == 0 {
				continue
			}
			if !t.hasRoom(4) {
				flatland.Logger().Warn("tessellate: stroke edge dropped, vertex arena exhausted uint16 index range")
				continue
			}
			normal := geom.Pt(-edge.Y, edge.X).Mul(half / length)

			v0 := t.addVertex(a.Add(normal))
			v1 := t.addVertex(a.Sub(normal))
			v2 := t.addVertex(b.Add(normal))
			v3 := t.addVertex(b.Sub(normal))
			t.emitTriangle(v0, v1, v2)
			t.emitTriangle(v1, v3, v2)
		}
	}

	vertexCount = len(t.points) - vertexOffset
	indexCount = len(t.indices) - indexOffset
	return
}
