package path

import (
	"testing"

	"github.com/flatland/canvas/geom"
)

func TestSegmentTypePointCountMatchesDataPoints(t *testing.T) {
	cases := []struct {
		typ      SegmentType
		dataPts  int
	}{
		{Start, 1},
		{Linear, 2},
		{Quad, 3},
		{Cubic, 4},
		{Close, 0},
	}
	for _, c := range cases {
		if got := c.typ.PointCount() - 1; got != c.dataPts {
			t.Errorf("%v.PointCount()-1 = %d, want %d", c.typ, got, c.dataPts)
		}
	}
}

func TestSegmentsDecodesPackedStream(t *testing.T) {
	b := NewBuilder()
	b.MoveTo(geom.Pt(0, 0))
	b.LineTo(geom.Pt(10, 0))
	b.QuadTo(geom.Pt(15, 5), geom.Pt(10, 10))
	b.CubicTo(geom.Pt(5, 15), geom.Pt(0, 15), geom.Pt(0, 10))
	b.Close()
	got, _ := b.TakePath()

	var kinds []SegmentType
	got.Segments(func(seg Segment) bool {
		kinds = append(kinds, seg.Type)
		if len(seg.Points) != seg.Type.PointCount()-1 {
			t.Errorf("segment %v carries %d data points, want %d", seg.Type, len(seg.Points), seg.Type.PointCount()-1)
		}
		return true
	})
	want := []SegmentType{Start, Linear, Quad, Cubic, Linear, Close}
	if len(kinds) != len(want) {
		t.Fatalf("got %d segments, want %d: %v", len(kinds), len(want), kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("segment %d = %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestSegmentsYieldFalseStopsIteration(t *testing.T) {
	b := NewBuilder()
	b.MoveTo(geom.Pt(0, 0))
	b.LineTo(geom.Pt(1, 0))
	b.LineTo(geom.Pt(1, 1))
	got, _ := b.TakePath()

	n := 0
	got.Segments(func(seg Segment) bool {
		n++
		return n < 1
	})
	if n != 1 {
		t.Errorf("iteration continued past yield returning false: n=%d", n)
	}
}

func TestEmptyPath(t *testing.T) {
	b := NewBuilder()
	got, _ := b.TakePath()
	if !got.IsEmpty() {
		t.Error("freshly taken path from an untouched builder is not empty")
	}
}
