package path

import (
	"testing"

	"github.com/flatland/canvas/geom"
)

func TestMoveLineCloseBounds(t *testing.T) {
	b := NewBuilder()
	p1 := geom.Pt(1, 2)
	p2 := geom.Pt(5, 9)
	b.MoveTo(p1)
	b.LineTo(p2)
	b.Close()

	got, _ := b.TakePath()
	want := geom.MakeRect(1, 2, 5, 9)
	if got.Bounds() != want {
		t.Errorf("Bounds() = %+v, want %+v", got.Bounds(), want)
	}
}

func TestMoveToCurrentPointIsNoOp(t *testing.T) {
	b := NewBuilder()
	p := geom.Pt(3, 3)
	b.MoveTo(p)
	b.MoveTo(p)
	b.LineTo(geom.Pt(8, 3))
	got, _ := b.TakePath()

	count := 0
	got.Segments(func(seg Segment) bool {
		if seg.Type == Start {
			count++
		}
		return true
	})
	if count != 1 {
		t.Errorf("got %d Start segments, want 1 (redundant MoveTo should be a no-op)", count)
	}
}

func TestLineToWithNoOpenContourInsertsImplicitStart(t *testing.T) {
	b := NewBuilder()
	b.LineTo(geom.Pt(4, 0))
	got, _ := b.TakePath()

	first := true
	got.Segments(func(seg Segment) bool {
		if first {
			if seg.Type != Start {
				t.Errorf("first segment = %v, want Start", seg.Type)
			}
			first = false
		}
		return true
	})
}

func TestCloseOnZeroLengthContourIsNoOp(t *testing.T) {
	b := NewBuilder()
	b.MoveTo(geom.Pt(2, 2))
	b.Close()
	got, _ := b.TakePath()

	n := 0
	got.Segments(func(seg Segment) bool {
		n++
		return true
	})
	if n != 1 {
		t.Errorf("got %d segments after closing a zero-length contour, want 1 (just the Start)", n)
	}
}

func TestTakePathResetsAccumulators(t *testing.T) {
	b := NewBuilder()
	b.MoveTo(geom.Pt(0, 0))
	b.LineTo(geom.Pt(10, 10))
	b.Close()
	b.TakePath()

	b.MoveTo(geom.Pt(100, 100))
	b.LineTo(geom.Pt(110, 100))
	b.Close()
	got, _ := b.TakePath()

	want := geom.MakeRect(100, 100, 110, 100)
	if got.Bounds() != want {
		t.Errorf("Bounds() after reuse = %+v, want %+v (builder did not reset)", got.Bounds(), want)
	}
}

func TestAddRectEmitsClockwiseQuad(t *testing.T) {
	b := NewBuilder()
	b.AddRect(geom.MakeRect(0, 0, 10, 10))
	got, _ := b.TakePath()

	var pts []geom.Point
	got.Segments(func(seg Segment) bool {
		if seg.Type == Linear {
			pts = append(pts, seg.Points[1])
		}
		return true
	})
	want := []geom.Point{geom.Pt(10, 0), geom.Pt(10, 10), geom.Pt(0, 10), geom.Pt(0, 0)}
	if len(pts) != len(want) {
		t.Fatalf("got %d linear edges, want %d", len(pts), len(want))
	}
	for i := range want {
		if pts[i] != want[i] {
			t.Errorf("edge %d endpoint = %+v, want %+v", i, pts[i], want[i])
		}
	}
	if !got.IsConvex() {
		t.Error("rectangle reported non-convex")
	}
}

func TestMultiContourForcesNonConvex(t *testing.T) {
	b := NewBuilder()
	b.MoveTo(geom.Pt(0, 0))
	b.LineTo(geom.Pt(1, 0))
	b.LineTo(geom.Pt(0, 1))
	b.Close()
	b.MoveTo(geom.Pt(5, 5))
	b.LineTo(geom.Pt(6, 5))
	b.LineTo(geom.Pt(5, 6))
	b.Close()
	got, _ := b.TakePath()

	if got.IsConvex() {
		t.Error("multi-contour path reported convex")
	}
}
