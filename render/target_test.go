package render

import (
	"testing"

	"github.com/flatland/canvas/hostbuffer"
	"golang.org/x/image/colornames"
)

func TestPixmapTargetClearAndGetPixel(t *testing.T) {
	target := NewPixmapTarget(4, 4)
	target.Clear(colornames.Cornflowerblue)

	got := target.GetPixel(2, 2)
	r, g, b, a := got.RGBA()
	wr, wg, wb, wa := colornames.Cornflowerblue.RGBA()
	if r != wr || g != wg || b != wb || a != wa {
		t.Errorf("GetPixel(2,2) = %v, want %v", got, colornames.Cornflowerblue)
	}
}

func TestPixmapTargetSetPixel(t *testing.T) {
	target := NewPixmapTarget(2, 2)
	target.SetPixel(0, 0, colornames.Crimson)
	target.SetPixel(1, 1, colornames.Forestgreen)

	if r, g, b, a := target.GetPixel(0, 1).RGBA(); r != 0 || g != 0 || b != 0 || a != 0 {
		t.Errorf("untouched pixel = (%d,%d,%d,%d), want transparent black", r, g, b, a)
	}
	gr, gg, gb, _ := target.GetPixel(1, 1).RGBA()
	wr, wg, wb, _ := colornames.Forestgreen.RGBA()
	if gr != wr || gg != wg || gb != wb {
		t.Errorf("GetPixel(1,1) = %v, want %v", target.GetPixel(1, 1), colornames.Forestgreen)
	}
}

func TestPixmapBackendCreateBufferAndTexture(t *testing.T) {
	backend := NewPixmapBackend()

	buf, err := backend.CreateBuffer(1024, 0)
	if err != nil {
		t.Fatalf("CreateBuffer() error = %v", err)
	}
	if buf == nil {
		t.Fatal("CreateBuffer() returned a nil buffer")
	}

	tex, err := backend.CreateTexture(hostbuffer.TextureDescriptor{Width: 64, Height: 32})
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}
	pixmap, ok := tex.(*PixmapTarget)
	if !ok {
		t.Fatalf("CreateTexture() returned %T, want *PixmapTarget", tex)
	}
	if pixmap.Width() != 64 || pixmap.Height() != 32 {
		t.Errorf("dimensions = %dx%d, want 64x32", pixmap.Width(), pixmap.Height())
	}
}
