// Package render adapts the teacher's CPU-backed render target into a
// software hostbuffer.Backend: a PixmapTarget gives Canvas somewhere to
// actually rasterize to without a live GPU device, for tests, examples,
// and headless tooling.
package render

import (
	"image"
	"image/color"
)

// PixmapTarget is a CPU-backed render target using *image.RGBA. Grounded
// on render/target.go's PixmapTarget, trimmed to the CPU path only: the
// teacher's TextureTarget/SurfaceTarget were GPU-backed stubs with no
// caller in this core (see DESIGN.md).
type PixmapTarget struct {
	img *image.RGBA
}

// NewPixmapTarget creates a new CPU-backed render target.
func NewPixmapTarget(width, height int) *PixmapTarget {
	return &PixmapTarget{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Width returns the target width in pixels.
func (t *PixmapTarget) Width() int { return t.img.Bounds().Dx() }

// Height returns the target height in pixels.
func (t *PixmapTarget) Height() int { return t.img.Bounds().Dy() }

// Pixels returns direct access to the pixel data, four bytes per pixel
// (R, G, B, A).
func (t *PixmapTarget) Pixels() []byte { return t.img.Pix }

// Stride returns the number of bytes per row.
func (t *PixmapTarget) Stride() int { return t.img.Stride }

// Image returns the underlying *image.RGBA. The returned image shares
// memory with the target.
func (t *PixmapTarget) Image() *image.RGBA { return t.img }

// Clear fills the entire target with c.
func (t *PixmapTarget) Clear(c color.Color) {
	r, g, b, a := c.RGBA()
	rgba := color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
	bounds := t.img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			t.img.SetRGBA(x, y, rgba)
		}
	}
}

// SetPixel sets a single pixel at (x, y).
func (t *PixmapTarget) SetPixel(x, y int, c color.Color) {
	t.img.Set(x, y, c)
}

// GetPixel returns the color at (x, y).
func (t *PixmapTarget) GetPixel(x, y int) color.Color {
	return t.img.At(x, y)
}
