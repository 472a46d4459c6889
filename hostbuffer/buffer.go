// Package hostbuffer implements the host-side GPU buffer allocator: a
// first-fit persistent arena, a triple-buffered transient arena, and
// memoized texture allocation, all delegating actual buffer/texture
// creation to a small Backend collaborator so this package never depends
// on a concrete GPU driver.
package hostbuffer

import "github.com/gogpu/gputypes"

// Buffer is an opaque GPU buffer handle returned by a Backend. This
// package never inspects it beyond identity; it exists purely to be
// threaded back through a BufferView to whatever submits draw calls.
type Buffer any

// Texture is an opaque GPU texture handle returned by a Backend.
type Texture any

// TextureUsage flags how a texture will be bound; kept local (rather than
// reused from gputypes) so this package's public surface does not change
// shape if the driver's own texture-usage vocabulary does.
type TextureUsage uint32

const (
	TextureUsageSampled TextureUsage = 1 << iota
	TextureUsageRenderTarget
	TextureUsageCopySrc
	TextureUsageCopyDst
)

// TextureDescriptor describes a texture to allocate. Format uses
// gputypes.TextureFormat directly since that is the real enum vocabulary
// a submission backend built on github.com/gogpu/gpucontext already
// speaks.
type TextureDescriptor struct {
	Width, Height uint32
	Format        gputypes.TextureFormat
	Usage         TextureUsage
	SampleCount   uint32
}

// Backend is the external collaborator that turns allocation requests
// into real GPU resources. HostBuffer depends only on this interface, not
// on any concrete GPU driver, per the module's external-collaborator
// boundary.
type Backend interface {
	CreateBuffer(size uint64, usage gputypes.BufferUsage) (Buffer, error)
	CreateTexture(desc TextureDescriptor) (Texture, error)
}

// BufferView is a non-owning (buffer, offset) pair. Its buffer's lifetime
// equals the owning HostBuffer's lifetime.
type BufferView struct {
	Buffer Buffer
	Offset uint64
}

// IsValid reports whether the view names a buffer at all.
func (v BufferView) IsValid() bool {
	return v.Buffer != nil
}

// AlignTo returns the smallest nonnegative p such that (off+p) mod a == 0.
// An alignment of 0 or 1 requires no padding.
func AlignTo(off, a uint64) uint64 {
	if a <= 1 {
		return 0
	}
	rem := off % a
	if rem == 0 {
		return 0
	}
	return a - rem
}

type bufferMeta struct {
	buffer Buffer
	offset uint64
	size   uint64
}
