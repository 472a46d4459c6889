package render

import (
	"github.com/flatland/canvas/hostbuffer"
	"github.com/gogpu/gputypes"
)

// cpuBuffer is a plain host-memory stand-in for a GPU buffer, used by
// PixmapBackend in place of a real mapped device allocation.
type cpuBuffer struct {
	data  []byte
	usage gputypes.BufferUsage
}

// PixmapBackend implements hostbuffer.Backend entirely on the CPU: buffers
// are plain byte slices and textures are PixmapTarget instances. It gives
// Canvas a real, runnable destination without a gpucontext.DeviceProvider,
// the way the teacher's PixmapTarget serves pure CPU rendering workflows.
type PixmapBackend struct{}

// NewPixmapBackend returns a ready-to-use PixmapBackend.
func NewPixmapBackend() *PixmapBackend {
	return &PixmapBackend{}
}

// CreateBuffer implements hostbuffer.Backend.
func (PixmapBackend) CreateBuffer(size uint64, usage gputypes.BufferUsage) (hostbuffer.Buffer, error) {
	return &cpuBuffer{data: make([]byte, size), usage: usage}, nil
}

// CreateTexture implements hostbuffer.Backend, ignoring desc.Format: every
// CPU texture is backed by an *image.RGBA regardless of the requested GPU
// format, since there is no driver here to honor it.
func (PixmapBackend) CreateTexture(desc hostbuffer.TextureDescriptor) (hostbuffer.Texture, error) {
	return NewPixmapTarget(int(desc.Width), int(desc.Height)), nil
}

var _ hostbuffer.Backend = PixmapBackend{}
