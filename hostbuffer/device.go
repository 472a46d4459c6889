package hostbuffer

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle is an alias for gpucontext.DeviceProvider, matching the
// name render/device.go gives the same interface: the host application
// (e.g. a gogpu.App) implements it and hands it down so this package
// shares the host's GPU device rather than creating its own.
type DeviceHandle = gpucontext.DeviceProvider

// DeviceBackend adapts a DeviceHandle into a Backend. HostBuffer only
// ever calls CreateBuffer/CreateTexture through the Backend interface; the
// actual device-level allocation calls are supplied by the host
// application via CreateBufferFunc/CreateTextureFunc, since those live on
// the concrete wgpu/hal device gpucontext.DeviceProvider abstracts over
// rather than on DeviceProvider itself.
type DeviceBackend struct {
	Handle            DeviceHandle
	CreateBufferFunc  func(DeviceHandle, uint64, gputypes.BufferUsage) (Buffer, error)
	CreateTextureFunc func(DeviceHandle, TextureDescriptor) (Texture, error)
}

// NewDeviceBackend constructs a Backend bound to handle.
func NewDeviceBackend(handle DeviceHandle, createBuffer func(DeviceHandle, uint64, gputypes.BufferUsage) (Buffer, error), createTexture func(DeviceHandle, TextureDescriptor) (Texture, error)) *DeviceBackend {
	return &DeviceBackend{Handle: handle, CreateBufferFunc: createBuffer, CreateTextureFunc: createTexture}
}

// CreateBuffer implements Backend.
func (d *DeviceBackend) CreateBuffer(size uint64, usage gputypes.BufferUsage) (Buffer, error) {
	return d.CreateBufferFunc(d.Handle, size, usage)
}

// CreateTexture implements Backend.
func (d *DeviceBackend) CreateTexture(desc TextureDescriptor) (Texture, error) {
	return d.CreateTextureFunc(d.Handle, desc)
}
