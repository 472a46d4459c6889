package hostbuffer

import (
	"errors"
	"log/slog"
	"sync"

	flatland "github.com/flatland/canvas"
	"github.com/gogpu/gputypes"
)

const transientSlots = 3

// PersistentResult is the outcome of a successful AllocatePersistent
// call: an id for later LookupPersistent, plus the vertex ("position")
// and index buffer views.
type PersistentResult struct {
	ID       uint64
	Position BufferView
	Index    BufferView
}

type transientSlot struct {
	buffers []bufferMeta
}

// HostBuffer implements the persistent first-fit arena, the triple
// buffered transient arena, and texture allocation/memoization described
// in the module's host-buffer design.
type HostBuffer struct {
	mu      sync.RWMutex
	backend Backend
	minSize uint64
	logger  *slog.Logger

	persistent       []bufferMeta
	nextPersistentID uint64
	persistentLookup map[uint64]PersistentResult

	transient      [transientSlots]transientSlot
	transientIndex int
	transientBuf   int

	nextTextureID uint64
	textures      map[uint64]Texture
	msaaCache     map[uint64][2]Texture

	lastErr error
}

// New constructs a HostBuffer. A Backend must be supplied via WithBackend
// for any allocation to succeed.
func New(opts ...HostBufferOption) *HostBuffer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger
	if logger == nil {
		logger = flatland.Logger()
	}
	return &HostBuffer{
		backend:          o.backend,
		minSize:          o.minBufferSize,
		logger:           logger,
		persistentLookup: make(map[uint64]PersistentResult),
		textures:         make(map[uint64]Texture),
		msaaCache:        make(map[uint64][2]Texture),
	}
}

// LastError returns the most recent AllocationError this HostBuffer
// encountered, or nil if every allocation so far has succeeded.
func (hb *HostBuffer) LastError() error {
	hb.mu.RLock()
	defer hb.mu.RUnlock()
	return hb.lastErr
}

func (hb *HostBuffer) fail(arena string, requested uint64, err error) error {
	allocErr := &AllocationError{Arena: arena, Requested: requested, Err: err}
	hb.lastErr = allocErr
	hb.logger.Warn("hostbuffer: allocation failed", "arena", arena, "requested", requested, "err", err)
	return allocErr
}

func (hb *HostBuffer) bufferSize(need uint64) uint64 {
	if need < hb.minSize {
		return hb.minSize
	}
	return need
}

// AllocatePersistent performs a first-fit allocation of v_bytes of vertex
// data followed (with align padding) by i_bytes of index data, scanning
// existing persistent buffers before creating a new one. Persistent
// allocations are never freed; their lifetime equals the HostBuffer's.
func (hb *HostBuffer) AllocatePersistent(vBytes, iBytes, align uint64) (PersistentResult, error) {
	hb.mu.Lock()
	defer hb.mu.Unlock()

	if hb.backend == nil {
		return PersistentResult{}, hb.fail("persistent", vBytes+iBytes, errors.New("no backend configured"))
	}

	pad := AlignTo(vBytes, align)
	need := vBytes + pad + iBytes

	for i := range hb.persistent {
		m := &hb.persistent[i]
		start := m.offset + AlignTo(m.offset, align)
		if m.size-start < need {
			continue
		}
		posOffset := start
		idxOffset := posOffset + vBytes + pad
		m.offset = idxOffset + iBytes
		return hb.finishPersistent(m.buffer, posOffset, idxOffset), nil
	}

	size := hb.bufferSize(need)
	buf, err := hb.backend.CreateBuffer(size, gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return PersistentResult{}, hb.fail("persistent", need, err)
	}
	hb.logger.Info("hostbuffer: new persistent buffer", "size", size)

	posOffset := uint64(0)
	idxOffset := posOffset + vBytes + pad
	hb.persistent = append(hb.persistent, bufferMeta{
		buffer: buf,
		offset: idxOffset + iBytes,
		size:   size,
	})
	return hb.finishPersistent(buf, posOffset, idxOffset), nil
}

func (hb *HostBuffer) finishPersistent(buf Buffer, posOffset, idxOffset uint64) PersistentResult {
	id := hb.nextPersistentID
	hb.nextPersistentID++
	result := PersistentResult{
		ID:       id,
		Position: BufferView{Buffer: buf, Offset: posOffset},
		Index:    BufferView{Buffer: buf, Offset: idxOffset},
	}
	hb.persistentLookup[id] = result
	return result
}

// LookupPersistent returns the result of a prior AllocatePersistent call,
// or the zero PersistentResult and false if id is unknown.
func (hb *HostBuffer) LookupPersistent(id uint64) (PersistentResult, bool) {
	hb.mu.RLock()
	defer hb.mu.RUnlock()
	r, ok := hb.persistentLookup[id]
	return r, ok
}

// GetTransientArena returns a view of bytes bytes, aligned to align,
// from the current transient slot, rolling to the next buffer within the
// slot when space runs out and allocating a new one when every buffer in
// the slot is full.
func (hb *HostBuffer) GetTransientArena(bytes, align uint64) (BufferView, error) {
	hb.mu.Lock()
	defer hb.mu.Unlock()

	if hb.backend == nil {
		return BufferView{}, hb.fail("transient", bytes, errors.New("no backend configured"))
	}

	slot := &hb.transient[hb.transientIndex]
	for {
		if hb.transientBuf >= len(slot.buffers) {
			size := hb.bufferSize(bytes)
			buf, err := hb.backend.CreateBuffer(size, gputypes.BufferUsageMapWrite|gputypes.BufferUsageCopySrc)
			if err != nil {
				return BufferView{}, hb.fail("transient", bytes, err)
			}
			hb.logger.Debug("hostbuffer: new transient buffer", "slot", hb.transientIndex, "size", size)
			slot.buffers = append(slot.buffers, bufferMeta{buffer: buf, offset: 0, size: size})
		}

		m := &slot.buffers[hb.transientBuf]
		start := m.offset + AlignTo(m.offset, align)
		if m.size-start >= bytes {
			m.offset = start + bytes
			return BufferView{Buffer: m.buffer, Offset: start}, nil
		}
		hb.transientBuf++
	}
}

// IncrementTransientBuffer advances to the next of the three transient
// slots, resetting that slot's buffers so it can be reused for a fresh
// frame's data while the previous two slots remain available to the GPU.
func (hb *HostBuffer) IncrementTransientBuffer() {
	hb.mu.Lock()
	defer hb.mu.Unlock()

	hb.transientIndex = (hb.transientIndex + 1) % transientSlots
	hb.transientBuf = 0
	slot := &hb.transient[hb.transientIndex]
	for i := range slot.buffers {
		slot.buffers[i].offset = 0
	}
}

// AllocateTexture asks the backend for a new texture and returns it along
// with a monotonically increasing id.
func (hb *HostBuffer) AllocateTexture(desc TextureDescriptor) (Texture, uint64, error) {
	hb.mu.Lock()
	defer hb.mu.Unlock()

	tex, err := hb.allocateTextureLocked(desc)
	if err != nil {
		return nil, 0, err
	}
	id := hb.nextTextureID
	hb.nextTextureID++
	hb.textures[id] = tex
	return tex, id, nil
}

// AllocateTempTexture asks the backend for a new texture without
// recording an id; the caller owns its lifetime.
func (hb *HostBuffer) AllocateTempTexture(desc TextureDescriptor) (Texture, error) {
	hb.mu.Lock()
	defer hb.mu.Unlock()
	return hb.allocateTextureLocked(desc)
}

func (hb *HostBuffer) allocateTextureLocked(desc TextureDescriptor) (Texture, error) {
	if hb.backend == nil {
		return nil, hb.fail("texture", uint64(desc.Width)*uint64(desc.Height), errors.New("no backend configured"))
	}
	tex, err := hb.backend.CreateTexture(desc)
	if err != nil {
		return nil, hb.fail("texture", uint64(desc.Width)*uint64(desc.Height), err)
	}
	return tex, nil
}

// GetTexture returns a previously allocated texture by id.
func (hb *HostBuffer) GetTexture(id uint64) (Texture, bool) {
	hb.mu.RLock()
	defer hb.mu.RUnlock()
	t, ok := hb.textures[id]
	return t, ok
}

func msaaKey(w, h uint32) uint64 {
	return (uint64(w) << 32) | uint64(h)
}

// CreateMSAATextures returns a memoized (color, depthStencil) MSAA
// texture pair for the given dimensions, creating it on first request.
func (hb *HostBuffer) CreateMSAATextures(w, h uint32) ([2]Texture, error) {
	hb.mu.Lock()
	defer hb.mu.Unlock()

	key := msaaKey(w, h)
	if pair, ok := hb.msaaCache[key]; ok {
		return pair, nil
	}

	color, err := hb.allocateTextureLocked(TextureDescriptor{
		Width: w, Height: h,
		Format:      gputypes.TextureFormatBGRA8Unorm,
		Usage:       TextureUsageRenderTarget,
		SampleCount: 4,
	})
	if err != nil {
		return [2]Texture{}, err
	}
	depthStencil, err := hb.allocateTextureLocked(TextureDescriptor{
		Width: w, Height: h,
		Format:      gputypes.TextureFormatDepth24PlusStencil8,
		Usage:       TextureUsageRenderTarget,
		SampleCount: 4,
	})
	if err != nil {
		return [2]Texture{}, err
	}

	pair := [2]Texture{color, depthStencil}
	hb.msaaCache[key] = pair
	hb.logger.Info("hostbuffer: created MSAA textures", "width", w, "height", h)
	return pair, nil
}
