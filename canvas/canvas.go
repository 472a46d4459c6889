// Package canvas implements the retained-mode recorder: a Canvas accepts
// transform/clip/layer and draw calls, tessellates geometry through
// tessellate.Tessellator, reserves its GPU-bound storage through
// hostbuffer.HostBuffer, and produces an immutable RenderProgram via
// Prepare.
package canvas

import (
	"log/slog"
	"math"

	flatland "github.com/flatland/canvas"
	"github.com/flatland/canvas/geom"
	"github.com/flatland/canvas/hostbuffer"
	"github.com/flatland/canvas/path"
	"github.com/flatland/canvas/tessellate"
	"github.com/gogpu/gputypes"
)

const (
	pointByteSize = 8  // geom.Point: two float32 components
	indexByteSize = 2  // uint16
	vertexAlign   = 16 // buffer allocation granularity
)

// Canvas is the retained-mode scene recorder. The zero value is not
// usable; construct one with New.
type Canvas struct {
	hostBuffer *hostbuffer.HostBuffer
	tess       *tessellate.Tessellator
	logger     *slog.Logger

	clipStack []ClipStackEntry
	states    []*CommandState

	offscreens []OffscreenData

	strictRestore bool
	lastErr       error
}

// New constructs a Canvas with a root clip-stack entry (identity
// transform) and a root CommandState ready to record onto.
func New(opts ...CanvasOption) *Canvas {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger
	if logger == nil {
		logger = flatland.Logger()
	}

	hbOpts := []hostbuffer.HostBufferOption{hostbuffer.WithLogger(logger)}
	if o.backend != nil {
		hbOpts = append(hbOpts, hostbuffer.WithBackend(o.backend))
	}
	if o.minBufferSize > 0 {
		hbOpts = append(hbOpts, hostbuffer.WithMinBufferSize(o.minBufferSize))
	}

	return &Canvas{
		hostBuffer:    hostbuffer.New(hbOpts...),
		tess:          tessellate.New(),
		logger:        logger,
		clipStack:     []ClipStackEntry{{Transform: geom.Identity()}},
		states:        []*CommandState{newCommandState()},
		strictRestore: o.strictRestore,
	}
}

// LastError returns the most recent allocation or restore-underflow error
// this Canvas encountered, or nil.
func (c *Canvas) LastError() error {
	return c.lastErr
}

func (c *Canvas) topClip() *ClipStackEntry {
	return &c.clipStack[len(c.clipStack)-1]
}

func (c *Canvas) currentState() *CommandState {
	return c.states[len(c.states)-1]
}

// Translate post-multiplies the current transform by a translation.
func (c *Canvas) Translate(tx, ty float32) {
	c.Transform(geom.Translate(tx, ty))
}

// Scale post-multiplies the current transform by a scale.
func (c *Canvas) Scale(sx, sy float32) {
	c.Transform(geom.Scale(sx, sy))
}

// Rotate post-multiplies the current transform by a rotation of angle
// radians.
func (c *Canvas) Rotate(angle float64) {
	c.Transform(geom.Rotate(angle))
}

// Transform post-multiplies the current transform by delta: content
// recorded afterward is affected by delta first, then by whatever
// transform was already in effect.
func (c *Canvas) Transform(delta geom.Matrix) {
	top := c.topClip()
	top.Transform = top.Transform.Multiply(delta)
}

// Save pushes a copy of the current transform and depth counter onto the
// clip stack without opening a new layer; draws continue to accumulate
// into the same CommandState.
func (c *Canvas) Save() {
	top := c.topClip()
	c.clipStack = append(c.clipStack, ClipStackEntry{
		Transform: top.Transform,
		DrawCount: top.DrawCount,
	})
}

// SaveLayer opens an offscreen layer: a new CommandState, with a clip-stack
// entry whose depth counter continues from the parent's, later composited
// back onto the parent at Restore time through imageFilter/colorFilter and
// alpha.
func (c *Canvas) SaveLayer(alpha float32, imageFilter ImageFilter, colorFilter ColorFilter) {
	top := c.topClip()
	c.clipStack = append(c.clipStack, ClipStackEntry{
		Transform:   top.Transform,
		DrawCount:   top.DrawCount,
		IsSaveLayer: true,
		Alpha:       alpha,
	})
	c.states = append(c.states, &CommandState{ImageFilter: imageFilter, ColorFilter: colorFilter})
}

// Restore pops the top clip-stack entry, patching the depth_count of any
// clip commands it governed and, if it was a save-layer, finalizing the
// layer into an offscreen Texture command recorded onto the parent. It is
// a no-op when only the root entry remains, unless StrictRestore was
// configured, in which case it returns ErrRestoreUnderflow.
func (c *Canvas) Restore() error {
	return c.popClip()
}

func (c *Canvas) popClip() error {
	if len(c.clipStack) <= 1 {
		if c.strictRestore {
			c.lastErr = ErrRestoreUnderflow
			return ErrRestoreUnderflow
		}
		return nil
	}

	popped := c.clipStack[len(c.clipStack)-1]
	c.clipStack = c.clipStack[:len(c.clipStack)-1]
	cur := c.states[len(c.states)-1]

	for _, idx := range popped.PendingClips {
		if idx >= 0 && idx < len(cur.Commands) {
			cur.Commands[idx].DepthCount = popped.DrawCount
		}
	}

	newTop := c.topClip()
	newTop.DrawCount = popped.DrawCount
	if !popped.IsSaveLayer {
		return nil
	}

	cur.flushPendingOpaque()
	c.states = c.states[:len(c.states)-1]
	c.finalizeLayer(popped, cur, newTop)
	return nil
}

func (c *Canvas) finalizeLayer(popped ClipStackEntry, layer *CommandState, parentTop *ClipStackEntry) {
	bounds := layer.Bounds()
	if bounds.IsEmpty() {
		bounds = geom.MakeRect(0, 0, 1, 1)
	}
	if gf, ok := layer.ImageFilter.(GaussianFilter); ok {
		bounds = bounds.Expand(3 * gf.Sigma)
	}

	w := ceilDim(bounds.Width())
	h := ceilDim(bounds.Height())
	tex, err := c.hostBuffer.AllocateTempTexture(hostbuffer.TextureDescriptor{
		Width: w, Height: h, Format: gputypes.TextureFormatBGRA8Unorm, Usage: hostbuffer.TextureUsageRenderTarget,
	})
	if err != nil {
		c.lastErr = err
	}

	if _, ok := layer.ImageFilter.(GaussianFilter); ok {
		filterTex, ferr := c.hostBuffer.AllocateTempTexture(hostbuffer.TextureDescriptor{
			Width: halfDim(w), Height: halfDim(h), Format: gputypes.TextureFormatBGRA8Unorm, Usage: hostbuffer.TextureUsageRenderTarget,
		})
		if ferr != nil {
			c.lastErr = ferr
		}
		layer.FilterTexture = filterTex
	}

	alpha := popped.Alpha
	if _, ok := layer.ImageFilter.(GaussianFilter); ok {
		alpha = 1.0
	}

	parent := c.currentState()
	parent.record(Command{
		Paint:      Paint{Color: geom.RGBAColor(0, 0, 0, alpha)},
		DepthCount: parentTop.DrawCount,
		IndexCount: 6,
		Type:       Texture,
		Bounds:     bounds,
		Transform:  parentTop.Transform,
		IsConvex:   true,
		Texture:    tex,
	})
	parentTop.DrawCount++

	c.offscreens = append(c.offscreens, OffscreenData{
		Commands:      layer.Commands,
		Texture:       tex,
		FilterTexture: layer.FilterTexture,
		ImageFilter:   layer.ImageFilter,
		ColorFilter:   layer.ColorFilter,
		Bounds:        bounds,
	})
}

func ceilDim(v float32) uint32 {
	d := uint32(math.Ceil(float64(v)))
	if d < 1 {
		return 1
	}
	return d
}

func halfDim(v uint32) uint32 {
	d := v / 2
	if d < 1 {
		return 1
	}
	return d
}

// allocate reserves vCount vertices and iCount indices in the host
// buffer's persistent arena. On failure it records the error via
// LastError and returns ok=false; the caller should drop the command.
//
// The tessellator's CPU-side arena (Tessellator.Points/Indices) holds the
// actual computed vertex data; copying it into the reserved, backend-owned
// memory the returned BufferViews describe is a backend concern once a
// real mapped pointer is available, not something this package can do
// through the opaque hostbuffer.Buffer handle.
func (c *Canvas) allocate(vCount, iCount int) (vertex, index hostbuffer.BufferView, ok bool) {
	res, err := c.hostBuffer.AllocatePersistent(uint64(vCount)*pointByteSize, uint64(iCount)*indexByteSize, vertexAlign)
	if err != nil {
		c.lastErr = err
		c.logger.Warn("canvas: command dropped, allocation failed", "err", err)
		return hostbuffer.BufferView{}, hostbuffer.BufferView{}, false
	}
	return res.Position, res.Index, true
}

// DrawRect records a Draw command for rect's six-vertex quad (two
// triangles, no index buffer) with paint.
func (c *Canvas) DrawRect(rect geom.Rect, paint Paint) {
	top := c.topClip()
	vertex, _, ok := c.allocate(6, 0)
	if !ok {
		return
	}
	c.currentState().record(Command{
		Paint:      paint,
		DepthCount: top.DrawCount,
		IndexCount: 6,
		Type:       Draw,
		Vertex:     vertex,
		Bounds:     rect,
		Transform:  top.Transform,
		IsConvex:   true,
	})
	top.DrawCount++
}

// DrawPath tessellates p (fill, or stroke when paint.Stroke is set) and
// records the resulting geometry as a Draw command. A degenerate path
// that tessellates to nothing is silently dropped.
func (c *Canvas) DrawPath(p *path.Path, paint Paint) {
	top := c.topClip()
	scaleFactor := top.Transform.MaxBasisLength()

	var vCount, iCount int
	if paint.Stroke {
		_, vCount, _, iCount = c.tess.TriangulateStroke(p, paint.StrokeWidth, scaleFactor)
	} else {
		_, vCount, _, iCount = c.tess.TriangulateFill(p, scaleFactor)
	}
	if vCount == 0 {
		return
	}

	vertex, index, ok := c.allocate(vCount, iCount)
	if !ok {
		return
	}
	c.currentState().record(Command{
		Paint:      paint,
		DepthCount: top.DrawCount,
		IndexCount: iCount,
		Type:       Draw,
		Vertex:     vertex,
		Index:      index,
		Bounds:     p.Bounds(),
		Transform:  top.Transform,
		IsConvex:   p.IsConvex() || paint.Stroke,
	})
	top.DrawCount++
}

// DrawTexture records a Texture command compositing texture into dest at
// the given alpha.
func (c *Canvas) DrawTexture(dest geom.Rect, texture hostbuffer.Texture, alpha float32) {
	top := c.topClip()
	c.currentState().record(Command{
		Paint:      Paint{Color: geom.RGBAColor(0, 0, 0, alpha)},
		DepthCount: top.DrawCount,
		IndexCount: 6,
		Type:       Texture,
		Bounds:     dest,
		Transform:  top.Transform,
		IsConvex:   true,
		Texture:    texture,
	})
	top.DrawCount++
}

// ClipPath tessellates p's fill and records a Clip command with style,
// registering its position so Restore (or Prepare, at the root) can patch
// its depth_count with the enclosing entry's final draw count.
func (c *Canvas) ClipPath(p *path.Path, style ClipStyle) {
	top := c.topClip()
	_, vCount, _, iCount := c.tess.TriangulateFill(p, top.Transform.MaxBasisLength())
	if vCount == 0 {
		return
	}

	vertex, index, ok := c.allocate(vCount, iCount)
	if !ok {
		return
	}
	cs := c.currentState()
	cs.record(Command{
		Type:       Clip,
		ClipStyle:  style,
		IndexCount: iCount,
		Vertex:     vertex,
		Index:      index,
		Bounds:     p.Bounds(),
		Transform:  top.Transform,
		IsConvex:   p.IsConvex(),
	})
	top.PendingClips = append(top.PendingClips, len(cs.Commands)-1)
	top.DrawCount++
}

// Prepare finalizes recording: every still-open clip/save-layer entry is
// restored exactly as an explicit Restore() call would, patching clip
// depth counts and finalizing any unrestored save-layer into an offscreen
// Texture command; clips recorded at the root are patched to the root's
// final draw count, then the root command list's final opaque batch is
// flushed. The returned RenderProgram is immutable; Canvas can be
// discarded afterward.
func (c *Canvas) Prepare() *RenderProgram {
	for len(c.clipStack) > 1 {
		c.popClip()
	}
	root := c.states[0]
	rootClip := c.topClip()
	for _, idx := range rootClip.PendingClips {
		if idx >= 0 && idx < len(root.Commands) {
			root.Commands[idx].DepthCount = rootClip.DrawCount
		}
	}
	root.flushPendingOpaque()
	return &RenderProgram{commands: root.Commands, offscreens: c.offscreens}
}
