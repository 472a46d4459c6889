package canvas

import (
	"github.com/flatland/canvas/geom"
	"github.com/flatland/canvas/hostbuffer"
)

// CommandType distinguishes the three kinds of entries a RenderProgram
// carries.
type CommandType int

const (
	// Draw renders tessellated geometry with a Paint.
	Draw CommandType = iota
	// Clip narrows or cuts a hole in the current clip region; its
	// DepthCount is patched at Restore time (or at Prepare, for clips
	// recorded at the root) to the enclosing clip-stack entry's final
	// draw count.
	Clip
	// Texture blits a previously rendered offscreen layer, produced by
	// SaveLayer/Restore.
	Texture
)

// Command is one entry of a finished RenderProgram: either geometry to
// draw, a clip to apply, or an offscreen layer to composite.
type Command struct {
	Paint      Paint
	DepthCount int
	IndexCount int
	Type       CommandType
	Vertex     hostbuffer.BufferView
	Index      hostbuffer.BufferView
	Bounds     geom.Rect
	Transform  geom.Matrix
	IsConvex   bool

	// ClipStyle is meaningful only when Type == Clip.
	ClipStyle ClipStyle
	// Texture is meaningful only when Type == Texture.
	Texture hostbuffer.Texture
}

// ClipStackEntry is one level of the canvas's transform/clip stack. The
// root entry (index 0) is never popped.
type ClipStackEntry struct {
	Transform    geom.Matrix
	DrawCount    int
	PendingClips []int
	IsSaveLayer  bool
	Alpha        float32
}

// CommandState accumulates the commands for one recording target: either
// the root canvas or one save-layer's offscreen content. Opaque draws are
// held in PendingOpaque and flushed as a contiguous, depth-reversed batch
// immediately before the next Clip command (or at final Prepare), per the
// occlusion-reordering algorithm.
type CommandState struct {
	Commands      []Command
	PendingOpaque []Command
	FlushIndex    int

	boundsEstimate geom.Rect
	hasBounds      bool

	ImageFilter   ImageFilter
	ColorFilter   ColorFilter
	FilterTexture hostbuffer.Texture
}

func newCommandState() *CommandState {
	return &CommandState{}
}

// Bounds returns the running union of every recorded command's transformed
// bounds, or an empty rect if nothing has been recorded yet.
func (cs *CommandState) Bounds() geom.Rect {
	if !cs.hasBounds {
		return geom.EmptyRect()
	}
	return cs.boundsEstimate
}

func (cs *CommandState) unionBounds(b geom.Rect) {
	if !cs.hasBounds {
		cs.boundsEstimate = b
		cs.hasBounds = true
		return
	}
	cs.boundsEstimate = cs.boundsEstimate.Union(b)
}

// flushPendingOpaque splices the pending opaque batch in at FlushIndex,
// reversed so the most recently issued opaque draw comes first and the
// earliest issued one ends up nearest the following Clip.
func (cs *CommandState) flushPendingOpaque() {
	if len(cs.PendingOpaque) == 0 {
		return
	}
	reversed := make([]Command, len(cs.PendingOpaque))
	for i, c := range cs.PendingOpaque {
		reversed[len(cs.PendingOpaque)-1-i] = c
	}
	tail := append([]Command(nil), cs.Commands[cs.FlushIndex:]...)
	cs.Commands = append(cs.Commands[:cs.FlushIndex], append(reversed, tail...)...)
	cs.PendingOpaque = nil
}

// record classifies cmd per the occlusion-reordering algorithm: a Clip
// flushes pending opaques and marks a new flush point; an opaque Draw is
// held back; everything else is appended directly.
func (cs *CommandState) record(cmd Command) {
	cs.unionBounds(cmd.Transform.TransformBounds(cmd.Bounds))
	switch {
	case cmd.Type == Clip:
		cs.flushPendingOpaque()
		cs.Commands = append(cs.Commands, cmd)
		cs.FlushIndex = len(cs.Commands)
	case cmd.Type == Draw && cmd.Paint.IsOpaque():
		cs.PendingOpaque = append(cs.PendingOpaque, cmd)
	default:
		cs.Commands = append(cs.Commands, cmd)
		cs.FlushIndex = len(cs.Commands)
	}
}
