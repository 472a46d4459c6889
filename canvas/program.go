package canvas

import (
	"github.com/flatland/canvas/geom"
	"github.com/flatland/canvas/hostbuffer"
)

// OffscreenData holds one save-layer's finished command list plus the
// render target and filters it composites through, per the supplemented
// RenderProgram ownership model.
type OffscreenData struct {
	Commands      []Command
	Texture       hostbuffer.Texture
	FilterTexture hostbuffer.Texture
	ImageFilter   ImageFilter
	ColorFilter   ColorFilter
	Bounds        geom.Rect
}

// RenderProgram is the immutable output of Canvas.Prepare: the root
// command list plus every offscreen layer it references, ready to hand to
// a backend for GPU submission.
type RenderProgram struct {
	commands   []Command
	offscreens []OffscreenData
}

// Commands returns the root (onscreen) command list.
func (r *RenderProgram) Commands() []Command {
	return r.commands
}

// Offscreens returns every save-layer produced while recording, in the
// order their Restore calls finalized them.
func (r *RenderProgram) Offscreens() []OffscreenData {
	return r.offscreens
}
