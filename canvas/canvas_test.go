package canvas

import (
	"errors"
	"testing"

	"github.com/flatland/canvas/geom"
	"github.com/flatland/canvas/hostbuffer"
	"github.com/flatland/canvas/path"
	"github.com/gogpu/gputypes"
)

type fakeBuffer struct{ id int }
type fakeTexture struct{ id int }

type fakeBackend struct {
	nextBufID int
	nextTexID int
}

func (b *fakeBackend) CreateBuffer(size uint64, usage gputypes.BufferUsage) (hostbuffer.Buffer, error) {
	b.nextBufID++
	return &fakeBuffer{id: b.nextBufID}, nil
}

func (b *fakeBackend) CreateTexture(desc hostbuffer.TextureDescriptor) (hostbuffer.Texture, error) {
	b.nextTexID++
	return &fakeTexture{id: b.nextTexID}, nil
}

func newTestCanvas() *Canvas {
	return New(WithBackend(&fakeBackend{}))
}

func triangleFillPath() *path.Path {
	b := path.NewBuilder()
	b.MoveTo(geom.Pt(0, 0))
	b.LineTo(geom.Pt(10, 0))
	b.LineTo(geom.Pt(5, 10))
	b.Close()
	p, _ := b.TakePath()
	return p
}

// S1: empty canvas.
func TestPrepareEmptyCanvas(t *testing.T) {
	c := newTestCanvas()
	prog := c.Prepare()
	if len(prog.Commands()) != 0 {
		t.Errorf("Commands() = %v, want empty", prog.Commands())
	}
	if len(prog.Offscreens()) != 0 {
		t.Errorf("Offscreens() = %v, want empty", prog.Offscreens())
	}
}

// S2: single red opaque rect.
func TestDrawRectSingleOpaque(t *testing.T) {
	c := newTestCanvas()
	c.DrawRect(geom.MakeRect(0, 0, 10, 10), Paint{Color: geom.Red})
	prog := c.Prepare()

	cmds := prog.Commands()
	if len(cmds) != 1 {
		t.Fatalf("len(Commands()) = %d, want 1", len(cmds))
	}
	cmd := cmds[0]
	if cmd.DepthCount != 0 {
		t.Errorf("DepthCount = %d, want 0", cmd.DepthCount)
	}
	if cmd.IndexCount != 6 {
		t.Errorf("IndexCount = %d, want 6", cmd.IndexCount)
	}
	if cmd.Type != Draw {
		t.Errorf("Type = %v, want Draw", cmd.Type)
	}
	if !cmd.Vertex.IsValid() {
		t.Error("Vertex buffer view is not valid")
	}
	want := geom.MakeRect(0, 0, 10, 10).GetQuad()
	got := cmd.Bounds.GetQuad()
	if got != want {
		t.Errorf("Bounds.GetQuad() = %v, want %v", got, want)
	}
}

// S3: opaque/transparent occlusion reorder.
func TestOpaqueTransparentReorder(t *testing.T) {
	c := newTestCanvas()
	r1 := geom.MakeRect(0, 0, 1, 1)
	r2 := geom.MakeRect(1, 0, 2, 1)
	r3 := geom.MakeRect(2, 0, 3, 1)

	c.DrawRect(r1, Paint{Color: geom.Red})                    // opaque
	c.DrawRect(r2, Paint{Color: geom.RGBAColor(0, 0, 1, 0.5)}) // transparent
	c.ClipPath(triangleFillPath(), ClipIntersect)
	c.DrawRect(r3, Paint{Color: geom.Green}) // opaque

	prog := c.Prepare()
	cmds := prog.Commands()
	if len(cmds) != 4 {
		t.Fatalf("len(Commands()) = %d, want 4", len(cmds))
	}
	if cmds[0].Bounds != r2 || cmds[1].Bounds != r1 {
		t.Errorf("first two commands = %v, %v; want r2 then r1 (reversed opaque batch before the clip)", cmds[0].Bounds, cmds[1].Bounds)
	}
	if cmds[2].Type != Clip {
		t.Errorf("cmds[2].Type = %v, want Clip", cmds[2].Type)
	}
	if cmds[3].Bounds != r3 {
		t.Errorf("cmds[3].Bounds = %v, want r3", cmds[3].Bounds)
	}
}

// invariant 1: every Clip command's depth_count has been patched away
// from its initial zero by the time Prepare returns.
func TestClipDepthCountPatchedOnRestore(t *testing.T) {
	c := newTestCanvas()
	c.Save()
	c.ClipPath(triangleFillPath(), ClipIntersect)
	c.DrawRect(geom.MakeRect(0, 0, 1, 1), Paint{Color: geom.Red})
	c.DrawRect(geom.MakeRect(1, 0, 2, 1), Paint{Color: geom.Blue})
	c.Restore()

	prog := c.Prepare()
	found := false
	for _, cmd := range prog.Commands() {
		if cmd.Type == Clip {
			found = true
			if cmd.DepthCount == 0 {
				t.Error("Clip command's DepthCount was never patched away from 0")
			}
		}
	}
	if !found {
		t.Fatal("no Clip command recorded")
	}
}

// invariant 2: every command's depth_count is bounded by the final
// command count.
func TestDepthCountBoundedByCommandCount(t *testing.T) {
	c := newTestCanvas()
	for i := 0; i < 5; i++ {
		c.DrawRect(geom.MakeRect(float32(i), 0, float32(i)+1, 1), Paint{Color: geom.Red})
	}
	prog := c.Prepare()
	n := len(prog.Commands())
	for _, cmd := range prog.Commands() {
		if cmd.DepthCount > n {
			t.Errorf("DepthCount = %d exceeds command count %d", cmd.DepthCount, n)
		}
	}
}

// SaveLayer must inherit the parent's current draw_count, and Restore must
// propagate the layer's final draw_count back into the parent so depth
// values stay globally monotonic across a save-layer boundary: a root draw
// issued after the Restore must not collide with the depth of the layer's
// Texture command or of a root draw issued before the SaveLayer.
func TestDrawCountMonotonicAcrossSaveLayer(t *testing.T) {
	c := newTestCanvas()
	redRect := geom.MakeRect(0, 0, 1, 1)
	blueA := geom.MakeRect(10, 0, 11, 1)
	blueB := geom.MakeRect(11, 0, 12, 1)
	greenRect := geom.MakeRect(2, 0, 3, 1)

	c.DrawRect(redRect, Paint{Color: geom.Red})
	c.SaveLayer(1.0, nil, nil)
	c.DrawRect(blueA, Paint{Color: geom.Blue})
	c.DrawRect(blueB, Paint{Color: geom.Blue})
	c.Restore()
	c.DrawRect(greenRect, Paint{Color: geom.Green})

	prog := c.Prepare()
	cmds := prog.Commands()
	if len(cmds) != 3 {
		t.Fatalf("len(Commands()) = %d, want 3 (first rect, layer texture, second rect)", len(cmds))
	}

	var red, tex, green *Command
	for i := range cmds {
		switch {
		case cmds[i].Type == Texture:
			tex = &cmds[i]
		case cmds[i].Bounds == redRect:
			red = &cmds[i]
		case cmds[i].Bounds == greenRect:
			green = &cmds[i]
		}
	}
	if red == nil || tex == nil || green == nil {
		t.Fatalf("expected a red draw, a layer Texture command, and a green draw; got %v", cmds)
	}

	// draw_count starts at 0, the first root rect consumes 0, then the
	// layer inherits 1 and consumes two draws (1, 2) internally, so the
	// layer's Texture command is recorded at depth 3, and the final root
	// rect at depth 4.
	if red.DepthCount != 0 {
		t.Errorf("red rect DepthCount = %d, want 0", red.DepthCount)
	}
	if tex.DepthCount != 3 {
		t.Errorf("layer Texture command DepthCount = %d, want 3 (draw_count propagated back from the layer's two internal draws)", tex.DepthCount)
	}
	if green.DepthCount != 4 {
		t.Errorf("green rect DepthCount = %d, want 4", green.DepthCount)
	}

	offscreens := prog.Offscreens()
	if len(offscreens) != 1 {
		t.Fatalf("len(Offscreens()) = %d, want 1", len(offscreens))
	}
	depths := map[geom.Rect]int{}
	for _, cmd := range offscreens[0].Commands {
		depths[cmd.Bounds] = cmd.DepthCount
	}
	if depths[blueA] != 1 {
		t.Errorf("blueA DepthCount = %d, want 1 (inherited draw_count from before SaveLayer)", depths[blueA])
	}
	if depths[blueB] != 2 {
		t.Errorf("blueB DepthCount = %d, want 2", depths[blueB])
	}
}

// S4: SaveLayer with a Gaussian filter expands bounds by 3*sigma and
// allocates matching offscreen and filter textures.
func TestSaveLayerGaussianExpandsBounds(t *testing.T) {
	c := newTestCanvas()
	c.SaveLayer(1.0, GaussianFilter{Sigma: 4}, nil)
	c.DrawRect(geom.MakeRect(0, 0, 10, 10), Paint{Color: geom.Red})
	if err := c.Restore(); err != nil {
		t.Fatalf("Restore() = %v", err)
	}

	prog := c.Prepare()
	offscreens := prog.Offscreens()
	if len(offscreens) != 1 {
		t.Fatalf("len(Offscreens()) = %d, want 1", len(offscreens))
	}
	off := offscreens[0]
	want := geom.MakeRect(-12, -12, 22, 22)
	if off.Bounds != want {
		t.Errorf("Bounds = %v, want %v", off.Bounds, want)
	}
	if off.Texture == nil {
		t.Error("offscreen Texture is nil")
	}
	if off.FilterTexture == nil {
		t.Error("offscreen FilterTexture is nil for a Gaussian-filtered layer")
	}

	cmds := prog.Commands()
	if len(cmds) != 1 || cmds[0].Type != Texture {
		t.Fatalf("root commands = %v, want a single Texture command", cmds)
	}
	if cmds[0].Paint.Color.A != 1.0 {
		t.Errorf("Texture command alpha = %v, want 1.0 for a Gaussian-filtered layer", cmds[0].Paint.Color.A)
	}
}

func TestSaveLayerPlainUsesEntryAlpha(t *testing.T) {
	c := newTestCanvas()
	c.SaveLayer(0.5, nil, nil)
	c.DrawRect(geom.MakeRect(0, 0, 4, 4), Paint{Color: geom.Red})
	c.Restore()

	prog := c.Prepare()
	cmds := prog.Commands()
	if len(cmds) != 1 || cmds[0].Type != Texture {
		t.Fatalf("root commands = %v, want a single Texture command", cmds)
	}
	if cmds[0].Paint.Color.A != 0.5 {
		t.Errorf("alpha = %v, want 0.5", cmds[0].Paint.Color.A)
	}
}

func TestRestoreOnRootIsNoOpByDefault(t *testing.T) {
	c := newTestCanvas()
	if err := c.Restore(); err != nil {
		t.Errorf("Restore() on root = %v, want nil", err)
	}
}

func TestRestoreOnRootFailsWithStrictRestore(t *testing.T) {
	c := New(WithBackend(&fakeBackend{}), WithStrictRestore())
	err := c.Restore()
	if !errors.Is(err, ErrRestoreUnderflow) {
		t.Errorf("Restore() = %v, want ErrRestoreUnderflow", err)
	}
	if !errors.Is(c.LastError(), ErrRestoreUnderflow) {
		t.Error("LastError() did not record ErrRestoreUnderflow")
	}
}

func TestPrepareFinalizesUnrestoredLayer(t *testing.T) {
	c := newTestCanvas()
	c.SaveLayer(1.0, nil, nil)
	c.DrawRect(geom.MakeRect(0, 0, 4, 4), Paint{Color: geom.Red})
	// no explicit Restore before Prepare: Prepare must finalize the layer
	// exactly as an explicit Restore() would.

	prog := c.Prepare()
	cmds := prog.Commands()
	if len(cmds) != 1 || cmds[0].Type != Texture {
		t.Fatalf("root Commands() = %v, want a single Texture command for the unrestored layer", cmds)
	}
	if len(prog.Offscreens()) != 1 {
		t.Errorf("len(Offscreens()) = %d, want 1 (unrestored layer finalized like an explicit Restore)", len(prog.Offscreens()))
	}
}

func TestTranslateThenDrawShiftsBounds(t *testing.T) {
	c := newTestCanvas()
	c.Translate(5, 5)
	c.DrawRect(geom.MakeRect(0, 0, 1, 1), Paint{Color: geom.Red})
	prog := c.Prepare()
	got := prog.Commands()[0].Transform.TransformBounds(prog.Commands()[0].Bounds)
	want := geom.MakeRect(5, 5, 6, 6)
	if got != want {
		t.Errorf("transformed bounds = %v, want %v", got, want)
	}
}

func TestPaintIsOpaque(t *testing.T) {
	opaque := Paint{Color: geom.Red}
	if !opaque.IsOpaque() {
		t.Error("solid opaque color should report IsOpaque")
	}
	transparent := Paint{Color: geom.RGBAColor(1, 0, 0, 0.5)}
	if transparent.IsOpaque() {
		t.Error("half-alpha color should not report IsOpaque")
	}
	gradient := Paint{Color: geom.Red, Gradient: LinearGradient{Start: geom.Pt(0, 0), End: geom.Pt(1, 1)}}
	if gradient.IsOpaque() {
		t.Error("a gradient paint should never report IsOpaque, even with an opaque base color")
	}
}
