// Package flatland is the facade for a retained-mode 2D vector-graphics
// renderer core: path construction and convexity analysis (package path),
// Wang's-formula curve flattening and triangle-mesh tessellation (package
// tessellate), a host-side GPU buffer allocator (package hostbuffer), and
// a scene recorder that turns drawing calls into an immutable render
// program (package canvas). Shared geometry primitives live in package
// geom.
//
// This package itself carries only the ambient logging facade the
// sub-packages share; it deliberately does not import them, so that
// hostbuffer, tessellate, and canvas can each depend on flatland for
// logging without introducing an import cycle.
//
// # Coordinate system
//
// Points use 32-bit components, origin at the top-left, X increasing
// right and Y increasing down, matching the vertex format the tessellator
// and host buffer traffic in.
//
// # Pipeline
//
// A typical frame builds one or more paths with path.Builder, records
// drawing calls against a canvas.Canvas (which tessellates fills and
// strokes via package tessellate and stages vertex/index data through a
// hostbuffer.HostBuffer), and finishes with Canvas.Prepare, which freezes
// the recorded commands into a canvas.RenderProgram ready for submission
// to a GPU backend.
package flatland

// Version identifies this module's release.
const Version = "0.1.0"
