package canvas

import (
	"log/slog"

	"github.com/flatland/canvas/hostbuffer"
)

// CanvasOption configures a Canvas during creation.
//
// Example:
//
//	c := canvas.New(canvas.WithBackend(backend))
type CanvasOption func(*canvasOptions)

type canvasOptions struct {
	backend       hostbuffer.Backend
	minBufferSize uint64
	logger        *slog.Logger
	strictRestore bool
}

func defaultOptions() canvasOptions {
	return canvasOptions{}
}

// WithBackend supplies the Backend the canvas's HostBuffer delegates
// buffer and texture creation to.
func WithBackend(b hostbuffer.Backend) CanvasOption {
	return func(o *canvasOptions) {
		o.backend = b
	}
}

// WithMinBufferSize overrides the minimum host-buffer allocation size; see
// hostbuffer.WithMinBufferSize.
func WithMinBufferSize(n uint64) CanvasOption {
	return func(o *canvasOptions) {
		o.minBufferSize = n
	}
}

// WithLogger overrides the logger the canvas and its HostBuffer report to.
func WithLogger(l *slog.Logger) CanvasOption {
	return func(o *canvasOptions) {
		o.logger = l
	}
}

// WithStrictRestore makes Restore return ErrRestoreUnderflow (recorded via
// LastError) instead of silently no-opping when called with only the root
// clip-stack entry remaining.
func WithStrictRestore() CanvasOption {
	return func(o *canvasOptions) {
		o.strictRestore = true
	}
}
