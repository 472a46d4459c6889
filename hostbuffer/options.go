package hostbuffer

import "log/slog"

// minBufferSizeDefault is the smallest buffer either arena will allocate
// from the backend, per spec.
const minBufferSizeDefault = 32 * 1024

// HostBufferOption configures a HostBuffer during creation.
//
// Example:
//
//	hb := hostbuffer.New(hostbuffer.WithBackend(backend))
type HostBufferOption func(*hostBufferOptions)

type hostBufferOptions struct {
	backend       Backend
	minBufferSize uint64
	logger        *slog.Logger
}

func defaultOptions() hostBufferOptions {
	return hostBufferOptions{
		minBufferSize: minBufferSizeDefault,
	}
}

// WithBackend supplies the Backend a HostBuffer delegates buffer and
// texture creation to. Required: a HostBuffer created without one fails
// every allocation.
func WithBackend(b Backend) HostBufferOption {
	return func(o *hostBufferOptions) {
		o.backend = b
	}
}

// WithMinBufferSize overrides the minimum size (in bytes) either arena
// allocates from the backend, rounding every request up to at least this
// size. The default is 32 KiB.
func WithMinBufferSize(n uint64) HostBufferOption {
	return func(o *hostBufferOptions) {
		if n > 0 {
			o.minBufferSize = n
		}
	}
}

// WithLogger overrides the logger a HostBuffer reports allocation events
// to. By default it pulls the shared logger from the facade package's
// Logger accessor.
func WithLogger(l *slog.Logger) HostBufferOption {
	return func(o *hostBufferOptions) {
		o.logger = l
	}
}
