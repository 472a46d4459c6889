package canvas

import "errors"

// ErrRestoreUnderflow is returned (when StrictRestore is enabled) by
// Restore when called with only the root clip-stack entry remaining.
var ErrRestoreUnderflow = errors.New("canvas: restore called with no matching save/saveLayer")
