package rtss

import "errors"

// Error kinds surfaced by the generation entry points. Callers match
// them with errors.Is; the ir package owns the resolve-time kinds
// (ir.ErrUnresolvedLink, ir.ErrUnsupportedType, ir.ErrUnknownAutoConstant).
var (
	// ErrDependencyMissing reports a declared library name that the
	// library pool cannot resolve.
	ErrDependencyMissing = errors.New("library dependency missing")

	// ErrBackendCompile reports a rejected compile; the generated
	// source is attached to the wrapping error for logging.
	ErrBackendCompile = errors.New("backend compile failed")

	// ErrCapacityExceeded reports a contributor exceeding a backend
	// limit, e.g. the texture unit count.
	ErrCapacityExceeded = errors.New("backend capacity exceeded")

	// ErrCacheNotDrained reports a factory registry mutation attempted
	// while generated programs are still cached.
	ErrCacheNotDrained = errors.New("program cache not drained")

	// ErrSchedulerClosed reports a request submitted after Close.
	ErrSchedulerClosed = errors.New("scheduler closed")
)
