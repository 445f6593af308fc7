package heap

import "errors"

var (
	// ErrZeroSize indicates an allocation request for zero (or negative)
	// bytes. It is distinct from ErrNoMemory: the heap was not exhausted,
	// the request was empty.
	ErrZeroSize = errors.New("heap: zero-size request")

	// ErrOverflow indicates a Calloc element count times element size that
	// does not fit in an int.
	ErrOverflow = errors.New("heap: allocation size overflows")

	// ErrNoMemory indicates the OS region could not satisfy a growth
	// request. The heap is left consistent; no partial chunk is installed.
	ErrNoMemory = errors.New("heap: out of memory")
)
