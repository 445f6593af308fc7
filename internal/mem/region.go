// Package mem provides the OS-backed byte range the heap engine grows into.
// A Region is one contiguous reservation that only ever grows; block offsets
// handed out by the engine stay valid for the life of the region.
package mem

import (
	"errors"
	"fmt"
)

// DefaultMax is the reservation used when the caller does not specify one.
const DefaultMax = 1 << 30

// ErrRegionFull indicates a grow request would exceed the reservation.
var ErrRegionFull = errors.New("mem: region reservation exhausted")

// Region is a contiguous, monotonically growing byte range.
//
// Implementations must keep previously returned offsets stable across Grow
// calls: the committed range never moves and never shrinks.
type Region interface {
	// Grow extends the region by n bytes and returns the offset at which
	// the new bytes begin. The new bytes are zeroed.
	Grow(n int) (int, error)

	// Bytes returns the committed range. The slice must be re-fetched
	// after every Grow; offsets into it remain stable.
	Bytes() []byte

	// Size returns the committed length in bytes.
	Size() int

	// Close releases the region. The region must not be used afterwards.
	Close() error
}

// sliceRegion reserves capacity up front so growth never relocates the
// backing array and the range stays contiguous.
type sliceRegion struct {
	buf []byte
	max int
}

// NewSlice returns a Region backed by a capacity-reserved Go slice. It is
// the fallback on platforms without mmap and the deterministic choice for
// tests.
func NewSlice(max int) Region {
	if max <= 0 {
		max = DefaultMax
	}
	return &sliceRegion{buf: make([]byte, 0, max), max: max}
}

func (r *sliceRegion) Grow(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("mem: grow by %d bytes", n)
	}
	off := len(r.buf)
	if off+n > r.max {
		return 0, ErrRegionFull
	}
	r.buf = r.buf[: off+n : r.max]
	return off, nil
}

func (r *sliceRegion) Bytes() []byte { return r.buf }

func (r *sliceRegion) Size() int { return len(r.buf) }

func (r *sliceRegion) Close() error {
	r.buf = nil
	return nil
}
