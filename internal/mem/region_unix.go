//go:build unix

package mem

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// mmapRegion reserves max bytes of address space up front with an anonymous
// PROT_NONE mapping and commits pages as the region grows. The reservation
// guarantees the range stays contiguous for the life of the region without
// charging the process for uncommitted pages.
type mmapRegion struct {
	buf       []byte // full reservation; only buf[:committed] is accessible
	committed int
	max       int
}

const pageSize = 4096

// New reserves max bytes of address space and returns an empty region.
// A max of zero or less reserves DefaultMax.
func New(max int) (Region, error) {
	if max <= 0 {
		max = DefaultMax
	}
	max = pageCeil(max)
	buf, err := unix.Mmap(-1, 0, max, unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("mem: reserve %d bytes: %w", max, err)
	}
	return &mmapRegion{buf: buf, max: max}, nil
}

func (r *mmapRegion) Grow(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("mem: grow by %d bytes", n)
	}
	off := r.committed
	if off+n > r.max {
		return 0, ErrRegionFull
	}

	// Commit whole pages covering the new range. The mapping base is page
	// aligned, so slicing at page boundaries satisfies mprotect.
	start := pageFloor(off)
	end := pageCeil(off + n)
	if err := unix.Mprotect(r.buf[start:end], unix.PROT_READ|unix.PROT_WRITE); err != nil {
		return 0, fmt.Errorf("mem: commit %d bytes: %w", n, err)
	}

	r.committed = off + n
	return off, nil
}

func (r *mmapRegion) Bytes() []byte { return r.buf[:r.committed] }

func (r *mmapRegion) Size() int { return r.committed }

func (r *mmapRegion) Close() error {
	if r.buf == nil {
		return nil
	}
	err := unix.Munmap(r.buf)
	r.buf = nil
	r.committed = 0
	if errors.Is(err, unix.EINVAL) {
		// Treat double-unmap as no-op for callers.
		return nil
	}
	return err
}

func pageCeil(n int) int { return (n + pageSize - 1) &^ (pageSize - 1) }

func pageFloor(n int) int { return n &^ (pageSize - 1) }
