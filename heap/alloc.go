package heap

import (
	"math"
	"math/bits"

	"github.com/joshuapare/heapkit/internal/format"
)

// Alloc reserves a payload of at least size bytes and returns its stable
// reference together with a []byte view of the granted payload. The granted
// payload is 8-byte aligned, at least 16 bytes, and may exceed size.
//
// A size of zero or less fails with ErrZeroSize. Exhausted growth fails
// with ErrNoMemory; the heap is left consistent either way.
func (h *Heap) Alloc(size int) (Ref, []byte, error) {
	if size <= 0 {
		return NullRef, nil, ErrZeroSize
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.alloc(size)
}

// alloc is Alloc minus the lock, shared with Realloc.
func (h *Heap) alloc(size int) (Ref, []byte, error) {
	h.stats.AllocCalls++

	// Normalize: room for the free-list links when the block comes back,
	// rounded to the alignment unit.
	if size < format.MinAllocSize {
		size = format.MinAllocSize
	}
	size = format.AlignUp(size)

	off := h.flFind(size)
	if off == nullOff {
		blk, err := h.newChunk(size)
		if err != nil {
			return NullRef, nil, err
		}
		if !h.tryCoalesceChunk(blk) {
			h.flInsert(blk)
			h.recentFence = format.NextOff(h.region.Bytes(), blk)
		}

		off = h.flFind(size)
		if off == nullOff {
			// A fresh chunk always covers the request it was grown for;
			// a second miss means the region handed back less than asked.
			return NullRef, nil, ErrNoMemory
		}
	}

	b := h.region.Bytes()
	h.flRemove(off)
	granted := format.BlockSize(b, off)

	// Split only when the leftover can hold a header plus free-list links.
	if granted-size >= format.HeaderSize+format.MinAllocSize {
		h.split(off, size)
		granted = size
	}
	format.SetBlockState(b, off, format.Allocated)
	h.stats.BytesAllocated += int64(granted)

	payload := format.PayloadOff(off)
	return Ref(payload), b[payload : payload+granted], nil
}

// Free returns an allocation to the heap, merging it with whichever of its
// memory-order neighbors are free. Freeing NullRef is a no-op. Freeing a
// reference that is not currently allocated is unrecoverable corruption:
// the process terminates rather than returning.
func (h *Heap) Free(ref Ref) {
	if ref == NullRef {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.free(ref)
}

// free is Free minus the lock, shared with Realloc.
func (h *Heap) free(ref Ref) {
	h.stats.FreeCalls++

	b := h.region.Bytes()
	off := format.HeaderOff(int(ref))

	if off < format.HeaderSize || int(ref) > len(b) || !format.Aligned(off) {
		h.fatal("invalid reference %d", int(ref))
		return // reached only under a test fatal hook
	}
	if format.BlockState(b, off) != format.Allocated {
		h.fatal("double free detected at offset %d", off)
		return // reached only under a test fatal hook
	}

	h.stats.BytesFreed += int64(format.BlockSize(b, off))

	prev := format.PrevOff(b, off)
	next := format.NextOff(b, off)
	prevFree := format.BlockState(b, prev) == format.Unallocated
	nextFree := format.BlockState(b, next) == format.Unallocated

	switch {
	case prevFree && nextFree:
		h.coalesceWithPrevAndNext(off)
	case prevFree:
		h.coalesceWithPrev(off)
	case nextFree:
		h.coalesceWithNext(off)
	default:
		format.SetBlockState(b, off, format.Unallocated)
		h.flInsert(off)
	}
}

// Calloc reserves zero-filled storage for n elements of elemSize bytes
// each. Either argument being zero or less fails with ErrZeroSize; a
// product that does not fit in an int fails with ErrOverflow.
func (h *Heap) Calloc(n, elemSize int) (Ref, []byte, error) {
	if n <= 0 || elemSize <= 0 {
		return NullRef, nil, ErrZeroSize
	}
	hi, total := bits.Mul64(uint64(n), uint64(elemSize))
	if hi != 0 || total > uint64(math.MaxInt) {
		return NullRef, nil, ErrOverflow
	}

	ref, payload, err := h.Alloc(int(total))
	if err != nil {
		return NullRef, nil, err
	}
	clear(payload)
	return ref, payload, nil
}

// Realloc moves an allocation to a new size, preserving min(old, new)
// payload bytes. A NullRef behaves as Alloc; a size of zero or less behaves
// as Free and returns NullRef with no error.
func (h *Heap) Realloc(ref Ref, size int) (Ref, []byte, error) {
	if size <= 0 {
		h.Free(ref)
		return NullRef, nil, nil
	}
	if ref == NullRef {
		return h.Alloc(size)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	oldSize := format.BlockSize(h.region.Bytes(), format.HeaderOff(int(ref)))

	newRef, payload, err := h.alloc(size)
	if err != nil {
		return NullRef, nil, err
	}

	// alloc may have grown the region; re-fetch before copying.
	b := h.region.Bytes()
	copy(payload, b[int(ref):int(ref)+oldSize])
	h.free(ref)

	return newRef, payload, nil
}
