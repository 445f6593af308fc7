package heap

import "github.com/joshuapare/heapkit/internal/format"

// Block splitting and the three coalesce variants. Each leaves every
// boundary tag consistent before returning: the prev-size of the block
// following the last touched block is always rewritten.

// split shrinks an unallocated block to need bytes of payload and carves a
// new free block from the remainder immediately after it in memory. The
// caller must have verified the remainder can hold a header plus free-list
// links.
func (h *Heap) split(off, need int) {
	b := h.region.Bytes()
	size := format.BlockSize(b, off)

	format.SetBlockSizeState(b, off, need, format.Unallocated)

	rem := format.NextOff(b, off)
	remSize := size - need - format.HeaderSize
	format.SetBlockSizeState(b, rem, remSize, format.Unallocated)
	format.SetPrevSize(b, rem, need)
	h.flInsert(rem)

	format.SetPrevSize(b, format.NextOff(b, rem), remSize)
	h.stats.SplitCount++
}

// coalesceWithPrev merges the block being released into its unallocated
// predecessor. The predecessor keeps its free-list position, so no link
// surgery is needed.
func (h *Heap) coalesceWithPrev(off int) {
	b := h.region.Bytes()
	prev := format.PrevOff(b, off)
	size := format.BlockSize(b, off) + format.BlockSize(b, prev) + format.HeaderSize

	format.SetBlockSizeState(b, prev, size, format.Unallocated)
	format.SetPrevSize(b, format.NextOff(b, prev), size)
	h.stats.CoalescePrev++
}

// coalesceWithNext merges the block being released with its unallocated
// successor, taking over the successor's free-list position in place.
func (h *Heap) coalesceWithNext(off int) {
	b := h.region.Bytes()
	next := format.NextOff(b, off)
	size := format.BlockSize(b, off) + format.BlockSize(b, next) + format.HeaderSize

	format.SetBlockSizeState(b, off, size, format.Unallocated)

	prevLink := freePrev(b, next)
	nextLink := freeNext(b, next)
	setFreePrev(b, off, prevLink)
	setFreeNext(b, off, nextLink)
	if prevLink != nullOff {
		setFreeNext(b, prevLink, off)
	}
	if nextLink != nullOff {
		setFreePrev(b, nextLink, off)
	}
	if next == h.freeHead {
		h.freeHead = off
	}

	format.SetPrevSize(b, format.NextOff(b, off), size)
	h.stats.CoalesceNext++
}

// coalesceWithPrevAndNext merges the block being released and both
// neighbors into the predecessor. The successor leaves the free list; the
// predecessor keeps its position.
func (h *Heap) coalesceWithPrevAndNext(off int) {
	b := h.region.Bytes()
	prev := format.PrevOff(b, off)
	next := format.NextOff(b, off)
	size := format.BlockSize(b, off) + format.BlockSize(b, prev) +
		format.BlockSize(b, next) + 2*format.HeaderSize

	h.flRemove(next)
	format.SetBlockSizeState(b, prev, size, format.Unallocated)
	format.SetPrevSize(b, format.NextOff(b, prev), size)
	h.stats.CoalesceBoth++
}
