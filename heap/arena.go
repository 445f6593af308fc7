package heap

import "github.com/joshuapare/heapkit/internal/format"

// Arena growth. Chunks are obtained from the OS region in ChunkIncrement
// multiples and delimited by a fencepost sentinel at each end, so block
// traversal can never walk off a chunk. When the region hands back a chunk
// adjacent to the previous one the fenceposts between them are collapsed.

// newChunk grows the region by enough bytes for minPayload plus two
// fenceposts and one block header, rounded up to the chunk increment, and
// installs the chunk layout: left fencepost, one spanning free block, right
// fencepost. The free block is returned uninserted; on failure no state is
// committed.
func (h *Heap) newChunk(minPayload int) (int, error) {
	total := format.AlignUpChunk(minPayload + 3*format.HeaderSize)

	off, err := h.region.Grow(total)
	if err != nil {
		h.log.Debug().Err(err).Int("bytes", total).Msg("region grow failed")
		return 0, ErrNoMemory
	}
	if !format.Aligned(off) {
		return 0, ErrNoMemory
	}

	payload := total - 3*format.HeaderSize
	b := h.region.Bytes()

	left := off
	format.SetBlockSizeState(b, left, 0, format.Fencepost)
	format.SetPrevSize(b, left, 0)

	blk := format.NextOff(b, left)
	format.SetBlockSizeState(b, blk, payload, format.Unallocated)
	format.SetPrevSize(b, blk, 0)

	right := format.NextOff(b, blk)
	format.SetBlockSizeState(b, right, 0, format.Fencepost)
	format.SetPrevSize(b, right, payload)

	h.stats.GrowCalls++
	h.stats.GrowBytes += int64(total)
	h.log.Debug().Int("chunk", off).Int("bytes", total).Msg("heap grown")

	return blk, nil
}

// tryCoalesceChunk merges a freshly grown chunk into the most recently
// grown one when the two are adjacent in the region. blk is the chunk's
// free block as returned by newChunk, not yet in the free list.
//
// On adjacency both interior fenceposts are reclaimed; if the previous
// chunk also ends in a free block, that block is absorbed. The merged block
// is inserted at the free-list head and the right fencepost tracker is
// advanced. Returns false when the chunks were not adjacent (for example
// because the region skipped bytes) and the caller still owes blk a plain
// insert.
func (h *Heap) tryCoalesceChunk(blk int) bool {
	if h.recentFence == nullOff {
		return false
	}

	b := h.region.Bytes()
	left := format.PrevOff(b, blk)
	if left-format.HeaderSize != h.recentFence {
		return false
	}

	size := format.BlockSize(b, blk)
	tail := format.PrevOff(b, h.recentFence)

	if format.BlockState(b, tail) == format.Unallocated {
		// The previous chunk ends in a free block: absorb it together
		// with both fenceposts, re-inserting at the head.
		h.flRemove(tail)
		size += format.BlockSize(b, tail) + 3*format.HeaderSize
		blk = tail
	} else {
		// Only the two fenceposts collapse into reclaimed header bytes.
		blk = h.recentFence
		size += 2 * format.HeaderSize
		format.SetPrevSize(b, blk, format.BlockSize(b, tail))
	}

	format.SetBlockSizeState(b, blk, size, format.Unallocated)

	right := format.NextOff(b, blk)
	format.SetPrevSize(b, right, size)
	h.recentFence = right

	h.flInsert(blk)
	h.stats.ChunkCoalesces++
	h.log.Debug().Int("block", blk).Int("size", size).Msg("chunks coalesced")

	return true
}
