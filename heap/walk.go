package heap

import "github.com/joshuapare/heapkit/internal/format"

// Read-only traversal for dump and inspection tooling. The walkers take
// the heap lock for a consistent view but never modify a header.

// Block describes one block header as seen by the walkers.
type Block struct {
	// Off is the header's offset into the managed region.
	Off int
	// Size is the payload size in bytes; zero for fenceposts.
	Size int
	// PrevSize is the boundary tag: the payload size of the block
	// immediately before this one in memory.
	PrevSize int
	// State is the block's allocation state.
	State State
}

// FreeBlock is a Block together with its free-list neighbor offsets.
// Next and Prev are header offsets, negative when absent.
type FreeBlock struct {
	Block
	Next int
	Prev int
}

// Walk visits every block in memory order from the start of the managed
// region, fenceposts included. The walk stops early when fn returns false.
//
// The memory-order walk assumes chunks are contiguous; see the package
// documentation for the external-growth hazard.
func (h *Heap) Walk(fn func(Block) bool) {
	h.WalkRange(0, -1, fn)
}

// WalkRange visits blocks whose headers lie in [start, end) in memory
// order. A negative end means the current end of the region.
func (h *Heap) WalkRange(start, end int, fn func(Block) bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	b := h.region.Bytes()
	if end < 0 || end > len(b) {
		end = len(b)
	}
	for off := start; off+format.HeaderSize <= end; off = format.NextOff(b, off) {
		if !fn(h.blockAt(b, off)) {
			return
		}
	}
}

// WalkFree visits free blocks in list order, head first.
func (h *Heap) WalkFree(fn func(FreeBlock) bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	b := h.region.Bytes()
	for off := h.freeHead; off != nullOff; off = freeNext(b, off) {
		fb := FreeBlock{
			Block: h.blockAt(b, off),
			Next:  freeNext(b, off),
			Prev:  freePrev(b, off),
		}
		if !fn(fb) {
			return
		}
	}
}

func (h *Heap) blockAt(b []byte, off int) Block {
	return Block{
		Off:      off,
		Size:     format.BlockSize(b, off),
		PrevSize: format.PrevSize(b, off),
		State:    format.BlockState(b, off),
	}
}
