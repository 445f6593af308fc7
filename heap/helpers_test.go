package heap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/internal/format"
	"github.com/joshuapare/heapkit/internal/mem"
)

// newTestHeap builds a heap over a deterministic slice region.
func newTestHeap(t *testing.T, policy Policy) *Heap {
	t.Helper()
	h, err := New(Config{Policy: policy, Region: mem.NewSlice(1 << 20)})
	require.NoError(t, err)
	return h
}

// fabricateFree grows the region by hand and installs one free block per
// payload size, inserting each into the free list (so the last size ends up
// at the head). Returns the header offsets in argument order. Only list
// fields are wired; boundary tags are not, so this is for list-level tests
// only.
func fabricateFree(t *testing.T, h *Heap, sizes ...int) []int {
	t.Helper()
	offs := make([]int, 0, len(sizes))
	for _, size := range sizes {
		off, err := h.region.Grow(format.HeaderSize + size)
		require.NoError(t, err)
		format.SetBlockSizeState(h.region.Bytes(), off, size, format.Unallocated)
		h.flInsert(off)
		offs = append(offs, off)
	}
	return offs
}

// freeListContent returns the header offsets in list order, head first.
func freeListContent(h *Heap) []int {
	var out []int
	b := h.region.Bytes()
	for off := h.freeHead; off != nullOff; off = freeNext(b, off) {
		out = append(out, off)
	}
	return out
}

// collectBlocks walks the whole heap in memory order.
func collectBlocks(h *Heap) []Block {
	var out []Block
	h.Walk(func(b Block) bool {
		out = append(out, b)
		return true
	})
	return out
}

// countFenceposts returns how many fencepost sentinels the walk sees.
func countFenceposts(h *Heap) int {
	n := 0
	h.Walk(func(b Block) bool {
		if b.State == Fencepost {
			n++
		}
		return true
	})
	return n
}
