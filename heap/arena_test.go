package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/internal/format"
	"github.com/joshuapare/heapkit/internal/mem"
)

// scriptedRegion is a slice-backed region that can misbehave on demand:
// skip bytes before a grow (breaking chunk adjacency) or hand back a
// misaligned offset.
type scriptedRegion struct {
	buf      []byte
	gap      int
	misalign bool
}

func (r *scriptedRegion) Grow(n int) (int, error) {
	skip := r.gap
	r.gap = 0
	if r.misalign {
		r.misalign = false
		skip += 4
	}
	off := len(r.buf) + skip
	r.buf = append(r.buf, make([]byte, skip+n)...)
	return off, nil
}

func (r *scriptedRegion) Bytes() []byte { return r.buf }
func (r *scriptedRegion) Size() int     { return len(r.buf) }
func (r *scriptedRegion) Close() error  { return nil }

func TestNewChunkLayout(t *testing.T) {
	h := newTestHeap(t, FirstFit)

	blk, err := h.newChunk(16)
	require.NoError(t, err)
	assert.Equal(t, 16, blk)
	assert.Equal(t, format.ChunkIncrement, h.region.Size())

	b := h.region.Bytes()
	assert.Equal(t, format.Fencepost, format.BlockState(b, 0))
	assert.Equal(t, 0, format.BlockSize(b, 0))

	assert.Equal(t, format.Unallocated, format.BlockState(b, blk))
	assert.Equal(t, 4048, format.BlockSize(b, blk))
	assert.Equal(t, 0, format.PrevSize(b, blk))

	right := format.NextOff(b, blk)
	assert.Equal(t, 4080, right)
	assert.Equal(t, format.Fencepost, format.BlockState(b, right))
	assert.Equal(t, 4048, format.PrevSize(b, right))
}

func TestNewChunkRoundsToIncrement(t *testing.T) {
	h := newTestHeap(t, FirstFit)

	// One byte past a single increment's capacity costs a second one.
	blk, err := h.newChunk(4049)
	require.NoError(t, err)
	assert.Equal(t, 2*format.ChunkIncrement, h.region.Size())
	assert.Equal(t, 8144, format.BlockSize(h.region.Bytes(), blk))
}

func TestChunkCoalesceAbsorbsFreeTail(t *testing.T) {
	h := newTestHeap(t, FirstFit)

	a, _, err := h.Alloc(16)
	require.NoError(t, err)
	assert.Equal(t, Ref(32), a)

	// 8000 bytes cannot come from the first chunk's 4016-byte remainder,
	// so the heap grows. The new chunk is adjacent and the old chunk ends
	// in that free remainder, so both fenceposts and the remainder fold
	// into one spanning block, which then serves the request in place.
	big, _, err := h.Alloc(8000)
	require.NoError(t, err)
	assert.Equal(t, Ref(64), big)

	stats := h.Stats()
	assert.Equal(t, 1, stats.ChunkCoalesces)
	assert.Equal(t, 2, stats.GrowCalls)
	assert.Equal(t, 2, countFenceposts(h))

	blocks := collectBlocks(h)
	require.Len(t, blocks, 5)
	assert.Equal(t, Block{Off: 48, Size: 8000, PrevSize: 16, State: Allocated}, blocks[2])
	assert.Equal(t, Block{Off: 8064, Size: 4192, PrevSize: 8000, State: Unallocated}, blocks[3])
}

func TestChunkCoalesceAllocatedTail(t *testing.T) {
	h := newTestHeap(t, FirstFit)

	// Fill the first chunk exactly, leaving its last block allocated.
	a, _, err := h.Alloc(4048)
	require.NoError(t, err)
	assert.Equal(t, Ref(32), a)
	assert.Empty(t, freeListContent(h))

	// The next allocation grows an adjacent chunk. Only the two interior
	// fenceposts collapse; the allocated tail is untouched.
	ref, _, err := h.Alloc(16)
	require.NoError(t, err)
	assert.Equal(t, Ref(4096), ref)

	stats := h.Stats()
	assert.Equal(t, 1, stats.ChunkCoalesces)
	assert.Equal(t, 2, countFenceposts(h))

	blocks := collectBlocks(h)
	require.Len(t, blocks, 5)
	assert.Equal(t, Block{Off: 4080, Size: 16, PrevSize: 4048, State: Allocated}, blocks[2])
	assert.Equal(t, Block{Off: 4112, Size: 4048, PrevSize: 16, State: Unallocated}, blocks[3])
}

func TestChunkDisjointStaysFenced(t *testing.T) {
	region := &scriptedRegion{}
	h, err := New(Config{Region: region})
	require.NoError(t, err)

	_, _, err = h.Alloc(4048)
	require.NoError(t, err)

	// The next chunk arrives 16 bytes past the previous one, so the
	// adjacency test fails and the chunk keeps both of its fenceposts.
	region.gap = 16
	ref, _, err := h.Alloc(16)
	require.NoError(t, err)
	assert.Equal(t, Ref(4144), ref)
	assert.Equal(t, 0, h.Stats().ChunkCoalesces)

	var blocks []Block
	h.WalkRange(4112, -1, func(b Block) bool {
		blocks = append(blocks, b)
		return true
	})
	require.Len(t, blocks, 4)
	assert.Equal(t, Fencepost, blocks[0].State)
	assert.Equal(t, Block{Off: 4128, Size: 16, PrevSize: 0, State: Allocated}, blocks[1])
	assert.Equal(t, Block{Off: 4160, Size: 4016, PrevSize: 16, State: Unallocated}, blocks[2])
	assert.Equal(t, Fencepost, blocks[3].State)
}

func TestMisalignedGrowFails(t *testing.T) {
	h, err := New(Config{Region: &scriptedRegion{misalign: true}})
	require.NoError(t, err)

	_, _, err = h.Alloc(16)
	require.ErrorIs(t, err, ErrNoMemory)
}

func TestRegionExhaustion(t *testing.T) {
	h, err := New(Config{Region: mem.NewSlice(format.ChunkIncrement)})
	require.NoError(t, err)

	ref, _, err := h.Alloc(16)
	require.NoError(t, err)

	_, _, err = h.Alloc(8000)
	require.ErrorIs(t, err, ErrNoMemory)

	// The failed growth left the heap usable: existing free space still
	// serves smaller requests, and earlier allocations survive.
	again, _, err := h.Alloc(64)
	require.NoError(t, err)
	assert.NotEqual(t, ref, again)
	assert.Equal(t, format.ChunkIncrement, h.Size())
}
