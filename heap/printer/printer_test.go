package printer

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/internal/mem"
)

func newTestHeap(t *testing.T) *heap.Heap {
	t.Helper()
	h, err := heap.New(heap.Config{Region: mem.NewSlice(1 << 20)})
	require.NoError(t, err)
	return h
}

func TestPrintBlocksText(t *testing.T) {
	h := newTestHeap(t)
	_, _, err := h.Alloc(16)
	require.NoError(t, err)

	var buf bytes.Buffer
	p := New(h, &buf, DefaultOptions())
	require.NoError(t, p.PrintBlocks())

	out := buf.String()
	assert.Contains(t, out, "allocated")
	assert.Contains(t, out, "unallocated")
	assert.Contains(t, out, "fencepost")
	assert.Contains(t, out, "4,016", "sizes print with digit grouping")
	assert.Contains(t, out, "4 blocks in 4,096 bytes")
}

func TestPrintBlocksTextHidesFenceposts(t *testing.T) {
	h := newTestHeap(t)
	_, _, err := h.Alloc(16)
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.ShowFenceposts = false

	var buf bytes.Buffer
	require.NoError(t, New(h, &buf, opts).PrintBlocks())

	out := buf.String()
	assert.NotContains(t, out, "fencepost")
	// The total still counts every block.
	assert.Contains(t, out, "4 blocks in 4,096 bytes")
}

func TestPrintBlocksJSON(t *testing.T) {
	h := newTestHeap(t)
	_, _, err := h.Alloc(16)
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.Format = FormatJSON

	var buf bytes.Buffer
	require.NoError(t, New(h, &buf, opts).PrintBlocks())

	var blocks []jsonBlock
	require.NoError(t, json.Unmarshal(buf.Bytes(), &blocks))
	require.Len(t, blocks, 4)
	assert.Equal(t, jsonBlock{Offset: 0, State: "fencepost"}, blocks[0])
	assert.Equal(t, jsonBlock{Offset: 16, State: "allocated", Size: 16}, blocks[1])
	assert.Equal(t, jsonBlock{Offset: 48, State: "unallocated", Size: 4016, PrevSize: 16}, blocks[2])
}

func TestPrintFreeListJSON(t *testing.T) {
	h := newTestHeap(t)
	_, _, err := h.Alloc(16)
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.Format = FormatJSON

	var buf bytes.Buffer
	require.NoError(t, New(h, &buf, opts).PrintFreeList())

	var blocks []jsonFreeBlock
	require.NoError(t, json.Unmarshal(buf.Bytes(), &blocks))
	require.Len(t, blocks, 1)
	assert.Equal(t, 48, blocks[0].Offset)
	assert.Equal(t, -1, blocks[0].Next)
	assert.Equal(t, -1, blocks[0].Prev)
}

func TestPrintStats(t *testing.T) {
	h := newTestHeap(t)
	ref, _, err := h.Alloc(16)
	require.NoError(t, err)
	h.Free(ref)

	var buf bytes.Buffer
	require.NoError(t, New(h, &buf, DefaultOptions()).PrintStats())
	out := buf.String()
	assert.Contains(t, out, "alloc calls")
	assert.Contains(t, out, "grow bytes")
	assert.Contains(t, out, "4,096")

	opts := DefaultOptions()
	opts.Format = FormatJSON
	buf.Reset()
	require.NoError(t, New(h, &buf, opts).PrintStats())

	var stats map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &stats))
	assert.EqualValues(t, 1, stats["AllocCalls"])
	assert.EqualValues(t, 1, stats["FreeCalls"])
}
