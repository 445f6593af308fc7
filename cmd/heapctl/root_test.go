package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/heap"
)

func TestParsePolicy(t *testing.T) {
	for _, name := range []string{"first-fit", "firstfit", "first"} {
		p, err := parsePolicy(name)
		require.NoError(t, err)
		assert.Equal(t, heap.FirstFit, p)
	}
	for _, name := range []string{"best-fit", "bestfit", "best"} {
		p, err := parsePolicy(name)
		require.NoError(t, err)
		assert.Equal(t, heap.BestFit, p)
	}

	_, err := parsePolicy("worst-fit")
	assert.Error(t, err)
}

func TestWorkloadIsDeterministic(t *testing.T) {
	run := func() heap.Stats {
		h, err := heap.New(heap.Config{})
		require.NoError(t, err)
		defer h.Close()
		require.NoError(t, runWorkload(h, 500, 42))
		return h.Stats()
	}

	assert.Equal(t, run(), run())
}

func TestWorkloadBalancesBooks(t *testing.T) {
	h, err := heap.New(heap.Config{})
	require.NoError(t, err)
	defer h.Close()

	require.NoError(t, runWorkload(h, 1000, 7))

	stats := h.Stats()
	assert.Positive(t, stats.AllocCalls)
	assert.Positive(t, stats.FreeCalls)
	assert.GreaterOrEqual(t, stats.BytesAllocated, stats.BytesFreed)
}
