package heap

// Stats holds cumulative counters for one heap. Byte counts are payload
// bytes as granted, headers excluded; GrowBytes is the raw byte total
// obtained from the OS region, fenceposts and headers included.
type Stats struct {
	AllocCalls int
	FreeCalls  int

	GrowCalls int
	GrowBytes int64

	SplitCount     int
	CoalescePrev   int
	CoalesceNext   int
	CoalesceBoth   int
	ChunkCoalesces int

	BytesAllocated int64
	BytesFreed     int64
}

// Stats returns a snapshot of the heap's counters.
func (h *Heap) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stats
}
