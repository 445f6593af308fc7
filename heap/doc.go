// Package heap implements a general-purpose dynamic memory allocator over a
// single growable OS-backed byte region.
//
// # Overview
//
// A Heap carves its region into blocks, each led by a 16-byte header: one
// packed size|state word and a prev-size boundary tag that makes backward
// traversal O(1). Unallocated blocks thread an intrusive doubly-linked free
// list through their payload bytes. The region grows in 4KB chunks, each
// delimited by zero-size fencepost sentinels, and adjacent chunks are merged
// when the OS hands them back contiguously.
//
// # Operations
//
// The public surface mirrors the classic allocator quartet:
//
//   - Alloc(size): Reserve a payload of at least size bytes
//   - Free(ref): Return an allocation to the free list, coalescing neighbors
//   - Calloc(n, elemSize): Alloc n*elemSize bytes, zero-filled
//   - Realloc(ref, size): Move an allocation to a new size
//
// Alloc returns a Ref (the payload's stable offset into the region) along
// with a []byte view of the granted payload. Granted payloads are always
// 8-byte aligned, at least 16 bytes, and at least as large as requested.
//
// # Search Policy
//
// Config.Policy selects how the free list is searched:
//
//	FirstFit  first block large enough (default)
//	BestFit   smallest block large enough, ties to earlier list order
//
// The policies differ only in which physical block satisfies a request; the
// rest of the engine is agnostic to the choice.
//
// # Failure Model
//
// Zero-size requests fail with ErrZeroSize, Calloc products that overflow
// fail with ErrOverflow, and exhausted growth fails with ErrNoMemory. All
// three leave the heap unchanged. Freeing a reference that is not currently
// allocated is unrecoverable heap corruption: the process terminates with a
// diagnostic rather than returning an error.
//
// # Thread Safety
//
// One mutex guards all heap state. Every public operation holds it for its
// entire body, so concurrent callers serialize; there is no per-block
// locking and no cancellation once an operation holds the lock.
//
// # Diagnostics
//
// Walk, WalkRange, and WalkFree traverse block headers read-only for dump
// and inspection tooling; see github.com/joshuapare/heapkit/heap/printer.
//
// # Known Limitations
//
// Memory obtained from the OS is never returned; the region grows
// monotonically for the life of the Heap. The engine assumes exclusive
// ownership of its region: growing or mutating the region outside the Heap
// breaks the chunk-contiguity invariant the arena manager relies on, and
// the engine has no way to detect or recover from that.
package heap
