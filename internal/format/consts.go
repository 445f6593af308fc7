// Package format houses the byte-level codec for heap block headers. The
// goal is to keep every read and write of the packed size|state word in one
// place, independent from the engine, so higher-level packages can
// orchestrate blocks without ever touching the raw bit pattern.
package format

const (
	// Alignment is the required alignment of block payload sizes and of
	// every payload offset handed to a caller.
	Alignment = 8

	// AlignmentMask covers the low bits that must be zero in an aligned
	// size or offset.
	AlignmentMask = Alignment - 1

	// WordSize is the width of one header word in bytes.
	WordSize = 8

	// HeaderSize is the number of bytes used by the header preceding every
	// block payload (free or in use): one packed size|state word followed
	// by the prev-size boundary tag.
	HeaderSize = 2 * WordSize

	// MinAllocSize is the smallest payload an ordinary block may carry.
	// A free block threads two 8-byte list links through its payload, so
	// no payload can be smaller than that.
	MinAllocSize = 2 * WordSize

	// ChunkIncrement is the granularity of arena growth. Every request to
	// the OS region is rounded up to a multiple of this value.
	ChunkIncrement = 4096

	// StateMask covers the low bits of the packed word that hold the block
	// state. Payload sizes are multiples of Alignment, which leaves the
	// low three bits of the size word free.
	StateMask = 0b111
)

// NullLink is the encoded form of an absent free-list link.
const NullLink = ^uint64(0)

// State is the allocation state of a block, stored in the low bits of the
// packed header word.
type State uint8

const (
	// Unallocated marks a block owned by the free list.
	Unallocated State = 0

	// Allocated marks a block whose payload belongs to the caller.
	Allocated State = 1

	// Fencepost marks a zero-size sentinel delimiting an arena chunk.
	// Fenceposts are never allocated, freed, or linked into the free list.
	Fencepost State = 2
)

// String returns the canonical name of the state.
func (s State) String() string {
	switch s {
	case Unallocated:
		return "UNALLOCATED"
	case Allocated:
		return "ALLOCATED"
	case Fencepost:
		return "FENCEPOST"
	default:
		return "INVALID"
	}
}
