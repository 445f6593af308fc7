package heap

import (
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/joshuapare/heapkit/internal/format"
	"github.com/joshuapare/heapkit/internal/mem"
)

// Policy selects the free-list search strategy.
type Policy int

const (
	// FirstFit returns the first free block large enough for a request.
	FirstFit Policy = iota

	// BestFit scans the whole free list and returns the smallest block
	// large enough, ties broken by list order.
	BestFit
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case FirstFit:
		return "first-fit"
	case BestFit:
		return "best-fit"
	default:
		return "unknown"
	}
}

// State mirrors the block states reported by the walkers.
type State = format.State

const (
	// Unallocated marks a block owned by the free list.
	Unallocated = format.Unallocated
	// Allocated marks a block whose payload belongs to the caller.
	Allocated = format.Allocated
	// Fencepost marks a zero-size chunk-boundary sentinel.
	Fencepost = format.Fencepost
)

// Ref identifies an allocated payload by its stable offset into the managed
// region.
type Ref int

// NullRef is the absent reference. No payload ever lives at offset zero:
// the first bytes of the region always hold the first chunk's left
// fencepost.
const NullRef Ref = 0

// Config controls a new Heap.
type Config struct {
	// Policy selects first-fit or best-fit free-list search.
	Policy Policy

	// MaxSize caps the managed region; on unix this is the address-space
	// reservation. Zero means mem.DefaultMax.
	MaxSize int

	// Region overrides the OS-backed region. Nil means a platform region
	// of MaxSize. Tests use this to inject deterministic or misbehaving
	// regions.
	Region mem.Region

	// Logger receives debug events for growth and chunk coalescing.
	// Nil disables logging.
	Logger *zerolog.Logger
}

// Heap is one managed heap: a monotonically growing OS-backed region carved
// into blocks, an intrusive free list over the unallocated ones, and the
// boundary-tag bookkeeping needed to coalesce neighbors and chunks. One
// mutex serializes every public operation.
type Heap struct {
	mu sync.Mutex

	region mem.Region
	policy Policy
	log    zerolog.Logger

	// freeHead is the offset of the free-list head, nullOff when empty.
	freeHead int

	// recentFence is the right fencepost of the most recently grown
	// chunk, used to test chunk adjacency. nullOff before first growth.
	recentFence int

	stats Stats

	// fatal terminates the process on unrecoverable corruption such as a
	// double free. Overridden in tests; never returns in production.
	fatal func(format string, args ...any)
}

// New initializes a heap over a fresh region.
func New(conf Config) (*Heap, error) {
	region := conf.Region
	if region == nil {
		r, err := mem.New(conf.MaxSize)
		if err != nil {
			return nil, err
		}
		region = r
	}

	log := zerolog.Nop()
	if conf.Logger != nil {
		log = *conf.Logger
	}

	h := &Heap{
		region:      region,
		policy:      conf.Policy,
		log:         log,
		freeHead:    nullOff,
		recentFence: nullOff,
	}
	h.fatal = h.abort
	return h, nil
}

// Close releases the OS region. It performs no heap validation; blocks
// still allocated are abandoned with the region.
func (h *Heap) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.region.Close()
}

// Policy returns the configured search policy.
func (h *Heap) Policy() Policy {
	return h.policy
}

// Size returns the total number of bytes obtained from the OS so far.
func (h *Heap) Size() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.region.Size()
}

// UsableSize returns the granted payload size for an allocation, which may
// exceed the requested size. NullRef has no payload.
func (h *Heap) UsableSize(ref Ref) int {
	if ref == NullRef {
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return format.BlockSize(h.region.Bytes(), format.HeaderOff(int(ref)))
}

// Bytes returns the payload view for an allocation. The slice aliases the
// managed region; it stays valid until the allocation is freed.
func (h *Heap) Bytes(ref Ref) []byte {
	if ref == NullRef {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	b := h.region.Bytes()
	size := format.BlockSize(b, format.HeaderOff(int(ref)))
	return b[int(ref) : int(ref)+size]
}

func (h *Heap) abort(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "heap: "+msg+"\n", args...)
	os.Exit(2)
}
