package heap

import "github.com/joshuapare/heapkit/internal/format"

// nullOff marks an absent block offset. Valid offsets are non-negative.
const nullOff = -1

// The free list is intrusive: an unallocated block stores its list links in
// the first two words of its own payload, encoded as uint64 offsets with
// format.NullLink for nil. Fenceposts and allocated blocks never carry
// links.

func freeNext(b []byte, off int) int {
	return decodeLink(format.ReadU64(b, off+format.HeaderSize))
}

func freePrev(b []byte, off int) int {
	return decodeLink(format.ReadU64(b, off+format.HeaderSize+format.WordSize))
}

func setFreeNext(b []byte, off, next int) {
	format.PutU64(b, off+format.HeaderSize, encodeLink(next))
}

func setFreePrev(b []byte, off, prev int) {
	format.PutU64(b, off+format.HeaderSize+format.WordSize, encodeLink(prev))
}

func encodeLink(off int) uint64 {
	if off == nullOff {
		return format.NullLink
	}
	return uint64(off)
}

func decodeLink(v uint64) int {
	if v == format.NullLink {
		return nullOff
	}
	return int(v)
}

// flInsert pushes a free block at the list head.
func (h *Heap) flInsert(off int) {
	b := h.region.Bytes()
	setFreePrev(b, off, nullOff)
	setFreeNext(b, off, h.freeHead)
	if h.freeHead != nullOff {
		setFreePrev(b, h.freeHead, off)
	}
	h.freeHead = off
}

// flRemove unlinks a free block wherever it sits: head, tail, middle, or
// sole member.
func (h *Heap) flRemove(off int) {
	b := h.region.Bytes()
	prev := freePrev(b, off)
	next := freeNext(b, off)
	if prev != nullOff {
		setFreeNext(b, prev, next)
	}
	if next != nullOff {
		setFreePrev(b, next, prev)
	}
	if off == h.freeHead {
		h.freeHead = next
	}
}

// flFind returns the offset of a free block whose payload size is at least
// need, or nullOff. FirstFit stops at the first hit; BestFit scans the
// whole list and keeps the smallest hit, ties to the earlier list position.
func (h *Heap) flFind(need int) int {
	b := h.region.Bytes()

	if h.policy == BestFit {
		best := nullOff
		for off := h.freeHead; off != nullOff; off = freeNext(b, off) {
			size := format.BlockSize(b, off)
			if size < need {
				continue
			}
			if best == nullOff || size < format.BlockSize(b, best) {
				best = off
			}
		}
		return best
	}

	for off := h.freeHead; off != nullOff; off = freeNext(b, off) {
		if format.BlockSize(b, off) >= need {
			return off
		}
	}
	return nullOff
}
