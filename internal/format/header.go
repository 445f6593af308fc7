package format

// Block header accessors. A header is two little-endian words at off:
//
//	off+0  packed payload size | state (state in the low three bits)
//	off+8  payload size of the block immediately before it in memory
//
// The payload begins at off+HeaderSize. Size and state share one word, so
// every accessor masks and merges to preserve the field it does not touch.
// Callers must not use these on offsets outside a valid chunk.

// BlockSize returns the payload size stored in the packed word.
func BlockSize(b []byte, off int) int {
	return int(ReadU64(b, off) & ^uint64(StateMask))
}

// BlockState returns the state stored in the packed word.
func BlockState(b []byte, off int) State {
	return State(ReadU64(b, off) & StateMask)
}

// SetBlockSize stores size in the packed word, preserving the state bits.
func SetBlockSize(b []byte, off int, size int) {
	PutU64(b, off, uint64(size)|ReadU64(b, off)&StateMask)
}

// SetBlockState stores s in the packed word, preserving the size bits.
func SetBlockState(b []byte, off int, s State) {
	PutU64(b, off, ReadU64(b, off)&^uint64(StateMask)|uint64(s))
}

// SetBlockSizeState stores both fields of the packed word at once.
func SetBlockSizeState(b []byte, off int, size int, s State) {
	PutU64(b, off, uint64(size)&^uint64(StateMask)|uint64(s)&StateMask)
}

// PrevSize returns the boundary tag: the payload size of the block
// immediately before this one in memory.
func PrevSize(b []byte, off int) int {
	return int(ReadU64(b, off+WordSize))
}

// SetPrevSize stores the boundary tag.
func SetPrevSize(b []byte, off int, size int) {
	PutU64(b, off+WordSize, uint64(size))
}

// NextOff returns the header offset of the next block in memory order.
func NextOff(b []byte, off int) int {
	return off + HeaderSize + BlockSize(b, off)
}

// PrevOff returns the header offset of the previous block in memory order,
// computed from the boundary tag.
func PrevOff(b []byte, off int) int {
	return off - PrevSize(b, off) - HeaderSize
}

// HeaderOff returns the header offset for a payload offset.
func HeaderOff(payloadOff int) int {
	return payloadOff - HeaderSize
}

// PayloadOff returns the payload offset for a header offset.
func PayloadOff(headerOff int) int {
	return headerOff + HeaderSize
}
