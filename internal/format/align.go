package format

// Alignment utilities for block sizes and chunk growth. Payload sizes must
// be multiples of Alignment so the low bits of the size word stay free for
// the state; chunk requests are rounded to whole arena increments.

// AlignUp returns n aligned up to the next Alignment boundary.
//
// Example:
//
//	AlignUp(1)  = 8
//	AlignUp(8)  = 8
//	AlignUp(9)  = 16
func AlignUp(n int) int {
	return (n + AlignmentMask) & ^AlignmentMask
}

// AlignUpChunk returns n aligned up to the next ChunkIncrement boundary.
//
// Example:
//
//	AlignUpChunk(1)    = 4096
//	AlignUpChunk(4096) = 4096
//	AlignUpChunk(4097) = 8192
func AlignUpChunk(n int) int {
	return (n + ChunkIncrement - 1) & ^(ChunkIncrement - 1)
}

// Aligned reports whether n sits on an Alignment boundary.
func Aligned(n int) bool {
	return n&AlignmentMask == 0
}
