package format

import "encoding/binary"

// Binary encoding utilities for little-endian header words.
//
// Implementation: encoding/binary.LittleEndian. The compiler inlines and
// optimizes these calls well enough that unsafe pointer reinterpretation
// buys nothing measurable while giving up bounds checks.

// PutU64 writes a uint64 value to the buffer at the specified offset in
// little-endian format.
func PutU64(b []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+8], v)
}

// ReadU64 reads a uint64 value from the buffer at the specified offset in
// little-endian format.
func ReadU64(b []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+8])
}
