//go:build !unix

package mem

// New returns a slice-backed region on platforms without mmap support.
func New(max int) (Region, error) {
	return NewSlice(max), nil
}
