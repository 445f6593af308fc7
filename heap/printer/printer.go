// Package printer renders heap structures for humans and tooling: block
// maps in memory order, the free list in search order, and the cumulative
// counters, each as text or JSON.
package printer

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/heapkit/heap"
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs human-readable text with grouped numbers.
	FormatText Format = "text"

	// FormatJSON outputs JSON.
	FormatJSON Format = "json"
)

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// ShowFenceposts includes chunk-boundary sentinels in block maps.
	// Default: true
	ShowFenceposts bool

	// MaxBlocks limits how many blocks a block map prints (0 = unlimited).
	// Default: 0
	MaxBlocks int
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:         FormatText,
		ShowFenceposts: true,
	}
}

// Printer handles formatted output of heap structures.
type Printer struct {
	opts   Options
	writer io.Writer
	heap   *heap.Heap
	msg    *message.Printer
}

// New creates a new Printer over a heap.
//
// Example:
//
//	h, _ := heap.New(heap.Config{})
//	p := printer.New(h, os.Stdout, printer.DefaultOptions())
//	p.PrintBlocks()
func New(h *heap.Heap, w io.Writer, opts Options) *Printer {
	return &Printer{
		opts:   opts,
		writer: w,
		heap:   h,
		msg:    message.NewPrinter(language.English),
	}
}

// PrintBlocks prints every block in memory order.
func (p *Printer) PrintBlocks() error {
	if p.opts.Format == FormatJSON {
		return p.printBlocksJSON()
	}
	return p.printBlocksText()
}

// PrintFreeList prints the free list in search order, head first.
func (p *Printer) PrintFreeList() error {
	if p.opts.Format == FormatJSON {
		return p.printFreeListJSON()
	}
	return p.printFreeListText()
}

// PrintStats prints the heap's cumulative counters.
func (p *Printer) PrintStats() error {
	if p.opts.Format == FormatJSON {
		return p.printStatsJSON()
	}
	return p.printStatsText()
}
