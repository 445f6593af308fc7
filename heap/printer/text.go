package printer

import (
	"strings"

	"github.com/joshuapare/heapkit/heap"
)

// printBlocksText prints one line per block, one trailing total line.
func (p *Printer) printBlocksText() error {
	var err error
	shown, total := 0, 0

	_, err = p.msg.Fprintf(p.writer, "%-12s %-12s %12s %12s\n",
		"OFFSET", "STATE", "SIZE", "PREV")
	if err != nil {
		return err
	}

	p.heap.Walk(func(b heap.Block) bool {
		total++
		if b.State == heap.Fencepost && !p.opts.ShowFenceposts {
			return true
		}
		if p.opts.MaxBlocks > 0 && shown >= p.opts.MaxBlocks {
			return true
		}
		shown++
		_, err = p.msg.Fprintf(p.writer, "%#-12x %-12s %12d %12d\n",
			b.Off, strings.ToLower(b.State.String()), b.Size, b.PrevSize)
		return err == nil
	})
	if err != nil {
		return err
	}

	_, err = p.msg.Fprintf(p.writer, "%d blocks in %d bytes\n",
		total, p.heap.Size())
	return err
}

func (p *Printer) printFreeListText() error {
	var err error
	n := 0
	var free int64

	p.heap.WalkFree(func(fb heap.FreeBlock) bool {
		n++
		free += int64(fb.Size)
		_, err = p.msg.Fprintf(p.writer, "%#-12x %12d\n", fb.Off, fb.Size)
		return err == nil
	})
	if err != nil {
		return err
	}

	_, err = p.msg.Fprintf(p.writer, "%d free blocks, %d bytes\n", n, free)
	return err
}

func (p *Printer) printStatsText() error {
	s := p.heap.Stats()
	rows := []struct {
		label string
		value int64
	}{
		{"alloc calls", int64(s.AllocCalls)},
		{"free calls", int64(s.FreeCalls)},
		{"grow calls", int64(s.GrowCalls)},
		{"grow bytes", s.GrowBytes},
		{"splits", int64(s.SplitCount)},
		{"coalesce prev", int64(s.CoalescePrev)},
		{"coalesce next", int64(s.CoalesceNext)},
		{"coalesce both", int64(s.CoalesceBoth)},
		{"chunk coalesces", int64(s.ChunkCoalesces)},
		{"bytes allocated", s.BytesAllocated},
		{"bytes freed", s.BytesFreed},
	}
	for _, row := range rows {
		if _, err := p.msg.Fprintf(p.writer, "%-16s %14d\n", row.label, row.value); err != nil {
			return err
		}
	}
	return nil
}
