package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/heap"
)

var statsCompare bool

func init() {
	cmd := newStatsCmd()
	cmd.Flags().BoolVar(&statsCompare, "compare", false, "Run the workload under both policies")
	rootCmd.AddCommand(cmd)
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show heap counters, optionally across both policies",
		Long: `The stats command replays the seeded workload and prints the
heap's cumulative counters. With --compare the same workload runs under
first-fit and best-fit so their split and coalesce behavior can be read
side by side.

Example:
  heapctl stats --ops 10000
  heapctl stats --compare --seed 7
  heapctl stats --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !statsCompare {
				h, err := buildHeap()
				if err != nil {
					return err
				}
				defer h.Close()
				if err := runWorkload(h, opCount, seed); err != nil {
					return err
				}
				return newPrinter(h, true, 0).PrintStats()
			}
			return runStatsCompare()
		},
	}
	return cmd
}

func runStatsCompare() error {
	collect := func(p heap.Policy) (heap.Stats, int, error) {
		h, err := heap.New(heap.Config{Policy: p, MaxSize: maxSize})
		if err != nil {
			return heap.Stats{}, 0, err
		}
		defer h.Close()
		if err := runWorkload(h, opCount, seed); err != nil {
			return heap.Stats{}, 0, err
		}
		return h.Stats(), h.Size(), nil
	}

	first, firstSize, err := collect(heap.FirstFit)
	if err != nil {
		return err
	}
	best, bestSize, err := collect(heap.BestFit)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]any{
			"first-fit": map[string]any{"stats": first, "region_bytes": firstSize},
			"best-fit":  map[string]any{"stats": best, "region_bytes": bestSize},
		})
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "counter\t%s\t%s\n", heap.FirstFit, heap.BestFit)
	rows := []struct {
		label string
		a, b  int64
	}{
		{"alloc calls", int64(first.AllocCalls), int64(best.AllocCalls)},
		{"free calls", int64(first.FreeCalls), int64(best.FreeCalls)},
		{"grow calls", int64(first.GrowCalls), int64(best.GrowCalls)},
		{"grow bytes", first.GrowBytes, best.GrowBytes},
		{"splits", int64(first.SplitCount), int64(best.SplitCount)},
		{"coalesce prev", int64(first.CoalescePrev), int64(best.CoalescePrev)},
		{"coalesce next", int64(first.CoalesceNext), int64(best.CoalesceNext)},
		{"coalesce both", int64(first.CoalesceBoth), int64(best.CoalesceBoth)},
		{"chunk coalesces", int64(first.ChunkCoalesces), int64(best.ChunkCoalesces)},
		{"bytes allocated", first.BytesAllocated, best.BytesAllocated},
		{"bytes freed", first.BytesFreed, best.BytesFreed},
		{"region bytes", int64(firstSize), int64(bestSize)},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%d\t%d\n", row.label, row.a, row.b)
	}
	return w.Flush()
}
