package main

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/heap"
)

func init() {
	rootCmd.AddCommand(newExerciseCmd())
}

func newExerciseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exercise",
		Short: "Replay a workload and report counters",
		Long: `The exercise command replays the seeded workload and prints the
heap's cumulative counters afterwards.

Example:
  heapctl exercise --ops 10000
  heapctl exercise --policy best-fit --seed 7 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := buildHeap()
			if err != nil {
				return err
			}
			defer h.Close()

			if err := runWorkload(h, opCount, seed); err != nil {
				return err
			}
			printVerbose("workload done: %d operations, %d bytes from the OS\n",
				opCount, h.Size())
			return newPrinter(h, true, 0).PrintStats()
		},
	}
	return cmd
}

// runWorkload drives a deterministic alloc/free/resize mix. Roughly half
// the operations allocate, a third free the oldest survivor, the rest
// resize a survivor, so a live set builds up and churns.
func runWorkload(h *heap.Heap, ops int, seed int64) error {
	rng := rand.New(rand.NewSource(seed))

	var live []heap.Ref
	for i := 0; i < ops; i++ {
		switch r := rng.Intn(6); {
		case r <= 2 || len(live) == 0:
			size := 1 << uint(3+rng.Intn(8)) // 8..1024 bytes
			size += rng.Intn(size)
			ref, payload, err := h.Alloc(size)
			if err != nil {
				return fmt.Errorf("alloc %d: %w", size, err)
			}
			payload[0] = byte(i)
			live = append(live, ref)
		case r <= 4:
			h.Free(live[0])
			live = live[1:]
		default:
			idx := rng.Intn(len(live))
			ref, _, err := h.Realloc(live[idx], 8+rng.Intn(512))
			if err != nil {
				return fmt.Errorf("realloc: %w", err)
			}
			live[idx] = ref
		}
	}
	return nil
}
