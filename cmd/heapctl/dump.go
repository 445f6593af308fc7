package main

import (
	"github.com/spf13/cobra"
)

var (
	dumpNoFence   bool
	dumpMaxBlocks int
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().BoolVar(&dumpNoFence, "no-fenceposts", false, "Hide chunk-boundary sentinels")
	cmd.Flags().IntVar(&dumpMaxBlocks, "max-blocks", 0, "Maximum blocks to print (0 = unlimited)")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Human-readable block map after a workload",
		Long: `The dump command replays the seeded workload and prints every
block in memory order: header offset, state, payload size, and the size of
the block before it.

Example:
  heapctl dump
  heapctl dump --policy best-fit --ops 1000
  heapctl dump --no-fenceposts --json`,
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
			return newPrinter(h, !dumpNoFence, dumpMaxBlocks).PrintBlocks()
		},
	}
	return cmd
}
