package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newFreeListCmd())
}

func newFreeListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "freelist",
		Short: "Free list in search order after a workload",
		Long: `The freelist command replays the seeded workload and prints the
free list head first, which is the order allocation searches it.

Example:
  heapctl freelist --ops 1000
  heapctl freelist --policy best-fit --json`,
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
			return newPrinter(h, true, 0).PrintFreeList()
		},
	}
	return cmd
}
