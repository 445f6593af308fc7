package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/printer"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool

	policyName string
	opCount    int
	seed       int64
	maxSize    int
)

var rootCmd = &cobra.Command{
	Use:   "heapctl",
	Short: "Exercise and inspect a byte-granular heap",
	Long: `heapctl builds an in-process heap, replays a reproducible
allocation workload against it, and renders the surviving block map, the
free list, or the cumulative counters. The same seed always produces the
same heap, which makes the output diffable across policies.`,
	Version: "0.1.0",
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		StringVar(&policyName, "policy", "first-fit", "Free-list search policy (first-fit, best-fit)")
	rootCmd.PersistentFlags().IntVar(&opCount, "ops", 256, "Number of workload operations")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 1, "Workload seed")
	rootCmd.PersistentFlags().IntVar(&maxSize, "max-size", 0, "Region cap in bytes (0 = default)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// parsePolicy maps a flag value to a search policy.
func parsePolicy(name string) (heap.Policy, error) {
	switch name {
	case "first-fit", "firstfit", "first":
		return heap.FirstFit, nil
	case "best-fit", "bestfit", "best":
		return heap.BestFit, nil
	default:
		return 0, fmt.Errorf("unknown policy %q (want first-fit or best-fit)", name)
	}
}

// buildHeap creates a heap from the global flags.
func buildHeap() (*heap.Heap, error) {
	policy, err := parsePolicy(policyName)
	if err != nil {
		return nil, err
	}

	conf := heap.Config{
		Policy:  policy,
		MaxSize: maxSize,
	}
	if verbose && !quiet {
		log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Logger()
		conf.Logger = &log
	}
	return heap.New(conf)
}

// newPrinter builds a printer honoring the global output flags.
func newPrinter(h *heap.Heap, showFenceposts bool, maxBlocks int) *printer.Printer {
	opts := printer.DefaultOptions()
	if jsonOut {
		opts.Format = printer.FormatJSON
	}
	opts.ShowFenceposts = showFenceposts
	opts.MaxBlocks = maxBlocks
	return printer.New(h, os.Stdout, opts)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
