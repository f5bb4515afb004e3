package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "diskscope",
	Short: "A terminal disk-usage analyzer",
	Long: `diskscope walks a directory tree, aggregates logical and on-disk
sizes bottom-up, and classifies temp/cache/build-artifact paths against
a compiled rule set. It ships a non-interactive scan summary, a
top-K insights report, and an interactive tree/insight browser.`,
}

var (
	optWorkers      int
	optMaxDepth     int
	optExclude      []string
	optVerbose      bool
	optMaxInsights  int
	optRulesFile    string
	optMark         []string
	optCachePath    string
	optNoMaxDepth   = -1
)

func init() {
	rootCmd.Version = version
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(insightsCmd)

	for _, cmd := range []*cobra.Command{scanCmd, tuiCmd, insightsCmd} {
		cmd.Flags().IntVarP(&optWorkers, "workers", "w", 4, "Number of concurrent directory workers")
		cmd.Flags().IntVar(&optMaxDepth, "max-depth", optNoMaxDepth, "Maximum recursion depth (-1 = unlimited)")
		cmd.Flags().StringSliceVarP(&optExclude, "exclude", "e", nil, "Regex patterns of paths to skip (repeatable)")
		cmd.Flags().BoolVarP(&optVerbose, "verbose", "v", false, "Enable per-worker [W%d] scan tracing")
		cmd.Flags().IntVar(&optMaxInsights, "max-insights", 0, "Top-K insights kept per category (0 = default 1000)")
		cmd.Flags().StringVar(&optRulesFile, "rules", "", "JSON file of additional classification rules")
		cmd.Flags().StringSliceVar(&optMark, "mark", nil, "category=path pairs marked as that category regardless of pattern (repeatable)")
		cmd.Flags().StringVar(&optCachePath, "cache", "", "Snapshot cache database path (skips rescans of an unchanged root)")
	}
}
