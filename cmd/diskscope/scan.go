package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"diskscope/internal/ruleset"
)

var scanCmd = &cobra.Command{
	Use:   "scan <path>",
	Short: "Scan a directory and print a summary",
	Long:  `Walk a directory tree, classify temp/cache/build-artifact paths, and print an apparent-size/disk-usage summary.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	start := time.Now()
	snapshot, bundle, err := runPipeline(args[0], true)
	if err != nil {
		return err
	}
	elapsed := time.Since(start).Round(time.Millisecond)

	fmt.Printf("Root: %s\n", snapshot.Root.Path)
	fmt.Printf("Scan completed in %s\n\n", elapsed)

	fmt.Printf("Summary:\n")
	fmt.Printf("  Files:         %s\n", humanize.Comma(snapshot.Stats.Files()))
	fmt.Printf("  Directories:   %s\n", humanize.Comma(snapshot.Stats.Directories()))
	fmt.Printf("  Apparent size: %s\n", humanize.Bytes(uint64(snapshot.Root.SizeBytes)))
	fmt.Printf("  Disk usage:    %s\n", humanize.Bytes(uint64(snapshot.Root.DiskUsage)))
	if errCount := snapshot.Stats.AccessErrors(); errCount > 0 {
		fmt.Printf("  Access errors: %s\n", humanize.Comma(errCount))
	}

	if bundle != nil && len(bundle.ByCategory) > 0 {
		fmt.Printf("\nClassified:\n")
		for _, c := range []ruleset.Category{ruleset.Temp, ruleset.Cache, ruleset.BuildArtifact} {
			stats, ok := bundle.ByCategory[c]
			if !ok || stats.Count == 0 {
				continue
			}
			fmt.Printf("  %-14s %8s items  %10s disk  %10s apparent\n",
				c.String()+":", humanize.Comma(int64(stats.Count)),
				humanize.Bytes(uint64(stats.DiskUsage)), humanize.Bytes(uint64(stats.SizeBytes)))
		}
		fmt.Printf("\nRun `diskscope insights %s` for the top offenders, or `diskscope tui %s` to browse.\n", args[0], args[0])
	}

	return nil
}
