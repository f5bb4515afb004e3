package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"diskscope/internal/ruleset"
)

var optInsightsCategory string

var insightsCmd = &cobra.Command{
	Use:   "insights <path>",
	Short: "Print the top disk-usage offenders by category",
	Long:  `Scan a directory and print its top-K temp/cache/build-artifact insights, largest disk usage first.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInsights,
}

func init() {
	insightsCmd.Flags().StringVar(&optInsightsCategory, "category", "", "Restrict to one category: temp|cache|build_artifact")
}

func runInsights(cmd *cobra.Command, args []string) error {
	snapshot, bundle, err := runPipeline(args[0], true)
	if err != nil {
		return err
	}

	var want ruleset.Category
	filterByCategory := false
	if optInsightsCategory != "" {
		category, ok := ruleset.ParseCategory(optInsightsCategory)
		if !ok {
			return fmt.Errorf("invalid --category %q", optInsightsCategory)
		}
		want = category
		filterByCategory = true
	}

	fmt.Printf("Insights for %s\n", snapshot.Root.Path)
	fmt.Printf("================\n\n")

	for _, c := range []ruleset.Category{ruleset.Temp, ruleset.Cache, ruleset.BuildArtifact} {
		if filterByCategory && c != want {
			continue
		}
		stats, ok := bundle.ByCategory[c]
		if !ok || stats.Count == 0 {
			continue
		}
		fmt.Printf("%s (%s items, %s disk, %s apparent)\n",
			c.String(), humanize.Comma(int64(stats.Count)),
			humanize.Bytes(uint64(stats.DiskUsage)), humanize.Bytes(uint64(stats.SizeBytes)))
		fmt.Println(dashLine(len(c.String()) + 40))

		printed := 0
		for _, ins := range bundle.Insights {
			if ins.Category != c {
				continue
			}
			fmt.Printf("  %10s  %10s  %s\n",
				humanize.Bytes(uint64(ins.DiskUsage)), humanize.Bytes(uint64(ins.SizeBytes)), ins.Path)
			printed++
			if printed >= 20 {
				break
			}
		}
		if stats.Count > printed {
			fmt.Printf("  ... and %s more\n", humanize.Comma(int64(stats.Count-printed)))
		}
		fmt.Println()
	}

	return nil
}

func dashLine(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '-'
	}
	return string(b)
}
