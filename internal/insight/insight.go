// Package insight implements the insight generator (spec §4.8): a
// depth-first walk of a finalized tree that classifies every node
// against a CompiledRuleSet, keeps the top-K entries per category in a
// bounded min-heap, and prunes subtrees already accounted for by an
// ancestor match.
package insight

import (
	"diskscope/internal/ruleset"
	"diskscope/internal/scannode"
)

// Insight is one classified path recorded for presentation.
type Insight struct {
	Path      string
	Name      string
	SizeBytes int64
	DiskUsage int64
	Kind      scannode.Kind
	Category  ruleset.Category
	Summary   string
}

// CategoryStats aggregates every entry classified into a category,
// independent of whether it survived the top-K heap.
type CategoryStats struct {
	Count     int
	SizeBytes int64
	DiskUsage int64
}

// InsightBundle is the insight generator's output.
type InsightBundle struct {
	Insights   []Insight
	ByCategory map[ruleset.Category]*CategoryStats
}

// DefaultMaxInsightsPerCategory is the default top-K bound (spec §4.8).
const DefaultMaxInsightsPerCategory = 1000
