package insight

import (
	"container/heap"
	"sort"
	"strings"

	"diskscope/internal/ruleset"
	"diskscope/internal/scannode"
)

// stackEntry carries the per-node DFS context (spec §4.8): a node plus
// whether an ancestor already matched TEMP or CACHE, in which case this
// node is skipped without classification (its size is already counted
// in the ancestor's aggregate).
type stackEntry struct {
	node          *scannode.ScanNode
	inTempOrCache bool
}

type generator struct {
	rules          *ruleset.CompiledRuleSet
	maxPerCategory int

	heaps    map[ruleset.Category]*insightHeap
	seenBest map[ruleset.Category]map[string]int64
	stats    map[ruleset.Category]*CategoryStats
}

// Generate walks root with the compiled rule set and returns the
// classified, ranked InsightBundle. maxPerCategory <= 0 uses
// DefaultMaxInsightsPerCategory.
func Generate(root *scannode.ScanNode, rules *ruleset.CompiledRuleSet, maxPerCategory int) *InsightBundle {
	if maxPerCategory <= 0 {
		maxPerCategory = DefaultMaxInsightsPerCategory
	}
	g := &generator{
		rules:          rules,
		maxPerCategory: maxPerCategory,
		heaps:          make(map[ruleset.Category]*insightHeap),
		seenBest:       make(map[ruleset.Category]map[string]int64),
		stats:          make(map[ruleset.Category]*CategoryStats),
	}
	if root == nil {
		return g.extract()
	}

	stack := []stackEntry{{node: root, inTempOrCache: false}}
	for len(stack) > 0 {
		n := len(stack) - 1
		entry := stack[n]
		stack = stack[:n]
		stack = g.visit(stack, entry)
	}

	return g.extract()
}

// visit implements the per-node state machine from spec §4.8 and
// returns stack with this node's children (if any) pushed.
func (g *generator) visit(stack []stackEntry, entry stackEntry) []stackEntry {
	node := entry.node

	if entry.inTempOrCache {
		return pushChildren(stack, node, true)
	}

	lpath := strings.ToLower(node.Path)
	lname := strings.ToLower(node.Name)
	matches := g.rules.ClassifyAll(lname, lpath, node.IsDir())

	if len(matches) == 0 {
		return pushChildren(stack, node, false)
	}

	stopRecursion := false
	matchedTempOrCache := false
	for _, rule := range matches {
		g.record(rule, node)
		if rule.StopRecursion {
			stopRecursion = true
		}
		if rule.Category == ruleset.Temp || rule.Category == ruleset.Cache {
			matchedTempOrCache = true
		}
	}

	if stopRecursion {
		return stack
	}
	return pushChildren(stack, node, matchedTempOrCache)
}

func pushChildren(stack []stackEntry, node *scannode.ScanNode, flag bool) []stackEntry {
	for _, c := range node.Children {
		stack = append(stack, stackEntry{node: c, inTempOrCache: flag})
	}
	return stack
}

func (g *generator) record(rule *ruleset.PatternRule, node *scannode.ScanNode) {
	stats := g.stats[rule.Category]
	if stats == nil {
		stats = &CategoryStats{}
		g.stats[rule.Category] = stats
	}
	stats.Count++
	stats.SizeBytes += node.SizeBytes
	stats.DiskUsage += node.DiskUsage

	seen := g.seenBest[rule.Category]
	if seen == nil {
		seen = make(map[string]int64)
		g.seenBest[rule.Category] = seen
	}
	if best, ok := seen[node.Path]; !ok || node.DiskUsage > best {
		seen[node.Path] = node.DiskUsage
	}

	h := g.heaps[rule.Category]
	if h == nil {
		h = &insightHeap{}
		g.heaps[rule.Category] = h
		heap.Init(h)
	}

	ins := Insight{
		Path:      node.Path,
		Name:      node.Name,
		SizeBytes: node.SizeBytes,
		DiskUsage: node.DiskUsage,
		Kind:      node.Kind,
		Category:  rule.Category,
		Summary:   rule.Name,
	}

	if h.Len() < g.maxPerCategory {
		heap.Push(h, ins)
		return
	}
	if ins.DiskUsage > (*h)[0].DiskUsage {
		heap.Pop(h)
		heap.Push(h, ins)
	}
}

// extract drains every heap, filters stale entries superseded by a
// later larger disk_usage for the same path, and globally sorts by
// disk_usage descending (spec §4.8's "Extraction").
func (g *generator) extract() *InsightBundle {
	var all []Insight
	for category, h := range g.heaps {
		seen := g.seenBest[category]
		for h.Len() > 0 {
			ins := heap.Pop(h).(Insight)
			if ins.DiskUsage < seen[ins.Path] {
				continue
			}
			all = append(all, ins)
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].DiskUsage > all[j].DiskUsage
	})

	return &InsightBundle{Insights: all, ByCategory: g.stats}
}
