package insight

import (
	"testing"

	"diskscope/internal/ruleset"
	"diskscope/internal/scannode"
)

func buildTree() *scannode.ScanNode {
	root := scannode.NewDirNode("/root", "root")
	src := scannode.NewDirNode("/root/src", "src")
	root.AddChild(src)
	src.AddChild(scannode.NewFileNode("/root/src/main.go", "main.go", 100, 512))
	return root
}

func TestGenerateNoMatches(t *testing.T) {
	cs := ruleset.Compile(nil, nil)
	bundle := Generate(buildTree(), cs, 0)
	if len(bundle.Insights) != 0 {
		t.Fatalf("expected no insights, got %v", bundle.Insights)
	}
}

func TestGenerateExactMatch(t *testing.T) {
	root := buildTree()
	root.AddChild(scannode.NewFileNode("/root/.ds_store", ".ds_store", 50, 512))

	cs := ruleset.Compile([]ruleset.PatternRule{
		{Name: "ds-store", Pattern: "**/.DS_Store", Category: ruleset.Temp, ApplyTo: ruleset.ApplyFile},
	}, nil)

	bundle := Generate(root, cs, 0)
	if len(bundle.Insights) != 1 {
		t.Fatalf("expected 1 insight, got %v", bundle.Insights)
	}
	ins := bundle.Insights[0]
	if ins.Path != "/root/.ds_store" || ins.Category != ruleset.Temp {
		t.Fatalf("unexpected insight: %+v", ins)
	}
	stats := bundle.ByCategory[ruleset.Temp]
	if stats == nil || stats.Count != 1 || stats.DiskUsage != 512 {
		t.Fatalf("unexpected category stats: %+v", stats)
	}
}

func TestGenerateStopRecursionSkipsChildren(t *testing.T) {
	root := scannode.NewDirNode("/root", "root")
	nm := scannode.NewDirNode("/root/node_modules", "node_modules")
	root.AddChild(nm)
	pkg := scannode.NewDirNode("/root/node_modules/left-pad", "left-pad")
	nm.AddChild(pkg)
	pkg.AddChild(scannode.NewFileNode("/root/node_modules/left-pad/index.js", "index.js", 10, 512))

	cs := ruleset.Compile([]ruleset.PatternRule{
		{Name: "node-modules", Pattern: "**/node_modules/**", Category: ruleset.BuildArtifact, ApplyTo: ruleset.ApplyBoth, StopRecursion: true},
	}, nil)

	bundle := Generate(root, cs, 0)
	if len(bundle.Insights) != 1 {
		t.Fatalf("expected only the node_modules dir itself to be recorded, got %v", bundle.Insights)
	}
	if bundle.Insights[0].Path != "/root/node_modules" {
		t.Fatalf("expected node_modules insight, got %+v", bundle.Insights[0])
	}
}

func TestGenerateTempCacheSubtreeSkipped(t *testing.T) {
	root := scannode.NewDirNode("/root", "root")
	cacheDir := scannode.NewDirNode("/root/.cache", ".cache")
	root.AddChild(cacheDir)
	nested := scannode.NewDirNode("/root/.cache/node_modules", "node_modules")
	cacheDir.AddChild(nested)

	cs := ruleset.Compile([]ruleset.PatternRule{
		{Name: "cache-dir", Pattern: "**/.cache", Category: ruleset.Cache, ApplyTo: ruleset.ApplyDir},
		{Name: "node-modules", Pattern: "**/node_modules/**", Category: ruleset.BuildArtifact, ApplyTo: ruleset.ApplyBoth},
	}, nil)

	bundle := Generate(root, cs, 0)
	// Only .cache itself should be recorded; node_modules nested beneath
	// it is already accounted for in .cache's aggregate and must not
	// also surface as a separate BuildArtifact insight.
	if len(bundle.Insights) != 1 || bundle.Insights[0].Category != ruleset.Cache {
		t.Fatalf("expected only the Cache insight, got %v", bundle.Insights)
	}
}

func TestGenerateTopKEviction(t *testing.T) {
	root := scannode.NewDirNode("/root", "root")
	sizes := []int64{100, 500, 50, 900, 300}
	for i, s := range sizes {
		name := "tmpfile"
		root.AddChild(scannode.NewFileNode("/root/f"+string(rune('a'+i)), name, s, s))
	}

	cs := ruleset.Compile([]ruleset.PatternRule{
		{Name: "tmp-name", Pattern: "**/tmpfile", Category: ruleset.Temp, ApplyTo: ruleset.ApplyFile},
	}, nil)

	bundle := Generate(root, cs, 2)
	if len(bundle.Insights) != 2 {
		t.Fatalf("expected top-2 insights, got %d", len(bundle.Insights))
	}
	if bundle.Insights[0].DiskUsage != 900 || bundle.Insights[1].DiskUsage != 500 {
		t.Fatalf("expected the two largest kept in descending order, got %v", bundle.Insights)
	}
	// Category stats must reflect every match, not just the surviving top-K.
	stats := bundle.ByCategory[ruleset.Temp]
	if stats.Count != len(sizes) {
		t.Fatalf("expected stats to count all %d matches, got %d", len(sizes), stats.Count)
	}
}

func TestGenerateMultiCategoryMatchOnSameNode(t *testing.T) {
	root := scannode.NewDirNode("/root", "root")
	// The node hangs directly off root: a "cache" directory above it in
	// the tree would itself match Cache, and its children would then be
	// skipped without classification.
	cacheChild := scannode.NewDirNode("/root/var/cache/cache.tmp", "cache.tmp")
	root.AddChild(cacheChild)

	cs := ruleset.Compile([]ruleset.PatternRule{
		{Name: "cache-dir", Pattern: "**/cache/**", Category: ruleset.Cache, ApplyTo: ruleset.ApplyDir},
		{Name: "tmp-suffix", Pattern: "**/*.tmp", Category: ruleset.Temp, ApplyTo: ruleset.ApplyDir},
	}, nil)

	bundle := Generate(root, cs, 0)
	categories := map[ruleset.Category]bool{}
	for _, ins := range bundle.Insights {
		if ins.Path == "/root/var/cache/cache.tmp" {
			categories[ins.Category] = true
		}
	}
	if !categories[ruleset.Cache] || !categories[ruleset.Temp] {
		t.Fatalf("expected the node to register under both Cache and Temp, got %v", bundle.Insights)
	}
}
