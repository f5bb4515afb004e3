package ruleset

import "testing"

func TestClassifyAllReturnsOneMatchPerCategory(t *testing.T) {
	rules := []PatternRule{
		{Name: "cache-dir", Pattern: "**/cache/**", Category: Cache, ApplyTo: ApplyBoth},
		{Name: "tmp-suffix", Pattern: "**/*.tmp", Category: Temp, ApplyTo: ApplyBoth},
	}
	cs := Compile(rules, nil)

	// A node named "cache.tmp" under a path containing "/cache/" hits
	// both the CONTAINS tier (Cache) and the ENDSWITH tier (Temp).
	got := cs.ClassifyAll("cache.tmp", "/var/cache/cache.tmp", false)
	if len(got) != 2 {
		t.Fatalf("expected 2 distinct category matches, got %v", got)
	}
	seen := map[Category]bool{}
	for _, r := range got {
		seen[r.Category] = true
	}
	if !seen[Cache] || !seen[Temp] {
		t.Fatalf("expected both Cache and Temp, got %v", got)
	}
}

func TestClassifyAllFirstTierWinsWithinCategory(t *testing.T) {
	// Two rules in the same category, matched by two different tiers on
	// the same node: an EXACT basename rule and a CONTAINS path rule.
	// The exact tier is evaluated first, so only its rule should be
	// reported even though the automaton tier would also match.
	rules := []PatternRule{
		{Name: "exact-name", Pattern: "**/cache", Category: Temp, ApplyTo: ApplyDir},
		{Name: "contains-path", Pattern: "**/cache/**", Category: Temp, ApplyTo: ApplyDir},
	}
	cs := Compile(rules, nil)

	// A directory named "cache" nested under another directory also
	// named "cache" hits both the EXACT tier (basename) and the
	// automaton CONTAINS tier (path contains "/cache/").
	got := cs.ClassifyAll("cache", "/var/cache/cache", true)
	if len(got) != 1 {
		t.Fatalf("expected exactly one Temp match (deduped per category), got %v", got)
	}
	if got[0].Name != "exact-name" {
		t.Fatalf("expected the earlier tier (exact) to win, got rule %q", got[0].Name)
	}
}

func TestClassifyAllNoMatch(t *testing.T) {
	cs := Compile([]PatternRule{
		{Name: "only-cache", Pattern: "**/.cache", Category: Cache, ApplyTo: ApplyDir},
	}, nil)

	if got := cs.ClassifyAll("src", "/proj/src", true); len(got) != 0 {
		t.Fatalf("expected no match, got %v", got)
	}
}

func TestClassifyAllAdditionalPathsEvaluatedLast(t *testing.T) {
	// A node matched by both an EXACT rule (Temp) and an additional path
	// marked Cache: both categories should be reported since they're
	// different categories, but the additional-path tier must not
	// shadow the earlier exact match for its own category.
	rules := []PatternRule{
		{Name: "exact-name", Pattern: "**/scratch", Category: Temp, ApplyTo: ApplyDir},
	}
	cs := Compile(rules, map[Category][]string{
		Cache: {"/proj/scratch"},
	})

	got := cs.ClassifyAll("scratch", "/proj/scratch", true)
	if len(got) != 2 {
		t.Fatalf("expected Temp (exact) and Cache (additional), got %v", got)
	}
}
