package ruleset

import "testing"

func TestDefaultRulesCoverAllCategories(t *testing.T) {
	rules := DefaultRules()
	if len(rules) == 0 {
		t.Fatal("expected a non-empty default rule set")
	}
	seen := map[Category]bool{}
	for _, r := range rules {
		if r.Name == "" || r.Pattern == "" {
			t.Fatalf("rule missing name/pattern: %+v", r)
		}
		seen[r.Category] = true
	}
	for _, c := range []Category{Temp, Cache, BuildArtifact} {
		if !seen[c] {
			t.Fatalf("expected at least one default rule for category %s", c)
		}
	}
}

func TestDefaultRulesCompileAndMatchKnownPaths(t *testing.T) {
	cs := Compile(DefaultRules(), nil)

	cases := []struct {
		name, path string
		isDir      bool
		category   Category
	}{
		{"node_modules", "/proj/node_modules", true, BuildArtifact},
		{".ds_store", "/proj/.ds_store", false, Temp},
		{"__pycache__", "/proj/__pycache__", true, Cache},
	}
	for _, c := range cases {
		got := cs.ClassifyAll(c.name, c.path, c.isDir)
		if len(got) == 0 {
			t.Fatalf("%s: expected a match, got none", c.name)
		}
		found := false
		for _, r := range got {
			if r.Category == c.category {
				found = true
			}
		}
		if !found {
			t.Fatalf("%s: expected category %s among %v", c.name, c.category, got)
		}
	}
}
