package ruleset

import "strings"

// ClassifyAll evaluates every tier in priority order (spec §4.7's
// EXACT, automaton CONTAINS/ENDSWITH, prefix-trie STARTSWITH, glob,
// additional_paths) and returns at most one matching rule per
// category: the first tier to match a given category wins, and later
// tiers are skipped for that category (spec §4.8 "Matching"). name is
// the entry's basename, path its full path; both are lowercased here.
func (cs *CompiledRuleSet) ClassifyAll(name, path string, isDir bool) []*PatternRule {
	d := cs.ForFile
	if isDir {
		d = cs.ForDir
	}
	return d.matchAll(strings.ToLower(name), strings.ToLower(path))
}

func (d *dispatch) matchAll(name, path string) []*PatternRule {
	seen := make(map[Category]bool)
	var result []*PatternRule
	consider := func(r *PatternRule) {
		if r == nil || seen[r.Category] {
			return
		}
		seen[r.Category] = true
		result = append(result, r)
	}

	// 1. exact basename.
	for _, r := range d.exact[name] {
		consider(r)
	}

	// 2. Aho-Corasick automaton (CONTAINS/ENDSWITH).
	lastIndex := len(path) - 1
	for _, m := range d.automaton.Find([]byte(path)) {
		e := m.Value.(automatonEntry)
		if e.endOnly && m.EndIndex != lastIndex {
			continue
		}
		consider(e.rule)
	}

	// 3. prefix trie (STARTSWITH).
	for _, v := range d.prefixTrie.Find([]byte(name)) {
		consider(v.(*PatternRule))
	}

	// 4. residual glob fallback.
	for _, g := range d.glob {
		if matchGlob(g.pattern, name) || matchGlob(g.pattern, path) {
			consider(g.rule)
		}
	}

	// 5. user-marked additional paths.
	for _, a := range d.additional {
		if path == a.prefix || strings.HasPrefix(path, a.prefix+"/") {
			consider(a.rule)
		}
	}

	return result
}
