package ruleset

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"diskscope/internal/matcher"
)

// automatonEntry is the value type stored in the automaton: a matched
// rule plus whether the match must land at the end of the queried path
// (spec §4.7 step 2 / §4.8 tier 2).
type automatonEntry struct {
	rule    *PatternRule
	endOnly bool
}

// globEntry is one residual fnmatch-fallback pattern.
type globEntry struct {
	pattern string
	rule    *PatternRule
}

// additionalEntry is one user-supplied absolute-path prefix (spec
// §6.1's additional_paths).
type additionalEntry struct {
	prefix string
	rule   *PatternRule
}

// dispatch is one of the two parallel tables (for_file / for_dir) from
// spec §4.7.
type dispatch struct {
	exact      map[string][]*PatternRule
	automaton  *matcher.Automaton
	prefixTrie *matcher.PrefixTrie
	glob       []globEntry
	additional []additionalEntry
}

func newDispatch() *dispatch {
	return &dispatch{
		exact:      make(map[string][]*PatternRule),
		automaton:  matcher.NewAutomaton(),
		prefixTrie: matcher.NewPrefixTrie(),
	}
}

func (d *dispatch) addExact(key string, rule *PatternRule) {
	d.exact[key] = append(d.exact[key], rule)
}

func (d *dispatch) addContains(seg string, rule *PatternRule) {
	d.automaton.AddKey([]byte("/"+seg+"/"), automatonEntry{rule: rule, endOnly: false})
	d.automaton.AddKey([]byte("/"+seg), automatonEntry{rule: rule, endOnly: true})
}

func (d *dispatch) addEndsWith(ext string, rule *PatternRule) {
	d.automaton.AddKey([]byte(ext), automatonEntry{rule: rule, endOnly: true})
}

func (d *dispatch) addStartsWith(prefix string, rule *PatternRule) {
	d.prefixTrie.AddKey([]byte(prefix), rule)
}

func (d *dispatch) addGlob(pattern string, rule *PatternRule) {
	d.glob = append(d.glob, globEntry{pattern: pattern, rule: rule})
}

func (d *dispatch) addAdditional(prefix string, rule *PatternRule) {
	d.additional = append(d.additional, additionalEntry{prefix: prefix, rule: rule})
}

func (d *dispatch) freeze() {
	d.automaton.Finalize()
	d.prefixTrie.Finalize()
}

// CompiledRuleSet holds the two per-role dispatch tables produced by
// Compile (spec §4.7).
type CompiledRuleSet struct {
	ForFile *dispatch
	ForDir  *dispatch
}

// Compile expands, classifies, and role-buckets rules, then builds and
// freezes the per-role dispatch tables. additionalPaths supplies the
// user-specified extra paths per category (spec §6.1/§6.3).
func Compile(rules []PatternRule, additionalPaths map[Category][]string) *CompiledRuleSet {
	cs := &CompiledRuleSet{ForFile: newDispatch(), ForDir: newDispatch()}

	for i := range rules {
		compileRule(cs, &rules[i])
	}
	for category, paths := range additionalPaths {
		r := &PatternRule{
			Name:     "additional:" + category.String(),
			Category: category,
			ApplyTo:  ApplyBoth,
		}
		for _, p := range paths {
			lp := strings.ToLower(p)
			cs.ForFile.addAdditional(lp, r)
			cs.ForDir.addAdditional(lp, r)
		}
	}

	cs.ForFile.freeze()
	cs.ForDir.freeze()
	return cs
}

// compileRule expands brace alternatives, classifies each resulting
// pattern, and role-buckets the rule per spec §4.7 steps 1-4. All keys
// and patterns are lowercased here, once, at compile time.
func compileRule(cs *CompiledRuleSet, rule *PatternRule) {
	for _, expanded := range expandBraces(strings.ToLower(rule.Pattern)) {
		kind, key, endOnly := classify(expanded)

		if rule.ApplyTo&ApplyFile != 0 {
			addToDispatch(cs.ForFile, kind, key, endOnly, rule)
		}
		if rule.ApplyTo&ApplyDir != 0 {
			addToDispatch(cs.ForDir, kind, key, endOnly, rule)
		}
	}
}

type matchKind int

const (
	kindExact matchKind = iota
	kindContains
	kindEndsWith
	kindStartsWith
	kindGlob
)

// classify implements spec §4.7 step 2's pattern classification.
func classify(pattern string) (kind matchKind, key string, endOnly bool) {
	switch {
	case strings.HasPrefix(pattern, "**/") && !strings.Contains(pattern[3:], "/") && isLiteral(pattern[3:]):
		return kindExact, pattern[3:], false

	case strings.HasPrefix(pattern, "**/") && strings.HasSuffix(pattern, "/**"):
		seg := pattern[3 : len(pattern)-3]
		if !strings.Contains(seg, "/") && isLiteral(seg) {
			return kindContains, seg, false
		}

	case strings.HasPrefix(pattern, "**/*.") && isLiteral(pattern[5:]) && !strings.Contains(pattern[5:], "/"):
		return kindEndsWith, "." + pattern[5:], true

	case strings.HasPrefix(pattern, "**/") && strings.HasSuffix(pattern, "*") &&
		!strings.Contains(pattern[3:len(pattern)-1], "/") && isLiteral(pattern[3:len(pattern)-1]):
		return kindStartsWith, pattern[3 : len(pattern)-1], false
	}

	return kindGlob, pattern, false
}

// isLiteral reports whether s has no glob metacharacters, i.e. it's
// usable as an exact/substring/prefix key rather than needing fnmatch.
func isLiteral(s string) bool {
	return !strings.ContainsAny(s, "*?[]{}")
}

func addToDispatch(d *dispatch, kind matchKind, key string, endOnly bool, rule *PatternRule) {
	switch kind {
	case kindExact:
		d.addExact(key, rule)
	case kindContains:
		d.addContains(key, rule)
	case kindEndsWith:
		d.addEndsWith(key, rule)
	case kindStartsWith:
		d.addStartsWith(key, rule)
	default:
		d.addGlob(key, rule)
	}
	_ = endOnly // endOnly is baked into the automaton entry by addContains/addEndsWith
}

// matchGlob is the fnmatch fallback (spec §4.7's residual GLOB tier).
// Unlike path/filepath.Match, doublestar's "**" crosses "/" boundaries,
// which is what lets multi-segment default rules like "**/.cache/pip/**"
// match a real nested path instead of only a single path segment.
func matchGlob(pattern, path string) bool {
	ok, err := doublestar.Match(pattern, path)
	return err == nil && ok
}
