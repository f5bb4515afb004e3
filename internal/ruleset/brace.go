package ruleset

import "strings"

// expandBraces recursively rewrites the first {a,b,c} alternation group
// in pattern into the cross product, per spec §4.7 step 1. Patterns with
// no brace group are returned as a single-element slice unchanged.
func expandBraces(pattern string) []string {
	start := strings.IndexByte(pattern, '{')
	if start == -1 {
		return []string{pattern}
	}
	end := matchingBrace(pattern, start)
	if end == -1 {
		return []string{pattern}
	}

	prefix := pattern[:start]
	suffix := pattern[end+1:]
	alts := splitTopLevel(pattern[start+1 : end])

	var out []string
	for _, alt := range alts {
		for _, expanded := range expandBraces(prefix + alt + suffix) {
			out = append(out, expanded)
		}
	}
	return out
}

// matchingBrace returns the index of the '}' matching the '{' at open,
// accounting for nested braces, or -1 if unmatched.
func matchingBrace(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitTopLevel splits s on commas that are not inside a nested brace
// group.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	last := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	parts = append(parts, s[last:])
	return parts
}
