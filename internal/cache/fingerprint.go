package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"diskscope/internal/ruleset"
)

// Fingerprint derives a stable identifier for a rule set so a cached
// snapshot is invalidated the moment the rules it was classified with
// change. Rules are sorted by name first so reordering an equivalent
// rule list doesn't churn the cache.
func Fingerprint(rules []ruleset.PatternRule) string {
	sorted := make([]ruleset.PatternRule, len(rules))
	copy(sorted, rules)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	h := sha256.New()
	for _, r := range sorted {
		fmt.Fprintf(h, "%s|%s|%d|%d|%t\n", r.Name, r.Pattern, r.Category, r.ApplyTo, r.StopRecursion)
	}
	return hex.EncodeToString(h.Sum(nil))
}
