package ruleset

import (
	"encoding/json"
	"fmt"
	"os"
)

// wireRule is the JSON shape for a user-supplied rule file (SPEC_FULL.md
// §1's --rules flag). No third-party config library in the retrieval
// pack wires a rule-file format like this one, so this one ambient
// concern stays on stdlib encoding/json; see DESIGN.md.
type wireRule struct {
	Name          string `json:"name"`
	Pattern       string `json:"pattern"`
	Category      string `json:"category"`
	ApplyTo       string `json:"apply_to"`
	StopRecursion bool   `json:"stop_recursion"`
}

// LoadRulesFile reads a JSON array of rules from path and converts them
// to PatternRule, validating category/apply_to against the closed
// enumerations.
func LoadRulesFile(path string) ([]PatternRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ruleset: read %s: %w", path, err)
	}

	var wire []wireRule
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("ruleset: parse %s: %w", path, err)
	}

	rules := make([]PatternRule, 0, len(wire))
	for i, w := range wire {
		category, ok := ParseCategory(w.Category)
		if !ok {
			return nil, fmt.Errorf("ruleset: rule %d (%s): unknown category %q", i, w.Name, w.Category)
		}
		applyTo, ok := ParseApplyTo(w.ApplyTo)
		if !ok {
			return nil, fmt.Errorf("ruleset: rule %d (%s): unknown apply_to %q", i, w.Name, w.ApplyTo)
		}
		rules = append(rules, PatternRule{
			Name:          w.Name,
			Pattern:       w.Pattern,
			Category:      category,
			ApplyTo:       applyTo,
			StopRecursion: w.StopRecursion,
		})
	}
	return rules, nil
}
