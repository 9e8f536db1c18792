package rewriter

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rule is one literal, case-sensitive substitution.
type Rule struct {
	Match   string `yaml:"match"`
	Replace string `yaml:"replace"`
}

// RuleSet is an ordered list of rules. Rules are applied to each text node
// in order, so a later rule sees the output of earlier ones.
type RuleSet []Rule

// Validate rejects rules that would match everywhere.
func (rs RuleSet) Validate() error {
	for i, r := range rs {
		if r.Match == "" {
			return fmt.Errorf("rule %d: match must not be empty", i)
		}
	}
	return nil
}

// WithCaseVariants returns a copy of rs where every rule is followed by its
// all-upper and all-lower spellings, e.g. Yale→Fale adds YALE→FALE and
// yale→fale. Variants identical to an existing match are skipped.
func (rs RuleSet) WithCaseVariants() RuleSet {
	seen := make(map[string]struct{}, len(rs)*3)
	out := make(RuleSet, 0, len(rs)*3)
	add := func(r Rule) {
		if _, ok := seen[r.Match]; ok {
			return
		}
		seen[r.Match] = struct{}{}
		out = append(out, r)
	}
	for _, r := range rs {
		add(r)
		add(Rule{Match: strings.ToUpper(r.Match), Replace: strings.ToUpper(r.Replace)})
		add(Rule{Match: strings.ToLower(r.Match), Replace: strings.ToLower(r.Replace)})
	}
	return out
}

// LoadRules reads a YAML list of match/replace pairs from path, in the
// format of rules.example.yaml.
func LoadRules(path string) (RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rewriter: read rules file '%s': %w", path, err)
	}
	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("rewriter: syntax error in rules file '%s': %w", path, err)
	}
	if err := rs.Validate(); err != nil {
		return nil, fmt.Errorf("rewriter: rules file '%s': %w", path, err)
	}
	return rs, nil
}
