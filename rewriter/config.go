package rewriter

import (
	"github.com/use-agent/faleproxy/config"
)

// NewFromConfig builds the Rewriter described by cfg: the source→replacement
// rule first, then any rules from cfg.RulesFile, then case variants when
// enabled.
func NewFromConfig(cfg config.RewriteConfig) (*Rewriter, error) {
	rules := RuleSet{{Match: cfg.SourceTerm, Replace: cfg.ReplacementTerm}}

	if cfg.RulesFile != "" {
		extra, err := LoadRules(cfg.RulesFile)
		if err != nil {
			return nil, err
		}
		rules = append(rules, extra...)
	}

	if cfg.CaseVariants {
		rules = rules.WithCaseVariants()
	}

	return New(rules, cfg.SkipSelector)
}
