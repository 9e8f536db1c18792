// Package rewriter substitutes terms inside the text of an HTML document
// without touching markup or attribute values.
package rewriter

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/use-agent/faleproxy/models"
)

// DefaultSkipSelector matches elements whose text is code or form state
// rather than rendered prose.
const DefaultSkipSelector = "script, style, noscript, textarea, template"

// Rewriter applies a RuleSet to the text nodes of HTML documents.
// It is immutable after New and safe for concurrent use.
type Rewriter struct {
	rules RuleSet
	skip  cascadia.Selector
}

// New creates a Rewriter. An empty skipSelector rewrites every text node.
func New(rules RuleSet, skipSelector string) (*Rewriter, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("rewriter: %w", err)
	}

	r := &Rewriter{rules: append(RuleSet(nil), rules...)}
	if strings.TrimSpace(skipSelector) != "" {
		sel, err := cascadia.Compile(skipSelector)
		if err != nil {
			return nil, fmt.Errorf("rewriter: invalid skip selector %q: %w", skipSelector, err)
		}
		r.skip = sel
	}
	return r, nil
}

// Rules returns the number of rules applied to each text node.
func (r *Rewriter) Rules() int { return len(r.rules) }

// Rewrite parses rawHTML, rewrites its text nodes and serializes the
// document back to a string.
func (r *Rewriter) Rewrite(rawHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", models.NewFetchError(models.ErrCodeParseFailed, "failed to parse HTML", err)
	}

	for _, n := range doc.Nodes {
		r.walk(n)
	}

	out, err := doc.Html()
	if err != nil {
		return "", models.NewFetchError(models.ErrCodeParseFailed, "failed to render HTML", err)
	}
	return out, nil
}

// RewriteText applies every rule, in order, to s.
func (r *Rewriter) RewriteText(s string) string {
	for _, rule := range r.rules {
		s = strings.ReplaceAll(s, rule.Match, rule.Replace)
	}
	return s
}

func (r *Rewriter) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		n.Data = r.RewriteText(n.Data)
		return
	case html.ElementNode:
		if r.skip != nil && r.skip.Match(n) {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.walk(c)
	}
}
