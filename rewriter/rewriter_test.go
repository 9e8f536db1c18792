package rewriter

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const yalePage = `<!DOCTYPE html>
<html>
<head>
  <title>Yale University Test Page</title>
  <style>.yale { color: blue; } /* Yale */</style>
</head>
<body>
  <h1>Welcome to Yale University</h1>
  <p>Yale University is a private Ivy League research university in New Haven, Connecticut.</p>
  <p>Yale was founded in 1701 as the Collegiate School.</p>
  <ul>
    <li><a href="https://www.yale.edu/about">About Yale</a></li>
    <li><a href="https://www.yale.edu/admissions" title="Yale admissions">Yale Admissions</a></li>
  </ul>
  <script>var school = "Yale";</script>
</body>
</html>`

func mustRewriter(t *testing.T, rules RuleSet, skip string) *Rewriter {
	t.Helper()
	rw, err := New(rules, skip)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return rw
}

func mustParse(t *testing.T, s string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	return doc
}

func TestRewrite_TextNodes(t *testing.T) {
	rw := mustRewriter(t, RuleSet{{Match: "Yale", Replace: "Fale"}}, DefaultSkipSelector)

	out, err := rw.Rewrite(yalePage)
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	doc := mustParse(t, out)

	if got := doc.Find("title").Text(); got != "Fale University Test Page" {
		t.Errorf("title = %q", got)
	}
	if got := doc.Find("h1").Text(); got != "Welcome to Fale University" {
		t.Errorf("h1 = %q", got)
	}
	if got := doc.Find("p").First().Text(); !strings.HasPrefix(got, "Fale University is a private") {
		t.Errorf("first paragraph = %q", got)
	}
	if got := doc.Find("a").First().Text(); got != "About Fale" {
		t.Errorf("first link text = %q", got)
	}

	doc.Find("script, style").Remove()
	if text := doc.Text(); strings.Contains(text, "Yale") {
		t.Errorf("rendered text still contains source term: %q", text)
	}
}

func TestRewrite_AttributesUntouched(t *testing.T) {
	rw := mustRewriter(t, RuleSet{{Match: "Yale", Replace: "Fale"}}, DefaultSkipSelector)

	out, err := rw.Rewrite(yalePage)
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}

	before := mustParse(t, yalePage).Find("a")
	after := mustParse(t, out).Find("a")
	if before.Length() != after.Length() {
		t.Fatalf("link count changed: %d → %d", before.Length(), after.Length())
	}

	after.Each(func(i int, s *goquery.Selection) {
		wantHref, _ := before.Eq(i).Attr("href")
		gotHref, _ := s.Attr("href")
		if gotHref != wantHref {
			t.Errorf("link %d href = %q, want %q", i, gotHref, wantHref)
		}
		wantTitle, _ := before.Eq(i).Attr("title")
		gotTitle, _ := s.Attr("title")
		if gotTitle != wantTitle {
			t.Errorf("link %d title = %q, want %q", i, gotTitle, wantTitle)
		}
	})
}

func TestRewrite_SkipsScriptAndStyle(t *testing.T) {
	rw := mustRewriter(t, RuleSet{{Match: "Yale", Replace: "Fale"}}, DefaultSkipSelector)

	out, err := rw.Rewrite(yalePage)
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	doc := mustParse(t, out)

	if got := doc.Find("script").Text(); got != `var school = "Yale";` {
		t.Errorf("script contents changed: %q", got)
	}
	if got := doc.Find("style").Text(); !strings.Contains(got, "/* Yale */") {
		t.Errorf("style contents changed: %q", got)
	}
}

func TestRewrite_EmptySkipSelectorRewritesEverything(t *testing.T) {
	rw := mustRewriter(t, RuleSet{{Match: "Yale", Replace: "Fale"}}, "")

	out, err := rw.Rewrite(`<p>Yale</p><script>var s = "Yale";</script>`)
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if strings.Contains(out, "Yale") {
		t.Errorf("expected every text node rewritten, got %q", out)
	}
}

func TestRewrite_CaseSensitive(t *testing.T) {
	rw := mustRewriter(t, RuleSet{{Match: "Yale", Replace: "Fale"}}, DefaultSkipSelector)

	out, err := rw.Rewrite(`<p>Yale YALE yale</p>`)
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if got := mustParse(t, out).Find("p").Text(); got != "Fale YALE yale" {
		t.Errorf("p = %q, want %q", got, "Fale YALE yale")
	}
}

func TestRewrite_PreservesStructure(t *testing.T) {
	rw := mustRewriter(t, RuleSet{{Match: "Yale", Replace: "Fale"}}, DefaultSkipSelector)

	out, err := rw.Rewrite(yalePage)
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}

	before := mustParse(t, yalePage)
	after := mustParse(t, out)
	for _, sel := range []string{"head", "body", "h1", "p", "ul", "li", "a", "script", "style"} {
		if b, a := before.Find(sel).Length(), after.Find(sel).Length(); b != a {
			t.Errorf("%s count changed: %d → %d", sel, b, a)
		}
	}
}

func TestRewrite_NoMatch(t *testing.T) {
	rw := mustRewriter(t, RuleSet{{Match: "Yale", Replace: "Fale"}}, DefaultSkipSelector)

	out, err := rw.Rewrite(`<h1>Harvard</h1>`)
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if got := mustParse(t, out).Find("h1").Text(); got != "Harvard" {
		t.Errorf("h1 = %q", got)
	}
}

func TestRewriteText_AppliesRulesInOrder(t *testing.T) {
	rw := mustRewriter(t, RuleSet{
		{Match: "Yale", Replace: "Fale"},
		{Match: "Fale", Replace: "Gale"},
	}, "")

	if got := rw.RewriteText("Yale"); got != "Gale" {
		t.Errorf("RewriteText = %q, want %q", got, "Gale")
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name  string
		rules RuleSet
		skip  string
	}{
		{"empty match", RuleSet{{Match: "", Replace: "x"}}, ""},
		{"bad selector", RuleSet{{Match: "a", Replace: "b"}}, "script,,["},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.rules, tt.skip); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
