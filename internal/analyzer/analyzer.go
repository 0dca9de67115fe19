package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// document is the shared parse state handed to every rule.
// Parsing happens once; rules only read.
type document struct {
	raw   string
	lower string
	doc   *goquery.Document // nil if goquery parsing failed
	node  *html.Node        // nil if htmlquery parsing failed
}

// Analyze runs the full rule table over raw HTML and returns the findings
// in rule-table order. It is pure and total: unparseable or empty input
// yields fewer matches, never an error.
func Analyze(raw string) []Diagnostic {
	d := &document{
		raw:   raw,
		lower: strings.ToLower(raw),
	}

	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw)); err == nil {
		d.doc = doc
	}
	if node, err := htmlquery.Parse(strings.NewReader(raw)); err == nil {
		d.node = node
	}

	var out []Diagnostic
	for _, rule := range rules {
		if msg, hit := rule.Check(d); hit {
			out = append(out, Diagnostic{
				Rule:     rule.ID,
				Severity: rule.Severity,
				Message:  msg,
			})
		}
	}
	return out
}
