package sandbox

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractInlineScripts pulls the bodies of inline <script> elements out of
// game markup, in document order. External scripts (src attribute) are
// skipped: verification has no network access. Unparseable markup yields
// an empty slice.
func ExtractInlineScripts(html string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var scripts []string
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		if _, external := s.Attr("src"); external {
			return
		}
		if typ, ok := s.Attr("type"); ok {
			switch strings.ToLower(strings.TrimSpace(typ)) {
			case "", "text/javascript", "application/javascript", "module":
			default:
				return
			}
		}
		if body := strings.TrimSpace(s.Text()); body != "" {
			scripts = append(scripts, body)
		}
	})
	return scripts
}
