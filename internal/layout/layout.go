// Package layout implements the adaptive-layout sizing and game-root
// selection policy. The injected bundle embeds the same policy as
// JavaScript; this package is the testable reference used by the headless
// sandbox and the test suite.
package layout

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Viewport budget factors and floor. The budget deliberately leaves chrome
// space around the game: 92% of width, 88% of height, never below 320px.
const (
	widthFactor  = 0.92
	heightFactor = 0.88
	minBudget    = 320
)

// Default intrinsic canvas dimensions when width/height attributes are
// absent or non-numeric.
const (
	DefaultCanvasWidth  = 800
	DefaultCanvasHeight = 600
)

// PrioritySelectors is the canonical game-container list checked before
// any area heuristic. First match wins.
var PrioritySelectors = []string{
	"#game-container", ".game-container", "#game", ".game-area", "#gameArea", ".game",
}

var (
	pixelWidthPattern  = regexp.MustCompile(`width\s*:\s*(\d+)px`)
	pixelHeightPattern = regexp.MustCompile(`height\s*:\s*(\d+)px`)
	fixedPattern       = regexp.MustCompile(`position\s*:\s*fixed`)
)

// Budget computes the viewport budget for a window size.
func Budget(winW, winH int) (int, int) {
	bw := int(math.Floor(float64(winW) * widthFactor))
	bh := int(math.Floor(float64(winH) * heightFactor))
	if bw < minBudget {
		bw = minBudget
	}
	if bh < minBudget {
		bh = minBudget
	}
	return bw, bh
}

// CanvasTarget computes explicit pixel dimensions for a canvas with the
// given intrinsic attribute values, constrained to the budget while
// preserving the intrinsic aspect ratio. Invalid attributes fall back to
// 800x600.
func CanvasTarget(attrW, attrH string, budgetW, budgetH int) (int, int) {
	w, errW := strconv.Atoi(strings.TrimSpace(attrW))
	h, errH := strconv.Atoi(strings.TrimSpace(attrH))
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		w, h = DefaultCanvasWidth, DefaultCanvasHeight
	}

	ratio := float64(w) / float64(h)
	targetW := int(math.Floor(math.Min(float64(budgetW), float64(budgetH)*ratio)))
	targetH := int(math.Floor(float64(targetW) / ratio))
	return targetW, targetH
}

// RootTarget computes the constrained width for a game root that has no
// canvas, preserving the root's own aspect ratio taken from its scroll
// or client box. Only width is constrained; height follows content.
// A degenerate box returns 0, meaning the width is left automatic.
func RootTarget(boxW, boxH, budgetW, budgetH int) int {
	if boxW <= 0 || boxH <= 0 {
		return 0
	}
	ratio := float64(boxW) / float64(boxH)
	return int(math.Floor(math.Min(float64(budgetW), float64(budgetH)*ratio)))
}

// SelectRoot applies the game-root selection policy to a parsed document:
// priority selectors first, then the largest visible non-fixed descendant
// of body, then the first child element of body. Returns nil when no
// candidate exists (empty body), which callers treat as a no-op.
//
// Server-side, rendered area is approximated from width/height attributes
// and inline pixel styles; elements with no declared size count as zero.
func SelectRoot(doc *goquery.Document) *goquery.Selection {
	for _, sel := range PrioritySelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			return s
		}
	}

	body := doc.Find("body").First()
	if body.Length() == 0 {
		return nil
	}

	var best *goquery.Selection
	bestArea := 0
	body.Find("*").Each(func(_ int, s *goquery.Selection) {
		switch goquery.NodeName(s) {
		case "script", "style", "link", "meta":
			return
		}
		if style, ok := s.Attr("style"); ok && fixedPattern.MatchString(strings.ToLower(style)) {
			return
		}
		if area := declaredArea(s); area > bestArea {
			bestArea = area
			best = s
		}
	})
	if best != nil {
		return best
	}

	if first := body.Children().First(); first.Length() > 0 {
		return first
	}
	return nil
}

func declaredArea(s *goquery.Selection) int {
	w := declaredDimension(s, "width", pixelWidthPattern)
	h := declaredDimension(s, "height", pixelHeightPattern)
	return w * h
}

func declaredDimension(s *goquery.Selection, attr string, stylePattern *regexp.Regexp) int {
	if v, ok := s.Attr(attr); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
			return n
		}
	}
	if style, ok := s.Attr("style"); ok {
		if m := stylePattern.FindStringSubmatch(strings.ToLower(style)); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
				return n
			}
		}
	}
	return 0
}
