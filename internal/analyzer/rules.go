package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/saintfish/chardet"
)

// Rule is a single independent heuristic. A rule emits at most one
// diagnostic per document. The rule table order is part of the contract:
// new rules are appended, never inserted, so existing diagnostic sequences
// stay stable.
type Rule struct {
	ID       string
	Severity Severity
	Check    func(d *document) (string, bool)
}

var rules = []Rule{
	{ID: "control-buttons", Severity: SeverityWarning, Check: checkControlButtons},
	{ID: "keyboard-support", Severity: SeverityInfo, Check: checkKeyboardSupport},
	{ID: "collision-check", Severity: SeverityWarning, Check: checkCollision},
	{ID: "global-layout", Severity: SeverityInfo, Check: checkGlobalLayout},
	{ID: "container-marker", Severity: SeverityInfo, Check: checkContainerMarker},
	{ID: "charset", Severity: SeverityWarning, Check: checkCharset},
}

var (
	// Instruction text promising left/right buttons, CJK or Latin phrasing.
	controlHintPattern = regexp.MustCompile(`(?i)左右按钮|左.{0,6}右.{0,8}(按钮|按键)|点击.{0,6}(左|右)|left\s*/?\s*(and|or)?\s*right\s+(buttons?|controls?)|tap\s+(the\s+)?(left|right)`)
	directionToken     = regexp.MustCompile(`(?i)左|右|left|right|◀|▶|←|→`)

	arrowKeyPattern = regexp.MustCompile(`(?i)arrowleft|arrowright|arrowup|arrowdown|keydown|keyup|\bkeycode\b|\be\.key\b|onkeydown`)

	// Math.abs(a - b) < N style fixed-distance collision test.
	distanceCollisionPattern  = regexp.MustCompile(`math\.abs\([^)]*\)\s*<=?\s*\d+`)
	directionalComparePattern = regexp.MustCompile(`\.(left|right|top|bottom)\s*[<>]=?`)

	// Matches a CSS rule whose selector is the page root itself, e.g.
	// "body {...}" or "html, body {...}", never ".game-area {...}".
	globalLayoutPattern = regexp.MustCompile(`\b(?:html|body)\s*(?:,\s*(?:html|body)\s*)?\{[^}]*(?:display\s*:\s*flex|overflow\s*:\s*hidden)`)

	charsetMetaPattern = regexp.MustCompile(`(?i)<meta[^>]+charset\s*=\s*["']?utf-?8`)
)

// canonicalContainers is the priority list of markers a game is expected
// to mount under. Shared with the layout policy's selector list.
var canonicalContainers = []string{
	"#game-container", ".game-container", "#game", ".game-area", "#gameArea", ".game",
}

func checkControlButtons(d *document) (string, bool) {
	if !controlHintPattern.MatchString(d.raw) {
		return "", false
	}
	if d.doc != nil {
		found := false
		d.doc.Find("button, [onclick], [role=button]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := s.Text()
			if onclick, ok := s.Attr("onclick"); ok {
				text += " " + onclick
			}
			if id, ok := s.Attr("id"); ok {
				text += " " + id
			}
			if directionToken.MatchString(text) {
				found = true
				return false
			}
			return true
		})
		if found {
			return "", false
		}
	}
	return "instructions mention left/right buttons but no matching clickable buttons were found", true
}

func checkKeyboardSupport(d *document) (string, bool) {
	if arrowKeyPattern.MatchString(d.lower) {
		return "", false
	}
	return "no arrow-key handling detected; keyboard controls are recommended alongside touch", true
}

func checkCollision(d *document) (string, bool) {
	if !distanceCollisionPattern.MatchString(d.lower) {
		return "", false
	}
	if strings.Contains(d.lower, "getboundingclientrect") && directionalComparePattern.MatchString(d.lower) {
		return "", false
	}
	return "collision detection uses a fixed distance threshold; a bounding-box overlap check is more reliable across element sizes", true
}

func checkGlobalLayout(d *document) (string, bool) {
	if globalLayoutPattern.MatchString(d.lower) {
		return "flex display or hidden overflow is applied to the page root; scope layout rules to a dedicated game container", true
	}
	if d.doc != nil {
		style, ok := d.doc.Find("body").Attr("style")
		if ok {
			s := strings.ToLower(style)
			if strings.Contains(s, "flex") || strings.Contains(s, "overflow:hidden") || strings.Contains(s, "overflow: hidden") {
				return "flex display or hidden overflow is applied to the page root; scope layout rules to a dedicated game container", true
			}
		}
	}
	return "", false
}

func checkContainerMarker(d *document) (string, bool) {
	if d.doc != nil {
		for _, sel := range canonicalContainers {
			if d.doc.Find(sel).Length() > 0 {
				return "", false
			}
		}
	}
	return "no recognizable game container (e.g. #game-container or .game-area); adaptive layout falls back to guessing the game root", true
}

func checkCharset(d *document) (string, bool) {
	if d.node != nil {
		for _, meta := range htmlquery.Find(d.node, "//meta[@charset]") {
			cs := strings.ToLower(htmlquery.SelectAttr(meta, "charset"))
			if cs == "utf-8" || cs == "utf8" {
				return "", false
			}
		}
		for _, meta := range htmlquery.Find(d.node, "//meta[@http-equiv]") {
			content := strings.ToLower(htmlquery.SelectAttr(meta, "content"))
			if strings.Contains(content, "charset=utf-8") {
				return "", false
			}
		}
	} else if charsetMetaPattern.MatchString(d.raw) {
		return "", false
	}
	return fmt.Sprintf("no UTF-8 charset declaration; content was detected as %s and may render garbled", detectCharset(d.raw)), true
}

// detectCharset guesses the document encoding for the charset diagnostic.
func detectCharset(raw string) string {
	result, err := chardet.NewTextDetector().DetectBest([]byte(raw))
	if err != nil || result == nil {
		return "utf-8"
	}
	return strings.ToLower(result.Charset)
}
