// Package enhance rewrites raw game markup with the fixed compatibility
// bundle: dialog-to-message overrides, the status emitter, the adaptive
// layout routine, and its baseline styles.
package enhance

import "regexp"

var (
	headClosePattern = regexp.MustCompile(`(?i)</head\s*>`)
	bodyOpenPattern  = regexp.MustCompile(`(?i)<body[^>]*>`)
)

// Inject merges the enhancement bundle into raw HTML and returns the
// rewritten document. Exactly one insertion point is used and every byte
// outside it is preserved, so malformed fragments survive untouched.
//
// Three-tier fallback, in order:
//  1. before the closing </head> marker
//  2. a synthesized <head> wrapping the bundle, placed before <body>
//  3. the bundle prepended to the document verbatim
func Inject(raw string) string {
	bundle := Bundle()

	if loc := headClosePattern.FindStringIndex(raw); loc != nil {
		return raw[:loc[0]] + bundle + raw[loc[0]:]
	}
	if loc := bodyOpenPattern.FindStringIndex(raw); loc != nil {
		return raw[:loc[0]] + "<head>" + bundle + "</head>" + raw[loc[0]:]
	}
	return bundle + raw
}
