package protocol

import (
	"regexp"
	"strconv"
)

// ScoreState holds the structured score extracted from freeform status
// text. Fields update independently with last-known-value semantics: a
// payload that matches none of the patterns leaves the state unchanged.
type ScoreState struct {
	Correct  int `json:"correct"`
	Wrong    int `json:"wrong"`
	Progress int `json:"progress"` // 0..10
}

// Labeled-number patterns, CJK labels first since generated games mostly
// ship Chinese UI text, with Latin fallbacks.
var (
	correctPattern  = regexp.MustCompile(`(?i)(?:正确|答对|correct)\s*[::]?\s*(\d+)`)
	wrongPattern    = regexp.MustCompile(`(?i)(?:错误|答错|wrong)\s*[::]?\s*(\d+)`)
	progressPattern = regexp.MustCompile(`(?i)(?:进度|关卡|progress|level)\s*[::]?\s*(\d+)`)
)

const maxProgress = 10

// Apply folds a score-update payload into the state and returns the next
// state. Pure and total: missing or malformed payloads return the
// previous state unchanged.
func (s ScoreState) Apply(data map[string]any) ScoreState {
	text := statusText(data)
	if text == "" {
		return s
	}

	next := s
	if n, ok := firstNumber(correctPattern, text); ok {
		next.Correct = n
	}
	if n, ok := firstNumber(wrongPattern, text); ok {
		next.Wrong = n
	}
	if n, ok := firstNumber(progressPattern, text); ok {
		if n > maxProgress {
			n = maxProgress
		}
		next.Progress = n
	}
	return next
}

// statusText pulls the freeform status string out of an opaque payload.
func statusText(data map[string]any) string {
	for _, key := range []string{"text", "score", "status"} {
		if v, ok := data[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func firstNumber(re *regexp.Regexp, text string) (int, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
