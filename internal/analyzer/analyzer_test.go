package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const keyboardGame = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Catcher</title></head>
<body>
<div id="game-container"><canvas width="800" height="600"></canvas></div>
<script>
document.addEventListener('keydown', function(e) {
  if (e.key === 'ArrowLeft') move(-1);
  if (e.key === 'ArrowRight') move(1);
});
</script>
</body>
</html>`

func TestAnalyzeDeterministic(t *testing.T) {
	first := Analyze(keyboardGame)
	second := Analyze(keyboardGame)
	assert.Equal(t, first, second)
}

func TestAnalyzeCleanGame(t *testing.T) {
	diags := Analyze(keyboardGame)
	for _, d := range diags {
		assert.NotEqual(t, "charset", d.Rule)
		assert.NotEqual(t, "keyboard-support", d.Rule)
		assert.NotEqual(t, "container-marker", d.Rule)
	}
}

func TestCharsetRule(t *testing.T) {
	html := `<html><head><title>t</title></head><body><div id="game"></div></body></html>`
	diags := Analyze(html)

	var warnings []Diagnostic
	for _, d := range diags {
		if d.Severity == SeverityWarning {
			warnings = append(warnings, d)
		}
	}
	require.Len(t, warnings, 1)
	assert.Equal(t, "charset", warnings[0].Rule)
}

func TestCharsetRuleHTTPEquiv(t *testing.T) {
	html := `<html><head><meta http-equiv="Content-Type" content="text/html; charset=utf-8"></head><body></body></html>`
	for _, d := range Analyze(html) {
		assert.NotEqual(t, "charset", d.Rule)
	}
}

func TestControlButtonsRule(t *testing.T) {
	missing := `<html><head><meta charset="utf-8"></head><body>
<p>点击左右按钮控制小球</p><div class="game-area"></div></body></html>`
	diags := Analyze(missing)
	assert.True(t, hasRule(diags, "control-buttons"))

	present := `<html><head><meta charset="utf-8"></head><body>
<p>点击左右按钮控制小球</p>
<button onclick="moveLeft()">←</button><button onclick="moveRight()">→</button>
<div class="game-area"></div></body></html>`
	assert.False(t, hasRule(Analyze(present), "control-buttons"))
}

func TestCollisionRule(t *testing.T) {
	distance := `<html><head><meta charset="utf-8"></head><body><script>
if (Math.abs(ballX - basketX) < 30) { score++; }
</script></body></html>`
	assert.True(t, hasRule(Analyze(distance), "collision-check"))

	aabb := `<html><head><meta charset="utf-8"></head><body><script>
var a = ball.getBoundingClientRect();
var b = basket.getBoundingClientRect();
if (Math.abs(dx) < 30 && a.left < b.right && a.right > b.left) { score++; }
</script></body></html>`
	assert.False(t, hasRule(Analyze(aabb), "collision-check"))
}

func TestGlobalLayoutRule(t *testing.T) {
	global := `<html><head><meta charset="utf-8"><style>
body { display: flex; overflow: hidden; }
</style></head><body></body></html>`
	assert.True(t, hasRule(Analyze(global), "global-layout"))

	scoped := `<html><head><meta charset="utf-8"><style>
.game-area { display: flex; }
</style></head><body><div class="game-area"></div></body></html>`
	assert.False(t, hasRule(Analyze(scoped), "global-layout"))
}

func TestContainerMarkerRule(t *testing.T) {
	unmarked := `<html><head><meta charset="utf-8"></head><body><div class="stage"></div></body></html>`
	assert.True(t, hasRule(Analyze(unmarked), "container-marker"))

	marked := `<html><head><meta charset="utf-8"></head><body><div class="game-container"></div></body></html>`
	assert.False(t, hasRule(Analyze(marked), "container-marker"))
}

func TestRuleOrderStable(t *testing.T) {
	// Trips every rule at once; the output order must match the table.
	html := `<html><head><style>body { overflow: hidden; }</style></head><body>
<p>tap the left or right button</p>
<script>if (Math.abs(x - y) < 20) {}</script>
</body></html>`
	diags := Analyze(html)
	require.Len(t, diags, 6)

	expected := []string{
		"control-buttons", "keyboard-support", "collision-check",
		"global-layout", "container-marker", "charset",
	}
	for i, id := range expected {
		assert.Equal(t, id, diags[i].Rule)
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	assert.NotPanics(t, func() { Analyze("") })
}

func hasRule(diags []Diagnostic, rule string) bool {
	for _, d := range diags {
		if d.Rule == rule {
			return true
		}
	}
	return false
}
