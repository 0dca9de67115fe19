package layout

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudget(t *testing.T) {
	w, h := Budget(1000, 700)
	assert.Equal(t, 920, w)
	assert.Equal(t, 616, h)
}

func TestBudgetFloor(t *testing.T) {
	// Tiny viewports never shrink the budget below the floor.
	w, h := Budget(100, 100)
	assert.Equal(t, 320, w)
	assert.Equal(t, 320, h)

	w, h = Budget(0, 0)
	assert.Equal(t, 320, w)
	assert.Equal(t, 320, h)
}

func TestCanvasTargetPreservesRatio(t *testing.T) {
	tw, th := CanvasTarget("800", "600", 1000, 700)

	assert.LessOrEqual(t, tw, 1000)
	assert.LessOrEqual(t, th, 700)
	assert.InDelta(t, 800.0/600.0, float64(tw)/float64(th), 0.01)

	// Height is the binding constraint here.
	assert.Equal(t, 933, tw)
	assert.Equal(t, 699, th)
}

func TestCanvasTargetWidthBound(t *testing.T) {
	// A wide budget makes width the binding constraint.
	tw, th := CanvasTarget("800", "600", 600, 2000)
	assert.Equal(t, 600, tw)
	assert.Equal(t, 450, th)
}

func TestCanvasTargetDefaultRatio(t *testing.T) {
	// Missing or garbage attributes fall back to 800x600.
	for _, attrs := range [][2]string{{"", ""}, {"abc", "600"}, {"800", "0"}, {"-5", "600"}} {
		tw, th := CanvasTarget(attrs[0], attrs[1], 1000, 700)
		assert.InDelta(t, 4.0/3.0, float64(tw)/float64(th), 0.01, "attrs %v", attrs)
	}
}

func TestRootTargetPreservesBoxRatio(t *testing.T) {
	// Wide root: width is the binding constraint.
	assert.Equal(t, 920, RootTarget(1600, 800, 920, 616))

	// Tall root: scaled height budget binds instead.
	assert.Equal(t, 308, RootTarget(400, 800, 920, 616))

	// Square root inside a wide budget.
	assert.Equal(t, 616, RootTarget(500, 500, 920, 616))
}

func TestRootTargetDegenerateBox(t *testing.T) {
	assert.Equal(t, 0, RootTarget(0, 400, 920, 616))
	assert.Equal(t, 0, RootTarget(400, 0, 920, 616))
	assert.Equal(t, 0, RootTarget(-1, -1, 920, 616))
}

func TestSelectRootPriority(t *testing.T) {
	// The tagged container wins even against a larger untagged sibling.
	doc := parse(t, `<html><body>
<div width="1200" height="900">big but untagged</div>
<div class="game-area" style="width: 100px; height: 100px">small</div>
</body></html>`)

	sel := SelectRoot(doc)
	require.NotNil(t, sel)
	class, _ := sel.Attr("class")
	assert.Equal(t, "game-area", class)
}

func TestSelectRootPriorityOrder(t *testing.T) {
	doc := parse(t, `<html><body>
<div class="game"></div>
<div id="game-container"></div>
</body></html>`)

	sel := SelectRoot(doc)
	require.NotNil(t, sel)
	id, _ := sel.Attr("id")
	assert.Equal(t, "game-container", id)
}

func TestSelectRootLargestDeclared(t *testing.T) {
	doc := parse(t, `<html><body>
<div width="200" height="200">small</div>
<div width="640" height="480">large</div>
</body></html>`)

	sel := SelectRoot(doc)
	require.NotNil(t, sel)
	w, _ := sel.Attr("width")
	assert.Equal(t, "640", w)
}

func TestSelectRootSkipsFixed(t *testing.T) {
	doc := parse(t, `<html><body>
<div style="position: fixed; width: 900px; height: 900px">overlay</div>
<div style="width: 300px; height: 300px">stage</div>
</body></html>`)

	sel := SelectRoot(doc)
	require.NotNil(t, sel)
	style, _ := sel.Attr("style")
	assert.False(t, strings.Contains(style, "fixed"))
}

func TestSelectRootFirstChildFallback(t *testing.T) {
	// Nothing tagged, nothing with a declared size.
	doc := parse(t, `<html><body><p>hello</p><span>world</span></body></html>`)

	sel := SelectRoot(doc)
	require.NotNil(t, sel)
	assert.True(t, sel.Is("p"))
}

func TestSelectRootEmptyBody(t *testing.T) {
	doc := parse(t, `<html><body></body></html>`)
	assert.Nil(t, SelectRoot(doc))
}

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}
