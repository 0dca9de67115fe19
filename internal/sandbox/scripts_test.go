package sandbox

import "testing"

func TestExtractInlineScripts(t *testing.T) {
	html := `<html><head>
<script src="https://cdn.example.com/lib.js"></script>
<script>var a = 1;</script>
<script type="application/json">{"not": "code"}</script>
</head><body>
<script type="text/javascript">var b = 2;</script>
<script>   </script>
</body></html>`

	scripts := ExtractInlineScripts(html)
	if len(scripts) != 2 {
		t.Fatalf("expected 2 scripts, got %d: %v", len(scripts), scripts)
	}
	if scripts[0] != "var a = 1;" {
		t.Errorf("unexpected first script: %q", scripts[0])
	}
	if scripts[1] != "var b = 2;" {
		t.Errorf("unexpected second script: %q", scripts[1])
	}
}

func TestExtractInlineScriptsEmpty(t *testing.T) {
	if got := ExtractInlineScripts(""); len(got) != 0 {
		t.Errorf("expected no scripts, got %v", got)
	}
	if got := ExtractInlineScripts("<div>no scripts</div>"); len(got) != 0 {
		t.Errorf("expected no scripts, got %v", got)
	}
}
