package enhance

import "sync"

// BundleVersion identifies the injected fragment generation. Bump when the
// script or style content changes in a way hosts need to detect.
const BundleVersion = "1"

var (
	cachedBundle     string
	cachedBundleOnce sync.Once
)

// Bundle returns the full enhancement fragment (script plus style). The
// content is fixed and independent of the document it is injected into;
// it is assembled once and cached.
func Bundle() string {
	cachedBundleOnce.Do(func() {
		cachedBundle = "\n<script data-gamedock=\"bridge\" data-version=\"" + BundleVersion + "\">" +
			bridgeScript +
			"</script>\n<style data-gamedock=\"layout\" data-version=\"" + BundleVersion + "\">" +
			layoutStyle +
			"</style>\n"
	})
	return cachedBundle
}

// bridgeScript runs inside the isolated context. It replaces the blocking
// dialog primitives with protocol messages, defines the status emitter,
// and installs the adaptive layout routine with its observers. Every
// message targets the parent with a wildcard recipient: the payload
// carries no secrets and the embedding origin is not known in advance.
const bridgeScript = `
(function() {
  'use strict';

  function post(msg) {
    try {
      window.parent.postMessage(msg, '*');
    } catch (e) { /* detached parent */ }
  }

  // Dialog overrides. confirm returns true so content waiting on an
  // answer never stalls: there is no round-trip to the host.
  window.alert = function(message) {
    post({ type: 'game-alert', message: String(message) });
  };
  window.confirm = function(message) {
    post({ type: 'game-confirm', message: String(message) });
    return true;
  };

  window.reportGameStatus = function(status, data) {
    post({ type: 'game-status', status: String(status), data: data || {} });
  };

  var PRIORITY_SELECTORS = [
    '#game-container', '.game-container', '#game', '.game-area', '#gameArea', '.game'
  ];

  function pickGameRoot() {
    for (var i = 0; i < PRIORITY_SELECTORS.length; i++) {
      var el = document.querySelector(PRIORITY_SELECTORS[i]);
      if (el) return el;
    }
    var body = document.body;
    if (!body) return null;
    var best = null, bestArea = 0;
    var all = body.querySelectorAll('*');
    for (var j = 0; j < all.length; j++) {
      var cand = all[j];
      var tag = cand.tagName;
      if (tag === 'SCRIPT' || tag === 'STYLE' || tag === 'LINK' || tag === 'META') continue;
      var style = window.getComputedStyle(cand);
      if (style.position === 'fixed') continue;
      var rect = cand.getBoundingClientRect();
      var area = rect.width * rect.height;
      if (area > bestArea) { bestArea = area; best = cand; }
    }
    if (best && bestArea > 0) return best;
    return body.firstElementChild || null;
  }

  function viewportBudget() {
    return {
      w: Math.max(320, Math.floor(window.innerWidth * 0.92)),
      h: Math.max(320, Math.floor(window.innerHeight * 0.88))
    };
  }

  function fitGameLayout() {
    var root = pickGameRoot();
    if (!root) return;
    var budget = viewportBudget();

    // Box constraints only; transform scaling would break content that
    // reads its own rendered size for hit testing.
    root.style.maxWidth = budget.w + 'px';
    root.style.marginLeft = 'auto';
    root.style.marginRight = 'auto';
    root.style.display = 'block';
    root.style.transform = 'none';

    var canvas = root.tagName === 'CANVAS' ? root : root.querySelector('canvas');
    if (canvas) {
      root.style.maxHeight = budget.h + 'px';
      try {
        var cw = parseInt(canvas.getAttribute('width'), 10);
        var ch = parseInt(canvas.getAttribute('height'), 10);
        if (!(cw > 0) || !(ch > 0)) { cw = 800; ch = 600; }
        var ratio = cw / ch;
        var targetW = Math.floor(Math.min(budget.w, budget.h * ratio));
        var targetH = Math.floor(targetW / ratio);
        canvas.style.width = targetW + 'px';
        canvas.style.height = targetH + 'px';
        canvas.style.display = 'block';
        canvas.style.marginLeft = 'auto';
        canvas.style.marginRight = 'auto';
      } catch (e) { /* degrade to unscaled canvas */ }
    } else {
      // No canvas: keep the root's own aspect ratio, taken from its
      // scroll box, and constrain width only. Height follows content.
      var rw = root.scrollWidth || root.clientWidth;
      var rh = root.scrollHeight || root.clientHeight;
      if (rw > 0 && rh > 0) {
        var rootW = Math.floor(Math.min(budget.w, budget.h * (rw / rh)));
        root.style.width = rootW + 'px';
      } else {
        root.style.width = 'auto';
      }
    }
  }

  window.addEventListener('resize', fitGameLayout);
  window.addEventListener('orientationchange', fitGameLayout);
  window.addEventListener('load', fitGameLayout);
  setTimeout(fitGameLayout, 300);

  function install() {
    if (!document.body) return;

    var lastScoreText = null;
    function scanScore() {
      var el = document.querySelector('[class*="score"], [id*="score"]');
      if (!el) return;
      var text = el.textContent || '';
      if (text === lastScoreText) return;
      lastScoreText = text;
      window.reportGameStatus('score-update', { text: text });
    }

    if (typeof MutationObserver !== 'undefined') {
      new MutationObserver(function() {
        scanScore();
      }).observe(document.body, { childList: true, subtree: true, characterData: true });
    }
    scanScore();

    // Catches growth not driven by window resize, e.g. late-loading content.
    if (typeof ResizeObserver !== 'undefined') {
      new ResizeObserver(function() {
        fitGameLayout();
      }).observe(document.body);
    }
  }

  if (document.readyState === 'loading') {
    document.addEventListener('DOMContentLoaded', install);
  } else {
    install();
  }
})();
`

// layoutStyle scopes the full-viewport background to the document root,
// keeps known game containers inside the viewport, and lets canvases
// scale down without distorting their intrinsic aspect ratio.
const layoutStyle = `
html, body {
  margin: 0;
  padding: 0;
}
html {
  width: 100%;
  min-height: 100%;
}
#game-container, .game-container, #game, .game-area, #gameArea, .game {
  max-width: 100vw;
  max-height: 100vh;
  box-sizing: border-box;
}
canvas {
  max-width: 100%;
  height: auto;
}
`
