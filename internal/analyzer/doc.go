/*
Package analyzer performs static heuristic analysis of raw game markup.

# Overview

The analyzer is a fixed table of independent rules evaluated against the
full document text. Each rule inspects a parsed or textual view of the
markup and emits zero or one diagnostic. The output order matches the
table order and is stable across releases.

The analysis is best-effort signal, not semantic verification: rules match
textual and structural patterns, so false positives and locale-driven
false negatives are accepted. No rule ever fails — absence of evidence
simply produces no diagnostic.

# Rules

 1. control-buttons: instruction text promises left/right buttons without
    matching clickable markup
 2. keyboard-support: no arrow-key bindings detected
 3. collision-check: fixed-distance collision test without a bounding-box
    overlap check
 4. global-layout: flex/overflow rules applied to the page root
 5. container-marker: no canonical game container element
 6. charset: no UTF-8 charset declaration
*/
package analyzer
