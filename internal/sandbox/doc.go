/*
Package sandbox provides headless JavaScript execution for game content
verification.

# Overview

Game markup normally renders in an isolated iframe where the injected
bundle mediates all host communication. This package reproduces that
contract server-side with goja so a game's inline scripts can be executed
without a browser: the same alert/confirm/reportGameStatus capabilities
are installed at construction time and everything they emit is collected
as protocol messages.

Capabilities are injected explicitly rather than monkey-patched, so tests
substitute a fake emitter and assert on the traffic.

# Security Model

Sandboxed code cannot access the filesystem or network, spawn processes,
or reach Node.js globals. Execution is bounded by a timeout and a call
stack limit; a wedged script is interrupted, not waited on.
*/
package sandbox
