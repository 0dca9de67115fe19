// Package main is the entry point for the GameDock server.
//
// GameDock hosts generated HTML mini-games: it analyzes raw markup for
// common defects, injects the enhancement bundle (dialog overrides,
// adaptive layout, score reporting), and bridges the game's message
// protocol to collaborating frontends.
//
// The server provides:
//   - REST API for loading, inspecting, and exporting games
//   - WebSocket streaming of notices and score updates
//   - Headless verification of game scripts
//   - Prometheus metrics
//
// Configuration:
//   - Environment variables (12-factor)
//   - Optional YAML file via -config (overrides env)
//   - Defaults for development
//
// Usage:
//
//	# Environment-driven
//	PORT=8600 ./server
//
//	# File-driven
//	./server -config gamedock.yaml
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
