/*
Package monitoring provides Prometheus metrics collection.

# Overview

Tracks HTTP traffic, game loads, analyzer diagnostics by rule and
severity, protocol message dispatch, sandbox verification runs, and
WebSocket bridge connections.

# Usage

	// Create metrics collector
	metrics := monitoring.NewMetrics()

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Record domain events
	metrics.RecordGameLoaded(diagnostics)
	metrics.RecordProtocolMessage("game-alert")

# Metrics Endpoint

	router.GET("/metrics", monitoring.Handler())
*/
package monitoring
