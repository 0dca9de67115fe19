// Package server provides HTTP server setup and initialization.
//
// This package orchestrates all components:
//   - HTTP routing with Gin framework
//   - Middleware stack (CORS, rate limiting, recovery, metrics)
//   - Game session manager and optional library seeding
//   - Remote fetcher and headless sandbox pool
//   - WebSocket bridge registration
//
// Server Lifecycle:
//  1. Load configuration from environment or file
//  2. Initialize logger (production or development)
//  3. Seed the game library when configured
//  4. Create the sandbox pool
//  5. Setup HTTP routes and middleware
//  6. Start HTTP server
//  7. Graceful shutdown on signal
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	srv, err := server.NewServer(cfg)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
