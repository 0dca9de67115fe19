package server

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpapi "github.com/gamedock/gamedock/internal/api/http"
	"github.com/gamedock/gamedock/internal/api/middleware"
	"github.com/gamedock/gamedock/internal/api/ws"
	"github.com/gamedock/gamedock/internal/game"
	"github.com/gamedock/gamedock/internal/infrastructure/config"
	"github.com/gamedock/gamedock/internal/infrastructure/logging"
	"github.com/gamedock/gamedock/internal/infrastructure/monitoring"
	"github.com/gamedock/gamedock/internal/sandbox"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	manager *game.Manager
	pool    *sandbox.Pool
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}

	logger.Info("Initializing GameDock server",
		zap.String("port", cfg.Server.Port),
		zap.String("host", cfg.Server.Host),
	)

	metrics := monitoring.NewMetrics()

	manager := game.NewManager(logger).WithMetrics(metrics)

	if cfg.Library.Enabled && cfg.Library.Path != "" {
		library := game.NewLibrary(cfg.Library.Path, logger)
		if _, err := library.Seed(manager); err != nil {
			logger.Warn("failed to seed game library", zap.Error(err))
		}
	}

	fetcher := game.NewFetcher(
		time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second,
		cfg.Fetch.MaxBytes,
	)

	sandboxConfig := sandbox.DefaultConfig()
	sandboxConfig.Timeout = time.Duration(cfg.Sandbox.TimeoutSeconds) * time.Second
	pool, err := sandbox.NewPool(sandboxConfig, cfg.Sandbox.PoolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create sandbox pool: %w", err)
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		// Global backstop first, then the per-IP bucket. The backstop is
		// sized an order of magnitude above the per-client rate so it only
		// trips under aggregate overload.
		router.Use(middleware.GlobalRateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond * 10,
			Burst:             cfg.RateLimit.Burst * 10,
		}))
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := httpapi.NewHandlers(manager, fetcher, pool, metrics, logger)
	wsHandler := ws.NewHandler(manager, metrics, logger)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)

	// Game sessions
	router.POST("/games", handlers.LoadGame)
	router.POST("/games/fetch", handlers.FetchGame)
	router.GET("/games", handlers.ListGames)
	router.GET("/games/:id", handlers.GetGame)
	router.DELETE("/games/:id", handlers.DeleteGame)

	// Per-game operations
	router.GET("/games/:id/document", handlers.GetDocument)
	router.GET("/games/:id/diagnostics", handlers.GetDiagnostics)
	router.GET("/games/:id/score", handlers.GetScore)
	router.POST("/games/:id/message", handlers.PostMessage)
	router.GET("/games/:id/export", handlers.ExportGame)
	router.GET("/games/:id/preview", handlers.PreviewGame)
	router.POST("/games/:id/verify", handlers.VerifyGame)

	// WebSocket bridge
	router.GET("/games/:id/stream", wsHandler.HandleConnection)

	// Metrics
	router.GET("/metrics", monitoring.Handler())

	logger.Info("Server initialized successfully")

	return &Server{
		router:  router,
		manager: manager,
		pool:    pool,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
	}, nil
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")

	if s.pool != nil {
		if err := s.pool.Close(); err != nil {
			s.logger.Error("Failed to close sandbox pool", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
