package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/gamedock/gamedock/internal/game"
	"github.com/gamedock/gamedock/internal/infrastructure/logging"
	"github.com/gamedock/gamedock/internal/infrastructure/monitoring"
	"github.com/gamedock/gamedock/internal/sandbox"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	manager   *game.Manager
	fetcher   *game.Fetcher
	pool      *sandbox.Pool
	sanitizer *bluemonday.Policy
	metrics   *monitoring.Metrics
	log       *logging.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(
	manager *game.Manager,
	fetcher *game.Fetcher,
	pool *sandbox.Pool,
	metrics *monitoring.Metrics,
	log *logging.Logger,
) *Handlers {
	return &Handlers{
		manager:   manager,
		fetcher:   fetcher,
		pool:      pool,
		sanitizer: bluemonday.UGCPolicy(),
		metrics:   metrics,
		log:       log,
	}
}

// Root handles the service banner.
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "GameDock",
		"version": "0.3.0",
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"games":  h.manager.Stats(),
		"uptime": h.metrics.Uptime().String(),
	})
}

// LoadGame loads raw game markup supplied in the request body.
func (h *Handlers) LoadGame(c *gin.Context) {
	var data game.GameData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	session, reused, err := h.manager.Load(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := http.StatusCreated
	if reused {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{
		"session": session,
		"reused":  reused,
	})
}

// FetchGame loads a game from a remote URL.
func (h *Handlers) FetchGame(c *gin.Context) {
	var req struct {
		URL string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url required"})
		return
	}

	data, err := h.fetcher.Fetch(c.Request.Context(), req.URL)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	session, reused, err := h.manager.Load(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"session": session,
		"reused":  reused,
	})
}

// ListGames lists all game sessions.
func (h *Handlers) ListGames(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"games": h.manager.List(),
		"stats": h.manager.Stats(),
	})
}

// GetGame returns one session.
func (h *Handlers) GetGame(c *gin.Context) {
	session, ok := h.manager.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session, "score": session.Score()})
}

// GetDocument serves the enhanced HTML for the isolated rendering context.
// The document is handed over as text/html for srcdoc-style assignment,
// never as a navigable URL target.
func (h *Handlers) GetDocument(c *gin.Context) {
	session, ok := h.manager.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}

	doc, err := session.Document()
	if err != nil {
		h.log.Error("failed to decode stored document", zap.String("session_id", session.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stored document unavailable"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(doc))
}

// GetDiagnostics returns the analyzer findings for a session.
func (h *Handlers) GetDiagnostics(c *gin.Context) {
	session, ok := h.manager.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"diagnostics": session.Diagnostics})
}

// GetScore returns the current score state.
func (h *Handlers) GetScore(c *gin.Context) {
	session, ok := h.manager.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"score": session.Score()})
}

// PostMessage submits one protocol message to a session's bridge. The
// bridge is total: malformed payloads are dropped, so this always
// succeeds for a known session.
func (h *Handlers) PostMessage(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.manager.Get(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}

	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}
	h.manager.HandleMessage(id, raw)
	c.JSON(http.StatusAccepted, gin.H{"accepted": true})
}

// ExportGame offers the original pre-enhancement markup as a download.
func (h *Handlers) ExportGame(c *gin.Context) {
	session, ok := h.manager.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}

	raw, err := session.RawHTML()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stored document unavailable"})
		return
	}

	name := exportFilename(session.Meta.Title)
	contentType := mimetype.Detect([]byte(raw)).String()
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, contentType, []byte(raw))
}

// PreviewGame serves a sanitized, script-free rendering of the original
// markup for thumbnails and listings.
func (h *Handlers) PreviewGame(c *gin.Context) {
	session, ok := h.manager.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}

	raw, err := session.RawHTML()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stored document unavailable"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(h.sanitizer.Sanitize(raw)))
}

// VerifyGame executes the game's inline scripts headlessly and reports
// the protocol traffic and console output they produce.
func (h *Handlers) VerifyGame(c *gin.Context) {
	session, ok := h.manager.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}

	raw, err := session.RawHTML()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stored document unavailable"})
		return
	}

	scripts := sandbox.ExtractInlineScripts(raw)
	results := make([]gin.H, 0, len(scripts))
	for i, script := range scripts {
		res, execErr := h.pool.Execute(c.Request.Context(), script)
		h.metrics.RecordSandboxRun(execErr != nil)

		entry := gin.H{"index": i}
		if res != nil {
			entry["console"] = res.Console
			entry["messages"] = res.Messages
			entry["duration_ms"] = res.Duration.Milliseconds()
		}
		if execErr != nil {
			entry["error"] = execErr.Error()
		}
		results = append(results, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"scripts":  len(scripts),
		"results":  results,
		"verified": time.Now(),
	})
}

// DeleteGame removes a session.
func (h *Handlers) DeleteGame(c *gin.Context) {
	id := c.Param("id")
	if !h.manager.Remove(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}
	h.metrics.RecordGameRemoved()
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// exportFilename derives a safe download filename from a game title.
func exportFilename(title string) string {
	name := strings.TrimSpace(title)
	if name == "" {
		name = "game"
	}
	replacer := strings.NewReplacer("/", "-", "\\", "-", "\"", "", "\n", " ", "\r", " ")
	name = replacer.Replace(name)
	if !strings.HasSuffix(strings.ToLower(name), ".html") {
		name += ".html"
	}
	return name
}
