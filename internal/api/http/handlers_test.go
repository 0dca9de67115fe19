package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamedock/gamedock/internal/game"
	"github.com/gamedock/gamedock/internal/infrastructure/logging"
	"github.com/gamedock/gamedock/internal/infrastructure/monitoring"
	"github.com/gamedock/gamedock/internal/sandbox"
)

// Prometheus collectors register against the default registry, so the
// test binary shares one instance.
var testMetrics = monitoring.NewMetrics()

const testGame = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Pong</title></head>
<body>
<div id="game-container"></div>
<script>document.addEventListener('keydown', function() {}); alert('ready');</script>
</body>
</html>`

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logging.NewNop()
	manager := game.NewManager(log)
	fetcher := game.NewFetcher(0, 0)
	pool, err := sandbox.NewPool(sandbox.DefaultConfig(), 1)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	handlers := NewHandlers(manager, fetcher, pool, testMetrics, log)

	router := gin.New()
	router.POST("/games", handlers.LoadGame)
	router.GET("/games", handlers.ListGames)
	router.GET("/games/:id", handlers.GetGame)
	router.DELETE("/games/:id", handlers.DeleteGame)
	router.GET("/games/:id/document", handlers.GetDocument)
	router.GET("/games/:id/diagnostics", handlers.GetDiagnostics)
	router.GET("/games/:id/score", handlers.GetScore)
	router.POST("/games/:id/message", handlers.PostMessage)
	router.GET("/games/:id/export", handlers.ExportGame)
	router.GET("/games/:id/preview", handlers.PreviewGame)
	router.POST("/games/:id/verify", handlers.VerifyGame)
	return router
}

func loadTestGame(t *testing.T, router *gin.Engine) string {
	t.Helper()
	body, _ := json.Marshal(gin.H{
		"html": testGame,
		"meta": gin.H{"title": "Pong", "type": "arcade"},
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/games", bytes.NewReader(body))
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Session struct {
			ID string `json:"id"`
		} `json:"session"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Session.ID)
	return resp.Session.ID
}

func TestLoadGameEndpoint(t *testing.T) {
	router := newTestRouter(t)
	loadTestGame(t, router)

	// Re-loading the identical game reuses the session.
	body, _ := json.Marshal(gin.H{"html": testGame})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/games", bytes.NewReader(body)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"reused":true`)
}

func TestLoadGameRejectsEmptyBody(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/games", strings.NewReader("{}")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetDocumentEndpoint(t *testing.T) {
	router := newTestRouter(t)
	id := loadTestGame(t, router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/games/"+id+"/document", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), `data-gamedock="bridge"`)
}

func TestScoreRoundTrip(t *testing.T) {
	router := newTestRouter(t)
	id := loadTestGame(t, router)

	msg := `{"type":"game-status","status":"score-update","data":{"text":"正确:6 错误:2 进度:3"}}`
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/games/"+id+"/message", strings.NewReader(msg)))
	require.Equal(t, http.StatusAccepted, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/games/"+id+"/score", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"correct":6`)
	assert.Contains(t, w.Body.String(), `"wrong":2`)
	assert.Contains(t, w.Body.String(), `"progress":3`)
}

func TestExportEndpoint(t *testing.T) {
	router := newTestRouter(t)
	id := loadTestGame(t, router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/games/"+id+"/export", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="Pong.html"`)
	// Export is the original, never the enhanced document.
	assert.Equal(t, testGame, w.Body.String())
}

func TestPreviewStripsScripts(t *testing.T) {
	router := newTestRouter(t)
	id := loadTestGame(t, router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/games/"+id+"/preview", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "<script")
}

func TestVerifyEndpoint(t *testing.T) {
	router := newTestRouter(t)
	id := loadTestGame(t, router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/games/"+id+"/verify", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"scripts":1`)
	assert.Contains(t, w.Body.String(), "game-alert")
}

func TestDeleteEndpoint(t *testing.T) {
	router := newTestRouter(t)
	id := loadTestGame(t, router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/games/"+id, nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/games/"+id, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnknownSession(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{
		"/games/missing", "/games/missing/document", "/games/missing/score",
	} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "game.html", exportFilename(""))
	assert.Equal(t, "Snake.html", exportFilename("Snake"))
	assert.Equal(t, "snake.html", exportFilename("snake.html"))
	assert.Equal(t, "a-b.html", exportFilename("a/b"))
}
