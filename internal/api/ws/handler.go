package ws

import (
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/gamedock/gamedock/internal/game"
	"github.com/gamedock/gamedock/internal/infrastructure/logging"
	"github.com/gamedock/gamedock/internal/infrastructure/monitoring"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // host page origin is not known in advance
	},
}

// Handler relays protocol traffic between the host page and a game
// session. The page forwards every postMessage payload the iframe emits;
// the server dispatches it and pushes notices and score snapshots back.
type Handler struct {
	manager *game.Manager
	metrics *monitoring.Metrics
	log     *logging.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(manager *game.Manager, metrics *monitoring.Metrics, log *logging.Logger) *Handler {
	return &Handler{manager: manager, metrics: metrics, log: log}
}

// HandleConnection handles WebSocket upgrade and the message loop.
func (h *Handler) HandleConnection(c *gin.Context) {
	sessionID := c.Param("id")
	session, ok := h.manager.Get(sessionID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	h.metrics.WSConnections.Inc()
	defer h.metrics.WSConnections.Dec()

	notices, cancel := session.Subscribe()
	defer cancel()

	// Single writer: both the notice fan-out and the read loop enqueue
	// here, gorilla connections do not allow concurrent writes.
	outbox := make(chan []byte, 32)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			select {
			case payload := <-outbox:
				if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					return
				}
			case notice := <-notices:
				if payload, err := sonic.Marshal(gin.H{
					"type":    "notice",
					"level":   notice.Level,
					"message": notice.Message,
				}); err == nil {
					if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
						return
					}
				}
			case <-done:
				return
			}
		}
	}()

	h.send(outbox, gin.H{
		"type":       "system",
		"message":    "connected to game session",
		"session_id": sessionID,
		"timestamp":  time.Now().Unix(),
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			break
		}

		// Bridge dispatch is total; anything unrecognized is dropped
		// without closing the socket.
		h.manager.HandleMessage(sessionID, raw)

		h.send(outbox, gin.H{
			"type":  "score",
			"score": session.Score(),
		})
	}
}

func (h *Handler) send(outbox chan []byte, data gin.H) {
	payload, err := sonic.Marshal(data)
	if err != nil {
		return
	}
	select {
	case outbox <- payload:
	default:
	}
}
