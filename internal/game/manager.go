package game

import (
	"encoding/hex"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"

	"github.com/gamedock/gamedock/internal/analyzer"
	"github.com/gamedock/gamedock/internal/enhance"
	"github.com/gamedock/gamedock/internal/infrastructure/logging"
	"github.com/gamedock/gamedock/internal/infrastructure/monitoring"
	"github.com/gamedock/gamedock/internal/protocol"
)

// MaxHTMLSize limits game markup to 10MB to prevent memory exhaustion.
const MaxHTMLSize = 10 * 1024 * 1024

// Manager owns game sessions: loading runs the analyzer and injector and
// produces a Session; message handling routes protocol traffic to the
// session's bridge.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	byHash   map[string]string // content hash -> session ID

	log     *logging.Logger
	metrics *monitoring.Metrics
}

// NewManager creates a session manager.
func NewManager(log *logging.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		byHash:   make(map[string]string),
		log:      log,
	}
}

// WithMetrics attaches a metrics collector.
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// Load analyzes and enhances raw game markup and returns its session.
// A byte-identical game maps to its existing session, preserving score
// state; anything else creates a fresh session that fully supersedes
// nothing — old sessions stay addressable until deleted.
func (m *Manager) Load(data GameData) (*Session, bool, error) {
	if data.HTML == "" {
		return nil, false, fmt.Errorf("game html required")
	}
	if len(data.HTML) > MaxHTMLSize {
		return nil, false, fmt.Errorf("game html exceeds maximum size of %d bytes", MaxHTMLSize)
	}

	sum := blake2b.Sum256([]byte(data.HTML))
	hash := hex.EncodeToString(sum[:])

	m.mu.RLock()
	if id, ok := m.byHash[hash]; ok {
		session := m.sessions[id]
		m.mu.RUnlock()
		return session, true, nil
	}
	m.mu.RUnlock()

	// Analyze and enhance outside the lock; the work is read-only over
	// the input and may be discarded if another load won the race.
	diagnostics := analyzer.Analyze(data.HTML)
	enhanced := enhance.Inject(data.HTML)

	rawBlob, err := compress([]byte(data.HTML))
	if err != nil {
		return nil, false, err
	}
	enhancedBlob, err := compress([]byte(enhanced))
	if err != nil {
		return nil, false, err
	}

	notices := newBroadcaster()
	session := &Session{
		ID:          uuid.NewString(),
		Hash:        hash,
		Meta:        data.Meta,
		Diagnostics: diagnostics,
		CreatedAt:   time.Now(),
		notices:     notices,
		raw:         rawBlob,
		enhanced:    enhancedBlob,
	}
	session.Bridge = protocol.NewBridge(notices)

	// Re-check under the write lock: a concurrent load of the same bytes
	// may have inserted between the optimistic check and here. The loser
	// discards its work so identical HTML always maps to one session.
	m.mu.Lock()
	if id, ok := m.byHash[hash]; ok {
		existing := m.sessions[id]
		m.mu.Unlock()
		return existing, true, nil
	}
	m.sessions[session.ID] = session
	m.byHash[hash] = session.ID
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.RecordGameLoaded(diagnostics)
	}
	m.log.Info("game loaded",
		zap.String("session_id", session.ID),
		zap.String("title", data.Meta.Title),
		zap.Bool("generated", data.Meta.Generated),
		zap.Int("diagnostics", len(diagnostics)),
	)

	return session, false, nil
}

// HandleMessage routes one raw protocol payload to a session's bridge.
// Total: unknown sessions and malformed payloads are dropped.
func (m *Manager) HandleMessage(sessionID string, raw []byte) {
	session, ok := m.Get(sessionID)
	if !ok {
		return
	}
	if m.metrics != nil {
		if msg, valid := protocol.Decode(raw); valid {
			m.metrics.RecordProtocolMessage(string(msg.Type))
		}
	}
	session.Bridge.Handle(raw)
}

// Get returns a session by ID.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[id]
	return session, ok
}

// List returns all sessions, newest first.
func (m *Manager) List() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Remove deletes a session.
func (m *Manager) Remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		return false
	}
	delete(m.sessions, id)
	delete(m.byHash, session.Hash)
	return true
}

// Stats returns manager statistics.
func (m *Manager) Stats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return map[string]interface{}{
		"sessions": len(m.sessions),
	}
}
