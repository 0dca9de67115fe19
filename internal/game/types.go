package game

import (
	"time"

	"github.com/gamedock/gamedock/internal/analyzer"
	"github.com/gamedock/gamedock/internal/protocol"
)

// Metadata describes a game for display purposes. The core never
// transforms it.
type Metadata struct {
	Title     string `json:"title"`
	Type      string `json:"type"`
	Generated bool   `json:"generated"`
}

// GameData is the raw input supplied by a collaborator: markup plus
// display metadata.
type GameData struct {
	HTML string   `json:"html"`
	Meta Metadata `json:"meta"`
}

// Session is one loaded game owned by the host. Diagnostics and the
// enhanced document are recomputed wholesale on load; score state lives
// in the bridge and survives re-loads of the byte-identical game.
type Session struct {
	ID          string                `json:"id"`
	Hash        string                `json:"hash"`
	Meta        Metadata              `json:"meta"`
	Diagnostics []analyzer.Diagnostic `json:"diagnostics"`
	CreatedAt   time.Time             `json:"created_at"`

	Bridge *protocol.Bridge `json:"-"`

	notices  *broadcaster
	raw      []byte // gzip-compressed original markup
	enhanced []byte // gzip-compressed enhanced document
}

// Document returns the enhanced HTML served to the isolated context.
func (s *Session) Document() (string, error) {
	data, err := decompress(s.enhanced)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// RawHTML returns the original pre-enhancement markup, used for export.
func (s *Session) RawHTML() (string, error) {
	data, err := decompress(s.raw)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Score returns the current score state.
func (s *Session) Score() protocol.ScoreState {
	return s.Bridge.Score()
}

// Subscribe registers for notices produced by this session's bridge.
// The returned cancel func must be called when the subscriber goes away.
func (s *Session) Subscribe() (<-chan Notice, func()) {
	return s.notices.subscribe()
}
