package protocol

import "github.com/bytedance/sonic"

// Kind discriminates the message union. The wire strings are a stable
// contract with already-injected bundles and must not change.
type Kind string

const (
	KindAlert   Kind = "game-alert"
	KindConfirm Kind = "game-confirm"
	KindStatus  Kind = "game-status"
)

// Status sub-kinds carried by KindStatus messages.
const (
	StatusScoreUpdate = "score-update"
)

// Message is one event emitted by the isolated context.
//
// Wire format: {"type": "...", "message": "...", "status": "...", "data": {...}}
type Message struct {
	Type    Kind           `json:"type"`
	Message string         `json:"message,omitempty"`
	Status  string         `json:"status,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

// Decode parses a raw payload into a Message. Malformed JSON and unknown
// discriminants report ok=false; callers drop those silently.
func Decode(raw []byte) (Message, bool) {
	var m Message
	if err := sonic.Unmarshal(raw, &m); err != nil {
		return Message{}, false
	}
	switch m.Type {
	case KindAlert, KindConfirm, KindStatus:
		return m, true
	default:
		return Message{}, false
	}
}

// Encode serializes a Message for the wire. Encoding a plain struct does
// not fail; errors degrade to an empty payload.
func Encode(m Message) []byte {
	out, err := sonic.Marshal(m)
	if err != nil {
		return nil
	}
	return out
}
