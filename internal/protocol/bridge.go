package protocol

import "sync"

// Notifier is the notification surface messages are routed to in place of
// the blocked dialog primitives. Injected so tests and transports can
// substitute their own.
type Notifier interface {
	Info(message string)
	Warn(message string)
}

// Bridge is the host-side consumer of the message channel. Dispatch is an
// exhaustive match on the closed Kind union; unknown shapes are dropped
// without error. All methods are safe for concurrent use.
type Bridge struct {
	notifier Notifier
	onScore  func(ScoreState)

	mu    sync.Mutex
	score ScoreState
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithScoreCallback registers a callback invoked after every score-update
// dispatch with the new state.
func WithScoreCallback(fn func(ScoreState)) Option {
	return func(b *Bridge) { b.onScore = fn }
}

// NewBridge creates a bridge routing to the given notifier.
func NewBridge(notifier Notifier, opts ...Option) *Bridge {
	b := &Bridge{notifier: notifier}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Handle decodes and dispatches a raw payload. Total: malformed payloads
// are ignored.
func (b *Bridge) Handle(raw []byte) {
	msg, ok := Decode(raw)
	if !ok {
		return
	}
	b.Dispatch(msg)
}

// Dispatch routes one decoded message.
func (b *Bridge) Dispatch(msg Message) {
	switch msg.Type {
	case KindAlert:
		if b.notifier != nil {
			b.notifier.Info(msg.Message)
		}
	case KindConfirm:
		// No confirmation round-trip exists; the injected override already
		// answered affirmatively inside the isolated context.
		if b.notifier != nil {
			b.notifier.Warn(msg.Message)
		}
	case KindStatus:
		if msg.Status == StatusScoreUpdate {
			b.applyScore(msg.Data)
		}
	}
}

func (b *Bridge) applyScore(data map[string]any) {
	b.mu.Lock()
	b.score = b.score.Apply(data)
	next := b.score
	b.mu.Unlock()

	if b.onScore != nil {
		b.onScore(next)
	}
}

// Score returns the current score state.
func (b *Bridge) Score() ScoreState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.score
}
