package game

import (
	"sync"
	"time"
)

// Notice is a notification surfaced in place of a blocked dialog.
type Notice struct {
	Level   string    `json:"level"` // info, warn
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// broadcaster fans bridge notifications out to subscribers (websocket
// connections). Publishing never blocks; slow subscribers drop notices.
type broadcaster struct {
	mu   sync.Mutex
	subs map[chan Notice]struct{}
}

func newBroadcaster() *broadcaster {
	return &broadcaster{subs: make(map[chan Notice]struct{})}
}

func (b *broadcaster) subscribe() (<-chan Notice, func()) {
	ch := make(chan Notice, 16)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		delete(b.subs, ch)
		b.mu.Unlock()
	}
	return ch, cancel
}

func (b *broadcaster) publish(level, message string) {
	notice := Notice{Level: level, Message: message, Time: time.Now()}
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- notice:
		default:
		}
	}
}

// Info implements protocol.Notifier.
func (b *broadcaster) Info(message string) { b.publish("info", message) }

// Warn implements protocol.Notifier.
func (b *broadcaster) Warn(message string) { b.publish("warn", message) }
