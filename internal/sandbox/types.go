package sandbox

import (
	"time"

	"github.com/gamedock/gamedock/internal/protocol"
)

// Config defines sandbox configuration
type Config struct {
	Timeout       time.Duration // Execution timeout
	MaxCallStack  int           // goja call stack limit
	EnableConsole bool          // Allow console.log/warn/error
}

// Result holds execution result
type Result struct {
	Value    interface{}        // Return value of the last expression
	Console  []LogEntry         // Captured console output
	Messages []protocol.Message // Protocol messages emitted via dialogs/status
	Duration time.Duration      // Execution time
	Error    error              // Execution error
}

// LogEntry represents console output
type LogEntry struct {
	Level   string    `json:"level"` // log, warn, error, info
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// Emitter receives protocol messages as game code produces them. Nil is
// allowed; messages are still collected into the Result.
type Emitter func(protocol.Message)

// DefaultConfig returns limits suitable for verifying generated games.
func DefaultConfig() Config {
	return Config{
		Timeout:       5 * time.Second,
		MaxCallStack:  1024,
		EnableConsole: true,
	}
}
