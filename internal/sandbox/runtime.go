package sandbox

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dop251/goja"

	"github.com/gamedock/gamedock/internal/protocol"
)

// Runtime wraps a goja VM with the capabilities the enhancement bundle
// grants to game content: alert/confirm overrides that emit protocol
// messages, the status emitter, and a captured console. It is the
// headless stand-in for the iframe's isolated context.
type Runtime struct {
	vm     *goja.Runtime
	config Config
	emit   Emitter
	mu     sync.Mutex

	console    []LogEntry
	messages   []protocol.Message
	capturedMu sync.Mutex

	interrupt chan struct{}
}

// New creates a sandboxed runtime. The emitter may be nil; emitted
// messages are always collected into each Execute result.
func New(config Config, emit Emitter) (*Runtime, error) {
	r := &Runtime{
		vm:        goja.New(),
		config:    config,
		emit:      emit,
		interrupt: make(chan struct{}),
	}
	if err := r.setupGlobals(); err != nil {
		return nil, err
	}
	return r, nil
}

// Execute runs game JavaScript with timeout and interrupt handling.
func (r *Runtime) Execute(ctx context.Context, script string) (*Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()

	timer := time.NewTimer(r.config.Timeout)
	defer timer.Stop()

	go func() {
		select {
		case <-timer.C:
			r.vm.Interrupt("execution timeout exceeded")
		case <-ctx.Done():
			r.vm.Interrupt("context cancelled")
		case <-r.interrupt:
		}
	}()

	r.capturedMu.Lock()
	r.console = nil
	r.messages = nil
	r.capturedMu.Unlock()

	val, err := r.vm.RunString(script)

	close(r.interrupt)
	r.interrupt = make(chan struct{})

	result := &Result{Duration: time.Since(start)}

	r.capturedMu.Lock()
	result.Console = append([]LogEntry{}, r.console...)
	result.Messages = append([]protocol.Message{}, r.messages...)
	r.capturedMu.Unlock()

	if err != nil {
		result.Error = err
		return result, err
	}
	result.Value = exportValue(val)
	return result, nil
}

// setupGlobals removes host escapes and installs the bundle capabilities.
func (r *Runtime) setupGlobals() error {
	if r.config.MaxCallStack > 0 {
		r.vm.SetMaxCallStackSize(r.config.MaxCallStack)
	}

	r.vm.Set("require", goja.Undefined())
	r.vm.Set("process", goja.Undefined())
	r.vm.Set("module", goja.Undefined())
	r.vm.Set("exports", goja.Undefined())

	if r.config.EnableConsole {
		console := r.vm.NewObject()
		console.Set("log", r.makeConsoleFunc("log"))
		console.Set("warn", r.makeConsoleFunc("warn"))
		console.Set("error", r.makeConsoleFunc("error"))
		console.Set("info", r.makeConsoleFunc("info"))
		r.vm.Set("console", console)
	}

	// Minimal DOM surface so game bootstraps (event wiring, element
	// lookups) do not throw before reaching the logic under verification.
	noop := func(call goja.FunctionCall) goja.Value { return goja.Undefined() }
	doc := r.vm.NewObject()
	doc.Set("addEventListener", noop)
	doc.Set("removeEventListener", noop)
	doc.Set("getElementById", func(call goja.FunctionCall) goja.Value { return goja.Null() })
	doc.Set("querySelector", func(call goja.FunctionCall) goja.Value { return goja.Null() })
	doc.Set("querySelectorAll", func(call goja.FunctionCall) goja.Value { return r.vm.ToValue([]any{}) })
	doc.Set("createElement", func(call goja.FunctionCall) goja.Value {
		el := r.vm.NewObject()
		el.Set("style", r.vm.NewObject())
		el.Set("addEventListener", noop)
		return el
	})
	doc.Set("readyState", "complete")
	r.vm.Set("document", doc)
	r.vm.Set("window", r.vm.GlobalObject())
	r.vm.Set("addEventListener", noop)
	r.vm.Set("removeEventListener", noop)

	// Timers are no-ops: verification runs a single synchronous pass.
	r.vm.Set("setTimeout", func(call goja.FunctionCall) goja.Value {
		return goja.Undefined()
	})
	r.vm.Set("setInterval", func(call goja.FunctionCall) goja.Value {
		return goja.Undefined()
	})

	// Dialog overrides, mirroring the injected bundle: both emit a
	// protocol message; confirm answers affirmatively so content relying
	// on the return value never stalls.
	r.vm.Set("alert", func(call goja.FunctionCall) goja.Value {
		r.record(protocol.Message{Type: protocol.KindAlert, Message: argString(call, 0)})
		return goja.Undefined()
	})
	r.vm.Set("confirm", func(call goja.FunctionCall) goja.Value {
		r.record(protocol.Message{Type: protocol.KindConfirm, Message: argString(call, 0)})
		return r.vm.ToValue(true)
	})
	r.vm.Set("reportGameStatus", func(call goja.FunctionCall) goja.Value {
		msg := protocol.Message{Type: protocol.KindStatus, Status: argString(call, 0)}
		if len(call.Arguments) > 1 {
			if data, ok := call.Arguments[1].Export().(map[string]any); ok {
				msg.Data = data
			}
		}
		r.record(msg)
		return goja.Undefined()
	})

	return nil
}

func (r *Runtime) record(msg protocol.Message) {
	r.capturedMu.Lock()
	r.messages = append(r.messages, msg)
	r.capturedMu.Unlock()
	if r.emit != nil {
		r.emit(msg)
	}
}

func (r *Runtime) makeConsoleFunc(level string) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		parts := make([]string, 0, len(call.Arguments))
		for _, arg := range call.Arguments {
			parts = append(parts, arg.String())
		}
		r.capturedMu.Lock()
		r.console = append(r.console, LogEntry{
			Level:   level,
			Message: strings.Join(parts, " "),
			Time:    time.Now(),
		})
		r.capturedMu.Unlock()
		return goja.Undefined()
	}
}

// Reset clears the runtime state for reuse.
func (r *Runtime) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.vm = goja.New()
	r.capturedMu.Lock()
	r.console = nil
	r.messages = nil
	r.capturedMu.Unlock()
	return r.setupGlobals()
}

// Close releases resources
func (r *Runtime) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.vm = nil
	r.console = nil
	r.messages = nil
	return nil
}

func argString(call goja.FunctionCall, i int) string {
	if len(call.Arguments) <= i {
		return ""
	}
	return call.Arguments[i].String()
}

func exportValue(val goja.Value) interface{} {
	if val == nil || goja.IsUndefined(val) || goja.IsNull(val) {
		return nil
	}
	return val.Export()
}
