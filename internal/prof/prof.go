// Package prof provides the start/end profiling scopes the execution
// engine wraps around each layer invocation. The Tracer is an explicit
// handle passed into the engine, never a process-wide singleton, so tests
// run without global state.
package prof

import (
	"log/slog"
	"time"
)

// Tracer emits one scope per layer invocation. A nil Tracer is valid and
// records nothing.
type Tracer struct {
	logger *slog.Logger
}

// New returns a Tracer logging scope durations through the given logger.
// A nil logger yields a no-op Tracer.
func New(logger *slog.Logger) *Tracer {
	if logger == nil {
		return nil
	}
	return &Tracer{logger: logger}
}

// StartScope opens a named scope and returns the matching end function.
// Callers defer the end function so the scope closes even when the wrapped
// invocation fails.
func (t *Tracer) StartScope(name string) func() {
	if t == nil {
		return func() {}
	}
	start := time.Now()
	t.logger.Debug("scope start", "scope", name)
	return func() {
		t.logger.Debug("scope end", "scope", name, "elapsed", time.Since(start))
	}
}
