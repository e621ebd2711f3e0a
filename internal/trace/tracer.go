package trace

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Tracer is the interface for emitting trace events.
type Tracer interface {
	// Emit records a trace event. Must be goroutine-safe.
	Emit(ev Event)

	// Flush ensures all buffered events are written.
	Flush() error

	// Close flushes and releases resources.
	Close() error

	// Level returns the current tracing level.
	Level() Level

	// Enabled returns true if tracing is active (Level > LevelOff).
	Enabled() bool
}

// Point emits an instant event with the current timestamp.
func Point(t Tracer, scope Scope, name, detail string) {
	if t == nil || !t.Enabled() {
		return
	}
	t.Emit(Event{Time: time.Now(), Scope: scope, Name: name, Detail: detail})
}

// nopTracer is a no-op implementation for zero overhead when tracing is disabled.
type nopTracer struct{}

func (nopTracer) Emit(Event)    {}
func (nopTracer) Flush() error  { return nil }
func (nopTracer) Close() error  { return nil }
func (nopTracer) Level() Level  { return LevelOff }
func (nopTracer) Enabled() bool { return false }

// Nop is the package-level singleton nop tracer.
var Nop Tracer = nopTracer{}

// StreamTracer writes events immediately to an io.Writer, one line per event.
type StreamTracer struct {
	mu    sync.Mutex
	w     io.Writer
	level Level
}

// NewStreamTracer creates a StreamTracer at the given level.
func NewStreamTracer(w io.Writer, level Level) *StreamTracer {
	return &StreamTracer{w: w, level: level}
}

// Open creates a StreamTracer for the destination named by the --trace flag:
// "-" means stderr, anything else is created as a file.
func Open(dest string, level Level) (Tracer, error) {
	if dest == "" || level == LevelOff {
		return Nop, nil
	}
	if dest == "-" {
		return NewStreamTracer(os.Stderr, level), nil
	}
	// #nosec G304 -- destination comes from the --trace flag
	f, err := os.Create(dest)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return NewStreamTracer(f, level), nil
}

// Emit writes an event to the output. Write errors are ignored so tracing
// never disrupts a build.
func (t *StreamTracer) Emit(ev Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	line := fmt.Sprintf("%s %s %s", ev.Time.Format("15:04:05.000"), ev.Scope, ev.Name)
	if ev.Detail != "" {
		line += " " + ev.Detail
	}
	_, _ = fmt.Fprintln(t.w, line)
}

// Flush ensures all buffered data is written.
func (t *StreamTracer) Flush() error {
	if flusher, ok := t.w.(interface{ Flush() error }); ok {
		return flusher.Flush()
	}
	return nil
}

// Close flushes and closes the writer if it implements io.Closer.
func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if closer, ok := t.w.(io.Closer); ok && t.w != os.Stderr {
		return closer.Close()
	}
	return nil
}

// Level returns the configured level.
func (t *StreamTracer) Level() Level { return t.level }

// Enabled reports whether any events can pass.
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
