package trace

import "time"

// Scope indicates the granularity of an event.
// Lower numeric values represent coarser events.
type Scope uint8

const (
	// ScopeDriver represents top-level driver operations.
	ScopeDriver Scope = iota + 1
	// ScopePhase represents pipeline phases (config, program, codegen, emit).
	ScopePhase
	// ScopeHost represents host operations (source reads, writes, resolution).
	ScopeHost
	// ScopeExtension represents individual extension hook calls.
	ScopeExtension
)

// String returns the string representation of Scope.
func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopePhase:
		return "phase"
	case ScopeHost:
		return "host"
	case ScopeExtension:
		return "extension"
	default:
		return "unknown"
	}
}

// Event represents a single trace event.
type Event struct {
	Time   time.Time
	Scope  Scope
	Name   string // e.g. "emit", "resolve", "ext:transform"
	Detail string // optional detail message
}
